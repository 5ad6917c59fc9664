package runner

import (
	"time"

	"media-sync/core/plex"
)

// Config holds run-level tuning that is not part of the editable settings.
type Config struct {
	// MetadataCacheTTL bounds reuse of canonical watchlist metadata.
	MetadataCacheTTL time.Duration `mapstructure:"metadata_cache_ttl" default:"1h"`
	// MetadataURL overrides the discovery metadata endpoint.
	MetadataURL string `mapstructure:"metadata_url" default:""`
	// AccountURL overrides the discovery account endpoint used for token probes.
	AccountURL string `mapstructure:"account_url" default:""`
	// PageSize is the watchlist listing page size.
	PageSize int `mapstructure:"page_size" default:"100"`
}

// PlexOverrides returns the discovery client overrides carried by c.
func (c Config) PlexOverrides() plex.Config {
	return plex.Config{
		MetadataURL: c.MetadataURL,
		AccountURL:  c.AccountURL,
		PageSize:    c.PageSize,
	}
}
