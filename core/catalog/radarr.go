package catalog

import (
	"context"

	"media-sync/core/media"
	"media-sync/core/reconcile"

	"go.uber.org/zap"
)

// Radarr is the movie catalog.
type Radarr struct {
	arrGateway
}

// NewRadarr creates a Radarr gateway. Lookups accept tmdb and imdb terms.
func NewRadarr(cfg Config, logger *zap.Logger) *Radarr {
	return &Radarr{arrGateway{
		client: newArrClient("radarr", cfg, logger),
		res: resource{
			mediaType:  media.TypeMovie,
			path:       "/api/v3/movie",
			idField:    "tmdbId",
			idProvider: media.ProviderTMDB,
			accepts:    []media.Provider{media.ProviderTMDB, media.ProviderIMDB},
			addOptions: map[string]any{"searchForMovie": true},
		},
	}}
}

// IsFulfilled reports whether the movie file is on disk.
func (r *Radarr) IsFulfilled(ctx context.Context, catalogID int) bool {
	var movie struct {
		HasFile bool `json:"hasFile"`
	}
	if err := r.fetch(ctx, catalogID, &movie); err != nil {
		r.client.logger.Debug("Fetch movie failed", zap.Int("catalog_id", catalogID), zap.Error(err))
		return false
	}
	return movie.HasFile
}

var _ reconcile.Gateway = (*Radarr)(nil)
