package catalog

import (
	"context"

	"media-sync/core/media"
	"media-sync/core/reconcile"

	"go.uber.org/zap"
)

// Sonarr is the show catalog.
type Sonarr struct {
	arrGateway
}

// NewSonarr creates a Sonarr gateway. Lookups accept tvdb and imdb terms.
func NewSonarr(cfg Config, logger *zap.Logger) *Sonarr {
	return &Sonarr{arrGateway{
		client: newArrClient("sonarr", cfg, logger),
		res: resource{
			mediaType:  media.TypeShow,
			path:       "/api/v3/series",
			idField:    "tvdbId",
			idProvider: media.ProviderTVDB,
			accepts:    []media.Provider{media.ProviderTVDB, media.ProviderIMDB},
			addOptions: map[string]any{"searchForMissingEpisodes": true},
		},
	}}
}

type fileStatistics struct {
	EpisodeFileCount int `json:"episodeFileCount"`
}

// IsFulfilled reports whether any episode file of the series is on disk,
// at the series level or in any season.
func (s *Sonarr) IsFulfilled(ctx context.Context, catalogID int) bool {
	var series struct {
		Statistics *fileStatistics `json:"statistics"`
		Seasons    []struct {
			Statistics *fileStatistics `json:"statistics"`
		} `json:"seasons"`
	}
	if err := s.fetch(ctx, catalogID, &series); err != nil {
		s.client.logger.Debug("Fetch series failed", zap.Int("catalog_id", catalogID), zap.Error(err))
		return false
	}

	if series.Statistics != nil && series.Statistics.EpisodeFileCount > 0 {
		return true
	}
	for _, season := range series.Seasons {
		if season.Statistics != nil && season.Statistics.EpisodeFileCount > 0 {
			return true
		}
	}
	return false
}

var _ reconcile.Gateway = (*Sonarr)(nil)
