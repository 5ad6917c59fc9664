package plex

import (
	"context"

	"media-sync/core/identity"
	"media-sync/core/media"

	"go.uber.org/zap"
)

// Source enumerates raw watchlist records. It never fails: an unreachable
// feed or listing contributes no records and is logged.
type Source struct {
	client *Client
}

// NewSource creates a watchlist source over client.
func NewSource(client *Client) *Source {
	return &Source{client: client}
}

// List returns the raw records of one run. In feed mode the personal feed comes
// first, tagged primary, followed by the friends feed, tagged shared.
func (s *Source) List(ctx context.Context) []identity.Record {
	cfg := s.client.cfg
	log := s.client.logger

	if cfg.FeedMode() {
		var records []identity.Record
		feeds := []struct {
			url    string
			origin media.Origin
		}{
			{cfg.RSSURL, media.OriginPrimary},
			{cfg.FriendsRSSURL, media.OriginShared},
		}
		for _, f := range feeds {
			if f.url == "" {
				continue
			}
			entries, err := s.client.Feed(ctx, f.url, f.origin)
			if err != nil {
				log.Warn("Watchlist feed unavailable", zap.String("origin", string(f.origin)), zap.Error(err))
				continue
			}
			for _, e := range entries {
				records = append(records, e)
			}
		}
		log.Info("Fetched watchlist feeds", zap.Int("records", len(records)))
		return records
	}

	if cfg.Token == "" {
		log.Warn("Plex token is not configured, watchlist is empty")
		return nil
	}

	listing, err := s.client.Watchlist(ctx)
	if err != nil {
		log.Warn("Watchlist listing unavailable", zap.Error(err))
		return nil
	}
	records := make([]identity.Record, 0, len(listing))
	for _, r := range listing {
		records = append(records, r)
	}
	log.Info("Fetched watchlist listing", zap.Int("records", len(records)))
	return records
}
