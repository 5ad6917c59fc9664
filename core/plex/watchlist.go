package plex

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"media-sync/core/identity"

	"go.uber.org/zap"
)

// mediaContainer is the envelope of discovery API responses.
type mediaContainer struct {
	MediaContainer struct {
		Size      int        `json:"size"`
		TotalSize int        `json:"totalSize"`
		Offset    int        `json:"offset"`
		Metadata  []metadata `json:"Metadata"`
	} `json:"MediaContainer"`
}

type metadata struct {
	RatingKey string `json:"ratingKey"`
	Key       string `json:"key"`
	GUID      string `json:"guid"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Year      int    `json:"year"`
	GUIDs     []struct {
		ID string `json:"id"`
	} `json:"Guid"`
}

func (m metadata) guids() []string {
	out := make([]string, 0, len(m.GUIDs))
	for _, g := range m.GUIDs {
		if g.ID != "" {
			out = append(out, g.ID)
		}
	}
	return out
}

// Watchlist pages through the structured watchlist listing.
// Entries that are neither movies nor shows are dropped.
func (c *Client) Watchlist(ctx context.Context) ([]identity.ListingRecord, error) {
	if c.cfg.Token == "" {
		return nil, fmt.Errorf("plex token is not configured")
	}

	var records []identity.ListingRecord
	for start := 0; ; {
		var page mediaContainer
		_, err := c.getJSON(ctx, request{
			url: c.cfg.MetadataURL + "/library/sections/watchlist/all",
			query: url.Values{
				"includeGuids": {"1"},
			},
			headers: map[string]string{
				"X-Plex-Container-Start": strconv.Itoa(start),
				"X-Plex-Container-Size":  strconv.Itoa(c.cfg.PageSize),
			},
			timeout: requestTimeout,
		}, &page)
		if err != nil {
			return nil, fmt.Errorf("fetch watchlist page at %d: %w", start, err)
		}

		items := page.MediaContainer.Metadata
		for _, m := range items {
			if m.Type != "movie" && m.Type != "show" {
				continue
			}
			records = append(records, identity.ListingRecord{
				RatingKey: m.RatingKey,
				Type:      m.Type,
				Title:     m.Title,
				Year:      m.Year,
				GUID:      m.GUID,
				GUIDs:     m.guids(),
			})
		}

		start += len(items)
		total := page.MediaContainer.TotalSize
		if len(items) == 0 || total == 0 || start >= total {
			break
		}
	}

	c.logger.Debug("Fetched watchlist listing", zap.Int("records", len(records)))
	return records, nil
}

// Metadata fetches canonical metadata for a discovery key. It implements identity.MetadataSource.
// An unknown key yields nil, nil.
func (c *Client) Metadata(ctx context.Context, key string) (*identity.Metadata, error) {
	var resp mediaContainer
	_, err := c.getJSON(ctx, request{
		url:     c.cfg.MetadataURL + "/library/metadata/" + url.PathEscape(key),
		query:   url.Values{"includeGuids": {"1"}},
		timeout: requestTimeout,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("fetch metadata %s: %w", key, err)
	}
	if len(resp.MediaContainer.Metadata) == 0 {
		return nil, nil
	}

	m := resp.MediaContainer.Metadata[0]
	guids := m.guids()
	if m.GUID != "" {
		guids = append(guids, m.GUID)
	}
	return &identity.Metadata{
		Key:   m.RatingKey,
		Type:  m.Type,
		Title: m.Title,
		Year:  m.Year,
		GUIDs: guids,
	}, nil
}

var _ identity.MetadataSource = (*Client)(nil)
