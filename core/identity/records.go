package identity

import (
	"context"

	"media-sync/core/media"
)

// Record is a raw watchlist entry as enumerated by the watchlist source.
// It is implemented by ListingRecord and FeedRecord only.
type Record interface {
	record()
}

// ListingRecord is an entry from the structured watchlist listing.
type ListingRecord struct {
	RatingKey string
	Type      string
	Title     string
	Year      int
	// GUID is the primary identifier, e.g. "plex://movie/5d7768ba96b655001fdc0408".
	GUID string
	// GUIDs holds the provider identifiers, e.g. "tmdb://27205", "imdb://tt1375666".
	GUIDs []string
}

func (ListingRecord) record() {}

// FeedRecord is an entry from an RSS watchlist feed.
type FeedRecord struct {
	Title       string
	Link        string
	GUID        string
	Category    string
	Description string
	Origin      media.Origin
}

func (FeedRecord) record() {}

// Metadata is the canonical description of a title held by the discovery service.
type Metadata struct {
	Key   string
	Type  string
	Title string
	Year  int
	GUIDs []string
}

// MetadataSource fetches canonical metadata by discovery-service key.
// A nil result with a nil error means the key is unknown.
type MetadataSource interface {
	Metadata(ctx context.Context, key string) (*Metadata, error)
}
