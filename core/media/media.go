package media

import (
	"strconv"
	"strings"
)

// Type classifies a watchlist entry by the catalog that handles it.
type Type string

const (
	TypeMovie   Type = "movie"
	TypeShow    Type = "show"
	TypeUnknown Type = "unknown"
)

// ParseType normalizes a loosely typed media type string.
// Anything that is not recognizably a movie or a show is TypeUnknown.
func ParseType(s string) Type {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "movie", "movies", "film":
		return TypeMovie
	case "show", "shows", "series", "tv":
		return TypeShow
	default:
		return TypeUnknown
	}
}

// IsKnown reports whether t is movie or show.
func (t Type) IsKnown() bool {
	return t == TypeMovie || t == TypeShow
}

// Origin tags which watchlist feed an entry was merged from.
type Origin string

const (
	OriginPrimary Origin = "primary"
	OriginShared  Origin = "shared"
)

// Provider names an external identifier scheme.
type Provider string

const (
	ProviderTMDB Provider = "tmdb"
	ProviderTVDB Provider = "tvdb"
	ProviderIMDB Provider = "imdb"
)

// ExternalID is a provider-assigned identifier used to disambiguate a title.
type ExternalID struct {
	Provider Provider `json:"provider"`
	Value    string   `json:"value"`
}

// NewExternalID validates value for the provider and returns nil when it is unusable.
// tmdb and tvdb ids must be positive integers, imdb ids must look like "tt0123456".
func NewExternalID(provider Provider, value string) *ExternalID {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	switch provider {
	case ProviderTMDB, ProviderTVDB:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil || n <= 0 {
			return nil
		}
		return &ExternalID{Provider: provider, Value: strconv.FormatInt(n, 10)}
	case ProviderIMDB:
		v := strings.ToLower(value)
		if !strings.HasPrefix(v, "tt") || len(v) < 3 {
			return nil
		}
		if _, err := strconv.ParseInt(v[2:], 10, 64); err != nil {
			return nil
		}
		return &ExternalID{Provider: provider, Value: v}
	default:
		return nil
	}
}

// Term renders the external-id-qualified search token understood by the catalogs.
func (id ExternalID) Term() string {
	return string(id.Provider) + ":" + id.Value
}

// String implements fmt.Stringer.
func (id ExternalID) String() string {
	return id.Term()
}

// WatchlistItem is one entry to reconcile.
type WatchlistItem struct {
	// SourceKey is stable within the discovery service and unique within a run.
	SourceKey string `json:"source_key"`
	// Title is the display title.
	Title string `json:"title"`
	// Year is the release year, zero when unknown.
	Year int `json:"year,omitempty"`
	// Type selects the catalog gateway.
	Type Type `json:"media_type"`
	// ExternalID is nil when no provider id could be resolved.
	ExternalID *ExternalID `json:"external_id,omitempty"`
	// Origin records which feed the item came from.
	Origin Origin `json:"origin"`
}

// Key returns SourceKey, falling back to Title when the key is blank.
func (w WatchlistItem) Key() string {
	if k := strings.TrimSpace(w.SourceKey); k != "" {
		return k
	}
	return strings.TrimSpace(w.Title)
}

// TitleTerm builds the free-text "title year" search term.
func (w WatchlistItem) TitleTerm() string {
	title := strings.TrimSpace(w.Title)
	if w.Year > 0 {
		return title + " " + strconv.Itoa(w.Year)
	}
	return title
}
