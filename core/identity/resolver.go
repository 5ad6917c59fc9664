package identity

import (
	"context"
	"strings"
	"time"

	"media-sync/core/media"

	"go.uber.org/zap"
)

// Resolver converts raw records into WatchlistItems.
type Resolver struct {
	source MetadataSource
	cache  *metadataCache
	logger *zap.Logger
}

// NewResolver creates a resolver. source may be nil, in which case records are
// resolved from their own fields only. cacheTTL of zero disables metadata caching.
func NewResolver(source MetadataSource, cacheTTL time.Duration, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		source: source,
		cache:  newMetadataCache(cacheTTL),
		logger: logger,
	}
}

// ResolveAll resolves records in order and drops entries whose source key was already
// seen, so the first feed enumerated wins a merge.
func (r *Resolver) ResolveAll(ctx context.Context, records []Record) []media.WatchlistItem {
	items := make([]media.WatchlistItem, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for _, rec := range records {
		item := r.Resolve(ctx, rec)
		key := item.Key()
		if key == "" {
			r.logger.Debug("Dropping watchlist record without key or title")
			continue
		}
		if _, dup := seen[key]; dup {
			r.logger.Debug("Dropping duplicate watchlist record", zap.String("source_key", key), zap.String("origin", string(item.Origin)))
			continue
		}
		seen[key] = struct{}{}
		items = append(items, item)
	}
	return items
}

// Resolve converts one record. It never fails.
func (r *Resolver) Resolve(ctx context.Context, rec Record) media.WatchlistItem {
	switch rec := rec.(type) {
	case ListingRecord:
		return r.resolveListing(ctx, rec)
	case *ListingRecord:
		return r.resolveListing(ctx, *rec)
	case FeedRecord:
		return r.resolveFeed(ctx, rec)
	case *FeedRecord:
		return r.resolveFeed(ctx, *rec)
	default:
		return media.WatchlistItem{Type: media.TypeUnknown}
	}
}

func (r *Resolver) resolveListing(ctx context.Context, rec ListingRecord) media.WatchlistItem {
	item := media.WatchlistItem{
		SourceKey: strings.TrimSpace(rec.RatingKey),
		Title:     strings.TrimSpace(rec.Title),
		Year:      rec.Year,
		Type:      media.ParseType(rec.Type),
		Origin:    media.OriginPrimary,
	}

	cls := Classify(rec.GUID)
	if !item.Type.IsKnown() {
		item.Type = cls.Hint
	}
	item.ExternalID = pickExternalID(item.Type, append([]string{rec.GUID}, rec.GUIDs...))

	if item.ExternalID == nil {
		key := item.SourceKey
		if cls.PlexKey != "" {
			key = cls.PlexKey
		}
		if meta := r.lookup(ctx, key); meta != nil {
			applyMetadata(&item, meta)
		}
	}
	if item.Year == 0 {
		item.Year = YearFromTitle(item.Title)
	}
	if !item.Type.IsKnown() {
		item.Type = media.TypeMovie
	}
	item.SourceKey = item.Key()
	return item
}

func (r *Resolver) resolveFeed(ctx context.Context, rec FeedRecord) media.WatchlistItem {
	title, year := splitTitleYear(rec.Title)
	if year == 0 {
		year = YearFromTitle(title)
	}
	cls := Classify(rec.GUID)

	item := media.WatchlistItem{
		SourceKey:  cls.PlexKey,
		Title:      title,
		Year:       year,
		Type:       cls.Hint,
		ExternalID: cls.ExternalID,
		Origin:     rec.Origin,
	}
	if item.Origin == "" {
		item.Origin = media.OriginPrimary
	}
	if !item.Type.IsKnown() {
		item.Type = KeywordHint(rec.Category, rec.Link)
	}

	if cls.PlexKey != "" {
		if meta := r.lookup(ctx, cls.PlexKey); meta != nil {
			applyMetadata(&item, meta)
		}
	}

	if !item.Type.IsKnown() {
		item.Type = media.TypeMovie
	}
	item.SourceKey = item.Key()
	return item
}

// lookup fetches canonical metadata, logging and swallowing failures.
func (r *Resolver) lookup(ctx context.Context, key string) *Metadata {
	if r.source == nil || strings.TrimSpace(key) == "" {
		return nil
	}
	meta, err := r.cache.getOrFetch(ctx, key, r.source.Metadata)
	if err != nil {
		r.logger.Debug("Canonical metadata lookup failed, using record data", zap.String("key", key), zap.Error(err))
		return nil
	}
	return meta
}

// applyMetadata overrides item fields with canonical values that are present and non-empty.
func applyMetadata(item *media.WatchlistItem, meta *Metadata) {
	if k := strings.TrimSpace(meta.Key); k != "" {
		item.SourceKey = k
	}
	if t := strings.TrimSpace(meta.Title); t != "" {
		item.Title = t
	}
	if meta.Year > 0 {
		item.Year = meta.Year
	}
	if t := media.ParseType(meta.Type); t.IsKnown() {
		item.Type = t
	}
	if id := pickExternalID(item.Type, meta.GUIDs); id != nil {
		item.ExternalID = id
	}
}

// pickExternalID selects the id the catalog for t is most likely to match on.
func pickExternalID(t media.Type, guids []string) *media.ExternalID {
	order := []media.Provider{media.ProviderTMDB, media.ProviderIMDB, media.ProviderTVDB}
	if t == media.TypeShow {
		order = []media.Provider{media.ProviderTVDB, media.ProviderIMDB, media.ProviderTMDB}
	}

	found := make(map[media.Provider]*media.ExternalID)
	for _, g := range guids {
		if id := Classify(g).ExternalID; id != nil {
			if _, ok := found[id.Provider]; !ok {
				found[id.Provider] = id
			}
		}
	}
	for _, p := range order {
		if id, ok := found[p]; ok {
			return id
		}
	}
	return nil
}

// Invalidate clears cached canonical metadata.
func (r *Resolver) Invalidate() {
	r.cache.invalidate()
}
