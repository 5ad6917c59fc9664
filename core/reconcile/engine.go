package reconcile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"media-sync/core/media"
	"media-sync/core/syncmap"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store is the persistence the engine needs from the sync map.
type Store interface {
	Upsert(ctx context.Context, entry syncmap.Entry) (syncmap.Entry, error)
	ListPending(ctx context.Context) ([]syncmap.Entry, error)
	MarkFulfilled(ctx context.Context, sourceKey string) (bool, error)
}

// Engine reconciles resolved watchlist items against the configured catalogs.
type Engine struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

// NewEngine creates an engine backed by the given sync map store.
func NewEngine(store Store, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{store: store, logger: logger, now: time.Now}
}

// Run performs one reconciliation pass.
// Items are partitioned by media type and each enabled type is processed sequentially,
// movies first. Afterwards every requested entry is re-checked for fulfillment.
// Per-item gateway failures are recorded in the outcome; only store failures abort the run.
func (e *Engine) Run(ctx context.Context, spec *Spec, items []media.WatchlistItem) (*Outcome, error) {
	if spec == nil {
		return nil, errors.New("reconcile: nil spec")
	}

	runID := uuid.NewString()
	started := e.now()
	log := e.logger.With(zap.String("run_id", runID), zap.String("trigger", spec.Trigger))

	out := &Outcome{
		RunID:     runID,
		Trigger:   spec.Trigger,
		StartedAt: started,
		Movies:    newTypeOutcome(spec.enabled(media.TypeMovie)),
		Shows:     newTypeOutcome(spec.enabled(media.TypeShow)),
	}

	batches := partition(items)
	for _, mediaType := range []media.Type{media.TypeMovie, media.TypeShow} {
		target, ok := spec.target(mediaType)
		if !ok {
			if n := len(batches[mediaType]); n > 0 {
				log.Info("Catalog disabled, skipping batch",
					zap.String("media_type", string(mediaType)),
					zap.Int("items", n))
			}
			continue
		}

		typeOut := out.For(mediaType)
		for _, item := range batches[mediaType] {
			if err := e.reconcileItem(ctx, target, item, typeOut); err != nil {
				return nil, err
			}
		}
	}

	sweep, err := e.sweep(ctx, spec, log)
	if err != nil {
		return nil, err
	}
	out.Sweep = sweep
	out.FinishedAt = e.now()

	added, skipped, errs := out.Totals()
	log.Info("Reconciliation finished",
		zap.Int("added", added),
		zap.Int("skipped", skipped),
		zap.Int("errors", errs),
		zap.Int("advanced", sweep.Advanced),
		zap.Duration("duration", out.FinishedAt.Sub(started)))

	return out, nil
}

// reconcileItem decides and applies the action for one item.
// The returned error is always a store failure.
func (e *Engine) reconcileItem(ctx context.Context, target Target, item media.WatchlistItem, out *TypeOutcome) error {
	gw := target.Gateway
	term := searchTerm(item, gw)
	log := e.logger.With(
		zap.String("catalog", gw.Name()),
		zap.String("source_key", item.Key()),
		zap.String("term", term))

	result, err := gw.Lookup(ctx, term)
	if err != nil || result == nil {
		if err != nil && !errors.Is(err, ErrNotFound) {
			log.Warn("Lookup failed", zap.Error(err))
		}
		out.Skipped = append(out.Skipped, SkippedItem{
			SourceKey: item.Key(),
			Title:     item.Title,
			Reason:    ReasonNotFound,
		})
		return nil
	}

	if result.Tracked() {
		catalogID := *result.CatalogID
		status := syncmap.StatusRequested
		reason := ReasonAlreadyMonitored
		if gw.IsFulfilled(ctx, catalogID) {
			status = syncmap.StatusFulfilled
			reason = ReasonAlreadyInLibrary
		}

		if err := e.record(ctx, item, gw.MediaType(), catalogID, status); err != nil {
			return err
		}
		out.Skipped = append(out.Skipped, SkippedItem{
			SourceKey: item.Key(),
			Title:     item.Title,
			Reason:    reason,
			CatalogID: catalogID,
		})
		return nil
	}

	catalogID, err := gw.Create(ctx, *result, target.Destination)
	if err != nil {
		log.Warn("Create failed", zap.Error(err))
		out.Errors = append(out.Errors, ErrorItem{
			SourceKey: item.Key(),
			Title:     item.Title,
			Error:     err.Error(),
		})
		return nil
	}

	if err := e.record(ctx, item, gw.MediaType(), catalogID, syncmap.StatusRequested); err != nil {
		return err
	}
	log.Info("Requested from catalog", zap.Int("catalog_id", catalogID))
	out.Added = append(out.Added, AddedItem{
		SourceKey: item.Key(),
		Title:     item.Title,
		CatalogID: catalogID,
	})
	return nil
}

func (e *Engine) record(ctx context.Context, item media.WatchlistItem, mediaType media.Type, catalogID int, status syncmap.Status) error {
	_, err := e.store.Upsert(ctx, syncmap.Entry{
		SourceKey: item.Key(),
		CatalogID: catalogID,
		MediaType: mediaType,
		Status:    status,
		Title:     item.Title,
	})
	if err != nil {
		return fmt.Errorf("record %q: %w", item.Key(), err)
	}
	return nil
}

// sweep advances requested entries whose files have since landed.
// Entries of a media type with no configured gateway are counted as stale.
func (e *Engine) sweep(ctx context.Context, spec *Spec, log *zap.Logger) (SweepSummary, error) {
	var summary SweepSummary

	pending, err := e.store.ListPending(ctx)
	if err != nil {
		return summary, fmt.Errorf("list pending: %w", err)
	}

	for _, entry := range pending {
		target, ok := spec.target(entry.MediaType)
		if !ok {
			summary.Stale++
			continue
		}

		summary.Checked++
		if !target.Gateway.IsFulfilled(ctx, entry.CatalogID) {
			continue
		}

		changed, err := e.store.MarkFulfilled(ctx, entry.SourceKey)
		if err != nil {
			return summary, fmt.Errorf("mark fulfilled %q: %w", entry.SourceKey, err)
		}
		if changed {
			summary.Advanced++
			log.Debug("Entry fulfilled",
				zap.String("source_key", entry.SourceKey),
				zap.Int("catalog_id", entry.CatalogID))
		}
	}

	return summary, nil
}

// searchTerm prefers an id-qualified term the gateway understands, else title and year.
func searchTerm(item media.WatchlistItem, gw Gateway) string {
	if item.ExternalID != nil && gw.Accepts(*item.ExternalID) {
		return item.ExternalID.Term()
	}
	return item.TitleTerm()
}

// partition splits items by media type. Items of unknown type are treated as movies.
func partition(items []media.WatchlistItem) map[media.Type][]media.WatchlistItem {
	batches := make(map[media.Type][]media.WatchlistItem, 2)
	for _, item := range items {
		t := item.Type
		if t != media.TypeShow {
			t = media.TypeMovie
		}
		batches[t] = append(batches[t], item)
	}
	return batches
}

func (s *Spec) target(t media.Type) (Target, bool) {
	target, ok := s.Targets[t]
	if !ok || target.Gateway == nil {
		return Target{}, false
	}
	return target, true
}

func (s *Spec) enabled(t media.Type) bool {
	_, ok := s.target(t)
	return ok
}
