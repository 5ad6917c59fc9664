package sync

import (
	"context"
	"errors"

	"media-sync/core/history"
	"media-sync/core/media"
	"media-sync/core/reconcile"
	"media-sync/core/scheduler"
	"media-sync/core/storage"
	"media-sync/core/syncmap"

	"go.uber.org/zap"
)

// TriggerManual marks runs started from the control plane.
const TriggerManual = "manual"

// ErrArchiveDisabled is returned by report operations when no archive is configured.
var ErrArchiveDisabled = errors.New("report archive is disabled")

// MapListing is the sync map view.
type MapListing struct {
	Entries []syncmap.Entry `json:"entries"`
	Stats   syncmap.Stats   `json:"stats"`
}

// Service handles sync operations.
type Service struct {
	runner  scheduler.Runner
	store   *syncmap.Store
	history *history.Store
	archive *storage.Archive
	logger  *zap.Logger
}

// NewService creates a new sync service. archive may be nil.
func NewService(runner scheduler.Runner, store *syncmap.Store, hist *history.Store, archive *storage.Archive, logger *zap.Logger) *Service {
	return &Service{
		runner:  runner,
		store:   store,
		history: hist,
		archive: archive,
		logger:  logger,
	}
}

// Run performs a manual run synchronously.
func (s *Service) Run(ctx context.Context) (*reconcile.Outcome, error) {
	return s.runner.Run(ctx, TriggerManual)
}

// Map lists sync map entries matching the filter.
func (s *Service) Map(ctx context.Context, mediaType, status string) (*MapListing, error) {
	filter := syncmap.Filter{Status: syncmap.Status(status)}
	if mediaType != "" {
		filter.MediaType = media.ParseType(mediaType)
	}

	entries, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	stats, err := s.store.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &MapListing{Entries: entries, Stats: stats}, nil
}

// Forget deletes one sync map entry. The next run re-resolves the title.
func (s *Service) Forget(ctx context.Context, key string) error {
	return s.store.Delete(ctx, key)
}

// History returns the most recent sync jobs.
func (s *Service) History(ctx context.Context, limit int) ([]history.JobHistory, error) {
	return s.history.List(ctx, history.JobTypeSync, limit)
}

// Reports lists archived run reports.
func (s *Service) Reports(ctx context.Context, limit int) ([]storage.ReportInfo, error) {
	if s.archive == nil {
		return nil, ErrArchiveDisabled
	}
	return s.archive.List(ctx, limit)
}

// Report fetches one archived run report.
func (s *Service) Report(ctx context.Context, runID string) (*reconcile.Outcome, error) {
	if s.archive == nil {
		return nil, ErrArchiveDisabled
	}
	var outcome reconcile.Outcome
	if err := s.archive.Get(ctx, runID, &outcome); err != nil {
		return nil, err
	}
	return &outcome, nil
}
