package scheduler

import (
	"context"
	"time"

	"media-sync/core/reconcile"

	"go.uber.org/zap"
)

// TriggerScheduled marks runs started by the interval timer.
const TriggerScheduled = "scheduled"

// Runner performs one sync run.
type Runner interface {
	Run(ctx context.Context, trigger string) (*reconcile.Outcome, error)
}

// Service triggers a run every interval. It implements suture.Service.
// A failed run is logged and its outcome discarded; the next tick runs again.
type Service struct {
	runner Runner
	cfg    Config
	logger *zap.Logger
}

// NewService creates the interval trigger.
func NewService(runner Runner, cfg Config, logger *zap.Logger) *Service {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	return &Service{runner: runner, cfg: cfg, logger: logger.With(zap.String("service", "scheduler"))}
}

// Serve blocks until ctx is cancelled.
func (s *Service) Serve(ctx context.Context) error {
	s.logger.Info("Scheduler started", zap.Duration("interval", s.cfg.Interval))

	if s.cfg.RunOnStart {
		s.runOnce(ctx)
	}

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Service) runOnce(ctx context.Context) {
	outcome, err := s.runner.Run(ctx, TriggerScheduled)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Error("Scheduled sync failed", zap.Error(err))
		}
		return
	}
	added, skipped, errs := outcome.Totals()
	s.logger.Info("Scheduled sync completed",
		zap.String("run_id", outcome.RunID),
		zap.Int("added", added),
		zap.Int("skipped", skipped),
		zap.Int("errors", errs))
}

// String names the service in supervisor events.
func (s *Service) String() string {
	return "sync-scheduler"
}
