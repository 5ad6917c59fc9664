package runner

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"media-sync/core/catalog"
	"media-sync/core/history"
	"media-sync/core/identity"
	"media-sync/core/media"
	"media-sync/core/plex"
	"media-sync/core/reconcile"
	"media-sync/core/settings"
	"media-sync/core/storage"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// Service names accepted by Probe.
const (
	ServiceRadarr = "radarr"
	ServiceSonarr = "sonarr"
	ServicePlex   = "plex"
)

// Options holds the collaborators of a Runner.
type Options struct {
	Settings *settings.Provider
	Engine   *reconcile.Engine
	History  *history.Store
	// Archive is optional.
	Archive *storage.Archive
	// MetadataCacheTTL bounds canonical metadata reuse within a run.
	MetadataCacheTTL time.Duration
	// Plex overrides the discovery endpoints and pacing; credentials come from settings.
	Plex plex.Config
	Logger *zap.Logger
}

// Runner performs sync runs.
type Runner struct {
	opts   Options
	logger *zap.Logger

	mu       sync.Mutex
	gateways map[string]reconcile.Gateway
}

// New creates a runner.
func New(opts Options) *Runner {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Runner{
		opts:     opts,
		logger:   opts.Logger,
		gateways: make(map[string]reconcile.Gateway),
	}
}

// Summary is the job history detail of a run.
type Summary struct {
	RunID    string                 `json:"run_id"`
	Trigger  string                 `json:"trigger"`
	Items    int                    `json:"items"`
	Added    int                    `json:"added"`
	Skipped  int                    `json:"skipped"`
	Errors   int                    `json:"errors"`
	Sweep    reconcile.SweepSummary `json:"sweep"`
	Archived string                 `json:"archived,omitempty"`
	Error    string                 `json:"error,omitempty"`
}

// Run performs one full sync run. A returned error means the outcome was discarded.
func (r *Runner) Run(ctx context.Context, trigger string) (*reconcile.Outcome, error) {
	started := time.Now().UTC()
	summary := Summary{Trigger: trigger}

	outcome, err := r.run(ctx, trigger, &summary)
	if err != nil {
		summary.Error = err.Error()
		r.record(ctx, started, history.StatusFailed, summary)
		return nil, err
	}

	if r.opts.Archive != nil {
		name, err := r.opts.Archive.Put(ctx, outcome.RunID, outcome)
		if err != nil {
			r.logger.Warn("Report archive failed", zap.String("run_id", outcome.RunID), zap.Error(err))
		} else {
			summary.Archived = name
			if _, err := r.opts.Archive.Prune(ctx); err != nil {
				r.logger.Warn("Report prune failed", zap.Error(err))
			}
		}
	}

	r.record(ctx, started, history.StatusSuccess, summary)
	return outcome, nil
}

func (r *Runner) run(ctx context.Context, trigger string, summary *Summary) (*reconcile.Outcome, error) {
	snap, err := r.opts.Settings.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	client := r.plexClient(snap)
	records := plex.NewSource(client).List(ctx)
	items := identity.NewResolver(client, r.opts.MetadataCacheTTL, r.logger).ResolveAll(ctx, records)
	summary.Items = len(items)

	outcome, err := r.opts.Engine.Run(ctx, &reconcile.Spec{
		Targets: r.targets(snap),
		Trigger: trigger,
	}, items)
	if err != nil {
		return nil, err
	}

	summary.RunID = outcome.RunID
	summary.Added, summary.Skipped, summary.Errors = outcome.Totals()
	summary.Sweep = outcome.Sweep
	return outcome, nil
}

// record writes the job history row. Failures are logged only.
func (r *Runner) record(ctx context.Context, at time.Time, status string, summary Summary) {
	if r.opts.History == nil {
		return
	}
	details, err := json.Marshal(summary)
	if err != nil {
		details = []byte(summary.Error)
	}
	err = r.opts.History.Record(context.WithoutCancel(ctx), &history.JobHistory{
		Timestamp: at,
		JobType:   history.JobTypeSync,
		Status:    status,
		Details:   string(details),
	})
	if err != nil {
		r.logger.Warn("Job history write failed", zap.Error(err))
	}
}

// targets returns the enabled catalogs of snap.
func (r *Runner) targets(snap *settings.Snapshot) map[media.Type]reconcile.Target {
	targets := make(map[media.Type]reconcile.Target, 2)
	if snap.Radarr.Enabled() {
		targets[media.TypeMovie] = reconcile.Target{
			Gateway:     r.gateway(ServiceRadarr, snap.Radarr.Catalog()),
			Destination: snap.Radarr.Destination(),
		}
	}
	if snap.Sonarr.Enabled() {
		targets[media.TypeShow] = reconcile.Target{
			Gateway:     r.gateway(ServiceSonarr, snap.Sonarr.Catalog()),
			Destination: snap.Sonarr.Destination(),
		}
	}
	return targets
}

// gateway reuses the gateway built for the same connection settings, so its
// circuit breaker state carries across runs.
func (r *Runner) gateway(name string, cfg catalog.Config) reconcile.Gateway {
	key := name + "|" + cfg.URL + "|" + cfg.APIKey

	r.mu.Lock()
	defer r.mu.Unlock()
	if gw, ok := r.gateways[key]; ok {
		return gw
	}

	for k := range r.gateways {
		if strings.HasPrefix(k, name+"|") {
			delete(r.gateways, k)
		}
	}

	var gw reconcile.Gateway
	switch name {
	case ServiceSonarr:
		gw = catalog.NewSonarr(cfg, r.logger)
	default:
		gw = catalog.NewRadarr(cfg, r.logger)
	}
	r.gateways[key] = gw
	return gw
}

func (r *Runner) plexClient(snap *settings.Snapshot) *plex.Client {
	cfg := snap.Plex.Client()
	base := r.opts.Plex
	if base.MetadataURL != "" {
		cfg.MetadataURL = base.MetadataURL
	}
	if base.AccountURL != "" {
		cfg.AccountURL = base.AccountURL
	}
	if base.RequestsPerSecond > 0 {
		cfg.RequestsPerSecond = base.RequestsPerSecond
	}
	if base.PageSize > 0 {
		cfg.PageSize = base.PageSize
	}
	return plex.NewClient(cfg, r.logger)
}

// Probe tests the connection of one configured service.
func (r *Runner) Probe(ctx context.Context, service string) (reconcile.ConnectionStatus, error) {
	snap, err := r.opts.Settings.Snapshot(ctx)
	if err != nil {
		return reconcile.ConnectionStatus{}, fmt.Errorf("load settings: %w", err)
	}

	switch service {
	case ServiceRadarr:
		if !snap.Radarr.Connected() {
			return reconcile.ConnectionStatus{Detail: "radarr is not configured"}, nil
		}
		return r.gateway(ServiceRadarr, snap.Radarr.Catalog()).TestConnection(ctx), nil
	case ServiceSonarr:
		if !snap.Sonarr.Connected() {
			return reconcile.ConnectionStatus{Detail: "sonarr is not configured"}, nil
		}
		return r.gateway(ServiceSonarr, snap.Sonarr.Catalog()).TestConnection(ctx), nil
	case ServicePlex:
		return r.plexClient(snap).TestConnection(ctx), nil
	default:
		return reconcile.ConnectionStatus{}, fmt.Errorf("unknown service %q", service)
	}
}
