package settings

import (
	"context"
	"fmt"
	"strings"

	"media-sync/core/catalog"
	"media-sync/core/plex"
	"media-sync/core/reconcile"
	"media-sync/core/runner"
	appsettings "media-sync/core/settings"

	"go.uber.org/zap"
)

// Prober tests connections using the stored settings.
type Prober interface {
	Probe(ctx context.Context, service string) (reconcile.ConnectionStatus, error)
}

// TestRequest selects the service to probe. When URL or APIKey is set the
// given credentials are tested instead of the stored ones.
type TestRequest struct {
	Service     string `json:"service"`
	ServiceType string `json:"service_type"`
	URL         string `json:"url"`
	APIKey      string `json:"api_key"`
}

func (r TestRequest) name() string {
	if r.Service != "" {
		return strings.ToLower(strings.TrimSpace(r.Service))
	}
	return strings.ToLower(strings.TrimSpace(r.ServiceType))
}

// Service handles settings operations.
type Service struct {
	provider *appsettings.Provider
	prober   Prober
	plex     plex.Config
	logger   *zap.Logger
}

// NewService creates a new settings service. plexCfg supplies the discovery
// endpoints for ad hoc token probes.
func NewService(provider *appsettings.Provider, prober Prober, plexCfg plex.Config, logger *zap.Logger) *Service {
	return &Service{
		provider: provider,
		prober:   prober,
		plex:     plexCfg,
		logger:   logger,
	}
}

// Get returns the effective settings.
func (s *Service) Get(ctx context.Context) (*appsettings.Snapshot, error) {
	return s.provider.Snapshot(ctx)
}

// Save replaces the stored settings. Runs started afterwards see the new values.
func (s *Service) Save(ctx context.Context, snap appsettings.Snapshot) error {
	if err := snap.Radarr.Validate(runner.ServiceRadarr); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalid, err)
	}
	if err := snap.Sonarr.Validate(runner.ServiceSonarr); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalid, err)
	}
	return s.provider.Save(ctx, snap)
}

// Test probes one service.
func (s *Service) Test(ctx context.Context, req TestRequest) (reconcile.ConnectionStatus, error) {
	name := req.name()
	switch name {
	case runner.ServiceRadarr, runner.ServiceSonarr, runner.ServicePlex:
	default:
		return reconcile.ConnectionStatus{}, fmt.Errorf("%w: unknown service %q", ErrInvalid, name)
	}

	if req.URL == "" && req.APIKey == "" {
		return s.prober.Probe(ctx, name)
	}

	switch name {
	case runner.ServiceRadarr:
		return catalog.NewRadarr(catalog.Config{URL: req.URL, APIKey: req.APIKey}, s.logger).TestConnection(ctx), nil
	case runner.ServiceSonarr:
		return catalog.NewSonarr(catalog.Config{URL: req.URL, APIKey: req.APIKey}, s.logger).TestConnection(ctx), nil
	default:
		cfg := s.plex
		cfg.Token = req.APIKey
		return plex.NewClient(cfg, s.logger).TestConnection(ctx), nil
	}
}
