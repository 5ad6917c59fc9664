package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Service runs a Fiber app under a suture supervisor.
type Service struct {
	app    *fiber.App
	cfg    Config
	logger *zap.Logger
}

// NewService wraps app.
func NewService(app *fiber.App, cfg Config, logger *zap.Logger) *Service {
	return &Service{app: app, cfg: cfg, logger: logger}
}

// Serve listens until ctx is cancelled, then shuts the app down gracefully.
func (s *Service) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", zap.String("address", s.cfg.Address()))
		errCh <- s.app.Listen(s.cfg.Address())
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return errors.New("http server stopped unexpectedly")
	case <-ctx.Done():
		s.logger.Info("Shutting down HTTP server")
		if err := s.app.ShutdownWithTimeout(s.cfg.ShutdownTimeout()); err != nil {
			s.logger.Warn("HTTP server shutdown failed", zap.Error(err))
		}
		return ctx.Err()
	}
}

// String names the service in supervisor events.
func (s *Service) String() string {
	return "http-server"
}
