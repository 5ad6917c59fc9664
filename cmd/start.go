package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"media-sync/core/loader"
	"media-sync/core/middleware"
	"media-sync/core/middleware/auth"
	"media-sync/core/middleware/rayid"
	"media-sync/core/scheduler"
	"media-sync/core/server"
	"media-sync/feature/health"
	"media-sync/feature/settings"
	"media-sync/feature/sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "media-sync/docs/swagger"
)

// @title Media Sync API
// @version 1.0
// @description Reconciles a Plex watchlist into Radarr and Sonarr.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the control plane and the sync scheduler",
	Long:  `Starts the HTTP control plane and the periodic sync trigger under one supervisor.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		d, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer d.close()
		logg := d.log

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We log our own startup message
		})

		// RayID first so every later log line carries it
		app.Use(rayid.New())
		app.Use(middleware.RequestLogger(logg))

		// Swagger and health stay public
		app.Get("/swagger/*", swagger.HandlerDefault)
		if d.cfg.Server.AuthEnabled() {
			app.Use(auth.New(auth.Config{
				ApiKey: d.cfg.Server.ApiKey,
				Public: []string{"/api/health", "/swagger"},
			}))
		} else {
			logg.Warn("Server API key is empty, the control plane is unauthenticated")
		}

		mgr := loader.NewManager()
		mgr.Register(health.NewFeature(health.NewService(d.db, d.storage, d.cfg.Storage.Bucket, logg)))
		mgr.Register(settings.NewFeature(settings.NewService(d.settings, d.runner, d.cfg.Sync.PlexOverrides(), logg)))
		mgr.Register(sync.NewFeature(sync.NewService(d.runner, d.syncMap, d.history, d.archive, logg)))

		loaded, err := mgr.LoadAll(app)
		if err != nil {
			return fmt.Errorf("failed to load features: %w", err)
		}
		logg.Info("Features loaded", zap.Strings("features", loaded))

		sup := scheduler.NewSupervisor("media-sync", logg)
		sup.Add(server.NewService(app, d.cfg.Server, logg))
		if d.cfg.Scheduler.Enabled {
			sup.Add(scheduler.NewService(d.runner, d.cfg.Scheduler, logg))
		} else {
			logg.Info("Scheduler disabled, runs start only from the control plane")
		}

		err = sup.Serve(ctx)
		if unstopped, _ := sup.UnstoppedServiceReport(); len(unstopped) > 0 {
			for _, svc := range unstopped {
				logg.Warn("Service failed to stop", zap.String("service", svc.Name))
			}
		}
		if errors.Is(err, context.Canceled) {
			logg.Info("Shutdown complete")
			return nil
		}
		return err
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
