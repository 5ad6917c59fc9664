package cmd

import (
	"context"
	"fmt"

	"media-sync/core/config"
	"media-sync/core/database"
	"media-sync/core/history"
	"media-sync/core/logger"
	"media-sync/core/reconcile"
	"media-sync/core/runner"
	"media-sync/core/settings"
	"media-sync/core/storage"
	"media-sync/core/syncmap"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// deps are the collaborators shared by every command.
type deps struct {
	cfg      *config.Config
	log      *zap.Logger
	db       *gorm.DB
	syncMap  *syncmap.Store
	history  *history.Store
	settings *settings.Provider
	// storage and archive are nil when archiving is disabled.
	storage storage.Client
	archive *storage.Archive
	runner  *runner.Runner
}

// bootstrap loads configuration, opens and migrates the database and wires the runner.
func bootstrap(ctx context.Context) (*deps, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	zap.ReplaceGlobals(log)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}
	log.Info("Connected to database", zap.String("driver", cfg.Database.Driver))

	d := &deps{
		cfg:     cfg,
		log:     log,
		db:      db,
		syncMap: syncmap.NewStore(db),
		history: history.NewStore(db),
	}

	settingsStore := settings.NewStore(db)
	for _, m := range []interface{ Migrate(context.Context) error }{d.syncMap, d.history, settingsStore} {
		if err := m.Migrate(ctx); err != nil {
			return nil, err
		}
	}
	d.settings = settings.NewProvider(settingsStore, cfg.Defaults())

	if cfg.Storage.Enabled {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		archive := storage.NewArchive(client, cfg.Storage, log)
		if err := archive.EnsureBucket(ctx); err != nil {
			// The archive is optional; runs still succeed without it.
			log.Warn("Report archive unavailable", zap.Error(err))
		}
		d.storage = client
		d.archive = archive
	}

	d.runner = runner.New(runner.Options{
		Settings:         d.settings,
		Engine:           reconcile.NewEngine(d.syncMap, log),
		History:          d.history,
		Archive:          d.archive,
		MetadataCacheTTL: cfg.Sync.MetadataCacheTTL,
		Plex:             cfg.Sync.PlexOverrides(),
		Logger:           log,
	})
	return d, nil
}

// close releases the database connection.
func (d *deps) close() {
	if sqlDB, err := d.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = d.log.Sync()
}
