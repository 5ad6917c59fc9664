package health

import (
	"context"
	"errors"
	"time"

	"media-sync/core/history"
	"media-sync/core/settings"
	"media-sync/core/storage"
	"media-sync/core/syncmap"
	"media-sync/feature/health/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
)

const pingTimeout = 5 * time.Second

var errNoDatabase = errors.New("database connection is nil")

// Report is the health endpoint payload.
type Report struct {
	Status   string               `json:"status"`
	Database string               `json:"database"`
	Schema   *checks.SchemaReport `json:"schema,omitempty"`
	SyncMap  *syncmap.Stats       `json:"sync_map,omitempty"`
	Archive  string               `json:"archive"`
	Errors   []string             `json:"errors"`
}

// Service handles health checks.
type Service struct {
	db     *gorm.DB
	store  *syncmap.Store
	client storage.Client
	bucket string
	logger *zap.Logger
}

// NewService creates a new health service. client may be nil when archiving is disabled.
func NewService(db *gorm.DB, client storage.Client, bucket string, logger *zap.Logger) *Service {
	var store *syncmap.Store
	if db != nil {
		store = syncmap.NewStore(db)
	}
	return &Service{
		db:     db,
		store:  store,
		client: client,
		bucket: bucket,
		logger: logger,
	}
}

// Check runs every health check.
func (s *Service) Check(ctx context.Context) *Report {
	report := &Report{
		Status:   StatusOK,
		Database: StatusOK,
		Archive:  "disabled",
		Errors:   []string{},
	}
	fail := func(msg string) {
		report.Status = StatusDegraded
		report.Errors = append(report.Errors, msg)
	}

	if err := s.ping(ctx); err != nil {
		report.Database = "unreachable"
		fail(err.Error())
	} else {
		schema, err := checks.CheckSchema(s.db, syncmap.Entry{}, settings.Setting{}, history.JobHistory{})
		switch {
		case err != nil:
			fail(err.Error())
		case !schema.Matched:
			report.Schema = schema
			fail("database schema does not match the models")
		default:
			report.Schema = schema
		}

		if stats, err := s.store.Stats(ctx); err != nil {
			fail(err.Error())
		} else {
			report.SyncMap = &stats
		}
	}

	if s.client != nil {
		if err := checks.CheckArchive(ctx, s.client, s.bucket); err != nil {
			report.Archive = "unreachable"
			fail(err.Error())
		} else {
			report.Archive = StatusOK
		}
	}

	return report
}

func (s *Service) ping(ctx context.Context) error {
	if s.db == nil {
		return errNoDatabase
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return sqlDB.PingContext(ctx)
}
