// Package history records finished sync runs.
package history

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

const defaultLimit = 50

// Store persists job history rows.
type Store struct {
	db *gorm.DB
}

// NewStore creates a history store.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the job_history table.
func (s *Store) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&JobHistory{})
}

// Record inserts a row. A zero timestamp is set to now.
func (s *Store) Record(ctx context.Context, job *JobHistory) error {
	if job.Timestamp.IsZero() {
		job.Timestamp = time.Now().UTC()
	}
	if err := s.db.WithContext(ctx).Create(job).Error; err != nil {
		return fmt.Errorf("record %s job: %w", job.JobType, err)
	}
	return nil
}

// List returns the most recent rows first. A non-positive limit means 50.
// An empty jobType matches every job.
func (s *Store) List(ctx context.Context, jobType string, limit int) ([]JobHistory, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	q := s.db.WithContext(ctx).Order("timestamp DESC").Order("id DESC").Limit(limit)
	if jobType != "" {
		q = q.Where("job_type = ?", jobType)
	}

	jobs := []JobHistory{}
	if err := q.Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("list job history: %w", err)
	}
	return jobs, nil
}
