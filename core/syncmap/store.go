package syncmap

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when no entry exists for a source key.
var ErrNotFound = errors.New("sync map entry not found")

// Store is the GORM-backed sync map.
type Store struct {
	db *gorm.DB
}

// NewStore creates a store over db.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the sync_map table.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&Entry{}); err != nil {
		return fmt.Errorf("failed to migrate sync_map: %w", err)
	}
	return nil
}

// Upsert records that e.SourceKey resolved to e.CatalogID.
// A new entry takes e.Status (requested when blank). An existing entry gets the new
// catalog id, media type and title, and its status only moves forward.
func (s *Store) Upsert(ctx context.Context, e Entry) (Entry, error) {
	if e.SourceKey == "" {
		return Entry{}, errors.New("sync map entry requires a source key")
	}
	if e.Status == "" {
		e.Status = StatusRequested
	}

	var saved Entry
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing Entry
		err := tx.Where("source_key = ?", e.SourceKey).Take(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			// A concurrent run may insert the same key first; keep its status and take our ids.
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "source_key"}},
				DoUpdates: clause.AssignmentColumns([]string{"catalog_id", "media_type", "title", "updated_at"}),
			}).Create(&e).Error; err != nil {
				return err
			}
			return tx.Where("source_key = ?", e.SourceKey).Take(&saved).Error
		case err != nil:
			return err
		}

		status := e.Status
		if existing.Status == StatusFulfilled {
			status = StatusFulfilled
		}
		if err := tx.Model(&existing).Updates(map[string]interface{}{
			"catalog_id": e.CatalogID,
			"media_type": e.MediaType,
			"title":      e.Title,
			"status":     status,
		}).Error; err != nil {
			return err
		}
		existing.CatalogID = e.CatalogID
		existing.MediaType = e.MediaType
		existing.Title = e.Title
		existing.Status = status
		saved = existing
		return nil
	})
	if err != nil {
		return Entry{}, fmt.Errorf("failed to upsert sync map entry %s: %w", e.SourceKey, err)
	}
	return saved, nil
}

// MarkFulfilled advances a requested entry to fulfilled.
// It reports whether a row changed; fulfilled or missing entries are left alone.
func (s *Store) MarkFulfilled(ctx context.Context, sourceKey string) (bool, error) {
	result := s.db.WithContext(ctx).
		Model(&Entry{}).
		Where("source_key = ? AND status = ?", sourceKey, StatusRequested).
		Update("status", StatusFulfilled)
	if result.Error != nil {
		return false, fmt.Errorf("failed to mark %s fulfilled: %w", sourceKey, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// ListPending returns requested entries that point at a catalog entry.
func (s *Store) ListPending(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	err := s.db.WithContext(ctx).
		Where("catalog_id <> 0 AND status = ?", StatusRequested).
		Order("source_key").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending sync map entries: %w", err)
	}
	return entries, nil
}

// List returns entries matching filter ordered by source key.
func (s *Store) List(ctx context.Context, filter Filter) ([]Entry, error) {
	q := s.db.WithContext(ctx).Model(&Entry{})
	if filter.MediaType != "" {
		q = q.Where("media_type = ?", filter.MediaType)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	entries := []Entry{}
	if err := q.Order("source_key").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list sync map entries: %w", err)
	}
	return entries, nil
}

// Get returns the entry for sourceKey or ErrNotFound.
func (s *Store) Get(ctx context.Context, sourceKey string) (*Entry, error) {
	var e Entry
	err := s.db.WithContext(ctx).Where("source_key = ?", sourceKey).Take(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sync map entry %s: %w", sourceKey, err)
	}
	return &e, nil
}

// Delete removes the entry for sourceKey. Only administrators call this.
func (s *Store) Delete(ctx context.Context, sourceKey string) error {
	result := s.db.WithContext(ctx).Where("source_key = ?", sourceKey).Delete(&Entry{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete sync map entry %s: %w", sourceKey, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Stats counts entries per status.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	type row struct {
		Status Status
		Count  int64
	}
	var rows []row
	err := s.db.WithContext(ctx).
		Model(&Entry{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return Stats{}, fmt.Errorf("failed to count sync map entries: %w", err)
	}

	var st Stats
	for _, r := range rows {
		st.Total += r.Count
		switch r.Status {
		case StatusRequested:
			st.Requested = r.Count
		case StatusFulfilled:
			st.Fulfilled = r.Count
		}
	}
	return st, nil
}
