package syncmap

import (
	"time"

	"media-sync/core/media"
)

// Status is the lifecycle state of a sync map entry.
type Status string

const (
	StatusRequested Status = "requested"
	StatusFulfilled Status = "fulfilled"
)

// Entry links one watchlist entry to one catalog entry.
type Entry struct {
	SourceKey string     `gorm:"column:source_key;primaryKey;size:191" json:"source_key"`
	CatalogID int        `gorm:"column:catalog_id;index" json:"catalog_id"`
	MediaType media.Type `gorm:"column:media_type;size:16" json:"media_type"`
	Status    Status     `gorm:"column:status;size:16;index" json:"status"`
	Title     string     `gorm:"column:title" json:"title"`
	CreatedAt time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides the table name.
func (Entry) TableName() string {
	return "sync_map"
}

// Columns lists the columns the store relies on.
var Columns = []string{"source_key", "catalog_id", "media_type", "status", "title", "created_at", "updated_at"}

// Filter narrows List results. Zero values match everything.
type Filter struct {
	MediaType media.Type
	Status    Status
}

// Stats counts entries per status.
type Stats struct {
	Total     int64 `json:"total"`
	Requested int64 `json:"requested"`
	Fulfilled int64 `json:"fulfilled"`
}
