package reconcile

import (
	"time"

	"media-sync/core/media"
)

// LookupResult is the first match a catalog returned for a search term.
type LookupResult struct {
	// CatalogID is set only when the catalog already tracks the title.
	// Its presence says nothing about whether the file is on disk.
	CatalogID *int

	// Title and Year are the catalog's own values.
	Title string
	Year  int

	// ExternalID is the provider id the catalog keys the title on.
	ExternalID *media.ExternalID

	// Payload is the raw lookup record, sent back unchanged (plus add settings) on Create.
	Payload map[string]any
}

// Tracked reports whether the catalog already has an entry for this title.
func (r LookupResult) Tracked() bool {
	return r.CatalogID != nil
}

// Skip reasons reported in TypeOutcome.Skipped.
const (
	ReasonNotFound         = "not found"
	ReasonAlreadyMonitored = "already monitored"
	ReasonAlreadyInLibrary = "already in library"
)

// Spec is the immutable configuration snapshot for one run.
type Spec struct {
	// Targets maps a media type to its catalog. A missing entry disables that type.
	Targets map[media.Type]Target

	// Trigger records what started the run (e.g., "scheduled", "manual").
	Trigger string
}

// AddedItem is a title newly requested from a catalog.
type AddedItem struct {
	SourceKey string `json:"source_key"`
	Title     string `json:"title"`
	CatalogID int    `json:"catalog_id"`
}

// SkippedItem is a title that needed no request.
type SkippedItem struct {
	SourceKey string `json:"source_key"`
	Title     string `json:"title"`
	Reason    string `json:"reason"`
	CatalogID int    `json:"catalog_id,omitempty"`
}

// ErrorItem is a title whose creation request failed.
type ErrorItem struct {
	SourceKey string `json:"source_key"`
	Title     string `json:"title"`
	Error     string `json:"error"`
}

// TypeOutcome is the per-media-type part of a run report.
// The slices are never nil so they always encode as JSON arrays.
type TypeOutcome struct {
	Enabled bool          `json:"enabled"`
	Added   []AddedItem   `json:"added"`
	Skipped []SkippedItem `json:"skipped"`
	Errors  []ErrorItem   `json:"errors"`
}

func newTypeOutcome(enabled bool) TypeOutcome {
	return TypeOutcome{
		Enabled: enabled,
		Added:   []AddedItem{},
		Skipped: []SkippedItem{},
		Errors:  []ErrorItem{},
	}
}

// SweepSummary counts the fulfillment re-check over persisted entries.
type SweepSummary struct {
	// Checked is the number of requested entries probed.
	Checked int `json:"checked"`
	// Advanced is the number of entries moved to fulfilled.
	Advanced int `json:"advanced"`
	// Stale is the number of requested entries whose media type has no gateway.
	Stale int `json:"stale"`
}

// Outcome is the report of one reconciliation run.
type Outcome struct {
	RunID      string       `json:"run_id"`
	Trigger    string       `json:"trigger"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Movies     TypeOutcome  `json:"movies"`
	Shows      TypeOutcome  `json:"shows"`
	Sweep      SweepSummary `json:"sweep"`
}

// For returns the part of the outcome for media type t. Unknown types map to movies.
func (o *Outcome) For(t media.Type) *TypeOutcome {
	if t == media.TypeShow {
		return &o.Shows
	}
	return &o.Movies
}

// Totals sums the added, skipped and errors lists across media types.
func (o *Outcome) Totals() (added, skipped, errs int) {
	for _, t := range []*TypeOutcome{&o.Movies, &o.Shows} {
		added += len(t.Added)
		skipped += len(t.Skipped)
		errs += len(t.Errors)
	}
	return added, skipped, errs
}

// NewEmptyOutcome returns a report with every list present and empty, used when
// the watchlist could not be fetched.
func NewEmptyOutcome(runID, trigger string, at time.Time) *Outcome {
	return &Outcome{
		RunID:      runID,
		Trigger:    trigger,
		StartedAt:  at,
		FinishedAt: at,
		Movies:     newTypeOutcome(false),
		Shows:      newTypeOutcome(false),
	}
}
