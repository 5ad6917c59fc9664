package reconcile

import (
	"context"

	"media-sync/core/media"
)

// Gateway is a capability over one remote media catalog.
// Movies and shows each get their own implementation; the engine selects one by media type.
type Gateway interface {
	// Name returns the catalog name (e.g., "radarr", "sonarr").
	Name() string

	// MediaType returns the media type this catalog manages.
	MediaType() media.Type

	// Accepts reports whether Lookup understands an id-qualified term for this provider.
	Accepts(id media.ExternalID) bool

	// Lookup searches the catalog and returns the first result only.
	// Implementations return an error wrapping ErrNotFound when there are no results
	// and ErrTransport when the request failed.
	Lookup(ctx context.Context, term string) (*LookupResult, error)

	// IsFulfilled reports whether the catalog entry has at least one file on disk.
	// It returns false when the entry cannot be fetched.
	IsFulfilled(ctx context.Context, catalogID int) bool

	// Create adds a previously looked-up title to the catalog, monitored and with an
	// automatic search, and returns the new catalog id.
	Create(ctx context.Context, result LookupResult, dest Destination) (int, error)

	// TestConnection probes reachability and credentials.
	TestConnection(ctx context.Context) ConnectionStatus
}

// Destination is where and at which quality a catalog should acquire new titles.
type Destination struct {
	RootFolder       string `json:"root_folder"`
	QualityProfileID int    `json:"quality_profile_id"`
}

// Target pairs a gateway with its destination settings.
type Target struct {
	Gateway     Gateway
	Destination Destination
}

// ConnectionStatus is the result of a gateway probe.
type ConnectionStatus struct {
	OK      bool   `json:"success"`
	Version string `json:"version,omitempty"`
	Detail  string `json:"message"`
}
