package reconcile

import "errors"

// Gateway errors. Implementations wrap one of these so the engine can classify
// failures with errors.Is while keeping the upstream message.
var (
	// ErrNotFound means the catalog lookup returned no results.
	ErrNotFound = errors.New("not found")
	// ErrTransport covers network failures, timeouts, auth errors and malformed responses.
	ErrTransport = errors.New("transport failure")
	// ErrRejected means the catalog answered but refused the request, e.g. a validation error.
	ErrRejected = errors.New("rejected by catalog")
)
