// Package catalog implements reconcile.Gateway for the *arr v3 API.
//
// Radarr manages movies and Sonarr manages shows. Both share one HTTP client that
// authenticates with X-Api-Key, bounds every call with a per-operation timeout and
// runs it through a circuit breaker. Failures are wrapped with ErrNotFound,
// ErrTransport or ErrRejected so callers can classify them with errors.Is.
package catalog
