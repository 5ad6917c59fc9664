// Package runner wires one sync run end to end.
//
// A run takes a settings snapshot, enumerates the watchlist, resolves identities,
// reconciles them against the enabled catalogs, records the result in the job
// history and, when configured, archives the full report in object storage.
// The same Runner backs the scheduler, the manual trigger and the CLI.
package runner
