// Package syncmap persists the sync map: the dedup table linking a watchlist entry's
// source key to the catalog entry it resolved to, plus its lifecycle status.
//
// # Lifecycle
//
// An entry is created the first time an item resolves to a catalog id and starts as
// requested. It advances to fulfilled once the catalog reports the file on disk and
// never moves back. Re-resolving the same source key to another catalog id overwrites
// the id in place. Entries are only deleted by an administrator.
//
// Every write is a single-row operation; nothing holds a transaction open across an
// upstream call.
package syncmap
