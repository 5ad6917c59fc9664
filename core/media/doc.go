// Package media holds the vocabulary shared by every stage of a sync run.
//
// A WatchlistItem is what the identity resolver produces from a raw discovery-service
// record and what the reconciliation engine consumes. The package has no dependencies
// so that both sides can import it without cycles.
//
// # Types
//
//   - Type: movie, show or unknown.
//   - Origin: which watchlist feed an entry came from (primary or shared).
//   - ExternalID: a provider-qualified identifier (tmdb, tvdb, imdb).
package media
