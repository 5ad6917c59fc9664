// Package plex reads the user's watchlist from the Plex discovery service.
//
// Two modes are supported. When RSS feed URLs are configured, the personal feed and
// the friends feed are fetched and merged, personal first. Otherwise the structured
// watchlist listing is paged through with the account token. The same client serves
// canonical metadata by key for identity enrichment and the token probe.
//
// Every request is paced by a shared rate limiter.
package plex
