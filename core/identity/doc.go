// Package identity turns raw discovery-service records into canonical watchlist items.
//
// Two record shapes arrive from the watchlist source: ListingRecord, produced by the
// structured watchlist listing, and FeedRecord, produced by RSS watchlist feeds. Feed
// entries carry little more than a title, a link and a guid, so the Resolver enriches
// them with canonical metadata fetched from the discovery service.
//
// # Precedence
//
// When hints disagree the resolver applies, highest first:
//
//  1. canonical metadata returned by the MetadataSource
//  2. the hint implied by the identifier scheme (tmdb => movie, tvdb => show)
//  3. keyword inference over the feed category and link
//  4. movie
//
// Resolution never fails. Upstream errors degrade to whatever the record itself carries.
package identity
