// Package reconcile turns a resolved watchlist into catalog requests.
//
// One run partitions the items by media type and, for each type whose catalog is
// enabled, walks the items in order:
//
//   - the catalog is searched by an external-id term when it accepts that provider,
//     otherwise by "title year"; only the first result is considered
//   - a title the catalog already tracks is recorded in the sync map, as fulfilled
//     when a file is on disk and as requested otherwise, and reported as skipped
//   - an untracked title is created, monitored with an automatic search, and recorded
//     as requested
//   - a failed lookup is reported as "not found"; a failed create is reported as an
//     error and nothing is written
//
// After both batches a sweep re-checks every requested entry and advances those whose
// files have landed. Status never moves back from fulfilled.
//
// # Usage Example
//
//	engine := reconcile.NewEngine(syncmap.NewStore(db), logger)
//	outcome, err := engine.Run(ctx, &reconcile.Spec{
//	    Targets: map[media.Type]reconcile.Target{
//	        media.TypeMovie: {Gateway: radarr, Destination: reconcile.Destination{RootFolder: "/movies", QualityProfileID: 1}},
//	    },
//	    Trigger: "manual",
//	}, items)
package reconcile
