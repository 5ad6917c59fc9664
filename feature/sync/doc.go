// Package sync exposes sync runs and the sync map on the control plane.
//
// Routes:
//   - POST   /api/sync/run            run a reconciliation now and return its report
//   - GET    /api/sync/map            list sync map entries (filters: media_type, status)
//   - DELETE /api/sync/map/:key       forget one entry
//   - GET    /api/sync/history        recent runs from the job history
//   - GET    /api/sync/reports        archived reports, when archiving is enabled
//   - GET    /api/sync/reports/:id    one archived report
package sync
