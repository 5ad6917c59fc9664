// Package health serves GET /api/health.
//
// The report covers database reachability, schema drift of the tables the
// service owns, sync map counts, and the report archive bucket when archiving
// is enabled. The endpoint answers 503 when any check fails.
package health
