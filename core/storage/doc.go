// Package storage archives run reports in S3-compatible object storage.
//
// It wraps the MinIO Go client behind the Client interface so storage interactions
// can be mocked in tests (see core/storage/mocks). Archive builds on it to write one
// JSON object per reconciliation run, list and fetch them back, and prune old ones.
//
// # Usage
//
//	client, err := storage.NewClient(cfg)
//	archive := storage.NewArchive(client, cfg, logger)
//	if err := archive.EnsureBucket(ctx); err != nil { ... }
//	name, err := archive.Put(ctx, outcome.RunID, outcome)
package storage
