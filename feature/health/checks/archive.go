package checks

import (
	"context"
	"fmt"

	"media-sync/core/storage"
)

// CheckArchive verifies that the report bucket is reachable and exists.
func CheckArchive(ctx context.Context, client storage.Client, bucket string) error {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return fmt.Errorf("bucket %s does not exist", bucket)
	}
	return nil
}
