package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ErrReportNotFound is returned by Archive.Get for an unknown run id.
var ErrReportNotFound = errors.New("report not found")

// ReportInfo describes one archived report.
type ReportInfo struct {
	RunID        string    `json:"run_id"`
	Object       string    `json:"object"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// Archive stores run reports as JSON objects named "<prefix>/<run id>.json".
type Archive struct {
	client Client
	bucket string
	prefix string
	retain int
	logger *zap.Logger
}

// NewArchive creates an archive over client.
func NewArchive(client Client, cfg Config, logger *zap.Logger) *Archive {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Archive{
		client: client,
		bucket: cfg.Bucket,
		prefix: strings.Trim(cfg.Prefix, "/"),
		retain: cfg.Retain,
		logger: logger,
	}
}

// EnsureBucket creates the bucket when it does not exist yet.
func (a *Archive) EnsureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", a.bucket, err)
	}
	if exists {
		return nil
	}
	if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket %s: %w", a.bucket, err)
	}
	a.logger.Info("Created report bucket", zap.String("bucket", a.bucket))
	return nil
}

func (a *Archive) objectName(runID string) string {
	return path.Join(a.prefix, runID+".json")
}

// Put uploads report under runID and returns the object name.
func (a *Archive) Put(ctx context.Context, runID string, report any) (string, error) {
	data, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}

	name := a.objectName(runID)
	_, err = a.client.PutObject(ctx, a.bucket, name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("upload report %s: %w", name, err)
	}
	return name, nil
}

// Get downloads the report of runID into out.
func (a *Archive) Get(ctx context.Context, runID string, out any) error {
	name := a.objectName(runID)
	obj, err := a.client.GetObject(ctx, a.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return ErrReportNotFound
		}
		return fmt.Errorf("get report %s: %w", name, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if isNoSuchKey(err) {
			return ErrReportNotFound
		}
		return fmt.Errorf("read report %s: %w", name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode report %s: %w", name, err)
	}
	return nil
}

// List returns archived reports, newest first. A positive limit caps the result.
func (a *Archive) List(ctx context.Context, limit int) ([]ReportInfo, error) {
	objects, err := a.list(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(objects) > limit {
		objects = objects[:limit]
	}

	reports := make([]ReportInfo, 0, len(objects))
	for _, obj := range objects {
		reports = append(reports, ReportInfo{
			RunID:        strings.TrimSuffix(path.Base(obj.Key), ".json"),
			Object:       obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified,
		})
	}
	return reports, nil
}

// Prune removes all but the newest Retain reports and returns how many were removed.
func (a *Archive) Prune(ctx context.Context) (int, error) {
	if a.retain <= 0 {
		return 0, nil
	}
	objects, err := a.list(ctx)
	if err != nil {
		return 0, err
	}
	if len(objects) <= a.retain {
		return 0, nil
	}
	stale := objects[a.retain:]

	objectsCh := make(chan minio.ObjectInfo, len(stale))
	for _, obj := range stale {
		objectsCh <- obj
	}
	close(objectsCh)

	var errs []error
	for rErr := range a.client.RemoveObjects(ctx, a.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		errs = append(errs, fmt.Errorf("remove %s: %w", rErr.ObjectName, rErr.Err))
	}
	if len(errs) > 0 {
		return len(stale) - len(errs), errors.Join(errs...)
	}

	a.logger.Debug("Pruned archived reports", zap.Int("removed", len(stale)))
	return len(stale), nil
}

// list returns the report objects sorted newest first.
func (a *Archive) list(ctx context.Context) ([]minio.ObjectInfo, error) {
	prefix := a.prefix
	if prefix != "" {
		prefix += "/"
	}

	var objects []minio.ObjectInfo
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list reports: %w", obj.Err)
		}
		if !strings.HasSuffix(obj.Key, ".json") {
			continue
		}
		objects = append(objects, obj)
	}

	sort.SliceStable(objects, func(i, j int) bool {
		return objects[i].LastModified.After(objects[j].LastModified)
	})
	return objects, nil
}

func isNoSuchKey(err error) bool {
	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}
