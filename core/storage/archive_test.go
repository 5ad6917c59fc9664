package storage_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"media-sync/core/storage"
	"media-sync/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var archiveCfg = storage.Config{Bucket: "media-sync", Prefix: "/reports/", Retain: 2}

func objectsChan(objs ...minio.ObjectInfo) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(objs))
	for _, o := range objs {
		ch <- o
	}
	close(ch)
	return ch
}

func TestArchive_EnsureBucket(t *testing.T) {
	ctx := context.Background()

	t.Run("Exists", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "media-sync").Return(true, nil)

		require.NoError(t, storage.NewArchive(client, archiveCfg, nil).EnsureBucket(ctx))
		client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Creates", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "media-sync").Return(false, nil)
		client.On("MakeBucket", ctx, "media-sync", minio.MakeBucketOptions{}).Return(nil)

		require.NoError(t, storage.NewArchive(client, archiveCfg, nil).EnsureBucket(ctx))
		client.AssertExpectations(t)
	})

	t.Run("Error", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "media-sync").Return(false, errors.New("access denied"))

		err := storage.NewArchive(client, archiveCfg, nil).EnsureBucket(ctx)
		assert.ErrorContains(t, err, "access denied")
	})
}

func TestArchive_PutAndGet(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)

	var uploaded string
	client.On("PutObject", ctx, "media-sync", "reports/run-1.json", mock.Anything, mock.AnythingOfType("int64"), mock.Anything).
		Run(func(args mock.Arguments) {
			data, _ := io.ReadAll(args.Get(3).(io.Reader))
			uploaded = string(data)
		}).
		Return(minio.UploadInfo{}, nil)

	archive := storage.NewArchive(client, archiveCfg, nil)
	name, err := archive.Put(ctx, "run-1", map[string]int{"added": 2})
	require.NoError(t, err)
	assert.Equal(t, "reports/run-1.json", name)
	assert.JSONEq(t, `{"added":2}`, uploaded)

	client.On("GetObject", ctx, "media-sync", "reports/run-1.json", minio.GetObjectOptions{}).
		Return(io.NopCloser(strings.NewReader(uploaded)), nil)

	var report map[string]int
	require.NoError(t, archive.Get(ctx, "run-1", &report))
	assert.Equal(t, 2, report["added"])
}

func TestArchive_ListAndPrune(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	objs := []minio.ObjectInfo{
		{Key: "reports/old.json", LastModified: base},
		{Key: "reports/newest.json", LastModified: base.Add(2 * time.Hour)},
		{Key: "reports/middle.json", LastModified: base.Add(time.Hour)},
		{Key: "reports/notes.txt", LastModified: base.Add(3 * time.Hour)},
	}

	client := new(mocks.Client)
	client.On("ListObjects", ctx, "media-sync", minio.ListObjectsOptions{Prefix: "reports/", Recursive: true}).
		Return(objectsChan(objs...)).Once()

	archive := storage.NewArchive(client, archiveCfg, nil)
	reports, err := archive.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, reports, 3)
	assert.Equal(t, "newest", reports[0].RunID)
	assert.Equal(t, "old", reports[2].RunID)

	client.On("ListObjects", ctx, "media-sync", mock.Anything).Return(objectsChan(objs...)).Once()
	var removed []string
	client.On("RemoveObjects", ctx, "media-sync", mock.Anything, minio.RemoveObjectsOptions{}).
		Run(func(args mock.Arguments) {
			for obj := range args.Get(2).(<-chan minio.ObjectInfo) {
				removed = append(removed, obj.Key)
			}
		}).
		Return(nil)

	n, err := archive.Prune(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"reports/old.json"}, removed)
}

func TestArchive_PruneDisabled(t *testing.T) {
	client := new(mocks.Client)
	n, err := storage.NewArchive(client, storage.Config{Bucket: "b"}, nil).Prune(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	client.AssertNotCalled(t, "ListObjects", mock.Anything, mock.Anything, mock.Anything)
}
