package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
)

// MinIO mirrors the filesystem layout as object keys in a bucket.
type MinIO struct {
	client *minio.Client
	bucket string
}

// NewMinIO creates an object-storage backend.
func NewMinIO(client *minio.Client, bucket string) *MinIO {
	return &MinIO{client: client, bucket: bucket}
}

// Save uploads the file under its layout path.
func (m *MinIO) Save(ctx context.Context, path string, r io.Reader, size int64, contentType string) error {
	_, err := m.client.PutObject(ctx, m.bucket, path, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("upload object: %w", err)
	}
	return nil
}

// Open returns the stored object for reading.
func (m *MinIO) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, path, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object: %w", err)
	}
	return obj, nil
}

// EnsureDir is a no-op: object stores have no directories.
func (m *MinIO) EnsureDir(ctx context.Context, dir string) error {
	return nil
}
