package storage

import (
	"context"
	"errors"
	"io"
)

// ErrDepartmentNotFound is returned when an uploader has no department
// mapping and therefore no place in the storage layout.
var ErrDepartmentNotFound = errors.New("uploader has no department")

// Backend writes and reads files at layout-derived paths. Save must create
// any missing directory levels.
type Backend interface {
	Save(ctx context.Context, path string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	EnsureDir(ctx context.Context, dir string) error
}
