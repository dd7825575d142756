package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Local stores files on the shared filesystem below a media root.
type Local struct {
	root string
}

// NewLocal creates a filesystem backend rooted at mediaRoot.
func NewLocal(mediaRoot string) *Local {
	return &Local{root: mediaRoot}
}

// Save writes the file, creating missing directories.
func (l *Local) Save(ctx context.Context, path string, r io.Reader, size int64, contentType string) error {
	full := filepath.Join(l.root, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}
	f, err := os.Create(full)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// Open returns the stored file for reading.
func (l *Local) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	full := filepath.Join(l.root, filepath.FromSlash(path))
	f, err := os.Open(full)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	return f, nil
}

// EnsureDir creates the directory if missing. Safe to call repeatedly.
func (l *Local) EnsureDir(ctx context.Context, dir string) error {
	full := filepath.Join(l.root, filepath.FromSlash(dir))
	if err := os.MkdirAll(full, 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	return nil
}
