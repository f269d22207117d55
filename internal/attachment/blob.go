package attachment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// BlobStore keeps attachment bytes under opaque keys.
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader) (int64, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// DiskStore is a BlobStore on the local filesystem.
type DiskStore struct {
	root string
}

func NewDiskStore(root string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating attachment directory: %w", err)
	}

	return &DiskStore{root: root}, nil
}

func (d *DiskStore) path(key string) (string, error) {
	if key == "" || key != filepath.Base(key) {
		return "", fmt.Errorf("invalid blob key %q", key)
	}

	return filepath.Join(d.root, key), nil
}

// Put writes r to a temporary file and renames it into place, so a failed upload never leaves
// a partial blob under key.
func (d *DiskStore) Put(_ context.Context, key string, r io.Reader) (int64, error) {
	path, err := d.path(key)
	if err != nil {
		return 0, err
	}

	f, err := os.CreateTemp(d.root, ".upload-*")
	if err != nil {
		return 0, fmt.Errorf("creating file: %w", err)
	}
	defer os.Remove(f.Name())

	n, err := io.Copy(f, r)
	if err != nil {
		f.Close()
		return 0, fmt.Errorf("writing file: %w", err)
	}

	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("closing file: %w", err)
	}

	if err := os.Rename(f.Name(), path); err != nil {
		return 0, fmt.Errorf("storing file: %w", err)
	}

	return n, nil
}

func (d *DiskStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	path, err := d.path(key)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("opening file: %w", err)
	}

	return f, nil
}

func (d *DiskStore) Delete(_ context.Context, key string) error {
	path, err := d.path(key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing file: %w", err)
	}

	return nil
}
