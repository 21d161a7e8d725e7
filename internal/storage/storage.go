package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// BlobStore is the boundary to the external file-storage collaborator.
// Keys are opaque; the caller persists them on the document record.
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader) (int64, error)
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// DiskStore stores blobs under a base directory on local disk. Suitable
// for single-instance deployments and local development.
type DiskStore struct {
	base string
}

// NewDiskStore creates the base directory if needed.
func NewDiskStore(base string) (*DiskStore, error) {
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, errors.Wrap(err, "create storage dir")
	}
	return &DiskStore{base: base}, nil
}

func (s *DiskStore) path(key string) (string, error) {
	// Keys are generated server-side, but reject traversal anyway.
	if strings.Contains(key, "..") || strings.ContainsRune(key, os.PathSeparator) {
		return "", errors.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.base, key), nil
}

// Put writes the blob and returns the number of bytes stored.
func (s *DiskStore) Put(ctx context.Context, key string, r io.Reader) (int64, error) {
	path, err := s.path(key)
	if err != nil {
		return 0, err
	}
	f, err := os.Create(path)
	if err != nil {
		return 0, errors.Wrap(err, "create blob")
	}
	defer f.Close()
	n, err := io.Copy(f, r)
	if err != nil {
		return n, errors.Wrap(err, "write blob")
	}
	return n, nil
}

// Get opens the blob for reading.
func (s *DiskStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	return f, errors.Wrap(err, "open blob")
}

// Delete removes the blob. Missing blobs are not an error.
func (s *DiskStore) Delete(ctx context.Context, key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "remove blob")
	}
	return nil
}
