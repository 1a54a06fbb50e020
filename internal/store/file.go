package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"invoicer/pkg/models"
)

// Ensure FileStore implements Gateway
var _ Gateway = (*FileStore)(nil)

// FileStore keeps the snapshot in a single JSON file.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore at path, creating parent directories.
func NewFileStore(path string) (*FileStore, error) {
	const op = "store.NewFileStore"

	if path == "" {
		return nil, fmt.Errorf("%s: empty path", op)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, wrap(op, BackendFile, fmt.Errorf("failed to create data directory: %w", err))
	}
	return &FileStore{path: path}, nil
}

// Backend implements Gateway.
func (s *FileStore) Backend() string {
	return BackendFile
}

// Load implements Gateway.
func (s *FileStore) Load(ctx context.Context) (*models.Snapshot, error) {
	const op = "load"

	if err := ctx.Err(); err != nil {
		return nil, wrap(op, BackendFile, err)
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, wrap(op, BackendFile, err)
	}

	snap, err := Decode(data)
	if err != nil {
		return nil, wrap(op, BackendFile, err)
	}
	return snap, nil
}

// Save implements Gateway. The file is replaced atomically.
func (s *FileStore) Save(ctx context.Context, snap *models.Snapshot) error {
	const op = "save"

	if err := ctx.Err(); err != nil {
		return wrap(op, BackendFile, err)
	}

	data, err := Encode(snap)
	if err != nil {
		return wrap(op, BackendFile, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".invoicer-*.json")
	if err != nil {
		return wrap(op, BackendFile, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return wrap(op, BackendFile, err)
	}
	if err := tmp.Close(); err != nil {
		return wrap(op, BackendFile, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return wrap(op, BackendFile, err)
	}
	return nil
}

// Close implements Gateway.
func (s *FileStore) Close() error {
	return nil
}
