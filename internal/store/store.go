// Package store persists the whole data set as one snapshot document.
//
// Two backends are provided: a JSON file and a single-row SQLite key-value
// table. Both always read and write the complete snapshot.
package store

import (
	"context"
	"errors"
	"fmt"

	"invoicer/pkg/models"
)

// Backend names accepted by New.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// SnapshotKey is the key the snapshot document is stored under.
const SnapshotKey = "invoiceAppData"

var (
	// ErrNotFound is returned by Load when nothing has been saved yet.
	ErrNotFound = errors.New("no stored snapshot")

	// ErrUnknownBackend is returned by New for an unsupported backend name.
	ErrUnknownBackend = errors.New("unknown store backend")
)

// Gateway loads and saves full snapshots.
type Gateway interface {
	// Load returns the stored snapshot, or ErrNotFound if there is none.
	Load(ctx context.Context) (*models.Snapshot, error)

	// Save overwrites the stored snapshot.
	Save(ctx context.Context, snap *models.Snapshot) error

	// Backend names the storage backend, for logs and errors.
	Backend() string

	// Close releases any resources held by the gateway.
	Close() error
}

// PersistenceError wraps a storage failure with the operation and backend.
type PersistenceError struct {
	Op      string
	Backend string
	Err     error
}

// Error implements the error interface.
func (e *PersistenceError) Error() string {
	return fmt.Sprintf("store: %s failed (backend: %s): %v", e.Op, e.Backend, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func wrap(op, backend string, err error) error {
	if err == nil {
		return nil
	}
	var perr *PersistenceError
	if errors.As(err, &perr) {
		return err
	}
	return &PersistenceError{Op: op, Backend: backend, Err: err}
}

// New opens the gateway for backend at path.
func New(backend, path string) (Gateway, error) {
	const op = "store.New"

	switch backend {
	case BackendFile, "":
		return NewFileStore(path)
	case BackendSQLite:
		return NewSQLiteStore(path)
	default:
		return nil, fmt.Errorf("%s: %w: %q", op, ErrUnknownBackend, backend)
	}
}
