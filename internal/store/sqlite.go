package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"invoicer/pkg/models"
)

// Ensure SQLiteStore implements Gateway
var _ Gateway = (*SQLiteStore)(nil)

// schema holds one document per key, mirroring a browser key-value store.
const schema = `
CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at INTEGER NOT NULL
);
`

// SQLiteStore keeps the snapshot document in a SQLite key-value table.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the database at dbPath, creating parent directories
// and the table.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	const op = "store.NewSQLiteStore"

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, wrap(op, BackendSQLite, fmt.Errorf("failed to create database directory: %w", err))
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, wrap(op, BackendSQLite, fmt.Errorf("failed to open database: %w", err))
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, wrap(op, BackendSQLite, fmt.Errorf("failed to create schema: %w", err))
	}

	return &SQLiteStore{db: db}, nil
}

// Backend implements Gateway.
func (s *SQLiteStore) Backend() string {
	return BackendSQLite
}

// Load implements Gateway.
func (s *SQLiteStore) Load(ctx context.Context) (*models.Snapshot, error) {
	const op = "load"

	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", SnapshotKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, wrap(op, BackendSQLite, fmt.Errorf("failed to read snapshot: %w", err))
	}

	snap, err := Decode([]byte(value))
	if err != nil {
		return nil, wrap(op, BackendSQLite, err)
	}
	return snap, nil
}

// Save implements Gateway.
func (s *SQLiteStore) Save(ctx context.Context, snap *models.Snapshot) error {
	const op = "save"

	data, err := Encode(snap)
	if err != nil {
		return wrap(op, BackendSQLite, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		SnapshotKey, string(data), time.Now().Unix(),
	)
	if err != nil {
		return wrap(op, BackendSQLite, fmt.Errorf("failed to write snapshot: %w", err))
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
