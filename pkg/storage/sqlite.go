package storage

import (
	"context"
	"database/sql"
	stderrors "errors"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/matzehuels/kintree/pkg/errors"
)

// SQLiteConfig configures [SQLiteBackend].
type SQLiteConfig struct {
	// Path is the database file. Empty means kintree.db in the data dir.
	Path string `toml:"path"`
}

// SQLiteBackend stores blobs as rows of a single table.
type SQLiteBackend struct {
	db *sql.DB
}

// NewSQLiteBackend opens (or creates) the database at cfg.Path.
func NewSQLiteBackend(ctx context.Context, cfg SQLiteConfig) (*SQLiteBackend, error) {
	if cfg.Path == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "sqlite path is required")
	}
	if cfg.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o750); err != nil {
			return nil, errors.Wrap(errors.ErrCodeStorageBackend, err, "create dirs for %s", cfg.Path)
		}
	}
	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorageBackend, err, "open sqlite")
	}
	// A single connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS blobs (
		key TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		updated_at TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, errors.Wrap(errors.ErrCodeStorageBackend, err, "create blobs table")
	}
	return &SQLiteBackend{db: db}, nil
}

func (b *SQLiteBackend) Name() string { return BackendSQLite }

func (b *SQLiteBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	err := b.db.QueryRowContext(ctx, `SELECT data FROM blobs WHERE key = ?`, key).Scan(&data)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeStorage, err, "select %s", key)
	}
	return data, true, nil
}

func (b *SQLiteBackend) Set(ctx context.Context, key string, data []byte) error {
	_, err := b.db.ExecContext(ctx, `INSERT INTO blobs (key, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		key, data, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "upsert %s", key)
	}
	return nil
}

func (b *SQLiteBackend) Delete(ctx context.Context, key string) error {
	if _, err := b.db.ExecContext(ctx, `DELETE FROM blobs WHERE key = ?`, key); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "delete %s", key)
	}
	return nil
}

func (b *SQLiteBackend) Close() error { return b.db.Close() }

var _ Backend = (*SQLiteBackend)(nil)
