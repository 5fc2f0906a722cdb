package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matzehuels/kintree/pkg/errors"
)

// Backend stores opaque blobs by key.
type Backend interface {
	// Name identifies the backend in logs ("file", "redis", ...).
	Name() string

	// Get returns the blob stored under key. A missing key is reported as
	// found=false with a nil error.
	Get(ctx context.Context, key string) (data []byte, found bool, err error)

	// Set stores data under key, replacing any previous value.
	Set(ctx context.Context, key string, data []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the backend.
	Close() error
}

// Backend names accepted by [Open].
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendSQLite = "sqlite"
)

// DefaultKey is the key the tree is stored under unless configured.
const DefaultKey = "kintree.members"

// Config selects and configures a backend.
type Config struct {
	Backend string       `toml:"backend"`
	Key     string       `toml:"key"`
	Dir     string       `toml:"dir"`
	Redis   RedisConfig  `toml:"redis"`
	Mongo   MongoConfig  `toml:"mongo"`
	SQLite  SQLiteConfig `toml:"sqlite"`
}

// DefaultConfig returns a file backend under the user's data directory.
func DefaultConfig() Config {
	return Config{
		Backend: BackendFile,
		Key:     DefaultKey,
		Redis:   RedisConfig{Addr: "localhost:6379"},
		Mongo:   MongoConfig{URI: "mongodb://localhost:27017", Database: "kintree", Collection: "blobs"},
	}
}

// Open creates the backend named by cfg.Backend.
func Open(ctx context.Context, cfg Config) (Backend, error) {
	switch cfg.Backend {
	case BackendMemory:
		return NewMemoryBackend(), nil
	case "", BackendFile:
		dir := cfg.Dir
		if dir == "" {
			d, err := DefaultDir()
			if err != nil {
				return nil, err
			}
			dir = d
		}
		return NewFileBackend(dir)
	case BackendRedis:
		return NewRedisBackend(ctx, cfg.Redis)
	case BackendMongo:
		return NewMongoBackend(ctx, cfg.Mongo)
	case BackendSQLite:
		sc := cfg.SQLite
		if sc.Path == "" {
			dir, err := DefaultDir()
			if err != nil {
				return nil, err
			}
			sc.Path = filepath.Join(dir, "kintree.db")
		}
		return NewSQLiteBackend(ctx, sc)
	}
	return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown storage backend %q (want memory, file, redis, mongo or sqlite)", cfg.Backend)
}

// DefaultDir returns the data directory using the XDG standard
// (~/.local/share/kintree/).
func DefaultDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, "kintree"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".local", "share", "kintree"), nil
}
