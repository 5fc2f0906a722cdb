package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/kintree/pkg/errors"
)

// FileBackend stores each key as a JSON file in a directory.
type FileBackend struct {
	mu  sync.RWMutex
	dir string
}

// blobEntry wraps stored data with metadata.
type blobEntry struct {
	Data      json.RawMessage `json:"data"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewFileBackend creates a file backend rooted at dir.
// The directory will be created if it doesn't exist.
func NewFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorageBackend, err, "create data dir %s", dir)
	}
	return &FileBackend{dir: dir}, nil
}

func (b *FileBackend) Name() string { return BackendFile }

// Dir returns the directory blobs are written to.
func (b *FileBackend) Dir() string { return b.dir }

// Path returns the file a key is stored in.
func (b *FileBackend) Path(key string) string {
	return filepath.Join(b.dir, key+".json")
}

func (b *FileBackend) Get(_ context.Context, key string) ([]byte, bool, error) {
	if err := errors.ValidateKey(key); err != nil {
		return nil, false, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	raw, err := os.ReadFile(b.Path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read blob file: %w", err)
	}

	var entry blobEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse blob file %s", b.Path(key))
	}
	return entry.Data, true, nil
}

func (b *FileBackend) Set(_ context.Context, key string, data []byte) error {
	if err := errors.ValidateKey(key); err != nil {
		return err
	}
	if !json.Valid(data) {
		return errors.New(errors.ErrCodeInvalidFormat, "blob for %s is not valid JSON", key)
	}
	raw, err := json.Marshal(blobEntry{Data: data, UpdatedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("marshal blob: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	// Write to a temp file and rename so watchers never see a partial blob.
	tmp, err := os.CreateTemp(b.dir, "."+key+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("write blob file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write blob file: %w", err)
	}
	if err := os.Rename(tmp.Name(), b.Path(key)); err != nil {
		return fmt.Errorf("write blob file: %w", err)
	}
	return nil
}

func (b *FileBackend) Delete(_ context.Context, key string) error {
	if err := errors.ValidateKey(key); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := os.Remove(b.Path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove blob file: %w", err)
	}
	return nil
}

func (b *FileBackend) Close() error { return nil }

// Watch calls onChange whenever the file backing key is written, replaced
// or removed by anyone, including this process. It blocks until ctx is
// cancelled and returns ctx.Err().
func (b *FileBackend) Watch(ctx context.Context, key string, onChange func()) error {
	if err := errors.ValidateKey(key); err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorageBackend, err, "create watcher")
	}
	defer watcher.Close()

	// Watch the directory, not the file: Set replaces the file by rename.
	if err := watcher.Add(b.dir); err != nil {
		return errors.Wrap(errors.ErrCodeStorageBackend, err, "watch %s", b.dir)
	}
	target := filepath.Clean(b.Path(key))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			onChange()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return errors.Wrap(errors.ErrCodeStorageBackend, err, "watch %s", b.dir)
		}
	}
}

var _ Backend = (*FileBackend)(nil)
