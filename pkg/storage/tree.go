package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/family"
	"github.com/matzehuels/kintree/pkg/observability"
)

// TreeStore reads and writes the whole family tree as one blob.
type TreeStore struct {
	backend Backend
	key     string
	logger  *log.Logger
}

// NewTreeStore wraps backend. An empty key means [DefaultKey]; a nil logger
// discards load warnings.
func NewTreeStore(backend Backend, key string, logger *log.Logger) *TreeStore {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &TreeStore{backend: backend, key: key, logger: logger}
}

// Key returns the blob key.
func (s *TreeStore) Key() string { return s.key }

// Backend returns the underlying backend.
func (s *TreeStore) Backend() Backend { return s.backend }

// Load returns the stored tree. It never fails: a missing key, an
// unparseable blob or a backend error yields family.Seed.
func (s *TreeStore) Load(ctx context.Context) family.TreeData {
	start := time.Now()
	data, found, err := s.backend.Get(ctx, s.key)
	seeded := true
	defer func() {
		observability.Store().OnLoad(ctx, s.backend.Name(), s.key, len(data), seeded, time.Since(start), err)
	}()

	switch {
	case err != nil:
		s.logger.Warn("read failed, using seed data", "backend", s.backend.Name(), "key", s.key, "err", err)
		return family.Seed()
	case !found:
		s.logger.Debug("no stored tree, using seed data", "backend", s.backend.Name(), "key", s.key)
		return family.Seed()
	}

	td, derr := Decode(data)
	if derr != nil {
		err = derr
		s.logger.Warn("stored tree is corrupt, using seed data", "key", s.key, "err", derr)
		return family.Seed()
	}
	seeded = false
	return td
}

// Save writes td under the store key, replacing any previous tree.
func (s *TreeStore) Save(ctx context.Context, td family.TreeData) (err error) {
	start := time.Now()
	var data []byte
	defer func() {
		observability.Store().OnSave(ctx, s.backend.Name(), s.key, len(data), time.Since(start), err)
	}()

	data, err = Encode(td)
	if err != nil {
		return err
	}
	if err = s.backend.Set(ctx, s.key, data); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "save tree to %s", s.backend.Name())
	}
	return nil
}

// Reset removes the stored tree so the next Load returns the seed.
func (s *TreeStore) Reset(ctx context.Context) error {
	if err := s.backend.Delete(ctx, s.key); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "reset tree in %s", s.backend.Name())
	}
	return nil
}

// Encode serializes td as the stored blob.
func Encode(td family.TreeData) ([]byte, error) {
	if td.Members == nil {
		td.Members = []family.Member{}
	}
	data, err := json.Marshal(td)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode tree")
	}
	return data, nil
}

// Decode parses a stored blob. Both the {"members": [...]} wrapper and a
// bare member array are accepted.
func Decode(data []byte) (family.TreeData, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return family.TreeData{}, errors.New(errors.ErrCodeInvalidFormat, "empty tree blob")
	}
	var td family.TreeData
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &td.Members); err != nil {
			return family.TreeData{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode member array")
		}
	} else if err := json.Unmarshal(trimmed, &td); err != nil {
		return family.TreeData{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode tree")
	}
	if td.Members == nil {
		td.Members = []family.Member{}
	}
	return td, nil
}
