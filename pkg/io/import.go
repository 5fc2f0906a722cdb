package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/family"
)

// Supported file formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// FormatFromPath returns the format implied by path's extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeUnsupported, "unsupported file extension %q (want .json, .yaml or .yml)", filepath.Ext(path))
}

// ReadJSON decodes a tree from r. ReadJSON does not close r.
func ReadJSON(r io.Reader) (family.TreeData, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return family.TreeData{}, fmt.Errorf("read: %w", err)
	}
	var td family.TreeData
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '[' {
		err = json.Unmarshal(raw, &td.Members)
	} else {
		err = json.Unmarshal(raw, &td)
	}
	if err != nil {
		return family.TreeData{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
	}
	return finish(td)
}

// ReadYAML decodes a tree from r. ReadYAML does not close r.
func ReadYAML(r io.Reader) (family.TreeData, error) {
	var node yaml.Node
	if err := yaml.NewDecoder(r).Decode(&node); err != nil {
		if err == io.EOF {
			return family.TreeData{Members: []family.Member{}}, nil
		}
		return family.TreeData{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml")
	}
	var td family.TreeData
	var err error
	if len(node.Content) > 0 && node.Content[0].Kind == yaml.SequenceNode {
		err = node.Content[0].Decode(&td.Members)
	} else {
		err = node.Decode(&td)
	}
	if err != nil {
		return family.TreeData{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml")
	}
	return finish(td)
}

// Import reads a tree from the file at path, choosing the decoder by
// extension.
func Import(path string) (family.TreeData, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return family.TreeData{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return family.TreeData{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return family.TreeData{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if format == FormatYAML {
		return ReadYAML(f)
	}
	return ReadJSON(f)
}

// finish rejects duplicate ids and invalid members.
func finish(td family.TreeData) (family.TreeData, error) {
	if td.Members == nil {
		td.Members = []family.Member{}
	}
	if err := check(td.Members); err != nil {
		return family.TreeData{}, err
	}
	return td, nil
}

func check(members []family.Member) error {
	seen := make(map[string]bool, len(members))
	for i, m := range members {
		if m.ID == "" {
			return errors.New(errors.ErrCodeInvalidInput, "member %d has no id", i)
		}
		if seen[m.ID] {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate member id %s", m.ID)
		}
		seen[m.ID] = true
		if err := m.Validate(); err != nil {
			return fmt.Errorf("member %s: %w", m.ID, err)
		}
	}
	return nil
}
