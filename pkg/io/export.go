package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/kintree/pkg/family"
)

// WriteJSON encodes td as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(td family.TreeData, w io.Writer) error {
	if td.Members == nil {
		td.Members = []family.Member{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(td); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteYAML encodes td as YAML and writes it to w.
func WriteYAML(td family.TreeData, w io.Writer) error {
	if td.Members == nil {
		td.Members = []family.Member{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(td); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}

// Export writes td to path, choosing the encoder by extension.
func Export(td family.TreeData, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if format == FormatYAML {
		err = WriteYAML(td, f)
	} else {
		err = WriteJSON(td, f)
	}
	if err != nil {
		return err
	}
	return f.Close()
}
