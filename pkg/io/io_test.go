package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/family"
)

func TestJSONRoundTrip(t *testing.T) {
	seed := family.Seed()
	var buf bytes.Buffer
	if err := WriteJSON(seed, &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if diff := cmp.Diff(seed, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	seed := family.Seed()
	var buf bytes.Buffer
	if err := WriteYAML(seed, &buf); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	if !strings.Contains(buf.String(), "firstName: Arthur") {
		t.Errorf("yaml output missing camelCase field:\n%s", buf.String())
	}
	got, err := ReadYAML(&buf)
	if err != nil {
		t.Fatalf("ReadYAML: %v", err)
	}
	if diff := cmp.Diff(seed, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestReadBareArrays(t *testing.T) {
	js, err := ReadJSON(strings.NewReader(`[{"id":"a","gender":"male"}]`))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if len(js.Members) != 1 || js.Members[0].ID != "a" {
		t.Errorf("ReadJSON bare array = %+v", js.Members)
	}

	ys, err := ReadYAML(strings.NewReader("- id: a\n  gender: female\n- id: b\n  gender: male\n"))
	if err != nil {
		t.Fatalf("ReadYAML: %v", err)
	}
	if len(ys.Members) != 2 || ys.Members[1].ID != "b" {
		t.Errorf("ReadYAML bare array = %+v", ys.Members)
	}
}

func TestReadEmptyYAML(t *testing.T) {
	td, err := ReadYAML(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ReadYAML: %v", err)
	}
	if td.Members == nil || len(td.Members) != 0 {
		t.Errorf("Members = %#v, want empty slice", td.Members)
	}
}

func TestReadRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code errors.Code
	}{
		{"malformed", `{"members": [`, errors.ErrCodeInvalidFormat},
		{"missing id", `{"members":[{"gender":"male"}]}`, errors.ErrCodeInvalidInput},
		{"duplicate id", `[{"id":"a","gender":"male"},{"id":"a","gender":"female"}]`, errors.ErrCodeInvalidInput},
		{"bad gender", `[{"id":"a","gender":"unknown"}]`, errors.ErrCodeInvalidGender},
		{"bad date", `[{"id":"a","gender":"male","birthDate":"14/03/1921"}]`, errors.ErrCodeInvalidDate},
		{"self spouse", `[{"id":"a","gender":"male","spouseId":"a"}]`, errors.ErrCodeInvalidRelation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.doc))
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestReadKeepsDanglingReferences(t *testing.T) {
	td, err := ReadJSON(strings.NewReader(`[{"id":"a","gender":"male","fatherId":"ghost"}]`))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if td.Members[0].FatherID != "ghost" {
		t.Errorf("FatherID = %q, want ghost", td.Members[0].FatherID)
	}
}

func TestImportExportFiles(t *testing.T) {
	dir := t.TempDir()
	seed := family.Seed()
	for _, name := range []string{"tree.json", "tree.yaml", "tree.YML"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := Export(seed, path); err != nil {
				t.Fatalf("Export: %v", err)
			}
			got, err := Import(path)
			if err != nil {
				t.Fatalf("Import: %v", err)
			}
			if diff := cmp.Diff(seed, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestImportErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Import(filepath.Join(dir, "missing.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file err = %v, want FILE_NOT_FOUND", err)
	}
	txt := filepath.Join(dir, "tree.txt")
	if err := os.WriteFile(txt, []byte("[]"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Import(txt); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf(".txt err = %v, want UNSUPPORTED", err)
	}
	if err := Export(family.Seed(), filepath.Join(dir, "tree.csv")); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("Export .csv err = %v, want UNSUPPORTED", err)
	}
}
