package nodelink

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/kintree/pkg/family"
	"github.com/matzehuels/kintree/pkg/layout"
)

func TestToDOT(t *testing.T) {
	members := []family.Member{
		{ID: "A", FirstName: "Arthur", LastName: "Hale", Gender: family.Male, BirthDate: "1921-03-14", SpouseID: "B"},
		{ID: "B", FirstName: "Edith", Gender: family.Female, SpouseID: "A"},
		{ID: "C", FirstName: "Robert", FatherID: "A", MotherID: "B", Gender: family.Male},
		{ID: "S", FirstName: "Sam", Gender: family.Other},
		{ID: "K", FirstName: "Kid", MotherID: "S"},
	}
	dot := ToDOT(members, layout.Build(members), Options{Detailed: true})

	wants := []string{
		`"A" [label="Arthur Hale\nb. 1921", fillcolor="#dbeafe"];`,
		`"B" [label="Edith", fillcolor="#fce7f3"];`,
		`"union:A+B" [shape=point`,
		`{ rank=same; "A"; "union:A+B"; "B"; }`,
		`"union:A+B" -> "C";`,
		`"S" -> "K";`,
	}
	for _, want := range wants {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q\n%s", want, dot)
		}
	}
	if strings.Contains(dot, `"A" -> "C"`) {
		t.Error("couple child should hang from the union, not a parent")
	}
}

func TestToDOTParentsNotACouple(t *testing.T) {
	members := []family.Member{
		{ID: "F", Gender: family.Male},
		{ID: "M", Gender: family.Female},
		{ID: "K", FatherID: "F", MotherID: "M"},
	}
	dot := ToDOT(members, layout.Build(members), Options{})

	for _, want := range []string{`"F" -> "K";`, `"M" -> "K";`} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q", want)
		}
	}
	if strings.Contains(dot, "union:") {
		t.Error("no union expected for unmarried parents")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s", got)
	}

	plain := []byte(`<svg><g/></svg>`)
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("svg without viewBox should be unchanged")
	}
}

func TestRenderSVG(t *testing.T) {
	seed := family.Seed().Members
	dot := ToDOT(seed, layout.Build(seed), Options{Detailed: true})

	svg, err := RenderSVG(context.Background(), dot)
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !bytes.HasPrefix(bytes.TrimSpace(svg), []byte("<?xml")) && !bytes.Contains(svg, []byte("<svg")) {
		t.Fatalf("output is not SVG: %.80q", svg)
	}
	if !bytes.Contains(svg, []byte(`viewBox="0 0 `)) {
		t.Error("viewBox was not normalized")
	}
	if !bytes.Contains(svg, []byte("Arthur")) {
		t.Error("SVG is missing member labels")
	}
}
