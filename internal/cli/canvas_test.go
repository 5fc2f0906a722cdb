package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/kintree/pkg/connector"
	"github.com/matzehuels/kintree/pkg/family"
	"github.com/matzehuels/kintree/pkg/geom"
	"github.com/matzehuels/kintree/pkg/layout"
	"github.com/matzehuels/kintree/pkg/viewport"
)

func TestGridBoxAndText(t *testing.T) {
	g := newGrid(8, 4)
	g.box(0, 0, 7, 3, false, cellMale)
	g.text(1, 1, "Arthur Hale", 6, cellText)

	want := []string{
		"╭──────╮",
		"│Arthur│",
		"│      │",
		"╰──────╯",
	}
	if got := g.lines(); strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("lines =\n%s\nwant\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

func TestGridIgnoresOutOfBounds(t *testing.T) {
	g := newGrid(3, 2)
	g.set(-1, 0, 'x', cellText)
	g.set(3, 0, 'x', cellText)
	g.set(0, 2, 'x', cellText)
	for _, line := range g.lines() {
		if strings.ContainsRune(line, 'x') {
			t.Fatalf("out-of-bounds write landed: %q", line)
		}
	}
}

func TestGridRenderKeepsText(t *testing.T) {
	g := newGrid(5, 1)
	g.text(0, 0, "ab", 5, cellText)
	g.set(3, 0, '●', cellUnion)
	if got := g.render(); !strings.Contains(got, "ab") || !strings.Contains(got, "●") {
		t.Errorf("render() = %q", got)
	}
}

func TestCellRoundTrip(t *testing.T) {
	for _, c := range [][2]int{{0, 0}, {3, 7}, {42, 11}} {
		x, y := cell(screenPoint(c[0], c[1]))
		if x != c[0] || y != c[1] {
			t.Errorf("cell(screenPoint(%d, %d)) = (%d, %d)", c[0], c[1], x, y)
		}
	}
}

func testScene(selected string) (scene, layout.Frame) {
	members := family.Seed().Members
	_, frame := layout.Compute(context.Background(), members, layout.DefaultMetrics())
	byID := make(map[string]family.Member, len(members))
	for _, m := range members {
		byID[m.ID] = m
	}
	res := connector.Compute(members, frame.Anchor, connector.Canvas{Origin: frame.Bounds(), LogicalWidth: frame.Width})
	return scene{
		frame:    frame,
		members:  byID,
		links:    res.Links,
		view:     viewport.New(viewport.DefaultLimits()),
		selected: selected,
	}, frame
}

func TestSceneDraw(t *testing.T) {
	s, frame := testScene("seed-arthur")
	g := newGrid(int(frame.Width/cellW)+1, int(frame.Height/cellH)+1)
	s.draw(g)
	out := strings.Join(g.lines(), "\n")

	for _, want := range []string{"Arthur Hale", "Sofia Hale", "●", "╔", "│"} {
		if !strings.Contains(out, want) {
			t.Errorf("drawing missing %q:\n%s", want, out)
		}
	}
}

func TestSceneDrawZoomedOut(t *testing.T) {
	s, frame := testScene("")
	s.view.SetScale(0.2)
	g := newGrid(int(frame.Width/cellW)+1, int(frame.Height/cellH)+1)
	s.draw(g)
	if out := strings.Join(g.lines(), "\n"); !strings.Contains(out, "■") {
		t.Errorf("small cards should collapse to markers:\n%s", out)
	}
}

func TestSceneCardAt(t *testing.T) {
	s, frame := testScene("")
	r := frame.Cards["seed-helen"]

	id, ok := s.cardAt(r.Center())
	if !ok || id != "seed-helen" {
		t.Errorf("cardAt(centre of helen) = %q, %v", id, ok)
	}
	if _, ok := s.cardAt(geom.Point{X: -5, Y: -5}); ok {
		t.Error("cardAt outside every card should miss")
	}

	s.view.PanBy(1000, 0)
	if _, ok := s.cardAt(r.Center()); ok {
		t.Error("cardAt should follow the viewport")
	}
}
