package cli

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/kintree/pkg/connector"
	"github.com/matzehuels/kintree/pkg/family"
	"github.com/matzehuels/kintree/pkg/geom"
	"github.com/matzehuels/kintree/pkg/layout"
	"github.com/matzehuels/kintree/pkg/viewport"
)

// A terminal cell covers cellW x cellH diagram units at scale 1.
const (
	cellW = 10.0
	cellH = 20.0
)

type cellStyle uint8

const (
	cellBlank cellStyle = iota
	cellLink
	cellUnion
	cellMale
	cellFemale
	cellOther
	cellSelected
	cellText
)

var cellStyles = map[cellStyle]lipgloss.Style{
	cellLink:     lipgloss.NewStyle().Foreground(colorDim),
	cellUnion:    lipgloss.NewStyle().Foreground(colorRed),
	cellMale:     styleMale,
	cellFemale:   styleFemale,
	cellOther:    styleOther,
	cellSelected: lipgloss.NewStyle().Foreground(colorCyan).Bold(true),
	cellText:     StyleValue,
}

// grid is a character canvas with one style per cell.
type grid struct {
	w, h   int
	runes  [][]rune
	styles [][]cellStyle
}

func newGrid(w, h int) *grid {
	w, h = max(w, 0), max(h, 0)
	g := &grid{w: w, h: h, runes: make([][]rune, h), styles: make([][]cellStyle, h)}
	for y := range h {
		g.runes[y] = []rune(strings.Repeat(" ", w))
		g.styles[y] = make([]cellStyle, w)
	}
	return g
}

func (g *grid) set(x, y int, r rune, s cellStyle) {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return
	}
	g.runes[y][x] = r
	g.styles[y][x] = s
}

// text writes s starting at (x, y), cut to at most n runes.
func (g *grid) text(x, y int, s string, n int, st cellStyle) {
	for i, r := range []rune(s) {
		if i >= n {
			break
		}
		g.set(x+i, y, r, st)
	}
}

// box draws a border from (x0, y0) to (x1, y1) inclusive and blanks the
// inside.
func (g *grid) box(x0, y0, x1, y1 int, double bool, st cellStyle) {
	h, v, tl, tr, bl, br := '─', '│', '╭', '╮', '╰', '╯'
	if double {
		h, v, tl, tr, bl, br = '═', '║', '╔', '╗', '╚', '╝'
	}
	for y := y0 + 1; y < y1; y++ {
		for x := x0 + 1; x < x1; x++ {
			g.set(x, y, ' ', cellBlank)
		}
		g.set(x0, y, v, st)
		g.set(x1, y, v, st)
	}
	for x := x0 + 1; x < x1; x++ {
		g.set(x, y0, h, st)
		g.set(x, y1, h, st)
	}
	g.set(x0, y0, tl, st)
	g.set(x1, y0, tr, st)
	g.set(x0, y1, bl, st)
	g.set(x1, y1, br, st)
}

// lines returns the canvas without styling.
func (g *grid) lines() []string {
	out := make([]string, g.h)
	for y := range g.h {
		out[y] = string(g.runes[y])
	}
	return out
}

// render returns the canvas with styled runs.
func (g *grid) render() string {
	var b strings.Builder
	for y := range g.h {
		start := 0
		for x := 1; x <= g.w; x++ {
			if x < g.w && g.styles[y][x] == g.styles[y][start] {
				continue
			}
			run := string(g.runes[y][start:x])
			if st, ok := cellStyles[g.styles[y][start]]; ok {
				run = st.Render(run)
			}
			b.WriteString(run)
			start = x
		}
		if y < g.h-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// cell converts a screen position in diagram units to a grid cell.
func cell(p geom.Point) (int, int) {
	return int(math.Floor(p.X / cellW)), int(math.Floor(p.Y / cellH))
}

// screenPoint converts a grid cell to the screen position of its centre.
func screenPoint(x, y int) geom.Point {
	return geom.Point{X: (float64(x) + 0.5) * cellW, Y: (float64(y) + 0.5) * cellH}
}

// scene is everything drawn by the viewer.
type scene struct {
	frame    layout.Frame
	members  map[string]family.Member
	links    []connector.Link
	view     *viewport.Viewport
	selected string
}

// draw paints connectors, then union markers, then cards, so cards sit on
// top of the lines that run into them.
func (s scene) draw(g *grid) {
	for _, l := range s.links {
		s.drawCurve(g, l.Curve)
	}
	for _, r := range s.frame.Unions {
		x, y := cell(s.view.Apply(r.Center()))
		g.set(x, y, '●', cellUnion)
	}
	for id, r := range s.frame.Cards {
		s.drawCard(g, s.members[id], s.view.ApplyRect(r))
	}
}

func (s scene) drawCurve(g *grid, c geom.Curve) {
	from, to := s.view.Apply(c.From), s.view.Apply(c.To)
	steps := int(math.Abs(to.X-from.X)/cellW*2+math.Abs(to.Y-from.Y)/cellH*2) + 2
	px, py := cell(from)
	for _, p := range c.Sample(steps) {
		x, y := cell(s.view.Apply(p))
		if x == px && y == py {
			continue
		}
		r := '│'
		if y == py {
			r = '─'
		}
		g.set(x, y, r, cellLink)
		px, py = x, y
	}
}

func (s scene) drawCard(g *grid, m family.Member, r geom.Rect) {
	x0, y0 := cell(geom.Point{X: r.X, Y: r.Y})
	x1, y1 := cell(geom.Point{X: r.Right(), Y: r.Bottom()})
	if x1-x0 < 2 || y1-y0 < 2 {
		// Too small for a frame: a single marker.
		g.set(x0, y0, '■', genderCell(m.Gender))
		return
	}
	selected := m.ID == s.selected
	st := genderCell(m.Gender)
	if selected {
		st = cellSelected
	}
	g.box(x0, y0, x1, y1, selected, st)

	inner := x1 - x0 - 1
	if y1-y0 >= 2 {
		g.text(x0+1, y0+1, m.FullName(), inner, cellText)
	}
	if y1-y0 >= 3 {
		g.text(x0+1, y0+2, m.Lifespan(), inner, cellLink)
	}
}

func genderCell(gd family.Gender) cellStyle {
	switch gd {
	case family.Male:
		return cellMale
	case family.Female:
		return cellFemale
	}
	return cellOther
}

// cardAt returns the id of the card under screen position p.
func (s scene) cardAt(p geom.Point) (string, bool) {
	for id, r := range s.frame.Cards {
		if s.view.ApplyRect(r).Contains(p) {
			return id, true
		}
	}
	return "", false
}
