package layout

import (
	"strings"

	"github.com/matzehuels/kintree/pkg/geom"
)

// Anchor id prefixes.
const (
	memberPrefix = "member-"
	unionPrefix  = "union-"
)

// MemberAnchor returns the anchor id of a member card.
func MemberAnchor(id string) string { return memberPrefix + id }

// UnionAnchor returns the anchor id of a couple marker.
func UnionAnchor(unitKey string) string { return unionPrefix + unitKey }

// Metrics controls card sizes and spacing, in logical units.
type Metrics struct {
	CardWidth  float64 `toml:"card_width"`
	CardHeight float64 `toml:"card_height"`
	SpouseGap  float64 `toml:"spouse_gap"` // horizontal gap between partners; the union marker sits in it
	UnionSize  float64 `toml:"union_size"`
	SiblingGap float64 `toml:"sibling_gap"` // gap between neighbouring subtrees
	LevelGap   float64 `toml:"level_gap"`   // vertical gap between generations
	Margin     float64 `toml:"margin"`
}

// DefaultMetrics returns the metrics used by the CLI and renderers.
func DefaultMetrics() Metrics {
	return Metrics{
		CardWidth:  180,
		CardHeight: 64,
		SpouseGap:  48,
		UnionSize:  12,
		SiblingGap: 40,
		LevelGap:   110,
		Margin:     40,
	}
}

// Frame is an arranged diagram.
type Frame struct {
	Width, Height float64
	// Cards maps member id to card rectangle.
	Cards map[string]geom.Rect
	// Unions maps the unit key of every couple to its marker rectangle.
	Unions map[string]geom.Rect
}

// Anchor resolves a [MemberAnchor] or [UnionAnchor] id.
func (f Frame) Anchor(anchorID string) (geom.Rect, bool) {
	if id, ok := strings.CutPrefix(anchorID, memberPrefix); ok {
		r, found := f.Cards[id]
		return r, found
	}
	if key, ok := strings.CutPrefix(anchorID, unionPrefix); ok {
		r, found := f.Unions[key]
		return r, found
	}
	return geom.Rect{}, false
}

// Bounds returns the frame as a rectangle at the origin.
func (f Frame) Bounds() geom.Rect { return geom.Rect{W: f.Width, H: f.Height} }

// Arrange assigns coordinates to every node of the forest.
//
// Each couple is centred above its children. A subtree is as wide as the
// wider of the couple and the row of child subtrees, and roots are placed
// left to right. An empty forest yields a frame of just the margins.
func Arrange(f Forest, m Metrics) Frame {
	a := arranger{
		m:      m,
		widths: make(map[*Node]float64),
		frame: Frame{
			Cards:  make(map[string]geom.Rect),
			Unions: make(map[string]geom.Rect),
		},
	}

	x := m.Margin
	for i, r := range f.Roots {
		if i > 0 {
			x += m.SiblingGap
		}
		a.place(r, x, m.Margin)
		x += a.width(r)
	}

	a.frame.Width = x + m.Margin
	a.frame.Height = 2 * m.Margin
	if depth := f.Depth(); depth > 0 {
		a.frame.Height += float64(depth)*(m.CardHeight+m.LevelGap) - m.LevelGap
	}
	return a.frame
}

type arranger struct {
	m      Metrics
	widths map[*Node]float64
	frame  Frame
}

func (a *arranger) pairWidth(n *Node) float64 {
	if n.Spouse == nil {
		return a.m.CardWidth
	}
	return 2*a.m.CardWidth + a.m.SpouseGap
}

func (a *arranger) childrenWidth(n *Node) float64 {
	var w float64
	for i, c := range n.Children {
		if i > 0 {
			w += a.m.SiblingGap
		}
		w += a.width(c)
	}
	return w
}

func (a *arranger) width(n *Node) float64 {
	if w, ok := a.widths[n]; ok {
		return w
	}
	w := max(a.pairWidth(n), a.childrenWidth(n))
	a.widths[n] = w
	return w
}

func (a *arranger) place(n *Node, left, top float64) {
	m := a.m
	w := a.width(n)

	pairLeft := left + (w-a.pairWidth(n))/2
	a.frame.Cards[n.Member.ID] = geom.Rect{X: pairLeft, Y: top, W: m.CardWidth, H: m.CardHeight}
	if n.Spouse != nil {
		a.frame.Cards[n.Spouse.ID] = geom.Rect{X: pairLeft + m.CardWidth + m.SpouseGap, Y: top, W: m.CardWidth, H: m.CardHeight}
		a.frame.Unions[n.UnitKey()] = geom.Rect{
			X: pairLeft + m.CardWidth + (m.SpouseGap-m.UnionSize)/2,
			Y: top + (m.CardHeight-m.UnionSize)/2,
			W: m.UnionSize,
			H: m.UnionSize,
		}
	}

	childLeft := left + (w-a.childrenWidth(n))/2
	childTop := top + m.CardHeight + m.LevelGap
	for _, c := range n.Children {
		a.place(c, childLeft, childTop)
		childLeft += a.width(c) + m.SiblingGap
	}
}
