package connector

import (
	"github.com/matzehuels/kintree/pkg/family"
	"github.com/matzehuels/kintree/pkg/geom"
	"github.com/matzehuels/kintree/pkg/layout"
)

// AnchorLookup returns the measured rectangle of an anchor, or false when
// the anchor is not rendered.
type AnchorLookup func(anchorID string) (geom.Rect, bool)

// Canvas describes the element all anchors are measured against.
type Canvas struct {
	// Origin is the measured rectangle of the canvas itself.
	Origin geom.Rect
	// LogicalWidth is the canvas width before any zoom is applied.
	LogicalWidth float64
}

// Scale returns the canvas render scale: measured width divided by logical
// width. It is 1 when either width is unknown.
func (c Canvas) Scale() float64 {
	if c.LogicalWidth <= 0 || c.Origin.W <= 0 {
		return 1
	}
	return c.Origin.W / c.LogicalWidth
}

// Local converts a measured point into canvas-local logical coordinates.
func (c Canvas) Local(p geom.Point) geom.Point {
	return p.Sub(geom.Point{X: c.Origin.X, Y: c.Origin.Y}).Scale(1 / c.Scale())
}

// Unit is a family unit and the children that hang from it.
type Unit struct {
	Key      string
	Parents  []string
	Children []string
}

// Units groups children by family unit in order of first appearance.
// Children without a resolvable parent belong to no unit.
func Units(members []family.Member) []Unit {
	idx := family.NewIndex(members)
	pos := make(map[string]int)

	var units []Unit
	for _, m := range members {
		parents := idx.Parents(m)
		if len(parents) == 0 {
			continue
		}
		key := idx.ParentUnit(m)
		i, ok := pos[key]
		if !ok {
			i = len(units)
			pos[key] = i
			units = append(units, Unit{Key: key, Parents: parents})
		}
		units[i].Children = append(units[i].Children, m.ID)
	}
	return units
}

// Link is one parent-unit to child connector.
type Link struct {
	Unit  string
	Child string
	Curve geom.Curve
}

// Result is the output of [Compute].
type Result struct {
	Links []Link
	// Skipped counts units and children whose anchors were not available.
	Skipped int
}

// Curves returns just the curves of r.
func (r Result) Curves() []geom.Curve {
	out := make([]geom.Curve, len(r.Links))
	for i, l := range r.Links {
		out[i] = l.Curve
	}
	return out
}

// Compute emits one curve per parent-unit to child pair whose anchors can
// be resolved. Positions are taken from lookup and converted to
// canvas-local coordinates, so the output is independent of the zoom level.
func Compute(members []family.Member, lookup AnchorLookup, canvas Canvas) Result {
	var res Result
	for _, u := range Units(members) {
		start, ok := startAnchor(u, lookup)
		if !ok {
			res.Skipped++
			continue
		}
		from := canvas.Local(start)

		for _, child := range u.Children {
			r, ok := lookup(layout.MemberAnchor(child))
			if !ok {
				res.Skipped++
				continue
			}
			to := canvas.Local(r.TopCenter())
			res.Links = append(res.Links, Link{
				Unit:  u.Key,
				Child: child,
				Curve: geom.VerticalCurve(from, to),
			})
		}
	}
	return res
}

// startAnchor returns the bottom centre of the couple marker when both
// parents are rendered, otherwise the bottom centre of whichever single
// parent is.
func startAnchor(u Unit, lookup AnchorLookup) (geom.Point, bool) {
	var present []geom.Rect
	for _, p := range u.Parents {
		if r, ok := lookup(layout.MemberAnchor(p)); ok {
			present = append(present, r)
		}
	}

	if len(u.Parents) == 2 && len(present) == 2 {
		if r, ok := lookup(layout.UnionAnchor(u.Key)); ok {
			return r.BottomCenter(), true
		}
	}
	if len(present) > 0 {
		return present[0].BottomCenter(), true
	}
	return geom.Point{}, false
}
