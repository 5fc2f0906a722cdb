// Package geom provides the small set of 2D primitives shared by layout,
// connector geometry and rendering.
package geom

import (
	"fmt"
	"strconv"
	"strings"
)

// Point is a position in logical diagram units.
type Point struct {
	X, Y float64
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns p with both coordinates multiplied by s.
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Left() float64    { return r.X }
func (r Rect) Right() float64   { return r.X + r.W }
func (r Rect) Top() float64     { return r.Y }
func (r Rect) Bottom() float64  { return r.Y + r.H }
func (r Rect) CenterX() float64 { return r.X + r.W/2 }
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Center returns the midpoint of r.
func (r Rect) Center() Point { return Point{r.CenterX(), r.CenterY()} }

// TopCenter returns the midpoint of the top edge.
func (r Rect) TopCenter() Point { return Point{r.CenterX(), r.Top()} }

// BottomCenter returns the midpoint of the bottom edge.
func (r Rect) BottomCenter() Point { return Point{r.CenterX(), r.Bottom()} }

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// Translate returns r moved by d.
func (r Rect) Translate(d Point) Rect { return Rect{r.X + d.X, r.Y + d.Y, r.W, r.H} }

// Scale returns r with position and size multiplied by s.
func (r Rect) Scale(s float64) Rect { return Rect{r.X * s, r.Y * s, r.W * s, r.H * s} }

// Union returns the smallest rectangle containing r and o. A zero Rect acts
// as the identity.
func (r Rect) Union(o Rect) Rect {
	if r == (Rect{}) {
		return o
	}
	if o == (Rect{}) {
		return r
	}
	x0, y0 := min(r.X, o.X), min(r.Y, o.Y)
	x1, y1 := max(r.Right(), o.Right()), max(r.Bottom(), o.Bottom())
	return Rect{x0, y0, x1 - x0, y1 - y0}
}

// Curve is a cubic Bezier segment.
type Curve struct {
	From, C1, C2, To Point
}

// VerticalCurve returns the smooth S-curve used for parent-to-child
// connectors: both control points sit on the vertical midpoint, directly
// below from and directly above to.
func VerticalCurve(from, to Point) Curve {
	midY := (from.Y + to.Y) / 2
	return Curve{
		From: from,
		C1:   Point{from.X, midY},
		C2:   Point{to.X, midY},
		To:   to,
	}
}

// At evaluates the curve at t in [0, 1].
func (c Curve) At(t float64) Point {
	u := 1 - t
	a, b, d, e := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
	return Point{
		X: a*c.From.X + b*c.C1.X + d*c.C2.X + e*c.To.X,
		Y: a*c.From.Y + b*c.C1.Y + d*c.C2.Y + e*c.To.Y,
	}
}

// Sample returns n+1 evenly spaced points along the curve, endpoints included.
func (c Curve) Sample(n int) []Point {
	if n < 1 {
		n = 1
	}
	pts := make([]Point, n+1)
	for i := 0; i <= n; i++ {
		pts[i] = c.At(float64(i) / float64(n))
	}
	return pts
}

// Path encodes the curve as SVG path data ("M x y C x1 y1, x2 y2, x y").
func (c Curve) Path() string {
	var b strings.Builder
	fmt.Fprintf(&b, "M %s %s C %s %s, %s %s, %s %s",
		num(c.From.X), num(c.From.Y),
		num(c.C1.X), num(c.C1.Y),
		num(c.C2.X), num(c.C2.Y),
		num(c.To.X), num(c.To.Y))
	return b.String()
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
