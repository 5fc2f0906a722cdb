// Package viewport holds the pan and zoom transform applied to the whole
// diagram.
//
// A [Viewport] maps logical diagram coordinates to screen coordinates:
//
//	screen = logical*Scale + (X, Y)
//
// Translation changes through pointer drags or explicit pans; scale changes
// through zoom buttons or the mouse wheel and is always clamped to
// [Limits]. The type carries no business logic.
package viewport

import (
	"math"

	"github.com/matzehuels/kintree/pkg/geom"
)

// Limits bounds the scale factor.
type Limits struct {
	Min  float64 `toml:"min_scale"`
	Max  float64 `toml:"max_scale"`
	Step float64 `toml:"step"` // additive step for ZoomIn/ZoomOut
}

// DefaultLimits returns the scale range used when none is configured.
func DefaultLimits() Limits {
	return Limits{Min: 0.2, Max: 3, Step: 0.1}
}

func (l Limits) clamp(s float64) float64 {
	return math.Max(l.Min, math.Min(l.Max, s))
}

// wheelSensitivity converts wheel delta units into a zoom exponent.
const wheelSensitivity = 0.001

// Viewport is a 2D translation plus a uniform scale.
type Viewport struct {
	X, Y   float64
	Scale  float64
	Limits Limits

	dragging bool
	dragFrom geom.Point
}

// New returns an identity viewport with the given limits.
func New(l Limits) *Viewport {
	return &Viewport{Scale: l.clamp(1), Limits: l}
}

// Offset returns the translation as a point.
func (v *Viewport) Offset() geom.Point { return geom.Point{X: v.X, Y: v.Y} }

// PanBy moves the diagram by (dx, dy) screen units.
func (v *Viewport) PanBy(dx, dy float64) {
	v.X += dx
	v.Y += dy
}

// BeginDrag starts a pointer drag at screen position p.
func (v *Viewport) BeginDrag(p geom.Point) {
	v.dragging = true
	v.dragFrom = p
}

// DragTo pans by the pointer movement since the last drag event. It does
// nothing unless a drag is in progress.
func (v *Viewport) DragTo(p geom.Point) {
	if !v.dragging {
		return
	}
	d := p.Sub(v.dragFrom)
	v.PanBy(d.X, d.Y)
	v.dragFrom = p
}

// EndDrag finishes the current drag.
func (v *Viewport) EndDrag() { v.dragging = false }

// Dragging reports whether a drag is in progress.
func (v *Viewport) Dragging() bool { return v.dragging }

// SetScale sets the scale, clamped to the limits, keeping the translation.
func (v *Viewport) SetScale(s float64) {
	v.Scale = v.Limits.clamp(s)
}

// ZoomIn increases the scale by one step.
func (v *Viewport) ZoomIn() { v.SetScale(v.Scale + v.Limits.Step) }

// ZoomOut decreases the scale by one step.
func (v *Viewport) ZoomOut() { v.SetScale(v.Scale - v.Limits.Step) }

// ZoomAt multiplies the scale by factor while keeping the logical point
// under screen position p fixed on screen.
func (v *Viewport) ZoomAt(p geom.Point, factor float64) {
	if factor <= 0 {
		return
	}
	anchor := v.Invert(p)
	v.SetScale(v.Scale * factor)
	v.X = p.X - anchor.X*v.Scale
	v.Y = p.Y - anchor.Y*v.Scale
}

// Wheel applies a mouse-wheel delta at screen position p. Negative deltas
// (scrolling up) zoom in.
func (v *Viewport) Wheel(p geom.Point, delta float64) {
	v.ZoomAt(p, math.Exp(-delta*wheelSensitivity))
}

// Reset restores the identity transform.
func (v *Viewport) Reset() {
	v.X, v.Y = 0, 0
	v.SetScale(1)
	v.dragging = false
}

// Fit scales and centres content inside a screen area of size (w, h).
func (v *Viewport) Fit(content geom.Rect, w, h float64) {
	if content.W <= 0 || content.H <= 0 || w <= 0 || h <= 0 {
		return
	}
	v.SetScale(math.Min(w/content.W, h/content.H))
	v.X = (w-content.W*v.Scale)/2 - content.X*v.Scale
	v.Y = (h-content.H*v.Scale)/2 - content.Y*v.Scale
}

// Apply maps a logical point to the screen.
func (v *Viewport) Apply(p geom.Point) geom.Point {
	return p.Scale(v.Scale).Add(v.Offset())
}

// ApplyRect maps a logical rectangle to the screen.
func (v *Viewport) ApplyRect(r geom.Rect) geom.Rect {
	return r.Scale(v.Scale).Translate(v.Offset())
}

// Invert maps a screen point back to logical coordinates.
func (v *Viewport) Invert(p geom.Point) geom.Point {
	return p.Sub(v.Offset()).Scale(1 / v.Scale)
}
