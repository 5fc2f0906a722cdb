package viewport

import (
	"math"
	"testing"

	"github.com/matzehuels/kintree/pkg/geom"
)

func near(a, b geom.Point) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestNewIsIdentity(t *testing.T) {
	v := New(DefaultLimits())
	p := geom.Point{X: 12, Y: 34}
	if got := v.Apply(p); got != p {
		t.Errorf("Apply() = %v, want identity", got)
	}
}

func TestZoomClamped(t *testing.T) {
	v := New(DefaultLimits())

	for i := 0; i < 100; i++ {
		v.ZoomIn()
	}
	if v.Scale != 3 {
		t.Errorf("Scale after zooming in = %v, want 3", v.Scale)
	}
	for i := 0; i < 100; i++ {
		v.ZoomOut()
	}
	if v.Scale != 0.2 {
		t.Errorf("Scale after zooming out = %v, want 0.2", v.Scale)
	}

	v.SetScale(-5)
	if v.Scale != 0.2 {
		t.Errorf("SetScale(-5) = %v", v.Scale)
	}
	v.Wheel(geom.Point{}, -1e9)
	if v.Scale != 3 {
		t.Errorf("huge wheel zoom = %v, want clamped 3", v.Scale)
	}
}

func TestDrag(t *testing.T) {
	v := New(DefaultLimits())

	v.DragTo(geom.Point{X: 50, Y: 50})
	if v.X != 0 || v.Y != 0 {
		t.Error("DragTo without BeginDrag should not pan")
	}

	v.BeginDrag(geom.Point{X: 10, Y: 10})
	v.DragTo(geom.Point{X: 15, Y: 30})
	v.DragTo(geom.Point{X: 20, Y: 25})
	v.EndDrag()
	v.DragTo(geom.Point{X: 500, Y: 500})

	if v.X != 10 || v.Y != 15 {
		t.Errorf("offset after drag = (%v, %v), want (10, 15)", v.X, v.Y)
	}
	if v.Dragging() {
		t.Error("still dragging after EndDrag")
	}
}

func TestZoomAtKeepsPointFixed(t *testing.T) {
	v := New(DefaultLimits())
	v.PanBy(30, -20)
	v.SetScale(1.3)

	screen := geom.Point{X: 200, Y: 120}
	logical := v.Invert(screen)

	v.ZoomAt(screen, 1.5)
	if got := v.Apply(logical); !near(got, screen) {
		t.Errorf("point drifted to %v, want %v", got, screen)
	}

	v.Wheel(screen, 240)
	if got := v.Apply(logical); !near(got, screen) {
		t.Errorf("point drifted after wheel to %v, want %v", got, screen)
	}
	if v.Scale >= 1.95 {
		t.Errorf("positive wheel delta should zoom out, scale = %v", v.Scale)
	}
}

func TestApplyInvertRoundTrip(t *testing.T) {
	v := New(DefaultLimits())
	v.PanBy(-120, 45)
	v.SetScale(0.75)

	p := geom.Point{X: 321, Y: -7}
	if got := v.Invert(v.Apply(p)); !near(got, p) {
		t.Errorf("Invert(Apply(p)) = %v, want %v", got, p)
	}
	r := v.ApplyRect(geom.Rect{X: 100, Y: 100, W: 40, H: 20})
	if r != (geom.Rect{X: -45, Y: 120, W: 30, H: 15}) {
		t.Errorf("ApplyRect() = %v", r)
	}
}

func TestFitAndReset(t *testing.T) {
	v := New(DefaultLimits())
	v.Fit(geom.Rect{W: 1000, H: 500}, 500, 500)
	if v.Scale != 0.5 {
		t.Errorf("Fit scale = %v, want 0.5", v.Scale)
	}
	if v.Y != 125 || v.X != 0 {
		t.Errorf("Fit offset = (%v, %v), want (0, 125)", v.X, v.Y)
	}

	v.Reset()
	if v.X != 0 || v.Y != 0 || v.Scale != 1 {
		t.Errorf("Reset() = %+v", v)
	}
}
