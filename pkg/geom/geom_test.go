package geom

import (
	"math"
	"testing"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestRectAnchors(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 100, H: 40}

	if got := r.TopCenter(); got != (Point{60, 20}) {
		t.Errorf("TopCenter() = %v", got)
	}
	if got := r.BottomCenter(); got != (Point{60, 60}) {
		t.Errorf("BottomCenter() = %v", got)
	}
	if got := r.Center(); got != (Point{60, 40}) {
		t.Errorf("Center() = %v", got)
	}
	if got := r.Scale(0.5); got != (Rect{5, 10, 50, 20}) {
		t.Errorf("Scale() = %v", got)
	}
	if got := r.Translate(Point{-10, 5}); got != (Rect{0, 25, 100, 40}) {
		t.Errorf("Translate() = %v", got)
	}
}

func TestRectUnion(t *testing.T) {
	a := Rect{0, 0, 10, 10}
	b := Rect{20, 5, 10, 20}
	if got := a.Union(b); got != (Rect{0, 0, 30, 25}) {
		t.Errorf("Union() = %v", got)
	}
	if got := (Rect{}).Union(b); got != b {
		t.Errorf("zero Union() = %v", got)
	}
}

func TestVerticalCurve(t *testing.T) {
	c := VerticalCurve(Point{100, 50}, Point{300, 150})

	if c.C1 != (Point{100, 100}) || c.C2 != (Point{300, 100}) {
		t.Errorf("control points = %v, %v", c.C1, c.C2)
	}
	if got := c.At(0); got != c.From {
		t.Errorf("At(0) = %v", got)
	}
	if got := c.At(1); !near(got.X, 300) || !near(got.Y, 150) {
		t.Errorf("At(1) = %v", got)
	}
	mid := c.At(0.5)
	if !near(mid.X, 200) || !near(mid.Y, 100) {
		t.Errorf("At(0.5) = %v, want symmetric midpoint", mid)
	}
}

func TestCurveSample(t *testing.T) {
	pts := VerticalCurve(Point{0, 0}, Point{0, 10}).Sample(4)
	if len(pts) != 5 {
		t.Fatalf("Sample(4) returned %d points", len(pts))
	}
	for i := 1; i < len(pts); i++ {
		if pts[i].Y < pts[i-1].Y {
			t.Errorf("vertical curve not monotonic at %d: %v", i, pts)
		}
	}
	if got := len(VerticalCurve(Point{}, Point{}).Sample(0)); got != 2 {
		t.Errorf("Sample(0) returned %d points, want 2", got)
	}
}

func TestCurvePath(t *testing.T) {
	c := VerticalCurve(Point{10, 20}, Point{30.5, 60})
	want := "M 10 20 C 10 40, 30.5 40, 30.5 60"
	if got := c.Path(); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 100, H: 40}
	tests := []struct {
		p    Point
		want bool
	}{
		{Point{10, 20}, true},
		{Point{110, 60}, true},
		{Point{50, 40}, true},
		{Point{9.9, 40}, false},
		{Point{50, 60.1}, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}
