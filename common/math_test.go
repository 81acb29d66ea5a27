package common

import (
	"math"
	"testing"
)

func TestArcPoint(t *testing.T) {
	cases := []struct {
		name   string
		deg    float64
		wx, wy float64
	}{
		{"right", 0, 10, 0},
		{"below", 90, 0, 10},
		{"left", 180, -10, 0},
		{"above", -90, 0, -10},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			x, y := ArcPoint(0, 0, 10, c.deg)
			if math.Abs(x-c.wx) > 1e-9 || math.Abs(y-c.wy) > 1e-9 {
				t.Fatalf("expected (%v,%v), got (%v,%v)", c.wx, c.wy, x, y)
			}
		})
	}
}

func TestRotate(t *testing.T) {
	x, y := Rotate(0, 10, 90)
	if math.Abs(x+10) > 1e-9 || math.Abs(y) > 1e-9 {
		t.Fatalf("expected (-10,0), got (%v,%v)", x, y)
	}
}

func TestClampAndSign(t *testing.T) {
	if Clamp(5, 0, 3) != 3 || Clamp(-1, 0, 3) != 0 || Clamp(2, 0, 3) != 2 {
		t.Fatalf("Clamp out of range")
	}
	if ClampInt(7, 0, 5) != 5 {
		t.Fatalf("ClampInt out of range")
	}
	if Sign(-3) != -1 || Sign(0) != 0 || Sign(2) != 1 {
		t.Fatalf("Sign wrong")
	}
}

func TestRectIntersects(t *testing.T) {
	a := RectFromCenter(0, 0, 10, 10)
	cases := []struct {
		name string
		b    Rect
		want bool
	}{
		{"overlap", RectFromCenter(4, 4, 10, 10), true},
		{"touching_edge", Rect{X: 5, Y: -5, Width: 5, Height: 5}, false},
		{"apart", RectFromCenter(50, 0, 10, 10), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := a.Intersects(c.b); got != c.want {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
		})
	}
}
