package common

import "math"

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampInt limits v to [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Sign returns -1, 0 or 1.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// ArcPoint returns the point on the circle centered at (cx, cy) with radius r
// at angle deg. Angles are measured in screen space (y down), so increasing
// the angle moves clockwise on screen.
func ArcPoint(cx, cy, r, deg float64) (x, y float64) {
	rad := DegToRad(deg)
	return cx + r*math.Cos(rad), cy + r*math.Sin(rad)
}

// Rotate rotates (x, y) around the origin by deg, clockwise on screen.
func Rotate(x, y, deg float64) (rx, ry float64) {
	rad := DegToRad(deg)
	sin, cos := math.Sincos(rad)
	return x*cos - y*sin, x*sin + y*cos
}
