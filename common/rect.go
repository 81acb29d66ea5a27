package common

// Rect is an axis-aligned box with its origin at the top-left corner.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// RectFromCenter builds a Rect of the given size centered on (cx, cy).
func RectFromCenter(cx, cy, w, h float64) Rect {
	return Rect{X: cx - w/2, Y: cy - h/2, Width: w, Height: h}
}

func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

func (r Rect) Center() (x, y float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

func (r Rect) Right() float64 {
	return r.X + r.Width
}
