// Package physics defines the rigid-body contract consumed by controllers and
// implements it on top of Chipmunk2D.
package physics

// Blocked reports on which sides a body is pressed against solid geometry
// after the last step.
type Blocked struct {
	Up, Down, Left, Right bool
}

// Sides reports whether any side is blocked.
func (b Blocked) Sides() bool {
	return b.Left || b.Right
}

// Surface is the solid tile found below a world point.
type Surface struct {
	Kind  string
	Top   float64
	Left  float64
	Right float64
}

// Body is a physics hitbox. Position is the center of the box, y grows down
// and angles are degrees, clockwise on screen.
type Body interface {
	Position() (x, y float64)
	SetPosition(x, y float64)
	Velocity() (x, y float64)
	SetVelocity(x, y float64)
	Angle() float64
	SetAngle(deg float64)
	Size() (w, h float64)

	Blocked() Blocked
	Grounded() bool

	// SetGravityScale multiplies world gravity for this body; 0 disables it.
	SetGravityScale(scale float64)
	GravityScale() float64
	// SetDrag sets horizontal deceleration (units/s^2) applied while grounded.
	SetDrag(drag float64)
	// SetImmovable switches between a kinematic and a dynamic body.
	SetImmovable(immovable bool)
	// SetEnabled removes the body from collision and integration while false.
	SetEnabled(enabled bool)
	Enabled() bool

	// SetOrigin moves the visual pivot, in fractions of the box size.
	// (0.5, 0.5) is the center and (0.5, 0) the top edge.
	SetOrigin(ox, oy float64)
	Origin() (ox, oy float64)
}

// SurfaceQuerier finds the surface tile at or below a world point.
type SurfaceQuerier interface {
	SurfaceBelow(x, y float64) (Surface, bool)
}
