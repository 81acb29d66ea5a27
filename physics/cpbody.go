package physics

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/glider/common"
)

// CPBody is a Body backed by a Chipmunk body with a single box shape.
type CPBody struct {
	space *Space
	body  *cp.Body
	shape *cp.Shape

	w, h         float64
	gravityScale float64
	drag         float64
	immovable    bool
	enabled      bool
	ox, oy       float64

	blocked Blocked
}

var _ Body = (*CPBody)(nil)

func (b *CPBody) Position() (float64, float64) {
	p := b.body.Position()
	return p.X, p.Y
}

func (b *CPBody) SetPosition(x, y float64) {
	b.body.SetPosition(cp.Vector{X: x, Y: y})
}

func (b *CPBody) Velocity() (float64, float64) {
	v := b.body.Velocity()
	return v.X, v.Y
}

func (b *CPBody) SetVelocity(x, y float64) {
	b.body.SetVelocity(x, y)
}

func (b *CPBody) Angle() float64 {
	return common.RadToDeg(b.body.Angle())
}

func (b *CPBody) SetAngle(deg float64) {
	b.body.SetAngle(common.DegToRad(deg))
}

func (b *CPBody) Size() (float64, float64) {
	return b.w, b.h
}

func (b *CPBody) Blocked() Blocked {
	return b.blocked
}

func (b *CPBody) Grounded() bool {
	return b.blocked.Down
}

func (b *CPBody) SetGravityScale(scale float64) {
	b.gravityScale = scale
}

func (b *CPBody) GravityScale() float64 {
	return b.gravityScale
}

func (b *CPBody) SetDrag(drag float64) {
	b.drag = math.Abs(drag)
}

func (b *CPBody) SetImmovable(immovable bool) {
	if b.immovable == immovable {
		return
	}
	b.immovable = immovable
	if immovable {
		b.body.SetType(cp.BODY_KINEMATIC)
		b.body.SetVelocity(0, 0)
		return
	}
	b.body.SetType(cp.BODY_DYNAMIC)
	// The box shape carries no mass, so restore it after the type switch.
	b.body.SetMass(1)
	b.body.SetMoment(math.Inf(1))
}

func (b *CPBody) SetEnabled(enabled bool) {
	b.enabled = enabled
	b.shape.SetSensor(!enabled)
	if !enabled {
		b.body.SetVelocity(0, 0)
		b.blocked = Blocked{}
	}
}

func (b *CPBody) Enabled() bool {
	return b.enabled
}

func (b *CPBody) SetOrigin(ox, oy float64) {
	b.ox, b.oy = ox, oy
}

func (b *CPBody) Origin() (float64, float64) {
	return b.ox, b.oy
}

func (b *CPBody) updateVelocity(body *cp.Body, gravity cp.Vector, damping, dt float64) {
	if b.immovable {
		return
	}
	if !b.enabled {
		body.SetVelocity(0, 0)
		return
	}
	cp.BodyUpdateVelocity(body, gravity.Mult(b.gravityScale), damping, dt)
	if b.drag <= 0 || !b.blocked.Down {
		return
	}
	v := body.Velocity()
	dv := b.drag * dt
	if math.Abs(v.X) <= dv {
		v.X = 0
	} else {
		v.X -= common.Sign(v.X) * dv
	}
	body.SetVelocityVector(v)
}

// clipVelocity drops the velocity components that point into sides blocked
// after the last step. Chipmunk moves bodies before it solves contacts, so
// speed forced into a wall every frame must not reach the position update.
func (b *CPBody) clipVelocity() {
	if b.immovable || !b.enabled || b.blocked == (Blocked{}) {
		return
	}
	v := b.body.Velocity()
	if (b.blocked.Right && v.X > 0) || (b.blocked.Left && v.X < 0) {
		v.X = 0
	}
	if (b.blocked.Down && v.Y > 0) || (b.blocked.Up && v.Y < 0) {
		v.Y = 0
	}
	b.body.SetVelocityVector(v)
}

func (b *CPBody) refreshContacts() {
	b.blocked = Blocked{}
	if !b.enabled {
		return
	}
	b.body.EachArbiter(func(arb *cp.Arbiter) {
		a, o := arb.Shapes()
		if a.Sensor() || o.Sensor() {
			return
		}
		// The normal points away from this body toward what it touches.
		n := arb.Normal()
		if a != b.shape {
			n = n.Neg()
		}
		if n.Y > 0.5 {
			b.blocked.Down = true
		} else if n.Y < -0.5 {
			b.blocked.Up = true
		}
		if n.X > 0.5 {
			b.blocked.Right = true
		} else if n.X < -0.5 {
			b.blocked.Left = true
		}
	})
}
