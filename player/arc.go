package player

import (
	"math"

	"github.com/milk9111/glider/common"
	"github.com/milk9111/glider/tween"
)

// arc is a circular path sampled by angle. Angles are degrees, clockwise on
// screen, measured from the positive x axis.
type arc struct {
	cx, cy float64
	radius float64
	start  float64
	sweep  float64
}

// arcThrough builds an arc of radius r whose start angle passes through (x, y).
func arcThrough(x, y, r, start, sweep float64) arc {
	rad := common.DegToRad(start)
	return arc{
		cx:     x - r*math.Cos(rad),
		cy:     y - r*math.Sin(rad),
		radius: r,
		start:  start,
		sweep:  sweep,
	}
}

// at samples the arc at progress v in [0, 1].
func (a arc) at(v float64) (x, y float64) {
	return common.ArcPoint(a.cx, a.cy, a.radius, a.start+a.sweep*v)
}

// beginManeuver locks input and parks the body so the arc alone moves it.
func (c *Controller) beginManeuver(s State) {
	c.endTailwhip()
	c.cancelTransition()
	c.DisableMovement = true
	c.storedVX, c.storedVY = c.body.Velocity()
	c.setState(s)
	c.body.SetVelocity(0, 0)
	c.body.SetGravityScale(0)
}

// StartGlideTurn reverses the glide direction along a half loop that dips
// below the current height. Only valid while GLIDING.
func (c *Controller) StartGlideTurn() {
	if c.State != StateGliding {
		return
	}
	f := c.facing()
	g := c.tuning.GlideAngle
	x, y := c.body.Position()
	path := arcThrough(x, y, c.tuning.TurnRadius, 90-f*(180-g), f*(180-2*g))

	c.beginManeuver(StateGlideTurning)
	c.startTransition(tween.Options{
		Duration: c.tuning.TurnDuration,
		OnUpdate: func(_, v float64) {
			c.body.SetPosition(path.at(v))
			c.body.SetAngle(common.Lerp(f*g, -f*g, v))
			c.body.SetVelocity(0, 0)
		},
		OnComplete: c.finishGlideTurn,
	})
}

func (c *Controller) finishGlideTurn() {
	c.transition = nil
	c.DisableMovement = false
	c.FacingRight = !c.FacingRight
	c.setState(StateGliding)
	c.speed = c.tuning.glideSpeed()
	c.body.SetGravityScale(c.tuning.GlideGravityScale)
	c.body.SetAngle(c.facing() * c.tuning.GlideAngle)
	c.body.SetVelocity(c.facing()*math.Abs(c.storedVX), c.storedVY)
}

// StartGlideSpin flies a full loop above the current position with the
// spin DamageBox active. Only valid while GLIDING.
func (c *Controller) StartGlideSpin() {
	if c.State != StateGliding {
		return
	}
	f := c.facing()
	r := c.tuning.SpinRadius
	x, y := c.body.Position()
	path := arc{cx: x, cy: y - r, radius: r, start: 90, sweep: -f * 360}
	baseAngle := c.body.Angle()

	c.beginManeuver(StateGlideSpinning)
	box := c.tuning.SpinBox
	c.damageBox.Activate(box.Width, box.Height, box.Damage)
	c.startTransition(tween.Options{
		Duration: c.tuning.SpinDuration,
		OnUpdate: func(_, v float64) {
			if c.interruptSpin() {
				return
			}
			c.body.SetPosition(path.at(v))
			c.body.SetAngle(baseAngle + path.sweep*v)
			c.body.SetVelocity(0, 0)
			c.placeDamageBox()
		},
		OnComplete: c.finishGlideSpin,
	})
}

func (c *Controller) finishGlideSpin() {
	c.transition = nil
	c.damageBox.Deactivate()
	c.DisableMovement = false
	c.setState(StateGliding)
	c.speed = c.tuning.glideSpeed()
	c.body.SetGravityScale(c.tuning.GlideGravityScale)
	c.body.SetAngle(c.facing() * c.tuning.GlideAngle)
	c.body.SetVelocity(c.storedVX, c.storedVY)
}

// interruptSpin aborts the spin when the body hits geometry. A hit from
// below lands the player on the surface; any other side drops it, nudged
// away from the contact by half its size.
func (c *Controller) interruptSpin() bool {
	b := c.body.Blocked()
	x, y := c.body.Position()
	w, h := c.body.Size()
	switch {
	case b.Up:
		c.abortSpin(StateFalling)
		c.body.SetPosition(x, y+h/2)
	case b.Down:
		c.abortSpin(StateIdle)
		if c.surfaces != nil {
			if s, ok := c.surfaces.SurfaceBelow(x, y); ok {
				y = s.Top - h/2
			}
		}
		c.body.SetPosition(x, y)
		c.body.SetVelocity(0, 0)
		c.body.SetAngle(0)
	case b.Left:
		c.abortSpin(StateFalling)
		c.body.SetPosition(x+w/2, y)
	case b.Right:
		c.abortSpin(StateFalling)
		c.body.SetPosition(x-w/2, y)
	default:
		return false
	}
	c.log.Debug("glide spin interrupted", zapPoint(x, y))
	return true
}

func (c *Controller) abortSpin(to State) {
	c.cancelTransition()
	c.damageBox.Deactivate()
	c.DisableMovement = false
	c.speed = c.tuning.MoveSpeed
	c.body.SetGravityScale(1)
	c.setState(to)
	if to == StateFalling {
		c.resetAngle()
	}
}

// abortManeuver drops out of any arc or glide, used when something external
// such as damage cuts the maneuver short.
func (c *Controller) abortManeuver() {
	switch c.State {
	case StateGlideSpinning:
		c.abortSpin(StateFalling)
	case StateGlideTurning:
		c.cancelTransition()
		c.DisableMovement = false
		c.speed = c.tuning.MoveSpeed
		c.body.SetGravityScale(1)
		c.setState(StateFalling)
		c.resetAngle()
	case StateGliding:
		c.StopGlide()
	default:
		if c.glideStarting {
			c.StopGlide()
		}
	}
}
