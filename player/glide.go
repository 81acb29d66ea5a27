package player

import (
	"github.com/milk9111/glider/common"
	"github.com/milk9111/glider/tween"
)

// startGlide rotates the body to the glide angle and enters GLIDING once the
// rotation completes.
func (c *Controller) startGlide(dir float64) {
	c.startTransition(tween.Options{
		Duration: c.tuning.GlideStartDuration,
		Ease:     tween.OutQuad,
		OnUpdate: c.angleUpdater(c.body.Angle(), dir*c.tuning.GlideAngle),
		OnComplete: func() {
			c.glideStarting = false
			c.enterGlide()
		},
	})
	c.glideStarting = true
	c.glideDir = dir
}

func (c *Controller) angleUpdater(from, to float64) func(t, v float64) {
	return func(_, v float64) {
		c.body.SetAngle(common.Lerp(from, to, v))
	}
}

func (c *Controller) enterGlide() {
	if c.State == StateDead {
		return
	}
	if c.body.Grounded() {
		c.resetAngle()
		return
	}
	c.FacingRight = c.glideDir > 0
	c.setState(StateGliding)
	c.body.SetDrag(0)
	c.applyGlide(true)
}

// applyGlide sets glide gravity and forward speed. zeroVertical also cancels
// any vertical velocity, as on glide entry.
func (c *Controller) applyGlide(zeroVertical bool) {
	c.speed = c.tuning.glideSpeed()
	c.body.SetGravityScale(c.tuning.GlideGravityScale)
	_, vy := c.body.Velocity()
	if zeroVertical {
		vy = 0
	}
	c.body.SetVelocity(c.facing()*c.speed, vy)
}

func (c *Controller) handleGlideInput(in Input) {
	switch {
	case in.JumpPressed:
		c.StopGlide()
	case in.SpinPressed:
		c.StartGlideSpin()
	case in.MoveX != 0 && (in.MoveX > 0) != c.FacingRight:
		c.StartGlideTurn()
	default:
		if in.AttackPressed {
			c.Tailwhip()
		}
		_, vy := c.body.Velocity()
		c.body.SetVelocity(c.facing()*c.speed, vy)
	}
}

// StopGlide leaves the glide: gravity and move speed return to normal and,
// unless an arc maneuver is in flight, the body rotation eases back to zero.
func (c *Controller) StopGlide() {
	if !c.State.InGlideFamily() && !c.glideStarting {
		return
	}
	maneuvering := c.State == StateGlideTurning || c.State == StateGlideSpinning
	c.body.SetGravityScale(1)
	c.speed = c.tuning.MoveSpeed
	if c.State == StateGliding {
		c.setState(StateFalling)
	}
	if !maneuvering {
		c.resetAngle()
	}
}
