package player

import (
	"math"

	"github.com/milk9111/glider/common"
	"github.com/milk9111/glider/tween"
)

// GrabPole hangs the player from p and starts an endless swing around its
// anchor. Returns false if the player cannot grab right now.
func (c *Controller) GrabPole(p Pole) bool {
	if p == nil || c.State == StateDead || c.State == StatePoleSwinging || c.poleLaunching {
		return false
	}
	c.cancelTransition()
	c.endTailwhip()
	c.damageBox.Deactivate()
	c.DisableMovement = false
	c.speed = c.tuning.MoveSpeed

	c.pole = p
	c.body.SetOrigin(0.5, 0)
	c.body.SetGravityScale(0)
	c.body.SetVelocity(0, 0)
	c.body.SetImmovable(true)
	c.setState(StatePoleSwinging)

	f := c.facing()
	start := 0.0
	c.swingTo(start)
	c.startTransition(tween.Options{
		Duration: c.tuning.PoleSwingPeriod,
		Ease:     tween.Swing,
		Repeat:   -1,
		OnUpdate: func(_, v float64) {
			c.swingTo(start - f*360*v)
		},
	})
	c.log.Debug("grabbed pole", zapPoint(p.Anchor()))
	return true
}

// swingTo hangs the body from the pole anchor at rotation deg.
func (c *Controller) swingTo(deg float64) {
	ax, ay := c.pole.Anchor()
	_, h := c.body.Size()
	dx, dy := common.Rotate(0, h/2, deg)
	c.poleAngle = deg
	c.body.SetPosition(ax+dx, ay+dy)
	c.body.SetAngle(deg)
	c.pole.SetAngle(deg)
}

// LaunchVelocity is the release velocity for swing angle deg: tangent to the
// swing circle in the direction of travel.
func LaunchVelocity(deg, facing, speed float64) (vx, vy float64) {
	rad := common.DegToRad(deg)
	return facing * speed * math.Cos(rad), facing * speed * math.Sin(rad)
}

// ReleasePole lets go of the pole and launches the player along the swing.
func (c *Controller) ReleasePole() {
	if c.State != StatePoleSwinging || c.poleLaunching {
		return
	}
	vx, vy := LaunchVelocity(c.poleAngle, c.facing(), c.tuning.PoleLaunchSpeed)
	pole := c.pole
	c.pole = nil

	c.cancelTransition()
	c.body.SetOrigin(0.5, 0.5)
	c.body.SetImmovable(false)
	c.body.SetGravityScale(1)
	c.body.SetDrag(0)
	c.wasGrounded = false
	c.setState(StateJumping)
	c.body.SetVelocity(vx, vy)

	poleFrom := pole.Angle()
	update := c.angleUpdater(c.body.Angle(), 0)
	c.startTransition(tween.Options{
		Duration: c.tuning.PoleReleaseDuration,
		OnUpdate: func(t, v float64) {
			update(t, v)
			pole.SetAngle(common.Lerp(poleFrom, 0, v))
		},
		OnComplete: func() {
			c.transition = nil
			c.poleLaunching = false
			c.releasedPole = nil
		},
	})
	c.poleLaunching = true
	c.releasedPole = pole
}

// detachPole drops the pole without launching, used on death.
func (c *Controller) detachPole() {
	if c.pole == nil {
		return
	}
	c.pole.SetAngle(0)
	c.pole = nil
	c.body.SetOrigin(0.5, 0.5)
	c.body.SetImmovable(false)
}
