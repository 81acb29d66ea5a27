package player

import (
	"math"
	"time"

	"github.com/milk9111/glider/common"
)

// PreStep applies input to the body before the physics step.
func (c *Controller) PreStep(dt time.Duration) {
	in := c.input
	c.input = Input{}
	if c.State == StateDead || !c.CanMove || c.DisableMovement {
		return
	}

	switch c.State {
	case StatePoleSwinging:
		if in.JumpPressed {
			c.ReleasePole()
		}
		return
	case StateGlideTurning, StateGlideSpinning:
		return
	case StateGliding:
		c.handleGlideInput(in)
		return
	}

	_, vy := c.body.Velocity()
	if !c.glideStarting && !c.knockedBack && !c.poleLaunching {
		c.body.SetVelocity(in.MoveX*c.speed, vy)
		if in.MoveX > 0 {
			c.FacingRight = true
		} else if in.MoveX < 0 {
			c.FacingRight = false
		}
	}

	if in.JumpPressed {
		if c.body.Grounded() {
			c.jump()
		} else {
			vx, _ := c.body.Velocity()
			if math.Abs(vx) > c.tuning.HorizontalTolerance && !c.glideStarting && !c.poleLaunching {
				c.startGlide(common.Sign(vx))
			}
		}
	}
	if in.AttackPressed {
		c.Tailwhip()
	}
}

func (c *Controller) jump() {
	vx, _ := c.body.Velocity()
	c.body.SetDrag(0)
	c.body.SetVelocity(vx, -c.tuning.JumpSpeed)
	c.wasGrounded = false
	c.setState(StateJumping)
	c.cue(CueJump, "")
}

// PostStep classifies the body's physical condition after the physics step.
func (c *Controller) PostStep(dt time.Duration) {
	if c.State == StateDead {
		return
	}
	x, y := c.body.Position()
	_, h := c.body.Size()
	if c.lowerBound > 0 && y-h/2 > c.lowerBound {
		c.log.Info("fell out of level", zapPoint(x, y))
		c.Die()
		return
	}
	defer c.placeDamageBox()
	if c.State == StatePoleSwinging {
		return
	}

	blocked := c.body.Blocked()
	grounded := c.body.Grounded()
	vx, vy := c.body.Velocity()

	if blocked.Sides() || blocked.Up {
		c.collisionCleanup()
	}

	if grounded {
		if !c.wasGrounded {
			c.landed()
		} else {
			// a turn or spin can finish already standing on the ground
			c.collisionCleanup()
		}
		if !c.State.overridesPhysics() {
			if math.Abs(vx) > c.tuning.HorizontalTolerance {
				c.setState(StateRunning)
			} else {
				c.setState(StateIdle)
			}
		}
	} else {
		if c.wasGrounded {
			c.body.SetDrag(0)
		}
		if !c.State.overridesPhysics() && math.Abs(vy) > c.tuning.VerticalTolerance {
			if vy > 0 {
				c.setState(StateFalling)
			} else {
				c.setState(StateJumping)
			}
		}
	}
	c.wasGrounded = grounded

	c.footsteps(dt)
}

func (c *Controller) landed() {
	c.body.SetDrag(c.tuning.GroundDrag)
	if kind := c.surfaceKind(); kind != "" {
		c.cue(CueLanding, kind)
	}
	c.collisionCleanup()
}

// collisionCleanup ends a steady glide or a pending glide start when the
// body touches any solid. Arc maneuvers handle their own contacts.
func (c *Controller) collisionCleanup() {
	if c.State == StateGliding || c.glideStarting {
		c.StopGlide()
	}
}

func (c *Controller) footsteps(dt time.Duration) {
	if c.State != StateRunning {
		c.stepElapsed = 0
		return
	}
	c.stepElapsed += dt
	if c.stepElapsed < c.tuning.FootstepInterval {
		return
	}
	c.stepElapsed -= c.tuning.FootstepInterval
	if kind := c.surfaceKind(); kind != "" {
		c.cue(CueFootstep, kind)
	}
}
