package player

import (
	"github.com/milk9111/glider/common"
	"github.com/milk9111/glider/tween"
	"go.uber.org/zap"
)

// TakeDamage removes health unless the player is already at zero or inside
// the invulnerability window. Reaching zero kills the player.
func (c *Controller) TakeDamage(amount int) {
	if c.State == StateDead || c.Health.Depleted() || c.Health.Invulnerable() {
		return
	}
	if !c.Health.Damage(amount) {
		return
	}
	c.cue(CueHurt, "")
	c.Health.SetInvulnerable(true)
	if c.invuln != nil {
		c.invuln.Stop()
	}
	c.invuln = c.sched.After(c.tuning.InvulnerableDuration, func() {
		c.invuln = nil
		c.Health.SetInvulnerable(false)
	})
	c.log.Debug("took damage", zap.Int("amount", amount), zap.Int("health", c.Health.Current()))
	if c.Health.Depleted() {
		c.Die()
	}
}

// DamagePlayer applies damage from an attacker at (ax, ay) and knocks the
// player away from it.
func (c *Controller) DamagePlayer(amount int, ax, ay float64) {
	if c.State == StateDead || c.Health.Depleted() || c.Health.Invulnerable() || amount <= 0 {
		return
	}
	if c.State == StatePoleSwinging {
		c.ReleasePole()
	}
	c.abortManeuver()
	c.TakeDamage(amount)
	if c.State == StateDead {
		return
	}

	x, _ := c.body.Position()
	dir := common.Sign(x - ax)
	if dir == 0 {
		dir = -c.facing()
	}
	c.body.SetVelocity(dir*c.tuning.KnockbackX, -c.tuning.KnockbackY)
	c.knockedBack = true
	if c.knockback != nil {
		c.knockback.Stop()
	}
	c.knockback = c.sched.After(c.tuning.KnockbackLock, func() {
		c.knockback = nil
		c.knockedBack = false
	})
}

// Die kills the player and schedules the respawn at the last checkpoint.
// Calling it again before the respawn does nothing.
func (c *Controller) Die() {
	if c.State == StateDead {
		return
	}
	c.cancelTransition()
	c.endTailwhip()
	c.damageBox.Deactivate()
	c.detachPole()
	c.DisableMovement = false
	c.knockedBack = false
	c.speed = c.tuning.MoveSpeed

	c.body.SetGravityScale(1)
	c.body.SetVelocity(0, 0)
	c.body.SetEnabled(false)
	c.setState(StateDead)

	x, y := c.body.Position()
	c.log.Info("player died", zapPoint(x, y))
	if c.hooks.OnDeath != nil {
		c.hooks.OnDeath()
	}

	c.fadeTo(0)
	c.respawn = c.sched.After(c.tuning.RespawnDelay, c.Respawn)
}

// Respawn returns a dead player to the checkpoint with full health.
func (c *Controller) Respawn() {
	if c.State != StateDead {
		return
	}
	if c.respawn != nil {
		c.respawn.Stop()
		c.respawn = nil
	}
	if c.invuln != nil {
		c.invuln.Stop()
		c.invuln = nil
	}
	cp := c.Checkpoint
	c.body.SetPosition(cp.X, cp.Y)
	c.body.SetVelocity(0, 0)
	c.body.SetAngle(0)
	c.body.SetGravityScale(1)
	c.Health.Restore()
	c.body.SetEnabled(true)
	c.body.SetDrag(c.tuning.GroundDrag)
	c.wasGrounded = false
	c.stepElapsed = 0
	c.setState(StateIdle)
	c.fadeTo(1)

	c.log.Info("player respawned", zapPoint(cp.X, cp.Y))
	if c.hooks.OnRespawn != nil {
		c.hooks.OnRespawn(cp.X, cp.Y)
	}
}

func (c *Controller) fadeTo(alpha float64) {
	if c.fade != nil {
		c.fade.Stop()
	}
	from := c.Alpha
	c.fade = c.sched.Tween(tween.Options{
		Duration: c.tuning.FadeDuration,
		OnUpdate: func(_, v float64) {
			c.Alpha = common.Lerp(from, alpha, v)
		},
	})
}

// SetCheckpoint records the respawn point.
func (c *Controller) SetCheckpoint(x, y float64) {
	if c.Checkpoint.X == x && c.Checkpoint.Y == y {
		return
	}
	c.Checkpoint = Point{X: x, Y: y}
	c.log.Info("checkpoint set", zapPoint(x, y))
	if c.hooks.OnCheckpoint != nil {
		c.hooks.OnCheckpoint(x, y)
	}
}

// Teleport moves the player to (x, y) and makes it the new checkpoint.
func (c *Controller) Teleport(x, y float64) {
	if c.State == StateDead {
		return
	}
	if c.State == StatePoleSwinging {
		c.ReleasePole()
	}
	c.abortManeuver()
	c.body.SetPosition(x, y)
	c.body.SetVelocity(0, 0)
	c.SetCheckpoint(x, y)
}
