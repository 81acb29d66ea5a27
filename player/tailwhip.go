package player

// Tailwhip starts the melee attack. It is ignored during arc maneuvers, pole
// swings, a pending glide start, or while a tailwhip is already running.
func (c *Controller) Tailwhip() {
	if c.tailwhipping || c.glideStarting {
		return
	}
	switch c.State {
	case StateGlideTurning, StateGlideSpinning, StatePoleSwinging, StateDead:
		return
	}

	box := c.tuning.TailwhipBox
	if c.State == StateGliding {
		box = c.tuning.GlideTailwhipBox
	}
	c.tailwhipping = true
	c.damageBox.Activate(box.Width, box.Height, box.Damage)
	c.placeDamageBox()
	c.animate("tailwhip")
	c.cue(CueTailwhip, "")
	c.tailwhip = c.sched.After(c.tuning.TailwhipDuration, c.finishTailwhip)
}

func (c *Controller) finishTailwhip() {
	c.tailwhip = nil
	c.endTailwhip()
	if c.State == StateGliding {
		c.applyGlide(false)
		c.animate(c.State.String())
		return
	}
	c.body.SetAngle(0)
	c.animate(c.State.String())
}

// endTailwhip deactivates the attack without the completion side effects.
func (c *Controller) endTailwhip() {
	if !c.tailwhipping {
		return
	}
	c.tailwhipping = false
	if c.tailwhip != nil {
		c.tailwhip.Stop()
		c.tailwhip = nil
	}
	c.damageBox.Deactivate()
}

// Hit describes a landed attack, reported back to the attacker for scoring.
type Hit struct {
	Target       uint64
	Damage       int
	HealthBefore int
	Killed       bool
	// Bounty is the target's kill reward.
	Bounty int
}

// ScoreHit awards points for a hit made with the player's DamageBox. A spin
// hit scores damage plus the overkill term health-damage, which nets the
// target's health before the hit.
func (c *Controller) ScoreHit(hit Hit) {
	if hit.Damage <= 0 {
		return
	}
	score := hit.Damage
	if c.State == StateGlideSpinning {
		score += hit.HealthBefore - hit.Damage
	}
	if hit.Killed {
		score += hit.Bounty
	}
	c.AddScore(score)
}

// AddScore changes the score and notifies the score collaborator.
func (c *Controller) AddScore(delta int) {
	if delta == 0 {
		return
	}
	c.Score += delta
	if c.hooks.OnScoreChanged != nil {
		c.hooks.OnScoreChanged(delta)
	}
}
