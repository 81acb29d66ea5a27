package player

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/glider/common"
	"github.com/milk9111/glider/physics"
)

func TestGlideEntry(t *testing.T) {
	h := newHarness(t)
	h.tick(Input{MoveX: 1})
	h.body.vy = 120
	h.tick(Input{MoveX: 1, JumpPressed: true})

	require.True(t, h.c.GlideStarting())
	assert.NotEqual(t, StateGliding, h.c.State, "glide waits for the start rotation")

	h.runFor(h.c.tuning.GlideStartDuration, Input{MoveX: 1})

	assert.Equal(t, StateGliding, h.c.State)
	assert.False(t, h.c.GlideStarting())
	assert.True(t, h.c.FacingRight)
	assert.Zero(t, h.body.vy)
	assert.Equal(t, h.c.tuning.GlideGravityScale, h.body.gravityScale)
	assert.InDelta(t, h.c.tuning.MoveSpeed*h.c.tuning.GlideSpeedFactor, h.body.vx, 1e-9)
	assert.InDelta(t, h.c.tuning.GlideAngle, h.body.angle, 1e-9)
}

func TestDefaultGlideGravityLifts(t *testing.T) {
	scale := DefaultTuning().GlideGravityScale
	assert.Negative(t, scale, "a steady glide drifts upward")
	assert.Greater(t, scale, -0.1)
}

func TestGlideNeedsHorizontalSpeed(t *testing.T) {
	h := newHarness(t)
	h.tick(Input{JumpPressed: true})
	assert.False(t, h.c.GlideStarting())
}

func TestGlideStartAbortedByLanding(t *testing.T) {
	h := newHarness(t)
	h.tick(Input{MoveX: 1})
	h.tick(Input{MoveX: 1, JumpPressed: true})
	require.True(t, h.c.GlideStarting())

	h.body.blocked = physics.Blocked{Down: true}
	h.runFor(h.c.tuning.GlideStartDuration, Input{MoveX: 1})

	assert.False(t, h.c.GlideStarting())
	assert.Equal(t, StateRunning, h.c.State)
	assert.Zero(t, h.body.angle)
}

func TestGlideStartAbortedByWall(t *testing.T) {
	h := newHarness(t)
	h.tick(Input{MoveX: 1})
	h.tick(Input{MoveX: 1, JumpPressed: true})
	require.True(t, h.c.GlideStarting())

	h.body.blocked = physics.Blocked{Right: true}
	h.runFor(h.c.tuning.GlideStartDuration, Input{MoveX: 1})

	assert.False(t, h.c.GlideStarting())
	assert.False(t, h.c.State.InGlideFamily(), "state = %v", h.c.State)
	assert.Equal(t, 1.0, h.body.gravityScale)
	assert.Zero(t, h.body.angle)
}

func TestGlideExit(t *testing.T) {
	tests := []struct {
		name    string
		in      Input
		blocked physics.Blocked
	}{
		{"jump", Input{JumpPressed: true}, physics.Blocked{}},
		{"wall", Input{}, physics.Blocked{Right: true}},
		{"ground", Input{}, physics.Blocked{Down: true}},
		{"ceiling", Input{}, physics.Blocked{Up: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.glideRight()

			h.body.blocked = tt.blocked
			h.tick(tt.in)

			assert.False(t, h.c.State.InGlideFamily(), "state = %v", h.c.State)
			assert.Equal(t, 1.0, h.body.gravityScale)
			assert.Equal(t, h.c.tuning.MoveSpeed, h.c.speed)

			h.runFor(h.c.tuning.AngleResetDuration, Input{})
			assert.Zero(t, h.body.angle)
		})
	}
}

func TestGlideTurn(t *testing.T) {
	h := newHarness(t)
	h.glideRight()
	x0, y0 := h.body.Position()
	vx0 := h.body.vx
	require.Greater(t, vx0, 0.0)

	h.tick(Input{MoveX: -1})
	require.Equal(t, StateGlideTurning, h.c.State)
	assert.True(t, h.c.DisableMovement)
	assert.Zero(t, h.body.gravityScale)

	h.runFor(h.c.tuning.TurnDuration, Input{MoveX: -1})

	assert.Equal(t, StateGliding, h.c.State)
	assert.False(t, h.c.FacingRight)
	assert.False(t, h.c.DisableMovement)
	assert.Less(t, h.body.vx, 0.0)
	assert.InDelta(t, math.Abs(vx0), math.Abs(h.body.vx), 1e-9)
	assert.InDelta(t, -h.c.tuning.GlideAngle, h.body.angle, 1e-9)

	// The half loop ends straight below its start.
	g := common.DegToRad(h.c.tuning.GlideAngle)
	drop := 2 * h.c.tuning.TurnRadius * math.Cos(g)
	x, y := h.body.Position()
	assert.InDelta(t, x0, x, 1e-6)
	assert.InDelta(t, y0+drop, y, 1e-6)
}

func TestGlideTurnEndingOnGroundStopsGlide(t *testing.T) {
	h := newHarness(t)
	h.glideRight()
	h.tick(Input{MoveX: -1})
	require.Equal(t, StateGlideTurning, h.c.State)

	// the half loop dips into the floor before it completes
	h.ticks(10, Input{})
	h.body.blocked = physics.Blocked{Down: true}
	h.runFor(h.c.tuning.TurnDuration, Input{})
	h.ticks(30, Input{})

	assert.False(t, h.c.State.InGlideFamily(), "state = %v", h.c.State)
	assert.Equal(t, StateIdle, h.c.State)
	assert.False(t, h.c.FacingRight)
	assert.False(t, h.c.DisableMovement)
	assert.Equal(t, 1.0, h.body.gravityScale)
	assert.Equal(t, h.c.tuning.MoveSpeed, h.c.speed)
	assert.Zero(t, h.body.angle)
}

func TestGlideTurnEndingAgainstWallStopsGlide(t *testing.T) {
	h := newHarness(t)
	h.glideRight()
	h.tick(Input{MoveX: -1})
	require.Equal(t, StateGlideTurning, h.c.State)

	h.body.blocked = physics.Blocked{Left: true}
	h.runFor(h.c.tuning.TurnDuration, Input{})

	assert.False(t, h.c.State.InGlideFamily(), "state = %v", h.c.State)
	assert.False(t, h.c.DisableMovement)
	assert.Equal(t, 1.0, h.body.gravityScale)
}

func TestGlideTurnIgnoresSameDirection(t *testing.T) {
	h := newHarness(t)
	h.glideRight()
	h.tick(Input{MoveX: 1})
	assert.Equal(t, StateGliding, h.c.State)
}

func TestGlideSpinCompletes(t *testing.T) {
	h := newHarness(t)
	h.glideRight()
	x0, y0 := h.body.Position()
	vx0, vy0 := h.body.Velocity()

	h.tick(Input{SpinPressed: true})
	require.Equal(t, StateGlideSpinning, h.c.State)
	assert.True(t, h.c.DisableMovement)
	box := h.c.DamageBox()
	require.True(t, box.Active())
	assert.Equal(t, h.c.tuning.SpinBox.Damage, box.Damage())

	// Halfway round the loop the player is at the top of the circle.
	h.runFor(h.c.tuning.SpinDuration/2-2*frame, Input{})
	_, y := h.body.Position()
	assert.Less(t, y, y0-h.c.tuning.SpinRadius)

	h.runFor(h.c.tuning.SpinDuration/2, Input{})

	assert.Equal(t, StateGliding, h.c.State)
	assert.False(t, h.c.DisableMovement)
	assert.False(t, box.Active())
	x, y := h.body.Position()
	assert.InDelta(t, x0, x, 1e-6)
	assert.InDelta(t, y0, y, 1e-6)
	vx, vy := h.body.Velocity()
	assert.Equal(t, vx0, vx)
	assert.Equal(t, vy0, vy)
}

func TestGlideSpinEndsTailwhip(t *testing.T) {
	h := newHarness(t)
	h.glideRight()
	h.tick(Input{AttackPressed: true})
	require.True(t, h.c.Tailwhipping())

	h.tick(Input{SpinPressed: true})

	assert.False(t, h.c.Tailwhipping())
	assert.Equal(t, StateGlideSpinning, h.c.State)
	assert.Equal(t, h.c.tuning.SpinBox.Damage, h.c.DamageBox().Damage())
}

func TestGlideSpinInterrupted(t *testing.T) {
	tests := []struct {
		name      string
		blocked   physics.Blocked
		wantState State
		nudge     func(x, y, w, h float64) (float64, float64)
	}{
		{"up", physics.Blocked{Up: true}, StateFalling, func(x, y, w, h float64) (float64, float64) { return x, y + h/2 }},
		{"left", physics.Blocked{Left: true}, StateFalling, func(x, y, w, h float64) (float64, float64) { return x + w/2, y }},
		{"right", physics.Blocked{Right: true}, StateFalling, func(x, y, w, h float64) (float64, float64) { return x - w/2, y }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.glideRight()
			h.tick(Input{SpinPressed: true})
			h.ticks(10, Input{})
			require.Equal(t, StateGlideSpinning, h.c.State)

			x, y := h.body.Position()
			wantX, wantY := tt.nudge(x, y, h.body.w, h.body.h)
			h.body.blocked = tt.blocked
			h.sched.Update(frame)

			assert.Equal(t, tt.wantState, h.c.State)
			assert.False(t, h.c.DisableMovement)
			assert.False(t, h.c.DamageBox().Active())
			assert.Equal(t, 1.0, h.body.gravityScale)
			assert.InDelta(t, wantX, h.body.x, 1e-9)
			assert.InDelta(t, wantY, h.body.y, 1e-9)

			// The arc is gone: later frames leave the body alone.
			h.body.blocked = physics.Blocked{}
			h.sched.Update(frame)
			assert.InDelta(t, wantX, h.body.x, 1e-9)
		})
	}
}

func TestGlideSpinLandsOnSurface(t *testing.T) {
	h := newHarness(t)
	h.glideRight()
	h.tick(Input{SpinPressed: true})
	h.ticks(10, Input{})

	h.body.vy = 90
	h.body.blocked = physics.Blocked{Down: true}
	h.sched.Update(frame)

	assert.Equal(t, StateIdle, h.c.State)
	assert.Zero(t, h.body.vy)
	assert.Zero(t, h.body.angle)
	assert.InDelta(t, 320-h.body.h/2, h.body.y, 1e-9)
	assert.False(t, h.c.DisableMovement)
}
