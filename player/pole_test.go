package player

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/glider/physics"
)

func TestLaunchVelocity(t *testing.T) {
	tests := []struct {
		name           string
		deg, facing    float64
		wantVX, wantVY float64
	}{
		{"bottom facing right", 0, 1, 100, 0},
		{"bottom facing left", 0, -1, -100, 0},
		{"quarter forward right", -90, 1, 0, -100},
		{"quarter forward left", 90, -1, 0, -100},
		{"rising right", -45, 1, 100 / math.Sqrt2, -100 / math.Sqrt2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vx, vy := LaunchVelocity(tt.deg, tt.facing, 100)
			assert.InDelta(t, tt.wantVX, vx, 1e-9)
			assert.InDelta(t, tt.wantVY, vy, 1e-9)
		})
	}
}

func TestPoleSwing(t *testing.T) {
	h := newHarness(t)
	pole := &fakePole{x: 500, y: 200}
	h.glideRight()

	require.True(t, h.c.GrabPole(pole))

	assert.Equal(t, StatePoleSwinging, h.c.State)
	assert.False(t, h.c.DisableMovement)
	assert.True(t, h.body.immovable)
	assert.Zero(t, h.body.gravityScale)
	ox, oy := h.body.Origin()
	assert.Equal(t, 0.5, ox)
	assert.Zero(t, oy)
	assert.InDelta(t, 500, h.body.x, 1e-9)
	assert.InDelta(t, 200+h.body.h/2, h.body.y, 1e-9)

	h.ticks(20, Input{})
	assert.Equal(t, StatePoleSwinging, h.c.State)
	assert.Less(t, h.body.angle, 0.0, "facing right swings counter-clockwise")
	assert.Equal(t, h.body.angle, pole.angle)
	dist := math.Hypot(h.body.x-500, h.body.y-200)
	assert.InDelta(t, h.body.h/2, dist, 1e-9, "body stays hung from the anchor")

	// The swing loops until released.
	h.runFor(3*h.c.tuning.PoleSwingPeriod, Input{})
	assert.Equal(t, StatePoleSwinging, h.c.State)

	angle := h.body.angle
	wantVX, wantVY := LaunchVelocity(angle, 1, h.c.tuning.PoleLaunchSpeed)
	h.c.SetInput(Input{JumpPressed: true})
	h.c.PreStep(frame)

	assert.Equal(t, StateJumping, h.c.State)
	assert.InDelta(t, wantVX, h.body.vx, 1e-9)
	assert.InDelta(t, wantVY, h.body.vy, 1e-9)
	assert.False(t, h.body.immovable)
	assert.Equal(t, 1.0, h.body.gravityScale)
	ox, oy = h.body.Origin()
	assert.Equal(t, 0.5, oy)
	assert.Equal(t, 0.5, ox)
	assert.True(t, h.c.PoleLaunching())
	assert.False(t, h.c.GrabPole(pole), "no re-grab mid launch")

	h.runFor(h.c.tuning.PoleReleaseDuration, Input{})
	assert.False(t, h.c.PoleLaunching())
	assert.Zero(t, h.body.angle)
	assert.Zero(t, pole.angle)
}

func TestPoleLaunchKeepsMomentum(t *testing.T) {
	h := newHarness(t)
	h.c.GrabPole(&fakePole{x: 500, y: 200})
	h.ticks(5, Input{})
	h.tick(Input{JumpPressed: true})
	vx := h.body.vx
	require.NotZero(t, vx)

	h.tick(Input{})
	assert.Equal(t, vx, h.body.vx, "input does not cancel the launch")
}

func TestPoleSwingIgnoresPhysicsFlags(t *testing.T) {
	h := newHarness(t)
	h.c.GrabPole(&fakePole{x: 500, y: 200})
	h.body.blocked = physics.Blocked{Down: true, Left: true}

	h.ticks(10, Input{MoveX: -1, AttackPressed: true})

	assert.Equal(t, StatePoleSwinging, h.c.State)
	assert.False(t, h.c.Tailwhipping())
}
