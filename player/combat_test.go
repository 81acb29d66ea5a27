package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/glider/physics"
)

func TestTailwhipActivatesDamageBox(t *testing.T) {
	h := newHarness(t)
	h.body.blocked = physics.Blocked{Down: true}
	h.tick(Input{})

	h.tick(Input{AttackPressed: true})

	box := h.c.DamageBox()
	require.True(t, box.Active())
	r := box.Rect()
	assert.Equal(t, h.c.tuning.TailwhipBox.Width, r.Width)
	assert.Equal(t, h.c.tuning.TailwhipBox.Height, r.Height)
	assert.Greater(t, r.X, h.body.x, "box sits in front of a right-facing player")

	h.runFor(h.c.tuning.TailwhipDuration, Input{})
	assert.False(t, box.Active())
	assert.False(t, h.c.Tailwhipping())
}

func TestTailwhipIsNotReentrant(t *testing.T) {
	h := newHarness(t)
	h.body.blocked = physics.Blocked{Down: true}
	h.tick(Input{AttackPressed: true})
	require.Equal(t, 1, h.rec.countCues(CueTailwhip))

	half := h.c.tuning.TailwhipDuration / 2
	h.runFor(half, Input{AttackPressed: true})
	assert.Equal(t, 1, h.rec.countCues(CueTailwhip))

	// The first window still ends on schedule.
	h.runFor(half, Input{})
	assert.False(t, h.c.Tailwhipping())
}

func TestTailwhipWhileGlidingUsesGlideBox(t *testing.T) {
	h := newHarness(t)
	h.glideRight()

	h.tick(Input{AttackPressed: true})

	r := h.c.DamageBox().Rect()
	assert.Equal(t, h.c.tuning.GlideTailwhipBox.Width, r.Width)
	assert.Equal(t, h.c.tuning.GlideTailwhipBox.Height, r.Height)

	h.body.gravityScale = 1
	h.runFor(h.c.tuning.TailwhipDuration, Input{})
	assert.Equal(t, StateGliding, h.c.State)
	assert.Equal(t, h.c.tuning.GlideGravityScale, h.body.gravityScale, "glide resumes after the whip")
}

func TestTailwhipBlockedDuringManeuvers(t *testing.T) {
	h := newHarness(t)
	h.glideRight()
	h.tick(Input{MoveX: -1})
	require.Equal(t, StateGlideTurning, h.c.State)

	h.c.Tailwhip()
	assert.False(t, h.c.Tailwhipping())

	h2 := newHarness(t)
	require.True(t, h2.c.GrabPole(&fakePole{x: 100, y: 100}))
	h2.c.Tailwhip()
	assert.False(t, h2.c.Tailwhipping())
}

func TestScoreHit(t *testing.T) {
	tests := []struct {
		name  string
		state State
		hit   Hit
		want  int
	}{
		{"tailwhip", StateIdle, Hit{Damage: 1, HealthBefore: 3}, 1},
		{"tailwhip kill", StateRunning, Hit{Damage: 1, HealthBefore: 1, Killed: true, Bounty: 100}, 101},
		// damage + (health - damage) keeps the overkill arithmetic as observed.
		{"spin overkill", StateGlideSpinning, Hit{Damage: 2, HealthBefore: 1, Killed: true}, 1},
		{"spin partial", StateGlideSpinning, Hit{Damage: 2, HealthBefore: 5}, 5},
		{"no damage", StateIdle, Hit{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.c.State = tt.state
			h.c.ScoreHit(tt.hit)
			assert.Equal(t, tt.want, h.c.Score)
			if tt.want == 0 {
				assert.Empty(t, h.rec.scores)
			} else {
				assert.Equal(t, []int{tt.want}, h.rec.scores)
			}
		})
	}
}
