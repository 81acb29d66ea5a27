package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/milk9111/glider/entity"
	"github.com/milk9111/glider/highscore"
	"github.com/milk9111/glider/levels"
	"github.com/milk9111/glider/player"
)

func TestParseScript(t *testing.T) {
	steps, err := parseScript("right:60, jump ,right+attack:10,idle:5,spin")
	require.NoError(t, err)
	require.Len(t, steps, 5)

	assert.Equal(t, scriptStep{input: player.Input{MoveX: 1}, frames: 60}, steps[0])
	assert.Equal(t, scriptStep{input: player.Input{JumpPressed: true}, frames: 1}, steps[1])
	assert.Equal(t, scriptStep{input: player.Input{MoveX: 1, AttackPressed: true}, frames: 10}, steps[2])
	assert.Equal(t, scriptStep{frames: 5}, steps[3])
	assert.Equal(t, scriptStep{input: player.Input{SpinPressed: true}, frames: 1}, steps[4])
}

func TestParseScriptErrors(t *testing.T) {
	for _, s := range []string{"fly", "right:0", "left:x", "jump+dash:3"} {
		_, err := parseScript(s)
		assert.ErrorIs(t, err, errBadScript, s)
	}

	steps, err := parseScript("")
	require.NoError(t, err)
	assert.Empty(t, steps)
}

func TestExpandPressesOnlyOnFirstFrame(t *testing.T) {
	steps := []scriptStep{{input: player.Input{MoveX: -1, JumpPressed: true}, frames: 3}}
	inputs := expand(steps, 5)

	require.Len(t, inputs, 5)
	assert.Equal(t, player.Input{MoveX: -1, JumpPressed: true}, inputs[0])
	assert.Equal(t, player.Input{MoveX: -1}, inputs[1])
	assert.Equal(t, player.Input{MoveX: -1}, inputs[2])
	assert.Equal(t, player.Input{}, inputs[4])

	assert.Len(t, expand(steps, 2), 2)
}

func newTestSession(t *testing.T, svc *services) *session {
	t.Helper()
	sess, err := newSession(levels.DefaultLevel, player.DefaultTuning(), svc, nil)
	require.NoError(t, err)
	return sess
}

func TestRunSimSettlesAtSpawn(t *testing.T) {
	sess := newTestSession(t, nil)
	var out bytes.Buffer

	runSim(&out, sess, expand(nil, 30))

	assert.Contains(t, out.String(), "frames: 30")
	assert.Equal(t, player.StateIdle, sess.world.Player().State)
	assert.True(t, sess.world.Player().Body().Grounded())
}

func TestRunSimTracesTransitions(t *testing.T) {
	steps, err := parseScript("idle:20,jump,idle:5")
	require.NoError(t, err)
	sess := newTestSession(t, nil)
	var out bytes.Buffer

	runSim(&out, sess, expand(steps, 26))

	assert.Contains(t, out.String(), "-> jumping")
	assert.Contains(t, out.String(), "frames: 26")
}

func TestRunSimRunsRight(t *testing.T) {
	steps, err := parseScript("idle:15,right:30")
	require.NoError(t, err)
	sess := newTestSession(t, nil)

	runSim(&bytes.Buffer{}, sess, expand(steps, 45))

	x, _ := sess.world.Player().Body().Position()
	assert.Greater(t, x, 96.0)
	assert.Equal(t, player.StateRunning, sess.world.Player().State)
	assert.True(t, sess.world.Player().FacingRight)
}

func TestSessionRecordsBestRun(t *testing.T) {
	svc := &services{scores: highscore.NewStore(nil, zap.NewNop())}
	sess := newTestSession(t, svc)

	sess.complete(entity.Event{Kind: entity.EventLevelComplete, Value: 120, Elapsed: 40 * time.Second})
	require.True(t, sess.finished())
	assert.True(t, sess.result.NewRecord)

	require.NoError(t, sess.restart())
	assert.False(t, sess.finished())

	sess.complete(entity.Event{Kind: entity.EventLevelComplete, Value: 500, Elapsed: 41 * time.Second})
	assert.False(t, sess.result.NewRecord)

	best, ok := svc.scores.Best()
	require.True(t, ok)
	assert.Equal(t, highscore.Record{Score: 120, Time: 40000}, best)
}

func TestSessionCountsDeaths(t *testing.T) {
	sess := newTestSession(t, nil)
	sess.world.Player().DamagePlayer(100, 0, 0)

	assert.Equal(t, 1, sess.deaths)
	assert.Equal(t, player.StateDead, sess.world.Player().State)
}
