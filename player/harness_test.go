package player

import (
	"testing"
	"time"

	"github.com/milk9111/glider/physics"
	"github.com/milk9111/glider/tween"
)

const frame = time.Second / 60

type fakeBody struct {
	x, y, vx, vy float64
	angle        float64
	w, h         float64
	blocked      physics.Blocked
	gravityScale float64
	drag         float64
	immovable    bool
	enabled      bool
	ox, oy       float64
}

func newFakeBody(x, y float64) *fakeBody {
	return &fakeBody{x: x, y: y, w: 24, h: 40, gravityScale: 1, enabled: true, ox: 0.5, oy: 0.5}
}

func (b *fakeBody) Position() (float64, float64)  { return b.x, b.y }
func (b *fakeBody) SetPosition(x, y float64)      { b.x, b.y = x, y }
func (b *fakeBody) Velocity() (float64, float64)  { return b.vx, b.vy }
func (b *fakeBody) SetVelocity(x, y float64)      { b.vx, b.vy = x, y }
func (b *fakeBody) Angle() float64                { return b.angle }
func (b *fakeBody) SetAngle(deg float64)          { b.angle = deg }
func (b *fakeBody) Size() (float64, float64)      { return b.w, b.h }
func (b *fakeBody) Blocked() physics.Blocked      { return b.blocked }
func (b *fakeBody) Grounded() bool                { return b.blocked.Down }
func (b *fakeBody) SetGravityScale(scale float64) { b.gravityScale = scale }
func (b *fakeBody) GravityScale() float64         { return b.gravityScale }
func (b *fakeBody) SetDrag(drag float64)          { b.drag = drag }
func (b *fakeBody) SetImmovable(v bool)           { b.immovable = v }
func (b *fakeBody) SetEnabled(v bool)             { b.enabled = v }
func (b *fakeBody) Enabled() bool                 { return b.enabled }
func (b *fakeBody) SetOrigin(ox, oy float64)      { b.ox, b.oy = ox, oy }
func (b *fakeBody) Origin() (float64, float64)    { return b.ox, b.oy }

type surfaceFunc func(x, y float64) (physics.Surface, bool)

func (f surfaceFunc) SurfaceBelow(x, y float64) (physics.Surface, bool) { return f(x, y) }

// flatGround reports a surface of kind with its top at y = top everywhere.
func flatGround(kind string, top float64) physics.SurfaceQuerier {
	return surfaceFunc(func(x, y float64) (physics.Surface, bool) {
		return physics.Surface{Kind: kind, Top: top, Left: x - 16, Right: x + 16}, true
	})
}

type fakePole struct {
	x, y  float64
	angle float64
}

func (p *fakePole) Anchor() (float64, float64) { return p.x, p.y }
func (p *fakePole) Angle() float64             { return p.angle }
func (p *fakePole) SetAngle(deg float64)       { p.angle = deg }

type recorder struct {
	transitions []State
	animations  []string
	health      []int
	scores      []int
	deaths      int
	respawns    int
	checkpoints []Point
	cues        []Cue
}

func (r *recorder) hooks() Hooks {
	return Hooks{
		OnStateChanged:  func(_, to State) { r.transitions = append(r.transitions, to) },
		OnAnimation:     func(name string) { r.animations = append(r.animations, name) },
		OnHealthChanged: func(v int) { r.health = append(r.health, v) },
		OnScoreChanged:  func(d int) { r.scores = append(r.scores, d) },
		OnDeath:         func() { r.deaths++ },
		OnRespawn:       func(float64, float64) { r.respawns++ },
		OnCheckpoint:    func(x, y float64) { r.checkpoints = append(r.checkpoints, Point{x, y}) },
		OnSound:         func(c Cue) { r.cues = append(r.cues, c) },
	}
}

func (r *recorder) countCues(kind CueKind) int {
	n := 0
	for _, c := range r.cues {
		if c.Kind == kind {
			n++
		}
	}
	return n
}

type harness struct {
	t     *testing.T
	body  *fakeBody
	sched *tween.Scheduler
	c     *Controller
	rec   *recorder
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	body := newFakeBody(400, 300)
	sched := tween.NewScheduler()
	rec := &recorder{}
	c := New(1, body, sched, Options{
		Hooks:    rec.hooks(),
		Surfaces: flatGround("grass", 320),
	})
	return &harness{t: t, body: body, sched: sched, c: c, rec: rec}
}

// tick runs one frame in game-loop order: timers, input, physics, resolution.
func (h *harness) tick(in Input) {
	h.sched.Update(frame)
	h.c.SetInput(in)
	h.c.PreStep(frame)
	h.c.PostStep(frame)
}

func (h *harness) ticks(n int, in Input) {
	for i := 0; i < n; i++ {
		h.tick(in)
	}
}

// runFor ticks long enough for anything lasting d to finish.
func (h *harness) runFor(d time.Duration, in Input) {
	h.ticks(int(d/frame)+2, in)
}

// glideRight puts the player airborne in GLIDING, facing right.
func (h *harness) glideRight() {
	h.t.Helper()
	h.body.blocked = physics.Blocked{}
	h.body.vy = 0
	h.tick(Input{MoveX: 1})
	h.tick(Input{MoveX: 1, JumpPressed: true})
	h.runFor(h.c.tuning.GlideStartDuration, Input{MoveX: 1})
	if h.c.State != StateGliding {
		h.t.Fatalf("setup: state = %v, want gliding", h.c.State)
	}
}
