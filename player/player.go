// Package player implements the player's motion and combat state machine:
// per-frame state resolution, gliding, the glide turn and glide spin arcs,
// the tailwhip attack, pole swinging, and damage, death and respawn.
package player

import (
	"time"

	"go.uber.org/zap"

	"github.com/milk9111/glider/component"
	"github.com/milk9111/glider/physics"
	"github.com/milk9111/glider/tween"
)

// Input is the per-frame player intent. Pressed fields are edges.
type Input struct {
	MoveX         float64
	JumpPressed   bool
	AttackPressed bool
	SpinPressed   bool
}

// Point is a world coordinate.
type Point struct {
	X, Y float64
}

// Collision box of the player body.
const (
	BodyWidth  = 24
	BodyHeight = 40
)

// CueKind names a sound the player wants played.
type CueKind string

const (
	CueFootstep CueKind = "footstep"
	CueLanding  CueKind = "landing"
	CueJump     CueKind = "jump"
	CueTailwhip CueKind = "tailwhip"
	CueHurt     CueKind = "hurt"
)

// Cue is a sound request. Surface is empty for surface-independent cues.
type Cue struct {
	Kind    CueKind
	Surface string
}

// Hooks are notifications for the UI, score and audio collaborators. Any of
// them may be nil.
type Hooks struct {
	OnStateChanged  func(from, to State)
	OnAnimation     func(name string)
	OnHealthChanged func(health int)
	OnScoreChanged  func(delta int)
	OnDeath         func()
	OnRespawn       func(x, y float64)
	OnCheckpoint    func(x, y float64)
	OnSound         func(cue Cue)
}

// Pole is a swing anchor the player can grab.
type Pole interface {
	Anchor() (x, y float64)
	Angle() float64
	SetAngle(deg float64)
}

// Player is the plain entity data owned by a Controller.
type Player struct {
	State           State
	FacingRight     bool
	Health          *component.Health
	Checkpoint      Point
	Score           int
	CanMove         bool
	DisableMovement bool
	// Alpha is the sprite opacity driven by death and respawn fades.
	Alpha float64
}

// Options configures a Controller.
type Options struct {
	Tuning   Tuning
	Hooks    Hooks
	Surfaces physics.SurfaceQuerier
	Logger   *zap.Logger
	// LowerBound is the world y below which the player dies. Zero disables it.
	LowerBound float64
}

// Controller drives one Player through its physics body.
type Controller struct {
	Player

	id       uint64
	body     physics.Body
	sched    *tween.Scheduler
	surfaces physics.SurfaceQuerier
	tuning   Tuning
	hooks    Hooks
	log      *zap.Logger

	lowerBound float64
	damageBox  *component.DamageBox
	input      Input
	speed      float64

	// transition is the single in-flight geometric tween.
	transition tween.Handle
	fade       tween.Handle
	tailwhip   *tween.Timer
	invuln     *tween.Timer
	knockback  *tween.Timer
	respawn    *tween.Timer

	glideStarting bool
	glideDir      float64
	tailwhipping  bool
	knockedBack   bool
	wasGrounded   bool
	stepElapsed   time.Duration

	storedVX, storedVY float64

	pole          Pole
	poleAngle     float64
	poleLaunching bool
	releasedPole  Pole
}

// New creates a controller for body, starting IDLE at the body's position
// with that position as the first checkpoint.
func New(id uint64, body physics.Body, sched *tween.Scheduler, opts Options) *Controller {
	t := opts.Tuning
	if t == (Tuning{}) {
		t = DefaultTuning()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	c := &Controller{
		id:        id,
		body:      body,
		sched:     sched,
		surfaces:  opts.Surfaces,
		tuning:    t,
		hooks:     opts.Hooks,
		log:       log,
		damageBox: component.NewDamageBox(component.FactionPlayer),
		speed:     t.MoveSpeed,
	}
	c.State = StateIdle
	c.FacingRight = true
	c.CanMove = true
	c.Alpha = 1
	c.Health = component.NewHealth(t.MaxHealth)
	c.Health.OnChanged = func(v int) {
		if c.hooks.OnHealthChanged != nil {
			c.hooks.OnHealthChanged(v)
		}
	}
	c.SetLowerBound(opts.LowerBound)
	c.Checkpoint.X, c.Checkpoint.Y = body.Position()
	body.SetDrag(t.GroundDrag)
	return c
}

func (c *Controller) ID() uint64                         { return c.id }
func (c *Controller) Faction() component.Faction         { return component.FactionPlayer }
func (c *Controller) Body() physics.Body                 { return c.body }
func (c *Controller) DamageBox() *component.DamageBox    { return c.damageBox }
func (c *Controller) HealthComponent() *component.Health { return c.Health }
func (c *Controller) Tuning() Tuning                     { return c.tuning }
func (c *Controller) Alive() bool                        { return c.State != StateDead }
func (c *Controller) Tailwhipping() bool                 { return c.tailwhipping }
func (c *Controller) GlideStarting() bool                { return c.glideStarting }
func (c *Controller) PoleLaunching() bool                { return c.poleLaunching }

// SetHooks replaces the notification hooks.
func (c *Controller) SetHooks(h Hooks) {
	c.hooks = h
}

// SetInput stores the intent consumed by the next PreStep.
func (c *Controller) SetInput(in Input) {
	c.input = in
}

// SetLowerBound sets the fall-out line. Zero or negative disables it.
func (c *Controller) SetLowerBound(y float64) {
	c.lowerBound = y
}

// SetTuning applies new constants without touching state or health.
func (c *Controller) SetTuning(t Tuning) {
	c.tuning = t
	if c.State.InGlideFamily() {
		c.speed = t.glideSpeed()
	} else {
		c.speed = t.MoveSpeed
	}
	c.Health.SetMax(t.MaxHealth)
}

func (c *Controller) facing() float64 {
	if c.FacingRight {
		return 1
	}
	return -1
}

func (c *Controller) setState(s State) {
	if s == c.State {
		return
	}
	prev := c.State
	c.State = s
	c.log.Debug("state changed", zap.Stringer("from", prev), zap.Stringer("to", s))
	if c.hooks.OnStateChanged != nil {
		c.hooks.OnStateChanged(prev, s)
	}
	if !c.tailwhipping {
		c.animate(s.String())
	}
}

func (c *Controller) animate(name string) {
	if c.hooks.OnAnimation != nil {
		c.hooks.OnAnimation(name)
	}
}

func (c *Controller) cue(kind CueKind, surface string) {
	if c.hooks.OnSound != nil {
		c.hooks.OnSound(Cue{Kind: kind, Surface: surface})
	}
}

// surfaceKind names the surface under the player's feet, empty if none.
func (c *Controller) surfaceKind() string {
	if c.surfaces == nil {
		return ""
	}
	x, y := c.body.Position()
	s, ok := c.surfaces.SurfaceBelow(x, y)
	if !ok {
		return ""
	}
	return s.Kind
}

// startTransition cancels the in-flight tween and starts opts in its place.
func (c *Controller) startTransition(opts tween.Options) {
	c.cancelTransition()
	c.transition = c.sched.Tween(opts)
}

func (c *Controller) cancelTransition() {
	if c.transition != nil {
		c.transition.Stop()
		c.transition = nil
	}
	c.glideStarting = false
	if c.poleLaunching {
		c.poleLaunching = false
		if c.releasedPole != nil {
			c.releasedPole.SetAngle(0)
			c.releasedPole = nil
		}
	}
}

// resetAngle tweens the body rotation back to zero.
func (c *Controller) resetAngle() {
	from := c.body.Angle()
	if from == 0 {
		c.cancelTransition()
		return
	}
	c.startTransition(tween.Options{
		Duration: c.tuning.AngleResetDuration,
		OnUpdate: func(_, v float64) {
			c.body.SetAngle(from * (1 - v))
		},
	})
}

func (c *Controller) placeDamageBox() {
	if !c.damageBox.Active() {
		return
	}
	x, y := c.body.Position()
	if c.State == StateGlideSpinning {
		c.damageBox.MoveTo(x, y)
		return
	}
	w, _ := c.body.Size()
	r := c.damageBox.Rect()
	c.damageBox.MoveTo(x+c.facing()*(w+r.Width)/2, y)
}
