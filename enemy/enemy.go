// Package enemy implements the Muncher and Glizzard controllers. Their
// behaviour lives in embedded tengo scripts driven through Machine.
package enemy

import (
	"math"
	"time"

	"github.com/d5/tengo/v2"
	"go.uber.org/zap"

	"github.com/milk9111/glider/common"
	"github.com/milk9111/glider/component"
	"github.com/milk9111/glider/physics"
	"github.com/milk9111/glider/tween"
)

type Kind string

const (
	KindMuncher  Kind = "muncher"
	KindGlizzard Kind = "glizzard"
)

// Spec is the fixed configuration of an enemy kind.
type Spec struct {
	Kind      Kind
	Script    string
	Width     float64
	Height    float64
	MaxHealth int
	Speed     float64
	Bounty    int
	Patrol    float64
}

var specs = map[Kind]Spec{
	KindMuncher: {
		Kind:      KindMuncher,
		Script:    "muncher.tengo",
		Width:     28,
		Height:    24,
		MaxHealth: 2,
		Speed:     60,
		Bounty:    100,
		Patrol:    96,
	},
	KindGlizzard: {
		Kind:      KindGlizzard,
		Script:    "glizzard.tengo",
		Width:     40,
		Height:    24,
		MaxHealth: 3,
		Speed:     80,
		Bounty:    250,
		Patrol:    140,
	},
}

// SpecFor returns the stock spec for kind.
func SpecFor(kind Kind) (Spec, bool) {
	s, ok := specs[kind]
	return s, ok
}

const (
	knockbackX     = 140.0
	knockbackY     = 160.0
	stunDuration   = 250 * time.Millisecond
	ledgeTolerance = 8.0
)

// Target is what enemies hunt.
type Target interface {
	Body() physics.Body
	Alive() bool
}

type Options struct {
	Target   Target
	Surfaces physics.SurfaceQuerier
	Logger   *zap.Logger
}

// Controller drives one enemy body from its script.
type Controller struct {
	id       uint64
	spec     Spec
	body     physics.Body
	sched    *tween.Scheduler
	machine  *Machine
	engine   *tengo.ImmutableMap
	target   Target
	surfaces physics.SurfaceQuerier
	log      *zap.Logger

	health    *component.Health
	damageBox *component.DamageBox
	attack    *tween.Timer
	stun      *tween.Timer

	originX float64
	facing  float64
	dt      time.Duration
	stunned bool
	broken  bool
}

// New creates an enemy for body. The patrol is centered on the body's
// starting x.
func New(id uint64, spec Spec, body physics.Body, sched *tween.Scheduler, machine *Machine, opts Options) *Controller {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	c := &Controller{
		id:        id,
		spec:      spec,
		body:      body,
		sched:     sched,
		machine:   machine,
		target:    opts.Target,
		surfaces:  opts.Surfaces,
		log:       log.With(zap.Uint64("enemy", id), zap.String("kind", string(spec.Kind))),
		health:    component.NewHealth(spec.MaxHealth),
		damageBox: component.NewDamageBox(component.FactionEnemy),
		facing:    -1,
	}
	c.originX, _ = body.Position()
	c.health.OnChanged = func(v int) {
		if v == 0 {
			c.die()
		}
	}
	c.engine = c.buildEngine()
	return c
}

func (c *Controller) ID() uint64                         { return c.id }
func (c *Controller) Kind() Kind                         { return c.spec.Kind }
func (c *Controller) Faction() component.Faction         { return component.FactionEnemy }
func (c *Controller) Body() physics.Body                 { return c.body }
func (c *Controller) DamageBox() *component.DamageBox    { return c.damageBox }
func (c *Controller) HealthComponent() *component.Health { return c.health }
func (c *Controller) Alive() bool                        { return !c.health.Depleted() }
func (c *Controller) Bounty() int                        { return c.spec.Bounty }
func (c *Controller) Facing() float64                    { return c.facing }

// State returns the script's current state name.
func (c *Controller) State() string {
	if c.machine == nil {
		return ""
	}
	return c.machine.Current()
}

// PreStep runs the behaviour script for one frame.
func (c *Controller) PreStep(dt time.Duration) {
	if !c.Alive() || c.stunned || c.broken || c.machine == nil {
		return
	}
	c.dt = dt
	if err := c.machine.Step(c.engine); err != nil {
		// A failing script would fail every frame; park the enemy instead.
		c.broken = true
		c.body.SetVelocity(0, 0)
		c.log.Warn("script error", zap.Error(err))
	}
}

// PostStep keeps the attack volume in front of the enemy.
func (c *Controller) PostStep(time.Duration) {
	if !c.Alive() || !c.damageBox.Active() {
		return
	}
	x, y := c.body.Position()
	r := c.damageBox.Rect()
	c.damageBox.MoveTo(x+c.facing*(c.spec.Width+r.Width)/2, y)
}

// Knockback pushes the enemy away from (fromX, fromY) and stuns it briefly.
func (c *Controller) Knockback(fromX, fromY float64) {
	if !c.Alive() {
		return
	}
	x, _ := c.body.Position()
	dir := common.Sign(x - fromX)
	if dir == 0 {
		dir = -c.facing
	}
	c.endAttack()
	c.body.SetVelocity(dir*knockbackX, -knockbackY)
	c.stunned = true
	if c.stun != nil {
		c.stun.Stop()
	}
	c.stun = c.sched.After(stunDuration, func() {
		c.stun = nil
		c.stunned = false
	})
}

func (c *Controller) die() {
	c.endAttack()
	if c.stun != nil {
		c.stun.Stop()
		c.stun = nil
	}
	c.body.SetVelocity(0, 0)
	c.body.SetEnabled(false)
	c.log.Info("enemy died")
}

// startAttack activates the DamageBox for d. Returns false while an attack
// is already running.
func (c *Controller) startAttack(w, h float64, damage int, d time.Duration) bool {
	if c.damageBox.Active() {
		return false
	}
	c.damageBox.Activate(w, h, damage)
	c.PostStep(0)
	c.attack = c.sched.After(d, c.endAttack)
	return true
}

func (c *Controller) endAttack() {
	if c.attack != nil {
		c.attack.Stop()
		c.attack = nil
	}
	c.damageBox.Deactivate()
}

func (c *Controller) wallAhead() bool {
	b := c.body.Blocked()
	if c.facing > 0 {
		return b.Right
	}
	return b.Left
}

func (c *Controller) ledgeAhead() bool {
	if c.surfaces == nil || !c.body.Grounded() {
		return false
	}
	x, y := c.body.Position()
	w, h := c.body.Size()
	s, ok := c.surfaces.SurfaceBelow(x+c.facing*(w/2+2), y)
	return !ok || s.Top-(y+h/2) > ledgeTolerance
}

func (c *Controller) targetDelta() (dx, dy float64, ok bool) {
	if c.target == nil || c.target.Body() == nil {
		return 0, 0, false
	}
	px, py := c.target.Body().Position()
	x, y := c.body.Position()
	return px - x, py - y, true
}

func (c *Controller) buildEngine() *tengo.ImmutableMap {
	fn := func(name string, f func(args ...tengo.Object) tengo.Object) *tengo.UserFunction {
		return &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
			return f(args...), nil
		}}
	}
	num := func(v float64) tengo.Object { return &tengo.Float{Value: v} }
	arg := func(args []tengo.Object, i int, def float64) float64 {
		if i >= len(args) {
			return def
		}
		return objectAsFloat(args[i], def)
	}

	values := map[string]tengo.Object{
		"transition": fn("transition", func(args ...tengo.Object) tengo.Object {
			if len(args) < 1 {
				return tengo.FalseValue
			}
			name := objectAsString(args[0])
			if name == "" {
				return tengo.FalseValue
			}
			c.machine.Transition(name)
			return tengo.TrueValue
		}),
		"dt": fn("dt", func(...tengo.Object) tengo.Object {
			return num(c.dt.Seconds())
		}),
		"position": fn("position", func(...tengo.Object) tengo.Object {
			x, y := c.body.Position()
			return &tengo.Array{Value: []tengo.Object{num(x), num(y)}}
		}),
		"player_alive": fn("player_alive", func(...tengo.Object) tengo.Object {
			return boolObject(c.target != nil && c.target.Alive())
		}),
		"player_dx": fn("player_dx", func(...tengo.Object) tengo.Object {
			dx, _, ok := c.targetDelta()
			if !ok {
				return num(math.Inf(1))
			}
			return num(dx)
		}),
		"player_dy": fn("player_dy", func(...tengo.Object) tengo.Object {
			_, dy, ok := c.targetDelta()
			if !ok {
				return num(math.Inf(1))
			}
			return num(dy)
		}),
		"facing": fn("facing", func(...tengo.Object) tengo.Object {
			return &tengo.Int{Value: int64(c.facing)}
		}),
		"face_player": fn("face_player", func(...tengo.Object) tengo.Object {
			if dx, _, ok := c.targetDelta(); ok && dx != 0 {
				c.facing = common.Sign(dx)
			}
			return tengo.UndefinedValue
		}),
		"turn": fn("turn", func(...tengo.Object) tengo.Object {
			c.facing = -c.facing
			return tengo.UndefinedValue
		}),
		"move": fn("move", func(args ...tengo.Object) tengo.Object {
			_, vy := c.body.Velocity()
			c.body.SetVelocity(c.facing*c.spec.Speed*arg(args, 0, 1), vy)
			return tengo.UndefinedValue
		}),
		"stop": fn("stop", func(...tengo.Object) tengo.Object {
			_, vy := c.body.Velocity()
			c.body.SetVelocity(0, vy)
			return tengo.UndefinedValue
		}),
		"lunge": fn("lunge", func(args ...tengo.Object) tengo.Object {
			c.body.SetVelocity(c.facing*arg(args, 0, 0), arg(args, 1, 0))
			return tengo.UndefinedValue
		}),
		"grounded": fn("grounded", func(...tengo.Object) tengo.Object {
			return boolObject(c.body.Grounded())
		}),
		"wall_ahead": fn("wall_ahead", func(...tengo.Object) tengo.Object {
			return boolObject(c.wallAhead())
		}),
		"ledge_ahead": fn("ledge_ahead", func(...tengo.Object) tengo.Object {
			return boolObject(c.ledgeAhead())
		}),
		"patrol_offset": fn("patrol_offset", func(...tengo.Object) tengo.Object {
			x, _ := c.body.Position()
			return num(x - c.originX)
		}),
		"patrol_range": fn("patrol_range", func(...tengo.Object) tengo.Object {
			return num(c.spec.Patrol)
		}),
		"attack": fn("attack", func(args ...tengo.Object) tengo.Object {
			w, h := arg(args, 0, 32), arg(args, 1, 32)
			damage := int(arg(args, 2, 1))
			d := time.Duration(arg(args, 3, 300)) * time.Millisecond
			return boolObject(c.startAttack(w, h, damage, d))
		}),
		"attacking": fn("attacking", func(...tengo.Object) tengo.Object {
			return boolObject(c.damageBox.Active())
		}),
		"log": fn("log", func(args ...tengo.Object) tengo.Object {
			if len(args) > 0 {
				c.log.Debug("script", zap.String("msg", objectAsString(args[0])))
			}
			return tengo.UndefinedValue
		}),
	}
	return &tengo.ImmutableMap{Value: values}
}
