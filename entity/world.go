// Package entity owns the level's live objects: the player, enemies and
// triggers. It runs them in frame order and resolves combat between
// DamageBoxes and hurtboxes.
package entity

import (
	"time"

	"go.uber.org/zap"

	"github.com/milk9111/glider/common"
	"github.com/milk9111/glider/physics"
	"github.com/milk9111/glider/player"
	"github.com/milk9111/glider/tween"
)

// HitRecord is a recent hit kept for debug highlighting.
type HitRecord struct {
	Hit        common.Rect
	Hurt       common.Rect
	FramesLeft int
}

const hitHighlightFrames = 6

type World struct {
	space *physics.Space
	sched *tween.Scheduler
	log   *zap.Logger

	player      *player.Controller
	actors      []Controller
	poles       []*Pole
	teleporters []*Teleporter
	hazards     []*Hazard
	goal        *Goal

	// touching holds the trigger IDs the player overlapped last frame.
	touching map[uint64]bool
	events   EventQueue
	recent   []HitRecord

	lowerBound float64
	elapsed    time.Duration
	finished   bool
	paused     bool
	nextID     uint64
}

func NewWorld(space *physics.Space, sched *tween.Scheduler, log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}
	return &World{
		space:    space,
		sched:    sched,
		log:      log,
		touching: map[uint64]bool{},
	}
}

// NextID hands out entity IDs.
func (w *World) NextID() uint64 {
	w.nextID++
	return w.nextID
}

// SetPlayer installs the player as the first actor.
func (w *World) SetPlayer(p *player.Controller) {
	if w.player != nil {
		w.removeActor(w.player.ID())
	}
	w.player = p
	w.actors = append([]Controller{p}, w.actors...)
}

func (w *World) AddEnemy(c Controller)       { w.actors = append(w.actors, c) }
func (w *World) AddPole(p *Pole)             { w.poles = append(w.poles, p) }
func (w *World) AddTeleporter(t *Teleporter) { w.teleporters = append(w.teleporters, t) }
func (w *World) AddHazard(h *Hazard)         { w.hazards = append(w.hazards, h) }
func (w *World) SetGoal(g *Goal)             { w.goal = g }
func (w *World) SetLowerBound(y float64)     { w.lowerBound = y }
func (w *World) SetPaused(paused bool)       { w.paused = paused }
func (w *World) Paused() bool                { return w.paused }
func (w *World) Finished() bool              { return w.finished }
func (w *World) Elapsed() time.Duration      { return w.elapsed }
func (w *World) Player() *player.Controller  { return w.player }
func (w *World) Actors() []Controller        { return w.actors }
func (w *World) Poles() []*Pole              { return w.poles }
func (w *World) Teleporters() []*Teleporter  { return w.teleporters }
func (w *World) Hazards() []*Hazard          { return w.hazards }
func (w *World) Goal() *Goal                 { return w.goal }
func (w *World) Space() *physics.Space       { return w.space }
func (w *World) Scheduler() *tween.Scheduler { return w.sched }
func (w *World) RecentHits() []HitRecord     { return w.recent }

// Events drains the events raised since the last call.
func (w *World) Events() []Event {
	return w.events.Drain()
}

// Update advances one frame: timers and tweens, input, physics, state
// resolution, combat and triggers.
func (w *World) Update(in player.Input, dt time.Duration) {
	if w.paused {
		return
	}
	w.sched.Update(dt)
	if w.player != nil {
		w.player.SetInput(in)
	}
	for _, a := range w.actors {
		a.PreStep(dt)
	}
	if w.space != nil {
		w.space.Step(dt.Seconds())
	}
	for _, a := range w.actors {
		a.PostStep(dt)
	}

	w.resolveCombat()
	w.resolveTriggers()
	w.reap()
	w.tickHighlights()

	if !w.finished && w.player != nil && w.player.Alive() {
		w.elapsed += dt
	}
}

func (w *World) isPlayer(c Controller) bool {
	return w.player != nil && c.ID() == w.player.ID()
}

func (w *World) resolveCombat() {
	for _, attacker := range w.actors {
		box := attacker.DamageBox()
		if !attacker.Alive() || !box.Active() {
			continue
		}
		area := box.Rect()
		for _, target := range w.actors {
			if target.ID() == attacker.ID() || !target.Alive() || target.Faction() == box.Owner {
				continue
			}
			hurt := Hurtbox(target)
			if !area.Intersects(hurt) || !box.TryHit(target.ID()) {
				continue
			}
			w.recent = append(w.recent, HitRecord{Hit: area, Hurt: hurt, FramesLeft: hitHighlightFrames})
			w.applyHit(attacker, target, box.Damage())
		}
	}
}

func (w *World) applyHit(attacker, target Controller, damage int) {
	ax, ay := attacker.Body().Position()
	tx, ty := target.Body().Position()

	if w.isPlayer(target) {
		w.player.DamagePlayer(damage, ax, ay)
		w.events.Push(Event{Kind: EventPlayerHit, Entity: attacker.ID(), X: tx, Y: ty, Value: damage})
		return
	}

	health := target.HealthComponent()
	before := health.Current()
	if !health.Damage(damage) {
		return
	}
	killed := health.Depleted()
	if k, ok := target.(Knockbackable); ok && !killed {
		k.Knockback(ax, ay)
	}
	hit := player.Hit{Target: target.ID(), Damage: damage, HealthBefore: before, Killed: killed}
	if b, ok := target.(Bountied); ok {
		hit.Bounty = b.Bounty()
	}
	if s, ok := attacker.(Scorer); ok {
		s.ScoreHit(hit)
	}
	w.events.Push(Event{Kind: EventEnemyHit, Entity: target.ID(), X: tx, Y: ty, Value: damage})
	if killed {
		w.log.Debug("enemy killed", zap.Uint64("id", target.ID()))
		w.events.Push(Event{Kind: EventEnemyKilled, Entity: target.ID(), X: tx, Y: ty, Value: hit.Bounty})
	}
}

// enter records whether trigger id overlaps the player this frame and
// reports the frame the overlap begins.
func (w *World) enter(id uint64, overlapping bool) bool {
	was := w.touching[id]
	w.touching[id] = overlapping
	return overlapping && !was
}

func (w *World) resolveTriggers() {
	p := w.player
	if p == nil || !p.Alive() {
		clear(w.touching)
		return
	}
	hurt := Hurtbox(p)

	for _, pole := range w.poles {
		if w.enter(pole.ID, hurt.Intersects(pole.Rect())) && p.GrabPole(pole) {
			w.events.Push(Event{Kind: EventPoleGrabbed, Entity: pole.ID, X: pole.X, Y: pole.Y})
		}
	}
	for _, t := range w.teleporters {
		if w.enter(t.ID, hurt.Intersects(t.Area)) {
			p.Teleport(t.TargetX, t.TargetY)
			w.events.Push(Event{Kind: EventTeleported, Entity: t.ID, X: t.TargetX, Y: t.TargetY})
		}
	}
	for _, h := range w.hazards {
		if hurt.Intersects(h.Area) {
			cx, cy := h.Area.Center()
			p.DamagePlayer(h.Damage, cx, cy)
		}
	}
	if w.goal != nil && !w.finished && hurt.Intersects(w.goal.Area) {
		w.finish()
	}
}

func (w *World) finish() {
	w.finished = true
	p := w.player
	p.CanMove = false
	_, vy := p.Body().Velocity()
	p.Body().SetVelocity(0, vy)
	w.log.Info("level complete", zap.Int("score", p.Score), zap.Duration("elapsed", w.elapsed))
	w.events.Push(Event{Kind: EventLevelComplete, Entity: p.ID(), Value: p.Score, Elapsed: w.elapsed})
}

// reap removes dead enemies and kills anything that fell out of the level.
func (w *World) reap() {
	kept := w.actors[:0]
	for _, a := range w.actors {
		if w.isPlayer(a) {
			kept = append(kept, a)
			continue
		}
		if a.Alive() && w.lowerBound > 0 {
			_, y := a.Body().Position()
			_, h := a.Body().Size()
			if y-h/2 > w.lowerBound {
				a.HealthComponent().Damage(a.HealthComponent().Current())
			}
		}
		if a.Alive() {
			kept = append(kept, a)
			continue
		}
		w.releaseBody(a)
	}
	for i := len(kept); i < len(w.actors); i++ {
		w.actors[i] = nil
	}
	w.actors = kept
}

func (w *World) removeActor(id uint64) {
	for i, a := range w.actors {
		if a.ID() == id {
			w.releaseBody(a)
			w.actors = append(w.actors[:i], w.actors[i+1:]...)
			return
		}
	}
}

func (w *World) releaseBody(a Controller) {
	if b, ok := a.Body().(*physics.CPBody); ok && w.space != nil {
		w.space.RemoveBody(b)
	}
}

func (w *World) tickHighlights() {
	kept := w.recent[:0]
	for _, r := range w.recent {
		r.FramesLeft--
		if r.FramesLeft > 0 {
			kept = append(kept, r)
		}
	}
	w.recent = kept
}
