// Package tween schedules delayed callbacks and time-boxed interpolations
// against a fixed-step game loop. Everything runs on the update goroutine:
// callbacks fire from inside Update, never concurrently.
package tween

import "time"

// Handle is a stoppable scheduled item.
type Handle interface {
	Stop()
	Active() bool
}

// Options configures a tween.
type Options struct {
	Duration time.Duration
	// Ease maps linear progress to eased progress. Nil means Linear.
	Ease EaseFunc
	// Repeat is the number of extra loops after the first. -1 loops forever.
	Repeat int
	// OnUpdate runs once per tick with the linear progress t in [0,1] and the
	// eased value.
	OnUpdate func(t, value float64)
	// OnComplete runs once after the final tick. It does not run for stopped
	// or infinitely repeating tweens.
	OnComplete func()
}

// Tween is an in-flight interpolation.
type Tween struct {
	opts    Options
	elapsed time.Duration
	loops   int
	active  bool
}

// Stop cancels the tween. Pending callbacks never fire.
func (t *Tween) Stop() {
	if t == nil {
		return
	}
	t.active = false
}

func (t *Tween) Active() bool {
	return t != nil && t.active
}

// Progress returns the linear progress of the current loop in [0,1].
func (t *Tween) Progress() float64 {
	if t == nil {
		return 0
	}
	if t.opts.Duration <= 0 {
		return 1
	}
	p := float64(t.elapsed) / float64(t.opts.Duration)
	if p > 1 {
		return 1
	}
	return p
}

// Timer is a delayed one-shot callback.
type Timer struct {
	remaining time.Duration
	fn        func()
	active    bool
}

func (t *Timer) Stop() {
	if t == nil {
		return
	}
	t.active = false
}

func (t *Timer) Active() bool {
	return t != nil && t.active
}

// Scheduler owns every timer and tween of a scene.
type Scheduler struct {
	tweens []*Tween
	timers []*Timer
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// After runs fn once d has elapsed.
func (s *Scheduler) After(d time.Duration, fn func()) *Timer {
	t := &Timer{remaining: d, fn: fn, active: true}
	s.timers = append(s.timers, t)
	return t
}

// Tween starts a new interpolation. The first tick happens on the next Update.
func (s *Scheduler) Tween(opts Options) *Tween {
	if opts.Ease == nil {
		opts.Ease = Linear
	}
	t := &Tween{opts: opts, active: true}
	s.tweens = append(s.tweens, t)
	return t
}

// Update advances every item by dt. Items created by callbacks during this
// call start ticking on the next Update.
func (s *Scheduler) Update(dt time.Duration) {
	if s == nil {
		return
	}

	timers, tweens := s.timers, s.tweens
	for _, t := range timers {
		if !t.active {
			continue
		}
		t.remaining -= dt
		if t.remaining > 0 {
			continue
		}
		t.active = false
		if t.fn != nil {
			t.fn()
		}
	}

	for _, tw := range tweens {
		if !tw.active {
			continue
		}
		s.step(tw, dt)
	}

	s.compact()
}

func (s *Scheduler) step(tw *Tween, dt time.Duration) {
	tw.elapsed += dt
	done := tw.opts.Duration <= 0 || tw.elapsed >= tw.opts.Duration
	if done && (tw.opts.Repeat < 0 || tw.loops < tw.opts.Repeat) {
		// wrap into the next loop and report the carried-over progress
		tw.loops++
		if tw.opts.Duration > 0 {
			tw.elapsed %= tw.opts.Duration
		} else {
			tw.elapsed = 0
		}
		done = false
	}

	p := tw.Progress()
	if tw.opts.OnUpdate != nil {
		tw.opts.OnUpdate(p, tw.opts.Ease(p))
	}
	if !done || !tw.active {
		return
	}
	tw.active = false
	if tw.opts.OnComplete != nil {
		tw.opts.OnComplete()
	}
}

func (s *Scheduler) compact() {
	tweens := s.tweens[:0]
	for _, tw := range s.tweens {
		if tw.active {
			tweens = append(tweens, tw)
		}
	}
	for i := len(tweens); i < len(s.tweens); i++ {
		s.tweens[i] = nil
	}
	s.tweens = tweens

	timers := s.timers[:0]
	for _, t := range s.timers {
		if t.active {
			timers = append(timers, t)
		}
	}
	for i := len(timers); i < len(s.timers); i++ {
		s.timers[i] = nil
	}
	s.timers = timers
}

// Clear stops everything.
func (s *Scheduler) Clear() {
	for _, tw := range s.tweens {
		tw.active = false
	}
	for _, t := range s.timers {
		t.active = false
	}
	s.tweens = nil
	s.timers = nil
}

// Pending reports how many items are still scheduled.
func (s *Scheduler) Pending() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, tw := range s.tweens {
		if tw.active {
			n++
		}
	}
	for _, t := range s.timers {
		if t.active {
			n++
		}
	}
	return n
}
