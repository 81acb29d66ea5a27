package main

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/milk9111/glider/audio"
	"github.com/milk9111/glider/common"
	"github.com/milk9111/glider/enemy"
	"github.com/milk9111/glider/entity"
	"github.com/milk9111/glider/highscore"
	"github.com/milk9111/glider/levels"
	"github.com/milk9111/glider/logger"
	"github.com/milk9111/glider/player"
)

// frameDuration is the fixed simulation step.
const frameDuration = time.Second / common.TPS

// runResult is a finished level.
type runResult struct {
	Score     int
	Elapsed   time.Duration
	Deaths    int
	NewRecord bool
}

// session is one level being played, shared by the window and the sim.
type session struct {
	level   *levels.Level
	tuning  player.Tuning
	mixer   *audio.Mixer
	svc     *services
	runtime *enemy.Runtime
	log     *zap.Logger

	world     *entity.World
	frame     int
	deaths    int
	animation string
	result    *runResult

	// onTransition observes every player state change.
	onTransition func(frame int, from, to player.State)
	// onEvent observes every world event.
	onEvent func(frame int, e entity.Event)
}

func newSession(levelName string, tuning player.Tuning, svc *services, mixer *audio.Mixer) (*session, error) {
	lvl, err := levels.Load(levelName)
	if err != nil {
		return nil, err
	}
	s := &session{
		level:   lvl,
		tuning:  tuning,
		mixer:   mixer,
		svc:     svc,
		runtime: enemy.NewRuntime(),
		log:     logger.Named("session"),
	}
	if err := s.restart(); err != nil {
		return nil, err
	}
	return s, nil
}

// restart respawns the whole level.
func (s *session) restart() error {
	w, err := entity.Spawn(s.level, entity.SpawnOptions{
		Tuning:  s.tuning,
		Hooks:   s.hooks(),
		Logger:  logger.Log,
		Runtime: s.runtime,
	})
	if err != nil {
		return fmt.Errorf("spawn %s: %w", s.level.Name, err)
	}
	s.world = w
	s.frame = 0
	s.deaths = 0
	s.animation = player.StateIdle.String()
	s.result = nil
	return nil
}

func (s *session) hooks() player.Hooks {
	return player.Hooks{
		OnStateChanged: func(from, to player.State) {
			if s.onTransition != nil {
				s.onTransition(s.frame, from, to)
			}
		},
		OnAnimation: func(name string) {
			s.animation = name
		},
		OnDeath: func() {
			s.deaths++
		},
		OnSound: func(cue player.Cue) {
			if s.mixer != nil {
				s.mixer.Play(cue)
			}
		},
	}
}

// applyTuning swaps movement constants without touching state or health.
func (s *session) applyTuning(t player.Tuning) {
	s.tuning = t
	s.world.Player().SetTuning(t)
}

func (s *session) step(in player.Input) {
	s.frame++
	s.world.Update(in, frameDuration)
	for _, e := range s.world.Events() {
		if s.onEvent != nil {
			s.onEvent(s.frame, e)
		}
		if e.Kind == entity.EventLevelComplete {
			s.complete(e)
		}
	}
}

func (s *session) complete(e entity.Event) {
	res := &runResult{Score: e.Value, Elapsed: e.Elapsed, Deaths: s.deaths}
	s.result = res
	if s.svc == nil {
		return
	}

	ok, err := s.svc.scores.SaveHighScore(res.Score, res.Elapsed.Milliseconds())
	if err != nil {
		s.log.Warn("high score not saved", zap.Error(err))
	}
	res.NewRecord = ok

	if s.svc.history != nil {
		run := highscore.Run{Level: s.level.Name, Score: res.Score, Time: res.Elapsed, Deaths: res.Deaths}
		if _, err := s.svc.history.Save(run); err != nil {
			s.log.Warn("run not recorded", zap.Error(err))
		}
	}
}

func (s *session) finished() bool {
	return s.result != nil
}
