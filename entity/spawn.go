package entity

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/milk9111/glider/common"
	"github.com/milk9111/glider/enemy"
	"github.com/milk9111/glider/levels"
	"github.com/milk9111/glider/physics"
	"github.com/milk9111/glider/player"
	"github.com/milk9111/glider/tween"
)

type SpawnOptions struct {
	Tuning  player.Tuning
	Hooks   player.Hooks
	Logger  *zap.Logger
	Runtime *enemy.Runtime
	Gravity float64
}

// Spawn builds a world for lvl: the tile space, the player at the spawn
// point and every placed entity.
func Spawn(lvl *levels.Level, opts SpawnOptions) (*World, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	gravity := opts.Gravity
	if gravity == 0 {
		gravity = common.Gravity
	}
	rt := opts.Runtime
	if rt == nil {
		rt = enemy.NewRuntime()
	}

	sx, sy, err := lvl.Spawn()
	if err != nil {
		return nil, err
	}

	space := physics.NewSpace(lvl.Grid(), gravity)
	sched := tween.NewScheduler()
	w := NewWorld(space, sched, log)
	w.SetLowerBound(lvl.LowerBound())

	p := player.New(w.NextID(), space.NewBody(sx, sy, player.BodyWidth, player.BodyHeight), sched, player.Options{
		Tuning:     opts.Tuning,
		Hooks:      opts.Hooks,
		Surfaces:   space,
		Logger:     log.Named("player"),
		LowerBound: lvl.LowerBound(),
	})
	w.SetPlayer(p)

	for _, e := range lvl.Entities {
		x, y := float64(e.X), float64(e.Y)
		switch e.Type {
		case levels.TypePlayerSpawn:
		case levels.TypeMuncher, levels.TypeGlizzard:
			spec, _ := enemy.SpecFor(enemy.Kind(e.Type))
			spec.Patrol = e.Float("patrol", spec.Patrol)
			m, err := rt.Machine(spec.Script)
			if err != nil {
				return nil, fmt.Errorf("entity: spawn %s: %w", e.Type, err)
			}
			body := space.NewBody(x, y, spec.Width, spec.Height)
			w.AddEnemy(enemy.New(w.NextID(), spec, body, sched, m, enemy.Options{
				Target:   p,
				Surfaces: space,
				Logger:   log.Named("enemy"),
			}))
		case levels.TypePole:
			w.AddPole(&Pole{ID: w.NextID(), X: x, Y: y, Length: e.Float("length", 64)})
		case levels.TypeTeleporter:
			w.AddTeleporter(&Teleporter{
				ID:      w.NextID(),
				Area:    common.RectFromCenter(x, y, e.Float("width", 32), e.Float("height", 48)),
				TargetX: e.Float("target_x", x),
				TargetY: e.Float("target_y", y),
			})
		case levels.TypeHazard:
			w.AddHazard(&Hazard{
				ID:     w.NextID(),
				Area:   common.RectFromCenter(x, y, e.Float("width", 32), e.Float("height", 16)),
				Damage: e.Int("damage", 1),
			})
		case levels.TypeGoal:
			w.SetGoal(&Goal{ID: w.NextID(), Area: common.RectFromCenter(x, y, e.Float("width", 32), e.Float("height", 64))})
		default:
			log.Warn("unknown entity type", zap.String("type", e.Type), zap.Int("x", e.X), zap.Int("y", e.Y))
		}
	}

	log.Info("level spawned",
		zap.String("level", lvl.Name),
		zap.Int("actors", len(w.actors)),
		zap.Int("poles", len(w.poles)),
	)
	return w, nil
}
