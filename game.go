package main

import (
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/milk9111/glider/audio"
	"github.com/milk9111/glider/common"
	"github.com/milk9111/glider/config"
	"github.com/milk9111/glider/logger"
)

type Game struct {
	frames int

	cfg      *config.Config
	sess     *session
	svc      *services
	input    *Input
	renderer *renderer
	pauseUI  *ebitenui.UI
	watcher  *config.Watcher

	paused bool
	quit   bool
	debug  bool
}

func NewGame(cfg *config.Config, cfgPath string, svc *services, mixer *audio.Mixer) (*Game, error) {
	sess, err := newSession(cfg.Level, cfg.Player.Tuning(), svc, mixer)
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:      cfg,
		sess:     sess,
		svc:      svc,
		input:    NewInput(),
		renderer: newRenderer(sess.level),
		debug:    cfg.Window.Debug,
	}
	g.pauseUI = NewPauseUI(g)

	if cfgPath != "" {
		w, err := config.Watch(cfgPath)
		if err != nil {
			logger.Warn("config hot reload disabled", zap.Error(err))
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func (g *Game) setPaused(p bool) {
	g.paused = p
	g.sess.world.SetPaused(p)
}

// pollConfig applies reloaded movement tuning between frames.
func (g *Game) pollConfig() {
	if g.watcher == nil {
		return
	}
	select {
	case cfg, ok := <-g.watcher.Changes:
		if ok {
			g.cfg.Player = cfg.Player
			g.sess.applyTuning(cfg.Player.Tuning())
			logger.Info("tuning reloaded")
		}
	case err, ok := <-g.watcher.Errors:
		if ok {
			logger.Warn("config reload rejected", zap.Error(err))
		}
	default:
	}
}

func (g *Game) Update() error {
	g.frames++
	g.pollConfig()

	if g.quit {
		return ebiten.Termination
	}
	if g.input.PausePressed() {
		g.setPaused(!g.paused)
	}
	if g.input.DebugTogglePressed() {
		g.debug = !g.debug
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	if g.sess.finished() {
		if g.input.ConfirmPressed() {
			if err := g.sess.restart(); err != nil {
				return err
			}
		}
		return nil
	}
	g.sess.step(g.input.Poll())
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.draw(screen, g.sess, g.debug)
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// Close stops the config watcher.
func (g *Game) Close() {
	if g.watcher == nil {
		return
	}
	if err := g.watcher.Close(); err != nil {
		logger.Warn("close config watcher", zap.Error(err))
	}
}
