package main

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	ebaudio "github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/milk9111/glider/audio"
	"github.com/milk9111/glider/common"
	"github.com/milk9111/glider/logger"
)

func runPlay(f *flags) error {
	cfg, cfgPath, err := f.load()
	if err != nil {
		return err
	}
	defer logger.Sync()

	svc := openServices(cfg)
	defer svc.Close()

	ctx := ebaudio.NewContext(audio.SampleRate)
	mixer := audio.NewMixer(ctx, svc.audio.Settings(), logger.Named("audio"))

	game, err := NewGame(cfg, cfgPath, svc, mixer)
	if err != nil {
		return err
	}
	defer game.Close()

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetFullscreen(cfg.Window.Fullscreen)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(common.TPS)

	logger.Info("starting game")
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
