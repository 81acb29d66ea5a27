package main

import (
	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"

	"github.com/milk9111/glider/audio"
	"github.com/milk9111/glider/config"
	"github.com/milk9111/glider/highscore"
	"github.com/milk9111/glider/logger"
)

// services are the persistence collaborators. Every one degrades to an
// in-memory or absent form when its storage cannot be opened.
type services struct {
	audio   *audio.SettingsManager
	scores  *highscore.Store
	history *highscore.History
}

func openServices(cfg *config.Config) *services {
	data, err := gdata.Open(gdata.Config{AppName: cfg.Storage.AppName})
	if err != nil {
		logger.Warn("save data unavailable, nothing will persist", zap.Error(err))
		data = nil
	}

	defaults := audio.Settings{
		Muted:        cfg.Audio.Muted,
		MasterVolume: cfg.Audio.MasterVolume,
		SFXVolume:    cfg.Audio.SFXVolume,
	}
	svc := &services{
		audio:  audio.NewSettingsManager(data, defaults, logger.Named("audio")),
		scores: highscore.NewStore(data, logger.Named("highscore")),
	}

	hist, err := highscore.OpenHistory(cfg.HistoryPath())
	if err != nil {
		logger.Warn("run history unavailable", zap.Error(err))
	} else {
		svc.history = hist
	}
	return svc
}

func (s *services) Close() {
	if s.history != nil {
		if err := s.history.Close(); err != nil {
			logger.Warn("close history", zap.Error(err))
		}
	}
}
