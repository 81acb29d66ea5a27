// Package config loads game settings with priority defaults < file < flags.
package config

import (
	"errors"
	"fmt"

	"github.com/milk9111/glider/common"
	"github.com/milk9111/glider/levels"
	"github.com/milk9111/glider/player"
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Level   string        `yaml:"level"`
	Player  PlayerConfig  `yaml:"player"`
	Audio   AudioConfig   `yaml:"audio"`
	Storage StorageConfig `yaml:"storage"`
	Logging LoggingConfig `yaml:"logging"`
}

type WindowConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	Title      string `yaml:"title"`
	// Debug draws hitboxes, damage boxes and the state overlay.
	Debug bool `yaml:"debug"`
}

// PlayerConfig is the movement tuning, flattened into the player section.
type PlayerConfig struct {
	Movement player.Tuning `yaml:",inline"`
}

// AudioConfig seeds the audio settings the first time the game runs. Saved
// settings win afterwards.
type AudioConfig struct {
	Muted        bool    `yaml:"muted"`
	MasterVolume float64 `yaml:"master_volume"`
	SFXVolume    float64 `yaml:"sfx_volume"`
}

type StorageConfig struct {
	// AppName namespaces the save data directory.
	AppName string `yaml:"app_name"`
	// HistoryDB is the run history database. Empty means ConfigDir()/history.db.
	HistoryDB string `yaml:"history_db"`
}

type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  common.BaseWidth,
			Height: common.BaseHeight,
			Title:  "Glider",
		},
		Level:  levels.DefaultLevel,
		Player: PlayerConfig{Movement: player.DefaultTuning()},
		Audio: AudioConfig{
			MasterVolume: 0.8,
			SFXVolume:    0.7,
		},
		Storage: StorageConfig{
			AppName: "glider",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Tuning returns the player tuning.
func (p PlayerConfig) Tuning() player.Tuning {
	return p.Movement
}

// Validate rejects values the game cannot run with.
func (c *Config) Validate() error {
	t := c.Player.Movement
	checks := []struct {
		name string
		ok   bool
	}{
		{"window.width", c.Window.Width > 0},
		{"window.height", c.Window.Height > 0},
		{"player.move_speed", t.MoveSpeed > 0},
		{"player.jump_speed", t.JumpSpeed > 0},
		{"player.glide_speed_factor", t.GlideSpeedFactor > 0},
		{"player.turn_duration", t.TurnDuration > 0},
		{"player.spin_duration", t.SpinDuration > 0},
		{"player.pole_swing_period", t.PoleSwingPeriod > 0},
		{"player.max_health", t.MaxHealth > 0},
		{"audio.master_volume", c.Audio.MasterVolume >= 0 && c.Audio.MasterVolume <= 1},
		{"audio.sfx_volume", c.Audio.SFXVolume >= 0 && c.Audio.SFXVolume <= 1},
		{"storage.app_name", c.Storage.AppName != ""},
	}
	for _, chk := range checks {
		if !chk.ok {
			return fmt.Errorf("%w: %s", ErrInvalid, chk.name)
		}
	}
	return nil
}

// Overrides are the command line flags. Zero values leave the config alone.
type Overrides struct {
	Level   string
	Debug   bool
	LogFile string
	DB      string
}

func (c *Config) Apply(o Overrides) {
	if o.Level != "" {
		c.Level = o.Level
	}
	if o.Debug {
		c.Logging.Level = "debug"
		c.Window.Debug = true
	}
	if o.LogFile != "" {
		c.Logging.LogFile = o.LogFile
	}
	if o.DB != "" {
		c.Storage.HistoryDB = o.DB
	}
}
