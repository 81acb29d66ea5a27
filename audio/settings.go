// Package audio owns sound settings and plays the player's cues.
package audio

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/glider/common"
)

// Settings are the process-wide sound settings. The Mixer reads them on
// every cue, so changes apply immediately.
type Settings struct {
	Muted        bool    `yaml:"muted"`
	MasterVolume float64 `yaml:"master_volume"`
	SFXVolume    float64 `yaml:"sfx_volume"`
}

func DefaultSettings() Settings {
	return Settings{MasterVolume: 0.8, SFXVolume: 0.7}
}

// Volume is the effective cue volume, zero when muted.
func (s *Settings) Volume() float64 {
	if s == nil || s.Muted {
		return 0
	}
	return common.Clamp(s.MasterVolume*s.SFXVolume, 0, 1)
}

const (
	settingsObject   = "settings"
	settingsProperty = "audio"
)

// SettingsManager loads and saves Settings through gdata. A nil gdata
// manager keeps settings in memory only.
type SettingsManager struct {
	data     *gdata.Manager
	defaults Settings
	settings *Settings
	log      *zap.Logger
}

// NewSettingsManager loads saved settings, falling back to defaults. Load
// failures are logged, not returned.
func NewSettingsManager(data *gdata.Manager, defaults Settings, log *zap.Logger) *SettingsManager {
	if log == nil {
		log = zap.NewNop()
	}
	sm := &SettingsManager{
		data:     data,
		defaults: defaults,
		settings: &Settings{},
		log:      log,
	}
	*sm.settings = defaults
	if err := sm.Load(); err != nil {
		log.Warn("audio settings unreadable, using defaults", zap.Error(err))
	}
	return sm
}

// Settings returns the live settings. The pointer stays valid across Load
// and Reset.
func (sm *SettingsManager) Settings() *Settings {
	return sm.settings
}

func (sm *SettingsManager) Load() error {
	*sm.settings = sm.defaults
	if sm.data == nil || !sm.data.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}
	raw, err := sm.data.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("audio: load settings: %w", err)
	}
	loaded := sm.defaults
	if err := yaml.Unmarshal(raw, &loaded); err != nil {
		return fmt.Errorf("audio: decode settings: %w", err)
	}
	loaded.MasterVolume = common.Clamp(loaded.MasterVolume, 0, 1)
	loaded.SFXVolume = common.Clamp(loaded.SFXVolume, 0, 1)
	*sm.settings = loaded
	return nil
}

func (sm *SettingsManager) Save() error {
	if sm.data == nil {
		return nil
	}
	raw, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("audio: encode settings: %w", err)
	}
	if err := sm.data.SaveObjectProp(settingsObject, settingsProperty, raw); err != nil {
		return fmt.Errorf("audio: save settings: %w", err)
	}
	return nil
}

// Reset restores the defaults and persists them.
func (sm *SettingsManager) Reset() error {
	*sm.settings = sm.defaults
	return sm.Save()
}

func (sm *SettingsManager) SetMuted(muted bool) {
	sm.settings.Muted = muted
}

// ToggleMute flips mute and reports the new value.
func (sm *SettingsManager) ToggleMute() bool {
	sm.settings.Muted = !sm.settings.Muted
	return sm.settings.Muted
}

func (sm *SettingsManager) SetMasterVolume(v float64) {
	sm.settings.MasterVolume = common.Clamp(v, 0, 1)
}

func (sm *SettingsManager) SetSFXVolume(v float64) {
	sm.settings.SFXVolume = common.Clamp(v, 0, 1)
}
