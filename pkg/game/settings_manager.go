package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Settings holds the global engine settings. They are not tied to a
// particular save slot or player profile.
type Settings struct {
	// Audio settings
	MusicVolume  float64 `yaml:"musicVolume"`  // Music volume 0.0 .. 1.0
	SoundVolume  float64 `yaml:"soundVolume"`  // Sound effect volume 0.0 .. 1.0
	MusicEnabled bool    `yaml:"musicEnabled"` // Music on/off
	SoundEnabled bool    `yaml:"soundEnabled"` // Sound effects on/off

	// Display settings
	Fullscreen bool `yaml:"fullscreen"` // Start in fullscreen
}

// DefaultSettings returns the settings used on first run or when the stored
// settings cannot be read.
func DefaultSettings() *Settings {
	return &Settings{
		MusicVolume:  0.7,
		SoundVolume:  0.8,
		MusicEnabled: true,
		SoundEnabled: true,
		Fullscreen:   false,
	}
}

// Storage location within the gdata container.
const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// SettingsManager loads, stores and persists engine settings.
// Persistence goes through gdata, which picks a platform-appropriate
// location. With a nil gdata manager it degrades to in-memory settings:
// everything works, nothing survives a restart.
type SettingsManager struct {
	gdataManager *gdata.Manager // May be nil (degraded, in-memory mode)
	settings     *Settings      // Current settings, never nil
}

// NewSettingsManager creates a settings manager and immediately tries to
// load previously saved settings. A failed load is not fatal; defaults are
// used instead and the error is logged.
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}
	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: failed to load settings: %v (using defaults)", err)
	}
	return sm
}

// Load reads settings from storage. Missing storage or a missing settings
// entry resets to defaults without error; a present but unreadable entry
// resets to defaults and returns the error.
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	var loaded Settings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	sm.settings = &loaded
	return nil
}

// Save writes the current settings to storage. In degraded mode it is a
// silent no-op.
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// Get returns the current settings. The pointer stays valid; mutate through
// the setters so changes are clamped and persisted consistently.
func (sm *SettingsManager) Get() *Settings {
	return sm.settings
}

// SetMusicVolume updates the music volume, clamped to 0.0 .. 1.0.
func (sm *SettingsManager) SetMusicVolume(volume float64) {
	sm.settings.MusicVolume = clamp01(volume)
}

// SetSoundVolume updates the sound effect volume, clamped to 0.0 .. 1.0.
func (sm *SettingsManager) SetSoundVolume(volume float64) {
	sm.settings.SoundVolume = clamp01(volume)
}

// SetMusicEnabled switches music on or off.
func (sm *SettingsManager) SetMusicEnabled(enabled bool) {
	sm.settings.MusicEnabled = enabled
}

// SetSoundEnabled switches sound effects on or off.
func (sm *SettingsManager) SetSoundEnabled(enabled bool) {
	sm.settings.SoundEnabled = enabled
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
