package game

import (
	"log"

	"github.com/decker502/gamekit/pkg/audio"
	"github.com/decker502/gamekit/pkg/resource"
)

// AudioManager centralizes sound and music playback.
//
// Responsibilities:
//   - Play sound effects and background music by manifest resource ID
//   - Apply the volume and on/off settings from the SettingsManager
//   - Keep at most one background track playing at a time
//
// All playback goes through the resource cache, so each audio file is read
// and decoded once regardless of how many times it is played.
type AudioManager struct {
	resourceManager *resource.Manager // Loads and caches the audio data
	settingsManager *SettingsManager  // Volume settings; may be nil

	sounds map[string]*audio.Sound // Sound wrappers keyed by resource ID
	music  map[string]*audio.Music // Music wrappers keyed by resource ID

	currentMusic   *audio.Music // Track currently playing, nil when silent
	currentMusicID string
}

// NewAudioManager creates an audio manager. The settings manager may be nil,
// in which case everything plays at full volume.
func NewAudioManager(rm *resource.Manager, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		resourceManager: rm,
		settingsManager: sm,
		sounds:          make(map[string]*audio.Sound),
		music:           make(map[string]*audio.Music),
	}
}

// PlaySound plays a one-shot sound effect by resource ID, restarting it if
// it is already sounding. It reports whether the sound was actually played;
// disabled sound or a failed load return false.
func (am *AudioManager) PlaySound(soundID string) bool {
	if am.settingsManager != nil && !am.settingsManager.Get().SoundEnabled {
		return false
	}

	sound := am.soundFor(soundID)
	if sound == nil {
		return false
	}
	sound.SetVolume(am.soundVolume())
	sound.Play()
	return true
}

// PlayMusic starts the background track with the given resource ID, looping.
// Only one track plays at a time; a different track stops the current one
// first, while re-requesting the playing track is a no-op. It reports
// whether music is playing afterwards.
func (am *AudioManager) PlayMusic(musicID string) bool {
	if am.settingsManager != nil && !am.settingsManager.Get().MusicEnabled {
		return false
	}

	if am.currentMusicID == musicID && am.currentMusic != nil && am.currentMusic.IsPlaying() {
		return true
	}

	am.StopMusic()

	music := am.musicFor(musicID)
	if music == nil {
		return false
	}
	music.SetVolume(am.musicVolume())
	music.Play()
	am.currentMusic = music
	am.currentMusicID = musicID
	return true
}

// StopMusic stops the current background track, if any.
func (am *AudioManager) StopMusic() {
	if am.currentMusic != nil {
		am.currentMusic.Stop()
		am.currentMusic = nil
		am.currentMusicID = ""
	}
}

// PauseMusic suspends the current background track without losing its
// position; ResumeMusic continues it.
func (am *AudioManager) PauseMusic() {
	if am.currentMusic != nil {
		am.currentMusic.Pause()
	}
}

// ResumeMusic continues a track suspended by PauseMusic.
func (am *AudioManager) ResumeMusic() {
	if am.currentMusic != nil {
		am.currentMusic.Play()
	}
}

// ApplyVolumes pushes the current settings volumes onto all cached players.
// Call it after the user changes audio settings.
func (am *AudioManager) ApplyVolumes() {
	for _, sound := range am.sounds {
		sound.SetVolume(am.soundVolume())
	}
	for _, music := range am.music {
		music.SetVolume(am.musicVolume())
	}
}

// Shutdown stops playback and releases every cache reference the manager
// holds, making the audio data eligible for eviction on the next Purge.
func (am *AudioManager) Shutdown() {
	am.StopMusic()
	for id := range am.sounds {
		am.resourceManager.ReleaseByID(id)
	}
	for id := range am.music {
		am.resourceManager.ReleaseByID(id)
	}
	am.sounds = make(map[string]*audio.Sound)
	am.music = make(map[string]*audio.Music)
}

// soundFor returns the cached sound wrapper for an ID, loading it on first
// use. Returns nil and logs when the resource cannot be loaded.
func (am *AudioManager) soundFor(soundID string) *audio.Sound {
	if sound, exists := am.sounds[soundID]; exists {
		return sound
	}

	res, err := am.resourceManager.LoadSoundByID(soundID)
	if err != nil {
		log.Printf("[AudioManager] Failed to load sound %s: %v", soundID, err)
		return nil
	}
	sound, err := audio.NewSound(am.resourceManager.AudioContext(), res)
	if err != nil {
		am.resourceManager.ReleaseByID(soundID)
		log.Printf("[AudioManager] Failed to wrap sound %s: %v", soundID, err)
		return nil
	}
	am.sounds[soundID] = sound
	return sound
}

// musicFor returns the cached music wrapper for an ID, loading it on first
// use. Returns nil and logs when the resource cannot be loaded.
func (am *AudioManager) musicFor(musicID string) *audio.Music {
	if music, exists := am.music[musicID]; exists {
		return music
	}

	res, err := am.resourceManager.LoadSoundByID(musicID)
	if err != nil {
		log.Printf("[AudioManager] Failed to load music %s: %v", musicID, err)
		return nil
	}
	music, err := audio.NewMusic(am.resourceManager.AudioContext(), res)
	if err != nil {
		am.resourceManager.ReleaseByID(musicID)
		log.Printf("[AudioManager] Failed to wrap music %s: %v", musicID, err)
		return nil
	}
	am.music[musicID] = music
	return music
}

func (am *AudioManager) soundVolume() float64 {
	if am.settingsManager == nil {
		return 1.0
	}
	return am.settingsManager.Get().SoundVolume
}

func (am *AudioManager) musicVolume() float64 {
	if am.settingsManager == nil {
		return 1.0
	}
	return am.settingsManager.Get().MusicVolume
}
