package audio

import (
	"bytes"
	"fmt"
	"log"

	"github.com/decker502/gamekit/pkg/resource"
	eaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

// Music is a looping audio track (background music). The underlying stream
// is wrapped in an infinite loop, so it keeps playing until stopped.
type Music struct {
	player *eaudio.Player
	volume float64
}

// NewMusic constructs a looping track over an audio resource obtained from
// the resource cache. It fails with resource.ErrUnsupportedFormat when the
// resource is not audio.
func NewMusic(ctx *eaudio.Context, res *resource.Resource) (*Music, error) {
	if res.Kind() != resource.KindAudio {
		return nil, fmt.Errorf("music over %s resource %s: %w",
			res.Kind(), res.Path(), resource.ErrUnsupportedFormat)
	}

	pcm := res.PCM()
	loop := eaudio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm)))
	player, err := ctx.NewPlayer(loop)
	if err != nil {
		return nil, fmt.Errorf("failed to create music player for %s: %w", res.Path(), err)
	}

	return &Music{
		player: player,
		volume: 1.0,
	}, nil
}

// Play starts or resumes playback. A track paused with Pause continues from
// where it left off.
func (m *Music) Play() {
	m.player.Play()
}

// Pause suspends playback without losing the position.
func (m *Music) Pause() {
	m.player.Pause()
}

// Stop halts playback and rewinds to the beginning of the loop.
func (m *Music) Stop() {
	m.player.Pause()
	if err := m.player.Rewind(); err != nil {
		log.Printf("[Audio] Warning: failed to rewind music: %v", err)
	}
}

// SetVolume sets the playback volume, clamped to the 0.0..1.0 range.
func (m *Music) SetVolume(volume float64) {
	m.volume = clampVolume(volume)
	m.player.SetVolume(m.volume)
}

// Volume returns the current playback volume.
func (m *Music) Volume() float64 { return m.volume }

// IsPlaying reports whether the track is currently sounding.
func (m *Music) IsPlaying() bool { return m.player.IsPlaying() }
