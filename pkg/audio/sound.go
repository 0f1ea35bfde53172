// Package audio provides thin wrapper types around cache-owned audio
// resources. A wrapper builds its own Ebitengine player over the decoded PCM
// data shared through the resource cache, so several wrappers can play the
// same clip independently while the file is read and decoded only once.
package audio

import (
	"fmt"
	"log"

	"github.com/decker502/gamekit/pkg/resource"
	eaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

// Sound is a one-shot audio clip (button click, hit, pickup).
// Play restarts the clip from the beginning each time.
type Sound struct {
	player *eaudio.Player
	volume float64
}

// NewSound constructs a sound over an audio resource obtained from the
// resource cache. The context must be the same one the resource manager
// decodes with. It fails with resource.ErrUnsupportedFormat when the
// resource is not audio.
func NewSound(ctx *eaudio.Context, res *resource.Resource) (*Sound, error) {
	if res.Kind() != resource.KindAudio {
		return nil, fmt.Errorf("sound over %s resource %s: %w",
			res.Kind(), res.Path(), resource.ErrUnsupportedFormat)
	}
	return &Sound{
		player: ctx.NewPlayerFromBytes(res.PCM()),
		volume: 1.0,
	}, nil
}

// Play restarts the clip from the beginning. Calling Play while the clip is
// still sounding cuts it off and starts over.
func (s *Sound) Play() {
	if err := s.player.Rewind(); err != nil {
		log.Printf("[Audio] Warning: failed to rewind sound: %v", err)
	}
	s.player.Play()
}

// Stop halts playback and rewinds to the beginning.
func (s *Sound) Stop() {
	s.player.Pause()
	if err := s.player.Rewind(); err != nil {
		log.Printf("[Audio] Warning: failed to rewind sound: %v", err)
	}
}

// SetVolume sets the playback volume, clamped to the 0.0..1.0 range.
func (s *Sound) SetVolume(volume float64) {
	s.volume = clampVolume(volume)
	s.player.SetVolume(s.volume)
}

// Volume returns the current playback volume.
func (s *Sound) Volume() float64 { return s.volume }

// IsPlaying reports whether the clip is currently sounding.
func (s *Sound) IsPlaying() bool { return s.player.IsPlaying() }

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
