package components

import "github.com/decker502/gamekit/pkg/audio"

// AudioSourceComponent attaches a sound effect to an entity.
// Behavior code plays it directly; it exists as a component so sounds share
// the entity's lifetime and can be found by capability queries.
type AudioSourceComponent struct {
	Sound *audio.Sound // Wrapper over cache-owned PCM data
}
