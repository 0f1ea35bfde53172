package components

import "github.com/decker502/gamekit/pkg/graphics"

// SpriteComponent attaches a static visual to an entity.
// The render system draws it at the entity's transform position.
type SpriteComponent struct {
	Sprite  *graphics.Sprite // Wrapper over a cache-owned image
	Layer   int              // Draw order; lower layers are drawn first
	Visible bool             // Skipped by the render system when false
}

// NewSpriteComponent wraps a sprite in a visible component on layer 0.
func NewSpriteComponent(sprite *graphics.Sprite) *SpriteComponent {
	return &SpriteComponent{Sprite: sprite, Visible: true}
}
