package components

import "github.com/decker502/gamekit/pkg/graphics"

// AnimationComponent attaches a frame animation to an entity.
// The animation system advances it and the render system draws the current
// frame at the entity's transform position.
type AnimationComponent struct {
	Animation *graphics.Animation // Wrapper over a cache-owned sprite sheet
	Layer     int                 // Draw order; lower layers are drawn first
	Visible   bool                // Skipped by the render system when false
}

// NewAnimationComponent wraps an animation in a visible component on layer 0.
func NewAnimationComponent(anim *graphics.Animation) *AnimationComponent {
	return &AnimationComponent{Animation: anim, Visible: true}
}
