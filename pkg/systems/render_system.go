// Package systems provides the built-in systems driving the built-in
// component set. A system holds a reference to the entity manager and
// iterates entities filtered by the component kinds it needs.
package systems

import (
	"sort"

	"github.com/decker502/gamekit/pkg/components"
	"github.com/decker502/gamekit/pkg/ecs"
	"github.com/decker502/gamekit/pkg/graphics"
	"github.com/hajimehoshi/ebiten/v2"
)

// RenderSystem draws every visible entity that has a transform and a visual
// component (sprite or animation). Entities are drawn in layer order, with
// entity ID as the tie-breaker so the order stays deterministic frame to
// frame.
type RenderSystem struct {
	entityManager *ecs.EntityManager
	drawQueue     []drawItem // Reused between frames to avoid per-frame allocation
}

// drawItem is one visual scheduled for this frame.
type drawItem struct {
	id       ecs.EntityID
	layer    int
	drawable graphics.Drawable
	x, y     float64
}

// NewRenderSystem creates a render system over the given entity manager.
func NewRenderSystem(em *ecs.EntityManager) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
		drawQueue:     make([]drawItem, 0, 64),
	}
}

// Draw renders all visible sprite and animation components onto screen.
func (rs *RenderSystem) Draw(screen *ebiten.Image) {
	rs.drawQueue = rs.drawQueue[:0]

	for _, id := range ecs.GetEntitiesWith2[*components.TransformComponent, *components.SpriteComponent](rs.entityManager) {
		transform, _ := ecs.GetComponent[*components.TransformComponent](rs.entityManager, id)
		sprite, _ := ecs.GetComponent[*components.SpriteComponent](rs.entityManager, id)
		if !sprite.Visible {
			continue
		}
		rs.drawQueue = append(rs.drawQueue, drawItem{
			id:       id,
			layer:    sprite.Layer,
			drawable: sprite.Sprite,
			x:        transform.X,
			y:        transform.Y,
		})
	}

	for _, id := range ecs.GetEntitiesWith2[*components.TransformComponent, *components.AnimationComponent](rs.entityManager) {
		transform, _ := ecs.GetComponent[*components.TransformComponent](rs.entityManager, id)
		anim, _ := ecs.GetComponent[*components.AnimationComponent](rs.entityManager, id)
		if !anim.Visible {
			continue
		}
		rs.drawQueue = append(rs.drawQueue, drawItem{
			id:       id,
			layer:    anim.Layer,
			drawable: anim.Animation,
			x:        transform.X,
			y:        transform.Y,
		})
	}

	sort.Slice(rs.drawQueue, func(i, j int) bool {
		if rs.drawQueue[i].layer != rs.drawQueue[j].layer {
			return rs.drawQueue[i].layer < rs.drawQueue[j].layer
		}
		return rs.drawQueue[i].id < rs.drawQueue[j].id
	})

	for _, item := range rs.drawQueue {
		item.drawable.Draw(screen, item.x, item.y)
	}
}
