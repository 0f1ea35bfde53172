package systems

import (
	"github.com/decker502/gamekit/pkg/components"
	"github.com/decker502/gamekit/pkg/ecs"
)

// MovementSystem applies velocities to transforms.
type MovementSystem struct {
	entityManager *ecs.EntityManager
}

// NewMovementSystem creates a movement system over the given entity manager.
func NewMovementSystem(em *ecs.EntityManager) *MovementSystem {
	return &MovementSystem{entityManager: em}
}

// Update moves every entity with a transform and a velocity by
// velocity * dt, where dt is the elapsed time in seconds.
func (ms *MovementSystem) Update(dt float64) {
	for _, id := range ecs.GetEntitiesWith2[*components.TransformComponent, *components.VelocityComponent](ms.entityManager) {
		transform, _ := ecs.GetComponent[*components.TransformComponent](ms.entityManager, id)
		velocity, _ := ecs.GetComponent[*components.VelocityComponent](ms.entityManager, id)
		transform.X += velocity.VX * dt
		transform.Y += velocity.VY * dt
	}
}
