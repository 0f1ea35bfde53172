package systems

import (
	"reflect"

	"github.com/decker502/gamekit/pkg/components"
	"github.com/decker502/gamekit/pkg/ecs"
)

// componentKind returns the reflect.Type key for a component type.
func componentKind[T any]() reflect.Type {
	var zero T
	return reflect.TypeOf(zero)
}

// LifetimeSystem expires entities whose lifetime has run out and marks them
// for destruction. The owning scene is expected to call
// RemoveMarkedEntities on the entity manager at the end of its update.
type LifetimeSystem struct {
	entityManager *ecs.EntityManager
}

// NewLifetimeSystem creates a lifetime system over the given entity manager.
func NewLifetimeSystem(em *ecs.EntityManager) *LifetimeSystem {
	return &LifetimeSystem{entityManager: em}
}

// Update advances lifetime counters by dt seconds and destroys entities
// that exceed their maximum lifetime.
func (ls *LifetimeSystem) Update(dt float64) {
	for _, id := range ls.entityManager.GetEntitiesWith(componentKind[*components.LifetimeComponent]()) {
		lifetime, _ := ecs.GetComponent[*components.LifetimeComponent](ls.entityManager, id)
		if lifetime.IsExpired {
			continue
		}
		lifetime.CurrentLifetime += dt
		if lifetime.CurrentLifetime >= lifetime.MaxLifetime {
			lifetime.IsExpired = true
			ls.entityManager.DestroyEntity(id)
		}
	}
}
