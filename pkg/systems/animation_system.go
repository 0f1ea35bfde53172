package systems

import (
	"github.com/decker502/gamekit/pkg/components"
	"github.com/decker502/gamekit/pkg/ecs"
)

// AnimationSystem advances frame timers on all animation components.
type AnimationSystem struct {
	entityManager *ecs.EntityManager
}

// NewAnimationSystem creates an animation system over the given entity
// manager.
func NewAnimationSystem(em *ecs.EntityManager) *AnimationSystem {
	return &AnimationSystem{entityManager: em}
}

// Update advances every animation component by dt seconds.
func (as *AnimationSystem) Update(dt float64) {
	for _, id := range as.entityManager.GetEntitiesWith(componentKind[*components.AnimationComponent]()) {
		anim, _ := ecs.GetComponent[*components.AnimationComponent](as.entityManager, id)
		anim.Animation.Update(dt)
	}
}
