// Package ecs implements a small composition-based entity model. An entity
// is an opaque ID with no intrinsic behavior; everything it does comes from
// the set of components attached to it. Systems query entities by the
// component kinds they carry instead of dispatching through a type
// hierarchy.
package ecs

import (
	"errors"
	"reflect"
)

// EntityID is the unique identifier of an entity. 0 is never assigned and
// can be used as an invalid sentinel.
type EntityID uint64

var (
	// ErrUnknownEntity is returned when an operation references an entity
	// that was never created or has been destroyed.
	ErrUnknownEntity = errors.New("unknown entity")

	// ErrComponentKindConflict is returned by AddComponent when the entity
	// already holds a component of the same kind. An entity holds at most
	// one component per kind; remove the old one first to swap it.
	ErrComponentKindConflict = errors.New("component kind already attached")
)

// MessageReceiver is an optional component capability. Components that
// implement it receive intra-entity broadcasts sent through Notify, which is
// how components on the same entity communicate without direct references
// to each other (a physics component can announce a collision, and the
// graphics component can react).
type MessageReceiver interface {
	ReceiveMessage(message any)
}

// EntityManager owns all entities and their components.
//
// Destruction is deferred: DestroyEntity only marks, and the marked entities
// are removed when RemoveMarkedEntities is called, typically once at the end
// of each update cycle. This keeps entity sets stable while systems iterate.
//
// Not safe for concurrent use; it is driven from the single game loop
// goroutine.
type EntityManager struct {
	nextID uint64
	// Entity-component mapping: EntityID -> component kind -> instance
	components map[EntityID]map[reflect.Type]any
	// Entities marked for removal by DestroyEntity
	entitiesToDestroy []EntityID
}

// NewEntityManager creates a new, empty EntityManager.
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:            1, // IDs start at 1, 0 stays invalid
		components:        make(map[EntityID]map[reflect.Type]any),
		entitiesToDestroy: make([]EntityID, 0),
	}
}

// CreateEntity creates a new entity and returns its unique ID.
func (em *EntityManager) CreateEntity() EntityID {
	id := EntityID(em.nextID)
	em.nextID++
	em.components[id] = make(map[reflect.Type]any)
	return id
}

// Alive reports whether the entity exists and has not been removed.
// Entities marked by DestroyEntity count as alive until
// RemoveMarkedEntities runs.
func (em *EntityManager) Alive(id EntityID) bool {
	_, exists := em.components[id]
	return exists
}

// DestroyEntity marks an entity for removal. The entity and all of its
// components are deleted on the next RemoveMarkedEntities call; until then
// it remains queryable.
func (em *EntityManager) DestroyEntity(id EntityID) {
	em.entitiesToDestroy = append(em.entitiesToDestroy, id)
}

// RemoveMarkedEntities deletes every entity marked by DestroyEntity along
// with all of its components. Subsequent GetComponent calls for a removed
// entity report absence for every kind.
func (em *EntityManager) RemoveMarkedEntities() {
	for _, id := range em.entitiesToDestroy {
		delete(em.components, id)
	}
	em.entitiesToDestroy = em.entitiesToDestroy[:0]
}

// AddComponent attaches a component to an entity. The component's dynamic
// type is its kind; an entity holds at most one component per kind.
//
// Errors:
//   - ErrUnknownEntity if the entity does not exist
//   - ErrComponentKindConflict if a component of the same kind is attached
func (em *EntityManager) AddComponent(id EntityID, component any) error {
	compMap, exists := em.components[id]
	if !exists {
		return ErrUnknownEntity
	}
	kind := reflect.TypeOf(component)
	if _, occupied := compMap[kind]; occupied {
		return ErrComponentKindConflict
	}
	compMap[kind] = component
	return nil
}

// RemoveComponent detaches the component of the given kind from an entity.
// Removing a kind that is not attached is a no-op.
func (em *EntityManager) RemoveComponent(id EntityID, kind reflect.Type) {
	if compMap, exists := em.components[id]; exists {
		delete(compMap, kind)
	}
}

// GetComponent returns the entity's component of the given kind. Absence is
// a normal, non-error outcome reported through the second return value.
func (em *EntityManager) GetComponent(id EntityID, kind reflect.Type) (any, bool) {
	if compMap, exists := em.components[id]; exists {
		if comp, found := compMap[kind]; found {
			return comp, true
		}
	}
	return nil, false
}

// HasComponent reports whether the entity holds a component of the given
// kind.
func (em *EntityManager) HasComponent(id EntityID, kind reflect.Type) bool {
	if compMap, exists := em.components[id]; exists {
		_, found := compMap[kind]
		return found
	}
	return false
}

// GetEntitiesWith returns the IDs of all entities holding components of
// every listed kind. Systems use this to iterate entities by capability
// instead of by concrete entity type.
func (em *EntityManager) GetEntitiesWith(kinds ...reflect.Type) []EntityID {
	result := make([]EntityID, 0)

	for id, compMap := range em.components {
		hasAll := true
		for _, kind := range kinds {
			if _, found := compMap[kind]; !found {
				hasAll = false
				break
			}
		}
		if hasAll {
			result = append(result, id)
		}
	}

	return result
}

// ComponentsOf returns all components attached to an entity, in no
// particular order. Capability-driven systems use it to find components
// implementing an optional interface without knowing their kinds.
func (em *EntityManager) ComponentsOf(id EntityID) []any {
	compMap, exists := em.components[id]
	if !exists {
		return nil
	}
	result := make([]any, 0, len(compMap))
	for _, comp := range compMap {
		result = append(result, comp)
	}
	return result
}

// Notify broadcasts a message to every component on the entity that
// implements MessageReceiver. Components without the capability are skipped.
func (em *EntityManager) Notify(id EntityID, message any) {
	compMap, exists := em.components[id]
	if !exists {
		return
	}
	for _, comp := range compMap {
		if receiver, ok := comp.(MessageReceiver); ok {
			receiver.ReceiveMessage(message)
		}
	}
}
