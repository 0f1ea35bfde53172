package ecs

import "reflect"

// Generic lookup helpers. They avoid both the reflect.TypeOf boilerplate and
// the type assertion at every call site; the kind is derived from the type
// parameter instead.

// GetComponent returns the entity's component of type T, typed.
func GetComponent[T any](em *EntityManager, id EntityID) (T, bool) {
	var zero T
	comp, found := em.GetComponent(id, reflect.TypeOf(zero))
	if !found {
		return zero, false
	}
	return comp.(T), true
}

// HasComponent reports whether the entity holds a component of type T.
func HasComponent[T any](em *EntityManager, id EntityID) bool {
	var zero T
	return em.HasComponent(id, reflect.TypeOf(zero))
}

// RemoveComponent detaches the entity's component of type T, if any.
func RemoveComponent[T any](em *EntityManager, id EntityID) {
	var zero T
	em.RemoveComponent(id, reflect.TypeOf(zero))
}

// GetEntitiesWith2 returns all entities holding components of both types.
func GetEntitiesWith2[T1, T2 any](em *EntityManager) []EntityID {
	var z1 T1
	var z2 T2
	return em.GetEntitiesWith(reflect.TypeOf(z1), reflect.TypeOf(z2))
}

// GetEntitiesWith3 returns all entities holding components of all three
// types.
func GetEntitiesWith3[T1, T2, T3 any](em *EntityManager) []EntityID {
	var z1 T1
	var z2 T2
	var z3 T3
	return em.GetEntitiesWith(reflect.TypeOf(z1), reflect.TypeOf(z2), reflect.TypeOf(z3))
}
