// Package components provides the built-in component set used by the
// built-in systems. Games define additional component types freely; any
// struct attached through the entity manager is a component.
package components

// TransformComponent stores an entity's position relative to the screen.
type TransformComponent struct {
	X float64 // X-position in pixels
	Y float64 // Y-position in pixels
}
