package components

// VelocityComponent stores an entity's movement speed.
// The movement system applies it to the transform every update.
type VelocityComponent struct {
	VX float64 // Horizontal speed in pixels per second
	VY float64 // Vertical speed in pixels per second
}
