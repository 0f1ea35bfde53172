package components

// LifetimeComponent bounds how long an entity exists.
// The lifetime system expires and destroys entities whose time is up, which
// is how short-lived objects (projectiles, pickups, effects) clean
// themselves without bespoke logic.
type LifetimeComponent struct {
	MaxLifetime     float64 // Maximum lifetime in seconds
	CurrentLifetime float64 // Time lived so far in seconds
	IsExpired       bool    // Set by the lifetime system when time runs out
}
