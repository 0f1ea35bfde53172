package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents one logical mode of the game (main menu, gameplay, pause
// menu). Each scene owns its active entities and has its own update and
// rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Transparency is an optional interface for scenes that do not fully cover
// the scene below them on the stack (a pause menu drawn over frozen
// gameplay). When the top scene reports Transparent() == true, the scene
// manager also draws the scenes underneath it, from the first opaque one
// upward. Scenes that do not implement the interface are opaque.
type Transparency interface {
	Transparent() bool
}

// Enterer is an optional interface for scenes that need setup when they are
// pushed onto the stack, such as loading a resource group or spawning their
// entity set.
type Enterer interface {
	Enter()
}

// Exiter is an optional interface for scenes that need teardown when they
// are popped or replaced, such as releasing acquired resources.
type Exiter interface {
	Exit()
}

// Suspender is an optional interface for scenes that react to being covered
// by a newly pushed scene and to being uncovered again. A gameplay scene
// would typically pause its music in Suspend and restart it in Resume.
type Suspender interface {
	Suspend()
	Resume()
}
