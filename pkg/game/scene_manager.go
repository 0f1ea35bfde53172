package game

import (
	"errors"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrEmptyStack is returned when Pop or Replace is called with no scene on
// the stack. Hitting it means the caller's transition logic is broken; it is
// a precondition violation, not a runtime condition to recover from.
var ErrEmptyStack = errors.New("scene stack is empty")

// SceneManager manages the game's high-level state as a stack of scenes.
// The topmost scene is active: it alone receives Update calls. Draw also
// goes to the top scene only, unless it declares itself transparent, in
// which case the scenes below it are drawn first (pause-menu-over-gameplay).
//
// Scene lifecycle around stack operations:
//
//	Push:    previous top gets Suspend, new top gets Enter
//	Pop:     top gets Exit, uncovered scene gets Resume
//	Replace: top gets Exit, new top gets Enter (no Resume below)
type SceneManager struct {
	stack []Scene
}

// NewSceneManager creates a scene manager with an empty stack.
// Push an initial scene before driving it from the game loop.
func NewSceneManager() *SceneManager {
	return &SceneManager{
		stack: make([]Scene, 0, 4),
	}
}

// Push suspends the current top scene (if any) and activates the given
// scene on top of it.
func (sm *SceneManager) Push(scene Scene) {
	if top := sm.Current(); top != nil {
		if suspender, ok := top.(Suspender); ok {
			suspender.Suspend()
		}
	}
	sm.stack = append(sm.stack, scene)
	if enterer, ok := scene.(Enterer); ok {
		enterer.Enter()
	}
	log.Printf("[SceneManager] Pushed scene (depth %d)", len(sm.stack))
}

// Pop removes the active scene and resumes the one underneath.
// Popping an empty stack returns ErrEmptyStack.
func (sm *SceneManager) Pop() error {
	if len(sm.stack) == 0 {
		return ErrEmptyStack
	}

	top := sm.stack[len(sm.stack)-1]
	sm.stack[len(sm.stack)-1] = nil
	sm.stack = sm.stack[:len(sm.stack)-1]
	if exiter, ok := top.(Exiter); ok {
		exiter.Exit()
	}

	if next := sm.Current(); next != nil {
		if suspender, ok := next.(Suspender); ok {
			suspender.Resume()
		}
	}
	log.Printf("[SceneManager] Popped scene (depth %d)", len(sm.stack))
	return nil
}

// Replace swaps the active scene for the given one without touching the
// rest of the stack. The scene underneath is neither suspended nor resumed.
// Replacing on an empty stack returns ErrEmptyStack.
func (sm *SceneManager) Replace(scene Scene) error {
	if len(sm.stack) == 0 {
		return ErrEmptyStack
	}

	top := sm.stack[len(sm.stack)-1]
	if exiter, ok := top.(Exiter); ok {
		exiter.Exit()
	}
	sm.stack[len(sm.stack)-1] = scene
	if enterer, ok := scene.(Enterer); ok {
		enterer.Enter()
	}
	log.Printf("[SceneManager] Replaced scene (depth %d)", len(sm.stack))
	return nil
}

// Current returns the active scene, or nil when the stack is empty.
func (sm *SceneManager) Current() Scene {
	if len(sm.stack) == 0 {
		return nil
	}
	return sm.stack[len(sm.stack)-1]
}

// Len returns the number of scenes on the stack, including suspended ones.
func (sm *SceneManager) Len() int {
	return len(sm.stack)
}

// Update updates the active scene only. Suspended scenes stay resident but
// do not advance. With an empty stack this does nothing.
func (sm *SceneManager) Update(deltaTime float64) {
	if scene := sm.Current(); scene != nil {
		scene.Update(deltaTime)
	}
}

// Draw renders the visible portion of the stack onto screen: starting from
// the lowest scene not hidden behind an opaque scene, upward to the top.
// With an empty stack this does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if len(sm.stack) == 0 {
		return
	}

	// Walk down from the top until a scene fully covers the ones below it.
	first := len(sm.stack) - 1
	for first > 0 && isTransparent(sm.stack[first]) {
		first--
	}

	for i := first; i < len(sm.stack); i++ {
		sm.stack[i].Draw(screen)
	}
}

// isTransparent reports whether a scene opts into draw-through.
func isTransparent(scene Scene) bool {
	if t, ok := scene.(Transparency); ok {
		return t.Transparent()
	}
	return false
}
