package graphics

import (
	"fmt"

	"github.com/decker502/gamekit/pkg/resource"
	"github.com/hajimehoshi/ebiten/v2"
)

// Animation is a 2D image that alternates between frames after set time
// intervals.
//
// The source resource is treated as a horizontal sprite sheet: the sheet
// width divided by the number of frame durations gives the frame width.
// As a Sprite, an animation supports the same offset, flip, scaling and
// opacity operations, so code that handles a generic Drawable works with
// static sprites and animations alike.
type Animation struct {
	Sprite

	frames    []*ebiten.Image // One sub-image per frame, left to right
	durations []float64       // Display time of each frame in seconds

	frameIndex   int     // Frame currently shown
	frameCounter float64 // Time spent on the current frame so far
	backwards    bool    // Cycle frames in reverse order
	paused       bool    // Frozen on the current frame
	heldFrame    int     // Pause as soon as this frame is shown; -1 for none
}

// NewAnimation constructs an animation over a sprite-sheet image resource.
// frameDurations gives the display time of each frame in seconds, in order;
// it also determines the frame count.
//
// It fails with resource.ErrUnsupportedFormat when the resource is not an
// image, and with a plain error when no frame durations are given, any
// duration is not positive, or the sheet width is not divisible into the
// requested frame count.
func NewAnimation(res *resource.Resource, frameDurations ...float64) (*Animation, error) {
	if res.Kind() != resource.KindImage {
		return nil, fmt.Errorf("animation over %s resource %s: %w",
			res.Kind(), res.Path(), resource.ErrUnsupportedFormat)
	}
	if len(frameDurations) == 0 {
		return nil, fmt.Errorf("animation %s: at least one frame duration required", res.Path())
	}
	for i, d := range frameDurations {
		// A zero or negative duration would keep Update's drain loop
		// spinning forever.
		if d <= 0 {
			return nil, fmt.Errorf("animation %s: frame %d duration %v not positive", res.Path(), i, d)
		}
	}

	sheet := res.Image()
	bounds := sheet.Bounds()
	if bounds.Dx()%len(frameDurations) != 0 {
		return nil, fmt.Errorf("animation %s: sheet width %d not divisible into %d frames",
			res.Path(), bounds.Dx(), len(frameDurations))
	}
	frameWidth := bounds.Dx() / len(frameDurations)

	frames := make([]*ebiten.Image, len(frameDurations))
	for i := range frames {
		r := bounds
		r.Min.X = bounds.Min.X + i*frameWidth
		r.Max.X = r.Min.X + frameWidth
		frames[i] = sheet.SubImage(r).(*ebiten.Image)
	}

	anim := &Animation{
		Sprite:    *NewSpriteFromImage(frames[0]),
		frames:    frames,
		durations: append([]float64(nil), frameDurations...),
		heldFrame: -1,
	}
	return anim, nil
}

// FrameCount returns the number of frames in the animation.
func (a *Animation) FrameCount() int { return len(a.frames) }

// CurrentFrame returns the index of the frame currently shown.
func (a *Animation) CurrentFrame() int { return a.frameIndex }

// Pause freezes the animation on its current frame.
func (a *Animation) Pause() { a.paused = true }

// Resume lets a paused animation advance again.
func (a *Animation) Resume() { a.paused = false }

// IsPaused reports whether the animation is currently frozen.
func (a *Animation) IsPaused() bool { return a.paused }

// SetPlayingBackwards selects whether the animation cycles through its
// frames in reverse order. Animations play forward by default.
func (a *Animation) SetPlayingBackwards(backwards bool) { a.backwards = backwards }

// HoldAtFrame pauses the animation the next time the given frame is shown.
// Pass a negative index to cancel a pending hold.
func (a *Animation) HoldAtFrame(index int) {
	if index >= len(a.frames) {
		index = len(a.frames) - 1
	}
	a.heldFrame = index
}

// Update advances the frame timer by dt seconds, switching frames whose
// duration has elapsed. Frames wrap around in both playback directions.
func (a *Animation) Update(dt float64) {
	if a.paused {
		return
	}
	a.frameCounter += dt
	for a.frameCounter >= a.durations[a.frameIndex] {
		a.frameCounter -= a.durations[a.frameIndex]
		a.advance()
		if a.frameIndex == a.heldFrame {
			// Drop the leftover time so resuming plays from a clean frame
			// boundary instead of fast-forwarding.
			a.frameCounter = 0
			a.paused = true
			a.heldFrame = -1
			return
		}
	}
}

// advance steps one frame in the current playback direction.
func (a *Animation) advance() {
	if a.backwards {
		a.frameIndex--
		if a.frameIndex < 0 {
			a.frameIndex = len(a.frames) - 1
		}
		return
	}
	a.frameIndex++
	if a.frameIndex >= len(a.frames) {
		a.frameIndex = 0
	}
}

// Draw renders the current frame onto target with the owner at (x, y),
// applying the sprite transforms.
func (a *Animation) Draw(target *ebiten.Image, x, y float64) {
	a.drawImage(target, a.frames[a.frameIndex], x, y)
}
