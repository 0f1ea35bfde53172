// Package graphics provides thin wrapper types around cache-owned image
// resources. A wrapper holds a non-owning reference to decoded pixel data and
// exposes a uniform drawing surface regardless of the source file format;
// it never reads storage itself.
package graphics

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Axis selects one or both 2D axes for operations like flipping and
// centering. Values combine with the | operator.
type Axis int

const (
	// AxisHorizontal selects the horizontal plane.
	AxisHorizontal Axis = 1 << iota
	// AxisVertical selects the vertical plane.
	AxisVertical
)

// Drawable is the capability surface shared by all visual wrappers.
// The x and y arguments are the on-screen position of the wrapper's owner
// (typically an entity's transform); the wrapper applies its own offset.
type Drawable interface {
	Draw(target *ebiten.Image, x, y float64)
}
