package graphics

import (
	"fmt"
	"image"
	"math"

	"github.com/decker502/gamekit/pkg/resource"
	"github.com/hajimehoshi/ebiten/v2"
)

// Sprite is a 2D image that can draw itself onto a target image.
//
// It maintains an offset relative to its owner's on-screen position and is
// drawn there accordingly: if the owner sits at (30, 30) and the sprite's
// offset is (2, 3), the image lands at (32, 33).
//
// Effects (flip, magnify, opacity) are recorded as draw-time transforms
// instead of mutating the shared pixel data, since the underlying image is
// owned by the resource cache and may be referenced by other sprites.
type Sprite struct {
	image *ebiten.Image // Cache-owned pixel data, treated as read-only

	offsetX float64 // X-offset of the top-left corner relative to the owner
	offsetY float64 // Y-offset of the top-left corner relative to the owner
	width   float64 // Target draw width (differs from source after Magnify/Resize)
	height  float64 // Target draw height
	flipH   bool
	flipV   bool
	alpha   int // Opacity 0..255; sprites start fully opaque
}

// NewSprite constructs a sprite over an image resource obtained from the
// resource cache. It fails with resource.ErrUnsupportedFormat when the
// resource is not an image.
func NewSprite(res *resource.Resource) (*Sprite, error) {
	if res.Kind() != resource.KindImage {
		return nil, fmt.Errorf("sprite over %s resource %s: %w",
			res.Kind(), res.Path(), resource.ErrUnsupportedFormat)
	}
	return NewSpriteFromImage(res.Image()), nil
}

// NewSpriteFromImage constructs a sprite over an already-decoded image,
// e.g. a sub-image of a larger cached sheet.
func NewSpriteFromImage(img *ebiten.Image) *Sprite {
	bounds := img.Bounds()
	return &Sprite{
		image:  img,
		width:  float64(bounds.Dx()),
		height: float64(bounds.Dy()),
		alpha:  255,
	}
}

// Width returns the sprite's current draw width in pixels.
func (s *Sprite) Width() float64 { return s.width }

// Height returns the sprite's current draw height in pixels.
func (s *Sprite) Height() float64 { return s.height }

// Offset moves the sprite away from its current offset relative to the owner
// by the given horizontal and vertical distance.
func (s *Sprite) Offset(dx, dy float64) {
	s.offsetX += dx
	s.offsetY += dy
}

// SetOffset re-positions the sprite at an exact offset relative to its owner.
func (s *Sprite) SetOffset(x, y float64) {
	s.offsetX = x
	s.offsetY = y
}

// Flip mirrors the image on the given axis (or both, combined with |).
// Flipping twice on the same axis restores the original orientation.
func (s *Sprite) Flip(axis Axis) {
	if axis&AxisHorizontal != 0 {
		s.flipH = !s.flipH
	}
	if axis&AxisVertical != 0 {
		s.flipV = !s.flipV
	}
}

// Magnify enlarges or shrinks the sprite using an equal scale for width and
// height. Passing 2 doubles the dimensions, 0.5 halves them.
func (s *Sprite) Magnify(zoom float64) {
	s.width *= zoom
	s.height *= zoom
}

// Resize stretches or shrinks the sprite to fit exact new dimensions.
func (s *Sprite) Resize(width, height float64) {
	s.width = width
	s.height = height
}

// Opacify adds amount to the sprite's opacity value. Positive values make
// the image more opaque, negative ones more transparent; the result is
// clamped to the 0..255 range.
func (s *Sprite) Opacify(amount int) {
	s.alpha += amount
	if s.alpha > 255 {
		s.alpha = 255
	}
	if s.alpha < 0 {
		s.alpha = 0
	}
}

// IsOpaque reports whether the sprite is fully opaque.
func (s *Sprite) IsOpaque() bool { return s.alpha >= 255 }

// IsTransparent reports whether the sprite is fully transparent.
func (s *Sprite) IsTransparent() bool { return s.alpha <= 0 }

// DrawRect returns the on-screen rectangle the sprite occupies when its
// owner is positioned at (ownerX, ownerY).
func (s *Sprite) DrawRect(ownerX, ownerY float64) image.Rectangle {
	x := int(math.Round(ownerX + s.offsetX))
	y := int(math.Round(ownerY + s.offsetY))
	return image.Rect(x, y, x+int(math.Round(s.width)), y+int(math.Round(s.height)))
}

// IsContained reports whether the sprite, drawn with its owner at
// (ownerX, ownerY), lies completely inside the container rectangle.
func (s *Sprite) IsContained(ownerX, ownerY float64, container image.Rectangle) bool {
	return s.DrawRect(ownerX, ownerY).In(container)
}

// IsOutside reports whether the sprite, drawn with its owner at
// (ownerX, ownerY), lies completely outside the container rectangle.
func (s *Sprite) IsOutside(ownerX, ownerY float64, container image.Rectangle) bool {
	return !s.DrawRect(ownerX, ownerY).Overlaps(container)
}

// Center adjusts the sprite's offset so that, with its owner at the origin,
// the sprite is centered horizontally and/or vertically within the container
// rectangle.
func (s *Sprite) Center(axis Axis, container image.Rectangle) {
	if axis&AxisHorizontal != 0 {
		s.offsetX = float64(container.Min.X) + (float64(container.Dx())-s.width)/2
	}
	if axis&AxisVertical != 0 {
		s.offsetY = float64(container.Min.Y) + (float64(container.Dy())-s.height)/2
	}
}

// Draw renders the sprite onto target with its owner at (x, y), applying the
// accumulated offset, scaling, flips and opacity.
func (s *Sprite) Draw(target *ebiten.Image, x, y float64) {
	s.drawImage(target, s.image, x, y)
}

// drawImage renders img with the sprite's transforms. Animation reuses it to
// draw individual frames through the same pipeline.
func (s *Sprite) drawImage(target *ebiten.Image, img *ebiten.Image, x, y float64) {
	if s.alpha <= 0 {
		return
	}

	bounds := img.Bounds()
	scaleX := s.width / float64(bounds.Dx())
	scaleY := s.height / float64(bounds.Dy())

	op := &ebiten.DrawImageOptions{}
	if s.flipH {
		op.GeoM.Scale(-1, 1)
		op.GeoM.Translate(float64(bounds.Dx()), 0)
	}
	if s.flipV {
		op.GeoM.Scale(1, -1)
		op.GeoM.Translate(0, float64(bounds.Dy()))
	}
	op.GeoM.Scale(scaleX, scaleY)
	op.GeoM.Translate(x+s.offsetX, y+s.offsetY)
	if s.alpha < 255 {
		op.ColorScale.ScaleAlpha(float32(s.alpha) / 255)
	}
	target.DrawImage(img, op)
}
