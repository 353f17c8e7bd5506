package material

import (
	"math"

	"github.com/glimmer-render/glimmer/pkg/core"
)

// ColorSource provides a color value at a surface location. Implemented
// by solid colors, decoded image textures, and procedural patterns.
type ColorSource interface {
	Evaluate(uv core.Vec2, point core.Vec3) core.Vec3
}

// SolidColor is a constant color source
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a constant color source
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Evaluate returns the constant color
func (sc *SolidColor) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	return sc.Color
}

// ImageTexture samples a decoded pixel buffer by UV coordinate
type ImageTexture struct {
	Image *core.Image
}

// NewImageTexture creates a texture from a decoded image buffer
func NewImageTexture(img *core.Image) *ImageTexture {
	return &ImageTexture{Image: img}
}

// Evaluate bilinearly samples the image at the given UV
func (it *ImageTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	return it.Image.Lookup(uv)
}

// CheckerTexture alternates two colors in a 3D checkerboard pattern
type CheckerTexture struct {
	Scale float64
	Even  core.Vec3
	Odd   core.Vec3
}

// NewCheckerTexture creates a checker pattern with the given cell scale
func NewCheckerTexture(scale float64, even, odd core.Vec3) *CheckerTexture {
	return &CheckerTexture{Scale: scale, Even: even, Odd: odd}
}

// Evaluate returns the checker color based on world position
func (ct *CheckerTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	sum := int(math.Floor(point.X/ct.Scale)) +
		int(math.Floor(point.Y/ct.Scale)) +
		int(math.Floor(point.Z/ct.Scale))
	if sum%2 == 0 {
		return ct.Even
	}
	return ct.Odd
}
