package core

import "math"

// Image represents a decoded float RGB pixel buffer in row-major order.
// The engine never reads or writes image files itself; buffers arrive
// from an external decoder and finished renders leave as buffers too.
type Image struct {
	Width  int
	Height int
	Pixels []Vec3
}

// NewImage creates a black image with the given dimensions
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pixels: make([]Vec3, width*height),
	}
}

// NewImageFromPixels wraps an existing row-major pixel buffer.
// The buffer is referenced, not copied.
func NewImageFromPixels(width, height int, pixels []Vec3) *Image {
	return &Image{Width: width, Height: height, Pixels: pixels}
}

// At returns the pixel at (x, y), clamping coordinates to the image bounds
func (img *Image) At(x, y int) Vec3 {
	if x < 0 {
		x = 0
	}
	if x >= img.Width {
		x = img.Width - 1
	}
	if y < 0 {
		y = 0
	}
	if y >= img.Height {
		y = img.Height - 1
	}
	return img.Pixels[y*img.Width+x]
}

// Set stores the pixel at (x, y). Out-of-bounds writes are ignored.
func (img *Image) Set(x, y int, c Vec3) {
	if x < 0 || x >= img.Width || y < 0 || y >= img.Height {
		return
	}
	img.Pixels[y*img.Width+x] = c
}

// Lookup samples the image at continuous UV coordinates with bilinear
// filtering. U wraps around (for equirectangular environment maps) and
// V clamps to the poles.
func (img *Image) Lookup(uv Vec2) Vec3 {
	x := uv.X*float64(img.Width) - 0.5
	y := uv.Y*float64(img.Height) - 0.5

	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	dx := x - float64(x0)
	dy := y - float64(y0)

	p00 := img.atWrapped(x0, y0)
	p10 := img.atWrapped(x0+1, y0)
	p01 := img.atWrapped(x0, y0+1)
	p11 := img.atWrapped(x0+1, y0+1)

	top := p00.Multiply(1 - dx).Add(p10.Multiply(dx))
	bottom := p01.Multiply(1 - dx).Add(p11.Multiply(dx))
	return top.Multiply(1 - dy).Add(bottom.Multiply(dy))
}

// atWrapped wraps x and clamps y before the pixel fetch
func (img *Image) atWrapped(x, y int) Vec3 {
	x = ((x % img.Width) + img.Width) % img.Width
	if y < 0 {
		y = 0
	}
	if y >= img.Height {
		y = img.Height - 1
	}
	return img.Pixels[y*img.Width+x]
}
