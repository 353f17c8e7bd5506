package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/glimmer-render/glimmer/pkg/core"
)

// filmPixel accumulates weighted radiance plus the luminance moments
// used by adaptive sampling.
type filmPixel struct {
	colorSum    core.Vec3
	weightSum   float64
	lumSum      float64
	lumSqSum    float64
	sampleCount int
}

// Film accumulates radiance samples for the whole image. Samples are
// weighted so partial results and merged tiles reconstruct the same
// image regardless of accumulation order. Film is not synchronized;
// concurrent writers must target disjoint pixel regions.
type Film struct {
	width  int
	height int
	pixels []filmPixel
}

// NewFilm creates an empty film of the given resolution.
func NewFilm(width, height int) *Film {
	return &Film{
		width:  width,
		height: height,
		pixels: make([]filmPixel, width*height),
	}
}

// Width returns the film width in pixels.
func (f *Film) Width() int { return f.width }

// Height returns the film height in pixels.
func (f *Film) Height() int { return f.height }

// AddSample accumulates one radiance sample at pixel (x, y). The sample
// is sanitized first so a single NaN from a degenerate path cannot
// poison the pixel.
func (f *Film) AddSample(x, y int, radiance core.Vec3, weight float64) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height || weight <= 0 {
		return
	}
	radiance = radiance.SanitizeColor()
	px := &f.pixels[y*f.width+x]
	px.colorSum = px.colorSum.Add(radiance.Multiply(weight))
	px.weightSum += weight
	lum := radiance.Luminance()
	px.lumSum += lum * weight
	px.lumSqSum += lum * lum * weight
	px.sampleCount++
}

// SampleCount returns the number of samples accumulated at (x, y).
func (f *Film) SampleCount(x, y int) int {
	return f.pixels[y*f.width+x].sampleCount
}

// RelativeError estimates the perceptual relative error at (x, y) from
// the accumulated luminance moments. Pixels with no samples report an
// infinite error so they are always sampled.
func (f *Film) RelativeError(x, y int) float64 {
	px := &f.pixels[y*f.width+x]
	if px.weightSum <= 0 {
		return 1e30
	}
	mean := px.lumSum / px.weightSum
	meanSq := px.lumSqSum / px.weightSum
	variance := meanSq - mean*mean
	if variance < 0 {
		variance = 0
	}
	if mean <= 1e-8 {
		// Dark pixels converge on absolute variance instead
		if variance < 1e-6 {
			return 0
		}
		return 1e30
	}
	stdErr := variance / float64(px.sampleCount)
	if stdErr < 0 {
		stdErr = 0
	}
	return math.Sqrt(stdErr) / mean
}

// Merge folds another film into this one. Both films must have the same
// resolution.
func (f *Film) Merge(other *Film) {
	if other.width != f.width || other.height != f.height {
		return
	}
	for i := range f.pixels {
		src := &other.pixels[i]
		dst := &f.pixels[i]
		dst.colorSum = dst.colorSum.Add(src.colorSum)
		dst.weightSum += src.weightSum
		dst.lumSum += src.lumSum
		dst.lumSqSum += src.lumSqSum
		dst.sampleCount += src.sampleCount
	}
}

// Finalize resolves the accumulated samples into a linear radiance
// image. Pixels that never received a sample resolve to black.
func (f *Film) Finalize() *core.Image {
	img := core.NewImage(f.width, f.height)
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			px := &f.pixels[y*f.width+x]
			if px.weightSum > 0 {
				img.Set(x, y, px.colorSum.Multiply(1/px.weightSum))
			}
		}
	}
	return img
}

// ToRGBA resolves the film into an 8-bit sRGB image using gamma 2.2.
func (f *Film) ToRGBA() *image.RGBA {
	linear := f.Finalize()
	out := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			c := linear.At(x, y).GammaCorrect(2.2).Clamp(0, 1)
			out.SetRGBA(x, y, color.RGBA{
				R: uint8(c.X*255 + 0.5),
				G: uint8(c.Y*255 + 0.5),
				B: uint8(c.Z*255 + 0.5),
				A: 255,
			})
		}
	}
	return out
}
