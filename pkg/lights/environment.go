package lights

import (
	"errors"
	"math"

	"github.com/glimmer-render/glimmer/pkg/core"
)

// ErrEmptyEnvironmentMap reports an environment image with no pixels
var ErrEmptyEnvironmentMap = errors.New("environment map has no pixels")

// EnvironmentLight is an infinite light surrounding the scene, emitting
// radiance from an equirectangular image. Directions are importance
// sampled from a 2D piecewise-constant distribution proportional to
// per-pixel luminance weighted by sin(theta), the Jacobian of the
// equirectangular parameterization.
type EnvironmentLight struct {
	image        *core.Image
	distribution *core.Distribution2D

	worldCenter core.Vec3
	worldRadius float64
}

// NewEnvironmentLight creates an environment light from a decoded
// equirectangular radiance image
func NewEnvironmentLight(img *core.Image) (*EnvironmentLight, error) {
	if img == nil || img.Width == 0 || img.Height == 0 {
		return nil, ErrEmptyEnvironmentMap
	}

	// Luminance-weighted distribution over image pixels. The sin(theta)
	// factor accounts for rows near the poles covering less solid angle.
	weights := make([]float64, img.Width*img.Height)
	for y := 0; y < img.Height; y++ {
		sinTheta := math.Sin(math.Pi * (float64(y) + 0.5) / float64(img.Height))
		for x := 0; x < img.Width; x++ {
			weights[y*img.Width+x] = img.At(x, y).Luminance() * sinTheta
		}
	}

	return &EnvironmentLight{
		image:        img,
		distribution: core.NewDistribution2D(weights, img.Width, img.Height),
		worldRadius:  1,
	}, nil
}

// NewUniformEnvironmentLight creates an environment light with constant
// radiance in every direction
func NewUniformEnvironmentLight(radiance core.Vec3) *EnvironmentLight {
	img := core.NewImageFromPixels(1, 1, []core.Vec3{radiance})
	light, _ := NewEnvironmentLight(img)
	return light
}

// Type implements the Light interface
func (el *EnvironmentLight) Type() LightType {
	return LightTypeEnvironment
}

// Preprocess stores the scene bounds; the world radius scales the power
// estimate used for light selection
func (el *EnvironmentLight) Preprocess(worldCenter core.Vec3, worldRadius float64) error {
	el.worldCenter = worldCenter
	el.worldRadius = math.Max(worldRadius, 1e-6)
	return nil
}

// Sample draws a direction with density proportional to the environment
// map's luminance. The image-space density is converted to solid angle
// through the equirectangular Jacobian: pdf = mapPdf / (2π² sinθ).
func (el *EnvironmentLight) Sample(point core.Vec3, sample core.Vec2) (LightSample, bool) {
	uv, mapPDF := el.distribution.SampleContinuous(sample)
	if mapPDF == 0 {
		return LightSample{}, false
	}

	theta := uv.Y * math.Pi
	phi := uv.X * 2 * math.Pi
	sinTheta := math.Sin(theta)
	if sinTheta == 0 {
		return LightSample{}, false
	}

	direction := directionFromSpherical(theta, phi)
	return LightSample{
		Point:     point.Add(direction.Multiply(2 * el.worldRadius)),
		Normal:    direction.Negate(),
		Direction: direction,
		Distance:  math.Inf(1),
		Emission:  el.image.Lookup(uv),
		PDF:       mapPDF / (2 * math.Pi * math.Pi * sinTheta),
	}, true
}

// PDF returns the solid-angle density Sample would assign to a direction
func (el *EnvironmentLight) PDF(point, direction core.Vec3) float64 {
	theta, phi := sphericalFromDirection(direction.Normalize())
	sinTheta := math.Sin(theta)
	if sinTheta == 0 {
		return 0
	}

	uv := core.NewVec2(phi/(2*math.Pi), theta/math.Pi)
	return el.distribution.PDF(uv) / (2 * math.Pi * math.Pi * sinTheta)
}

// Emit returns the radiance along an escaped ray
func (el *EnvironmentLight) Emit(ray core.Ray) core.Vec3 {
	theta, phi := sphericalFromDirection(ray.Direction.Normalize())
	return el.image.Lookup(core.NewVec2(phi/(2*math.Pi), theta/math.Pi))
}

// Power estimates total power as the mean radiance times the area of
// the scene's bounding disk
func (el *EnvironmentLight) Power() core.Vec3 {
	var sum core.Vec3
	for _, p := range el.image.Pixels {
		sum = sum.Add(p)
	}
	mean := sum.Multiply(1.0 / float64(len(el.image.Pixels)))
	return mean.Multiply(math.Pi * el.worldRadius * el.worldRadius)
}

// directionFromSpherical maps equirectangular angles to a world
// direction with theta measured from +Y (up)
func directionFromSpherical(theta, phi float64) core.Vec3 {
	sinTheta := math.Sin(theta)
	return core.NewVec3(
		sinTheta*math.Cos(phi),
		math.Cos(theta),
		sinTheta*math.Sin(phi),
	)
}

// sphericalFromDirection is the inverse mapping; phi lands in [0, 2π)
func sphericalFromDirection(dir core.Vec3) (theta, phi float64) {
	theta = math.Acos(math.Max(-1, math.Min(1, dir.Y)))
	phi = math.Atan2(dir.Z, dir.X)
	if phi < 0 {
		phi += 2 * math.Pi
	}
	return theta, phi
}
