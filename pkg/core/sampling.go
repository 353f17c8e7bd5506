package core

import (
	"math"
	"math/rand"
)

// Sampler provides random sampling for rendering algorithms.
// Can be swapped out for deterministic testing or different sampling patterns.
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// SampleConcentricDisk maps a uniform [0,1)² sample to the unit disk
// using concentric mapping, which avoids rejection sampling and preserves
// stratification better than polar mapping
func SampleConcentricDisk(sample Vec2) Vec2 {
	// Map sample to [-1,1]² and handle degeneracy at the origin
	uOffset := NewVec2(2*sample.X-1, 2*sample.Y-1)
	if uOffset.X == 0 && uOffset.Y == 0 {
		return Vec2{}
	}

	var theta, r float64
	if math.Abs(uOffset.X) > math.Abs(uOffset.Y) {
		r = uOffset.X
		theta = math.Pi / 4 * (uOffset.Y / uOffset.X)
	} else {
		r = uOffset.Y
		theta = math.Pi/2 - math.Pi/4*(uOffset.X/uOffset.Y)
	}

	return NewVec2(r*math.Cos(theta), r*math.Sin(theta))
}

// SampleCosineHemisphere generates a cosine-weighted direction in the
// frame-local hemisphere around +Z by projecting a concentric disk sample
// up onto the hemisphere
func SampleCosineHemisphere(sample Vec2) Vec3 {
	d := SampleConcentricDisk(sample)
	z := math.Sqrt(math.Max(0, 1-d.X*d.X-d.Y*d.Y))
	return NewVec3(d.X, d.Y, z)
}

// CosineHemispherePDF returns the solid-angle density of cosine-weighted
// hemisphere sampling for a direction with the given cosine
func CosineHemispherePDF(cosTheta float64) float64 {
	if cosTheta <= 0 {
		return 0
	}
	return cosTheta / math.Pi
}

// SampleCosineHemisphereAround generates a cosine-weighted random direction
// in the world-space hemisphere around the given normal
func SampleCosineHemisphereAround(normal Vec3, sample Vec2) Vec3 {
	return NewFrame(normal).ToWorld(SampleCosineHemisphere(sample))
}

// SampleUniformSphere generates a uniform random direction on the unit sphere
func SampleUniformSphere(sample Vec2) Vec3 {
	z := 1.0 - 2.0*sample.X // z ∈ [-1, 1]
	r := math.Sqrt(math.Max(0, 1.0-z*z))
	phi := 2.0 * math.Pi * sample.Y
	return NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
}

// UniformSpherePDF returns the solid-angle density of uniform sphere sampling
func UniformSpherePDF() float64 {
	return 1.0 / (4.0 * math.Pi)
}

// SampleUniformCone samples a direction uniformly within a cone around
// the given axis, where cosThetaMax is the cosine of the cone half-angle
func SampleUniformCone(axis Vec3, cosThetaMax float64, sample Vec2) Vec3 {
	cosTheta := 1.0 - sample.X*(1.0-cosThetaMax)
	sinTheta := math.Sqrt(math.Max(0, 1.0-cosTheta*cosTheta))
	phi := 2.0 * math.Pi * sample.Y
	return NewFrame(axis).ToWorld(SphericalDirection(sinTheta, cosTheta, phi))
}

// UniformConePDF returns the solid-angle density of uniform cone sampling
func UniformConePDF(cosThetaMax float64) float64 {
	return 1.0 / (2.0 * math.Pi * (1.0 - cosThetaMax))
}

// PowerHeuristic computes the MIS weight for a sample drawn from strategy f
// when strategy g could also have produced it, using exponent 2.
// nf and ng are the number of samples taken with each strategy.
func PowerHeuristic(nf int, fPdf float64, ng int, gPdf float64) float64 {
	f := float64(nf) * fPdf
	g := float64(ng) * gPdf
	if f == 0 && g == 0 {
		return 0
	}
	return (f * f) / (f*f + g*g)
}
