package lights

import (
	"math"

	"github.com/glimmer-render/glimmer/pkg/core"
	"github.com/glimmer-render/glimmer/pkg/geometry"
	"github.com/glimmer-render/glimmer/pkg/material"
)

// SphereLight represents a spherical area light
type SphereLight struct {
	*geometry.Sphere
	Emission core.Vec3
}

// NewSphereLight creates a new spherical light with an emissive material
func NewSphereLight(center core.Vec3, radius float64, emission core.Vec3) *SphereLight {
	return &SphereLight{
		Sphere:   geometry.NewSphere(center, radius, material.NewEmissive(emission)),
		Emission: emission,
	}
}

// Type implements the Light interface
func (sl *SphereLight) Type() LightType {
	return LightTypeArea
}

// Sample picks an incident direction toward the sphere. From outside the
// sphere it samples the subtended cone uniformly in solid angle, which
// wastes no samples on the far hemisphere; from inside it falls back to
// uniform surface sampling.
func (sl *SphereLight) Sample(point core.Vec3, sample core.Vec2) (LightSample, bool) {
	toCenter := sl.Center.Subtract(point)
	distanceToCenter := toCenter.Length()

	if distanceToCenter <= sl.Radius {
		return sl.sampleUniform(point, sample)
	}

	sinThetaMax := sl.Radius / distanceToCenter
	cosThetaMax := math.Sqrt(math.Max(0, 1-sinThetaMax*sinThetaMax))

	direction := core.SampleUniformCone(toCenter.Normalize(), cosThetaMax, sample)

	// Find the actual point on the sphere along the sampled direction
	ray := core.NewRay(point, direction)
	var si material.SurfaceInteraction
	if !sl.Sphere.Hit(ray, core.RayEpsilon, math.Inf(1), &si) {
		// Grazing numerical miss at the cone edge
		return LightSample{}, false
	}

	return LightSample{
		Point:     si.Point,
		Normal:    si.Normal,
		Direction: direction,
		Distance:  si.T,
		Emission:  sl.Emission,
		PDF:       core.UniformConePDF(cosThetaMax),
	}, true
}

// sampleUniform samples uniformly over the sphere surface and converts
// the area density to solid angle
func (sl *SphereLight) sampleUniform(point core.Vec3, sample core.Vec2) (LightSample, bool) {
	normal := core.SampleUniformSphere(sample)
	samplePoint := sl.Center.Add(normal.Multiply(sl.Radius))

	toLight := samplePoint.Subtract(point)
	distance := toLight.Length()
	if distance == 0 {
		return LightSample{}, false
	}
	direction := toLight.Multiply(1.0 / distance)

	cosTheta := math.Abs(normal.Dot(direction))
	if cosTheta < 1e-9 {
		return LightSample{}, false
	}

	areaPDF := 1.0 / sl.Area()
	return LightSample{
		Point:     samplePoint,
		Normal:    normal,
		Direction: direction,
		Distance:  distance,
		Emission:  sl.Emission,
		PDF:       areaPDF * distance * distance / cosTheta,
	}, true
}

// PDF returns the solid-angle density of sampling the given direction
func (sl *SphereLight) PDF(point, direction core.Vec3) float64 {
	ray := core.NewRay(point, direction)
	if !sl.Sphere.HitP(ray, core.RayEpsilon, math.Inf(1)) {
		return 0
	}

	toCenter := sl.Center.Subtract(point)
	distanceToCenter := toCenter.Length()
	if distanceToCenter <= sl.Radius {
		// Uniform area sampling density converted at the nearer hit
		var si material.SurfaceInteraction
		if !sl.Sphere.Hit(ray, core.RayEpsilon, math.Inf(1), &si) {
			return 0
		}
		cosTheta := math.Abs(si.Normal.Dot(direction))
		if cosTheta < 1e-9 {
			return 0
		}
		return si.T * si.T / (cosTheta * sl.Area())
	}

	sinThetaMax := sl.Radius / distanceToCenter
	cosThetaMax := math.Sqrt(math.Max(0, 1-sinThetaMax*sinThetaMax))
	return core.UniformConePDF(cosThetaMax)
}

// EmitterMaterial implements the SurfaceEmitter interface
func (sl *SphereLight) EmitterMaterial() material.Material {
	return sl.Sphere.Material
}

// Emit implements the Light interface
func (sl *SphereLight) Emit(ray core.Ray) core.Vec3 {
	return core.Vec3{}
}

// Power returns the total power of the diffuse sphere emitter: L·A·π
func (sl *SphereLight) Power() core.Vec3 {
	return sl.Emission.Multiply(sl.Area() * math.Pi)
}
