package lights

import (
	"math"

	"github.com/glimmer-render/glimmer/pkg/core"
	"github.com/glimmer-render/glimmer/pkg/geometry"
	"github.com/glimmer-render/glimmer/pkg/material"
)

// QuadLight represents a rectangular area light. It embeds its quad so
// the same object serves as scene geometry for camera rays.
type QuadLight struct {
	*geometry.Quad
	Emission core.Vec3
	area     float64
}

// NewQuadLight creates a new quad light with an emissive material
func NewQuadLight(corner, u, v core.Vec3, emission core.Vec3) *QuadLight {
	quad := geometry.NewQuad(corner, u, v, material.NewEmissive(emission))
	return &QuadLight{
		Quad:     quad,
		Emission: emission,
		area:     quad.Area(),
	}
}

// Type implements the Light interface
func (ql *QuadLight) Type() LightType {
	return LightTypeArea
}

// Sample picks a point uniformly on the quad and converts the area
// density to solid angle via distance²/|cosθ| at the light surface
func (ql *QuadLight) Sample(point core.Vec3, sample core.Vec2) (LightSample, bool) {
	samplePoint := ql.SamplePoint(sample)

	toLight := samplePoint.Subtract(point)
	distance := toLight.Length()
	if distance == 0 {
		return LightSample{}, false
	}
	direction := toLight.Multiply(1.0 / distance)

	// cosθ at the light surface; edge-on means no subtended solid angle
	cosTheta := math.Abs(ql.Normal.Dot(direction))
	if cosTheta < 1e-9 {
		return LightSample{}, false
	}

	// Front face emits; the back of the quad is dark
	var emission core.Vec3
	if direction.Dot(ql.Normal) < 0 {
		emission = ql.Emission
	}

	return LightSample{
		Point:     samplePoint,
		Normal:    ql.Normal,
		Direction: direction,
		Distance:  distance,
		Emission:  emission,
		PDF:       distance * distance / (cosTheta * ql.area),
	}, true
}

// PDF returns the solid-angle density of sampling the given direction
func (ql *QuadLight) PDF(point, direction core.Vec3) float64 {
	ray := core.NewRay(point, direction)
	var si material.SurfaceInteraction
	if !ql.Quad.Hit(ray, core.RayEpsilon, math.Inf(1), &si) {
		return 0
	}

	cosTheta := math.Abs(ql.Normal.Dot(direction))
	if cosTheta < 1e-9 {
		return 0
	}

	distance := si.T * direction.Length()
	return distance * distance / (cosTheta * ql.area)
}

// EmitterMaterial implements the SurfaceEmitter interface
func (ql *QuadLight) EmitterMaterial() material.Material {
	return ql.Quad.Material
}

// Emit implements the Light interface; area lights contribute through
// their hit surface, not through escaped rays
func (ql *QuadLight) Emit(ray core.Ray) core.Vec3 {
	return core.Vec3{}
}

// Power returns the total power of the one-sided diffuse emitter: L·A·π
func (ql *QuadLight) Power() core.Vec3 {
	return ql.Emission.Multiply(ql.area * math.Pi)
}
