package lights

import (
	"github.com/glimmer-render/glimmer/pkg/core"
	"github.com/glimmer-render/glimmer/pkg/material"
)

// LightType identifies the kind of emitter
type LightType string

const (
	// LightTypeArea is a light bound to scene geometry
	LightTypeArea LightType = "area"
	// LightTypeEnvironment is an infinite light surrounding the scene
	LightTypeEnvironment LightType = "environment"
)

// Light is an emitter that can be sampled for next-event estimation.
// Lights are immutable after scene construction. Visibility of a sample
// is resolved by the caller with a scene shadow-ray query, never here.
type Light interface {
	Type() LightType

	// Sample picks an incident direction from the reference point toward
	// the light. Returns false when the light cannot illuminate the point
	// (edge-on area light, zero-luminance environment region).
	Sample(point core.Vec3, sample core.Vec2) (LightSample, bool)

	// PDF returns the solid-angle density Sample would have assigned to
	// the given direction from the reference point. Used for MIS weights.
	PDF(point core.Vec3, direction core.Vec3) float64

	// Emit evaluates the radiance carried by a ray that reached the
	// light without being sampled: rays escaping the scene for
	// environment lights, zero for area lights (their emission comes
	// from the hit surface's material).
	Emit(ray core.Ray) core.Vec3

	// Power estimates the total emitted power, used to weight light
	// selection.
	Power() core.Vec3
}

// LightSample contains information about a sampled point on a light
type LightSample struct {
	Point     core.Vec3 // Point on the light (meaningless for environment lights)
	Normal    core.Vec3 // Surface normal at the sample point
	Direction core.Vec3 // Unit direction from the shading point toward the light
	Distance  float64   // Distance to the light (+inf for environment lights)
	Emission  core.Vec3 // Radiance arriving along -Direction
	PDF       float64   // Solid-angle density of Direction
}

// SurfaceEmitter is implemented by area lights whose emission reaches
// the path tracer through their geometry. The material on that geometry
// identifies the light when a BSDF-sampled ray hits it, which the
// integrator needs to weight the hit against next-event estimation.
type SurfaceEmitter interface {
	EmitterMaterial() material.Material
}

// Preprocessor is implemented by lights that need the scene bounds
// before rendering (environment lights use them to bound shadow rays)
type Preprocessor interface {
	Preprocess(worldCenter core.Vec3, worldRadius float64) error
}
