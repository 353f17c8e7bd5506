package material

import (
	"github.com/glimmer-render/glimmer/pkg/core"
)

// Material produces a BSDF for a surface interaction. Materials are
// immutable after scene construction and shared across workers; the BSDF
// they return is a short-lived value local to one interaction.
type Material interface {
	BSDF(si *SurfaceInteraction) BSDF
}

// Emitter is implemented by materials that emit light
type Emitter interface {
	// Emit returns the radiance emitted toward the origin of the given ray
	Emit(rayIn core.Ray, si *SurfaceInteraction) core.Vec3
}

// SurfaceInteraction contains information about a ray-surface intersection.
// It lives on the call stack of an intersection query and is never persisted.
type SurfaceInteraction struct {
	Point         core.Vec3 // Point of intersection
	Normal        core.Vec3 // Geometric normal (always unit length)
	ShadingNormal core.Vec3 // Interpolated shading normal (falls back to Normal)
	UV            core.Vec2 // Surface parameterization at the hit point
	T             float64   // Parameter t along the ray
	FrontFace     bool      // Whether ray hit the front face
	Material      Material  // Material of the hit object
}

// SetFaceNormal sets the normal vectors and determines front/back face
// from the outward geometric normal
func (si *SurfaceInteraction) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	si.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if si.FrontFace {
		si.Normal = outwardNormal
	} else {
		si.Normal = outwardNormal.Negate()
	}
	si.ShadingNormal = si.Normal
}

// SetShadingNormal overrides the shading normal, flipping it to the same
// side as the geometric normal
func (si *SurfaceInteraction) SetShadingNormal(n core.Vec3) {
	if n.Dot(si.Normal) < 0 {
		n = n.Negate()
	}
	si.ShadingNormal = n
}

// Emitted returns the radiance this interaction emits toward the ray
// origin, or black for non-emissive materials
func (si *SurfaceInteraction) Emitted(rayIn core.Ray) core.Vec3 {
	if emitter, ok := si.Material.(Emitter); ok {
		return emitter.Emit(rayIn, si)
	}
	return core.Vec3{}
}
