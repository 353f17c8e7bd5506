package material

import (
	"github.com/glimmer-render/glimmer/pkg/core"
)

// Emissive represents a material that emits light from its front face
// and scatters nothing
type Emissive struct {
	Emission core.Vec3
}

// NewEmissive creates an emissive material with the given radiance
func NewEmissive(emission core.Vec3) *Emissive {
	return &Emissive{Emission: emission}
}

// BSDF returns an absorbing BSDF: emitters do not scatter
func (e *Emissive) BSDF(si *SurfaceInteraction) BSDF {
	return NewAbsorbingBSDF(core.NewFrame(si.ShadingNormal))
}

// Emit implements the Emitter interface. Radiance leaves the front face
// only; a ray arriving from behind sees black.
func (e *Emissive) Emit(rayIn core.Ray, si *SurfaceInteraction) core.Vec3 {
	if si != nil && !si.FrontFace {
		return core.Vec3{}
	}
	return e.Emission
}
