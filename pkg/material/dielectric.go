package material

import (
	"github.com/glimmer-render/glimmer/pkg/core"
)

// Dielectric represents clear glass-like materials with specular
// reflection and refraction
type Dielectric struct {
	Tint            core.Vec3
	RefractiveIndex float64
}

// NewDielectric creates a clear dielectric with the given index of
// refraction (1.5 for common glass, 1.33 for water)
func NewDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{Tint: core.NewVec3(1, 1, 1), RefractiveIndex: refractiveIndex}
}

// NewTintedDielectric creates a dielectric with a colored tint
func NewTintedDielectric(tint core.Vec3, refractiveIndex float64) *Dielectric {
	return &Dielectric{Tint: tint, RefractiveIndex: refractiveIndex}
}

// BSDF returns a specular glass BSDF
func (d *Dielectric) BSDF(si *SurfaceInteraction) BSDF {
	return NewDielectricBSDF(core.NewFrame(si.ShadingNormal), d.Tint, d.RefractiveIndex)
}
