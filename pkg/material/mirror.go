package material

import (
	"github.com/glimmer-render/glimmer/pkg/core"
)

// Mirror represents an idealized perfect specular reflector
type Mirror struct {
	Tint core.Vec3
}

// NewMirror creates a mirror with the given reflectance tint
func NewMirror(tint core.Vec3) *Mirror {
	return &Mirror{Tint: tint}
}

// BSDF returns a perfect specular BSDF
func (m *Mirror) BSDF(si *SurfaceInteraction) BSDF {
	return NewMirrorBSDF(core.NewFrame(si.ShadingNormal), m.Tint)
}
