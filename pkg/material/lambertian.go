package material

import (
	"github.com/glimmer-render/glimmer/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo ColorSource
}

// NewLambertian creates a lambertian material with a solid color
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: NewSolidColor(albedo)}
}

// NewTexturedLambertian creates a lambertian material with a texture
func NewTexturedLambertian(albedo ColorSource) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// BSDF returns a diffuse BSDF in the interaction's shading frame
func (l *Lambertian) BSDF(si *SurfaceInteraction) BSDF {
	frame := core.NewFrame(si.ShadingNormal)
	return NewLambertianBSDF(frame, l.Albedo.Evaluate(si.UV, si.Point))
}
