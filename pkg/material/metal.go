package material

import (
	"github.com/glimmer-render/glimmer/pkg/core"
)

// Metal represents a conductor with microfacet roughness. With zero
// roughness it degenerates to a perfect mirror tinted by the Fresnel
// reflectance at normal incidence.
type Metal struct {
	Tint     core.Vec3 // Multiplier on the Fresnel reflectance
	Eta      core.Vec3 // Real part of the complex refractive index
	K        core.Vec3 // Absorption coefficient
	AlphaX   float64   // Roughness along the tangent
	AlphaY   float64   // Roughness along the bitangent
	isMirror bool
}

// NewMetal creates an isotropic metal from a perceptual roughness value
func NewMetal(tint core.Vec3, eta, k core.Vec3, roughness float64) *Metal {
	if roughness <= 0 {
		return &Metal{Tint: tint, Eta: eta, K: k, isMirror: true}
	}
	alpha := RoughnessToAlpha(roughness)
	return &Metal{Tint: tint, Eta: eta, K: k, AlphaX: alpha, AlphaY: alpha}
}

// NewAnisotropicMetal creates a metal with independent tangent and
// bitangent alphas
func NewAnisotropicMetal(tint core.Vec3, eta, k core.Vec3, alphaX, alphaY float64) *Metal {
	if alphaX <= 0 && alphaY <= 0 {
		return &Metal{Tint: tint, Eta: eta, K: k, isMirror: true}
	}
	return &Metal{Tint: tint, Eta: eta, K: k, AlphaX: alphaX, AlphaY: alphaY}
}

// GoldEta and GoldK are measured spectral constants for gold, averaged
// to RGB
var (
	GoldEta = core.NewVec3(0.143, 0.375, 1.442)
	GoldK   = core.NewVec3(3.983, 2.386, 1.603)
)

// CopperEta and CopperK are measured spectral constants for copper
var (
	CopperEta = core.NewVec3(0.200, 0.924, 1.102)
	CopperK   = core.NewVec3(3.912, 2.447, 2.137)
)

// BSDF returns a microfacet conductor BSDF, or a mirror for zero
// roughness
func (m *Metal) BSDF(si *SurfaceInteraction) BSDF {
	frame := core.NewFrame(si.ShadingNormal)
	if m.isMirror {
		tint := m.Tint.MultiplyVec(FresnelConductor(1, core.NewVec3(1, 1, 1), m.Eta, m.K))
		return NewMirrorBSDF(frame, tint)
	}
	dist := NewTrowbridgeReitz(m.AlphaX, m.AlphaY)
	return NewMicrofacetBSDF(frame, m.Tint, dist, m.Eta, m.K)
}
