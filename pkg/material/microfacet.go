package material

import (
	"math"

	"github.com/glimmer-render/glimmer/pkg/core"
)

// TrowbridgeReitz is the GGX microfacet normal distribution with
// possibly anisotropic roughness. All directions are frame-local.
type TrowbridgeReitz struct {
	AlphaX, AlphaY float64
}

// NewTrowbridgeReitz creates a distribution with the given alphas,
// clamped away from zero so D stays finite
func NewTrowbridgeReitz(alphaX, alphaY float64) TrowbridgeReitz {
	return TrowbridgeReitz{
		AlphaX: math.Max(1e-4, alphaX),
		AlphaY: math.Max(1e-4, alphaY),
	}
}

// RoughnessToAlpha maps a perceptual roughness value in [0,1] to an
// alpha parameter for the distribution
func RoughnessToAlpha(roughness float64) float64 {
	rough := math.Max(roughness, 1e-3)
	x := math.Log(rough)
	return 1.62142 + 0.819955*x + 0.1734*x*x + 0.0171201*x*x*x + 0.000640711*x*x*x*x
}

// D returns the differential area of microfacets oriented with the
// half vector wh
func (d TrowbridgeReitz) D(wh core.Vec3) float64 {
	tan2Theta := core.Tan2Theta(wh)
	if math.IsInf(tan2Theta, 0) {
		return 0
	}

	cos4Theta := core.Cos2Theta(wh) * core.Cos2Theta(wh)
	e := (core.Cos2Phi(wh)/(d.AlphaX*d.AlphaX) + core.Sin2Phi(wh)/(d.AlphaY*d.AlphaY)) * tan2Theta
	return 1.0 / (math.Pi * d.AlphaX * d.AlphaY * cos4Theta * (1 + e) * (1 + e))
}

// Lambda measures invisible masked microfacet area per visible
// microfacet area for direction w (Smith model)
func (d TrowbridgeReitz) Lambda(w core.Vec3) float64 {
	absTanTheta := math.Abs(core.TanTheta(w))
	if math.IsInf(absTanTheta, 0) {
		return 0
	}

	alpha := math.Sqrt(core.Cos2Phi(w)*d.AlphaX*d.AlphaX + core.Sin2Phi(w)*d.AlphaY*d.AlphaY)
	alpha2Tan2Theta := (alpha * absTanTheta) * (alpha * absTanTheta)
	return (-1 + math.Sqrt(1+alpha2Tan2Theta)) / 2
}

// G1 is the Smith masking function: the fraction of microfacets visible
// from direction w
func (d TrowbridgeReitz) G1(w core.Vec3) float64 {
	return 1.0 / (1.0 + d.Lambda(w))
}

// G is the Smith shadowing-masking term for the direction pair (wo, wi),
// consistent with D by construction
func (d TrowbridgeReitz) G(wo, wi core.Vec3) float64 {
	return 1.0 / (1.0 + d.Lambda(wo) + d.Lambda(wi))
}

// SampleWh samples a half vector from the distribution of normals
// visible from wo (Heitz's VNDF sampling), which leaves far fewer
// wasted samples at grazing angles than sampling D directly
func (d TrowbridgeReitz) SampleWh(wo core.Vec3, sample core.Vec2) core.Vec3 {
	flip := wo.Z < 0
	if flip {
		wo = wo.Negate()
	}

	// Stretch wo to the hemisphere configuration
	wh := core.NewVec3(d.AlphaX*wo.X, d.AlphaY*wo.Y, wo.Z).Normalize()

	// Orthonormal basis around the stretched normal
	var t1 core.Vec3
	if wh.Z < 0.999 {
		t1 = core.NewVec3(0, 0, 1).Cross(wh).Normalize()
	} else {
		t1 = core.NewVec3(1, 0, 0)
	}
	t2 := wh.Cross(t1)

	// Sample a point on a warped half disk
	r := math.Sqrt(sample.X)
	phi := 2 * math.Pi * sample.Y
	p1 := r * math.Cos(phi)
	p2 := r * math.Sin(phi)
	s := 0.5 * (1 + wh.Z)
	p2 = (1-s)*math.Sqrt(math.Max(0, 1-p1*p1)) + s*p2

	// Project back onto the hemisphere
	pz := math.Sqrt(math.Max(0, 1-p1*p1-p2*p2))
	nh := t1.Multiply(p1).Add(t2.Multiply(p2)).Add(wh.Multiply(pz))

	// Unstretch
	ne := core.NewVec3(d.AlphaX*nh.X, d.AlphaY*nh.Y, math.Max(1e-6, nh.Z)).Normalize()
	if flip {
		ne = ne.Negate()
	}
	return ne
}

// PDF returns the density of SampleWh with respect to solid angle of the
// half vector
func (d TrowbridgeReitz) PDF(wo, wh core.Vec3) float64 {
	cosThetaO := core.AbsCosTheta(wo)
	if cosThetaO == 0 {
		return 0
	}
	return d.D(wh) * d.G1(wo) * wo.AbsDot(wh) / cosThetaO
}
