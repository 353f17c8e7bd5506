package material

import (
	"math"

	"github.com/glimmer-render/glimmer/pkg/core"
)

// BSDFKind enumerates the closed set of scattering models. The BSDF is a
// tagged variant rather than an interface so the per-sample hot path
// dispatches with an exhaustive switch instead of virtual calls.
type BSDFKind int

const (
	// BSDFNone absorbs everything (pure emitters)
	BSDFNone BSDFKind = iota
	// BSDFLambertian is a perfectly diffuse reflector
	BSDFLambertian
	// BSDFMirror is a perfect specular reflector
	BSDFMirror
	// BSDFMicrofacet is a Torrance-Sparrow conductor with a
	// Trowbridge-Reitz distribution
	BSDFMicrofacet
	// BSDFDielectric is a specular glass with reflection and transmission
	BSDFDielectric
)

// BSDF is the scattering distribution at one surface interaction.
// It is constructed by a Material per hit, evaluated in a local frame
// whose Z axis is the shading normal, and discarded after use.
type BSDF struct {
	Kind  BSDFKind
	frame core.Frame

	albedo core.Vec3       // diffuse reflectance or specular tint
	dist   TrowbridgeReitz // microfacet distribution
	eta    core.Vec3       // conductor index of refraction
	k      core.Vec3       // conductor absorption coefficient
	ior    float64         // dielectric index of refraction
}

// BSDFSample is the result of importance-sampling a BSDF
type BSDFSample struct {
	Wi       core.Vec3 // Sampled incident direction, world space, unit length
	F        core.Vec3 // BSDF value for (wo, wi)
	PDF      float64   // Solid-angle density of Wi under this strategy
	Specular bool      // True when Wi came from a delta distribution
}

// NewLambertianBSDF creates a diffuse BSDF in the given shading frame
func NewLambertianBSDF(frame core.Frame, albedo core.Vec3) BSDF {
	return BSDF{Kind: BSDFLambertian, frame: frame, albedo: albedo}
}

// NewMirrorBSDF creates a perfect specular BSDF
func NewMirrorBSDF(frame core.Frame, tint core.Vec3) BSDF {
	return BSDF{Kind: BSDFMirror, frame: frame, albedo: tint}
}

// NewMicrofacetBSDF creates a rough conductor BSDF
func NewMicrofacetBSDF(frame core.Frame, tint core.Vec3, dist TrowbridgeReitz, eta, k core.Vec3) BSDF {
	return BSDF{Kind: BSDFMicrofacet, frame: frame, albedo: tint, dist: dist, eta: eta, k: k}
}

// NewDielectricBSDF creates a specular glass BSDF
func NewDielectricBSDF(frame core.Frame, tint core.Vec3, ior float64) BSDF {
	return BSDF{Kind: BSDFDielectric, frame: frame, albedo: tint, ior: ior}
}

// NewAbsorbingBSDF creates a BSDF that scatters nothing
func NewAbsorbingBSDF(frame core.Frame) BSDF {
	return BSDF{Kind: BSDFNone, frame: frame}
}

// IsSpecular reports whether the BSDF is a delta distribution, in which
// case F and PDF are zero everywhere and only Sample is meaningful
func (b *BSDF) IsSpecular() bool {
	return b.Kind == BSDFMirror || b.Kind == BSDFDielectric
}

// F evaluates the BSDF for an outgoing/incident world-space direction
// pair. Specular variants return zero: their support has measure zero,
// so they must be sampled instead of evaluated.
func (b *BSDF) F(woWorld, wiWorld core.Vec3) core.Vec3 {
	wo := b.frame.ToLocal(woWorld)
	wi := b.frame.ToLocal(wiWorld)

	switch b.Kind {
	case BSDFLambertian:
		if !core.SameHemisphere(wo, wi) {
			return core.Vec3{}
		}
		return b.albedo.Multiply(1.0 / math.Pi)

	case BSDFMicrofacet:
		return b.microfacetF(wo, wi)

	default:
		// Absorbing and specular variants
		return core.Vec3{}
	}
}

// PDF returns the solid-angle density Sample would have assigned to the
// given incident direction. Used for MIS weights independent of whether
// the direction was actually produced by Sample.
func (b *BSDF) PDF(woWorld, wiWorld core.Vec3) float64 {
	wo := b.frame.ToLocal(woWorld)
	wi := b.frame.ToLocal(wiWorld)

	switch b.Kind {
	case BSDFLambertian:
		if !core.SameHemisphere(wo, wi) {
			return 0
		}
		return core.CosineHemispherePDF(core.AbsCosTheta(wi))

	case BSDFMicrofacet:
		if !core.SameHemisphere(wo, wi) {
			return 0
		}
		wh := wo.Add(wi).Normalize()
		if wh.IsZero() {
			return 0
		}
		return b.dist.PDF(wo, wh) / (4 * wo.Dot(wh))

	default:
		return 0
	}
}

// Sample importance-samples an incident direction for the given
// world-space outgoing direction. Returns false when the BSDF absorbs
// the path (no valid direction could be generated).
func (b *BSDF) Sample(woWorld core.Vec3, sample core.Vec2) (BSDFSample, bool) {
	wo := b.frame.ToLocal(woWorld)
	if wo.Z == 0 {
		return BSDFSample{}, false
	}

	switch b.Kind {
	case BSDFLambertian:
		wi := core.SampleCosineHemisphere(sample)
		if wo.Z < 0 {
			wi.Z = -wi.Z
		}
		pdf := core.CosineHemispherePDF(core.AbsCosTheta(wi))
		if pdf == 0 {
			return BSDFSample{}, false
		}
		return BSDFSample{
			Wi:  b.frame.ToWorld(wi),
			F:   b.albedo.Multiply(1.0 / math.Pi),
			PDF: pdf,
		}, true

	case BSDFMirror:
		// Perfect mirror direction; the 1/|cos| cancels the |cos| the
		// integrator applies, so throughput picks up exactly the tint
		wi := core.NewVec3(-wo.X, -wo.Y, wo.Z)
		return BSDFSample{
			Wi:       b.frame.ToWorld(wi),
			F:        b.albedo.Multiply(1.0 / core.AbsCosTheta(wi)),
			PDF:      1,
			Specular: true,
		}, true

	case BSDFMicrofacet:
		return b.sampleMicrofacet(wo, sample)

	case BSDFDielectric:
		return b.sampleDielectric(wo, sample)

	default:
		return BSDFSample{}, false
	}
}

// microfacetF evaluates the Torrance-Sparrow model in the local frame:
// D * G * Fresnel / (4 cosθo cosθi)
func (b *BSDF) microfacetF(wo, wi core.Vec3) core.Vec3 {
	cosThetaO := core.AbsCosTheta(wo)
	cosThetaI := core.AbsCosTheta(wi)
	if cosThetaO == 0 || cosThetaI == 0 {
		return core.Vec3{}
	}
	if !core.SameHemisphere(wo, wi) {
		return core.Vec3{}
	}

	wh := wo.Add(wi)
	if wh.IsZero() {
		return core.Vec3{}
	}
	wh = wh.Normalize()

	fresnel := FresnelConductor(wi.AbsDot(wh), core.NewVec3(1, 1, 1), b.eta, b.k)
	d := b.dist.D(wh)
	g := b.dist.G(wo, wi)

	return b.albedo.MultiplyVec(fresnel).Multiply(d * g / (4 * cosThetaO * cosThetaI))
}

// sampleMicrofacet samples a microfacet normal from the visible-normal
// distribution, reflects wo about it, and derives the PDF through the
// half-vector Jacobian 1/(4 wo·wh)
func (b *BSDF) sampleMicrofacet(wo core.Vec3, sample core.Vec2) (BSDFSample, bool) {
	wh := b.dist.SampleWh(wo, sample)
	woDotWh := wo.Dot(wh)
	if woDotWh <= 0 {
		return BSDFSample{}, false
	}

	// Reflect wo about the sampled half vector
	wi := wh.Multiply(2 * woDotWh).Subtract(wo)
	if !core.SameHemisphere(wo, wi) {
		return BSDFSample{}, false
	}

	pdf := b.dist.PDF(wo, wh) / (4 * woDotWh)
	if pdf <= 0 || math.IsNaN(pdf) {
		return BSDFSample{}, false
	}

	return BSDFSample{
		Wi:  b.frame.ToWorld(wi),
		F:   b.microfacetF(wo, wi),
		PDF: pdf,
	}, true
}

// sampleDielectric chooses between specular reflection and transmission
// with probability equal to the Fresnel reflectance
func (b *BSDF) sampleDielectric(wo core.Vec3, sample core.Vec2) (BSDFSample, bool) {
	fr := FresnelDielectric(core.CosTheta(wo), 1.0, b.ior)

	if sample.X < fr {
		wi := core.NewVec3(-wo.X, -wo.Y, wo.Z)
		return BSDFSample{
			Wi:       b.frame.ToWorld(wi),
			F:        b.albedo.Multiply(fr / core.AbsCosTheta(wi)),
			PDF:      fr,
			Specular: true,
		}, true
	}

	// Refract; etaI/etaT depend on which side wo came from
	etaI, etaT := 1.0, b.ior
	n := core.NewVec3(0, 0, 1)
	if core.CosTheta(wo) < 0 {
		etaI, etaT = etaT, etaI
		n = n.Negate()
	}

	wi, ok := refract(wo, n, etaI/etaT)
	if !ok {
		// Total internal reflection: Fresnel said so already, but guard
		// against the boundary case
		wi = core.NewVec3(-wo.X, -wo.Y, wo.Z)
		return BSDFSample{
			Wi:       b.frame.ToWorld(wi),
			F:        b.albedo.Multiply(1.0 / core.AbsCosTheta(wi)),
			PDF:      1 - fr,
			Specular: true,
		}, true
	}

	return BSDFSample{
		Wi:       b.frame.ToWorld(wi),
		F:        b.albedo.Multiply((1 - fr) / core.AbsCosTheta(wi)),
		PDF:      1 - fr,
		Specular: true,
	}, true
}

// refract computes the transmitted direction for outgoing wo about the
// normal n with relative index eta, returning false on total internal
// reflection
func refract(wo, n core.Vec3, eta float64) (core.Vec3, bool) {
	cosThetaI := n.Dot(wo)
	sin2ThetaI := math.Max(0, 1-cosThetaI*cosThetaI)
	sin2ThetaT := eta * eta * sin2ThetaI
	if sin2ThetaT >= 1 {
		return core.Vec3{}, false
	}

	cosThetaT := math.Sqrt(1 - sin2ThetaT)
	wi := wo.Negate().Multiply(eta).Add(n.Multiply(eta*cosThetaI - cosThetaT))
	return wi, true
}
