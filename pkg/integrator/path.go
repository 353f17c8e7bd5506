package integrator

import (
	"math"

	"github.com/glimmer-render/glimmer/pkg/core"
	"github.com/glimmer-render/glimmer/pkg/lights"
	"github.com/glimmer-render/glimmer/pkg/material"
	"github.com/glimmer-render/glimmer/pkg/scene"
)

// PathConfig tunes the path tracer.
type PathConfig struct {
	// MaxDepth is the hard cap on path length regardless of Russian
	// roulette.
	MaxDepth int

	// RRMinBounces is the number of bounces traced in full before
	// Russian roulette may terminate the path.
	RRMinBounces int

	// RRFloor is the minimum continuation probability, keeping variance
	// bounded on dark paths.
	RRFloor float64
}

// DefaultPathConfig returns the standard path tracer settings.
func DefaultPathConfig() PathConfig {
	return PathConfig{
		MaxDepth:     32,
		RRMinBounces: 3,
		RRFloor:      0.05,
	}
}

// PathTracer is a unidirectional path tracer with next event estimation.
// At every diffuse or glossy vertex it samples one light and one BSDF
// direction and combines the two estimators with the power heuristic.
type PathTracer struct {
	config PathConfig
}

// NewPathTracer creates a path tracer with the given configuration.
func NewPathTracer(config PathConfig) *PathTracer {
	if config.MaxDepth <= 0 {
		config.MaxDepth = DefaultPathConfig().MaxDepth
	}
	if config.RRFloor <= 0 {
		config.RRFloor = DefaultPathConfig().RRFloor
	}
	return &PathTracer{config: config}
}

// Li implements the Integrator interface.
func (pt *PathTracer) Li(ray core.Ray, scn *scene.Scene, sampler core.Sampler) core.Vec3 {
	radiance := core.Vec3{}
	throughput := core.NewVec3(1, 1, 1)

	// Emission found by following the ray itself is counted in full on
	// the first bounce and after specular vertices, where light sampling
	// had no chance to find it. Everywhere else it is MIS-weighted
	// against the light sampling density recorded at the previous vertex.
	specularBounce := true
	prevBSDFPdf := 0.0
	prevPoint := ray.Origin

	for bounce := 0; ; bounce++ {
		var si material.SurfaceInteraction
		if !scn.Intersect(ray, &si) {
			radiance = radiance.Add(throughput.MultiplyVec(
				pt.escapedRadiance(ray, scn, specularBounce, prevPoint, prevBSDFPdf)))
			break
		}

		emitted := si.Emitted(ray)
		if !emitted.IsZero() {
			// MIS against the density light sampling assigns to this
			// same light. The densities must be matched per light, not
			// mixed over all lights: only then do the two weights for a
			// light sum to one and occluded lights stay inert.
			weight := 1.0
			if !specularBounce {
				lightPdf := scn.EmitterPDF(prevPoint, ray.Direction, si.Material)
				weight = core.PowerHeuristic(1, prevBSDFPdf, 1, lightPdf)
			}
			radiance = radiance.Add(throughput.MultiplyVec(emitted).Multiply(weight))
		}

		if bounce >= pt.config.MaxDepth {
			break
		}

		if si.Material == nil {
			break
		}
		bsdf := si.Material.BSDF(&si)
		wo := ray.Direction.Negate()

		if !bsdf.IsSpecular() {
			radiance = radiance.Add(throughput.MultiplyVec(pt.sampleDirect(scn, &si, &bsdf, wo, sampler)))
		}

		bs, ok := bsdf.Sample(wo, sampler.Get2D())
		if !ok || bs.PDF <= 0 || bs.F.IsZero() {
			break
		}

		cosTheta := bs.Wi.AbsDot(si.ShadingNormal)
		throughput = throughput.MultiplyVec(bs.F).Multiply(cosTheta / bs.PDF).SanitizeColor()
		if throughput.IsZero() {
			break
		}

		specularBounce = bs.Specular
		prevBSDFPdf = bs.PDF
		prevPoint = si.Point
		ray = spawnRay(&si, bs.Wi)

		if bounce >= pt.config.RRMinBounces {
			q := math.Min(math.Max(throughput.MaxComponent(), pt.config.RRFloor), 1.0)
			if sampler.Get1D() >= q {
				break
			}
			throughput = throughput.Multiply(1 / q)
		}
	}

	return radiance.SanitizeColor()
}

// sampleDirect performs next event estimation at a surface point:
// sample one light, trace a shadow ray and weight the contribution with
// the power heuristic against BSDF sampling.
func (pt *PathTracer) sampleDirect(scn *scene.Scene, si *material.SurfaceInteraction, bsdf *material.BSDF, wo core.Vec3, sampler core.Sampler) core.Vec3 {
	ls, ok := lights.SampleOneLight(scn.LightSampler, si.Point, sampler)
	if !ok || ls.Emission.IsZero() {
		return core.Vec3{}
	}

	f := bsdf.F(wo, ls.Direction)
	if f.IsZero() {
		return core.Vec3{}
	}
	cosTheta := ls.Direction.AbsDot(si.ShadingNormal)
	if cosTheta == 0 {
		return core.Vec3{}
	}

	shadowRay := spawnRay(si, ls.Direction)
	maxDistance := ls.Distance
	if !math.IsInf(maxDistance, 1) {
		// Stop just short of the light surface so the light itself is
		// not reported as an occluder.
		maxDistance *= 1 - shadowEpsilon
	}
	if scn.IsOccluded(shadowRay, maxDistance) {
		return core.Vec3{}
	}

	bsdfPdf := bsdf.PDF(wo, ls.Direction)
	weight := core.PowerHeuristic(1, ls.PDF, 1, bsdfPdf)

	return f.MultiplyVec(ls.Emission).Multiply(cosTheta * weight / ls.PDF).SanitizeColor()
}

// escapedRadiance accumulates environment emission for a ray that left
// the scene, with the same MIS weighting area lights get on hit.
func (pt *PathTracer) escapedRadiance(ray core.Ray, scn *scene.Scene, specularBounce bool, prevPoint core.Vec3, prevBSDFPdf float64) core.Vec3 {
	total := core.Vec3{}
	for i, light := range scn.Lights {
		if light.Type() != lights.LightTypeEnvironment {
			continue
		}
		emitted := light.Emit(ray)
		if emitted.IsZero() {
			continue
		}
		weight := 1.0
		if !specularBounce {
			lightPdf := light.PDF(prevPoint, ray.Direction) * scn.LightSampler.LightProbability(i)
			weight = core.PowerHeuristic(1, prevBSDFPdf, 1, lightPdf)
		}
		total = total.Add(emitted.Multiply(weight))
	}
	return total
}

const shadowEpsilon = 1e-3

// spawnRay starts a ray just off the surface, offset along the
// geometric normal on the side the new direction leaves through.
func spawnRay(si *material.SurfaceInteraction, direction core.Vec3) core.Ray {
	offset := si.Normal.Multiply(core.RayEpsilon)
	if direction.Dot(si.Normal) < 0 {
		offset = offset.Negate()
	}
	return core.NewRay(si.Point.Add(offset), direction)
}
