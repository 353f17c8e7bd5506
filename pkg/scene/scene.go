package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/glimmer-render/glimmer/pkg/camera"
	"github.com/glimmer-render/glimmer/pkg/core"
	"github.com/glimmer-render/glimmer/pkg/geometry"
	"github.com/glimmer-render/glimmer/pkg/lights"
	"github.com/glimmer-render/glimmer/pkg/material"
)

var (
	// ErrNoCamera is returned when a scene is built without a camera.
	ErrNoCamera = errors.New("scene: missing camera")

	// ErrEmptyScene is returned when a scene has neither primitives nor
	// an environment light, so every ray would carry zero radiance.
	ErrEmptyScene = errors.New("scene: no primitives and no environment light")

	// ErrDegenerateLight is returned for lights whose emitting surface
	// has zero area or a non-finite power.
	ErrDegenerateLight = errors.New("scene: degenerate light")
)

// LightSamplingStrategy selects how the integrator picks a light for
// next event estimation.
type LightSamplingStrategy int

const (
	// SampleLightsUniform picks each light with equal probability.
	SampleLightsUniform LightSamplingStrategy = iota
	// SampleLightsByPower picks lights proportionally to emitted power.
	SampleLightsByPower
)

// Options controls scene construction.
type Options struct {
	LightStrategy LightSamplingStrategy
}

// Scene holds the immutable world description shared by all render
// workers: the geometry behind a BVH, the light list with its sampler,
// and the camera. After New returns the scene is read-only.
type Scene struct {
	Camera       *camera.Camera
	Shapes       []geometry.Shape
	Lights       []lights.Light
	LightSampler lights.LightSampler

	bvh *geometry.BVH

	// Maps an area light's emissive material back to its light index,
	// so a path that hits emitting geometry can recover the density
	// next-event estimation would have used for that same light.
	emitterIndex map[material.Material]int
}

// New assembles a scene, builds the BVH, preprocesses lights that need
// world bounds and selects the light sampler. All structural problems
// are reported here rather than surfacing as artifacts during
// rendering.
func New(cam *camera.Camera, shapes []geometry.Shape, sceneLights []lights.Light, opts Options) (*Scene, error) {
	if cam == nil {
		return nil, ErrNoCamera
	}

	hasEnvironment := false
	for i, light := range sceneLights {
		if light.Type() == lights.LightTypeEnvironment {
			hasEnvironment = true
		}
		power := light.Power()
		if power.HasNaN() || math.IsInf(power.Luminance(), 0) {
			return nil, fmt.Errorf("%w: light %d has non-finite power", ErrDegenerateLight, i)
		}
		if light.Type() == lights.LightTypeArea && power.IsZero() {
			return nil, fmt.Errorf("%w: area light %d emits no power", ErrDegenerateLight, i)
		}
	}
	if len(shapes) == 0 && !hasEnvironment {
		return nil, ErrEmptyScene
	}

	bvh := geometry.NewBVH(shapes)

	for i, light := range sceneLights {
		if pre, ok := light.(lights.Preprocessor); ok {
			if err := pre.Preprocess(bvh.Center, bvh.Radius); err != nil {
				return nil, fmt.Errorf("scene: preprocess light %d: %w", i, err)
			}
		}
	}

	var sampler lights.LightSampler
	switch opts.LightStrategy {
	case SampleLightsByPower:
		sampler = lights.NewPowerLightSampler(sceneLights)
	default:
		sampler = lights.NewUniformLightSampler(sceneLights)
	}

	emitterIndex := make(map[material.Material]int)
	for i, light := range sceneLights {
		if emitter, ok := light.(lights.SurfaceEmitter); ok {
			emitterIndex[emitter.EmitterMaterial()] = i
		}
	}

	return &Scene{
		Camera:       cam,
		Shapes:       shapes,
		Lights:       sceneLights,
		LightSampler: sampler,
		bvh:          bvh,
		emitterIndex: emitterIndex,
	}, nil
}

// EmitterPDF returns the solid-angle density with which next-event
// estimation would sample the direction from point toward the area
// light owning the given material, including the light selection
// probability. Zero when the material belongs to no registered light,
// in which case light sampling can never find it and BSDF hits carry
// full weight.
func (s *Scene) EmitterPDF(point, direction core.Vec3, mat material.Material) float64 {
	i, ok := s.emitterIndex[mat]
	if !ok {
		return 0
	}
	return s.Lights[i].PDF(point, direction) * s.LightSampler.LightProbability(i)
}

// Intersect finds the closest surface hit along the ray.
func (s *Scene) Intersect(ray core.Ray, si *material.SurfaceInteraction) bool {
	return s.bvh.Hit(ray, ray.TMin, ray.TMax, si)
}

// IsOccluded reports whether anything blocks the ray before maxDistance.
// It never evaluates shading and exits on the first hit.
func (s *Scene) IsOccluded(ray core.Ray, maxDistance float64) bool {
	return s.bvh.IsOccluded(ray, ray.TMin, maxDistance)
}

// BVHStats exposes acceleration structure statistics for reporting.
func (s *Scene) BVHStats() geometry.BVHStats {
	return s.bvh.Stats()
}

// WorldRadius returns the radius of the bounding sphere around all
// geometry.
func (s *Scene) WorldRadius() float64 {
	return s.bvh.Radius
}
