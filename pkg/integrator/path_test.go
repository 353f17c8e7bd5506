package integrator

import (
	"math"
	"math/rand"
	"testing"

	"github.com/glimmer-render/glimmer/pkg/camera"
	"github.com/glimmer-render/glimmer/pkg/core"
	"github.com/glimmer-render/glimmer/pkg/geometry"
	"github.com/glimmer-render/glimmer/pkg/lights"
	"github.com/glimmer-render/glimmer/pkg/material"
	"github.com/glimmer-render/glimmer/pkg/scene"
)

func testCamera(t *testing.T) *camera.Camera {
	t.Helper()
	cam, err := camera.New(camera.Config{
		Width:    16,
		Height:   16,
		LookFrom: core.NewVec3(0, 0, 5),
		LookAt:   core.NewVec3(0, 0, 0),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     45,
	})
	if err != nil {
		t.Fatalf("camera.New failed: %v", err)
	}
	return cam
}

func buildScene(t *testing.T, shapes []geometry.Shape, lightList []lights.Light) *scene.Scene {
	t.Helper()
	scn, err := scene.New(testCamera(t), shapes, lightList, scene.Options{})
	if err != nil {
		t.Fatalf("scene.New failed: %v", err)
	}
	return scn
}

// A ray in an empty scene with a uniform environment must return the
// environment radiance exactly, not a Monte Carlo estimate of it.
func TestPathTracer_EmptySceneReturnsEnvironmentExactly(t *testing.T) {
	radiance := core.NewVec3(0.3, 0.6, 0.9)
	env := lights.NewUniformEnvironmentLight(radiance)
	scn := buildScene(t, nil, []lights.Light{env})

	pt := NewPathTracer(DefaultPathConfig())
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))
	random := rand.New(rand.NewSource(7))

	for i := 0; i < 100; i++ {
		dir := core.SampleUniformSphere(core.NewVec2(random.Float64(), random.Float64()))
		ray := core.NewRay(core.Vec3{}, dir)
		got := pt.Li(ray, scn, sampler)
		if got != radiance {
			t.Fatalf("Expected exactly %v, got %v for direction %v", radiance, got, dir)
		}
	}
}

// Furnace property: a convex lambertian body in a uniform unit
// environment reflects exactly its albedo. The body never shadows or
// re-illuminates itself, so the outgoing radiance is ρ·1 everywhere.
func TestPathTracer_WhiteFurnace(t *testing.T) {
	albedo := 0.7
	env := lights.NewUniformEnvironmentLight(core.NewVec3(1, 1, 1))
	sphere := geometry.NewSphere(core.NewVec3(0, 0, 0), 1,
		material.NewLambertian(core.NewVec3(albedo, albedo, albedo)))
	scn := buildScene(t, []geometry.Shape{sphere}, []lights.Light{env})

	config := DefaultPathConfig()
	config.MaxDepth = 64
	config.RRMinBounces = 8
	pt := NewPathTracer(config)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))
	sum := core.Vec3{}
	const n = 20000
	for i := 0; i < n; i++ {
		sum = sum.Add(pt.Li(ray, scn, sampler))
	}
	mean := sum.Multiply(1.0 / n)

	for _, c := range []float64{mean.X, mean.Y, mean.Z} {
		if math.Abs(c-albedo) > 0.03 {
			t.Errorf("Furnace test failed: expected %v, got %v", albedo, mean)
			break
		}
	}
}

// Direct lighting against the analytic answer for a small spherical
// light: the reflected radiance at a point right below the light is
// approximately ρ/π · L · Ω · cosθ for a small subtended solid angle.
func TestPathTracer_DirectLightingMatchesAnalytic(t *testing.T) {
	albedo := 0.6
	emission := 20.0
	lightCenter := core.NewVec3(0, 10, 0)
	lightRadius := 0.5

	ground := geometry.NewQuad(
		core.NewVec3(-50, 0, -50),
		core.NewVec3(0, 0, 100),
		core.NewVec3(100, 0, 0),
		material.NewLambertian(core.NewVec3(albedo, albedo, albedo)),
	)
	light := lights.NewSphereLight(lightCenter, lightRadius, core.NewVec3(emission, emission, emission))
	scn := buildScene(t, []geometry.Shape{ground, light.Sphere}, []lights.Light{light})

	// Only one bounce so indirect light cannot contaminate the estimate
	config := DefaultPathConfig()
	config.MaxDepth = 1
	pt := NewPathTracer(config)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	// Camera ray hitting the ground directly below the light
	ray := core.NewRay(core.NewVec3(0, 3, 3), core.NewVec3(0, -1, -1).Normalize())

	sum := 0.0
	const n = 50000
	for i := 0; i < n; i++ {
		sum += pt.Li(ray, scn, sampler).X
	}
	got := sum / n

	// Hit point is the origin, light straight up: cosθ=1. For a small
	// light the radiance is ρ/π · L · 2π(1-cosθmax).
	sinThetaMax := lightRadius / 10
	cosThetaMax := math.Sqrt(1 - sinThetaMax*sinThetaMax)
	expected := albedo / math.Pi * emission * 2 * math.Pi * (1 - cosThetaMax)

	if math.Abs(got-expected)/expected > 0.05 {
		t.Errorf("Expected about %v, got %v", expected, got)
	}
}

// Light reached by BSDF sampling and by next event estimation must not
// be counted twice: the combined estimate still matches the analytic
// direct lighting value.
func TestPathTracer_MISDoesNotDoubleCount(t *testing.T) {
	albedo := 0.5
	emission := 4.0
	// A large, close light where both strategies find it often
	lightCenter := core.NewVec3(0, 4, 0)
	lightRadius := 2.0

	ground := geometry.NewQuad(
		core.NewVec3(-50, 0, -50),
		core.NewVec3(0, 0, 100),
		core.NewVec3(100, 0, 0),
		material.NewLambertian(core.NewVec3(albedo, albedo, albedo)),
	)
	light := lights.NewSphereLight(lightCenter, lightRadius, core.NewVec3(emission, emission, emission))
	scn := buildScene(t, []geometry.Shape{ground, light.Sphere}, []lights.Light{light})

	config := DefaultPathConfig()
	config.MaxDepth = 1
	pt := NewPathTracer(config)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	ray := core.NewRay(core.NewVec3(0, 2, 6), core.NewVec3(0, -1, -3).Normalize())

	sum := 0.0
	const n = 100000
	for i := 0; i < n; i++ {
		sum += pt.Li(ray, scn, sampler).X
	}
	got := sum / n

	// Exact solid-angle integral for a lambertian surface below a
	// sphere light straight overhead: L·ρ·sin²θmax with cosθ≈1 inside
	// the small cone approximation breaks down here, so integrate
	// numerically with pure light sampling as the reference.
	reference := directLightingReference(scn, light, albedo)
	if math.Abs(got-reference)/reference > 0.05 {
		t.Errorf("Expected about %v, got %v", reference, got)
	}
}

// directLightingReference estimates direct lighting at the origin with
// plain light-strategy sampling (no MIS), which is unbiased on its own.
func directLightingReference(scn *scene.Scene, light lights.Light, albedo float64) float64 {
	random := rand.New(rand.NewSource(123))
	point := core.NewVec3(0, 0, 0)
	normal := core.NewVec3(0, 1, 0)

	sum := 0.0
	const n = 200000
	for i := 0; i < n; i++ {
		ls, ok := light.Sample(point, core.NewVec2(random.Float64(), random.Float64()))
		if !ok || ls.PDF <= 0 {
			continue
		}
		cos := ls.Direction.Dot(normal)
		if cos <= 0 {
			continue
		}
		sum += albedo / math.Pi * ls.Emission.X * cos / ls.PDF
	}
	return sum / n
}

// A second emitter hidden exactly behind the first is physically inert:
// BSDF rays never reach it and every shadow ray toward it is blocked.
// Adding it must not change the estimate. This fails when the two MIS
// strategies weight a hit with mismatched light densities.
func TestPathTracer_OccludedLightIsInert(t *testing.T) {
	albedo := 0.5
	ground := geometry.NewQuad(
		core.NewVec3(-50, 0, -50),
		core.NewVec3(0, 0, 100),
		core.NewVec3(100, 0, 0),
		material.NewLambertian(core.NewVec3(albedo, albedo, albedo)),
	)
	front := lights.NewQuadLight(
		core.NewVec3(-1, 4, -1),
		core.NewVec3(2, 0, 0),
		core.NewVec3(0, 0, 2),
		core.NewVec3(10, 10, 10),
	)
	hidden := lights.NewQuadLight(
		core.NewVec3(-1, 4.5, -1),
		core.NewVec3(2, 0, 0),
		core.NewVec3(0, 0, 2),
		core.NewVec3(10, 10, 10),
	)

	config := DefaultPathConfig()
	config.MaxDepth = 1
	// Camera ray hitting the ground at the origin, lights overhead
	ray := core.NewRay(core.NewVec3(0, 2, 6), core.NewVec3(0, -1, -3).Normalize())

	estimate := func(shapes []geometry.Shape, lightList []lights.Light) float64 {
		scn := buildScene(t, shapes, lightList)
		pt := NewPathTracer(config)
		sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))
		sum := 0.0
		const n = 100000
		for i := 0; i < n; i++ {
			sum += pt.Li(ray, scn, sampler).X
		}
		return sum / n
	}

	alone := estimate(
		[]geometry.Shape{ground, front.Quad},
		[]lights.Light{front})
	stacked := estimate(
		[]geometry.Shape{ground, front.Quad, hidden.Quad},
		[]lights.Light{front, hidden})

	if math.Abs(stacked-alone)/alone > 0.025 {
		t.Errorf("Expected the occluded light to change nothing: %v alone vs %v stacked", alone, stacked)
	}
}

// All-absorbing geometry terminates paths with zero radiance.
func TestPathTracer_AbsorberIsBlack(t *testing.T) {
	sphere := geometry.NewSphere(core.NewVec3(0, 0, 0), 1,
		material.NewLambertian(core.Vec3{}))
	quad := lights.NewQuadLight(
		core.NewVec3(-10, 20, -10),
		core.NewVec3(20, 0, 0),
		core.NewVec3(0, 0, 20),
		core.NewVec3(1, 1, 1),
	)
	scn := buildScene(t, []geometry.Shape{sphere, quad.Quad}, []lights.Light{quad})

	pt := NewPathTracer(DefaultPathConfig())
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))
	if got := pt.Li(ray, scn, sampler); !got.IsZero() {
		t.Errorf("Expected black from a zero-albedo surface, got %v", got)
	}
}

// A mirror bounce must carry environment radiance: emission after a
// specular vertex is added in full.
func TestPathTracer_SpecularBounceSeesEnvironment(t *testing.T) {
	radiance := core.NewVec3(0.5, 0.5, 0.5)
	env := lights.NewUniformEnvironmentLight(radiance)
	mirror := geometry.NewQuad(
		core.NewVec3(-10, 0, -10),
		core.NewVec3(0, 0, 20),
		core.NewVec3(20, 0, 0),
		material.NewMirror(core.NewVec3(1, 1, 1)),
	)
	scn := buildScene(t, []geometry.Shape{mirror}, []lights.Light{env})

	pt := NewPathTracer(DefaultPathConfig())
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	ray := core.NewRay(core.NewVec3(0, 3, 3), core.NewVec3(0, -1, -1).Normalize())
	got := pt.Li(ray, scn, sampler)
	if got.Subtract(radiance).Length() > 1e-9 {
		t.Errorf("Expected mirror to reflect %v, got %v", radiance, got)
	}
}

// Radiance never goes negative or NaN, whatever the path does.
func TestPathTracer_OutputContained(t *testing.T) {
	scn, err := scene.NewDefaultScene(32, 24)
	if err != nil {
		t.Fatalf("NewDefaultScene failed: %v", err)
	}

	pt := NewPathTracer(DefaultPathConfig())
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))
	random := rand.New(rand.NewSource(9))

	for i := 0; i < 2000; i++ {
		px := random.Intn(32)
		py := random.Intn(24)
		ray := scn.Camera.GenerateRay(px, py, sampler.Get2D(), sampler.Get2D())
		got := pt.Li(ray, scn, sampler)
		if got.HasNaN() || got.X < 0 || got.Y < 0 || got.Z < 0 {
			t.Fatalf("Unclean radiance %v at pixel (%d,%d)", got, px, py)
		}
	}
}
