package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/glimmer-render/glimmer/pkg/core"
	"github.com/glimmer-render/glimmer/pkg/material"
)

func randomSpheres(n int, random *rand.Rand) []Shape {
	shapes := make([]Shape, n)
	for i := range shapes {
		center := core.NewVec3(
			random.Float64()*20-10,
			random.Float64()*20-10,
			random.Float64()*20-10,
		)
		shapes[i] = NewSphere(center, 0.2+random.Float64(), testMaterial)
	}
	return shapes
}

func randomRay(random *rand.Rand) core.Ray {
	origin := core.NewVec3(
		random.Float64()*30-15,
		random.Float64()*30-15,
		random.Float64()*30-15,
	)
	direction := core.SampleUniformSphere(core.NewVec2(random.Float64(), random.Float64()))
	return core.NewRay(origin, direction)
}

// bruteForceHit is the reference the BVH must agree with.
func bruteForceHit(shapes []Shape, ray core.Ray, si *material.SurfaceInteraction) bool {
	hit := false
	closest := ray.TMax
	for _, shape := range shapes {
		var tmp material.SurfaceInteraction
		if shape.Hit(ray, ray.TMin, closest, &tmp) {
			hit = true
			closest = tmp.T
			*si = tmp
		}
	}
	return hit
}

func TestBVH_MatchesBruteForce(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	shapes := randomSpheres(200, random)
	bvh := NewBVH(shapes)

	for i := 0; i < 2000; i++ {
		ray := randomRay(random)

		var bvhSI, refSI material.SurfaceInteraction
		bvhHit := bvh.Hit(ray, ray.TMin, ray.TMax, &bvhSI)
		refHit := bruteForceHit(shapes, ray, &refSI)

		if bvhHit != refHit {
			t.Fatalf("Ray %d: BVH hit=%v, brute force hit=%v", i, bvhHit, refHit)
		}
		if bvhHit && math.Abs(bvhSI.T-refSI.T) > 1e-9 {
			t.Fatalf("Ray %d: BVH t=%v, brute force t=%v", i, bvhSI.T, refSI.T)
		}
	}
}

func TestBVH_IsOccluded(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	shapes := randomSpheres(100, random)
	bvh := NewBVH(shapes)

	for i := 0; i < 2000; i++ {
		ray := randomRay(random)
		maxDist := random.Float64() * 40

		var si material.SurfaceInteraction
		expected := bvh.Hit(ray, ray.TMin, maxDist, &si)
		if got := bvh.IsOccluded(ray, ray.TMin, maxDist); got != expected {
			t.Fatalf("Ray %d: IsOccluded=%v but Hit=%v for maxDist=%v", i, got, expected, maxDist)
		}
	}
}

func TestBVH_EmptyScene(t *testing.T) {
	bvh := NewBVH(nil)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))

	var si material.SurfaceInteraction
	if bvh.Hit(ray, ray.TMin, ray.TMax, &si) {
		t.Error("Empty BVH should never report a hit")
	}
	if bvh.IsOccluded(ray, ray.TMin, math.Inf(1)) {
		t.Error("Empty BVH should never report occlusion")
	}
}

func TestBVH_SingleShape(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 5), 1, testMaterial)
	bvh := NewBVH([]Shape{sphere})

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))
	var si material.SurfaceInteraction
	if !bvh.Hit(ray, ray.TMin, ray.TMax, &si) {
		t.Fatal("Expected hit")
	}
	if math.Abs(si.T-4) > 1e-9 {
		t.Errorf("Expected t=4, got %v", si.T)
	}
}

func TestBVH_Stats(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	shapes := randomSpheres(100, random)
	bvh := NewBVH(shapes)

	stats := bvh.Stats()
	if stats.TotalShapes != 100 {
		t.Errorf("Expected 100 shapes, got %d", stats.TotalShapes)
	}
	if stats.TotalNodes == 0 || stats.LeafNodes == 0 {
		t.Errorf("Expected non-trivial tree, got %+v", stats)
	}
	if stats.MaxDepth < 2 {
		t.Errorf("Expected a tree deeper than a single node, got depth %d", stats.MaxDepth)
	}
}
