package geometry

import (
	"math"
	"testing"

	"github.com/glimmer-render/glimmer/pkg/core"
	"github.com/glimmer-render/glimmer/pkg/material"
)

var testMaterial = material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))

func TestSphere_Hit(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1, testMaterial)

	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
	var si material.SurfaceInteraction
	if !sphere.Hit(ray, ray.TMin, ray.TMax, &si) {
		t.Fatal("Expected hit")
	}
	if math.Abs(si.T-4) > 1e-9 {
		t.Errorf("Expected t=4, got %v", si.T)
	}
	if si.Normal.Subtract(core.NewVec3(0, 0, -1)).Length() > 1e-9 {
		t.Errorf("Expected normal (0,0,-1), got %v", si.Normal)
	}
	if !si.FrontFace {
		t.Error("Expected front face hit")
	}

	miss := core.NewRay(core.NewVec3(0, 3, -5), core.NewVec3(0, 0, 1))
	if sphere.Hit(miss, miss.TMin, miss.TMax, &si) {
		t.Error("Expected miss")
	}
	if sphere.HitP(miss, miss.TMin, miss.TMax) {
		t.Error("Expected HitP miss")
	}
}

func TestSphere_HitFromInside(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1, testMaterial)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))

	var si material.SurfaceInteraction
	if !sphere.Hit(ray, ray.TMin, ray.TMax, &si) {
		t.Fatal("Expected hit from inside")
	}
	if si.FrontFace {
		t.Error("Expected back face hit from inside")
	}
	// Normal must oppose the ray direction
	if si.Normal.Dot(ray.Direction) >= 0 {
		t.Errorf("Normal %v points along the ray", si.Normal)
	}
}

func TestQuad_Hit(t *testing.T) {
	quad := NewQuad(core.NewVec3(-1, 0, -1), core.NewVec3(2, 0, 0), core.NewVec3(0, 0, 2), testMaterial)

	ray := core.NewRay(core.NewVec3(0.5, 3, 0.5), core.NewVec3(0, -1, 0))
	var si material.SurfaceInteraction
	if !quad.Hit(ray, ray.TMin, ray.TMax, &si) {
		t.Fatal("Expected hit")
	}
	if math.Abs(si.T-3) > 1e-9 {
		t.Errorf("Expected t=3, got %v", si.T)
	}

	// Just outside the quad boundary
	outside := core.NewRay(core.NewVec3(1.5, 3, 0), core.NewVec3(0, -1, 0))
	if quad.Hit(outside, outside.TMin, outside.TMax, &si) {
		t.Error("Expected miss outside the quad")
	}

	// Parallel to the quad plane
	parallel := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0))
	if quad.Hit(parallel, parallel.TMin, parallel.TMax, &si) {
		t.Error("Expected miss for a parallel ray")
	}
}

func TestQuad_SamplePoint(t *testing.T) {
	quad := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(2, 0, 0), core.NewVec3(0, 0, 3), testMaterial)
	if math.Abs(quad.Area()-6) > 1e-9 {
		t.Errorf("Expected area 6, got %v", quad.Area())
	}
	p := quad.SamplePoint(core.NewVec2(0.5, 0.5))
	if p.Subtract(core.NewVec3(1, 0, 1.5)).Length() > 1e-9 {
		t.Errorf("Expected quad center, got %v", p)
	}
}

func TestTriangle_Hit(t *testing.T) {
	tri := NewTriangle(
		core.NewVec3(-1, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 2, 0),
		testMaterial,
	)

	ray := core.NewRay(core.NewVec3(0, 0.5, -3), core.NewVec3(0, 0, 1))
	var si material.SurfaceInteraction
	if !tri.Hit(ray, ray.TMin, ray.TMax, &si) {
		t.Fatal("Expected hit")
	}
	if math.Abs(si.T-3) > 1e-9 {
		t.Errorf("Expected t=3, got %v", si.T)
	}

	miss := core.NewRay(core.NewVec3(0, 3, -3), core.NewVec3(0, 0, 1))
	if tri.Hit(miss, miss.TMin, miss.TMax, &si) {
		t.Error("Expected miss above the triangle")
	}
}

func TestTriangle_InterpolatesNormals(t *testing.T) {
	vertices := []core.Vec3{
		{X: -1, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 2, Z: 0},
	}
	normals := []core.Vec3{
		core.NewVec3(1, 0, -1).Normalize(),
		core.NewVec3(-1, 0, -1).Normalize(),
		core.NewVec3(0, 0, -1),
	}
	mesh, err := NewMesh(vertices, []int{0, 1, 2}, normals, nil, testMaterial)
	if err != nil {
		t.Fatalf("NewMesh failed: %v", err)
	}
	tri := mesh.Triangles()[0].(*Triangle)

	// Hit near the first vertex; its tilted normal should dominate the
	// interpolation, pulling the shading normal away from the geometric one
	ray := core.NewRay(core.NewVec3(-0.5, 0.25, -3), core.NewVec3(0, 0, 1))
	var si material.SurfaceInteraction
	if !tri.Hit(ray, ray.TMin, ray.TMax, &si) {
		t.Fatal("Expected hit")
	}
	if math.Abs(si.ShadingNormal.Length()-1) > 1e-6 {
		t.Errorf("Shading normal %v not unit length", si.ShadingNormal)
	}
	if si.ShadingNormal.Subtract(si.Normal).Length() < 1e-3 {
		t.Errorf("Expected shading normal to differ from geometric normal, both %v", si.Normal)
	}
	if si.ShadingNormal.X <= 0 {
		t.Errorf("Expected shading normal tilted toward +X, got %v", si.ShadingNormal)
	}
}

func TestMesh_Errors(t *testing.T) {
	v := []core.Vec3{{}, {X: 1}, {Y: 1}}

	if _, err := NewMesh(v, []int{0, 1}, nil, nil, testMaterial); err == nil {
		t.Error("Expected error for a partial face")
	}
	if _, err := NewMesh(v, []int{0, 1, 5}, nil, nil, testMaterial); err == nil {
		t.Error("Expected error for an out-of-range index")
	}
	if _, err := NewMesh(v, []int{0, 1, 2}, []core.Vec3{{}}, nil, testMaterial); err == nil {
		t.Error("Expected error for mismatched normal count")
	}
}

func TestMesh_ExcludesDegenerateFaces(t *testing.T) {
	v := []core.Vec3{{}, {X: 1}, {Y: 1}}
	// Second face repeats one vertex and has zero area
	mesh, err := NewMesh(v, []int{0, 1, 2, 0, 0, 1}, nil, nil, testMaterial)
	if err != nil {
		t.Fatalf("NewMesh failed: %v", err)
	}

	tris := mesh.Triangles()
	if len(tris) != 1 {
		t.Errorf("Expected 1 triangle, got %d", len(tris))
	}
	if mesh.DegenerateCount() != 1 {
		t.Errorf("Expected 1 degenerate face, got %d", mesh.DegenerateCount())
	}
}
