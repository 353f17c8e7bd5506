package geometry

import (
	"github.com/glimmer-render/glimmer/pkg/core"
	"github.com/glimmer-render/glimmer/pkg/material"
)

// Triangle represents one face of a mesh. It stores only a back-reference
// into the mesh's shared buffers; all vertex data is fetched by index.
type Triangle struct {
	Mesh *Mesh
	Face int
}

// NewTriangle creates a standalone triangle backed by a private
// three-vertex mesh. Mostly useful for tests and tiny scenes; real
// geometry should come in as a Mesh.
func NewTriangle(v0, v1, v2 core.Vec3, mat material.Material) *Triangle {
	mesh := &Mesh{
		Vertices: []core.Vec3{v0, v1, v2},
		Indices:  []int{0, 1, 2},
		Material: mat,
	}
	return &Triangle{Mesh: mesh, Face: 0}
}

// Area returns the surface area of the triangle
func (t *Triangle) Area() float64 {
	v0 := t.Mesh.vertex(t.Face, 0)
	edge1 := t.Mesh.vertex(t.Face, 1).Subtract(v0)
	edge2 := t.Mesh.vertex(t.Face, 2).Subtract(v0)
	return 0.5 * edge1.Cross(edge2).Length()
}

// GeometricNormal returns the unit face normal from the winding order
func (t *Triangle) GeometricNormal() core.Vec3 {
	v0 := t.Mesh.vertex(t.Face, 0)
	edge1 := t.Mesh.vertex(t.Face, 1).Subtract(v0)
	edge2 := t.Mesh.vertex(t.Face, 2).Subtract(v0)
	return edge1.Cross(edge2).Normalize()
}

// Hit tests if a ray intersects the triangle using the Möller-Trumbore
// algorithm and fills in the interaction with interpolated shading
// attributes
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64, si *material.SurfaceInteraction) bool {
	tHit, u, v, ok := t.intersect(ray, tMin, tMax)
	if !ok {
		return false
	}

	si.T = tHit
	si.Point = ray.At(tHit)
	si.Material = t.Mesh.Material
	si.SetFaceNormal(ray, t.GeometricNormal())

	// Barycentric weights for attribute interpolation
	w := 1 - u - v
	i0 := t.Mesh.Indices[t.Face*3]
	i1 := t.Mesh.Indices[t.Face*3+1]
	i2 := t.Mesh.Indices[t.Face*3+2]

	if t.Mesh.Normals != nil {
		n := t.Mesh.Normals[i0].Multiply(w).
			Add(t.Mesh.Normals[i1].Multiply(u)).
			Add(t.Mesh.Normals[i2].Multiply(v)).
			Normalize()
		si.SetShadingNormal(n)
	}

	if t.Mesh.UVs != nil {
		uv0 := t.Mesh.UVs[i0]
		uv1 := t.Mesh.UVs[i1]
		uv2 := t.Mesh.UVs[i2]
		si.UV = core.NewVec2(
			w*uv0.X+u*uv1.X+v*uv2.X,
			w*uv0.Y+u*uv1.Y+v*uv2.Y,
		)
	} else {
		si.UV = core.NewVec2(u, v)
	}

	return true
}

// HitP is the occlusion-only intersection test; it computes no
// interaction data
func (t *Triangle) HitP(ray core.Ray, tMin, tMax float64) bool {
	_, _, _, ok := t.intersect(ray, tMin, tMax)
	return ok
}

// intersect runs Möller-Trumbore and returns (t, u, v) on a hit
func (t *Triangle) intersect(ray core.Ray, tMin, tMax float64) (tHit, u, v float64, ok bool) {
	const epsilon = 1e-9

	v0 := t.Mesh.vertex(t.Face, 0)
	edge1 := t.Mesh.vertex(t.Face, 1).Subtract(v0)
	edge2 := t.Mesh.vertex(t.Face, 2).Subtract(v0)

	h := ray.Direction.Cross(edge2)
	det := edge1.Dot(h)

	// Near-zero determinant: ray parallel to the triangle plane
	if det > -epsilon && det < epsilon {
		return 0, 0, 0, false
	}

	invDet := 1.0 / det
	s := ray.Origin.Subtract(v0)
	u = invDet * s.Dot(h)
	if u < 0 || u > 1 {
		return 0, 0, 0, false
	}

	q := s.Cross(edge1)
	v = invDet * ray.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return 0, 0, 0, false
	}

	tHit = invDet * edge2.Dot(q)
	if tHit < tMin || tHit > tMax {
		return 0, 0, 0, false
	}

	return tHit, u, v, true
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t *Triangle) BoundingBox() AABB {
	return NewAABBFromPoints(
		t.Mesh.vertex(t.Face, 0),
		t.Mesh.vertex(t.Face, 1),
		t.Mesh.vertex(t.Face, 2),
	)
}
