package geometry

import (
	"math"

	"github.com/glimmer-render/glimmer/pkg/core"
	"github.com/glimmer-render/glimmer/pkg/material"
)

// Quad represents a rectangular surface defined by a corner and two edge
// vectors. Area lights build on quads, so the quad also exposes uniform
// surface sampling.
type Quad struct {
	Corner   core.Vec3 // One corner of the quad
	U        core.Vec3 // First edge vector
	V        core.Vec3 // Second edge vector
	Normal   core.Vec3 // Unit normal (from U × V)
	Material material.Material

	d float64   // Plane equation constant: normal · p = d
	w core.Vec3 // Cached cross product for barycentric coordinates
}

// NewQuad creates a new quad from a corner point and two edge vectors
func NewQuad(corner, u, v core.Vec3, mat material.Material) *Quad {
	cross := u.Cross(v)
	normal := cross.Normalize()

	return &Quad{
		Corner:   corner,
		U:        u,
		V:        v,
		Normal:   normal,
		Material: mat,
		d:        normal.Dot(corner),
		w:        normal.Multiply(1.0 / normal.Dot(cross)),
	}
}

// Area returns the surface area of the quad
func (q *Quad) Area() float64 {
	return q.U.Cross(q.V).Length()
}

// SamplePoint returns a point uniformly distributed over the quad surface
func (q *Quad) SamplePoint(sample core.Vec2) core.Vec3 {
	return q.Corner.Add(q.U.Multiply(sample.X)).Add(q.V.Multiply(sample.Y))
}

// Hit tests if a ray intersects with the quad
func (q *Quad) Hit(ray core.Ray, tMin, tMax float64, si *material.SurfaceInteraction) bool {
	t, alpha, beta, ok := q.intersect(ray, tMin, tMax)
	if !ok {
		return false
	}

	si.T = t
	si.Point = ray.At(t)
	si.UV = core.NewVec2(alpha, beta)
	si.Material = q.Material
	si.SetFaceNormal(ray, q.Normal)
	return true
}

// HitP is the occlusion-only intersection test
func (q *Quad) HitP(ray core.Ray, tMin, tMax float64) bool {
	_, _, _, ok := q.intersect(ray, tMin, tMax)
	return ok
}

func (q *Quad) intersect(ray core.Ray, tMin, tMax float64) (t, alpha, beta float64, ok bool) {
	denominator := ray.Direction.Dot(q.Normal)

	// Ray parallel to the quad plane
	if math.Abs(denominator) < 1e-9 {
		return 0, 0, 0, false
	}

	t = (q.d - ray.Origin.Dot(q.Normal)) / denominator
	if t < tMin || t > tMax {
		return 0, 0, 0, false
	}

	hitVector := ray.At(t).Subtract(q.Corner)
	alpha = q.w.Dot(hitVector.Cross(q.V))
	beta = q.w.Dot(q.U.Cross(hitVector))
	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return 0, 0, 0, false
	}

	return t, alpha, beta, true
}

// BoundingBox returns the axis-aligned bounding box for this quad,
// padded slightly so axis-aligned quads get a non-degenerate box
func (q *Quad) BoundingBox() AABB {
	bbox := NewAABBFromPoints(
		q.Corner,
		q.Corner.Add(q.U),
		q.Corner.Add(q.V),
		q.Corner.Add(q.U).Add(q.V),
	)

	const pad = 1e-4
	padVec := core.NewVec3(pad, pad, pad)
	return NewAABB(bbox.Min.Subtract(padVec), bbox.Max.Add(padVec))
}
