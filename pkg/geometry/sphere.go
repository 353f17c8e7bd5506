package geometry

import (
	"math"

	"github.com/glimmer-render/glimmer/pkg/core"
	"github.com/glimmer-render/glimmer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat material.Material) *Sphere {
	return &Sphere{Center: center, Radius: radius, Material: mat}
}

// Area returns the surface area of the sphere
func (s *Sphere) Area() float64 {
	return 4 * math.Pi * s.Radius * s.Radius
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64, si *material.SurfaceInteraction) bool {
	root, ok := s.intersect(ray, tMin, tMax)
	if !ok {
		return false
	}

	si.T = root
	si.Point = ray.At(root)
	si.Material = s.Material

	// Outward normal points from center to hit point
	outwardNormal := si.Point.Subtract(s.Center).Multiply(1.0 / s.Radius)
	si.SetFaceNormal(ray, outwardNormal)

	// Spherical UV parameterization
	theta := core.SphericalTheta(outwardNormal)
	phi := core.SphericalPhi(outwardNormal)
	si.UV = core.NewVec2(phi/(2*math.Pi), theta/math.Pi)

	return true
}

// HitP is the occlusion-only intersection test
func (s *Sphere) HitP(ray core.Ray, tMin, tMax float64) bool {
	_, ok := s.intersect(ray, tMin, tMax)
	return ok
}

func (s *Sphere) intersect(ray core.Ray, tMin, tMax float64) (float64, bool) {
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + 2bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return 0, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return 0, false
		}
	}

	return root, true
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() AABB {
	radius := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return NewAABB(s.Center.Subtract(radius), s.Center.Add(radius))
}
