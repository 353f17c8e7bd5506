package geometry

import (
	"math"

	"github.com/glimmer-render/glimmer/pkg/core"
)

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min core.Vec3 // Minimum corner
	Max core.Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max core.Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// EmptyAABB returns an inverted box that unions correctly with any point
func EmptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{
		Min: core.NewVec3(inf, inf, inf),
		Max: core.NewVec3(-inf, -inf, -inf),
	}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...core.Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	bbox := AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		bbox = bbox.UnionPoint(p)
	}
	return bbox
}

// Hit tests if a ray intersects this AABB within [tMin, tMax] using the
// slab method
func (aabb AABB) Hit(ray core.Ray, tMin, tMax float64) bool {
	for axis := 0; axis < 3; axis++ {
		minVal := aabb.Min.Axis(axis)
		maxVal := aabb.Max.Axis(axis)
		origin := ray.Origin.Axis(axis)
		direction := ray.Direction.Axis(axis)

		if math.Abs(direction) < 1e-12 {
			// Ray is parallel to this slab
			if origin < minVal || origin > maxVal {
				return false
			}
			continue
		}

		invDirection := 1.0 / direction
		t1 := (minVal - origin) * invDirection
		t2 := (maxVal - origin) * invDirection
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return false
		}
	}

	return true
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	return AABB{
		Min: core.NewVec3(
			math.Min(aabb.Min.X, other.Min.X),
			math.Min(aabb.Min.Y, other.Min.Y),
			math.Min(aabb.Min.Z, other.Min.Z),
		),
		Max: core.NewVec3(
			math.Max(aabb.Max.X, other.Max.X),
			math.Max(aabb.Max.Y, other.Max.Y),
			math.Max(aabb.Max.Z, other.Max.Z),
		),
	}
}

// UnionPoint returns an AABB grown to contain the given point
func (aabb AABB) UnionPoint(p core.Vec3) AABB {
	return AABB{
		Min: core.NewVec3(
			math.Min(aabb.Min.X, p.X),
			math.Min(aabb.Min.Y, p.Y),
			math.Min(aabb.Min.Z, p.Z),
		),
		Max: core.NewVec3(
			math.Max(aabb.Max.X, p.X),
			math.Max(aabb.Max.Y, p.Y),
			math.Max(aabb.Max.Z, p.Z),
		),
	}
}

// Center returns the center point of the AABB
func (aabb AABB) Center() core.Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the extent of the AABB along each axis
func (aabb AABB) Size() core.Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent
func (aabb AABB) LongestAxis() int {
	size := aabb.Size()
	if size.X > size.Y && size.X > size.Z {
		return 0
	}
	if size.Y > size.Z {
		return 1
	}
	return 2
}

// BoundingSphere returns the center and radius of a sphere containing the box
func (aabb AABB) BoundingSphere() (core.Vec3, float64) {
	center := aabb.Center()
	return center, aabb.Max.Subtract(center).Length()
}
