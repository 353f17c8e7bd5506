package geometry

import (
	"github.com/glimmer-render/glimmer/pkg/core"
	"github.com/glimmer-render/glimmer/pkg/material"
)

// Shape is a ray-intersectable surface. Shapes are immutable after scene
// construction and shared read-only across render workers.
type Shape interface {
	// Hit tests the ray against the shape within [tMin, tMax], filling in
	// the interaction and returning true on the nearest intersection
	Hit(ray core.Ray, tMin, tMax float64, si *material.SurfaceInteraction) bool

	// HitP is an occlusion-only query: it reports whether the ray hits the
	// shape within [tMin, tMax] without computing an interaction
	HitP(ray core.Ray, tMin, tMax float64) bool

	// BoundingBox returns the axis-aligned bounding box of the shape
	BoundingBox() AABB
}
