package geometry

import (
	"sort"

	"github.com/glimmer-render/glimmer/pkg/core"
	"github.com/glimmer-render/glimmer/pkg/material"
)

// BVHNode represents a node in the Bounding Volume Hierarchy
type BVHNode struct {
	BoundingBox AABB
	Left        *BVHNode
	Right       *BVHNode
	Axis        int     // Split axis for interior nodes
	Shapes      []Shape // Shapes for leaf nodes (nil for interior nodes)
}

// BVH represents a Bounding Volume Hierarchy for fast ray-shape
// intersection. The tree is built once and is immutable afterwards, so
// concurrent read-only traversal from multiple workers is safe.
type BVH struct {
	Root   *BVHNode
	Center core.Vec3 // Center of the scene bounding sphere
	Radius float64   // Radius of the scene bounding sphere
}

// Leaf threshold: nodes with this many or fewer shapes become leaves and
// use linear search
const leafThreshold = 4

// Hard recursion bound. Degenerate inputs (many duplicate or collinear
// shapes with identical centroids) stop splitting here and fall back to
// one large leaf.
const maxBVHDepth = 64

// NewBVH constructs a BVH from a slice of shapes using median splits
// along the longest axis of the node bounds
func NewBVH(shapes []Shape) *BVH {
	bvh := &BVH{}

	if len(shapes) == 0 {
		return bvh
	}

	// Copy so sorting during the build never mutates the caller's slice
	shapesCopy := make([]Shape, len(shapes))
	copy(shapesCopy, shapes)

	bvh.Root = buildBVH(shapesCopy, 0)
	bvh.Center, bvh.Radius = bvh.Root.BoundingBox.BoundingSphere()
	return bvh
}

// buildBVH recursively builds the tree
func buildBVH(shapes []Shape, depth int) *BVHNode {
	bbox := EmptyAABB()
	for _, shape := range shapes {
		bbox = bbox.Union(shape.BoundingBox())
	}

	if len(shapes) <= leafThreshold || depth >= maxBVHDepth {
		return &BVHNode{BoundingBox: bbox, Shapes: shapes}
	}

	axis := bbox.LongestAxis()
	sortShapesByAxis(shapes, axis)

	mid := len(shapes) / 2
	return &BVHNode{
		BoundingBox: bbox,
		Axis:        axis,
		Left:        buildBVH(shapes[:mid], depth+1),
		Right:       buildBVH(shapes[mid:], depth+1),
	}
}

// sortShapesByAxis sorts shapes by bounding box center along the given axis
func sortShapesByAxis(shapes []Shape, axis int) {
	sort.Slice(shapes, func(i, j int) bool {
		return shapes[i].BoundingBox().Center().Axis(axis) <
			shapes[j].BoundingBox().Center().Axis(axis)
	})
}

// Hit returns the closest intersection within [tMin, tMax], or false if
// the ray misses everything
func (bvh *BVH) Hit(ray core.Ray, tMin, tMax float64, si *material.SurfaceInteraction) bool {
	if bvh.Root == nil {
		return false
	}
	return hitNode(bvh.Root, ray, tMin, tMax, si)
}

// hitNode recursively tests ray intersection, visiting the child nearer
// along the ray's direction on the split axis first so the shrinking
// closest-t bound prunes the far child as often as possible
func hitNode(node *BVHNode, ray core.Ray, tMin, tMax float64, si *material.SurfaceInteraction) bool {
	if !node.BoundingBox.Hit(ray, tMin, tMax) {
		return false
	}

	if node.Shapes != nil {
		hitAnything := false
		closestSoFar := tMax
		for _, shape := range node.Shapes {
			if shape.Hit(ray, tMin, closestSoFar, si) {
				hitAnything = true
				closestSoFar = si.T
			}
		}
		return hitAnything
	}

	first, second := node.Left, node.Right
	if ray.Direction.Axis(node.Axis) < 0 {
		first, second = second, first
	}

	hitAnything := false
	closestSoFar := tMax
	if hitNode(first, ray, tMin, closestSoFar, si) {
		hitAnything = true
		closestSoFar = si.T
	}
	if hitNode(second, ray, tMin, closestSoFar, si) {
		hitAnything = true
	}

	return hitAnything
}

// IsOccluded reports whether anything blocks the ray within [tMin, tMax].
// It exits on the first hit found and never computes an interaction, so
// it is strictly cheaper than Hit. Used for shadow rays.
func (bvh *BVH) IsOccluded(ray core.Ray, tMin, tMax float64) bool {
	if bvh.Root == nil {
		return false
	}
	return occludedNode(bvh.Root, ray, tMin, tMax)
}

func occludedNode(node *BVHNode, ray core.Ray, tMin, tMax float64) bool {
	if !node.BoundingBox.Hit(ray, tMin, tMax) {
		return false
	}

	if node.Shapes != nil {
		for _, shape := range node.Shapes {
			if shape.HitP(ray, tMin, tMax) {
				return true
			}
		}
		return false
	}

	return occludedNode(node.Left, ray, tMin, tMax) ||
		occludedNode(node.Right, ray, tMin, tMax)
}

// Stats returns structural statistics about the tree
func (bvh *BVH) Stats() BVHStats {
	stats := BVHStats{}
	if bvh.Root != nil {
		collectStats(bvh.Root, 0, &stats)
	}
	if stats.LeafNodes > 0 {
		stats.AvgLeafDepth /= float64(stats.LeafNodes)
	}
	return stats
}

// BVHStats contains statistics about the BVH structure
type BVHStats struct {
	TotalNodes   int
	LeafNodes    int
	MaxDepth     int
	AvgLeafDepth float64
	TotalShapes  int
}

func collectStats(node *BVHNode, depth int, stats *BVHStats) {
	stats.TotalNodes++
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	if node.Shapes != nil {
		stats.LeafNodes++
		stats.TotalShapes += len(node.Shapes)
		stats.AvgLeafDepth += float64(depth)
		return
	}

	collectStats(node.Left, depth+1, stats)
	collectStats(node.Right, depth+1, stats)
}
