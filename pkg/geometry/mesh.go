package geometry

import (
	"errors"
	"fmt"

	"github.com/glimmer-render/glimmer/pkg/core"
	"github.com/glimmer-render/glimmer/pkg/material"
)

// Mesh construction errors
var (
	ErrBadIndexCount = errors.New("mesh index count must be a multiple of 3")
	ErrIndexRange    = errors.New("mesh face index out of range")
	ErrAttrCount     = errors.New("mesh attribute count must match vertex count")
)

// Mesh owns the shared vertex buffers of a triangle mesh. Triangles hold
// a back-reference to their mesh plus a face index rather than copying
// vertex data, so a mesh with a million faces stores each position once.
type Mesh struct {
	Vertices []core.Vec3 // Vertex positions, required
	Normals  []core.Vec3 // Per-vertex shading normals, optional
	UVs      []core.Vec2 // Per-vertex texture coordinates, optional
	Indices  []int       // Face index triples
	Material material.Material

	degenerate int // Number of faces dropped during triangulation
}

// NewMesh creates a mesh from raw vertex/index buffers produced by an
// external loader. The buffers are referenced, not copied. Returns an
// error for structurally malformed input; degenerate (zero-area) faces
// are not an error and are excluded when triangles are generated.
func NewMesh(vertices []core.Vec3, indices []int, normals []core.Vec3, uvs []core.Vec2, mat material.Material) (*Mesh, error) {
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("%w: got %d indices", ErrBadIndexCount, len(indices))
	}
	for _, idx := range indices {
		if idx < 0 || idx >= len(vertices) {
			return nil, fmt.Errorf("%w: index %d with %d vertices", ErrIndexRange, idx, len(vertices))
		}
	}
	if normals != nil && len(normals) != len(vertices) {
		return nil, fmt.Errorf("%w: %d normals for %d vertices", ErrAttrCount, len(normals), len(vertices))
	}
	if uvs != nil && len(uvs) != len(vertices) {
		return nil, fmt.Errorf("%w: %d uvs for %d vertices", ErrAttrCount, len(uvs), len(vertices))
	}

	return &Mesh{
		Vertices: vertices,
		Normals:  normals,
		UVs:      uvs,
		Indices:  indices,
		Material: mat,
	}, nil
}

// FaceCount returns the number of faces in the index buffer, including
// degenerate ones
func (m *Mesh) FaceCount() int {
	return len(m.Indices) / 3
}

// DegenerateCount returns the number of faces excluded by Triangles
func (m *Mesh) DegenerateCount() int {
	return m.degenerate
}

// Triangles generates the mesh's triangle shapes. Faces with zero area
// (duplicate or collinear vertices) are excluded so they can never reach
// the intersection code.
func (m *Mesh) Triangles() []Shape {
	faces := m.FaceCount()
	triangles := make([]Shape, 0, faces)
	m.degenerate = 0

	for face := 0; face < faces; face++ {
		tri := &Triangle{Mesh: m, Face: face}
		if tri.Area() == 0 {
			m.degenerate++
			continue
		}
		triangles = append(triangles, tri)
	}

	return triangles
}

// vertex returns the position of corner c (0..2) of the given face
func (m *Mesh) vertex(face, c int) core.Vec3 {
	return m.Vertices[m.Indices[face*3+c]]
}
