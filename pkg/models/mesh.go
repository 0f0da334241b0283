// Package models describes the geometry glyphcube renders.
package models

import (
	"fmt"

	"github.com/taigrr/glyphcube/pkg/math3d"
)

// Mesh is a quad mesh with explicit edge topology.
//
// Faces are wound counter-clockwise when seen from outside, so the cross
// product of (v1-v0) and (v2-v0) points along the outward normal.
type Mesh struct {
	Name     string
	Vertices []math3d.Vec3
	Edges    [][2]int
	Faces    [][4]int

	// Bounding box (calculated by CalculateBounds)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]math3d.Vec3, 0),
		Edges:    make([][2]int, 0),
		Faces:    make([][4]int, 0),
	}
}

// Cube returns the unit cube centered on the origin with corners at ±1.
func Cube() *Mesh {
	m := &Mesh{
		Name: "cube",
		Vertices: []math3d.Vec3{
			{X: -1, Y: -1, Z: -1}, // 0
			{X: 1, Y: -1, Z: -1},  // 1
			{X: 1, Y: 1, Z: -1},   // 2
			{X: -1, Y: 1, Z: -1},  // 3
			{X: -1, Y: -1, Z: 1},  // 4
			{X: 1, Y: -1, Z: 1},   // 5
			{X: 1, Y: 1, Z: 1},    // 6
			{X: -1, Y: 1, Z: 1},   // 7
		},
		Edges: [][2]int{
			// Back face
			{0, 1}, {1, 2}, {2, 3}, {3, 0},
			// Front face
			{4, 5}, {5, 6}, {6, 7}, {7, 4},
			// Connecting edges
			{0, 4}, {1, 5}, {2, 6}, {3, 7},
		},
		Faces: [][4]int{
			{4, 5, 6, 7}, // front  (z = +1)
			{0, 3, 2, 1}, // back   (z = -1)
			{0, 4, 7, 3}, // left   (x = -1)
			{1, 2, 6, 5}, // right  (x = +1)
			{0, 1, 5, 4}, // bottom (y = -1)
			{3, 7, 6, 2}, // top    (y = +1)
		},
	}
	m.CalculateBounds()
	return m
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}
	m.BoundsMin = m.Vertices[0]
	m.BoundsMax = m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v)
		m.BoundsMax = m.BoundsMax.Max(v)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Lerp(m.BoundsMax, 0.5)
}

// Size returns the extent of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

func (m *Mesh) VertexCount() int { return len(m.Vertices) }
func (m *Mesh) EdgeCount() int { return len(m.Edges) }
func (m *Mesh) FaceCount() int { return len(m.Faces) }
func (m *Mesh) Edge(i int) [2]int { return m.Edges[i] }
func (m *Mesh) Face(i int) [4]int { return m.Faces[i] }
func (m *Mesh) TriangleCount() int { return 2 * len(m.Faces) }

// FaceNormal returns the outward unit normal of face i in object space.
func (m *Mesh) FaceNormal(i int) math3d.Vec3 {
	f := m.Faces[i]
	v0 := m.Vertices[f[0]]
	e1 := m.Vertices[f[1]].Sub(v0)
	e2 := m.Vertices[f[2]].Sub(v0)
	return e1.Cross(e2).Normalize()
}

// Triangles splits every quad along its 0-2 diagonal, keeping the winding.
func (m *Mesh) Triangles() [][3]int {
	tris := make([][3]int, 0, 2*len(m.Faces))
	for _, f := range m.Faces {
		tris = append(tris, [3]int{f[0], f[1], f[2]}, [3]int{f[0], f[2], f[3]})
	}
	return tris
}

// Validate checks that every index refers to an existing vertex.
func (m *Mesh) Validate() error {
	n := len(m.Vertices)
	for i, e := range m.Edges {
		for _, vi := range e {
			if vi < 0 || vi >= n {
				return fmt.Errorf("edge %d: vertex index %d out of range [0,%d)", i, vi, n)
			}
		}
	}
	for i, f := range m.Faces {
		for _, vi := range f {
			if vi < 0 || vi >= n {
				return fmt.Errorf("face %d: vertex index %d out of range [0,%d)", i, vi, n)
			}
		}
	}
	return nil
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Vertices:  make([]math3d.Vec3, len(m.Vertices)),
		Edges:     make([][2]int, len(m.Edges)),
		Faces:     make([][4]int, len(m.Faces)),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Vertices, m.Vertices)
	copy(clone.Edges, m.Edges)
	copy(clone.Faces, m.Faces)
	return clone
}
