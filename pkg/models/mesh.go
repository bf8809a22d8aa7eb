// Package models provides the base geometry that blockfield instances are
// drawn with, plus GLB import and export for it.
package models

import (
	"github.com/taigrr/blockfield/pkg/math3d"
	"github.com/taigrr/blockfield/pkg/pipeline"
)

// Mesh is an indexed triangle mesh of position/normal vertices.
type Mesh struct {
	Name     string
	Vertices []pipeline.Vertex
	Faces    []Face

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// Face represents a triangle face with vertex indices.
type Face struct {
	V [3]int // Indices into Mesh.Vertices
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]pipeline.Vertex, 0),
		Faces:    make([]Face, 0),
	}
}

// NewIndexedMesh builds a mesh from a vertex list and a flat triangle index
// list. Trailing indices that do not form a whole triangle are ignored.
func NewIndexedMesh(name string, vertices []pipeline.Vertex, indices []int) *Mesh {
	m := NewMesh(name)
	m.Vertices = append(m.Vertices, vertices...)
	for i := 0; i+2 < len(indices); i += 3 {
		m.Faces = append(m.Faces, Face{V: [3]int{indices[i], indices[i+1], indices[i+2]}})
	}
	m.CalculateBounds()
	return m
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0].Position
	m.BoundsMax = m.Vertices[0].Position

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Position)
		m.BoundsMax = m.BoundsMax.Max(v.Position)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// Indices flattens the faces into a triangle index list.
func (m *Mesh) Indices() []uint32 {
	out := make([]uint32, 0, len(m.Faces)*3)
	for _, f := range m.Faces {
		out = append(out, uint32(f.V[0]), uint32(f.V[1]), uint32(f.V[2]))
	}
	return out
}

// CalculateNormals assigns each face's normal to its vertices. Cuboids keep
// one set of vertices per face, so flat normals are exact for them.
func (m *Mesh) CalculateNormals() {
	for i := range m.Faces {
		f := &m.Faces[i]
		v0 := m.Vertices[f.V[0]].Position
		v1 := m.Vertices[f.V[1]].Position
		v2 := m.Vertices[f.V[2]].Position

		edge1 := v1.Sub(v0)
		edge2 := v2.Sub(v0)
		normal := edge1.Cross(edge2).Normalize()

		m.Vertices[f.V[0]].Normal = normal
		m.Vertices[f.V[1]].Normal = normal
		m.Vertices[f.V[2]].Normal = normal
	}
}

// GetVertex returns vertex i.
// Implements render.Geometry interface.
func (m *Mesh) GetVertex(i int) pipeline.Vertex {
	return m.Vertices[i]
}

// GetFace returns the vertex indices for face i.
// Implements render.Geometry interface.
func (m *Mesh) GetFace(i int) [3]int {
	return m.Faces[i].V
}

// GetBounds returns the axis-aligned bounding box.
// Implements render.Geometry interface.
func (m *Mesh) GetBounds() (min, max math3d.Vec3) {
	return m.BoundsMin, m.BoundsMax
}
