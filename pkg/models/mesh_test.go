package models

import (
	"testing"

	"github.com/taigrr/blockfield/pkg/math3d"
	"github.com/taigrr/blockfield/pkg/pipeline"
)

func TestCube(t *testing.T) {
	c := Cube()

	if c.VertexCount() != 24 {
		t.Errorf("VertexCount = %d, want 24", c.VertexCount())
	}
	if c.TriangleCount() != 12 {
		t.Errorf("TriangleCount = %d, want 12", c.TriangleCount())
	}
	if len(c.Indices()) != 36 {
		t.Errorf("len(Indices) = %d, want 36", len(c.Indices()))
	}

	min, max := c.GetBounds()
	if min != math3d.V3(-0.5, -0.5, -0.5) || max != math3d.V3(0.5, 0.5, 0.5) {
		t.Errorf("bounds = %v..%v, want unit cube", min, max)
	}
	if c.Center() != math3d.Zero3() {
		t.Errorf("Center = %v", c.Center())
	}

	for i, v := range c.Vertices {
		if v.Normal.Len() != 1 {
			t.Errorf("vertex %d normal %v is not unit length", i, v.Normal)
		}
		// Every vertex lies on the face its normal points out of.
		if d := v.Position.Dot(v.Normal); d != 0.5 {
			t.Errorf("vertex %d at %v is not on face %v", i, v.Position, v.Normal)
		}
	}

	// First face is the -Z front in top-left, top-right, bottom-left, bottom-right order.
	if c.GetVertex(0).Position != math3d.V3(-0.5, 0.5, -0.5) || c.GetVertex(3).Position != math3d.V3(0.5, -0.5, -0.5) {
		t.Errorf("unexpected front face layout: %v %v", c.GetVertex(0), c.GetVertex(3))
	}
	if c.GetFace(1) != [3]int{1, 2, 3} || c.GetFace(11) != [3]int{21, 22, 23} {
		t.Errorf("unexpected face indices: %v %v", c.GetFace(1), c.GetFace(11))
	}
}

func TestSquare(t *testing.T) {
	s := Square()

	if s.VertexCount() != 4 || s.TriangleCount() != 2 {
		t.Fatalf("got %d vertices / %d triangles, want 4 / 2", s.VertexCount(), s.TriangleCount())
	}
	if s.Size() != math3d.V3(1, 1, 0) {
		t.Errorf("Size = %v, want (1, 1, 0)", s.Size())
	}
	for _, v := range s.Vertices {
		if v.Normal != math3d.V3(0, 0, 1) {
			t.Errorf("normal = %v, want +Z", v.Normal)
		}
	}
}

func TestCalculateNormals(t *testing.T) {
	m := NewIndexedMesh("tri", []pipeline.Vertex{
		{Position: math3d.V3(0, 0, 0)},
		{Position: math3d.V3(1, 0, 0)},
		{Position: math3d.V3(0, 1, 0)},
	}, []int{0, 1, 2})

	m.CalculateNormals()

	for i, v := range m.Vertices {
		if v.Normal != math3d.V3(0, 0, 1) {
			t.Errorf("vertex %d normal = %v, want (0, 0, 1)", i, v.Normal)
		}
	}
}

func TestNewIndexedMeshIgnoresPartialTriangle(t *testing.T) {
	m := NewIndexedMesh("partial", Cube().Vertices, []int{0, 1, 2, 3, 4})
	if m.TriangleCount() != 1 {
		t.Errorf("TriangleCount = %d, want 1", m.TriangleCount())
	}
}
