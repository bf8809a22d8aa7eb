package models

import (
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
)

func TestLoadGLBInvalidPath(t *testing.T) {
	_, err := LoadGLB("/nonexistent/path.glb")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestGLTFLoaderCreation(t *testing.T) {
	loader := NewGLTFLoader()
	if loader == nil {
		t.Error("NewGLTFLoader returned nil")
		return
	}
	if !loader.CalculateNormals {
		t.Error("CalculateNormals should default to true")
	}
}

func TestSaveLoadCube(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cube.glb")
	cube := Cube()

	if err := SaveGLB(path, cube); err != nil {
		t.Fatalf("SaveGLB: %v", err)
	}

	got, err := LoadGLB(path)
	if err != nil {
		t.Fatalf("LoadGLB: %v", err)
	}

	if got.VertexCount() != cube.VertexCount() || got.TriangleCount() != cube.TriangleCount() {
		t.Fatalf("got %d vertices / %d triangles, want %d / %d",
			got.VertexCount(), got.TriangleCount(), cube.VertexCount(), cube.TriangleCount())
	}
	for i := range cube.Vertices {
		if got.GetVertex(i) != cube.GetVertex(i) {
			t.Errorf("vertex %d: got %+v, want %+v", i, got.GetVertex(i), cube.GetVertex(i))
		}
	}
	for i := range cube.Faces {
		if got.GetFace(i) != cube.GetFace(i) {
			t.Errorf("face %d: got %v, want %v", i, got.GetFace(i), cube.GetFace(i))
		}
	}
	if got.Size() != cube.Size() {
		t.Errorf("bounds size = %v, want %v", got.Size(), cube.Size())
	}
}

func TestReadAccessorVec3ComponentType(t *testing.T) {
	tests := []struct {
		name      string
		component gltf.ComponentType
		wantErr   bool
	}{
		{"float", gltf.ComponentFloat, false},
		{"ushort", gltf.ComponentUshort, true},
		{"byte", gltf.ComponentByte, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &gltf.Document{
				Buffers:     []*gltf.Buffer{{ByteLength: 12, Data: make([]byte, 12)}},
				BufferViews: []*gltf.BufferView{{Buffer: 0, ByteLength: 12}},
			}
			accessor := &gltf.Accessor{
				BufferView:    gltf.Index(0),
				Count:         1,
				Type:          gltf.AccessorVec3,
				ComponentType: tt.component,
			}

			_, err := readAccessorData(doc, accessor)
			if (err != nil) != tt.wantErr {
				t.Errorf("readAccessorData() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
