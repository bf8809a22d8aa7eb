package models

import (
	"github.com/taigrr/blockfield/pkg/math3d"
	"github.com/taigrr/blockfield/pkg/pipeline"
)

// Cube returns the unit cube centred on the origin. Each face has its own
// four vertices so normals stay flat, giving 24 vertices and 12 triangles.
// Faces are listed front (-Z), back, right, left, up, bottom, and each is
// split as (0,1,2), (1,2,3) over top-left, top-right, bottom-left,
// bottom-right.
func Cube() *Mesh {
	const h = 0.5

	ftl := math3d.V3(-h, h, -h)
	ftr := math3d.V3(h, h, -h)
	fbl := math3d.V3(-h, -h, -h)
	fbr := math3d.V3(h, -h, -h)
	btl := math3d.V3(-h, h, h)
	btr := math3d.V3(h, h, h)
	bbl := math3d.V3(-h, -h, h)
	bbr := math3d.V3(h, -h, h)

	faces := []struct {
		normal  math3d.Vec3
		corners [4]math3d.Vec3
	}{
		{math3d.V3(0, 0, -1), [4]math3d.Vec3{ftl, ftr, fbl, fbr}},
		{math3d.V3(0, 0, 1), [4]math3d.Vec3{btl, btr, bbl, bbr}},
		{math3d.V3(1, 0, 0), [4]math3d.Vec3{ftr, btr, fbr, bbr}},
		{math3d.V3(-1, 0, 0), [4]math3d.Vec3{btl, ftl, bbl, fbl}},
		{math3d.V3(0, 1, 0), [4]math3d.Vec3{btl, btr, ftl, ftr}},
		{math3d.V3(0, -1, 0), [4]math3d.Vec3{bbl, bbr, fbl, fbr}},
	}

	vertices := make([]pipeline.Vertex, 0, 24)
	indices := make([]int, 0, 36)
	for _, f := range faces {
		base := len(vertices)
		for _, p := range f.corners {
			vertices = append(vertices, pipeline.Vertex{Position: p, Normal: f.normal})
		}
		indices = append(indices, base, base+1, base+2, base+1, base+2, base+3)
	}

	return NewIndexedMesh("cube", vertices, indices)
}

// Square returns a unit quad in the z = 0 plane facing +Z, for screen-space
// overlays.
func Square() *Mesh {
	n := math3d.V3(0, 0, 1)
	vertices := []pipeline.Vertex{
		{Position: math3d.V3(-0.5, -0.5, 0), Normal: n},
		{Position: math3d.V3(0.5, -0.5, 0), Normal: n},
		{Position: math3d.V3(-0.5, 0.5, 0), Normal: n},
		{Position: math3d.V3(0.5, 0.5, 0), Normal: n},
	}
	return NewIndexedMesh("square", vertices, []int{0, 1, 2, 1, 2, 3})
}
