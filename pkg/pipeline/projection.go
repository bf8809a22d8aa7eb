package pipeline

import "github.com/taigrr/blockfield/pkg/math3d"

// ProjectScreen maps an object-space point to clip space for screen-space
// overlays. The transformed xy is in pixels and is normalized by size to
// [-1, 1]; z is 0 and w is 1. A zero size produces Inf or NaN.
func ProjectScreen(m math3d.Mat4, p math3d.Vec3, size [2]uint32) math3d.Vec4 {
	world := m.MulVec4(math3d.V4FromV3(p, 1))
	return math3d.Vec4{
		X: world.X/float32(size[0])*2 - 1,
		Y: world.Y/float32(size[1])*2 - 1,
		Z: 0,
		W: 1,
	}
}

// ProjectScene maps an object-space point to clip space as
// perspective · view · m · p.
func ProjectScene(perspective, view, m math3d.Mat4, p math3d.Vec3) math3d.Vec4 {
	world := m.MulVec4(math3d.V4FromV3(p, 1))
	return perspective.MulVec4(view.MulVec4(world))
}
