package pipeline

import "github.com/taigrr/blockfield/pkg/math3d"

// AnglesTransform builds an object transform from Euler angles and a uniform
// scale. Every cell of the rotation block is scaled; a zero scale collapses
// the instance to a point at t.
func AnglesTransform(t, rot math3d.Vec3, scale float32) math3d.Mat4 {
	m := RotationXYZ(rot).Scale(scale).Mat4()
	m.SetTranslation(t)
	return m
}

// PrecomputedTransform returns m with its translation column replaced by t
// and its w set to 1. The rotation-scale block and the bottom row are used
// as supplied.
func PrecomputedTransform(m math3d.Mat4, t math3d.Vec3) math3d.Mat4 {
	m.SetTranslation(t)
	m[15] = 1
	return m
}
