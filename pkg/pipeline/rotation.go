package pipeline

import (
	"github.com/chewxy/math32"

	"github.com/taigrr/blockfield/pkg/math3d"
)

// RotationXYZ composes Euler angles (radians) into a rotation matrix.
// The result equals Rx(rot.X) · Ry(rot.Y) · Rz(rot.Z): applied to a column
// vector, Z acts first and X last. A zero rotation gives the exact identity.
func RotationXYZ(rot math3d.Vec3) math3d.Mat3 {
	c1, s1 := math32.Cos(rot.X), math32.Sin(rot.X)
	c2, s2 := math32.Cos(rot.Y), math32.Sin(rot.Y)
	c3, s3 := math32.Cos(rot.Z), math32.Sin(rot.Z)

	return math3d.Mat3{
		c2 * c3, c1*s3 + s1*s2*c3, s1*s3 - c1*s2*c3,
		-c2 * s3, c1*c3 - s1*s2*s3, s1*c3 + c1*s2*s3,
		s2, -s1 * c2, c1 * c2,
	}
}

// RotationMatrix is RotationXYZ embedded in a homogeneous matrix.
func RotationMatrix(rot math3d.Vec3) math3d.Mat4 {
	return RotationXYZ(rot).Mat4()
}
