package pipeline

import (
	"github.com/chewxy/math32"

	"github.com/taigrr/blockfield/pkg/math3d"
)

// AmbientTerm is added to the diffuse intensity before it scales the color.
const AmbientTerm float32 = 0.2

// LightDirection is the unit vector towards the light, normalize(1, 3, -2).
var LightDirection = math3d.V3(1, 3, -2).Normalize()

// Lighting is a single directional light plus an additive ambient term.
type Lighting struct {
	Direction math3d.Vec3
	Ambient   float32
}

// DefaultLighting returns the fixed scene light.
func DefaultLighting() Lighting {
	return Lighting{Direction: LightDirection, Ambient: AmbientTerm}
}

// WorldNormal transforms an object-space normal by the upper 3x3 of m and
// normalizes the result. Non-uniform scale is not corrected for.
func WorldNormal(m math3d.Mat4, n math3d.Vec3) math3d.Vec3 {
	return m.Mat3().MulVec3(n).Normalize()
}

// Intensity is the clamped diffuse term for an interpolated normal.
func (l Lighting) Intensity(n math3d.Vec3) float32 {
	return math32.Max(n.Normalize().Dot(l.Direction), 0)
}

// Shade scales the color's rgb by diffuse plus ambient. Alpha is kept and
// nothing is clamped, so a surface facing the light comes out at 1.2x.
func (l Lighting) Shade(c math3d.Vec4, n math3d.Vec3) math3d.Vec4 {
	k := l.Intensity(n) + l.Ambient
	return math3d.Vec4{X: c.X * k, Y: c.Y * k, Z: c.Z * k, W: c.W}
}
