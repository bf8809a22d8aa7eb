package render

import (
	"github.com/chewxy/math32"

	"github.com/taigrr/blockfield/pkg/math3d"
	"github.com/taigrr/blockfield/pkg/pipeline"
)

const (
	minFOV   = 1   // degrees
	maxFOV   = 179 // degrees
	maxPitch = 89 * math32.Pi / 180
)

// Camera is a left-handed free-look camera with a reversed-depth projection.
// At zero yaw and pitch it looks down +Z with +Y up.
type Camera struct {
	// Position in world space
	Position math3d.Vec3

	// Orientation in radians, set through SetRotation, Rotate or LookAt.
	// The camera axes are RotationXYZ(pitch, yaw, 0). Pitch stays within ±89°.
	Yaw   float32
	Pitch float32

	// Projection parameters
	FOV         float32 // Vertical field of view in degrees, within [1, 179]
	AspectRatio float32 // Width / Height
	Near        float32 // Near clipping plane (depth 1)
	Far         float32 // Far clipping plane (depth 0)

	// Cached matrices (computed on demand)
	axes       math3d.Mat3
	viewMatrix math3d.Mat4
	projMatrix math3d.Mat4
	viewDirty  bool
	projDirty  bool
}

// NewCamera creates a camera at position looking down +Z. fov is in degrees.
func NewCamera(fov, aspect, near, far float32, position math3d.Vec3) *Camera {
	return &Camera{
		Position:    position,
		FOV:         clampFOV(fov),
		AspectRatio: aspect,
		Near:        near,
		Far:         far,
		axes:        math3d.Identity3(),
		viewDirty:   true,
		projDirty:   true,
	}
}

func clampFOV(fov float32) float32 {
	return math32.Min(math32.Max(fov, minFOV), maxFOV)
}

// SetPosition sets the camera position.
func (c *Camera) SetPosition(pos math3d.Vec3) {
	c.Position = pos
	c.viewDirty = true
}

// SetRotation sets yaw and pitch (radians). Pitch is clamped.
func (c *Camera) SetRotation(yaw, pitch float32) {
	c.Yaw = yaw
	c.Pitch = math32.Min(math32.Max(pitch, -maxPitch), maxPitch)
	c.axes = pipeline.RotationXYZ(math3d.V3(c.Pitch, c.Yaw, 0))
	c.viewDirty = true
}

// Rotate turns the camera by the given angles (radians).
func (c *Camera) Rotate(deltaYaw, deltaPitch float32) {
	c.SetRotation(c.Yaw+deltaYaw, c.Pitch+deltaPitch)
}

// LookAt points the camera at target.
func (c *Camera) LookAt(target math3d.Vec3) {
	dir := target.Sub(c.Position).Normalize()
	if dir == math3d.Zero3() {
		return
	}
	// Forward is (sin yaw, -sin pitch cos yaw, cos pitch cos yaw). Targets
	// behind the XY plane take the cos yaw < 0 branch so pitch stays in range.
	cy := math32.Sqrt(math32.Max(0, 1-dir.X*dir.X))
	if dir.Z < 0 {
		cy = -cy
	}
	yaw := math32.Atan2(dir.X, cy)
	pitch := math32.Atan2(-dir.Y*math32.Copysign(1, cy), dir.Z*math32.Copysign(1, cy))
	c.SetRotation(yaw, pitch)
}

// Move translates the camera along its own axes: X right, Y up, Z forward.
func (c *Camera) Move(direction math3d.Vec3) {
	c.Position = c.Position.Add(c.axes.MulVec3(direction))
	c.viewDirty = true
}

// SetFOV sets the vertical field of view in degrees.
func (c *Camera) SetFOV(fov float32) {
	c.FOV = clampFOV(fov)
	c.projDirty = true
}

// Zoom widens (positive delta) or narrows the field of view by delta degrees.
func (c *Camera) Zoom(delta float32) {
	fov := clampFOV(c.FOV + delta)
	if fov != c.FOV {
		c.FOV = fov
		c.projDirty = true
	}
}

// SetAspectRatio sets the aspect ratio.
func (c *Camera) SetAspectRatio(aspect float32) {
	if aspect != c.AspectRatio {
		c.AspectRatio = aspect
		c.projDirty = true
	}
}

// Forward returns the viewing direction.
func (c *Camera) Forward() math3d.Vec3 {
	return c.axes.Col(2)
}

// Right returns the right direction vector.
func (c *Camera) Right() math3d.Vec3 {
	return c.axes.Col(0)
}

// Up returns the up direction vector.
func (c *Camera) Up() math3d.Vec3 {
	return c.axes.Col(1)
}

// ViewMatrix returns the view matrix.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	if c.viewDirty {
		c.viewMatrix = math3d.LookToLH(c.Position, c.Forward(), c.Up())
		c.viewDirty = false
	}
	return c.viewMatrix
}

// ProjectionMatrix returns the reversed-depth projection matrix.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	if c.projDirty {
		c.projMatrix = math3d.PerspectiveReversed(c.FOV*math32.Pi/180, c.AspectRatio, c.Near, c.Far)
		c.projDirty = false
	}
	return c.projMatrix
}

// ViewProjectionMatrix returns the combined view-projection matrix.
func (c *Camera) ViewProjectionMatrix() math3d.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}

// Globals returns frame globals carrying this camera's matrices.
func (c *Camera) Globals(display [2]uint32) pipeline.FrameGlobals {
	return pipeline.FrameGlobals{
		Perspective: c.ProjectionMatrix(),
		View:        c.ViewMatrix(),
		DisplaySize: display,
		Selected:    pipeline.NoMarker,
		Selected2:   pipeline.NoMarker,
	}
}
