// Package pipeline implements the per-instance, per-vertex and per-fragment
// stages that turn a buffer of cuboid instances into shaded colors.
//
// A Pipeline is configured once with an orientation mode, a projection
// variant and optional lighting and selection stages, the same way a GPU
// pipeline state object is. Every stage is a pure function of its inputs and
// the read-only FrameGlobals, evaluated with float32 precision.
package pipeline

import "github.com/taigrr/blockfield/pkg/math3d"

// Orientation selects which per-instance representation of orientation the
// transform builder reads.
type Orientation int

const (
	// OrientationAngles reads Euler angles (radians) and a uniform scale.
	OrientationAngles Orientation = iota
	// OrientationMatrix reads a precomputed rotation-scale matrix.
	OrientationMatrix
)

func (o Orientation) String() string {
	switch o {
	case OrientationAngles:
		return "angles"
	case OrientationMatrix:
		return "matrix"
	default:
		return "unknown"
	}
}

// Projection selects how object-space points reach clip space.
type Projection int

const (
	// ProjectionScene applies perspective · view · model.
	ProjectionScene Projection = iota
	// ProjectionScreen maps pixel coordinates to NDC by the display size.
	ProjectionScreen
)

func (p Projection) String() string {
	switch p {
	case ProjectionScene:
		return "scene"
	case ProjectionScreen:
		return "screen"
	default:
		return "unknown"
	}
}

// Instance is one cuboid's attribute record. Only the fields matching the
// pipeline's Orientation are read; Translation doubles as the selection key.
type Instance struct {
	Translation math3d.Vec3
	Rotation    math3d.Vec3 // Euler XYZ, radians
	Scale       float32
	Matrix      math3d.Mat4
	Color       math3d.Vec4
}

// FrameGlobals is the per-frame block shared by every instance of a draw.
type FrameGlobals struct {
	Perspective math3d.Mat4
	View        math3d.Mat4
	DisplaySize [2]uint32
	// Selected and Selected2 are selection markers. xyz holds the selected
	// translation and w == 1 marks the marker active.
	Selected  math3d.Vec4
	Selected2 math3d.Vec4
}

// NoMarker is an inactive selection marker.
var NoMarker = math3d.Vec4{}

// Marker returns an active selection marker for the instance at t.
func Marker(t math3d.Vec3) math3d.Vec4 {
	return math3d.V4FromV3(t, 1)
}

// Vertex is a base geometry vertex in object space. Normal is unit length.
type Vertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
}

// Varying is what the vertex stage hands to rasterization. Color and Normal
// are interpolated across a primitive; Flags are flat.
type Varying struct {
	Clip   math3d.Vec4
	Color  math3d.Vec4
	Normal math3d.Vec3
	Flags  SelectionFlags
}
