package world

import "github.com/taigrr/blockfield/pkg/math3d"

// Background is a color that bounces each channel between 0 and 1.
type Background struct {
	RGB  math3d.Vec3
	step math3d.Vec3 // signed per-second rate
}

// NewBackground starts at pure red with every channel rising.
func NewBackground() Background {
	return Background{RGB: math3d.V3(1, 0, 0), step: backgroundRate}
}

// Color returns the opaque background color.
func (b Background) Color() math3d.Vec4 {
	return math3d.V4FromV3(b.RGB, 1)
}

// Update moves every channel by its rate times dt. A channel that leaves
// [0, 1] is clamped back and its direction flips.
func (b *Background) Update(dt float32) {
	b.RGB.X, b.step.X = bounce(b.RGB.X+b.step.X*dt, b.step.X)
	b.RGB.Y, b.step.Y = bounce(b.RGB.Y+b.step.Y*dt, b.step.Y)
	b.RGB.Z, b.step.Z = bounce(b.RGB.Z+b.step.Z*dt, b.step.Z)
}

func bounce(v, step float32) (float32, float32) {
	switch {
	case v > 1:
		return 1, -step
	case v < 0:
		return 0, -step
	default:
		return v, step
	}
}
