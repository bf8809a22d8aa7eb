package main

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/blockfield/pkg/math3d"
	"github.com/taigrr/blockfield/pkg/render"
)

const (
	maxOrbitPitch = 89 * math.Pi / 180
	minDistance   = 2
	maxDistance   = 200
)

// SpringValue eases Value towards Target with a harmonica spring.
type SpringValue struct {
	Value  float64
	Target float64
	vel    float64
	spring harmonica.Spring
}

// NewSpringValue creates a critically damped value resting at v.
func NewSpringValue(fps int, v float64) SpringValue {
	return SpringValue{
		Value:  v,
		Target: v,
		// Frequency 6.0 = quick follow, damping 1.0 = critically damped (no overshoot)
		spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
	}
}

// Update advances the spring by one frame.
func (s *SpringValue) Update() {
	s.Value, s.vel = s.spring.Update(s.Value, s.vel, s.Target)
}

// Orbit moves a camera around a fixed centre. Yaw, pitch and distance each
// follow their target through a spring.
type Orbit struct {
	Center   math3d.Vec3
	Yaw      SpringValue
	Pitch    SpringValue
	Distance SpringValue
}

// NewOrbit starts an orbit that reproduces the camera's current view of
// center.
func NewOrbit(fps int, cam *render.Camera, center math3d.Vec3) *Orbit {
	dist := float64(center.Sub(cam.Position).Len())
	if dist < minDistance {
		dist = minDistance
	}
	return &Orbit{
		Center:   center,
		Yaw:      NewSpringValue(fps, float64(cam.Yaw)),
		Pitch:    NewSpringValue(fps, float64(cam.Pitch)),
		Distance: NewSpringValue(fps, dist),
	}
}

// Nudge turns the orbit target. Pitch stays within ±89°.
func (o *Orbit) Nudge(dYaw, dPitch float64) {
	o.Yaw.Target += dYaw
	o.Pitch.Target = math.Max(-maxOrbitPitch, math.Min(maxOrbitPitch, o.Pitch.Target+dPitch))
}

// Dolly moves the target distance by delta.
func (o *Orbit) Dolly(delta float64) {
	o.Distance.Target = math.Max(minDistance, math.Min(maxDistance, o.Distance.Target+delta))
}

// Update advances every spring by one frame.
func (o *Orbit) Update() {
	o.Yaw.Update()
	o.Pitch.Update()
	o.Distance.Update()
}

// Apply points cam at the centre from the current orbit position.
func (o *Orbit) Apply(cam *render.Camera) {
	cam.SetRotation(float32(o.Yaw.Value), float32(o.Pitch.Value))
	cam.SetPosition(o.Center.Sub(cam.Forward().Scale(float32(o.Distance.Value))))
}
