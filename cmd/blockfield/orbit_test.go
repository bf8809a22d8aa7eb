package main

import (
	"math"
	"testing"

	"github.com/chewxy/math32"

	"github.com/taigrr/blockfield/pkg/math3d"
	"github.com/taigrr/blockfield/pkg/render"
)

func near(a, b math3d.Vec3, eps float32) bool {
	return math32.Abs(a.X-b.X) < eps && math32.Abs(a.Y-b.Y) < eps && math32.Abs(a.Z-b.Z) < eps
}

func TestOrbitKeepsInitialView(t *testing.T) {
	cam := render.NewCamera(60, 1, 0.1, 100, math3d.V3(0, 0, -10))
	o := NewOrbit(60, cam, math3d.Zero3())

	o.Update()
	o.Apply(cam)
	if !near(cam.Position, math3d.V3(0, 0, -10), 1e-4) {
		t.Errorf("Position = %v", cam.Position)
	}
}

func TestOrbitConverges(t *testing.T) {
	cam := render.NewCamera(60, 1, 0.1, 100, math3d.V3(0, 0, -10))
	o := NewOrbit(60, cam, math3d.Zero3())

	o.Nudge(math.Pi/2, 0)
	for range 600 {
		o.Update()
	}
	o.Apply(cam)

	if !near(cam.Forward(), math3d.V3(1, 0, 0), 1e-3) {
		t.Errorf("Forward = %v, want +X", cam.Forward())
	}
	if !near(cam.Position, math3d.V3(-10, 0, 0), 1e-2) {
		t.Errorf("Position = %v, want (-10, 0, 0)", cam.Position)
	}
}

func TestOrbitLimits(t *testing.T) {
	cam := render.NewCamera(60, 1, 0.1, 100, math3d.V3(0, 0, -10))
	o := NewOrbit(60, cam, math3d.Zero3())

	o.Nudge(0, 10)
	if o.Pitch.Target != maxOrbitPitch {
		t.Errorf("pitch target = %v, want %v", o.Pitch.Target, maxOrbitPitch)
	}
	o.Dolly(-100)
	if o.Distance.Target != minDistance {
		t.Errorf("distance target = %v, want %v", o.Distance.Target, float64(minDistance))
	}
	o.Dolly(1000)
	if o.Distance.Target != maxDistance {
		t.Errorf("distance target = %v, want %v", o.Distance.Target, float64(maxDistance))
	}
}
