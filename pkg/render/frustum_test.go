package render

import (
	"math"
	"testing"

	"github.com/taigrr/blockfield/pkg/math3d"
)

func TestPlaneDistanceToPoint(t *testing.T) {
	// Plane at Z=0, normal pointing +Z
	plane := Plane{Normal: math3d.V3(0, 0, 1), D: 0}

	tests := []struct {
		name     string
		point    math3d.Vec3
		expected float32
	}{
		{"origin", math3d.V3(0, 0, 0), 0},
		{"in front", math3d.V3(0, 0, 5), 5},
		{"behind", math3d.V3(0, 0, -3), -3},
		{"offset XY", math3d.V3(10, -5, 2), 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dist := plane.DistanceToPoint(tc.point)
			if math.Abs(float64(dist-tc.expected)) > 1e-6 {
				t.Errorf("got %v, want %v", dist, tc.expected)
			}
		})
	}
}

func TestPlaneNormalize(t *testing.T) {
	plane := Plane{Normal: math3d.V3(0, 3, 4), D: 10}
	plane.Normalize()

	// Normal should have length 1
	length := plane.Normal.Len()
	if math.Abs(float64(length-1)) > 1e-6 {
		t.Errorf("normalized normal length = %v, want 1.0", length)
	}

	// Check components (3/5, 4/5)
	if math.Abs(float64(plane.Normal.Y-0.6)) > 1e-6 {
		t.Errorf("normal.Y = %v, want 0.6", plane.Normal.Y)
	}
	if math.Abs(float64(plane.Normal.Z-0.8)) > 1e-6 {
		t.Errorf("normal.Z = %v, want 0.8", plane.Normal.Z)
	}

	// D should be scaled too (10/5 = 2)
	if math.Abs(float64(plane.D-2)) > 1e-6 {
		t.Errorf("D = %v, want 2.0", plane.D)
	}
}

func TestAABBBasics(t *testing.T) {
	box := NewAABB(math3d.V3(-1, -2, -3), math3d.V3(1, 2, 3))

	center := box.Center()
	if center.X != 0 || center.Y != 0 || center.Z != 0 {
		t.Errorf("center = %v, want (0, 0, 0)", center)
	}

	size := box.Size()
	if size.X != 2 || size.Y != 4 || size.Z != 6 {
		t.Errorf("size = %v, want (2, 4, 6)", size)
	}
}

func TestAABBContainsPoint(t *testing.T) {
	box := NewAABB(math3d.V3(0, 0, 0), math3d.V3(10, 10, 10))

	tests := []struct {
		name     string
		point    math3d.Vec3
		expected bool
	}{
		{"center", math3d.V3(5, 5, 5), true},
		{"corner min", math3d.V3(0, 0, 0), true},
		{"corner max", math3d.V3(10, 10, 10), true},
		{"edge", math3d.V3(5, 0, 5), true},
		{"outside X", math3d.V3(11, 5, 5), false},
		{"outside Y", math3d.V3(5, -1, 5), false},
		{"outside Z", math3d.V3(5, 5, 15), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := box.ContainsPoint(tc.point)
			if result != tc.expected {
				t.Errorf("ContainsPoint(%v) = %v, want %v", tc.point, result, tc.expected)
			}
		})
	}
}

func TestAABBTransform(t *testing.T) {
	box := NewAABB(math3d.V3(-1, -1, -1), math3d.V3(1, 1, 1))

	// Test translation
	t.Run("translation", func(t *testing.T) {
		trans := math3d.Translate(math3d.V3(10, 20, 30))
		transformed := box.Transform(trans)

		if transformed.Min.X != 9 || transformed.Min.Y != 19 || transformed.Min.Z != 29 {
			t.Errorf("translated min = %v, want (9, 19, 29)", transformed.Min)
		}
		if transformed.Max.X != 11 || transformed.Max.Y != 21 || transformed.Max.Z != 31 {
			t.Errorf("translated max = %v, want (11, 21, 31)", transformed.Max)
		}
	})

	// Test uniform scale
	t.Run("scale", func(t *testing.T) {
		scale := math3d.Scale(math3d.V3(2, 2, 2))
		transformed := box.Transform(scale)

		if transformed.Min.X != -2 || transformed.Min.Y != -2 || transformed.Min.Z != -2 {
			t.Errorf("scaled min = %v, want (-2, -2, -2)", transformed.Min)
		}
		if transformed.Max.X != 2 || transformed.Max.Y != 2 || transformed.Max.Z != 2 {
			t.Errorf("scaled max = %v, want (2, 2, 2)", transformed.Max)
		}
	})
}

func perspective(near, far float32) math3d.Mat4 {
	return math3d.PerspectiveReversed(math.Pi/3, 16.0/9.0, near, far)
}

func TestFrustumFromPerspective(t *testing.T) {
	frustum := NewFrustumFromMatrix(perspective(0.1, 100))

	for i, plane := range frustum.Planes {
		length := plane.Normal.Len()
		if math.Abs(float64(length-1)) > 1e-5 {
			t.Errorf("plane %d normal length = %v, want 1.0", i, length)
		}
	}

	// Reversed depth puts the near plane at z = w, facing away from the camera.
	if n := frustum.Planes[FrustumNear].Normal; n.Z <= 0 {
		t.Errorf("near plane normal = %v, want +Z", n)
	}
	if f := frustum.Planes[FrustumFar].Normal; f.Z >= 0 {
		t.Errorf("far plane normal = %v, want -Z", f)
	}
}

func TestFrustumContainsPoint(t *testing.T) {
	// Camera at origin looking down +Z
	frustum := NewFrustumFromMatrix(perspective(0.1, 100))

	tests := []struct {
		name     string
		point    math3d.Vec3
		expected bool
	}{
		{"center near", math3d.V3(0, 0, 1), true},
		{"center mid", math3d.V3(0, 0, 50), true},
		{"center far", math3d.V3(0, 0, 99), true},
		{"behind camera", math3d.V3(0, 0, -1), false},
		{"too far", math3d.V3(0, 0, 200), false},
		{"too close", math3d.V3(0, 0, 0.01), false},
		{"above view", math3d.V3(0, 10, 5), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := frustum.ContainsPoint(tc.point)
			if result != tc.expected {
				t.Errorf("ContainsPoint(%v) = %v, want %v", tc.point, result, tc.expected)
			}
		})
	}
}

func TestFrustumIntersectAABB(t *testing.T) {
	frustum := NewFrustumFromMatrix(perspective(1, 100))

	tests := []struct {
		name     string
		box      AABB
		expected bool
	}{
		{
			"fully inside",
			NewAABB(math3d.V3(-1, -1, 5), math3d.V3(1, 1, 10)),
			true,
		},
		{
			"partially visible",
			NewAABB(math3d.V3(-1, -1, -2), math3d.V3(1, 1, 2)), // Crosses near plane and goes behind
			true,
		},
		{
			"behind camera",
			NewAABB(math3d.V3(-1, -1, -10), math3d.V3(1, 1, -5)),
			false,
		},
		{
			"beyond far plane",
			NewAABB(math3d.V3(-1, -1, 120), math3d.V3(1, 1, 150)),
			false,
		},
		{
			"far to the right",
			NewAABB(math3d.V3(100, -1, 5), math3d.V3(110, 1, 10)),
			false,
		},
		{
			"large box containing frustum",
			NewAABB(math3d.V3(-200, -200, -200), math3d.V3(200, 200, 200)),
			true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := frustum.IntersectAABB(tc.box)
			if result != tc.expected {
				t.Errorf("IntersectAABB(%v) = %v, want %v", tc.box, result, tc.expected)
			}
		})
	}
}

func TestFrustumWithRotatedCamera(t *testing.T) {
	// Camera at origin looking along +X
	view := math3d.LookToLH(math3d.Zero3(), math3d.V3(1, 0, 0), math3d.Up())
	frustum := NewFrustumFromMatrix(perspective(1, 100).Mul(view))

	if !frustum.ContainsPoint(math3d.V3(10, 0, 0)) {
		t.Error("point in front of rotated camera should be visible")
	}
	if frustum.ContainsPoint(math3d.V3(-10, 0, 0)) {
		t.Error("point behind rotated camera should not be visible")
	}
	if frustum.ContainsPoint(math3d.V3(0, 0, 10)) {
		t.Error("point off to the side of rotated camera should not be visible")
	}
}

func BenchmarkFrustumIntersectAABB(b *testing.B) {
	frustum := NewFrustumFromMatrix(perspective(0.1, 1000))
	box := NewAABB(math3d.V3(-1, -1, 5), math3d.V3(1, 1, 10))

	for b.Loop() {
		_ = frustum.IntersectAABB(box)
	}
}

func BenchmarkFrustumExtraction(b *testing.B) {
	view := math3d.LookToLH(math3d.V3(0, 10, -20), math3d.V3(0, -10, 20), math3d.Up())
	viewProj := perspective(0.1, 1000).Mul(view)

	for b.Loop() {
		_ = NewFrustumFromMatrix(viewProj)
	}
}

func BenchmarkAABBTransform(b *testing.B) {
	box := NewAABB(math3d.V3(-1, -1, -1), math3d.V3(1, 1, 1))
	trans := math3d.Translate(math3d.V3(10, 0, 0)).Mul(math3d.RotateY(0.5))

	for b.Loop() {
		_ = box.Transform(trans)
	}
}
