package pipeline

import (
	"testing"

	"github.com/taigrr/blockfield/pkg/math3d"
)

func translationOf(m math3d.Mat4) math3d.Vec3 {
	return math3d.V3(m[12], m[13], m[14])
}

func TestAnglesTransform(t *testing.T) {
	tr := math3d.V3(3, -4, 12)

	t.Run("translation column", func(t *testing.T) {
		m := AnglesTransform(tr, math3d.Zero3(), 1)
		want := math3d.Translate(tr)
		if m != want {
			t.Errorf("got %v, want %v", m, want)
		}
	})

	t.Run("scaled rotation block", func(t *testing.T) {
		rot := math3d.V3(0.3, 0.6, 0.9)
		m := AnglesTransform(tr, rot, 2)
		r := RotationXYZ(rot)
		block := m.Mat3()

		for i := range block {
			if !approx(block[i], 2*r[i]) {
				t.Errorf("element %d: got %f, want %f", i, block[i], 2*r[i])
			}
		}
		if translationOf(m) != tr || m.Row(3) != math3d.V4(0, 0, 0, 1) {
			t.Errorf("unexpected last column or row: %v", m)
		}
	})

	t.Run("zero scale collapses", func(t *testing.T) {
		m := AnglesTransform(tr, math3d.V3(1, 2, 3), 0)
		for _, p := range []math3d.Vec3{math3d.V3(0.5, 0.5, 0.5), math3d.V3(-0.5, 0.5, -0.5)} {
			if got := m.MulVec3(p); got != tr {
				t.Errorf("point %v maps to %v, want %v", p, got, tr)
			}
		}
	})
}

func TestPrecomputedTransform(t *testing.T) {
	src := math3d.RotateY(0.7).Mul(math3d.Scale(math3d.V3(2, 3, 4)))
	src.SetTranslation(math3d.V3(99, 99, 99))
	src[15] = 7
	src[3] = 0.25

	tr := math3d.V3(1, 2, 3)
	m := PrecomputedTransform(src, tr)

	if m.Mat3() != src.Mat3() {
		t.Errorf("3x3 block changed: got %v, want %v", m.Mat3(), src.Mat3())
	}
	if got := translationOf(m); got != tr {
		t.Errorf("translation = %v, want %v", got, tr)
	}
	if m[15] != 1 {
		t.Errorf("w = %f, want 1", m[15])
	}
	if m[3] != 0.25 {
		t.Errorf("bottom row was rewritten: %f", m[3])
	}
}

func TestObjectTransformDispatch(t *testing.T) {
	inst := Instance{
		Translation: math3d.V3(1, 1, 1),
		Rotation:    math3d.V3(0, 0, 1),
		Scale:       3,
		Matrix:      math3d.Scale(math3d.V3(5, 5, 5)),
	}

	angles, err := New(Config{Orientation: OrientationAngles})
	if err != nil {
		t.Fatal(err)
	}
	matrix, err := New(Config{Orientation: OrientationMatrix})
	if err != nil {
		t.Fatal(err)
	}

	if got, want := angles.ObjectTransform(inst), AnglesTransform(inst.Translation, inst.Rotation, inst.Scale); got != want {
		t.Errorf("angles mode: got %v, want %v", got, want)
	}
	if got, want := matrix.ObjectTransform(inst), PrecomputedTransform(inst.Matrix, inst.Translation); got != want {
		t.Errorf("matrix mode: got %v, want %v", got, want)
	}
}
