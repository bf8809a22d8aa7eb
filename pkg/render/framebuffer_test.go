package render

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/chewxy/math32"

	"github.com/taigrr/blockfield/pkg/math3d"
)

type Color = color.RGBA

func RGB(r, g, b uint8) Color {
	return Color{r, g, b, 255}
}

func RGBA(r, g, b, a uint8) Color {
	return Color{r, g, b, a}
}

func TestToRGBA(t *testing.T) {
	tests := []struct {
		name string
		in   math3d.Vec4
		want color.RGBA
	}{
		{"opaque white", math3d.V4(1, 1, 1, 1), color.RGBA{255, 255, 255, 255}},
		{"half", math3d.V4(0.5, 0.5, 0.5, 0.5), color.RGBA{128, 128, 128, 128}},
		{"lit above one", math3d.V4(1.2, 0.6, 0, 1), color.RGBA{255, 153, 0, 255}},
		{"negative", math3d.V4(-0.5, 0, 0, 1), color.RGBA{0, 0, 0, 255}},
		{"nan", math3d.V4(math32.NaN(), 1, 1, 1), color.RGBA{0, 255, 255, 255}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ToRGBA(tc.in); got != tc.want {
				t.Errorf("ToRGBA(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestFramebufferPixels(t *testing.T) {
	fb := NewFramebuffer(4, 3)
	fb.Clear(RGB(1, 2, 3))

	for i, p := range fb.Pixels {
		if p != RGB(1, 2, 3) {
			t.Fatalf("pixel %d = %v after Clear", i, p)
		}
	}

	fb.SetPixel(3, 2, RGBA(9, 8, 7, 6))
	if got := fb.GetPixel(3, 2); got != RGBA(9, 8, 7, 6) {
		t.Errorf("GetPixel(3, 2) = %v", got)
	}

	// Out of bounds writes are ignored and reads are transparent.
	fb.SetPixel(4, 0, RGB(255, 255, 255))
	fb.SetPixel(-1, 0, RGB(255, 255, 255))
	if got := fb.GetPixel(4, 0); got != (color.RGBA{}) {
		t.Errorf("GetPixel out of bounds = %v", got)
	}
	if got := fb.GetPixel(0, 1); got != RGB(1, 2, 3) {
		t.Errorf("out of bounds write wrapped to (0, 1): %v", got)
	}

	fb.Resize(8, 2)
	if len(fb.Pixels) != 16 || fb.Width != 8 || fb.Height != 2 {
		t.Errorf("Resize gave %dx%d with %d pixels", fb.Width, fb.Height, len(fb.Pixels))
	}
}

func TestSavePNG(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	fb.Clear(RGB(0, 0, 0))
	fb.SetPixel(1, 0, RGBA(10, 20, 30, 128))
	fb.SetPixel(2, 1, RGB(255, 0, 0))

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := fb.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Fatalf("bounds = %v", b)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			want := fb.GetPixel(x, y)
			got := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if got != (color.NRGBA{want.R, want.G, want.B, want.A}) {
				t.Errorf("pixel (%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestSavePNGInvalidPath(t *testing.T) {
	fb := NewFramebuffer(1, 1)
	if err := fb.SavePNG(filepath.Join(t.TempDir(), "missing", "frame.png")); err == nil {
		t.Error("expected error for a missing directory")
	}
}

func TestRGBAToColor(t *testing.T) {
	if c := rgbaToColor(RGBA(1, 2, 3, 0)); c != nil {
		t.Errorf("transparent pixel = %v, want nil", c)
	}
	if c := rgbaToColor(RGBA(1, 2, 3, 100)); c != RGB(1, 2, 3) {
		t.Errorf("translucent pixel = %v, want opaque", c)
	}
}

func BenchmarkToRGBA(b *testing.B) {
	c := math3d.V4(0.3, 0.6, 1.1, 1)
	for b.Loop() {
		_ = ToRGBA(c)
	}
}
