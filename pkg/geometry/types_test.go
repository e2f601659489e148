package geometry

import (
	"image"
	"testing"
)

func TestPointNear(t *testing.T) {
	tests := []struct {
		name string
		a, b PointInt
		want bool
	}{
		{"same point", Pt(10, 10), Pt(10, 10), true},
		{"two pixels off", Pt(10, 10), Pt(12, 8), true},
		{"three pixels off on x", Pt(10, 10), Pt(13, 10), false},
		{"three pixels off on y", Pt(10, 10), Pt(10, 7), false},
		{"far away", Pt(0, 0), Pt(100, 100), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Near(tt.b, 3); got != tt.want {
				t.Errorf("Near(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestRectFromCorners(t *testing.T) {
	r := RectFromCorners(Pt(10, 20), Pt(50, 80))
	if r.Width != 40 || r.Height != 60 {
		t.Fatalf("size = %dx%d, want 40x60", r.Width, r.Height)
	}
	if r.Max() != Pt(50, 80) {
		t.Errorf("Max() = %v, want (50,80)", r.Max())
	}
	if r.Center() != Pt(30, 50) {
		t.Errorf("Center() = %v, want (30,50)", r.Center())
	}
}

func TestRectClip(t *testing.T) {
	r := RectInt{X: -5, Y: 10, Width: 30, Height: 100}
	got := r.Clip(image.Rect(0, 0, 20, 50))
	want := RectInt{X: 0, Y: 10, Width: 20, Height: 40}
	if got != want {
		t.Errorf("Clip() = %+v, want %+v", got, want)
	}
	if !(RectInt{X: 100, Y: 100, Width: 5, Height: 5}).Clip(image.Rect(0, 0, 10, 10)).Empty() {
		t.Error("rectangle outside bounds should clip to empty")
	}
}
