package render

import (
	"image"
	"testing"

	"plan-annotator/internal/annotate"
	"plan-annotator/pkg/geometry"
)

func whiteImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	return img
}

func rgbAt(img image.Image, x, y int) (uint8, uint8, uint8) {
	r, g, b, _ := img.At(x, y).RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)
}

func TestFrameKeepsSize(t *testing.T) {
	out, err := Frame(whiteImage(400, 300), Scene{Selected: -1}, DefaultStyle())
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if b := out.Bounds(); b.Dx() != 400 || b.Dy() != 300 {
		t.Errorf("size = %v", b)
	}
}

func TestFrameDrawsGrid(t *testing.T) {
	style := DefaultStyle()
	out, err := Frame(whiteImage(400, 400), Scene{Selected: -1}, style)
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	// 400 / 40 = 10 pixel cells: column 10 is a grid line, column 15 is not.
	if r, g, b := rgbAt(out, 10, 15); r != style.GridColor.R || g != style.GridColor.G || b != style.GridColor.B {
		t.Errorf("grid pixel = (%d,%d,%d), want %v", r, g, b, style.GridColor)
	}
	if r, g, b := rgbAt(out, 15, 15); r != 255 || g != 255 || b != 255 {
		t.Errorf("cell interior = (%d,%d,%d), want white", r, g, b)
	}
}

func TestFrameDrawsPointsAndRooms(t *testing.T) {
	style := DefaultStyle()
	style.GridCells = 0
	scene := Scene{
		Points: []annotate.Point{
			{Pixel: geometry.Pt(50, 50)},
			{Pixel: geometry.Pt(150, 50)},
		},
		Rectangles: []annotate.Rectangle{
			{Min: geometry.Pt(200, 200), Max: geometry.Pt(300, 280), Room: 1},
		},
		Selected: -1,
	}

	out, err := Frame(whiteImage(400, 400), scene, style)
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}

	// Connector midway between the two points.
	if r, g, b := rgbAt(out, 100, 50); r != 0 || g != 255 || b != 0 {
		t.Errorf("connector pixel = (%d,%d,%d), want green", r, g, b)
	}
	// Left edge of the room.
	if r, g, b := rgbAt(out, 200, 240); r != 0 || g != 0 || b != 255 {
		t.Errorf("room edge pixel = (%d,%d,%d), want blue", r, g, b)
	}
}

func TestFrameNilBackdrop(t *testing.T) {
	if _, err := Frame(nil, Scene{}, DefaultStyle()); err == nil {
		t.Error("Frame(nil) succeeded")
	}
}
