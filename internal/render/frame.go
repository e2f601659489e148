// Package render draws the annotation frame: backdrop, grid, point path and
// rooms.
package render

import (
	"fmt"
	"image"
	"image/color"
	"strconv"

	"plan-annotator/internal/annotate"
	"plan-annotator/pkg/colorutil"
	"plan-annotator/pkg/geometry"

	"gocv.io/x/gocv"
)

// DefaultGridCells is the number of grid cells along each axis.
const DefaultGridCells = 40

// Scene is everything drawn on top of the backdrop.
type Scene struct {
	Points     []annotate.Point
	Rectangles []annotate.Rectangle
	Pending    []geometry.PointInt // Buffered rectangle corners
	Selected   int                 // Index of the selected point, -1 for none
}

// Style controls the appearance of the frame.
type Style struct {
	GridCells      int
	GridColor      color.RGBA
	PointColor     color.RGBA
	LabelColor     color.RGBA
	RectColor      color.RGBA
	SelectionColor color.RGBA
	PendingColor   color.RGBA
	PointRadius    int
	LineThickness  int
	FontScale      float64
}

// DefaultStyle returns the standard annotation style.
func DefaultStyle() Style {
	return Style{
		GridCells:      DefaultGridCells,
		GridColor:      colorutil.Teal,
		PointColor:     colorutil.Green,
		LabelColor:     colorutil.White,
		RectColor:      colorutil.Blue,
		SelectionColor: colorutil.Yellow,
		PendingColor:   colorutil.Magenta,
		PointRadius:    4,
		LineThickness:  2,
		FontScale:      0.5,
	}
}

const font = gocv.FontHersheySimplex

// Frame renders scene over backdrop and returns the composed image.
func Frame(backdrop image.Image, scene Scene, style Style) (image.Image, error) {
	if backdrop == nil {
		return nil, fmt.Errorf("nil backdrop")
	}

	mat, err := gocv.ImageToMatRGB(backdrop)
	if err != nil {
		return nil, fmt.Errorf("failed to convert backdrop: %w", err)
	}
	defer mat.Close()

	drawGrid(&mat, style)
	drawPath(&mat, scene, style)
	drawRooms(&mat, scene.Rectangles, style)
	drawPending(&mat, scene.Pending, style)

	out, err := mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("failed to convert frame: %w", err)
	}
	return out, nil
}

// drawGrid draws GridCells x GridCells cells spanning the whole image.
func drawGrid(mat *gocv.Mat, style Style) {
	cells := style.GridCells
	if cells <= 0 {
		return
	}
	width, height := mat.Cols(), mat.Rows()
	cellW := float64(width) / float64(cells)
	cellH := float64(height) / float64(cells)

	for i := 0; i <= cells; i++ {
		x := int(float64(i) * cellW)
		gocv.Line(mat, image.Pt(x, 0), image.Pt(x, height), style.GridColor, 1)
	}
	for i := 0; i <= cells; i++ {
		y := int(float64(i) * cellH)
		gocv.Line(mat, image.Pt(0, y), image.Pt(width, y), style.GridColor, 1)
	}
}

// drawPath draws connectors between consecutive points, then the numbered
// markers on top.
func drawPath(mat *gocv.Mat, scene Scene, style Style) {
	for i := 1; i < len(scene.Points); i++ {
		gocv.Line(mat, scene.Points[i-1].Pixel.ImagePoint(), scene.Points[i].Pixel.ImagePoint(),
			style.PointColor, style.LineThickness)
	}

	for i, p := range scene.Points {
		center := p.Pixel.ImagePoint()
		if i == scene.Selected {
			gocv.Circle(mat, center, style.PointRadius+3, style.SelectionColor, style.LineThickness)
		}
		gocv.Circle(mat, center, style.PointRadius, style.PointColor, -1)
		gocv.PutText(mat, strconv.Itoa(i+1), center, font, style.FontScale, style.LabelColor, style.LineThickness)
	}
}

// drawRooms outlines each rectangle and centers its room label inside it.
func drawRooms(mat *gocv.Mat, rects []annotate.Rectangle, style Style) {
	for _, r := range rects {
		gocv.Rectangle(mat, r.Bounds().ImageRect(), style.RectColor, style.LineThickness)

		label := "Rect " + strconv.Itoa(r.Room)
		size := gocv.GetTextSize(label, font, style.FontScale, style.LineThickness)
		c := r.Bounds().Center()
		origin := image.Pt(c.X-size.X/2, c.Y+size.Y/2)
		gocv.PutText(mat, label, origin, font, style.FontScale, style.RectColor, style.LineThickness)
	}
}

// drawPending marks buffered rectangle corners with a small cross.
func drawPending(mat *gocv.Mat, pending []geometry.PointInt, style Style) {
	const arm = 5
	for _, p := range pending {
		gocv.Line(mat, image.Pt(p.X-arm, p.Y), image.Pt(p.X+arm, p.Y), style.PendingColor, 1)
		gocv.Line(mat, image.Pt(p.X, p.Y-arm), image.Pt(p.X, p.Y+arm), style.PendingColor, 1)
	}
}
