// Package geometry provides the integer point and rectangle types shared by
// the annotation, rendering, and UI packages.
package geometry

import (
	"image"
)

// PointInt represents a 2D point with integer coordinates.
type PointInt struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Pt is shorthand for PointInt{X: x, Y: y}.
func Pt(x, y int) PointInt {
	return PointInt{X: x, Y: y}
}

// Near reports whether other lies strictly within dist pixels of p on both axes.
func (p PointInt) Near(other PointInt, dist int) bool {
	return abs(p.X-other.X) < dist && abs(p.Y-other.Y) < dist
}

// ImagePoint converts to an image.Point.
func (p PointInt) ImagePoint() image.Point {
	return image.Point{X: p.X, Y: p.Y}
}

// RectInt represents a rectangle with integer coordinates.
type RectInt struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// RectFromCorners builds the rectangle spanned by a top-left and a
// bottom-right corner.
func RectFromCorners(min, max PointInt) RectInt {
	return RectInt{X: min.X, Y: min.Y, Width: max.X - min.X, Height: max.Y - min.Y}
}

// Min returns the top-left corner.
func (r RectInt) Min() PointInt {
	return PointInt{X: r.X, Y: r.Y}
}

// Max returns the bottom-right corner.
func (r RectInt) Max() PointInt {
	return PointInt{X: r.X + r.Width, Y: r.Y + r.Height}
}

// Center returns the center point, truncated toward the top-left.
func (r RectInt) Center() PointInt {
	return PointInt{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Empty reports whether the rectangle has no area.
func (r RectInt) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// ImageRect converts to an image.Rectangle.
func (r RectInt) ImageRect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Clip returns the part of r that lies inside bounds.
func (r RectInt) Clip(bounds image.Rectangle) RectInt {
	ir := r.ImageRect().Intersect(bounds)
	return RectInt{X: ir.Min.X, Y: ir.Min.Y, Width: ir.Dx(), Height: ir.Dy()}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
