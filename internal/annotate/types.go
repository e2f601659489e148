// Package annotate holds the in-memory annotation model: the ordered point
// path, the room rectangles, and the transient editing state around them.
package annotate

import (
	"errors"

	"plan-annotator/pkg/geometry"
)

var (
	// ErrOutOfRange is returned when a point index does not refer to a
	// current point. Callers scan before mutating, so this indicates a bug.
	ErrOutOfRange = errors.New("annotate: point index out of range")

	// ErrInvalidRectangle is returned when the second rectangle corner is not
	// strictly below and to the right of the first.
	ErrInvalidRectangle = errors.New("invalid rectangle coordinates: ensure x1 < x2 and y1 < y2")

	// ErrUnknownRoom is returned when a room index has no rectangle.
	ErrUnknownRoom = errors.New("annotate: unknown room")
)

// Point is a clicked marker in both pixel and mapped space.
type Point struct {
	Pixel  geometry.PointInt `json:"pixel"`
	Mapped geometry.PointInt `json:"mapped"`
}

// MappedRect is the export form of a rectangle's corners.
type MappedRect struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Rectangle is a room defined by two right-clicked corners.
type Rectangle struct {
	Min    geometry.PointInt `json:"min"` // Top-left corner in pixels
	Max    geometry.PointInt `json:"max"` // Bottom-right corner in pixels
	Mapped MappedRect        `json:"mapped"`
	Room   int               `json:"room"`            // 1-based room index
	Label  string            `json:"label,omitempty"` // Text read from the plan, if any
}

// Bounds returns the pixel-space rectangle.
func (r Rectangle) Bounds() geometry.RectInt {
	return geometry.RectFromCorners(r.Min, r.Max)
}

// Action identifies the most recent undoable action.
type Action int

const (
	ActionNone Action = iota
	ActionAddPoint
	ActionAddRectangle
)

func (a Action) String() string {
	switch a {
	case ActionAddPoint:
		return "add point"
	case ActionAddRectangle:
		return "add rectangle"
	default:
		return "none"
	}
}

// CornerStatus is the outcome of feeding one corner into the rectangle gesture.
type CornerStatus int

const (
	CornerPending   CornerStatus = iota // First corner buffered
	CornerCompleted                     // Rectangle appended
	CornerRejected                      // Corners out of order, buffer discarded
)
