// Package interaction turns pointer events into annotation edits.
package interaction

import (
	"plan-annotator/pkg/geometry"
)

// Button identifies the pointer button that was pressed.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
)

// Modifier is the modifier-key signal that accompanies a press.
type Modifier int

const (
	ModifierNone   Modifier = iota
	ModifierSelect          // Select a point, or move the selected one
	ModifierDelete          // Remove the point under the pointer
)

func (m Modifier) String() string {
	switch m {
	case ModifierSelect:
		return "select"
	case ModifierDelete:
		return "delete"
	default:
		return "none"
	}
}

// Event is a pointer press in image pixel coordinates.
type Event struct {
	Button   Button
	Modifier Modifier
	Pos      geometry.PointInt
}

// Logger receives human-readable status lines.
type Logger interface {
	Logf(format string, args ...interface{})
}

// Renderer redraws the frame from the current annotations.
type Renderer interface {
	Redraw()
}

// RoomLabeler reads a label for a newly completed room from the plan image.
type RoomLabeler interface {
	LabelRoom(bounds geometry.RectInt) (string, error)
}
