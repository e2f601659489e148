package annotate

import (
	"fmt"

	"plan-annotator/internal/coords"
	"plan-annotator/pkg/geometry"
)

// Store holds the annotations for the current image. It is owned by a single
// event-processing goroutine and is not safe for concurrent use.
type Store struct {
	width, height int

	points     []Point
	rectangles []Rectangle
	pending    []geometry.PointInt

	selected int // -1 when nothing is selected

	pointCount int
	rectCount  int
	lastAction Action
}

// NewStore creates an empty store for an image of the given extent.
func NewStore(width, height int) *Store {
	return &Store{
		width:    width,
		height:   height,
		selected: -1,
	}
}

// SetExtent sets the image dimensions used for mapping. Existing mapped
// values are recomputed.
func (s *Store) SetExtent(width, height int) {
	s.width, s.height = width, height
	for i := range s.points {
		s.points[i].Mapped = s.mapPoint(s.points[i].Pixel)
	}
	for i := range s.rectangles {
		s.rectangles[i].Mapped = s.mapRect(s.rectangles[i].Min, s.rectangles[i].Max)
	}
}

// Extent returns the image dimensions used for mapping.
func (s *Store) Extent() (width, height int) {
	return s.width, s.height
}

// Reset drops every annotation, the pending corners, the selection, and the
// counters.
func (s *Store) Reset() {
	s.points = nil
	s.rectangles = nil
	s.pending = nil
	s.selected = -1
	s.pointCount = 0
	s.rectCount = 0
	s.lastAction = ActionNone
}

// AddPoint appends a point and returns its index.
func (s *Store) AddPoint(pixel geometry.PointInt) int {
	s.points = append(s.points, Point{Pixel: pixel, Mapped: s.mapPoint(pixel)})
	s.pointCount++
	s.lastAction = ActionAddPoint
	return len(s.points) - 1
}

// MovePoint relocates the point at index i.
func (s *Store) MovePoint(i int, pixel geometry.PointInt) error {
	if i < 0 || i >= len(s.points) {
		return fmt.Errorf("move %d of %d: %w", i, len(s.points), ErrOutOfRange)
	}
	s.points[i] = Point{Pixel: pixel, Mapped: s.mapPoint(pixel)}
	s.lastAction = ActionNone
	return nil
}

// RemovePoint deletes the point at index i. A selection on i or on any later
// index is cleared because those indices shift.
func (s *Store) RemovePoint(i int) error {
	if i < 0 || i >= len(s.points) {
		return fmt.Errorf("remove %d of %d: %w", i, len(s.points), ErrOutOfRange)
	}
	s.points = append(s.points[:i], s.points[i+1:]...)
	if s.selected >= i {
		s.selected = -1
	}
	s.pointCount--
	s.lastAction = ActionNone
	return nil
}

// AddRectangleCorner feeds one corner of the two-click rectangle gesture.
// The first call buffers the corner. The second validates the pair and
// either appends a rectangle or returns ErrInvalidRectangle; the buffer is
// emptied in both cases.
func (s *Store) AddRectangleCorner(pixel geometry.PointInt) (CornerStatus, error) {
	s.pending = append(s.pending, pixel)
	if len(s.pending) < 2 {
		return CornerPending, nil
	}

	first, second := s.pending[0], s.pending[1]
	s.pending = nil

	if first.X >= second.X || first.Y >= second.Y {
		return CornerRejected, fmt.Errorf("(%d, %d) to (%d, %d): %w",
			first.X, first.Y, second.X, second.Y, ErrInvalidRectangle)
	}

	s.rectCount++
	s.rectangles = append(s.rectangles, Rectangle{
		Min:    first,
		Max:    second,
		Mapped: s.mapRect(first, second),
		Room:   s.rectCount,
	})
	s.lastAction = ActionAddRectangle
	return CornerCompleted, nil
}

// ClearPoints removes every point and resets the point counter.
func (s *Store) ClearPoints() {
	s.points = nil
	s.pointCount = 0
	s.selected = -1
	if s.lastAction == ActionAddPoint {
		s.lastAction = ActionNone
	}
}

// ClearRectangles removes every rectangle and resets the room counter.
func (s *Store) ClearRectangles() {
	s.rectangles = nil
	s.pending = nil
	s.rectCount = 0
	if s.lastAction == ActionAddRectangle {
		s.lastAction = ActionNone
	}
}

// UndoLast reverts the most recent add, if it is still undoable, and
// returns the action that was reverted. Only one step is kept: after an
// undo the marker is cleared and a second call is a no-op.
func (s *Store) UndoLast() Action {
	action := s.lastAction
	s.lastAction = ActionNone

	switch action {
	case ActionAddPoint:
		if len(s.points) == 0 {
			return ActionNone
		}
		last := len(s.points) - 1
		s.points = s.points[:last]
		if s.selected == last {
			s.selected = -1
		}
		s.pointCount--
	case ActionAddRectangle:
		if len(s.rectangles) == 0 {
			return ActionNone
		}
		s.rectangles = s.rectangles[:len(s.rectangles)-1]
		s.rectCount--
	default:
		return ActionNone
	}
	return action
}

// Select marks point i as the target of the next move.
func (s *Store) Select(i int) error {
	if i < 0 || i >= len(s.points) {
		return fmt.Errorf("select %d of %d: %w", i, len(s.points), ErrOutOfRange)
	}
	s.selected = i
	return nil
}

// Selected returns the selected point index, if any.
func (s *Store) Selected() (int, bool) {
	return s.selected, s.selected >= 0
}

// ClearSelection drops the current selection.
func (s *Store) ClearSelection() {
	s.selected = -1
}

// SetRoomLabel attaches a text label to the rectangle with the given room index.
func (s *Store) SetRoomLabel(room int, label string) error {
	for i := range s.rectangles {
		if s.rectangles[i].Room == room {
			s.rectangles[i].Label = label
			return nil
		}
	}
	return fmt.Errorf("room %d: %w", room, ErrUnknownRoom)
}

// FindNear returns the index of the first point within dist pixels of p on
// both axes. Earlier points win over closer ones.
func (s *Store) FindNear(p geometry.PointInt, dist int) (int, bool) {
	for i, pt := range s.points {
		if pt.Pixel.Near(p, dist) {
			return i, true
		}
	}
	return -1, false
}

// Points returns a copy of the point path in click order.
func (s *Store) Points() []Point {
	return append([]Point(nil), s.points...)
}

// Point returns the point at index i.
func (s *Store) Point(i int) (Point, error) {
	if i < 0 || i >= len(s.points) {
		return Point{}, fmt.Errorf("point %d of %d: %w", i, len(s.points), ErrOutOfRange)
	}
	return s.points[i], nil
}

// Rectangles returns a copy of the rectangles in creation order.
func (s *Store) Rectangles() []Rectangle {
	return append([]Rectangle(nil), s.rectangles...)
}

// Pending returns the buffered rectangle corners.
func (s *Store) Pending() []geometry.PointInt {
	return append([]geometry.PointInt(nil), s.pending...)
}

// PointCount returns the point counter used for numbering.
func (s *Store) PointCount() int { return s.pointCount }

// RectangleCount returns the room counter.
func (s *Store) RectangleCount() int { return s.rectCount }

// LastAction returns the action the next undo would revert.
func (s *Store) LastAction() Action { return s.lastAction }

func (s *Store) mapPoint(p geometry.PointInt) geometry.PointInt {
	return coords.MapPoint(p, s.width, s.height)
}

func (s *Store) mapRect(min, max geometry.PointInt) MappedRect {
	a := s.mapPoint(min)
	b := s.mapPoint(max)
	return MappedRect{X1: a.X, Y1: a.Y, X2: b.X, Y2: b.Y}
}
