package interaction

import (
	"errors"
	"log"

	"plan-annotator/internal/annotate"
	"plan-annotator/internal/report"
)

// DefaultProximity is the pixel distance, per axis, within which a click
// hits an existing point.
const DefaultProximity = 3

// Handler applies pointer events and shell commands to a Store.
type Handler struct {
	store     *annotate.Store
	log       Logger
	renderer  Renderer
	labeler   RoomLabeler
	proximity int
	sessionID string
}

// Option configures a Handler.
type Option func(*Handler)

// WithProximity sets the hit distance for select and delete clicks.
func WithProximity(px int) Option {
	return func(h *Handler) {
		if px > 0 {
			h.proximity = px
		}
	}
}

// WithRoomLabeler enables labelling of completed rooms.
func WithRoomLabeler(l RoomLabeler) Option {
	return func(h *Handler) { h.labeler = l }
}

// WithSessionID tags the submit acknowledgement with a session identifier.
func WithSessionID(id string) Option {
	return func(h *Handler) { h.sessionID = id }
}

// NewHandler creates a handler that edits store and reports through log and renderer.
func NewHandler(store *annotate.Store, logger Logger, renderer Renderer, opts ...Option) *Handler {
	h := &Handler{
		store:     store,
		log:       logger,
		renderer:  renderer,
		proximity: DefaultProximity,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// HandleEvent runs one pointer event to completion.
func (h *Handler) HandleEvent(ev Event) {
	var changed bool
	switch ev.Button {
	case ButtonPrimary:
		switch ev.Modifier {
		case ModifierSelect:
			changed = h.selectOrMove(ev)
		case ModifierDelete:
			changed = h.remove(ev)
		default:
			changed = h.add(ev)
		}
	case ButtonSecondary:
		changed = h.corner(ev)
	}
	if changed {
		h.renderer.Redraw()
	}
}

func (h *Handler) add(ev Event) bool {
	idx := h.store.AddPoint(ev.Pos)
	p, err := h.store.Point(idx)
	if err != nil {
		contractViolation(err)
		return true
	}
	h.log.Logf("Clicked point %d: (%d, %d)", h.store.PointCount(), p.Mapped.X, p.Mapped.Y)
	return true
}

func (h *Handler) selectOrMove(ev Event) bool {
	if sel, ok := h.store.Selected(); ok {
		err := h.store.MovePoint(sel, ev.Pos)
		h.store.ClearSelection()
		if err != nil {
			contractViolation(err)
			return true
		}
		p, _ := h.store.Point(sel)
		h.log.Logf("Moved point %d to: (%d, %d)", sel+1, p.Mapped.X, p.Mapped.Y)
		return true
	}

	idx, ok := h.store.FindNear(ev.Pos, h.proximity)
	if !ok {
		return false
	}
	if err := h.store.Select(idx); err != nil {
		contractViolation(err)
		return false
	}
	h.log.Logf("Point %d selected for movement", idx+1)
	return true
}

func (h *Handler) remove(ev Event) bool {
	idx, ok := h.store.FindNear(ev.Pos, h.proximity)
	if !ok {
		return false
	}
	if err := h.store.RemovePoint(idx); err != nil {
		contractViolation(err)
		return false
	}
	h.log.Logf("Removed point %d", idx+1)
	return true
}

func (h *Handler) corner(ev Event) bool {
	status, err := h.store.AddRectangleCorner(ev.Pos)
	switch status {
	case annotate.CornerPending:
		return true
	case annotate.CornerRejected:
		if errors.Is(err, annotate.ErrInvalidRectangle) {
			h.log.Logf("Invalid rectangle coordinates: ensure x1 < x2 and y1 < y2.")
		} else {
			h.log.Logf("Rectangle rejected: %v", err)
		}
		return true
	}

	rects := h.store.Rectangles()
	r := rects[len(rects)-1]
	h.log.Logf("Rectangle %d: (%d, %d) - (%d, %d)", r.Room, r.Mapped.X1, r.Mapped.Y1, r.Mapped.X2, r.Mapped.Y2)

	if h.labeler != nil {
		label, err := h.labeler.LabelRoom(r.Bounds())
		switch {
		case err != nil:
			log.Printf("Room %d label: %v", r.Room, err)
		case label != "":
			if err := h.store.SetRoomLabel(r.Room, label); err != nil {
				contractViolation(err)
			} else {
				h.log.Logf("Rectangle %d labelled %q", r.Room, label)
			}
		}
	}
	return true
}

// Submit writes the acknowledgement and the export summary to the log.
func (h *Handler) Submit() {
	if h.sessionID != "" {
		h.log.Logf("Submitting current points and rectangles... (session %s)", h.sessionID)
	} else {
		h.log.Logf("Submitting current points and rectangles...")
	}
	for _, line := range report.Build(h.store.Points(), h.store.Rectangles()).Lines() {
		h.log.Logf("%s", line)
	}
}

// ClearPoints removes every point.
func (h *Handler) ClearPoints() {
	h.store.ClearPoints()
	h.log.Logf("Cleared points")
	h.renderer.Redraw()
}

// ClearRectangles removes every rectangle.
func (h *Handler) ClearRectangles() {
	h.store.ClearRectangles()
	h.log.Logf("Cleared rectangles")
	h.renderer.Redraw()
}

// Undo reverts the most recent add.
func (h *Handler) Undo() {
	switch h.store.UndoLast() {
	case annotate.ActionAddPoint:
		h.log.Logf("Undid last point")
	case annotate.ActionAddRectangle:
		h.log.Logf("Undid last rectangle")
	default:
		h.log.Logf("Nothing to undo")
		return
	}
	h.renderer.Redraw()
}

// contractViolation records an index error that the scan-before-mutate
// discipline should have made impossible. It is not shown to the user.
func contractViolation(err error) {
	log.Printf("BUG: %v", err)
}
