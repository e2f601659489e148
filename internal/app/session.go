// Package app ties the annotation store, the interaction handler, and the
// loaded image into a session, and publishes changes as events.
package app

import (
	"fmt"
	goimage "image"
	"log"
	"path/filepath"
	"sync"

	"plan-annotator/internal/annotate"
	"plan-annotator/internal/config"
	"plan-annotator/internal/image"
	"plan-annotator/internal/interaction"
	"plan-annotator/pkg/geometry"

	"github.com/google/uuid"
)

// EventType identifies different application events.
type EventType int

const (
	EventImageLoaded        EventType = iota // data: *image.Layer
	EventAnnotationsChanged                  // data: nil
	EventLog                                 // data: string
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// RegionReader reads text from part of an image.
type RegionReader interface {
	RecognizeRegion(img goimage.Image, bounds geometry.RectInt) (string, error)
}

// Snapshot is a copy of the annotation state for drawing.
type Snapshot struct {
	Points     []annotate.Point
	Rectangles []annotate.Rectangle
	Pending    []geometry.PointInt
	Selected   int // -1 when nothing is selected
}

// Session holds the state of one annotation run.
type Session struct {
	mu sync.RWMutex

	ID     uuid.UUID
	config *config.Config
	layer  *image.Layer

	store   *annotate.Store
	handler *interaction.Handler
	reader  RegionReader

	listeners map[EventType][]EventListener
}

// NewSession creates a session with no image loaded. reader may be nil, in
// which case rooms are not labelled.
func NewSession(cfg *config.Config, reader RegionReader) *Session {
	if cfg == nil {
		cfg = config.Default()
	}
	s := &Session{
		ID:        uuid.New(),
		config:    cfg,
		store:     annotate.NewStore(0, 0),
		reader:    reader,
		listeners: make(map[EventType][]EventListener),
	}

	opts := []interaction.Option{
		interaction.WithProximity(cfg.Interaction.ProximityPx),
		interaction.WithSessionID(s.ID.String()),
	}
	if reader != nil {
		opts = append(opts, interaction.WithRoomLabeler(s))
	}
	s.handler = interaction.NewHandler(s.store, s, s, opts...)
	return s
}

// On registers an event listener for the specified event type.
func (s *Session) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *Session) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// Logf implements interaction.Logger. Messages go to the process log and to
// EventLog listeners.
func (s *Session) Logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	log.Print(msg)
	s.Emit(EventLog, msg)
}

// Redraw implements interaction.Renderer.
func (s *Session) Redraw() {
	s.Emit(EventAnnotationsChanged, nil)
}

// LabelRoom implements interaction.RoomLabeler using the session's reader.
func (s *Session) LabelRoom(bounds geometry.RectInt) (string, error) {
	layer := s.Layer()
	if s.reader == nil || layer == nil {
		return "", nil
	}
	return s.reader.RecognizeRegion(layer.Image, bounds)
}

// LoadImage replaces the backdrop with the image at path. On failure the
// current image and annotations are left as they were.
func (s *Session) LoadImage(path string) error {
	if !s.config.HasFormat(image.Extension(path)) {
		err := fmt.Errorf("unsupported image format %q", image.Extension(path))
		s.Logf("Could not load %s: %v", filepath.Base(path), err)
		return err
	}

	layer, err := image.Load(path, s.config.Image.MaxWidth)
	if err != nil {
		s.Logf("Could not load %s: %v", filepath.Base(path), err)
		return err
	}

	s.mu.Lock()
	s.layer = layer
	s.mu.Unlock()

	s.store.Reset()
	s.store.SetExtent(layer.Width(), layer.Height())

	if layer.Scale != 1.0 {
		s.Logf("Loaded %s (%dx%d, scaled from %dx%d)", layer.Name(),
			layer.Width(), layer.Height(), layer.Original.X, layer.Original.Y)
	} else {
		s.Logf("Loaded %s (%dx%d)", layer.Name(), layer.Width(), layer.Height())
	}

	s.Emit(EventImageLoaded, layer)
	s.Redraw()
	return nil
}

// Layer returns the loaded image, or nil.
func (s *Session) Layer() *image.Layer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.layer
}

// Config returns the session configuration.
func (s *Session) Config() *config.Config {
	return s.config
}

// HandleEvent forwards a pointer event to the handler. Events before an
// image is loaded are ignored because there is nothing to map against.
func (s *Session) HandleEvent(ev interaction.Event) {
	if s.Layer() == nil {
		return
	}
	s.handler.HandleEvent(ev)
}

// Submit logs the current annotations.
func (s *Session) Submit() { s.handler.Submit() }

// ClearPoints removes every point.
func (s *Session) ClearPoints() { s.handler.ClearPoints() }

// ClearRectangles removes every rectangle.
func (s *Session) ClearRectangles() { s.handler.ClearRectangles() }

// Undo reverts the most recent add.
func (s *Session) Undo() { s.handler.Undo() }

// CanUndo reports whether Undo would change anything.
func (s *Session) CanUndo() bool {
	switch s.store.LastAction() {
	case annotate.ActionAddPoint:
		return len(s.store.Points()) > 0
	case annotate.ActionAddRectangle:
		return len(s.store.Rectangles()) > 0
	}
	return false
}

// Snapshot copies the annotation state.
func (s *Session) Snapshot() Snapshot {
	selected, ok := s.store.Selected()
	if !ok {
		selected = -1
	}
	return Snapshot{
		Points:     s.store.Points(),
		Rectangles: s.store.Rectangles(),
		Pending:    s.store.Pending(),
		Selected:   selected,
	}
}
