// Package canvas provides the annotation canvas: a zoomable image that turns
// mouse presses into interaction events in image coordinates.
package canvas

import (
	"image"
	"strings"

	"plan-annotator/internal/interaction"
	"plan-annotator/pkg/geometry"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

const (
	minZoom  = 0.25
	maxZoom  = 4.0
	zoomStep = 1.25
)

// ModifierKeys maps keyboard modifiers to the select and delete signals.
type ModifierKeys struct {
	Select fyne.KeyModifier
	Delete fyne.KeyModifier
}

// ParseModifier converts a config name ("ctrl", "alt", "shift", "super").
func ParseModifier(name string) fyne.KeyModifier {
	switch strings.ToLower(name) {
	case "ctrl":
		return fyne.KeyModifierControl
	case "alt":
		return fyne.KeyModifierAlt
	case "shift":
		return fyne.KeyModifierShift
	case "super":
		return fyne.KeyModifierSuper
	}
	return 0
}

// Signal classifies a modifier state. Select takes precedence when both
// keys are held.
func (m ModifierKeys) Signal(mod fyne.KeyModifier) interaction.Modifier {
	switch {
	case m.Select != 0 && mod&m.Select != 0:
		return interaction.ModifierSelect
	case m.Delete != 0 && mod&m.Delete != 0:
		return interaction.ModifierDelete
	default:
		return interaction.ModifierNone
	}
}

// AnnotationCanvas displays the rendered frame and reports presses.
type AnnotationCanvas struct {
	widget.BaseWidget

	image     *fynecanvas.Image
	content   *pressableContent
	scroll    *container.Scroll
	frameSize image.Point
	zoom      float64

	modifiers ModifierKeys
	onPress   func(interaction.Event)
	onZoom    func(zoom float64)
}

// pressableContent wraps the image to receive mouse events.
type pressableContent struct {
	widget.BaseWidget
	canvas *AnnotationCanvas
}

var _ desktop.Mouseable = (*pressableContent)(nil)

func newPressableContent(ac *AnnotationCanvas) *pressableContent {
	pc := &pressableContent{canvas: ac}
	pc.ExtendBaseWidget(pc)
	return pc
}

func (pc *pressableContent) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(pc.canvas.image)
}

func (pc *pressableContent) MinSize() fyne.Size {
	return pc.canvas.image.MinSize()
}

// MouseDown converts a press to an interaction event.
func (pc *pressableContent) MouseDown(ev *desktop.MouseEvent) {
	ac := pc.canvas
	if ac.onPress == nil || ac.frameSize.X == 0 {
		return
	}

	var button interaction.Button
	switch ev.Button {
	case desktop.MouseButtonPrimary:
		button = interaction.ButtonPrimary
	case desktop.MouseButtonSecondary:
		button = interaction.ButtonSecondary
	default:
		return
	}

	// Position is relative to this widget, which already includes scrolling.
	x := int(float64(ev.Position.X) / ac.zoom)
	y := int(float64(ev.Position.Y) / ac.zoom)
	if x < 0 || y < 0 || x >= ac.frameSize.X || y >= ac.frameSize.Y {
		return
	}

	ac.onPress(interaction.Event{
		Button:   button,
		Modifier: ac.modifiers.Signal(ev.Modifier),
		Pos:      geometry.Pt(x, y),
	})
}

// MouseUp is required by desktop.Mouseable.
func (pc *pressableContent) MouseUp(*desktop.MouseEvent) {}

// NewAnnotationCanvas creates an empty canvas.
func NewAnnotationCanvas(modifiers ModifierKeys) *AnnotationCanvas {
	ac := &AnnotationCanvas{
		zoom:      1.0,
		modifiers: modifiers,
	}

	ac.image = fynecanvas.NewImageFromImage(nil)
	ac.image.FillMode = fynecanvas.ImageFillStretch
	ac.image.ScaleMode = fynecanvas.ImageScalePixels
	ac.image.SetMinSize(fyne.NewSize(400, 300))

	ac.content = newPressableContent(ac)
	ac.scroll = container.NewScroll(ac.content)
	ac.scroll.Direction = container.ScrollBoth

	ac.ExtendBaseWidget(ac)
	return ac
}

// OnPress sets the callback for presses inside the image.
func (ac *AnnotationCanvas) OnPress(callback func(interaction.Event)) {
	ac.onPress = callback
}

// OnZoomChange sets a callback for zoom changes.
func (ac *AnnotationCanvas) OnZoomChange(callback func(zoom float64)) {
	ac.onZoom = callback
}

// SetFrame replaces the displayed frame.
func (ac *AnnotationCanvas) SetFrame(img image.Image) {
	ac.image.Image = img
	if img == nil {
		ac.frameSize = image.Point{}
	} else {
		b := img.Bounds()
		ac.frameSize = image.Point{X: b.Dx(), Y: b.Dy()}
	}
	ac.updateContentSize()
}

// SetZoom sets the zoom level.
func (ac *AnnotationCanvas) SetZoom(zoom float64) {
	if zoom < minZoom {
		zoom = minZoom
	}
	if zoom > maxZoom {
		zoom = maxZoom
	}
	ac.zoom = zoom
	ac.updateContentSize()

	if ac.onZoom != nil {
		ac.onZoom(zoom)
	}
}

// GetZoom returns the current zoom level.
func (ac *AnnotationCanvas) GetZoom() float64 {
	return ac.zoom
}

// ZoomIn increases the zoom level.
func (ac *AnnotationCanvas) ZoomIn() {
	ac.SetZoom(ac.zoom * zoomStep)
}

// ZoomOut decreases the zoom level.
func (ac *AnnotationCanvas) ZoomOut() {
	ac.SetZoom(ac.zoom / zoomStep)
}

func (ac *AnnotationCanvas) updateContentSize() {
	size := fyne.NewSize(400, 300)
	if ac.frameSize.X > 0 {
		size = fyne.NewSize(float32(float64(ac.frameSize.X)*ac.zoom), float32(float64(ac.frameSize.Y)*ac.zoom))
	}
	ac.image.SetMinSize(size)
	ac.image.Resize(size)
	ac.content.Resize(size)
	ac.content.Refresh()
	ac.scroll.Refresh()
}

// CreateRenderer implements fyne.Widget.
func (ac *AnnotationCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(ac.scroll)
}
