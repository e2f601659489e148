package app

import (
	goimage "image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"plan-annotator/internal/config"
	"plan-annotator/internal/interaction"
	"plan-annotator/pkg/geometry"
)

func writePlan(t *testing.T, dir, name string, width, height int) string {
	t.Helper()
	img := goimage.NewRGBA(goimage.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{240, 240, 240, 255})
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

type stubReader struct {
	text string
}

func (r *stubReader) RecognizeRegion(img goimage.Image, bounds geometry.RectInt) (string, error) {
	return r.text, nil
}

func collectLog(s *Session) *[]string {
	var lines []string
	s.On(EventLog, func(data interface{}) {
		lines = append(lines, data.(string))
	})
	return &lines
}

func TestLoadImageSetsExtent(t *testing.T) {
	s := NewSession(config.Default(), nil)
	lines := collectLog(s)
	var loaded, redraws int
	s.On(EventImageLoaded, func(interface{}) { loaded++ })
	s.On(EventAnnotationsChanged, func(interface{}) { redraws++ })

	path := writePlan(t, t.TempDir(), "plan.png", 2000, 1000)
	if err := s.LoadImage(path); err != nil {
		t.Fatalf("LoadImage: %v", err)
	}

	if w, h := s.store.Extent(); w != 1000 || h != 500 {
		t.Errorf("extent = %dx%d, want 1000x500", w, h)
	}
	if loaded != 1 || redraws != 1 {
		t.Errorf("loaded=%d redraws=%d", loaded, redraws)
	}
	if len(*lines) != 1 || !strings.Contains((*lines)[0], "scaled from 2000x1000") {
		t.Errorf("log = %q", *lines)
	}
}

func TestLoadImageFailureKeepsAnnotations(t *testing.T) {
	dir := t.TempDir()
	s := NewSession(config.Default(), nil)
	lines := collectLog(s)
	if err := s.LoadImage(writePlan(t, dir, "plan.png", 200, 200)); err != nil {
		t.Fatal(err)
	}
	s.HandleEvent(interaction.Event{Button: interaction.ButtonPrimary, Pos: geometry.Pt(10, 10)})

	broken := filepath.Join(dir, "broken.png")
	if err := os.WriteFile(broken, []byte("garbage"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := s.LoadImage(broken); err == nil {
		t.Fatal("LoadImage of corrupt file succeeded")
	}
	if err := s.LoadImage(filepath.Join(dir, "plan.gif")); err == nil {
		t.Fatal("LoadImage of unsupported format succeeded")
	}

	if n := len(s.Snapshot().Points); n != 1 {
		t.Errorf("points after failed load = %d, want 1", n)
	}
	if last := (*lines)[len(*lines)-1]; !strings.HasPrefix(last, "Could not load plan.gif") {
		t.Errorf("last log line = %q", last)
	}
	if s.Layer().Name() != "plan.png" {
		t.Errorf("layer replaced by failed load: %s", s.Layer().Name())
	}
}

func TestLoadImageResetsAnnotations(t *testing.T) {
	dir := t.TempDir()
	s := NewSession(config.Default(), nil)
	if err := s.LoadImage(writePlan(t, dir, "a.png", 200, 200)); err != nil {
		t.Fatal(err)
	}
	s.HandleEvent(interaction.Event{Button: interaction.ButtonPrimary, Pos: geometry.Pt(10, 10)})
	if err := s.LoadImage(writePlan(t, dir, "b.png", 300, 300)); err != nil {
		t.Fatal(err)
	}
	if n := len(s.Snapshot().Points); n != 0 {
		t.Errorf("points after new image = %d, want 0", n)
	}
}

func TestEventsIgnoredWithoutImage(t *testing.T) {
	s := NewSession(nil, nil)
	s.HandleEvent(interaction.Event{Button: interaction.ButtonPrimary, Pos: geometry.Pt(10, 10)})
	if n := len(s.Snapshot().Points); n != 0 {
		t.Errorf("points = %d, want 0", n)
	}
}

func TestRoomLabelFromReader(t *testing.T) {
	s := NewSession(config.Default(), &stubReader{text: "LOBBY"})
	if err := s.LoadImage(writePlan(t, t.TempDir(), "plan.png", 200, 200)); err != nil {
		t.Fatal(err)
	}
	s.HandleEvent(interaction.Event{Button: interaction.ButtonSecondary, Pos: geometry.Pt(10, 10)})
	s.HandleEvent(interaction.Event{Button: interaction.ButtonSecondary, Pos: geometry.Pt(90, 90)})

	rects := s.Snapshot().Rectangles
	if len(rects) != 1 || rects[0].Label != "LOBBY" {
		t.Errorf("rectangles = %+v", rects)
	}
}

func TestCanUndo(t *testing.T) {
	s := NewSession(config.Default(), nil)
	if err := s.LoadImage(writePlan(t, t.TempDir(), "plan.png", 100, 100)); err != nil {
		t.Fatal(err)
	}
	if s.CanUndo() {
		t.Error("CanUndo before any action")
	}
	s.HandleEvent(interaction.Event{Button: interaction.ButtonPrimary, Pos: geometry.Pt(10, 10)})
	if !s.CanUndo() {
		t.Error("CanUndo false after adding a point")
	}
	s.Undo()
	if s.CanUndo() {
		t.Error("CanUndo true after undo")
	}
}

func TestSnapshotSelection(t *testing.T) {
	s := NewSession(config.Default(), nil)
	if err := s.LoadImage(writePlan(t, t.TempDir(), "plan.png", 100, 100)); err != nil {
		t.Fatal(err)
	}
	if got := s.Snapshot().Selected; got != -1 {
		t.Errorf("Selected = %d, want -1", got)
	}
	s.HandleEvent(interaction.Event{Button: interaction.ButtonPrimary, Pos: geometry.Pt(10, 10)})
	s.HandleEvent(interaction.Event{Button: interaction.ButtonPrimary, Modifier: interaction.ModifierSelect, Pos: geometry.Pt(11, 11)})
	if got := s.Snapshot().Selected; got != 0 {
		t.Errorf("Selected = %d, want 0", got)
	}
}
