package report

import (
	"math"
	"strings"
	"testing"

	"plan-annotator/internal/annotate"
	"plan-annotator/pkg/geometry"
)

func TestBuild(t *testing.T) {
	points := []annotate.Point{
		{Mapped: geometry.Pt(0, 0)},
		{Mapped: geometry.Pt(3, 4)},
		{Mapped: geometry.Pt(3, 10)},
	}
	rects := []annotate.Rectangle{
		{Mapped: annotate.MappedRect{X1: -10, Y1: -10, X2: 10, Y2: 10}, Room: 1, Label: "HALL"},
	}

	s := Build(points, rects)
	if math.Abs(s.PathLength-11) > 1e-9 {
		t.Errorf("PathLength = %v, want 11", s.PathLength)
	}
	if len(s.Rooms) != 1 || s.Rooms[0].Room != 1 || s.Rooms[0].X2 != 10 {
		t.Errorf("Rooms = %+v", s.Rooms)
	}

	lines := s.Lines()
	if !strings.HasPrefix(lines[0], "Path: 3 points, length 11.0") {
		t.Errorf("first line = %q", lines[0])
	}
	last := lines[len(lines)-1]
	if last != "  [-10, -10, 10, 10, 1] HALL" {
		t.Errorf("room line = %q", last)
	}
}

func TestBuildEmpty(t *testing.T) {
	s := Build(nil, nil)
	if s.PathLength != 0 {
		t.Errorf("PathLength = %v", s.PathLength)
	}
	if got := s.Lines(); len(got) != 2 {
		t.Errorf("Lines() = %q", got)
	}
}
