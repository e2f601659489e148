// Package report formats the annotation set for the submit log.
package report

import (
	"fmt"

	"plan-annotator/internal/annotate"
	"plan-annotator/pkg/geometry"

	"gonum.org/v1/gonum/floats"
)

// Room is one entry of the room list: mapped corners plus room index.
type Room struct {
	annotate.MappedRect
	Room  int
	Label string
}

// Summary is the export view of a session's annotations.
type Summary struct {
	Path       []geometry.PointInt // Mapped points in click order
	Rooms      []Room
	PathLength float64 // Sum of segment lengths in mapped units
}

// Build creates a summary from the store contents.
func Build(points []annotate.Point, rects []annotate.Rectangle) Summary {
	s := Summary{
		Path:  make([]geometry.PointInt, 0, len(points)),
		Rooms: make([]Room, 0, len(rects)),
	}
	for _, p := range points {
		s.Path = append(s.Path, p.Mapped)
	}
	for _, r := range rects {
		s.Rooms = append(s.Rooms, Room{MappedRect: r.Mapped, Room: r.Room, Label: r.Label})
	}
	s.PathLength = pathLength(s.Path)
	return s
}

func pathLength(path []geometry.PointInt) float64 {
	var total float64
	for i := 1; i < len(path); i++ {
		a := []float64{float64(path[i-1].X), float64(path[i-1].Y)}
		b := []float64{float64(path[i].X), float64(path[i].Y)}
		total += floats.Distance(a, b, 2)
	}
	return total
}

// Lines renders the summary as log lines.
func (s Summary) Lines() []string {
	lines := make([]string, 0, len(s.Path)+len(s.Rooms)+2)
	lines = append(lines, fmt.Sprintf("Path: %d points, length %.1f", len(s.Path), s.PathLength))
	for i, p := range s.Path {
		lines = append(lines, fmt.Sprintf("  %d: (%d, %d)", i+1, p.X, p.Y))
	}
	lines = append(lines, fmt.Sprintf("Rooms: %d", len(s.Rooms)))
	for _, r := range s.Rooms {
		line := fmt.Sprintf("  [%d, %d, %d, %d, %d]", r.X1, r.Y1, r.X2, r.Y2, r.Room)
		if r.Label != "" {
			line += " " + r.Label
		}
		lines = append(lines, line)
	}
	return lines
}
