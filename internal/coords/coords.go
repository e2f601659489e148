// Package coords maps pixel coordinates into the integer export range used by
// the consuming application.
package coords

import (
	"fmt"
	"math"

	"plan-annotator/pkg/geometry"
)

const (
	// Span is the width of the export range.
	Span = 248
	// Offset shifts the range so that it is centered on zero.
	Offset = 124
)

// Map converts value along an axis of the given extent into [-Offset, Offset].
// extent must be positive; it is always an image dimension.
func Map(value, extent int) int {
	if extent <= 0 {
		panic(fmt.Sprintf("coords: non-positive extent %d", extent))
	}
	return int(math.Round(float64(value)/float64(extent)*Span - Offset))
}

// MapPoint maps both axes of p against an image of width x height.
func MapPoint(p geometry.PointInt, width, height int) geometry.PointInt {
	return geometry.PointInt{X: Map(p.X, width), Y: Map(p.Y, height)}
}
