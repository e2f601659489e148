// Package colorutil provides the annotation color palette.
package colorutil

import (
	"image/color"
)

// Common overlay colors used throughout the application.
var (
	White   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Green   = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	Blue    = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	Yellow  = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	Magenta = color.RGBA{R: 255, G: 0, B: 255, A: 255}

	// Teal is the overlay grid color.
	Teal = color.RGBA{R: 10, G: 130, B: 150, A: 255}
)
