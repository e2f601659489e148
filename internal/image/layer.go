// Package image loads the backdrop image and scales it for annotation.
package image

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	_ "github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// DefaultMaxWidth is the widest backdrop kept at native size.
const DefaultMaxWidth = 1000

// Layer is a loaded backdrop image.
type Layer struct {
	Path     string      // Original file path
	Image    image.Image // Decoded and possibly downscaled image
	Original image.Point // Size before scaling
	Scale    float64     // Display size / original size (1.0 when not scaled)
}

// Load decodes the image at path and scales it down to maxWidth when it is
// wider, keeping the aspect ratio. maxWidth <= 0 disables scaling.
func Load(path string, maxWidth int) (*Layer, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to load image %s: %w", filepath.Base(path), err)
	}
	return FromImage(path, img, maxWidth)
}

// FromImage wraps an already decoded image, applying the same scaling as Load.
func FromImage(path string, img image.Image, maxWidth int) (*Layer, error) {
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, fmt.Errorf("image %s has no pixels", filepath.Base(path))
	}

	layer := &Layer{
		Path:     path,
		Image:    img,
		Original: image.Point{X: bounds.Dx(), Y: bounds.Dy()},
		Scale:    1.0,
	}

	if maxWidth > 0 && bounds.Dx() > maxWidth {
		ratio := float64(maxWidth) / float64(bounds.Dx())
		newHeight := int(float64(bounds.Dy()) * ratio)
		if newHeight < 1 {
			newHeight = 1
		}
		layer.Image = imaging.Resize(img, maxWidth, newHeight, imaging.Linear)
		layer.Scale = ratio
	}

	return layer, nil
}

// Width returns the image width in pixels.
func (l *Layer) Width() int {
	if l.Image == nil {
		return 0
	}
	return l.Image.Bounds().Dx()
}

// Height returns the image height in pixels.
func (l *Layer) Height() int {
	if l.Image == nil {
		return 0
	}
	return l.Image.Bounds().Dy()
}

// Name returns the file name without directory.
func (l *Layer) Name() string {
	return filepath.Base(l.Path)
}

// Extension returns the lower-case file extension without the dot.
func Extension(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}
