package export

import (
	"image"
	"image/png"
	"io"
)

// ImageSurface adapts an already rendered image to Surface.
type ImageSurface struct {
	Image image.Image
}

// NewImageSurface returns nil when img is nil, so it can back a Chart.Canvas
// implementation directly.
func NewImageSurface(img image.Image) Surface {
	if img == nil {
		return nil
	}
	return &ImageSurface{Image: img}
}

func (s *ImageSurface) EncodePNG(w io.Writer) error {
	return png.Encode(w, s.Image)
}
