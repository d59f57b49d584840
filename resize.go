package pixfx

import (
	"image"

	"github.com/nfnt/resize"
)

// Resize scales img to width x height using Lanczos3 resampling.
// If one of the dimensions is zero it is derived from the other so that the
// aspect ratio is preserved. If both are zero img is returned unchanged.
//
// Resize is applied to images rather than buffers because, unlike effects,
// it changes the shape of the data.
func Resize(img image.Image, width, height uint) image.Image {
	if width == 0 && height == 0 {
		return img
	}
	return resize.Resize(width, height, img, resize.Lanczos3)
}
