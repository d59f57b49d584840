package effect

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/gogpu/pixfx"
)

// HueRotate returns an effect that rotates the hue of every pixel by the
// given angle in degrees, keeping saturation and value. Samples are clamped
// to [0, 255] before conversion.
func HueRotate(degrees float64) Effect {
	shift := math.Mod(degrees, 360)
	if shift < 0 {
		shift += 360
	}
	return func(src *pixfx.Buffer) *pixfx.Buffer {
		return mapPixels(src, func(r, g, b int16) (int16, int16, int16) {
			c := colorful.Color{R: unit(r), G: unit(g), B: unit(b)}
			h, s, v := c.Hsv()
			rr, gg, bb := colorful.Hsv(math.Mod(h+shift, 360), s, v).Clamped().RGB255()
			return int16(rr), int16(gg), int16(bb)
		})
	}
}

// unit maps a sample to [0, 1] after clamping.
func unit(v int16) float64 {
	return float64(min(max(v, 0), 255)) / 255
}
