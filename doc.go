// Package pixfx provides the pixel buffer and image I/O used by pixel effects.
//
// # Overview
//
// A [Buffer] is a height x width x 3 grid of int16 samples in red, green,
// blue order. Samples are signed and wider than a byte so that effects can
// produce negative or oversized intermediate values; [ToImage] clamps them
// to [0, 255] when the buffer is turned back into an image.
//
// # Quick Start
//
//	import (
//		"github.com/gogpu/pixfx"
//		"github.com/gogpu/pixfx/effect"
//	)
//
//	buf, err := pixfx.LoadBuffer("photo.png")
//	if err != nil {
//		return err
//	}
//	out := effect.Apply(buf, effect.Grayscale, effect.Smooth, effect.Threshold(127))
//	err = pixfx.SaveBuffer("photo_bw.png", out, pixfx.EncodeOptions{})
//
// # Formats
//
// Load decodes PNG, JPEG, GIF, BMP, TIFF and WebP. Save and Encode write
// PNG, JPEG, GIF, BMP and TIFF.
//
// # Concurrency
//
// Buffers are plain values without locking. Different buffers may be
// processed on different goroutines; one buffer must have one writer at a time.
package pixfx
