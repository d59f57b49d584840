package effect

import (
	"math"
	"math/rand/v2"

	"github.com/gogpu/pixfx"
)

// Effect transforms a buffer into a new buffer of identical shape.
// Implementations must not modify src. A nil src yields nil.
type Effect func(src *pixfx.Buffer) *pixfx.Buffer

// Chain returns an effect applying effects left to right.
// An empty chain behaves like Identity.
func Chain(effects ...Effect) Effect {
	if len(effects) == 0 {
		return Identity
	}
	return func(src *pixfx.Buffer) *pixfx.Buffer {
		out := src
		for _, e := range effects {
			out = e(out)
		}
		if out == src && src != nil {
			return src.Clone()
		}
		return out
	}
}

// Apply runs effects on src in order and returns the result.
func Apply(src *pixfx.Buffer, effects ...Effect) *pixfx.Buffer {
	return Chain(effects...)(src)
}

// mapSamples returns a new buffer with fn applied to every sample of src.
func mapSamples(src *pixfx.Buffer, fn func(int16) int16) *pixfx.Buffer {
	if src == nil {
		return nil
	}
	dst := pixfx.NewBuffer(src.Height(), src.Width())
	in, out := src.Data(), dst.Data()
	for i, v := range in {
		out[i] = fn(v)
	}
	return dst
}

// mapPixels returns a new buffer with fn applied to every pixel of src.
func mapPixels(src *pixfx.Buffer, fn func(r, g, b int16) (int16, int16, int16)) *pixfx.Buffer {
	if src == nil {
		return nil
	}
	dst := pixfx.NewBuffer(src.Height(), src.Width())
	in, out := src.Data(), dst.Data()
	for i := 0; i < len(in); i += pixfx.Channels {
		out[i+0], out[i+1], out[i+2] = fn(in[i+0], in[i+1], in[i+2])
	}
	return dst
}

// Identity returns an unchanged copy of src.
func Identity(src *pixfx.Buffer) *pixfx.Buffer {
	if src == nil {
		return nil
	}
	return src.Clone()
}

// Invert maps every sample v to 255 - v, saturating at the int16 limits.
func Invert(src *pixfx.Buffer) *pixfx.Buffer {
	return mapSamples(src, func(v int16) int16 { return saturate(255 - int32(v)) })
}

// saturate narrows v to int16, pinning it at math.MinInt16 or math.MaxInt16.
func saturate(v int32) int16 {
	return int16(min(max(v, math.MinInt16), math.MaxInt16))
}

// DropChannel returns an effect that sets channel c to zero everywhere.
func DropChannel(c pixfx.Channel) Effect {
	return func(src *pixfx.Buffer) *pixfx.Buffer {
		if src == nil {
			return nil
		}
		dst := src.Clone()
		dst.Fill(c, 0)
		return dst
	}
}

// KeepChannelOnly returns an effect that zeroes the two channels other than c.
func KeepChannelOnly(c pixfx.Channel) Effect {
	return func(src *pixfx.Buffer) *pixfx.Buffer {
		if src == nil {
			return nil
		}
		dst := src.Clone()
		for _, other := range c.Others() {
			dst.Fill(other, 0)
		}
		return dst
	}
}

// Grayscale sets all three channels of each pixel to the mean of the
// original three. The mean is truncated toward zero.
func Grayscale(src *pixfx.Buffer) *pixfx.Buffer {
	return mapPixels(src, func(r, g, b int16) (int16, int16, int16) {
		mean := int16((int32(r) + int32(g) + int32(b)) / 3)
		return mean, mean, mean
	})
}

// Noise returns an effect that adds an independent uniform integer in
// [lo, hi] to every sample and clamps the result to [0, 255].
// If lo > hi the bounds are swapped, and both are limited to the int16 range.
// rng must not be shared with other goroutines while the effect runs; a nil
// rng uses the global source.
func Noise(lo, hi int, rng *rand.Rand) Effect {
	if lo > hi {
		lo, hi = hi, lo
	}
	lo = min(max(lo, math.MinInt16), math.MaxInt16)
	hi = min(max(hi, math.MinInt16), math.MaxInt16)
	span := hi - lo + 1
	draw := rand.IntN
	if rng != nil {
		draw = rng.IntN
	}
	return func(src *pixfx.Buffer) *pixfx.Buffer {
		return mapSamples(src, func(v int16) int16 {
			n := int(v) + lo + draw(span)
			return int16(min(max(n, 0), 255))
		})
	}
}

// Threshold returns an effect that maps samples above cutoff to 255 and
// all others to 0, independently per channel.
func Threshold(cutoff int) Effect {
	return func(src *pixfx.Buffer) *pixfx.Buffer {
		return mapSamples(src, func(v int16) int16 {
			if int(v) > cutoff {
				return 255
			}
			return 0
		})
	}
}
