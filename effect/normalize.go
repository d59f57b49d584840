package effect

import "github.com/gogpu/pixfx"

// Normalize rescales each channel independently so that its minimum maps to
// 0 and its maximum maps to 255:
//
//	v' = trunc((v - min) / (max - min) * 255)
//
// A channel whose samples are all equal is left unchanged.
func Normalize(src *pixfx.Buffer) *pixfx.Buffer {
	if src == nil {
		return nil
	}

	dst := src.Clone()
	out := dst.Data()
	for _, c := range pixfx.AllChannels {
		lo, hi := src.ChannelRange(c)
		if lo == hi {
			continue
		}
		span := float64(hi) - float64(lo)
		for i := int(c); i < len(out); i += pixfx.Channels {
			out[i] = int16((float64(out[i]) - float64(lo)) / span * 255)
		}
	}
	return dst
}
