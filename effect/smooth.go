package effect

import "github.com/gogpu/pixfx"

// neighborOffsets lists the eight surrounding pixels as (dy, dx) pairs.
var neighborOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Smooth replaces every sample with the mean of itself and the same channel
// of its existing neighbors (up to eight). Edge and corner pixels average
// over fewer values. The mean is truncated toward zero.
//
// All reads come from src and all writes go to a new buffer, so a single
// pass never sees already-smoothed values.
func Smooth(src *pixfx.Buffer) *pixfx.Buffer {
	if src == nil {
		return nil
	}

	height, width := src.Height(), src.Width()
	dst := pixfx.NewBuffer(height, width)
	in, out := src.Data(), dst.Data()

	for y := range height {
		for x := range width {
			base := (y*width + x) * pixfx.Channels
			for c := range pixfx.Channels {
				sum := int32(in[base+c])
				count := int32(1)
				for _, off := range neighborOffsets {
					ny, nx := y+off[0], x+off[1]
					if ny < 0 || ny >= height || nx < 0 || nx >= width {
						continue
					}
					sum += int32(in[(ny*width+nx)*pixfx.Channels+c])
					count++
				}
				out[base+c] = int16(sum / count)
			}
		}
	}
	return dst
}
