package effect

import (
	"math"
	"sync"

	"github.com/gogpu/pixfx"
)

// GaussianKernel returns a normalized 1D Gaussian kernel with sigma = radius
// and 2*ceil(3*radius)+1 taps. A radius <= 0 yields the identity kernel [1].
func GaussianKernel(radius float64) []float64 {
	if !(radius > 0) {
		return []float64{1}
	}

	half := int(math.Ceil(radius * 3))
	kernel := make([]float64, half*2+1)
	twoSigmaSq := 2 * radius * radius

	var sum float64
	for i := range kernel {
		x := float64(i - half)
		kernel[i] = math.Exp(-(x * x) / twoSigmaSq)
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// MaxBlurRadius bounds the radius accepted by the "blur" registry entry.
const MaxBlurRadius = 64

// kernels caches Gaussian kernels keyed by the bits of the radius.
var kernels = struct {
	sync.RWMutex
	m map[uint64][]float64
}{m: make(map[uint64][]float64)}

const maxCachedKernels = 64

func cachedKernel(radius float64) []float64 {
	key := math.Float64bits(radius)

	kernels.RLock()
	k, ok := kernels.m[key]
	kernels.RUnlock()
	if ok {
		return k
	}

	k = GaussianKernel(radius)
	kernels.Lock()
	if len(kernels.m) >= maxCachedKernels {
		clear(kernels.m)
	}
	kernels.m[key] = k
	kernels.Unlock()
	return k
}

// Blur returns a separable Gaussian blur with the given radius (sigma).
// Edges are extended by repeating the border sample. Results are rounded
// and are not clamped, so out-of-range input stays out of range.
func Blur(radius float64) Effect {
	return func(src *pixfx.Buffer) *pixfx.Buffer {
		if src == nil {
			return nil
		}
		if !(radius > 0) || src.Len() == 0 {
			return src.Clone()
		}
		kernel := cachedKernel(radius)
		h, w := src.Height(), src.Width()

		// Horizontal pass into a float scratch grid, vertical pass into dst.
		tmp := make([]float64, h*w*pixfx.Channels)
		convolveRows(src.Data(), tmp, h, w, kernel)

		out := make([]float64, len(tmp))
		convolveCols(tmp, out, h, w, kernel)

		dst := pixfx.NewBuffer(h, w)
		data := dst.Data()
		for i, v := range out {
			data[i] = int16(math.Round(v))
		}
		return dst
	}
}

// convolveRows runs the kernel along rows of int16 samples.
func convolveRows(src []int16, dst []float64, h, w int, kernel []float64) {
	half := len(kernel) / 2
	for y := range h {
		row := y * w
		for x := range w {
			for c := range pixfx.Channels {
				var acc float64
				for k, weight := range kernel {
					kx := min(max(x+k-half, 0), w-1)
					acc += float64(src[(row+kx)*pixfx.Channels+c]) * weight
				}
				dst[(row+x)*pixfx.Channels+c] = acc
			}
		}
	}
}

// convolveCols runs the kernel down columns of the scratch grid.
func convolveCols(src, dst []float64, h, w int, kernel []float64) {
	half := len(kernel) / 2
	for y := range h {
		for x := range w {
			for c := range pixfx.Channels {
				var acc float64
				for k, weight := range kernel {
					ky := min(max(y+k-half, 0), h-1)
					acc += src[(ky*w+x)*pixfx.Channels+c] * weight
				}
				dst[(y*w+x)*pixfx.Channels+c] = acc
			}
		}
	}
}
