package effect

import "github.com/gogpu/pixfx"

// ColorMatrix is a 3x4 color transformation in row-major order:
//
//	[R']   [m0  m1  m2  m3 ]   [R]
//	[G'] = [m4  m5  m6  m7 ] * [G]
//	[B']   [m8  m9  m10 m11]   [B]
//	                           [1]
//
// The fourth column is a bias in sample units. Inputs are read as-is and
// results are rounded and clamped to [0, 255].
type ColorMatrix [12]float64

// IdentityMatrix passes colors through unchanged.
var IdentityMatrix = ColorMatrix{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
}

// SepiaMatrix applies a warm brown tone.
var SepiaMatrix = ColorMatrix{
	0.393, 0.769, 0.189, 0,
	0.349, 0.686, 0.168, 0,
	0.272, 0.534, 0.131, 0,
}

// BrightnessMatrix scales all channels by factor.
// 0 = black, 1 = unchanged, 2 = twice as bright.
func BrightnessMatrix(factor float64) ColorMatrix {
	return ColorMatrix{
		factor, 0, 0, 0,
		0, factor, 0, 0,
		0, 0, factor, 0,
	}
}

// ContrastMatrix scales distance from mid-gray by factor.
// 0 = flat gray, 1 = unchanged, 2 = high contrast.
func ContrastMatrix(factor float64) ColorMatrix {
	offset := 128 * (1 - factor)
	return ColorMatrix{
		factor, 0, 0, offset,
		0, factor, 0, offset,
		0, 0, factor, offset,
	}
}

// SaturationMatrix blends between Rec. 709 luminance (0) and the original
// color (1). Values above 1 oversaturate.
func SaturationMatrix(factor float64) ColorMatrix {
	const (
		lumR = 0.2126
		lumG = 0.7152
		lumB = 0.0722
	)
	inv := 1 - factor
	return ColorMatrix{
		lumR*inv + factor, lumG * inv, lumB * inv, 0,
		lumR * inv, lumG*inv + factor, lumB * inv, 0,
		lumR * inv, lumG * inv, lumB*inv + factor, 0,
	}
}

// Then returns the matrix equivalent to applying m first and next second,
// without the intermediate clamp.
func (m ColorMatrix) Then(next ColorMatrix) ColorMatrix {
	var r ColorMatrix
	for row := range 3 {
		for col := range 3 {
			var sum float64
			for k := range 3 {
				sum += next[row*4+k] * m[k*4+col]
			}
			r[row*4+col] = sum
		}
		r[row*4+3] = next[row*4+0]*m[3] + next[row*4+1]*m[7] +
			next[row*4+2]*m[11] + next[row*4+3]
	}
	return r
}

// Effect returns an effect applying m to every pixel.
func (m ColorMatrix) Effect() Effect {
	return func(src *pixfx.Buffer) *pixfx.Buffer {
		return mapPixels(src, m.transform)
	}
}

func (m *ColorMatrix) transform(r, g, b int16) (int16, int16, int16) {
	fr, fg, fb := float64(r), float64(g), float64(b)
	return clampRound(m[0]*fr + m[1]*fg + m[2]*fb + m[3]),
		clampRound(m[4]*fr + m[5]*fg + m[6]*fb + m[7]),
		clampRound(m[8]*fr + m[9]*fg + m[10]*fb + m[11])
}

// clampRound rounds v into [0, 255]. NaN maps to 0.
func clampRound(v float64) int16 {
	if !(v > 0) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return int16(v + 0.5)
}

// Sepia applies SepiaMatrix.
func Sepia(src *pixfx.Buffer) *pixfx.Buffer {
	return SepiaMatrix.Effect()(src)
}

// Brightness returns an effect applying BrightnessMatrix(factor).
func Brightness(factor float64) Effect {
	return BrightnessMatrix(factor).Effect()
}

// Contrast returns an effect applying ContrastMatrix(factor).
func Contrast(factor float64) Effect {
	return ContrastMatrix(factor).Effect()
}

// Saturation returns an effect applying SaturationMatrix(factor).
func Saturation(factor float64) Effect {
	return SaturationMatrix(factor).Effect()
}
