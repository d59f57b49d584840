// Package effect provides the pixel effects applied to pixfx buffers.
//
// Every effect is a plain function of type [Effect]. Effects never modify
// their input; each call allocates and returns a new buffer with the same
// shape. This makes chains of effects safe to build and reuse:
//
//	chain := effect.Chain(effect.Grayscale, effect.Smooth, effect.Threshold(100))
//	out := chain(buf)
//
// The catalog:
//   - Identity, Invert, Grayscale, Smooth, Normalize
//   - DropChannel and KeepChannelOnly for channel isolation
//   - Noise with a caller-provided random source
//   - Threshold with a cutoff
//   - Color-matrix effects: Sepia, Brightness, Contrast, Saturation
//   - HueRotate in HSV space
//
// Effects are also reachable by name through a [Registry], which parses
// expressions like "threshold:cutoff=100" into ready-to-use effects.
package effect
