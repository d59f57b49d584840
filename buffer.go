package pixfx

import "fmt"

// Channels is the number of samples stored per pixel.
const Channels = 3

// Buffer is a dense height x width x 3 grid of int16 samples.
//
// Samples are stored row-major as R, G, B triples. Values are not limited to
// [0, 255]: effects may produce negative or oversized intermediates, which
// are clamped only when the buffer is turned back into an image by ToImage.
//
// A Buffer is not safe for concurrent mutation. Distinct buffers may be used
// from different goroutines freely.
type Buffer struct {
	height int
	width  int
	data   []int16
}

// NewBuffer creates a zero-filled buffer with the given dimensions.
// Negative dimensions are treated as zero.
func NewBuffer(height, width int) *Buffer {
	height = max(height, 0)
	width = max(width, 0)
	return &Buffer{
		height: height,
		width:  width,
		data:   make([]int16, height*width*Channels),
	}
}

// NewBufferFrom creates a buffer from a flat row-major sample slice.
// channels must be 3 and len(samples) must equal height*width*channels;
// otherwise ErrInvalidShape is returned. The samples are copied.
func NewBufferFrom(height, width, channels int, samples []int16) (*Buffer, error) {
	if height < 0 || width < 0 {
		return nil, fmt.Errorf("%w: negative dimensions %dx%d", ErrInvalidShape, height, width)
	}
	if channels != Channels {
		return nil, fmt.Errorf("%w: %d channels, want %d", ErrInvalidShape, channels, Channels)
	}
	if len(samples) != height*width*channels {
		return nil, fmt.Errorf("%w: %d samples for %dx%dx%d", ErrInvalidShape, len(samples), height, width, channels)
	}
	b := NewBuffer(height, width)
	copy(b.data, samples)
	return b, nil
}

// Height returns the number of rows.
func (b *Buffer) Height() int {
	return b.height
}

// Width returns the number of columns.
func (b *Buffer) Width() int {
	return b.width
}

// Len returns the total number of samples (height*width*3).
func (b *Buffer) Len() int {
	return len(b.data)
}

// Data returns the raw sample slice. Writes through it modify the buffer.
func (b *Buffer) Data() []int16 {
	return b.data
}

func (b *Buffer) index(y, x int, c Channel) int {
	return (y*b.width+x)*Channels + int(c)
}

func (b *Buffer) inBounds(y, x int, c Channel) bool {
	return y >= 0 && y < b.height && x >= 0 && x < b.width && c.Valid()
}

// At returns the sample at row y, column x, channel c.
// Out-of-range coordinates return 0.
func (b *Buffer) At(y, x int, c Channel) int16 {
	if !b.inBounds(y, x, c) {
		return 0
	}
	return b.data[b.index(y, x, c)]
}

// Set stores v at row y, column x, channel c.
// Out-of-range coordinates are ignored.
func (b *Buffer) Set(y, x int, c Channel, v int16) {
	if !b.inBounds(y, x, c) {
		return
	}
	b.data[b.index(y, x, c)] = v
}

// SetPixel stores all three channels of one pixel.
func (b *Buffer) SetPixel(y, x int, r, g, bl int16) {
	if !b.inBounds(y, x, Red) {
		return
	}
	i := b.index(y, x, Red)
	b.data[i+0] = r
	b.data[i+1] = g
	b.data[i+2] = bl
}

// Pixel returns the three channel samples of one pixel.
func (b *Buffer) Pixel(y, x int) (r, g, bl int16) {
	if !b.inBounds(y, x, Red) {
		return 0, 0, 0
	}
	i := b.index(y, x, Red)
	return b.data[i+0], b.data[i+1], b.data[i+2]
}

// Fill sets every sample of channel c to v.
func (b *Buffer) Fill(c Channel, v int16) {
	if !c.Valid() {
		return
	}
	for i := int(c); i < len(b.data); i += Channels {
		b.data[i] = v
	}
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	out := &Buffer{
		height: b.height,
		width:  b.width,
		data:   make([]int16, len(b.data)),
	}
	copy(out.data, b.data)
	return out
}

// SameShape reports whether both buffers have the same dimensions.
func (b *Buffer) SameShape(other *Buffer) bool {
	return other != nil && b.height == other.height && b.width == other.width
}

// Equal reports whether both buffers have the same shape and samples.
func (b *Buffer) Equal(other *Buffer) bool {
	if !b.SameShape(other) {
		return false
	}
	for i, v := range b.data {
		if other.data[i] != v {
			return false
		}
	}
	return true
}

// ChannelRange returns the minimum and maximum sample of channel c.
// An empty buffer reports (0, 0).
func (b *Buffer) ChannelRange(c Channel) (lo, hi int16) {
	if len(b.data) == 0 || !c.Valid() {
		return 0, 0
	}
	lo, hi = b.data[c], b.data[c]
	for i := int(c) + Channels; i < len(b.data); i += Channels {
		v := b.data[i]
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// String implements fmt.Stringer.
func (b *Buffer) String() string {
	return fmt.Sprintf("Buffer(%dx%dx%d)", b.height, b.width, Channels)
}

// clampSample restricts v to the displayable range [0, 255].
// The high bound is applied first, then the low bound.
func clampSample(v int16) uint8 {
	v = min(v, 255)
	v = max(v, 0)
	return uint8(v)
}
