package effect

import (
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/pixfx"
)

// Test helper functions shared across effect tests.

// newTestBuffer builds a buffer from flat samples and fails the test on error.
func newTestBuffer(t *testing.T, height, width int, samples ...int16) *pixfx.Buffer {
	t.Helper()
	b, err := pixfx.NewBufferFrom(height, width, pixfx.Channels, samples)
	if err != nil {
		t.Fatalf("NewBufferFrom(%d, %d) error = %v", height, width, err)
	}
	return b
}

// uniformBuffer returns a buffer with every sample set to v.
func uniformBuffer(height, width int, v int16) *pixfx.Buffer {
	b := pixfx.NewBuffer(height, width)
	for _, c := range pixfx.AllChannels {
		b.Fill(c, v)
	}
	return b
}

// randomBuffer returns a buffer of samples in [lo, hi] drawn from a fixed seed.
func randomBuffer(height, width int, lo, hi int, seed uint64) *pixfx.Buffer {
	r := rand.New(rand.NewPCG(seed, seed))
	b := pixfx.NewBuffer(height, width)
	data := b.Data()
	for i := range data {
		data[i] = int16(lo + r.IntN(hi-lo+1))
	}
	return b
}

// assertBuffer fails the test when got and want differ in shape or samples.
func assertBuffer(t *testing.T, got, want *pixfx.Buffer) {
	t.Helper()
	if got == nil {
		t.Fatal("got nil buffer")
	}
	if !got.SameShape(want) {
		t.Fatalf("shape = %v, want %v", got, want)
	}
	if diff := cmp.Diff(want.Data(), got.Data()); diff != "" {
		t.Errorf("samples mismatch (-want +got):\n%s", diff)
	}
}
