package effect

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/gogpu/pixfx"
)

func TestInvertScenario(t *testing.T) {
	src := newTestBuffer(t, 1, 1, 10, 20, 30)
	got := Invert(src)
	assertBuffer(t, got, newTestBuffer(t, 1, 1, 245, 235, 225))
}

func TestInvertInvolution(t *testing.T) {
	for seed := range uint64(5) {
		src := randomBuffer(7, 5, -300, 600, seed)
		assertBuffer(t, Invert(Invert(src)), src)
	}
}

func TestInvertSaturates(t *testing.T) {
	src := newTestBuffer(t, 1, 1, math.MinInt16, -32512, math.MaxInt16)
	got := Invert(src)
	assertBuffer(t, got, newTestBuffer(t, 1, 1, math.MaxInt16, math.MaxInt16, 255-math.MaxInt16))
}

func TestEffectsDoNotMutateInput(t *testing.T) {
	effects := map[string]Effect{
		"identity":   Identity,
		"invert":     Invert,
		"drop":       DropChannel(pixfx.Green),
		"keep":       KeepChannelOnly(pixfx.Blue),
		"grayscale":  Grayscale,
		"noise":      Noise(-5, 5, rand.New(rand.NewPCG(1, 2))),
		"smooth":     Smooth,
		"normalize":  Normalize,
		"threshold":  Threshold(127),
		"sepia":      Sepia,
		"brightness": Brightness(1.5),
		"hue":        HueRotate(90),
	}

	for name, e := range effects {
		t.Run(name, func(t *testing.T) {
			src := randomBuffer(4, 6, 0, 255, 42)
			orig := src.Clone()

			got := e(src)
			if got == src {
				t.Error("effect returned its input buffer")
			}
			if !got.SameShape(src) {
				t.Errorf("shape = %v, want %v", got, src)
			}
			assertBuffer(t, src, orig)
		})
	}
}

func TestEffectsNilInput(t *testing.T) {
	for _, e := range []Effect{Identity, Invert, DropChannel(pixfx.Red), KeepChannelOnly(pixfx.Red),
		Grayscale, Noise(-5, 5, nil), Smooth, Normalize, Threshold(10), Sepia, HueRotate(10), Blur(1)} {
		if got := e(nil); got != nil {
			t.Errorf("effect(nil) = %v, want nil", got)
		}
	}
}

func TestIdentity(t *testing.T) {
	src := randomBuffer(3, 3, 0, 255, 7)
	assertBuffer(t, Identity(src), src)
}

func TestDropChannel(t *testing.T) {
	src := newTestBuffer(t, 1, 2, 1, 2, 3, 4, 5, 6)

	tests := []struct {
		c    pixfx.Channel
		want []int16
	}{
		{pixfx.Red, []int16{0, 2, 3, 0, 5, 6}},
		{pixfx.Green, []int16{1, 0, 3, 4, 0, 6}},
		{pixfx.Blue, []int16{1, 2, 0, 4, 5, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.c.String(), func(t *testing.T) {
			assertBuffer(t, DropChannel(tt.c)(src), newTestBuffer(t, 1, 2, tt.want...))
		})
	}
}

func TestKeepChannelOnly(t *testing.T) {
	src := newTestBuffer(t, 1, 2, 1, 2, 3, 4, 5, 6)

	tests := []struct {
		c    pixfx.Channel
		want []int16
	}{
		{pixfx.Red, []int16{1, 0, 0, 4, 0, 0}},
		{pixfx.Green, []int16{0, 2, 0, 0, 5, 0}},
		{pixfx.Blue, []int16{0, 0, 3, 0, 0, 6}},
	}
	for _, tt := range tests {
		t.Run(tt.c.String(), func(t *testing.T) {
			assertBuffer(t, KeepChannelOnly(tt.c)(src), newTestBuffer(t, 1, 2, tt.want...))
		})
	}
}

func TestKeepThenDropRedIsBlack(t *testing.T) {
	src := randomBuffer(5, 5, 0, 255, 3)
	got := Apply(src, KeepChannelOnly(pixfx.Red), DropChannel(pixfx.Red))
	assertBuffer(t, got, pixfx.NewBuffer(5, 5))
}

func TestGrayscale(t *testing.T) {
	src := newTestBuffer(t, 1, 3,
		10, 20, 30,
		0, 0, 1,
		255, 255, 254,
	)
	want := newTestBuffer(t, 1, 3,
		20, 20, 20,
		0, 0, 0,
		254, 254, 254,
	)
	assertBuffer(t, Grayscale(src), want)
}

func TestNoiseBounds(t *testing.T) {
	src := randomBuffer(10, 10, 0, 255, 11)
	got := Noise(-5, 5, rand.New(rand.NewPCG(5, 6)))(src)

	in, out := src.Data(), got.Data()
	for i := range in {
		if out[i] < 0 || out[i] > 255 {
			t.Fatalf("sample %d = %d, outside [0, 255]", i, out[i])
		}
		lo := max(in[i]-5, 0)
		hi := min(in[i]+5, 255)
		if out[i] < lo || out[i] > hi {
			t.Fatalf("sample %d: %d -> %d, want within [%d, %d]", i, in[i], out[i], lo, hi)
		}
	}
}

func TestNoiseDeterministicWithSeed(t *testing.T) {
	src := randomBuffer(4, 4, 0, 255, 1)
	a := Noise(-5, 5, rand.New(rand.NewPCG(9, 9)))(src)
	b := Noise(-5, 5, rand.New(rand.NewPCG(9, 9)))(src)
	assertBuffer(t, a, b)
}

func TestNoiseSwappedBounds(t *testing.T) {
	src := uniformBuffer(3, 3, 100)
	got := Noise(3, 3, nil)(src)
	assertBuffer(t, got, uniformBuffer(3, 3, 103))

	got = Noise(2, -2, rand.New(rand.NewPCG(1, 1)))(src)
	for i, v := range got.Data() {
		if v < 98 || v > 102 {
			t.Fatalf("sample %d = %d, want within [98, 102]", i, v)
		}
	}
}

func TestNoiseClamps(t *testing.T) {
	src := newTestBuffer(t, 1, 1, 0, 255, -40)
	got := Noise(-10, -10, nil)(src)
	assertBuffer(t, got, newTestBuffer(t, 1, 1, 0, 245, 0))
}

func TestNoiseExtremeBounds(t *testing.T) {
	src := uniformBuffer(4, 4, 100)
	got := Noise(0, math.MaxInt, rand.New(rand.NewPCG(1, 1)))(src)
	for i, v := range got.Data() {
		if v < 100 || v > 255 {
			t.Fatalf("sample %d = %d, want within [100, 255]", i, v)
		}
	}

	got = Noise(math.MinInt, math.MaxInt, rand.New(rand.NewPCG(2, 2)))(src)
	for i, v := range got.Data() {
		if v < 0 || v > 255 {
			t.Fatalf("sample %d = %d, want within [0, 255]", i, v)
		}
	}
}

func TestThresholdBinary(t *testing.T) {
	src := randomBuffer(8, 8, -100, 400, 21)
	got := Threshold(127)(src)
	for i, v := range got.Data() {
		if v != 0 && v != 255 {
			t.Fatalf("sample %d = %d, want 0 or 255", i, v)
		}
	}
}

func TestThresholdCutoff(t *testing.T) {
	src := newTestBuffer(t, 1, 2, 126, 127, 128, 0, 255, 300)
	assertBuffer(t, Threshold(127)(src), newTestBuffer(t, 1, 2, 0, 0, 255, 0, 255, 255))
	assertBuffer(t, Threshold(0)(src), newTestBuffer(t, 1, 2, 255, 255, 255, 0, 255, 255))
}

func TestChainOrder(t *testing.T) {
	src := newTestBuffer(t, 1, 1, 10, 200, 30)

	// threshold then invert vs invert then threshold
	a := Chain(Threshold(127), Invert)(src)
	assertBuffer(t, a, newTestBuffer(t, 1, 1, 255, 0, 255))

	b := Chain(Invert, Threshold(127))(src)
	assertBuffer(t, b, newTestBuffer(t, 1, 1, 255, 0, 255))

	c := Chain(DropChannel(pixfx.Green), Invert)(src)
	assertBuffer(t, c, newTestBuffer(t, 1, 1, 245, 255, 225))
}

func TestChainEmpty(t *testing.T) {
	src := newTestBuffer(t, 1, 1, 1, 2, 3)
	got := Chain()(src)
	if got == src {
		t.Error("empty chain returned its input buffer")
	}
	assertBuffer(t, got, src)
}

func TestChainReturnsCopyForPassThrough(t *testing.T) {
	passThrough := func(b *pixfx.Buffer) *pixfx.Buffer { return b }
	src := newTestBuffer(t, 1, 1, 1, 2, 3)
	if got := Chain(passThrough)(src); got == src {
		t.Error("chain of pass-through effects returned its input buffer")
	}
}
