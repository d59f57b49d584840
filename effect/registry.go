package effect

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/gogpu/pixfx"
)

// Param describes one named effect parameter.
type Param struct {
	Name    string
	Default string
}

// Args holds parameter values for Spec.Build, already merged with defaults.
type Args map[string]string

// Int returns the named argument as an int.
func (a Args) Int(name string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(a[name]))
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidParam, name, a[name])
	}
	return v, nil
}

// Float returns the named argument as a float64.
func (a Args) Float(name string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(a[name]), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not a number", ErrInvalidParam, name, a[name])
	}
	return v, nil
}

// Channel returns the named argument as a color channel.
func (a Args) Channel(name string) (pixfx.Channel, error) {
	c, err := pixfx.ParseChannel(a[name])
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrInvalidParam, name, err)
	}
	return c, nil
}

// Spec is a registry entry: a named effect and how to build it.
type Spec struct {
	Name    string
	Summary string
	Params  []Param
	Build   func(Args) (Effect, error)
}

// Usage returns the expression syntax of the spec, e.g. "threshold[:cutoff=127]".
func (s Spec) Usage() string {
	if len(s.Params) == 0 {
		return s.Name
	}
	parts := make([]string, len(s.Params))
	for i, p := range s.Params {
		parts[i] = p.Name + "=" + p.Default
	}
	return s.Name + "[:" + strings.Join(parts, ",") + "]"
}

func (s Spec) param(name string) bool {
	return slices.ContainsFunc(s.Params, func(p Param) bool { return p.Name == name })
}

// Registry is a dispatch table of effects keyed by name.
//
// Thread safety: Registry is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	specs map[string]Spec
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{specs: make(map[string]Spec)}
}

// Register adds s. Names are case-insensitive; registering an existing
// name fails with ErrDuplicateEffect.
func (r *Registry) Register(s Spec) error {
	name := strings.ToLower(s.Name)
	if name == "" || s.Build == nil {
		return fmt.Errorf("%w: spec %q needs a name and a builder", ErrInvalidParam, s.Name)
	}
	s.Name = name

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.specs[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateEffect, name)
	}
	r.specs[name] = s
	return nil
}

// Lookup returns the spec registered under name.
func (r *Registry) Lookup(name string) (Spec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.specs[strings.ToLower(strings.TrimSpace(name))]
	return s, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.specs))
	for name := range r.specs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Specs returns the registered specs sorted by name.
func (r *Registry) Specs() []Spec {
	names := r.Names()
	specs := make([]Spec, 0, len(names))
	for _, name := range names {
		if s, ok := r.Lookup(name); ok {
			specs = append(specs, s)
		}
	}
	return specs
}

// Parse builds an effect from an expression of the form
//
//	name[:key=value[,key=value...]]
//
// For effects with a single parameter the key may be omitted
// ("threshold:100"). Parameters not given take the spec defaults.
func (r *Registry) Parse(expr string) (Effect, error) {
	name, rest, _ := strings.Cut(strings.TrimSpace(expr), ":")
	spec, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEffect, name)
	}

	args := make(Args, len(spec.Params))
	for _, p := range spec.Params {
		args[p.Name] = p.Default
	}

	if rest = strings.TrimSpace(rest); rest != "" {
		for _, field := range strings.Split(rest, ",") {
			key, value, found := strings.Cut(field, "=")
			if !found {
				if len(spec.Params) != 1 {
					return nil, fmt.Errorf("%w: %s: %q needs key=value", ErrInvalidParam, spec.Name, field)
				}
				key, value = spec.Params[0].Name, field
			}
			key = strings.ToLower(strings.TrimSpace(key))
			if !spec.param(key) {
				return nil, fmt.Errorf("%w: %s has no parameter %q", ErrInvalidParam, spec.Name, key)
			}
			args[key] = strings.TrimSpace(value)
		}
	}

	e, err := spec.Build(args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", spec.Name, err)
	}
	return e, nil
}

// ParseChain parses each expression and chains the results in order.
func (r *Registry) ParseChain(exprs []string) (Effect, error) {
	effects := make([]Effect, 0, len(exprs))
	for _, expr := range exprs {
		e, err := r.Parse(expr)
		if err != nil {
			return nil, err
		}
		effects = append(effects, e)
	}
	pixfx.Logger().Debug("effect: chain parsed", "effects", exprs)
	return Chain(effects...), nil
}

// MaxNoiseAmplitude bounds |lo| and |hi| of the "noise" registry entry.
const MaxNoiseAmplitude = 255

// Settings holds the default parameters of the builtin catalog.
type Settings struct {
	NoiseLo         int
	NoiseHi         int
	ThresholdCutoff int
}

// DefaultSettings are the catalog defaults: noise in [-5, 5], cutoff 127.
var DefaultSettings = Settings{
	NoiseLo:         -5,
	NoiseHi:         5,
	ThresholdCutoff: 127,
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the shared registry holding the builtin catalog with
// DefaultSettings.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = Builtin(DefaultSettings)
	})
	return defaultRegistry
}

// Builtin returns a new registry holding the full effect catalog, with
// parameter defaults taken from s.
func Builtin(s Settings) *Registry {
	r := NewRegistry()
	for _, spec := range builtinSpecs(s) {
		if err := r.Register(spec); err != nil {
			panic(err)
		}
	}
	return r
}

func fixed(e Effect) func(Args) (Effect, error) {
	return func(Args) (Effect, error) { return e, nil }
}

func builtinSpecs(s Settings) []Spec {
	specs := []Spec{
		{Name: "identity", Summary: "leave the image unchanged", Build: fixed(Identity)},
		{Name: "invert", Summary: "replace every sample v with 255-v", Build: fixed(Invert)},
		{Name: "grayscale", Summary: "set each pixel to the mean of its channels", Build: fixed(Grayscale)},
		{Name: "smooth", Summary: "average each pixel with its neighbors", Build: fixed(Smooth)},
		{Name: "normalize", Summary: "stretch each channel to the full 0-255 range", Build: fixed(Normalize)},
		{Name: "sepia", Summary: "apply a sepia tone", Build: fixed(Sepia)},
		{
			Name:    "drop",
			Summary: "turn one channel off",
			Params:  []Param{{Name: "channel", Default: "red"}},
			Build: func(a Args) (Effect, error) {
				c, err := a.Channel("channel")
				if err != nil {
					return nil, err
				}
				return DropChannel(c), nil
			},
		},
		{
			Name:    "keep",
			Summary: "keep one channel and turn the others off",
			Params:  []Param{{Name: "channel", Default: "red"}},
			Build: func(a Args) (Effect, error) {
				c, err := a.Channel("channel")
				if err != nil {
					return nil, err
				}
				return KeepChannelOnly(c), nil
			},
		},
		{
			Name:    "noise",
			Summary: "add uniform random noise in [lo, hi]",
			Params: []Param{
				{Name: "lo", Default: strconv.Itoa(s.NoiseLo)},
				{Name: "hi", Default: strconv.Itoa(s.NoiseHi)},
				{Name: "seed", Default: ""},
			},
			Build: buildNoise,
		},
		{
			Name:    "threshold",
			Summary: "set samples above cutoff to 255 and the rest to 0",
			Params:  []Param{{Name: "cutoff", Default: strconv.Itoa(s.ThresholdCutoff)}},
			Build: func(a Args) (Effect, error) {
				cutoff, err := a.Int("cutoff")
				if err != nil {
					return nil, err
				}
				return Threshold(cutoff), nil
			},
		},
		{
			Name:    "brightness",
			Summary: "scale all channels by factor",
			Params:  []Param{{Name: "factor", Default: "1"}},
			Build:   floatBuilder("factor", Brightness),
		},
		{
			Name:    "contrast",
			Summary: "scale distance from mid-gray by factor",
			Params:  []Param{{Name: "factor", Default: "1"}},
			Build:   floatBuilder("factor", Contrast),
		},
		{
			Name:    "saturation",
			Summary: "blend between grayscale (0) and the original colors (1)",
			Params:  []Param{{Name: "factor", Default: "1"}},
			Build:   floatBuilder("factor", Saturation),
		},
		{
			Name:    "blur",
			Summary: "gaussian blur with the given radius",
			Params:  []Param{{Name: "radius", Default: "1"}},
			Build:   buildBlur,
		},
		{
			Name:    "hue",
			Summary: "rotate hue by the given degrees",
			Params:  []Param{{Name: "degrees", Default: "0"}},
			Build:   floatBuilder("degrees", HueRotate),
		},
	}

	for _, c := range pixfx.AllChannels {
		specs = append(specs,
			Spec{Name: "no-" + c.String(), Summary: "turn the " + c.String() + " channel off", Build: fixed(DropChannel(c))},
			Spec{Name: c.String() + "-only", Summary: "keep only the " + c.String() + " channel", Build: fixed(KeepChannelOnly(c))},
		)
	}
	return specs
}

func floatBuilder(name string, fn func(float64) Effect) func(Args) (Effect, error) {
	return func(a Args) (Effect, error) {
		v, err := a.Float(name)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: %s=%v is not finite", ErrInvalidParam, name, v)
		}
		return fn(v), nil
	}
}

func buildBlur(a Args) (Effect, error) {
	radius, err := a.Float("radius")
	if err != nil {
		return nil, err
	}
	if !(radius >= 0 && radius <= MaxBlurRadius) {
		return nil, fmt.Errorf("%w: radius=%v outside [0, %d]", ErrInvalidParam, radius, MaxBlurRadius)
	}
	return Blur(radius), nil
}

func buildNoise(a Args) (Effect, error) {
	lo, err := a.Int("lo")
	if err != nil {
		return nil, err
	}
	hi, err := a.Int("hi")
	if err != nil {
		return nil, err
	}
	for _, b := range [...]struct {
		name string
		v    int
	}{{"lo", lo}, {"hi", hi}} {
		if b.v < -MaxNoiseAmplitude || b.v > MaxNoiseAmplitude {
			return nil, fmt.Errorf("%w: %s=%d outside [-%d, %d]", ErrInvalidParam, b.name, b.v, MaxNoiseAmplitude, MaxNoiseAmplitude)
		}
	}

	var seed uint64
	if raw := strings.TrimSpace(a["seed"]); raw != "" {
		if seed, err = strconv.ParseUint(raw, 10, 64); err != nil {
			return nil, fmt.Errorf("%w: seed=%q is not an unsigned integer", ErrInvalidParam, raw)
		}
	} else {
		seed = rand.Uint64()
	}
	return Noise(lo, hi, rand.New(rand.NewPCG(seed, seed))), nil
}
