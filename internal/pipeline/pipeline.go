// Package pipeline turns input image files into processed output files.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/gogpu/pixfx"
	"github.com/gogpu/pixfx/effect"
	"github.com/gogpu/pixfx/internal/batch"
)

// Pipeline describes the processing applied to every file.
type Pipeline struct {
	// Registry resolves effect expressions. Nil means effect.Default().
	Registry *effect.Registry

	// Effects are effect expressions applied in order.
	Effects []string

	// Width and Height resize the image before effects run. Zero keeps the
	// dimension (or derives it from the other one).
	Width, Height uint

	// Encode controls the output encoding. An empty format is derived from
	// the output file extension.
	Encode pixfx.EncodeOptions
}

func (p *Pipeline) registry() *effect.Registry {
	if p.Registry == nil {
		return effect.Default()
	}
	return p.Registry
}

// Validate checks that every effect expression parses.
func (p *Pipeline) Validate() error {
	_, err := p.registry().ParseChain(p.Effects)
	return err
}

// Process loads job.Input, applies the pipeline and writes job.Output.
//
// The effect chain is built per call, so effects with private state (noise
// sources) are never shared between concurrent jobs.
func (p *Pipeline) Process(ctx context.Context, job batch.Job) error {
	chain, err := p.registry().ParseChain(p.Effects)
	if err != nil {
		return err
	}

	img, err := pixfx.Load(job.Input)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	img = pixfx.Resize(img, p.Width, p.Height)
	buf := chain(pixfx.FromImage(img))

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := pixfx.SaveBuffer(job.Output, buf, p.Encode); err != nil {
		return err
	}

	log := pixfx.Logger()
	if info, err := os.Stat(job.Output); err == nil {
		log.Info("pixfx: wrote", "path", job.Output,
			"width", buf.Width(), "height", buf.Height(),
			"size", humanize.IBytes(uint64(info.Size()))) //nolint:gosec // file size is non-negative
	}
	return nil
}

// Run processes jobs concurrently with batch.Run.
func (p *Pipeline) Run(ctx context.Context, jobs []batch.Job, opts batch.Options) ([]batch.Result, error) {
	return batch.Run(ctx, jobs, opts, p.Process)
}

// OutputPath derives the output file for input: the input base name plus
// suffix, with format's extension (or the input extension when format is
// empty), placed in outDir (or next to the input when outDir is empty).
func OutputPath(input, outDir, suffix string, format pixfx.Format) string {
	dir, base := filepath.Split(input)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if format != "" {
		ext = format.Ext()
	}
	if outDir != "" {
		dir = outDir
	}
	return filepath.Join(dir, stem+suffix+ext)
}

// ParseSize parses "WxH", "Wx" or "xH" into resize dimensions.
// The empty string means no resize.
func ParseSize(s string) (width, height uint, err error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return 0, 0, nil
	}
	ws, hs, ok := strings.Cut(s, "x")
	if !ok {
		return 0, 0, fmt.Errorf("pipeline: size %q: want WxH", s)
	}
	w, err := parseDim(ws)
	if err != nil {
		return 0, 0, fmt.Errorf("pipeline: size %q: %w", s, err)
	}
	h, err := parseDim(hs)
	if err != nil {
		return 0, 0, fmt.Errorf("pipeline: size %q: %w", s, err)
	}
	if w == 0 && h == 0 {
		return 0, 0, fmt.Errorf("pipeline: size %q: both dimensions are zero", s)
	}
	return w, h, nil
}

func parseDim(s string) (uint, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}
