package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gogpu/pixfx"
	"github.com/gogpu/pixfx/internal/batch"
	"github.com/gogpu/pixfx/internal/config"
	"github.com/gogpu/pixfx/internal/pipeline"
)

type applyOptions struct {
	effects  []string
	outDir   string
	suffix   string
	format   string
	quality  int
	size     string
	workers  int
	failFast bool
}

func newApplyCmd(root *rootOptions) *cobra.Command {
	opts := &applyOptions{}

	cmd := &cobra.Command{
		Use:   "apply [flags] <input>...",
		Short: "Apply an effect chain to image files",
		Long: `Apply loads each input image, optionally resizes it, runs the effects
given with --effect in order and writes <out-dir>/<name><suffix>.<ext>.

Effect expressions have the form name[:key=value,...], for example
"threshold:cutoff=100" or "noise:lo=-10,hi=10". Run "pixfx list" for the catalog.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd, root, opts, args)
		},
	}

	f := cmd.Flags()
	f.StringArrayVarP(&opts.effects, "effect", "e", nil, "effect expression, repeatable, applied in order")
	f.StringVarP(&opts.outDir, "out-dir", "o", "", "output directory (default: next to each input)")
	f.StringVar(&opts.suffix, "suffix", "", `suffix appended to output names (default "_fx")`)
	f.StringVar(&opts.format, "format", "", "output format: png, jpg, gif, bmp, tiff (default: input extension)")
	f.IntVar(&opts.quality, "quality", 0, "JPEG quality 1-100 (default 90)")
	f.StringVar(&opts.size, "resize", "", "resize before effects, WxH, Wx or xH")
	f.IntVar(&opts.workers, "workers", 0, "files processed concurrently (default GOMAXPROCS)")
	f.BoolVar(&opts.failFast, "fail-fast", false, "stop starting new files after the first failure")

	return cmd
}

// merge overlays explicitly set flags on the loaded config.
func (o *applyOptions) merge(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("out-dir") {
		cfg.OutDir = o.outDir
	}
	if f.Changed("suffix") {
		cfg.Suffix = o.suffix
	}
	if f.Changed("format") {
		cfg.Format = o.format
	}
	if f.Changed("quality") {
		cfg.Quality = o.quality
	}
	if f.Changed("workers") {
		cfg.Workers = o.workers
	}
}

func runApply(cmd *cobra.Command, root *rootOptions, opts *applyOptions, args []string) error {
	cfg, reg, err := root.load()
	if err != nil {
		return err
	}
	opts.merge(cmd, cfg)

	var format pixfx.Format
	if cfg.Format != "" {
		if format, err = pixfx.ParseFormat(cfg.Format); err != nil {
			return err
		}
	}

	width, height, err := pipeline.ParseSize(opts.size)
	if err != nil {
		return err
	}

	p := &pipeline.Pipeline{
		Registry: reg,
		Effects:  opts.effects,
		Width:    width,
		Height:   height,
		Encode:   pixfx.EncodeOptions{Format: format, Quality: cfg.Quality},
	}
	if err := p.Validate(); err != nil {
		return err
	}

	jobs, err := buildJobs(args, cfg.OutDir, cfg.Suffix, format)
	if err != nil {
		return err
	}

	results, err := p.Run(cmd.Context(), jobs, batch.Options{Workers: cfg.Workers, FailFast: opts.failFast})
	for _, r := range results {
		if r.Err == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", r.Job.Input, r.Job.Output)
		}
	}
	return err
}

// buildJobs expands glob patterns the shell left alone and pairs each input
// with its output path.
func buildJobs(args []string, outDir, suffix string, format pixfx.Format) ([]batch.Job, error) {
	var jobs []batch.Job
	seen := make(map[string]bool)
	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			// Let Load report the missing file.
			matches = []string{arg}
		}
		for _, in := range matches {
			if seen[in] {
				continue
			}
			seen[in] = true
			jobs = append(jobs, batch.Job{
				Input:  in,
				Output: pipeline.OutputPath(in, outDir, suffix, format),
			})
		}
	}
	for _, job := range jobs {
		if filepath.Clean(job.Input) == filepath.Clean(job.Output) {
			return nil, fmt.Errorf("output would overwrite input %s; set --suffix or --out-dir", job.Input)
		}
	}
	return jobs, nil
}
