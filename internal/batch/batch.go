// Package batch runs independent per-file jobs on a bounded set of goroutines.
//
// Each job owns the buffers it creates, so effects never see a buffer shared
// between goroutines.
package batch

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/pixfx"
)

// Job is one input file and the path its result is written to.
type Job struct {
	Input  string
	Output string
}

// Result records the outcome of one job.
type Result struct {
	Job      Job
	Err      error
	Duration time.Duration
}

// Func processes a single job. It should return promptly once ctx is done.
type Func func(ctx context.Context, job Job) error

// Options controls Run.
type Options struct {
	// Workers bounds the number of concurrent jobs. 0 or negative means GOMAXPROCS.
	Workers int

	// FailFast cancels jobs that have not started yet after the first failure.
	FailFast bool
}

// Run executes fn for every job and returns one Result per job, in job order.
//
// The returned error joins all job errors. With FailFast, jobs skipped
// after a failure report the context error.
func Run(ctx context.Context, jobs []Job, opts Options, fn Func) ([]Result, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	log := pixfx.Logger()
	log.Debug("batch: start", "jobs", len(jobs), "workers", workers)

	for i, job := range jobs {
		g.Go(func() error {
			results[i].Job = job
			if err := gctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}

			start := time.Now()
			err := fn(gctx, job)
			results[i].Duration = time.Since(start)
			if err == nil {
				log.Debug("batch: job done", "input", job.Input, "elapsed", results[i].Duration)
				return nil
			}

			results[i].Err = fmt.Errorf("%s: %w", job.Input, err)
			log.Warn("batch: job failed", "input", job.Input, "err", err)
			if opts.FailFast {
				return err
			}
			return nil
		})
	}
	_ = g.Wait()

	errs := make([]error, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return results, errors.Join(errs...)
}
