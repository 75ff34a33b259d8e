package batch

import (
	"context"
	"iter"

	"golang.org/x/sync/errgroup"

	"github.com/erraggy/oasguard/validator"
)

// ReportHandler receives each report in source order.
type ReportHandler func(*validator.Report)

// Runner processes every source of a target.
type Runner struct {
	orch     *Orchestrator
	jobs     int
	include  []string
	onReport ReportHandler
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithJobs sets how many documents are processed concurrently. Values below
// one mean one.
func WithJobs(n int) RunnerOption {
	return func(r *Runner) {
		r.jobs = max(n, 1)
	}
}

// WithIncludePatterns limits directory walks to files matching the globs.
func WithIncludePatterns(patterns ...string) RunnerOption {
	return func(r *Runner) {
		r.include = append(r.include, patterns...)
	}
}

// WithReportHandler registers fn to receive every report.
func WithReportHandler(fn ReportHandler) RunnerOption {
	return func(r *Runner) {
		r.onReport = fn
	}
}

// NewRunner creates a Runner around orch.
func NewRunner(orch *Orchestrator, opts ...RunnerOption) *Runner {
	r := &Runner{orch: orch, jobs: 1}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run processes target and returns the counters of this run. Per-document
// failures are reported and counted; the only error is the context's.
func (r *Runner) Run(ctx context.Context, target string) (Counters, error) {
	sources := Sources(target, WithInclude(r.include...))
	if r.jobs > 1 {
		return r.runConcurrent(ctx, sources)
	}

	var counters Counters
	for src, err := range sources {
		if ctx.Err() != nil {
			return counters, ctx.Err()
		}
		var report *validator.Report
		if err != nil {
			report = r.orch.IOFailure(src, err)
		} else {
			report = r.orch.Process(ctx, src)
		}
		r.emit(&counters, report)
	}
	return counters, ctx.Err()
}

// runConcurrent processes up to r.jobs documents at a time. Each source gets
// a result slot queued in source order, and the calling goroutine drains the
// queue, so reports and counters never interleave.
func (r *Runner) runConcurrent(ctx context.Context, sources iter.Seq2[Source, error]) (Counters, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.jobs)

	queue := make(chan chan *validator.Report, r.jobs)
	go func() {
		defer close(queue)
		for src, err := range sources {
			if gctx.Err() != nil {
				return
			}
			slot := make(chan *validator.Report, 1)
			queue <- slot
			if err != nil {
				slot <- r.orch.IOFailure(src, err)
				continue
			}
			g.Go(func() error {
				slot <- r.orch.Process(gctx, src)
				return nil
			})
		}
	}()

	var counters Counters
	for slot := range queue {
		r.emit(&counters, <-slot)
	}
	if err := g.Wait(); err != nil {
		return counters, err
	}
	return counters, ctx.Err()
}

func (r *Runner) emit(counters *Counters, report *validator.Report) {
	counters.Add(report)
	if r.onReport != nil {
		r.onReport(report)
	}
}
