// Package runner drives the benchmark end to end: for every configured
// sequence size and predicate it generates the dataset, times the sequential
// baseline, probes the library execution policies, and sweeps the partitioned
// counter across candidate thread counts. Results stream to a bench.Reporter;
// the runner itself keeps only aggregate counts.
package runner

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/agbru/countbench/internal/bench"
	"github.com/agbru/countbench/internal/config"
	"github.com/agbru/countbench/internal/count"
	"github.com/agbru/countbench/internal/dataset"
	apperrors "github.com/agbru/countbench/internal/errors"
	"github.com/agbru/countbench/internal/logging"
	"github.com/agbru/countbench/internal/predicate"
)

const tracerName = "countbench/runner"

// Summary aggregates the outcome of a full benchmark run.
type Summary struct {
	Configurations int
	Measurements   int
	Mismatches     int
	Unsupported    int
	Elapsed        time.Duration
}

// Runner executes the configured benchmark matrix.
type Runner struct {
	cfg         config.AppConfig
	log         logging.Logger
	parallelism int
}

// New creates a runner. parallelism is the hardware thread count used to
// derive sweep candidates and speedup ratios.
func New(cfg config.AppConfig, log logging.Logger, parallelism int) *Runner {
	if parallelism < 1 {
		parallelism = 1
	}
	return &Runner{cfg: cfg, log: log, parallelism: parallelism}
}

// Candidates returns the thread counts the sweep will evaluate, honoring the
// configured cap.
func (r *Runner) Candidates() []int {
	ks := bench.CandidateThreadCounts(r.parallelism)
	if r.cfg.MaxThreads <= 0 {
		return ks
	}
	capped := ks[:0]
	for _, k := range ks {
		if k <= r.cfg.MaxThreads {
			capped = append(capped, k)
		}
	}
	if len(capped) == 0 {
		capped = append(capped, 1)
	}
	return capped
}

// Run executes every size/predicate configuration in order, streaming results
// to rep. Cancellation is honored between configurations; a running
// measurement is never interrupted, so its timing stays valid. A mismatch
// does not stop the run but is returned as the run's error once everything
// has been measured.
func (r *Runner) Run(ctx context.Context, rep bench.Reporter) (Summary, error) {
	tracer := otel.Tracer(tracerName)
	start := time.Now()

	var summary Summary
	var firstMismatch error

	candidates := r.Candidates()

	for _, size := range r.cfg.Sizes {
		for _, name := range r.cfg.Predicates {
			if err := ctx.Err(); err != nil {
				summary.Elapsed = time.Since(start)
				return summary, err
			}

			pred, err := predicate.ByName(name)
			if err != nil {
				summary.Elapsed = time.Since(start)
				return summary, err
			}

			cctx, span := tracer.Start(ctx, "benchmark.config")
			span.SetAttributes(
				attribute.Int("bench.size", size),
				attribute.String("bench.predicate", name),
				attribute.Int("bench.repeats", r.cfg.Repeats),
			)

			mismatch := r.runConfig(cctx, size, pred, candidates, rep, &summary)
			if mismatch != nil && firstMismatch == nil {
				firstMismatch = mismatch
			}

			span.End()
			summary.Configurations++
		}
	}

	summary.Elapsed = time.Since(start)
	if firstMismatch != nil {
		return summary, firstMismatch
	}
	return summary, nil
}

// runConfig benchmarks one size/predicate pair. It returns the first
// mismatch, if any.
func (r *Runner) runConfig(ctx context.Context, size int, pred predicate.Predicate, candidates []int, rep bench.Reporter, summary *Summary) error {
	tracer := otel.Tracer(tracerName)

	r.log.Info("starting configuration",
		logging.Int("size", size),
		logging.String("predicate", pred.Name))

	rep.ConfigStarted(bench.RunConfig{
		Size:       size,
		Predicate:  pred.Name,
		Repeats:    r.cfg.Repeats,
		Candidates: candidates,
	})

	_, genSpan := tracer.Start(ctx, "benchmark.generate")
	data := dataset.Generate(size, r.cfg.Bound, r.cfg.Seed)
	genSpan.End()

	// Sequential baseline: the count every other strategy is checked
	// against, and the reference time for speedups.
	baseline := count.Sequential(data, pred.Fn)
	seqMedian := bench.Measure(func() { count.Sequential(data, pred.Fn) }, r.cfg.Repeats)
	rep.Record(bench.Measurement{
		Strategy: bench.StrategySequential,
		Threads:  1,
		Duration: seqMedian,
		Count:    baseline,
		Match:    true,
	})
	summary.Measurements++

	var firstMismatch error

	for _, policy := range count.Policies() {
		m, err := r.runPolicy(policy, data, pred, baseline)
		rep.Record(m)
		if m.Unsupported {
			summary.Unsupported++
			r.log.Warn("policy not supported", logging.String("policy", policy.Name()))
			continue
		}
		summary.Measurements++
		if err != nil {
			summary.Mismatches++
			r.log.Error("policy disagrees with baseline", err)
			if firstMismatch == nil {
				firstMismatch = err
			}
		}
	}

	_, sweepSpan := tracer.Start(ctx, "benchmark.sweep")
	counting := &countingReporter{inner: rep, summary: summary, baseline: baseline}
	best := bench.SweepThreadCounts(data, pred.Fn, baseline, candidates, r.cfg.Repeats, r.parallelism, counting)
	sweepSpan.SetAttributes(attribute.Int("bench.best_threads", best.Threads))
	sweepSpan.End()

	if counting.firstMismatch != nil && firstMismatch == nil {
		firstMismatch = counting.firstMismatch
	}

	r.log.Info("configuration complete",
		logging.Int("size", size),
		logging.String("predicate", pred.Name),
		logging.Int("best_threads", best.Threads),
		logging.String("best_median", best.Median.String()))

	return firstMismatch
}

// runPolicy times one library execution policy against the baseline.
func (r *Runner) runPolicy(policy count.Policy, data []int, pred predicate.Predicate, baseline int64) (bench.Measurement, error) {
	got, err := policy.Count(data, pred.Fn)
	if err != nil {
		return bench.Measurement{Strategy: policy.Name(), Unsupported: true}, nil
	}

	med := bench.Measure(func() { _, _ = policy.Count(data, pred.Fn) }, r.cfg.Repeats)
	m := bench.Measurement{
		Strategy: policy.Name(),
		Duration: med,
		Count:    got,
		Match:    got == baseline,
	}
	if !m.Match {
		return m, apperrors.MismatchError{
			Strategy: policy.Name(),
			Got:      got,
			Want:     baseline,
		}
	}
	return m, nil
}

// countingReporter tallies sweep measurements into the run summary while
// forwarding them unchanged.
type countingReporter struct {
	inner         bench.Reporter
	summary       *Summary
	baseline      int64
	firstMismatch error
}

func (c *countingReporter) ConfigStarted(cfg bench.RunConfig) {
	c.inner.ConfigStarted(cfg)
}

func (c *countingReporter) Record(m bench.Measurement) {
	c.summary.Measurements++
	if !m.Match && !m.Unsupported {
		c.summary.Mismatches++
		if c.firstMismatch == nil {
			c.firstMismatch = apperrors.MismatchError{
				Strategy: m.Strategy,
				Threads:  m.Threads,
				Got:      m.Count,
				Want:     c.baseline,
			}
		}
	}
	c.inner.Record(m)
}

func (c *countingReporter) SweepCompleted(best bench.BestResult) {
	c.inner.SweepCompleted(best)
}
