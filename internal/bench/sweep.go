package bench

//go:generate mockgen -source=sweep.go -destination=mocks/mock_reporter.go -package=mocks

import (
	"math"
	"sort"
	"time"

	"github.com/agbru/countbench/internal/count"
)

// Strategy names used in measurement records.
const (
	StrategySequential  = "sequential"
	StrategyPartitioned = "partitioned"
)

// baseCandidates is the fixed set of thread counts every sweep tries,
// independent of the hardware.
var baseCandidates = []int{1, 2, 4, 8, 16, 32, 64}

// CandidateThreadCounts returns the thread counts a sweep evaluates for the
// given hardware parallelism: the fixed base set merged with powers of two up
// to twice the parallelism, deduplicated and ascending. Oversubscribed counts
// beyond the core count are deliberate; they expose scheduling overhead in
// the results. parallelism below 1 is coerced to 1.
func CandidateThreadCounts(parallelism int) []int {
	if parallelism < 1 {
		parallelism = 1
	}
	seen := make(map[int]bool, len(baseCandidates))
	var ks []int
	add := func(k int) {
		if !seen[k] {
			seen[k] = true
			ks = append(ks, k)
		}
	}
	for _, k := range baseCandidates {
		add(k)
	}
	for k := 2; k <= 2*parallelism; k *= 2 {
		add(k)
	}
	sort.Ints(ks)
	return ks
}

// RunConfig identifies one benchmark configuration: a sequence size paired
// with a predicate, plus the measurement settings applied to it.
type RunConfig struct {
	Size       int
	Predicate  string
	Repeats    int
	Candidates []int
}

// Measurement is one timed strategy at one thread count within a
// configuration. Threads is 1 for the sequential baseline and 0 for opaque
// policies that size themselves. Count is the result the strategy produced
// on its correctness run. Unsupported marks a policy that declined to run;
// the other fields are meaningless when it is set.
type Measurement struct {
	Strategy    string
	Threads     int
	Duration    time.Duration
	Count       int64
	Unsupported bool
	Match       bool
}

// BestResult is the outcome of a thread-count sweep: the fastest candidate by
// median duration. Ties favor the smaller thread count. Ratio relates the
// winning count to the hardware parallelism the sweep ran under.
type BestResult struct {
	Threads     int
	Median      time.Duration
	Parallelism int
	Ratio       float64
}

// Reporter receives benchmark progress as it happens. Implementations render
// tables, feed a TUI, or update metrics; the harness never buffers results
// itself.
type Reporter interface {
	// ConfigStarted announces a new size/predicate configuration.
	ConfigStarted(cfg RunConfig)
	// Record delivers one completed measurement.
	Record(m Measurement)
	// SweepCompleted delivers the winning thread count for the
	// configuration just swept.
	SweepCompleted(best BestResult)
}

// SweepThreadCounts times the partitioned counter at every candidate thread
// count over data and returns the fastest by median duration. Each candidate
// is first checked once against the sequential baseline; a mismatch is
// recorded and the sweep continues, so a single bad count never hides the
// timings of the others. Candidates are assumed ascending, so on equal
// medians the smaller count wins.
func SweepThreadCounts(data []int, pred func(int) bool, baseline int64, candidates []int, repeats, parallelism int, rep Reporter) BestResult {
	best := BestResult{
		Threads:     1,
		Median:      time.Duration(math.MaxInt64),
		Parallelism: parallelism,
	}
	for _, k := range candidates {
		got := count.Parallel(data, pred, k)
		med := Measure(func() { count.Parallel(data, pred, k) }, repeats)
		rep.Record(Measurement{
			Strategy: StrategyPartitioned,
			Threads:  k,
			Duration: med,
			Count:    got,
			Match:    got == baseline,
		})
		if med < best.Median {
			best.Threads = k
			best.Median = med
		}
	}
	if parallelism > 0 {
		best.Ratio = float64(best.Threads) / float64(parallelism)
	}
	rep.SweepCompleted(best)
	return best
}

// MultiReporter fans every event out to each reporter in order.
type MultiReporter []Reporter

func (mr MultiReporter) ConfigStarted(cfg RunConfig) {
	for _, r := range mr {
		r.ConfigStarted(cfg)
	}
}

func (mr MultiReporter) Record(m Measurement) {
	for _, r := range mr {
		r.Record(m)
	}
}

func (mr MultiReporter) SweepCompleted(best BestResult) {
	for _, r := range mr {
		r.SweepCompleted(best)
	}
}

// NopReporter discards all events. Useful for warm-up passes and tests that
// only care about the returned result.
type NopReporter struct{}

func (NopReporter) ConfigStarted(RunConfig)   {}
func (NopReporter) Record(Measurement)        {}
func (NopReporter) SweepCompleted(BestResult) {}
