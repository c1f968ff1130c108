// Package bench implements the measurement harness and the thread-count
// sweep: median-of-repeats timing, candidate enumeration, correctness
// checking against the sequential oracle, and best-result selection.
package bench

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// DefaultRepeats is the standard number of timed runs per strategy. Seven
// repeats give a stable median while keeping sweeps over large inputs
// affordable.
const DefaultRepeats = 7

// Measure executes op repeats times, timing each run with the monotonic
// clock, and returns the median elapsed time. The median, unlike the mean,
// shrugs off the occasional run inflated by OS preemption without requiring
// a trimmed mean or outlier test. No run is discarded.
//
// repeats below 1 is coerced to 1; Measure(op, 1) returns exactly the single
// measured duration. op's side effects are the caller's concern: the harness
// assumes repeating the operation is free of observable effects, and any
// result op produces must be validated separately.
func Measure(op func(), repeats int) time.Duration {
	if repeats < 1 {
		repeats = 1
	}
	samples := make([]float64, repeats)
	for i := range samples {
		start := time.Now()
		op()
		samples[i] = float64(time.Since(start))
	}
	return time.Duration(medianOf(samples))
}

// medianOf returns the empirical median of the samples. For odd counts this
// is the middle element; for even counts the lower-middle. The slice is
// sorted in place.
func medianOf(samples []float64) float64 {
	sort.Float64s(samples)
	return stat.Quantile(0.5, stat.Empirical, samples, nil)
}
