// Package dataset generates the deterministic integer sequences the benchmark
// counts over. Generation is seeded so that every run, and every strategy
// within a run, observes the same data.
package dataset

import (
	"math/rand/v2"
)

// Defaults for the benchmark input source.
const (
	// DefaultSeed seeds the generator; fixed for reproducible runs.
	DefaultSeed uint64 = 123456
	// DefaultBound is the inclusive upper bound on generated elements.
	DefaultBound = 1_000_000
)

// Generate returns n non-negative integers drawn uniformly from [0, bound],
// produced by a PCG generator seeded with seed. The same (n, bound, seed)
// triple always yields the same sequence.
//
// The returned slice is freshly allocated; callers share it read-only across
// counting strategies and must not mutate it while a measurement is running.
func Generate(n int, bound int, seed uint64) []int {
	if n <= 0 {
		return nil
	}
	if bound < 0 {
		bound = 0
	}

	rng := rand.New(rand.NewPCG(seed, seed))
	data := make([]int, n)
	for i := range data {
		data[i] = rng.IntN(bound + 1)
	}
	return data
}
