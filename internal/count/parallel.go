package count

import (
	"golang.org/x/sync/errgroup"
)

// Parallel counts the elements of data satisfying pred using k concurrent
// workers over the floor-division partition plan.
//
// Worker i scans only plan[i] and writes its result into partial[i]. Each
// slot has exactly one writer, and the aggregation loop reads the slots only
// after every worker has completed, so no synchronization beyond the join is
// needed. Workers receive disjoint sub-slices of data rather than raw index
// pairs: overlapping writes are impossible by construction, not by
// convention.
//
// k <= 1 degrades to Sequential, avoiding goroutine overhead for trivial
// parallelism. k greater than len(data) is permitted; the surplus workers
// receive empty ranges and contribute zero. The result is numerically
// identical to Sequential(data, pred) for every valid k.
func Parallel(data []int, pred func(int) bool, k int) int64 {
	if k <= 1 {
		return Sequential(data, pred)
	}

	plan := Plan(len(data), k)
	partial := make([]int64, k)

	var g errgroup.Group
	for i, r := range plan {
		segment := data[r.Lo:r.Hi]
		g.Go(func() error {
			partial[i] = Sequential(segment, pred)
			return nil
		})
	}
	// Join barrier: no slot is read before every worker has finished.
	// Workers never fail, so the returned error is always nil.
	_ = g.Wait()

	var total int64
	for _, c := range partial {
		total += c
	}
	return total
}
