package count

import (
	"errors"
	"runtime"
	"sync/atomic"

	"github.com/exascience/pargo/parallel"
)

// ErrPolicyUnsupported is returned by Policy.Count when the policy's
// execution strategy is unavailable on the current runtime. It is an
// expected, recoverable condition: callers record the policy as "not
// supported" and continue with the remaining strategies.
var ErrPolicyUnsupported = errors.New("execution policy not supported on this runtime")

// Names of the externally supplied execution policies.
const (
	// PolicyReduce is the divide-and-conquer parallel reduction policy.
	PolicyReduce = "pargo/reduce"
	// PolicyAtomic is the unordered parallel range policy with atomic
	// aggregation.
	PolicyAtomic = "pargo/atomic"
)

// Policy is an opaque, externally supplied counting strategy. The benchmark
// treats a policy as a black box: it only invokes Count synchronously and
// compares the result against the sequential baseline. Policies form a small
// closed set constructed by Policies; they are tagged by name, never
// subclassed.
type Policy struct {
	name      string
	available func() bool
	count     func(data []int, pred func(int) bool) int64
}

// Name returns the policy's identifier.
func (p Policy) Name() string { return p.name }

// Count applies the policy to data. When the underlying execution strategy
// is unavailable it returns ErrPolicyUnsupported without touching the data.
func (p Policy) Count(data []int, pred func(int) bool) (int64, error) {
	if p.available != nil && !p.available() {
		return 0, ErrPolicyUnsupported
	}
	return p.count(data, pred), nil
}

// Policies returns the closed set of library-provided execution policies, in
// reporting order.
func Policies() []Policy {
	return []Policy{reducePolicy(), atomicPolicy()}
}

// parallelRuntime reports whether the runtime can actually execute
// goroutines in parallel. With GOMAXPROCS=1 the parallel policies would
// silently serialize, so they are reported as unsupported instead, mirroring
// runtimes where a parallel execution mode is simply absent.
func parallelRuntime() bool {
	return runtime.GOMAXPROCS(0) > 1
}

// reducePolicy counts via pargo's divide-and-conquer integer range reduction
// (parallel.RangeReduceInt). The library splits [0, len(data)) recursively,
// counts the leaves in parallel, and combines per-subrange counts pairwise.
// Threshold 0 lets the library pick a grain from the available parallelism.
func reducePolicy() Policy {
	return Policy{
		name:      PolicyReduce,
		available: parallelRuntime,
		count: func(data []int, pred func(int) bool) int64 {
			total := parallel.RangeReduceInt(0, len(data), 0,
				func(low, high int) int {
					c := 0
					for _, v := range data[low:high] {
						if pred(v) {
							c++
						}
					}
					return c
				},
				func(x, y int) int { return x + y },
			)
			return int64(total)
		},
	}
}

// atomicPolicy counts via pargo's parallel range with a single shared
// accumulator. Each library-chosen subrange counts locally and publishes one
// atomic add; aggregation order is unspecified, which is harmless since
// addition over disjoint partial counts commutes.
func atomicPolicy() Policy {
	return Policy{
		name:      PolicyAtomic,
		available: parallelRuntime,
		count: func(data []int, pred func(int) bool) int64 {
			var total atomic.Int64
			parallel.Range(0, len(data), 0, func(low, high int) {
				var c int64
				for _, v := range data[low:high] {
					if pred(v) {
						c++
					}
				}
				total.Add(c)
			})
			return total.Load()
		},
	}
}
