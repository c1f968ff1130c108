// Package predicate defines the named, pure element predicates the benchmark
// counts against. Predicates are stateless and safe to call concurrently.
package predicate

import (
	"math"
	"sort"
	"strings"

	apperrors "github.com/agbru/countbench/internal/errors"
)

// heavyRounds is the number of square-root accumulation rounds performed by
// the heavy predicate. Chosen so a single evaluation costs roughly an order
// of magnitude more than the parity test, making thread-creation overhead
// visible at small inputs and amortized at large ones.
const heavyRounds = 12

// Predicate is a named, side-effect-free test over a single element.
// Calling Fn twice on the same element always yields the same result, and Fn
// never mutates shared state, so it may run from any number of goroutines.
type Predicate struct {
	// Name identifies the predicate in configuration and reports.
	Name string
	// Fn evaluates the predicate for one element.
	Fn func(x int) bool
}

// Even returns the cheap parity predicate: true for even elements.
func Even() Predicate {
	return Predicate{
		Name: "even",
		Fn: func(x int) bool {
			return x&1 == 0
		},
	}
}

// Heavy returns an artificially expensive predicate. It accumulates
// heavyRounds square roots of consecutive values and tests the parity of the
// truncated sum, giving a deterministic boolean with a per-element cost
// dominated by floating-point work.
func Heavy() Predicate {
	return Predicate{
		Name: "heavy",
		Fn: func(x int) bool {
			var s float64
			for i := 0; i < heavyRounds; i++ {
				s += math.Sqrt(float64(x + i))
			}
			return int64(s)&1 == 1
		},
	}
}

// DefaultSet returns the benchmark's standard predicate pair, cheap first.
func DefaultSet() []Predicate {
	return []Predicate{Even(), Heavy()}
}

// ByName resolves a predicate by its configuration name.
// Returns a ConfigError listing the valid names when the name is unknown.
func ByName(name string) (Predicate, error) {
	for _, p := range DefaultSet() {
		if p.Name == name {
			return p, nil
		}
	}
	return Predicate{}, apperrors.NewConfigError(
		"unknown predicate %q (available: %s)", name, strings.Join(Names(), ", "))
}

// Names returns the sorted list of available predicate names.
func Names() []string {
	set := DefaultSet()
	names := make([]string, len(set))
	for i, p := range set {
		names[i] = p.Name
	}
	sort.Strings(names)
	return names
}
