package count

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestPlanSmallCases pins the plan on hand-checked inputs.
func TestPlanSmallCases(t *testing.T) {
	t.Run("n=5 k=2 splits 2/3", func(t *testing.T) {
		plan := Plan(5, 2)
		want := []Range{{0, 2}, {2, 5}}
		if len(plan) != len(want) {
			t.Fatalf("len = %d, want %d", len(plan), len(want))
		}
		for i := range want {
			if plan[i] != want[i] {
				t.Errorf("plan[%d] = %+v, want %+v", i, plan[i], want[i])
			}
		}
	})

	t.Run("n=0 yields k empty ranges", func(t *testing.T) {
		plan := Plan(0, 4)
		if len(plan) != 4 {
			t.Fatalf("len = %d, want 4", len(plan))
		}
		for i, r := range plan {
			if r.Len() != 0 {
				t.Errorf("plan[%d] = %+v, want empty", i, r)
			}
		}
	})

	t.Run("k>n leaves surplus ranges empty", func(t *testing.T) {
		plan := Plan(3, 8)
		total := 0
		for _, r := range plan {
			total += r.Len()
		}
		if total != 3 {
			t.Errorf("ranges cover %d indices, want 3", total)
		}
	})

	t.Run("k<1 coerced to a single range", func(t *testing.T) {
		plan := Plan(10, 0)
		if len(plan) != 1 || plan[0] != (Range{0, 10}) {
			t.Errorf("Plan(10, 0) = %+v, want [{0 10}]", plan)
		}
	})
}

// TestPlanProperties verifies the partition plan invariants for arbitrary
// (n, k): contiguity, disjointness, exhaustiveness, and balance within one.
func TestPlanProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("ranges are contiguous and exhaustive", prop.ForAll(
		func(n, k int) bool {
			plan := Plan(n, k)
			if plan[0].Lo != 0 || plan[len(plan)-1].Hi != n {
				return false
			}
			for i := 1; i < len(plan); i++ {
				if plan[i].Lo != plan[i-1].Hi {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 100000),
		gen.IntRange(1, 256),
	))

	properties.Property("range lengths differ by at most one", prop.ForAll(
		func(n, k int) bool {
			plan := Plan(n, k)
			minLen, maxLen := plan[0].Len(), plan[0].Len()
			for _, r := range plan {
				if r.Len() < 0 {
					return false
				}
				if r.Len() < minLen {
					minLen = r.Len()
				}
				if r.Len() > maxLen {
					maxLen = r.Len()
				}
			}
			return maxLen-minLen <= 1
		},
		gen.IntRange(0, 100000),
		gen.IntRange(1, 256),
	))

	properties.Property("exactly k ranges", prop.ForAll(
		func(n, k int) bool {
			return len(Plan(n, k)) == k
		},
		gen.IntRange(0, 100000),
		gen.IntRange(1, 256),
	))

	properties.TestingRun(t)
}
