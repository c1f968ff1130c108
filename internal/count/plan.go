package count

// Range is a half-open index interval [Lo, Hi).
type Range struct {
	Lo int
	Hi int
}

// Len returns the number of indices covered by the range.
func (r Range) Len() int { return r.Hi - r.Lo }

// Plan divides [0, n) into k contiguous, non-overlapping ranges whose
// lengths differ by at most one. Boundaries use floor division,
// L_k = n*k/K, so the ranges are collectively exhaustive: the first starts
// at 0, the last ends at n, and consecutive ranges share a boundary.
//
// k must be positive. n may be zero, and k may exceed n; surplus ranges are
// simply empty. The plan is recomputed on every call and never cached: it is
// cheap relative to any counting work and keeping it stateless removes a
// class of reuse bugs.
func Plan(n, k int) []Range {
	if k < 1 {
		k = 1
	}
	plan := make([]Range, k)
	for i := 0; i < k; i++ {
		// int64 intermediates: n*k would overflow int32-range products on
		// 32-bit platforms for large sequences.
		plan[i] = Range{
			Lo: int(int64(n) * int64(i) / int64(k)),
			Hi: int(int64(n) * int64(i+1) / int64(k)),
		}
	}
	return plan
}
