package count

// Sequential scans data once in index order and returns the number of
// elements satisfying pred. It is the functional baseline and the
// correctness oracle for every parallel strategy.
func Sequential(data []int, pred func(int) bool) int64 {
	var total int64
	for _, v := range data {
		if pred(v) {
			total++
		}
	}
	return total
}
