// Package count implements the counting strategies under benchmark: the
// sequential baseline, the hand-partitioned parallel counter, and the
// adapters over externally supplied parallel execution policies.
//
// All strategies share the same contract: given a read-only sequence and a
// pure predicate, return the number of elements satisfying the predicate.
// The sequential counter is the correctness oracle; every other strategy
// must produce a numerically identical count.
package count
