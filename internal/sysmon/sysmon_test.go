package sysmon

import (
	"runtime"
	"testing"
)

func TestParallelismAtLeastOne(t *testing.T) {
	if got := Parallelism(); got < 1 {
		t.Errorf("Parallelism() = %d, want >= 1", got)
	}
}

func TestParallelismConsistentWithRuntime(t *testing.T) {
	got := Parallelism()
	// The OS view and the runtime view can differ under cgroup limits, but
	// never by an order of magnitude on a test machine.
	if n := runtime.NumCPU(); got > 64*n {
		t.Errorf("Parallelism() = %d, implausible against runtime.NumCPU() = %d", got, n)
	}
}

func TestSampleWithinBounds(t *testing.T) {
	s := Sample()
	if s.CPUPercent < 0 || s.CPUPercent > 100 {
		t.Errorf("CPUPercent = %v, want within [0, 100]", s.CPUPercent)
	}
	if s.MemPercent < 0 || s.MemPercent > 100 {
		t.Errorf("MemPercent = %v, want within [0, 100]", s.MemPercent)
	}
}

func TestSnapshotMemoryNonZero(t *testing.T) {
	snap := SnapshotMemory()
	if snap.HeapAlloc == 0 {
		t.Error("HeapAlloc = 0, want non-zero for a running process")
	}
	if snap.Sys == 0 {
		t.Error("Sys = 0, want non-zero for a running process")
	}
	if snap.HeapObjects == 0 {
		t.Error("HeapObjects = 0, want non-zero for a running process")
	}
}

func TestSnapshotMemoryGrowsWithAllocation(t *testing.T) {
	before := SnapshotMemory()
	sink := make([]byte, 32<<20)
	for i := range sink {
		sink[i] = byte(i)
	}
	after := SnapshotMemory()
	runtime.KeepAlive(sink)

	if after.HeapAlloc <= before.HeapAlloc {
		t.Skip("allocation folded by an intervening GC cycle")
	}
}
