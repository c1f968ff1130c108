// Package sysmon probes the hardware the benchmark runs on: logical core
// count and point-in-time CPU, memory, and runtime heap usage. Readings feed
// the report header and the live TUI; they never influence the measurements
// themselves.
package sysmon

import (
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Parallelism returns the number of logical CPUs available to the process.
// It prefers the OS view over the Go runtime's and never returns less than 1,
// so thread-count arithmetic downstream needs no zero guards.
func Parallelism() int {
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	if n := runtime.NumCPU(); n > 0 {
		return n
	}
	return 1
}

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
}

// Sample collects a single system-wide CPU and memory snapshot.
// CPU uses interval=0 (delta since last call). Returns zero values on error.
func Sample() Stats {
	var s Stats
	cpuPcts, err := cpu.Percent(0, false)
	if err == nil && len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}
	vmem, err := mem.VirtualMemory()
	if err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}
	return s
}

// MemorySnapshot holds a point-in-time reading of the Go heap. Large
// generated datasets dominate the numbers, which makes the reading a useful
// sanity check in the report footer.
type MemorySnapshot struct {
	HeapAlloc   uint64 // bytes in use by application
	Sys         uint64 // total bytes obtained from OS
	NumGC       uint32 // number of completed GC cycles
	HeapObjects uint64 // number of allocated heap objects
}

// SnapshotMemory reads current runtime memory statistics.
func SnapshotMemory() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:   m.HeapAlloc,
		Sys:         m.Sys,
		NumGC:       m.NumGC,
		HeapObjects: m.HeapObjects,
	}
}
