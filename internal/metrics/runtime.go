package metrics

import "runtime"

// RuntimeSnapshot is one reading of the Go runtime, taken for the studio's
// status pane. Values accumulate the way runtime.MemStats accumulates them,
// so deltas between snapshots are meaningful while single values are not.
type RuntimeSnapshot struct {
	HeapAlloc    uint64 // live heap bytes
	HeapSys      uint64 // heap bytes reserved from the OS
	Sys          uint64 // all bytes reserved from the OS
	NumGC        uint32 // GC cycles finished so far
	PauseTotalNs uint64 // total stop-the-world pause, nanoseconds
	HeapObjects  uint64 // live objects on the heap
	Goroutines   int    // goroutines alive at sample time
}

// RuntimeCollector produces RuntimeSnapshots on demand.
type RuntimeCollector struct{}

func NewRuntimeCollector() *RuntimeCollector {
	return &RuntimeCollector{}
}

// Snapshot captures the runtime state at the moment of the call. It triggers
// a ReadMemStats, which briefly stops the world, so callers poll it at the
// status refresh interval rather than per result.
func (rc *RuntimeCollector) Snapshot() RuntimeSnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return RuntimeSnapshot{
		HeapAlloc:    m.HeapAlloc,
		HeapSys:      m.HeapSys,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
		HeapObjects:  m.HeapObjects,
		Goroutines:   runtime.NumGoroutine(),
	}
}
