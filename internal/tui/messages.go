package tui

import (
	"time"

	"github.com/jmorneau/fizzlab/internal/metrics"
	"github.com/jmorneau/fizzlab/internal/orchestration"
	"github.com/jmorneau/fizzlab/internal/sysmon"
)

// TickMsg drives the periodic refresh: elapsed time, runtime stats and
// system sparklines.
type TickMsg time.Time

// ProgressMsg carries one smoothed progress update from a running batch.
type ProgressMsg struct {
	// Percent is the raw completion percentage in [0, 100].
	Percent float64
	// Fraction is the clamped completion fraction in [0, 1].
	Fraction float64
	// ETA is the smoothed estimate of time remaining.
	ETA time.Duration
	// Processed is the count of numbers evaluated so far.
	Processed int
	// Total is the count of numbers the batch will evaluate.
	Total int
}

// ProgressDoneMsg signals that the progress channel has been drained.
type ProgressDoneMsg struct{}

// BatchDoneMsg carries the outcome of one batch run. Generation ties the
// message to the run that produced it; the model drops messages from
// superseded runs.
type BatchDoneMsg struct {
	Generation uint64
	Result     orchestration.BatchResult
}

// MemStatsMsg carries a Go runtime snapshot for the status bar.
type MemStatsMsg struct {
	Stats metrics.RuntimeSnapshot
}

// SysStatsMsg carries a system-wide CPU and memory sample for the
// status sparklines.
type SysStatsMsg struct {
	Stats sysmon.Stats
}

// ContextCancelledMsg signals that the parent context was cancelled
// (SIGINT or timeout from the caller) and the studio must exit.
type ContextCancelledMsg struct {
	Err error
}
