// Package progress defines the types that carry completion reports from a
// running batch to whatever is displaying them. The generator calls a plain
// Callback; the orchestration layer turns those calls into Update values on
// a channel so reporters can live on their own goroutine.
package progress

// Update is a single progress report from a running batch.
type Update struct {
	// Processed is the count of numbers evaluated so far.
	Processed int
	// Total is the count of numbers the batch will evaluate.
	Total int
	// Percent is the completion percentage in [0, 100].
	Percent float64
}

// Callback receives completion percentages as a batch advances. A nil
// Callback disables reporting.
type Callback func(percent float64)
