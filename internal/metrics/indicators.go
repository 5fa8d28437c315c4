package metrics

import (
	"fmt"
	"time"
)

// Indicators summarizes the throughput and match statistics of a run
// for display in the CLI summary and the studio status bar.
type Indicators struct {
	// NumbersPerSecond is the evaluation throughput.
	NumbersPerSecond float64
	// MatchedPercent is the share of numbers with at least one rule
	// match, in [0,100].
	MatchedPercent float64
	// TotalResults is the number of evaluated numbers.
	TotalResults int
	// MatchedResults is the number of results with a match.
	MatchedResults int
	// Duration is the time the run took.
	Duration time.Duration
}

// Compute derives indicators from a finished run.
func Compute(total, matched int, duration time.Duration) Indicators {
	ind := Indicators{
		TotalResults:   total,
		MatchedResults: matched,
		Duration:       duration,
	}
	if duration > 0 {
		ind.NumbersPerSecond = float64(total) / duration.Seconds()
	}
	if total > 0 {
		ind.MatchedPercent = float64(matched) / float64(total) * 100
	}
	return ind
}

// ComputeLive derives the instantaneous throughput of a run still in
// progress from the processed count so far.
func ComputeLive(processed int, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(processed) / elapsed.Seconds()
}

// FormatNumbersPerSecond renders the throughput with a magnitude suffix.
func (i Indicators) FormatNumbersPerSecond() string {
	return FormatRate(i.NumbersPerSecond)
}

// FormatMatchedPercent renders the match share with one decimal.
func (i Indicators) FormatMatchedPercent() string {
	return fmt.Sprintf("%.1f%%", i.MatchedPercent)
}

// FormatRate renders a numbers-per-second rate with a magnitude suffix.
func FormatRate(rate float64) string {
	switch {
	case rate >= 1e6:
		return fmt.Sprintf("%.1fM num/s", rate/1e6)
	case rate >= 1e3:
		return fmt.Sprintf("%.1fK num/s", rate/1e3)
	default:
		return fmt.Sprintf("%.0f num/s", rate)
	}
}
