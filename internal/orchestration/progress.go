package orchestration

import (
	"time"

	"github.com/jmorneau/fizzlab/internal/format"
	"github.com/jmorneau/fizzlab/internal/progress"
)

// Tracker smooths raw batch progress into a display-ready fraction and
// ETA. It wraps format.ProgressWithETA and provides a higher-level API
// for consuming updates from a channel. Both CLI and TUI use this to
// avoid duplicating the smoothing setup and update logic.
type Tracker struct {
	state *format.ProgressWithETA
}

// NewTracker creates a tracker for a single batch run.
func NewTracker() *Tracker {
	return &Tracker{state: format.NewProgressWithETA()}
}

// TrackedProgress holds the result of processing a single update.
type TrackedProgress struct {
	// Percent is the raw progress value from the update (0 to 100).
	Percent float64
	// Fraction is the clamped progress fraction (0.0 to 1.0).
	Fraction float64
	// ETA is the estimated time remaining based on the smoothed rate.
	ETA time.Duration
}

// Update processes a single progress update and returns the tracked result.
func (t *Tracker) Update(u progress.Update) TrackedProgress {
	fraction, eta := t.state.UpdateWithETA(u.Percent / 100)
	return TrackedProgress{Percent: u.Percent, Fraction: fraction, ETA: eta}
}

// Current returns the latest progress fraction without updating.
// Useful for periodic refresh between updates (e.g., CLI ticker).
func (t *Tracker) Current() float64 {
	return t.state.Current()
}

// ETA returns the current estimate without updating.
// Useful for periodic refresh between updates (e.g., CLI ticker).
func (t *Tracker) ETA() time.Duration {
	return t.state.GetETA()
}

// DrainChannel reads all updates from the channel without processing.
// Use this when updates should be discarded.
func DrainChannel(progressChan <-chan progress.Update) {
	for range progressChan {
	}
}
