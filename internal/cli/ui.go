//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"time"

	"github.com/briandowns/spinner"
)

const (
	// ProgressRefreshRate is the spinner and progress redraw interval.
	// 200ms keeps the terminal quiet without making the display feel stale.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth is the bar width in characters.
	ProgressBarWidth = 40
	// MatchPreviewLimit caps how many matched rule names are appended to a
	// result line before the remainder is elided.
	MatchPreviewLimit = 5
)

// Spinner is the minimal control surface DisplayProgress needs from a
// terminal spinner. Tests substitute a mock through newSpinner.
type Spinner interface {
	Start()
	Stop()
	// UpdateSuffix replaces the text shown after the spinner glyph.
	UpdateSuffix(suffix string)
}

// realSpinner adapts briandowns/spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }
func (rs *realSpinner) Stop()  { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Suffix = suffix
}

// newSpinner is a variable so tests can swap in a mock implementation.
// The spinner animates at the same interval the progress reporter uses,
// so suffix updates land between frames.
var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}
