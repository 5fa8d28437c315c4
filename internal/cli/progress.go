package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/briandowns/spinner"

	"github.com/jmorneau/fizzlab/internal/format"
	"github.com/jmorneau/fizzlab/internal/orchestration"
	"github.com/jmorneau/fizzlab/internal/progress"
)

// DisplayProgress consumes updates from progressChan and renders a spinner
// whose suffix carries a progress bar, the completion percentage, an ETA and
// the processed count. It runs until the channel closes and signals wg when
// the display has settled, so callers can wait before printing results.
//
// Parameters:
//   - wg: A WaitGroup to signal when display is complete.
//   - progressChan: Channel receiving updates from the running batch.
//   - out: The writer for progress output.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, out io.Writer) {
	defer wg.Done()

	sp := newSpinner(spinner.WithWriter(out))
	tracker := orchestration.NewTracker()

	sp.Start()
	defer sp.Stop()

	for u := range progressChan {
		tp := tracker.Update(u)
		sp.UpdateSuffix(fmt.Sprintf(" %s (%d/%d)",
			format.FormatProgressBarWithETA(tp.Fraction, tp.ETA, ProgressBarWidth),
			u.Processed, u.Total))
	}
}
