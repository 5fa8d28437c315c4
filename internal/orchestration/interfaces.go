package orchestration

import (
	"io"
	"sync"

	"github.com/jmorneau/fizzlab/internal/fizzbuzz"
	"github.com/jmorneau/fizzlab/internal/progress"
)

// PresentationOptions carries the output-shaping flags from the command line
// down to whatever presenter renders the results.
type PresentationOptions struct {
	// Quiet reduces output to bare text lines for scripting.
	Quiet bool
	// Verbose adds detail to the summary output.
	Verbose bool
	// ShowMatches appends matched rule names to every line.
	ShowMatches bool
	// Colors enables ANSI-colored output.
	Colors bool
}

// ProgressReporter renders batch progress. The batch runner only produces
// updates on a channel; spinners, progress bars and studio messages are all
// just different implementations of this interface.
type ProgressReporter interface {
	// DisplayProgress consumes updates until progressChan closes, then
	// calls wg.Done. Run it in its own goroutine alongside the batch.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, out io.Writer)
}

// ProgressReporterFunc lets a plain function stand in as a ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan progress.Update, out io.Writer)

func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, out io.Writer) {
	f(wg, progressChan, out)
}

// NullProgressReporter swallows updates without rendering anything. Quiet
// mode uses it, as do tests that only care about the batch outcome. The
// channel still has to be drained or the producer would block.
type NullProgressReporter struct{}

func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter turns evaluated results into output. Keeping it an
// interface here means the orchestration layer never imports the cli
// package that renders the lines.
type ResultPresenter interface {
	// PresentResults displays the evaluated lines.
	PresentResults(results []fizzbuzz.Result, opts PresentationOptions, out io.Writer)

	// PresentSummary displays the run summary.
	PresentSummary(sum Summary, out io.Writer)
}
