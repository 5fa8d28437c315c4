package orchestration

import (
	"context"
	"io"
	"sync"
	"time"

	apperrors "github.com/jmorneau/fizzlab/internal/errors"
	"github.com/jmorneau/fizzlab/internal/fizzbuzz"
	"github.com/jmorneau/fizzlab/internal/progress"
)

// ProgressBufferSize is the capacity of the progress channel. A larger
// buffer reduces how many intermediate updates are dropped when the
// display is slow to consume them; the final update is never dropped.
const ProgressBufferSize = 8

// BatchResult encapsulates the outcome of one batch run.
type BatchResult struct {
	// Results holds one entry per evaluated number, in ascending order.
	// It is nil if the run failed validation or was abandoned.
	Results []fizzbuzz.Result
	// Duration is the time taken by the run.
	Duration time.Duration
	// Err contains any error that occurred. Context errors pass through
	// unchanged; engine failures are wrapped in a BatchError.
	Err error
}

// ExecuteBatch runs one evaluation batch while streaming progress to the
// reporter.
//
// The batch itself is synchronous and ignorant of cancellation; this
// function bridges it to ctx-aware callers. Intermediate progress sends
// are non-blocking so a stalled display can never stall the run, but the
// final 100% send blocks, guaranteeing every consumer observes
// completion. When ctx expires the run is abandoned: ExecuteBatch
// returns with ctx.Err() and the generation goroutine finishes in the
// background, closing the channel so the reporter terminates too.
//
// Parameters:
//   - ctx: The context bounding the wait, not the work.
//   - start, end: The inclusive interval to evaluate.
//   - blocks: The rule set, in any order.
//   - reporter: The progress sink (use NullProgressReporter for quiet mode).
//   - out: The io.Writer handed to the reporter.
func ExecuteBatch(ctx context.Context, start, end int, blocks []fizzbuzz.Block, reporter ProgressReporter, out io.Writer) BatchResult {
	progressChan := make(chan progress.Update, ProgressBufferSize)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, progressChan, out)

	type outcome struct {
		results []fizzbuzz.Result
		err     error
	}
	done := make(chan outcome, 1)
	total := end - start + 1
	startTime := time.Now()

	go func() {
		defer close(progressChan)
		results, err := fizzbuzz.Generate(start, end, blocks, func(percent float64) {
			update := progress.Update{
				Processed: int(percent*float64(total)/100 + 0.5),
				Total:     total,
				Percent:   percent,
			}
			if percent >= 100 {
				progressChan <- update
				return
			}
			select {
			case progressChan <- update:
			default:
			}
		})
		done <- outcome{results: results, err: err}
	}()

	select {
	case oc := <-done:
		displayWg.Wait()
		res := BatchResult{Results: oc.results, Duration: time.Since(startTime)}
		if oc.err != nil {
			res.Results = nil
			res.Err = apperrors.BatchError{Cause: oc.err}
		}
		return res
	case <-ctx.Done():
		return BatchResult{Duration: time.Since(startTime), Err: ctx.Err()}
	}
}

// Summary aggregates a finished run for display.
type Summary struct {
	// Total is the number of evaluated numbers.
	Total int
	// Counts maps each result classification to its occurrence count.
	Counts map[fizzbuzz.ResultType]int
	// Matched counts results where at least one rule applied.
	Matched int
	// Duration is the time the run took.
	Duration time.Duration
}

// MatchedPercent returns the share of numbers with at least one match,
// in [0,100].
func (s Summary) MatchedPercent() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Matched) / float64(s.Total) * 100
}

// Summarize aggregates per-type counts over a result batch.
func Summarize(results []fizzbuzz.Result, duration time.Duration) Summary {
	s := Summary{
		Total:    len(results),
		Counts:   make(map[fizzbuzz.ResultType]int, 8),
		Duration: duration,
	}
	for _, r := range results {
		s.Counts[r.Type]++
		if r.Type != fizzbuzz.TypeNumber {
			s.Matched++
		}
	}
	return s
}
