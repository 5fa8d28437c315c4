package fizzbuzz

import (
	apperrors "github.com/jmorneau/fizzlab/internal/errors"
	"github.com/jmorneau/fizzlab/internal/progress"
)

// ProgressInterval is how many numbers are processed between progress
// callbacks. The final number always reports regardless of the interval, so
// every run ends on an exact 100.
const ProgressInterval = 50

// Generate evaluates every integer in [start, end] against the rule blocks
// and returns the results in ascending order.
//
// Inputs are validated up front and failures produce no partial output:
// an empty rule set, a start at or above end, or a start below 1 return a
// ValidationError; a malformed block returns a ConfigError. The Fibonacci
// set is built once from end, and only when a Fibonacci block is present.
//
// onProgress, when non-nil, receives the completion percentage every
// ProgressInterval numbers and once more on the final number. The callback
// is the only side effect; the run itself is single-threaded, deterministic
// and not cancelable (callers that need to abandon a run do so around
// Generate, not inside it).
func Generate(start, end int, blocks []Block, onProgress progress.Callback) ([]Result, error) {
	if len(blocks) == 0 {
		return nil, apperrors.ValidationError{Field: "blocks", Message: "at least one rule is required"}
	}
	if start >= end {
		return nil, apperrors.NewValidationError("range", "start %d must be below end %d", start, end)
	}
	if start < 1 {
		return nil, apperrors.ValidationError{Field: "start", Message: "must be at least 1"}
	}
	for _, b := range blocks {
		if err := b.Validate(); err != nil {
			return nil, apperrors.NewConfigError("rule %q: %v", b.Name, err)
		}
	}

	var fib Set
	if hasFibonacciBlock(blocks) {
		fib = FibonacciSet(end)
	}

	ordered := SortBlocks(blocks)
	total := end - start + 1
	results := make([]Result, 0, total)

	processed := 0
	for n := start; n <= end; n++ {
		results = append(results, evaluateOrdered(n, ordered, fib))
		processed++
		if onProgress != nil && (processed%ProgressInterval == 0 || n == end) {
			onProgress(float64(processed) / float64(total) * 100)
		}
	}
	return results, nil
}

func hasFibonacciBlock(blocks []Block) bool {
	for _, b := range blocks {
		if b.Kind() == KindFibonacci {
			return true
		}
	}
	return false
}
