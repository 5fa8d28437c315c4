package orchestration

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	apperrors "github.com/jmorneau/fizzlab/internal/errors"
	"github.com/jmorneau/fizzlab/internal/fizzbuzz"
	"github.com/jmorneau/fizzlab/internal/progress"
)

// recordingReporter captures every update it receives for later assertions.
type recordingReporter struct {
	mu      sync.Mutex
	updates []progress.Update
}

func (r *recordingReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, _ io.Writer) {
	defer wg.Done()
	for u := range progressChan {
		r.mu.Lock()
		r.updates = append(r.updates, u)
		r.mu.Unlock()
	}
}

func (r *recordingReporter) snapshot() []progress.Update {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]progress.Update(nil), r.updates...)
}

// stalledReporter holds off consuming until released, forcing the final
// blocking send to stay pending.
type stalledReporter struct {
	release chan struct{}
}

func (s *stalledReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, _ io.Writer) {
	defer wg.Done()
	<-s.release
	for range progressChan {
	}
}

func classicBlocks() []fizzbuzz.Block {
	return []fizzbuzz.Block{
		fizzbuzz.NewDivisorBlock("Threes", "Fizz", 3, 0),
		fizzbuzz.NewDivisorBlock("Fives", "Buzz", 5, 1),
	}
}

func TestExecuteBatchSuccess(t *testing.T) {
	t.Parallel()
	reporter := &recordingReporter{}

	res := ExecuteBatch(context.Background(), 1, 100, classicBlocks(), reporter, io.Discard)
	if res.Err != nil {
		t.Fatalf("ExecuteBatch() error = %v", res.Err)
	}
	if len(res.Results) != 100 {
		t.Fatalf("got %d results, want 100", len(res.Results))
	}
	if res.Results[14].Text != "FizzBuzz" {
		t.Errorf("result for 15 = %q, want FizzBuzz", res.Results[14].Text)
	}
	if res.Duration <= 0 {
		t.Error("Duration should be positive")
	}

	updates := reporter.snapshot()
	if len(updates) == 0 {
		t.Fatal("reporter received no updates")
	}
	last := updates[len(updates)-1]
	if last.Percent != 100 {
		t.Errorf("last update percent = %v, want 100", last.Percent)
	}
	if last.Processed != 100 || last.Total != 100 {
		t.Errorf("last update = %d/%d, want 100/100", last.Processed, last.Total)
	}
}

func TestExecuteBatchValidationFailure(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		start     int
		end       int
		blocks    []fizzbuzz.Block
		wantField string
	}{
		{"no rules", 1, 100, nil, "blocks"},
		{"inverted interval", 100, 1, classicBlocks(), "range"},
		{"start below one", -5, 10, classicBlocks(), "start"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := ExecuteBatch(context.Background(), tt.start, tt.end, tt.blocks, NullProgressReporter{}, io.Discard)
			if res.Err == nil {
				t.Fatal("ExecuteBatch() should fail")
			}
			if res.Results != nil {
				t.Error("failed runs must not produce partial results")
			}
			var berr apperrors.BatchError
			if !errors.As(res.Err, &berr) {
				t.Errorf("error = %T, want BatchError wrapper", res.Err)
			}
			var verr apperrors.ValidationError
			if !errors.As(res.Err, &verr) {
				t.Fatalf("error = %v, want to unwrap to ValidationError", res.Err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestExecuteBatchMalformedRule(t *testing.T) {
	t.Parallel()
	blocks := []fizzbuzz.Block{fizzbuzz.NewDivisorBlock("Broken", "Oops", 0, 0)}
	res := ExecuteBatch(context.Background(), 1, 100, blocks, NullProgressReporter{}, io.Discard)
	var cerr apperrors.ConfigError
	if !errors.As(res.Err, &cerr) {
		t.Errorf("error = %v, want to unwrap to ConfigError", res.Err)
	}
}

func TestExecuteBatchContextAbandons(t *testing.T) {
	t.Parallel()
	stalled := &stalledReporter{release: make(chan struct{})}
	defer close(stalled.release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	// A span wide enough that intermediate updates overflow the buffer,
	// so the final send blocks while the reporter is stalled.
	res := ExecuteBatch(ctx, 1, 500+ProgressBufferSize*fizzbuzz.ProgressInterval, classicBlocks(), stalled, io.Discard)
	if !errors.Is(res.Err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", res.Err)
	}
	if res.Results != nil {
		t.Error("abandoned run must not return results")
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()
	results, err := fizzbuzz.Generate(1, 15, classicBlocks(), nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	sum := Summarize(results, 42*time.Millisecond)
	if sum.Total != 15 {
		t.Errorf("Total = %d, want 15", sum.Total)
	}
	if sum.Duration != 42*time.Millisecond {
		t.Errorf("Duration = %s, want 42ms", sum.Duration)
	}

	wantCounts := map[fizzbuzz.ResultType]int{
		fizzbuzz.TypeFizz:     4,
		fizzbuzz.TypeBuzz:     2,
		fizzbuzz.TypeFizzBuzz: 1,
		fizzbuzz.TypeNumber:   8,
	}
	for typ, want := range wantCounts {
		if sum.Counts[typ] != want {
			t.Errorf("Counts[%s] = %d, want %d", typ, sum.Counts[typ], want)
		}
	}
	if sum.Matched != 7 {
		t.Errorf("Matched = %d, want 7", sum.Matched)
	}
	if pct := sum.MatchedPercent(); pct < 46.6 || pct > 46.7 {
		t.Errorf("MatchedPercent() = %v, want about 46.67", pct)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	t.Parallel()
	sum := Summarize(nil, 0)
	if sum.Total != 0 || sum.Matched != 0 {
		t.Errorf("empty summary = %+v, want zeros", sum)
	}
	if sum.MatchedPercent() != 0 {
		t.Errorf("MatchedPercent() = %v, want 0 for empty run", sum.MatchedPercent())
	}
}
