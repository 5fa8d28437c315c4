package cli

import (
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/briandowns/spinner"
	"github.com/golang/mock/gomock"

	"github.com/jmorneau/fizzlab/internal/cli/mocks"
	"github.com/jmorneau/fizzlab/internal/progress"
	"github.com/jmorneau/fizzlab/internal/ui"
)

// recordingSpinner counts lifecycle calls and remembers the last suffix so
// tests can assert on what DisplayProgress did with it.
type recordingSpinner struct {
	starts     int
	stops      int
	lastSuffix string
}

func (r *recordingSpinner) Start() { r.starts++ }
func (r *recordingSpinner) Stop()  { r.stops++ }

func (r *recordingSpinner) UpdateSuffix(suffix string) {
	r.lastSuffix = suffix
}

// swapSpinner replaces the spinner constructor for the duration of a test.
func swapSpinner(t *testing.T, s Spinner) {
	t.Helper()
	original := newSpinner
	newSpinner = func(options ...spinner.Option) Spinner { return s }
	t.Cleanup(func() { newSpinner = original })
}

func TestRealSpinner(t *testing.T) {
	t.Parallel()
	rs := &realSpinner{spinner.New(spinner.CharSets[11], 100*time.Millisecond)}

	// The adapter has no state of its own to inspect; a full
	// start/update/stop cycle must simply run clean.
	rs.Start()
	rs.UpdateSuffix(" warming up")
	rs.Stop()
}

func TestColors(t *testing.T) {
	t.Cleanup(func() { ui.SetTheme("dark") })

	accessors := map[string]func() string{
		"reset":     ui.ColorReset,
		"red":       ui.ColorRed,
		"green":     ui.ColorGreen,
		"yellow":    ui.ColorYellow,
		"blue":      ui.ColorBlue,
		"magenta":   ui.ColorMagenta,
		"cyan":      ui.ColorCyan,
		"bold":      ui.ColorBold,
		"underline": ui.ColorUnderline,
	}

	ui.SetTheme("dark")
	for name, fn := range accessors {
		if got := fn(); !strings.HasPrefix(got, "\033[") {
			t.Errorf("dark theme: %s = %q, want an ANSI escape sequence", name, got)
		}
	}

	ui.SetTheme("none")
	for name, fn := range accessors {
		if got := fn(); got != "" {
			t.Errorf("colors off: %s = %q, want empty", name, got)
		}
	}
}

func TestDisplayProgress(t *testing.T) {
	rec := &recordingSpinner{}
	swapSpinner(t, rec)

	var wg sync.WaitGroup
	wg.Add(1)

	progressChan := make(chan progress.Update)
	go func() {
		progressChan <- progress.Update{Processed: 50, Total: 100, Percent: 50}
		progressChan <- progress.Update{Processed: 100, Total: 100, Percent: 100}
		close(progressChan)
	}()

	DisplayProgress(&wg, progressChan, io.Discard)
	wg.Wait()

	if rec.starts != 1 {
		t.Errorf("spinner started %d times, want 1", rec.starts)
	}
	if rec.stops != 1 {
		t.Errorf("spinner stopped %d times, want 1", rec.stops)
	}
	if !strings.Contains(rec.lastSuffix, "(100/100)") {
		t.Errorf("final suffix should carry the processed count, got %q", rec.lastSuffix)
	}
}

func TestDisplayProgress_ClosedChannel(t *testing.T) {
	rec := &recordingSpinner{}
	swapSpinner(t, rec)

	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan progress.Update)
	close(progressChan)

	DisplayProgress(&wg, progressChan, io.Discard)
	wg.Wait()

	// No updates arrived, but the spinner lifecycle still has to balance.
	if rec.starts != 1 || rec.stops != 1 {
		t.Errorf("starts=%d stops=%d, want 1/1", rec.starts, rec.stops)
	}
	if rec.lastSuffix != "" {
		t.Errorf("suffix written with no updates: %q", rec.lastSuffix)
	}
}

func TestDisplayProgressWithGeneratedMock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSpinner := mocks.NewMockSpinner(ctrl)
	gomock.InOrder(
		mockSpinner.EXPECT().Start(),
		mockSpinner.EXPECT().Stop(),
	)
	mockSpinner.EXPECT().UpdateSuffix(gomock.Any()).MinTimes(1)

	swapSpinner(t, mockSpinner)

	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan progress.Update, 1)
	progressChan <- progress.Update{Processed: 10, Total: 10, Percent: 100}
	close(progressChan)

	DisplayProgress(&wg, progressChan, io.Discard)
	wg.Wait()
}
