package tui

import (
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmorneau/fizzlab/internal/orchestration"
	"github.com/jmorneau/fizzlab/internal/progress"
)

// programRef hands batch goroutines a stable way to reach the running
// tea.Program. bubbletea copies the model on every Update, so the model
// itself cannot carry the pointer; this box survives the copies.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send forwards msg to the program. Messages sent before SetProgram are
// dropped rather than panicking, which covers the startup window.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// TUIProgressReporter adapts the batch progress channel to the studio:
// raw updates pass through a Tracker for smoothing and ETA, then arrive
// in the event loop as ProgressMsg values.
type TUIProgressReporter struct {
	ref *programRef
}

var _ orchestration.ProgressReporter = (*TUIProgressReporter)(nil)

// DisplayProgress drains progressChan into the program and finishes with
// a ProgressDoneMsg when the producer closes the channel.
func (t *TUIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, _ io.Writer) {
	defer wg.Done()

	tracker := orchestration.NewTracker()
	for update := range progressChan {
		tp := tracker.Update(update)
		t.ref.Send(ProgressMsg{
			Percent:   tp.Percent,
			Fraction:  tp.Fraction,
			ETA:       tp.ETA,
			Processed: update.Processed,
			Total:     update.Total,
		})
	}
	t.ref.Send(ProgressDoneMsg{})
}
