package orchestration

import (
	"testing"

	"github.com/jmorneau/fizzlab/internal/progress"
)

func TestTrackerUpdate(t *testing.T) {
	tr := NewTracker()

	tp := tr.Update(progress.Update{Processed: 50, Total: 100, Percent: 50})
	if tp.Percent != 50 {
		t.Errorf("expected Percent=50, got %f", tp.Percent)
	}
	if tp.Fraction != 0.5 {
		t.Errorf("expected Fraction=0.5, got %f", tp.Fraction)
	}
	if tp.ETA < 0 {
		t.Errorf("expected non-negative ETA, got %v", tp.ETA)
	}

	tp = tr.Update(progress.Update{Processed: 100, Total: 100, Percent: 100})
	if tp.Fraction != 1.0 {
		t.Errorf("expected Fraction=1.0 at completion, got %f", tp.Fraction)
	}
}

func TestTrackerClampsOutOfRange(t *testing.T) {
	tr := NewTracker()

	tp := tr.Update(progress.Update{Percent: 150})
	if tp.Fraction != 1.0 {
		t.Errorf("expected Fraction clamped to 1.0, got %f", tp.Fraction)
	}

	tr = NewTracker()
	tp = tr.Update(progress.Update{Percent: -10})
	if tp.Fraction != 0.0 {
		t.Errorf("expected Fraction clamped to 0.0, got %f", tp.Fraction)
	}
}

func TestTrackerCurrent(t *testing.T) {
	tr := NewTracker()

	if cur := tr.Current(); cur != 0.0 {
		t.Errorf("expected initial Current()=0.0, got %f", cur)
	}

	tr.Update(progress.Update{Percent: 50})
	if cur := tr.Current(); cur != 0.5 {
		t.Errorf("expected Current()=0.5 after update, got %f", cur)
	}
}

func TestTrackerETA(t *testing.T) {
	tr := NewTracker()

	// Initially ETA should be 0 (not enough data)
	if eta := tr.ETA(); eta != 0 {
		t.Errorf("expected initial ETA=0, got %v", eta)
	}
}

func TestDrainChannel(t *testing.T) {
	ch := make(chan progress.Update, 5)
	ch <- progress.Update{Processed: 10, Total: 100, Percent: 10}
	ch <- progress.Update{Processed: 20, Total: 100, Percent: 20}
	ch <- progress.Update{Processed: 30, Total: 100, Percent: 30}
	close(ch)

	DrainChannel(ch)
	// If we reach here without deadlock, the test passes
}

func TestDrainChannel_Empty(t *testing.T) {
	ch := make(chan progress.Update)
	close(ch)

	DrainChannel(ch)
	// If we reach here without deadlock, the test passes
}
