package format

import (
	"fmt"
	"strings"
	"time"
)

// maxETA caps estimates so a stalled run never reports an absurd figure.
const maxETA = 24 * time.Hour

// rateSmoothing is the exponential smoothing factor applied to the
// instantaneous progress rate. Smaller values favor history over the most
// recent sample.
const rateSmoothing = 0.3

// minSampleInterval is the smallest gap between updates used for rate
// estimation. Closer samples are folded into the progress value only,
// avoiding division by near-zero intervals.
const minSampleInterval = 10 * time.Millisecond

// ProgressState tracks the completion fraction of a running batch.
// Values are clamped to [0, 1] on update.
type ProgressState struct {
	progress float64
}

// NewProgressState creates a tracker starting at zero progress.
func NewProgressState() *ProgressState {
	return &ProgressState{}
}

// Update records the current completion fraction, clamping out-of-range
// values.
func (ps *ProgressState) Update(value float64) {
	if value < 0 {
		value = 0
	}
	if value > 1 {
		value = 1
	}
	ps.progress = value
}

// Current returns the last recorded completion fraction.
func (ps *ProgressState) Current() float64 {
	return ps.progress
}

// ProgressWithETA couples a ProgressState with a smoothed completion-rate
// estimate, from which a remaining-time figure can be derived at any point.
type ProgressWithETA struct {
	*ProgressState
	progressRate float64 // completion fraction per second, smoothed
	startTime    time.Time
	lastUpdate   time.Time
	lastProgress float64
}

// NewProgressWithETA creates an ETA-capable progress tracker anchored at the
// current time.
func NewProgressWithETA() *ProgressWithETA {
	now := time.Now()
	return &ProgressWithETA{
		ProgressState: NewProgressState(),
		startTime:     now,
		lastUpdate:    now,
	}
}

// UpdateWithETA records a completion fraction, refreshes the smoothed rate
// estimate, and returns the current progress together with the estimated
// time remaining.
func (p *ProgressWithETA) UpdateWithETA(value float64) (float64, time.Duration) {
	now := time.Now()
	elapsed := now.Sub(p.lastUpdate)
	p.Update(value)

	if elapsed >= minSampleInterval {
		if delta := p.Current() - p.lastProgress; delta > 0 {
			instantRate := delta / elapsed.Seconds()
			if p.progressRate > 0 {
				p.progressRate = rateSmoothing*instantRate + (1-rateSmoothing)*p.progressRate
			} else {
				p.progressRate = instantRate
			}
		}
		p.lastProgress = p.Current()
		p.lastUpdate = now
	}

	return p.Current(), p.GetETA()
}

// GetETA estimates the remaining time from the smoothed rate. It returns 0
// when no estimate is possible yet (no progress or no rate) and caps the
// result at 24 hours.
func (p *ProgressWithETA) GetETA() time.Duration {
	current := p.Current()
	if p.progressRate <= 0 || current <= 0 || current >= 1 {
		return 0
	}
	remaining := 1 - current
	eta := time.Duration(remaining / p.progressRate * float64(time.Second))
	if eta > maxETA {
		return maxETA
	}
	return eta
}

// FormatETA renders a remaining-time estimate in a compact human form:
// "calculating..." when no estimate exists, then "< 1s", "45s", "2m30s",
// "1h15m" and so on. Zero minute or second components are omitted.
func FormatETA(eta time.Duration) string {
	if eta <= 0 {
		return "calculating..."
	}
	if eta < time.Second {
		return "< 1s"
	}

	eta = eta.Round(time.Second)
	hours := int(eta.Hours())
	minutes := int(eta.Minutes()) % 60
	seconds := int(eta.Seconds()) % 60

	switch {
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("%dh%dm", hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	case minutes > 0 && seconds > 0:
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dm", minutes)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

// FormatProgressBarWithETA combines a progress bar, a percentage and an ETA
// into a single status line.
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("[%s] %.1f%% | ETA: %s", ProgressBar(progress, width), progress*100, FormatETA(eta))
}

// ProgressBar renders a fixed-width bar of filled and empty cells for a
// completion fraction in [0, 1]. Out-of-range values are clamped.
func ProgressBar(progress float64, length int) string {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	filled := int(progress * float64(length))
	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}
