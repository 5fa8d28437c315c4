package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/jmorneau/fizzlab/internal/format"
	"github.com/jmorneau/fizzlab/internal/metrics"
	"github.com/jmorneau/fizzlab/internal/orchestration"
	"github.com/jmorneau/fizzlab/internal/sysmon"
)

// runPhase is the lifecycle state shown on the status line.
type runPhase int

const (
	phaseIdle runPhase = iota
	phaseRunning
	phaseDone
	phaseFailed
)

// StatusModel renders the two-line status bar: run state with progress
// and throughput on the first line, runtime memory and system sparklines
// on the second.
type StatusModel struct {
	phase   runPhase
	paused  bool
	errText string

	fraction  float64
	percent   float64
	eta       time.Duration
	processed int
	total     int
	meter     *metrics.ThroughputMeter
	rate      float64

	indicators    metrics.Indicators
	hasIndicators bool

	snap       metrics.RuntimeSnapshot
	cpuHistory *RingBuffer
	memHistory *RingBuffer

	width int
}

// NewStatusModel creates an idle status bar.
func NewStatusModel() StatusModel {
	return StatusModel{
		meter:      metrics.NewThroughputMeter(time.Now()),
		cpuHistory: NewRingBuffer(12),
		memHistory: NewRingBuffer(12),
	}
}

// SetWidth updates the available width and resizes the sparkline
// buffers so the history always fills the room the text leaves over.
func (s *StatusModel) SetWidth(w int) {
	s.width = w
	cap := sparklineCapacity(w)
	s.cpuHistory.Resize(cap)
	s.memHistory.Resize(cap)
}

// sparklineCapacity returns the per-sparkline sample count for a given
// total width, clamped so narrow terminals still show a trace.
func sparklineCapacity(w int) int {
	cap := (w - 50) / 2
	if cap < 8 {
		cap = 8
	}
	if cap > 24 {
		cap = 24
	}
	return cap
}

// StartRun switches to the running phase for a batch of the given size.
func (s *StatusModel) StartRun(total int) {
	s.phase = phaseRunning
	s.errText = ""
	s.fraction = 0
	s.percent = 0
	s.eta = 0
	s.processed = 0
	s.total = total
	s.rate = 0
	s.meter.Reset(time.Now())
	s.hasIndicators = false
}

// UpdateProgress folds one progress update into the display state.
// Updates arriving outside the running phase are dropped.
func (s *StatusModel) UpdateProgress(msg ProgressMsg) {
	if s.phase != phaseRunning {
		return
	}
	s.fraction = msg.Fraction
	s.percent = msg.Percent
	s.eta = msg.ETA
	s.processed = msg.Processed
	s.total = msg.Total
	s.rate = s.meter.Observe(msg.Processed, time.Now())
}

// FinishProgress pins the bar at completion once the channel drains.
func (s *StatusModel) FinishProgress() {
	if s.phase != phaseRunning {
		return
	}
	s.fraction = 1
	s.percent = 100
	s.eta = 0
}

// SetDone switches to the done phase with the finished run's summary.
func (s *StatusModel) SetDone(sum orchestration.Summary) {
	s.phase = phaseDone
	s.indicators = metrics.Compute(sum.Total, sum.Matched, sum.Duration)
	s.hasIndicators = true
}

// SetError switches to the failed phase with the given message.
func (s *StatusModel) SetError(text string) {
	s.phase = phaseFailed
	s.errText = text
}

// SetPaused toggles the paused marker. The run itself keeps going;
// only the display freezes.
func (s *StatusModel) SetPaused(paused bool) {
	s.paused = paused
}

// Reset returns the bar to the idle phase. The system sparklines keep
// their history; they describe the host, not the run.
func (s *StatusModel) Reset() {
	s.phase = phaseIdle
	s.paused = false
	s.errText = ""
	s.fraction = 0
	s.percent = 0
	s.eta = 0
	s.processed = 0
	s.total = 0
	s.rate = 0
	s.hasIndicators = false
}

// UpdateMemStats stores the latest runtime snapshot.
func (s *StatusModel) UpdateMemStats(snap metrics.RuntimeSnapshot) {
	s.snap = snap
}

// UpdateSysStats appends a system sample to the sparkline histories.
func (s *StatusModel) UpdateSysStats(stats sysmon.Stats) {
	s.cpuHistory.Push(stats.CPUPercent)
	s.memHistory.Push(stats.MemPercent)
}

// View renders the two status lines.
func (s StatusModel) View() string {
	return s.renderRunLine() + "\n" + s.renderSystemLine()
}

// renderRunLine renders the phase badge and, while running, the progress
// bar with percentage, ETA and throughput.
func (s StatusModel) renderRunLine() string {
	switch s.phase {
	case phaseRunning:
		badge := statusRunningStyle.Render("RUN")
		if s.paused {
			badge = statusPausedStyle.Render("PAUSE")
		}
		bar := format.ProgressBar(s.fraction, s.barWidth())
		detail := fmt.Sprintf(" %s %.1f%% | ETA: %s | %s",
			bar, s.percent, format.FormatETA(s.eta), metrics.FormatRate(s.rate))
		return " " + badge + detail
	case phaseDone:
		text := "batch finished"
		if s.hasIndicators {
			text = fmt.Sprintf("Evaluated %d numbers in %s (%s, %s matched)",
				s.indicators.TotalResults,
				format.FormatExecutionDuration(s.indicators.Duration),
				s.indicators.FormatNumbersPerSecond(),
				s.indicators.FormatMatchedPercent())
		}
		return " " + statusDoneStyle.Render("DONE") + " " + text
	case phaseFailed:
		return " " + statusErrorStyle.Render("ERR") + " " + errorStyle.Render(s.errText)
	default:
		return " " + statusIdleStyle.Render("IDLE") + dimStyle.Render(" press g to run the batch")
	}
}

// renderSystemLine renders the runtime memory figures and the CPU/MEM
// sparklines.
func (s StatusModel) renderSystemLine() string {
	var b strings.Builder
	b.WriteString(" ")
	b.WriteString(metricLabelStyle.Render("Heap:"))
	b.WriteString(" ")
	b.WriteString(metricValueStyle.Render(format.FormatBytes(s.snap.HeapAlloc) + " / " + format.FormatBytes(s.snap.HeapSys)))
	b.WriteString(metricLabelStyle.Render(" | GC: "))
	b.WriteString(metricValueStyle.Render(fmt.Sprintf("%d", s.snap.NumGC)))
	b.WriteString(metricLabelStyle.Render(" | Goroutines: "))
	b.WriteString(metricValueStyle.Render(fmt.Sprintf("%d", s.snap.Goroutines)))
	b.WriteString("  ")
	b.WriteString(metricLabelStyle.Render("CPU "))
	b.WriteString(cpuSparklineStyle.Render(RenderSparkline(s.cpuHistory.Slice())))
	b.WriteString(metricLabelStyle.Render(" MEM "))
	b.WriteString(memSparklineStyle.Render(RenderSparkline(s.memHistory.Slice())))
	return b.String()
}

// barWidth sizes the progress bar to the room the run line leaves over.
func (s StatusModel) barWidth() int {
	w := s.width - 46
	if w < 10 {
		w = 10
	}
	if w > 30 {
		w = 30
	}
	return w
}
