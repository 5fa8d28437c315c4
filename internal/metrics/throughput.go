package metrics

import "time"

// emaWeight controls how much of the previous smoothed value survives
// each observation; the remainder comes from the instantaneous rate.
const emaWeight = 0.7

// minSampleDelta is the shortest interval between observations that
// still updates the rate. Shorter gaps produce noisy spikes.
const minSampleDelta = 50 * time.Millisecond

// ThroughputMeter smooths instantaneous processing speed with an
// exponential moving average so live displays do not flicker.
type ThroughputMeter struct {
	lastCount  int
	lastSample time.Time
	smoothed   float64
}

// NewThroughputMeter creates a meter primed at the given start time.
func NewThroughputMeter(start time.Time) *ThroughputMeter {
	return &ThroughputMeter{lastSample: start}
}

// Observe records the cumulative processed count at the given time and
// returns the smoothed rate. Observations closer together than
// minSampleDelta keep the previous estimate.
func (m *ThroughputMeter) Observe(processed int, now time.Time) float64 {
	dt := now.Sub(m.lastSample).Seconds()
	if dt < minSampleDelta.Seconds() {
		return m.smoothed
	}
	instant := float64(processed-m.lastCount) / dt
	if instant < 0 {
		instant = 0
	}
	if m.smoothed == 0 {
		m.smoothed = instant
	} else {
		m.smoothed = m.smoothed*emaWeight + instant*(1-emaWeight)
	}
	m.lastCount = processed
	m.lastSample = now
	return m.smoothed
}

// Value returns the current smoothed rate without observing.
func (m *ThroughputMeter) Value() float64 {
	return m.smoothed
}

// Reset clears the meter for a new run starting at the given time.
func (m *ThroughputMeter) Reset(start time.Time) {
	m.lastCount = 0
	m.lastSample = start
	m.smoothed = 0
}
