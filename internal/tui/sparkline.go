package tui

import "strings"

// sparkLevels holds the Unicode block elements from lowest to highest.
var sparkLevels = [8]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// RingBuffer keeps the most recent float64 samples in a fixed window.
// The status bar holds one per sparkline, sized to the available width.
type RingBuffer struct {
	data  []float64
	head  int // next write position
	count int
}

// NewRingBuffer creates a buffer holding at most capacity samples. A
// capacity below 1 is raised to 1.
func NewRingBuffer(capacity int) *RingBuffer {
	if capacity < 1 {
		capacity = 1
	}
	return &RingBuffer{data: make([]float64, capacity)}
}

// Push records a sample, evicting the oldest when the window is full.
func (r *RingBuffer) Push(v float64) {
	r.data[r.head] = v
	r.head = (r.head + 1) % len(r.data)
	if r.count < len(r.data) {
		r.count++
	}
}

// Len reports how many samples are held.
func (r *RingBuffer) Len() int { return r.count }

// Cap reports the window size.
func (r *RingBuffer) Cap() int { return len(r.data) }

// Last returns the newest sample, or 0 when nothing has been pushed.
func (r *RingBuffer) Last() float64 {
	if r.count == 0 {
		return 0
	}
	return r.data[(r.head+len(r.data)-1)%len(r.data)]
}

// Slice returns the samples oldest-first, or nil when empty.
func (r *RingBuffer) Slice() []float64 {
	if r.count == 0 {
		return nil
	}
	out := make([]float64, r.count)
	start := (r.head - r.count + len(r.data)) % len(r.data)
	// Copy the segment up to the end of the backing array, then whatever
	// wrapped around to the front.
	n := copy(out, r.data[start:])
	copy(out[n:], r.data[:r.head])
	return out
}

// Resize grows or shrinks the window, keeping the newest samples that fit.
func (r *RingBuffer) Resize(capacity int) {
	if capacity < 1 {
		capacity = 1
	}
	if capacity == len(r.data) {
		return
	}
	kept := r.Slice()
	if len(kept) > capacity {
		kept = kept[len(kept)-capacity:]
	}
	r.data = make([]float64, capacity)
	r.head = copy(r.data, kept) % capacity
	r.count = len(kept)
}

// Reset drops all samples without releasing the window.
func (r *RingBuffer) Reset() {
	r.head = 0
	r.count = 0
}

// RenderSparkline draws percentage values as a row of block elements.
// Values outside 0..100 are clamped to the edge glyphs.
func RenderSparkline(values []float64) string {
	var b strings.Builder
	for _, v := range values {
		b.WriteRune(sparkLevels[sparkLevel(v)])
	}
	return b.String()
}

func sparkLevel(v float64) int {
	switch {
	case v <= 0:
		return 0
	case v >= 100:
		return len(sparkLevels) - 1
	}
	return int(v / 100 * float64(len(sparkLevels)-1))
}
