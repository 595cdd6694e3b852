package tui

import (
	"fmt"
	"time"

	"github.com/keilerkonzept/stripchart-tui/stripchart"
)

type durationRing struct {
	buf   []time.Duration
	idx   int
	count int
}

func newDurationRing(n int) *durationRing {
	if n < 1 {
		n = 1
	}
	return &durationRing{buf: make([]time.Duration, n)}
}

func (r *durationRing) add(d time.Duration) {
	if len(r.buf) == 0 {
		return
	}
	r.buf[r.idx] = d
	r.idx++
	if r.idx >= len(r.buf) {
		r.idx = 0
	}
	if r.count < len(r.buf) {
		r.count++
	}
}

type durationStats struct {
	last time.Duration
	max  time.Duration
	avg  time.Duration
	n    int
}

func (r *durationRing) snapshot() durationStats {
	if r.count == 0 {
		return durationStats{}
	}
	var sum time.Duration
	var max time.Duration
	for i := 0; i < r.count; i++ {
		d := r.buf[i]
		sum += d
		if d > max {
			max = d
		}
	}

	lastIdx := r.idx - 1
	if lastIdx < 0 {
		lastIdx = len(r.buf) - 1
	}
	last := r.buf[lastIdx]

	return durationStats{
		last: last,
		max:  max,
		avg:  sum / time.Duration(r.count),
		n:    r.count,
	}
}

// frameMetrics tracks render-loop health: per-frame update latency, how
// many frames ran and how many were spent waiting for data, and (when a
// Slot is attached) the producer's publish rate. All methods run on the
// render goroutine.
type frameMetrics struct {
	frames        uint64
	waitingFrames uint64
	latency       *durationRing

	slot     *stripchart.Slot
	prevSets uint64
	prevAt   time.Time
	rate     uint64
}

func newFrameMetrics(window int, slot *stripchart.Slot) *frameMetrics {
	return &frameMetrics{
		latency: newDurationRing(window),
		slot:    slot,
		prevAt:  time.Now(),
	}
}

func (m *frameMetrics) observeFrame(d time.Duration, waiting bool) {
	m.frames++
	if waiting {
		m.waitingFrames++
	}
	m.latency.add(d)
}

type metricsSnapshot struct {
	frames        uint64
	waitingFrames uint64
	frameLatency  durationStats
	samples       uint64
	sampleRate    uint64
}

func (m *frameMetrics) snapshot() metricsSnapshot {
	snap := metricsSnapshot{
		frames:        m.frames,
		waitingFrames: m.waitingFrames,
		frameLatency:  m.latency.snapshot(),
	}
	if m.slot == nil {
		return snap
	}
	sets := m.slot.Sets()
	now := time.Now()
	if elapsed := now.Sub(m.prevAt); elapsed >= time.Second {
		m.rate = uint64(float64(sets-m.prevSets)/elapsed.Seconds() + 0.5)
		m.prevSets = sets
		m.prevAt = now
	}
	snap.samples = sets
	snap.sampleRate = m.rate
	return snap
}

func formatMetricDuration(d time.Duration) string {
	if d <= 0 {
		return "0.000ms"
	}
	return fmt.Sprintf("%.3fms", float64(d)/float64(time.Millisecond))
}
