package tui

import (
	"testing"
	"time"
)

func TestDurationRingSnapshot(t *testing.T) {
	r := newDurationRing(3)
	if s := r.snapshot(); s.n != 0 {
		t.Fatalf("empty ring snapshot n = %d, want 0", s.n)
	}

	r.add(1 * time.Millisecond)
	r.add(3 * time.Millisecond)
	s := r.snapshot()
	if s.n != 2 || s.last != 3*time.Millisecond || s.max != 3*time.Millisecond || s.avg != 2*time.Millisecond {
		t.Fatalf("snapshot = %+v", s)
	}

	// wrap: oldest sample is evicted
	r.add(5 * time.Millisecond)
	r.add(7 * time.Millisecond)
	s = r.snapshot()
	if s.n != 3 || s.last != 7*time.Millisecond || s.max != 7*time.Millisecond {
		t.Fatalf("snapshot after wrap = %+v", s)
	}
	if s.avg != 5*time.Millisecond {
		t.Fatalf("avg after wrap = %v, want 5ms", s.avg)
	}
}

func TestFrameMetricsCounters(t *testing.T) {
	m := newFrameMetrics(8, nil)
	m.observeFrame(time.Millisecond, true)
	m.observeFrame(2*time.Millisecond, false)
	m.observeFrame(3*time.Millisecond, false)

	snap := m.snapshot()
	if snap.frames != 3 {
		t.Errorf("frames = %d, want 3", snap.frames)
	}
	if snap.waitingFrames != 1 {
		t.Errorf("waitingFrames = %d, want 1", snap.waitingFrames)
	}
	if snap.frameLatency.last != 3*time.Millisecond {
		t.Errorf("last latency = %v, want 3ms", snap.frameLatency.last)
	}
	if snap.samples != 0 || snap.sampleRate != 0 {
		t.Errorf("slotless metrics reported samples: %+v", snap)
	}
}

func TestFormatMetricDuration(t *testing.T) {
	if got := formatMetricDuration(0); got != "0.000ms" {
		t.Errorf("formatMetricDuration(0) = %q", got)
	}
	if got := formatMetricDuration(1500 * time.Microsecond); got != "1.500ms" {
		t.Errorf("formatMetricDuration(1.5ms) = %q", got)
	}
}
