package stripchart

import "sync/atomic"

// Source supplies the current values for one frame. Values returns the flat
// tuple expected by the engine (phase pair first if a phase panel exists,
// then one value per bound series in row order), or ok=false while no data
// has arrived yet. Implementations must be safe to call from the render
// goroutine while a producer writes concurrently.
type Source interface {
	Values() ([]float64, bool)
}

// SourceFunc adapts a plain function to the Source interface.
type SourceFunc func() ([]float64, bool)

func (f SourceFunc) Values() ([]float64, bool) { return f() }

// Slot is a single-value snapshot holder shared between a producer and the
// render loop. Set overwrites the previous snapshot; Values reads the
// latest. The producer never blocks on render cadence, and samples written
// between two frames are dropped rather than queued: this is visual
// sampling, not an audit trail.
type Slot struct {
	cur  atomic.Pointer[[]float64]
	sets atomic.Uint64
}

// NewSlot returns an empty Slot. Values reports ok=false until the first
// Set.
func NewSlot() *Slot {
	return &Slot{}
}

// Set publishes vals as the current sample. The slice is copied, so the
// producer may reuse it.
func (s *Slot) Set(vals []float64) {
	v := make([]float64, len(vals))
	copy(v, vals)
	s.cur.Store(&v)
	s.sets.Add(1)
}

// Values returns the latest published sample, or ok=false when nothing has
// been published yet. The returned slice must not be mutated.
func (s *Slot) Values() ([]float64, bool) {
	p := s.cur.Load()
	if p == nil {
		return nil, false
	}
	return *p, true
}

// Sets returns how many samples have been published so far.
func (s *Slot) Sets() uint64 {
	return s.sets.Load()
}
