package stripchart

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Range is a closed numeric interval; Min must be strictly less than Max.
type Range struct {
	Min, Max float64
}

// PhaseRange holds the independent x and y ranges of the phase panel.
type PhaseRange struct {
	X, Y Range
}

// Config describes a multi-row plot. YRanges is required and its length
// fixes the row count; the other per-row lists must either be nil (use
// defaults) or have exactly one entry per row.
type Config struct {
	// YRanges defines one row per (min,max) pair.
	YRanges []Range
	// Size is the window width in samples per buffer (default 100).
	Size int
	// Phase, when non-nil, adds a phase panel consuming the first two
	// values of every frame as (x,y).
	Phase *PhaseRange
	// Title names the window.
	Title string
	// Styles holds one Spec per row; a Spec may overlay several series.
	Styles []Spec
	// YLabels holds one label per row.
	YLabels []string
	// YTicks holds tick positions per row; non-empty ticks imply gridlines.
	YTicks [][]float64
	// Readouts enables a live numeric readout of each row's newest sample.
	Readouts bool
	// Interval is the redraw interval (default 20ms). The engine does not
	// schedule frames itself; this is advisory for the render-loop driver.
	Interval time.Duration
}

const (
	defaultSize     = 100
	defaultInterval = 20 * time.Millisecond
)

// Engine owns the ordered rows and optional phase panel of one plot and
// applies one frame of values to them per Update. Row count, ranges, styles
// and labels are fixed at construction.
//
// Update and the baseline operations are meant for the render goroutine
// (frames are not reentrant); Close, IsOpen and OnClose are safe from any
// goroutine.
type Engine struct {
	rows     []*axisRow
	phase    *phasePanel
	src      Source
	title    string
	interval time.Duration
	expect   int
	waiting  bool

	open    atomic.Bool
	closeMu sync.Mutex
	onClose []func()
}

// New validates cfg and returns an open Engine pulling frames from src.
func New(cfg Config, src Source) (*Engine, error) {
	if src == nil {
		return nil, errors.New("stripchart: nil data source")
	}
	nrows := len(cfg.YRanges)
	if nrows == 0 {
		return nil, errors.New("stripchart: at least one y-range required")
	}
	for i, r := range cfg.YRanges {
		if !(r.Min < r.Max) {
			return nil, fmt.Errorf("stripchart: y-range %d: min %v must be < max %v", i, r.Min, r.Max)
		}
	}
	if cfg.Phase != nil {
		if !(cfg.Phase.X.Min < cfg.Phase.X.Max) || !(cfg.Phase.Y.Min < cfg.Phase.Y.Max) {
			return nil, errors.New("stripchart: phase ranges must have min < max")
		}
	}

	styles, err := perRow(nrows, cfg.Styles, "styles", Spec{})
	if err != nil {
		return nil, err
	}
	labels, err := perRow(nrows, cfg.YLabels, "ylabels", "")
	if err != nil {
		return nil, err
	}
	ticks, err := perRow(nrows, cfg.YTicks, "yticks", nil)
	if err != nil {
		return nil, err
	}

	size := cfg.Size
	if size <= 0 {
		size = defaultSize
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = defaultInterval
	}

	e := &Engine{
		rows:     make([]*axisRow, nrows),
		src:      src,
		title:    cfg.Title,
		interval: interval,
		waiting:  true,
	}
	for i := range e.rows {
		e.rows[i] = newAxisRow(cfg.YRanges[i], styles[i], labels[i], ticks[i], size, cfg.Readouts)
		e.expect += len(e.rows[i].series)
	}
	if cfg.Phase != nil {
		e.phase = newPhasePanel(*cfg.Phase, size)
		e.expect += 2
	}
	e.open.Store(true)
	return e, nil
}

// perRow expands a nil option list to per-row defaults and rejects any
// other length than one entry per row.
func perRow[T any](nrows int, vals []T, option string, dflt T) ([]T, error) {
	if vals == nil {
		out := make([]T, nrows)
		for i := range out {
			out[i] = dflt
		}
		return out, nil
	}
	if len(vals) != nrows {
		return nil, &ConfigMismatchError{Option: option, Want: nrows, Got: len(vals)}
	}
	return vals, nil
}

// Update pulls one frame of values from the data source, rolls every
// buffer, and returns the drawable state for this frame.
//
// While the source reports no data the buffers are left untouched and the
// returned frame has Waiting set. A value-count mismatch is fatal and
// returned as a *ValueCountError. After Close, Update performs no pull and
// no mutation and simply returns the last drawable state.
func (e *Engine) Update() (Frame, error) {
	if !e.open.Load() {
		return e.frame(), nil
	}
	vals, ok := e.src.Values()
	if !ok {
		e.waiting = true
		return e.frame(), nil
	}
	if len(vals) != e.expect {
		return Frame{}, &ValueCountError{Want: e.expect, Got: len(vals)}
	}
	e.waiting = false
	rest := vals
	if e.phase != nil {
		e.phase.update(vals[0], vals[1])
		rest = vals[2:]
	}
	for _, r := range e.rows {
		n := len(r.series)
		r.update(rest[:n])
		rest = rest[n:]
	}
	return e.frame(), nil
}

// ShowBaseline sets row's baseline level and makes it visible.
func (e *Engine) ShowBaseline(row int, value float64) error {
	if err := e.checkRow(row); err != nil {
		return err
	}
	r := e.rows[row]
	r.baseline = value
	r.showBase = true
	return nil
}

// HideBaseline removes row's baseline from the drawable set. The stored
// value is retained, so re-showing it is cheap.
func (e *Engine) HideBaseline(row int) error {
	if err := e.checkRow(row); err != nil {
		return err
	}
	e.rows[row].showBase = false
	return nil
}

// Baseline returns row's stored baseline value and whether it is visible.
func (e *Engine) Baseline(row int) (value float64, visible bool, err error) {
	if err := e.checkRow(row); err != nil {
		return 0, false, err
	}
	r := e.rows[row]
	return r.baseline, r.showBase, nil
}

func (e *Engine) checkRow(row int) error {
	if row < 0 || row >= len(e.rows) {
		return &RowIndexError{Index: row, Rows: len(e.rows)}
	}
	return nil
}

// Close marks the engine closed and notifies any OnClose observers. The
// transition is one-way and happens at most once; further calls are no-ops.
// The engine does not stop the render loop or the producer itself, the
// owning application is expected to poll IsOpen and stop scheduling frames.
func (e *Engine) Close() {
	if !e.open.CompareAndSwap(true, false) {
		return
	}
	e.closeMu.Lock()
	handlers := e.onClose
	e.onClose = nil
	e.closeMu.Unlock()
	for _, h := range handlers {
		h()
	}
}

// OnClose registers fn to run once when the engine closes. If the engine is
// already closed, fn runs immediately.
func (e *Engine) OnClose(fn func()) {
	e.closeMu.Lock()
	if e.open.Load() {
		e.onClose = append(e.onClose, fn)
		e.closeMu.Unlock()
		return
	}
	e.closeMu.Unlock()
	fn()
}

// IsOpen reports whether the engine has not yet received its close event.
func (e *Engine) IsOpen() bool { return e.open.Load() }

// Rows returns the fixed row count.
func (e *Engine) Rows() int { return len(e.rows) }

// Interval returns the configured redraw interval.
func (e *Engine) Interval() time.Duration { return e.interval }

// Title returns the configured window title.
func (e *Engine) Title() string { return e.title }

// HasPhase reports whether a phase panel was configured.
func (e *Engine) HasPhase() bool { return e.phase != nil }
