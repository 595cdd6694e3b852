package stripchart

import "fmt"

// Frame is the drawable state of one render tick. Elements omitted from the
// frame (a hidden baseline, a disabled readout) must not be drawn, which
// lets renderers redraw incrementally. Series and phase slices alias the
// engine's buffers and are valid until the next Update.
type Frame struct {
	Title   string
	Waiting bool
	Rows    []RowFrame
	Phase   *PhaseFrame
}

// RowFrame is the drawable state of one chart row.
type RowFrame struct {
	Index      int
	YMin, YMax float64
	Label      string
	Ticks      []float64
	Series     []SeriesFrame
	// Baseline is nil while the row's baseline is hidden.
	Baseline *float64
	// Readout is the formatted newest sample, empty when disabled or while
	// no sample has arrived yet.
	Readout string
}

// SeriesFrame is one line of a row: its style and its window, oldest first.
type SeriesFrame struct {
	Style Style
	Data  []float64
}

// PhaseFrame is the drawable state of the phase panel: the last N (x,y)
// pairs at matching positions.
type PhaseFrame struct {
	XMin, XMax float64
	YMin, YMax float64
	Style      Style
	X, Y       []float64
}

func (e *Engine) frame() Frame {
	f := Frame{
		Title:   e.title,
		Waiting: e.waiting,
		Rows:    make([]RowFrame, len(e.rows)),
	}
	for i, r := range e.rows {
		rf := RowFrame{
			Index:  i,
			YMin:   r.ymin,
			YMax:   r.ymax,
			Label:  r.label,
			Ticks:  r.ticks,
			Series: make([]SeriesFrame, len(r.series)),
		}
		for j, s := range r.series {
			rf.Series[j] = SeriesFrame{Style: s.style, Data: s.buf.Values()}
		}
		if r.showBase {
			v := r.baseline
			rf.Baseline = &v
		}
		if r.readout && r.sampleValid {
			rf.Readout = fmt.Sprintf("%+f", r.lastSample)
		}
		f.Rows[i] = rf
	}
	if e.phase != nil {
		f.Phase = &PhaseFrame{
			XMin:  e.phase.xlim.Min,
			XMax:  e.phase.xlim.Max,
			YMin:  e.phase.ylim.Min,
			YMax:  e.phase.ylim.Max,
			Style: e.phase.style,
			X:     e.phase.x.Values(),
			Y:     e.phase.y.Values(),
		}
	}
	return f
}
