package stripchart

// series is one plotted line: a styling intent plus the rolling window it
// exclusively owns.
type series struct {
	style Style
	buf   *Buffer
}

// axisRow is one logical chart row: a fixed y-range, one or more overlaid
// series, optional ticks/label, a toggleable baseline and an optional live
// readout of the newest raw sample.
type axisRow struct {
	ymin, ymax float64
	label      string
	ticks      []float64
	series     []*series

	baseline    float64
	showBase    bool
	readout     bool
	lastSample  float64
	sampleValid bool
}

func newAxisRow(r Range, spec Spec, label string, ticks []float64, size int, readout bool) *axisRow {
	styles := spec.resolve()
	row := &axisRow{
		ymin:    r.Min,
		ymax:    r.Max,
		label:   label,
		ticks:   ticks,
		series:  make([]*series, len(styles)),
		readout: readout,
	}
	for i, st := range styles {
		row.series[i] = &series{style: st, buf: NewBuffer(size)}
	}
	return row
}

// update appends one value per bound series, in binding order. The first
// value doubles as the row's readout sample.
func (r *axisRow) update(vals []float64) {
	for i, s := range r.series {
		s.buf.Append(vals[i])
	}
	r.lastSample = vals[0]
	r.sampleValid = true
}
