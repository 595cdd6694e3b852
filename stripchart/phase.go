package stripchart

// phasePanel pairs two channels as (x,y) coordinates instead of plotting
// them against time. It owns one rolling window per axis; both windows
// share the same fixed capacity, so positions pair up into a point cloud of
// the last N samples.
type phasePanel struct {
	xlim, ylim Range
	style      Style
	x, y       *Buffer
}

func newPhasePanel(p PhaseRange, size int) *phasePanel {
	return &phasePanel{
		xlim:  p.X,
		ylim:  p.Y,
		style: Style{Color: Blue, Marker: DotMarker},
		x:     NewBuffer(size),
		y:     NewBuffer(size),
	}
}

func (p *phasePanel) update(x, y float64) {
	p.x.Append(x)
	p.y.Append(y)
}
