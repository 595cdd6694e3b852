package tui

import (
	"fmt"
	"strings"

	styles "github.com/charmbracelet/lipgloss"
	plot "github.com/chriskim06/drawille-go"

	ntcanvas "github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/linechart"

	"github.com/keilerkonzept/stripchart-tui/stripchart"
)

var (
	dimColor    = styles.AdaptiveColor{Light: "#555", Dark: "#555"}
	titleStyle  = styles.NewStyle().Bold(true)
	dimStyle    = styles.NewStyle().Foreground(dimColor)
	noticeStyle = styles.NewStyle().Foreground(styles.AdaptiveColor{Light: "4", Dark: "12"})
	errStyle    = styles.NewStyle().Foreground(styles.AdaptiveColor{Light: "1", Dark: "9"})
)

// phasePane is the ntcharts scatter chart of the phase panel.
type phasePane struct {
	chart  linechart.Model
	width  int
	height int
}

// layout recomputes pane geometry and recreates the row canvases. The phase
// pane is (re)created lazily in redraw, once the first frame reveals its
// ranges.
func (m *model) layout() {
	nrows := m.engine.Rows()

	statsLines := 0
	if m.showStats {
		// title + 4 metric lines
		statsLines = 5
	}
	// title line + help line
	avail := m.height - 2 - statsLines
	avail = max(1, avail)

	rowsWidth := m.width
	phaseWidth := 0
	if m.engine.HasPhase() {
		phaseWidth = max(12, m.width/3)
		rowsWidth = m.width - phaseWidth - 1
	}
	rowsWidth = max(2, rowsWidth)

	// every row gets a header line above its canvas
	perRow := max(2, avail/nrows)
	canvasHeight := perRow - 1

	m.rows = make([]rowPane, nrows)
	for i := range m.rows {
		c := plot.NewCanvas(rowsWidth, canvasHeight)
		c.ShowAxis = false
		m.rows[i] = rowPane{canvas: c, width: rowsWidth, height: canvasHeight}
	}

	// recreated at the new size on the next redraw
	m.phase = nil
	m.phaseW, m.phaseH = phaseWidth, nrows*perRow
}

// redraw repaints every pane from the current frame.
func (m *model) redraw() {
	for i := range m.frame.Rows {
		if i >= len(m.rows) {
			break
		}
		rf := m.frame.Rows[i]
		pane := &m.rows[i]
		data, colors := rowPlotData(rf)
		pane.canvas.NumDataPoints = len(rf.Series[0].Data)
		pane.canvas.LineColors = colors
		pane.canvas.Fill(data)
	}
	if pf := m.frame.Phase; pf != nil {
		m.redrawPhase(pf)
	}
}

func (m *model) redrawPhase(pf *stripchart.PhaseFrame) {
	if m.phase == nil || m.phase.width != m.phaseW || m.phase.height != m.phaseH {
		m.phase = &phasePane{
			chart:  linechart.New(m.phaseW, m.phaseH, pf.XMin, pf.XMax, pf.YMin, pf.YMax),
			width:  m.phaseW,
			height: m.phaseH,
		}
	}
	lc := &m.phase.chart
	lc.Clear()
	lc.DrawXYAxisAndLabel()
	st := styles.NewStyle().Foreground(ansiColor(pf.Style.Color))
	if pf.Style.Marker == stripchart.LineMarker {
		for i := 1; i < len(pf.X); i++ {
			lc.DrawBrailleLineWithStyle(
				ntcanvas.Float64Point{X: pf.X[i-1], Y: pf.Y[i-1]},
				ntcanvas.Float64Point{X: pf.X[i], Y: pf.Y[i]},
				st,
			)
		}
		return
	}
	for i := range pf.X {
		lc.DrawRuneWithStyle(ntcanvas.Float64Point{X: pf.X[i], Y: pf.Y[i]}, '•', st)
	}
}

// rowPlotData flattens one row frame into the line set fed to the drawille
// canvas. Two constant pin rows at ymin/ymax fix the vertical scale so the
// canvas does not rescale to the data; gridlines and a visible baseline are
// further constant rows; the series go last so they draw on top. Samples
// are clamped to the row's y-range for display.
func rowPlotData(rf stripchart.RowFrame) ([][]float64, []plot.Color) {
	n := len(rf.Series[0].Data)
	data := make([][]float64, 0, 3+len(rf.Ticks)+len(rf.Series))
	colors := make([]plot.Color, 0, cap(data))

	data = append(data, constantRow(n, rf.YMin), constantRow(n, rf.YMax))
	colors = append(colors, plot.DimGray, plot.DimGray)

	for _, tick := range rf.Ticks {
		if tick < rf.YMin || tick > rf.YMax {
			continue
		}
		data = append(data, constantRow(n, tick))
		colors = append(colors, plot.DimGray)
	}

	if rf.Baseline != nil {
		data = append(data, constantRow(n, clamp(*rf.Baseline, rf.YMin, rf.YMax)))
		colors = append(colors, plot.LightGray)
	}

	for _, s := range rf.Series {
		line := make([]float64, n)
		for i, v := range s.Data {
			line[i] = clamp(v, rf.YMin, rf.YMax)
		}
		data = append(data, line)
		colors = append(colors, drawilleColor(s.Style.Color))
	}
	return data, colors
}

func constantRow(n int, v float64) []float64 {
	row := make([]float64, n)
	for i := range row {
		row[i] = v
	}
	return row
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func drawilleColor(c stripchart.Color) plot.Color {
	switch c {
	case stripchart.Black:
		return plot.Black
	case stripchart.Red:
		return plot.Red
	case stripchart.Green:
		return plot.Green
	case stripchart.Yellow:
		return plot.Yellow
	case stripchart.Blue:
		return plot.Blue
	case stripchart.Magenta:
		return plot.Magenta
	case stripchart.Cyan:
		return plot.Cyan
	case stripchart.White:
		return plot.White
	case stripchart.Gray:
		return plot.DimGray
	default:
		return plot.Blue
	}
}

func ansiColor(c stripchart.Color) styles.TerminalColor {
	codes := map[stripchart.Color]string{
		stripchart.Black:   "0",
		stripchart.Red:     "1",
		stripchart.Green:   "2",
		stripchart.Yellow:  "3",
		stripchart.Blue:    "4",
		stripchart.Magenta: "5",
		stripchart.Cyan:    "6",
		stripchart.White:   "7",
		stripchart.Gray:    "8",
	}
	if code, ok := codes[c]; ok {
		return styles.Color(code)
	}
	return styles.Color("4")
}

func (m *model) View() string {
	title := m.frame.Title
	if title == "" {
		title = "stripchart"
	}
	switch {
	case m.frame.Waiting:
		title += " — waiting for data…"
	case m.paused:
		title += " — paused"
	}

	rowViews := make([]string, 0, 2*len(m.rows))
	for i := range m.rows {
		var rf stripchart.RowFrame
		if i < len(m.frame.Rows) {
			rf = m.frame.Rows[i]
		}
		rowViews = append(rowViews, m.rowHeader(rf), m.rows[i].canvas.String())
	}
	view := styles.JoinVertical(styles.Left, rowViews...)
	if m.phase != nil {
		view = styles.JoinHorizontal(styles.Top, m.phase.chart.View(), " ", view)
	}

	sections := []string{titleStyle.Render(title), view}
	if m.showStats {
		sections = append(sections, m.statsView())
	}
	if m.notice != "" {
		sections = append(sections, noticeStyle.Render(m.notice))
	}
	if m.err != nil {
		sections = append(sections, errStyle.Render("ERROR: "+m.err.Error()))
	}
	sections = append(sections, m.help.View(keys))
	return styles.JoinVertical(styles.Left, sections...)
}

func (m *model) rowHeader(rf stripchart.RowFrame) string {
	parts := make([]string, 0, 2+len(rf.Series))
	if rf.Label != "" {
		parts = append(parts, titleStyle.Render(rf.Label))
	}
	if rf.Readout != "" {
		parts = append(parts, rf.Readout)
	}
	for _, s := range rf.Series {
		if s.Style.Label == "" {
			continue
		}
		legend := styles.NewStyle().Foreground(ansiColor(s.Style.Color))
		parts = append(parts, legend.Render("— "+s.Style.Label))
	}
	return strings.Join(parts, "  ")
}

func (m *model) statsView() string {
	snap := m.metrics.snapshot()
	status := "RUNNING"
	if m.paused {
		status = "PAUSED"
	}
	lines := []string{
		fmt.Sprintf("FRAME STATS (%s)", status),
		fmt.Sprintf("frames: %d (%d waiting)", snap.frames, snap.waitingFrames),
		fmt.Sprintf("frame latency last/avg/max: %s/%s/%s",
			formatMetricDuration(snap.frameLatency.last),
			formatMetricDuration(snap.frameLatency.avg),
			formatMetricDuration(snap.frameLatency.max)),
		fmt.Sprintf("samples: %d", snap.samples),
		fmt.Sprintf("sample rate: %d/s", snap.sampleRate),
	}
	return dimStyle.Render(strings.Join(lines, "\n"))
}
