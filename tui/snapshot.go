package tui

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/keilerkonzept/stripchart-tui/stripchart"
)

const (
	snapshotWidth     = 640
	snapshotRowHeight = 180
	snapshotPhaseSize = 320
)

// SaveSnapshot renders the frame's visible window to a PNG in dir and
// returns the written path. One sub-chart per row (and one for the phase
// panel) is rendered with go-chart and the images are stacked vertically.
func SaveSnapshot(f stripchart.Frame, dir string) (string, error) {
	img, err := renderSnapshot(f)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("stripchart_%d.png", time.Now().Unix()))
	out, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer out.Close()
	if err := png.Encode(out, img); err != nil {
		return "", err
	}
	return path, nil
}

func renderSnapshot(f stripchart.Frame) (image.Image, error) {
	if len(f.Rows) == 0 {
		return nil, errors.New("nothing to render yet")
	}
	var parts []image.Image
	if f.Phase != nil {
		img, err := renderChart(phaseChart(f.Phase))
		if err != nil {
			return nil, err
		}
		parts = append(parts, img)
	}
	for _, rf := range f.Rows {
		img, err := renderChart(rowChart(rf))
		if err != nil {
			return nil, err
		}
		parts = append(parts, img)
	}
	return stackVertically(parts), nil
}

func rowChart(rf stripchart.RowFrame) chart.Chart {
	n := len(rf.Series[0].Data)
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}

	var series []chart.Series
	if rf.Baseline != nil {
		series = append(series, chart.ContinuousSeries{
			Name:    "baseline",
			XValues: []float64{0, float64(n - 1)},
			YValues: []float64{*rf.Baseline, *rf.Baseline},
			Style:   chart.Style{StrokeColor: chart.ColorAlternateGray, StrokeWidth: 1},
		})
	}
	for _, s := range rf.Series {
		series = append(series, chart.ContinuousSeries{
			Name:    s.Style.Label,
			XValues: xs,
			YValues: s.Data,
			Style:   seriesStyle(s.Style),
		})
	}

	var ticks []chart.Tick
	for _, t := range rf.Ticks {
		ticks = append(ticks, chart.Tick{Value: t, Label: fmt.Sprintf("%g", t)})
	}

	ch := chart.Chart{
		Title:      rf.Label,
		Width:      snapshotWidth,
		Height:     snapshotRowHeight,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 14}},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: rf.YMin, Max: rf.YMax},
			Ticks: ticks,
		},
		Series: series,
	}
	if hasLegend(rf.Series) {
		ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	}
	return ch
}

func phaseChart(pf *stripchart.PhaseFrame) chart.Chart {
	return chart.Chart{
		Title:      "phase",
		Width:      snapshotPhaseSize,
		Height:     snapshotPhaseSize,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 14}},
		XAxis: chart.XAxis{
			Range: &chart.ContinuousRange{Min: pf.XMin, Max: pf.XMax},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: pf.YMin, Max: pf.YMax},
		},
		Series: []chart.Series{chart.ContinuousSeries{
			XValues: pf.X,
			YValues: pf.Y,
			Style:   pointStyle(chartColor(pf.Style.Color)),
		}},
	}
}

func renderChart(ch chart.Chart) (image.Image, error) {
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return png.Decode(&buf)
}

func stackVertically(parts []image.Image) image.Image {
	width, height := 0, 0
	for _, p := range parts {
		b := p.Bounds()
		width = max(width, b.Dx())
		height += b.Dy()
	}
	out := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(out, out.Bounds(), image.White, image.Point{}, draw.Src)
	y := 0
	for _, p := range parts {
		b := p.Bounds()
		draw.Draw(out, image.Rect(0, y, b.Dx(), y+b.Dy()), p, b.Min, draw.Src)
		y += b.Dy()
	}
	return out
}

func hasLegend(series []stripchart.SeriesFrame) bool {
	for _, s := range series {
		if s.Style.Label != "" {
			return true
		}
	}
	return false
}

func seriesStyle(s stripchart.Style) chart.Style {
	col := chartColor(s.Color)
	if s.Marker == stripchart.DotMarker {
		return pointStyle(col)
	}
	return chart.Style{StrokeColor: col, StrokeWidth: 1.5}
}

// pointStyle returns a style that renders points only (no connecting line)
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 0,
		DotWidth:    4,
		DotColor:    col,
	}
}

func chartColor(c stripchart.Color) drawing.Color {
	switch c {
	case stripchart.Black:
		return chart.ColorBlack
	case stripchart.Red:
		return chart.ColorRed
	case stripchart.Green:
		return chart.ColorGreen
	case stripchart.Yellow:
		return chart.ColorYellow
	case stripchart.Blue:
		return chart.ColorBlue
	case stripchart.Magenta:
		return drawing.Color{R: 0xB4, G: 0x00, B: 0xB4, A: 0xFF}
	case stripchart.Cyan:
		return chart.ColorCyan
	case stripchart.White:
		return chart.ColorWhite
	case stripchart.Gray:
		return chart.ColorAlternateGray
	default:
		return chart.ColorBlue
	}
}
