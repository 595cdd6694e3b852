package tui

import (
	"testing"

	plot "github.com/chriskim06/drawille-go"

	"github.com/keilerkonzept/stripchart-tui/stripchart"
)

func testRowFrame() stripchart.RowFrame {
	return stripchart.RowFrame{
		Index: 0,
		YMin:  -1,
		YMax:  1,
		Series: []stripchart.SeriesFrame{
			{Style: stripchart.Style{Color: stripchart.Red}, Data: []float64{0, 0.5, 2, -3}},
		},
	}
}

func TestRowPlotDataPinsScale(t *testing.T) {
	rf := testRowFrame()
	data, colors := rowPlotData(rf)
	if len(data) != len(colors) {
		t.Fatalf("data/colors length mismatch: %d vs %d", len(data), len(colors))
	}
	// two pin rows + one series
	if len(data) != 3 {
		t.Fatalf("line count = %d, want 3", len(data))
	}
	for i := range data[0] {
		if data[0][i] != -1 || data[1][i] != 1 {
			t.Fatal("pin rows must sit at ymin/ymax")
		}
	}
}

func TestRowPlotDataClampsSamples(t *testing.T) {
	rf := testRowFrame()
	data, _ := rowPlotData(rf)
	series := data[len(data)-1]
	want := []float64{0, 0.5, 1, -1}
	for i := range want {
		if series[i] != want[i] {
			t.Fatalf("clamped series = %v, want %v", series, want)
		}
	}
}

func TestRowPlotDataBaselineAndTicks(t *testing.T) {
	rf := testRowFrame()
	rf.Ticks = []float64{-0.5, 0, 0.5, 7} // 7 is outside the y-range
	base := 0.25
	rf.Baseline = &base

	data, colors := rowPlotData(rf)
	// pins(2) + in-range ticks(3) + baseline(1) + series(1)
	if len(data) != 7 {
		t.Fatalf("line count = %d, want 7", len(data))
	}
	baseRow := data[5]
	for i := range baseRow {
		if baseRow[i] != 0.25 {
			t.Fatalf("baseline row = %v, want all 0.25", baseRow)
		}
	}
	if colors[len(colors)-1] != plot.Red {
		t.Fatalf("series color = %v, want red", colors[len(colors)-1])
	}

	rf.Baseline = nil
	data, _ = rowPlotData(rf)
	if len(data) != 6 {
		t.Fatalf("hidden baseline still drawn: %d lines, want 6", len(data))
	}
}

func TestDrawilleColorFallback(t *testing.T) {
	if drawilleColor(stripchart.Color("no-such-color")) != plot.Blue {
		t.Fatal("unknown colors must fall back to the default")
	}
}
