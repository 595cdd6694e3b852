package stripchart

import (
	"errors"
	"testing"
)

func noData() ([]float64, bool) { return nil, false }

func twoRows() Config {
	return Config{
		YRanges: []Range{{-1, 1}, {-1, 1}},
		Size:    4,
	}
}

func TestNewValidation(t *testing.T) {
	src := SourceFunc(noData)
	tests := []struct {
		name string
		cfg  Config
	}{
		{"no ranges", Config{}},
		{"inverted range", Config{YRanges: []Range{{1, -1}}}},
		{"equal range", Config{YRanges: []Range{{2, 2}}}},
		{"bad phase", Config{YRanges: []Range{{-1, 1}}, Phase: &PhaseRange{X: Range{1, 0}, Y: Range{0, 1}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.cfg, src); err == nil {
				t.Fatal("New() succeeded, want error")
			}
		})
	}
	if _, err := New(twoRows(), nil); err == nil {
		t.Fatal("New() with nil source succeeded, want error")
	}
}

func TestNewConfigMismatch(t *testing.T) {
	src := SourceFunc(noData)
	cfg := twoRows()
	cfg.Styles = []Spec{Single(Style{Color: Red})} // 1 spec for 2 rows

	_, err := New(cfg, src)
	var mismatch *ConfigMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("New() error = %v, want *ConfigMismatchError", err)
	}
	if mismatch.Want != 2 || mismatch.Got != 1 || mismatch.Option != "styles" {
		t.Fatalf("mismatch = %+v, want {styles 2 1}", mismatch)
	}

	cfg.Styles = append(cfg.Styles, Single(Style{Color: Blue}))
	if _, err := New(cfg, src); err != nil {
		t.Fatalf("New() with matching styles: %v", err)
	}

	cfg.YLabels = []string{"only one"}
	if _, err := New(cfg, src); err == nil {
		t.Fatal("New() with short ylabels succeeded, want error")
	}
}

func TestEngineEndToEnd(t *testing.T) {
	// A 2-row engine fed paired values one update at a time.
	pairs := [][]float64{{0, 0}, {0.5, -0.5}, {1, -1}, {0, 0}, {-1, 1}}
	i := 0
	src := SourceFunc(func() ([]float64, bool) {
		v := pairs[i]
		i++
		return v, true
	})
	e, err := New(twoRows(), src)
	if err != nil {
		t.Fatal(err)
	}

	var f Frame
	for range pairs {
		if f, err = e.Update(); err != nil {
			t.Fatal(err)
		}
	}

	want0 := []float64{0.5, 1, 0, -1}
	want1 := []float64{-0.5, -1, 0, 1}
	got0 := f.Rows[0].Series[0].Data
	got1 := f.Rows[1].Series[0].Data
	for i := range want0 {
		if got0[i] != want0[i] {
			t.Errorf("row 0 window = %v, want %v", got0, want0)
			break
		}
	}
	for i := range want1 {
		if got1[i] != want1[i] {
			t.Errorf("row 1 window = %v, want %v", got1, want1)
			break
		}
	}
}

func TestEngineWaiting(t *testing.T) {
	calls := 0
	src := SourceFunc(func() ([]float64, bool) {
		calls++
		if calls <= 3 {
			return nil, false
		}
		return []float64{0.25, 0.75}, true
	})
	e, err := New(twoRows(), src)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		f, err := e.Update()
		if err != nil {
			t.Fatal(err)
		}
		if !f.Waiting {
			t.Fatalf("frame %d: Waiting = false, want true", i)
		}
		for _, r := range f.Rows {
			for _, v := range r.Series[0].Data {
				if v != 0 {
					t.Fatalf("frame %d mutated buffers while waiting: %v", i, r.Series[0].Data)
				}
			}
		}
	}

	f, err := e.Update()
	if err != nil {
		t.Fatal(err)
	}
	if f.Waiting {
		t.Fatal("Waiting = true after real data arrived")
	}
	if last := f.Rows[0].Series[0].Data[3]; last != 0.25 {
		t.Fatalf("row 0 newest = %v, want 0.25", last)
	}
}

func TestEngineValueCountMismatch(t *testing.T) {
	src := SourceFunc(func() ([]float64, bool) { return []float64{1, 2, 3}, true })
	e, err := New(twoRows(), src)
	if err != nil {
		t.Fatal(err)
	}
	_, err = e.Update()
	var vc *ValueCountError
	if !errors.As(err, &vc) {
		t.Fatalf("Update() error = %v, want *ValueCountError", err)
	}
	if vc.Want != 2 || vc.Got != 3 {
		t.Fatalf("mismatch = %+v, want {2 3}", vc)
	}
}

func TestEnginePhaseDispatch(t *testing.T) {
	cfg := twoRows()
	cfg.Phase = &PhaseRange{X: Range{-2, 2}, Y: Range{-2, 2}}
	src := SourceFunc(func() ([]float64, bool) {
		return []float64{1.5, -1.5, 0.5, -0.5}, true
	})
	e, err := New(cfg, src)
	if err != nil {
		t.Fatal(err)
	}
	f, err := e.Update()
	if err != nil {
		t.Fatal(err)
	}
	if f.Phase == nil {
		t.Fatal("Phase frame missing")
	}
	n := len(f.Phase.X)
	if f.Phase.X[n-1] != 1.5 || f.Phase.Y[n-1] != -1.5 {
		t.Fatalf("phase newest = (%v,%v), want (1.5,-1.5)", f.Phase.X[n-1], f.Phase.Y[n-1])
	}
	if f.Rows[0].Series[0].Data[3] != 0.5 || f.Rows[1].Series[0].Data[3] != -0.5 {
		t.Fatal("row values consumed the phase prefix")
	}
}

func TestEngineOverlayDispatch(t *testing.T) {
	cfg := Config{
		YRanges: []Range{{-1, 1}, {0, 10}},
		Size:    3,
		Styles: []Spec{
			Overlay(Style{Color: Red, Label: "slow"}, Style{Color: Blue, Label: "fast"}),
			Single(Style{Color: Green}),
		},
	}
	src := SourceFunc(func() ([]float64, bool) { return []float64{0.1, 0.2, 7}, true })
	e, err := New(cfg, src)
	if err != nil {
		t.Fatal(err)
	}
	f, err := e.Update()
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Rows[0].Series) != 2 {
		t.Fatalf("row 0 series count = %d, want 2", len(f.Rows[0].Series))
	}
	if f.Rows[0].Series[0].Data[2] != 0.1 || f.Rows[0].Series[1].Data[2] != 0.2 {
		t.Fatal("overlay values dispatched out of order")
	}
	if f.Rows[1].Series[0].Data[2] != 7 {
		t.Fatalf("row 1 newest = %v, want 7", f.Rows[1].Series[0].Data[2])
	}
}

func TestBaselineVisibility(t *testing.T) {
	src := SourceFunc(func() ([]float64, bool) { return []float64{0, 0}, true })
	e, err := New(twoRows(), src)
	if err != nil {
		t.Fatal(err)
	}

	if err := e.ShowBaseline(1, 0.5); err != nil {
		t.Fatal(err)
	}
	f, _ := e.Update()
	if f.Rows[1].Baseline == nil || *f.Rows[1].Baseline != 0.5 {
		t.Fatalf("baseline frame = %v, want 0.5", f.Rows[1].Baseline)
	}
	if f.Rows[0].Baseline != nil {
		t.Fatal("row 0 baseline drawn without ShowBaseline")
	}

	if err := e.HideBaseline(1); err != nil {
		t.Fatal(err)
	}
	f, _ = e.Update()
	if f.Rows[1].Baseline != nil {
		t.Fatal("hidden baseline still in drawable set")
	}

	// The stored value survives hiding.
	v, visible, err := e.Baseline(1)
	if err != nil {
		t.Fatal(err)
	}
	if visible || v != 0.5 {
		t.Fatalf("Baseline(1) = %v, %v; want 0.5, false", v, visible)
	}
}

func TestBaselineOutOfRange(t *testing.T) {
	src := SourceFunc(noData)
	e, err := New(twoRows(), src)
	if err != nil {
		t.Fatal(err)
	}
	for _, row := range []int{-1, 2} {
		err := e.ShowBaseline(row, 0)
		var oob *RowIndexError
		if !errors.As(err, &oob) {
			t.Fatalf("ShowBaseline(%d) error = %v, want *RowIndexError", row, err)
		}
		if oob.Index != row || oob.Rows != 2 {
			t.Fatalf("RowIndexError = %+v, want {%d 2}", oob, row)
		}
		if err := e.HideBaseline(row); err == nil {
			t.Fatalf("HideBaseline(%d) succeeded, want error", row)
		}
	}
}

func TestReadouts(t *testing.T) {
	cfg := twoRows()
	cfg.Readouts = true
	src := SourceFunc(func() ([]float64, bool) { return []float64{1.234, -0.5}, true })
	e, err := New(cfg, src)
	if err != nil {
		t.Fatal(err)
	}

	// No readout before the first sample.
	f := e.frame()
	if f.Rows[0].Readout != "" {
		t.Fatalf("readout before data = %q, want empty", f.Rows[0].Readout)
	}

	f, _ = e.Update()
	if got := f.Rows[0].Readout; got != "+1.234000" {
		t.Errorf("row 0 readout = %q, want %q", got, "+1.234000")
	}
	if got := f.Rows[1].Readout; got != "-0.500000" {
		t.Errorf("row 1 readout = %q, want %q", got, "-0.500000")
	}
}

func TestCloseIsOneWay(t *testing.T) {
	vals := []float64{1, 1}
	src := SourceFunc(func() ([]float64, bool) { return vals, true })
	e, err := New(twoRows(), src)
	if err != nil {
		t.Fatal(err)
	}
	if !e.IsOpen() {
		t.Fatal("IsOpen() = false before close")
	}

	notified := 0
	e.OnClose(func() { notified++ })

	f, _ := e.Update()
	before := append([]float64(nil), f.Rows[0].Series[0].Data...)

	e.Close()
	e.Close() // second close is a no-op
	if e.IsOpen() {
		t.Fatal("IsOpen() = true after close")
	}
	if notified != 1 {
		t.Fatalf("close observers ran %d times, want 1", notified)
	}

	// Update stays callable but must no longer mutate.
	vals = []float64{9, 9}
	f, err = e.Update()
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range f.Rows[0].Series[0].Data {
		if v != before[i] {
			t.Fatalf("buffers mutated after close: %v vs %v", f.Rows[0].Series[0].Data, before)
		}
	}

	// Late observers fire immediately.
	late := false
	e.OnClose(func() { late = true })
	if !late {
		t.Fatal("OnClose after close did not fire")
	}
}

func TestEngineDefaults(t *testing.T) {
	src := SourceFunc(noData)
	e, err := New(Config{YRanges: []Range{{-1, 1}}}, src)
	if err != nil {
		t.Fatal(err)
	}
	if e.Interval() != defaultInterval {
		t.Errorf("Interval() = %v, want %v", e.Interval(), defaultInterval)
	}
	if e.Rows() != 1 {
		t.Errorf("Rows() = %d, want 1", e.Rows())
	}
	f := e.frame()
	if n := len(f.Rows[0].Series[0].Data); n != defaultSize {
		t.Errorf("default window width = %d, want %d", n, defaultSize)
	}
	if f.Rows[0].Series[0].Style != defaultStyle {
		t.Errorf("default style = %+v, want %+v", f.Rows[0].Series[0].Style, defaultStyle)
	}
	if !f.Waiting {
		t.Error("new engine should report waiting before first data")
	}
}
