// Demo for the strip-chart engine: a synthetic sine-wave producer or a
// numeric line reader (stdin or file) feeding a live terminal plot.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/x/term"

	"github.com/keilerkonzept/stripchart-tui/stripchart"
	"github.com/keilerkonzept/stripchart-tui/tui"
)

type Config struct {
	// plot
	Mode     string
	Rows     int
	Size     int
	Interval time.Duration
	Phase    bool
	Overlay  bool
	Readouts bool
	Title    string

	// baseline
	BaselineRow   int
	BaselineValue float64

	// producer
	Pace      time.Duration
	InputPath string
	YMin      float64
	YMax      float64

	// render
	Stats       bool
	AltScreen   bool
	SnapshotDir string
}

var config = Config{
	Mode:     "sine",
	Rows:     2,
	Size:     100,
	Interval: 20 * time.Millisecond,

	BaselineRow: -1,

	Pace: 2 * time.Millisecond,
	YMin: -1,
	YMax: 1,

	AltScreen:   true,
	SnapshotDir: ".",
}

func main() {
	log.SetOutput(os.Stdout)
	flag.StringVar(&config.Mode, "mode", config.Mode, "Demo mode: sine (synthetic waves) or read (numeric lines from stdin/file)")
	flag.IntVar(&config.Rows, "rows", config.Rows, "Number of chart rows (= channels in read mode)")
	flag.IntVar(&config.Size, "size", config.Size, "Window width in samples")
	flag.DurationVar(&config.Interval, "interval", config.Interval, "Redraw interval")
	flag.BoolVar(&config.Phase, "phase", config.Phase, "Add a phase panel fed by the first two channels (sine mode)")
	flag.BoolVar(&config.Overlay, "overlay", config.Overlay, "Overlay all waves on a single row (sine mode)")
	flag.BoolVar(&config.Readouts, "readouts", config.Readouts, "Show a live numeric readout per row")
	flag.StringVar(&config.Title, "title", config.Title, "Window title")
	flag.IntVar(&config.BaselineRow, "baseline-row", config.BaselineRow, "Show a baseline on this row (-1 disables)")
	flag.Float64Var(&config.BaselineValue, "baseline", config.BaselineValue, "Baseline value")
	flag.DurationVar(&config.Pace, "pace", config.Pace, "Producer sleep between samples")
	flag.StringVar(&config.InputPath, "in", config.InputPath, "Read input from this file instead of stdin (read mode)")
	flag.Float64Var(&config.YMin, "ymin", config.YMin, "Y-range minimum (read mode)")
	flag.Float64Var(&config.YMax, "ymax", config.YMax, "Y-range maximum (read mode)")
	flag.BoolVar(&config.Stats, "stats", config.Stats, "Show the frame stats block")
	flag.BoolVar(&config.AltScreen, "alt-screen", config.AltScreen, "Use the terminal alternate screen buffer")
	flag.StringVar(&config.SnapshotDir, "snapshot-dir", config.SnapshotDir, "Directory for PNG snapshots")
	flag.Parse()

	if err := validateAndNormalizeConfig(); err != nil {
		log.Fatal(err)
	}

	slot := stripchart.NewSlot()
	engine, err := stripchart.New(engineConfig(), slot)
	if err != nil {
		log.Fatal(err)
	}

	if config.BaselineRow >= 0 {
		if err := engine.ShowBaseline(config.BaselineRow, config.BaselineValue); err != nil {
			log.Fatal(err)
		}
	}

	switch config.Mode {
	case "sine":
		go produceSine(engine, slot)
	case "read":
		r, err := openInput()
		if err != nil {
			log.Fatal(err)
		}
		go produceLines(engine, slot, r)
	}

	if err := tui.Run(engine,
		tui.WithSlot(slot),
		tui.WithStats(config.Stats),
		tui.WithAltScreen(config.AltScreen),
		tui.WithSnapshotDir(config.SnapshotDir),
	); err != nil {
		log.Fatal(err)
	}
}

func validateAndNormalizeConfig() error {
	if config.Mode != "sine" && config.Mode != "read" {
		return fmt.Errorf("-mode must be sine or read")
	}
	if config.Rows < 1 {
		return fmt.Errorf("-rows must be >= 1")
	}
	if config.Size < 2 {
		return fmt.Errorf("-size must be >= 2")
	}
	if config.Interval <= 0 {
		return fmt.Errorf("-interval must be > 0")
	}
	if config.Pace < 0 {
		return fmt.Errorf("-pace must be >= 0")
	}
	if !(config.YMin < config.YMax) {
		return fmt.Errorf("-ymin must be less than -ymax")
	}
	if config.Phase && config.Mode != "sine" {
		return fmt.Errorf("-phase requires -mode=sine")
	}
	if config.Overlay && config.Mode != "sine" {
		return fmt.Errorf("-overlay requires -mode=sine")
	}
	if config.Title == "" {
		if config.Mode == "sine" {
			config.Title = "Sinewave demo"
		} else {
			config.Title = "Line input"
		}
	}
	return nil
}

// waveColors cycles per channel in sine mode.
var waveColors = []stripchart.Color{
	stripchart.Red,
	stripchart.Blue,
	stripchart.Green,
	stripchart.Yellow,
	stripchart.Magenta,
	stripchart.Cyan,
}

func engineConfig() stripchart.Config {
	cfg := stripchart.Config{
		Size:     config.Size,
		Title:    config.Title,
		Readouts: config.Readouts,
		Interval: config.Interval,
	}
	if config.Mode == "read" {
		cfg.YRanges = make([]stripchart.Range, config.Rows)
		cfg.YTicks = make([][]float64, config.Rows)
		for i := range cfg.YRanges {
			cfg.YRanges[i] = stripchart.Range{Min: config.YMin, Max: config.YMax}
			cfg.YTicks[i] = []float64{config.YMin, config.YMax}
		}
		return cfg
	}

	waves := make([]stripchart.Style, config.Rows)
	for i := range waves {
		waves[i] = stripchart.Style{
			Color: waveColors[i%len(waveColors)],
			Label: fmt.Sprintf("wave %d", i+1),
		}
	}
	if config.Overlay {
		cfg.YRanges = []stripchart.Range{{Min: -1, Max: 1}}
		cfg.Styles = []stripchart.Spec{stripchart.Overlay(waves...)}
		cfg.YTicks = [][]float64{{-1, 0, 1}}
	} else {
		cfg.YRanges = make([]stripchart.Range, config.Rows)
		cfg.Styles = make([]stripchart.Spec, config.Rows)
		cfg.YLabels = make([]string, config.Rows)
		cfg.YTicks = make([][]float64, config.Rows)
		for i := range cfg.YRanges {
			cfg.YRanges[i] = stripchart.Range{Min: -1, Max: 1}
			cfg.Styles[i] = stripchart.Single(stripchart.Style{Color: waves[i].Color})
			cfg.YLabels[i] = waves[i].Label
			cfg.YTicks[i] = []float64{-1, 0, 1}
		}
	}
	if config.Phase {
		cfg.Phase = &stripchart.PhaseRange{
			X: stripchart.Range{Min: -1, Max: 1},
			Y: stripchart.Range{Min: -1, Max: 1},
		}
	}
	return cfg
}

// produceSine writes one sample tuple per pace tick: channel w is a sine of
// frequency w over the window, and the phase prefix traces the unit circle.
func produceSine(engine *stripchart.Engine, slot *stripchart.Slot) {
	size := float64(config.Size)
	x := 0
	for engine.IsOpen() {
		t := math.Mod(float64(x), size) / size
		var vals []float64
		if config.Phase {
			vals = append(vals, math.Cos(2*math.Pi*t), math.Sin(2*math.Pi*t))
		}
		for w := 1; w <= config.Rows; w++ {
			vals = append(vals, math.Sin(float64(w)*2*math.Pi*t))
		}
		slot.Set(vals)
		x++
		if config.Pace > 0 {
			time.Sleep(config.Pace)
		}
	}
}

func openInput() (io.Reader, error) {
	if config.InputPath != "" {
		return os.Open(config.InputPath)
	}
	if term.IsTerminal(os.Stdin.Fd()) {
		return nil, fmt.Errorf("read mode needs piped input or -in")
	}
	return os.Stdin, nil
}

// produceLines parses one whitespace-separated float per channel from each
// input line. Malformed or short lines are skipped; the previous sample
// stays current until a valid one arrives.
func produceLines(engine *stripchart.Engine, slot *stripchart.Slot, r io.Reader) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	vals := make([]float64, config.Rows)
	for scanner.Scan() && engine.IsOpen() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < config.Rows {
			continue
		}
		ok := true
		for i := 0; i < config.Rows; i++ {
			v, err := strconv.ParseFloat(fields[i], 64)
			if err != nil {
				ok = false
				break
			}
			vals[i] = v
		}
		if !ok {
			continue
		}
		slot.Set(vals)
		if config.Pace > 0 {
			time.Sleep(config.Pace)
		}
	}
}
