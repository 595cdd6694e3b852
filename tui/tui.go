// Package tui drives a stripchart.Engine from a bubbletea render loop and
// paints its frames in the terminal: braille strip charts per row, a
// scatter pane for the phase panel, and an optional stats block.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	plot "github.com/chriskim06/drawille-go"

	"github.com/keilerkonzept/stripchart-tui/stripchart"
)

// FrameTickMsg schedules one frame: pull values, roll buffers, repaint.
type FrameTickMsg time.Time

type model struct {
	engine *stripchart.Engine
	slot   *stripchart.Slot // optional, enables the sample-rate stat

	width, height int
	paused        bool
	showStats     bool
	altScreen     bool
	snapshotDir   string

	frame          stripchart.Frame
	rows           []rowPane
	phase          *phasePane
	phaseW, phaseH int
	err            error
	notice         string

	help    help.Model
	metrics *frameMetrics
}

// rowPane is the drawille canvas of one chart row plus its fixed geometry.
type rowPane struct {
	canvas plot.Canvas
	width  int
	height int
}

// Option configures Run.
type Option func(*model)

// WithSlot lets the stats block report the producer's sample rate.
func WithSlot(s *stripchart.Slot) Option {
	return func(m *model) { m.slot = s }
}

// WithStats shows the stats block from the start.
func WithStats(enabled bool) Option {
	return func(m *model) { m.showStats = enabled }
}

// WithAltScreen controls use of the terminal alternate screen buffer.
func WithAltScreen(enabled bool) Option {
	return func(m *model) { m.altScreen = enabled }
}

// WithSnapshotDir sets where PNG snapshots are written (default ".").
func WithSnapshotDir(dir string) Option {
	return func(m *model) { m.snapshotDir = dir }
}

// Run starts the render loop and blocks until the window is closed or the
// loop ends. Closing the window (quit key) closes the engine; toolkit
// failures during teardown of an already-closed engine are swallowed so a
// close cannot crash the host process.
func Run(e *stripchart.Engine, opts ...Option) error {
	m := newModel(e, opts...)
	teaOpts := []tea.ProgramOption{tea.WithInputTTY()}
	if m.altScreen {
		teaOpts = append(teaOpts, tea.WithAltScreen())
	}
	final, err := tea.NewProgram(m, teaOpts...).Run()
	wasOpen := e.IsOpen()
	e.Close()
	if fm, ok := final.(*model); ok && fm.err != nil {
		return fm.err
	}
	if err != nil && wasOpen {
		return err
	}
	return nil
}

func newModel(e *stripchart.Engine, opts ...Option) *model {
	const (
		defaultWidth  = 80
		defaultHeight = 24
	)
	m := &model{
		engine:      e,
		altScreen:   true,
		snapshotDir: ".",
		help:        help.New(),
		frame:       stripchart.Frame{Title: e.Title(), Waiting: true},
	}
	for _, opt := range opts {
		opt(m)
	}
	m.metrics = newFrameMetrics(256, m.slot)
	m.width, m.height = defaultWidth, defaultHeight
	m.layout()
	return m
}

func (m *model) doFrameTick() tea.Cmd {
	return tea.Every(m.engine.Interval(), func(t time.Time) tea.Msg {
		return FrameTickMsg(t)
	})
}

func (m *model) Init() tea.Cmd {
	return m.doFrameTick()
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case FrameTickMsg:
		if !m.engine.IsOpen() {
			return m, tea.Quit
		}
		if m.paused {
			return m, m.doFrameTick()
		}
		start := time.Now()
		frame, err := m.engine.Update()
		if err != nil {
			// Value-count mismatches are integration errors: fatal, not
			// retried.
			m.err = err
			m.engine.Close()
			return m, tea.Quit
		}
		m.metrics.observeFrame(time.Since(start), frame.Waiting)
		m.frame = frame
		m.redraw()
		return m, m.doFrameTick()
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		m.redraw()
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.engine.Close()
			return m, tea.Quit
		case key.Matches(msg, keys.Pause):
			m.paused = !m.paused
			return m, nil
		case key.Matches(msg, keys.Stats):
			m.showStats = !m.showStats
			m.layout()
			m.redraw()
			return m, nil
		case key.Matches(msg, keys.Snapshot):
			path, err := SaveSnapshot(m.frame, m.snapshotDir)
			if err != nil {
				m.notice = "snapshot failed: " + err.Error()
			} else {
				m.notice = "snapshot written to " + path
			}
			return m, nil
		}
	}
	return m, nil
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Pause, k.Snapshot, k.Stats}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Quit, k.Pause},
		{k.Snapshot, k.Stats},
	}
}

type keyMap struct {
	Pause    key.Binding
	Stats    key.Binding
	Snapshot key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Pause: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "pause"),
	),
	Stats: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "stats"),
	),
	Snapshot: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "snapshot"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q/ctrl+c", "quit"),
	),
}
