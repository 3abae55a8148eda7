package viz

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/handspin/internal/config"
	"github.com/san-kum/handspin/internal/geom"
	"github.com/san-kum/handspin/internal/logging"
	"github.com/san-kum/handspin/internal/render"
	"github.com/san-kum/handspin/internal/session"
)

const (
	width           = 60
	height          = 28
	panelWidth      = 50
	historyCapacity = 600
	snapshotSize    = 800
	// DefaultMatchRPM is the hand speed the match key aims for.
	DefaultMatchRPM = 6.0
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// control is one adjustable numeric parameter.
type control struct {
	code     string
	label    string
	lo, hi   float64
	step     float64
	get      func(config.Params) float64
	set      func(config.Params, float64) config.Params
	isManual bool
}

var controls = []control{
	{code: "cA", label: "corners A", lo: 1, hi: 7, step: 1,
		get: func(p config.Params) float64 { return float64(p.CornersA) },
		set: func(p config.Params, v float64) config.Params { p.CornersA = int(v); return p }},
	{code: "cB", label: "corners B", lo: 1, hi: 7, step: 1,
		get: func(p config.Params) float64 { return float64(p.CornersB) },
		set: func(p config.Params, v float64) config.Params { p.CornersB = int(v); return p }},
	{code: "pA", label: "length A %", lo: 0, hi: 100, step: 1,
		get: func(p config.Params) float64 { return p.PercentageA },
		set: func(p config.Params, v float64) config.Params { p.PercentageA = v; return p }},
	{code: "bS", label: "base speed", lo: -10, hi: 10, step: 0.1,
		get: func(p config.Params) float64 { return p.BaseSpeed },
		set: func(p config.Params, v float64) config.Params { p.BaseSpeed = v; return p }},
	{code: "sA", label: "speedup A", lo: -7, hi: 7, step: 0.1, isManual: true,
		get: func(p config.Params) float64 { return geom.Resolve(p).SpeedupA },
		set: func(p config.Params, v float64) config.Params { p.SpeedupA = v; return p }},
	{code: "sB", label: "speedup B", lo: -7, hi: 7, step: 0.1, isManual: true,
		get: func(p config.Params) float64 { return geom.Resolve(p).SpeedupB },
		set: func(p config.Params, v float64) config.Params { p.SpeedupB = v; return p }},
}

// adjust moves the control one step in dir. Values already outside the
// slider range are never pulled further in the direction of travel.
func (c control) adjust(p config.Params, dir float64) config.Params {
	if c.isManual && !p.ManualSpeedup {
		p = geom.AdoptAutomaticSpeedups(p)
	}
	old := c.get(p)
	v := math.Round((old+dir*c.step)*1e6) / 1e6
	if v > c.hi && v > old {
		v = math.Max(old, c.hi)
	}
	if v < c.lo && v < old {
		v = math.Min(old, c.lo)
	}
	return c.set(p, v)
}

// Model is the live view of one session.
type Model struct {
	sess          *session.Session
	theme         Theme
	width, height int
	canvas        *Canvas
	frame         session.Frame
	running       bool
	selected      int
	flagCursor    int
	flagFields    []config.Field
	presetIdx     int
	history       []float64
	showHelp      bool
	message       string
	snapshotDir   string
	matchRPM      float64
}

type Option func(*Model)

func WithTheme(name string) Option {
	return func(m *Model) { m.theme = GetTheme(name) }
}

// WithSnapshotDir sets where the snapshot key writes PNG files.
func WithSnapshotDir(dir string) Option {
	return func(m *Model) { m.snapshotDir = dir }
}

func WithMatchRPM(rpm float64) Option {
	return func(m *Model) { m.matchRPM = rpm }
}

// NewModel builds a running view of sess. The model owns the session from
// here on and closes it on quit.
func NewModel(sess *session.Session, opts ...Option) Model {
	flags := make([]config.Field, 0, 13)
	for _, f := range config.Fields() {
		if f.Kind == config.KindBool && f.Code != "MS" {
			flags = append(flags, f)
		}
	}

	m := Model{
		sess:        sess,
		theme:       ThemeClassic,
		width:       width,
		height:      height,
		canvas:      NewCanvas(width, height),
		frame:       sess.Frame(),
		running:     true,
		flagFields:  flags,
		presetIdx:   -1,
		history:     make([]float64, 0, historyCapacity),
		snapshotDir: ".",
		matchRPM:    DefaultMatchRPM,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and advances the clock.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w := max(20, msg.Width-panelWidth-6)
		h := max(10, msg.Height-3)
		m.width, m.height = w, h
		m.canvas = NewCanvas(w, h)
	case tea.KeyMsg:
		return m.handleKey(msg)
	case TickMsg:
		if m.running {
			m.frame = m.sess.Tick(time.Time(msg))
		} else {
			m.frame = m.sess.Frame()
		}
		if p, ok := m.frame.Primary(); ok {
			m.history = append(m.history, p.X)
			if len(m.history) > historyCapacity {
				m.history = m.history[1:]
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	m.message = ""
	clk := m.sess.Clock()

	switch msg.String() {
	case "q", "ctrl+c":
		m.sess.Close()
		return m, tea.Quit
	case " ":
		m.running = !m.running
		if !m.running {
			clk.Pause()
		}
	case "r":
		m.warn(clk.Set(0))
		m.history = m.history[:0]
	case "[":
		m.warn(clk.Offset(-0.01))
	case "]":
		m.warn(clk.Offset(0.01))
	case "tab":
		m.selected = (m.selected + 1) % len(controls)
	case "shift+tab":
		m.selected = (m.selected + len(controls) - 1) % len(controls)
	case "up", "k":
		c := controls[m.selected]
		m.sess.Update(func(p config.Params) config.Params { return c.adjust(p, 1) })
	case "down", "j":
		c := controls[m.selected]
		m.sess.Update(func(p config.Params) config.Params { return c.adjust(p, -1) })
	case "left", "h":
		m.flagCursor = (m.flagCursor + len(m.flagFields) - 1) % len(m.flagFields)
	case "right", "l":
		m.flagCursor = (m.flagCursor + 1) % len(m.flagFields)
	case "enter", "x":
		f := m.flagFields[m.flagCursor]
		m.sess.Update(f.Toggle)
	case "m":
		m.sess.Update(func(p config.Params) config.Params {
			if p.ManualSpeedup {
				p.ManualSpeedup = false
				return p
			}
			return geom.AdoptAutomaticSpeedups(p)
		})
	case "s":
		p, err := geom.MatchRotationSpeed(m.sess.Params(), m.matchRPM)
		if err != nil {
			m.warn(err)
			break
		}
		m.sess.Replace(p)
	case "p":
		names := config.ListPresets()
		m.presetIdx = (m.presetIdx + 1) % len(names)
		p, _ := config.GetPreset(names[m.presetIdx])
		m.sess.Replace(p)
		m.message = "preset " + names[m.presetIdx]
	case "t":
		m.theme = NextTheme(m.theme)
	case "g":
		path, err := m.snapshot()
		if err != nil {
			m.warn(err)
			break
		}
		m.message = "saved " + path
	case "?":
		m.showHelp = !m.showHelp
	}

	m.frame = m.sess.Frame()
	return m, nil
}

func (m *Model) warn(err error) {
	if err == nil {
		return
	}
	logging.Logger().Warn("live view", "err", err)
	m.message = err.Error()
}

// snapshot writes the current frame as PNG.
func (m Model) snapshot() (string, error) {
	name := fmt.Sprintf("handspin-%s.png", time.Now().Format("20060102-150405"))
	path := filepath.Join(m.snapshotDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := render.WritePNG(f, m.scene(), snapshotSize); err != nil {
		return "", err
	}
	return path, nil
}

func (m Model) scene() render.Scene {
	var trace geom.Curve
	if m.frame.Params.Flags.Trace {
		trace = m.sess.Trace()
	}
	return render.Build(m.frame, trace)
}

// View renders the TUI interface.
func (m Model) View() string {
	m.canvas.Clear()
	m.canvas.DrawScene(m.scene(), m.theme)
	canvasView := canvasStyle.Render(m.canvas.String())

	p := m.frame.Params
	var s strings.Builder
	s.WriteString(headerStyle.Render("HANDSPIN") + "\n")

	if m.running {
		s.WriteString(statusRunning.Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(statusPaused.Render("PAUSED") + "\n\n")
	}

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("primary x"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	rpmA, rpmB := geom.HandSpeeds(p)
	s.WriteString(labelStyle.Render("Rounds") + valueStyle.Render(fmt.Sprintf("%.3f", m.frame.Rounds)) + "\n")
	s.WriteString(labelStyle.Render("Hands rpm") + valueStyle.Render(fmt.Sprintf("%.2f / %.2f", rpmA, rpmB)) + "\n")
	s.WriteString(labelStyle.Render("Config") + "\n" + valueStyle.Render(config.Encode(p)) + "\n")

	s.WriteString("\nPARAMETERS\n")
	accent := lipgloss.NewStyle().Foreground(m.theme.Accent).Bold(true)
	for i, c := range controls {
		line := fmt.Sprintf("%-11s %s %6.2f", c.label, ProgressBar(c.get(p), c.lo, c.hi, 10), c.get(p))
		if c.isManual && !p.ManualSpeedup {
			line += " auto"
		}
		if i == m.selected {
			s.WriteString(accent.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + valueStyle.Render(line) + "\n")
		}
	}

	s.WriteString("\nELEMENTS\n")
	for i, f := range m.flagFields {
		cell := fmt.Sprintf("%s %-3s", Checkbox(f.Get(p)), f.Code)
		if i == m.flagCursor {
			cell = accent.Render(cell)
		}
		s.WriteString(cell + " ")
		if i%5 == 4 {
			s.WriteString("\n")
		}
	}
	s.WriteString("\n")

	if m.message != "" {
		warn := lipgloss.NewStyle().Foreground(m.theme.Warning)
		s.WriteString("\n" + warn.Render(m.message) + "\n")
	}

	s.WriteString(helpStyle.Render("SP:Pause R:Reset Q:Quit ?:Help\nTab:Param ↑↓:Tune ←→:Element X:Toggle"))
	panel := panelStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, panel)

	if m.showHelp {
		return helpText() + "\n\n" + mainView
	}
	return mainView
}

func helpText() string {
	return keyHint.Render(`
KEYBOARD SHORTCUTS
  Space      pause / resume
  R          rounds back to zero
  [ ]        nudge rounds by 0.01
  Tab        next parameter (Shift+Tab back)
  Up/Down    adjust parameter
  Left/Right move element cursor
  Enter/X    toggle element
  M          manual speedups on/off
  S          match hand speed
  P          next preset
  T          next theme
  G          save PNG snapshot
  ?          toggle this help
  Q          quit`)
}

// Run shows the live view until the user quits.
func Run(sess *session.Session, opts ...Option) error {
	_, err := tea.NewProgram(NewModel(sess, opts...), tea.WithAltScreen()).Run()
	return err
}
