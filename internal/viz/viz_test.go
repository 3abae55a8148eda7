package viz

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/handspin/internal/clock"
	"github.com/san-kum/handspin/internal/config"
	"github.com/san-kum/handspin/internal/geom"
	"github.com/san-kum/handspin/internal/render"
	"github.com/san-kum/handspin/internal/session"
)

func TestCanvasSetAndLit(t *testing.T) {
	c := NewCanvas(4, 2)
	if w, h := c.Pixels(); w != 8 || h != 8 {
		t.Fatalf("expected 8x8 pixels, got %dx%d", w, h)
	}

	c.Set(3, 5)
	if !c.Lit(3, 5) {
		t.Error("expected pixel to be lit")
	}
	if c.Lit(2, 5) {
		t.Error("neighbour should stay dark")
	}
	if c.Grid[1][1] != 0x2800|0x10 {
		t.Errorf("unexpected cell %U", c.Grid[1][1])
	}

	c.Set(-1, 0)
	c.Set(100, 100)
	c.Clear()
	if c.Lit(3, 5) {
		t.Error("clear should reset the canvas")
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(10, 3)
	c.DrawLine(0, 0, 19, 0)
	for x := 0; x < 20; x++ {
		if !c.Lit(x, 0) {
			t.Fatalf("pixel %d not lit", x)
		}
	}

	c.Clear()
	c.DrawLine(0, 0, 5, 5)
	for i := 0; i <= 5; i++ {
		if !c.Lit(i, i) {
			t.Errorf("diagonal pixel %d not lit", i)
		}
	}
}

func TestCanvasDrawScene(t *testing.T) {
	p := config.DefaultParams()
	p.Flags.PrimaryAxis = true
	s := session.New(p)
	defer s.Close()

	c := NewCanvas(20, 10)
	c.DrawScene(render.Build(s.Frame(), nil), ThemeClassic)

	// 40x40 pixels; the origin maps to the middle.
	if !c.Lit(20, 20) && !c.Lit(19, 19) {
		t.Error("expected the axis dot at the center")
	}
	if c.Lit(0, 0) {
		t.Error("corner should stay dark")
	}
	if c.Colors[5][10] != ThemeClassic.Corner && c.Colors[4][9] != ThemeClassic.Corner {
		t.Error("axis dot should use the corner color")
	}
	if strings.Count(c.Plain(), "\n") != 10 {
		t.Error("expected one line per row")
	}
}

func TestThemes(t *testing.T) {
	if GetTheme("ocean").Name != "ocean" {
		t.Error("expected ocean theme")
	}
	if GetTheme("nope").Name != ThemeClassic.Name {
		t.Error("unknown themes should fall back to classic")
	}

	th := ThemeClassic
	seen := map[string]bool{}
	for range Themes {
		seen[th.Name] = true
		th = NextTheme(th)
	}
	if len(seen) != len(Themes) || th.Name != ThemeClassic.Name {
		t.Errorf("cycling should visit every theme once, saw %v", seen)
	}
	if ThemeClassic.Color(render.Magenta) != ThemeClassic.Primary {
		t.Error("magenta should map to the primary color")
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		v, lo, hi float64
		want      string
	}{
		{0, 0, 10, "[----]"},
		{10, 0, 10, "[====]"},
		{5, 0, 10, "[==--]"},
		{20, 0, 10, "[====]"},
		{-3, 0, 10, "[----]"},
	}
	for _, tt := range tests {
		if got := ProgressBar(tt.v, tt.lo, tt.hi, 4); got != tt.want {
			t.Errorf("ProgressBar(%v) = %s, want %s", tt.v, got, tt.want)
		}
	}
}

func TestControlAdjust(t *testing.T) {
	byCode := map[string]control{}
	for _, c := range controls {
		byCode[c.code] = c
	}

	p := config.DefaultParams()
	p = byCode["cA"].adjust(p, 1)
	if p.CornersA != 5 {
		t.Errorf("expected 5 corners, got %d", p.CornersA)
	}

	p.CornersA = 7
	if p = byCode["cA"].adjust(p, 1); p.CornersA != 7 {
		t.Errorf("expected clamp at 7, got %d", p.CornersA)
	}

	p.CornersA = 20
	if p = byCode["cA"].adjust(p, 1); p.CornersA != 20 {
		t.Errorf("out of range value should not move further, got %d", p.CornersA)
	}
	if p = byCode["cA"].adjust(p, -1); p.CornersA != 19 {
		t.Errorf("expected 19, got %d", p.CornersA)
	}

	p.BaseSpeed = -50
	if p = byCode["bS"].adjust(p, -1); p.BaseSpeed != -50 {
		t.Errorf("out of range value should not move further, got %v", p.BaseSpeed)
	}
	if p = byCode["bS"].adjust(p, 1); p.BaseSpeed != -49.9 {
		t.Errorf("expected -49.9, got %v", p.BaseSpeed)
	}

	p = config.DefaultParams()
	for i := 0; i < 3; i++ {
		p = byCode["bS"].adjust(p, 1)
	}
	if p.BaseSpeed != 2.3 {
		t.Errorf("expected 2.3 without drift, got %v", p.BaseSpeed)
	}
}

func TestControlAdjustAdoptsSpeedups(t *testing.T) {
	p := config.DefaultParams()
	p.CornersA, p.CornersB = 5, 2
	p = controlByCode(t, "sA").adjust(p, 1)

	if !p.ManualSpeedup {
		t.Fatal("tuning a speedup should switch to manual")
	}
	if p.SpeedupA != 2.1 || p.SpeedupB != -5 {
		t.Errorf("expected 2.1/-5, got %v/%v", p.SpeedupA, p.SpeedupB)
	}
}

func controlByCode(t *testing.T, code string) control {
	t.Helper()
	for _, c := range controls {
		if c.code == code {
			return c
		}
	}
	t.Fatalf("no control %s", code)
	return control{}
}

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("unexpected model type %T", next)
	}
	return out
}

func TestModelTickAdvancesRounds(t *testing.T) {
	s := session.New(config.DefaultParams())
	defer s.Close()
	m := NewModel(s)

	t0 := time.Unix(1000, 0)
	m = send(t, m, TickMsg(t0))
	m = send(t, m, TickMsg(t0.Add(30*time.Second)))

	// 0.5 min at 2 rounds/min.
	if got := m.frame.Rounds; got != 1 {
		t.Errorf("expected 1 round, got %v", got)
	}
	if len(m.history) != 2 {
		t.Errorf("expected 2 history points, got %d", len(m.history))
	}
}

func TestModelPauseDoesNotJump(t *testing.T) {
	s := session.New(config.DefaultParams())
	defer s.Close()
	m := NewModel(s)

	t0 := time.Unix(1000, 0)
	m = send(t, m, TickMsg(t0))
	m = send(t, m, TickMsg(t0.Add(3*time.Second)))
	m = send(t, m, key(" "))
	m = send(t, m, TickMsg(t0.Add(60*time.Second)))
	paused := m.frame.Rounds

	m = send(t, m, key(" "))
	m = send(t, m, TickMsg(t0.Add(90*time.Second)))
	m = send(t, m, TickMsg(t0.Add(93*time.Second)))

	if paused != 0.1 {
		t.Errorf("expected 0.1 rounds while paused, got %v", paused)
	}
	if got := m.frame.Rounds; got < 0.2-1e-12 || got > 0.2+1e-12 {
		t.Errorf("expected 0.2 after resuming, got %v", got)
	}
}

func TestModelKeys(t *testing.T) {
	s := session.New(config.DefaultParams())
	defer s.Close()
	m := NewModel(s)

	m = send(t, m, key("up"))
	if s.Params().CornersA != 5 {
		t.Errorf("up should raise corners A, got %d", s.Params().CornersA)
	}

	m = send(t, m, key("tab"))
	m = send(t, m, key("up"))
	if s.Params().CornersB != 4 {
		t.Errorf("tab then up should raise corners B, got %d", s.Params().CornersB)
	}

	m = send(t, m, key("x"))
	if !s.Params().Flags.PrimaryAxis {
		t.Error("x should toggle the first element")
	}
	m = send(t, m, key("right"))
	m = send(t, m, key("enter"))
	if !s.Params().Flags.PrimaryHandsBlue {
		t.Error("enter should toggle the element under the cursor")
	}

	m = send(t, m, key("]"))
	if s.Rounds() != 0.01 {
		t.Errorf("expected offset to 0.01, got %v", s.Rounds())
	}
	m = send(t, m, key("r"))
	if s.Rounds() != 0 {
		t.Errorf("expected reset to 0, got %v", s.Rounds())
	}

	m = send(t, m, key("m"))
	if !s.Params().ManualSpeedup {
		t.Error("m should switch to manual speedups")
	}

	m = send(t, m, key("p"))
	if !strings.HasPrefix(m.message, "preset ") {
		t.Errorf("expected preset message, got %q", m.message)
	}

	before := m.theme.Name
	m = send(t, m, key("t"))
	if m.theme.Name == before {
		t.Error("t should change the theme")
	}
}

func TestModelMatchSpeed(t *testing.T) {
	p := config.DefaultParams()
	s := session.New(p)
	defer s.Close()
	m := NewModel(s, WithMatchRPM(12))

	m = send(t, m, key("s"))
	a, b := geom.HandSpeeds(s.Params())
	if fastest := max(abs(a), abs(b)); fastest < 12-1e-9 || fastest > 12+1e-9 {
		t.Errorf("expected fastest hand at 12 rpm, got %v", fastest)
	}

	p.ManualSpeedup, p.SpeedupA, p.SpeedupB = true, 0, 0
	s.Replace(p)
	m = send(t, m, key("s"))
	if m.message != geom.ErrNoRotation.Error() {
		t.Errorf("expected warning, got %q", m.message)
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func TestModelSnapshot(t *testing.T) {
	dir := t.TempDir()
	s := session.New(config.Decode("#C&T"))
	defer s.Close()
	m := NewModel(s, WithSnapshotDir(dir))

	m = send(t, m, key("g"))
	if !strings.HasPrefix(m.message, "saved ") {
		t.Fatalf("expected saved message, got %q", m.message)
	}
	files, err := filepath.Glob(filepath.Join(dir, "handspin-*.png"))
	if err != nil || len(files) != 1 {
		t.Fatalf("expected one snapshot, got %v (%v)", files, err)
	}
	info, err := os.Stat(files[0])
	if err != nil || info.Size() == 0 {
		t.Errorf("snapshot is empty: %v", err)
	}
}

func TestModelQuitClosesSession(t *testing.T) {
	s := session.New(config.DefaultParams())
	m := NewModel(s)

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if !s.Clock().Stopped() {
		t.Error("quit should stop the clock")
	}
	if err := s.Clock().Set(1); !errors.Is(err, clock.ErrStopped) {
		t.Errorf("expected stopped clock to refuse updates, got %v", err)
	}
}

func TestModelView(t *testing.T) {
	s := session.New(config.DefaultParams())
	defer s.Close()
	m := NewModel(s)

	out := m.View()
	for _, want := range []string{"HANDSPIN", "RUNNING", "corners A", config.Encode(s.Params())} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m = send(t, m, key("?"))
	if !strings.Contains(m.View(), "KEYBOARD SHORTCUTS") {
		t.Error("expected help overlay")
	}
}
