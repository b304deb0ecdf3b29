package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fchimpan/vibeterm/internal/bounce"
	"github.com/fchimpan/vibeterm/internal/config"
	"github.com/fchimpan/vibeterm/internal/content"
	"github.com/fchimpan/vibeterm/internal/desk"
	"github.com/fchimpan/vibeterm/internal/reveal"
)

var testStart = time.Date(2024, 6, 13, 8, 41, 30, 0, time.UTC)

func newTestModel(t *testing.T, opts Options) *Model {
	t.Helper()
	opts.Now = func() time.Time { return testStart }
	opts.Seed = 42
	m := NewModel(opts)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func tick(m *Model, d time.Duration) {
	m.Update(tickMsg(m.loop.Now().Add(d)))
}

func TestDesktop_StartsWithConfiguredTerminals(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, Options{Terminals: 4})
	if got := m.desk.Len(); got != 4 {
		t.Fatalf("windows = %d, want 4", got)
	}
	if len(m.terms) != 4 {
		t.Fatalf("terminals = %d, want 4", len(m.terms))
	}

	want := []string{"conversation", "troubleshooting", "epic", "conversation"}
	for i, w := range m.desk.Windows() {
		if got := m.terms[w.ID].category; got != want[i] {
			t.Fatalf("window %d category = %q, want %q", i, got, want[i])
		}
	}
}

func TestDesktop_NotReadyBeforeResize(t *testing.T) {
	t.Parallel()

	m := NewModel(Options{Terminals: 3})
	if m.desk.Len() != 0 {
		t.Fatalf("expected no windows before the first resize")
	}
	if got := m.View(); got != "loading...\n" {
		t.Fatalf("View = %q", got)
	}
}

func TestDesktop_KeysChangeCountWithinBounds(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, Options{Terminals: 1})

	steps := []struct {
		key  string
		want int
	}{
		{"+", 2},
		{"]", 12},
		{"[", 2},
		{"-", 1},
		{"-", 1},
		{"[", 1},
	}
	for _, s := range steps {
		m.Update(runes(s.key))
		if got := m.desk.Len(); got != s.want {
			t.Fatalf("after %q windows = %d, want %d", s.key, got, s.want)
		}
		if len(m.terms) != s.want {
			t.Fatalf("after %q terminals = %d, want %d", s.key, len(m.terms), s.want)
		}
	}

	for range 12 {
		m.Update(runes("]"))
	}
	if got := m.desk.Len(); got != desk.MaxWindows {
		t.Fatalf("windows = %d, want %d", got, desk.MaxWindows)
	}
}

func TestDesktop_RevealsScriptOnTick(t *testing.T) {
	t.Parallel()

	store, err := content.Parse([]byte("categories:\n  - name: one\n    lines:\n      - {text: \"hello world\", role: success}\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	m := newTestModel(t, Options{Terminals: 1, Store: store, ShowControls: true})

	view := m.View()
	if strings.Contains(view, "hello world") {
		t.Fatalf("text revealed before any tick")
	}
	for _, want := range []string{
		"Terminal 1",
		"I VIBE MORE THAN YOU",
		"Last login: Wed, Jun 12, 20:41:30",
		"user@localhost:~$ npm run dev",
		"Terminal Controls",
	} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}

	tick(m, time.Second)
	if view := m.View(); !strings.Contains(view, "hello world") {
		t.Fatalf("view missing revealed text:\n%s", view)
	}
}

func TestDesktop_ThemeAndLayoutKeys(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, Options{Terminals: 2})
	m.Update(runes("t"))
	if m.themeName != "light" {
		t.Fatalf("theme = %q, want light", m.themeName)
	}
	m.Update(runes("l"))
	if m.desk.Mode() != desk.ModeScattered {
		t.Fatalf("mode = %v, want scattered", m.desk.Mode())
	}
	m.Update(runes("l"))
	if m.desk.Mode() != desk.ModeUniform {
		t.Fatalf("mode = %v, want uniform", m.desk.Mode())
	}
}

func TestDesktop_SpeedKeysClamp(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, Options{})
	for range 40 {
		m.Update(runes(">"))
	}
	if m.speed != config.MaxSpeed {
		t.Fatalf("speed = %v, want %v", m.speed, config.MaxSpeed)
	}
	for range 40 {
		m.Update(runes("<"))
	}
	if m.speed != config.MinSpeed {
		t.Fatalf("speed = %v, want %v", m.speed, config.MinSpeed)
	}
}

func TestDesktop_FocusAndClose(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, Options{Terminals: 3})
	wins := m.desk.Windows()

	// The last created window starts on top; tab wraps to the first.
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	f, _ := m.desk.Focused()
	if f.ID != wins[0].ID {
		t.Fatalf("focused = %s, want %s", f.ID, wins[0].ID)
	}

	m.Update(runes("x"))
	if m.desk.Len() != 2 {
		t.Fatalf("windows = %d, want 2", m.desk.Len())
	}
	if _, ok := m.terms[wins[0].ID]; ok {
		t.Fatalf("closed window's terminal still running")
	}
}

func TestDesktop_ArrowsMoveFocusedWindow(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, Options{Terminals: 1})
	before, _ := m.desk.Focused()
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	after, _ := m.desk.Focused()
	if after.Pos.X != before.Pos.X+2 || after.Pos.Y != before.Pos.Y+1 {
		t.Fatalf("moved from %+v to %+v", before.Pos, after.Pos)
	}
}

func TestDesktop_MouseDragAndClose(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, Options{Terminals: 1})
	w := m.desk.Windows()[0]

	press := func(x, y int) {
		m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	}

	press(w.Pos.X+10, w.Pos.Y)
	m.Update(tea.MouseMsg{X: w.Pos.X + 15, Y: w.Pos.Y + 3, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m.Update(tea.MouseMsg{X: w.Pos.X + 15, Y: w.Pos.Y + 3, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})

	moved, _ := m.desk.Get(w.ID)
	if moved.Pos.X != w.Pos.X+5 || moved.Pos.Y != w.Pos.Y+3 {
		t.Fatalf("dragged to %+v, want (%d,%d)", moved.Pos, w.Pos.X+5, w.Pos.Y+3)
	}

	press(moved.Pos.X+closeLightX, moved.Pos.Y)
	if m.desk.Len() != 0 {
		t.Fatalf("expected the window to close")
	}
}

func TestDesktop_MouseResize(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, Options{Terminals: 1})
	w := m.desk.Windows()[0]
	cx, cy := w.Pos.X+w.Size.W-1, w.Pos.Y+w.Size.H-1

	m.Update(tea.MouseMsg{X: cx, Y: cy, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m.Update(tea.MouseMsg{X: cx - 10, Y: cy - 2, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})

	got, _ := m.desk.Get(w.ID)
	if got.Size.W != w.Size.W-10 || got.Size.H != w.Size.H-2 {
		t.Fatalf("size = %+v, want %dx%d", got.Size, w.Size.W-10, w.Size.H-2)
	}
}

func TestDesktop_PanelButtons(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, Options{Terminals: 1, ShowControls: true})
	click := func(a panelAction) {
		t.Helper()
		for _, b := range m.panelButtons() {
			if b.action == a {
				m.Update(tea.MouseMsg{X: b.x, Y: b.y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
				return
			}
		}
		t.Fatalf("no button for action %d", a)
	}

	click(actMoreTen)
	if m.desk.Len() != 11 {
		t.Fatalf("windows = %d, want 11", m.desk.Len())
	}
	click(actTheme)
	if m.themeName != "light" {
		t.Fatalf("theme = %q, want light", m.themeName)
	}
	click(actHide)
	if m.showControls {
		t.Fatalf("controls should be hidden")
	}
	click(actShow)
	if !m.showControls {
		t.Fatalf("controls should be visible")
	}
}

func TestDesktop_SpritesStayInBounds(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, Options{Cats: 2, Rabbits: 1})
	if len(m.sprites) != 3 {
		t.Fatalf("sprites = %d, want 3", len(m.sprites))
	}
	m.Update(runes("k"))
	m.Update(runes("b"))
	if m.spriteCount(bounce.KindCat) != 3 || m.spriteCount(bounce.KindRabbit) != 2 {
		t.Fatalf("unexpected sprite mix")
	}

	for range 200 {
		tick(m, 20*time.Millisecond)
	}
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 12})
	b := m.bounds()
	for _, a := range m.sprites {
		s := a.Sprite()
		if s.Pos.X < 0 || s.Pos.Y < 0 || s.Pos.X > b.W-s.W || s.Pos.Y > b.H-s.H {
			t.Fatalf("sprite out of bounds: %+v in %+v", s.Pos, b)
		}
	}

	m.Update(runes("K"))
	if len(m.sprites) != 0 {
		t.Fatalf("sprites = %d, want 0", len(m.sprites))
	}
	tick(m, time.Second)
	for _, term := range m.terms {
		term.tw.Stop()
	}
	if n := m.loop.Pending(); n != 0 {
		t.Fatalf("pending callbacks = %d after teardown", n)
	}
}

func TestDesktop_QuitTearsDown(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, Options{Terminals: 5, Cats: 2})
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if n := m.loop.Pending(); n != 0 {
		t.Fatalf("pending callbacks = %d after quit", n)
	}
}

func TestDesktop_ConfigReload(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, Options{Terminals: 1})
	cfg := config.Default()
	cfg.Terminals = 5
	cfg.Theme = "retro"
	cfg.Layout = "scattered"
	cfg.Cats = 1
	cfg.ShowControls = false

	m.Update(ConfigMsg{Config: cfg})
	if m.desk.Len() != 5 || m.themeName != "retro" || m.desk.Mode() != desk.ModeScattered {
		t.Fatalf("config not applied: windows=%d theme=%q mode=%v", m.desk.Len(), m.themeName, m.desk.Mode())
	}
	if len(m.sprites) != 1 || m.showControls {
		t.Fatalf("config not applied: sprites=%d controls=%v", len(m.sprites), m.showControls)
	}

	m.Update(ConfigMsg{Err: errors.New("boom")})
	if !strings.Contains(m.status, "boom") {
		t.Fatalf("status = %q", m.status)
	}
	if m.desk.Len() != 5 {
		t.Fatalf("a failed reload must not change the desk")
	}
}

func TestDesktop_ConfigBeforeFirstResize(t *testing.T) {
	t.Parallel()

	m := NewModel(Options{Terminals: 1, Now: func() time.Time { return testStart }})
	cfg := config.Default()
	cfg.Terminals = 3
	m.Update(ConfigMsg{Config: cfg})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.desk.Len() != 3 {
		t.Fatalf("windows = %d, want 3", m.desk.Len())
	}
}

func TestDesktop_LoopDelayDefaults(t *testing.T) {
	t.Parallel()

	if got := NewModel(Options{}).loopDelay(); got != reveal.DefaultLoopDelay {
		t.Fatalf("zero LoopDelay = %v, want %v", got, reveal.DefaultLoopDelay)
	}
	if got := NewModel(Options{LoopDelay: NoLoopDelay}).loopDelay(); got != 0 {
		t.Fatalf("NoLoopDelay = %v, want 0", got)
	}
	if got := LoopDelayFromConfig(0); got != NoLoopDelay {
		t.Fatalf("loop_delay_ms=0 maps to %v", got)
	}
	if got := LoopDelayFromConfig(250); got != 250*time.Millisecond {
		t.Fatalf("loop_delay_ms=250 maps to %v", got)
	}
}

func TestDesktop_ConfigReloadUpdatesRunningLoopDelay(t *testing.T) {
	t.Parallel()

	store, err := content.Parse([]byte("categories:\n  - name: one\n    lines:\n      - {text: hi}\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	m := newTestModel(t, Options{Terminals: 1, Store: store, LoopDelay: time.Hour})
	cfg := config.Default()
	cfg.LoopDelayMs = 200
	m.Update(ConfigMsg{Config: cfg})

	var term *terminal
	for _, tm := range m.terms {
		term = tm
	}
	shown, restarted := false, false
	for range 200 {
		tick(m, 10*time.Millisecond)
		switch reveal.Visible(term.tw.State()) {
		case "hi":
			shown = true
		case "":
			restarted = restarted || shown
		}
	}
	if !shown || !restarted {
		t.Fatalf("running terminal kept the old loop delay: shown=%v restarted=%v", shown, restarted)
	}
}

func TestDesktop_HelpRowsShrinkViewport(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, Options{Terminals: 3, Cats: 4})
	if got := m.desk.Viewport().H; got != 39 {
		t.Fatalf("viewport height = %d, want 39", got)
	}

	m.Update(runes("?"))
	rows := m.statusRows()
	if rows < 2 {
		t.Fatalf("full help should take several rows, got %d", rows)
	}
	v := m.desk.Viewport()
	if v.H != 40-rows {
		t.Fatalf("viewport height = %d, want %d", v.H, 40-rows)
	}
	for _, w := range m.desk.Windows() {
		if w.Size.H <= v.H && w.Pos.Y+w.Size.H > v.H {
			t.Fatalf("window %s overlaps the help rows: %+v", w.ID, w)
		}
	}
	for _, a := range m.sprites {
		s := a.Sprite()
		if s.Pos.Y+s.H > float64(v.H) {
			t.Fatalf("sprite overlaps the help rows: %+v", s)
		}
	}

	m.Update(runes("?"))
	if got := m.desk.Viewport().H; got != 39 {
		t.Fatalf("viewport height = %d after closing help, want 39", got)
	}
}
