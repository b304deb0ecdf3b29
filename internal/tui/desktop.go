// Package tui renders the vibeterm desktop and the ASCII typer with Bubble Tea.
package tui

import (
	"bytes"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fchimpan/vibeterm/internal/bounce"
	"github.com/fchimpan/vibeterm/internal/config"
	"github.com/fchimpan/vibeterm/internal/content"
	"github.com/fchimpan/vibeterm/internal/desk"
	"github.com/fchimpan/vibeterm/internal/layout"
	"github.com/fchimpan/vibeterm/internal/reveal"
	"github.com/fchimpan/vibeterm/internal/sched"
	"github.com/fchimpan/vibeterm/internal/theme"
)

// Options configure a desktop. Zero values fall back to defaults.
type Options struct {
	Terminals    int
	Theme        string
	Speed        float64 // typing speed multiplier
	Layout       desk.Mode
	Cats         int
	Rabbits      int
	LoopDelay    time.Duration // pause before a finished script restarts; see NoLoopDelay
	ShowControls bool
	Store        *content.Store
	Seed         uint64
	Now          func() time.Time
}

// NoLoopDelay makes finished scripts restart right away. A zero
// Options.LoopDelay means the default pause instead.
const NoLoopDelay time.Duration = -1

// LoopDelayFromConfig maps loop_delay_ms onto Options.LoopDelay.
func LoopDelayFromConfig(ms int) time.Duration {
	if ms <= 0 {
		return NoLoopDelay
	}
	return time.Duration(ms) * time.Millisecond
}

// ConfigMsg delivers a reloaded config file to a running desktop.
type ConfigMsg struct {
	Config config.Config
	Err    error
}

type terminal struct {
	category string
	tw       *reveal.Typewriter
}

type dragKind int

const (
	dragNone dragKind = iota
	dragMove
	dragResize
)

type dragState struct {
	kind dragKind
	id   string
	offX int // pointer offset from the window origin
	offY int
}

const statusDuration = 2 * time.Second

type Model struct {
	opts  Options
	store *content.Store
	rng   *rand.Rand
	loop  *sched.Loop
	desk  *desk.Desk
	terms map[string]*terminal

	sprites []*bounce.Animator

	themeName    string
	pal          *palette
	speed        float64
	showControls bool

	keys keyMap
	help help.Model

	ready bool
	w     int
	h     int

	drag        dragState
	status      string
	statusUntil time.Time
	lastLogin   string

	viewBuf bytes.Buffer
	canvas  canvasBuf
}

func NewModel(opts Options) *Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Store == nil {
		opts.Store = content.Default()
	}
	if opts.Speed <= 0 {
		opts.Speed = 1
	}
	if opts.Terminals <= 0 {
		opts.Terminals = 1
	}
	if opts.LoopDelay == 0 {
		opts.LoopDelay = reveal.DefaultLoopDelay
	}

	now := opts.Now()
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	d := desk.New(rng, layout.Size{}, layout.CellConstants)
	d.SetMode(opts.Layout)
	t := theme.Get(opts.Theme)

	return &Model{
		opts:         opts,
		store:        opts.Store,
		rng:          rng,
		loop:         sched.NewLoop(now),
		desk:         d,
		terms:        make(map[string]*terminal),
		themeName:    t.Key,
		pal:          newPalette(t),
		speed:        config.ClampSpeed(opts.Speed),
		showControls: opts.ShowControls,
		keys:         desktopKeys,
		help:         plainHelp(),
		lastLogin:    formatLastLogin(now),
	}
}

// plainHelp renders help without colors so it can be painted onto the canvas.
func plainHelp() help.Model {
	h := help.New()
	plain := lipgloss.NewStyle()
	h.Styles = help.Styles{
		Ellipsis:       plain,
		ShortKey:       plain,
		ShortDesc:      plain,
		ShortSeparator: plain,
		FullKey:        plain,
		FullDesc:       plain,
		FullSeparator:  plain,
	}
	return h
}

func formatLastLogin(now time.Time) string {
	return fmt.Sprintf("Last login: %s on ttys002", now.Add(-12*time.Hour).UTC().Format("Mon, Jan 2, 15:04:05"))
}

type tickMsg time.Time

func tickCmd(d time.Duration) tea.Cmd {
	if d <= 0 {
		d = time.Second / 60
	}
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) Init() tea.Cmd {
	return tickCmd(time.Second / 60)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.w = msg.Width
		m.h = msg.Height
		m.resize()
		return m, nil
	case tickMsg:
		now := time.Time(msg)
		if now.After(m.loop.Now()) {
			m.loop.Advance(now)
		}
		return m, tickCmd(m.frameDuration())
	case ConfigMsg:
		m.applyConfig(msg)
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	default:
		return m, nil
	}
}

func (m *Model) frameDuration() time.Duration {
	// Sprites need smooth frames; typing alone is fine at a lower rate.
	if len(m.sprites) > 0 {
		return time.Second / 60
	}
	return time.Second / 30
}

// statusRows is the height of the help area at the bottom of the screen.
func (m *Model) statusRows() int {
	return strings.Count(m.help.View(m.keys), "\n") + 1
}

// viewport is the desktop area: the whole screen except the status rows.
func (m *Model) viewport() layout.Size {
	return layout.Size{W: max(m.w, 1), H: max(m.h-m.statusRows(), 1)}
}

func (m *Model) bounds() bounce.Bounds {
	v := m.viewport()
	return bounce.Bounds{W: float64(v.W), H: float64(v.H)}
}

func (m *Model) resize() {
	m.help.Width = m.w
	m.fitViewport()
	if !m.ready {
		m.ready = true
		m.setCount(m.opts.Terminals)
		if m.desk.Mode() == desk.ModeUniform {
			m.desk.Arrange()
		}
		m.setSprites(bounce.KindCat, m.opts.Cats)
		m.setSprites(bounce.KindRabbit, m.opts.Rabbits)
	}
}

// fitViewport pulls windows and sprites inside the area left by the status rows.
func (m *Model) fitViewport() {
	m.desk.SetViewport(m.viewport())
	b := m.bounds()
	for _, a := range m.sprites {
		a.SetBounds(b)
	}
}

func (m *Model) flash(s string) {
	m.status = s
	m.statusUntil = m.loop.Now().Add(statusDuration)
}

// ===== Terminals =====

func (m *Model) openTerminal(w desk.Window) {
	cat, script := m.store.ForIndex(w.Ordinal)
	cfg := reveal.Config{
		Speed:     reveal.TerminalSpeed(m.rng, m.desk.Len(), m.speed),
		LoopDelay: m.loopDelay(),
		Chunk:     reveal.RandomChunk(m.rng),
	}
	tw := reveal.NewTypewriter(m.loop, script, true, cfg)
	tw.Start()
	m.terms[w.ID] = &terminal{category: cat, tw: tw}
}

func (m *Model) loopDelay() time.Duration {
	return max(m.opts.LoopDelay, 0)
}

func (m *Model) closeTerminal(id string) {
	if t, ok := m.terms[id]; ok {
		t.tw.Stop()
		delete(m.terms, id)
	}
}

func (m *Model) apply(added, removed []desk.Window) {
	for _, w := range removed {
		m.closeTerminal(w.ID)
	}
	for _, w := range added {
		m.openTerminal(w)
	}
}

func (m *Model) setCount(n int) { m.apply(m.desk.SetCount(n)) }
func (m *Model) step(delta int) { m.apply(m.desk.Step(delta)) }

func (m *Model) closeWindow(id string) {
	if _, ok := m.desk.Close(id); ok {
		m.closeTerminal(id)
	}
	if m.drag.id == id {
		m.drag = dragState{}
	}
}

func (m *Model) focusNext() {
	wins := m.desk.Windows()
	if len(wins) == 0 {
		return
	}
	next := 0
	if f, ok := m.desk.Focused(); ok {
		for i, w := range wins {
			if w.ID == f.ID {
				next = (i + 1) % len(wins)
				break
			}
		}
	}
	m.desk.Focus(wins[next].ID)
}

func (m *Model) nudge(dx, dy int) {
	f, ok := m.desk.Focused()
	if !ok {
		return
	}
	m.desk.Move(f.ID, layout.Point{X: f.Pos.X + dx, Y: f.Pos.Y + dy})
}

func (m *Model) setSpeed(v float64) {
	v = config.ClampSpeed(v)
	if v == m.speed {
		return
	}
	m.speed = v
	for _, t := range m.terms {
		t.tw.SetSpeed(reveal.TerminalSpeed(m.rng, m.desk.Len(), v))
	}
	m.flash(fmt.Sprintf("speed %.2fx", v))
}

func (m *Model) setTheme(name string) {
	t := theme.Get(name)
	if t.Key == m.themeName {
		return
	}
	m.themeName = t.Key
	m.pal = newPalette(t)
	m.flash("theme: " + t.Name)
}

func (m *Model) setLayout(mode desk.Mode) {
	if mode == m.desk.Mode() {
		return
	}
	m.desk.SetMode(mode)
	m.desk.Arrange()
	m.flash("layout: " + mode.String())
}

func (m *Model) toggleLayout() {
	if m.desk.Mode() == desk.ModeUniform {
		m.setLayout(desk.ModeScattered)
	} else {
		m.setLayout(desk.ModeUniform)
	}
}

func (m *Model) restartTyping() {
	for _, t := range m.terms {
		t.tw.Reset()
	}
}

// ===== Sprites =====

func (m *Model) spriteCount(kind bounce.Kind) int {
	n := 0
	for _, a := range m.sprites {
		if a.Sprite().Kind == kind {
			n++
		}
	}
	return n
}

func (m *Model) addSprite(kind bounce.Kind) bool {
	if len(m.sprites) >= config.MaxSprites {
		return false
	}
	b := m.bounds()
	a := bounce.NewAnimator(m.loop, bounce.Spawn(m.rng, kind, b), b, func() int { return len(m.sprites) })
	a.Start()
	m.sprites = append(m.sprites, a)
	return true
}

// setSprites grows or shrinks the sprites of one kind to n, removing the
// newest ones first.
func (m *Model) setSprites(kind bounce.Kind, n int) {
	n = max(n, 0)
	for m.spriteCount(kind) < n {
		if !m.addSprite(kind) {
			return
		}
	}
	for i := len(m.sprites) - 1; i >= 0 && m.spriteCount(kind) > n; i-- {
		if m.sprites[i].Sprite().Kind != kind {
			continue
		}
		m.sprites[i].Stop()
		m.sprites = append(m.sprites[:i], m.sprites[i+1:]...)
	}
}

func (m *Model) clearSprites() {
	for _, a := range m.sprites {
		a.Stop()
	}
	m.sprites = nil
}

// teardown cancels every pending timer and frame callback.
func (m *Model) teardown() {
	for _, t := range m.terms {
		t.tw.Stop()
	}
	m.clearSprites()
}

// ===== Input =====

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.teardown()
		return tea.Quit
	case key.Matches(msg, m.keys.More):
		m.step(1)
	case key.Matches(msg, m.keys.Less):
		m.step(-1)
	case key.Matches(msg, m.keys.MoreTen):
		m.step(10)
	case key.Matches(msg, m.keys.LessTen):
		m.step(-10)
	case key.Matches(msg, m.keys.Arrange):
		m.desk.Arrange()
		m.flash("arranged")
	case key.Matches(msg, m.keys.Layout):
		m.toggleLayout()
	case key.Matches(msg, m.keys.Theme):
		m.setTheme(theme.Next(m.themeName))
	case key.Matches(msg, m.keys.Faster):
		m.setSpeed(m.speed + 0.25)
	case key.Matches(msg, m.keys.Slower):
		m.setSpeed(m.speed - 0.25)
	case key.Matches(msg, m.keys.Controls):
		m.showControls = !m.showControls
	case key.Matches(msg, m.keys.Focus):
		m.focusNext()
	case key.Matches(msg, m.keys.Up):
		m.nudge(0, -1)
	case key.Matches(msg, m.keys.Down):
		m.nudge(0, 1)
	case key.Matches(msg, m.keys.Left):
		m.nudge(-2, 0)
	case key.Matches(msg, m.keys.Right):
		m.nudge(2, 0)
	case key.Matches(msg, m.keys.Close):
		if f, ok := m.desk.Focused(); ok {
			m.closeWindow(f.ID)
		}
	case key.Matches(msg, m.keys.Restart):
		m.restartTyping()
	case key.Matches(msg, m.keys.Cat):
		m.addSprite(bounce.KindCat)
	case key.Matches(msg, m.keys.Rabbit):
		m.addSprite(bounce.KindRabbit)
	case key.Matches(msg, m.keys.Clear):
		m.clearSprites()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		if m.ready {
			m.fitViewport()
		}
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		if m.clickPanel(msg.X, msg.Y) {
			return
		}
		w, ok := m.desk.WindowAt(msg.X, msg.Y)
		if !ok {
			return
		}
		m.desk.Focus(w.ID)
		lx, ly := msg.X-w.Pos.X, msg.Y-w.Pos.Y
		switch {
		case ly == 0 && lx == closeLightX:
			m.closeWindow(w.ID)
		case lx == w.Size.W-1 && ly == w.Size.H-1:
			m.drag = dragState{kind: dragResize, id: w.ID}
		case ly == 0:
			m.drag = dragState{kind: dragMove, id: w.ID, offX: lx, offY: ly}
		}
	case tea.MouseActionMotion:
		switch m.drag.kind {
		case dragMove:
			m.desk.Move(m.drag.id, layout.Point{X: msg.X - m.drag.offX, Y: msg.Y - m.drag.offY})
		case dragResize:
			if w, ok := m.desk.Get(m.drag.id); ok {
				m.desk.Resize(w.ID, layout.Size{W: msg.X - w.Pos.X + 1, H: msg.Y - w.Pos.Y + 1})
			}
		}
	case tea.MouseActionRelease:
		m.drag = dragState{}
	}
}

// ===== Config reload =====

func (m *Model) applyConfig(msg ConfigMsg) {
	if msg.Err != nil {
		m.flash("config error: " + msg.Err.Error())
		return
	}
	c := msg.Config
	m.opts.LoopDelay = LoopDelayFromConfig(c.LoopDelayMs)
	for _, t := range m.terms {
		t.tw.SetLoopDelay(m.loopDelay())
	}
	m.setTheme(c.Theme)
	m.setSpeed(c.Speed)
	if mode, err := desk.ParseMode(c.Layout); err == nil {
		m.setLayout(mode)
	}
	m.showControls = c.ShowControls
	if !m.ready {
		// Windows and sprites are created on the first resize.
		m.opts.Terminals, m.opts.Cats, m.opts.Rabbits = c.Terminals, c.Cats, c.Rabbits
		return
	}
	m.setCount(c.Terminals)
	m.setSprites(bounce.KindCat, c.Cats)
	m.setSprites(bounce.KindRabbit, c.Rabbits)
	m.flash("config reloaded")
}
