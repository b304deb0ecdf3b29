package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fchimpan/vibeterm/internal/ascii"
)

// Swatch is a named preset color of the typer.
type Swatch struct {
	Name  string
	Value lipgloss.Color
}

var Swatches = []Swatch{
	{"Black", "#000000"},
	{"White", "#ffffff"},
	{"Red", "#ef4444"},
	{"Green", "#22c55e"},
	{"Blue", "#3b82f6"},
	{"Purple", "#a855f7"},
	{"Pink", "#ec4899"},
	{"Yellow", "#eab308"},
	{"Cyan", "#06b6d4"},
	{"Orange", "#f97316"},
	{"Gray Dark", "#374151"},
	{"Gray Light", "#9ca3af"},
}

const (
	DefaultTyperBackground = lipgloss.Color("#000000")
	DefaultTyperText       = lipgloss.Color("#22c55e")

	typerCharLimit = 40
)

type TyperOptions struct {
	Lines      []string
	Text       lipgloss.Color
	Background lipgloss.Color
	// Copy writes the rendered art somewhere, typically the system clipboard.
	Copy func(string) error
}

type typerKeyMap struct {
	Next       key.Binding
	Prev       key.Binding
	AddLine    key.Binding
	RemoveLine key.Binding
	TextColor  key.Binding
	Background key.Binding
	Copy       key.Binding
	Quit       key.Binding
}

var typerKeys = typerKeyMap{
	Next:       key.NewBinding(key.WithKeys("tab", "down", "enter"), key.WithHelp("tab", "next line")),
	Prev:       key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev line")),
	AddLine:    key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "add line")),
	RemoveLine: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "remove line")),
	TextColor:  key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "text color")),
	Background: key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "background")),
	Copy:       key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy")),
	Quit:       key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
}

func (k typerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.AddLine, k.RemoveLine, k.TextColor, k.Background, k.Copy, k.Quit}
}

func (k typerKeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

type TyperModel struct {
	inputs []textinput.Model
	focus  int
	text   lipgloss.Color
	bg     lipgloss.Color
	copy   func(string) error
	status string
	help   help.Model
	w      int
}

func NewTyperModel(opts TyperOptions) *TyperModel {
	m := &TyperModel{
		text: opts.Text,
		bg:   opts.Background,
		copy: opts.Copy,
		help: help.New(),
	}
	if m.text == "" {
		m.text = DefaultTyperText
	}
	if m.bg == "" {
		m.bg = DefaultTyperBackground
	}
	lines := opts.Lines
	if len(lines) == 0 {
		lines = []string{""}
	}
	for _, l := range lines {
		m.inputs = append(m.inputs, newLineInput(l))
	}
	m.setFocus(0)
	return m
}

func newLineInput(v string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "type something"
	ti.CharLimit = typerCharLimit
	ti.Width = typerCharLimit
	ti.SetValue(v)
	return ti
}

func (m *TyperModel) setFocus(i int) {
	n := len(m.inputs)
	m.focus = ((i % n) + n) % n
	for j := range m.inputs {
		if j == m.focus {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
}

// Lines returns the current text of every line.
func (m *TyperModel) Lines() []string {
	out := make([]string, len(m.inputs))
	for i := range m.inputs {
		out[i] = m.inputs[i].Value()
	}
	return out
}

// Art is the block-letter rendering of the current lines, one row per line.
func (m *TyperModel) Art() string {
	return strings.Join(ascii.GenerateLines(m.Lines()), "\n")
}

// missingGlyphs lists the distinct characters that render as blanks.
func (m *TyperModel) missingGlyphs() string {
	var out []rune
	seen := make(map[rune]bool)
	for _, l := range m.Lines() {
		for _, r := range l {
			if seen[r] || ascii.Supported(r) {
				continue
			}
			seen[r] = true
			out = append(out, r)
		}
	}
	return string(out)
}

func (m *TyperModel) addLine() {
	m.inputs = append(m.inputs, newLineInput(""))
	m.setFocus(len(m.inputs) - 1)
}

// removeLine drops the focused line; the last remaining line is kept.
func (m *TyperModel) removeLine() {
	if len(m.inputs) <= 1 {
		return
	}
	m.inputs = append(m.inputs[:m.focus], m.inputs[m.focus+1:]...)
	m.setFocus(min(m.focus, len(m.inputs)-1))
}

func nextSwatch(c lipgloss.Color) lipgloss.Color {
	for i, s := range Swatches {
		if strings.EqualFold(string(s.Value), string(c)) {
			return Swatches[(i+1)%len(Swatches)].Value
		}
	}
	return Swatches[0].Value
}

func swatchName(c lipgloss.Color) string {
	for _, s := range Swatches {
		if strings.EqualFold(string(s.Value), string(c)) {
			return s.Name
		}
	}
	return string(c)
}

func (m *TyperModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *TyperModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.w = msg.Width
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, typerKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, typerKeys.Next):
			m.setFocus(m.focus + 1)
			return m, nil
		case key.Matches(msg, typerKeys.Prev):
			m.setFocus(m.focus - 1)
			return m, nil
		case key.Matches(msg, typerKeys.AddLine):
			m.addLine()
			return m, nil
		case key.Matches(msg, typerKeys.RemoveLine):
			m.removeLine()
			return m, nil
		case key.Matches(msg, typerKeys.TextColor):
			m.text = nextSwatch(m.text)
			return m, nil
		case key.Matches(msg, typerKeys.Background):
			m.bg = nextSwatch(m.bg)
			return m, nil
		case key.Matches(msg, typerKeys.Copy):
			m.status = "copied to clipboard"
			if m.copy == nil {
				m.status = "clipboard unavailable"
			} else if err := m.copy(m.Art()); err != nil {
				m.status = "copy failed: " + err.Error()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

var (
	styleTyperTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f9fafb"))
	styleTyperDim   = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af"))
)

func (m *TyperModel) View() string {
	var b strings.Builder
	b.WriteString(styleTyperTitle.Render("ASCII Art Typer"))
	b.WriteString("\n")
	b.WriteString(styleTyperDim.Render("Type text and see it converted to ASCII art in real-time"))
	b.WriteString("\n\n")

	for i := range m.inputs {
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styleTyperDim.Render("text: " + swatchName(m.text) + "  background: " + swatchName(m.bg)))
	b.WriteString("\n\n")

	if missing := m.missingGlyphs(); missing != "" {
		b.WriteString(styleTyperDim.Render("no glyph for: " + missing + " (shown as blanks)"))
		b.WriteString("\n\n")
	}

	art := lipgloss.NewStyle().
		Foreground(m.text).
		Background(m.bg).
		Padding(1, 2)
	b.WriteString(art.Render(m.Art()))
	b.WriteString("\n\n")

	if m.status != "" {
		b.WriteString(styleTyperDim.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(typerKeys))
	b.WriteString("\n")
	return b.String()
}
