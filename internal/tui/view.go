package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/fchimpan/vibeterm/internal/ascii"
	"github.com/fchimpan/vibeterm/internal/content"
	"github.com/fchimpan/vibeterm/internal/desk"
)

// Title bar layout, relative to the window origin.
const (
	closeLightX = 1
	minLightX   = 3
	zoomLightX  = 5
)

var (
	bannerRows    = ascii.GenerateLines([]string{"I VIBE MORE", "THAN YOU"})
	bannerWidth   = ascii.Width(bannerRows)
	bannerCompact = "I VIBE MORE THAN YOU"
)

type segment struct {
	text string
	st   *lipgloss.Style
}

type styledLine []segment

func (m *Model) View() string {
	if !m.ready {
		return "loading...\n"
	}

	m.canvas.Resize(m.w, m.h)
	m.canvas.Fill(&m.pal.desk)

	order := make(map[string]int, m.desk.Len())
	for i, w := range m.desk.Windows() {
		order[w.ID] = i
	}
	focused, hasFocus := m.desk.Focused()
	for _, w := range m.desk.Stacked() {
		m.drawWindow(w, fmt.Sprintf("Terminal %d", order[w.ID]+1), hasFocus && w.ID == focused.ID)
	}
	m.drawPanel()
	m.drawSprites()
	m.drawStatus()

	m.viewBuf.Reset()
	m.canvas.WriteTo(&m.viewBuf)
	return m.viewBuf.String()
}

func (m *Model) drawWindow(w desk.Window, title string, focused bool) {
	c := &m.canvas
	p := m.pal
	x0, y0, ww, wh := w.Pos.X, w.Pos.Y, w.Size.W, w.Size.H

	c.FillRect(x0, y0, ww, wh, &p.body)

	bar := &p.titleBar
	if focused {
		bar = &p.titleFocus
	}
	c.FillRect(x0, y0, ww, 1, bar)
	c.Set(x0+closeLightX, y0, "●", &p.lightClose)
	c.Set(x0+minLightX, y0, "●", &p.lightMin)
	c.Set(x0+zoomLightX, y0, "●", &p.lightZoom)
	room := max(ww-zoomLightX-3, 0)
	title = truncate.StringWithTail(title, uint(room), "…")
	tx := max(x0+(ww-runewidth.StringWidth(title))/2, x0+zoomLightX+2)
	c.Text(tx, y0, x0+ww, title, bar)

	border := &p.border
	if focused {
		border = &p.borderFocus
	}
	for y := y0 + 1; y < y0+wh-1; y++ {
		c.Set(x0, y, "│", border)
		c.Set(x0+ww-1, y, "│", border)
	}
	c.Set(x0, y0+wh-1, "╰", border)
	for x := x0 + 1; x < x0+ww-1; x++ {
		c.Set(x, y0+wh-1, "─", border)
	}
	c.Set(x0+ww-1, y0+wh-1, "╯", border)

	t := m.terms[w.ID]
	if t == nil {
		return
	}
	innerX, innerW := x0+2, ww-4
	innerY, innerH := y0+1, wh-2
	if innerW <= 0 || innerH <= 0 {
		return
	}
	lines := m.terminalLines(t, innerW)
	// Keep the newest output in view.
	start := max(len(lines)-innerH, 0)
	for i, l := range lines[start:] {
		x := innerX
		for _, seg := range l {
			x = c.Text(x, innerY+i, innerX+innerW, seg.text, seg.st)
		}
	}
}

func (m *Model) prompt() styledLine {
	p := m.pal
	return styledLine{
		{"user@localhost", p.role(content.RoleInfo, false)},
		{":", p.role(content.RolePrimary, false)},
		{"~", p.role(content.RoleInfo, false)},
		{"$ ", p.role(content.RolePrimary, false)},
	}
}

// terminalLines lays out one terminal's content for the given width: the
// banner, login line, the launch command, the revealed script and, once
// typing is over, an idle prompt with a cursor.
func (m *Model) terminalLines(t *terminal, width int) []styledLine {
	p := m.pal
	accent := p.role(content.RoleAccent, false)
	muted := p.role(content.RoleMuted, false)

	var out []styledLine
	if bannerWidth <= width {
		for _, r := range bannerRows {
			out = append(out, styledLine{{r, accent}})
		}
	} else {
		out = appendWrapped(out, bannerCompact, width, p.role(content.RoleAccent, true))
	}
	out = append(out, nil)
	out = appendWrapped(out, m.lastLogin, width, muted)
	out = append(out, append(m.prompt(), segment{"npm run dev", muted}))

	for _, l := range t.tw.Lines() {
		if l.Text == "" {
			out = append(out, nil)
			continue
		}
		out = appendWrapped(out, l.Text, width, p.role(l.Role, l.Bold))
	}
	if !t.tw.IsTyping() {
		out = append(out, append(m.prompt(), segment{" ", &p.cursor}))
	}
	return out
}

func appendWrapped(out []styledLine, s string, width int, st *lipgloss.Style) []styledLine {
	if width <= 0 {
		return out
	}
	// Word wrap first, then hard wrap words longer than the width.
	s = wrap.String(wordwrap.String(s, width), width)
	for _, row := range strings.Split(s, "\n") {
		out = append(out, styledLine{{row, st}})
	}
	return out
}

func (m *Model) drawSprites() {
	c := &m.canvas
	for _, a := range m.sprites {
		s := a.Sprite()
		x0 := int(math.Round(s.Pos.X))
		y0 := int(math.Round(s.Pos.Y))
		for dy, row := range s.Kind.Art(s.FacingLeft()) {
			x := x0
			for _, r := range row {
				// Spaces are transparent.
				if r != ' ' {
					c.Set(x, y0+dy, string(r), &m.pal.sprite)
				}
				x += runewidth.RuneWidth(r)
			}
		}
	}
}

func (m *Model) drawStatus() {
	c := &m.canvas
	p := m.pal
	rows := strings.Split(m.help.View(m.keys), "\n")
	y0 := m.h - len(rows)
	c.FillRect(0, y0, m.w, len(rows), &p.status)
	for i, r := range rows {
		c.Text(1, y0+i, m.w, r, &p.status)
	}
	if m.status != "" && m.loop.Now().Before(m.statusUntil) {
		s := truncate.StringWithTail(m.status, uint(max(m.w/2, 0)), "…")
		c.Text(max(m.w-runewidth.StringWidth(s)-1, 0), m.h-1, m.w, s, &p.status)
	}
}
