package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/fchimpan/vibeterm/internal/desk"
	"github.com/fchimpan/vibeterm/internal/theme"
)

type panelAction int

const (
	actLessTen panelAction = iota
	actLess
	actMore
	actMoreTen
	actArrange
	actLayout
	actTheme
	actHide
	actShow
)

type button struct {
	x, y, w int
	label   string
	action  panelAction
	st      *lipgloss.Style
}

func (b button) contains(x, y int) bool {
	return y == b.y && x >= b.x && x < b.x+b.w
}

// Panel geometry. The panel sits in the columns the tiling layout reserves.
const (
	panelX = 1
	panelY = 1
	panelW = 24
	panelH = 16
)

// panelButtons lays out the clickable parts of the controls panel. Rendering
// and hit testing both use it.
func (m *Model) panelButtons() []button {
	p := m.pal
	if !m.showControls {
		return []button{{x: panelX, y: panelY, w: 12, label: "≡ controls", action: actShow, st: &p.btnArrange}}
	}
	n := m.desk.Len()
	remove, add := &p.btnRemove, &p.btnAdd
	if n <= desk.MinWindows {
		remove = &p.btnOff
	}
	if n >= desk.MaxWindows {
		add = &p.btnOff
	}
	ix, iw := panelX+1, panelW-2
	return []button{
		{x: panelX + panelW - 4, y: panelY + 1, w: 3, label: "x", action: actHide, st: &p.panelDim},
		{x: ix, y: panelY + 3, w: 5, label: "-10", action: actLessTen, st: remove},
		{x: ix + 6, y: panelY + 3, w: 3, label: "-", action: actLess, st: remove},
		{x: ix + iw - 9, y: panelY + 3, w: 3, label: "+", action: actMore, st: add},
		{x: ix + iw - 5, y: panelY + 3, w: 5, label: "+10", action: actMoreTen, st: add},
		{x: ix, y: panelY + 6, w: iw, label: "Arrange", action: actArrange, st: &p.btnArrange},
		{x: ix, y: panelY + 8, w: iw, label: "Layout: " + m.desk.Mode().String(), action: actLayout, st: &p.btnLayout},
		{x: ix, y: panelY + 10, w: iw, label: "Theme: " + m.themeName, action: actTheme, st: &p.btnTheme},
	}
}

func (m *Model) drawButton(b button) {
	c := &m.canvas
	c.FillRect(b.x, b.y, b.w, 1, b.st)
	lw := runewidth.StringWidth(b.label)
	c.Text(b.x+max((b.w-lw)/2, 0), b.y, b.x+b.w, b.label, b.st)
}

func (m *Model) drawPanel() {
	c := &m.canvas
	p := m.pal
	if m.showControls {
		c.FillRect(panelX, panelY, panelW, panelH, &p.panel)
		c.Text(panelX+1, panelY+1, panelX+panelW-4, "Terminal Controls", &p.panelTitle)

		n := m.desk.Len()
		count := fmt.Sprintf("%d", n)
		c.Text(panelX+(panelW-len(count))/2, panelY+3, panelX+panelW, count, &p.panelTitle)
		noun := "terminals"
		if n == 1 {
			noun = "terminal"
		}
		c.Text(panelX+(panelW-len(noun))/2, panelY+4, panelX+panelW, noun, &p.panelDim)

		c.Text(panelX+1, panelY+12, panelX+panelW-1, fmt.Sprintf("speed   %.2fx", m.speed), &p.panelDim)
		c.Text(panelX+1, panelY+13, panelX+panelW-1, fmt.Sprintf("sprites %d", len(m.sprites)), &p.panelDim)
		c.Text(panelX+1, panelY+14, panelX+panelW-1, "? help  q quit", &p.panelDim)
	}
	for _, b := range m.panelButtons() {
		m.drawButton(b)
	}
}

// clickPanel runs the panel action under (x, y). It reports whether the click
// landed on the panel at all, so it doesn't fall through to the windows below.
func (m *Model) clickPanel(x, y int) bool {
	for _, b := range m.panelButtons() {
		if !b.contains(x, y) {
			continue
		}
		switch b.action {
		case actLessTen:
			m.step(-10)
		case actLess:
			m.step(-1)
		case actMore:
			m.step(1)
		case actMoreTen:
			m.step(10)
		case actArrange:
			m.desk.Arrange()
			m.flash("arranged")
		case actLayout:
			m.toggleLayout()
		case actTheme:
			m.setTheme(theme.Next(m.themeName))
		case actHide:
			m.showControls = false
		case actShow:
			m.showControls = true
		}
		return true
	}
	if m.showControls {
		return x >= panelX && x < panelX+panelW && y >= panelY && y < panelY+panelH
	}
	return false
}
