package tui

import (
	"bytes"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// cell is one terminal column. An empty ch marks the right half of a wide rune.
type cell struct {
	ch string
	st *lipgloss.Style
}

// canvasBuf is a flat grid of cells that is flushed row by row, grouping
// neighbouring cells with the same style into a single Render call.
type canvasBuf struct {
	w     int
	h     int
	cells []cell // flat: y*w + x
	run   strings.Builder
}

func (c *canvasBuf) Reset() {
	c.w = 0
	c.h = 0
	c.cells = nil
}

func (c *canvasBuf) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		c.Reset()
		return
	}
	n := w * h
	if c.w == w && c.h == h && cap(c.cells) >= n {
		c.cells = c.cells[:n]
		return
	}
	c.w = w
	c.h = h
	c.cells = make([]cell, n)
}

func (c *canvasBuf) Fill(st *lipgloss.Style) {
	for i := range c.cells {
		c.cells[i] = cell{ch: " ", st: st}
	}
}

func (c *canvasBuf) FillRect(x0, y0, w, h int, st *lipgloss.Style) {
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			c.Set(x, y, " ", st)
		}
	}
}

func (c *canvasBuf) Set(x, y int, ch string, st *lipgloss.Style) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	i := y*c.w + x
	if ch != "" {
		// Don't leave half of a wide rune behind.
		if c.cells[i].ch == "" && x > 0 {
			c.cells[i-1].ch = " "
		}
		if x+1 < c.w && c.cells[i+1].ch == "" {
			c.cells[i+1].ch = " "
		}
	}
	c.cells[i] = cell{ch: ch, st: st}
}

// Text writes s starting at (x, y) and stops at column limit (exclusive).
// It returns the column after the last written cell.
func (c *canvasBuf) Text(x, y, limit int, s string, st *lipgloss.Style) int {
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if x+rw > limit {
			break
		}
		c.Set(x, y, string(r), st)
		if rw == 2 {
			c.Set(x+1, y, "", st)
		}
		x += rw
	}
	return x
}

func (c *canvasBuf) WriteTo(out *bytes.Buffer) {
	for y := 0; y < c.h; y++ {
		row := c.cells[y*c.w : (y+1)*c.w]
		var cur *lipgloss.Style
		c.run.Reset()
		flush := func() {
			if c.run.Len() == 0 {
				return
			}
			if cur == nil {
				out.WriteString(c.run.String())
			} else {
				out.WriteString(cur.Render(c.run.String()))
			}
			c.run.Reset()
		}
		for _, cl := range row {
			if cl.ch == "" {
				continue
			}
			if cl.st != cur {
				flush()
				cur = cl.st
			}
			c.run.WriteString(cl.ch)
		}
		flush()
		if y < c.h-1 {
			out.WriteByte('\n')
		}
	}
}
