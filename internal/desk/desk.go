// Package desk keeps track of the terminal windows on the desktop: creation,
// removal, focus order, dragging and tiling.
package desk

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/fchimpan/vibeterm/internal/layout"
)

const (
	MinWindows = 1
	MaxWindows = 100

	// MaxZ keeps windows below the controls panel and other overlays.
	MaxZ = 9000
)

// Window size limits, in cells.
var (
	MinSize     = layout.Size{W: 16, H: 5}
	MaxSize     = layout.Size{W: 150, H: 50}
	DefaultSize = layout.Size{W: 42, H: 13}
)

type Mode int

const (
	ModeUniform Mode = iota
	ModeScattered
)

func (m Mode) String() string {
	if m == ModeScattered {
		return "scattered"
	}
	return "uniform"
}

func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "uniform":
		return ModeUniform, nil
	case "scattered":
		return ModeScattered, nil
	default:
		return ModeUniform, fmt.Errorf("unknown layout %q (expected uniform or scattered)", s)
	}
}

type Window struct {
	ID      string
	Ordinal int // creation order, stable for the window's lifetime
	Pos     layout.Point
	Size    layout.Size
	Z       int

	seq int // tie-break once Z saturates at MaxZ
}

func (w Window) Contains(x, y int) bool {
	return x >= w.Pos.X && x < w.Pos.X+w.Size.W && y >= w.Pos.Y && y < w.Pos.Y+w.Size.H
}

type Desk struct {
	windows  []Window
	nextOrd  int
	topZ     int
	seq      int
	mode     Mode
	viewport layout.Size
	consts   layout.Constants
	rng      *rand.Rand
}

func New(rng *rand.Rand, viewport layout.Size, c layout.Constants) *Desk {
	return &Desk{rng: rng, viewport: viewport, consts: c}
}

// Windows returns the windows in creation order.
func (d *Desk) Windows() []Window {
	out := make([]Window, len(d.windows))
	copy(out, d.windows)
	return out
}

func (d *Desk) Len() int { return len(d.windows) }
func (d *Desk) Mode() Mode { return d.mode }
func (d *Desk) SetMode(m Mode) { d.mode = m }
func (d *Desk) Viewport() layout.Size { return d.viewport }

// ToggleMode flips between uniform and scattered layouts.
func (d *Desk) ToggleMode() Mode {
	if d.mode == ModeUniform {
		d.mode = ModeScattered
	} else {
		d.mode = ModeUniform
	}
	return d.mode
}

// SetViewport records a new screen size and pulls windows back on screen.
func (d *Desk) SetViewport(v layout.Size) {
	d.viewport = v
	for i := range d.windows {
		d.windows[i].Pos = d.clampPos(d.windows[i].Pos, d.windows[i].Size)
	}
}

func (d *Desk) nextZ() int {
	d.topZ = min(d.topZ+1, MaxZ)
	d.seq++
	return d.topZ
}

// Add opens one window at a random position.
func (d *Desk) Add() Window {
	size := DefaultSize
	w := Window{
		ID:      fmt.Sprintf("terminal-%d", d.nextOrd),
		Ordinal: d.nextOrd,
		Size:    size,
		Pos:     layout.Scatter(d.rng, d.viewport, size, d.consts.ReservedLeft),
	}
	w.Z = d.nextZ()
	w.seq = d.seq
	d.nextOrd++
	d.windows = append(d.windows, w)
	return w
}

// SetCount grows or shrinks the desk to n windows (clamped to
// [MinWindows, MaxWindows]). New windows are appended; extra windows are
// removed from the end. It returns the windows that were added and removed.
func (d *Desk) SetCount(n int) (added, removed []Window) {
	n = max(MinWindows, min(MaxWindows, n))
	for len(d.windows) < n {
		added = append(added, d.Add())
	}
	if len(d.windows) > n {
		removed = append(removed, d.windows[n:]...)
		d.windows = d.windows[:n:n]
	}
	return added, removed
}

// Step changes the window count by delta, clamping at the bounds.
func (d *Desk) Step(delta int) (added, removed []Window) {
	return d.SetCount(len(d.windows) + delta)
}

func (d *Desk) index(id string) int {
	for i := range d.windows {
		if d.windows[i].ID == id {
			return i
		}
	}
	return -1
}

func (d *Desk) Get(id string) (Window, bool) {
	i := d.index(id)
	if i < 0 {
		return Window{}, false
	}
	return d.windows[i], true
}

// Close removes the window with the given id. Closing may leave the desk empty.
func (d *Desk) Close(id string) (Window, bool) {
	i := d.index(id)
	if i < 0 {
		return Window{}, false
	}
	w := d.windows[i]
	d.windows = append(d.windows[:i], d.windows[i+1:]...)
	return w, true
}

// Focus raises a window above all others. Z never decreases and saturates at MaxZ.
func (d *Desk) Focus(id string) bool {
	i := d.index(id)
	if i < 0 {
		return false
	}
	d.windows[i].Z = d.nextZ()
	d.windows[i].seq = d.seq
	return true
}

// Focused is the topmost window.
func (d *Desk) Focused() (Window, bool) {
	st := d.Stacked()
	if len(st) == 0 {
		return Window{}, false
	}
	return st[len(st)-1], true
}

// Stacked returns the windows bottom to top.
func (d *Desk) Stacked() []Window {
	out := d.Windows()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Z != out[j].Z {
			return out[i].Z < out[j].Z
		}
		return out[i].seq < out[j].seq
	})
	return out
}

// WindowAt returns the topmost window under (x, y).
func (d *Desk) WindowAt(x, y int) (Window, bool) {
	st := d.Stacked()
	for i := len(st) - 1; i >= 0; i-- {
		if st[i].Contains(x, y) {
			return st[i], true
		}
	}
	return Window{}, false
}

func (d *Desk) clampPos(p layout.Point, s layout.Size) layout.Point {
	p.X = max(0, min(p.X, d.viewport.W-s.W))
	p.Y = max(0, min(p.Y, d.viewport.H-s.H))
	return p
}

// Move places a window, keeping it inside the viewport.
func (d *Desk) Move(id string, p layout.Point) bool {
	i := d.index(id)
	if i < 0 {
		return false
	}
	d.windows[i].Pos = d.clampPos(p, d.windows[i].Size)
	return true
}

// Resize changes a window's size within MinSize and MaxSize.
func (d *Desk) Resize(id string, s layout.Size) bool {
	i := d.index(id)
	if i < 0 {
		return false
	}
	s.W = max(MinSize.W, min(MaxSize.W, s.W))
	s.H = max(MinSize.H, min(MaxSize.H, s.H))
	d.windows[i].Size = s
	return true
}

// Arrange repositions every window according to the current mode. Uniform
// tiles in creation order; scattered re-rolls random positions.
func (d *Desk) Arrange() {
	if d.mode == ModeScattered {
		for i := range d.windows {
			d.windows[i].Pos = layout.Scatter(d.rng, d.viewport, d.windows[i].Size, d.consts.ReservedLeft)
		}
		return
	}
	pos := layout.Arrange(len(d.windows), d.viewport, d.consts)
	for i := range d.windows {
		d.windows[i].Pos = pos[i]
	}
}
