// Package layout places windows on the desktop.
package layout

import (
	"math"
	"math/rand/v2"
)

type Point struct {
	X int
	Y int
}

type Size struct {
	W int
	H int
}

// Constants are the tiling parameters. Reserved* are subtracted from the
// viewport before computing capacity; Margin* are added to every position.
type Constants struct {
	WindowWidth      int
	WindowHeight     int
	Padding          int
	LayerOffset      int
	ReservedLeft     int // controls panel
	ReservedVertical int // top + bottom
	MarginLeft       int
	MarginTop        int
}

// PixelConstants are the pixel-based layout values.
var PixelConstants = Constants{
	WindowWidth:      320,
	WindowHeight:     280,
	Padding:          20,
	LayerOffset:      15,
	ReservedLeft:     200,
	ReservedVertical: 100,
	MarginLeft:       150,
	MarginTop:        50,
}

// CellConstants are the terminal-cell equivalents used by the TUI.
var CellConstants = Constants{
	WindowWidth:      44,
	WindowHeight:     14,
	Padding:          1,
	LayerOffset:      2,
	ReservedLeft:     28,
	ReservedVertical: 2,
	MarginLeft:       26,
	MarginTop:        0,
}

// Grid is the capacity computed for a viewport.
type Grid struct {
	Columns  int // per row
	Rows     int // per layer
	Capacity int // per layer
}

// GridFor computes how many windows fit on one layer. Columns and rows are
// each floored to 1, so capacity is always >= 1.
func GridFor(viewport Size, c Constants) Grid {
	cols, rows := 1, 1
	if c.WindowWidth > 0 {
		cols = (viewport.W - c.ReservedLeft) / c.WindowWidth
	}
	if c.WindowHeight > 0 {
		rows = (viewport.H - c.ReservedVertical) / c.WindowHeight
	}
	cols = max(cols, 1)
	rows = max(rows, 1)
	return Grid{Columns: cols, Rows: rows, Capacity: cols * rows}
}

// Arrange tiles n windows in caller order: row-major within a layer, odd rows
// shifted right by half a window, and each overflow layer shifted diagonally by
// LayerOffset. It is deterministic and never reorders.
func Arrange(n int, viewport Size, c Constants) []Point {
	if n <= 0 {
		return nil
	}
	g := GridFor(viewport, c)
	out := make([]Point, n)
	for i := range n {
		layer := i / g.Capacity
		inLayer := i % g.Capacity
		row := inLayer / g.Columns
		col := inLayer % g.Columns

		stagger := (row % 2) * (c.WindowWidth / 2)
		shift := layer * c.LayerOffset

		out[i] = Point{
			X: col*c.WindowWidth + c.Padding + stagger + shift + c.MarginLeft,
			Y: row*c.WindowHeight + c.Padding + shift + c.MarginTop,
		}
	}
	return out
}

// Scatter picks a random position that keeps a window of the given size on
// screen, leaving room for the controls panel when possible.
func Scatter(rng *rand.Rand, viewport Size, window Size, reservedLeft int) Point {
	minX := reservedLeft
	if viewport.W-window.W <= minX {
		minX = 0
	}
	spanX := max(viewport.W-window.W-minX, 1)
	spanY := max(viewport.H-window.H, 1)
	return Point{
		X: minX + int(math.Floor(rng.Float64()*float64(spanX))),
		Y: int(math.Floor(rng.Float64() * float64(spanY))),
	}
}
