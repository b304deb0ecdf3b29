// Package bounce moves decorative sprites around the screen, reflecting off the
// viewport edges.
package bounce

import "github.com/mattn/go-runewidth"

type Kind int

const (
	KindCat Kind = iota
	KindRabbit
)

func (k Kind) String() string {
	if k == KindRabbit {
		return "rabbit"
	}
	return "cat"
}

var art = map[Kind][2][]string{
	KindCat: {
		{
			` /\_/\  `,
			`( o.o ) `,
			` > ^ <~ `,
		},
		{
			`  /\_/\ `,
			` ( o.o )`,
			` ~> ^ < `,
		},
	},
	KindRabbit: {
		{
			` (\(\  `,
			` ( -.-)`,
			`o(")(")`,
		},
		{
			`  /)/) `,
			`(-.- ) `,
			`(")(")o`,
		},
	},
}

// Art returns the rows of the sprite, mirrored when it faces left.
func (k Kind) Art(facingLeft bool) []string {
	frames, ok := art[k]
	if !ok {
		frames = art[KindCat]
	}
	if facingLeft {
		return frames[1]
	}
	return frames[0]
}

// Size is the sprite's footprint in terminal cells.
func (k Kind) Size() (w, h float64) {
	rows := k.Art(false)
	maxW := 0
	for _, r := range rows {
		maxW = max(maxW, runewidth.StringWidth(r))
	}
	return float64(maxW), float64(len(rows))
}
