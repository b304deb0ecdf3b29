package bounce

import (
	"math"
	"math/rand/v2"
	"time"
)

type Vec struct {
	X float64
	Y float64
}

// Bounds is the viewport a sprite bounces inside, in terminal cells.
type Bounds struct {
	W float64
	H float64
}

type Sprite struct {
	Kind Kind
	Pos  Vec
	Vel  Vec // cells per animation tick
	W    float64
	H    float64
}

// Velocity scale from per-frame pixel speeds to terminal cells.
// Cells are roughly twice as tall as they are wide, so Y moves slower.
const (
	ScaleX = 0.25
	ScaleY = 0.125
)

// NewVelocity draws an initial velocity. X is biased positive (sprites tend to
// drift right); Y is symmetric around zero. A zero component is possible and
// left as is: bounces only negate, so that axis simply never moves.
func NewVelocity(rng *rand.Rand) Vec {
	return Vec{
		X: ((rng.Float64()-0.5)*4 + 2) * ScaleX,
		Y: (rng.Float64() - 0.5) * 4 * ScaleY,
	}
}

// Spawn places a sprite of the given kind at a random in-bounds position.
func Spawn(rng *rand.Rand, kind Kind, b Bounds) Sprite {
	w, h := kind.Size()
	s := Sprite{
		Kind: kind,
		W:    w,
		H:    h,
		Vel:  NewVelocity(rng),
	}
	s.Pos = Vec{
		X: rng.Float64() * math.Max(0, b.W-w),
		Y: rng.Float64() * math.Max(0, b.H-h),
	}
	return s
}

func limits(s Sprite, b Bounds) (maxX, maxY float64) {
	return math.Max(0, b.W-s.W), math.Max(0, b.H-s.H)
}

// Tick advances s by one animation frame inside b, reflecting the velocity on
// any axis that touched or crossed an edge.
func Tick(s Sprite, b Bounds) Sprite {
	maxX, maxY := limits(s, b)

	s.Pos.X += s.Vel.X
	s.Pos.Y += s.Vel.Y

	if s.Pos.X <= 0 || s.Pos.X >= maxX {
		s.Vel.X = -s.Vel.X
		s.Pos.X = math.Max(0, math.Min(s.Pos.X, maxX))
	}
	if s.Pos.Y <= 0 || s.Pos.Y >= maxY {
		s.Vel.Y = -s.Vel.Y
		s.Pos.Y = math.Max(0, math.Min(s.Pos.Y, maxY))
	}
	return s
}

// Clamp pulls s back inside b after a viewport resize. Velocity is untouched.
func Clamp(s Sprite, b Bounds) Sprite {
	maxX, maxY := limits(s, b)
	s.Pos.X = math.Max(0, math.Min(s.Pos.X, maxX))
	s.Pos.Y = math.Max(0, math.Min(s.Pos.Y, maxY))
	return s
}

// ThrottleInterval is the minimum time between updates of one sprite; it grows
// with the total number of live sprites to bound the per-frame cost.
func ThrottleInterval(totalSprites int) time.Duration {
	switch {
	case totalSprites > 50:
		return 50 * time.Millisecond
	case totalSprites > 20:
		return 33 * time.Millisecond
	default:
		return 16 * time.Millisecond
	}
}

// FacingLeft reports whether the sprite art should be mirrored.
func (s Sprite) FacingLeft() bool { return s.Vel.X < 0 }
