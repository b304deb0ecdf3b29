package bounce

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/fchimpan/vibeterm/internal/sched"
)

func TestTick_ClampsAndFlipsAtRightEdge(t *testing.T) {
	t.Parallel()

	b := Bounds{W: 100, H: 40}
	s := Sprite{Pos: Vec{X: 100 - 8 - 1, Y: 10}, Vel: Vec{X: 5, Y: 0.5}, W: 8, H: 3}

	got := Tick(s, b)
	if got.Pos.X != 92 {
		t.Fatalf("x = %v, want 92", got.Pos.X)
	}
	if got.Vel.X != -5 {
		t.Fatalf("vx = %v, want -5", got.Vel.X)
	}
	if got.Vel.Y != 0.5 || got.Pos.Y != 10.5 {
		t.Fatalf("y axis should be untouched: %+v", got)
	}
}

func TestTick_StaysInBounds(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(42, 42))
	b := Bounds{W: 120, H: 35}
	for i := 0; i < 50; i++ {
		kind := KindCat
		if i%2 == 1 {
			kind = KindRabbit
		}
		s := Spawn(rng, kind, b)
		// Exaggerate speeds so edges are hit constantly.
		s.Vel.X *= 40
		s.Vel.Y *= 40
		for tick := 0; tick < 500; tick++ {
			s = Tick(s, b)
			if s.Pos.X < 0 || s.Pos.X > b.W-s.W || s.Pos.Y < 0 || s.Pos.Y > b.H-s.H {
				t.Fatalf("sprite %d escaped at tick %d: %+v", i, tick, s.Pos)
			}
		}
	}
}

func TestTick_ReflectsWhenCrossingAnEdge(t *testing.T) {
	t.Parallel()

	b := Bounds{W: 50, H: 20}
	cases := []struct {
		name string
		in   Sprite
		flip func(before, after Sprite) bool
	}{
		{"left", Sprite{Pos: Vec{X: 1, Y: 5}, Vel: Vec{X: -3, Y: 0.1}, W: 4, H: 2},
			func(a, b Sprite) bool { return a.Vel.X < 0 && b.Vel.X > 0 }},
		{"top", Sprite{Pos: Vec{X: 10, Y: 0.5}, Vel: Vec{X: 0.1, Y: -2}, W: 4, H: 2},
			func(a, b Sprite) bool { return a.Vel.Y < 0 && b.Vel.Y > 0 }},
		{"bottom", Sprite{Pos: Vec{X: 10, Y: 17.5}, Vel: Vec{X: 0.1, Y: 1}, W: 4, H: 2},
			func(a, b Sprite) bool { return a.Vel.Y > 0 && b.Vel.Y < 0 }},
	}
	for _, tc := range cases {
		got := Tick(tc.in, b)
		if !tc.flip(tc.in, got) {
			t.Fatalf("%s: velocity did not flip: %+v -> %+v", tc.name, tc.in.Vel, got.Vel)
		}
	}
}

func TestTick_ZeroVelocityAxisNeverMoves(t *testing.T) {
	t.Parallel()

	b := Bounds{W: 50, H: 20}
	s := Sprite{Pos: Vec{X: 10, Y: 7}, Vel: Vec{X: 1, Y: 0}, W: 4, H: 2}
	for i := 0; i < 200; i++ {
		s = Tick(s, b)
		if s.Pos.Y != 7 {
			t.Fatalf("y moved to %v", s.Pos.Y)
		}
	}
}

func TestClamp_DoesNotReverseVelocity(t *testing.T) {
	t.Parallel()

	s := Sprite{Pos: Vec{X: 90, Y: 30}, Vel: Vec{X: 1, Y: 1}, W: 8, H: 3}
	got := Clamp(s, Bounds{W: 50, H: 20})
	if got.Pos.X != 42 || got.Pos.Y != 17 {
		t.Fatalf("pos = %+v, want {42 17}", got.Pos)
	}
	if got.Vel != s.Vel {
		t.Fatalf("velocity changed on resize: %+v -> %+v", s.Vel, got.Vel)
	}
}

func TestNewVelocity_Distribution(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(1, 1))
	var sumX, sumY float64
	const n = 5000
	for i := 0; i < n; i++ {
		v := NewVelocity(rng)
		if v.X < -2*ScaleX || v.X > 4*ScaleX {
			t.Fatalf("vx %v out of range", v.X)
		}
		if math.Abs(v.Y) > 2*ScaleY {
			t.Fatalf("vy %v out of range", v.Y)
		}
		sumX += v.X
		sumY += v.Y
	}
	if meanX := sumX / n; meanX < 0.8*ScaleX {
		t.Fatalf("mean vx %v, expected a rightward bias", meanX)
	}
	if meanY := sumY / n; math.Abs(meanY) > 0.1*ScaleY {
		t.Fatalf("mean vy %v, expected ~0", meanY)
	}
}

func TestThrottleInterval(t *testing.T) {
	t.Parallel()

	cases := map[int]time.Duration{
		1:   16 * time.Millisecond,
		20:  16 * time.Millisecond,
		21:  33 * time.Millisecond,
		50:  33 * time.Millisecond,
		51:  50 * time.Millisecond,
		500: 50 * time.Millisecond,
	}
	for n, want := range cases {
		if got := ThrottleInterval(n); got != want {
			t.Fatalf("ThrottleInterval(%d) = %v, want %v", n, got, want)
		}
	}
}

func TestAnimator_DropsThrottledFrames(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	loop := sched.NewLoop(t0)
	b := Bounds{W: 1000, H: 1000}
	sp := Sprite{Pos: Vec{X: 100, Y: 100}, Vel: Vec{X: 1, Y: 0}, W: 8, H: 3}
	total := 30 // 33ms throttle
	a := NewAnimator(loop, sp, b, func() int { return total })
	a.Start()

	loop.Advance(t0) // first frame always updates
	if a.Sprite().Pos.X != 101 {
		t.Fatalf("x = %v, want 101", a.Sprite().Pos.X)
	}
	loop.Advance(t0.Add(16 * time.Millisecond))
	if a.Sprite().Pos.X != 101 {
		t.Fatalf("frame inside throttle window was not dropped: x = %v", a.Sprite().Pos.X)
	}
	loop.Advance(t0.Add(33 * time.Millisecond))
	if a.Sprite().Pos.X != 102 {
		t.Fatalf("x = %v, want 102", a.Sprite().Pos.X)
	}

	a.Stop()
	loop.Advance(t0.Add(time.Second))
	if a.Sprite().Pos.X != 102 {
		t.Fatalf("sprite moved after Stop")
	}
	if loop.Pending() != 0 {
		t.Fatalf("expected frame callback deregistered, got %d pending", loop.Pending())
	}
}

func TestAnimator_SetBoundsClamps(t *testing.T) {
	t.Parallel()

	loop := sched.NewLoop(time.Time{})
	sp := Sprite{Pos: Vec{X: 70, Y: 30}, Vel: Vec{X: -1, Y: 1}, W: 8, H: 3}
	a := NewAnimator(loop, sp, Bounds{W: 100, H: 40}, nil)
	a.SetBounds(Bounds{W: 40, H: 20})
	got := a.Sprite()
	if got.Pos.X != 32 || got.Pos.Y != 17 || got.Vel != sp.Vel {
		t.Fatalf("unexpected sprite after resize: %+v", got)
	}
}

func TestKindSize(t *testing.T) {
	t.Parallel()

	for _, k := range []Kind{KindCat, KindRabbit} {
		w, h := k.Size()
		if w <= 0 || h != 3 {
			t.Fatalf("%v: size %vx%v", k, w, h)
		}
		for _, left := range []bool{false, true} {
			if len(k.Art(left)) != int(h) {
				t.Fatalf("%v: mirrored art has a different height", k)
			}
		}
	}
}
