// Package reveal implements the typewriter text-reveal state machine.
//
// The machine is pure: Next reports how long to wait before the next tick and
// Advance applies one tick. Typewriter drives it on a sched.Scheduler.
package reveal

import (
	"math/rand/v2"
	"time"
	"unicode/utf8"

	"github.com/fchimpan/vibeterm/internal/content"
)

// Phase is where a State sits in the reveal state machine:
//
//	Waiting -> Revealing -> LineDone -> (next line | LoopPending | Halted)
type Phase int

const (
	PhaseIdle Phase = iota // empty script, nothing to do
	PhaseWaiting
	PhaseRevealing
	PhaseLineDone
	PhaseLoopPending
	PhaseHalted
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseWaiting:
		return "waiting"
	case PhaseRevealing:
		return "revealing"
	case PhaseLineDone:
		return "line-done"
	case PhaseLoopPending:
		return "loop-pending"
	case PhaseHalted:
		return "halted"
	default:
		return "unknown"
	}
}

const (
	DefaultLoopDelay = 3 * time.Second
	DefaultSpeed     = 50 * time.Millisecond

	// Chunk bounds (inclusive) for the pseudo-random token size.
	MinChunk = 10
	MaxChunk = 11
)

// Config holds the timing knobs of one reveal instance.
type Config struct {
	Speed     time.Duration // wait before each chunk; must be > 0
	LoopDelay time.Duration
	Chunk     func() int // size of the next chunk
}

// RandomChunk returns a chunk function drawing uniformly from [MinChunk, MaxChunk].
func RandomChunk(rng *rand.Rand) func() int {
	return func() int { return MinChunk + rng.IntN(MaxChunk-MinChunk+1) }
}

// FixedChunk always reveals n characters per tick.
func FixedChunk(n int) func() int {
	return func() int { return n }
}

func (c Config) speed() time.Duration {
	if c.Speed <= 0 {
		return DefaultSpeed
	}
	return c.Speed
}

func (c Config) chunk() int {
	n := MinChunk
	if c.Chunk != nil {
		n = c.Chunk()
	}
	if n < 1 {
		n = 1
	}
	return n
}

// State is the progress of one consumer through a script.
//
// Revealed[i] is the full line for i < LineIndex; while a line is in progress,
// Revealed[LineIndex] holds script[LineIndex].Text[:CharIndex].
// CharIndex is a byte offset that always sits on a rune boundary.
type State struct {
	LineIndex int
	CharIndex int
	Revealed  []content.Line
	Looping   bool

	delayed bool // pre-delay of the current line already honored
}

func NewState(loop bool) State {
	return State{Looping: loop}
}

// PhaseOf classifies s against script.
func PhaseOf(s State, script content.Script) Phase {
	if len(script) == 0 {
		return PhaseIdle
	}
	if s.LineIndex >= len(script) {
		if s.Looping {
			return PhaseLoopPending
		}
		return PhaseHalted
	}
	line := script[s.LineIndex]
	if s.CharIndex == 0 && line.DelayMs > 0 && !s.delayed {
		return PhaseWaiting
	}
	if s.CharIndex < len(line.Text) {
		return PhaseRevealing
	}
	return PhaseLineDone
}

// Next reports the wait before the next Advance. ok is false in the idle and
// halted states, where no further tick should be scheduled.
func Next(s State, script content.Script, cfg Config) (time.Duration, bool) {
	switch PhaseOf(s, script) {
	case PhaseWaiting:
		return time.Duration(script[s.LineIndex].DelayMs) * time.Millisecond, true
	case PhaseRevealing:
		return cfg.speed(), true
	case PhaseLineDone:
		return 0, true
	case PhaseLoopPending:
		return cfg.LoopDelay, true
	default:
		return 0, false
	}
}

// Advance applies one tick and returns the new state. s is not modified.
func Advance(s State, script content.Script, cfg Config) State {
	switch PhaseOf(s, script) {
	case PhaseLoopPending:
		return State{Looping: s.Looping}

	case PhaseWaiting:
		s.delayed = true
		return s

	case PhaseRevealing:
		line := script[s.LineIndex]
		next := min(s.CharIndex+cfg.chunk(), len(line.Text))
		for next < len(line.Text) && !utf8.RuneStart(line.Text[next]) {
			next++
		}
		partial := line
		partial.Text = line.Text[:next]
		s.Revealed = withLine(s.Revealed, s.LineIndex, partial)
		s.CharIndex = next
		return s

	case PhaseLineDone:
		// Zero-length lines never get a chunk; record them here so the
		// revealed output keeps one entry per script line.
		if len(s.Revealed) <= s.LineIndex {
			s.Revealed = withLine(s.Revealed, s.LineIndex, script[s.LineIndex])
		}
		s.LineIndex++
		s.CharIndex = 0
		s.delayed = false
		return s

	default:
		return s
	}
}

func withLine(lines []content.Line, i int, l content.Line) []content.Line {
	out := make([]content.Line, i+1)
	copy(out, lines[:min(i, len(lines))])
	out[i] = l
	return out
}

// IsTyping reports whether s still has (or will again have) output to produce.
func IsTyping(s State, script content.Script) bool {
	if len(script) == 0 {
		return false
	}
	return s.LineIndex < len(script) || s.Looping
}

// Visible is the concatenated revealed text.
func Visible(s State) string {
	return content.Script(s.Revealed).Text()
}
