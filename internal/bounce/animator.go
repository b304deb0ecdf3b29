package bounce

import (
	"time"

	"github.com/fchimpan/vibeterm/internal/sched"
)

// Animator owns one sprite and re-arms a frame callback for it. Frames that
// arrive sooner than ThrottleInterval after the last update are dropped.
type Animator struct {
	sprite  Sprite
	bounds  Bounds
	total   func() int
	sched   sched.Scheduler
	last    time.Time
	pending sched.Handle
}

// NewAnimator wires a sprite to a scheduler. total reports the current number
// of live sprites and drives the frame throttle.
func NewAnimator(s sched.Scheduler, sprite Sprite, b Bounds, total func() int) *Animator {
	if total == nil {
		total = func() int { return 1 }
	}
	return &Animator{
		sprite: Clamp(sprite, b),
		bounds: b,
		total:  total,
		sched:  s,
	}
}

func (a *Animator) Start() {
	if a.pending != nil {
		return
	}
	a.pending = a.sched.NextFrame(a.frame)
}

// Stop deregisters the pending frame callback.
func (a *Animator) Stop() {
	if a.pending != nil {
		a.pending.Cancel()
		a.pending = nil
	}
}

func (a *Animator) frame(now time.Time) {
	a.pending = nil
	if a.last.IsZero() || now.Sub(a.last) >= ThrottleInterval(a.total()) {
		a.last = now
		a.sprite = Tick(a.sprite, a.bounds)
	}
	a.pending = a.sched.NextFrame(a.frame)
}

// SetBounds handles a viewport resize: the sprite is clamped, never bounced.
func (a *Animator) SetBounds(b Bounds) {
	a.bounds = b
	a.sprite = Clamp(a.sprite, b)
}

func (a *Animator) Sprite() Sprite { return a.sprite }
