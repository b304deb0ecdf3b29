// Package sched is a cooperative, single-threaded scheduler.
//
// A Loop never runs anything on its own: the owner calls Advance with the
// current time (once per UI frame) and due callbacks run synchronously inside
// that call, so engines built on it are deterministic under test.
package sched

import (
	"container/heap"
	"time"
)

// Handle cancels a scheduled callback. Cancel is idempotent and safe to call
// after the callback has already run.
type Handle interface {
	Cancel()
}

// Scheduler is what the animation engines depend on.
type Scheduler interface {
	After(d time.Duration, fn func()) Handle
	NextFrame(fn func(now time.Time)) Handle
}

// maxCallbacksPerAdvance bounds the work done in a single Advance so a
// zero-delay re-arm loop cannot freeze the UI. Leftovers run next frame.
const maxCallbacksPerAdvance = 10000

type entry struct {
	at       time.Time
	seq      uint64
	fn       func()
	frame    func(time.Time)
	canceled bool
	index    int
}

func (e *entry) Cancel() { e.canceled = true }

type timerHeap []*entry

func (h timerHeap) Len() int { return len(h) }
func (h timerHeap) Less(i, j int) bool {
	if h[i].at.Equal(h[j].at) {
		return h[i].seq < h[j].seq
	}
	return h[i].at.Before(h[j].at)
}
func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *timerHeap) Push(x any) {
	e := x.(*entry)
	e.index = len(*h)
	*h = append(*h, e)
}
func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return e
}

// Loop is a virtual-time Scheduler. It is not safe for concurrent use; it is
// meant to be owned by a single bubbletea model.
type Loop struct {
	now    time.Time
	seq    uint64
	timers timerHeap
	frames []*entry
}

var _ Scheduler = (*Loop)(nil)

func NewLoop(start time.Time) *Loop {
	return &Loop{now: start}
}

// Now is the loop's current virtual time.
func (l *Loop) Now() time.Time { return l.now }

// After runs fn once the loop has been advanced d past the current time.
func (l *Loop) After(d time.Duration, fn func()) Handle {
	if d < 0 {
		d = 0
	}
	l.seq++
	e := &entry{at: l.now.Add(d), seq: l.seq, fn: fn}
	heap.Push(&l.timers, e)
	return e
}

// NextFrame runs fn on the next call to Advance, after due timers.
func (l *Loop) NextFrame(fn func(now time.Time)) Handle {
	l.seq++
	e := &entry{seq: l.seq, frame: fn}
	l.frames = append(l.frames, e)
	return e
}

// Advance moves virtual time to now, firing due timers in deadline order and
// then the frame callbacks registered before this call.
// While a timer fires, Now reports its deadline so re-armed timers keep an
// exact cadence regardless of frame jitter.
func (l *Loop) Advance(now time.Time) {
	fired := 0
	for len(l.timers) > 0 && fired < maxCallbacksPerAdvance {
		top := l.timers[0]
		if top.at.After(now) {
			break
		}
		heap.Pop(&l.timers)
		if top.canceled {
			continue
		}
		if top.at.After(l.now) {
			l.now = top.at
		}
		top.canceled = true
		top.fn()
		fired++
	}
	if now.After(l.now) {
		l.now = now
	}

	frames := l.frames
	l.frames = nil
	for _, e := range frames {
		if e.canceled {
			continue
		}
		e.canceled = true
		e.frame(l.now)
	}
}

// Pending reports how many callbacks are still scheduled.
func (l *Loop) Pending() int {
	n := 0
	for _, e := range l.timers {
		if !e.canceled {
			n++
		}
	}
	for _, e := range l.frames {
		if !e.canceled {
			n++
		}
	}
	return n
}
