package reveal

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/fchimpan/vibeterm/internal/content"
	"github.com/fchimpan/vibeterm/internal/sched"
)

// Typewriter drives one State on a scheduler. Exactly one timer is pending
// at a time; the next one is armed only after the current tick has run.
type Typewriter struct {
	script  content.Script
	cfg     Config
	sched   sched.Scheduler
	loop    bool
	state   State
	pending sched.Handle
	running bool
}

func NewTypewriter(s sched.Scheduler, script content.Script, loop bool, cfg Config) *Typewriter {
	return &Typewriter{
		script: script,
		cfg:    cfg,
		sched:  s,
		loop:   loop,
		state:  NewState(loop),
	}
}

// Start arms the first tick. Calling Start on a running typewriter is a no-op.
func (t *Typewriter) Start() {
	if t.running {
		return
	}
	t.running = true
	t.arm()
}

// Stop cancels the pending tick so nothing fires after teardown.
func (t *Typewriter) Stop() {
	t.running = false
	if t.pending != nil {
		t.pending.Cancel()
		t.pending = nil
	}
}

// Reset rewinds to the first line, keeping the running/stopped status.
func (t *Typewriter) Reset() {
	wasRunning := t.running
	t.Stop()
	t.state = NewState(t.loop)
	if wasRunning {
		t.Start()
	}
}

func (t *Typewriter) arm() {
	d, ok := Next(t.state, t.script, t.cfg)
	if !ok {
		return
	}
	t.pending = t.sched.After(d, t.step)
}

func (t *Typewriter) step() {
	t.pending = nil
	if !t.running {
		return
	}
	t.state = Advance(t.state, t.script, t.cfg)
	t.arm()
}

// SetSpeed changes the reveal interval. The pending tick keeps its deadline;
// the new interval applies from the next one.
func (t *Typewriter) SetSpeed(d time.Duration) { t.cfg.Speed = d }

// SetLoopDelay changes the pause before the script restarts. A restart that
// is already pending keeps its deadline.
func (t *Typewriter) SetLoopDelay(d time.Duration) { t.cfg.LoopDelay = d }

func (t *Typewriter) State() State { return t.state }
func (t *Typewriter) Lines() []content.Line { return t.state.Revealed }
func (t *Typewriter) IsTyping() bool { return IsTyping(t.state, t.script) }

// TerminalSpeed picks a per-terminal chunk interval: the base speed varied by
// up to ±55%, slowed down when there are very many terminals, then divided by
// the user speed multiplier.
func TerminalSpeed(rng *rand.Rand, totalTerminals int, multiplier float64) time.Duration {
	base := 50.0
	if totalTerminals > 100 {
		base = 80
	}
	const variation = 0.55
	factor := 1 + (rng.Float64()-0.5)*2*variation
	if multiplier <= 0 {
		multiplier = 1
	}
	ms := math.Round(base * factor / multiplier)
	if ms < 1 {
		ms = 1
	}
	return time.Duration(ms) * time.Millisecond
}
