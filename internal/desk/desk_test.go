package desk

import (
	"math/rand/v2"
	"testing"

	"github.com/fchimpan/vibeterm/internal/layout"
)

func newDesk() *Desk {
	return New(rand.New(rand.NewPCG(1, 2)), layout.Size{W: 200, H: 60}, layout.CellConstants)
}

func TestSetCount_ClampsToBounds(t *testing.T) {
	t.Parallel()

	d := newDesk()
	added, _ := d.SetCount(0)
	if d.Len() != MinWindows || len(added) != 1 {
		t.Fatalf("len = %d, added = %d; want %d", d.Len(), len(added), MinWindows)
	}

	d.SetCount(1000)
	if d.Len() != MaxWindows {
		t.Fatalf("len = %d, want %d", d.Len(), MaxWindows)
	}

	_, removed := d.Step(-10)
	if d.Len() != MaxWindows-10 || len(removed) != 10 {
		t.Fatalf("len = %d removed = %d", d.Len(), len(removed))
	}
	if removed[0].Ordinal != MaxWindows-10 {
		t.Fatalf("expected removal from the end, first removed ordinal %d", removed[0].Ordinal)
	}

	d.Step(-1000)
	if d.Len() != MinWindows {
		t.Fatalf("len = %d, want %d", d.Len(), MinWindows)
	}
}

func TestAdd_UniqueIDsAfterClose(t *testing.T) {
	t.Parallel()

	d := newDesk()
	d.SetCount(3)
	ws := d.Windows()
	if _, ok := d.Close(ws[1].ID); !ok {
		t.Fatalf("close failed")
	}
	if _, ok := d.Close(ws[1].ID); ok {
		t.Fatalf("closing twice should fail")
	}
	w := d.Add()
	seen := map[string]bool{}
	for _, x := range d.Windows() {
		if seen[x.ID] {
			t.Fatalf("duplicate id %s", x.ID)
		}
		seen[x.ID] = true
	}
	if w.Ordinal != 3 {
		t.Fatalf("ordinal = %d, want 3", w.Ordinal)
	}
}

func TestClose_CanEmptyTheDesk(t *testing.T) {
	t.Parallel()

	d := newDesk()
	w := d.Add()
	d.Close(w.ID)
	if d.Len() != 0 {
		t.Fatalf("len = %d, want 0", d.Len())
	}
	if _, ok := d.Focused(); ok {
		t.Fatalf("empty desk has no focused window")
	}
}

func TestFocus_RaisesMonotonicallyAndCaps(t *testing.T) {
	t.Parallel()

	d := newDesk()
	d.SetCount(3)
	ws := d.Windows()

	prev := 0
	for i := 0; i < 20; i++ {
		id := ws[i%3].ID
		d.Focus(id)
		w, _ := d.Get(id)
		if w.Z < prev {
			t.Fatalf("z decreased: %d -> %d", prev, w.Z)
		}
		prev = w.Z
		if top, _ := d.Focused(); top.ID != id {
			t.Fatalf("focused = %s, want %s", top.ID, id)
		}
	}

	for i := 0; i < MaxZ+50; i++ {
		d.Focus(ws[i%3].ID)
	}
	for _, w := range d.Windows() {
		if w.Z > MaxZ {
			t.Fatalf("z %d exceeds cap %d", w.Z, MaxZ)
		}
	}
	// Saturated z still lets the most recent focus win.
	d.Focus(ws[0].ID)
	if top, _ := d.Focused(); top.ID != ws[0].ID {
		t.Fatalf("focused = %s, want %s", top.ID, ws[0].ID)
	}
	if d.Focus("nope") {
		t.Fatalf("focusing an unknown window should fail")
	}
}

func TestMove_StaysInViewport(t *testing.T) {
	t.Parallel()

	d := newDesk()
	w := d.Add()
	d.Move(w.ID, layout.Point{X: -10, Y: 500})
	got, _ := d.Get(w.ID)
	if got.Pos.X != 0 || got.Pos.Y != 60-w.Size.H {
		t.Fatalf("pos = %+v", got.Pos)
	}
}

func TestResize_Limits(t *testing.T) {
	t.Parallel()

	d := newDesk()
	w := d.Add()
	d.Resize(w.ID, layout.Size{W: 1, H: 1000})
	got, _ := d.Get(w.ID)
	if got.Size.W != MinSize.W || got.Size.H != MaxSize.H {
		t.Fatalf("size = %+v", got.Size)
	}
}

func TestArrange_UniformUsesTiling(t *testing.T) {
	t.Parallel()

	d := newDesk()
	d.SetCount(5)
	d.Arrange()
	want := layout.Arrange(5, d.Viewport(), layout.CellConstants)
	for i, w := range d.Windows() {
		if w.Pos != want[i] {
			t.Fatalf("window %d at %+v, want %+v", i, w.Pos, want[i])
		}
	}
}

func TestArrange_ScatteredStaysOnScreen(t *testing.T) {
	t.Parallel()

	d := newDesk()
	d.SetCount(10)
	if d.ToggleMode() != ModeScattered {
		t.Fatalf("expected scattered mode")
	}
	d.Arrange()
	for _, w := range d.Windows() {
		if w.Pos.X+w.Size.W > 200 || w.Pos.Y+w.Size.H > 60 || w.Pos.X < 0 || w.Pos.Y < 0 {
			t.Fatalf("window off screen: %+v", w)
		}
	}
}

func TestWindowAt_PicksTopmost(t *testing.T) {
	t.Parallel()

	d := newDesk()
	a := d.Add()
	b := d.Add()
	d.Move(a.ID, layout.Point{X: 50, Y: 10})
	d.Move(b.ID, layout.Point{X: 55, Y: 12})

	w, ok := d.WindowAt(60, 15)
	if !ok || w.ID != b.ID {
		t.Fatalf("got %v, want %s", w.ID, b.ID)
	}
	d.Focus(a.ID)
	w, _ = d.WindowAt(60, 15)
	if w.ID != a.ID {
		t.Fatalf("got %v, want %s after focus", w.ID, a.ID)
	}
	if _, ok := d.WindowAt(0, 0); ok {
		t.Fatalf("expected no window at origin")
	}
}

func TestParseMode(t *testing.T) {
	t.Parallel()

	if m, err := ParseMode("scattered"); err != nil || m != ModeScattered {
		t.Fatalf("got %v, %v", m, err)
	}
	if _, err := ParseMode("diagonal"); err == nil {
		t.Fatalf("expected error")
	}
}
