package ascii

import (
	"strings"
	"testing"
)

func TestGenerate_ConcatenatesGlyphs(t *testing.T) {
	t.Parallel()

	rows := Generate("hi")
	if len(rows) != Height {
		t.Fatalf("rows = %d, want %d", len(rows), Height)
	}
	if rows[0] != "██╗  ██╗██╗" {
		t.Fatalf("row 0 = %q", rows[0])
	}
	if Width(rows) != 11 {
		t.Fatalf("width = %d, want 11", Width(rows))
	}
}

func TestGenerate_UnknownCharacterIsBlank(t *testing.T) {
	t.Parallel()

	rows := Generate("A?A")
	a := Generate("A")
	for i := range rows {
		want := a[i] + "   " + a[i]
		if rows[i] != want {
			t.Fatalf("row %d = %q, want %q", i, rows[i], want)
		}
	}
	if Supported('?') || !Supported('q') {
		t.Fatalf("unexpected Supported results")
	}
}

func TestGenerate_RowsHaveEqualWidth(t *testing.T) {
	t.Parallel()

	rows := Generate("THE QUICK BROWN FOX JUMPS OVER THE LAZY DOG")
	w := Width(rows)
	for i, r := range rows {
		if got := Width([]string{r}); got != w {
			t.Fatalf("row %d width %d, want %d", i, got, w)
		}
	}
}

func TestGenerateLines_SeparatesAndSkipsBlank(t *testing.T) {
	t.Parallel()

	out := GenerateLines([]string{"I VIBE MORE", "   ", "THAN YOU"})
	if len(out) != 2*Height+1 {
		t.Fatalf("rows = %d, want %d", len(out), 2*Height+1)
	}
	if out[Height] != "" {
		t.Fatalf("expected an empty separator row, got %q", out[Height])
	}
	if !strings.HasPrefix(out[Height+1], "████████╗") {
		t.Fatalf("second block should start with T, got %q", out[Height+1])
	}

	empty := GenerateLines([]string{"", " "})
	if len(empty) != Height {
		t.Fatalf("empty preview rows = %d, want %d", len(empty), Height)
	}
}
