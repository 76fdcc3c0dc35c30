package tilemap

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGrid_ZeroFilled(t *testing.T) {
	g := NewGrid(U2(3, 2))
	if g.Len() != 6 {
		t.Fatalf("Len() = %d, want 6", g.Len())
	}
	if diff := cmp.Diff(make([]uint32, 6), g.Cells()); diff != "" {
		t.Errorf("new grid not zero-filled (-want +got):\n%s", diff)
	}
}

func TestGrid_RowMajor(t *testing.T) {
	g := NewGrid(U2(3, 2))
	g.Set(0, 0, 1)
	g.Set(2, 0, 2)
	g.Set(1, 1, 3)
	g.Set(2, 1, 4)

	want := []uint32{1, 0, 2, 0, 3, 4}
	if diff := cmp.Diff(want, g.Cells()); diff != "" {
		t.Errorf("cells mismatch (-want +got):\n%s", diff)
	}
	if got := g.At(1, 1); got != 3 {
		t.Errorf("At(1, 1) = %d, want 3", got)
	}
}

func TestGrid_Bounds(t *testing.T) {
	g := NewGrid(U2(10, 10))
	g.Set(9, 9, 7)
	if got := g.At(9, 9); got != 7 {
		t.Errorf("At(9, 9) = %d, want 7", got)
	}

	tests := []struct {
		name string
		x, y uint32
	}{
		{"x equals width", 10, 0},
		{"y equals height", 0, 10},
		{"both far out", 1000, 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mustPanic(t, "Set", func() { g.Set(tt.x, tt.y, 1) })
			if msg, _ := r.(string); !strings.Contains(msg, "out of range") {
				t.Errorf("panic message = %v, want it to mention out of range", r)
			}
			mustPanic(t, "At", func() { g.At(tt.x, tt.y) })
		})
	}
}

func TestGrid_Contains(t *testing.T) {
	g := NewGrid(U2(2, 3))
	if !g.Contains(1, 2) {
		t.Error("Contains(1, 2) = false, want true")
	}
	if g.Contains(2, 0) || g.Contains(0, 3) {
		t.Error("Contains reported a cell outside the grid")
	}
}

func TestGrid_Empty(t *testing.T) {
	g := NewGrid(U2(0, 5))
	if g.Len() != 0 {
		t.Errorf("Len() = %d, want 0", g.Len())
	}
	if g.Contains(0, 0) {
		t.Error("empty grid contains (0, 0)")
	}
}
