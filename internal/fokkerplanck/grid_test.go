package fokkerplanck

import (
	"errors"
	"math"
	"testing"
)

func TestNewGridValidation(t *testing.T) {
	tests := []struct {
		name    string
		xmin    float64
		xmax    float64
		nActive int
		nBuffer int
	}{
		{"reversed bounds", 1e5, 1.0, 50, 5},
		{"equal bounds", 10.0, 10.0, 50, 5},
		{"zero xmin", 0.0, 1e5, 50, 5},
		{"negative xmin", -1.0, 1e5, 50, 5},
		{"too few points", 1.0, 1e5, 2, 5},
		{"negative buffer", 1.0, 1e5, 50, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGrid(tt.xmin, tt.xmax, tt.nActive, tt.nBuffer)
			if !errors.Is(err, ErrBadGrid) {
				t.Errorf("expected ErrBadGrid, got %v", err)
			}
		})
	}
}

func TestGridGeometricSpacing(t *testing.T) {
	g, err := NewGrid(1.0, 1e5, 50, 5)
	if err != nil {
		t.Fatal(err)
	}

	if g.Len() != 60 {
		t.Fatalf("expected 60 total points, got %d", g.Len())
	}
	if g.NumActive() != 50 || g.NumBuffer() != 5 {
		t.Fatalf("unexpected partition: %d active, %d buffer", g.NumActive(), g.NumBuffer())
	}

	x := g.X()
	ratio := x[1] / x[0]
	for i := 1; i < len(x); i++ {
		if x[i] <= x[i-1] {
			t.Fatalf("grid not strictly increasing at %d", i)
		}
		r := x[i] / x[i-1]
		if math.Abs(r/ratio-1) > 1e-10 {
			t.Errorf("spacing ratio drifts at %d: %.15f vs %.15f", i, r, ratio)
		}
	}
}

func TestGridActiveBounds(t *testing.T) {
	g, err := NewGrid(1.0, 1e5, 50, 5)
	if err != nil {
		t.Fatal(err)
	}

	active := g.Active()
	if len(active) != 50 {
		t.Fatalf("expected 50 active points, got %d", len(active))
	}
	if active[0] != 1.0 {
		t.Errorf("active lower bound: got %g, want 1", active[0])
	}
	if active[49] != 1e5 {
		t.Errorf("active upper bound: got %g, want 1e5", active[49])
	}

	// guard cells extend strictly beyond the active bounds
	x := g.X()
	if x[4] >= 1.0 || x[55] <= 1e5 {
		t.Error("guard cells do not extend beyond active bounds")
	}
}

func TestGridZeroBuffer(t *testing.T) {
	g, err := NewGrid(10.0, 1e3, 20, 0)
	if err != nil {
		t.Fatal(err)
	}
	if g.Len() != 20 {
		t.Fatalf("expected 20 points, got %d", g.Len())
	}
	u := make([]float64, 20)
	if len(g.ActiveSlice(u)) != 20 {
		t.Error("active slice should cover the whole grid")
	}
}
