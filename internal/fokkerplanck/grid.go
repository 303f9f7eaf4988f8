package fokkerplanck

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Grid is a logarithmically spaced energy grid spanning [xmin, xmax]
// with nActive points, extended below and above by nBuffer guard
// points at the same geometric ratio. The guard points absorb boundary
// artifacts of the discretization and never appear in physical output.
//
// A Grid is immutable once constructed.
type Grid struct {
	x       []float64 // all points, guard cells included
	nActive int
	nBuffer int

	// Cell and face spacings, precomputed for the transport operator.
	dx  []float64 // centered cell widths
	dxp []float64 // distance to the next point (x[i+1] - x[i])
	dxm []float64 // distance to the previous point (x[i] - x[i-1])
}

// NewGrid builds the grid from the active bounds and point counts.
// It fails if xmin >= xmax, nActive < 3, or either bound is
// non-positive (the grid is logarithmic). nBuffer may be zero.
func NewGrid(xmin, xmax float64, nActive, nBuffer int) (*Grid, error) {
	if xmin <= 0 || xmax <= 0 || xmin >= xmax {
		return nil, fmt.Errorf("%w: bounds [%g, %g]", ErrBadGrid, xmin, xmax)
	}
	if nActive < 3 {
		return nil, fmt.Errorf("%w: need at least 3 active points, got %d",
			ErrBadGrid, nActive)
	}
	if nBuffer < 0 {
		return nil, fmt.Errorf("%w: negative buffer size %d", ErrBadGrid, nBuffer)
	}

	n := nActive + 2*nBuffer
	ratio := math.Pow(xmax/xmin, 1.0/float64(nActive-1))
	lo := xmin * math.Pow(ratio, -float64(nBuffer))
	hi := xmax * math.Pow(ratio, float64(nBuffer))

	g := &Grid{
		x:       make([]float64, n),
		nActive: nActive,
		nBuffer: nBuffer,
	}
	floats.LogSpan(g.x, lo, hi)
	// LogSpan accumulates rounding; pin the active bounds exactly.
	g.x[nBuffer] = xmin
	g.x[nBuffer+nActive-1] = xmax

	g.dx = make([]float64, n)
	g.dxp = make([]float64, n)
	g.dxm = make([]float64, n)
	for i := 0; i < n; i++ {
		switch {
		case i == 0:
			g.dx[i] = g.x[1] - g.x[0]
		case i == n-1:
			g.dx[i] = g.x[n-1] - g.x[n-2]
		default:
			g.dx[i] = (g.x[i+1] - g.x[i-1]) / 2.0
		}
		if i < n-1 {
			g.dxp[i] = g.x[i+1] - g.x[i]
		} else {
			g.dxp[i] = g.x[n-1] - g.x[n-2]
		}
		if i > 0 {
			g.dxm[i] = g.x[i] - g.x[i-1]
		} else {
			g.dxm[i] = g.x[1] - g.x[0]
		}
	}
	return g, nil
}

// Len is the total number of grid points, guard cells included.
func (g *Grid) Len() int { return len(g.x) }

// NumActive is the number of physically meaningful points.
func (g *Grid) NumActive() int { return g.nActive }

// NumBuffer is the number of guard points on each side.
func (g *Grid) NumBuffer() int { return g.nBuffer }

// X returns all grid points, guard cells included. The returned slice
// must not be modified.
func (g *Grid) X() []float64 { return g.x }

// Active returns the physically meaningful grid points.
// The returned slice must not be modified.
func (g *Grid) Active() []float64 {
	return g.x[g.nBuffer : g.nBuffer+g.nActive]
}

// ActiveSlice restricts a full-length vector to the active region.
func (g *Grid) ActiveSlice(u []float64) []float64 {
	return u[g.nBuffer : g.nBuffer+g.nActive]
}
