// Package fokkerplanck solves the 1-D Fokker-Planck transport equation
//
//	∂u/∂t = ∂/∂x[ B(x,t)·u + C(x,t)·∂u/∂x ] + Q(x,t)
//
// for a particle spectrum u(x,t) on a logarithmic energy grid, where
// B is the advection (loss) coefficient, C the diffusion coefficient
// and Q the injection rate. The implicit Chang-Cooper discretization
// keeps the spectrum non-negative and conserves particles for
// well-posed coefficients; each step costs one tridiagonal solve.
package fokkerplanck

import (
	"fmt"
	"math"
)

// CoefficientFunc evaluates a transport coefficient at grid point x
// and cosmic time t [Gyr].
type CoefficientFunc func(x, t float64) float64

// StepObserver is called after every accepted step with the current
// time and the active spectrum. The slice is reused between steps and
// must not be retained or modified.
type StepObserver func(t float64, u []float64)

// Solver advances a particle spectrum through time on a fixed grid.
// A Solver is not safe for concurrent use: Solve mutates internal
// state. Independent spectra need independent Solver instances.
type Solver struct {
	grid      *Grid
	tstep     float64
	advection CoefficientFunc
	diffusion CoefficientFunc
	injection CoefficientFunc
	observer  StepObserver

	// per-step scratch, sized to the full grid
	bc, cc, qc             []float64
	sub, diag, sup         []float64
	rhs, scratch, u, uNext []float64
}

// NewSolver builds the grid (nActive points plus nBuffer guard points
// on each side) and stores the coefficient callables. injection may be
// nil, meaning no particle source. It fails if the grid specification
// is invalid, tstep <= 0, or advection/diffusion is nil.
func NewSolver(xmin, xmax float64, nActive, nBuffer int, tstep float64,
	advection, diffusion, injection CoefficientFunc) (*Solver, error) {

	grid, err := NewGrid(xmin, xmax, nActive, nBuffer)
	if err != nil {
		return nil, err
	}
	if tstep <= 0 {
		return nil, fmt.Errorf("%w: got %g", ErrBadTimeStep, tstep)
	}
	if advection == nil || diffusion == nil {
		return nil, fmt.Errorf("%w: advection and diffusion functions are required",
			ErrBadGrid)
	}
	if injection == nil {
		injection = func(x, t float64) float64 { return 0 }
	}

	n := grid.Len()
	return &Solver{
		grid:      grid,
		tstep:     tstep,
		advection: advection,
		diffusion: diffusion,
		injection: injection,
		bc:        make([]float64, n),
		cc:        make([]float64, n),
		qc:        make([]float64, n),
		sub:       make([]float64, n),
		diag:      make([]float64, n),
		sup:       make([]float64, n),
		rhs:       make([]float64, n),
		scratch:   make([]float64, n),
		u:         make([]float64, n),
		uNext:     make([]float64, n),
	}, nil
}

// Grid returns the solver's energy grid.
func (s *Solver) Grid() *Grid { return s.grid }

// TimeStep returns the fixed step size. [Gyr]
func (s *Solver) TimeStep() float64 { return s.tstep }

// SetObserver registers a per-step callback, replacing any previous
// one. Pass nil to remove.
func (s *Solver) SetObserver(obs StepObserver) { s.observer = obs }

// Solve advances the spectrum u0 (one value per active grid point)
// from tstart to tstop [Gyr] by repeated implicit steps of size
// min(tstep, tstop-t), and returns the resulting active spectrum.
// The guard cells are seeded with zero and discarded from the result,
// so the output of one Solve can seed the next.
//
// tstop == tstart is an explicit no-op returning a copy of u0;
// tstop < tstart fails with ErrTimeReversed.
func (s *Solver) Solve(u0 []float64, tstart, tstop float64) ([]float64, error) {
	if len(u0) != s.grid.NumActive() {
		return nil, fmt.Errorf("%w: got %d, grid has %d active points",
			ErrSpectrumLength, len(u0), s.grid.NumActive())
	}
	if tstop < tstart {
		return nil, fmt.Errorf("%w: tstart=%g tstop=%g", ErrTimeReversed,
			tstart, tstop)
	}

	// reset solver state for this run
	for i := range s.u {
		s.u[i] = 0
	}
	copy(s.grid.ActiveSlice(s.u), u0)

	// Tolerate floating rounding in the time accumulation: stop once
	// the remaining interval is a negligible fraction of a step.
	eps := 1e-8 * s.tstep
	for tc := tstart; tstop-tc > eps; {
		dt := math.Min(s.tstep, tstop-tc)
		if err := s.step(tc, dt); err != nil {
			return nil, err
		}
		tc += dt
		if s.observer != nil {
			s.observer(tc, s.grid.ActiveSlice(s.u))
		}
	}

	out := make([]float64, s.grid.NumActive())
	copy(out, s.grid.ActiveSlice(s.u))
	return out, nil
}

// step performs one implicit step of size dt from time tc, with the
// coefficients evaluated explicitly at tc. The guard cells participate
// in the solve (they absorb discretization error near the true domain
// edges) under a no-inflow condition at the outermost faces.
func (s *Solver) step(tc, dt float64) error {
	x := s.grid.x
	n := len(x)

	for i := 0; i < n; i++ {
		s.bc[i] = s.advection(x[i], tc)
		c := s.diffusion(x[i], tc)
		if c <= 0 || math.IsNaN(c) {
			return &StepError{Time: tc, Index: i, Wrapped: ErrNonPositiveDiffusion}
		}
		s.cc[i] = c
		s.qc[i] = s.injection(x[i], tc)
	}

	for i := 0; i < n; i++ {
		// face-averaged coefficients and Peclet-like ratios
		bp, cp := s.bc[i], s.cc[i]
		if i < n-1 {
			bp = 0.5 * (s.bc[i] + s.bc[i+1])
			cp = 0.5 * (s.cc[i] + s.cc[i+1])
		}
		bm, cm := s.bc[i], s.cc[i]
		if i > 0 {
			bm = 0.5 * (s.bc[i-1] + s.bc[i])
			cm = 0.5 * (s.cc[i-1] + s.cc[i])
		}
		wp := s.grid.dxp[i] * bp / cp
		wm := s.grid.dxm[i] * bm / cm

		gp := dt / s.grid.dx[i] * cp / s.grid.dxp[i]
		gm := dt / s.grid.dx[i] * cm / s.grid.dxm[i]

		a := gm * changCooperMinus(wm)
		c := gp * changCooperPlus(wp)
		b := 1.0 + gm*changCooperPlus(wm) + gp*changCooperMinus(wp)

		// no-inflow boundaries: drop the flux through the outer faces
		if i == 0 {
			a = 0
			b = 1.0 + gp*changCooperMinus(wp)
		}
		if i == n-1 {
			c = 0
			b = 1.0 + gm*changCooperPlus(wm)
		}

		s.sub[i] = -a
		s.diag[i] = b
		s.sup[i] = -c
		s.rhs[i] = s.u[i] + dt*s.qc[i]
	}

	if row, ok := solveTridiagonal(s.sub, s.diag, s.sup, s.rhs, s.uNext, s.scratch); !ok {
		return &StepError{Time: tc, Index: row, Wrapped: ErrUnstable}
	}

	for i := 0; i < n; i++ {
		v := s.uNext[i]
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return &StepError{Time: tc, Index: i, Wrapped: ErrUnstable}
		}
	}
	s.u, s.uNext = s.uNext, s.u
	return nil
}
