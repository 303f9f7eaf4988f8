package fokkerplanck

import (
	"errors"
	"fmt"
)

// Domain errors for solver construction and stepping.
var (
	// ErrBadGrid indicates invalid grid bounds or point counts.
	ErrBadGrid = errors.New("fokkerplanck: invalid grid specification")

	// ErrBadTimeStep indicates a non-positive time step.
	ErrBadTimeStep = errors.New("fokkerplanck: time step must be positive")

	// ErrSpectrumLength indicates an initial spectrum whose length does
	// not match the active grid.
	ErrSpectrumLength = errors.New("fokkerplanck: spectrum length mismatches grid")

	// ErrTimeReversed indicates tstop < tstart.
	ErrTimeReversed = errors.New("fokkerplanck: stop time precedes start time")

	// ErrNonPositiveDiffusion indicates a coefficient evaluation that
	// violates the strictly-positive diffusion contract.
	ErrNonPositiveDiffusion = errors.New("fokkerplanck: non-positive diffusion coefficient")

	// ErrUnstable indicates a step produced non-finite or negative
	// densities, or a non-positive pivot in the tridiagonal solve.
	ErrUnstable = errors.New("fokkerplanck: numerical instability detected")
)

// StepError wraps a stepping failure with the time and grid index at
// which it occurred.
type StepError struct {
	Time    float64
	Index   int
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%v (t=%.6f, i=%d)", e.Wrapped, e.Time, e.Index)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
