package halo

import "errors"

var (
	// ErrBadParams indicates invalid merger parameters or model
	// options.
	ErrBadParams = errors.New("halo: invalid merger parameters")

	// ErrBadInjectionIndex indicates an injection spectral index <= 2,
	// for which the energy-budget closure diverges.
	ErrBadInjectionIndex = errors.New("halo: injection index must exceed 2")

	// ErrBadGeometry indicates a non-positive virial/halo radius ratio.
	ErrBadGeometry = errors.New("halo: invalid cluster geometry")
)
