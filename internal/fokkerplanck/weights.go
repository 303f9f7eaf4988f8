package fokkerplanck

import "math"

// Chang-Cooper weighting at a cell face. The argument w is the local
// Peclet-like ratio dx*B/C of advective to diffusive flux; the weights
// choose the upwind/downwind mixing that keeps every coefficient of
// the implicit matrix non-negative, which in turn keeps the solved
// spectrum non-negative.
//
// Exact forms:
//
//	Wplus(w)  = w / (1 - exp(-w))
//	Wminus(w) = w / (exp(w) - 1)
//
// Both are strictly positive for all finite w and satisfy
// Wplus(w) - Wminus(w) = w.

const wSmall = 1e-8

func changCooperPlus(w float64) float64 {
	if math.Abs(w) < wSmall {
		return 1.0 + w/2.0
	}
	return w / (1.0 - math.Exp(-w))
}

func changCooperMinus(w float64) float64 {
	if math.Abs(w) < wSmall {
		return 1.0 - w/2.0
	}
	if w > 700 {
		// exp(w) overflows; the weight underflows to zero anyway
		return 0.0
	}
	return w / (math.Exp(w) - 1.0)
}
