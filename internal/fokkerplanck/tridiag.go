package fokkerplanck

// solveTridiagonal solves the tridiagonal system
//
//	sub[i]*u[i-1] + diag[i]*u[i] + sup[i]*u[i+1] = rhs[i]
//
// by the Thomas algorithm (forward elimination, back substitution),
// O(n). sub[0] and sup[n-1] are ignored. The result is written into u,
// which may alias rhs. scratch must have length >= n.
//
// If a pivot becomes non-positive after elimination it returns the
// offending row and false; for the Chang-Cooper matrix this can only
// happen when the diffusion coefficient contract is violated.
func solveTridiagonal(sub, diag, sup, rhs, u, scratch []float64) (int, bool) {
	n := len(diag)
	cp := scratch[:n]

	if diag[0] <= 0 {
		return 0, false
	}
	cp[0] = sup[0] / diag[0]
	u[0] = rhs[0] / diag[0]

	for i := 1; i < n; i++ {
		denom := diag[i] - sub[i]*cp[i-1]
		if denom <= 0 {
			return i, false
		}
		if i < n-1 {
			cp[i] = sup[i] / denom
		}
		u[i] = (rhs[i] - sub[i]*u[i-1]) / denom
	}

	for i := n - 2; i >= 0; i-- {
		u[i] -= cp[i] * u[i+1]
	}
	return -1, true
}
