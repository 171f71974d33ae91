package kernel

// SbfBDR computes the Bounded-Delay Resource supply bound: the minimum
// cumulative resource a (α, Δ) interface guarantees over an interval of
// length t. Zero for t <= Δ (the resource may be unavailable for the
// first Δ of any interval); α·(t − Δ) thereafter.
//
// This is the sbf_bdr formula spec §9 calls out as the correct one to
// use consistently — never the t·α shortcut that ignores Δ, which a
// careless reimplementation might reach for because it is simpler.
func SbfBDR(alpha, delta, t float64) float64 {
	if t <= delta {
		return 0
	}
	return alpha * (t - delta)
}
