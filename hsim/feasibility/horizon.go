package feasibility

import "math"

// DefaultHorizonCap bounds the EDF test horizon regardless of how large
// the hyperperiod computes to — spec §4.B calls for "a safety cap bounded
// above by an implementation constant (e.g. 10^5)".
const DefaultHorizonCap = 1e5

// hyperperiod returns the LCM of the given periods, scaled to integer
// ticks at the given resolution to keep the LCM computation exact for
// fractional periods, then converted back to float64. Returns 0 if
// periods is empty.
func hyperperiod(periods []float64) float64 {
	if len(periods) == 0 {
		return 0
	}
	const resolution = 1000 // ticks per unit; enough precision for one decimal place
	scaled := make([]int64, len(periods))
	for i, p := range periods {
		scaled[i] = int64(math.Round(p * resolution))
	}
	lcm := scaled[0]
	for _, v := range scaled[1:] {
		lcm = lcmInt64(lcm, v)
	}
	return float64(lcm) / resolution
}

func gcdInt64(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
	}
	return a
}

func lcmInt64(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	g := gcdInt64(a, b)
	return (a / g) * b
}

// edfHorizon computes the EDF test horizon L: the smaller of the
// task-set hyperperiod and a safety cap, per spec §4.B. cap should be
// DefaultHorizonCap unless the caller overrides it.
func edfHorizon(periods []float64, maxDeadline float64, cap float64) float64 {
	hp := hyperperiod(periods)
	var maxPeriod float64
	for _, p := range periods {
		if p > maxPeriod {
			maxPeriod = p
		}
	}
	safetyCap := 10 * maxDeadline * (1 + maxPeriod)
	if safetyCap > cap || safetyCap == 0 {
		safetyCap = cap
	}
	if hp == 0 || hp > safetyCap {
		return safetyCap
	}
	return hp
}

// fpsHorizonSingle computes the response-time horizon for task i under
// FPS: the fixed point of R = WCETi + sum_{j<i} ceil(R/Tj)*WCETj,
// iterated from R = WCETi until it stabilizes or exceeds Di. Returns
// (horizon, converged).
func fpsHorizonSingle(wcet []float64, periods []float64, deadline float64, i int, maxIterations int) (float64, bool) {
	r := wcet[i]
	for iter := 0; iter < maxIterations; iter++ {
		next := wcet[i]
		for j := 0; j < i; j++ {
			next += math.Ceil(r/periods[j]) * wcet[j]
		}
		if next == r {
			return r, true
		}
		if next > deadline {
			return next, false
		}
		r = next
	}
	return r, false
}
