package synth

import "github.com/adas-hsim/adas-hsim/hsim/feasibility"

// Options tunes the synthesizer's search. The zero value is not usable;
// call DefaultOptions().
type Options struct {
	// Epsilon is the binary-search precision on Delta, per spec §4.C.
	Epsilon float64
	// AlphaGrowthFactor is applied to the trial alpha each time even the
	// loosest delta fails to make a component schedulable, per §4.C step 3.
	AlphaGrowthFactor float64
	// MaxBinarySearchIterations bounds the delta search per alpha trial;
	// exceeding it without converging surfaces as Inconclusive, per §7.
	MaxBinarySearchIterations int
	// Feasibility is forwarded to every feasibility.IsSchedulable call
	// the search performs.
	Feasibility feasibility.Options
}

// DefaultOptions returns the synthesizer's default search parameters.
func DefaultOptions() Options {
	return Options{
		Epsilon:                   0.1,
		AlphaGrowthFactor:         1.2,
		MaxBinarySearchIterations: 64,
		Feasibility:               feasibility.DefaultOptions(),
	}
}
