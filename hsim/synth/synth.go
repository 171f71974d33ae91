package synth

import (
	"fmt"
	"math"

	"github.com/adas-hsim/adas-hsim/hsim"
	"github.com/adas-hsim/adas-hsim/hsim/feasibility"
	"github.com/adas-hsim/adas-hsim/hsim/kernel"
)

// Synthesize walks model's component tree post-order and computes the
// minimum BDR interface (α, Δ) that makes each non-root component
// schedulable, writing the result onto the component and injecting its
// realized supply task into its parent's task list before the parent is
// visited.
//
// Root components are fixed at (1, 0); Synthesize still runs the
// feasibility test against them so the overall IsSchedulable verdict
// reflects every component in the tree, not only the synthesized ones.
func Synthesize(model *hsim.SystemModel, opts Options) (*Report, error) {
	if err := model.Validate(); err != nil {
		return nil, err
	}

	perfOf := make(map[*hsim.Component]float64)
	for _, root := range model.RootComponents {
		perf := 1.0
		if core := model.CoreByID(root.CoreID); core != nil {
			perf = core.PerformanceFactor
		}
		assignPerf(root, perf, perfOf)
	}

	report := &Report{IsSchedulable: true}
	for _, c := range model.PostOrder() {
		perf := perfOf[c]

		var ci ComponentInterface
		var err error
		switch {
		case c.IsRoot:
			ci, err = checkRoot(c, perf, opts)
		case c.Synthesized():
			// The model supplied a fixed (alpha, delta) for this
			// component (per the optional alpha/delta fields in the
			// JSON schema) — honor it rather than search, but still
			// run the feasibility test so the report's verdict and the
			// injected supply task reflect the real interface.
			ci, err = checkGiven(c, perf, opts)
		default:
			ci, err = synthesizeOne(c, perf, opts)
		}
		if err != nil {
			return nil, err
		}
		if !c.IsRoot {
			c.SetInterface(ci.Alpha, ci.Delta)
			injectSupplyTask(c, ci)
		}

		report.ComponentInterfaces = append(report.ComponentInterfaces, ci)
		if !ci.IsSchedulable {
			report.IsSchedulable = false
		}
	}
	return report, nil
}

func assignPerf(c *hsim.Component, perf float64, out map[*hsim.Component]float64) {
	out[c] = perf
	for _, ch := range c.Children {
		assignPerf(ch, perf, out)
	}
}

// injectSupplyTask appends a synthetic periodic task representing c's
// realized (Q, P) periodic server into c's parent's task list — the
// child's demand as seen by the parent, per spec §4.C and §9.
func injectSupplyTask(c *hsim.Component, ci ComponentInterface) {
	if c.Parent == nil || ci.SupplyPeriod <= 0 {
		return
	}
	supply := &hsim.Task{
		ID:                  c.ID + "-supply",
		Name:                fmt.Sprintf("%s supply", c.Name),
		WCET:                ci.SupplyBudget,
		Deadline:            ci.SupplyPeriod,
		Kind:                hsim.PeriodicTask{Period: ci.SupplyPeriod},
		SyntheticSupplyTask: true,
	}
	c.Parent.Tasks = append(c.Parent.Tasks, supply)
}

// checkGiven evaluates a component's already-pinned (Alpha, Delta)
// rather than searching for one, computing the periodic server that
// realizes it and the schedulability verdict under it.
func checkGiven(c *hsim.Component, perf float64, opts Options) (ComponentInterface, error) {
	ci := ComponentInterface{ComponentID: c.ID, Alpha: c.Alpha, Delta: c.Delta}
	q, p := kernel.HalfHalf(c.Alpha, c.Delta)
	ci.SupplyBudget, ci.SupplyPeriod = q, p
	ok, err := feasibility.IsSchedulable(c, c.Alpha, c.Delta, perf, opts.Feasibility)
	if err != nil {
		if feasibility.IsHorizonExceeded(err) {
			ci.Inconclusive = true
			return ci, nil
		}
		return ci, err
	}
	ci.IsSchedulable = ok
	return ci, nil
}

func checkRoot(c *hsim.Component, perf float64, opts Options) (ComponentInterface, error) {
	ci := ComponentInterface{ComponentID: c.ID, Alpha: 1, Delta: 0}
	ok, err := feasibility.IsSchedulable(c, 1, 0, perf, opts.Feasibility)
	if err != nil {
		if feasibility.IsHorizonExceeded(err) {
			ci.Inconclusive = true
			return ci, nil
		}
		return ci, err
	}
	ci.IsSchedulable = ok
	return ci, nil
}

// synthesizeOne finds the minimum (α, Δ) satisfying c, per spec §4.C
// steps 1-4: start from the utilization-derived α, binary search for the
// most permissive (largest) Δ that keeps c schedulable at that α — since
// kernel.SbfBDR is non-increasing in Δ, schedulability can only get
// harder as Δ grows, so Δ=0 is the best case and the search looks for
// how far Δ can grow before that stops holding — and if Δ=0 itself
// already fails, grow α by opts.AlphaGrowthFactor and retry.
//
// This resolves an internal ambiguity the spec's own pseudocode direction
// does not determine uniquely: see DESIGN.md.
func synthesizeOne(c *hsim.Component, perf float64, opts Options) (ComponentInterface, error) {
	if len(c.Tasks) == 0 {
		return trivialInterface(c.ID), nil
	}

	totalUtil := c.Utilization() / perf
	maxDeadline := c.MaxDeadline()
	alpha := math.Min(1, 1.1*totalUtil)

	for {
		ci, ok, inconclusive, err := searchDelta(c, alpha, maxDeadline, perf, opts)
		if err != nil {
			return ComponentInterface{}, err
		}
		if inconclusive {
			return ComponentInterface{ComponentID: c.ID, Alpha: alpha, Inconclusive: true}, nil
		}
		if ok {
			return ci, nil
		}
		if alpha >= 1 {
			q, p := kernel.HalfHalf(alpha, 2*maxDeadline)
			return ComponentInterface{
				ComponentID: c.ID, Alpha: alpha, Delta: 2 * maxDeadline,
				SupplyBudget: q, SupplyPeriod: p, IsSchedulable: false,
			}, nil
		}
		alpha = math.Min(1, alpha*opts.AlphaGrowthFactor)
	}
}

func trivialInterface(id string) ComponentInterface {
	return ComponentInterface{ComponentID: id, Alpha: 1, Delta: 0, SupplyBudget: 0, SupplyPeriod: 0, IsSchedulable: true}
}

// searchDelta binary-searches [0, 2*maxDeadline] for the largest Δ at
// which c is schedulable under alpha. Returns ok=false (not infeasible,
// not inconclusive) when even Δ=0 fails, signaling the caller to grow
// alpha instead. Returns inconclusive=true when the feasibility test hits
// its horizon cap, or when the search interval is still wider than
// opts.Epsilon after opts.MaxBinarySearchIterations steps.
func searchDelta(c *hsim.Component, alpha, maxDeadline, perf float64, opts Options) (ci ComponentInterface, ok bool, inconclusive bool, err error) {
	feasibleAtZero, err := feasibility.IsSchedulable(c, alpha, 0, perf, opts.Feasibility)
	if err != nil {
		if feasibility.IsHorizonExceeded(err) {
			return ComponentInterface{}, false, true, nil
		}
		return ComponentInterface{}, false, false, err
	}
	if !feasibleAtZero {
		return ComponentInterface{}, false, false, nil
	}

	lo, hi, best := 0.0, 2*maxDeadline, 0.0
	for iter := 0; iter < opts.MaxBinarySearchIterations && hi-lo > opts.Epsilon; iter++ {
		mid := (lo + hi) / 2
		feasible, err := feasibility.IsSchedulable(c, alpha, mid, perf, opts.Feasibility)
		if err != nil {
			if feasibility.IsHorizonExceeded(err) {
				return ComponentInterface{}, false, true, nil
			}
			return ComponentInterface{}, false, false, err
		}
		if feasible {
			lo, best = mid, mid
		} else {
			hi = mid
		}
	}
	if hi-lo > opts.Epsilon {
		return ComponentInterface{}, false, true, nil // no convergence within MaxBinarySearchIterations
	}

	q, p := kernel.HalfHalf(alpha, best)
	return ComponentInterface{
		ComponentID: c.ID, Alpha: alpha, Delta: best,
		SupplyBudget: q, SupplyPeriod: p, IsSchedulable: true,
	}, true, false, nil
}

// SynthesizeTwice runs Synthesize twice over independent clones of model
// and reports whether the two resulting interfaces agree within
// opts.Epsilon for every component — exercising the idempotence property
// spec §8 lists (property 5). Not part of the production API.
func SynthesizeTwice(model *hsim.SystemModel, opts Options) (first, second *Report, agree bool, err error) {
	first, err = Synthesize(model.Clone(), opts)
	if err != nil {
		return nil, nil, false, err
	}
	second, err = Synthesize(model.Clone(), opts)
	if err != nil {
		return nil, nil, false, err
	}
	if len(first.ComponentInterfaces) != len(second.ComponentInterfaces) {
		return first, second, false, nil
	}
	for i := range first.ComponentInterfaces {
		a, b := first.ComponentInterfaces[i], second.ComponentInterfaces[i]
		if a.ComponentID != b.ComponentID {
			return first, second, false, nil
		}
		if math.Abs(a.Alpha-b.Alpha) > opts.Epsilon || math.Abs(a.Delta-b.Delta) > opts.Epsilon {
			return first, second, false, nil
		}
	}
	return first, second, true, nil
}
