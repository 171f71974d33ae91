// Package feasibility implements the DBF <= SBF schedulability test: given
// a component, a candidate BDR interface (α, Δ), and the performance
// factor of the core it would run on, it decides whether the component's
// task set meets every deadline under the supplied resource.
package feasibility

import (
	"errors"
	"fmt"
	"sort"

	"github.com/adas-hsim/adas-hsim/hsim"
	"github.com/adas-hsim/adas-hsim/hsim/kernel"
)

// tolerance is the small absolute slack used for equality/inequality
// comparisons in the DBF/SBF domain, per spec §9: prefer strict '>' when
// deciding infeasibility so borderline-feasible systems are not rejected.
const tolerance = 1e-9

// Options tunes the feasibility test's numerical behavior. The zero
// value is not usable; call DefaultOptions().
type Options struct {
	// HorizonCap bounds the EDF test horizon regardless of hyperperiod.
	HorizonCap float64
	// MaxFixedPointIterations bounds the FPS response-time fixed-point
	// search per task, and is the same numerical ceiling spec §7 calls
	// out for binary-search non-convergence (64 iterations).
	MaxFixedPointIterations int
}

// DefaultOptions returns the feasibility test's default numerical
// parameters.
func DefaultOptions() Options {
	return Options{HorizonCap: DefaultHorizonCap, MaxFixedPointIterations: 64}
}

// IsSchedulable decides whether comp's task set meets every deadline
// when supplied by a Bounded-Delay Resource (alpha, delta), with comp's
// tasks' WCET first scaled by 1/perf — the only place performance
// enters analysis, per spec §4.B.
//
// Returns (false, nil) when the component is provably infeasible under
// (alpha, delta). Returns a non-nil error wrapping
// hsim.ErrHorizonExceeded when the test would require a horizon beyond
// the implementation cap and so cannot reach a verdict either way.
func IsSchedulable(comp *hsim.Component, alpha, delta, perf float64, opts Options) (bool, error) {
	if alpha <= 0 || alpha > 1 {
		return false, fmt.Errorf("%w: alpha %v outside (0,1]", hsim.ErrInvalidModel, alpha)
	}
	if delta < 0 {
		return false, fmt.Errorf("%w: delta %v is negative", hsim.ErrInvalidModel, delta)
	}
	if len(comp.Tasks) == 0 {
		return true, nil // nothing to schedule
	}

	scaled := make([]*scaledTask, len(comp.Tasks))
	var totalUtil float64
	for i, t := range comp.Tasks {
		swcet := t.WCET / perf
		scaled[i] = &scaledTask{
			WCET:     swcet,
			Deadline: t.Deadline,
			Period:   t.Kind.PeriodOrMIT(),
			Priority: t.Priority,
		}
		totalUtil += swcet / scaled[i].Period
	}

	// Step 1: necessary condition.
	if totalUtil > alpha+tolerance {
		return false, nil
	}

	switch comp.Algorithm {
	case hsim.EDF:
		return isSchedulableEDF(scaled, alpha, delta, opts)
	case hsim.FPS:
		return isSchedulableFPS(scaled, alpha, delta, opts)
	default:
		return false, fmt.Errorf("%w: component %q has unsupported scheduling algorithm %q", hsim.ErrInvalidModel, comp.ID, comp.Algorithm)
	}
}

type scaledTask struct {
	WCET     float64
	Deadline float64
	Period   float64
	Priority int
}

func isSchedulableEDF(tasks []*scaledTask, alpha, delta float64, opts Options) (bool, error) {
	periods := make([]float64, len(tasks))
	var maxDeadline float64
	for i, t := range tasks {
		periods[i] = t.Period
		if t.Deadline > maxDeadline {
			maxDeadline = t.Deadline
		}
	}

	trueHyperperiod := hyperperiod(periods)
	if trueHyperperiod > opts.HorizonCap {
		return false, fmt.Errorf("%w: hyperperiod %.0f exceeds cap %.0f", hsim.ErrHorizonExceeded, trueHyperperiod, opts.HorizonCap)
	}

	L := edfHorizon(periods, maxDeadline, opts.HorizonCap)

	checkpoints := edfCheckpoints(tasks, L)
	demands := make([]kernel.Demand, len(tasks))
	for i, t := range tasks {
		demands[i] = kernel.Demand{WCET: t.WCET, Deadline: t.Deadline, Period: t.Period}
	}

	for _, t := range checkpoints {
		demand := kernel.DbfEDF(demands, t)
		supply := kernel.SbfBDR(alpha, delta, t)
		if demand > supply+tolerance {
			return false, nil
		}
	}
	return true, nil
}

// edfCheckpoints returns the sorted, deduplicated set of absolute
// deadlines within [0, L]: for each task, a+D, a+D+T, a+D+2T, ... .
func edfCheckpoints(tasks []*scaledTask, L float64) []float64 {
	seen := make(map[float64]bool)
	var points []float64
	for _, t := range tasks {
		for k := 0; ; k++ {
			point := t.Deadline + float64(k)*t.Period
			if point > L {
				break
			}
			if !seen[point] {
				seen[point] = true
				points = append(points, point)
			}
		}
	}
	sort.Float64s(points)
	return points
}

func isSchedulableFPS(tasks []*scaledTask, alpha, delta float64, opts Options) (bool, error) {
	// Sort a copy by decreasing priority (lower Priority int = higher
	// priority), tie-broken by original order for determinism.
	byPriority := make([]*scaledTask, len(tasks))
	copy(byPriority, tasks)
	sort.SliceStable(byPriority, func(i, j int) bool { return byPriority[i].Priority < byPriority[j].Priority })

	wcet := make([]float64, len(byPriority))
	periods := make([]float64, len(byPriority))
	for i, t := range byPriority {
		wcet[i], periods[i] = t.WCET, t.Period
	}

	demands := make([]kernel.Demand, len(byPriority))
	for i, t := range byPriority {
		demands[i] = kernel.Demand{WCET: t.WCET, Deadline: t.Deadline, Period: t.Period}
	}

	for i, t := range byPriority {
		R, converged := fpsHorizonSingle(wcet, periods, t.Deadline, i, opts.MaxFixedPointIterations)
		if !converged {
			return false, nil
		}
		checkpoints := fpsCheckpoints(periods, t.Deadline, i, R)
		for _, ckpt := range checkpoints {
			demand := kernel.DbfFPS(demands, ckpt, i)
			supply := kernel.SbfBDR(alpha, delta, ckpt)
			if demand > supply+tolerance {
				return false, nil
			}
		}
	}
	return true, nil
}

// fpsCheckpoints returns {k*Tj | 0 < k*Tj <= L} for every j <= i, plus
// Di itself, sorted and deduplicated — per spec §4.B step 3.
func fpsCheckpoints(periods []float64, deadline float64, i int, L float64) []float64 {
	seen := map[float64]bool{deadline: true}
	points := []float64{deadline}
	for j := 0; j <= i; j++ {
		for k := 1; ; k++ {
			point := float64(k) * periods[j]
			if point > L {
				break
			}
			if !seen[point] {
				seen[point] = true
				points = append(points, point)
			}
		}
	}
	sort.Float64s(points)
	return points
}

// IsHorizonExceeded reports whether err wraps hsim.ErrHorizonExceeded.
func IsHorizonExceeded(err error) bool {
	return errors.Is(err, hsim.ErrHorizonExceeded)
}
