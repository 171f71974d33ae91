package hsim

import "errors"

// Error kinds raised against the model, per the error handling design.
// Validation errors (ErrInvalidModel, ErrUnboundComponent, ErrDuplicateID)
// are fatal and returned before any computation. ErrInfeasible is
// surfaced as a negative analysis result by the synthesizer, not
// propagated as a fatal error. ErrHorizonExceeded is reported once per
// component by the feasibility tester as an inconclusive result.
// ErrSimulationCancelled signals cooperative cancellation of a run.
//
// Callers match kinds with errors.Is; wrapped context is added with
// fmt.Errorf("...: %w", ErrX).
var (
	// ErrInvalidModel covers missing required fields, non-positive
	// WCET/period/MIT/deadline, α outside (0,1], or Δ < 0.
	ErrInvalidModel = errors.New("invalid model")

	// ErrUnboundComponent signals a root component with no bound core.
	ErrUnboundComponent = errors.New("root component not bound to a core")

	// ErrDuplicateID signals two entities (cores, components, tasks)
	// sharing the same id.
	ErrDuplicateID = errors.New("duplicate id")

	// ErrInfeasible signals that the synthesizer could not find any
	// (α ≤ 1, Δ ≥ 0) satisfying a component, even at α = 1.
	ErrInfeasible = errors.New("component infeasible")

	// ErrHorizonExceeded signals that a feasibility test would require a
	// horizon exceeding the implementation cap.
	ErrHorizonExceeded = errors.New("horizon exceeded")

	// ErrSimulationCancelled signals cooperative cancellation mid-run.
	ErrSimulationCancelled = errors.New("simulation cancelled")
)
