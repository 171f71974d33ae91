package hsim

import "fmt"

// TaskKind distinguishes a task's arrival variant — periodic or sporadic —
// and carries the variant-specific math behind a single small interface.
// Re-expressing periodic/sporadic as a tagged variant this way means all
// arrival and horizon arithmetic lives in the Kind accessors rather than
// being duplicated (and risking divergence) across the kernel, the
// feasibility tester, and the simulator.
type TaskKind interface {
	// NextArrival returns the absolute time of the arrival that follows
	// one at prevArrival. For a periodic task this is prevArrival + T;
	// for a sporadic task, prevArrival + MIT (the simulator advances
	// successive sporadic arrivals by exactly the minimum inter-arrival
	// time, per spec — the minimum is the only arrival pattern modeled).
	NextArrival(prevArrival float64) float64

	// PeriodOrMIT returns the task's period (periodic) or minimum
	// inter-arrival time (sporadic) — the value analysis treats as the
	// worst-case recurrence interval.
	PeriodOrMIT() float64

	// String names the variant for logging and error messages.
	String() string
}

// PeriodicTask is a TaskKind whose job k arrives at k*Period.
type PeriodicTask struct {
	Period float64
}

func (p PeriodicTask) NextArrival(prevArrival float64) float64 { return prevArrival + p.Period }
func (p PeriodicTask) PeriodOrMIT() float64                    { return p.Period }
func (p PeriodicTask) String() string                          { return fmt.Sprintf("periodic(T=%.3f)", p.Period) }

// SporadicTask is a TaskKind whose successive arrivals are separated by
// at least MinInterArrival; for analysis it is treated as periodic with
// T = MinInterArrival (the worst case), and the simulator replays
// arrivals spaced exactly MinInterArrival apart.
type SporadicTask struct {
	MinInterArrival float64
}

func (s SporadicTask) NextArrival(prevArrival float64) float64 { return prevArrival + s.MinInterArrival }
func (s SporadicTask) PeriodOrMIT() float64                    { return s.MinInterArrival }
func (s SporadicTask) String() string {
	return fmt.Sprintf("sporadic(MIT=%.3f)", s.MinInterArrival)
}

// Task is a unit of periodic or sporadic work owned by exactly one
// Component. BCET is optional (the simulator and kernel only ever use
// WCET, the reference worst-case execution time); Priority is only
// meaningful under FPS (lower number = higher priority).
type Task struct {
	ID       string
	Name     string
	BCET     float64 // optional, >= 0; zero-value means "not specified"
	WCET     float64 // reference worst-case execution time, > 0
	Deadline float64 // relative deadline D, > 0
	Priority int     // lower = higher priority; only meaningful under FPS
	Kind     TaskKind

	// SyntheticSupplyTask marks a task injected into a parent component
	// by the interface synthesizer to represent a child component's
	// demand for CPU (Half-Half's (Q, P) server), rather than a task
	// present in the original model. See hsim/synth.
	SyntheticSupplyTask bool
}

// Utilization returns WCET / T (periodic) or WCET / MIT (sporadic).
func (t *Task) Utilization() float64 {
	return t.WCET / t.Kind.PeriodOrMIT()
}

// String returns a human-readable representation of the task.
func (t *Task) String() string {
	return fmt.Sprintf("Task(ID: %s, Name: %s, WCET: %.3f, D: %.3f, %s)", t.ID, t.Name, t.WCET, t.Deadline, t.Kind)
}

// Validate checks the task's own invariants: WCET > 0, Deadline > 0,
// BCET in [0, WCET], the period/MIT is > 0, and the constrained-deadline
// invariants WCET <= D and D <= T (or D <= MIT) unless relaxAllowed.
func (t *Task) Validate(relaxAllowed bool) error {
	if t.ID == "" {
		return fmt.Errorf("%w: task has empty id", ErrInvalidModel)
	}
	if t.Kind == nil {
		return fmt.Errorf("%w: task %q has no arrival kind (periodic/sporadic)", ErrInvalidModel, t.ID)
	}
	if t.WCET <= 0 {
		return fmt.Errorf("%w: task %q has non-positive WCET %v", ErrInvalidModel, t.ID, t.WCET)
	}
	if t.BCET < 0 || t.BCET > t.WCET {
		return fmt.Errorf("%w: task %q has BCET %v outside [0, WCET=%v]", ErrInvalidModel, t.ID, t.BCET, t.WCET)
	}
	if t.Deadline <= 0 {
		return fmt.Errorf("%w: task %q has non-positive deadline %v", ErrInvalidModel, t.ID, t.Deadline)
	}
	period := t.Kind.PeriodOrMIT()
	if period <= 0 {
		return fmt.Errorf("%w: task %q has non-positive period/MIT %v", ErrInvalidModel, t.ID, period)
	}
	if !relaxAllowed {
		if t.WCET > t.Deadline {
			return fmt.Errorf("%w: task %q violates WCET <= D (WCET=%v, D=%v)", ErrInvalidModel, t.ID, t.WCET, t.Deadline)
		}
		if t.Deadline > period {
			return fmt.Errorf("%w: task %q violates D <= T/MIT (D=%v, T/MIT=%v)", ErrInvalidModel, t.ID, t.Deadline, period)
		}
	}
	return nil
}
