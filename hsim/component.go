package hsim

import "fmt"

// SchedulingAlgorithm is the scheduling discipline a Component runs its
// tasks under.
type SchedulingAlgorithm string

const (
	EDF SchedulingAlgorithm = "EDF"
	FPS SchedulingAlgorithm = "FPS"
)

// IsValid reports whether a is a recognized scheduling discipline.
func (a SchedulingAlgorithm) IsValid() bool {
	return a == EDF || a == FPS
}

// Component is a node in the scheduling component tree: it owns tasks,
// may own child components, and (except for the root) carries a
// Bounded-Delay Resource interface (Alpha, Delta) written by the
// interface synthesizer.
type Component struct {
	ID        string
	Name      string
	Algorithm SchedulingAlgorithm
	Tasks     []*Task
	Children  []*Component

	// Parent is nil for root components. Set by SystemModel.Validate and
	// SystemModel.Clone (both through the unexported link step).
	Parent *Component

	// IsRoot is true for components bound directly to a core. A root
	// component's interface is fixed at (Alpha=1, Delta=0) — the core is
	// dedicated to that subtree.
	IsRoot bool

	// CoreID is the id of the core this root component is bound to.
	// Empty for non-root components.
	CoreID string

	// Alpha, Delta are the synthesized BDR interface (α ∈ (0,1], Δ ≥ 0).
	// Zero-valued until the synthesizer visits this component. A root
	// component's interface is always (1, 0) and is never overwritten.
	Alpha float64
	Delta float64

	// synthesized is set once the synthesizer has written Alpha/Delta,
	// distinguishing "not yet visited" (0, 0) from an intentionally
	// pinned infeasible trial value.
	synthesized bool
}

// Synthesized reports whether the interface synthesizer has written an
// (Alpha, Delta) pair onto this component (or it is the root, which is
// fixed from construction).
func (c *Component) Synthesized() bool { return c.IsRoot || c.synthesized }

// SetInterface records the synthesized (alpha, delta) pair for a
// non-root component. Panics if called on a root component — the root's
// interface is fixed and must never be overwritten (see spec §3).
func (c *Component) SetInterface(alpha, delta float64) {
	if c.IsRoot {
		panic(fmt.Sprintf("SetInterface: component %q is root; its interface is fixed at (1, 0)", c.ID))
	}
	c.Alpha = alpha
	c.Delta = delta
	c.synthesized = true
}

// Utilization returns the sum of this component's own tasks' utilization
// (does not recurse into children; callers that need the utilization
// including synthesized child-supply tasks should rely on hsim/synth,
// which appends those tasks into Tasks before computing utilization).
func (c *Component) Utilization() float64 {
	var u float64
	for _, t := range c.Tasks {
		u += t.Utilization()
	}
	return u
}

// MaxDeadline returns the largest relative deadline among this
// component's own tasks, or 0 if it has none.
func (c *Component) MaxDeadline() float64 {
	var d float64
	for _, t := range c.Tasks {
		if t.Deadline > d {
			d = t.Deadline
		}
	}
	return d
}

// String returns a human-readable representation of the component.
func (c *Component) String() string {
	return fmt.Sprintf("Component(ID: %s, Name: %s, Algorithm: %s, Alpha: %.4f, Delta: %.4f, Tasks: %d, Children: %d)",
		c.ID, c.Name, c.Algorithm, c.Alpha, c.Delta, len(c.Tasks), len(c.Children))
}

// Validate checks the component's own fields: non-empty id/algorithm and
// each owned task's own invariants. Tree-shape and cross-entity checks
// (duplicate ids, core binding) are SystemModel's responsibility.
func (c *Component) Validate(relaxDeadlines bool) error {
	if c.ID == "" {
		return fmt.Errorf("%w: component has empty id", ErrInvalidModel)
	}
	if !c.Algorithm.IsValid() {
		return fmt.Errorf("%w: component %q has invalid scheduling algorithm %q", ErrInvalidModel, c.ID, c.Algorithm)
	}
	for _, t := range c.Tasks {
		if err := t.Validate(relaxDeadlines); err != nil {
			return fmt.Errorf("component %q: %w", c.ID, err)
		}
	}
	if !c.IsRoot {
		if c.Alpha != 0 && (c.Alpha <= 0 || c.Alpha > 1) {
			return fmt.Errorf("%w: component %q has alpha %v outside (0,1]", ErrInvalidModel, c.ID, c.Alpha)
		}
		if c.Delta < 0 {
			return fmt.Errorf("%w: component %q has negative delta %v", ErrInvalidModel, c.ID, c.Delta)
		}
	}
	return nil
}
