package hsim

import "fmt"

// Core models a single processing unit on the platform. A task with
// reference WCET c executes on a core with performance factor p in
// wall-clock time c/p. Reference performance is p = 1.
type Core struct {
	ID                string
	Name              string
	PerformanceFactor float64
}

// String returns a human-readable representation of the core.
func (c *Core) String() string {
	return fmt.Sprintf("Core(ID: %s, Name: %s, PerformanceFactor: %.3f)", c.ID, c.Name, c.PerformanceFactor)
}

// Validate checks that the core's own fields are well-formed.
// Cross-core checks (duplicate ids) are performed by SystemModel.Validate.
func (c *Core) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("%w: core has empty id", ErrInvalidModel)
	}
	if c.PerformanceFactor <= 0 {
		return fmt.Errorf("%w: core %q has non-positive performance factor %v", ErrInvalidModel, c.ID, c.PerformanceFactor)
	}
	return nil
}
