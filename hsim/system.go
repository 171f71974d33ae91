package hsim

import (
	"fmt"
	"strings"
)

// SystemModel is the full input to the analyzer: a set of cores and a
// set of root components, each root bound to exactly one core. Every
// core hosts zero or one root component.
//
// Lifecycle: the model is created by ingestion, mutated only by the
// interface synthesizer (which writes Alpha/Delta into each non-root
// component), then consumed read-only by the simulator. After
// synthesis, callers must treat the model as immutable.
type SystemModel struct {
	Cores          []*Core
	RootComponents []*Component

	// AllowRelaxedDeadlines disables the WCET<=D and D<=T/MIT invariant
	// checks during validation, per spec §3 ("unless explicitly relaxed").
	AllowRelaxedDeadlines bool
}

// CoreByID returns the core with the given id, or nil if none matches.
func (m *SystemModel) CoreByID(id string) *Core {
	for _, c := range m.Cores {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// Walk calls fn for every component in the tree, pre-order, root-down.
// Stops early and returns fn's error if fn returns non-nil.
func (m *SystemModel) Walk(fn func(*Component) error) error {
	var visit func(*Component) error
	visit = func(c *Component) error {
		if err := fn(c); err != nil {
			return err
		}
		for _, ch := range c.Children {
			if err := visit(ch); err != nil {
				return err
			}
		}
		return nil
	}
	for _, root := range m.RootComponents {
		if err := visit(root); err != nil {
			return err
		}
	}
	return nil
}

// PostOrder returns every component in the tree in post-order
// (children before their parent), the order the interface synthesizer
// must visit components in: a child's synthesized supply task has to
// exist before its parent's demand can be computed. Implemented with an
// explicit stack rather than recursion so pathologically deep component
// trees don't risk exhausting the goroutine stack.
func (m *SystemModel) PostOrder() []*Component {
	var order []*Component
	type frame struct {
		c        *Component
		childIdx int
	}
	for _, root := range m.RootComponents {
		stack := []*frame{{c: root}}
		for len(stack) > 0 {
			top := stack[len(stack)-1]
			if top.childIdx < len(top.c.Children) {
				child := top.c.Children[top.childIdx]
				top.childIdx++
				stack = append(stack, &frame{c: child})
				continue
			}
			order = append(order, top.c)
			stack = stack[:len(stack)-1]
		}
	}
	return order
}

// link wires Parent pointers and IsRoot/CoreID for every component in
// the tree, deriving core binding from either an explicit CoreID on a
// root component or the `core-<coreId>...` id-prefix convention (§6).
func (m *SystemModel) link() {
	for _, root := range m.RootComponents {
		root.IsRoot = true
		root.Parent = nil
		if root.CoreID == "" {
			if id, ok := coreIDFromPrefix(root.ID); ok {
				root.CoreID = id
			}
		}
		root.Alpha, root.Delta = 1, 0
		var linkChildren func(*Component)
		linkChildren = func(c *Component) {
			for _, ch := range c.Children {
				ch.Parent = c
				ch.IsRoot = false
				linkChildren(ch)
			}
		}
		linkChildren(root)
	}
}

// coreIDFromPrefix extracts the core id from a component id of the form
// "core-<coreId>..." (the naming-convention binding described in §6).
func coreIDFromPrefix(componentID string) (string, bool) {
	const prefix = "core-"
	if !strings.HasPrefix(componentID, prefix) {
		return "", false
	}
	rest := componentID[len(prefix):]
	if rest == "" {
		return "", false
	}
	// The coreId is the leading token up to the next '-' or the whole
	// remainder if there is no further separator, e.g. "core-A-root" -> "A".
	if idx := strings.IndexByte(rest, '-'); idx >= 0 {
		return rest[:idx], true
	}
	return rest, true
}

// Validate performs structural validation: non-empty cores/roots,
// duplicate-id detection across cores/components/tasks, and root-to-core
// binding. Per §6, ingestion validates only the presence of the
// cores/rootComponents arrays; everything else here — including the
// numeric per-task invariants — is validated before any computation, as
// the error-handling design requires validation errors to be fatal and
// returned up front.
func (m *SystemModel) Validate() error {
	if len(m.Cores) == 0 {
		return fmt.Errorf("%w: system model has no cores", ErrInvalidModel)
	}
	if len(m.RootComponents) == 0 {
		return fmt.Errorf("%w: system model has no root components", ErrInvalidModel)
	}

	m.link()

	seenIDs := make(map[string]string) // id -> kind, for duplicate detection across all entity types
	for _, c := range m.Cores {
		if err := c.Validate(); err != nil {
			return err
		}
		if err := checkDuplicate(seenIDs, c.ID, "core"); err != nil {
			return err
		}
	}

	coreUsed := make(map[string]string) // coreID -> root component ID that claims it
	var walkErr error
	m.WalkComponents(func(c *Component) {
		if walkErr != nil {
			return
		}
		if err := c.Validate(m.AllowRelaxedDeadlines); err != nil {
			walkErr = err
			return
		}
		if err := checkDuplicate(seenIDs, c.ID, "component"); err != nil {
			walkErr = err
			return
		}
		for _, t := range c.Tasks {
			if err := checkDuplicate(seenIDs, t.ID, "task"); err != nil {
				walkErr = err
				return
			}
		}
		if c.IsRoot {
			if c.CoreID == "" {
				walkErr = fmt.Errorf("%w: root component %q", ErrUnboundComponent, c.ID)
				return
			}
			if m.CoreByID(c.CoreID) == nil {
				walkErr = fmt.Errorf("%w: root component %q references unknown core %q", ErrUnboundComponent, c.ID, c.CoreID)
				return
			}
			if claimant, ok := coreUsed[c.CoreID]; ok {
				walkErr = fmt.Errorf("%w: core %q is claimed by both root components %q and %q", ErrInvalidModel, c.CoreID, claimant, c.ID)
				return
			}
			coreUsed[c.CoreID] = c.ID
		}
	})
	if walkErr != nil {
		return walkErr
	}
	return nil
}

// WalkComponents calls fn for every component in the tree, pre-order.
// Unlike Walk, fn cannot abort the traversal — used by callers (like
// Validate) that accumulate the first error themselves.
func (m *SystemModel) WalkComponents(fn func(*Component)) {
	_ = m.Walk(func(c *Component) error {
		fn(c)
		return nil
	})
}

func checkDuplicate(seen map[string]string, id, kind string) error {
	if id == "" {
		return nil // empty-id is caught by the entity's own Validate
	}
	if prevKind, ok := seen[id]; ok {
		return fmt.Errorf("%w: id %q used by both a %s and a %s", ErrDuplicateID, id, prevKind, kind)
	}
	seen[id] = kind
	return nil
}

// Clone returns a deep copy of the model: every core, component, task,
// and the tree structure are copied, so mutating the clone (as the
// interface synthesizer does) never affects the original and two
// independent runs over the same source model never share state, per
// the concurrency model in spec §5.
func (m *SystemModel) Clone() *SystemModel {
	clone := &SystemModel{AllowRelaxedDeadlines: m.AllowRelaxedDeadlines}
	clone.Cores = make([]*Core, len(m.Cores))
	for i, c := range m.Cores {
		cc := *c
		clone.Cores[i] = &cc
	}
	clone.RootComponents = make([]*Component, len(m.RootComponents))
	for i, root := range m.RootComponents {
		clone.RootComponents[i] = cloneComponent(root)
	}
	clone.link()
	return clone
}

func cloneComponent(c *Component) *Component {
	cc := &Component{
		ID:          c.ID,
		Name:        c.Name,
		Algorithm:   c.Algorithm,
		IsRoot:      c.IsRoot,
		CoreID:      c.CoreID,
		Alpha:       c.Alpha,
		Delta:       c.Delta,
		synthesized: c.synthesized,
	}
	cc.Tasks = make([]*Task, len(c.Tasks))
	for i, t := range c.Tasks {
		tt := *t
		cc.Tasks[i] = &tt
	}
	cc.Children = make([]*Component, len(c.Children))
	for i, ch := range c.Children {
		cc.Children[i] = cloneComponent(ch)
	}
	return cc
}
