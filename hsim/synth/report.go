package synth

import "fmt"

// ComponentInterface is one component's synthesized BDR interface and
// the periodic server that realizes it, per spec §6.
type ComponentInterface struct {
	ComponentID   string
	Alpha         float64
	Delta         float64
	SupplyBudget  float64 // Q, from Half-Half(Alpha, Delta)
	SupplyPeriod  float64 // P, from Half-Half(Alpha, Delta)
	IsSchedulable bool
	// Inconclusive is set when no definite verdict was reached: the
	// feasibility test hit its horizon cap, or the Delta binary search
	// did not narrow to Epsilon within MaxBinarySearchIterations. The
	// first such alpha trial ends the search for that component.
	Inconclusive bool
}

// String returns a human-readable representation of the interface.
func (ci ComponentInterface) String() string {
	return fmt.Sprintf("ComponentInterface(ID: %s, Alpha: %.4f, Delta: %.4f, Q: %.4f, P: %.4f, Schedulable: %v)",
		ci.ComponentID, ci.Alpha, ci.Delta, ci.SupplyBudget, ci.SupplyPeriod, ci.IsSchedulable)
}

// Report is the output of Synthesize: whether the whole system is
// schedulable and the per-component interfaces that back that verdict,
// per spec §6 AnalysisResults.
type Report struct {
	IsSchedulable       bool
	ComponentInterfaces []ComponentInterface
	Timestamp           string
}
