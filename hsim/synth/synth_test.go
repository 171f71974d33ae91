package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adas-hsim/adas-hsim/hsim"
)

func oneRootModel(root *hsim.Component, perf float64) *hsim.SystemModel {
	root.ID = "core-A-root"
	return &hsim.SystemModel{
		Cores:          []*hsim.Core{{ID: "A", Name: "A", PerformanceFactor: perf}},
		RootComponents: []*hsim.Component{root},
	}
}

// Scenario 1 (spec §8): tau1(2,5,5), tau2(2,10,10) on an EDF root, p=1.
func TestSynthesize_Scenario1_RootSchedulable(t *testing.T) {
	root := &hsim.Component{
		Name: "root", Algorithm: hsim.EDF,
		Tasks: []*hsim.Task{
			{ID: "t1", WCET: 2, Deadline: 5, Kind: hsim.PeriodicTask{Period: 5}},
			{ID: "t2", WCET: 2, Deadline: 10, Kind: hsim.PeriodicTask{Period: 10}},
		},
	}
	report, err := Synthesize(oneRootModel(root, 1), DefaultOptions())
	require.NoError(t, err)
	assert.True(t, report.IsSchedulable)
	require.Len(t, report.ComponentInterfaces, 1)
	assert.Equal(t, "core-A-root", report.ComponentInterfaces[0].ComponentID)
	assert.Equal(t, 1.0, report.ComponentInterfaces[0].Alpha)
}

// Scenario 2: tau1.WCET raised to 4 -> full utilization, still reported
// schedulable at root alpha=1.
func TestSynthesize_Scenario2_FullUtilizationSchedulable(t *testing.T) {
	root := &hsim.Component{
		Name: "root", Algorithm: hsim.EDF,
		Tasks: []*hsim.Task{
			{ID: "t1", WCET: 4, Deadline: 5, Kind: hsim.PeriodicTask{Period: 5}},
			{ID: "t2", WCET: 2, Deadline: 10, Kind: hsim.PeriodicTask{Period: 10}},
		},
	}
	report, err := Synthesize(oneRootModel(root, 1), DefaultOptions())
	require.NoError(t, err)
	assert.True(t, report.IsSchedulable)
}

// Scenario 6: single EDF task (WCET=8,T=10,D=10) with alpha pinned low on
// a non-root component must be reported infeasible.
func TestSynthesize_Scenario6_InfeasibleChildReported(t *testing.T) {
	child := &hsim.Component{
		ID: "leaf", Name: "leaf", Algorithm: hsim.EDF,
		Tasks: []*hsim.Task{{ID: "t", WCET: 8, Deadline: 10, Kind: hsim.PeriodicTask{Period: 10}}},
	}
	child.SetInterface(0.5, 0)
	root := &hsim.Component{Name: "root", Algorithm: hsim.EDF, Children: []*hsim.Component{child}}
	report, err := Synthesize(oneRootModel(root, 1), DefaultOptions())
	require.NoError(t, err)
	assert.False(t, report.IsSchedulable)

	var leafResult *ComponentInterface
	for i := range report.ComponentInterfaces {
		if report.ComponentInterfaces[i].ComponentID == "leaf" {
			leafResult = &report.ComponentInterfaces[i]
		}
	}
	require.NotNil(t, leafResult)
	assert.False(t, leafResult.IsSchedulable)
}

// Scenario 5 (spec §8): a child with a pre-pinned interface (alpha=0.4,
// delta=50) hosting a sporadic task (WCET=8, D=80, MIT=100) realizes a
// (Q=40, P=100) periodic server and is schedulable.
func TestSynthesize_Scenario5_PinnedChildInterfaceRealizesExpectedServer(t *testing.T) {
	child := &hsim.Component{
		ID: "perception", Name: "perception", Algorithm: hsim.EDF,
		Tasks: []*hsim.Task{{ID: "t", WCET: 8, Deadline: 80, Kind: hsim.SporadicTask{MinInterArrival: 100}}},
	}
	child.SetInterface(0.4, 50)
	root := &hsim.Component{Name: "root", Algorithm: hsim.EDF, Children: []*hsim.Component{child}}
	report, err := Synthesize(oneRootModel(root, 1), DefaultOptions())
	require.NoError(t, err)
	assert.True(t, report.IsSchedulable)

	var childResult ComponentInterface
	for _, ci := range report.ComponentInterfaces {
		if ci.ComponentID == "perception" {
			childResult = ci
		}
	}
	assert.InDelta(t, 40.0, childResult.SupplyBudget, 1e-9)
	assert.InDelta(t, 100.0, childResult.SupplyPeriod, 1e-9)

	// The child's supply task must now appear in the parent's demand.
	var found bool
	for _, task := range root.Tasks {
		if task.SyntheticSupplyTask && task.ID == "perception-supply" {
			found = true
			assert.InDelta(t, 40.0, task.WCET, 1e-9)
			assert.InDelta(t, 100.0, task.Kind.PeriodOrMIT(), 1e-9)
		}
	}
	assert.True(t, found, "expected a synthetic supply task injected into the parent")
}

func TestSynthesize_EmptyComponent_TriviallySchedulable(t *testing.T) {
	child := &hsim.Component{ID: "idle", Name: "idle", Algorithm: hsim.EDF}
	root := &hsim.Component{Name: "root", Algorithm: hsim.EDF, Children: []*hsim.Component{child}}
	report, err := Synthesize(oneRootModel(root, 1), DefaultOptions())
	require.NoError(t, err)
	assert.True(t, report.IsSchedulable)
}

func TestSynthesizeTwice_Idempotent(t *testing.T) {
	root := &hsim.Component{
		Name: "root", Algorithm: hsim.EDF,
		Tasks: []*hsim.Task{
			{ID: "t1", WCET: 2, Deadline: 5, Kind: hsim.PeriodicTask{Period: 5}},
			{ID: "t2", WCET: 2, Deadline: 10, Kind: hsim.PeriodicTask{Period: 10}},
		},
	}
	model := oneRootModel(root, 1)
	_, _, agree, err := SynthesizeTwice(model, DefaultOptions())
	require.NoError(t, err)
	assert.True(t, agree)
}

func TestSynthesize_InvalidModel_ReturnsErrorBeforeAnyComputation(t *testing.T) {
	_, err := Synthesize(&hsim.SystemModel{}, DefaultOptions())
	require.Error(t, err)
}
