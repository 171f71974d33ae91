package simulate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adas-hsim/adas-hsim/hsim"
)

func responseOf(r *Report, taskID string) (TaskResponseTime, bool) {
	for _, rt := range r.TaskResponseTimes {
		if rt.TaskID == taskID {
			return rt, true
		}
	}
	return TaskResponseTime{}, false
}

func utilizationOf(r *Report, componentID string) (ComponentUtilization, bool) {
	for _, u := range r.ComponentUtilizations {
		if u.ComponentID == componentID {
			return u, true
		}
	}
	return ComponentUtilization{}, false
}

// Scenario 1 (spec §8): EDF root, tau1(2,5,5), tau2(2,10,10), horizon 100.
func TestSimulate_Scenario1_NoMissesUtilizationPoint6(t *testing.T) {
	root := &hsim.Component{
		ID: "core-A-root", Name: "root", Algorithm: hsim.EDF,
		Tasks: []*hsim.Task{
			{ID: "t1", WCET: 2, Deadline: 5, Kind: hsim.PeriodicTask{Period: 5}},
			{ID: "t2", WCET: 2, Deadline: 10, Kind: hsim.PeriodicTask{Period: 10}},
		},
	}
	model := &hsim.SystemModel{
		Cores:          []*hsim.Core{{ID: "A", Name: "A", PerformanceFactor: 1}},
		RootComponents: []*hsim.Component{root},
	}
	require.NoError(t, model.Validate())

	report, err := Simulate(context.Background(), model, 100, Options{})
	require.NoError(t, err)

	rt1, ok := responseOf(report, "t1")
	require.True(t, ok)
	assert.Equal(t, 0, rt1.MissedDeadlines)
	rt2, ok := responseOf(report, "t2")
	require.True(t, ok)
	assert.Equal(t, 0, rt2.MissedDeadlines)

	util, ok := utilizationOf(report, "core-A-root")
	require.True(t, ok)
	assert.InDelta(t, 0.6, util.Utilization, 0.02)
	assert.Equal(t, 1.0, util.AllocatedUtilization)
}

// Scenario 4 (spec §8): FPS root {tau1(p=1,WCET=3,T=10), tau2(p=2,WCET=6,T=15,D=15)}.
func TestSimulate_Scenario4_FPSMaxResponseTimeForLowerPriorityTask(t *testing.T) {
	root := &hsim.Component{
		ID: "core-A-root", Name: "root", Algorithm: hsim.FPS,
		Tasks: []*hsim.Task{
			{ID: "t1", WCET: 3, Deadline: 10, Priority: 1, Kind: hsim.PeriodicTask{Period: 10}},
			{ID: "t2", WCET: 6, Deadline: 15, Priority: 2, Kind: hsim.PeriodicTask{Period: 15}},
		},
	}
	model := &hsim.SystemModel{
		Cores:          []*hsim.Core{{ID: "A", Name: "A", PerformanceFactor: 1}},
		RootComponents: []*hsim.Component{root},
	}
	require.NoError(t, model.Validate())

	report, err := Simulate(context.Background(), model, 60, Options{})
	require.NoError(t, err)

	rt2, ok := responseOf(report, "t2")
	require.True(t, ok)
	assert.Equal(t, 0, rt2.MissedDeadlines)
	assert.InDelta(t, 9.0, rt2.Max, 1e-6)
}

// Scenario 6 (spec §8): over-subscription. Single EDF task (WCET=8,T=10,
// D=10) with root alpha pinned to 0.5 via a child carrying that interface
// must accumulate missed deadlines.
func TestSimulate_Scenario6_OversubscribedChildMissesDeadlines(t *testing.T) {
	child := &hsim.Component{
		ID: "leaf", Name: "leaf", Algorithm: hsim.EDF,
		Tasks: []*hsim.Task{{ID: "t", WCET: 8, Deadline: 10, Kind: hsim.PeriodicTask{Period: 10}}},
	}
	child.SetInterface(0.5, 0)
	root := &hsim.Component{ID: "core-A-root", Name: "root", Algorithm: hsim.EDF, Children: []*hsim.Component{child}}
	model := &hsim.SystemModel{
		Cores:          []*hsim.Core{{ID: "A", Name: "A", PerformanceFactor: 1}},
		RootComponents: []*hsim.Component{root},
	}
	require.NoError(t, model.Validate())

	report, err := Simulate(context.Background(), model, 100, Options{})
	require.NoError(t, err)

	rt, ok := responseOf(report, "t")
	require.True(t, ok)
	assert.Greater(t, rt.MissedDeadlines, 0)
}

// The active job is never in its own component's readyQueue (it was
// removed the instant it was dispatched), so re-selecting it on every
// dispatch() call requires selectFrom to consider it explicitly. Without
// that, tau2 (priority 2) would wrongly preempt the already-running
// tau1 (priority 1) the moment tau2 arrives, even though FPS never
// preempts a higher-priority job for a lower-priority one.
func TestSimulate_Scenario4_HigherPriorityNeverPreemptedByLowerPriorityArrival(t *testing.T) {
	root := &hsim.Component{
		ID: "core-A-root", Name: "root", Algorithm: hsim.FPS,
		Tasks: []*hsim.Task{
			{ID: "t1", WCET: 3, Deadline: 10, Priority: 1, Kind: hsim.PeriodicTask{Period: 10}},
			{ID: "t2", WCET: 6, Deadline: 15, Priority: 2, Kind: hsim.PeriodicTask{Period: 15}},
		},
	}
	model := &hsim.SystemModel{
		Cores:          []*hsim.Core{{ID: "A", Name: "A", PerformanceFactor: 1}},
		RootComponents: []*hsim.Component{root},
	}
	require.NoError(t, model.Validate())

	report, err := Simulate(context.Background(), model, 3, Options{IncludeExecutionLogs: true})
	require.NoError(t, err)

	var t1Slices []ExecutionLogRecord
	for _, rec := range report.ExecutionLogs {
		if rec.TaskID == "t1" {
			t1Slices = append(t1Slices, rec)
		}
	}
	require.Len(t, t1Slices, 1, "t1 must run to completion in one slice, never preempted by the lower-priority t2 arrival")
	assert.InDelta(t, 0.0, t1Slices[0].StartTime, 1e-9)
	assert.InDelta(t, 3.0, t1Slices[0].EndTime, 1e-9)
}

// A supply-start/supply-end toggle on one component must have zero
// effect on a job actively running in an unrelated sibling component.
// Component "a" is dedicated (always available); component "b" carries
// a windowed interface whose supply toggles every 0.5 time units but
// whose own task's deadline is far later than a's, so b can never win
// arbitration against a's running job — any preemption observed here is
// spurious.
func TestSimulate_SiblingSupplyToggle_DoesNotPreemptUnrelatedActiveJob(t *testing.T) {
	a := &hsim.Component{
		ID: "a", Name: "a", Algorithm: hsim.EDF,
		Tasks: []*hsim.Task{{ID: "ta", WCET: 5, Deadline: 20, Kind: hsim.PeriodicTask{Period: 1000}}},
	}
	a.SetInterface(1, 0)
	b := &hsim.Component{
		ID: "b", Name: "b", Algorithm: hsim.EDF,
		Tasks: []*hsim.Task{{ID: "tb", WCET: 1, Deadline: 1000, Kind: hsim.PeriodicTask{Period: 1000}}},
	}
	b.SetInterface(0.5, 0) // Q=0.5, P=1 -> a supply-start/supply-end pair every 0.5 units
	root := &hsim.Component{ID: "core-A-root", Name: "root", Algorithm: hsim.EDF, Children: []*hsim.Component{a, b}}
	model := &hsim.SystemModel{
		Cores:          []*hsim.Core{{ID: "A", Name: "A", PerformanceFactor: 1}},
		RootComponents: []*hsim.Component{root},
	}
	require.NoError(t, model.Validate())

	report, err := Simulate(context.Background(), model, 6, Options{IncludeExecutionLogs: true})
	require.NoError(t, err)

	var aSlices []ExecutionLogRecord
	for _, rec := range report.ExecutionLogs {
		if rec.TaskID == "ta" {
			aSlices = append(aSlices, rec)
		}
	}
	require.Len(t, aSlices, 1, "ta must run to completion in one slice, unaffected by b's unrelated supply toggling")
	assert.InDelta(t, 0.0, aSlices[0].StartTime, 1e-9)
	assert.InDelta(t, 5.0, aSlices[0].EndTime, 1e-9)
}

func TestSimulate_Determinism_IdenticalRunsProduceIdenticalLogs(t *testing.T) {
	build := func() *hsim.SystemModel {
		root := &hsim.Component{
			ID: "core-A-root", Name: "root", Algorithm: hsim.EDF,
			Tasks: []*hsim.Task{
				{ID: "t1", WCET: 2, Deadline: 5, Kind: hsim.PeriodicTask{Period: 5}},
				{ID: "t2", WCET: 2, Deadline: 10, Kind: hsim.PeriodicTask{Period: 10}},
			},
		}
		return &hsim.SystemModel{
			Cores:          []*hsim.Core{{ID: "A", Name: "A", PerformanceFactor: 1}},
			RootComponents: []*hsim.Component{root},
		}
	}

	m1, m2 := build(), build()
	require.NoError(t, m1.Validate())
	require.NoError(t, m2.Validate())

	r1, err := Simulate(context.Background(), m1, 50, Options{IncludeExecutionLogs: true})
	require.NoError(t, err)
	r2, err := Simulate(context.Background(), m2, 50, Options{IncludeExecutionLogs: true})
	require.NoError(t, err)

	require.Equal(t, len(r1.ExecutionLogs), len(r2.ExecutionLogs))
	for i := range r1.ExecutionLogs {
		assert.Equal(t, r1.ExecutionLogs[i], r2.ExecutionLogs[i])
	}
}

func TestSimulate_Cancellation_ReturnsTruncatedPartialResults(t *testing.T) {
	root := &hsim.Component{
		ID: "core-A-root", Name: "root", Algorithm: hsim.EDF,
		Tasks: []*hsim.Task{{ID: "t1", WCET: 2, Deadline: 5, Kind: hsim.PeriodicTask{Period: 5}}},
	}
	model := &hsim.SystemModel{
		Cores:          []*hsim.Core{{ID: "A", Name: "A", PerformanceFactor: 1}},
		RootComponents: []*hsim.Component{root},
	}
	require.NoError(t, model.Validate())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := Simulate(ctx, model, 1000, Options{})
	require.NoError(t, err)
	assert.True(t, report.Truncated)
}

func TestSimulate_InvalidModel_ReturnsErrorBeforeRunning(t *testing.T) {
	_, err := Simulate(context.Background(), &hsim.SystemModel{}, 10, Options{})
	require.Error(t, err)
}

// Scenario 5 (spec §8): hierarchical child with a synthesized windowed
// interface (alpha=0.75, delta=10 -> Q=15, P=20, off=5). A single long
// job (WCET=28) needs more than one supply window to finish: it runs
// [0,15) in the first window, is preempted by the supply-end, resumes
// at the next supply-start (t=20) with remaining=13, and completes at
// t=33 — inside the SECOND window, strictly before that window's own
// supply-end at t=35.
//
// The job's first dispatch (at t=0) scheduled a completion event for
// t=28 (0+28), which is now stale: the job was preempted at t=15 with
// 13 units left and redispatched at t=20, pushing its real completion
// to t=33. Because the job is active again by t=28 (it isn't preempted
// a second time until t=35), a staleness check that only compares
// sim.active against the job pointer cannot tell the stale t=28 event
// apart from the job's real, current dispatch — it would fire while the
// job is "active", truncating the run at t=28 with a too-short response
// time and dropping the last 5 units of real work.
func TestSimulate_Scenario5_ResumeAcrossSupplyWindowBeforeStaleCompletion(t *testing.T) {
	child := &hsim.Component{
		ID: "leaf", Name: "leaf", Algorithm: hsim.EDF,
		Tasks: []*hsim.Task{{ID: "tau", WCET: 28, Deadline: 1000, Kind: hsim.PeriodicTask{Period: 1000}}},
	}
	child.SetInterface(0.75, 10)
	root := &hsim.Component{ID: "core-A-root", Name: "root", Algorithm: hsim.EDF, Children: []*hsim.Component{child}}
	model := &hsim.SystemModel{
		Cores:          []*hsim.Core{{ID: "A", Name: "A", PerformanceFactor: 1}},
		RootComponents: []*hsim.Component{root},
	}
	require.NoError(t, model.Validate())

	report, err := Simulate(context.Background(), model, 40, Options{IncludeExecutionLogs: true})
	require.NoError(t, err)

	rt, ok := responseOf(report, "tau")
	require.True(t, ok)
	assert.Equal(t, 0, rt.MissedDeadlines)
	assert.InDelta(t, 33.0, rt.Max, 1e-9)

	var slices []ExecutionLogRecord
	for _, rec := range report.ExecutionLogs {
		if rec.TaskID == "tau" {
			slices = append(slices, rec)
		}
	}
	require.Len(t, slices, 2)
	assert.InDelta(t, 0.0, slices[0].StartTime, 1e-9)
	assert.InDelta(t, 15.0, slices[0].EndTime, 1e-9)
	assert.InDelta(t, 20.0, slices[1].StartTime, 1e-9)
	assert.InDelta(t, 33.0, slices[1].EndTime, 1e-9)
}

func TestSimulate_DeadlineMissBound_NeverExceedsCeilHorizonOverPeriod(t *testing.T) {
	child := &hsim.Component{
		ID: "leaf", Name: "leaf", Algorithm: hsim.EDF,
		Tasks: []*hsim.Task{{ID: "t", WCET: 8, Deadline: 10, Kind: hsim.PeriodicTask{Period: 10}}},
	}
	child.SetInterface(0.5, 0)
	root := &hsim.Component{ID: "core-A-root", Name: "root", Algorithm: hsim.EDF, Children: []*hsim.Component{child}}
	model := &hsim.SystemModel{
		Cores:          []*hsim.Core{{ID: "A", Name: "A", PerformanceFactor: 1}},
		RootComponents: []*hsim.Component{root},
	}
	require.NoError(t, model.Validate())

	horizon := 97.0
	report, err := Simulate(context.Background(), model, horizon, Options{})
	require.NoError(t, err)

	rt, ok := responseOf(report, "t")
	require.True(t, ok)
	// spec §8 property 6: missedDeadlines(T) <= ceil(T/period).
	assert.LessOrEqual(t, rt.MissedDeadlines, 10) // ceil(97/10) == 10
}
