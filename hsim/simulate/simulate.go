package simulate

import (
	"context"

	"github.com/adas-hsim/adas-hsim/hsim"
)

// Options tunes a simulation run. The zero value is usable: logs are
// omitted by default since a long horizon can generate a very large
// execution log.
type Options struct {
	// IncludeExecutionLogs controls whether Report.ExecutionLogs is
	// populated, per spec §6 ("executionLogs?").
	IncludeExecutionLogs bool
}

// Simulate runs the deterministic event-driven simulation described in
// spec.md §4.D over model for the given horizon. One Simulator instance
// handles each root component's subtree — "a multi-core system runs one
// simulator instance per root" — and their results are merged into a
// single Report; task and component ids are unique system-wide (model
// validation enforces this), so merging is a plain concatenation.
//
// ctx is checked between events; on cancellation the run stops early and
// returns partial results with Report.Truncated = true, per spec §5.
func Simulate(ctx context.Context, model *hsim.SystemModel, horizon float64, opts Options) (*Report, error) {
	if err := model.Validate(); err != nil {
		return nil, err
	}

	merged := &Report{SimulationTime: horizon}
	for _, root := range model.RootComponents {
		perf := 1.0
		if core := model.CoreByID(root.CoreID); core != nil {
			perf = core.PerformanceFactor
		}

		sim := newSimulator(root, perf, horizon)
		sim.run(ctx)
		r := sim.report(opts.IncludeExecutionLogs)

		merged.TaskResponseTimes = append(merged.TaskResponseTimes, r.TaskResponseTimes...)
		merged.ComponentUtilizations = append(merged.ComponentUtilizations, r.ComponentUtilizations...)
		merged.ExecutionLogs = append(merged.ExecutionLogs, r.ExecutionLogs...)
		if r.Truncated {
			merged.Truncated = true
		}

		if ctx.Err() != nil {
			break
		}
	}
	return merged, nil
}
