package gen

import (
	"gopkg.in/yaml.v3"

	"github.com/adas-hsim/adas-hsim/hsim"
)

// Sample returns a small, deterministic system model: one core at
// reference performance, one EDF root component with two periodic
// tasks — tau1(WCET=2, D=5, T=5) and tau2(WCET=2, D=10, T=10) — the
// literal end-to-end scenario #1 in spec.md §8. Utilization is 0.6,
// well within a dedicated core's capacity.
func Sample() *hsim.SystemModel {
	root := &hsim.Component{
		ID:        "core-A-root",
		Name:      "perception-root",
		Algorithm: hsim.EDF,
		Tasks: []*hsim.Task{
			{ID: "tau1", Name: "lane-detect", WCET: 2, Deadline: 5, Kind: hsim.PeriodicTask{Period: 5}},
			{ID: "tau2", Name: "obstacle-track", WCET: 2, Deadline: 10, Kind: hsim.PeriodicTask{Period: 10}},
		},
	}
	return &hsim.SystemModel{
		Cores:          []*hsim.Core{{ID: "A", Name: "main-ecu", PerformanceFactor: 1}},
		RootComponents: []*hsim.Component{root},
	}
}

// SampleHierarchical returns a two-level model — an EDF root hosting a
// perception child component with its own synthesized interface — the
// literal end-to-end scenario #5 in spec.md §8: child (alpha=0.4,
// delta=50) hosting tau(WCET=8, D=80, MIT=100).
func SampleHierarchical() *hsim.SystemModel {
	child := &hsim.Component{
		ID:        "perception",
		Name:      "perception",
		Algorithm: hsim.EDF,
		Tasks: []*hsim.Task{
			{ID: "tau", Name: "object-detect", WCET: 8, Deadline: 80, Kind: hsim.SporadicTask{MinInterArrival: 100}},
		},
	}
	child.SetInterface(0.4, 50)

	root := &hsim.Component{
		ID:        "core-A-root",
		Name:      "platform-root",
		Algorithm: hsim.EDF,
		Children:  []*hsim.Component{child},
	}
	return &hsim.SystemModel{
		Cores:          []*hsim.Core{{ID: "A", Name: "main-ecu", PerformanceFactor: 1}},
		RootComponents: []*hsim.Component{root},
	}
}

// YAML marshals model the way `cmd sample --format yaml` presents it —
// the plain Go struct shape, not the ingest wire schema.
func YAML(model *hsim.SystemModel) ([]byte, error) {
	return yaml.Marshal(model)
}
