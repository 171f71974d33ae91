package ingest

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/adas-hsim/adas-hsim/hsim"
)

// jsonModel mirrors the wire schema in spec.md §6.
type jsonModel struct {
	Cores          []jsonCore      `json:"cores"`
	RootComponents []jsonComponent `json:"rootComponents"`
}

type jsonCore struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	PerformanceFactor float64 `json:"performanceFactor"`
}

type jsonComponent struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	SchedulingAlgorithm string          `json:"schedulingAlgorithm"`
	Alpha               *float64        `json:"alpha,omitempty"`
	Delta               *float64        `json:"delta,omitempty"`
	Tasks               []jsonTask      `json:"tasks"`
	ChildComponents     []jsonComponent `json:"childComponents,omitempty"`
}

type jsonTask struct {
	ID                      string   `json:"id"`
	Name                    string   `json:"name"`
	Type                    string   `json:"type"`
	BCET                    *float64 `json:"bcet,omitempty"`
	WCET                    float64  `json:"wcet"`
	Deadline                float64  `json:"deadline"`
	Priority                int      `json:"priority,omitempty"`
	Period                  *float64 `json:"period,omitempty"`
	MinimumInterArrivalTime *float64 `json:"minimumInterArrivalTime,omitempty"`
}

// FromJSON parses r as the SystemModel JSON schema and returns the
// corresponding *hsim.SystemModel. Per spec §6, ingestion only checks
// that cores and rootComponents are both present and non-empty; run
// model.Validate() before use.
func FromJSON(r io.Reader) (*hsim.SystemModel, error) {
	var wire jsonModel
	if err := json.NewDecoder(r).Decode(&wire); err != nil {
		return nil, fmt.Errorf("%w: malformed json: %v", hsim.ErrInvalidModel, err)
	}
	if len(wire.Cores) == 0 {
		return nil, fmt.Errorf("%w: \"cores\" array is missing or empty", hsim.ErrInvalidModel)
	}
	if len(wire.RootComponents) == 0 {
		return nil, fmt.Errorf("%w: \"rootComponents\" array is missing or empty", hsim.ErrInvalidModel)
	}

	model := &hsim.SystemModel{}
	for _, c := range wire.Cores {
		model.Cores = append(model.Cores, &hsim.Core{ID: c.ID, Name: c.Name, PerformanceFactor: c.PerformanceFactor})
	}
	for _, c := range wire.RootComponents {
		model.RootComponents = append(model.RootComponents, toComponent(c))
	}
	return model, nil
}

func toComponent(c jsonComponent) *hsim.Component {
	comp := &hsim.Component{
		ID:        c.ID,
		Name:      c.Name,
		Algorithm: hsim.SchedulingAlgorithm(c.SchedulingAlgorithm),
	}
	for _, t := range c.Tasks {
		comp.Tasks = append(comp.Tasks, toTask(t))
	}
	for _, ch := range c.ChildComponents {
		child := toComponent(ch)
		comp.Children = append(comp.Children, child)
	}
	// A pre-set alpha/delta marks the component as already synthesized,
	// so hsim/synth honors it instead of searching for one — a root's
	// interface is still pinned to (1, 0) by SystemModel.Validate
	// regardless, so applying this to a root is harmless.
	if c.Alpha != nil && c.Delta != nil {
		comp.SetInterface(*c.Alpha, *c.Delta)
	}
	return comp
}

func toTask(t jsonTask) *hsim.Task {
	task := &hsim.Task{
		ID:       t.ID,
		Name:     t.Name,
		WCET:     t.WCET,
		Deadline: t.Deadline,
		Priority: t.Priority,
	}
	if t.BCET != nil {
		task.BCET = *t.BCET
	}
	switch t.Type {
	case "sporadic":
		mit := 0.0
		if t.MinimumInterArrivalTime != nil {
			mit = *t.MinimumInterArrivalTime
		}
		task.Kind = hsim.SporadicTask{MinInterArrival: mit}
	default: // "periodic", or unspecified — resolved by hsim.Task.Validate
		period := 0.0
		if t.Period != nil {
			period = *t.Period
		}
		task.Kind = hsim.PeriodicTask{Period: period}
	}
	return task
}
