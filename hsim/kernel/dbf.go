package kernel

import "math"

// Demand is the minimal per-task shape the demand-bound functions need:
// worst-case execution time, relative deadline, and the recurrence
// interval (period for a periodic task, MIT for a sporadic one, treated
// as periodic for analysis per spec §3).
type Demand struct {
	WCET     float64
	Deadline float64
	Period   float64
}

// DbfEDF computes the aggregate processor demand under EDF (Baruah) at
// time t: for each task, the number of jobs whose absolute deadline
// falls within [0, t] times its WCET, summed across all tasks.
//
// Right-continuous at deadline epochs: a job's contribution to the
// demand switches on at t == (deadline epoch), not strictly after it —
// demand(tasks, 0) is 0 for any task with D > 0, and demand is
// non-decreasing in t.
func DbfEDF(tasks []Demand, t float64) float64 {
	var demand float64
	for _, task := range tasks {
		demand += dbfEDFSingle(task, t)
	}
	return demand
}

func dbfEDFSingle(task Demand, t float64) float64 {
	if t < task.Deadline {
		return 0
	}
	jobs := math.Floor((t-task.Deadline)/task.Period) + 1
	if jobs < 0 {
		jobs = 0
	}
	return jobs * task.WCET
}

// DbfFPS computes the response-time demand for task i (0-indexed) under
// Fixed-Priority Scheduling, given tasksByPriority sorted in decreasing
// priority (index 0 is the highest-priority task): task i's own WCET
// plus the interference from every higher-priority task j < i, each of
// which can release ceil(t/Tj) jobs within [0, t].
func DbfFPS(tasksByPriority []Demand, t float64, i int) float64 {
	demand := tasksByPriority[i].WCET
	for j := 0; j < i; j++ {
		higher := tasksByPriority[j]
		demand += math.Ceil(t/higher.Period) * higher.WCET
	}
	return demand
}
