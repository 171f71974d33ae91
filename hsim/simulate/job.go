package simulate

import (
	"fmt"

	"github.com/adas-hsim/adas-hsim/hsim"
)

// Job is one instance of a task's execution. Jobs are keyed by
// (TaskID, InstanceSeq) rather than a random id, so a deadline event
// closing over a specific job is never mis-attributed to a later
// instance of the same task if the earlier one is still running under
// preemption (resolves an ambiguity noted in spec.md §9).
type Job struct {
	TaskID      string
	InstanceSeq int64
	Task        *hsim.Task
	Component   *hsim.Component
	ArrivalTime float64
	Deadline    float64
	Remaining   float64

	// generation counts this job's dispatches. It is bumped each time
	// the job starts executing, and stamped onto the completionEvent
	// scheduled for that dispatch, so a completion event left over from
	// an earlier dispatch (preempted, then redispatched before its own
	// stale completion time elapses) can be told apart from the
	// completion event belonging to the job's current dispatch, even
	// though sim.active is the same *Job pointer* both times.
	generation int64
}

// String returns a human-readable representation of the job.
func (j *Job) String() string {
	return fmt.Sprintf("Job(%s#%d, remaining=%.3f, deadline=%.3f)", j.TaskID, j.InstanceSeq, j.Remaining, j.Deadline)
}
