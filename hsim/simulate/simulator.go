package simulate

import (
	"context"

	"github.com/adas-hsim/adas-hsim/hsim"
)

// tolerance matches the absolute slack hsim/kernel and hsim/feasibility
// use for equality/inequality comparisons in the same domain, per
// spec §9.
const tolerance = 1e-9

// Simulator drives one root component's subtree through a deterministic
// event-driven run. Build one with newSimulator per root; Simulate
// orchestrates one Simulator per root component in a SystemModel.
type Simulator struct {
	root    *hsim.Component
	perf    float64
	horizon float64

	queues    map[string]*readyQueue
	available map[string]bool

	events *eventQueue
	seq    int64
	now    float64

	active           *Job
	activeDispatched float64

	instanceSeq map[string]int64

	metrics *metricsAccumulator
	trace   []ExecutionLogRecord

	truncated bool
}

func newSimulator(root *hsim.Component, perf, horizon float64) *Simulator {
	return &Simulator{
		root:        root,
		perf:        perf,
		horizon:     horizon,
		queues:      make(map[string]*readyQueue),
		available:   make(map[string]bool),
		events:      newEventQueue(),
		instanceSeq: make(map[string]int64),
		metrics:     newMetricsAccumulator(),
	}
}

func (sim *Simulator) nextSeq() int64 {
	sim.seq++
	return sim.seq
}

// run initializes all state and processes events until the queue drains,
// the horizon is reached, or ctx is cancelled.
func (sim *Simulator) run(ctx context.Context) {
	sim.initialize()
	for !sim.events.empty() {
		if err := ctx.Err(); err != nil {
			sim.truncated = true
			return
		}
		e := sim.events.pop()
		if e.Time() > sim.horizon {
			return
		}
		sim.now = e.Time()
		e.Execute(sim)
	}
}

// walkSubtree calls fn for every component in c's subtree, pre-order.
func walkSubtree(c *hsim.Component, fn func(*hsim.Component)) {
	fn(c)
	for _, ch := range c.Children {
		walkSubtree(ch, fn)
	}
}

func (sim *Simulator) initialize() {
	walkSubtree(sim.root, func(c *hsim.Component) {
		sim.queues[c.ID] = &readyQueue{}
		if c.IsRoot || c.Alpha >= 1-tolerance {
			sim.available[c.ID] = true
		} else {
			sim.available[c.ID] = false
			for _, ev := range generateWindows(c, sim.horizon, sim.nextSeq) {
				sim.events.push(ev)
			}
		}
		for _, t := range c.Tasks {
			sim.events.push(&arrivalEvent{baseEvent{time: 0, seq: sim.nextSeq()}, t, c})
		}
	})
}

func (sim *Simulator) handleArrival(e *arrivalEvent) {
	task, comp := e.task, e.comp

	seq := sim.instanceSeq[task.ID]
	sim.instanceSeq[task.ID] = seq + 1

	job := &Job{
		TaskID:      task.ID,
		InstanceSeq: seq,
		Task:        task,
		Component:   comp,
		ArrivalTime: sim.now,
		Deadline:    sim.now + task.Deadline,
		Remaining:   task.WCET / sim.perf,
	}
	sim.queues[comp.ID].push(job)
	sim.events.push(&deadlineEvent{baseEvent{time: job.Deadline, seq: sim.nextSeq()}, job})

	if next := task.Kind.NextArrival(sim.now); next <= sim.horizon {
		sim.events.push(&arrivalEvent{baseEvent{time: next, seq: sim.nextSeq()}, task, comp})
	}

	sim.dispatch()
}

func (sim *Simulator) handleDeadline(e *deadlineEvent) {
	job := e.job
	pending := sim.active == job || sim.queues[job.Component.ID].contains(job)
	if pending {
		sim.metrics.recordMissedDeadline(job.TaskID)
	}
}

func (sim *Simulator) handleCompletion(e *completionEvent) {
	job := e.job
	if sim.active != job || e.generation != job.generation {
		return // superseded by a preemption, or belongs to an earlier dispatch of this same job
	}
	sim.finishSlice(job, sim.now)
	job.Remaining = 0
	sim.metrics.recordResponseTime(job.TaskID, sim.now-job.ArrivalTime)
	sim.active = nil
	sim.dispatch()
}

func (sim *Simulator) handleSupplyStart(e *supplyStartEvent) {
	sim.available[e.comp.ID] = true
	sim.dispatch()
}

func (sim *Simulator) handleSupplyEnd(e *supplyEndEvent) {
	sim.available[e.comp.ID] = false
	sim.dispatch()
}

// dispatch re-selects the job that should be executing right now and
// reconciles it against sim.active, per spec §4.D steps 1-4. Because it
// is called after every state-changing event, it is the single place
// preemption and resumption happen — supply-end handlers don't need to
// special-case "does this affect the active job", dispatch notices on
// its own when the active job is no longer selectable.
func (sim *Simulator) dispatch() {
	next := sim.selectFrom(sim.root)
	if next == sim.active {
		return
	}
	if sim.active != nil {
		sim.preempt(sim.active)
	}
	if next != nil {
		sim.startExecuting(next)
	}
}

// selectFrom walks c's subtree, applying c's own scheduling algorithm to
// decide between c's own head-of-queue job and each available child's
// recursively selected candidate — "a correct implementation walks the
// tree root-down picking the next subtree at each level" (spec §4.D
// step 3). Returns nil if c (or an ancestor already excluded by the
// caller) has no eligible job right now.
func (sim *Simulator) selectFrom(c *hsim.Component) *Job {
	if !sim.available[c.ID] {
		return nil
	}
	best := sim.queues[c.ID].peekBest(c.Algorithm)
	// The job actively executing here isn't in this component's
	// readyQueue (startExecuting removed it), so it has to be
	// reconsidered explicitly or it is structurally invisible to its own
	// re-selection and dispatch() preempts it unconditionally on every
	// call. Only replace it with a queued candidate that is genuinely
	// preferred.
	if active := sim.active; active != nil && active.Component == c {
		if best == nil || preferred(c.Algorithm, active, best) {
			best = active
		}
	}
	for _, ch := range c.Children {
		if cand := sim.selectFrom(ch); cand != nil {
			if best == nil || preferred(c.Algorithm, cand, best) {
				best = cand
			}
		}
	}
	return best
}

func (sim *Simulator) startExecuting(job *Job) {
	sim.queues[job.Component.ID].remove(job)
	sim.active = job
	sim.activeDispatched = sim.now
	job.generation++
	sim.events.push(&completionEvent{baseEvent{time: sim.now + job.Remaining, seq: sim.nextSeq()}, job, job.generation})
}

func (sim *Simulator) preempt(job *Job) {
	sim.finishSlice(job, sim.now)
	sim.queues[job.Component.ID].push(job)
	sim.active = nil
}

// finishSlice accounts for the contiguous execution slice [activeDispatched,
// end) of job: deducts it from the job's remaining work, credits the
// component's executed time, and emits the trace record.
func (sim *Simulator) finishSlice(job *Job, end float64) {
	executed := end - sim.activeDispatched
	if executed < 0 {
		executed = 0
	}
	job.Remaining -= executed
	if job.Remaining < 0 {
		job.Remaining = 0
	}
	sim.metrics.addExecutedTime(job.Component.ID, executed)
	sim.trace = append(sim.trace, ExecutionLogRecord{
		TaskID:         job.TaskID,
		ComponentID:    job.Component.ID,
		InstanceID:     job.InstanceSeq,
		ArrivalTime:    job.ArrivalTime,
		StartTime:      sim.activeDispatched,
		EndTime:        end,
		Deadline:       job.Deadline,
		MissedDeadline: end > job.Deadline+tolerance,
	})
}

func (sim *Simulator) report(includeLogs bool) *Report {
	r := &Report{SimulationTime: sim.horizon, Truncated: sim.truncated}
	for taskID, s := range sim.metrics.tasks {
		r.TaskResponseTimes = append(r.TaskResponseTimes, TaskResponseTime{
			TaskID: taskID, Avg: s.avg(), Max: s.max, MissedDeadlines: s.missedDeadlines,
		})
	}

	walkSubtree(sim.root, func(c *hsim.Component) {
		executed := sim.metrics.executedTime[c.ID]
		allocated := c.Alpha
		if c.IsRoot {
			allocated = 1
		}
		r.ComponentUtilizations = append(r.ComponentUtilizations, ComponentUtilization{
			ComponentID: c.ID, Utilization: executed / sim.horizon, AllocatedUtilization: allocated,
		})
	})

	if includeLogs {
		r.ExecutionLogs = sim.trace
	}
	return r
}

func (q *readyQueue) contains(job *Job) bool {
	for _, j := range q.jobs {
		if j == job {
			return true
		}
	}
	return false
}
