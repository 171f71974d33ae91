package simulate

import (
	"container/heap"

	"github.com/adas-hsim/adas-hsim/hsim"
)

// eventQueue is a container/heap priority queue over Events, ordered by
// (Time, TiebreakClass, Seq) — the total order spec.md §4.D/§5 requires
// for deterministic, byte-identical event logs across runs.
type eventQueue struct {
	items []Event
}

func newEventQueue() *eventQueue {
	q := &eventQueue{}
	heap.Init(q)
	return q
}

func (q *eventQueue) Len() int { return len(q.items) }

func (q *eventQueue) Less(i, j int) bool {
	a, b := q.items[i], q.items[j]
	if a.Time() != b.Time() {
		return a.Time() < b.Time()
	}
	if a.TiebreakClass() != b.TiebreakClass() {
		return a.TiebreakClass() < b.TiebreakClass()
	}
	return a.Seq() < b.Seq()
}

func (q *eventQueue) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }

func (q *eventQueue) Push(x any) { q.items = append(q.items, x.(Event)) }

func (q *eventQueue) Pop() any {
	old := q.items
	n := len(old)
	item := old[n-1]
	q.items = old[:n-1]
	return item
}

func (q *eventQueue) push(e Event) { heap.Push(q, e) }

func (q *eventQueue) pop() Event { return heap.Pop(q).(Event) }

func (q *eventQueue) empty() bool { return len(q.items) == 0 }

// readyQueue holds the jobs waiting to execute for one component.
// Selection is a linear scan rather than a second heap type — component
// task sets are small enough that this is simpler and just as correct.
type readyQueue struct {
	jobs []*Job
}

func (q *readyQueue) push(j *Job) { q.jobs = append(q.jobs, j) }

func (q *readyQueue) remove(j *Job) {
	for i, cand := range q.jobs {
		if cand == j {
			q.jobs = append(q.jobs[:i], q.jobs[i+1:]...)
			return
		}
	}
}

// peekBest returns the highest-priority job under algo without removing
// it, or nil if the queue is empty.
func (q *readyQueue) peekBest(algo hsim.SchedulingAlgorithm) *Job {
	var best *Job
	for _, j := range q.jobs {
		if best == nil || preferred(algo, j, best) {
			best = j
		}
	}
	return best
}

// preferred reports whether a should be dispatched ahead of b under algo.
func preferred(algo hsim.SchedulingAlgorithm, a, b *Job) bool {
	switch algo {
	case hsim.FPS:
		if a.Task.Priority != b.Task.Priority {
			return a.Task.Priority < b.Task.Priority
		}
	default: // EDF
		if a.Deadline != b.Deadline {
			return a.Deadline < b.Deadline
		}
	}
	if a.TaskID != b.TaskID {
		return a.TaskID < b.TaskID
	}
	return a.InstanceSeq < b.InstanceSeq
}
