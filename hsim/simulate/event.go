package simulate

import "github.com/adas-hsim/adas-hsim/hsim"

// Tiebreak classes order same-timestamp events deterministically, per
// spec.md §4.D: "supply-end < arrival < deadline < supply-start <
// completion". Supply revocation must be observed before new supply
// begins at the same instant; deadlines are checked after arrivals are
// queued.
const (
	tiebreakSupplyEnd = iota
	tiebreakArrival
	tiebreakDeadline
	tiebreakSupplyStart
	tiebreakCompletion
)

// Event is a single occurrence on the simulator's timeline. Implementors
// carry their own tiebreak class and the insertion-order sequence number
// that breaks ties within a class, per §5 "FIFO by insertion order".
type Event interface {
	Time() float64
	TiebreakClass() int
	Seq() int64
	Execute(sim *Simulator)
}

type baseEvent struct {
	time float64
	seq  int64
}

func (b baseEvent) Time() float64 { return b.time }
func (b baseEvent) Seq() int64    { return b.seq }

type arrivalEvent struct {
	baseEvent
	task *hsim.Task
	comp *hsim.Component
}

func (arrivalEvent) TiebreakClass() int      { return tiebreakArrival }
func (e *arrivalEvent) Execute(sim *Simulator) { sim.handleArrival(e) }

type deadlineEvent struct {
	baseEvent
	job *Job
}

func (deadlineEvent) TiebreakClass() int      { return tiebreakDeadline }
func (e *deadlineEvent) Execute(sim *Simulator) { sim.handleDeadline(e) }

type completionEvent struct {
	baseEvent
	job        *Job
	generation int64
}

func (completionEvent) TiebreakClass() int      { return tiebreakCompletion }
func (e *completionEvent) Execute(sim *Simulator) { sim.handleCompletion(e) }

type supplyStartEvent struct {
	baseEvent
	comp *hsim.Component
}

func (supplyStartEvent) TiebreakClass() int      { return tiebreakSupplyStart }
func (e *supplyStartEvent) Execute(sim *Simulator) { sim.handleSupplyStart(e) }

type supplyEndEvent struct {
	baseEvent
	comp *hsim.Component
}

func (supplyEndEvent) TiebreakClass() int      { return tiebreakSupplyEnd }
func (e *supplyEndEvent) Execute(sim *Simulator) { sim.handleSupplyEnd(e) }
