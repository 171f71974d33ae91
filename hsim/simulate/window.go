package simulate

import (
	"github.com/adas-hsim/adas-hsim/hsim"
	"github.com/adas-hsim/adas-hsim/hsim/kernel"
)

// generateWindows returns the supply-start/supply-end event pairs that
// realize comp's (Alpha, Delta) interface over [0, horizon], per
// spec.md §4.D: cyclic windows [kP, kP+Q), [kP+Q, (k+1)P) from
// Half-Half(Alpha, Delta). This applies for Delta == 0 too: HalfHalf
// falls back to a unit-period duty cycle there, so a Delta == 0
// component with Alpha < 1 still gets a real (if finely sliced) window
// pattern instead of unbounded access.
//
// Only the root, and any component whose Alpha is dedicated (≈ 1), are
// permanently available and generate no windows at all; the caller
// initializes their availability to true directly instead.
func generateWindows(comp *hsim.Component, horizon float64, nextSeq func() int64) []Event {
	if comp.IsRoot || comp.Alpha >= 1-tolerance {
		return nil
	}
	q, p := kernel.HalfHalf(comp.Alpha, comp.Delta)
	if p <= 0 {
		return nil
	}

	var events []Event
	for k := 0; float64(k)*p < horizon; k++ {
		start := float64(k) * p
		end := start + q
		events = append(events, &supplyStartEvent{baseEvent{time: start, seq: nextSeq()}, comp})
		if end < horizon {
			events = append(events, &supplyEndEvent{baseEvent{time: end, seq: nextSeq()}, comp})
		}
	}
	return events
}
