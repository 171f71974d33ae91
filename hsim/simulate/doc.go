// Package simulate implements the deterministic, event-driven simulator
// described in spec.md §4.D: given a synthesized SystemModel and a
// horizon, it replays task arrivals, resource supply windows, and
// dispatch decisions to produce response times, deadline-miss counts,
// and per-component utilization.
//
// One Simulator instance handles one root component's subtree, which the
// model assumes runs on a single dedicated core; Simulate runs one
// instance per root component and merges their results.
package simulate
