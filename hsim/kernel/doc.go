// Package kernel implements the pure Demand/Supply Kernel: the Demand
// Bound Function (DBF) under EDF and FPS, the Supply Bound Function
// (SBF) for a Bounded-Delay Resource, and the Half-Half transform from a
// BDR interface to a periodic server.
//
// Every function here is pure: no logging, no allocation beyond what the
// caller passes in, no dependency on the hsim model types (callers adapt
// their own task lists into the small Demand value this package expects).
// That mirrors the purity the teacher repo demands of its own roofline
// and latency math, where the numerically sensitive core stays free of
// side effects so it is trivially testable in isolation.
package kernel
