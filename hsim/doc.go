// Package hsim provides the core data model for the hierarchical BDR
// scheduling system: cores, tasks, components, and the system model that
// binds them together.
//
// # Reading Guide
//
// Start with these three files to understand the model:
//   - task.go: Task and its periodic/sporadic variant (Kind)
//   - component.go: Component, the scheduling discipline, and the (α, Δ) interface
//   - system.go: SystemModel, core binding, and structural validation
//
// # Architecture
//
// hsim defines only the data model and the error kinds raised against it
// (errors.go). The algorithms that operate on this model live in
// sub-packages, mirroring how a scheduling simulator separates "what is
// modeled" from "what is computed over the model":
//   - hsim/kernel: pure DBF/SBF/Half-Half math (4.A)
//   - hsim/feasibility: the DBF ≤ SBF schedulability test (4.B)
//   - hsim/synth: bottom-up (α, Δ) interface synthesis (4.C)
//   - hsim/simulate: the event-driven scheduler (4.D)
//   - hsim/ingest: JSON/CSV model ingestion
//   - hsim/gen: deterministic sample-model generation
package hsim
