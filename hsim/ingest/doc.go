// Package ingest builds hsim.SystemModel values from the two wire
// formats spec.md §6 defines: the authoritative JSON schema, and a
// flat CSV task table for quick one-off task sets. Ingestion only
// checks the presence of the top-level arrays the schema requires —
// every other invariant (non-positive WCET, unbound roots, duplicate
// ids, and so on) is hsim.SystemModel.Validate's responsibility, run by
// the synthesizer or simulator before any computation.
package ingest
