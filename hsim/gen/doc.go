// Package gen synthesizes small, deterministic sample SystemModels for
// the CLI's `sample` subcommand. Tests in other packages build their
// models inline and do not import it. Sample returns the model from
// spec.md §8 end-to-end scenario #1.
package gen
