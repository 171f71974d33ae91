// Package synth implements the Interface Synthesizer: a post-order walk
// over the component tree that computes, for every non-root component,
// the minimum Bounded-Delay Resource interface (α, Δ) that makes it
// schedulable, and the periodic server (Q, P) that realizes it.
//
// A child's supply task becomes additional demand inside its parent, so
// the walk must finish children before their parent — PostOrder on
// hsim.SystemModel guarantees that order.
package synth
