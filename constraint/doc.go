// SPDX-License-Identifier: MIT

// Package constraint collects the constraint terms attached to the
// components of a composite model and sums them into one additive NLL
// term.
//
// Collect walks every distinct component once (by name), asks components
// that carry constraints for their terms and returns the union,
// deduplicated by term name in order of first occurrence. It runs once,
// when the likelihood is built.
//
// Sum snapshots the values of the chosen global observables at
// construction; later changes to those variables (e.g. toy generation)
// do not leak into the objective.
package constraint
