// SPDX-License-Identifier: MIT

// Package binning describes the binning of an observable and derives the
// immutable bin table a binned likelihood iterates over.
//
// ✨ Key features:
//   - Binning: uniform or variable-width ordered edges
//   - Table: N+1 strictly increasing boundaries, built once per evaluator
//   - Table.Restrict: keep only the bins that lie inside a range segment
//
// Errors:
//   - ErrEmptyBinning      — no bins (fewer than two edges).
//   - ErrUnorderedBinning  — edges not strictly increasing.
//   - ErrNonFiniteEdge     — NaN or ±Inf edge.
//   - ErrEmptyRange        — a range restriction keeps no bin.
//   - ErrBinOutOfRange     — bin index outside the table.
package binning
