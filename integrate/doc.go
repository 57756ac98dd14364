// SPDX-License-Identifier: MIT

// Package integrate computes expected bin counts: the integral of a model
// density over one bin.
//
// 🚀 Backends:
//
//	Adaptive   — Gauss–Legendre pair (10/21 points) on bisected subintervals;
//	             abs tol 0, rel tol 1e-4, at most 100 subintervals.
//	Romberg    — Richardson extrapolation of trapezoid sums on 2^k+1 samples,
//	             rel tol 1e-4, 8 levels.
//	Analytical — a precomputed closed-form integral expression whose two
//	             bound variables are set to the bin edges.
//
// ✨ Selection:
//
//	HasFullAnalyticalIntegral walks additive composites and requires every
//	leaf to report a nonzero analytical-integral code. One numeric leaf
//	anywhere forces the numeric backend for the whole model.
//
// Every backend owns its workspace; use one backend per goroutine. A
// Factory hands out fresh instances for parallel workers.
//
// Non-convergence is not an error: the best estimate is returned and
// Status reports the error estimate.
package integrate
