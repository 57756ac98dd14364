// Package binnll computes binned negative log-likelihoods for fitting
// parametric models to histogram data.
//
// 🚀 What is binnll?
//
//	A concurrent, numerically careful objective for maximum-likelihood fits:
//		• Bin tables: validated boundaries, named and explicit ranges
//		• Models: Gaussian, exponential, polynomial, uniform and generic
//		  leaves, additive sums (fractions or yields), constraint wrappers
//		• Integration: analytical, adaptive Gauss–Legendre, Romberg
//		• Accumulation: Kahan-compensated partition sums
//		• Evaluation: partitioned, parallel, with extended terms and offsetting
//		• Constraints: collection, deduplication, global observable snapshots
//
// Packages:
//
//	kahan/      — compensated summation
//	binning/    — binnings and immutable bin tables
//	model/      — variables, pdfs, histograms and constraint terms
//	integrate/  — expected-count backends and the analytical selector
//	constraint/ — constraint aggregation and the constraint sum
//	nll/        — the partitioned evaluator and the factory
//	metrics/    — Prometheus instruments
//	cmd/binnll  — command line front end
//
// Quick example:
//
//	e, err := nll.NewEvaluator(pdf, hist, nll.WithWorkers(4))
//	v, err := e.Evaluate()
//
//	go get github.com/katalvlaran/binnll
package binnll
