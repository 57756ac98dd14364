// SPDX-License-Identifier: MIT

// Package model provides the model and dataset services a binned likelihood
// consumes: real variables, probability density functions (leaves and
// additive composites), constraint terms, analytical integral expressions
// and a binned histogram dataset.
//
// Pdfs are evaluated at the current values of their parameters. A pdf never
// mutates a parameter; callers (optimizers, scans) set values between
// evaluations. Evaluation is safe for concurrent use as long as no
// parameter is mutated at the same time.
//
// Building blocks:
//
//	Leaf      — closed-form shapes (Uniform, Exponential, Gaussian, Polynomial)
//	            and Generic user shapes without an analytical integral.
//	Additive  — Σ c_k·pdf_k with yields (extendable) or fractions.
//	Constrained — a pdf with attached constraint terms.
//	Histogram — per-bin weights over the observable's binning.
//
// Errors:
//   - ErrNoBinning            — observable without binning used as histogram axis.
//   - ErrCoefficientCount     — coefficient count neither N nor N−1.
//   - ErrObservableMismatch   — components of a composite over different observables.
//   - ErrNoAnalyticalIntegral — CreateIntegral on a pdf without closed form.
//   - ErrUnknownRange         — named range not defined on the observable.
//   - ErrBadParameter         — invalid leaf construction parameters.
package model
