// SPDX-License-Identifier: MIT

// Package nll computes the binned negative log-likelihood of a model
// against histogram data.
//
// 🚀 What it does
//
//   - Evaluator: the partitioned NLL over a bin table. Each bin contributes
//     the masked term −n·log(μ), where μ is the integral of the model
//     density over the bin. Terms are summed with Kahan compensation.
//   - Extended term: added exactly once per evaluation, by the partition
//     whose first bin is 0.
//   - Offsetting: the first nonzero result is captured and subtracted from
//     every later result, keeping the objective near zero.
//   - Create: the factory. It decodes a Config, splits comma-separated
//     range names into one evaluator per range, selects an integration
//     backend per range and adds the constraint sum.
//
// ⚙️ Concurrency
//
// Evaluate splits the bins into NumWorkers contiguous or interleaved
// partitions and evaluates them concurrently. Every worker owns a private
// backend and accumulator; partition results are merged only after all of
// them completed. EvaluatePartition may be called concurrently on disjoint
// ranges. Model parameters must not change during an evaluation.
//
// ⚠️ Errors
//
//   - ErrConfiguration: conflicting or invalid options, unknown names.
//   - ErrStructural: missing or degenerate binning.
//   - ErrIntegrationDegraded: only with WithStrictIntegration.
//   - ErrZeroSumWeights: the sum-of-weights-squared correction on empty data.
//   - ErrBadPartition: a partition outside the bin table.
package nll
