// SPDX-License-Identifier: MIT

// Package metrics exposes Prometheus instruments for likelihood
// evaluation: evaluation counts, partition latency, integration
// degradation and offset captures.
//
// A Recorder registers against a caller-supplied prometheus.Registerer so
// that several fits in one process can use separate registries. A nil
// *Recorder is valid and records nothing.
package metrics
