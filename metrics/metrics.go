// SPDX-License-Identifier: MIT

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "binnll"

// Recorder holds the likelihood instruments.
type Recorder struct {
	evaluations *prometheus.CounterVec
	partitions  *prometheus.HistogramVec
	degraded    *prometheus.CounterVec
	offsets     *prometheus.CounterVec
}

// NewRecorder creates the instruments and registers them with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	r := &Recorder{
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluations_total",
			Help:      "Total number of full likelihood evaluations",
		}, []string{"evaluator"}),
		partitions: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "partition_seconds",
			Help:      "Duration of a single partition evaluation",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}, []string{"evaluator"}),
		degraded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "integration_degraded_total",
			Help:      "Bins whose integral did not reach the tolerance",
		}, []string{"backend"}),
		offsets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "offset_captures_total",
			Help:      "Number of likelihood offset captures",
		}, []string{"evaluator"}),
	}
	for _, c := range []prometheus.Collector{r.evaluations, r.partitions, r.degraded, r.offsets} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Evaluation counts one full evaluation of evaluator.
func (r *Recorder) Evaluation(evaluator string) {
	if r == nil {
		return
	}
	r.evaluations.WithLabelValues(evaluator).Inc()
}

// Partition observes the duration of one partition.
func (r *Recorder) Partition(evaluator string, d time.Duration) {
	if r == nil {
		return
	}
	r.partitions.WithLabelValues(evaluator).Observe(d.Seconds())
}

// Degraded counts n non-converged bin integrals of backend.
func (r *Recorder) Degraded(backend string, n int) {
	if r == nil || n == 0 {
		return
	}
	r.degraded.WithLabelValues(backend).Add(float64(n))
}

// OffsetCaptured counts an offset capture of evaluator.
func (r *Recorder) OffsetCaptured(evaluator string) {
	if r == nil {
		return
	}
	r.offsets.WithLabelValues(evaluator).Inc()
}

// EvaluationsCounter exposes the evaluation counter for inspection.
func (r *Recorder) EvaluationsCounter(evaluator string) prometheus.Counter {
	return r.evaluations.WithLabelValues(evaluator)
}

// DegradedCounter exposes the degradation counter for inspection.
func (r *Recorder) DegradedCounter(backend string) prometheus.Counter {
	return r.degraded.WithLabelValues(backend)
}

// OffsetCounter exposes the offset capture counter for inspection.
func (r *Recorder) OffsetCounter(evaluator string) prometheus.Counter {
	return r.offsets.WithLabelValues(evaluator)
}
