// SPDX-License-Identifier: MIT

package nll

import (
	"log/slog"

	"github.com/katalvlaran/binnll/integrate"
	"github.com/katalvlaran/binnll/metrics"
	"github.com/katalvlaran/binnll/model"
)

// DefaultWorkers is the default number of partitions per evaluation.
const DefaultWorkers = 1

// Options holds evaluator settings. Invalid combinations are reported by
// NewEvaluator and Create as ErrConfiguration.
type Options struct {
	Name string

	// Explicit observable range; HasRange marks it as set.
	HasRange bool
	RangeLo  float64
	RangeHi  float64

	// RangeName selects a named range of the observable. Create accepts
	// a comma-separated list; NewEvaluator a single name.
	RangeName string

	Extended   ExtendedMode
	Workers    int
	Split      Split
	Offset     bool
	SumW2Error bool
	Strict     bool

	// Integrator forces a backend; nil selects analytical when possible
	// and adaptive otherwise.
	Integrator        *integrate.Kind
	IntegratorOptions []integrate.Option

	Logger      *slog.Logger
	Metrics     *metrics.Recorder
	Constraints []model.Constraint
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		Extended: ExtendedAuto,
		Workers:  DefaultWorkers,
		Split:    SplitContiguous,
		Logger:   slog.New(slog.DiscardHandler),
	}
}

// WithName names the evaluator; the default is "nll_" + the model name.
func WithName(name string) Option {
	return func(o *Options) { o.Name = name }
}

// WithRange restricts the evaluation to the bins inside [lo, hi].
// It conflicts with WithRangeName.
func WithRange(lo, hi float64) Option {
	return func(o *Options) { o.HasRange, o.RangeLo, o.RangeHi = true, lo, hi }
}

// WithRangeName restricts the evaluation to a named observable range.
func WithRangeName(name string) Option {
	return func(o *Options) { o.RangeName = name }
}

// WithExtended selects the extended mode.
func WithExtended(m ExtendedMode) Option {
	return func(o *Options) { o.Extended = m }
}

// WithWorkers sets the number of partitions per evaluation (>= 1).
func WithWorkers(n int) Option {
	return func(o *Options) { o.Workers = n }
}

// WithSplit selects the partitioning strategy.
func WithSplit(s Split) Option {
	return func(o *Options) { o.Split = s }
}

// WithOffsetting enables likelihood offsetting.
func WithOffsetting(on bool) Option {
	return func(o *Options) { o.Offset = on }
}

// WithSumW2Error corrects the extended term for weighted data using the
// sum of squared weights.
func WithSumW2Error(on bool) Option {
	return func(o *Options) { o.SumW2Error = on }
}

// WithStrictIntegration turns integration degradation into an error.
func WithStrictIntegration(on bool) Option {
	return func(o *Options) { o.Strict = on }
}

// WithIntegrator forces a backend kind.
func WithIntegrator(k integrate.Kind) Option {
	return func(o *Options) { o.Integrator = &k }
}

// WithIntegratorOptions passes tolerances to the numeric backends.
func WithIntegratorOptions(opts ...integrate.Option) Option {
	return func(o *Options) { o.IntegratorOptions = append(o.IntegratorOptions, opts...) }
}

// WithLogger sets the logger. A nil logger discards.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l == nil {
			l = slog.New(slog.DiscardHandler)
		}
		o.Logger = l
	}
}

// WithMetrics records evaluations into r.
func WithMetrics(r *metrics.Recorder) Option {
	return func(o *Options) { o.Metrics = r }
}

// WithExternalConstraints adds constraint terms not attached to the model.
// Only Create uses them.
func WithExternalConstraints(cs ...model.Constraint) Option {
	return func(o *Options) { o.Constraints = append(o.Constraints, cs...) }
}

// gatherOptions applies opts over the defaults.
func gatherOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
