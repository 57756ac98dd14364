// SPDX-License-Identifier: MIT

package integrate

import "math"

// Defaults shared by the numeric backends.
const (
	// DefaultRelTol is the relative tolerance.
	DefaultRelTol = 1e-4

	// DefaultAbsTol is the absolute tolerance (0: relative only).
	DefaultAbsTol = 0.0

	// DefaultMaxIntervals caps adaptive subintervals.
	DefaultMaxIntervals = 100

	// DefaultLevels is the number of Romberg extrapolation levels.
	DefaultLevels = 8

	// maxLevels bounds the Romberg workspace at 2^20+1 samples.
	maxLevels = 20
)

const (
	panicRelTolInvalid       = "integrate: WithRelTol: tolerance must be finite and non-negative"
	panicAbsTolInvalid       = "integrate: WithAbsTol: tolerance must be finite and non-negative"
	panicMaxIntervalsInvalid = "integrate: WithMaxIntervals: limit must be >= 1"
	panicLevelsInvalid       = "integrate: WithLevels: levels must be in [2, 20]"
)

// Options holds numeric backend settings.
type Options struct {
	RelTol       float64
	AbsTol       float64
	MaxIntervals int
	Levels       int
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		RelTol:       DefaultRelTol,
		AbsTol:       DefaultAbsTol,
		MaxIntervals: DefaultMaxIntervals,
		Levels:       DefaultLevels,
	}
}

// WithRelTol sets the relative tolerance. Panics on negative or
// non-finite values.
func WithRelTol(tol float64) Option {
	if tol < 0 || math.IsNaN(tol) || math.IsInf(tol, 0) {
		panic(panicRelTolInvalid)
	}

	return func(o *Options) { o.RelTol = tol }
}

// WithAbsTol sets the absolute tolerance. Panics on negative or
// non-finite values.
func WithAbsTol(tol float64) Option {
	if tol < 0 || math.IsNaN(tol) || math.IsInf(tol, 0) {
		panic(panicAbsTolInvalid)
	}

	return func(o *Options) { o.AbsTol = tol }
}

// WithMaxIntervals caps the adaptive subdivision. Panics when n < 1.
func WithMaxIntervals(n int) Option {
	if n < 1 {
		panic(panicMaxIntervalsInvalid)
	}

	return func(o *Options) { o.MaxIntervals = n }
}

// WithLevels sets the Romberg extrapolation depth. Panics outside [2, 20].
func WithLevels(n int) Option {
	if n < 2 || n > maxLevels {
		panic(panicLevelsInvalid)
	}

	return func(o *Options) { o.Levels = n }
}

func gatherOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	return o
}

// tolerance returns the accepted absolute error for an estimate.
func (o Options) tolerance(estimate float64) float64 {
	return math.Max(o.AbsTol, o.RelTol*math.Abs(estimate))
}
