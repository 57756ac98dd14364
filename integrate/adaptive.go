// SPDX-License-Identifier: MIT

package integrate

import (
	"math"

	"gonum.org/v1/gonum/integrate/quad"
)

// Gauss–Legendre orders of the embedded rule pair.
const (
	lowOrder  = 10
	highOrder = 21
)

// segment is one subinterval of the adaptive workspace.
type segment struct {
	a, b   float64
	value  float64
	absErr float64
}

// Adaptive integrates f with globally adaptive bisection. Each subinterval
// is integrated with a 10- and a 21-point Gauss–Legendre rule; their
// difference is the error estimate. The subinterval with the largest
// error is bisected until the total error meets the tolerance or
// MaxIntervals subintervals exist.
type Adaptive struct {
	f    func(float64) float64
	opts Options

	// reference nodes and weights on [-1, 1]
	xLow, wLow   []float64
	xHigh, wHigh []float64

	work   []segment
	status Status
}

var _ Backend = (*Adaptive)(nil)

// NewAdaptive returns an adaptive backend for f with its own workspace.
func NewAdaptive(f func(float64) float64, opts ...Option) *Adaptive {
	o := gatherOptions(opts)
	a := &Adaptive{
		f:     f,
		opts:  o,
		xLow:  make([]float64, lowOrder),
		wLow:  make([]float64, lowOrder),
		xHigh: make([]float64, highOrder),
		wHigh: make([]float64, highOrder),
		work:  make([]segment, 0, o.MaxIntervals),
	}
	quad.Legendre{}.FixedLocations(a.xLow, a.wLow, -1, 1)
	quad.Legendre{}.FixedLocations(a.xHigh, a.wHigh, -1, 1)

	return a
}

// Kind implements Backend.
func (a *Adaptive) Kind() Kind { return KindAdaptive }

// Status implements Backend.
func (a *Adaptive) Status() Status { return a.status }

// Integrate implements Backend.
//
// Implementation:
//   - Stage 1: apply the rule pair to [lo, hi].
//   - Stage 2: while the summed error exceeds max(AbsTol, RelTol·|I|) and
//     the workspace has room, bisect the worst subinterval.
//   - Stage 3: return Σ values; Status carries Σ errors and convergence.
//
// Complexity: O(MaxIntervals·(lowOrder+highOrder)) evaluations, no allocation.
func (a *Adaptive) Integrate(lo, hi float64) float64 {
	a.work = a.work[:0]
	a.status = Status{}
	if lo == hi {
		a.status.Converged = true

		return 0
	}

	a.work = append(a.work, a.rule(lo, hi))
	value, absErr := a.totals()
	for absErr > a.opts.tolerance(value) && len(a.work) < a.opts.MaxIntervals {
		worst := a.worst()
		s := a.work[worst]
		mid := 0.5 * (s.a + s.b)
		if mid <= s.a || mid >= s.b {
			break // interval no longer divisible in float64
		}
		a.work[worst] = a.rule(s.a, mid)
		a.work = append(a.work, a.rule(mid, s.b))
		value, absErr = a.totals()
	}

	a.status.AbsErr = absErr
	a.status.Converged = absErr <= a.opts.tolerance(value)
	a.status.Intervals = len(a.work)

	return value
}

// rule applies both Gauss–Legendre rules to [lo, hi].
func (a *Adaptive) rule(lo, hi float64) segment {
	c, h := 0.5*(lo+hi), 0.5*(hi-lo)
	low, high := 0.0, 0.0
	for i, x := range a.xLow {
		low += a.wLow[i] * a.f(c+h*x)
	}
	for i, x := range a.xHigh {
		high += a.wHigh[i] * a.f(c+h*x)
	}
	a.status.Evaluations += lowOrder + highOrder
	high *= h
	low *= h

	return segment{a: lo, b: hi, value: high, absErr: math.Abs(high - low)}
}

// totals sums values and errors over the workspace.
func (a *Adaptive) totals() (value, absErr float64) {
	for _, s := range a.work {
		value += s.value
		absErr += s.absErr
	}

	return value, absErr
}

// worst returns the index of the subinterval with the largest error.
func (a *Adaptive) worst() int {
	idx := 0
	for i := 1; i < len(a.work); i++ {
		if a.work[i].absErr > a.work[idx].absErr {
			idx = i
		}
	}

	return idx
}
