// SPDX-License-Identifier: MIT

package kahan

// Sum is a compensated running sum. The zero value is an empty sum.
//
// Sum is not safe for concurrent use; partitions own private accumulators
// and merge them with AddCompensated once they complete.
type Sum struct {
	sum   float64 // running total
	carry float64 // accumulated rounding error, subtracted on the next Add
}

// New returns an accumulator seeded with an existing (sum, carry) pair.
func New(sum, carry float64) Sum {
	return Sum{sum: sum, carry: carry}
}

// Add adds x to the running total.
//
// Implementation:
//   - Stage 1: y = x − carry   (re-inject previously lost low-order bits)
//   - Stage 2: t = sum + y     (large + small, low bits of y may be lost)
//   - Stage 3: carry = (t − sum) − y (recover what was lost, algebraically 0)
//   - Stage 4: sum = t
//
// Complexity: O(1).
func (s *Sum) Add(x float64) {
	y := x - s.carry
	t := s.sum + y
	s.carry = (t - s.sum) - y
	s.sum = t
}

// Sub subtracts x from the running total using the same compensation.
func (s *Sum) Sub(x float64) {
	s.Add(-x)
}

// AddCompensated adds another compensated pair to s. The pair represents
// the exact value (value − carry), as produced by Result and Carry of a
// second accumulator; both correction terms survive the merge.
//
// Subtracting a stored pair (offset, offsetCarry) is
// AddCompensated(-offset, -offsetCarry).
func (s *Sum) AddCompensated(value, carry float64) {
	y := value - (s.carry + carry)
	t := s.sum + y
	s.carry = (t - s.sum) - y
	s.sum = t
}

// Merge adds another accumulator into s.
func (s *Sum) Merge(o Sum) {
	s.AddCompensated(o.sum, o.carry)
}

// Result returns the compensated total.
func (s Sum) Result() float64 { return s.sum }

// Carry returns the current correction term.
func (s Sum) Carry() float64 { return s.carry }

// Reset clears the accumulator.
func (s *Sum) Reset() { s.sum, s.carry = 0, 0 }

// Accumulate returns the compensated sum of xs.
func Accumulate(xs []float64) Sum {
	var s Sum
	for _, x := range xs {
		s.Add(x)
	}

	return s
}

// Naive returns the uncompensated left-to-right sum of xs.
// It exists as a reference for accuracy comparisons.
func Naive(xs []float64) float64 {
	var total float64
	for _, x := range xs {
		total += x
	}

	return total
}
