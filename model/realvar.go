// SPDX-License-Identifier: MIT

package model

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/binnll/binning"
)

// RealVar is a named real-valued variable: an observable, a fit parameter,
// a global observable or an auxiliary integration bound.
//
// A RealVar is not synchronised; mutate it only between evaluations.
type RealVar struct {
	name     string
	value    float64
	min, max float64
	constant bool
	attrs    map[string]struct{}
	ranges   map[string][2]float64
	bins     *binning.Binning
}

// NewRealVar returns a variable with the given value and limits.
// Infinite limits are allowed for unbounded parameters.
func NewRealVar(name string, value, min, max float64) *RealVar {
	return &RealVar{name: name, value: value, min: min, max: max}
}

// NewConstant returns a constant variable fixed at value.
func NewConstant(name string, value float64) *RealVar {
	v := NewRealVar(name, value, value, value)
	v.constant = true

	return v
}

// Name returns the variable name.
func (v *RealVar) Name() string { return v.name }

// Value returns the current value.
func (v *RealVar) Value() float64 { return v.value }

// SetValue sets the current value. No clamping is applied.
func (v *RealVar) SetValue(x float64) { v.value = x }

// Min returns the lower limit.
func (v *RealVar) Min() float64 { return v.min }

// Max returns the upper limit.
func (v *RealVar) Max() float64 { return v.max }

// IsConstant reports whether the variable is fixed.
func (v *RealVar) IsConstant() bool { return v.constant }

// SetConstant fixes or releases the variable.
func (v *RealVar) SetConstant(c bool) { v.constant = c }

// SetAttribute tags the variable (e.g. "global_observable").
func (v *RealVar) SetAttribute(tag string) {
	if v.attrs == nil {
		v.attrs = make(map[string]struct{})
	}
	v.attrs[tag] = struct{}{}
}

// HasAttribute reports whether the variable carries tag.
func (v *RealVar) HasAttribute(tag string) bool {
	_, ok := v.attrs[tag]

	return ok
}

// SetRange defines the named range [lo, hi]. The empty name redefines the
// limits of the variable.
func (v *RealVar) SetRange(name string, lo, hi float64) error {
	if math.IsNaN(lo) || math.IsNaN(hi) || lo >= hi {
		return fmt.Errorf("range %q [%g, %g]: %w", name, lo, hi, ErrBadParameter)
	}
	if name == "" {
		v.min, v.max = lo, hi

		return nil
	}
	if v.ranges == nil {
		v.ranges = make(map[string][2]float64)
	}
	v.ranges[name] = [2]float64{lo, hi}

	return nil
}

// Range returns the limits of the named range; "" returns [Min, Max].
func (v *RealVar) Range(name string) (lo, hi float64, err error) {
	if name == "" {
		return v.min, v.max, nil
	}
	r, ok := v.ranges[name]
	if !ok {
		return 0, 0, fmt.Errorf("%s: range %q: %w", v.name, name, ErrUnknownRange)
	}

	return r[0], r[1], nil
}

// HasRange reports whether the named range exists ("" always exists).
func (v *RealVar) HasRange(name string) bool {
	if name == "" {
		return true
	}
	_, ok := v.ranges[name]

	return ok
}

// RangeNames returns the defined range names in sorted order.
func (v *RealVar) RangeNames() []string {
	names := make([]string, 0, len(v.ranges))
	for n := range v.ranges {
		names = append(names, n)
	}
	sort.Strings(names)

	return names
}

// SetBinning attaches a binning and sets the limits to its edges. A
// binning without bins is attached but leaves the limits unchanged;
// consumers reject it with binning.ErrEmptyBinning.
func (v *RealVar) SetBinning(b binning.Binning) {
	v.bins = &b
	if b.NumBins() == 0 {
		return
	}
	v.min, v.max = b.Low(), b.High()
}

// Binning returns the attached binning.
func (v *RealVar) Binning() (binning.Binning, error) {
	if v.bins == nil {
		return binning.Binning{}, fmt.Errorf("%s: %w", v.name, ErrNoBinning)
	}

	return *v.bins, nil
}

// String implements fmt.Stringer.
func (v *RealVar) String() string {
	return fmt.Sprintf("%s=%g", v.name, v.value)
}
