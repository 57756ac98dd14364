// SPDX-License-Identifier: MIT

package model

import (
	"fmt"
	"math"
)

// Additive is Σ c_k·pdf_k over a common observable.
//
// With one coefficient per component the coefficients are yields: the
// density integrates to Σ c_k and the pdf can be extended. With one
// coefficient less than the component count they are fractions and the
// last fraction is 1 − Σ c_k.
type Additive struct {
	name     string
	x        *RealVar
	pdfs     []Pdf
	coefs    []*RealVar
	yields   bool
	mustExt  bool
	varCache []*RealVar
}

var _ Composite = (*Additive)(nil)

// NewAdditive builds an additive composite. An empty component list is
// allowed and evaluates to zero.
//
// Errors:
//   - ErrCoefficientCount if len(coefs) is neither len(pdfs) nor len(pdfs)−1.
//   - ErrObservableMismatch if components use different observables.
func NewAdditive(name string, pdfs []Pdf, coefs []*RealVar) (*Additive, error) {
	n := len(pdfs)
	if n > 0 && len(coefs) != n && len(coefs) != n-1 {
		return nil, fmt.Errorf("%s: %d pdfs, %d coefficients: %w", name, n, len(coefs), ErrCoefficientCount)
	}
	if n == 0 && len(coefs) != 0 {
		return nil, fmt.Errorf("%s: coefficients without pdfs: %w", name, ErrCoefficientCount)
	}

	var x *RealVar
	for _, p := range pdfs {
		if x == nil {
			x = p.Observable()
			continue
		}
		if p.Observable().Name() != x.Name() {
			return nil, fmt.Errorf("%s: %s vs %s: %w", name, x.Name(), p.Observable().Name(), ErrObservableMismatch)
		}
	}

	a := &Additive{
		name:   name,
		x:      x,
		pdfs:   append([]Pdf(nil), pdfs...),
		coefs:  append([]*RealVar(nil), coefs...),
		yields: n > 0 && len(coefs) == n,
	}
	vars := []*RealVar{}
	if x != nil {
		vars = append(vars, x)
	}
	for _, p := range a.pdfs {
		vars = Union(vars, p.Variables())
	}
	a.varCache = Union(vars, a.coefs)

	return a, nil
}

// NewExtended wraps pdf with an expected-events yield. The result must be
// used in an extended likelihood.
func NewExtended(name string, pdf Pdf, yield *RealVar) (*Additive, error) {
	a, err := NewAdditive(name, []Pdf{pdf}, []*RealVar{yield})
	if err != nil {
		return nil, err
	}
	a.mustExt = true

	return a, nil
}

// Name implements Pdf.
func (a *Additive) Name() string { return a.name }

// Observable implements Pdf.
func (a *Additive) Observable() *RealVar { return a.x }

// Variables implements Pdf.
func (a *Additive) Variables() []*RealVar { return append([]*RealVar(nil), a.varCache...) }

// Components implements Composite.
func (a *Additive) Components() []Pdf { return append([]Pdf(nil), a.pdfs...) }

// Coefficients returns the yield or fraction variables.
func (a *Additive) Coefficients() []*RealVar { return append([]*RealVar(nil), a.coefs...) }

// coef returns the effective coefficient of component k.
func (a *Additive) coef(k int) float64 {
	if a.yields || k < len(a.coefs) {
		return a.coefs[k].Value()
	}
	last := 1.0
	for _, c := range a.coefs {
		last -= c.Value()
	}

	return last
}

// Evaluate implements Pdf.
func (a *Additive) Evaluate(x float64) float64 {
	total := 0.0
	for k, p := range a.pdfs {
		total += a.coef(k) * p.Evaluate(x)
	}

	return total
}

// ExtendMode implements Pdf.
func (a *Additive) ExtendMode() ExtendMode {
	switch {
	case a.mustExt:
		return MustBeExtended
	case a.yields:
		return CanBeExtended
	default:
		return CanNotBeExtended
	}
}

// ExpectedEvents implements Pdf: Σ yields, or 0 for fraction sums.
func (a *Additive) ExpectedEvents([]*RealVar) float64 {
	if !a.yields {
		return 0
	}
	total := 0.0
	for _, c := range a.coefs {
		total += c.Value()
	}

	return total
}

// ExtendedTerm implements Pdf.
func (a *Additive) ExtendedTerm(sumWeights float64, obs []*RealVar) float64 {
	return PoissonTerm(a.ExpectedEvents(obs), sumWeights)
}

// AnalyticalIntegral implements Pdf: nonzero only if every component
// integrates analytically.
func (a *Additive) AnalyticalIntegral(wanted []*RealVar, rangeName string) int {
	for _, p := range a.pdfs {
		if p.AnalyticalIntegral(wanted, rangeName) == 0 {
			return 0
		}
	}

	return 1
}

// CreateIntegral implements Pdf.
func (a *Additive) CreateIntegral(over []*RealVar, rangeName string) (Integral, error) {
	if a.x == nil {
		return nil, fmt.Errorf("%s: empty sum: %w", a.name, ErrNoAnalyticalIntegral)
	}
	lo, hi, err := a.x.Range(rangeName)
	if err != nil {
		return nil, err
	}

	parts := make([]Integral, len(a.pdfs))
	for k, p := range a.pdfs {
		if parts[k], err = p.CreateIntegral(over, rangeName); err != nil {
			return nil, fmt.Errorf("%s: %w", a.name, err)
		}
	}

	return &sumIntegral{
		lower: boundVar(a.x, "lo", lo),
		upper: boundVar(a.x, "hi", hi),
		parts: parts,
		coef:  a.coef,
	}, nil
}

// PoissonTerm returns expected − observed·log(expected), the extended
// likelihood penalty without the constant log(observed!) term.
// A non-positive expectation yields 0.
func PoissonTerm(expected, observed float64) float64 {
	if expected <= 0 {
		return 0
	}

	return expected - observed*math.Log(expected)
}
