// SPDX-License-Identifier: MIT

package model

import (
	"fmt"
	"math"
)

// Lookup returns the value to use for a variable. Constraint sums pass a
// lookup that substitutes snapshotted global observables.
type Lookup func(v *RealVar) float64

// CurrentValue is the Lookup reading each variable's current value.
func CurrentValue(v *RealVar) float64 { return v.Value() }

// Constraint is an additive NLL term that does not depend on the binned
// observable, e.g. an auxiliary measurement of a nuisance parameter.
type Constraint interface {
	Name() string

	// Variables returns every variable the term depends on.
	Variables() []*RealVar

	// GlobalObservables returns the auxiliary measured values.
	GlobalObservables() []*RealVar

	// NLL returns −log of the constraint density.
	NLL(lookup Lookup) float64
}

// GaussianConstraint is −log N(param | mean, sigma).
type GaussianConstraint struct {
	name  string
	param *RealVar
	mean  *RealVar
	sigma float64
}

// NewGaussianConstraint constrains param around the global observable mean.
func NewGaussianConstraint(name string, param, mean *RealVar, sigma float64) (*GaussianConstraint, error) {
	if !(sigma > 0) || math.IsInf(sigma, 0) {
		return nil, fmt.Errorf("%s: sigma %g: %w", name, sigma, ErrBadParameter)
	}

	return &GaussianConstraint{name: name, param: param, mean: mean, sigma: sigma}, nil
}

// Name implements Constraint.
func (g *GaussianConstraint) Name() string { return g.name }

// Variables implements Constraint.
func (g *GaussianConstraint) Variables() []*RealVar { return []*RealVar{g.param, g.mean} }

// GlobalObservables implements Constraint.
func (g *GaussianConstraint) GlobalObservables() []*RealVar { return []*RealVar{g.mean} }

// NLL implements Constraint.
func (g *GaussianConstraint) NLL(lookup Lookup) float64 {
	z := (lookup(g.param) - lookup(g.mean)) / g.sigma

	return 0.5*z*z + math.Log(g.sigma*math.Sqrt(2*math.Pi))
}

// PoissonConstraint is −log Poisson(observed | expected).
type PoissonConstraint struct {
	name     string
	expected *RealVar
	observed *RealVar
}

// NewPoissonConstraint constrains expected by the global observable count.
func NewPoissonConstraint(name string, expected, observed *RealVar) *PoissonConstraint {
	return &PoissonConstraint{name: name, expected: expected, observed: observed}
}

// Name implements Constraint.
func (p *PoissonConstraint) Name() string { return p.name }

// Variables implements Constraint.
func (p *PoissonConstraint) Variables() []*RealVar { return []*RealVar{p.expected, p.observed} }

// GlobalObservables implements Constraint.
func (p *PoissonConstraint) GlobalObservables() []*RealVar { return []*RealVar{p.observed} }

// NLL implements Constraint. A non-positive expectation is +Inf unless the
// observed count is zero.
func (p *PoissonConstraint) NLL(lookup Lookup) float64 {
	mu, n := lookup(p.expected), lookup(p.observed)
	if mu <= 0 {
		if n == 0 {
			return 0
		}

		return math.Inf(1)
	}
	lg, _ := math.Lgamma(n + 1)

	return mu - n*math.Log(mu) + lg
}

// Constrained is a pdf multiplied by constraint terms that do not depend
// on the observable. The density over the observable is the inner pdf's.
type Constrained struct {
	Pdf
	name        string
	constraints []Constraint
}

var (
	_ Composite          = (*Constrained)(nil)
	_ ConstraintProvider = (*Constrained)(nil)
)

// NewConstrained attaches constraints to pdf.
func NewConstrained(name string, pdf Pdf, constraints ...Constraint) *Constrained {
	return &Constrained{Pdf: pdf, name: name, constraints: constraints}
}

// Name implements Pdf.
func (c *Constrained) Name() string { return c.name }

// Components implements Composite.
func (c *Constrained) Components() []Pdf { return []Pdf{c.Pdf} }

// Variables implements Pdf: inner variables plus constraint variables.
func (c *Constrained) Variables() []*RealVar {
	vars := c.Pdf.Variables()
	for _, k := range c.constraints {
		vars = Union(vars, k.Variables())
	}

	return vars
}

// Constraints implements ConstraintProvider.
func (c *Constrained) Constraints(observables, constrained []*RealVar, stripDisconnected bool) []Constraint {
	var out []Constraint
	for _, k := range c.constraints {
		vars := k.Variables()
		if Overlaps(vars, observables) {
			continue
		}
		if stripDisconnected && !Overlaps(vars, constrained) {
			continue
		}
		out = append(out, k)
	}

	return out
}
