// SPDX-License-Identifier: MIT

package model

import (
	"errors"

	"github.com/katalvlaran/binnll/binning"
)

var (
	// ErrNoBinning indicates an observable without binning.
	ErrNoBinning = errors.New("model: observable has no binning")

	// ErrCoefficientCount indicates a coefficient list that is neither one
	// yield per component nor one fraction less than the component count.
	ErrCoefficientCount = errors.New("model: invalid number of coefficients")

	// ErrObservableMismatch indicates components over different observables.
	ErrObservableMismatch = errors.New("model: components use different observables")

	// ErrNoAnalyticalIntegral indicates that no closed-form integral exists.
	ErrNoAnalyticalIntegral = errors.New("model: no analytical integral")

	// ErrUnknownRange indicates an undefined named range.
	ErrUnknownRange = errors.New("model: unknown range")

	// ErrBadParameter indicates invalid construction parameters.
	ErrBadParameter = errors.New("model: invalid parameter")
)

// ExtendMode declares whether a pdf can predict an expected event count.
type ExtendMode int

const (
	// CanNotBeExtended pdfs only describe a shape.
	CanNotBeExtended ExtendMode = iota

	// CanBeExtended pdfs predict an expected event count on request.
	CanBeExtended

	// MustBeExtended pdfs are only meaningful in an extended likelihood.
	MustBeExtended
)

// String returns a short lowercase name.
func (m ExtendMode) String() string {
	switch m {
	case CanBeExtended:
		return "can"
	case MustBeExtended:
		return "must"
	default:
		return "cannot"
	}
}

// Pdf is a density over one observable, parameterised by external
// mutable RealVars.
type Pdf interface {
	// Name identifies the pdf; components are deduplicated by name.
	Name() string

	// Observable returns the variable the density is defined over.
	Observable() *RealVar

	// Variables returns the observable and every parameter the pdf
	// depends on, each once, in a stable order.
	Variables() []*RealVar

	// Evaluate returns the density at x for the current parameters.
	// For extended composites the density integrates to ExpectedEvents.
	Evaluate(x float64) float64

	// ExtendMode reports whether the pdf predicts an event count.
	ExtendMode() ExtendMode

	// ExpectedEvents returns the predicted event count (0 if not extendable).
	ExpectedEvents(observables []*RealVar) float64

	// ExtendedTerm returns the Poisson penalty for observing sumWeights
	// events: expected − sumWeights·log(expected).
	ExtendedTerm(sumWeights float64, observables []*RealVar) float64

	// AnalyticalIntegral returns a nonzero code when the pdf can integrate
	// itself in closed form over wanted within rangeName ("" = full range).
	AnalyticalIntegral(wanted []*RealVar, rangeName string) int

	// CreateIntegral returns a definite-integral expression over the
	// observable with two auxiliary bound variables.
	CreateIntegral(over []*RealVar, rangeName string) (Integral, error)
}

// Composite is a pdf built from sub-pdfs.
type Composite interface {
	Pdf

	// Components returns the direct sub-pdfs in a stable order.
	Components() []Pdf
}

// ConstraintProvider is implemented by pdfs carrying constraint terms.
type ConstraintProvider interface {
	// Constraints returns the pdf's own constraint terms. Terms depending
	// on an observable are never constraints. With stripDisconnected, terms
	// sharing no variable with constrained are omitted.
	Constraints(observables, constrained []*RealVar, stripDisconnected bool) []Constraint
}

// Integral is a definite integral expression. Set Lower and Upper, then
// call Value. An Integral is owned by a single goroutine.
type Integral interface {
	Lower() *RealVar
	Upper() *RealVar
	Value() float64
}

// Dataset is a binned dataset over one observable. Entry i is bin i of
// Binning().
type Dataset interface {
	Observable() *RealVar
	Binning() binning.Binning
	NumEntries() int
	Value(i int) float64
	Weight(i int) float64
	WeightSquared(i int) float64
	SumWeights() float64
	IsWeighted() bool

	// RefreshCache makes per-entry quantities valid for entries
	// [first, last). It is idempotent and safe for concurrent use.
	RefreshCache(first, last int)
}
