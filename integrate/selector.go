// SPDX-License-Identifier: MIT

package integrate

import (
	"fmt"

	"github.com/katalvlaran/binnll/model"
)

// HasFullAnalyticalIntegral reports whether p integrates in closed form
// over vars within rangeName.
//
// Composites are the logical AND of their components (an empty composite
// is true); leaves are true iff they report a nonzero code. A single
// numeric leaf anywhere in the tree makes the verdict false.
//
// Complexity: O(components).
func HasFullAnalyticalIntegral(p model.Pdf, vars []*model.RealVar, rangeName string) bool {
	if c, ok := p.(model.Composite); ok {
		for _, sub := range c.Components() {
			if !HasFullAnalyticalIntegral(sub, vars, rangeName) {
				return false
			}
		}

		return true
	}

	return p.AnalyticalIntegral(vars, rangeName) != 0
}

// Select returns KindAnalytical when p integrates analytically over obs
// within rangeName and numeric otherwise.
func Select(p model.Pdf, obs *model.RealVar, rangeName string, numeric Kind) Kind {
	if HasFullAnalyticalIntegral(p, []*model.RealVar{obs}, rangeName) {
		return KindAnalytical
	}

	return numeric
}

// Factory creates a fresh backend with its own workspace.
type Factory func() (Backend, error)

// NewFactory returns a Factory producing backends of kind for p over obs.
// Analytical factories create one integral expression per backend.
//
// Errors:
//   - ErrUnknownKind for an unsupported kind.
//   - model.ErrNoAnalyticalIntegral (from the first trial instance) when
//     kind is KindAnalytical and p has no closed form.
func NewFactory(p model.Pdf, obs *model.RealVar, rangeName string, kind Kind, opts ...Option) (Factory, error) {
	var f Factory
	switch kind {
	case KindAdaptive:
		f = func() (Backend, error) { return NewAdaptive(p.Evaluate, opts...), nil }
	case KindRomberg:
		f = func() (Backend, error) { return NewRomberg(p.Evaluate, opts...), nil }
	case KindAnalytical:
		f = func() (Backend, error) {
			in, err := p.CreateIntegral([]*model.RealVar{obs}, rangeName)
			if err != nil {
				return nil, err
			}

			return NewAnalytical(in), nil
		}
	default:
		return nil, fmt.Errorf("%v: %w", kind, ErrUnknownKind)
	}

	// fail at construction rather than on first evaluation
	if _, err := f(); err != nil {
		return nil, err
	}

	return f, nil
}
