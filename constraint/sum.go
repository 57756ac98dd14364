// SPDX-License-Identifier: MIT

package constraint

import (
	"github.com/katalvlaran/binnll/kahan"
	"github.com/katalvlaran/binnll/model"
)

// Sum is the additive NLL term Σ −log c_k over constraint terms.
type Sum struct {
	name     string
	terms    []model.Constraint
	snapshot map[string]float64
	lookup   model.Lookup
}

// NewSum sums terms. The current values of globals are captured and used
// in place of the live values for every later evaluation.
func NewSum(name string, terms []model.Constraint, globals []*model.RealVar) *Sum {
	s := &Sum{
		name:     name,
		terms:    append([]model.Constraint(nil), terms...),
		snapshot: make(map[string]float64, len(globals)),
	}
	for _, g := range globals {
		s.snapshot[g.Name()] = g.Value()
	}
	s.lookup = func(v *model.RealVar) float64 {
		if val, ok := s.snapshot[v.Name()]; ok {
			return val
		}

		return v.Value()
	}

	return s
}

// Name returns the term name.
func (s *Sum) Name() string { return s.name }

// Terms returns the summed constraint terms.
func (s *Sum) Terms() []model.Constraint { return append([]model.Constraint(nil), s.terms...) }

// Snapshot returns the captured global observable values.
func (s *Sum) Snapshot() map[string]float64 {
	out := make(map[string]float64, len(s.snapshot))
	for k, v := range s.snapshot {
		out[k] = v
	}

	return out
}

// Evaluate returns the compensated sum of the terms' NLLs.
func (s *Sum) Evaluate() (float64, error) {
	var acc kahan.Sum
	for _, t := range s.terms {
		acc.Add(t.NLL(s.lookup))
	}

	return acc.Result(), nil
}

// EnableOffsetting is a no-op: constraint sums are not offset.
func (s *Sum) EnableOffsetting(bool) {}

// SetConstOptimization is a no-op: constraint terms have nothing to cache.
func (s *Sum) SetConstOptimization(int) {}
