// SPDX-License-Identifier: MIT

package nll

import "fmt"

// Sum adds terms with plain addition. It combines range segments and the
// constraint sum outside the per-bin hot path.
type Sum struct {
	name  string
	terms []Term
}

var _ Term = (*Sum)(nil)

// NewSum returns the sum of terms.
func NewSum(name string, terms ...Term) *Sum {
	return &Sum{name: name, terms: append([]Term(nil), terms...)}
}

// Name implements Term.
func (s *Sum) Name() string { return s.name }

// Terms returns the summed terms.
func (s *Sum) Terms() []Term { return append([]Term(nil), s.terms...) }

// Evaluate implements Term.
func (s *Sum) Evaluate() (float64, error) {
	total := 0.0
	for _, t := range s.terms {
		v, err := t.Evaluate()
		if err != nil {
			return 0, fmt.Errorf("%s: %s: %w", s.name, t.Name(), err)
		}
		total += v
	}

	return total, nil
}

// EnableOffsetting implements Term by forwarding to every term.
func (s *Sum) EnableOffsetting(on bool) {
	for _, t := range s.terms {
		t.EnableOffsetting(on)
	}
}

// SetConstOptimization implements Term by forwarding to every term.
func (s *Sum) SetConstOptimization(level int) {
	for _, t := range s.terms {
		t.SetConstOptimization(level)
	}
}
