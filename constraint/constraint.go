// SPDX-License-Identifier: MIT

package constraint

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/binnll/model"
)

// ErrUnknownGlobalObservable indicates a requested global observable that
// no constraint term depends on.
var ErrUnknownGlobalObservable = errors.New("constraint: unknown global observable")

// Collect returns the constraint terms of every distinct component of p.
//
// Implementation:
//   - Stage 1: walk p depth-first; each component is visited once.
//   - Stage 2: components implementing model.ConstraintProvider report
//     their terms for observables and constrained.
//   - Stage 3: union by term name, first occurrence wins.
//
// Complexity: O(components + terms).
func Collect(p model.Pdf, observables, constrained []*model.RealVar, stripDisconnected bool) []model.Constraint {
	var (
		out  []model.Constraint
		seen = make(map[string]struct{})
	)
	model.Walk(p, func(c model.Pdf) bool {
		provider, ok := c.(model.ConstraintProvider)
		if !ok {
			return true
		}
		for _, term := range provider.Constraints(observables, constrained, stripDisconnected) {
			if _, dup := seen[term.Name()]; dup {
				continue
			}
			seen[term.Name()] = struct{}{}
			out = append(out, term)
		}

		return true
	})

	return out
}

// Merge appends extra terms not already present by name.
func Merge(terms []model.Constraint, extra ...model.Constraint) []model.Constraint {
	seen := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		seen[t.Name()] = struct{}{}
	}
	for _, t := range extra {
		if _, dup := seen[t.Name()]; dup {
			continue
		}
		seen[t.Name()] = struct{}{}
		terms = append(terms, t)
	}

	return terms
}

// GlobalObservables returns every global observable of terms, once.
func GlobalObservables(terms []model.Constraint) []*model.RealVar {
	var out []*model.RealVar
	for _, t := range terms {
		out = model.Union(out, t.GlobalObservables())
	}

	return out
}

// DiscoverGlobalObservables returns the global observables of terms that
// carry the attribute tag.
func DiscoverGlobalObservables(terms []model.Constraint, tag string) []*model.RealVar {
	var out []*model.RealVar
	for _, v := range GlobalObservables(terms) {
		if v.HasAttribute(tag) {
			out = append(out, v)
		}
	}

	return out
}

// ResolveGlobalObservables maps names to the global observables of terms.
func ResolveGlobalObservables(terms []model.Constraint, names []string) ([]*model.RealVar, error) {
	all := GlobalObservables(terms)
	out := make([]*model.RealVar, 0, len(names))
	for _, n := range names {
		v := model.Find(all, n)
		if v == nil {
			return nil, fmt.Errorf("%q: %w", n, ErrUnknownGlobalObservable)
		}
		out = append(out, v)
	}

	return out, nil
}
