// SPDX-License-Identifier: MIT

package nll

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/binnll/constraint"
	"github.com/katalvlaran/binnll/model"
)

// Create builds the full objective of p against data.
//
// Implementation:
//   - Stage 1: validate cfg and merge it with opts (opts win).
//   - Stage 2: split the range name on commas and build one Evaluator per
//     segment, each with its own backend verdict. Extended segments each
//     carry the Poisson term of their own range. Segments are combined by
//     a Sum.
//   - Stage 3: collect the model's constraint terms plus the external
//     ones and add their sum to the objective.
//
// The returned Term is an *Evaluator, or a *Sum of evaluators and a
// *constraint.Sum.
//
// Errors: ErrConfiguration, ErrStructural (see NewEvaluator).
func Create(p model.Pdf, data model.Dataset, cfg Config, opts ...Option) (Term, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if p == nil || data == nil {
		return nil, fmt.Errorf("model and dataset are required: %w", ErrConfiguration)
	}
	o := gatherOptions(append(cfg.Options(), opts...))
	if err := o.validate(); err != nil {
		return nil, err
	}

	// Stage 2: one evaluator per range segment
	base, err := createSegments(p, data, o)
	if err != nil {
		return nil, err
	}

	// Stage 3: constraints
	terms, globals, err := collectConstraints(p, data, cfg, o)
	if err != nil {
		return nil, err
	}
	if len(terms) == 0 {
		return base, nil
	}
	csum := constraint.NewSum(p.Name()+"_constr", terms, globals)
	o.Logger.Debug("constraints attached",
		"model", p.Name(),
		"terms", len(terms),
		"globalObservables", model.Names(globals),
	)

	return NewSum(base.Name()+"_with_constr", base, csum), nil
}

// createSegments builds the range evaluators.
func createSegments(p model.Pdf, data model.Dataset, o Options) (Term, error) {
	if o.RangeName == "" || !strings.Contains(o.RangeName, ",") {
		return newEvaluator(p, data, o)
	}

	var segments []string
	for _, s := range strings.Split(o.RangeName, ",") {
		if s = strings.TrimSpace(s); s != "" {
			segments = append(segments, s)
		}
	}
	if len(segments) == 0 {
		return nil, fmt.Errorf("range %q: %w", o.RangeName, ErrConfiguration)
	}

	baseName := o.Name
	if baseName == "" {
		baseName = "nll_" + p.Name()
	}

	terms := make([]Term, 0, len(segments))
	for _, seg := range segments {
		so := o
		so.RangeName = seg
		so.Name = baseName + "_" + seg
		e, err := newEvaluator(p, data, so)
		if err != nil {
			return nil, fmt.Errorf("range %q: %w", seg, err)
		}
		terms = append(terms, e)
	}

	return NewSum(baseName, terms...), nil
}

// defaultConstrained returns the free parameters of p that are not a
// global observable of any constraint term.
func defaultConstrained(p model.Pdf, data model.Dataset, observables []*model.RealVar, o Options) []*model.RealVar {
	terms := constraint.Merge(constraint.Collect(p, observables, nil, false), o.Constraints...)
	globals := constraint.GlobalObservables(terms)

	var out []*model.RealVar
	for _, v := range model.Parameters(p, data, true) {
		if model.Find(globals, v.Name()) == nil {
			out = append(out, v)
		}
	}

	return out
}

// collectConstraints returns the constraint terms and the global
// observables to snapshot.
//
// Explicit constrained parameters keep every connected and disconnected
// term; the default set (all free parameters) strips disconnected ones.
func collectConstraints(p model.Pdf, data model.Dataset, cfg Config, o Options) ([]model.Constraint, []*model.RealVar, error) {
	observables := model.Observables(p, data)
	strip := true
	constrained := defaultConstrained(p, data, observables, o)
	if len(cfg.Constrain) > 0 {
		all := p.Variables()
		for _, c := range o.Constraints {
			all = model.Union(all, c.Variables())
		}
		constrained = constrained[:0:0]
		for _, name := range cfg.Constrain {
			v := model.Find(all, name)
			if v == nil {
				return nil, nil, fmt.Errorf("constrained parameter %q: %w", name, ErrConfiguration)
			}
			constrained = append(constrained, v)
		}
		strip = false
	}

	terms := constraint.Collect(p, observables, constrained, strip)
	terms = constraint.Merge(terms, o.Constraints...)
	if len(terms) == 0 {
		return nil, nil, nil
	}

	switch {
	case len(cfg.GlobalObservables) > 0:
		globals, err := constraint.ResolveGlobalObservables(terms, cfg.GlobalObservables)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
		}

		return terms, globals, nil
	case cfg.GlobalObservablesTag != "":
		return terms, constraint.DiscoverGlobalObservables(terms, cfg.GlobalObservablesTag), nil
	default:
		return terms, nil, nil
	}
}
