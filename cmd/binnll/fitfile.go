// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/binnll/binning"
	"github.com/katalvlaran/binnll/model"
	"github.com/katalvlaran/binnll/nll"
)

// errFitFile indicates an inconsistent fit description.
var errFitFile = errors.New("binnll: invalid fit file")

// fitFile is the YAML description of a fit.
type fitFile struct {
	Observable observableSpec  `yaml:"observable"`
	Parameters []parameterSpec `yaml:"parameters"`
	Model      modelSpec       `yaml:"model"`
	Data       dataSpec        `yaml:"data"`
	NLL        nll.Config      `yaml:"nll"`
}

type observableSpec struct {
	Name   string               `yaml:"name"`
	Min    float64              `yaml:"min"`
	Max    float64              `yaml:"max"`
	Bins   int                  `yaml:"bins"`
	Edges  []float64            `yaml:"edges"`
	Ranges map[string][]float64 `yaml:"ranges"`
}

type parameterSpec struct {
	Name       string   `yaml:"name"`
	Value      float64  `yaml:"value"`
	Min        float64  `yaml:"min"`
	Max        float64  `yaml:"max"`
	Constant   bool     `yaml:"constant"`
	Attributes []string `yaml:"attributes"`
}

// modelSpec describes one node of the model tree.
//
// Leaves (uniform, exponential, gaussian, polynomial) list their shape
// parameters in Params. Additive nodes list Components and Coefficients,
// extended nodes one component and a Yield, constrained nodes one
// component and Constraints.
type modelSpec struct {
	Name         string           `yaml:"name"`
	Type         string           `yaml:"type"`
	Params       []string         `yaml:"params"`
	Components   []modelSpec      `yaml:"components"`
	Coefficients []string         `yaml:"coefficients"`
	Yield        string           `yaml:"yield"`
	Constraints  []constraintSpec `yaml:"constraints"`
}

type constraintSpec struct {
	Name     string  `yaml:"name"`
	Type     string  `yaml:"type"`
	Param    string  `yaml:"param"`
	Observed string  `yaml:"observed"`
	Sigma    float64 `yaml:"sigma"`
}

type dataSpec struct {
	Counts         []float64 `yaml:"counts"`
	WeightsSquared []float64 `yaml:"weightsSquared"`
}

// fit is a built fit description.
type fit struct {
	x      *model.RealVar
	params map[string]*model.RealVar
	pdf    model.Pdf
	data   *model.Histogram
	config nll.Config
}

// loadFit reads and builds the fit description at path.
func loadFit(path string) (*fit, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return parseFit(raw)
}

// parseFit decodes and builds a fit description.
//
// Implementation:
//   - Stage 1: observable with binning and named ranges.
//   - Stage 2: parameters.
//   - Stage 3: model tree, depth-first.
//   - Stage 4: histogram and NLL configuration (over nll.DefaultConfig).
func parseFit(raw []byte) (*fit, error) {
	ff := fitFile{NLL: nll.DefaultConfig()}
	if err := yaml.Unmarshal(raw, &ff); err != nil {
		return nil, fmt.Errorf("%w: %w", errFitFile, err)
	}

	x, err := ff.Observable.build()
	if err != nil {
		return nil, err
	}

	f := &fit{x: x, params: map[string]*model.RealVar{x.Name(): x}}
	for _, ps := range ff.Parameters {
		if ps.Name == "" {
			return nil, fmt.Errorf("parameter without name: %w", errFitFile)
		}
		if _, dup := f.params[ps.Name]; dup {
			return nil, fmt.Errorf("parameter %q defined twice: %w", ps.Name, errFitFile)
		}
		v := model.NewRealVar(ps.Name, ps.Value, ps.Min, ps.Max)
		v.SetConstant(ps.Constant)
		for _, a := range ps.Attributes {
			v.SetAttribute(a)
		}
		f.params[ps.Name] = v
	}

	if f.pdf, err = f.buildModel(ff.Model); err != nil {
		return nil, err
	}

	if f.data, err = model.NewHistogramFromCounts(x, ff.Data.Counts); err != nil {
		return nil, fmt.Errorf("data: %w", err)
	}
	if w2 := ff.Data.WeightsSquared; len(w2) > 0 {
		if len(w2) != len(ff.Data.Counts) {
			return nil, fmt.Errorf("data: %d squared weights for %d counts: %w", len(w2), len(ff.Data.Counts), errFitFile)
		}
		for i, c := range ff.Data.Counts {
			if err := f.data.SetBinContent(i, c, w2[i]); err != nil {
				return nil, err
			}
		}
	}

	if err := ff.NLL.Validate(); err != nil {
		return nil, err
	}
	f.config = ff.NLL

	return f, nil
}

// build creates the observable.
func (o observableSpec) build() (*model.RealVar, error) {
	if o.Name == "" {
		return nil, fmt.Errorf("observable without name: %w", errFitFile)
	}

	var (
		b   binning.Binning
		err error
	)
	if len(o.Edges) > 0 {
		b, err = binning.NewVariable(o.Edges)
	} else {
		b, err = binning.NewUniform(o.Min, o.Max, o.Bins)
	}
	if err != nil {
		return nil, fmt.Errorf("observable %s: %w", o.Name, err)
	}

	x := model.NewRealVar(o.Name, 0.5*(b.Low()+b.High()), b.Low(), b.High())
	x.SetBinning(b)
	for name, r := range o.Ranges {
		if len(r) != 2 {
			return nil, fmt.Errorf("range %q needs [lo, hi]: %w", name, errFitFile)
		}
		if err := x.SetRange(name, r[0], r[1]); err != nil {
			return nil, err
		}
	}

	return x, nil
}

// lookup returns the named parameter.
func (f *fit) lookup(name string) (*model.RealVar, error) {
	v, ok := f.params[name]
	if !ok {
		return nil, fmt.Errorf("unknown parameter %q: %w", name, errFitFile)
	}

	return v, nil
}

// lookupAll returns the named parameters in order.
func (f *fit) lookupAll(names []string) ([]*model.RealVar, error) {
	out := make([]*model.RealVar, 0, len(names))
	for _, n := range names {
		v, err := f.lookup(n)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}

	return out, nil
}

// buildModel builds one node of the model tree.
func (f *fit) buildModel(ms modelSpec) (model.Pdf, error) {
	if ms.Name == "" {
		return nil, fmt.Errorf("model node of type %q without name: %w", ms.Type, errFitFile)
	}
	params, err := f.lookupAll(ms.Params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ms.Name, err)
	}
	arity := func(n int) error {
		if len(params) != n {
			return fmt.Errorf("%s: %s takes %d parameters, got %d: %w", ms.Name, ms.Type, n, len(params), errFitFile)
		}

		return nil
	}

	switch ms.Type {
	case "uniform":
		if err := arity(0); err != nil {
			return nil, err
		}

		return model.NewUniform(ms.Name, f.x), nil
	case "exponential":
		if err := arity(1); err != nil {
			return nil, err
		}

		return model.NewExponential(ms.Name, f.x, params[0]), nil
	case "gaussian":
		if err := arity(2); err != nil {
			return nil, err
		}

		return model.NewGaussian(ms.Name, f.x, params[0], params[1]), nil
	case "polynomial":
		return model.NewPolynomial(ms.Name, f.x, params...)
	case "additive":
		subs, err := f.buildComponents(ms)
		if err != nil {
			return nil, err
		}
		coefs, err := f.lookupAll(ms.Coefficients)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ms.Name, err)
		}

		return model.NewAdditive(ms.Name, subs, coefs)
	case "extended":
		sub, err := f.single(ms)
		if err != nil {
			return nil, err
		}
		yield, err := f.lookup(ms.Yield)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ms.Name, err)
		}

		return model.NewExtended(ms.Name, sub, yield)
	case "constrained":
		sub, err := f.single(ms)
		if err != nil {
			return nil, err
		}
		cs := make([]model.Constraint, 0, len(ms.Constraints))
		for _, c := range ms.Constraints {
			k, err := f.buildConstraint(c)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", ms.Name, err)
			}
			cs = append(cs, k)
		}

		return model.NewConstrained(ms.Name, sub, cs...), nil
	default:
		return nil, fmt.Errorf("%s: unknown model type %q: %w", ms.Name, ms.Type, errFitFile)
	}
}

func (f *fit) buildComponents(ms modelSpec) ([]model.Pdf, error) {
	out := make([]model.Pdf, 0, len(ms.Components))
	for _, c := range ms.Components {
		p, err := f.buildModel(c)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, nil
}

// single builds the only component of a wrapper node.
func (f *fit) single(ms modelSpec) (model.Pdf, error) {
	if len(ms.Components) != 1 {
		return nil, fmt.Errorf("%s: %s wraps exactly one component: %w", ms.Name, ms.Type, errFitFile)
	}

	return f.buildModel(ms.Components[0])
}

func (f *fit) buildConstraint(c constraintSpec) (model.Constraint, error) {
	param, err := f.lookup(c.Param)
	if err != nil {
		return nil, err
	}
	observed, err := f.lookup(c.Observed)
	if err != nil {
		return nil, err
	}

	switch c.Type {
	case "gaussian":
		return model.NewGaussianConstraint(c.Name, param, observed, c.Sigma)
	case "poisson":
		return model.NewPoissonConstraint(c.Name, param, observed), nil
	default:
		return nil, fmt.Errorf("constraint %s: unknown type %q: %w", c.Name, c.Type, errFitFile)
	}
}
