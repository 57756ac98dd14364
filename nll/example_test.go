package nll_test

import (
	"fmt"

	"github.com/katalvlaran/binnll/binning"
	"github.com/katalvlaran/binnll/model"
	"github.com/katalvlaran/binnll/nll"
)

// ExampleNewEvaluator evaluates a flat model with ten expected events in a
// single bin holding ten observed events.
func ExampleNewEvaluator() {
	x := model.NewRealVar("x", 0.5, 0, 1)
	b, _ := binning.NewUniform(0, 1, 1)
	x.SetBinning(b)

	yield := model.NewRealVar("n", 10, 0, 100)
	pdf, _ := model.NewExtended("flat_ext", model.NewUniform("flat", x), yield)
	data, _ := model.NewHistogramFromCounts(x, []float64{10})

	e, _ := nll.NewEvaluator(pdf, data, nll.WithExtended(nll.ExtendedOff))
	v, _ := e.Evaluate()
	fmt.Printf("backend=%s nll=%.4f\n", e.Kind(), v)
	// Output: backend=analytical nll=-23.0259
}

// ExampleCreate builds a two-worker objective with offsetting.
func ExampleCreate() {
	x := model.NewRealVar("x", 0.5, 0, 1)
	b, _ := binning.NewUniform(0, 1, 8)
	x.SetBinning(b)

	mean := model.NewRealVar("mean", 0.5, 0, 1)
	sigma := model.NewRealVar("sigma", 0.25, 0.01, 1)
	pdf := model.NewGaussian("gauss", x, mean, sigma)
	data, _ := model.NewHistogramFromCounts(x, []float64{1, 3, 6, 9, 9, 6, 3, 1})

	cfg := nll.DefaultConfig()
	cfg.NumWorkers = 2
	cfg.Offset = true
	term, _ := nll.Create(pdf, data, cfg)

	first, _ := term.Evaluate()
	mean.SetValue(0.45)
	moved, _ := term.Evaluate()
	fmt.Printf("%s: first=%.1f moved>0=%v\n", term.Name(), first, moved > 0)
	// Output: nll_gauss: first=0.0 moved>0=true
}
