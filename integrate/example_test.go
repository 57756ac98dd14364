package integrate_test

import (
	"fmt"

	"github.com/katalvlaran/binnll/integrate"
	"github.com/katalvlaran/binnll/model"
)

// ExampleSelect picks the analytical backend for closed-form models and a
// numeric one as soon as a single component lacks a closed form.
func ExampleSelect() {
	x := model.NewRealVar("x", 0, 0, 1)
	flat := model.NewUniform("flat", x)
	bump, _ := model.NewGeneric("bump", x, func(v float64, _ []float64) float64 { return v * (1 - v) })
	f := model.NewRealVar("f", 0.5, 0, 1)
	sum, _ := model.NewAdditive("sum", []model.Pdf{flat, bump}, []*model.RealVar{f})

	fmt.Println(integrate.Select(flat, x, "", integrate.KindAdaptive))
	fmt.Println(integrate.Select(sum, x, "", integrate.KindAdaptive))
	// Output:
	// analytical
	// adaptive
}

// ExampleAdaptive integrates x² over [0, 3].
func ExampleAdaptive() {
	a := integrate.NewAdaptive(func(x float64) float64 { return x * x })
	fmt.Printf("%.6f converged=%v\n", a.Integrate(0, 3), a.Status().Converged)
	// Output:
	// 9.000000 converged=true
}
