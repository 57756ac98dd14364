package integrate_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/binnll/binning"
	"github.com/katalvlaran/binnll/integrate"
	"github.com/katalvlaran/binnll/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixture is a Gaussian on [0, 1] with 20 bins.
type fixture struct {
	x     *model.RealVar
	gauss *model.Leaf
	bins  binning.Binning
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	x := model.NewRealVar("x", 0, 0, 1)
	b, err := binning.NewUniform(0, 1, 20)
	require.NoError(t, err)
	x.SetBinning(b)
	mean := model.NewRealVar("mean", 0.5, 0, 1)
	sigma := model.NewRealVar("sigma", 0.1, 0.01, 1)

	return fixture{x: x, gauss: model.NewGaussian("g", x, mean, sigma), bins: b}
}

// TestBackends_AgreeWithAnalytical cross-checks the numeric backends
// against the closed-form integral bin by bin.
func TestBackends_AgreeWithAnalytical(t *testing.T) {
	fx := newFixture(t)
	in, err := fx.gauss.CreateIntegral([]*model.RealVar{fx.x}, "")
	require.NoError(t, err)
	exact := integrate.NewAnalytical(in)

	numeric := []integrate.Backend{
		integrate.NewAdaptive(fx.gauss.Evaluate),
		integrate.NewRomberg(fx.gauss.Evaluate),
	}
	for _, b := range numeric {
		t.Run(b.Kind().String(), func(t *testing.T) {
			for i := 0; i < fx.bins.NumBins(); i++ {
				lo, hi := fx.bins.BinLow(i), fx.bins.BinHigh(i)
				want := exact.Integrate(lo, hi)
				got := b.Integrate(lo, hi)
				assert.InEpsilon(t, want, got, 1e-4, "bin %d", i)
				assert.True(t, b.Status().Converged, "bin %d", i)
			}
		})
	}
	assert.Equal(t, integrate.KindAnalytical, exact.Kind())
	assert.NoError(t, exact.Status().Err())
}

// TestAdaptive_FlatConvergesImmediately checks that an exact rule pair
// needs no subdivision.
func TestAdaptive_FlatConvergesImmediately(t *testing.T) {
	a := integrate.NewAdaptive(func(float64) float64 { return 3 })
	assert.InDelta(t, 6.0, a.Integrate(1, 3), 1e-13)
	st := a.Status()
	assert.True(t, st.Converged)
	assert.Equal(t, 1, st.Intervals)
	assert.Equal(t, 31, st.Evaluations)

	assert.Equal(t, 0.0, a.Integrate(2, 2))
}

// TestAdaptive_Subdivides integrates a kink that needs bisection.
func TestAdaptive_Subdivides(t *testing.T) {
	a := integrate.NewAdaptive(math.Abs, integrate.WithRelTol(1e-10))
	got := a.Integrate(-1, 2)
	assert.InDelta(t, 2.5, got, 1e-9)
	assert.Greater(t, a.Status().Intervals, 1)
	assert.LessOrEqual(t, a.Status().Intervals, integrate.DefaultMaxIntervals)
}

// TestAdaptive_BudgetExhausted returns the best estimate and flags it.
func TestAdaptive_BudgetExhausted(t *testing.T) {
	f := func(x float64) float64 { return 1 / math.Sqrt(x) }
	a := integrate.NewAdaptive(f, integrate.WithMaxIntervals(1))
	got := a.Integrate(0, 1)

	assert.InDelta(t, 2.0, got, 0.5, "best estimate is still returned")
	assert.False(t, a.Status().Converged)
	assert.ErrorIs(t, a.Status().Err(), integrate.ErrNotConverged)
}

// TestRomberg_Polynomial is exact after a few levels.
func TestRomberg_Polynomial(t *testing.T) {
	r := integrate.NewRomberg(func(x float64) float64 { return x*x*x - x })
	assert.InDelta(t, 2.0, r.Integrate(0, 2), 1e-12)
	assert.True(t, r.Status().Converged)
	assert.Equal(t, 2, r.Status().Intervals)

	assert.InDelta(t, -2.0, r.Integrate(2, 0), 1e-12, "reversed bounds flip the sign")
}

// TestRomberg_BudgetExhausted flags a sharp peak with too few levels.
func TestRomberg_BudgetExhausted(t *testing.T) {
	f := func(x float64) float64 {
		z := (x - 0.5) / 0.01

		return math.Exp(-z * z)
	}
	r := integrate.NewRomberg(f, integrate.WithLevels(2))
	_ = r.Integrate(0, 1)
	assert.False(t, r.Status().Converged)
	assert.Equal(t, 5, r.Status().Evaluations)
}

// TestHasFullAnalyticalIntegral checks the structural recursion.
func TestHasFullAnalyticalIntegral(t *testing.T) {
	fx := newFixture(t)
	vars := []*model.RealVar{fx.x}
	c := model.NewRealVar("c", -1, -5, 5)
	expo := model.NewExponential("e", fx.x, c)
	flat := model.NewUniform("u", fx.x)
	numeric, err := model.NewGeneric("n", fx.x, func(v float64, _ []float64) float64 { return 1 + v*v })
	require.NoError(t, err)

	f1 := model.NewRealVar("f1", 0.3, 0, 1)
	f2 := model.NewRealVar("f2", 0.3, 0, 1)
	inner, err := model.NewAdditive("inner", []model.Pdf{fx.gauss, expo}, []*model.RealVar{f1})
	require.NoError(t, err)
	pure, err := model.NewAdditive("pure", []model.Pdf{inner, flat}, []*model.RealVar{f2})
	require.NoError(t, err)
	assert.True(t, integrate.HasFullAnalyticalIntegral(pure, vars, ""))
	assert.Equal(t, integrate.KindAnalytical, integrate.Select(pure, fx.x, "", integrate.KindAdaptive))

	// one numeric leaf deep in the tree flips the verdict
	deep, err := model.NewAdditive("deep", []model.Pdf{fx.gauss, numeric}, []*model.RealVar{f1})
	require.NoError(t, err)
	mixed, err := model.NewAdditive("mixed", []model.Pdf{deep, flat}, []*model.RealVar{f2})
	require.NoError(t, err)
	assert.False(t, integrate.HasFullAnalyticalIntegral(mixed, vars, ""))
	assert.Equal(t, integrate.KindRomberg, integrate.Select(mixed, fx.x, "", integrate.KindRomberg))

	empty, err := model.NewAdditive("empty", nil, nil)
	require.NoError(t, err)
	assert.True(t, integrate.HasFullAnalyticalIntegral(empty, vars, ""), "empty sum is vacuously analytical")

	wrapped := model.NewConstrained("wrapped", mixed)
	assert.False(t, integrate.HasFullAnalyticalIntegral(wrapped, vars, ""))

	assert.False(t, integrate.HasFullAnalyticalIntegral(flat, vars, "undefined-range"))
}

// TestNewFactory hands out independent backends.
func TestNewFactory(t *testing.T) {
	fx := newFixture(t)

	for _, kind := range []integrate.Kind{integrate.KindAdaptive, integrate.KindRomberg, integrate.KindAnalytical} {
		f, err := integrate.NewFactory(fx.gauss, fx.x, "", kind)
		require.NoError(t, err)
		b1, err := f()
		require.NoError(t, err)
		b2, err := f()
		require.NoError(t, err)
		assert.NotSame(t, b1, b2)
		assert.Equal(t, kind, b1.Kind())
	}

	numeric, err := model.NewGeneric("n", fx.x, func(v float64, _ []float64) float64 { return v })
	require.NoError(t, err)
	_, err = integrate.NewFactory(numeric, fx.x, "", integrate.KindAnalytical)
	assert.ErrorIs(t, err, model.ErrNoAnalyticalIntegral)

	_, err = integrate.NewFactory(fx.gauss, fx.x, "", integrate.Kind(42))
	assert.ErrorIs(t, err, integrate.ErrUnknownKind)
}

// TestOptions_PanicOnNonsense checks option validation.
func TestOptions_PanicOnNonsense(t *testing.T) {
	assert.Panics(t, func() { integrate.WithRelTol(-1) })
	assert.Panics(t, func() { integrate.WithAbsTol(math.NaN()) })
	assert.Panics(t, func() { integrate.WithMaxIntervals(0) })
	assert.Panics(t, func() { integrate.WithLevels(1) })
	assert.Panics(t, func() { integrate.WithLevels(21) })
	assert.NotPanics(t, func() { integrate.WithLevels(8) })
}

// TestParseKind round-trips backend names.
func TestParseKind(t *testing.T) {
	for _, k := range []integrate.Kind{integrate.KindAdaptive, integrate.KindRomberg, integrate.KindAnalytical} {
		got, err := integrate.ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := integrate.ParseKind("simpson")
	assert.ErrorIs(t, err, integrate.ErrUnknownKind)
	assert.Equal(t, "kind(9)", integrate.Kind(9).String())
}
