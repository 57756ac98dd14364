package nll_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/binnll/binning"
	"github.com/katalvlaran/binnll/model"
)

// newX returns the observable x over [0, 1] with n uniform bins.
func newX(t testing.TB, n int) *model.RealVar {
	t.Helper()
	x := model.NewRealVar("x", 0.5, 0, 1)
	b, err := binning.NewUniform(0, 1, n)
	require.NoError(t, err)
	x.SetBinning(b)

	return x
}

// counts returns n strictly positive, uneven bin counts.
func counts(n int) []float64 {
	c := make([]float64, n)
	for i := range c {
		c[i] = float64((i*7)%11 + 1)
	}

	return c
}

// histogram fills x's binning with counts(n).
func histogram(t testing.TB, x *model.RealVar) *model.Histogram {
	t.Helper()
	b, err := x.Binning()
	require.NoError(t, err)
	h, err := model.NewHistogramFromCounts(x, counts(b.NumBins()))
	require.NoError(t, err)

	return h
}

// gauss returns a Gaussian leaf over x with its mean parameter.
func gauss(x *model.RealVar) (*model.Leaf, *model.RealVar) {
	mean := model.NewRealVar("mean", 0.45, 0, 1)
	sigma := model.NewRealVar("sigma", 0.2, 0.01, 1)

	return model.NewGaussian("gauss", x, mean, sigma), mean
}

// flatExtended returns a flat density over x scaled by a yield.
func flatExtended(t testing.TB, x *model.RealVar, yield float64) (*model.Additive, *model.RealVar) {
	t.Helper()
	n := model.NewRealVar("nsig", yield, 0, 1e6)
	ext, err := model.NewExtended("flat_ext", model.NewUniform("flat", x), n)
	require.NoError(t, err)

	return ext, n
}

// mustBinning returns n uniform bins over [0, 1].
func mustBinning(t testing.TB, n int) binning.Binning {
	t.Helper()
	b, err := binning.NewUniform(0, 1, n)
	require.NoError(t, err)

	return b
}
