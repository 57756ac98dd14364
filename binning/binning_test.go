package binning_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/binnll/binning"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewUniform checks edges, widths and centers of a uniform binning.
func TestNewUniform(t *testing.T) {
	b, err := binning.NewUniform(0, 1, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, b.NumBins())
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, b.Edges())
	assert.InDelta(t, 0.25, b.BinWidth(2), 1e-15)
	assert.InDelta(t, 0.625, b.BinCenter(2), 1e-15)
	assert.Equal(t, 0.0, b.Low())
	assert.Equal(t, 1.0, b.High())
}

// TestNewUniform_Errors covers degenerate constructor input.
func TestNewUniform_Errors(t *testing.T) {
	_, err := binning.NewUniform(0, 1, 0)
	assert.ErrorIs(t, err, binning.ErrEmptyBinning)

	_, err = binning.NewUniform(1, 1, 3)
	assert.ErrorIs(t, err, binning.ErrUnorderedBinning)

	_, err = binning.NewUniform(math.Inf(-1), 1, 3)
	assert.ErrorIs(t, err, binning.ErrNonFiniteEdge)
}

// TestNewVariable_Validation rejects empty, unordered and non-finite edges.
func TestNewVariable_Validation(t *testing.T) {
	_, err := binning.NewVariable([]float64{1})
	assert.ErrorIs(t, err, binning.ErrEmptyBinning)

	_, err = binning.NewVariable([]float64{0, 2, 2, 3})
	assert.ErrorIs(t, err, binning.ErrUnorderedBinning)

	_, err = binning.NewVariable([]float64{0, math.NaN(), 3})
	assert.ErrorIs(t, err, binning.ErrNonFiniteEdge)

	b, err := binning.NewVariable([]float64{0, 1, 3, 7})
	require.NoError(t, err)
	assert.Equal(t, 3, b.NumBins())
	assert.Equal(t, 4.0, b.BinWidth(2))
}

// TestFindBin covers interior points, edges and out-of-range values.
func TestFindBin(t *testing.T) {
	b, err := binning.NewVariable([]float64{0, 1, 3, 7})
	require.NoError(t, err)

	assert.Equal(t, 0, b.FindBin(0))
	assert.Equal(t, 0, b.FindBin(0.5))
	assert.Equal(t, 1, b.FindBin(1))
	assert.Equal(t, 2, b.FindBin(6.99))
	assert.Equal(t, -1, b.FindBin(7))
	assert.Equal(t, -1, b.FindBin(-0.1))
	assert.Equal(t, -1, b.FindBin(math.NaN()))
}

// TestNewTable verifies N+1 boundaries and immutability against the source.
func TestNewTable(t *testing.T) {
	b, err := binning.NewUniform(0, 1, 2)
	require.NoError(t, err)

	tab, err := binning.NewTable(b)
	require.NoError(t, err)
	assert.Equal(t, 2, tab.NumBins())
	assert.Equal(t, 0, tab.FirstBin())
	lo, hi := tab.Bounds(1)
	assert.Equal(t, 0.5, lo)
	assert.Equal(t, 1.0, hi)

	bounds := tab.Boundaries()
	bounds[0] = -5
	lo, _ = tab.Bounds(0)
	assert.Equal(t, 0.0, lo, "table must not alias returned slices")

	_, err = binning.NewTable(binning.Binning{})
	assert.ErrorIs(t, err, binning.ErrEmptyBinning)
}

// TestTable_Restrict keeps only complete bins inside the range.
func TestTable_Restrict(t *testing.T) {
	b, err := binning.NewUniform(0, 10, 10)
	require.NoError(t, err)
	tab, err := binning.NewTable(b)
	require.NoError(t, err)

	sub, err := tab.Restrict(2, 5.5)
	require.NoError(t, err)
	assert.Equal(t, 3, sub.NumBins())
	assert.Equal(t, 2, sub.FirstBin())
	assert.Equal(t, 2.0, sub.Low())
	assert.Equal(t, 5.0, sub.High())

	nested, err := sub.Restrict(3, 5)
	require.NoError(t, err)
	assert.Equal(t, 3, nested.FirstBin())
	assert.Equal(t, 2, nested.NumBins())

	_, err = tab.Restrict(2.2, 2.8)
	assert.ErrorIs(t, err, binning.ErrEmptyRange)

	_, err = tab.Restrict(4, 3)
	assert.ErrorIs(t, err, binning.ErrUnorderedBinning)
}

// TestTable_CheckPartition validates partition arguments.
func TestTable_CheckPartition(t *testing.T) {
	b, _ := binning.NewUniform(0, 1, 5)
	tab, err := binning.NewTable(b)
	require.NoError(t, err)

	assert.NoError(t, tab.CheckPartition(0, 5, 1))
	assert.NoError(t, tab.CheckPartition(2, 2, 3))
	assert.ErrorIs(t, tab.CheckPartition(0, 6, 1), binning.ErrBinOutOfRange)
	assert.ErrorIs(t, tab.CheckPartition(3, 2, 1), binning.ErrBinOutOfRange)
	assert.ErrorIs(t, tab.CheckPartition(0, 5, 0), binning.ErrBinOutOfRange)
}
