// SPDX-License-Identifier: MIT

package binning

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Binning is an ordered, non-overlapping partition of an interval into bins.
// Bin i is the half-open interval [edges[i], edges[i+1]).
type Binning struct {
	edges []float64
}

// NewUniform returns n equal-width bins spanning [lo, hi].
//
// Errors:
//   - ErrEmptyBinning if n < 1.
//   - ErrNonFiniteEdge if lo or hi is not finite.
//   - ErrUnorderedBinning if lo >= hi.
func NewUniform(lo, hi float64, n int) (Binning, error) {
	if n < 1 {
		return Binning{}, ErrEmptyBinning
	}
	if !finite(lo) || !finite(hi) {
		return Binning{}, ErrNonFiniteEdge
	}
	if lo >= hi {
		return Binning{}, ErrUnorderedBinning
	}

	edges := make([]float64, n+1)
	floats.Span(edges, lo, hi)

	return Binning{edges: edges}, nil
}

// NewVariable returns a binning with the given edges. The slice is copied.
func NewVariable(edges []float64) (Binning, error) {
	if err := validateEdges(edges); err != nil {
		return Binning{}, err
	}

	return Binning{edges: append([]float64(nil), edges...)}, nil
}

// NumBins returns the number of bins.
func (b Binning) NumBins() int {
	if len(b.edges) < 2 {
		return 0
	}

	return len(b.edges) - 1
}

// Edges returns a copy of the N+1 bin edges.
func (b Binning) Edges() []float64 { return append([]float64(nil), b.edges...) }

// Low returns the lower edge of the binning.
func (b Binning) Low() float64 { return b.edges[0] }

// High returns the upper edge of the binning.
func (b Binning) High() float64 { return b.edges[len(b.edges)-1] }

// BinLow returns the low edge of bin i.
func (b Binning) BinLow(i int) float64 { return b.edges[i] }

// BinHigh returns the high edge of bin i.
func (b Binning) BinHigh(i int) float64 { return b.edges[i+1] }

// BinCenter returns the midpoint of bin i.
func (b Binning) BinCenter(i int) float64 { return 0.5 * (b.edges[i] + b.edges[i+1]) }

// BinWidth returns the width of bin i.
func (b Binning) BinWidth(i int) float64 { return b.edges[i+1] - b.edges[i] }

// FindBin returns the index of the bin containing x, or -1 when x lies
// outside [Low, High). The upper edge of the last bin is excluded.
func (b Binning) FindBin(x float64) int {
	n := b.NumBins()
	if n == 0 || x < b.edges[0] || x >= b.edges[n] || math.IsNaN(x) {
		return -1
	}
	// first edge strictly greater than x, minus one
	return sort.SearchFloat64s(b.edges, math.Nextafter(x, math.Inf(1))) - 1
}

// validateEdges checks count, finiteness and strict ordering.
func validateEdges(edges []float64) error {
	if len(edges) < 2 {
		return ErrEmptyBinning
	}
	if floats.HasNaN(edges) {
		return ErrNonFiniteEdge
	}
	for i, e := range edges {
		if math.IsInf(e, 0) {
			return ErrNonFiniteEdge
		}
		if i > 0 && e <= edges[i-1] {
			return fmt.Errorf("edge %d (%g <= %g): %w", i, e, edges[i-1], ErrUnorderedBinning)
		}
	}

	return nil
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
