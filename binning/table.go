// SPDX-License-Identifier: MIT

package binning

import "math"

// Table is the static per-fit bin table: N+1 strictly increasing boundaries
// where boundary i is the low edge of bin i and boundary N is the high edge
// of the last bin. First is the index of the table's bin 0 inside the
// source binning, so that bin i of the table reads observed weight
// First+i from the dataset.
//
// A Table is immutable after construction and safe for concurrent reads.
type Table struct {
	bounds []float64
	first  int
}

// NewTable derives the bin table of b.
//
// Implementation:
//   - Stage 1: validate the edges (count, finiteness, strict ordering).
//   - Stage 2: copy them into an immutable boundary slice.
//
// Errors: ErrEmptyBinning, ErrNonFiniteEdge, ErrUnorderedBinning.
//
// Complexity: O(N).
func NewTable(b Binning) (*Table, error) {
	if err := validateEdges(b.edges); err != nil {
		return nil, err
	}

	return &Table{bounds: append([]float64(nil), b.edges...)}, nil
}

// Restrict returns the sub-table of bins lying completely inside [lo, hi].
// A bin touching a limit within edgeTolerance of its width is kept.
//
// Errors:
//   - ErrUnorderedBinning if lo >= hi.
//   - ErrEmptyRange if no complete bin lies inside the range.
//
// Complexity: O(N).
func (t *Table) Restrict(lo, hi float64) (*Table, error) {
	if !(lo < hi) {
		return nil, ErrUnorderedBinning
	}

	first, last := -1, -1
	for i := 0; i < t.NumBins(); i++ {
		blo, bhi := t.bounds[i], t.bounds[i+1]
		tol := edgeTolerance * (bhi - blo)
		if blo >= lo-tol && bhi <= hi+tol {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return nil, ErrEmptyRange
	}

	return &Table{
		bounds: append([]float64(nil), t.bounds[first:last+2]...),
		first:  t.first + first,
	}, nil
}

// NumBins returns N.
func (t *Table) NumBins() int { return len(t.bounds) - 1 }

// FirstBin returns the source-binning index of the table's bin 0.
func (t *Table) FirstBin() int { return t.first }

// Bounds returns the (low, high) edges of table bin i.
func (t *Table) Bounds(i int) (lo, hi float64) {
	return t.bounds[i], t.bounds[i+1]
}

// Boundaries returns a copy of the N+1 boundaries.
func (t *Table) Boundaries() []float64 { return append([]float64(nil), t.bounds...) }

// Low returns the first boundary.
func (t *Table) Low() float64 { return t.bounds[0] }

// High returns the last boundary.
func (t *Table) High() float64 { return t.bounds[len(t.bounds)-1] }

// CheckPartition validates a [first, last) partition with stride step.
func (t *Table) CheckPartition(first, last, step int) error {
	if step < 1 || first < 0 || last > t.NumBins() || first > last {
		return ErrBinOutOfRange
	}

	return nil
}

// Width returns the total width covered by the table.
func (t *Table) Width() float64 { return math.Abs(t.High() - t.Low()) }
