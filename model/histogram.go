// SPDX-License-Identifier: MIT

package model

import (
	"fmt"
	"sync/atomic"

	"github.com/katalvlaran/binnll/binning"
	"github.com/katalvlaran/binnll/kahan"
)

// Histogram is a binned dataset: per-bin weights and squared weights over
// the binning of its observable.
type Histogram struct {
	x         *RealVar
	bins      binning.Binning
	w         []float64
	w2        []float64
	refreshes atomic.Int64
}

var _ Dataset = (*Histogram)(nil)

// NewHistogram returns an empty histogram over x's binning.
func NewHistogram(x *RealVar) (*Histogram, error) {
	b, err := x.Binning()
	if err != nil {
		return nil, err
	}
	n := b.NumBins()
	if n == 0 {
		return nil, fmt.Errorf("%s: %w", x.Name(), binning.ErrEmptyBinning)
	}

	return &Histogram{x: x, bins: b, w: make([]float64, n), w2: make([]float64, n)}, nil
}

// NewHistogramFromCounts returns an unweighted histogram with the given
// per-bin counts (w² = w).
func NewHistogramFromCounts(x *RealVar, counts []float64) (*Histogram, error) {
	h, err := NewHistogram(x)
	if err != nil {
		return nil, err
	}
	if len(counts) != len(h.w) {
		return nil, fmt.Errorf("%s: %d counts for %d bins: %w", x.Name(), len(counts), len(h.w), ErrBadParameter)
	}
	for i, c := range counts {
		h.w[i], h.w2[i] = c, c
	}

	return h, nil
}

// Fill adds one unit-weight entry at x. Entries outside the binning are
// ignored; the return value reports whether the entry was stored.
func (h *Histogram) Fill(x float64) bool { return h.FillWeighted(x, 1) }

// FillWeighted adds an entry of weight w at x.
func (h *Histogram) FillWeighted(x, w float64) bool {
	i := h.bins.FindBin(x)
	if i < 0 {
		return false
	}
	h.w[i] += w
	h.w2[i] += w * w

	return true
}

// SetBinContent overwrites bin i.
func (h *Histogram) SetBinContent(i int, w, w2 float64) error {
	if i < 0 || i >= len(h.w) {
		return binning.ErrBinOutOfRange
	}
	h.w[i], h.w2[i] = w, w2

	return nil
}

// Observable implements Dataset.
func (h *Histogram) Observable() *RealVar { return h.x }

// Binning implements Dataset.
func (h *Histogram) Binning() binning.Binning { return h.bins }

// NumEntries implements Dataset.
func (h *Histogram) NumEntries() int { return len(h.w) }

// Value implements Dataset: the bin center.
func (h *Histogram) Value(i int) float64 { return h.bins.BinCenter(i) }

// Weight implements Dataset.
func (h *Histogram) Weight(i int) float64 { return h.w[i] }

// WeightSquared implements Dataset.
func (h *Histogram) WeightSquared(i int) float64 { return h.w2[i] }

// SumWeights implements Dataset with compensated summation.
func (h *Histogram) SumWeights() float64 { return kahan.Accumulate(h.w).Result() }

// IsWeighted implements Dataset: true while any bin has w² != w.
//
// Complexity: O(N).
func (h *Histogram) IsWeighted() bool {
	for i, w := range h.w {
		if h.w2[i] != w {
			return true
		}
	}

	return false
}

// RefreshCache implements Dataset. Bin contents are stored directly, so a
// refresh only records that it happened.
func (h *Histogram) RefreshCache(first, last int) { h.refreshes.Add(1) }

// Refreshes returns how many times RefreshCache was called.
func (h *Histogram) Refreshes() int64 { return h.refreshes.Load() }
