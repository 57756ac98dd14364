// SPDX-License-Identifier: MIT

package binning

import "errors"

var (
	// ErrEmptyBinning indicates a binning with no bins.
	ErrEmptyBinning = errors.New("binning: binning has no bins")

	// ErrUnorderedBinning indicates edges that are not strictly increasing.
	ErrUnorderedBinning = errors.New("binning: edges must be strictly increasing")

	// ErrNonFiniteEdge indicates a NaN or infinite edge.
	ErrNonFiniteEdge = errors.New("binning: NaN or Inf edge")

	// ErrEmptyRange indicates that a range restriction selected no bin.
	ErrEmptyRange = errors.New("binning: range contains no complete bin")

	// ErrBinOutOfRange indicates a bin index outside [0, NumBins).
	ErrBinOutOfRange = errors.New("binning: bin index out of range")
)

// edgeTolerance is the fraction of a bin width by which a range limit may
// miss a bin edge and still count as touching it.
const edgeTolerance = 1e-10
