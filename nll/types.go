// SPDX-License-Identifier: MIT

package nll

import (
	"errors"
	"math"
)

var (
	// ErrConfiguration indicates conflicting or invalid options.
	ErrConfiguration = errors.New("nll: invalid configuration")

	// ErrStructural indicates an absent or degenerate binning.
	ErrStructural = errors.New("nll: structural error")

	// ErrZeroSumWeights indicates a weighted extended term over data with
	// a zero sum of weights.
	ErrZeroSumWeights = errors.New("nll: sum of weights is zero")

	// ErrBadPartition indicates a partition outside the bin table.
	ErrBadPartition = errors.New("nll: invalid partition")

	// ErrIntegrationDegraded indicates a bin integral that missed its
	// tolerance while strict integration was requested.
	ErrIntegrationDegraded = errors.New("nll: integration degraded")
)

// Masking thresholds of MaskedTerm.
const (
	// MuFloor is the expectation at or below which a bin is ignored.
	MuFloor = 1e-15

	// WeightFloor is the observed weight at or below which a bin is ignored.
	WeightFloor = 1e-10
)

// MaskedTerm returns −n·log(mu), or 0 when mu <= MuFloor or n <= WeightFloor.
func MaskedTerm(n, mu float64) float64 {
	if mu > MuFloor && n > WeightFloor {
		return -n * math.Log(mu)
	}

	return 0
}

// Term is an objective an optimizer can minimise.
type Term interface {
	// Name identifies the term.
	Name() string

	// Evaluate returns the objective at the current parameter values.
	Evaluate() (float64, error)

	// EnableOffsetting toggles offsetting. Toggling clears a captured offset.
	EnableOffsetting(on bool)

	// SetConstOptimization forwards an advisory optimisation level.
	SetConstOptimization(level int)
}

// Partition is the compensated result of one partition. The pair
// represents Sum − Carry; merge partitions with kahan.Sum.AddCompensated.
type Partition struct {
	Sum   float64
	Carry float64

	// Degraded counts bins whose integral missed its tolerance.
	Degraded int
}

// ExtendedMode selects whether the extended term is added.
type ExtendedMode int

const (
	// ExtendedAuto enables the extended term iff the model can predict an
	// event count.
	ExtendedAuto ExtendedMode = iota

	// ExtendedOn always adds the extended term.
	ExtendedOn

	// ExtendedOff never adds the extended term.
	ExtendedOff
)

// String returns "auto", "on" or "off".
func (m ExtendedMode) String() string {
	switch m {
	case ExtendedOn:
		return "on"
	case ExtendedOff:
		return "off"
	default:
		return "auto"
	}
}

// Split selects how Evaluate distributes bins over workers.
type Split int

const (
	// SplitContiguous gives each worker one contiguous block of bins.
	SplitContiguous Split = iota

	// SplitInterleaved gives worker k the bins k, k+W, k+2W, ...
	SplitInterleaved
)

// String returns "contiguous" or "interleaved".
func (s Split) String() string {
	if s == SplitInterleaved {
		return "interleaved"
	}

	return "contiguous"
}
