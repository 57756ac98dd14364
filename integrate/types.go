// SPDX-License-Identifier: MIT

package integrate

import (
	"errors"
	"fmt"
)

// ErrNotConverged reports that the subdivision or extrapolation budget was
// exhausted before the tolerance was met.
var ErrNotConverged = errors.New("integrate: tolerance not reached within budget")

// ErrUnknownKind reports an unsupported backend kind.
var ErrUnknownKind = errors.New("integrate: unknown backend kind")

// Kind names a backend variant.
type Kind int

const (
	// KindAdaptive is adaptive Gauss–Legendre quadrature.
	KindAdaptive Kind = iota

	// KindRomberg is Romberg extrapolation.
	KindRomberg

	// KindAnalytical is closed-form integration.
	KindAnalytical
)

// String returns the lowercase backend name.
func (k Kind) String() string {
	switch k {
	case KindAdaptive:
		return "adaptive"
	case KindRomberg:
		return "romberg"
	case KindAnalytical:
		return "analytical"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind converts a backend name into a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "adaptive":
		return KindAdaptive, nil
	case "romberg":
		return KindRomberg, nil
	case "analytical":
		return KindAnalytical, nil
	default:
		return 0, fmt.Errorf("%q: %w", s, ErrUnknownKind)
	}
}

// Status describes the last Integrate call of a backend.
type Status struct {
	// Converged is false when the budget ran out before the tolerance.
	Converged bool

	// AbsErr is the absolute error estimate (0 for analytical backends).
	AbsErr float64

	// Evaluations counts density evaluations.
	Evaluations int

	// Intervals is the number of subintervals (adaptive) or the
	// extrapolation level reached (Romberg).
	Intervals int
}

// Err returns ErrNotConverged when the last call did not converge.
func (s Status) Err() error {
	if s.Converged {
		return nil
	}

	return ErrNotConverged
}

// Backend integrates a bound density over [lo, hi]. Implementations are
// not safe for concurrent use.
type Backend interface {
	Integrate(lo, hi float64) float64
	Kind() Kind
	Status() Status
}
