// SPDX-License-Identifier: MIT

package model

import (
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/integrate/quad"
)

// normOrder is the Gauss–Legendre order used to normalise shapes without a
// closed-form primitive.
const normOrder = 64

// Leaf is a normalised density over one observable. The shape is
// normalised over the observable's full limits. Leaves with a primitive
// integrate analytically (code 1); Generic leaves do not (code 0).
type Leaf struct {
	name      string
	kind      string
	x         *RealVar
	params    []*RealVar
	shape     func(x float64) float64
	primitive func(x float64) float64 // nil: no closed form

	mu       sync.Mutex // guards the numeric normalisation cache
	cacheKey []float64
	cacheVal float64
}

var _ Pdf = (*Leaf)(nil)

// NewUniform returns a flat density over x.
func NewUniform(name string, x *RealVar) *Leaf {
	return &Leaf{
		name:      name,
		kind:      "uniform",
		x:         x,
		shape:     func(float64) float64 { return 1 },
		primitive: func(v float64) float64 { return v },
	}
}

// NewExponential returns the density ∝ exp(c·x).
func NewExponential(name string, x, c *RealVar) *Leaf {
	return &Leaf{
		name:   name,
		kind:   "exponential",
		x:      x,
		params: []*RealVar{c},
		shape:  func(v float64) float64 { return math.Exp(c.Value() * v) },
		primitive: func(v float64) float64 {
			// expm1 keeps differences exact as k approaches 0
			k := c.Value()
			if k == 0 {
				return v
			}

			return math.Expm1(k*v) / k
		},
	}
}

// NewGaussian returns the density ∝ exp(−½((x−mean)/sigma)²).
func NewGaussian(name string, x, mean, sigma *RealVar) *Leaf {
	return &Leaf{
		name:   name,
		kind:   "gaussian",
		x:      x,
		params: []*RealVar{mean, sigma},
		shape: func(v float64) float64 {
			z := (v - mean.Value()) / sigma.Value()

			return math.Exp(-0.5 * z * z)
		},
		primitive: func(v float64) float64 {
			s := math.Abs(sigma.Value())

			return s * math.Sqrt(math.Pi/2) * math.Erf((v-mean.Value())/(s*math.Sqrt2))
		},
	}
}

// NewPolynomial returns the density ∝ Σ_k coefs[k]·x^k. At least one
// coefficient is required.
func NewPolynomial(name string, x *RealVar, coefs ...*RealVar) (*Leaf, error) {
	if len(coefs) == 0 {
		return nil, fmt.Errorf("polynomial %q: no coefficients: %w", name, ErrBadParameter)
	}

	return &Leaf{
		name:   name,
		kind:   "polynomial",
		x:      x,
		params: coefs,
		shape: func(v float64) float64 {
			// Horner
			r := 0.0
			for k := len(coefs) - 1; k >= 0; k-- {
				r = r*v + coefs[k].Value()
			}

			return r
		},
		primitive: func(v float64) float64 {
			r := 0.0
			for k := len(coefs) - 1; k >= 0; k-- {
				r = r*v + coefs[k].Value()/float64(k+1)
			}

			return r * v
		},
	}, nil
}

// NewGeneric returns a density ∝ fn(x, params) without analytical integral.
// The parameter values are passed to fn in the order given.
func NewGeneric(name string, x *RealVar, fn func(x float64, params []float64) float64, params ...*RealVar) (*Leaf, error) {
	if fn == nil {
		return nil, fmt.Errorf("generic %q: nil shape: %w", name, ErrBadParameter)
	}

	return &Leaf{
		name:   name,
		kind:   "generic",
		x:      x,
		params: params,
		shape: func(v float64) float64 {
			vals := make([]float64, len(params))
			for i, p := range params {
				vals[i] = p.Value()
			}

			return fn(v, vals)
		},
	}, nil
}

// Name implements Pdf.
func (l *Leaf) Name() string { return l.name }

// Kind returns the shape family ("uniform", "gaussian", ...).
func (l *Leaf) Kind() string { return l.kind }

// Observable implements Pdf.
func (l *Leaf) Observable() *RealVar { return l.x }

// Variables implements Pdf.
func (l *Leaf) Variables() []*RealVar {
	return Union([]*RealVar{l.x}, l.params)
}

// Evaluate implements Pdf.
func (l *Leaf) Evaluate(x float64) float64 {
	n := l.norm()
	if n == 0 {
		return 0
	}

	return l.shape(x) / n
}

// ExtendMode implements Pdf. Leaves only describe shapes.
func (l *Leaf) ExtendMode() ExtendMode { return CanNotBeExtended }

// ExpectedEvents implements Pdf.
func (l *Leaf) ExpectedEvents([]*RealVar) float64 { return 0 }

// ExtendedTerm implements Pdf.
func (l *Leaf) ExtendedTerm(float64, []*RealVar) float64 { return 0 }

// AnalyticalIntegral implements Pdf: code 1 when a primitive exists, the
// observable is wanted and the range is known.
func (l *Leaf) AnalyticalIntegral(wanted []*RealVar, rangeName string) int {
	if l.primitive == nil || !Contains(wanted, l.x) || !l.x.HasRange(rangeName) {
		return 0
	}

	return 1
}

// CreateIntegral implements Pdf.
func (l *Leaf) CreateIntegral(over []*RealVar, rangeName string) (Integral, error) {
	if l.AnalyticalIntegral(over, rangeName) == 0 {
		return nil, fmt.Errorf("%s: %w", l.name, ErrNoAnalyticalIntegral)
	}
	lo, hi, err := l.x.Range(rangeName)
	if err != nil {
		return nil, err
	}

	return &leafIntegral{leaf: l, lower: boundVar(l.x, "lo", lo), upper: boundVar(l.x, "hi", hi)}, nil
}

// integrate returns ∫_a^b of the normalised density using the primitive.
func (l *Leaf) integrate(a, b float64) float64 {
	n := l.norm()
	if n == 0 {
		return 0
	}

	return (l.primitive(b) - l.primitive(a)) / n
}

// norm returns the normalisation integral of the shape over the
// observable limits. Numeric norms are cached per parameter point.
func (l *Leaf) norm() float64 {
	lo, hi := l.x.Min(), l.x.Max()
	if l.primitive != nil {
		return l.primitive(hi) - l.primitive(lo)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cacheKey != nil && l.samePoint() {
		return l.cacheVal
	}
	l.cacheVal = quad.Fixed(l.shape, lo, hi, normOrder, quad.Legendre{}, 0)
	l.cacheKey = l.cacheKey[:0]
	for _, p := range l.params {
		l.cacheKey = append(l.cacheKey, p.Value())
	}
	l.cacheKey = append(l.cacheKey, lo, hi)

	return l.cacheVal
}

// samePoint reports whether the cached key equals the current parameter
// values and limits. Caller holds l.mu.
func (l *Leaf) samePoint() bool {
	if len(l.cacheKey) != len(l.params)+2 {
		return false
	}
	for i, p := range l.params {
		if l.cacheKey[i] != p.Value() {
			return false
		}
	}
	n := len(l.params)

	return l.cacheKey[n] == l.x.Min() && l.cacheKey[n+1] == l.x.Max()
}

// boundVar returns a fresh auxiliary bound variable for x.
func boundVar(x *RealVar, suffix string, value float64) *RealVar {
	return NewRealVar(x.Name()+"_bin_"+suffix, value, x.Min(), x.Max())
}
