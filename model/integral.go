// SPDX-License-Identifier: MIT

package model

// leafIntegral is ∫_lower^upper of a leaf's normalised density.
type leafIntegral struct {
	leaf         *Leaf
	lower, upper *RealVar
}

func (i *leafIntegral) Lower() *RealVar { return i.lower }
func (i *leafIntegral) Upper() *RealVar { return i.upper }

func (i *leafIntegral) Value() float64 {
	return i.leaf.integrate(i.lower.Value(), i.upper.Value())
}

// sumIntegral is Σ coef_k·∫pdf_k. Its bounds are propagated into the
// component integrals on every Value call.
type sumIntegral struct {
	lower, upper *RealVar
	parts        []Integral
	coef         func(k int) float64
}

func (i *sumIntegral) Lower() *RealVar { return i.lower }
func (i *sumIntegral) Upper() *RealVar { return i.upper }

func (i *sumIntegral) Value() float64 {
	lo, hi := i.lower.Value(), i.upper.Value()
	total := 0.0
	for k, p := range i.parts {
		p.Lower().SetValue(lo)
		p.Upper().SetValue(hi)
		total += i.coef(k) * p.Value()
	}

	return total
}
