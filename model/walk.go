// SPDX-License-Identifier: MIT

package model

// Walk visits p and every distinct sub-pdf depth-first in pre-order.
// Components are identified by name; a component reachable through several
// paths is visited once. Returning false from fn stops descent below that
// component.
//
// Complexity: O(V + E) over the component graph.
func Walk(p Pdf, fn func(Pdf) bool) {
	visited := make(map[string]struct{})
	var visit func(Pdf)
	visit = func(cur Pdf) {
		if _, seen := visited[cur.Name()]; seen {
			return
		}
		visited[cur.Name()] = struct{}{}
		if !fn(cur) {
			return
		}
		if c, ok := cur.(Composite); ok {
			for _, sub := range c.Components() {
				visit(sub)
			}
		}
	}
	visit(p)
}

// Components returns p and every distinct sub-pdf in Walk order.
func Components(p Pdf) []Pdf {
	var out []Pdf
	Walk(p, func(c Pdf) bool {
		out = append(out, c)

		return true
	})

	return out
}

// Observables returns the variables of p that are observables of d.
func Observables(p Pdf, d Dataset) []*RealVar {
	obs := d.Observable()
	var out []*RealVar
	for _, v := range p.Variables() {
		if v.Name() == obs.Name() {
			out = append(out, v)
		}
	}

	return out
}

// Parameters returns the variables of p that are not observables of d.
// With stripConstants, constant variables are skipped.
func Parameters(p Pdf, d Dataset, stripConstants bool) []*RealVar {
	obs := Observables(p, d)
	var out []*RealVar
	for _, v := range p.Variables() {
		if Contains(obs, v) || (stripConstants && v.IsConstant()) {
			continue
		}
		out = append(out, v)
	}

	return out
}
