// SPDX-License-Identifier: MIT

package model

// Contains reports whether set holds a variable named like v.
func Contains(set []*RealVar, v *RealVar) bool {
	return Find(set, v.Name()) != nil
}

// Find returns the variable called name, or nil.
func Find(set []*RealVar, name string) *RealVar {
	for _, s := range set {
		if s.Name() == name {
			return s
		}
	}

	return nil
}

// Overlaps reports whether a and b share at least one variable by name.
func Overlaps(a, b []*RealVar) bool {
	for _, v := range a {
		if Contains(b, v) {
			return true
		}
	}

	return false
}

// Union appends the variables of each set to dst, skipping names already
// present. Order of first occurrence is preserved.
func Union(dst []*RealVar, sets ...[]*RealVar) []*RealVar {
	for _, set := range sets {
		for _, v := range set {
			if !Contains(dst, v) {
				dst = append(dst, v)
			}
		}
	}

	return dst
}

// Names returns the variable names in order.
func Names(set []*RealVar) []string {
	out := make([]string, len(set))
	for i, v := range set {
		out[i] = v.Name()
	}

	return out
}
