// SPDX-License-Identifier: MIT

// Package kahan provides compensated (Kahan) summation for long running
// likelihood accumulations.
//
// 🚀 Why compensated summation?
//
//	A binned fit adds thousands of per-bin contributions on every call and
//	an optimizer calls it thousands of times. Naive float64 summation loses
//	the low-order bits of small terms added to a large running total; the
//	lost bits show up as noise in finite-difference gradients.
//
// ✨ Key features:
//   - Sum: zero-value ready (sum, carry) accumulator
//   - Add / Sub with the classic y = x − c; t = s + y; c = (t − s) − y update
//   - AddCompensated merges another accumulator (partition results, stored offsets)
//   - Accumulate / Naive helpers for slices
//
// ⚙️ Usage:
//
//	var s kahan.Sum
//	for _, term := range terms {
//		s.Add(term)
//	}
//	total := s.Result()
//
// Complexity: O(1) per addition, no allocations.
package kahan
