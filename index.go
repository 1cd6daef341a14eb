// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package ari

import "math"

// Unravel maps a flat, row-major index into (row, col) given the number of
// columns. It is the rectangular half of the linear work-group id mapping
// described for the index demultiplexer: flat/cols, flat mod cols.
func Unravel(flat, cols int) (row, col int) {
	return flat / cols, flat % cols
}

// rowStart returns the number of unordered pairs (x, y), x < y < n, whose
// first element is strictly less than row. This is the closed-form prefix
// count used both to invert the triangular index and to verify a guess.
func rowStart(row, n int) int {
	return row*n - row*(row+1)/2
}

// TriangularIndex inverts the row-major (lexicographic) enumeration of unordered pairs
// (x, y), 0 <= x < y < n, recovering (x, y) from its position idx in that
// enumeration. The candidate x is obtained from the closed-form quadratic
// solution using a float64 sqrt, then corrected by at most one step to
// account for floating point imprecision near exact square roots: the
// guess is only trustworthy once rowStart(x) <= idx < rowStart(x+1) holds
// for integers, so the code re-derives that bound and nudges x by ±1
// until it does.
func TriangularIndex(n, idx int) (x, y int) {
	nf := float64(n)
	idxf := float64(idx)

	b := 2*nf - 1
	disc := b*b - 8*idxf
	if disc < 0 {
		disc = 0
	}
	x = int((b - math.Sqrt(disc)) / 2)

	for x > 0 && rowStart(x, n) > idx {
		x--
	}
	for x < n-1 && rowStart(x+1, n) <= idx {
		x++
	}

	y = idx - rowStart(x, n) + x + 1
	return x, y
}

// numPairs returns the number of unordered pairs (x, y), 0 <= x < y < n.
func numPairs(n int) int {
	if n < 2 {
		return 0
	}
	return n * (n - 1) / 2
}
