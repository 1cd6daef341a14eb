// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package ari

// FinalizeARI computes the Adjusted Rand Index from the four pair-
// confusion counts. The numerator and denominator are accumulated as
// int64 and only converted to float64 for the final division, avoiding
// the precision loss a premature float cast of the counts would
// introduce for large N. The degenerate case fn == 0 && fp == 0 (the two
// partitions agree on every pair) returns a perfect score of 1.0 rather
// than dividing by a zero denominator.
func FinalizeARI(tn, fp, fn, tp int64) float64 {
	if fn == 0 && fp == 0 {
		return 1.0
	}

	numerator := 2 * (tp*tn - fn*fp)
	denominator := (tp+fn)*(fn+tn) + (tp+fp)*(fp+tn)

	if denominator == 0 {
		return 0.0
	}

	return float64(numerator) / float64(denominator)
}
