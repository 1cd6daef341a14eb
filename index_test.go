// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package ari

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnravel(t *testing.T) {
	row, col := Unravel(7, 3)
	require.Equal(t, 2, row)
	require.Equal(t, 1, col)

	row, col = Unravel(0, 5)
	require.Equal(t, 0, row)
	require.Equal(t, 0, col)
}

// TestTriangularIndexRoundTrip checks the self-consistency property named
// in the testable-properties list: mapping idx -> (x,y) -> back-to-idx
// must recover the original idx for every n in a reasonable range.
func TestTriangularIndexRoundTrip(t *testing.T) {
	for n := 2; n <= 200; n++ {
		total := numPairs(n)
		for idx := 0; idx < total; idx++ {
			x, y := TriangularIndex(n, idx)
			require.True(t, 0 <= x && x < y && y < n, "n=%d idx=%d got x=%d y=%d", n, idx, x, y)

			got := rowStart(x, n) + (y - x - 1)
			require.Equal(t, idx, got, "round trip failed for n=%d idx=%d", n, idx)
		}
	}
}

func TestNumPairs(t *testing.T) {
	require.Equal(t, 0, numPairs(0))
	require.Equal(t, 0, numPairs(1))
	require.Equal(t, 1, numPairs(2))
	require.Equal(t, 6, numPairs(4))
}
