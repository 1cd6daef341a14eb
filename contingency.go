// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package ari

import "sync/atomic"

// zeroContingency clears the flat k*k contingency scratch and the 2*k
// marginal scratch, striping the work across threads by flat index so
// every thread touches a contiguous range regardless of k.
func zeroContingency(contingency []int64, marginals []int64, thread, threads int) {
	zeroStripe(contingency, thread, threads)
	zeroStripe(marginals, thread, threads)
}

func zeroStripe(s []int64, thread, threads int) {
	if len(s) == 0 {
		return
	}
	chunk := (len(s) + threads - 1) / threads
	start := thread * chunk
	if start >= len(s) {
		return
	}
	end := start + chunk
	if end > len(s) {
		end = len(s)
	}
	for i := start; i < end; i++ {
		s[i] = 0
	}
}

// accumulateDirect has each thread walk a contiguous stripe of the N
// objects and atomically increment the corresponding contingency cell for
// every object it owns. This is the straightforward builder for N that
// fits comfortably in the scratch budget.
func accumulateDirect(contingency []int64, k int, partA, partB []int32, thread, threads int) {
	n := len(partA)
	chunk := (n + threads - 1) / threads
	start := thread * chunk
	if start >= n {
		return
	}
	end := start + chunk
	if end > n {
		end = n
	}
	for idx := start; idx < end; idx++ {
		a := int(partA[idx])
		b := int(partB[idx])
		atomic.AddInt64(&contingency[a*k+b], 1)
	}
}

// accumulateTiled is the streaming variant for large N: objects are
// processed tile-by-tile, each tile first staged into a small per-thread
// local buffer and only then folded into the shared contingency scratch.
// Staging the tile before accumulating (rather than reading straight out
// of the source slice on every access) is what makes this variant worth
// having over accumulateDirect for large N: each thread's slice of a tile
// is copied into locals, itemsPerThread items at a time, and accumulated
// from there.
func accumulateTiled(contingency []int64, k int, partA, partB []int32, thread, threads, tileSize, itemsPerThread int) {
	n := len(partA)
	localA := make([]int32, 0, itemsPerThread)
	localB := make([]int32, 0, itemsPerThread)
	roundSpan := threads * itemsPerThread

	for tileStart := 0; tileStart < n; tileStart += tileSize {
		tileEnd := tileStart + tileSize
		if tileEnd > n {
			tileEnd = n
		}

		for roundStart := tileStart; roundStart < tileEnd; roundStart += roundSpan {
			start := roundStart + thread*itemsPerThread
			if start >= tileEnd {
				continue
			}
			end := start + itemsPerThread
			if end > tileEnd {
				end = tileEnd
			}

			localA = localA[:0]
			localB = localB[:0]
			for i := start; i < end; i++ {
				localA = append(localA, partA[i])
				localB = append(localB, partB[i])
			}

			for i := range localA {
				a := int(localA[i])
				b := int(localB[i])
				atomic.AddInt64(&contingency[a*k+b], 1)
			}
		}
	}
}
