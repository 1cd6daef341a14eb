// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package ari

import (
	"sync/atomic"

	"github.com/luxfi/ari/internal/cooperative"
)

// pairConfusion holds the four cell counts of the 2x2 pair-confusion
// matrix over the N(N-1)/2 object pairs implied by a contingency table.
type pairConfusion struct {
	tn, fp, fn, tp int64
}

// computeGroup runs one complete work group: zero, accumulate (direct or
// tiled), compute row/column marginals, then reduce to a pair-confusion
// matrix, all as cooperating goroutines synchronized by three barriers.
// It returns the confusion counts for the pair (partA, partB) under a
// shared label alphabet of size k.
func computeGroup(partA, partB []int32, k int, cfg Config) pairConfusion {
	threads := cfg.Threads
	if threads > len(partA) {
		threads = len(partA)
	}
	if threads < 1 {
		threads = 1
	}

	contingency := make([]int64, k*k)
	marginals := make([]int64, 2*k) // [0:k) row sums, [k:2k) col sums
	var result pairConfusion

	group := cooperative.Group{Threads: threads}
	group.Run(func(thread int, barrier *cooperative.Barrier) {
		zeroContingency(contingency, marginals, thread, threads)
		barrier.Wait()

		if cfg.TileSize > 0 && len(partA) > cfg.TileSize {
			accumulateTiled(contingency, k, partA, partB, thread, threads, cfg.TileSize, cfg.ItemsPerThread)
		} else {
			accumulateDirect(contingency, k, partA, partB, thread, threads)
		}
		barrier.Wait()

		accumulateMarginals(contingency, marginals, k, thread, threads)
		barrier.Wait()

		if thread == 0 {
			result = reduceConfusion(contingency, marginals, k, len(partA))
		}
	})

	return result
}

// accumulateMarginals has each thread own a stripe of rows and folds its
// row's cell counts into the row-sum and column-sum scratch with atomic
// adds, since multiple rows may share columns.
func accumulateMarginals(contingency, marginals []int64, k, thread, threads int) {
	chunk := (k + threads - 1) / threads
	start := thread * chunk
	if start >= k {
		return
	}
	end := start + chunk
	if end > k {
		end = k
	}

	for row := start; row < end; row++ {
		var rowTotal int64
		for col := 0; col < k; col++ {
			c := contingency[row*k+col]
			rowTotal += c
			atomic.AddInt64(&marginals[k+col], c)
		}
		atomic.AddInt64(&marginals[row], rowTotal)
	}
}

// reduceConfusion derives the pair-confusion matrix from the contingency
// table and its marginals by counting same-cluster object pairs
// (sum of C(v, 2) over the cells, the row sums and the column sums), all in
// int64 to avoid the 32-bit overflow that a naive accumulator hits once N
// grows past a few tens of thousands.
func reduceConfusion(contingency, marginals []int64, k, n int) pairConfusion {
	tp := sumOfPairs(contingency)
	fn := sumOfPairs(marginals[:k]) - tp
	fp := sumOfPairs(marginals[k:]) - tp

	nInt64 := int64(n)
	totalPairs := nInt64 * (nInt64 - 1) / 2
	tn := totalPairs - tp - fn - fp

	return pairConfusion{tn: tn, fp: fp, fn: fn, tp: tp}
}

// sumOfPairs returns sum_i C(values[i], 2) = sum_i values[i]*(values[i]-1)/2.
func sumOfPairs(values []int64) int64 {
	var total int64
	for _, v := range values {
		total += v * (v - 1) / 2
	}
	return total
}
