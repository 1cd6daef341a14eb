// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package ari

import "context"

// Backend computes ARI scores for every work item in a batch described by
// a WorkGridDescriptor. Implementations own their own notion of a "work
// group": the CPU backend runs one goroutine group per item, the MLX
// backend dispatches the whole batch as a handful of device tensor ops.
type Backend interface {
	// Name identifies the backend for Stats reporting.
	Name() string

	// ComputeBatch returns one ARI score per work item in grid, in grid
	// order. k is the shared label alphabet size across the tensor.
	ComputeBatch(ctx context.Context, tensor PartitionTensor, grid WorkGridDescriptor, k int, cfg Config) ([]float32, error)
}

// WorkGridDescriptor describes the flattened batch of (feature pair,
// variant pair) work items a single ComputeARI call must score.
type WorkGridDescriptor struct {
	F, P int
}

// Size returns A, the total number of work items: one per unordered
// feature pair times every ordered variant pair.
func (g WorkGridDescriptor) Size() int {
	return numPairs(g.F) * g.P * g.P
}

// Unravel maps a linear work item id to (featureA, featureB, variantA,
// variantB), per the index demultiplexer: the outer rectangular split
// picks the feature pair's triangular index, the inner one the ordered
// variant pair.
func (g WorkGridDescriptor) Unravel(id int) (featureA, featureB, variantA, variantB int) {
	pairsPerFeaturePair := g.P * g.P
	featurePairIdx, variantFlat := Unravel(id, pairsPerFeaturePair)
	featureA, featureB = TriangularIndex(g.F, featurePairIdx)
	variantA, variantB = Unravel(variantFlat, g.P)
	return
}
