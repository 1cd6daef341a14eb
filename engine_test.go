// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package ari

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(DefaultConfig(), NewCPUBackend())
	require.NoError(t, err)
	return e
}

// TestSeedScenarios runs the six concrete scenarios used to pin down the
// engine's arithmetic end to end.
func TestSeedScenarios(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	t.Run("identical partitions", func(t *testing.T) {
		tensor := PartitionTensor{F: 2, P: 1, N: 4, Labels: []int32{
			0, 0, 1, 1,
			0, 0, 1, 1,
		}}
		out, err := e.ComputeARI(ctx, tensor)
		require.NoError(t, err)
		require.Equal(t, []float32{1.0}, out)
	})

	t.Run("label permutation", func(t *testing.T) {
		tensor := PartitionTensor{F: 2, P: 1, N: 4, Labels: []int32{
			0, 0, 1, 1,
			1, 1, 0, 0,
		}}
		out, err := e.ComputeARI(ctx, tensor)
		require.NoError(t, err)
		require.Equal(t, []float32{1.0}, out)
	})

	t.Run("complete disagreement", func(t *testing.T) {
		tensor := PartitionTensor{F: 2, P: 1, N: 4, Labels: []int32{
			0, 0, 1, 1,
			0, 1, 0, 1,
		}}
		out, err := e.ComputeARI(ctx, tensor)
		require.NoError(t, err)
		require.InDeltaSlice(t, []float32{-0.5}, out, 1e-6)
	})

	t.Run("finite middle ground", func(t *testing.T) {
		tensor := PartitionTensor{F: 2, P: 1, N: 6, Labels: []int32{
			0, 0, 0, 1, 1, 1,
			0, 0, 1, 1, 2, 2,
		}}
		out, err := e.ComputeARI(ctx, tensor)
		require.NoError(t, err)
		require.Len(t, out, 1)
		require.InDelta(t, 0.24, out[0], 5e-3)
	})

	t.Run("three features six equal variants", func(t *testing.T) {
		variant := []int32{0, 0, 1, 1}
		labels := make([]int32, 0, 3*2*4)
		for f := 0; f < 3; f++ {
			for p := 0; p < 2; p++ {
				labels = append(labels, variant...)
			}
		}
		tensor := PartitionTensor{F: 3, P: 2, N: 4, Labels: labels}
		out, err := e.ComputeARI(ctx, tensor)
		require.NoError(t, err)
		require.Len(t, out, 12)
		for _, v := range out {
			require.InDelta(t, 1.0, v, 1e-6)
		}
	})

	t.Run("degenerate single object", func(t *testing.T) {
		tensor := PartitionTensor{F: 2, P: 1, N: 1, Labels: []int32{0, 0}}
		out, err := e.ComputeARI(ctx, tensor)
		require.NoError(t, err)
		require.Equal(t, []float32{1.0}, out)
	})
}

// TestOutputRange checks that every score stays within [-1, 1+eps] for a
// variety of randomly structured but deterministic partitions.
func TestOutputRange(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	tensor := PartitionTensor{F: 3, P: 2, N: 20, Labels: generateDeterministicLabels(3, 2, 20, 4)}
	out, err := e.ComputeARI(ctx, tensor)
	require.NoError(t, err)
	for _, v := range out {
		require.GreaterOrEqual(t, v, float32(-1.0-1e-3))
		require.LessOrEqual(t, v, float32(1.0+1e-3))
	}
}

// TestRelabelingInvariance verifies that applying a bijection to one
// partition's labels leaves its ARI score against the other unchanged.
func TestRelabelingInvariance(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	partA := []int32{0, 0, 0, 1, 1, 1, 2, 2}
	partB := []int32{0, 0, 1, 1, 2, 2, 0, 0}

	tensor1 := PartitionTensor{F: 2, P: 1, N: 8, Labels: append(append([]int32{}, partA...), partB...)}
	out1, err := e.ComputeARI(ctx, tensor1)
	require.NoError(t, err)

	// Relabel partB by the bijection 0->2, 1->0, 2->1.
	bijection := map[int32]int32{0: 2, 1: 0, 2: 1}
	relabeled := make([]int32, len(partB))
	for i, v := range partB {
		relabeled[i] = bijection[v]
	}

	tensor2 := PartitionTensor{F: 2, P: 1, N: 8, Labels: append(append([]int32{}, partA...), relabeled...)}
	out2, err := e.ComputeARI(ctx, tensor2)
	require.NoError(t, err)

	require.InDeltaSlice(t, out1, out2, 1e-6)
}

// TestInvalidInput checks that validation failures surface InvalidInputError
// before any compute work happens.
func TestInvalidInput(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	_, err := e.ComputeARI(ctx, PartitionTensor{F: 2, P: 1, N: 4, Labels: []int32{0, 0, 1}})
	require.Error(t, err)
	var invalid *InvalidInputError
	require.ErrorAs(t, err, &invalid)
}

func TestNegativeLabelRejected(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	tensor := PartitionTensor{F: 2, P: 1, N: 4, Labels: []int32{0, 0, -1, 1, 0, 0, 1, 1}}
	_, err := e.ComputeARI(ctx, tensor)
	require.Error(t, err)
	var invalid *InvalidInputError
	require.ErrorAs(t, err, &invalid)
}

func TestResourceExceeded(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ScratchLimitBytes = 8 // far too small for any K
	e, err := New(cfg, NewCPUBackend())
	require.NoError(t, err)

	tensor := PartitionTensor{F: 2, P: 1, N: 4, Labels: []int32{0, 0, 1, 1, 0, 0, 1, 1}}
	_, err = e.ComputeARI(context.Background(), tensor)
	require.Error(t, err)
	var exceeded *ResourceExceededError
	require.ErrorAs(t, err, &exceeded)
}

func generateDeterministicLabels(f, p, n, k int) []int32 {
	labels := make([]int32, f*p*n)
	seed := 1
	for i := range labels {
		seed = (seed*1103515245 + 12345) & 0x7fffffff
		labels[i] = int32(seed % k)
	}
	return labels
}
