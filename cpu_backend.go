// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package ari

import (
	"context"
	"sync"
)

// CPUBackend runs one cooperative goroutine group per work item, bounded
// by a semaphore sized at Config.MaxConcurrentGroups, the software
// analogue of device occupancy limits. It is always available and is
// what every seed and property test in this module runs against.
type CPUBackend struct{}

// NewCPUBackend returns the always-available goroutine-cooperative backend.
func NewCPUBackend() *CPUBackend {
	return &CPUBackend{}
}

func (b *CPUBackend) Name() string { return "cpu-cooperative" }

func (b *CPUBackend) ComputeBatch(ctx context.Context, tensor PartitionTensor, grid WorkGridDescriptor, k int, cfg Config) ([]float32, error) {
	a := grid.Size()
	scores := make([]float32, a)

	maxConcurrent := cfg.MaxConcurrentGroups
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	sem := make(chan struct{}, maxConcurrent)

	var wg sync.WaitGroup

	for id := 0; id < a; id++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		sem <- struct{}{}
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			defer func() { <-sem }()

			featureA, featureB, variantA, variantB := grid.Unravel(id)
			partA := tensor.Partition(featureA, variantA)
			partB := tensor.Partition(featureB, variantB)

			confusion := computeGroup(partA, partB, k, cfg)
			scores[id] = float32(FinalizeARI(confusion.tn, confusion.fp, confusion.fn, confusion.tp))
		}(id)
	}
	wg.Wait()

	return scores, nil
}
