// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

// Package ari computes the Adjusted Rand Index between every pair of
// cluster partition variants across many features, as a single batched
// operation over a dense integer label tensor.
package ari

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"
)

// Engine is the host driver: it validates a partition tensor, sizes the
// work grid, checks the request against the configured scratch budget,
// and dispatches the batch to a Backend.
type Engine struct {
	cfg     Config
	backend Backend

	groupsCompleted atomic.Uint64
	computeNanos    atomic.Uint64
}

// New creates an engine bound to the given backend. Pass nil to use the
// always-available CPU cooperative backend.
func New(cfg Config, backend Backend) (*Engine, error) {
	if backend == nil {
		backend = NewCPUBackend()
	}
	return &Engine{cfg: cfg, backend: backend}, nil
}

// ComputeARI scores every unordered feature pair and ordered variant pair
// in t, returning one float32 per work item in WorkGridDescriptor order.
func (e *Engine) ComputeARI(ctx context.Context, t PartitionTensor) ([]float32, error) {
	if err := t.validate(); err != nil {
		return nil, err
	}

	k, minLabel := alphabetBound(t.Labels)
	if minLabel < 0 {
		return nil, &InvalidInputError{Reason: fmt.Sprintf("labels must be non-negative, found %d", minLabel)}
	}

	grid := WorkGridDescriptor{F: t.F, P: t.P}
	a := grid.Size()

	if err := e.checkScratchBudget(k); err != nil {
		return nil, err
	}

	start := time.Now()
	scores, err := e.backend.ComputeBatch(ctx, t, grid, k, e.cfg)
	if err != nil {
		return nil, &DeviceError{Op: "ComputeBatch", Err: err}
	}
	e.computeNanos.Add(uint64(time.Since(start).Nanoseconds()))
	e.groupsCompleted.Add(uint64(a))

	return scores, nil
}

// checkScratchBudget estimates the per-group scratch footprint (a k*k
// contingency matrix plus a 2*k marginal buffer, all int64, plus the four
// pair-confusion cells) and rejects the request before dispatch if the
// engine's configured limit can't cover even a single work group's
// scratch. The pair-confusion cells are counted too, since the limit
// bounds a group's total footprint, not just its contingency matrix.
func (e *Engine) checkScratchBudget(k int) error {
	const pairConfusionCells = 4
	perGroup := uint64(k*k+2*k+pairConfusionCells) * 8
	if perGroup > e.cfg.ScratchLimitBytes {
		return newResourceExceeded("ComputeARI", perGroup, e.cfg.ScratchLimitBytes)
	}
	return nil
}

// Stats reports cumulative engine activity.
type Stats struct {
	Backend         string
	GroupsCompleted uint64
	ComputeTime     time.Duration
}

// Stats returns a snapshot of cumulative engine activity.
func (e *Engine) Stats() Stats {
	return Stats{
		Backend:         e.backend.Name(),
		GroupsCompleted: e.groupsCompleted.Load(),
		ComputeTime:     time.Duration(e.computeNanos.Load()),
	}
}
