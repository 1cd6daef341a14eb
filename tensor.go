// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package ari

import (
	"fmt"
	"runtime"
	"sync"
)

// PartitionTensor is a row-major (F, P, N) view over integer cluster
// labels: F features, each with P partition variants over the same N
// objects. The engine borrows Labels for the duration of a call; it does
// not retain or mutate it.
type PartitionTensor struct {
	F, P, N int
	Labels  []int32
}

func (t PartitionTensor) validate() error {
	if t.F < 1 {
		return &InvalidInputError{Reason: fmt.Sprintf("F must be >= 1, got %d", t.F)}
	}
	if t.P < 1 {
		return &InvalidInputError{Reason: fmt.Sprintf("P must be >= 1, got %d", t.P)}
	}
	if t.N < 1 {
		return &InvalidInputError{Reason: fmt.Sprintf("N must be >= 1, got %d", t.N)}
	}
	want := t.F * t.P * t.N
	if len(t.Labels) != want {
		return &InvalidInputError{Reason: fmt.Sprintf("Labels has %d elements, want F*P*N=%d", len(t.Labels), want)}
	}
	return nil
}

// Partition returns the label slice for feature f, variant p.
func (t PartitionTensor) Partition(f, p int) []int32 {
	start := (f*t.P + p) * t.N
	return t.Labels[start : start+t.N]
}

// alphabetBound computes K = max(label)+1 over the whole tensor, split
// across goroutines with a partial-max-per-chunk fan-out and a final
// sequential reduce, matching the cooperative style used for the heavier
// per-pair reductions elsewhere in the engine. It also reports the
// smallest label seen, so callers can reject negative labels up front.
func alphabetBound(labels []int32) (k int, minLabel int32) {
	if len(labels) == 0 {
		return 0, 0
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > len(labels) {
		workers = 1
	}
	chunk := (len(labels) + workers - 1) / workers

	type partial struct {
		max int32
		min int32
	}
	var partials []partial
	var mu sync.Mutex

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		if start >= len(labels) {
			break
		}
		end := start + chunk
		if end > len(labels) {
			end = len(labels)
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			maxV := labels[start]
			minV := labels[start]
			for _, v := range labels[start+1 : end] {
				if v > maxV {
					maxV = v
				}
				if v < minV {
					minV = v
				}
			}
			mu.Lock()
			partials = append(partials, partial{max: maxV, min: minV})
			mu.Unlock()
		}(start, end)
	}
	wg.Wait()

	maxV := partials[0].max
	minV := partials[0].min
	for _, p := range partials[1:] {
		if p.max > maxV {
			maxV = p.max
		}
		if p.min < minV {
			minV = p.min
		}
	}

	return int(maxV) + 1, minV
}
