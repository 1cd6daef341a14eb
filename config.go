// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package ari

import "runtime"

// Config holds engine configuration for batch ARI scoring.
type Config struct {
	// Threads is the number of cooperative goroutines (T) per work group.
	Threads int

	// TileSize is the streaming tile width (S) used by the tiled
	// contingency builder when N exceeds it.
	TileSize int

	// ItemsPerThread bounds how many objects each cooperative thread
	// consumes per tile iteration in the tiled builder.
	ItemsPerThread int

	// MaxConcurrentGroups caps the number of work groups in flight at
	// once, the software analogue of a device occupancy limit.
	MaxConcurrentGroups int

	// ScratchLimitBytes is the maximum scratch footprint (contingency,
	// marginal and pair-confusion cells) of a single work group.
	ScratchLimitBytes uint64
}

// DefaultConfig returns configuration sized for a modest workstation.
func DefaultConfig() Config {
	return Config{
		Threads:             256,
		TileSize:            2048,
		ItemsPerThread:      4,
		MaxConcurrentGroups: runtime.GOMAXPROCS(0),
		ScratchLimitBytes:   256 * 1024 * 1024,
	}
}
