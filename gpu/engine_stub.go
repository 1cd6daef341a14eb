//go:build !cgo

// Package gpu provides a batched MLX tensor implementation of the ari
// backend contract. This build has CGO disabled, so MLX is unavailable;
// every entry point reports ErrGPUUnavailable and callers should use the
// root package's CPU cooperative backend instead.
package gpu

import (
	"context"
	"errors"

	"github.com/luxfi/ari"
)

// ErrGPUUnavailable is returned by every Engine method when built with
// CGO disabled.
var ErrGPUUnavailable = errors.New("gpu: MLX backend unavailable (built without cgo)")

// Config mirrors the cgo build's Config so callers can share construction
// code across build configurations.
type Config struct {
	PinnedStaging bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{PinnedStaging: true}
}

// Engine is a stand-in that always reports ErrGPUUnavailable.
type Engine struct{}

// New always fails on a build without CGO.
func New(cfg Config) (*Engine, error) {
	return nil, ErrGPUUnavailable
}

func (e *Engine) Name() string { return "mlx-unavailable" }

func (e *Engine) ComputeBatch(ctx context.Context, tensor ari.PartitionTensor, grid ari.WorkGridDescriptor, k int, cfg ari.Config) ([]float32, error) {
	return nil, ErrGPUUnavailable
}

// Stats mirrors the cgo build's Stats shape.
type Stats struct {
	Backend     string
	DeviceName  string
	BatchesRun  uint64
	ItemsScored uint64
}

// GetStats returns a zero-value snapshot.
func (e *Engine) GetStats() Stats {
	return Stats{Backend: "mlx-unavailable"}
}
