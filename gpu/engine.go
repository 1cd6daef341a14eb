//go:build cgo

// Package gpu provides a batched MLX tensor implementation of the ARI
// backend contract. MLX supports CPU and GPU execution on all platforms
// via CGO bindings; when CGO is disabled, callers fall back to the
// always-available goroutine-cooperative backend in the root package.
//
// Backends: Metal GPU (macOS/iOS), CUDA GPU (Linux/Windows), CPU (all).
package gpu

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/luxfi/ari"
	"github.com/luxfi/mlx"
)

// Config exposes MLX backend knobs not covered by ari.Config.
type Config struct {
	// PinnedStaging enables host-pinned staging buffers (memory.go) for
	// the upload of the partition tensor on CUDA hosts. Ignored on
	// Metal and CPU-only builds.
	PinnedStaging bool
}

// DefaultConfig returns the default MLX backend configuration.
func DefaultConfig() Config {
	return Config{PinnedStaging: true}
}

// Engine is the MLX-backed implementation of ari.Backend: it scores an
// entire batch of work items as a handful of device tensor operations
// rather than one dispatch per item.
type Engine struct {
	cfg Config

	backend mlx.Backend
	device  *mlx.Device

	batchesRun  atomic.Uint64
	itemsScored atomic.Uint64
}

// New initializes the MLX backend, auto-detecting Metal/CUDA/CPU.
func New(cfg Config) (*Engine, error) {
	backend := mlx.GetBackend()
	device := mlx.GetDevice()

	fmt.Printf("GPU ARI engine initializing...\n")
	fmt.Printf("  Backend: %s\n", backend)
	fmt.Printf("  Device: %s\n", device.Name)
	fmt.Printf("  Memory: %.1f GB\n", float64(device.Memory)/(1024*1024*1024))

	return &Engine{cfg: cfg, backend: backend, device: device}, nil
}

// Name identifies the backend for ari.Engine.Stats.
func (e *Engine) Name() string {
	return fmt.Sprintf("mlx-%v", e.backend)
}

// ComputeBatch implements ari.Backend. It one-hot encodes every work
// item's pair of partitions into [A, N, K] device tensors, builds all A
// contingency matrices with a single batched matmul, and reduces
// marginals and pair counts as device-side tensor ops, matching the
// cooperative CPU backend's arithmetic exactly but as one data-parallel
// program instead of A independent goroutine groups.
func (e *Engine) ComputeBatch(ctx context.Context, tensor ari.PartitionTensor, grid ari.WorkGridDescriptor, k int, cfg ari.Config) ([]float32, error) {
	a := grid.Size()
	n := tensor.N

	flatA := make([]int64, a*n)
	flatB := make([]int64, a*n)
	for id := 0; id < a; id++ {
		featureA, featureB, variantA, variantB := grid.Unravel(id)
		partA := tensor.Partition(featureA, variantA)
		partB := tensor.Partition(featureB, variantB)
		for i := 0; i < n; i++ {
			flatA[id*n+i] = int64(partA[i])
			flatB[id*n+i] = int64(partB[i])
		}
	}

	labelsA, err := e.stageLabels(flatA, []int{a, n})
	if err != nil {
		return nil, err
	}
	labelsB, err := e.stageLabels(flatB, []int{a, n})
	if err != nil {
		return nil, err
	}

	oneHotA := oneHot(labelsA, a, n, k) // [a, n, k]
	oneHotB := oneHot(labelsB, a, n, k) // [a, n, k]

	oneHotAT := mlx.Transpose(oneHotA, []int{0, 2, 1}) // [a, k, n]
	contingency := mlx.MatMul(oneHotAT, oneHotB)        // [a, k, k]

	rowSums := mlx.Sum(contingency, []int{2}) // [a, k]
	colSums := mlx.Sum(contingency, []int{1}) // [a, k]

	cellPairs := sumOfPairs(mlx.Reshape(contingency, []int{a, k * k}), a, k*k)
	rowPairs := sumOfPairs(rowSums, a, k)
	colPairs := sumOfPairs(colSums, a, k)

	one := mlx.Full([]int{a}, int64(1), mlx.Int64)
	two := mlx.Full([]int{a}, int64(2), mlx.Int64)
	nArr := mlx.Full([]int{a}, int64(n), mlx.Int64)

	totalPairs := mlx.FloorDivide(mlx.Multiply(nArr, mlx.Subtract(nArr, one)), two)

	tp := cellPairs
	fn := mlx.Subtract(rowPairs, tp)
	fp := mlx.Subtract(colPairs, tp)
	tn := mlx.Subtract(totalPairs, mlx.Add(tp, mlx.Add(fn, fp)))

	mlx.Eval(tn, fp, fn, tp)
	mlx.Synchronize()

	tnVals := mlx.AsSlice[int64](tn)
	fpVals := mlx.AsSlice[int64](fp)
	fnVals := mlx.AsSlice[int64](fn)
	tpVals := mlx.AsSlice[int64](tp)

	scores := make([]float32, a)
	for i := 0; i < a; i++ {
		scores[i] = float32(ari.FinalizeARI(tnVals[i], fpVals[i], fnVals[i], tpVals[i]))
	}

	e.batchesRun.Add(1)
	e.itemsScored.Add(uint64(a))

	return scores, nil
}

// stageLabels uploads a flattened label slice to the device, routing
// through a pinned host buffer on CUDA hosts when PinnedStaging is set.
func (e *Engine) stageLabels(flat []int64, shape []int) (*mlx.Array, error) {
	if e.cfg.PinnedStaging {
		if arr, ok := stagePinned(flat, shape); ok {
			return arr, nil
		}
	}
	return mlx.ArrayFromSlice(flat, shape, mlx.Int64), nil
}

// oneHot expands an [a, n] int64 label tensor into an [a, n, k] int64
// indicator tensor via a broadcast comparison against 0..k-1.
func oneHot(labels *mlx.Array, a, n, k int) *mlx.Array {
	iota := mlx.Arange(int64(0), int64(k), int64(1), mlx.Int64)
	iota = mlx.Reshape(iota, []int{1, 1, k})
	labelsExp := mlx.Reshape(labels, []int{a, n, 1})
	eq := mlx.Equal(labelsExp, iota)
	return mlx.AsType(eq, mlx.Int64)
}

// sumOfPairs computes sum_j C(values[i,j], 2) along the last axis of an
// [a, width] int64 tensor, returning an [a] tensor, the device-side twin
// of the CPU backend's sumOfPairs helper.
func sumOfPairs(values *mlx.Array, a, width int) *mlx.Array {
	one := mlx.Full([]int{a, width}, int64(1), mlx.Int64)
	two := mlx.Full([]int{a, width}, int64(2), mlx.Int64)
	product := mlx.Multiply(values, mlx.Subtract(values, one))
	halved := mlx.FloorDivide(product, two)
	return mlx.Sum(halved, []int{1})
}

// Stats reports cumulative engine activity for diagnostics.
type Stats struct {
	Backend     string
	DeviceName  string
	BatchesRun  uint64
	ItemsScored uint64
}

// GetStats returns a snapshot of cumulative engine activity.
func (e *Engine) GetStats() Stats {
	return Stats{
		Backend:     fmt.Sprintf("%v", e.backend),
		DeviceName:  e.device.Name,
		BatchesRun:  e.batchesRun.Load(),
		ItemsScored: e.itemsScored.Load(),
	}
}
