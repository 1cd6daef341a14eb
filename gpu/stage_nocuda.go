//go:build cgo && !((linux || windows) && cuda)

package gpu

import "github.com/luxfi/mlx"

// stagePinned has no pinned-memory fast path on Metal/CPU-only MLX
// builds; it always reports failure so the caller uploads directly.
func stagePinned(flat []int64, shape []int) (*mlx.Array, bool) {
	return nil, false
}
