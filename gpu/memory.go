//go:build (linux || windows) && cgo && cuda

package gpu

/*
#cgo LDFLAGS: -lcudart

#include <cuda_runtime.h>
#include <string.h>

// Allocate pinned host memory for faster transfers
void* cuda_host_alloc(size_t size) {
    void* ptr = NULL;
    cudaHostAlloc(&ptr, size, cudaHostAllocDefault);
    return ptr;
}

// Free pinned host memory
void cuda_host_free(void* ptr) {
    if (ptr != NULL) {
        cudaFreeHost(ptr);
    }
}
*/
import "C"
import (
	"encoding/binary"
	"unsafe"

	"github.com/luxfi/mlx"
)

// PinnedBuffer is page-locked host memory, allocated via cudaHostAlloc so
// the driver can DMA out of it directly instead of staging through a
// bounce buffer.
type PinnedBuffer struct {
	ptr  unsafe.Pointer
	size int
}

// NewPinnedBuffer allocates pinned host memory.
func NewPinnedBuffer(size int) *PinnedBuffer {
	if size <= 0 {
		return nil
	}
	ptr := C.cuda_host_alloc(C.size_t(size))
	if ptr == nil {
		return nil
	}
	return &PinnedBuffer{ptr: ptr, size: size}
}

// Free releases the pinned buffer.
func (pb *PinnedBuffer) Free() {
	if pb.ptr != nil {
		C.cuda_host_free(pb.ptr)
		pb.ptr = nil
	}
}

// Bytes returns the buffer as a byte slice (for reading/writing).
func (pb *PinnedBuffer) Bytes() []byte {
	if pb.ptr == nil {
		return nil
	}
	return unsafe.Slice((*byte)(pb.ptr), pb.size)
}

// stagePinned copies flat into a pinned host buffer, normalizing it to a
// fixed little-endian byte layout, and builds the MLX array from that
// staged buffer rather than from flat directly — the whole point of
// staging is that the bytes MLX reads come from page-locked memory.
// Returns ok=false if pinned allocation fails, so the caller falls back
// to a direct upload from flat.
func stagePinned(flat []int64, shape []int) (*mlx.Array, bool) {
	pb := NewPinnedBuffer(len(flat) * 8)
	if pb == nil {
		return nil, false
	}
	defer pb.Free()

	dst := pb.Bytes()
	for i, v := range flat {
		binary.LittleEndian.PutUint64(dst[i*8:], uint64(v))
	}

	staged := unsafe.Slice((*int64)(unsafe.Pointer(&dst[0])), len(flat))
	return mlx.ArrayFromSlice(staged, shape, mlx.Int64), true
}
