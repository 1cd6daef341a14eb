//go:build !(linux && cgo && cuda) && !(windows && cgo && cuda)

package gpu

// PinnedBuffer stub: no pinned allocator without CUDA, so stagePinned
// (in stage_nocuda.go) always reports failure and callers upload directly.
type PinnedBuffer struct{}

func NewPinnedBuffer(size int) *PinnedBuffer {
	return nil
}

func (pb *PinnedBuffer) Free() {}

func (pb *PinnedBuffer) Bytes() []byte {
	return nil
}
