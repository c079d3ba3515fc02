// Package cpu implements the transpose execution kernels on the host CPU:
// the accelerated matrix path, the fixed-rank specialized path and the fully
// general strided path.
package cpu

import (
	"unsafe"

	"github.com/born-ml/permute/internal/parallel"
	"github.com/born-ml/permute/internal/permute"
	"github.com/born-ml/permute/internal/tensor"
)

// Backend implements the transpose kernels on CPU.
type Backend struct {
	device tensor.Device
	cfg    parallel.Config
}

// Compile-time check that Backend implements the kernel surface.
var _ permute.Kernels = (*Backend)(nil)

// New creates a new CPU backend with default parallelism.
func New() *Backend {
	return &Backend{
		device: tensor.CPU,
		cfg:    parallel.DefaultConfig(),
	}
}

// NewWithConfig creates a CPU backend with explicit parallelism settings.
func NewWithConfig(cfg parallel.Config) *Backend {
	return &Backend{
		device: tensor.CPU,
		cfg:    cfg,
	}
}

// Name returns the backend name.
func (b *Backend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (b *Backend) Device() tensor.Device {
	return b.device
}

// word is the set of element widths the typed kernel loops specialize on.
type word interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// view reinterprets a byte buffer as n elements of T.
func view[T any](b []byte, n int) []T {
	if len(b) == 0 || n == 0 {
		return nil
	}
	//nolint:gosec // unsafe.Slice for zero-copy access, length derived from the element count
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), n)
}
