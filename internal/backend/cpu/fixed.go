package cpu

import (
	"github.com/pkg/errors"

	"github.com/born-ml/permute/internal/parallel"
	"github.com/born-ml/permute/internal/permute"
	"github.com/born-ml/permute/internal/tensor"
)

// CanTransposeFixed reports whether a collapsed plan qualifies for the
// fixed-rank kernel: rank at most MaxFixedRank and a machine-word element
// width. The shape and permutation impose no further constraints on CPU.
func (b *Backend) CanTransposeFixed(elemSize, rank int, shape tensor.Shape, perm []int) bool {
	if rank > permute.MaxFixedRank {
		return false
	}
	switch elemSize {
	case 1, 2, 4, 8:
		return true
	default:
		return false
	}
}

// TransposeFixed reorders elements with fixed-depth nested loops, one per
// axis. Unused trailing slots carry size 1 and stride 0, so the loop depth
// is constant regardless of the collapsed rank.
func (b *Backend) TransposeFixed(elemSize, rank int, shape, inStrides, outStrides [permute.MaxFixedRank]int, src, dst []byte, count int) error {
	switch elemSize {
	case 1:
		fixedLoop(shape, inStrides, outStrides, view[uint8](src, count), view[uint8](dst, count), b.cfg)
	case 2:
		fixedLoop(shape, inStrides, outStrides, view[uint16](src, count), view[uint16](dst, count), b.cfg)
	case 4:
		fixedLoop(shape, inStrides, outStrides, view[uint32](src, count), view[uint32](dst, count), b.cfg)
	case 8:
		fixedLoop(shape, inStrides, outStrides, view[uint64](src, count), view[uint64](dst, count), b.cfg)
	default:
		return errors.Errorf("cpu: fixed-rank transpose unsupported for element size %d", elemSize)
	}
	return nil
}

func fixedLoop[T word](shape, inStr, outStr [permute.MaxFixedRank]int, src, dst []T, cfg parallel.Config) {
	// Parallelism splits the outermost axis; rescale the sequential cutoff
	// from elements to outer iterations.
	inner := shape[1] * shape[2] * shape[3]
	cfg.MinChunkSize = max(1, cfg.MinChunkSize/max(inner, 1))

	parallel.ForChunks(shape[0], cfg, func(start, end int) {
		for d0 := start; d0 < end; d0++ {
			in0, out0 := d0*inStr[0], d0*outStr[0]
			for d1 := 0; d1 < shape[1]; d1++ {
				in1, out1 := in0+d1*inStr[1], out0+d1*outStr[1]
				for d2 := 0; d2 < shape[2]; d2++ {
					in, out := in1+d2*inStr[2], out1+d2*outStr[2]
					for d3 := 0; d3 < shape[3]; d3++ {
						dst[out] = src[in]
						in += inStr[3]
						out += outStr[3]
					}
				}
			}
		}
	})
}
