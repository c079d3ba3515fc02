package cpu

import (
	"github.com/born-ml/permute/internal/fastdiv"
	"github.com/born-ml/permute/internal/parallel"
)

// TransposeStrided is the fully general path: it walks the flat output index
// space, decomposes each index into output coordinates through the
// divisor/modulus pairs and gathers the source element through the permuted
// input strides. Handles any rank and any element width.
func (b *Backend) TransposeStrided(elemSize, rank int, inStrides []int, src []byte, outStrides []fastdiv.Divisor, dst []byte, count int) error {
	switch elemSize {
	case 1:
		stridedLoop(rank, inStrides, outStrides, view[uint8](src, count), view[uint8](dst, count), count, b.cfg)
	case 2:
		stridedLoop(rank, inStrides, outStrides, view[uint16](src, count), view[uint16](dst, count), count, b.cfg)
	case 4:
		stridedLoop(rank, inStrides, outStrides, view[uint32](src, count), view[uint32](dst, count), count, b.cfg)
	case 8:
		stridedLoop(rank, inStrides, outStrides, view[uint64](src, count), view[uint64](dst, count), count, b.cfg)
	default:
		stridedBytes(elemSize, rank, inStrides, outStrides, src, dst, count, b.cfg)
	}
	return nil
}

func stridedLoop[T word](rank int, inStr []int, divs []fastdiv.Divisor, src, dst []T, count int, cfg parallel.Config) {
	parallel.ForChunks(count, cfg, func(start, end int) {
		for idx := start; idx < end; idx++ {
			rem := uint32(idx)
			in := 0
			for d := 0; d < rank; d++ {
				q, r := divs[d].DivMod(rem)
				in += int(q) * inStr[d]
				rem = r
			}
			dst[idx] = src[in]
		}
	})
}

// stridedBytes copies elemSize bytes per element for widths with no machine
// word equivalent.
func stridedBytes(elemSize, rank int, inStr []int, divs []fastdiv.Divisor, src, dst []byte, count int, cfg parallel.Config) {
	parallel.ForChunks(count, cfg, func(start, end int) {
		for idx := start; idx < end; idx++ {
			rem := uint32(idx)
			in := 0
			for d := 0; d < rank; d++ {
				q, r := divs[d].DivMod(rem)
				in += int(q) * inStr[d]
				rem = r
			}
			copy(dst[idx*elemSize:(idx+1)*elemSize], src[in*elemSize:(in+1)*elemSize])
		}
	})
}
