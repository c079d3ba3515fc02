package cpu

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/permute/internal/tensor"
)

// matrixTile is the block edge for the cache-blocked transpose loops.
const matrixTile = 32

// TransposeMatrix performs dst = transpose(src) for an m x n row-major
// matrix. Float64 goes through gonum's dense kernels; the narrower float
// kinds use a cache-blocked loop (their bits move unchanged, so float16
// transposes as raw uint16 words).
func (b *Backend) TransposeMatrix(dt tensor.DataType, m, n int, src, dst []byte) error {
	switch dt {
	case tensor.Float64:
		a := mat.NewDense(m, n, view[float64](src, m*n))
		out := mat.NewDense(n, m, view[float64](dst, m*n))
		out.Copy(a.T())
		return nil
	case tensor.Float32:
		transposeBlocked(m, n, view[uint32](src, m*n), view[uint32](dst, m*n))
		return nil
	case tensor.Float16:
		transposeBlocked(m, n, view[uint16](src, m*n), view[uint16](dst, m*n))
		return nil
	default:
		return errors.Errorf("cpu: matrix transpose unsupported for element type %s", dt)
	}
}

// transposeBlocked writes dst[j*m+i] = src[i*n+j] tile by tile so both
// buffers stay cache resident within a block.
func transposeBlocked[T word](m, n int, src, dst []T) {
	for ib := 0; ib < m; ib += matrixTile {
		iEnd := min(ib+matrixTile, m)
		for jb := 0; jb < n; jb += matrixTile {
			jEnd := min(jb+matrixTile, n)
			for i := ib; i < iEnd; i++ {
				row := i * n
				for j := jb; j < jEnd; j++ {
					dst[j*m+i] = src[row+j]
				}
			}
		}
	}
}
