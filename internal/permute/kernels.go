package permute

import (
	"github.com/born-ml/permute/internal/fastdiv"
	"github.com/born-ml/permute/internal/tensor"
)

// MaxFixedRank is the highest collapsed rank the fixed-rank specialized
// kernel path handles. Plans above it take the general strided path.
const MaxFixedRank = 4

// Kernels is the execution surface a device backend provides. The planner
// selects exactly one kernel per transpose; the kernels own all element
// movement and may complete asynchronously under their device's ordering
// contract.
type Kernels interface {
	// TransposeMatrix performs dst = transpose(src) for an m x n row-major
	// matrix of the given element type. Only invoked for floating-point
	// element kinds.
	TransposeMatrix(dt tensor.DataType, m, n int, src, dst []byte) error

	// CanTransposeFixed reports whether the collapsed plan qualifies for the
	// fixed-rank specialized kernel. The predicate encapsulates device
	// constraints (maximum rank, element-width support); the planner treats
	// it as opaque.
	CanTransposeFixed(elemSize, rank int, shape tensor.Shape, perm []int) bool

	// TransposeFixed reorders elements for a plan of rank <= MaxFixedRank.
	// Unused trailing slots of the fixed-capacity arrays carry size 1 and
	// stride 0. shape and inStrides describe the collapsed input; outStrides
	// holds, per input axis, the stride of the output axis that axis maps to.
	TransposeFixed(elemSize, rank int, shape, inStrides, outStrides [MaxFixedRank]int, src, dst []byte, count int) error

	// TransposeStrided is the fully general path: for every flat output
	// index, the divisor/modulus pairs decompose it into output coordinates
	// and inStrides (already permuted into output axis order) locate the
	// source element.
	TransposeStrided(elemSize, rank int, inStrides []int, src []byte, outStrides []fastdiv.Divisor, dst []byte, count int) error
}
