package permute

import "github.com/born-ml/permute/internal/tensor"

// MatrixFit recognizes permutations that are algebraically a single dense 2-D
// matrix transpose, for which an accelerated linear-algebra routine beats any
// generic strided copy. It returns the matrix dimensions (m rows, n columns)
// and ok=true on a fit.
//
// Two families qualify:
//   - rank 4 with a batch dimension of 1 left in place, where the remaining
//     three axes form one of the two 3-cycles of the channel-first ↔
//     channel-last conversion (NCHW ↔ NHWC with N == 1);
//   - rank 2 with the axes swapped (a plain matrix transpose).
//
// Everything else falls through to dimension collapsing.
func MatrixFit(perm []int, inputShape tensor.Shape) (m, n int, ok bool) {
	if len(perm) == 4 && inputShape[0] == 1 && perm[0] == 0 {
		switch {
		case perm[1] == 2 && perm[2] == 3 && perm[3] == 1:
			// NCHW -> NHWC: transpose C x (H*W).
			return inputShape[1], inputShape[2] * inputShape[3], true
		case perm[1] == 3 && perm[2] == 1 && perm[3] == 2:
			// NHWC -> NCHW: transpose (H*W) x C.
			return inputShape[1] * inputShape[2], inputShape[3], true
		}
		return 0, 0, false
	}

	if len(perm) == 2 && perm[0] == 1 && perm[1] == 0 {
		return inputShape[0], inputShape[1], true
	}

	return 0, 0, false
}
