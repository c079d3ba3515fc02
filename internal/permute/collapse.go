package permute

import "github.com/born-ml/permute/internal/tensor"

// Plan is a reduced-rank rewrite of a transpose. Executing the plan moves
// every element exactly where the original (shape, permutation) pair would,
// but adjacent output axes whose permutation values are consecutive have been
// fused into one axis. A Plan is a fresh value; the caller's shapes and
// permutation are never mutated.
type Plan struct {
	Rank        int
	InputShape  tensor.Shape
	OutputShape tensor.Shape
	Perm        []int
}

// Collapse fuses contiguous dimension runs to minimize effective rank before
// execution.
//
// The scan walks output axis i from highest to lowest. Whenever
// perm[i-1]+1 == perm[i], the two axes are memory-contiguous under the
// permutation and are merged: permutation entries above perm[i] close the
// gap, the permutation shifts left at i, the input dimension perm[i-1]
// absorbs perm[i]'s size, and the output shape fuses symmetrically at i-1/i.
// The descending order keeps not-yet-visited lower indices valid, so a
// single pass suffices; surviving entries are shifted, never re-evaluated.
//
// Collapse is total: it cannot fail for a validated permutation, and it
// performs at most rank-1 fusions.
func Collapse(inputShape, outputShape tensor.Shape, perm []int) Plan {
	rank := len(perm)
	newRank := rank
	newPerm := append([]int(nil), perm...)
	newInput := inputShape.Clone()
	newOutput := outputShape.Clone()

	for i := rank - 1; i > 0; i-- {
		// Read the working permutation, not the caller's: earlier fusions
		// have already closed gaps in the axis numbering, and the stale
		// original values would index the wrong dimension slots.
		curr := newPerm[i]
		prev := newPerm[i-1]
		if prev+1 != curr {
			continue
		}

		// Entries above curr close the gap left by the removed axis.
		for j := 0; j < newRank; j++ {
			if newPerm[j] > curr {
				newPerm[j]--
			}
		}
		// Drop position i from the permutation.
		for j := i + 1; j < newRank; j++ {
			newPerm[j-1] = newPerm[j]
		}

		// Input axis prev absorbs axis curr.
		newInput[prev] *= newInput[curr]
		newInput[curr] = 1
		for j := curr + 1; j < newRank; j++ {
			newInput[j-1] = newInput[j]
		}
		newInput[newRank-1] = 1

		// Symmetric fusion of the output shape at i-1/i.
		newOutput[i-1] *= newOutput[i]
		newOutput[i] = 1
		for j := i + 1; j < newRank; j++ {
			newOutput[j-1] = newOutput[j]
		}
		newOutput[newRank-1] = 1

		newRank--
	}

	return Plan{
		Rank:        newRank,
		InputShape:  newInput[:newRank],
		OutputShape: newOutput[:newRank],
		Perm:        newPerm[:newRank],
	}
}
