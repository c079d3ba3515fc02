// Package permute implements the transpose planning engine: permutation and
// stride algebra, dimension collapsing, matrix-transpose special casing and
// strategy selection. The planner never touches tensor memory; element
// movement is delegated to a Kernels implementation.
package permute

import (
	"github.com/pkg/errors"

	"github.com/born-ml/permute/internal/tensor"
)

// ValidatePermutation checks that perm has length rank and is a bijection on
// [0, rank). Returns ErrInvalidPermutation otherwise.
func ValidatePermutation(perm []int, rank int) error {
	if len(perm) != rank {
		return errors.Wrapf(ErrInvalidPermutation, "length %d, want rank %d", len(perm), rank)
	}
	seen := make([]bool, rank)
	for i, ax := range perm {
		if ax < 0 || ax >= rank {
			return errors.Wrapf(ErrInvalidPermutation, "axis %d at position %d out of range [0, %d)", ax, i, rank)
		}
		if seen[ax] {
			return errors.Wrapf(ErrInvalidPermutation, "duplicate axis %d", ax)
		}
		seen[ax] = true
	}
	return nil
}

// StridesOf returns the row-major strides of shape, rightmost axis fastest.
// Rank 0 yields an empty stride sequence.
func StridesOf(shape tensor.Shape) []int {
	return shape.ComputeStrides()
}

// PermuteStrides gathers strides through perm: result[i] = strides[perm[i]].
// Fails with ErrInvalidPermutation if perm is not a bijection on the stride
// index range.
func PermuteStrides(strides []int, perm []int) ([]int, error) {
	if err := ValidatePermutation(perm, len(strides)); err != nil {
		return nil, err
	}
	permuted := make([]int, len(strides))
	for i, ax := range perm {
		permuted[i] = strides[ax]
	}
	return permuted, nil
}

// PermuteShape returns the shape of the transposed tensor:
// result[i] = shape[perm[i]]. The permutation must already be validated.
func PermuteShape(shape tensor.Shape, perm []int) tensor.Shape {
	out := make(tensor.Shape, len(shape))
	for i, ax := range perm {
		out[i] = shape[ax]
	}
	return out
}

// InvertPermutation returns the inverse permutation:
// inv[perm[i]] = i. The input must already be validated.
func InvertPermutation(perm []int) []int {
	inv := make([]int, len(perm))
	for i, ax := range perm {
		inv[ax] = i
	}
	return inv
}

// ReversePermutation returns the permutation that reverses all axes. This is
// the default when a caller supplies no explicit permutation.
func ReversePermutation(rank int) []int {
	perm := make([]int, rank)
	for i := range perm {
		perm[i] = rank - 1 - i
	}
	return perm
}

// IsIdentity reports whether perm maps every axis to itself.
func IsIdentity(perm []int) bool {
	for i, ax := range perm {
		if ax != i {
			return false
		}
	}
	return true
}
