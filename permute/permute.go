// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package permute provides the public API of the transpose planning engine.
//
// A transpose is planned and executed in one call:
//
//	import (
//	    "github.com/born-ml/permute/backend/cpu"
//	    "github.com/born-ml/permute/permute"
//	    "github.com/born-ml/permute/tensor"
//	)
//
//	backend := cpu.New()
//	in, _ := tensor.NewRaw(tensor.Shape{2, 3, 4}, tensor.Float32, tensor.CPU)
//	out, err := permute.Apply(backend, in, []int{0, 2, 1})
//
// The planner detects permutations equivalent to a dense 2-D matrix
// transpose, collapses memory-contiguous axis runs to minimize rank, and
// dispatches to exactly one of the backend's three kernels.
package permute

import (
	"github.com/born-ml/permute/internal/permute"
	"github.com/born-ml/permute/internal/tensor"
)

// Kernels is the execution surface a device backend provides.
type Kernels = permute.Kernels

// Plan is a reduced-rank rewrite of a transpose.
type Plan = permute.Plan

// MaxFixedRank is the highest collapsed rank the fixed-rank kernel path
// handles.
const MaxFixedRank = permute.MaxFixedRank

// Sentinel errors surfaced by entry validation.
var (
	ErrInvalidPermutation = permute.ErrInvalidPermutation
	ErrShapeMismatch      = permute.ErrShapeMismatch
)

// Transpose reorders input into the pre-allocated output according to perm.
// A nil perm defaults to reversing all axes.
func Transpose(k Kernels, perm []int, input, output *tensor.RawTensor) error {
	return permute.Transpose(k, perm, input, output)
}

// Apply allocates the permuted output tensor, runs Transpose and returns the
// result.
func Apply(k Kernels, input *tensor.RawTensor, perm []int) (*tensor.RawTensor, error) {
	return permute.Apply(k, input, perm)
}

// Collapse fuses contiguous dimension runs to minimize effective rank before
// execution.
func Collapse(inputShape, outputShape tensor.Shape, perm []int) Plan {
	return permute.Collapse(inputShape, outputShape, perm)
}

// MatrixFit recognizes permutations that are algebraically a single dense
// 2-D matrix transpose.
func MatrixFit(perm []int, inputShape tensor.Shape) (m, n int, ok bool) {
	return permute.MatrixFit(perm, inputShape)
}

// InvertPermutation returns the inverse permutation.
func InvertPermutation(perm []int) []int {
	return permute.InvertPermutation(perm)
}

// ReversePermutation returns the permutation that reverses all axes.
func ReversePermutation(rank int) []int {
	return permute.ReversePermutation(rank)
}
