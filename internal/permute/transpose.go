package permute

import (
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/born-ml/permute/internal/fastdiv"
	"github.com/born-ml/permute/internal/tensor"
)

// Transpose reorders input into the pre-allocated output according to perm.
// Axis i of the output corresponds to axis perm[i] of the input. A nil perm
// defaults to reversing all axes.
//
// Strategy, in order:
//  1. empty output: succeed without touching any kernel;
//  2. floating-point element type with a matrix fit: the accelerated
//     matrix-transpose kernel, bypassing collapsing entirely;
//  3. otherwise collapse dimensions, then the fixed-rank kernel if the
//     backend's capability predicate admits the plan;
//  4. else the general strided kernel.
//
// Exactly one kernel runs per call. Kernel failures are propagated with
// context attached; on error the output buffer's contents are undefined.
func Transpose(k Kernels, perm []int, input, output *tensor.RawTensor) error {
	rank := input.Shape().Rank()
	if perm == nil {
		perm = ReversePermutation(rank)
	}
	if err := ValidatePermutation(perm, rank); err != nil {
		return err
	}
	if input.DType() != output.DType() {
		return errors.Wrapf(ErrShapeMismatch, "element type %s, output has %s", input.DType(), output.DType())
	}
	want := PermuteShape(input.Shape(), perm)
	if !output.Shape().Equal(want) {
		return errors.Wrapf(ErrShapeMismatch, "output shape %v, want %v (input %v permuted by %v)",
			output.Shape(), want, input.Shape(), perm)
	}

	// Special case when there is a dim value of 0 in the shape.
	if output.NumElements() == 0 {
		return nil
	}

	if input.DType().IsFloat() {
		if m, n, ok := MatrixFit(perm, input.Shape()); ok {
			klog.V(2).Infof("transpose %v by %v: matrix kernel %dx%d", input.Shape(), perm, m, n)
			if err := k.TransposeMatrix(input.DType(), m, n, input.Data(), output.Data()); err != nil {
				return errors.Wrapf(err, "permute: matrix kernel %dx%d", m, n)
			}
			return nil
		}
	}

	plan := Collapse(input.Shape(), output.Shape(), perm)
	inStrides := StridesOf(plan.InputShape)
	outStrides := StridesOf(plan.OutputShape)
	elemSize := input.DType().Size()
	count := output.NumElements()

	if k.CanTransposeFixed(elemSize, plan.Rank, plan.InputShape, plan.Perm) {
		// The fixed kernel walks the input coordinate space, so the output
		// stride for input axis j is that of output axis inv[j].
		inv := InvertPermutation(plan.Perm)
		var shape, in, out [MaxFixedRank]int
		for i := 0; i < MaxFixedRank; i++ {
			shape[i] = 1
		}
		for i := 0; i < plan.Rank; i++ {
			shape[i] = plan.InputShape[i]
			in[i] = inStrides[i]
			out[i] = outStrides[inv[i]]
		}
		klog.V(2).Infof("transpose %v by %v: fixed-rank kernel, collapsed plan %v by %v",
			input.Shape(), perm, plan.InputShape, plan.Perm)
		if err := k.TransposeFixed(elemSize, plan.Rank, shape, in, out, input.Data(), output.Data(), count); err != nil {
			return errors.Wrapf(err, "permute: fixed-rank kernel, rank %d", plan.Rank)
		}
		return nil
	}

	permIn, err := PermuteStrides(inStrides, plan.Perm)
	if err != nil {
		return err
	}
	divs := make([]fastdiv.Divisor, plan.Rank)
	for i := 0; i < plan.Rank; i++ {
		divs[i] = fastdiv.New(uint32(outStrides[i]))
	}
	klog.V(2).Infof("transpose %v by %v: strided kernel, collapsed plan %v by %v",
		input.Shape(), perm, plan.InputShape, plan.Perm)
	if err := k.TransposeStrided(elemSize, plan.Rank, permIn, input.Data(), divs, output.Data(), count); err != nil {
		return errors.Wrapf(err, "permute: strided kernel, rank %d", plan.Rank)
	}
	return nil
}

// Apply allocates the permuted output tensor, runs Transpose and returns the
// result. With no permutation given, all axes are reversed. This is the
// operator-level entry point owning frameworks call once per request.
func Apply(k Kernels, input *tensor.RawTensor, perm []int) (*tensor.RawTensor, error) {
	rank := input.Shape().Rank()
	if perm == nil {
		perm = ReversePermutation(rank)
	}
	if err := ValidatePermutation(perm, rank); err != nil {
		return nil, err
	}

	output, err := tensor.NewRaw(PermuteShape(input.Shape(), perm), input.DType(), input.Device())
	if err != nil {
		return nil, errors.Wrap(err, "permute: allocating output")
	}
	if err := Transpose(k, perm, input, output); err != nil {
		return nil, err
	}
	return output, nil
}
