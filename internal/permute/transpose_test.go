package permute

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/permute/internal/fastdiv"
	"github.com/born-ml/permute/internal/tensor"
)

// mockKernels is a naive but correct Kernels implementation that records
// every invocation, so tests can assert which path the planner selected.
type mockKernels struct {
	matrixCalls  int
	fixedCalls   int
	stridedCalls int

	allowFixed bool  // value returned by CanTransposeFixed
	matrixErr  error // injected failure for the matrix kernel
	stridedErr error // injected failure for the strided kernel
}

var _ Kernels = (*mockKernels)(nil)

func (m *mockKernels) TransposeMatrix(dt tensor.DataType, rows, cols int, src, dst []byte) error {
	m.matrixCalls++
	if m.matrixErr != nil {
		return m.matrixErr
	}
	es := dt.Size()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			in := i*cols + j
			out := j*rows + i
			copy(dst[out*es:(out+1)*es], src[in*es:(in+1)*es])
		}
	}
	return nil
}

func (m *mockKernels) CanTransposeFixed(elemSize, rank int, shape tensor.Shape, perm []int) bool {
	return m.allowFixed && rank <= MaxFixedRank
}

func (m *mockKernels) TransposeFixed(elemSize, rank int, shape, inStrides, outStrides [MaxFixedRank]int, src, dst []byte, count int) error {
	m.fixedCalls++
	for d0 := 0; d0 < shape[0]; d0++ {
		for d1 := 0; d1 < shape[1]; d1++ {
			for d2 := 0; d2 < shape[2]; d2++ {
				for d3 := 0; d3 < shape[3]; d3++ {
					in := d0*inStrides[0] + d1*inStrides[1] + d2*inStrides[2] + d3*inStrides[3]
					out := d0*outStrides[0] + d1*outStrides[1] + d2*outStrides[2] + d3*outStrides[3]
					copy(dst[out*elemSize:(out+1)*elemSize], src[in*elemSize:(in+1)*elemSize])
				}
			}
		}
	}
	return nil
}

func (m *mockKernels) TransposeStrided(elemSize, rank int, inStrides []int, src []byte, outStrides []fastdiv.Divisor, dst []byte, count int) error {
	m.stridedCalls++
	if m.stridedErr != nil {
		return m.stridedErr
	}
	for idx := 0; idx < count; idx++ {
		rem := uint32(idx)
		in := 0
		for d := 0; d < rank; d++ {
			q, r := outStrides[d].DivMod(rem)
			in += int(q) * inStrides[d]
			rem = r
		}
		copy(dst[idx*elemSize:(idx+1)*elemSize], src[in*elemSize:(in+1)*elemSize])
	}
	return nil
}

func (m *mockKernels) calls() int {
	return m.matrixCalls + m.fixedCalls + m.stridedCalls
}

// newFilled builds a tensor whose byte buffer holds distinct element patterns.
func newFilled(t *testing.T, shape tensor.Shape, dt tensor.DataType) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, dt, tensor.CPU)
	require.NoError(t, err)
	copy(raw.Data(), sequentialBytes(shape.NumElements(), dt.Size()))
	return raw
}

func newOutput(t *testing.T, in *tensor.RawTensor, perm []int) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(PermuteShape(in.Shape(), perm), in.DType(), in.Device())
	require.NoError(t, err)
	return raw
}

func TestTransposeValidation(t *testing.T) {
	k := &mockKernels{}
	in := newFilled(t, tensor.Shape{2, 3}, tensor.Float32)

	t.Run("permutation length mismatch", func(t *testing.T) {
		out := newOutput(t, in, []int{1, 0})
		err := Transpose(k, []int{0}, in, out)
		assert.ErrorIs(t, err, ErrInvalidPermutation)
	})

	t.Run("non bijective permutation", func(t *testing.T) {
		out := newOutput(t, in, []int{1, 0})
		err := Transpose(k, []int{1, 1}, in, out)
		assert.ErrorIs(t, err, ErrInvalidPermutation)
	})

	t.Run("output shape not permuted input", func(t *testing.T) {
		out, err := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32, tensor.CPU)
		require.NoError(t, err)
		err = Transpose(k, []int{1, 0}, in, out)
		assert.ErrorIs(t, err, ErrShapeMismatch)
	})

	t.Run("element type mismatch", func(t *testing.T) {
		out, err := tensor.NewRaw(tensor.Shape{3, 2}, tensor.Float64, tensor.CPU)
		require.NoError(t, err)
		err = Transpose(k, []int{1, 0}, in, out)
		assert.ErrorIs(t, err, ErrShapeMismatch)
	})

	// Validation failures must never reach a kernel.
	assert.Zero(t, k.calls())
}

func TestTransposeZeroSizeShortCircuit(t *testing.T) {
	k := &mockKernels{allowFixed: true}
	in := newFilled(t, tensor.Shape{2, 0, 4}, tensor.Float32)

	forEachPermutation(3, func(perm []int) {
		out := newOutput(t, in, perm)
		require.NoError(t, Transpose(k, perm, in, out))
	})

	assert.Zero(t, k.calls(), "empty outputs must not invoke any kernel")
}

func TestTransposeStrategySelection(t *testing.T) {
	t.Run("float matrix fit takes the matrix kernel", func(t *testing.T) {
		k := &mockKernels{allowFixed: true}
		in := newFilled(t, tensor.Shape{1, 3, 4, 5}, tensor.Float32)
		out := newOutput(t, in, []int{0, 2, 3, 1})

		require.NoError(t, Transpose(k, []int{0, 2, 3, 1}, in, out))
		assert.Equal(t, 1, k.matrixCalls)
		assert.Zero(t, k.fixedCalls)
		assert.Zero(t, k.stridedCalls)
	})

	t.Run("integer matrix shape skips the matrix kernel", func(t *testing.T) {
		k := &mockKernels{allowFixed: true}
		in := newFilled(t, tensor.Shape{2, 3}, tensor.Int32)
		out := newOutput(t, in, []int{1, 0})

		require.NoError(t, Transpose(k, []int{1, 0}, in, out))
		assert.Zero(t, k.matrixCalls)
		assert.Equal(t, 1, k.fixedCalls)
	})

	t.Run("declined fixed path falls back to strided", func(t *testing.T) {
		k := &mockKernels{allowFixed: false}
		in := newFilled(t, tensor.Shape{2, 3}, tensor.Int32)
		out := newOutput(t, in, []int{1, 0})

		require.NoError(t, Transpose(k, []int{1, 0}, in, out))
		assert.Zero(t, k.fixedCalls)
		assert.Equal(t, 1, k.stridedCalls)
	})

	t.Run("high collapsed rank takes the strided path", func(t *testing.T) {
		k := &mockKernels{allowFixed: true}
		// Rank 5 with no fusible runs stays rank 5, above MaxFixedRank.
		in := newFilled(t, tensor.Shape{2, 3, 2, 3, 2}, tensor.Float32)
		perm := []int{4, 2, 0, 3, 1}
		out := newOutput(t, in, perm)

		require.NoError(t, Transpose(k, perm, in, out))
		assert.Zero(t, k.fixedCalls)
		assert.Equal(t, 1, k.stridedCalls)
	})
}

func TestTransposeCorrectness(t *testing.T) {
	dtypes := []tensor.DataType{
		tensor.Float32, tensor.Float64, tensor.Float16,
		tensor.Int32, tensor.Int64, tensor.Uint8, tensor.Bool,
	}
	shapes := []tensor.Shape{
		{2, 3},
		{2, 3, 4},
		{1, 3, 4, 5},
		{2, 3, 4, 5},
	}

	for _, allowFixed := range []bool{true, false} {
		for _, dt := range dtypes {
			for _, shape := range shapes {
				forEachPermutation(len(shape), func(perm []int) {
					k := &mockKernels{allowFixed: allowFixed}
					in := newFilled(t, shape, dt)
					out := newOutput(t, in, perm)

					require.NoError(t, Transpose(k, perm, in, out))
					want := naiveReorder(dt.Size(), shape, perm, in.Data())
					require.Equal(t, want, out.Data(),
						"shape %v perm %v dtype %s fixed=%v", shape, perm, dt, allowFixed)
					require.Equal(t, 1, k.calls())
				})
			}
		}
	}
}

func TestTransposeRoundTrip(t *testing.T) {
	k := &mockKernels{allowFixed: true}
	shape := tensor.Shape{2, 3, 4}

	forEachPermutation(3, func(perm []int) {
		in := newFilled(t, shape, tensor.Float64)
		mid := newOutput(t, in, perm)
		require.NoError(t, Transpose(k, perm, in, mid))

		inv := InvertPermutation(perm)
		back := newOutput(t, mid, inv)
		require.NoError(t, Transpose(k, inv, mid, back))

		assert.Equal(t, in.Data(), back.Data(), "perm %v then %v must restore", perm, inv)
	})
}

func TestTransposeIdentity(t *testing.T) {
	k := &mockKernels{allowFixed: true}
	in := newFilled(t, tensor.Shape{2, 3, 4}, tensor.Float32)
	out := newOutput(t, in, []int{0, 1, 2})

	require.NoError(t, Transpose(k, []int{0, 1, 2}, in, out))
	assert.Equal(t, in.Data(), out.Data())
}

func TestTransposeNilPermReversesAxes(t *testing.T) {
	k := &mockKernels{allowFixed: true}
	in := newFilled(t, tensor.Shape{2, 3}, tensor.Float32)
	out := newOutput(t, in, []int{1, 0})

	require.NoError(t, Transpose(k, nil, in, out))
	want := naiveReorder(4, tensor.Shape{2, 3}, []int{1, 0}, in.Data())
	assert.Equal(t, want, out.Data())
}

func TestTransposeAdapterFailurePropagates(t *testing.T) {
	t.Run("matrix kernel failure", func(t *testing.T) {
		kernelErr := assert.AnError
		k := &mockKernels{matrixErr: kernelErr}
		in := newFilled(t, tensor.Shape{2, 3}, tensor.Float32)
		out := newOutput(t, in, []int{1, 0})

		err := Transpose(k, []int{1, 0}, in, out)
		require.Error(t, err)
		assert.ErrorIs(t, err, kernelErr)
		assert.Contains(t, err.Error(), "matrix kernel")
	})

	t.Run("strided kernel failure", func(t *testing.T) {
		kernelErr := assert.AnError
		k := &mockKernels{stridedErr: kernelErr}
		in := newFilled(t, tensor.Shape{2, 3}, tensor.Int32)
		out := newOutput(t, in, []int{1, 0})

		err := Transpose(k, []int{1, 0}, in, out)
		require.Error(t, err)
		assert.ErrorIs(t, err, kernelErr)
	})
}

func TestTransposeScalar(t *testing.T) {
	k := &mockKernels{}
	in := newFilled(t, tensor.Shape{}, tensor.Float32)
	out := newFilled(t, tensor.Shape{}, tensor.Float32)
	copy(out.Data(), []byte{0, 0, 0, 0})

	require.NoError(t, Transpose(k, nil, in, out))
	assert.Equal(t, in.Data(), out.Data())
}

func TestApply(t *testing.T) {
	k := &mockKernels{allowFixed: true}

	t.Run("allocates the permuted shape", func(t *testing.T) {
		in := newFilled(t, tensor.Shape{2, 3}, tensor.Float32)
		out, err := Apply(k, in, []int{1, 0})
		require.NoError(t, err)
		assert.Equal(t, tensor.Shape{3, 2}, out.Shape())
		assert.Equal(t, naiveReorder(4, tensor.Shape{2, 3}, []int{1, 0}, in.Data()), out.Data())
	})

	t.Run("defaults to reversing all axes", func(t *testing.T) {
		in := newFilled(t, tensor.Shape{2, 3, 4}, tensor.Float32)
		out, err := Apply(k, in, nil)
		require.NoError(t, err)
		assert.Equal(t, tensor.Shape{4, 3, 2}, out.Shape())
	})

	t.Run("rejects bad permutations", func(t *testing.T) {
		in := newFilled(t, tensor.Shape{2, 3}, tensor.Float32)
		_, err := Apply(k, in, []int{0, 0})
		assert.ErrorIs(t, err, ErrInvalidPermutation)
	})
}
