//go:build windows

package webgpu

import (
	"encoding/binary"

	"github.com/go-webgpu/webgpu/wgpu"
	"github.com/pkg/errors"

	"github.com/born-ml/permute/internal/fastdiv"
	"github.com/born-ml/permute/internal/permute"
	"github.com/born-ml/permute/internal/tensor"
)

// Compile-time check that Backend implements the kernel surface.
var _ permute.Kernels = (*Backend)(nil)

// matrixTile matches the workgroup size of matrixTransposeShader.
const matrixTile = 16

// stridedWorkgroup matches the workgroup size of stridedTransposeShader.
const stridedWorkgroup = 256

// TransposeMatrix performs dst = transpose(src) for an m x n row-major f32
// matrix on GPU. Only Float32 has a storage-buffer representation here;
// other element kinds report failure and the planner surfaces it.
func (b *Backend) TransposeMatrix(dt tensor.DataType, m, n int, src, dst []byte) error {
	if dt != tensor.Float32 {
		return errors.Errorf("webgpu: matrix transpose unsupported for element type %s", dt)
	}

	shader := b.compileShader("matrix_transpose", matrixTransposeShader)
	pipeline := b.getOrCreatePipeline("matrix_transpose", shader)

	params := make([]byte, 16) // 16-byte aligned
	//nolint:gosec // G115: dimensions are validated non-negative upstream
	binary.LittleEndian.PutUint32(params[0:4], uint32(m))
	//nolint:gosec // G115: dimensions are validated non-negative upstream
	binary.LittleEndian.PutUint32(params[4:8], uint32(n))

	//nolint:gosec // G115: workgroup counts derive from non-negative dims
	workgroupsX := uint32((n + matrixTile - 1) / matrixTile)
	//nolint:gosec // G115: workgroup counts derive from non-negative dims
	workgroupsY := uint32((m + matrixTile - 1) / matrixTile)

	return b.dispatch(pipeline, src, dst, params, workgroupsX, workgroupsY)
}

// CanTransposeFixed always declines: the strided shader already decomposes
// indices per invocation, so a separate fixed-rank pipeline buys nothing on
// this device.
func (b *Backend) CanTransposeFixed(elemSize, rank int, shape tensor.Shape, perm []int) bool {
	return false
}

// TransposeFixed is never selected because CanTransposeFixed declines every
// plan.
func (b *Backend) TransposeFixed(elemSize, rank int, shape, inStrides, outStrides [permute.MaxFixedRank]int, src, dst []byte, count int) error {
	return errors.New("webgpu: fixed-rank transpose not supported")
}

// TransposeStrided runs the general strided reorder on GPU for 4-byte
// elements and collapsed plans of up to 4 axes.
func (b *Backend) TransposeStrided(elemSize, rank int, inStrides []int, src []byte, outStrides []fastdiv.Divisor, dst []byte, count int) error {
	if elemSize != 4 {
		return errors.Errorf("webgpu: strided transpose requires 4-byte elements, got %d", elemSize)
	}
	if rank > permute.MaxFixedRank {
		return errors.Errorf("webgpu: strided transpose supports up to %d collapsed axes, got %d", permute.MaxFixedRank, rank)
	}

	shader := b.compileShader("strided_transpose", stridedTransposeShader)
	pipeline := b.getOrCreatePipeline("strided_transpose", shader)

	params := make([]byte, 48)
	//nolint:gosec // G115: rank and count are validated non-negative upstream
	binary.LittleEndian.PutUint32(params[0:4], uint32(rank))
	//nolint:gosec // G115: rank and count are validated non-negative upstream
	binary.LittleEndian.PutUint32(params[4:8], uint32(count))
	for d := 0; d < rank; d++ {
		//nolint:gosec // G115: strides derive from validated shapes
		binary.LittleEndian.PutUint32(params[8+4*d:12+4*d], uint32(inStrides[d]))
		binary.LittleEndian.PutUint32(params[24+4*d:28+4*d], outStrides[d].D)
	}

	//nolint:gosec // G115: workgroup count derives from the element count
	workgroups := uint32((count + stridedWorkgroup - 1) / stridedWorkgroup)

	return b.dispatch(pipeline, src, dst, params, workgroups, 1)
}

// dispatch uploads src, binds the standard input/result/params layout, runs
// one compute pass and reads the result back into dst.
func (b *Backend) dispatch(pipeline *wgpu.ComputePipeline, src, dst, params []byte, workgroupsX, workgroupsY uint32) error {
	bufferInput := b.createBuffer(src, wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
	defer bufferInput.Release()

	resultSize := uint64(len(dst))
	bufferResult := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst,
		Size:  resultSize,
	})
	defer bufferResult.Release()

	bufferParams := b.createUniformBuffer(params)
	defer bufferParams.Release()

	bindGroupLayout := pipeline.GetBindGroupLayout(0)
	bindGroup := b.device.CreateBindGroupSimple(bindGroupLayout, []wgpu.BindGroupEntry{
		wgpu.BufferBindingEntry(0, bufferInput, 0, uint64(len(src))),
		wgpu.BufferBindingEntry(1, bufferResult, 0, resultSize),
		wgpu.BufferBindingEntry(2, bufferParams, 0, uint64((len(params)+15)&^15)),
	})
	defer bindGroup.Release()

	encoder := b.device.CreateCommandEncoder(nil)
	computePass := encoder.BeginComputePass(nil)
	computePass.SetPipeline(pipeline)
	computePass.SetBindGroup(0, bindGroup, nil)
	computePass.DispatchWorkgroups(workgroupsX, workgroupsY, 1)
	computePass.End()

	cmdBuffer := encoder.Finish(nil)
	b.queue.Submit(cmdBuffer)

	result, err := b.readBuffer(bufferResult, resultSize)
	if err != nil {
		return err
	}
	copy(dst, result)
	return nil
}
