//go:build windows

package webgpu

// matrixTransposeShader transposes a rows x cols f32 matrix.
const matrixTransposeShader = `
@group(0) @binding(0) var<storage, read> input: array<f32>;
@group(0) @binding(1) var<storage, read_write> result: array<f32>;

struct Params {
    rows: u32,
    cols: u32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(16, 16)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let row = global_id.y;
    let col = global_id.x;

    if (row >= params.rows || col >= params.cols) {
        return;
    }

    let in_idx = row * params.cols + col;
    let out_idx = col * params.rows + row;
    result[out_idx] = input[in_idx];
}
`

// stridedTransposeShader performs the general strided reorder for collapsed
// plans of up to 4 axes. Each invocation decomposes one flat output index
// into coordinates via the output strides and gathers the source element via
// the permuted input strides.
const stridedTransposeShader = `
@group(0) @binding(0) var<storage, read> input: array<f32>;
@group(0) @binding(1) var<storage, read_write> result: array<f32>;

struct Params {
    rank: u32,
    total_elements: u32,
    in_stride_0: u32,
    in_stride_1: u32,
    in_stride_2: u32,
    in_stride_3: u32,
    out_stride_0: u32,
    out_stride_1: u32,
    out_stride_2: u32,
    out_stride_3: u32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx >= params.total_elements) {
        return;
    }

    var in_strides: array<u32, 4>;
    in_strides[0] = params.in_stride_0;
    in_strides[1] = params.in_stride_1;
    in_strides[2] = params.in_stride_2;
    in_strides[3] = params.in_stride_3;

    var out_strides: array<u32, 4>;
    out_strides[0] = params.out_stride_0;
    out_strides[1] = params.out_stride_1;
    out_strides[2] = params.out_stride_2;
    out_strides[3] = params.out_stride_3;

    var in_idx: u32 = 0u;
    var remaining = idx;
    for (var d: u32 = 0u; d < params.rank; d = d + 1u) {
        let coord = remaining / out_strides[d];
        remaining = remaining % out_strides[d];
        in_idx = in_idx + coord * in_strides[d];
    }

    result[idx] = input[in_idx];
}
`
