//go:build windows

// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides the WebGPU execution backend for the transpose
// engine.
//
// Example:
//
//	gpu, err := webgpu.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer gpu.Release()
//
//	out, err := permute.Apply(gpu, in, []int{0, 2, 3, 1})
package webgpu

import (
	internalwebgpu "github.com/born-ml/permute/internal/backend/webgpu"
	"github.com/born-ml/permute/permute"
)

// Backend represents the WebGPU backend implementation.
type Backend = internalwebgpu.Backend

// Compile-time check that Backend implements permute.Kernels.
var _ permute.Kernels = (*Backend)(nil)

// New creates a new WebGPU backend.
//
// Returns an error if WebGPU initialization fails (e.g., no compatible GPU
// or missing native library). Call Release() when done to free GPU
// resources.
func New() (*Backend, error) {
	return internalwebgpu.New()
}
