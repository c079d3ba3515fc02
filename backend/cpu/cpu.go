// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure Go CPU execution backend for the transpose
// engine.
package cpu

import (
	internalcpu "github.com/born-ml/permute/internal/backend/cpu"
	"github.com/born-ml/permute/permute"
)

// Backend represents the CPU backend implementation.
//
// It provides the three transpose kernels in pure Go: the accelerated matrix
// path, the fixed-rank specialized path and the general strided path.
type Backend = internalcpu.Backend

// Compile-time check that Backend implements permute.Kernels.
var _ permute.Kernels = (*Backend)(nil)

// New creates a new CPU backend.
//
// Example:
//
//	import (
//	    "github.com/born-ml/permute/backend/cpu"
//	    "github.com/born-ml/permute/permute"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    out, err := permute.Apply(backend, in, []int{1, 0})
//	}
func New() *Backend {
	return internalcpu.New()
}
