// Package main provides the permute planning CLI.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/born-ml/permute/backend/cpu"
	"github.com/born-ml/permute/permute"
	"github.com/born-ml/permute/tensor"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			fmt.Printf("permute %s\n", version)
			return
		case "explain":
			if len(os.Args) != 4 {
				fmt.Fprintln(os.Stderr, "usage: permute explain SHAPE PERM   (e.g. permute explain 1,3,4,5 0,2,3,1)")
				os.Exit(2)
			}
			if err := explain(os.Args[2], os.Args[3]); err != nil {
				fmt.Fprintf(os.Stderr, "permute: %v\n", err)
				os.Exit(1)
			}
			return
		}
	}

	fmt.Println("permute - transpose planning and execution engine")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version              Show version")
	fmt.Println("  explain SHAPE PERM   Show the plan for a shape/permutation pair")
}

// explain prints the strategy the planner would pick for a float32 tensor of
// the given shape under the given permutation.
func explain(shapeArg, permArg string) error {
	shape, err := parseInts(shapeArg)
	if err != nil {
		return fmt.Errorf("bad shape %q: %w", shapeArg, err)
	}
	perm, err := parseInts(permArg)
	if err != nil {
		return fmt.Errorf("bad permutation %q: %w", permArg, err)
	}

	in := tensor.Shape(shape)
	if err := in.Validate(); err != nil {
		return err
	}
	if len(perm) != len(in) {
		return fmt.Errorf("permutation length %d does not match rank %d", len(perm), len(in))
	}
	for _, ax := range perm {
		if ax < 0 || ax >= len(in) {
			return fmt.Errorf("axis %d out of range for rank %d", ax, len(in))
		}
	}
	fmt.Printf("input shape:  %v\n", in)
	fmt.Printf("permutation:  %v\n", perm)

	if in.IsEmpty() {
		fmt.Println("strategy:     empty output, no kernel invoked")
		return nil
	}

	if m, n, ok := permute.MatrixFit(perm, in); ok {
		fmt.Printf("strategy:     accelerated matrix transpose, %d x %d\n", m, n)
		return nil
	}

	out := make(tensor.Shape, len(perm))
	for i, ax := range perm {
		out[i] = in[ax]
	}
	plan := permute.Collapse(in, out, perm)
	fmt.Printf("collapsed:    %v -> %v by %v (rank %d)\n", plan.InputShape, plan.OutputShape, plan.Perm, plan.Rank)

	backend := cpu.New()
	if backend.CanTransposeFixed(4, plan.Rank, plan.InputShape, plan.Perm) {
		fmt.Println("strategy:     fixed-rank specialized kernel")
	} else {
		fmt.Println("strategy:     general strided kernel")
	}
	return nil
}

func parseInts(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
