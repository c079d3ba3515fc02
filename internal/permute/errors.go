package permute

import "github.com/pkg/errors"

// Sentinel errors surfaced by entry validation. Adapter failures are wrapped
// and propagated verbatim; the planner itself performs no retries.
var (
	// ErrInvalidPermutation reports a permutation whose length mismatches the
	// rank or which is not a bijection on [0, rank).
	ErrInvalidPermutation = errors.New("permute: invalid permutation")

	// ErrShapeMismatch reports an output tensor whose shape or element type
	// is not the input's permuted counterpart.
	ErrShapeMismatch = errors.New("permute: shape mismatch")
)
