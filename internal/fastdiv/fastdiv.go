// Package fastdiv implements division by a runtime-constant uint32 using a
// precomputed magic multiplier, so strided kernels can decompose flat output
// indices without hardware division on every element.
package fastdiv

// Divisor divides by a fixed positive value via multiply-and-shift.
// Valid for numerators in [0, 1<<31).
type Divisor struct {
	D uint32 // the divisor
	m uint32 // magic multiplier
	l uint32 // shift amount, ceil(log2(D))
}

// New creates a Divisor for d. Panics if d is zero.
func New(d uint32) Divisor {
	if d == 0 {
		panic("fastdiv: zero divisor")
	}
	v := Divisor{D: d}
	for v.l < 32 && (uint32(1)<<v.l) < d {
		v.l++
	}
	v.m = uint32((uint64(1)<<32)*((uint64(1)<<v.l)-uint64(d))/uint64(d) + 1)
	return v
}

// Div returns n / d.
func (v Divisor) Div(n uint32) uint32 {
	t := uint32((uint64(v.m) * uint64(n)) >> 32)
	return (t + n) >> v.l
}

// DivMod returns n / d and n % d.
func (v Divisor) DivMod(n uint32) (q, r uint32) {
	q = v.Div(n)
	return q, n - q*v.D
}
