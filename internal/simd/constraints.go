package simd

// Float is the constraint for the two floating-point dtypes.
type Float interface {
	~float64 | ~float32
}

// Integer is the constraint for the four integer dtypes the kernels cover.
type Integer interface {
	~int64 | ~int32 | ~uint64 | ~uint32
}

// Numeric is the union the horizontal-fold and compare kernels operate
// over: every dtype that participates in arithmetic.
type Numeric interface {
	Float | Integer
}
