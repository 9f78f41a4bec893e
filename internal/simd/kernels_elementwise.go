package simd

// Element-wise binary kernels. Null propagation ("result null iff either
// input null") is handled by the caller (column-level arithmetic surface,
// spec §4.4); these kernels only ever see raw value buffers and always
// compute every position — callers that need to mask off null positions
// do it by consulting the combined validity bitmap separately, so the
// hot loop here stays branch-free.

// AddFloat, SubFloat, MulFloat, DivFloat: binary float ops, equal length.
func AddFloat[T Float](a, b, out []T) {
	for i := range a {
		out[i] = a[i] + b[i]
	}
}

func SubFloat[T Float](a, b, out []T) {
	for i := range a {
		out[i] = a[i] - b[i]
	}
}

func MulFloat[T Float](a, b, out []T) {
	for i := range a {
		out[i] = a[i] * b[i]
	}
}

// DivFloat follows IEEE 754 for zero divisors (spec §7): produces ±Inf or NaN.
func DivFloat[T Float](a, b, out []T) {
	for i := range a {
		out[i] = a[i] / b[i]
	}
}

// AddInt, SubInt, MulInt wrap on overflow (two's complement, spec §7).
func AddInt[T Integer](a, b, out []T) {
	for i := range a {
		out[i] = a[i] + b[i]
	}
}

func SubInt[T Integer](a, b, out []T) {
	for i := range a {
		out[i] = a[i] - b[i]
	}
}

func MulInt[T Integer](a, b, out []T) {
	for i := range a {
		out[i] = a[i] * b[i]
	}
}

// AddScalarFloat, MulScalarFloat: broadcast a scalar across the buffer.
func AddScalarFloat[T Float](a []T, scalar T, out []T) {
	for i := range a {
		out[i] = a[i] + scalar
	}
}

func MulScalarFloat[T Float](a []T, scalar T, out []T) {
	for i := range a {
		out[i] = a[i] * scalar
	}
}

func AddScalarInt[T Integer](a []T, scalar T, out []T) {
	for i := range a {
		out[i] = a[i] + scalar
	}
}

func MulScalarInt[T Integer](a []T, scalar T, out []T) {
	for i := range a {
		out[i] = a[i] * scalar
	}
}
