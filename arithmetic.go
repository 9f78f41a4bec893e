package veloxcore

import (
	"fmt"

	"github.com/brigantine-data/veloxcore/internal/simd"
)

// combineValidity ANDs two optional validity bitmaps under "null iff either
// input null" (spec §4.4): if both inputs are all-valid (nil bitmap), the
// result is too, and no bitmap is allocated for it — matching the gather
// kernels' "don't allocate when nothing is null" convention.
func combineValidity(a, b []byte, n int) []byte {
	if a == nil && b == nil {
		return nil
	}
	out := newAllValidBitmap(n)
	for i := 0; i < n; i++ {
		av := a == nil || bitGet(a, i)
		bv := b == nil || bitGet(b, i)
		bitSet(out, i, av && bv)
	}
	return out
}

func binaryPreamble(a, b *Column, op string) error {
	if a.dtype != b.dtype {
		return fmt.Errorf("%w: %s(%s, %s)", ErrDTypeMismatch, op, a.dtype, b.dtype)
	}
	if a.length != b.length {
		return fmt.Errorf("%w: %s operand lengths %d and %d", ErrLengthMismatch, op, a.length, b.length)
	}
	return nil
}

// Add returns an element-wise a+b, propagating nulls (spec §4.4).
func Add(a, b *Column) (*Column, error) {
	if err := binaryPreamble(a, b, "add"); err != nil {
		return nil, err
	}
	n := a.length
	valid := combineValidity(a.valid, b.valid, n)
	switch a.dtype {
	case Float64:
		out := make([]float64, n)
		simd.AddFloat(a.f64, b.f64, out)
		return (&Column{name: a.name, dtype: Float64, length: n, f64: out, valid: valid, hasNulls: valid != nil}), nil
	case Float32:
		out := make([]float32, n)
		simd.AddFloat(a.f32, b.f32, out)
		return &Column{name: a.name, dtype: Float32, length: n, f32: out, valid: valid, hasNulls: valid != nil}, nil
	case Int64:
		out := make([]int64, n)
		simd.AddInt(a.i64, b.i64, out)
		return &Column{name: a.name, dtype: Int64, length: n, i64: out, valid: valid, hasNulls: valid != nil}, nil
	case Int32:
		out := make([]int32, n)
		simd.AddInt(a.i32, b.i32, out)
		return &Column{name: a.name, dtype: Int32, length: n, i32: out, valid: valid, hasNulls: valid != nil}, nil
	case UInt64:
		out := make([]uint64, n)
		simd.AddInt(a.u64, b.u64, out)
		return &Column{name: a.name, dtype: UInt64, length: n, u64: out, valid: valid, hasNulls: valid != nil}, nil
	case UInt32:
		out := make([]uint32, n)
		simd.AddInt(a.u32, b.u32, out)
		return &Column{name: a.name, dtype: UInt32, length: n, u32: out, valid: valid, hasNulls: valid != nil}, nil
	default:
		return nil, fmt.Errorf("%w: add on %s", ErrUnsupportedDType, a.dtype)
	}
}

// Sub returns an element-wise a-b, propagating nulls.
func Sub(a, b *Column) (*Column, error) {
	if err := binaryPreamble(a, b, "sub"); err != nil {
		return nil, err
	}
	n := a.length
	valid := combineValidity(a.valid, b.valid, n)
	switch a.dtype {
	case Float64:
		out := make([]float64, n)
		simd.SubFloat(a.f64, b.f64, out)
		return &Column{name: a.name, dtype: Float64, length: n, f64: out, valid: valid, hasNulls: valid != nil}, nil
	case Int64:
		out := make([]int64, n)
		simd.SubInt(a.i64, b.i64, out)
		return &Column{name: a.name, dtype: Int64, length: n, i64: out, valid: valid, hasNulls: valid != nil}, nil
	default:
		return nil, fmt.Errorf("%w: sub on %s", ErrUnsupportedDType, a.dtype)
	}
}

// Mul returns an element-wise a*b, propagating nulls.
func Mul(a, b *Column) (*Column, error) {
	if err := binaryPreamble(a, b, "mul"); err != nil {
		return nil, err
	}
	n := a.length
	valid := combineValidity(a.valid, b.valid, n)
	switch a.dtype {
	case Float64:
		out := make([]float64, n)
		simd.MulFloat(a.f64, b.f64, out)
		return &Column{name: a.name, dtype: Float64, length: n, f64: out, valid: valid, hasNulls: valid != nil}, nil
	case Int64:
		out := make([]int64, n)
		simd.MulInt(a.i64, b.i64, out)
		return &Column{name: a.name, dtype: Int64, length: n, i64: out, valid: valid, hasNulls: valid != nil}, nil
	default:
		return nil, fmt.Errorf("%w: mul on %s", ErrUnsupportedDType, a.dtype)
	}
}

// Div returns an element-wise a/b (float division, IEEE 754 zero-divisor
// semantics per spec §7), propagating nulls.
func Div(a, b *Column) (*Column, error) {
	if err := binaryPreamble(a, b, "div"); err != nil {
		return nil, err
	}
	if !a.dtype.IsFloat() {
		return nil, fmt.Errorf("%w: div requires a float column, got %s", ErrUnsupportedDType, a.dtype)
	}
	n := a.length
	valid := combineValidity(a.valid, b.valid, n)
	switch a.dtype {
	case Float64:
		out := make([]float64, n)
		simd.DivFloat(a.f64, b.f64, out)
		return &Column{name: a.name, dtype: Float64, length: n, f64: out, valid: valid, hasNulls: valid != nil}, nil
	case Float32:
		out := make([]float32, n)
		simd.DivFloat(a.f32, b.f32, out)
		return &Column{name: a.name, dtype: Float32, length: n, f32: out, valid: valid, hasNulls: valid != nil}, nil
	default:
		return nil, fmt.Errorf("%w: div on %s", ErrUnsupportedDType, a.dtype)
	}
}

// Sum reduces a numeric column to its scalar sum (spec §4.3: 0 for
// empty/all-null input).
func (c *Column) Sum() (float64, error) {
	switch c.dtype {
	case Float64:
		return simd.SumFloat(c.f64, c.valid), nil
	case Float32:
		return float64(simd.SumFloat(c.f32, c.valid)), nil
	case Int64:
		return float64(simd.SumInt(c.i64, c.valid)), nil
	case Int32:
		return float64(simd.SumInt(c.i32, c.valid)), nil
	case UInt64:
		return float64(simd.SumInt(c.u64, c.valid)), nil
	case UInt32:
		return float64(simd.SumInt(c.u32, c.valid)), nil
	default:
		return 0, fmt.Errorf("%w: sum of %s", ErrUnsupportedDType, c.dtype)
	}
}

// Min reduces a numeric column to its scalar minimum (NaN for empty/
// all-null float columns, 0 for empty/all-null integer columns — spec §4.3).
func (c *Column) Min() (float64, error) {
	switch c.dtype {
	case Float64:
		return simd.MinFloat(c.f64, c.valid), nil
	case Float32:
		return float64(simd.MinFloat(c.f32, c.valid)), nil
	case Int64:
		return float64(simd.MinInt(c.i64, c.valid)), nil
	case Int32:
		return float64(simd.MinInt(c.i32, c.valid)), nil
	case UInt64:
		return float64(simd.MinInt(c.u64, c.valid)), nil
	case UInt32:
		return float64(simd.MinInt(c.u32, c.valid)), nil
	default:
		return 0, fmt.Errorf("%w: min of %s", ErrUnsupportedDType, c.dtype)
	}
}

// Max reduces a numeric column to its scalar maximum.
func (c *Column) Max() (float64, error) {
	switch c.dtype {
	case Float64:
		return simd.MaxFloat(c.f64, c.valid), nil
	case Float32:
		return float64(simd.MaxFloat(c.f32, c.valid)), nil
	case Int64:
		return float64(simd.MaxInt(c.i64, c.valid)), nil
	case Int32:
		return float64(simd.MaxInt(c.i32, c.valid)), nil
	case UInt64:
		return float64(simd.MaxInt(c.u64, c.valid)), nil
	case UInt32:
		return float64(simd.MaxInt(c.u32, c.valid)), nil
	default:
		return 0, fmt.Errorf("%w: max of %s", ErrUnsupportedDType, c.dtype)
	}
}

// Mean reduces a numeric column to its scalar mean using float division
// (NaN for empty/all-null — spec §4.3).
func (c *Column) Mean() (float64, error) {
	switch c.dtype {
	case Float64:
		return simd.MeanFloat(c.f64, c.valid), nil
	case Float32:
		return simd.MeanFloat(c.f32, c.valid), nil
	case Int64:
		return simd.MeanInt(c.i64, c.valid), nil
	case Int32:
		return simd.MeanInt(c.i32, c.valid), nil
	case UInt64:
		return simd.MeanInt(c.u64, c.valid), nil
	case UInt32:
		return simd.MeanInt(c.u32, c.valid), nil
	default:
		return 0, fmt.Errorf("%w: mean of %s", ErrUnsupportedDType, c.dtype)
	}
}

// CompareScalar returns a boolean mask of c[i] op scalar (spec §4.4), with
// null positions reported as false regardless of the comparison result.
func (c *Column) CompareScalar(op simd.CmpOp, scalar float64) ([]bool, error) {
	n := c.length
	u8 := make([]uint8, n)
	switch c.dtype {
	case Float64:
		simd.CompareScalar(op, c.f64, scalar, u8)
	case Float32:
		simd.CompareScalar(op, c.f32, float32(scalar), u8)
	case Int64:
		simd.CompareScalar(op, c.i64, int64(scalar), u8)
	case Int32:
		simd.CompareScalar(op, c.i32, int32(scalar), u8)
	case UInt64:
		simd.CompareScalar(op, c.u64, uint64(scalar), u8)
	case UInt32:
		simd.CompareScalar(op, c.u32, uint32(scalar), u8)
	default:
		return nil, fmt.Errorf("%w: compare on %s", ErrUnsupportedDType, c.dtype)
	}
	out := make([]bool, n)
	for i, v := range u8 {
		out[i] = v != 0 && (c.valid == nil || bitGet(c.valid, i))
	}
	return out, nil
}

// FilterGreaterThan returns the row indices where c[i] > threshold, using
// the one-shot kernel that skips materializing an intermediate mask.
func (c *Column) FilterGreaterThan(threshold float64) ([]uint32, error) {
	switch c.dtype {
	case Float64:
		return simd.FilterGreaterThan(c.f64, threshold), nil
	case Float32:
		return simd.FilterGreaterThan(c.f32, float32(threshold)), nil
	case Int64:
		return simd.FilterGreaterThan(c.i64, int64(threshold)), nil
	case Int32:
		return simd.FilterGreaterThan(c.i32, int32(threshold)), nil
	case UInt64:
		return simd.FilterGreaterThan(c.u64, uint64(threshold)), nil
	case UInt32:
		return simd.FilterGreaterThan(c.u32, uint32(threshold)), nil
	default:
		return nil, fmt.Errorf("%w: filter on %s", ErrUnsupportedDType, c.dtype)
	}
}
