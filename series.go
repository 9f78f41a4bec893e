package veloxcore

import (
	"fmt"
	"math"

	"github.com/brigantine-data/veloxcore/internal/simd"
)

// This file generalizes the teacher's Series accessor/scalar-arithmetic
// surface onto Column: per-index typed reads, head/tail views, dedicated
// comparison methods, and scalar arithmetic. Column itself (column.go)
// and the binary/reduction ops (arithmetic.go) carry the rest of what the
// teacher split across Series.

// AtF64 returns the Float64 value at index, and whether it is non-null.
func (c *Column) AtF64(index int) (float64, bool) {
	if index < 0 || index >= c.length {
		return 0, false
	}
	return c.f64[index], c.IsValid(index)
}

// AtI64 returns the Int64 value at index, and whether it is non-null.
func (c *Column) AtI64(index int) (int64, bool) {
	if index < 0 || index >= c.length {
		return 0, false
	}
	return c.i64[index], c.IsValid(index)
}

// AtF32 returns the Float32 value at index, and whether it is non-null.
func (c *Column) AtF32(index int) (float32, bool) {
	if index < 0 || index >= c.length {
		return 0, false
	}
	return c.f32[index], c.IsValid(index)
}

// AtI32 returns the Int32 value at index, and whether it is non-null.
func (c *Column) AtI32(index int) (int32, bool) {
	if index < 0 || index >= c.length {
		return 0, false
	}
	return c.i32[index], c.IsValid(index)
}

// AtU64 returns the UInt64 value at index, and whether it is non-null.
func (c *Column) AtU64(index int) (uint64, bool) {
	if index < 0 || index >= c.length {
		return 0, false
	}
	return c.u64[index], c.IsValid(index)
}

// AtU32 returns the UInt32 value at index, and whether it is non-null.
func (c *Column) AtU32(index int) (uint32, bool) {
	if index < 0 || index >= c.length {
		return 0, false
	}
	return c.u32[index], c.IsValid(index)
}

// ToFloat64 widens the column's values into a fresh []float64, regardless
// of the column's native dtype. Null entries are reported as NaN.
func (c *Column) ToFloat64() []float64 {
	out := make([]float64, c.length)
	switch c.dtype {
	case Float64:
		copy(out, c.f64)
	case Float32:
		for i, v := range c.f32 {
			out[i] = float64(v)
		}
	case Int64:
		for i, v := range c.i64 {
			out[i] = float64(v)
		}
	case Int32:
		for i, v := range c.i32 {
			out[i] = float64(v)
		}
	case UInt64:
		for i, v := range c.u64 {
			out[i] = float64(v)
		}
	case UInt32:
		for i, v := range c.u32 {
			out[i] = float64(v)
		}
	}
	if c.valid != nil {
		for i := 0; i < c.length; i++ {
			if !bitGet(c.valid, i) {
				out[i] = math.NaN()
			}
		}
	}
	return out
}

// ToInt64 returns the column's backing Int64 slice, or a truncating
// conversion for other numeric dtypes.
func (c *Column) ToInt64() []int64 {
	if c.dtype == Int64 {
		return c.i64
	}
	out := make([]int64, c.length)
	switch c.dtype {
	case Int32:
		for i, v := range c.i32 {
			out[i] = int64(v)
		}
	case UInt64:
		for i, v := range c.u64 {
			out[i] = int64(v)
		}
	case UInt32:
		for i, v := range c.u32 {
			out[i] = int64(v)
		}
	case Float64:
		for i, v := range c.f64 {
			out[i] = int64(v)
		}
	case Float32:
		for i, v := range c.f32 {
			out[i] = int64(v)
		}
	}
	return out
}

// ToFloat32 returns the column's backing Float32 slice, or a narrowing
// conversion from a Float64 column.
func (c *Column) ToFloat32() []float32 {
	if c.dtype == Float32 {
		return c.f32
	}
	out := make([]float32, c.length)
	for i, v := range c.f64 {
		out[i] = float32(v)
	}
	return out
}

// ToInt32 returns the column's backing Int32 slice, or a truncating
// conversion from a wider integer column.
func (c *Column) ToInt32() []int32 {
	if c.dtype == Int32 {
		return c.i32
	}
	out := make([]int32, c.length)
	for i, v := range c.i64 {
		out[i] = int32(v)
	}
	return out
}

// ToUInt64 returns the column's backing UInt64 slice.
func (c *Column) ToUInt64() []uint64 { return c.u64 }

// ToUInt32 returns the column's backing UInt32 slice.
func (c *Column) ToUInt32() []uint32 { return c.u32 }

// Values returns the column's backing slice as an interface{}, letting a
// caller recover the concrete type via a type switch (spec §5 raw buffer
// access, without committing this package to generics at the API boundary
// — matching the teacher's dynamic Values() escape hatch).
func (c *Column) Values() interface{} {
	switch c.dtype {
	case Float64:
		return c.f64
	case Float32:
		return c.f32
	case Int64:
		return c.i64
	case Int32:
		return c.i32
	case UInt64:
		return c.u64
	case UInt32:
		return c.u32
	case Bool:
		return c.b8
	default:
		return nil
	}
}

// Head returns the first n rows (or fewer, if the column is shorter).
func (c *Column) Head(n int) (*Column, error) {
	if n > c.length {
		n = c.length
	}
	return c.Slice(0, n)
}

// Tail returns the last n rows (or fewer, if the column is shorter).
func (c *Column) Tail(n int) (*Column, error) {
	if n > c.length {
		n = c.length
	}
	return c.Slice(c.length-n, c.length)
}

// SortAsc returns a new Column sorted ascending.
func (c *Column) SortAsc() (*Column, error) { return c.Sort(true) }

// SortDesc returns a new Column sorted descending.
func (c *Column) SortDesc() (*Column, error) { return c.Sort(false) }

func (c *Column) compareScalarOrPanic(op simd.CmpOp, value float64) []bool {
	mask, err := c.CompareScalar(op, value)
	if err != nil {
		panic(err) // caller's responsibility to only call typed *F64/*I64 variants on a matching dtype
	}
	return mask
}

// GtF64 returns a mask of c[i] > value for a Float64 column.
func (c *Column) GtF64(value float64) []bool { return c.compareScalarOrPanic(simd.CmpGT, value) }

// GeF64 returns a mask of c[i] >= value for a Float64 column.
func (c *Column) GeF64(value float64) []bool { return c.compareScalarOrPanic(simd.CmpGE, value) }

// LtF64 returns a mask of c[i] < value for a Float64 column.
func (c *Column) LtF64(value float64) []bool { return c.compareScalarOrPanic(simd.CmpLT, value) }

// LeF64 returns a mask of c[i] <= value for a Float64 column.
func (c *Column) LeF64(value float64) []bool { return c.compareScalarOrPanic(simd.CmpLE, value) }

// EqF64 returns a mask of c[i] == value for a Float64 column.
func (c *Column) EqF64(value float64) []bool { return c.compareScalarOrPanic(simd.CmpEQ, value) }

// NeF64 returns a mask of c[i] != value for a Float64 column.
func (c *Column) NeF64(value float64) []bool { return c.compareScalarOrPanic(simd.CmpNE, value) }

// GtI64 returns a mask of c[i] > value for an Int64 column.
func (c *Column) GtI64(value int64) []bool { return c.compareScalarOrPanic(simd.CmpGT, float64(value)) }

// GeI64 returns a mask of c[i] >= value for an Int64 column.
func (c *Column) GeI64(value int64) []bool { return c.compareScalarOrPanic(simd.CmpGE, float64(value)) }

// LtI64 returns a mask of c[i] < value for an Int64 column.
func (c *Column) LtI64(value int64) []bool { return c.compareScalarOrPanic(simd.CmpLT, float64(value)) }

// LeI64 returns a mask of c[i] <= value for an Int64 column.
func (c *Column) LeI64(value int64) []bool { return c.compareScalarOrPanic(simd.CmpLE, float64(value)) }

// EqI64 returns a mask of c[i] == value for an Int64 column.
func (c *Column) EqI64(value int64) []bool { return c.compareScalarOrPanic(simd.CmpEQ, float64(value)) }

// NeI64 returns a mask of c[i] != value for an Int64 column.
func (c *Column) NeI64(value int64) []bool { return c.compareScalarOrPanic(simd.CmpNE, float64(value)) }

// Where is an alias of Filter (naming parity with the teacher's
// Series.Where).
func (c *Column) Where(mask []bool) (*Column, error) { return c.Filter(mask) }

// AddScalar returns c + value element-wise for a Float64 column (nulls
// preserved from c).
func (c *Column) AddScalar(value float64) (*Column, error) {
	if c.dtype != Float64 {
		return nil, fmt.Errorf("%w: add_scalar on %s", ErrUnsupportedDType, c.dtype)
	}
	out := make([]float64, c.length)
	simd.AddScalarFloat(c.f64, value, out)
	return &Column{name: c.name, dtype: Float64, length: c.length, f64: out, valid: c.valid, hasNulls: c.hasNulls}, nil
}

// SubScalar returns c - value element-wise for a Float64 column.
func (c *Column) SubScalar(value float64) (*Column, error) {
	if c.dtype != Float64 {
		return nil, fmt.Errorf("%w: sub_scalar on %s", ErrUnsupportedDType, c.dtype)
	}
	out := make([]float64, c.length)
	for i, v := range c.f64 {
		out[i] = v - value
	}
	return &Column{name: c.name, dtype: Float64, length: c.length, f64: out, valid: c.valid, hasNulls: c.hasNulls}, nil
}

// MulScalar returns c * value element-wise for a Float64 column.
func (c *Column) MulScalar(value float64) (*Column, error) {
	if c.dtype != Float64 {
		return nil, fmt.Errorf("%w: mul_scalar on %s", ErrUnsupportedDType, c.dtype)
	}
	out := make([]float64, c.length)
	simd.MulScalarFloat(c.f64, value, out)
	return &Column{name: c.name, dtype: Float64, length: c.length, f64: out, valid: c.valid, hasNulls: c.hasNulls}, nil
}

// DivScalar returns c / value element-wise for a Float64 column.
func (c *Column) DivScalar(value float64) (*Column, error) {
	if c.dtype != Float64 {
		return nil, fmt.Errorf("%w: div_scalar on %s", ErrUnsupportedDType, c.dtype)
	}
	out := make([]float64, c.length)
	for i, v := range c.f64 {
		out[i] = v / value
	}
	return &Column{name: c.name, dtype: Float64, length: c.length, f64: out, valid: c.valid, hasNulls: c.hasNulls}, nil
}

// AddScalarI64 returns c + value element-wise for an Int64 column.
func (c *Column) AddScalarI64(value int64) (*Column, error) {
	if c.dtype != Int64 {
		return nil, fmt.Errorf("%w: add_scalar_i64 on %s", ErrUnsupportedDType, c.dtype)
	}
	out := make([]int64, c.length)
	simd.AddScalarInt(c.i64, value, out)
	return &Column{name: c.name, dtype: Int64, length: c.length, i64: out, valid: c.valid, hasNulls: c.hasNulls}, nil
}

// MulScalarI64 returns c * value element-wise for an Int64 column.
func (c *Column) MulScalarI64(value int64) (*Column, error) {
	if c.dtype != Int64 {
		return nil, fmt.Errorf("%w: mul_scalar_i64 on %s", ErrUnsupportedDType, c.dtype)
	}
	out := make([]int64, c.length)
	simd.MulScalarInt(c.i64, value, out)
	return &Column{name: c.name, dtype: Int64, length: c.length, i64: out, valid: c.valid, hasNulls: c.hasNulls}, nil
}
