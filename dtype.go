package veloxcore

import "fmt"

// DType is the element type tag of a Column. Only the numeric and boolean
// types the kernel layer actually computes over are represented here —
// string/date/categorical/nested types are outer-dataframe concerns and
// live above this library's boundary.
type DType uint8

const (
	Float64 DType = iota
	Float32
	Int64
	Int32
	UInt64
	UInt32
	Bool
)

// String returns the name of the dtype.
func (d DType) String() string {
	switch d {
	case Float64:
		return "Float64"
	case Float32:
		return "Float32"
	case Int64:
		return "Int64"
	case Int32:
		return "Int32"
	case UInt64:
		return "UInt64"
	case UInt32:
		return "UInt32"
	case Bool:
		return "Bool"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(d))
	}
}

// IsNumeric reports whether the dtype participates in arithmetic.
func (d DType) IsNumeric() bool {
	switch d {
	case Float64, Float32, Int64, Int32, UInt64, UInt32:
		return true
	default:
		return false
	}
}

// IsFloat reports whether the dtype is a floating-point type.
func (d DType) IsFloat() bool {
	return d == Float64 || d == Float32
}

// IsInteger reports whether the dtype is an integer type.
func (d DType) IsInteger() bool {
	switch d {
	case Int64, Int32, UInt64, UInt32:
		return true
	default:
		return false
	}
}

// IsSigned reports whether the dtype is a signed numeric type.
func (d DType) IsSigned() bool {
	switch d {
	case Float64, Float32, Int64, Int32:
		return true
	default:
		return false
	}
}

// Size returns the size in bytes of one element.
func (d DType) Size() int {
	switch d {
	case Float64, Int64, UInt64:
		return 8
	case Float32, Int32, UInt32:
		return 4
	case Bool:
		return 1
	default:
		return 0
	}
}
