package veloxcore

import (
	"fmt"

	"github.com/brigantine-data/veloxcore/internal/groupby"
	"github.com/brigantine-data/veloxcore/internal/simd"
	"github.com/brigantine-data/veloxcore/internal/sortkernel"
)

// Column is a typed, columnar buffer with an optional validity bitmap
// (spec §5 Data Model). Unlike the teacher's Series it owns plain Go
// slices instead of a handle into Zig-managed Arrow memory — there is no
// native core to free, so Release just drops the backing slices rather
// than calling into a finalizer-driven CGO teardown. name labels the
// column; Table.ColumnByName looks columns up by it, which is how the
// end-to-end join/group-by entry points (§6) find their key and value
// columns.
type Column struct {
	name   string
	dtype  DType
	length int

	f64 []float64
	i64 []int64
	f32 []float32
	i32 []int32
	u64 []uint64
	u32 []uint32
	b8  []uint8 // Bool, one byte per element (0/1)

	valid    []byte // validity bitmap, nil means "all valid"
	hasNulls bool
}

// NewColumnF64 creates a Float64 Column from an owned Go slice (spec §5
// builder "fromSlice"/"fromOwned": the slice is not copied, so callers
// must not mutate it afterward).
func NewColumnF64(name string, data []float64) *Column {
	return &Column{name: name, dtype: Float64, length: len(data), f64: data}
}

// NewColumnI64 creates an Int64 Column from an owned Go slice.
func NewColumnI64(name string, data []int64) *Column {
	return &Column{name: name, dtype: Int64, length: len(data), i64: data}
}

// NewColumnF32 creates a Float32 Column from an owned Go slice.
func NewColumnF32(name string, data []float32) *Column {
	return &Column{name: name, dtype: Float32, length: len(data), f32: data}
}

// NewColumnI32 creates an Int32 Column from an owned Go slice.
func NewColumnI32(name string, data []int32) *Column {
	return &Column{name: name, dtype: Int32, length: len(data), i32: data}
}

// NewColumnU64 creates a UInt64 Column from an owned Go slice.
func NewColumnU64(name string, data []uint64) *Column {
	return &Column{name: name, dtype: UInt64, length: len(data), u64: data}
}

// NewColumnU32 creates a UInt32 Column from an owned Go slice.
func NewColumnU32(name string, data []uint32) *Column {
	return &Column{name: name, dtype: UInt32, length: len(data), u32: data}
}

// NewColumnBool creates a Bool Column from an owned []bool, packed into
// one byte per element internally (spec §5: Bool is not bit-packed in the
// data buffer, only the validity side is — matching the teacher's
// `[]bool` mask return shape for comparisons in series.go).
func NewColumnBool(name string, data []bool) *Column {
	b8 := make([]uint8, len(data))
	for i, v := range data {
		if v {
			b8[i] = 1
		}
	}
	return &Column{name: name, dtype: Bool, length: len(data), b8: b8}
}

// WithValidity attaches a validity bitmap built from a []bool mask (spec
// §5 builder "withNulls"): valid[i]==false marks element i null. Returns a
// new Column sharing the same data slices.
func (c *Column) WithValidity(validMask []bool) (*Column, error) {
	if len(validMask) != c.length {
		return nil, fmt.Errorf("%w: column has %d elements, validity mask has %d", ErrLengthMismatch, c.length, len(validMask))
	}
	out := *c
	out.valid = newAllValidBitmap(c.length)
	hasNull := false
	for i, ok := range validMask {
		if !ok {
			bitSet(out.valid, i, false)
			hasNull = true
		}
	}
	out.hasNulls = hasNull
	return &out, nil
}

// WithValidityFromOwned attaches a caller-owned validity bitmap directly
// (spec §5 builder "withValidityFromOwned"), skipping the mask-to-bitmap
// conversion when the caller already has one (e.g. propagated from
// another Column's slice/gather).
func (c *Column) WithValidityFromOwned(bitmap []byte, hasNulls bool) *Column {
	out := *c
	out.valid = bitmap
	out.hasNulls = hasNulls
	return &out
}

// Name returns the column's optional label.
func (c *Column) Name() string { return c.name }

// DType returns the column's element type.
func (c *Column) DType() DType { return c.dtype }

// Len returns the number of elements.
func (c *Column) Len() int { return c.length }

// HasNulls reports whether any element is null.
func (c *Column) HasNulls() bool { return c.hasNulls }

// NullCount returns the number of null elements.
func (c *Column) NullCount() int {
	if c.valid == nil {
		return 0
	}
	return c.length - popcountRange(c.valid, 0, c.length)
}

// IsValid reports whether element i is non-null.
func (c *Column) IsValid(i int) bool {
	if c.valid == nil {
		return true
	}
	return bitGet(c.valid, i)
}

// Release drops the column's backing storage. There is no native memory
// to free in this pure-Go implementation; this exists to mirror the
// teacher's lifecycle API (spec §6 "result destroyers") for callers that
// manage Column lifetimes explicitly.
func (c *Column) Release() {
	c.f64, c.i64, c.f32, c.i32, c.u64, c.u32, c.b8, c.valid = nil, nil, nil, nil, nil, nil, nil, nil
	c.length = 0
}

// Float64Values returns the raw backing slice for a Float64 column, or nil.
func (c *Column) Float64Values() []float64 { return c.f64 }

// Int64Values returns the raw backing slice for an Int64 column, or nil.
func (c *Column) Int64Values() []int64 { return c.i64 }

// Float32Values returns the raw backing slice for a Float32 column, or nil.
func (c *Column) Float32Values() []float32 { return c.f32 }

// Int32Values returns the raw backing slice for an Int32 column, or nil.
func (c *Column) Int32Values() []int32 { return c.i32 }

// UInt64Values returns the raw backing slice for a UInt64 column, or nil.
func (c *Column) UInt64Values() []uint64 { return c.u64 }

// UInt32Values returns the raw backing slice for a UInt32 column, or nil.
func (c *Column) UInt32Values() []uint32 { return c.u32 }

// BoolValues returns the packed byte-per-element backing slice for a Bool
// column, or nil.
func (c *Column) BoolValues() []uint8 { return c.b8 }

// ValidityBitmap returns the raw validity bitmap, or nil if the column has
// no nulls.
func (c *Column) ValidityBitmap() []byte { return c.valid }

// Slice returns a view over [start, end) (spec §5 "slicing with bitmap
// re-alignment"): data slices are re-sliced in place (sharing the backing
// array, as Go slicing naturally does), and the validity bitmap is
// shifted via bitCopyShifted so bit 0 of the new bitmap again corresponds
// to the new element 0.
func (c *Column) Slice(start, end int) (*Column, error) {
	if start < 0 || end > c.length || start > end {
		return nil, fmt.Errorf("%w: slice [%d:%d) out of range for length %d", ErrOutOfRange, start, end, c.length)
	}
	out := &Column{name: c.name, dtype: c.dtype, length: end - start}
	switch c.dtype {
	case Float64:
		out.f64 = c.f64[start:end]
	case Int64:
		out.i64 = c.i64[start:end]
	case Float32:
		out.f32 = c.f32[start:end]
	case Int32:
		out.i32 = c.i32[start:end]
	case UInt64:
		out.u64 = c.u64[start:end]
	case UInt32:
		out.u32 = c.u32[start:end]
	case Bool:
		out.b8 = c.b8[start:end]
	}
	if c.valid != nil {
		out.valid = make([]byte, bitmapBytes(end-start))
		bitCopyShifted(out.valid, c.valid, start, end-start)
		out.hasNulls = out.NullCount() > 0
	}
	return out, nil
}

// Filter returns a new Column containing only the elements where mask is
// true, in order (spec §4 filter/compare kernels feeding a materialize
// step).
func (c *Column) Filter(mask []bool) (*Column, error) {
	if len(mask) != c.length {
		return nil, fmt.Errorf("%w: column has %d elements, mask has %d", ErrLengthMismatch, c.length, len(mask))
	}
	scratch := getInt32Slice(c.length)
	defer scratch.Release()
	n := 0
	for i, keep := range mask {
		if keep {
			scratch.Data[n] = int32(i)
			n++
		}
	}
	idx := make([]int32, n)
	copy(idx, scratch.Data[:n])
	return c.Gather(idx)
}

// Gather returns a new Column built by picking c's elements at idx, in
// order; a negative or out-of-range index produces a null output element
// (spec §4 gather null-fill semantics, internal/simd.GatherFloat/GatherInt).
func (c *Column) Gather(idx []int32) (*Column, error) {
	n := len(idx)
	needsBitmap := simd.AnyNegative(idx) || hasOutOfRange(idx, c.length)
	var validOut []byte
	if needsBitmap {
		validOut = newAllValidBitmap(n)
	}

	switch c.dtype {
	case Float64:
		out := make([]float64, n)
		simd.GatherFloat(c.f64, idx, out, validOut)
		return finishGather(NewColumnF64(c.name, out), validOut)
	case Int64:
		out := make([]int64, n)
		simd.GatherInt(c.i64, idx, out, validOut)
		return finishGather(NewColumnI64(c.name, out), validOut)
	case Float32:
		out := make([]float32, n)
		simd.GatherFloat(c.f32, idx, out, validOut)
		return finishGather(NewColumnF32(c.name, out), validOut)
	case Int32:
		out := make([]int32, n)
		simd.GatherInt(c.i32, idx, out, validOut)
		return finishGather(NewColumnI32(c.name, out), validOut)
	case UInt64:
		out := make([]uint64, n)
		simd.GatherInt(c.u64, idx, out, validOut)
		return finishGather(NewColumnU64(c.name, out), validOut)
	case UInt32:
		out := make([]uint32, n)
		simd.GatherInt(c.u32, idx, out, validOut)
		return finishGather(NewColumnU32(c.name, out), validOut)
	case Bool:
		out := make([]uint8, n)
		simd.GatherUint8(c.b8, idx, out, validOut)
		col := &Column{name: c.name, dtype: Bool, length: n, b8: out}
		return finishGather(col, validOut)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDType, c.dtype)
	}
}

func hasOutOfRange(idx []int32, n int) bool {
	for _, v := range idx {
		if int(v) >= n {
			return true
		}
	}
	return false
}

func finishGather(col *Column, validOut []byte) (*Column, error) {
	if validOut == nil {
		return col, nil
	}
	nullCount := col.length - popcountRange(validOut, 0, col.length)
	col.valid = validOut
	col.hasNulls = nullCount > 0
	return col, nil
}

// Argsort returns the permutation that sorts a numeric column, dispatching
// to the direct radix path for Float64/Int64 and the comparison-based
// pair sort for Float32/Int32 (spec §4.4/§4.5); other dtypes return
// ErrUnsupportedDType.
func (c *Column) Argsort(ascending bool) ([]uint32, error) {
	var perm []uint32
	switch c.dtype {
	case Float64:
		perm = sortkernel.ArgsortFloat64Radix(c.f64)
	case Int64:
		perm = sortkernel.ArgsortInt64Radix(c.i64)
	case Float32:
		widened := make([]float64, len(c.f32))
		for i, v := range c.f32 {
			widened[i] = float64(v)
		}
		perm = sortkernel.ArgsortFloat64Pair(widened)
	case Int32:
		widened := make([]float64, len(c.i32))
		for i, v := range c.i32 {
			widened[i] = float64(v)
		}
		perm = sortkernel.ArgsortFloat64Pair(widened)
	default:
		return nil, fmt.Errorf("%w: argsort of %s", ErrUnsupportedDType, c.dtype)
	}
	if !ascending {
		sortkernel.ReverseInPlace(perm)
	}
	return perm, nil
}

// Sort returns a new Column with c's elements in sorted order.
func (c *Column) Sort(ascending bool) (*Column, error) {
	perm, err := c.Argsort(ascending)
	if err != nil {
		return nil, err
	}
	idx := make([]int32, len(perm))
	for i, p := range perm {
		idx[i] = int32(p)
	}
	return c.Gather(idx)
}

// groupHashes produces the per-row hash used by group-by/join dense-ID
// assignment, matching internal/simd's fast (non-quality) mix.
func (c *Column) groupHashes() ([]uint64, error) {
	n := c.length
	out := make([]uint64, n)
	switch c.dtype {
	case Int64:
		for i, v := range c.i64 {
			out[i] = simd.HashInt(v)
		}
	case Int32:
		for i, v := range c.i32 {
			out[i] = simd.HashInt(v)
		}
	case UInt64:
		for i, v := range c.u64 {
			out[i] = simd.HashInt(v)
		}
	case UInt32:
		for i, v := range c.u32 {
			out[i] = simd.HashInt(v)
		}
	case Float64:
		for i, v := range c.f64 {
			out[i] = simd.HashFloat(v)
		}
	case Float32:
		for i, v := range c.f32 {
			out[i] = simd.HashFloat(v)
		}
	default:
		return nil, fmt.Errorf("%w: group key of %s", ErrUnsupportedDType, c.dtype)
	}
	return out, nil
}

// GroupAssignment is the Column-level wrapper over internal/groupby's
// Assignment, exposed so callers can drive custom aggregations against
// the same dense-id pass (spec §4.2).
type GroupAssignment = groupby.Assignment

// GroupByAssign hashes c and assigns dense group ids (spec §4.2 "dense ID
// assignment").
func (c *Column) GroupByAssign() (*GroupAssignment, error) {
	hashes, err := c.groupHashes()
	if err != nil {
		return nil, err
	}
	return groupby.AssignDenseIDs(hashes), nil
}
