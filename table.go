package veloxcore

import (
	"fmt"
	"sync"
)

// Table is an ordered collection of equal-length Columns (spec §5 "Table"):
// a minimal materialization shape for join/group-by end-to-end entry
// points. Lookup by name (ColumnByName) is a linear scan over Columns;
// there is no select/drop/rename surface, mirroring how the teacher's
// DataFrame sits above Series rather than folding that API into it.
type Table struct {
	Columns []*Column
}

// NewTable builds a Table from columns of equal length.
func NewTable(columns ...*Column) (*Table, error) {
	if len(columns) == 0 {
		return &Table{}, nil
	}
	n := columns[0].Len()
	for _, c := range columns[1:] {
		if c.Len() != n {
			return nil, fmt.Errorf("%w: column %q has %d rows, expected %d", ErrLengthMismatch, c.Name(), c.Len(), n)
		}
	}
	return &Table{Columns: columns}, nil
}

// NumRows returns the row count shared by all columns, or 0 for an empty
// Table.
func (t *Table) NumRows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return t.Columns[0].Len()
}

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return len(t.Columns) }

// Column returns the i-th column.
func (t *Table) Column(i int) *Column { return t.Columns[i] }

// ColumnByName returns the first column with the given name, or nil.
func (t *Table) ColumnByName(name string) *Column {
	for _, c := range t.Columns {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

// ColumnNames returns the names of every column in order.
func (t *Table) ColumnNames() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name()
	}
	return out
}

// WithColumn returns a new Table with col appended.
func (t *Table) WithColumn(col *Column) *Table {
	out := make([]*Column, len(t.Columns), len(t.Columns)+1)
	copy(out, t.Columns)
	out = append(out, col)
	return &Table{Columns: out}
}

// Gather applies the same row selection to every column (spec §6 join/
// sort materialization: both sides of a result are gathered against the
// same index list). Columns are materialized with ParallelBuildColumns,
// since each column's gather is independent of its neighbors.
func (t *Table) Gather(idx []int32) (*Table, error) {
	var gatherErr error
	var mu sync.Mutex
	out := ParallelBuildColumns(len(t.Columns), func(i int) *Column {
		g, err := t.Columns[i].Gather(idx)
		if err != nil {
			mu.Lock()
			gatherErr = err
			mu.Unlock()
			return nil
		}
		return g
	})
	if gatherErr != nil {
		return nil, gatherErr
	}
	return &Table{Columns: out}, nil
}

// Release drops every column's backing storage.
func (t *Table) Release() {
	for _, c := range t.Columns {
		c.Release()
	}
	t.Columns = nil
}

// concatColumns appends b's rows after a's, used to stitch OuterJoin's
// matched and right-only row blocks back together. Both columns must
// share a's dtype and name.
func concatColumns(a, b *Column) (*Column, error) {
	if a.dtype != b.dtype {
		return nil, fmt.Errorf("%w: concat(%s, %s)", ErrDTypeMismatch, a.dtype, b.dtype)
	}
	n := a.length + b.length
	out := &Column{name: a.name, dtype: a.dtype, length: n}
	switch a.dtype {
	case Float64:
		out.f64 = append(append([]float64{}, a.f64...), b.f64...)
	case Int64:
		out.i64 = append(append([]int64{}, a.i64...), b.i64...)
	case Float32:
		out.f32 = append(append([]float32{}, a.f32...), b.f32...)
	case Int32:
		out.i32 = append(append([]int32{}, a.i32...), b.i32...)
	case UInt64:
		out.u64 = append(append([]uint64{}, a.u64...), b.u64...)
	case UInt32:
		out.u32 = append(append([]uint32{}, a.u32...), b.u32...)
	case Bool:
		out.b8 = append(append([]uint8{}, a.b8...), b.b8...)
	default:
		return nil, fmt.Errorf("%w: concat of %s", ErrUnsupportedDType, a.dtype)
	}
	if a.valid != nil || b.valid != nil {
		out.valid = newAllValidBitmap(n)
		for i := 0; i < a.length; i++ {
			if a.valid != nil && !bitGet(a.valid, i) {
				bitSet(out.valid, i, false)
			}
		}
		for i := 0; i < b.length; i++ {
			if b.valid != nil && !bitGet(b.valid, i) {
				bitSet(out.valid, a.length+i, false)
			}
		}
		out.hasNulls = out.NullCount() > 0
	}
	return out, nil
}
