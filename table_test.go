package veloxcore

import "testing"

func TestNewTable_LengthMismatch(t *testing.T) {
	a := NewColumnI64("id", []int64{1, 2, 3})
	b := NewColumnF64("val", []float64{1, 2})
	if _, err := NewTable(a, b); err == nil {
		t.Error("expected error for mismatched column lengths")
	}
}

func TestTable_Accessors(t *testing.T) {
	tbl, err := NewTable(
		NewColumnI64("id", []int64{1, 2, 3}),
		NewColumnF64("val", []float64{10, 20, 30}),
	)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	if tbl.NumRows() != 3 {
		t.Errorf("NumRows() = %d, want 3", tbl.NumRows())
	}
	if tbl.NumCols() != 2 {
		t.Errorf("NumCols() = %d, want 2", tbl.NumCols())
	}
	if tbl.ColumnByName("val") == nil {
		t.Error("missing 'val' column")
	}
	if tbl.ColumnByName("missing") != nil {
		t.Error("expected nil for missing column")
	}
	names := tbl.ColumnNames()
	if len(names) != 2 || names[0] != "id" || names[1] != "val" {
		t.Errorf("ColumnNames() = %v", names)
	}
}

func TestTable_WithColumn(t *testing.T) {
	tbl, _ := NewTable(NewColumnI64("id", []int64{1, 2}))
	extended := tbl.WithColumn(NewColumnF64("val", []float64{1, 2}))
	if extended.NumCols() != 2 {
		t.Errorf("NumCols() = %d, want 2", extended.NumCols())
	}
	if tbl.NumCols() != 1 {
		t.Error("WithColumn should not mutate the receiver")
	}
}

func TestTable_Gather(t *testing.T) {
	tbl, _ := NewTable(
		NewColumnI64("id", []int64{10, 20, 30}),
		NewColumnF64("val", []float64{1, 2, 3}),
	)
	out, err := tbl.Gather([]int32{2, 0})
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	if out.NumRows() != 2 {
		t.Fatalf("NumRows() = %d, want 2", out.NumRows())
	}
	id, _ := out.ColumnByName("id").AtI64(0)
	if id != 30 {
		t.Errorf("gathered id[0] = %d, want 30", id)
	}
	val, _ := out.ColumnByName("val").AtF64(1)
	if val != 1 {
		t.Errorf("gathered val[1] = %v, want 1", val)
	}
}

func TestConcatColumns(t *testing.T) {
	a := NewColumnI64("x", []int64{1, 2})
	b := NewColumnI64("x", []int64{3, 4})
	out, err := concatColumns(a, b)
	if err != nil {
		t.Fatalf("concatColumns: %v", err)
	}
	if out.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", out.Len())
	}
	want := []int64{1, 2, 3, 4}
	for i, v := range want {
		got, _ := out.AtI64(i)
		if got != v {
			t.Errorf("out[%d] = %d, want %d", i, got, v)
		}
	}
}

func TestConcatColumns_WithNulls(t *testing.T) {
	a, _ := NewColumnI64("x", []int64{1, 2}).WithValidity([]bool{true, false})
	b := NewColumnI64("x", []int64{3, 4})
	out, err := concatColumns(a, b)
	if err != nil {
		t.Fatalf("concatColumns: %v", err)
	}
	if out.IsValid(1) {
		t.Error("expected index 1 to stay null")
	}
	if !out.IsValid(0) || !out.IsValid(2) || !out.IsValid(3) {
		t.Error("expected indices 0, 2, 3 to be valid")
	}
}

func TestConcatColumns_DTypeMismatch(t *testing.T) {
	a := NewColumnI64("x", []int64{1})
	b := NewColumnF64("x", []float64{1})
	if _, err := concatColumns(a, b); err == nil {
		t.Error("expected error for dtype mismatch")
	}
}
