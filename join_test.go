package veloxcore

import "testing"

func customers() *Table {
	tbl, _ := NewTable(
		NewColumnI64("id", []int64{1, 2, 3, 4}),
		NewColumnF64("score", []float64{10, 20, 30, 40}),
	)
	return tbl
}

func orders() *Table {
	tbl, _ := NewTable(
		NewColumnI64("id", []int64{1, 2, 2, 5}),
		NewColumnF64("amount", []float64{100, 200, 150, 300}),
	)
	return tbl
}

func TestJoin_Inner(t *testing.T) {
	result, err := customers().Join(orders(), On("id"))
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if result.NumRows() != 3 {
		t.Errorf("NumRows() = %d, want 3 (ids 1, 2, 2)", result.NumRows())
	}
	if result.NumCols() != 3 {
		t.Errorf("NumCols() = %d, want 3 (id, score, amount)", result.NumCols())
	}
}

func TestJoin_LeftPreservesEveryLeftRow(t *testing.T) {
	result, err := customers().LeftJoin(orders(), On("id"))
	if err != nil {
		t.Fatalf("LeftJoin: %v", err)
	}
	// id=1 matches once, id=2 matches twice, id=3 and id=4 are unmatched: 1+2+1+1 = 5
	if result.NumRows() != 5 {
		t.Fatalf("NumRows() = %d, want 5", result.NumRows())
	}
	idCol := result.ColumnByName("id")
	amountCol := result.ColumnByName("amount")
	seenIDs := make(map[int64]int)
	for i := 0; i < result.NumRows(); i++ {
		id, _ := idCol.AtI64(i)
		seenIDs[id]++
		if id == 3 || id == 4 {
			if amountCol.IsValid(i) {
				t.Errorf("row with id %d should have a null amount", id)
			}
		}
	}
	if seenIDs[3] != 1 || seenIDs[4] != 1 {
		t.Errorf("expected ids 3 and 4 to each appear exactly once, got %v", seenIDs)
	}
}

func TestJoin_Right(t *testing.T) {
	result, err := customers().RightJoin(orders(), On("id"))
	if err != nil {
		t.Fatalf("RightJoin: %v", err)
	}
	// every order row must survive: ids 1, 2, 2, 5
	if result.NumRows() != 4 {
		t.Fatalf("NumRows() = %d, want 4", result.NumRows())
	}
}

func TestJoin_Outer(t *testing.T) {
	result, err := customers().OuterJoin(orders(), On("id"))
	if err != nil {
		t.Fatalf("OuterJoin: %v", err)
	}
	// left-join rows (5) plus the one right-only row (id=5): 6
	if result.NumRows() != 6 {
		t.Fatalf("NumRows() = %d, want 6", result.NumRows())
	}
	idCol := result.ColumnByName("id")
	found5 := false
	for i := 0; i < result.NumRows(); i++ {
		id, _ := idCol.AtI64(i)
		if id == 5 {
			found5 = true
		}
	}
	if !found5 {
		t.Error("expected a row carrying id=5 from the right-only side")
	}
}

func TestJoin_Cross(t *testing.T) {
	a, _ := NewTable(NewColumnI64("x", []int64{1, 2}))
	b, _ := NewTable(NewColumnI64("y", []int64{10, 20, 30}))
	result, err := a.CrossJoin(b)
	if err != nil {
		t.Fatalf("CrossJoin: %v", err)
	}
	if result.NumRows() != 6 {
		t.Errorf("NumRows() = %d, want 6", result.NumRows())
	}
	if result.NumCols() != 2 {
		t.Errorf("NumCols() = %d, want 2", result.NumCols())
	}
}

func TestJoin_SuffixOnCollision(t *testing.T) {
	a, _ := NewTable(NewColumnI64("id", []int64{1, 2}), NewColumnF64("val", []float64{1, 2}))
	b, _ := NewTable(NewColumnI64("oid", []int64{1, 2}), NewColumnF64("val", []float64{10, 20}))
	result, err := a.Join(b, LeftOn("id").RightOn("oid"))
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if result.ColumnByName("val") == nil || result.ColumnByName("val_right") == nil {
		t.Errorf("expected both 'val' and 'val_right' columns, got names %v", result.ColumnNames())
	}
}

func TestJoin_MissingColumn(t *testing.T) {
	if _, err := customers().Join(orders(), On("nope")); err == nil {
		t.Error("expected error for missing join column")
	}
}
