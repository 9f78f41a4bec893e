package veloxcore

import "testing"

func TestParallelBuildColumns(t *testing.T) {
	cols := ParallelBuildColumns(3, func(colIdx int) *Column {
		data := make([]float64, 5)
		for i := range data {
			data[i] = float64(colIdx*10 + i)
		}
		return NewColumnF64("col", data)
	})

	if len(cols) != 3 {
		t.Errorf("Expected 3 columns, got %d", len(cols))
	}

	for colIdx, col := range cols {
		data := col.ToFloat64()
		for i, v := range data {
			expected := float64(colIdx*10 + i)
			if v != expected {
				t.Errorf("cols[%d][%d] = %f, want %f", colIdx, i, v, expected)
			}
		}
	}
}

func TestParallelBuildColumns_SingleColumn(t *testing.T) {
	cols := ParallelBuildColumns(1, func(colIdx int) *Column {
		return NewColumnF64("col", []float64{float64(colIdx)})
	})

	if len(cols) != 1 {
		t.Errorf("Expected 1 column, got %d", len(cols))
	}
}

func TestParallelBuildColumns_Empty(t *testing.T) {
	cols := ParallelBuildColumns(0, func(colIdx int) *Column {
		t.Fatal("builder should not be called for n=0")
		return nil
	})

	if len(cols) != 0 {
		t.Errorf("Expected 0 columns, got %d", len(cols))
	}
}
