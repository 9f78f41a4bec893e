package veloxcore

import "testing"

func newGroupByFixture() *Table {
	tbl, _ := NewTable(
		NewColumnI64("group", []int64{1, 2, 1, 3, 2, 1}),
		NewColumnF64("value", []float64{10, 20, 30, 40, 50, 60}),
	)
	return tbl
}

func sumFor(t *testing.T, result *Table, group int64) float64 {
	t.Helper()
	keys := result.ColumnByName("group")
	sums := result.ColumnByName("value_sum")
	for i := 0; i < result.NumRows(); i++ {
		k, _ := keys.AtI64(i)
		if k == group {
			v, _ := sums.AtF64(i)
			return v
		}
	}
	t.Fatalf("group %d not found in result", group)
	return 0
}

func TestGroupBySum(t *testing.T) {
	result, err := newGroupByFixture().GroupBy("group").Sum("value")
	if err != nil {
		t.Fatalf("Sum: %v", err)
	}
	if result.NumRows() != 3 {
		t.Fatalf("NumRows() = %d, want 3", result.NumRows())
	}
	if got := sumFor(t, result, 1); got != 100 {
		t.Errorf("group 1 sum = %v, want 100", got)
	}
	if got := sumFor(t, result, 2); got != 70 {
		t.Errorf("group 2 sum = %v, want 70", got)
	}
	if got := sumFor(t, result, 3); got != 40 {
		t.Errorf("group 3 sum = %v, want 40", got)
	}
}

func TestGroupByCount(t *testing.T) {
	result, err := newGroupByFixture().GroupBy("group").Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	counts := result.ColumnByName("count")
	keys := result.ColumnByName("group")
	for i := 0; i < result.NumRows(); i++ {
		k, _ := keys.AtI64(i)
		c, _ := counts.AtI64(i)
		switch k {
		case 1:
			if c != 3 {
				t.Errorf("group 1 count = %d, want 3", c)
			}
		case 2:
			if c != 2 {
				t.Errorf("group 2 count = %d, want 2", c)
			}
		case 3:
			if c != 1 {
				t.Errorf("group 3 count = %d, want 1", c)
			}
		}
	}
}

func TestGroupByMean(t *testing.T) {
	result, err := newGroupByFixture().GroupBy("group").Mean("value")
	if err != nil {
		t.Fatalf("Mean: %v", err)
	}
	means := result.ColumnByName("value_mean")
	keys := result.ColumnByName("group")
	for i := 0; i < result.NumRows(); i++ {
		k, _ := keys.AtI64(i)
		m, _ := means.AtF64(i)
		if k == 1 && m != (10.0+30+60)/3 {
			t.Errorf("group 1 mean = %v, want %v", m, (10.0+30+60)/3)
		}
	}
}

func TestGroupByAgg_SameColumn(t *testing.T) {
	result, err := newGroupByFixture().GroupBy("group").Agg(map[string]string{"value": "sum"})
	if err != nil {
		t.Fatalf("Agg: %v", err)
	}
	if result.ColumnByName("value_sum") == nil {
		t.Error("missing value_sum column")
	}
}

func TestGroupBy_UnknownColumn(t *testing.T) {
	if newGroupByFixture().GroupBy("nope") != nil {
		t.Error("expected nil GroupBy for unknown column")
	}
}

func TestGroupBy_NonInt64Key(t *testing.T) {
	tbl, _ := NewTable(NewColumnF64("group", []float64{1, 2}), NewColumnF64("value", []float64{1, 2}))
	if _, err := tbl.GroupBy("group").Sum("value"); err == nil {
		t.Error("expected error for non-Int64 groupby key")
	}
}
