package veloxcore

import (
	"math"
	"testing"
)

func TestAtF64_OutOfRange(t *testing.T) {
	c := NewColumnF64("x", []float64{1, 2, 3})
	if _, ok := c.AtF64(-1); ok {
		t.Error("expected ok=false for negative index")
	}
	if _, ok := c.AtF64(3); ok {
		t.Error("expected ok=false for index == length")
	}
	v, ok := c.AtF64(1)
	if !ok || v != 2 {
		t.Errorf("AtF64(1) = %v, %v; want 2, true", v, ok)
	}
}

func TestAtF64_Null(t *testing.T) {
	c, _ := NewColumnF64("x", []float64{1, 2, 3}).WithValidity([]bool{true, false, true})
	_, ok := c.AtF64(1)
	if ok {
		t.Error("expected ok=false for null entry")
	}
}

func TestToFloat64_WidensAndNullsToNaN(t *testing.T) {
	c, _ := NewColumnI64("x", []int64{1, 2, 3}).WithValidity([]bool{true, false, true})
	out := c.ToFloat64()
	if out[0] != 1 || out[2] != 3 {
		t.Errorf("ToFloat64() = %v, want [1 NaN 3]", out)
	}
	if !math.IsNaN(out[1]) {
		t.Errorf("ToFloat64()[1] = %v, want NaN", out[1])
	}
}

func TestHeadTail(t *testing.T) {
	c := NewColumnF64("x", []float64{1, 2, 3, 4, 5})
	head, err := c.Head(2)
	if err != nil || head.Len() != 2 {
		t.Fatalf("Head(2): %v, len=%d", err, head.Len())
	}
	v, _ := head.AtF64(1)
	if v != 2 {
		t.Errorf("head[1] = %v, want 2", v)
	}
	tail, err := c.Tail(2)
	if err != nil || tail.Len() != 2 {
		t.Fatalf("Tail(2): %v, len=%d", err, tail.Len())
	}
	v, _ = tail.AtF64(0)
	if v != 4 {
		t.Errorf("tail[0] = %v, want 4", v)
	}
}

func TestHead_ClampsToLength(t *testing.T) {
	c := NewColumnF64("x", []float64{1, 2})
	head, err := c.Head(10)
	if err != nil || head.Len() != 2 {
		t.Fatalf("Head(10): %v, len=%d", err, head.Len())
	}
}

func TestGtF64(t *testing.T) {
	c := NewColumnF64("x", []float64{1, 5, 3, 8})
	mask := c.GtF64(3)
	want := []bool{false, true, false, true}
	for i, v := range want {
		if mask[i] != v {
			t.Errorf("mask[%d] = %v, want %v", i, mask[i], v)
		}
	}
}

func TestEqI64(t *testing.T) {
	c := NewColumnI64("x", []int64{1, 2, 2, 3})
	mask := c.EqI64(2)
	want := []bool{false, true, true, false}
	for i, v := range want {
		if mask[i] != v {
			t.Errorf("mask[%d] = %v, want %v", i, mask[i], v)
		}
	}
}

func TestAddScalar(t *testing.T) {
	c := NewColumnF64("x", []float64{1, 2, 3})
	out, err := c.AddScalar(10)
	if err != nil {
		t.Fatalf("AddScalar: %v", err)
	}
	want := []float64{11, 12, 13}
	for i, v := range want {
		got, _ := out.AtF64(i)
		if got != v {
			t.Errorf("out[%d] = %v, want %v", i, got, v)
		}
	}
}

func TestAddScalar_WrongDType(t *testing.T) {
	c := NewColumnI64("x", []int64{1, 2, 3})
	if _, err := c.AddScalar(1); err == nil {
		t.Error("expected error calling AddScalar on an Int64 column")
	}
}

func TestSubDivScalar(t *testing.T) {
	c := NewColumnF64("x", []float64{10, 20})
	sub, _ := c.SubScalar(5)
	v, _ := sub.AtF64(0)
	if v != 5 {
		t.Errorf("SubScalar: got %v, want 5", v)
	}
	div, _ := c.DivScalar(2)
	v, _ = div.AtF64(1)
	if v != 10 {
		t.Errorf("DivScalar: got %v, want 10", v)
	}
}

func TestAddScalarI64(t *testing.T) {
	c := NewColumnI64("x", []int64{1, 2, 3})
	out, err := c.AddScalarI64(100)
	if err != nil {
		t.Fatalf("AddScalarI64: %v", err)
	}
	v, _ := out.AtI64(2)
	if v != 103 {
		t.Errorf("out[2] = %d, want 103", v)
	}
}

func TestWhere(t *testing.T) {
	c := NewColumnF64("x", []float64{1, 2, 3, 4})
	out, err := c.Where([]bool{true, false, true, false})
	if err != nil {
		t.Fatalf("Where: %v", err)
	}
	if out.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", out.Len())
	}
	v, _ := out.AtF64(1)
	if v != 3 {
		t.Errorf("out[1] = %v, want 3", v)
	}
}

func TestSortAscDesc(t *testing.T) {
	c := NewColumnF64("x", []float64{3, 1, 2})
	asc, err := c.SortAsc()
	if err != nil {
		t.Fatalf("SortAsc: %v", err)
	}
	want := []float64{1, 2, 3}
	for i, v := range want {
		got, _ := asc.AtF64(i)
		if got != v {
			t.Errorf("asc[%d] = %v, want %v", i, got, v)
		}
	}
	desc, _ := c.SortDesc()
	wantDesc := []float64{3, 2, 1}
	for i, v := range wantDesc {
		got, _ := desc.AtF64(i)
		if got != v {
			t.Errorf("desc[%d] = %v, want %v", i, got, v)
		}
	}
}
