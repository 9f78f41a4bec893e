package veloxcore

import (
	"math"
	"testing"

	"github.com/brigantine-data/veloxcore/internal/simd"
)

func TestAdd_Float64(t *testing.T) {
	a := NewColumnF64("a", []float64{1, 2, 3})
	b := NewColumnF64("b", []float64{10, 20, 30})
	out, err := Add(a, b)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	want := []float64{11, 22, 33}
	for i, v := range want {
		got, _ := out.AtF64(i)
		if got != v {
			t.Errorf("out[%d] = %v, want %v", i, got, v)
		}
	}
}

func TestAdd_NullPropagation(t *testing.T) {
	a, _ := NewColumnF64("a", []float64{1, 2, 3}).WithValidity([]bool{true, false, true})
	b := NewColumnF64("b", []float64{10, 20, 30})
	out, err := Add(a, b)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if out.IsValid(1) {
		t.Error("expected index 1 to be null after combining validity")
	}
	if !out.IsValid(0) || !out.IsValid(2) {
		t.Error("expected indices 0 and 2 to stay valid")
	}
}

func TestAdd_DTypeMismatch(t *testing.T) {
	a := NewColumnF64("a", []float64{1})
	b := NewColumnI64("b", []int64{1})
	if _, err := Add(a, b); err == nil {
		t.Error("expected error for dtype mismatch")
	}
}

func TestAdd_LengthMismatch(t *testing.T) {
	a := NewColumnF64("a", []float64{1, 2})
	b := NewColumnF64("b", []float64{1})
	if _, err := Add(a, b); err == nil {
		t.Error("expected error for length mismatch")
	}
}

func TestSumMinMaxMean_Float64(t *testing.T) {
	c := NewColumnF64("x", []float64{1, 2, 3, 4})
	sum, err := c.Sum()
	if err != nil || sum != 10 {
		t.Errorf("Sum() = %v, %v; want 10, nil", sum, err)
	}
	min, _ := c.Min()
	if min != 1 {
		t.Errorf("Min() = %v, want 1", min)
	}
	max, _ := c.Max()
	if max != 4 {
		t.Errorf("Max() = %v, want 4", max)
	}
	mean, _ := c.Mean()
	if mean != 2.5 {
		t.Errorf("Mean() = %v, want 2.5", mean)
	}
}

func TestMean_AllNull(t *testing.T) {
	c, _ := NewColumnF64("x", []float64{1, 2}).WithValidity([]bool{false, false})
	mean, err := c.Mean()
	if err != nil {
		t.Fatalf("Mean: %v", err)
	}
	if !math.IsNaN(mean) {
		t.Errorf("Mean() on all-null column = %v, want NaN", mean)
	}
}

func TestCompareScalar(t *testing.T) {
	c := NewColumnF64("x", []float64{1, 5, 3, 8})
	mask, err := c.CompareScalar(simd.CmpGT, 3)
	if err != nil {
		t.Fatalf("CompareScalar: %v", err)
	}
	want := []bool{false, true, false, true}
	for i, v := range want {
		if mask[i] != v {
			t.Errorf("mask[%d] = %v, want %v", i, mask[i], v)
		}
	}
}

func TestFilterGreaterThan(t *testing.T) {
	c := NewColumnF64("x", []float64{1, 5, 3, 8})
	idx, err := c.FilterGreaterThan(3)
	if err != nil {
		t.Fatalf("FilterGreaterThan: %v", err)
	}
	want := []uint32{1, 3}
	if len(idx) != len(want) {
		t.Fatalf("len(idx) = %d, want %d", len(idx), len(want))
	}
	for i, v := range want {
		if idx[i] != v {
			t.Errorf("idx[%d] = %d, want %d", i, idx[i], v)
		}
	}
}
