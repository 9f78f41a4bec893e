package sortkernel

import (
	"math"
	"sort"
	"testing"
)

func TestArgsortFloat64Radix_Basic(t *testing.T) {
	data := []float64{5.2, -1.0, 3.3, 0.0, -9.9, 2.0}
	perm := ArgsortFloat64Radix(data)
	if len(perm) != len(data) {
		t.Fatalf("expected permutation length %d, got %d", len(data), len(perm))
	}
	got := make([]float64, len(data))
	for i, p := range perm {
		got[i] = data[p]
	}
	if !sort.Float64sAreSorted(got) {
		t.Errorf("result not sorted: %v", got)
	}
}

func TestArgsortFloat64Radix_NegativeZeroOrdering(t *testing.T) {
	data := []float64{0.0, math.Copysign(0, -1), -1.0, 1.0}
	sorted := SortFloat64Radix(data)
	want := []float64{-1.0, 0.0, 0.0, 1.0}
	for i, v := range want {
		if sorted[i] != v {
			t.Errorf("index %d: expected %v, got %v", i, v, sorted[i])
		}
	}
}

func TestArgsortFloat64Radix_Empty(t *testing.T) {
	if perm := ArgsortFloat64Radix(nil); len(perm) != 0 {
		t.Errorf("expected empty permutation, got %v", perm)
	}
}

func TestArgsortInt64Radix_Basic(t *testing.T) {
	data := []int64{5, -100, 3, 0, -1, math.MaxInt64, math.MinInt64}
	sorted := SortInt64Radix(data)
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1] > sorted[i] {
			t.Errorf("not sorted at %d: %v", i, sorted)
		}
	}
	if sorted[0] != math.MinInt64 || sorted[len(sorted)-1] != math.MaxInt64 {
		t.Errorf("extremes misplaced: %v", sorted)
	}
}

func TestReverseInPlace(t *testing.T) {
	s := []uint32{1, 2, 3, 4, 5}
	ReverseInPlace(s)
	want := []uint32{5, 4, 3, 2, 1}
	for i := range want {
		if s[i] != want[i] {
			t.Errorf("index %d: expected %d, got %d", i, want[i], s[i])
		}
	}
}
