package groupby

import (
	"testing"

	"github.com/brigantine-data/veloxcore/internal/parallel"
)

func sumByKeyRef(keys []int64, values []float64) map[int64]float64 {
	ref := make(map[int64]float64)
	for i, k := range keys {
		ref[k] += values[i]
	}
	return ref
}

func TestSumInt64Key_Basic(t *testing.T) {
	keys := []int64{1, 2, 1, 3, 2, 1}
	values := []float64{10, 20, 30, 40, 50, 60}
	uniqueKeys, sums := SumInt64Key(keys, values)

	ref := sumByKeyRef(keys, values)
	if len(uniqueKeys) != len(ref) {
		t.Fatalf("expected %d groups, got %d", len(ref), len(uniqueKeys))
	}
	for g, k := range uniqueKeys {
		if sums[g] != ref[k] {
			t.Errorf("key %d: expected sum %v, got %v", k, ref[k], sums[g])
		}
	}
}

func TestCountInt64Key_Basic(t *testing.T) {
	keys := []int64{7, 7, 8, 7, 9}
	uniqueKeys, counts := CountInt64Key(keys)
	want := map[int64]int32{7: 3, 8: 1, 9: 1}
	for g, k := range uniqueKeys {
		if counts[g] != want[k] {
			t.Errorf("key %d: expected count %d, got %d", k, want[k], counts[g])
		}
	}
}

func TestMeanInt64Key_Basic(t *testing.T) {
	keys := []int64{1, 1, 2}
	values := []float64{2, 4, 10}
	uniqueKeys, means := MeanInt64Key(keys, values)
	for g, k := range uniqueKeys {
		if k == 1 && means[g] != 3.0 {
			t.Errorf("expected mean 3.0 for key 1, got %v", means[g])
		}
		if k == 2 && means[g] != 10.0 {
			t.Errorf("expected mean 10.0 for key 2, got %v", means[g])
		}
	}
}

func TestScatterSumFloatParallel_MatchesSerial(t *testing.T) {
	n := 300_000
	numGroups := 500
	ids := make([]uint32, n)
	values := make([]float64, n)
	for i := 0; i < n; i++ {
		ids[i] = uint32(i % numGroups)
		values[i] = float64(i%7) - 3
	}
	serial := ScatterSumFloat(ids, values, numGroups)
	parallelResult := ScatterSumFloatParallel(parallel.Global(), ids, values, numGroups)
	for g := range serial {
		if diff := serial[g] - parallelResult[g]; diff > 1e-6 || diff < -1e-6 {
			t.Fatalf("group %d mismatch: serial=%v parallel=%v", g, serial[g], parallelResult[g])
		}
	}
}

func TestMultiAggInt64Key_Basic(t *testing.T) {
	keys := []int64{1, 1, 2, 2, 2}
	values := []float64{10, 20, 1, 5, 3}
	uniqueKeys, results := MultiAggInt64Key(keys, []Agg{
		{Name: "sum", Kind: "sum", Values: values},
		{Name: "min", Kind: "min", Values: values},
		{Name: "max", Kind: "max", Values: values},
		{Name: "count", Kind: "count"},
	})

	idxOf := make(map[int64]int)
	for g, k := range uniqueKeys {
		idxOf[k] = g
	}
	g1, g2 := idxOf[1], idxOf[2]

	if results["sum"][g1] != 30 || results["sum"][g2] != 9 {
		t.Errorf("unexpected sums: %v", results["sum"])
	}
	if results["min"][g2] != 1 || results["max"][g2] != 5 {
		t.Errorf("unexpected min/max for key 2: min=%v max=%v", results["min"][g2], results["max"][g2])
	}
	if results["count"][g1] != 2 || results["count"][g2] != 3 {
		t.Errorf("unexpected counts: %v", results["count"])
	}
}
