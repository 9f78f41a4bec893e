package hashtable

import "testing"

func TestBuildChained_FindsAllMatchingRows(t *testing.T) {
	hashes := []uint64{10, 20, 10, 30, 10, 20}
	tbl := BuildChained(hashes)

	countMatches := func(h uint64) int {
		count := 0
		for row := tbl.Head(h); row != -1; row = tbl.Next(row) {
			if hashes[row] == h {
				count++
			}
		}
		return count
	}

	if got := countMatches(10); got != 3 {
		t.Errorf("expected 3 rows for hash 10, got %d", got)
	}
	if got := countMatches(20); got != 2 {
		t.Errorf("expected 2 rows for hash 20, got %d", got)
	}
	if got := countMatches(30); got != 1 {
		t.Errorf("expected 1 row for hash 30, got %d", got)
	}
	if got := countMatches(999); got != 0 {
		t.Errorf("expected 0 rows for absent hash, got %d", got)
	}
}

func TestBuildChained_Empty(t *testing.T) {
	tbl := BuildChained(nil)
	if tbl.Head(0) != -1 {
		t.Errorf("expected empty table to report no head")
	}
}

func TestEstimateCapacity_PowerOfTwoAndBounded(t *testing.T) {
	hashes := make([]uint64, 10000)
	for i := range hashes {
		hashes[i] = uint64(i % 50) // heavy duplication: 50 distinct keys
	}
	cap := estimateCapacity(hashes)
	if cap&(cap-1) != 0 {
		t.Errorf("expected power-of-two capacity, got %d", cap)
	}
	if cap > capacityCeil {
		t.Errorf("expected capacity <= ceiling %d, got %d", capacityCeil, cap)
	}
}
