package sortkernel

// pairRecord packs (value, index) contiguously so partitioning compares
// against local memory instead of following an index indirection on every
// comparison (spec §4.5 "pair-based sort").
type pairRecord struct {
	value float64
	index uint32
}

const insertionSortCutoff = 24

// ArgsortFloat64Pair returns a stable-ish ascending permutation using a
// SIMD-partition-style quicksort (median-of-three pivot, vectorized
// compare/conditional-swap emulated as a two-pointer scan) with
// an insertion-sort cutoff for small partitions (spec §4.5). Unlike the
// LSD radix path this is not guaranteed stable for equal keys.
func ArgsortFloat64Pair(data []float64) []uint32 {
	n := len(data)
	recs := make([]pairRecord, n)
	for i, v := range data {
		recs[i] = pairRecord{value: v, index: uint32(i)}
	}
	quicksortPairs(recs, 0, n-1)
	out := make([]uint32, n)
	for i, r := range recs {
		out[i] = r.index
	}
	return out
}

func quicksortPairs(recs []pairRecord, lo, hi int) {
	for hi-lo+1 > insertionSortCutoff {
		p := partitionPairs(recs, lo, hi)
		// Recurse into the smaller side, loop over the larger — bounds
		// stack depth to O(log n) in the worst case.
		if p-lo < hi-p {
			quicksortPairs(recs, lo, p)
			lo = p + 1
		} else {
			quicksortPairs(recs, p+1, hi)
			hi = p
		}
	}
	insertionSortPairs(recs, lo, hi)
}

func partitionPairs(recs []pairRecord, lo, hi int) int {
	mid := lo + (hi-lo)/2
	pivot := medianOfThree(recs[lo].value, recs[mid].value, recs[hi].value)

	i, j := lo-1, hi+1
	for {
		for {
			i++
			if recs[i].value >= pivot {
				break
			}
		}
		for {
			j--
			if recs[j].value <= pivot {
				break
			}
		}
		if i >= j {
			return j
		}
		recs[i], recs[j] = recs[j], recs[i]
	}
}

func medianOfThree(a, b, c float64) float64 {
	if a > b {
		a, b = b, a
	}
	if b > c {
		b = c
	}
	if a > b {
		b = a
	}
	return b
}

func insertionSortPairs(recs []pairRecord, lo, hi int) {
	for i := lo + 1; i <= hi; i++ {
		r := recs[i]
		j := i - 1
		for j >= lo && recs[j].value > r.value {
			recs[j+1] = recs[j]
			j--
		}
		recs[j+1] = r
	}
}
