// Package sortkernel implements the SIMD sort engine (C5): an LSD radix
// sort for 64-bit floats, a pair-based quicksort with SIMD-style
// partitioning, and a parallel sample-sort wrapper (spec §4.5).
package sortkernel

import "math"

// floatToOrderedKey maps an IEEE-754 float64 to a sort-order-preserving
// uint64 (spec §4.5): flip all bits when the sign bit is set (negative
// numbers), flip only the sign bit otherwise (positive numbers and zero),
// so that the resulting unsigned integers compare in the same order as
// the original floats, NaNs included at the extremes.
func floatToOrderedKey(f float64) uint64 {
	bits := math.Float64bits(f)
	if bits&(1<<63) != 0 {
		return ^bits
	}
	return bits | (1 << 63)
}

func orderedKeyToFloat(key uint64) float64 {
	if key&(1<<63) != 0 {
		return math.Float64frombits(key &^ (1 << 63))
	}
	return math.Float64frombits(^key)
}

const radixPasses = 8
const radixDigitBits = 8
const radixBuckets = 1 << radixDigitBits
const radixMask = radixBuckets - 1

// int64ToOrderedKey maps a signed int64 to a sort-order-preserving uint64
// by flipping only the sign bit — two's complement integers are already
// monotonic in their bit pattern once the sign bit is normalized.
func int64ToOrderedKey(v int64) uint64 {
	return uint64(v) ^ (1 << 63)
}

// radixSortKeys is the shared 8-bit-digit, 8-pass LSD radix core (spec
// §4.5): stable with respect to input order for equal keys, since LSD
// radix sort is inherently stable at every digit pass.
func radixSortKeys(keys []uint64) []uint32 {
	n := len(keys)
	idx := make([]uint32, n)
	for i := range idx {
		idx[i] = uint32(i)
	}
	if n < 2 {
		return idx
	}

	idxBuf := make([]uint32, n)
	keyBuf := make([]uint64, n)

	src, dst := idx, idxBuf
	ksrc, kdst := append([]uint64(nil), keys...), keyBuf

	var count [radixBuckets]int
	for pass := 0; pass < radixPasses; pass++ {
		shift := uint(pass * radixDigitBits)
		for i := range count {
			count[i] = 0
		}
		for _, k := range ksrc {
			digit := (k >> shift) & radixMask
			count[digit]++
		}
		var total int
		for d := 0; d < radixBuckets; d++ {
			c := count[d]
			count[d] = total
			total += c
		}
		for i, k := range ksrc {
			digit := (k >> shift) & radixMask
			pos := count[digit]
			count[digit]++
			dst[pos] = src[i]
			kdst[pos] = k
		}
		src, dst = dst, src
		ksrc, kdst = kdst, ksrc
	}
	// radixPasses is even, so after the final swap src holds the sorted
	// permutation (spec §4.5).
	return src
}

// ArgsortFloat64Radix returns the permutation that stably sorts data
// ascending, via the order-preserving key mapping (spec §4.5).
func ArgsortFloat64Radix(data []float64) []uint32 {
	keys := make([]uint64, len(data))
	for i, v := range data {
		keys[i] = floatToOrderedKey(v)
	}
	return radixSortKeys(keys)
}

// SortFloat64Radix returns data sorted ascending via the radix path.
func SortFloat64Radix(data []float64) []float64 {
	perm := ArgsortFloat64Radix(data)
	out := make([]float64, len(data))
	for i, p := range perm {
		out[i] = data[p]
	}
	return out
}

// ArgsortInt64Radix returns the permutation that stably sorts data
// ascending, dispatched the same way f64 is (spec §4.4 "for f64/i64
// dispatches to the direct radix sort").
func ArgsortInt64Radix(data []int64) []uint32 {
	keys := make([]uint64, len(data))
	for i, v := range data {
		keys[i] = int64ToOrderedKey(v)
	}
	return radixSortKeys(keys)
}

// SortInt64Radix returns data sorted ascending via the radix path.
func SortInt64Radix(data []int64) []int64 {
	perm := ArgsortInt64Radix(data)
	out := make([]int64, len(data))
	for i, p := range perm {
		out[i] = data[p]
	}
	return out
}

// ReverseInPlace reverses a slice in place, used to turn the ascending
// radix result into descending order (spec §4.5).
func ReverseInPlace[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

