package simd

import "math"

// Reduction kernels: sum, min, max, mean. SumFloat has a SIMD-fast path (no
// validity bitmap) that uses multiple accumulators to hide floating-point
// latency and allow instruction-level parallelism (spec §4.2), with a
// scalar cleanup loop for the tail the unroll factor doesn't evenly
// divide; the other reductions are single scalar loops. When a validity
// bitmap is present, the per-element validity check replaces the fast path
// entirely (spec §4.3 "Null semantics").

const numAccumulators = 4

// SumFloat returns the sum of data, or 0 for empty/all-null input.
func SumFloat[T Float](data []T, valid []byte) T {
	if valid != nil {
		var sum T
		for i, v := range data {
			if bitGet(valid, i) {
				sum += v
			}
		}
		return sum
	}
	return sumFastFloat(data)
}

func sumFastFloat[T Float](data []T) T {
	n := len(data)
	if n == 0 {
		return 0
	}
	lanes := Lanes(sizeOfElem[T]())
	step := lanes * numAccumulators
	var acc [numAccumulators]T
	i := 0
	for ; i+step <= n; i += step {
		for a := 0; a < numAccumulators; a++ {
			base := i + a*lanes
			for l := 0; l < lanes; l++ {
				acc[a] += data[base+l]
			}
		}
	}
	var total T
	for _, a := range acc {
		total += a
	}
	for ; i < n; i++ {
		total += data[i]
	}
	return total
}

// SumInt returns the wrapping two's-complement sum, or 0 for empty/all-null.
func SumInt[T Integer](data []T, valid []byte) T {
	if valid != nil {
		var sum T
		for i, v := range data {
			if bitGet(valid, i) {
				sum += v
			}
		}
		return sum
	}
	var sum T
	for _, v := range data {
		sum += v
	}
	return sum
}

// MinFloat returns the minimum, NaN for empty/all-null (spec §4.3).
func MinFloat[T Float](data []T, valid []byte) T {
	found := false
	var m T
	for i, v := range data {
		if valid != nil && !bitGet(valid, i) {
			continue
		}
		if !found || v < m {
			m = v
			found = true
		}
	}
	if !found {
		return T(nan())
	}
	return m
}

// MaxFloat returns the maximum, NaN for empty/all-null.
func MaxFloat[T Float](data []T, valid []byte) T {
	found := false
	var m T
	for i, v := range data {
		if valid != nil && !bitGet(valid, i) {
			continue
		}
		if !found || v > m {
			m = v
			found = true
		}
	}
	if !found {
		return T(nan())
	}
	return m
}

// MinInt returns the minimum, 0 for empty/all-null.
func MinInt[T Integer](data []T, valid []byte) T {
	found := false
	var m T
	for i, v := range data {
		if valid != nil && !bitGet(valid, i) {
			continue
		}
		if !found || v < m {
			m = v
			found = true
		}
	}
	return m
}

// MaxInt returns the maximum, 0 for empty/all-null.
func MaxInt[T Integer](data []T, valid []byte) T {
	found := false
	var m T
	for i, v := range data {
		if valid != nil && !bitGet(valid, i) {
			continue
		}
		if !found || v > m {
			m = v
			found = true
		}
	}
	return m
}

// MeanFloat returns the arithmetic mean, NaN for empty/all-null.
func MeanFloat[T Float](data []T, valid []byte) float64 {
	count := 0
	var sum float64
	for i, v := range data {
		if valid != nil && !bitGet(valid, i) {
			continue
		}
		sum += float64(v)
		count++
	}
	if count == 0 {
		return nan()
	}
	return sum / float64(count)
}

// MeanInt returns the arithmetic mean using float division, NaN for
// empty/all-null (spec §4.3: "mean = sum/length for integers uses float
// division").
func MeanInt[T Integer](data []T, valid []byte) float64 {
	count := 0
	var sum float64
	for i, v := range data {
		if valid != nil && !bitGet(valid, i) {
			continue
		}
		sum += float64(v)
		count++
	}
	if count == 0 {
		return nan()
	}
	return sum / float64(count)
}

func bitGet(bm []byte, i int) bool {
	return bm[i>>3]&(1<<uint(i&7)) != 0
}

func sizeOfElem[T Float]() int {
	var z T
	switch any(z).(type) {
	case float32:
		return 4
	default:
		return 8
	}
}

func nan() float64 {
	return math.NaN()
}
