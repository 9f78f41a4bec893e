package simd

import "math"

// ScatterSumFloat accumulates out[groupIDs[i]] += data[i]. Out-of-range
// group ids are skipped, not errors (spec §4.3).
func ScatterSumFloat[T Float](data []T, groupIDs []int32, out []T) {
	n := len(out)
	for i, g := range groupIDs {
		if g < 0 || int(g) >= n {
			continue
		}
		out[g] += data[i]
	}
}

func ScatterSumInt[T Integer](data []T, groupIDs []int32, out []T) {
	n := len(out)
	for i, g := range groupIDs {
		if g < 0 || int(g) >= n {
			continue
		}
		out[g] += data[i]
	}
}

// InitScatterMinFloat / InitScatterMaxFloat seed accumulator buffers with
// +Inf / -Inf so the first contribution to an empty bucket always wins
// (spec §4.7).
func InitScatterMinFloat[T Float](out []T) {
	inf := T(math.Inf(1))
	for i := range out {
		out[i] = inf
	}
}

func InitScatterMaxFloat[T Float](out []T) {
	inf := T(math.Inf(-1))
	for i := range out {
		out[i] = inf
	}
}

func ScatterMinFloat[T Float](data []T, groupIDs []int32, out []T) {
	n := len(out)
	for i, g := range groupIDs {
		if g < 0 || int(g) >= n {
			continue
		}
		if data[i] < out[g] {
			out[g] = data[i]
		}
	}
}

func ScatterMaxFloat[T Float](data []T, groupIDs []int32, out []T) {
	n := len(out)
	for i, g := range groupIDs {
		if g < 0 || int(g) >= n {
			continue
		}
		if data[i] > out[g] {
			out[g] = data[i]
		}
	}
}

// InitScatterMinInt / InitScatterMaxInt seed with the dtype's max/min.
func InitScatterMinInt[T Integer](out []T, typeMax T) {
	for i := range out {
		out[i] = typeMax
	}
}

func InitScatterMaxInt[T Integer](out []T, typeMin T) {
	for i := range out {
		out[i] = typeMin
	}
}

func ScatterMinInt[T Integer](data []T, groupIDs []int32, out []T) {
	n := len(out)
	for i, g := range groupIDs {
		if g < 0 || int(g) >= n {
			continue
		}
		if data[i] < out[g] {
			out[g] = data[i]
		}
	}
}

func ScatterMaxInt[T Integer](data []T, groupIDs []int32, out []T) {
	n := len(out)
	for i, g := range groupIDs {
		if g < 0 || int(g) >= n {
			continue
		}
		if data[i] > out[g] {
			out[g] = data[i]
		}
	}
}

// ScatterCount accumulates a per-group row count into a dedicated u64
// accumulator (spec §4.7: "Count uses a separate u64 accumulator per group").
func ScatterCount(groupIDs []int32, out []uint64) {
	n := len(out)
	for _, g := range groupIDs {
		if g < 0 || int(g) >= n {
			continue
		}
		out[g]++
	}
}
