package joinengine

import "math"

// GatherFloat64 gathers values at idx into a new slice, writing NaN where
// idx[i] == -1 (spec §4.3 "null-fill the right side for left joins").
func GatherFloat64(values []float64, idx []int32) []float64 {
	out := make([]float64, len(idx))
	for i, row := range idx {
		if row < 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = values[row]
	}
	return out
}

// GatherInt64 gathers values at idx into a new slice, writing valid=false
// where idx[i] == -1.
func GatherInt64(values []int64, idx []int32) (out []int64, valid []bool) {
	out = make([]int64, len(idx))
	valid = make([]bool, len(idx))
	for i, row := range idx {
		if row < 0 {
			continue
		}
		out[i] = values[row]
		valid[i] = true
	}
	return out, valid
}
