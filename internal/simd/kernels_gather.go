package simd

import "math"

// GatherFloat implements dst[i] = indices[i]<0 ? NaN : src[indices[i]].
// Out-of-range indices are treated as null (spec §4.3) and also filled
// with NaN. validOut, if non-nil, receives the validity bit for each
// output position (built in the same pass, mirroring the "compare-to-zero
// + popcount" single-pass bitmap construction spec §4.4 describes).
func GatherFloat[T Float](src []T, indices []int32, out []T, validOut []byte) {
	n := len(src)
	for i, idx := range indices {
		if idx < 0 || int(idx) >= n {
			out[i] = T(math.NaN())
			if validOut != nil {
				setBit(validOut, i, false)
			}
			continue
		}
		out[i] = src[idx]
		if validOut != nil {
			setBit(validOut, i, true)
		}
	}
}

// GatherInt implements dst[i] = indices[i]<0 ? 0 : src[indices[i]].
func GatherInt[T Integer](src []T, indices []int32, out []T, validOut []byte) {
	n := len(src)
	for i, idx := range indices {
		if idx < 0 || int(idx) >= n {
			out[i] = 0
			if validOut != nil {
				setBit(validOut, i, false)
			}
			continue
		}
		out[i] = src[idx]
		if validOut != nil {
			setBit(validOut, i, true)
		}
	}
}

// GatherUint8 gathers a byte buffer (used for bool columns), with the
// same null-fill convention (0 = false/null).
func GatherUint8(src []uint8, indices []int32, out []uint8, validOut []byte) {
	n := len(src)
	for i, idx := range indices {
		if idx < 0 || int(idx) >= n {
			out[i] = 0
			if validOut != nil {
				setBit(validOut, i, false)
			}
			continue
		}
		out[i] = src[idx]
		if validOut != nil {
			setBit(validOut, i, true)
		}
	}
}

// AnyNegative reports whether indices contains any -1 (or other negative)
// sentinel, deciding whether the gather result needs a validity bitmap at
// all (spec §4.4: "If no −1s are present, no bitmap is allocated").
func AnyNegative(indices []int32) bool {
	for _, idx := range indices {
		if idx < 0 {
			return true
		}
	}
	return false
}

func setBit(bm []byte, i int, v bool) {
	byteIdx := i >> 3
	mask := byte(1 << uint(i&7))
	if v {
		bm[byteIdx] |= mask
	} else {
		bm[byteIdx] &^= mask
	}
}
