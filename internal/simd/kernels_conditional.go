package simd

import "math"

// Select writes a[i] where mask[i]!=0, else b[i].
func Select[T Numeric](mask []uint8, a, b, out []T) {
	for i := range mask {
		if mask[i] != 0 {
			out[i] = a[i]
		} else {
			out[i] = b[i]
		}
	}
}

// IsNullFloat treats NaN as null (spec §4.3), in addition to any caller
// validity bitmap, which the column layer ANDs in separately.
func IsNullFloat[T Float](data []T, out []uint8) {
	for i, v := range data {
		if math.IsNaN(float64(v)) {
			out[i] = 1
		} else {
			out[i] = 0
		}
	}
}

func IsNotNullFloat[T Float](data []T, out []uint8) {
	for i, v := range data {
		if math.IsNaN(float64(v)) {
			out[i] = 0
		} else {
			out[i] = 1
		}
	}
}

// FillNullFloat replaces NaN (or validity-bit-clear, if valid is non-nil)
// positions with fillValue.
func FillNullFloat[T Float](data []T, valid []byte, fillValue T, out []T) {
	for i, v := range data {
		null := math.IsNaN(float64(v))
		if valid != nil {
			null = null || !bitGet(valid, i)
		}
		if null {
			out[i] = fillValue
		} else {
			out[i] = v
		}
	}
}

// FillNullInt replaces validity-bit-clear positions with fillValue.
func FillNullInt[T Integer](data []T, valid []byte, fillValue T, out []T) {
	for i, v := range data {
		if valid != nil && !bitGet(valid, i) {
			out[i] = fillValue
		} else {
			out[i] = v
		}
	}
}

// ForwardFillFloat propagates the last non-null value forward.
func ForwardFillFloat[T Float](data []T, valid []byte, out []T) {
	var last T
	haveLast := false
	for i, v := range data {
		null := math.IsNaN(float64(v))
		if valid != nil {
			null = null || !bitGet(valid, i)
		}
		if !null {
			last = v
			haveLast = true
			out[i] = v
			continue
		}
		if haveLast {
			out[i] = last
		} else {
			out[i] = v
		}
	}
}

// BackwardFillFloat propagates the next non-null value backward.
func BackwardFillFloat[T Float](data []T, valid []byte, out []T) {
	var next T
	haveNext := false
	for i := len(data) - 1; i >= 0; i-- {
		v := data[i]
		null := math.IsNaN(float64(v))
		if valid != nil {
			null = null || !bitGet(valid, i)
		}
		if !null {
			next = v
			haveNext = true
			out[i] = v
			continue
		}
		if haveNext {
			out[i] = next
		} else {
			out[i] = v
		}
	}
}

// CoalesceFloat returns, for each position, the first non-null value
// across cols in order.
func CoalesceFloat[T Float](cols [][]T, valids [][]byte, out []T) {
	n := len(out)
	for i := 0; i < n; i++ {
		found := false
		for c, col := range cols {
			v := col[i]
			null := math.IsNaN(float64(v))
			if valids[c] != nil {
				null = null || !bitGet(valids[c], i)
			}
			if !null {
				out[i] = v
				found = true
				break
			}
		}
		if !found {
			var zero T
			out[i] = zero
		}
	}
}
