package simd

import "math"

func validFloat64s[T Float](data []T, valid []byte) []float64 {
	out := make([]float64, 0, len(data))
	for i, v := range data {
		if valid != nil && !bitGet(valid, i) {
			continue
		}
		out = append(out, float64(v))
	}
	return out
}

// VarianceFloat computes the sample variance (Bessel-corrected); NaN for
// fewer than 2 valid observations.
func VarianceFloat[T Float](data []T, valid []byte) float64 {
	vals := validFloat64s(data, valid)
	if len(vals) < 2 {
		return math.NaN()
	}
	var mean float64
	for _, v := range vals {
		mean += v
	}
	mean /= float64(len(vals))
	var ss float64
	for _, v := range vals {
		d := v - mean
		ss += d * d
	}
	return ss / float64(len(vals)-1)
}

// StdFloat is the sample standard deviation.
func StdFloat[T Float](data []T, valid []byte) float64 {
	return math.Sqrt(VarianceFloat(data, valid))
}

// SkewnessFloat computes the (population-adjusted) sample skewness.
func SkewnessFloat[T Float](data []T, valid []byte) float64 {
	vals := validFloat64s(data, valid)
	n := float64(len(vals))
	if n < 3 {
		return math.NaN()
	}
	var mean float64
	for _, v := range vals {
		mean += v
	}
	mean /= n
	var m2, m3 float64
	for _, v := range vals {
		d := v - mean
		m2 += d * d
		m3 += d * d * d
	}
	m2 /= n
	m3 /= n
	if m2 == 0 {
		return math.NaN()
	}
	g1 := m3 / math.Pow(m2, 1.5)
	return (math.Sqrt(n*(n-1)) / (n - 2)) * g1
}

// KurtosisFloat computes the sample excess kurtosis.
func KurtosisFloat[T Float](data []T, valid []byte) float64 {
	vals := validFloat64s(data, valid)
	n := float64(len(vals))
	if n < 4 {
		return math.NaN()
	}
	var mean float64
	for _, v := range vals {
		mean += v
	}
	mean /= n
	var m2, m4 float64
	for _, v := range vals {
		d := v - mean
		m2 += d * d
		m4 += d * d * d * d
	}
	m2 /= n
	m4 /= n
	if m2 == 0 {
		return math.NaN()
	}
	g2 := m4/(m2*m2) - 3
	return ((n-1)/((n-2)*(n-3)))*((n+1)*g2+6)
}

const quantileInsertionCutoff = 16

// quickselect partitions vals in place so that vals[k] holds the k-th
// order statistic, using an insertion-sort cutoff for small partitions
// (the same shape as the pair-sort's insertion cutoff, spec §4.5).
func quickselect(vals []float64, k int) float64 {
	lo, hi := 0, len(vals)-1
	for hi-lo > quantileInsertionCutoff {
		pivot := medianOfThreePivot(vals, lo, hi)
		p := partitionAround(vals, lo, hi, pivot)
		if k <= p {
			hi = p
		} else {
			lo = p + 1
		}
	}
	insertionSortRange(vals, lo, hi)
	return vals[k]
}

func medianOfThreePivot(vals []float64, lo, hi int) float64 {
	mid := lo + (hi-lo)/2
	a, b, c := vals[lo], vals[mid], vals[hi]
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

func partitionAround(vals []float64, lo, hi int, pivot float64) int {
	i, j := lo, hi
	for i <= j {
		for vals[i] < pivot {
			i++
		}
		for vals[j] > pivot {
			j--
		}
		if i <= j {
			vals[i], vals[j] = vals[j], vals[i]
			i++
			j--
		}
	}
	return j
}

func insertionSortRange(vals []float64, lo, hi int) {
	for i := lo + 1; i <= hi; i++ {
		v := vals[i]
		j := i - 1
		for j >= lo && vals[j] > v {
			vals[j+1] = vals[j]
			j--
		}
		vals[j+1] = v
	}
}

// QuantileFloat returns the q-th quantile (0<=q<=1) using quickselect with
// linear interpolation between the two bracketing order statistics.
func QuantileFloat[T Float](data []T, valid []byte, q float64) float64 {
	vals := validFloat64s(data, valid)
	if len(vals) == 0 {
		return math.NaN()
	}
	work := append([]float64(nil), vals...)
	if len(work) == 1 {
		return work[0]
	}
	pos := q * float64(len(work)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	lov := quickselect(append([]float64(nil), work...), lo)
	if lo == hi {
		return lov
	}
	hiv := quickselect(append([]float64(nil), work...), hi)
	frac := pos - float64(lo)
	return lov + (hiv-lov)*frac
}

// MedianFloat is QuantileFloat at q=0.5.
func MedianFloat[T Float](data []T, valid []byte) float64 {
	return QuantileFloat(data, valid, 0.5)
}

// CorrelationFloat computes the Pearson correlation coefficient between
// two equal-length columns over positions valid in both.
func CorrelationFloat[T Float](a, b []T, validA, validB []byte) float64 {
	n := len(a)
	var xs, ys []float64
	for i := 0; i < n; i++ {
		if validA != nil && !bitGet(validA, i) {
			continue
		}
		if validB != nil && !bitGet(validB, i) {
			continue
		}
		xs = append(xs, float64(a[i]))
		ys = append(ys, float64(b[i]))
	}
	if len(xs) < 2 {
		return math.NaN()
	}
	var mx, my float64
	for i := range xs {
		mx += xs[i]
		my += ys[i]
	}
	mx /= float64(len(xs))
	my /= float64(len(ys))
	var cov, vx, vy float64
	for i := range xs {
		dx := xs[i] - mx
		dy := ys[i] - my
		cov += dx * dy
		vx += dx * dx
		vy += dy * dy
	}
	if vx == 0 || vy == 0 {
		return math.NaN()
	}
	return cov / math.Sqrt(vx*vy)
}
