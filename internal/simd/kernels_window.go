package simd

import (
	"math"
	"sort"
)

// LagFloat shifts data forward by offset positions, filling the leading
// gap with fillValue.
func LagFloat[T Float](data []T, offset int, fillValue T, out []T) {
	n := len(data)
	for i := 0; i < n; i++ {
		src := i - offset
		if src < 0 {
			out[i] = fillValue
		} else {
			out[i] = data[src]
		}
	}
}

// LeadFloat shifts data backward by offset positions, filling the
// trailing gap with fillValue.
func LeadFloat[T Float](data []T, offset int, fillValue T, out []T) {
	n := len(data)
	for i := 0; i < n; i++ {
		src := i + offset
		if src >= n {
			out[i] = fillValue
		} else {
			out[i] = data[src]
		}
	}
}

// CumSumFloat computes the running inclusive sum.
func CumSumFloat[T Float](data []T, out []T) {
	var running T
	for i, v := range data {
		running += v
		out[i] = running
	}
}

// CumMinFloat computes the running minimum.
func CumMinFloat[T Float](data []T, out []T) {
	if len(data) == 0 {
		return
	}
	running := data[0]
	for i, v := range data {
		if i == 0 || v < running {
			running = v
		}
		out[i] = running
	}
}

// CumMaxFloat computes the running maximum.
func CumMaxFloat[T Float](data []T, out []T) {
	if len(data) == 0 {
		return
	}
	running := data[0]
	for i, v := range data {
		if i == 0 || v > running {
			running = v
		}
		out[i] = running
	}
}

// RollingSumFloat computes a trailing window sum of the given size using
// a running accumulator (add the entering element, subtract the one that
// leaves the window), NaN while the window isn't yet full.
func RollingSumFloat[T Float](data []T, window int, out []T) {
	var running T
	for i, v := range data {
		running += v
		if i >= window {
			running -= data[i-window]
		}
		if i >= window-1 {
			out[i] = running
		} else {
			out[i] = T(math.NaN())
		}
	}
}

// RollingMeanFloat computes the trailing window mean.
func RollingMeanFloat[T Float](data []T, window int, out []T) {
	RollingSumFloat(data, window, out)
	for i := range out {
		if i >= window-1 {
			out[i] /= T(window)
		}
	}
}

// RollingStdFloat computes the trailing window sample standard deviation.
func RollingStdFloat[T Float](data []T, window int, out []T) {
	n := len(data)
	for i := 0; i < n; i++ {
		if i < window-1 {
			out[i] = T(math.NaN())
			continue
		}
		var mean float64
		for j := i - window + 1; j <= i; j++ {
			mean += float64(data[j])
		}
		mean /= float64(window)
		var ss float64
		for j := i - window + 1; j <= i; j++ {
			d := float64(data[j]) - mean
			ss += d * d
		}
		if window < 2 {
			out[i] = 0
			continue
		}
		out[i] = T(math.Sqrt(ss / float64(window-1)))
	}
}

// RollingMinFloat computes the trailing window minimum using a monotonic
// deque of candidate indices (spec §4.3), amortized O(1) per element.
func RollingMinFloat[T Float](data []T, window int, out []T) {
	rollingMonotonic(data, window, out, func(a, b T) bool { return a <= b })
}

// RollingMaxFloat computes the trailing window maximum using a monotonic deque.
func RollingMaxFloat[T Float](data []T, window int, out []T) {
	rollingMonotonic(data, window, out, func(a, b T) bool { return a >= b })
}

// rollingMonotonic maintains a deque of indices whose values are monotonic
// under keep(a,b) (true means a stays ahead of b), dropping indices that
// fall out of the trailing window and values dominated by a newer entry.
func rollingMonotonic[T Float](data []T, window int, out []T, keep func(a, b T) bool) {
	deque := make([]int, 0, window)
	for i, v := range data {
		for len(deque) > 0 && !keep(data[deque[len(deque)-1]], v) {
			deque = deque[:len(deque)-1]
		}
		deque = append(deque, i)
		if deque[0] <= i-window {
			deque = deque[1:]
		}
		if i >= window-1 {
			out[i] = data[deque[0]]
		} else {
			out[i] = T(math.NaN())
		}
	}
}

// DiffFloat computes data[i] - data[i-lag], NaN for the leading lag entries.
func DiffFloat[T Float](data []T, lag int, out []T) {
	for i, v := range data {
		if i < lag {
			out[i] = T(math.NaN())
			continue
		}
		out[i] = v - data[i-lag]
	}
}

// PctChangeFloat computes (data[i]-data[i-lag])/data[i-lag].
func PctChangeFloat[T Float](data []T, lag int, out []T) {
	for i, v := range data {
		if i < lag {
			out[i] = T(math.NaN())
			continue
		}
		prev := data[i-lag]
		out[i] = (v - prev) / prev
	}
}

// partitionRanges groups row indices by partition key, preserving each
// group's original relative order, for the optionally-partitioned window
// functions (rank/dense-rank/row-number).
func partitionRanges(partitionBy []int32) map[int32][]int {
	groups := make(map[int32][]int)
	for i, p := range partitionBy {
		groups[p] = append(groups[p], i)
	}
	return groups
}

// RankFloat computes a 1-based competitive rank (ties share the lowest
// rank, next rank skips accordingly), optionally within partitions.
func RankFloat[T Float](data []T, partitionBy []int32, out []float64) {
	applyPerPartition(len(data), partitionBy, func(idxs []int) {
		type kv struct {
			idx int
			val T
		}
		items := make([]kv, len(idxs))
		for i, idx := range idxs {
			items[i] = kv{idx, data[idx]}
		}
		sort.SliceStable(items, func(i, j int) bool { return items[i].val < items[j].val })
		rank := 1
		for i := range items {
			if i > 0 && items[i].val != items[i-1].val {
				rank = i + 1
			}
			out[items[i].idx] = float64(rank)
		}
	})
}

// DenseRankFloat computes a 1-based dense rank (ties share a rank, the
// next distinct value gets rank+1 with no gaps), optionally within partitions.
func DenseRankFloat[T Float](data []T, partitionBy []int32, out []float64) {
	applyPerPartition(len(data), partitionBy, func(idxs []int) {
		type kv struct {
			idx int
			val T
		}
		items := make([]kv, len(idxs))
		for i, idx := range idxs {
			items[i] = kv{idx, data[idx]}
		}
		sort.SliceStable(items, func(i, j int) bool { return items[i].val < items[j].val })
		rank := 1
		for i := range items {
			if i > 0 && items[i].val != items[i-1].val {
				rank++
			}
			out[items[i].idx] = float64(rank)
		}
	})
}

// RowNumberFloat assigns a 1-based row number in original row order,
// optionally restarting within each partition.
func RowNumberFloat(n int, partitionBy []int32, out []float64) {
	applyPerPartition(n, partitionBy, func(idxs []int) {
		for i, idx := range idxs {
			out[idx] = float64(i + 1)
		}
	})
}

func applyPerPartition(n int, partitionBy []int32, fn func(idxs []int)) {
	if partitionBy == nil {
		idxs := make([]int, n)
		for i := range idxs {
			idxs[i] = i
		}
		fn(idxs)
		return
	}
	groups := partitionRanges(partitionBy)
	for _, idxs := range groups {
		fn(idxs)
	}
}
