package parallel

// OpKind identifies an operation category for the threshold heuristic
// (spec §4.1 "A static table maps operation kind ... to a minimum element
// count below which parallelism is skipped").
type OpKind int

const (
	OpSum OpKind = iota
	OpMin
	OpMax
	OpMean
	OpHash
	OpJoin
	OpSort
	OpGroupBy
)

// thresholds rises for bandwidth-bound ops (sum/min/max/mean) relative to
// compute-bound ones, matching spec §4.1's rationale about avoiding cache
// contention on ops with low compute density per byte touched.
var thresholds = map[OpKind]int{
	OpSum:     1 << 16, // 65536
	OpMin:     1 << 16,
	OpMax:     1 << 16,
	OpMean:    1 << 16,
	OpHash:    1 << 14,
	OpJoin:    1 << 13,
	OpSort:    1 << 13,
	OpGroupBy: 1 << 13,
}

// ShouldParallelize reports whether n elements clears the op's threshold.
func ShouldParallelize(op OpKind, n int) bool {
	t, ok := thresholds[op]
	if !ok {
		t = 1 << 14
	}
	return n >= t
}

func defaultGrain(n, workers int) int {
	if workers < 1 {
		workers = 1
	}
	g := n / (4 * workers)
	if g < 1 {
		g = 1
	}
	return g
}

// ParallelFor recursively bisects [0,n) via Join until each sub-range is
// <= grain (spec §4.1). grain<=0 auto-selects from n/(4*workers).
func ParallelFor(rt *Runtime, n int, grain int, body func(start, end int)) {
	if rt == nil {
		rt = Global()
	}
	if n <= 0 {
		return
	}
	if grain <= 0 {
		grain = defaultGrain(n, rt.numWorkers)
	}
	w := rt.injectWorker()
	parallelForOn(w, 0, n, grain, body)
}

// parallelForOn bisects [start,end) at a grain-aligned midpoint, not the
// strict half, so every leaf it hands to body is exactly one grain-sized
// block [k*grain, min((k+1)*grain,n)) for some k (start is always a
// multiple of grain on entry, since the top-level call starts at 0 and
// every split below preserves that). Callers that index a per-chunk
// accumulator by start/grain (ParallelScan's chunk totals, groupby's
// scatter-sum partials, the join engine's per-worker result partials)
// depend on that alignment to get a unique, collision-free index per
// leaf; a strict midpoint split does not guarantee it.
func parallelForOn(w *worker, start, end, grain int, body func(start, end int)) {
	if end-start <= grain {
		body(start, end)
		return
	}
	mid := start + (end-start)/2
	if rem := mid % grain; rem != 0 {
		mid -= rem
	}
	if mid <= start {
		mid = start + grain
	}
	if mid >= end {
		mid = end
	}
	joinOn(w,
		func() struct{} { parallelForOn(w, start, mid, grain, body); return struct{}{} },
		func() struct{} { parallelForOn(w, mid, end, grain, body); return struct{}{} },
	)
}

// ParallelReduce bisects [0,n), folding map over each leaf range and
// merging with combine, which must be associative (spec §4.1). The
// reduction tree mirrors the recursion tree, so floating-point results
// are deterministic for a fixed (n, worker count) but not necessarily
// bit-identical to a strict left fold.
func ParallelReduce[T any](rt *Runtime, n int, grain int, init T, mapFn func(start, end int) T, combine func(a, b T) T) T {
	if rt == nil {
		rt = Global()
	}
	if n <= 0 {
		return init
	}
	if grain <= 0 {
		grain = defaultGrain(n, rt.numWorkers)
	}
	w := rt.injectWorker()
	return parallelReduceOn(w, 0, n, grain, mapFn, combine)
}

func parallelReduceOn[T any](w *worker, start, end, grain int, mapFn func(start, end int) T, combine func(a, b T) T) T {
	if end-start <= grain {
		return mapFn(start, end)
	}
	mid := start + (end-start)/2
	ra, rb := joinOn(w,
		func() T { return parallelReduceOn(w, start, mid, grain, mapFn, combine) },
		func() T { return parallelReduceOn(w, mid, end, grain, mapFn, combine) },
	)
	return combine(ra, rb)
}

// ParallelScan computes an inclusive prefix sum over input into output
// using the two-phase approach of spec §4.1: per-chunk local prefix,
// exclusive scan over chunk totals, then per-chunk propagation. Phases 1
// and 3 run as a ParallelFor; phase 2 is a sequential loop over the chunk
// totals.
func ParallelScan(rt *Runtime, n int, grain int, get func(i int) float64, set func(i int, v float64)) {
	if rt == nil {
		rt = Global()
	}
	if n <= 0 {
		return
	}
	if grain <= 0 {
		grain = defaultGrain(n, rt.numWorkers)
	}
	numChunks := (n + grain - 1) / grain
	chunkTotals := make([]float64, numChunks)

	// start/grain is a safe chunk index here because parallelForOn only
	// ever splits at grain-aligned boundaries, so every leaf's start is
	// itself a multiple of grain matching one of the numChunks buckets.

	// Phase 1: per-chunk local inclusive prefix, recording each chunk's total.
	ParallelFor(rt, n, grain, func(start, end int) {
		var running float64
		for i := start; i < end; i++ {
			running += get(i)
			set(i, running)
		}
		chunkTotals[start/grain] = running
	})

	// Phase 2: exclusive scan over the (small) chunk totals, sequential —
	// numChunks is bounded by n/grain, never itself large enough to need
	// a further ParallelFor split.
	chunkOffsets := make([]float64, numChunks)
	var running float64
	for c := 0; c < numChunks; c++ {
		chunkOffsets[c] = running
		running += chunkTotals[c]
	}

	// Phase 3: propagate each chunk's exclusive offset into its elements.
	ParallelFor(rt, n, grain, func(start, end int) {
		offset := chunkOffsets[start/grain]
		if offset == 0 {
			return
		}
		for i := start; i < end; i++ {
			set(i, get(i)+offset)
		}
	})
}
