package sortkernel

import (
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/brigantine-data/veloxcore/internal/parallel"
)

// sampleSize returns how many values to draw from data for splitter
// selection: spec §4.1/§4.5 calls for O(workers*100), capped at n so small
// inputs never sample more than they have.
func sampleSize(n, workers int) int {
	s := workers * 100
	if s < 1 {
		s = 1
	}
	if s > n {
		s = n
	}
	return s
}

// pickSplitters draws an evenly spaced sample from data (deterministic, so
// the partition is reproducible across runs for a fixed input and worker
// count), sorts it, and derives numBuckets-1 splitter values marking the
// bucket boundaries.
func pickSplitters(data []float64, numBuckets int) []float64 {
	n := len(data)
	samples := sampleSize(n, numBuckets)
	vals := make([]float64, samples)
	if samples == 1 {
		vals[0] = data[0]
	} else {
		stride := float64(n-1) / float64(samples-1)
		for i := 0; i < samples; i++ {
			vals[i] = data[int(float64(i)*stride)]
		}
	}
	sort.Float64s(vals)

	if numBuckets <= 1 {
		return nil
	}
	splitters := make([]float64, numBuckets-1)
	for b := 1; b < numBuckets; b++ {
		pos := (len(vals) * b) / numBuckets
		if pos >= len(vals) {
			pos = len(vals) - 1
		}
		splitters[b-1] = vals[pos]
	}
	return splitters
}

// bucketOf returns which of len(splitters)+1 buckets v belongs to, via
// binary search over the sorted splitter boundaries.
func bucketOf(splitters []float64, v float64) int {
	return sort.Search(len(splitters), func(i int) bool { return v <= splitters[i] })
}

// ArgsortFloat64Parallel returns the permutation that sorts data ascending,
// using the parallel sample-sort wrapper of spec §4.1/§4.5 once n clears
// the sort threshold: sample the input, sort the sample to derive
// (workers-1) splitters, partition via a single counting pass into
// per-bucket index lists, then sort each bucket concurrently with the
// sequential pair-based sort and concatenate in bucket order. Falls back to
// the direct radix sort below the threshold, where the coordination
// overhead of sampling and bucketing would dominate.
func ArgsortFloat64Parallel(rt *parallel.Runtime, data []float64) []uint32 {
	n := len(data)
	if n < 2 {
		idx := make([]uint32, n)
		for i := range idx {
			idx[i] = uint32(i)
		}
		return idx
	}
	if !parallel.ShouldParallelize(parallel.OpSort, n) {
		return ArgsortFloat64Radix(data)
	}

	if rt == nil {
		rt = parallel.Global()
	}
	workers := rt.NumWorkers()
	if workers < 2 {
		return ArgsortFloat64Radix(data)
	}
	numBuckets := workers
	splitters := pickSplitters(data, numBuckets)
	if len(splitters) == 0 {
		return ArgsortFloat64Radix(data)
	}

	// Single counting pass: assign every element's original index to its
	// bucket, preserving within-bucket relative order (stable partition).
	buckets := make([][]uint32, numBuckets)
	counts := make([]int, numBuckets)
	bucketIdx := make([]int, n)
	for i, v := range data {
		b := bucketOf(splitters, v)
		bucketIdx[i] = b
		counts[b]++
	}
	for b := range buckets {
		buckets[b] = make([]uint32, 0, counts[b])
	}
	for i := range data {
		b := bucketIdx[i]
		buckets[b] = append(buckets[b], uint32(i))
	}

	// Each bucket's sort is an independent, CPU-bound leaf task with no
	// further need to fork — an errgroup with a worker-count limit is a
	// better fit here than the heartbeat-scheduled runtime's Join, which
	// exists to make forking itself cheap, not to run a fixed, known-size
	// batch of already-partitioned work.
	sorted := make([][]uint32, numBuckets)
	var g errgroup.Group
	g.SetLimit(workers)
	for b := 0; b < numBuckets; b++ {
		b := b
		g.Go(func() error {
			sorted[b] = sortBucket(data, buckets[b])
			return nil
		})
	}
	_ = g.Wait() // sortBucket cannot fail; Wait only for completion

	out := make([]uint32, 0, n)
	for _, b := range sorted {
		out = append(out, b...)
	}
	return out
}

// sortBucket sorts the original-index list idx by data[idx[*]] using the
// sequential pair-based sort, since each bucket is typically too small to
// benefit from a further nested parallel split.
func sortBucket(data []float64, idx []uint32) []uint32 {
	n := len(idx)
	recs := make([]pairRecord, n)
	for i, origIdx := range idx {
		recs[i] = pairRecord{value: data[origIdx], index: origIdx}
	}
	quicksortPairs(recs, 0, n-1)
	out := make([]uint32, n)
	for i, r := range recs {
		out[i] = r.index
	}
	return out
}

// SortFloat64Parallel returns data sorted ascending via the parallel path.
func SortFloat64Parallel(rt *parallel.Runtime, data []float64) []float64 {
	perm := ArgsortFloat64Parallel(rt, data)
	out := make([]float64, len(data))
	for i, p := range perm {
		out[i] = data[p]
	}
	return out
}
