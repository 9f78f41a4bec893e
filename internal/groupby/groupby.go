// Package groupby implements the group-by engine (C7, spec §4.2): dense
// group-id assignment over a hashed key column, and scatter aggregation of
// value columns against those ids. Id assignment is serial; scatter-sum has
// an additional parallel variant.
package groupby

import (
	"github.com/brigantine-data/veloxcore/internal/hashtable"
	"github.com/brigantine-data/veloxcore/internal/parallel"
	"github.com/brigantine-data/veloxcore/internal/simd"
)

// Assignment is the result of hashing a key column into dense 0-based
// group ids: IDs[i] names i's group, FirstRow[g] is the row that first
// introduced group g (used to recover a representative key), and
// Count[g] is that group's membership size.
type Assignment struct {
	IDs       []uint32
	FirstRow  []int32
	Count     []int32
	NumGroups int
}

// AssignDenseIDs assigns dense ids from pre-computed 64-bit key hashes
// (spec §4.2 "dense ID assignment" via the Swiss table of internal/hashtable).
func AssignDenseIDs(hashes []uint64) *Assignment {
	n := len(hashes)
	tbl := hashtable.New(n)
	ids := make([]uint32, n)
	firstRow := make([]int32, 0, n)
	count := make([]int32, 0, n)
	var numGroups uint32

	for i, h := range hashes {
		id, inserted := tbl.GetOrInsert(h, func() uint32 {
			g := numGroups
			numGroups++
			return g
		})
		ids[i] = id
		if inserted {
			firstRow = append(firstRow, int32(i))
			count = append(count, 0)
		}
		count[id]++
	}
	return &Assignment{IDs: ids, FirstRow: firstRow, Count: count, NumGroups: int(numGroups)}
}

// AssignDenseIDsInt64 hashes an int64 key column and assigns dense ids.
func AssignDenseIDsInt64(keys []int64) *Assignment {
	hashes := make([]uint64, len(keys))
	for i, k := range keys {
		hashes[i] = simd.HashInt(k)
	}
	return AssignDenseIDs(hashes)
}

// AssignDenseIDsFloat64 hashes a float64 key column and assigns dense ids.
func AssignDenseIDsFloat64(keys []float64) *Assignment {
	hashes := make([]uint64, len(keys))
	for i, k := range keys {
		hashes[i] = simd.HashFloat(k)
	}
	return AssignDenseIDs(hashes)
}

// groupCountThreshold caps how many groups the parallel scatter path will
// give each chunk a private accumulator for: beyond this, numChunks *
// numGroups float64 slots would cost more memory bandwidth than the
// serial scatter it's trying to avoid, so the parallel path falls back to
// serial scatter instead.
const groupCountThreshold = 1 << 20

// ScatterSumFloat serially scatter-adds values[i] into out[ids[i]].
func ScatterSumFloat(ids []uint32, values []float64, numGroups int) []float64 {
	out := make([]float64, numGroups)
	for i, id := range ids {
		out[id] += values[i]
	}
	return out
}

// ScatterSumFloatParallel scatter-adds values[i] into out[ids[i]] using a
// private per-chunk accumulator array merged at the end, so concurrent
// chunks never race on the same output slot (spec §4.2 "parallel ...
// private-accumulator variant with a group-count threshold").
func ScatterSumFloatParallel(rt *parallel.Runtime, ids []uint32, values []float64, numGroups int) []float64 {
	n := len(ids)
	if n == 0 {
		return make([]float64, numGroups)
	}
	if !parallel.ShouldParallelize(parallel.OpGroupBy, n) || numGroups > groupCountThreshold {
		return ScatterSumFloat(ids, values, numGroups)
	}
	if rt == nil {
		rt = parallel.Global()
	}

	workers := rt.NumWorkers()
	grain := n / (4 * workers)
	if grain < 1 {
		grain = 1
	}
	numChunks := (n + grain - 1) / grain
	partials := make([][]float64, numChunks)
	for i := range partials {
		partials[i] = make([]float64, numGroups)
	}

	parallel.ParallelFor(rt, n, grain, func(start, end int) {
		acc := partials[start/grain]
		for i := start; i < end; i++ {
			acc[ids[i]] += values[i]
		}
	})

	out := make([]float64, numGroups)
	for _, p := range partials {
		for g, v := range p {
			out[g] += v
		}
	}
	return out
}

// ScatterCount counts membership per group; equivalent to Assignment.Count
// but exposed standalone for callers that already have raw ids.
func ScatterCount(ids []uint32, numGroups int) []int32 {
	out := make([]int32, numGroups)
	for _, id := range ids {
		out[id]++
	}
	return out
}

// SumInt64Key runs the end-to-end groupby-sum pipeline over an int64 key
// column: hash the keys, assign dense ids, scatter-sum the value column,
// and gather each group's representative key at its first-row position
// (spec §4.2 worked example).
func SumInt64Key(keys []int64, values []float64) (uniqueKeys []int64, sums []float64) {
	asg := AssignDenseIDsInt64(keys)
	sums = ScatterSumFloat(asg.IDs, values, asg.NumGroups)
	uniqueKeys = gatherInt64(keys, asg.FirstRow)
	return uniqueKeys, sums
}

// MeanInt64Key runs groupby-mean: sum divided by per-group count.
func MeanInt64Key(keys []int64, values []float64) (uniqueKeys []int64, means []float64) {
	asg := AssignDenseIDsInt64(keys)
	sums := ScatterSumFloat(asg.IDs, values, asg.NumGroups)
	uniqueKeys = gatherInt64(keys, asg.FirstRow)
	means = make([]float64, asg.NumGroups)
	for g := range means {
		means[g] = sums[g] / float64(asg.Count[g])
	}
	return uniqueKeys, means
}

// CountInt64Key runs groupby-count.
func CountInt64Key(keys []int64) (uniqueKeys []int64, counts []int32) {
	asg := AssignDenseIDsInt64(keys)
	return gatherInt64(keys, asg.FirstRow), asg.Count
}

func gatherInt64(keys []int64, firstRow []int32) []int64 {
	out := make([]int64, len(firstRow))
	for g, row := range firstRow {
		out[g] = keys[row]
	}
	return out
}

// Agg names one aggregation to compute in a MultiAgg pass.
type Agg struct {
	Name   string
	Kind   string // "sum", "mean", "min", "max", "count"
	Values []float64
}

// MultiAggInt64Key computes several aggregations over the same grouping in
// a single dense-id-assignment pass (spec §4.2 "multi-agg e2e"), returning
// the unique keys once plus one result slice per requested Agg.Name.
func MultiAggInt64Key(keys []int64, aggs []Agg) (uniqueKeys []int64, results map[string][]float64) {
	asg := AssignDenseIDsInt64(keys)
	uniqueKeys = gatherInt64(keys, asg.FirstRow)
	results = make(map[string][]float64, len(aggs))

	for _, a := range aggs {
		switch a.Kind {
		case "sum":
			results[a.Name] = ScatterSumFloat(asg.IDs, a.Values, asg.NumGroups)
		case "mean":
			sums := ScatterSumFloat(asg.IDs, a.Values, asg.NumGroups)
			means := make([]float64, asg.NumGroups)
			for g := range means {
				means[g] = sums[g] / float64(asg.Count[g])
			}
			results[a.Name] = means
		case "min":
			results[a.Name] = scatterMinFloat(asg.IDs, a.Values, asg.NumGroups)
		case "max":
			results[a.Name] = scatterMaxFloat(asg.IDs, a.Values, asg.NumGroups)
		case "count":
			counts := make([]float64, asg.NumGroups)
			for g, c := range asg.Count {
				counts[g] = float64(c)
			}
			results[a.Name] = counts
		}
	}
	return uniqueKeys, results
}

func scatterMinFloat(ids []uint32, values []float64, numGroups int) []float64 {
	out := make([]float64, numGroups)
	seen := make([]bool, numGroups)
	for i, id := range ids {
		if !seen[id] || values[i] < out[id] {
			out[id] = values[i]
			seen[id] = true
		}
	}
	return out
}

func scatterMaxFloat(ids []uint32, values []float64, numGroups int) []float64 {
	out := make([]float64, numGroups)
	seen := make([]bool, numGroups)
	for i, id := range ids {
		if !seen[id] || values[i] > out[id] {
			out[id] = values[i]
			seen[id] = true
		}
	}
	return out
}
