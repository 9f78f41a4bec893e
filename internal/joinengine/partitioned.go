package joinengine

import (
	"github.com/brigantine-data/veloxcore/internal/hashtable"
	"github.com/brigantine-data/veloxcore/internal/parallel"
)

// PartitionedBuild holds P independent chain tables, one per hash
// partition, plus each partition's build-side row indices and hashes so a
// partitioned probe never needs to touch another partition's state (spec
// §4.3 "lock-free pre-partitioned variant ... zero cross-partition sync").
type PartitionedBuild struct {
	numPartitions int
	tables        []*hashtable.ChainedTable
	rows          [][]int32  // partition -> original build row index, by local row order
	hashes        [][]uint64 // partition -> hash, aligned with rows
	keys          [][]int64  // partition -> build key, aligned with rows
}

func partitionOf(hash uint64, numPartitions int) int {
	return int(hash % uint64(numPartitions))
}

// BuildPartitioned partitions buildKeys by hash mod numPartitions and
// builds an independent chain table per partition.
func BuildPartitioned(buildKeys []int64, numPartitions int) *PartitionedBuild {
	if numPartitions < 1 {
		numPartitions = 1
	}
	pb := &PartitionedBuild{
		numPartitions: numPartitions,
		rows:          make([][]int32, numPartitions),
		hashes:        make([][]uint64, numPartitions),
		keys:          make([][]int64, numPartitions),
	}
	for i, k := range buildKeys {
		h := hashKey(k)
		part := partitionOf(h, numPartitions)
		pb.rows[part] = append(pb.rows[part], int32(i))
		pb.hashes[part] = append(pb.hashes[part], h)
		pb.keys[part] = append(pb.keys[part], k)
	}
	pb.tables = make([]*hashtable.ChainedTable, numPartitions)
	for part := range pb.tables {
		pb.tables[part] = hashtable.BuildChained(pb.hashes[part])
	}
	return pb
}

// ProbePartitioned probes probeKeys against a PartitionedBuild, running one
// goroutine-parallel pass per partition with each partition's probe rows
// routed only to its own table (spec §4.3): no partition ever locks or
// reads another's table, buffers, or rows.
func ProbePartitioned(rt *parallel.Runtime, pb *PartitionedBuild, probeKeys []int64, left bool) *Result {
	n := len(probeKeys)

	// First pass: route every probe row to its partition, preserving
	// original probe-row order within each partition's bucket.
	probeRows := make([][]int32, pb.numPartitions)
	probeHashes := make([][]uint64, pb.numPartitions)
	for i, k := range probeKeys {
		h := hashKey(k)
		part := partitionOf(h, pb.numPartitions)
		probeRows[part] = append(probeRows[part], int32(i))
		probeHashes[part] = append(probeHashes[part], h)
	}

	partials := make([]*Result, pb.numPartitions)
	if rt == nil {
		rt = parallel.Global()
	}
	if parallel.ShouldParallelize(parallel.OpJoin, n) {
		parallel.ParallelFor(rt, pb.numPartitions, 1, func(start, end int) {
			for part := start; part < end; part++ {
				partials[part] = probePartition(pb, part, probeRows[part], probeHashes[part], probeKeys, left)
			}
		})
	} else {
		for part := 0; part < pb.numPartitions; part++ {
			partials[part] = probePartition(pb, part, probeRows[part], probeHashes[part], probeKeys, left)
		}
	}

	out := &Result{}
	for _, p := range partials {
		if p == nil {
			continue
		}
		out.BuildIdx = append(out.BuildIdx, p.BuildIdx...)
		out.ProbeIdx = append(out.ProbeIdx, p.ProbeIdx...)
	}
	return out
}

func probePartition(pb *PartitionedBuild, part int, probeRows []int32, probeHashes []uint64, probeKeys []int64, left bool) *Result {
	res := &Result{}
	tbl := pb.tables[part]
	buildRows := pb.rows[part]
	buildHashes := pb.hashes[part]
	buildKeys := pb.keys[part]

	for i, localProbeRow := range probeRows {
		ph := probeHashes[i]
		pk := probeKeys[localProbeRow]
		matched := false
		for localRow := tbl.Head(ph); localRow != -1; localRow = tbl.Next(localRow) {
			if buildHashes[localRow] == ph && buildKeys[localRow] == pk {
				res.BuildIdx = append(res.BuildIdx, buildRows[localRow])
				res.ProbeIdx = append(res.ProbeIdx, localProbeRow)
				matched = true
			}
		}
		if !matched && left {
			res.BuildIdx = append(res.BuildIdx, -1)
			res.ProbeIdx = append(res.ProbeIdx, localProbeRow)
		}
	}
	return res
}
