package joinengine

import (
	"math"
	"sort"
	"testing"

	"github.com/brigantine-data/veloxcore/internal/parallel"
)

type pair struct{ build, probe int32 }

func pairs(res *Result) []pair {
	out := make([]pair, len(res.BuildIdx))
	for i := range res.BuildIdx {
		out[i] = pair{res.BuildIdx[i], res.ProbeIdx[i]}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].probe != out[j].probe {
			return out[i].probe < out[j].probe
		}
		return out[i].build < out[j].build
	})
	return out
}

func TestInnerJoin_Basic(t *testing.T) {
	buildKeys := []int64{1, 2, 3}
	probeKeys := []int64{2, 3, 3, 4}
	res := InnerJoin(buildKeys, probeKeys)
	want := []pair{{1, 0}, {2, 1}, {2, 2}}
	got := pairs(res)
	if len(got) != len(want) {
		t.Fatalf("expected %d matches, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestLeftJoin_UnmatchedRowsGetNullBuild(t *testing.T) {
	buildKeys := []int64{10, 20}
	probeKeys := []int64{10, 99, 20}
	res := LeftJoin(buildKeys, probeKeys)
	if len(res.ProbeIdx) != 3 {
		t.Fatalf("expected 3 output rows (one per probe row, none duplicated), got %d", len(res.ProbeIdx))
	}
	for i, p := range res.ProbeIdx {
		if p == 1 && res.BuildIdx[i] != -1 {
			t.Errorf("expected unmatched probe row 1 to have BuildIdx -1, got %d", res.BuildIdx[i])
		}
	}
}

func TestGatherFloat64_NullFillsUnmatched(t *testing.T) {
	values := []float64{1.5, 2.5}
	idx := []int32{0, -1, 1}
	out := GatherFloat64(values, idx)
	if out[0] != 1.5 || out[2] != 2.5 {
		t.Errorf("unexpected gathered values: %v", out)
	}
	if !math.IsNaN(out[1]) {
		t.Errorf("expected NaN for unmatched row, got %v", out[1])
	}
}

func TestParallelProbeJoin_MatchesSequential(t *testing.T) {
	n := 200_000
	buildKeys := make([]int64, 1000)
	for i := range buildKeys {
		buildKeys[i] = int64(i)
	}
	probeKeys := make([]int64, n)
	for i := range probeKeys {
		probeKeys[i] = int64(i % 1000)
	}

	seq := InnerJoin(buildKeys, probeKeys)
	par := ParallelProbeJoin(parallel.Global(), buildKeys, probeKeys, false)

	if len(seq.ProbeIdx) != len(par.ProbeIdx) {
		t.Fatalf("expected %d matches from both paths, got seq=%d par=%d", len(seq.ProbeIdx), len(seq.ProbeIdx), len(par.ProbeIdx))
	}
	seqPairs, parPairs := pairs(seq), pairs(par)
	for i := range seqPairs {
		if seqPairs[i] != parPairs[i] {
			t.Fatalf("mismatch at %d: seq=%v par=%v", i, seqPairs[i], parPairs[i])
		}
	}
}

func TestProbePartitioned_MatchesSequential(t *testing.T) {
	buildKeys := []int64{1, 2, 3, 4, 5, 6, 7, 8}
	probeKeys := []int64{1, 3, 3, 9, 5, 7}

	seq := InnerJoin(buildKeys, probeKeys)
	pb := BuildPartitioned(buildKeys, 4)
	got := ProbePartitioned(parallel.Global(), pb, probeKeys, false)

	if len(seq.ProbeIdx) != len(got.ProbeIdx) {
		t.Fatalf("expected %d matches, got %d", len(seq.ProbeIdx), len(got.ProbeIdx))
	}
	seqPairs, gotPairs := pairs(seq), pairs(got)
	for i := range seqPairs {
		if seqPairs[i] != gotPairs[i] {
			t.Fatalf("mismatch at %d: seq=%v got=%v", i, seqPairs[i], gotPairs[i])
		}
	}
}
