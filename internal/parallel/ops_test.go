package parallel

import (
	"sync"
	"testing"
)

func TestParallelFor_CoversEveryIndexExactlyOnce(t *testing.T) {
	rt := newRuntime(4)
	defer rt.Shutdown()

	n := 10
	grain := 3
	var mu sync.Mutex
	seen := make([]int, n)

	ParallelFor(rt, n, grain, func(start, end int) {
		mu.Lock()
		for i := start; i < end; i++ {
			seen[i]++
		}
		mu.Unlock()
	})

	for i, c := range seen {
		if c != 1 {
			t.Errorf("index %d visited %d times, want 1", i, c)
		}
	}
}

func TestParallelFor_LeavesAreGrainAligned(t *testing.T) {
	rt := newRuntime(4)
	defer rt.Shutdown()

	n := 10
	grain := 3
	var mu sync.Mutex
	var starts []int

	ParallelFor(rt, n, grain, func(start, end int) {
		mu.Lock()
		starts = append(starts, start)
		mu.Unlock()
	})

	seen := make(map[int]bool)
	for _, s := range starts {
		if s%grain != 0 {
			t.Errorf("leaf start %d is not a multiple of grain %d", s, grain)
		}
		idx := s / grain
		if seen[idx] {
			t.Errorf("chunk index %d produced by more than one leaf", idx)
		}
		seen[idx] = true
	}
	wantChunks := (n + grain - 1) / grain
	if len(seen) != wantChunks {
		t.Errorf("got %d distinct chunk indices, want %d", len(seen), wantChunks)
	}
}

func TestParallelReduce_SumMatchesSerial(t *testing.T) {
	rt := newRuntime(4)
	defer rt.Shutdown()

	n := 100_000
	data := make([]float64, n)
	var want float64
	for i := range data {
		data[i] = float64(i%13) - 6
		want += data[i]
	}

	got := ParallelReduce(rt, n, 97, 0.0,
		func(start, end int) float64 {
			var s float64
			for i := start; i < end; i++ {
				s += data[i]
			}
			return s
		},
		func(a, b float64) float64 { return a + b },
	)

	if diff := got - want; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("ParallelReduce sum = %v, want %v", got, want)
	}
}

func TestParallelScan_MatchesSerialPrefixSum(t *testing.T) {
	rt := newRuntime(4)
	defer rt.Shutdown()

	n := 10
	grain := 3
	data := make([]float64, n)
	for i := range data {
		data[i] = float64(i + 1)
	}
	want := make([]float64, n)
	var running float64
	for i, v := range data {
		running += v
		want[i] = running
	}

	out := make([]float64, n)
	copy(out, data)
	ParallelScan(rt, n, grain,
		func(i int) float64 { return out[i] },
		func(i int, v float64) { out[i] = v },
	)

	for i := range want {
		if diff := out[i] - want[i]; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("out[%d] = %v, want %v", i, out[i], want[i])
		}
	}
}

func TestParallelScan_LargeInputMatchesSerial(t *testing.T) {
	rt := newRuntime(8)
	defer rt.Shutdown()

	n := 250_000
	data := make([]float64, n)
	for i := range data {
		data[i] = float64(i%5) - 2
	}
	want := make([]float64, n)
	var running float64
	for i, v := range data {
		running += v
		want[i] = running
	}

	out := make([]float64, n)
	copy(out, data)
	ParallelScan(rt, n, 0,
		func(i int) float64 { return out[i] },
		func(i int, v float64) { out[i] = v },
	)

	for i := range want {
		if diff := out[i] - want[i]; diff > 1e-6 || diff < -1e-6 {
			t.Fatalf("out[%d] = %v, want %v", i, out[i], want[i])
		}
	}
}
