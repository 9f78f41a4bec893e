package veloxcore

import "testing"

func TestGetBucket(t *testing.T) {
	cases := map[int]int{0: 0, 1: 0, 2: 1, 3: 2, 4: 2, 5: 3, 1024: 10}
	for size, want := range cases {
		if got := getBucket(size); got != want {
			t.Errorf("getBucket(%d) = %d, want %d", size, got, want)
		}
	}
}

func TestGetInt32Slice_SizedExactly(t *testing.T) {
	s := getInt32Slice(5)
	defer s.Release()
	if len(s.Data) != 5 {
		t.Errorf("len(Data) = %d, want 5", len(s.Data))
	}
}

func TestGetInt32Slice_ReusedAfterRelease(t *testing.T) {
	s1 := getInt32Slice(4)
	s1.Data[0] = 42
	s1.Release()

	s2 := getInt32Slice(4)
	defer s2.Release()
	if len(s2.Data) != 4 {
		t.Errorf("len(Data) = %d, want 4", len(s2.Data))
	}
}

func TestGetUint32Slice_LargeRequest(t *testing.T) {
	// a large request, served exactly by the 2^20 bucket
	s := getUint32Slice(1 << 20)
	defer s.Release()
	if len(s.Data) != 1<<20 {
		t.Errorf("len(Data) = %d, want %d", len(s.Data), 1<<20)
	}
}

func TestFilter_UsesPooledScratchWithoutLeaking(t *testing.T) {
	c := NewColumnF64("x", []float64{1, 2, 3, 4, 5})
	out, err := c.Filter([]bool{true, false, true, false, true})
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if out.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", out.Len())
	}
	want := []float64{1, 3, 5}
	for i, v := range want {
		got, _ := out.AtF64(i)
		if got != v {
			t.Errorf("out[%d] = %v, want %v", i, got, v)
		}
	}
}
