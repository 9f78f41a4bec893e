package veloxcore

import (
	"sync"
)

// Int32Slice is a pooled int32 index slice, used by Filter to stage the
// kept-row list before handing it to Gather without a fresh allocation on
// every call.
type Int32Slice struct {
	Data []int32
	pool *sync.Pool
}

// Release returns the slice to the pool for reuse.
func (s *Int32Slice) Release() {
	if s.pool != nil && s.Data != nil {
		s.pool.Put(s)
	}
}

// Uint32Slice is a pooled uint32 slice for index results
// (FilterGreaterThanF64Pooled).
type Uint32Slice struct {
	Data []uint32
	pool *sync.Pool
}

// Release returns the slice to the pool for reuse.
func (s *Uint32Slice) Release() {
	if s.pool != nil && s.Data != nil {
		s.pool.Put(s)
	}
}

// Power-of-2 size buckets, same shape as the teacher's pool: size class i
// holds slices of capacity 2^i.
var (
	int32Pools  [32]*sync.Pool
	uint32Pools [32]*sync.Pool
	poolInit    sync.Once
)

func initPools() {
	poolInit.Do(func() {
		for i := range int32Pools {
			size := 1 << i
			int32Pools[i] = &sync.Pool{
				New: func() interface{} {
					return &Int32Slice{Data: make([]int32, size)}
				},
			}
			uint32Pools[i] = &sync.Pool{
				New: func() interface{} {
					return &Uint32Slice{Data: make([]uint32, size)}
				},
			}
		}
	})
}

// getBucket returns the pool bucket index for the smallest power of 2 >= size.
func getBucket(size int) int {
	if size <= 0 {
		return 0
	}
	bucket := 0
	n := size - 1
	for n > 0 {
		n >>= 1
		bucket++
	}
	if bucket >= 32 {
		bucket = 31
	}
	return bucket
}

// getInt32Slice gets an Int32Slice from the pool sized to at least size.
func getInt32Slice(size int) *Int32Slice {
	initPools()
	bucket := getBucket(size)
	pool := int32Pools[bucket]
	s := pool.Get().(*Int32Slice)
	s.pool = pool

	poolSize := 1 << bucket
	if size > poolSize {
		s.Data = make([]int32, size)
	} else if len(s.Data) != size {
		s.Data = s.Data[:size]
	}
	return s
}

// getUint32Slice gets a Uint32Slice from the pool sized to at least size.
func getUint32Slice(size int) *Uint32Slice {
	initPools()
	bucket := getBucket(size)
	pool := uint32Pools[bucket]
	s := pool.Get().(*Uint32Slice)
	s.pool = pool

	poolSize := 1 << bucket
	if size > poolSize {
		s.Data = make([]uint32, size)
	} else if len(s.Data) != size {
		s.Data = s.Data[:size]
	}
	return s
}
