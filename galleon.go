package veloxcore

import (
	"github.com/brigantine-data/veloxcore/internal/parallel"
	"github.com/brigantine-data/veloxcore/internal/simd"
	"github.com/brigantine-data/veloxcore/internal/sortkernel"
)

// ============================================================================
// Thread Configuration
// ============================================================================

// SetMaxThreads sets the maximum number of threads to use for parallel
// operations. Pass 0 to use auto-detection based on CPU count (default).
func SetMaxThreads(maxThreads int) {
	parallel.SetMaxThreads(maxThreads)
}

// GetMaxThreads returns the current effective maximum thread count.
func GetMaxThreads() int {
	return parallel.GetMaxThreads()
}

// IsThreadsAutoDetected returns true if thread count was auto-detected.
func IsThreadsAutoDetected() bool {
	return parallel.IsThreadsAutoDetected()
}

// ThreadConfig holds thread configuration information.
type ThreadConfig struct {
	MaxThreads   int
	AutoDetected bool
}

// GetThreadConfig returns the current thread configuration.
func GetThreadConfig() ThreadConfig {
	return ThreadConfig{MaxThreads: GetMaxThreads(), AutoDetected: IsThreadsAutoDetected()}
}

// ============================================================================
// Raw-buffer reductions (spec §6 "raw buffer access" — operate directly on
// a caller-owned slice without the Column wrapper's bookkeeping, for callers
// that already manage their own buffers).
// ============================================================================

// SumF64 computes the sum of a float64 slice.
func SumF64(data []float64) float64 { return simd.SumFloat(data, nil) }

// MinF64 finds the minimum value in a float64 slice.
func MinF64(data []float64) float64 { return simd.MinFloat(data, nil) }

// MaxF64 finds the maximum value in a float64 slice.
func MaxF64(data []float64) float64 { return simd.MaxFloat(data, nil) }

// MeanF64 computes the mean of a float64 slice.
func MeanF64(data []float64) float64 { return simd.MeanFloat(data, nil) }

// SumI64 computes the sum of an int64 slice.
func SumI64(data []int64) int64 { return simd.SumInt(data, nil) }

// MinI64 finds the minimum value in an int64 slice.
func MinI64(data []int64) int64 { return simd.MinInt(data, nil) }

// MaxI64 finds the maximum value in an int64 slice.
func MaxI64(data []int64) int64 { return simd.MaxInt(data, nil) }

// SumI32 computes the sum of an int32 slice.
func SumI32(data []int32) int32 { return simd.SumInt(data, nil) }

// MinI32 finds the minimum value in an int32 slice.
func MinI32(data []int32) int32 { return simd.MinInt(data, nil) }

// MaxI32 finds the maximum value in an int32 slice.
func MaxI32(data []int32) int32 { return simd.MaxInt(data, nil) }

// SumF32 computes the sum of a float32 slice.
func SumF32(data []float32) float32 { return simd.SumFloat(data, nil) }

// MinF32 finds the minimum value in a float32 slice.
func MinF32(data []float32) float32 { return simd.MinFloat(data, nil) }

// MaxF32 finds the maximum value in a float32 slice.
func MaxF32(data []float32) float32 { return simd.MaxFloat(data, nil) }

// MeanF32 computes the mean of a float32 slice.
func MeanF32(data []float32) float64 { return simd.MeanFloat(data, nil) }

// ============================================================================
// In-place scalar arithmetic
// ============================================================================

// AddScalarF64 adds a scalar to every element in place.
func AddScalarF64(data []float64, scalar float64) { simd.AddScalarFloat(data, scalar, data) }

// MulScalarF64 multiplies every element by a scalar in place.
func MulScalarF64(data []float64, scalar float64) { simd.MulScalarFloat(data, scalar, data) }

// AddScalarI64 adds a scalar to every element in place.
func AddScalarI64(data []int64, scalar int64) { simd.AddScalarInt(data, scalar, data) }

// MulScalarI64 multiplies every element by a scalar in place.
func MulScalarI64(data []int64, scalar int64) { simd.MulScalarInt(data, scalar, data) }

// AddScalarI32 adds a scalar to every element in place.
func AddScalarI32(data []int32, scalar int32) { simd.AddScalarInt(data, scalar, data) }

// MulScalarI32 multiplies every element by a scalar in place.
func MulScalarI32(data []int32, scalar int32) { simd.MulScalarInt(data, scalar, data) }

// ============================================================================
// Vector arithmetic
// ============================================================================

// AddF64 adds two arrays element-wise: out = a + b.
func AddF64(a, b, out []float64) { simd.AddFloat(a, b, out) }

// SubF64 subtracts two arrays element-wise: out = a - b.
func SubF64(a, b, out []float64) { simd.SubFloat(a, b, out) }

// MulF64 multiplies two arrays element-wise: out = a * b.
func MulF64(a, b, out []float64) { simd.MulFloat(a, b, out) }

// DivF64 divides two arrays element-wise: out = a / b.
func DivF64(a, b, out []float64) { simd.DivFloat(a, b, out) }

// AddI64 adds two arrays element-wise: out = a + b.
func AddI64(a, b, out []int64) { simd.AddInt(a, b, out) }

// SubI64 subtracts two arrays element-wise: out = a - b.
func SubI64(a, b, out []int64) { simd.SubInt(a, b, out) }

// MulI64 multiplies two arrays element-wise: out = a * b.
func MulI64(a, b, out []int64) { simd.MulInt(a, b, out) }

// ============================================================================
// Comparison / masking
// ============================================================================

// CmpGtF64 writes a u8 mask for a[i] > b[i].
func CmpGtF64(a, b []float64, out []uint8) { simd.Compare(simd.CmpGT, a, b, out) }

// CmpGeF64 writes a u8 mask for a[i] >= b[i].
func CmpGeF64(a, b []float64, out []uint8) { simd.Compare(simd.CmpGE, a, b, out) }

// CmpLtF64 writes a u8 mask for a[i] < b[i].
func CmpLtF64(a, b []float64, out []uint8) { simd.Compare(simd.CmpLT, a, b, out) }

// CmpLeF64 writes a u8 mask for a[i] <= b[i].
func CmpLeF64(a, b []float64, out []uint8) { simd.Compare(simd.CmpLE, a, b, out) }

// CmpEqF64 writes a u8 mask for a[i] == b[i].
func CmpEqF64(a, b []float64, out []uint8) { simd.Compare(simd.CmpEQ, a, b, out) }

// CmpNeF64 writes a u8 mask for a[i] != b[i].
func CmpNeF64(a, b []float64, out []uint8) { simd.Compare(simd.CmpNE, a, b, out) }

// CountMaskTrue counts the set entries in a u8 mask.
func CountMaskTrue(mask []uint8) int {
	n := 0
	for _, v := range mask {
		if v != 0 {
			n++
		}
	}
	return n
}

// IndicesFromMask writes the row indices where mask is set into outIndices
// (which must be at least CountMaskTrue(mask) long) and returns how many
// were written.
func IndicesFromMask(mask []uint8, outIndices []uint32) int {
	n := 0
	for i, v := range mask {
		if v != 0 {
			outIndices[n] = uint32(i)
			n++
		}
	}
	return n
}

// FilterGreaterThanF64 returns the row indices where data[i] > threshold.
func FilterGreaterThanF64(data []float64, threshold float64) []uint32 {
	return simd.FilterGreaterThan(data, threshold)
}

// FilterGreaterThanF64Pooled is FilterGreaterThanF64 backed by the Uint32
// pool, for callers in a hot loop who will Release the result promptly.
func FilterGreaterThanF64Pooled(data []float64, threshold float64) *Uint32Slice {
	matched := simd.FilterGreaterThan(data, threshold)
	s := getUint32Slice(len(matched))
	copy(s.Data, matched)
	return s
}

// FilterGreaterThanI64 returns the row indices where data[i] > threshold.
func FilterGreaterThanI64(data []int64, threshold int64) []uint32 {
	return simd.FilterGreaterThan(data, threshold)
}

// FilterGreaterThanI32 returns the row indices where data[i] > threshold.
func FilterGreaterThanI32(data []int32, threshold int32) []uint32 {
	return simd.FilterGreaterThan(data, threshold)
}

// ============================================================================
// Sorting
// ============================================================================

// ArgsortF64 returns the permutation that sorts data.
func ArgsortF64(data []float64, ascending bool) []uint32 {
	perm := sortkernel.ArgsortFloat64Radix(data)
	if !ascending {
		sortkernel.ReverseInPlace(perm)
	}
	return perm
}

// ArgsortI64 returns the permutation that sorts data.
func ArgsortI64(data []int64, ascending bool) []uint32 {
	perm := sortkernel.ArgsortInt64Radix(data)
	if !ascending {
		sortkernel.ReverseInPlace(perm)
	}
	return perm
}

// ArgsortI32 returns the permutation that sorts data, via a float64-widened
// pair sort (no dedicated int32 radix path).
func ArgsortI32(data []int32, ascending bool) []uint32 {
	widened := make([]float64, len(data))
	for i, v := range data {
		widened[i] = float64(v)
	}
	perm := sortkernel.ArgsortFloat64Pair(widened)
	if !ascending {
		sortkernel.ReverseInPlace(perm)
	}
	return perm
}
