package simd

import "math"

// goldenGamma is the 64-bit golden-ratio constant used for the fast
// integer mix (spec §4.3).
const goldenGamma uint64 = 0x9E3779B97F4A7C15

// hqSecret1/hqSecret2 are the two distinct multipliers for the
// higher-quality join-side mix (spec §4.3: "a higher-quality mix using
// two multiplies with distinct secrets").
const (
	hqSecret1 uint64 = 0xD6E8FEB86659FD93
	hqSecret2 uint64 = 0xA24BAED4963EE407
)

// MixUint64 is the fast per-element hash used for non-join hashing paths
// (e.g. group-by without raw-key verification): h(x) = (x*gamma) ^ (h>>32).
func MixUint64(x uint64) uint64 {
	h := x * goldenGamma
	return h ^ (h >> 32)
}

// HashInt mixes a signed or unsigned integer value of any of the four
// integer dtypes.
func HashInt[T Integer](x T) uint64 {
	return MixUint64(uint64(x))
}

// HashFloat hashes the IEEE 754 bit pattern of a float value (spec §4.3).
// +0.0 and -0.0 normalize to the same hash since they compare equal.
func HashFloat[T Float](x T) uint64 {
	f := float64(x)
	if f == 0 {
		f = 0
	}
	return MixUint64(math.Float64bits(f))
}

// HashQuality is the higher-quality mix used for join-side hashing, where
// fewer collisions matter more than raw per-element throughput.
func HashQuality(x uint64) uint64 {
	h := x ^ hqSecret1
	h *= hqSecret1
	h ^= h >> 32
	h *= hqSecret2
	h ^= h >> 29
	return h
}

// CombineHash folds two hashes into one: h1*multiplier ⊕ h2, then remixed
// through the same fast mix function (spec §4.3).
func CombineHash(h1, h2 uint64) uint64 {
	combined := h1*goldenGamma ^ h2
	return MixUint64(combined)
}

// HashIntSlice hashes every element of data into out using the fast mix.
func HashIntSlice[T Integer](data []T, out []uint64) {
	for i, v := range data {
		out[i] = HashInt(v)
	}
}

// HashFloatSlice hashes every element of data into out using the fast mix.
func HashFloatSlice[T Float](data []T, out []uint64) {
	for i, v := range data {
		out[i] = HashFloat(v)
	}
}
