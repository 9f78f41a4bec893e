// Package simd provides per-dtype kernel families (C3) and a process-wide
// Level (C2) bound once at process start from detected CPU features (C1).
// Go has no portable compile-time SIMD intrinsics outside hand-written
// assembly, which this project does not add (see DESIGN.md). Each family
// has a single pure-Go implementation; the Level only sets the lane count
// of SumFloat's unrolled fast path (its accumulator count is fixed at
// numAccumulators), and every other kernel ignores it. The dispatch
// *contract* (level detection, override for testing, vector-width query)
// is kept; the kernel bodies are scalar Go.
package simd

import (
	"sync"
	"sync/atomic"

	"golang.org/x/sys/cpu"

	"github.com/brigantine-data/veloxcore/internal/telemetry"
)

// Level identifies the selected kernel family width.
type Level int32

const (
	LevelScalar Level = iota
	Level128
	Level256
	Level512
)

// String names the level for diagnostics.
func (l Level) String() string {
	switch l {
	case LevelScalar:
		return "scalar"
	case Level128:
		return "128"
	case Level256:
		return "256"
	case Level512:
		return "512"
	default:
		return "unknown"
	}
}

// vectorBytes returns the emulated vector width in bytes for a level.
func (l Level) vectorBytes() int {
	switch l {
	case Level512:
		return 64
	case Level256:
		return 32
	case Level128:
		return 16
	default:
		return 8
	}
}

// lanes returns how many dtype elements of size elemSize the level
// processes per unrolled iteration.
func (l Level) lanes(elemSize int) int {
	n := l.vectorBytes() / elemSize
	if n < 1 {
		return 1
	}
	return n
}

var (
	activeLevel int32 // atomic Level
	detectOnce  sync.Once
)

// detect queries CPU feature flags in descending order and returns the
// highest supported level, matching spec §4.2's startup procedure.
func detect() Level {
	switch {
	case cpu.X86.HasAVX512F:
		return Level512
	case cpu.X86.HasAVX2:
		return Level256
	case cpu.X86.HasSSE41, cpu.X86.HasSSE42:
		return Level128
	case cpu.ARM64.HasASIMD:
		return Level128
	default:
		return LevelScalar
	}
}

func ensureInit() {
	detectOnce.Do(func() {
		lvl := detect()
		atomic.StoreInt32(&activeLevel, int32(lvl))
		telemetry.Log.Info().Str("simd_level", lvl.String()).Int("vector_bytes", lvl.vectorBytes()).Msg("simd dispatch table bound")
	})
}

// GetLevel returns the currently active dispatch level, initializing the
// one-time CPU probe on first call.
func GetLevel() Level {
	ensureInit()
	return Level(atomic.LoadInt32(&activeLevel))
}

// SetLevel overrides the active dispatch level. Exposed for testing every
// kernel family's width-specific code path deterministically; callers must
// not mutate this concurrently with live parallel calls (spec §9).
func SetLevel(l Level) {
	atomic.StoreInt32(&activeLevel, int32(l))
	telemetry.Log.Debug().Str("simd_level", l.String()).Msg("simd dispatch table re-bound")
}

// GetVectorBytes returns the emulated vector width, in bytes, of the
// active level.
func GetVectorBytes() int {
	return GetLevel().vectorBytes()
}

// Lanes returns how many elements of elemSize bytes the active level's
// kernels unroll per inner-loop step.
func Lanes(elemSize int) int {
	return GetLevel().lanes(elemSize)
}
