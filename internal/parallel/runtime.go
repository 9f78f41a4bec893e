// Package parallel implements the heartbeat-scheduled work-stealing
// executor (C9, spec §4.1/§5): a process-wide, lazily-initialized worker
// pool exposing Join as its sole suspension point, plus ParallelFor,
// ParallelReduce, ParallelScan, and the size-threshold check and worker
// count that internal/sortkernel's sample sort consults.
package parallel

import (
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/brigantine-data/veloxcore/internal/telemetry"
)

// worker owns one deque and is the unit of "steal-ability"; workers have
// no dedicated executor goroutine of their own to pin work to — the
// goroutine that happens to be running a.() (or stole a continuation) is
// that job's executor. A fixed pool of background "hunter" goroutines
// continuously looks for stealable work so that pushed continuations
// actually get picked up in parallel instead of only ever running inline.
type worker struct {
	dq deque
}

// Runtime is the process-wide parallel execution engine.
type Runtime struct {
	id         string
	workers    []*worker
	numWorkers int

	heartbeat atomic.Int64 // ticks, advanced by a background goroutine

	stopCh chan struct{}
	wg     sync.WaitGroup

	nextInject atomic.Uint64 // round-robin index for external (non-worker) Join calls
}

var (
	globalOnce sync.Once
	global     *Runtime
	maxThreads atomic.Int64 // 0 = auto
)

// SetMaxThreads overrides the worker count used by the next lazy Init. 0
// means auto-detect from GOMAXPROCS (spec §6 "set_max_threads(n)").
func SetMaxThreads(n int) {
	maxThreads.Store(int64(n))
}

// GetMaxThreads returns the effective worker count of the active runtime,
// or of a hypothetical one if none has been created yet.
func GetMaxThreads() int {
	if global != nil {
		return global.numWorkers
	}
	return effectiveWorkers()
}

// IsThreadsAutoDetected reports whether the thread count came from
// GOMAXPROCS rather than an explicit SetMaxThreads call.
func IsThreadsAutoDetected() bool {
	return maxThreads.Load() <= 0
}

func effectiveWorkers() int {
	if n := maxThreads.Load(); n > 0 {
		return int(n)
	}
	return runtime.GOMAXPROCS(0)
}

// Global returns the process-wide runtime, creating it lazily on first
// use (spec §4.1 "created lazily on first parallel call").
func Global() *Runtime {
	globalOnce.Do(func() {
		global = newRuntime(effectiveWorkers())
	})
	return global
}

// ResetGlobal tears down and forgets the process-wide runtime so the next
// Global() call rebuilds it (used by tests exercising thread-count
// reconfiguration, and by explicit lifecycle control per spec §6 pool
// init/deinit).
func ResetGlobal() {
	if global != nil {
		global.Shutdown()
	}
	global = nil
	globalOnce = sync.Once{}
}

func newRuntime(n int) *Runtime {
	if n < 1 {
		n = 1
	}
	rt := &Runtime{
		id:         uuid.NewString(),
		numWorkers: n,
		workers:    make([]*worker, n),
		stopCh:     make(chan struct{}),
	}
	for i := range rt.workers {
		rt.workers[i] = &worker{}
	}
	telemetry.ActiveWorkers.Set(float64(n))
	telemetry.Log.Info().Str("runtime_id", rt.id).Int("workers", n).Msg("parallel runtime initialized")

	rt.wg.Add(n + 1)
	for i := 0; i < n; i++ {
		go rt.hunterLoop(i)
	}
	go rt.heartbeatLoop()
	return rt
}

// Shutdown stops all hunter goroutines. Safe to call once; the runtime is
// unusable afterward (spec §6 "pool init/deinit").
func (rt *Runtime) Shutdown() {
	close(rt.stopCh)
	rt.wg.Wait()
	telemetry.ActiveWorkers.Set(0)
	telemetry.Log.Info().Str("runtime_id", rt.id).Msg("parallel runtime shut down")
}

// NumWorkers returns the worker count of this runtime instance.
func (rt *Runtime) NumWorkers() int { return rt.numWorkers }

func (rt *Runtime) heartbeatLoop() {
	defer rt.wg.Done()
	ticker := time.NewTicker(100 * time.Microsecond)
	defer ticker.Stop()
	for {
		select {
		case <-rt.stopCh:
			return
		case <-ticker.C:
			rt.heartbeat.Add(1)
		}
	}
}

// hunterLoop is a background goroutine dedicated to stealing and
// executing queued continuations so Join's pushed second task actually
// gets run concurrently with the caller's inline first task.
func (rt *Runtime) hunterLoop(self int) {
	defer rt.wg.Done()
	var lastTick int64
	idleSpins := 0
	for {
		select {
		case <-rt.stopCh:
			return
		default:
		}

		j := rt.tryStealFrom(self, lastTick, idleSpins)
		if j != nil {
			telemetry.StealCount.Inc()
			j.execute()
			idleSpins = 0
			continue
		}

		idleSpins++
		if idleSpins > 64 {
			time.Sleep(50 * time.Microsecond)
		} else {
			runtime.Gosched()
		}
		lastTick = rt.heartbeat.Load()
	}
}

// tryStealFrom scans victims other than self, honoring the heartbeat gate
// (spec §4.1: only initiate a steal once a heartbeat tick has observed the
// victim has ≥2 queued jobs) with a starvation fallback so a single
// straggling continuation still eventually gets picked up.
func (rt *Runtime) tryStealFrom(self int, lastTick int64, idleSpins int) *job {
	tickAdvanced := rt.heartbeat.Load() != lastTick
	starved := idleSpins > 8 // fallback so a lone queued job isn't stranded forever
	n := rt.numWorkers
	start := rand.Intn(n)
	for i := 0; i < n; i++ {
		idx := (start + i) % n
		if idx == self {
			continue
		}
		d := &rt.workers[idx].dq
		depth := d.len()
		if depth == 0 {
			continue
		}
		if (tickAdvanced && depth >= 2) || starved {
			if j := d.steal(); j != nil {
				return j
			}
		}
	}
	return nil
}

func (rt *Runtime) injectWorker() *worker {
	idx := rt.nextInject.Add(1) % uint64(rt.numWorkers)
	return rt.workers[idx]
}
