// Package telemetry holds the handful of legitimate log/metric sites in a
// compute kernel library: SIMD level selection and worker-pool lifecycle
// (spec §7). Hot kernel loops never call into this package.
package telemetry

import (
	"os"
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// Log is the process-wide structured logger, zerolog chosen for its
// zero-allocation hot-path design (allocating a logger per call is not
// acceptable even at these low-frequency call sites, which run inside
// singleton-initialization paths that may themselves be invoked from a
// parallel region).
var Log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}).With().Timestamp().Logger().Level(zerolog.WarnLevel)

// SetLevel adjusts the global log verbosity; exposed for embedders that
// want kernel diagnostics during development.
func SetLevel(level zerolog.Level) {
	Log = Log.Level(level)
}

// Metrics are always updated in memory but are exported only once a caller
// opts in by calling Register with their own prometheus.Registerer — the library
// never registers itself with the default global registry, since a
// compute kernel embedded in a host process must not silently mutate
// global registries it doesn't own.
var (
	registerOnce sync.Once

	ActiveWorkers = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "veloxcore",
		Name:      "active_workers",
		Help:      "Number of parallel runtime worker goroutines currently alive.",
	})
	StealCount = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "veloxcore",
		Name:      "job_steals_total",
		Help:      "Number of jobs picked up by a thief worker instead of their owner.",
	})
	JoinQueueDepth = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "veloxcore",
		Name:      "join_queue_depth",
		Help:      "Sum of queued-but-not-yet-stolen jobs across all worker deques.",
	})

	enabled atomic.Bool
)

// Register wires the package's metrics into reg. Safe to call multiple
// times; only the first call takes effect.
func Register(reg prometheus.Registerer) {
	registerOnce.Do(func() {
		reg.MustRegister(ActiveWorkers, StealCount, JoinQueueDepth)
		enabled.Store(true)
	})
}

// Enabled reports whether a caller has opted into metrics collection.
func Enabled() bool {
	return enabled.Load()
}
