package veloxcore

import (
	"sync/atomic"

	"github.com/brigantine-data/veloxcore/internal/parallel"
)

// Blitz is the pure-Go successor to the teacher's CGO-backed parallel
// execution engine: internal/parallel's work-stealing runtime. You don't
// need to call these directly — Table.Gather and the joins reach for
// parallel.Global() on their own (joins switch to the parallel probe once
// the probe side clears internal/parallel.ShouldParallelize's threshold).
// Column aggregations, Sort and GroupByAssign run serially.
//
// These functions exist for diagnostics and explicit lifecycle control,
// mirroring the teacher's BlitzInit/BlitzDeinit/BlitzIsInitialized/
// BlitzNumWorkers surface.

var blitzInitialized atomic.Bool

// BlitzInit initializes the global parallel runtime. Idempotent: later
// calls are no-ops once the runtime exists.
func BlitzInit() bool {
	parallel.Global()
	blitzInitialized.Store(true)
	return true
}

// BlitzDeinit shuts down the global parallel runtime's workers and clears
// it, so a later BlitzInit (or any parallel.Global() call) builds a fresh
// one.
func BlitzDeinit() {
	if !blitzInitialized.Load() {
		return
	}
	parallel.ResetGlobal()
	blitzInitialized.Store(false)
}

// BlitzIsInitialized reports whether BlitzInit has been called since the
// last BlitzDeinit.
func BlitzIsInitialized() bool {
	return blitzInitialized.Load()
}

// BlitzNumWorkers returns the number of worker goroutines in the global
// runtime's pool.
func BlitzNumWorkers() int {
	return parallel.Global().NumWorkers()
}
