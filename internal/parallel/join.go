package parallel

// Join is the fork-join primitive (spec §4.1): push b onto a worker
// deque, run a inline on the calling goroutine, then try to reclaim b for
// inline execution; if it was stolen, block on its completion event and
// read the result a hunter goroutine wrote.
//
// Ordering: a happens-before its continuation here; b happens-before its
// continuation; (a,b) may execute in either order relative to each other,
// but the returned pair is always the deterministic (ra, rb).
func Join[A, B any](rt *Runtime, a func() A, b func() B) (A, B) {
	if rt == nil {
		rt = Global()
	}
	var rb B
	j := newJob(func() { rb = b() })

	w := rt.injectWorker()
	w.dq.pushTail(j)

	ra := a()

	if w.dq.popTailIfSame(j) {
		j.execute()
	} else {
		<-j.done
	}
	return ra, rb
}

// joinOn is Join's internal variant used by the recursive bisection
// operators (ParallelFor/Reduce/Scan), which thread an explicit worker
// through the recursion so each level of the split pushes its
// continuation onto the SAME deque the caller is logically running on —
// matching spec §4.1's per-worker local deque rather than round-robining
// across workers at every split.
func joinOn[A, B any](w *worker, a func() A, b func() B) (A, B) {
	var rb B
	j := newJob(func() { rb = b() })
	w.dq.pushTail(j)

	ra := a()

	if w.dq.popTailIfSame(j) {
		j.execute()
	} else {
		<-j.done
	}
	return ra, rb
}
