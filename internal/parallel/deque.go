package parallel

import "sync"

// job is the three-state record described in spec §3: pending (handler
// not yet set — never observed once constructed here, since a job always
// carries its handler from creation), queued (sitting in a worker's
// deque, stealable), executing (claimed by a worker or by the pusher
// itself, no longer stealable). We don't keep a literal doubly-linked
// sentinel-headed list (spec §9's design note); a mutex-guarded slice
// gives the same three-state protocol and push/pop/steal shape with far
// less code, at the cost of true lock-freedom — see DESIGN.md.
type job struct {
	fn   func()
	done chan struct{}
}

func newJob(fn func()) *job {
	return &job{fn: fn, done: make(chan struct{})}
}

// execute runs the job's handler exactly once and signals completion.
// Callers must guarantee at most one goroutine ever calls execute for a
// given job (guaranteed here because only one of {owner pop, thief steal}
// can ever retrieve a given job pointer from its deque).
func (j *job) execute() {
	j.fn()
	close(j.done)
}

// deque is a single worker's local job queue: the owner pushes/pops the
// tail (LIFO, the fast path with no contention); thieves steal from the
// head (FIFO, taking the oldest — and usually largest-grained — work
// first, spec §4.1).
type deque struct {
	mu    sync.Mutex
	items []*job
}

func (d *deque) pushTail(j *job) {
	d.mu.Lock()
	d.items = append(d.items, j)
	d.mu.Unlock()
}

// popTailIfSame pops the tail only if it is still j — i.e. nobody has
// stolen it from the head yet. Returns true if j was popped (the caller
// must then execute it inline).
func (d *deque) popTailIfSame(j *job) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := len(d.items)
	if n == 0 || d.items[n-1] != j {
		return false
	}
	d.items = d.items[:n-1]
	return true
}

// steal removes and returns the head job, or nil if empty.
func (d *deque) steal() *job {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.items) == 0 {
		return nil
	}
	j := d.items[0]
	d.items = d.items[1:]
	return j
}

// len reports the number of queued (not yet executing) jobs — used by the
// heartbeat gate (spec §4.1: "victim deque has ≥ 2 queued jobs").
func (d *deque) len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.items)
}
