package state

import "sync"

// Scheduler dispatches subscription callbacks.
type Scheduler interface {
	Schedule(fn func())
}

// SchedulerFunc adapts a function into a Scheduler.
type SchedulerFunc func(func())

// Schedule dispatches fn using the wrapped function.
func (f SchedulerFunc) Schedule(fn func()) {
	if f == nil || fn == nil {
		return
	}
	f(fn)
}

// Direct runs callbacks immediately in the caller goroutine.
var Direct Scheduler = SchedulerFunc(func(fn func()) {
	fn()
})

// Queue batches callbacks for explicit flushing.
// The UI loop flushes it so signal changes produced on worker
// goroutines are applied on the goroutine that owns the screen.
type Queue struct {
	mu      sync.Mutex
	pending []func()
	wake    func()
}

// NewQueue creates an empty queue.
// wake, if non-nil, is called after a callback is enqueued; the UI
// uses it to interrupt its event wait.
func NewQueue(wake func()) *Queue {
	return &Queue{wake: wake}
}

// Schedule enqueues a callback for later flushing.
func (q *Queue) Schedule(fn func()) {
	if q == nil || fn == nil {
		return
	}
	q.mu.Lock()
	q.pending = append(q.pending, fn)
	wake := q.wake
	q.mu.Unlock()
	if wake != nil {
		wake()
	}
}

// Flush executes queued callbacks in order and returns the count.
func (q *Queue) Flush() int {
	if q == nil {
		return 0
	}
	q.mu.Lock()
	pending := q.pending
	q.pending = nil
	q.mu.Unlock()
	for _, fn := range pending {
		fn()
	}
	return len(pending)
}
