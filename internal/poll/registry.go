package poll

import (
	"context"
	"fmt"
	"sync"
)

// RefreshFunc performs one unit of refresh work for a single consumer.
// It may block; the cycle waits for every started callback to settle.
type RefreshFunc func(ctx context.Context) error

// Registry is a keyed collection of refresh callbacks. One cycle invokes
// every currently registered callback concurrently and waits for all of
// them, so one consumer's failure never starves its siblings.
type Registry struct {
	mu        sync.Mutex
	consumers map[string]RefreshFunc
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{consumers: make(map[string]RefreshFunc)}
}

// Register adds fn under id, replacing any callback already registered
// under the same id.
func (r *Registry) Register(id string, fn RefreshFunc) {
	if r == nil || id == "" || fn == nil {
		return
	}
	r.mu.Lock()
	if r.consumers == nil {
		r.consumers = make(map[string]RefreshFunc)
	}
	r.consumers[id] = fn
	r.mu.Unlock()
}

// Unregister removes the callback for id. Unregistering an unknown id is
// a no-op.
func (r *Registry) Unregister(id string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	delete(r.consumers, id)
	r.mu.Unlock()
}

// Len returns the number of registered consumers.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	n := len(r.consumers)
	r.mu.Unlock()
	return n
}

// Invoke runs every callback registered at the time of the call and waits
// for all of them. It returns the failures keyed by consumer id; an empty
// map means every consumer settled cleanly. Consumers registered or
// removed while the cycle runs take effect on the next cycle.
func (r *Registry) Invoke(ctx context.Context) map[string]error {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	snapshot := make(map[string]RefreshFunc, len(r.consumers))
	for id, fn := range r.consumers {
		snapshot[id] = fn
	}
	r.mu.Unlock()

	if len(snapshot) == 0 {
		return nil
	}

	var (
		wg   sync.WaitGroup
		emu  sync.Mutex
		errs = make(map[string]error)
	)
	for id, fn := range snapshot {
		wg.Add(1)
		go func(id string, fn RefreshFunc) {
			defer wg.Done()
			if err := settle(ctx, fn); err != nil {
				emu.Lock()
				errs[id] = err
				emu.Unlock()
			}
		}(id, fn)
	}
	wg.Wait()
	return errs
}

// settle runs fn and converts a panic into an error so one consumer
// cannot take down the cycle.
func settle(ctx context.Context, fn RefreshFunc) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("refresh panicked: %v", rec)
		}
	}()
	return fn(ctx)
}
