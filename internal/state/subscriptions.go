package state

import "sync"

// Subscribable emits change notifications.
type Subscribable interface {
	Subscribe(fn func()) func()
}

// Subscriptions tracks unsubscribe callbacks so a view can release
// everything it observes in one call when it deactivates.
type Subscriptions struct {
	mu     sync.Mutex
	unsubs []func()
}

// Add registers an unsubscribe callback.
func (s *Subscriptions) Add(unsub func()) {
	if s == nil || unsub == nil {
		return
	}
	s.mu.Lock()
	s.unsubs = append(s.unsubs, unsub)
	s.mu.Unlock()
}

// Subscribe registers a listener on sub and tracks the unsubscribe.
func (s *Subscriptions) Subscribe(sub Subscribable, fn func()) {
	if s == nil || sub == nil || fn == nil {
		return
	}
	s.Add(sub.Subscribe(fn))
}

// Clear unsubscribes all tracked callbacks.
func (s *Subscriptions) Clear() {
	if s == nil {
		return
	}
	s.mu.Lock()
	unsubs := s.unsubs
	s.unsubs = nil
	s.mu.Unlock()
	for _, unsub := range unsubs {
		unsub()
	}
}
