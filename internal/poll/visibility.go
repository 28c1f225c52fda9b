// Package poll implements the shared refresh coordinator behind kubedeck's
// views: one timer, one registry of refresh callbacks, one cycle at a time.
package poll

import "sync"

// Visibility reports whether the host surface is currently foregrounded.
// The coordinator samples and subscribes to it; it never drives it.
type Visibility interface {
	Visible() bool
	OnChange(fn func(visible bool)) (unsubscribe func())
}

type always struct{}

func (always) Visible() bool { return true }

func (always) OnChange(func(bool)) func() { return func() {} }

// Always is a visibility source that is permanently foregrounded.
// Hosts without a visibility notion (headless schedulers, tests) use it.
var Always Visibility = always{}

// Switch is an externally driven visibility source. The UI layer flips it
// from terminal focus and suspend events; tests flip it directly.
type Switch struct {
	mu      sync.Mutex
	visible bool
	subs    map[int]func(bool)
	next    int
}

// NewSwitch creates a switch in the given initial state.
func NewSwitch(visible bool) *Switch {
	return &Switch{visible: visible}
}

// Visible reports the current state.
func (s *Switch) Visible() bool {
	if s == nil {
		return true
	}
	s.mu.Lock()
	visible := s.visible
	s.mu.Unlock()
	return visible
}

// Set updates the state and notifies subscribers on transition.
// Setting the current state again is a no-op.
func (s *Switch) Set(visible bool) {
	if s == nil {
		return
	}
	s.mu.Lock()
	if s.visible == visible {
		s.mu.Unlock()
		return
	}
	s.visible = visible
	subs := make([]func(bool), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(visible)
	}
}

// OnChange registers a transition listener. The returned function removes
// exactly that listener and is safe to call more than once.
func (s *Switch) OnChange(fn func(bool)) func() {
	if s == nil || fn == nil {
		return func() {}
	}
	s.mu.Lock()
	if s.subs == nil {
		s.subs = make(map[int]func(bool))
	}
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}
