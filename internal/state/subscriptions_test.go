package state

import "testing"

func TestSubscriptions_Clear(t *testing.T) {
	loading := NewSignal(false)
	updated := NewSignal(0)
	subs := &Subscriptions{}
	calls := 0

	subs.Subscribe(loading, func() { calls++ })
	subs.Subscribe(updated, func() { calls++ })

	loading.Set(true)
	updated.Set(1)
	if calls != 2 {
		t.Fatalf("expected 2 calls before clear, got %d", calls)
	}

	subs.Clear()
	loading.Set(false)
	updated.Set(2)
	if calls != 2 {
		t.Fatalf("expected no calls after clear, got %d", calls)
	}

	// Clearing again is a no-op.
	subs.Clear()
}

func TestSubscriptions_NilGuards(t *testing.T) {
	var subs *Subscriptions
	subs.Add(func() {})
	subs.Clear()

	s := &Subscriptions{}
	s.Add(nil)
	s.Subscribe(nil, func() {})
	s.Clear()
}
