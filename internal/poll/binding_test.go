package poll

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestBinding_RegistersForLifetime(t *testing.T) {
	c, mock, _ := newTestCoordinator(true)
	defer c.Close()
	var calls atomic.Int64

	binding := c.Bind(func(context.Context) error {
		calls.Add(1)
		return nil
	})
	if binding.ID() == "" {
		t.Fatalf("expected a consumer id")
	}
	if c.Consumers() != 1 {
		t.Fatalf("expected 1 consumer after bind, got %d", c.Consumers())
	}

	c.Start()
	waitUntil(t, settled(c, &calls, 1))

	binding.Close()
	binding.Close() // every exit path may close; only the first counts
	if c.Consumers() != 0 {
		t.Fatalf("expected 0 consumers after close, got %d", c.Consumers())
	}

	mock.Add(10 * time.Second)
	time.Sleep(10 * time.Millisecond)
	if calls.Load() != 1 {
		t.Fatalf("expected no invocations after close, got %d", calls.Load())
	}
}

func TestBinding_DistinctIDs(t *testing.T) {
	c, _, _ := newTestCoordinator(true)
	defer c.Close()

	a := c.Bind(func(context.Context) error { return nil })
	b := c.Bind(func(context.Context) error { return nil })
	if a.ID() == b.ID() {
		t.Fatalf("expected distinct consumer ids, both %q", a.ID())
	}
	if c.Consumers() != 2 {
		t.Fatalf("expected 2 consumers, got %d", c.Consumers())
	}
}

func TestBinding_ProjectsSharedState(t *testing.T) {
	c, _, _ := newTestCoordinator(false)
	defer c.Close()
	var calls atomic.Int64

	binding := c.Bind(func(context.Context) error {
		calls.Add(1)
		return nil
	})
	c.Start()

	binding.Refresh()
	waitUntil(t, settled(c, &calls, 1))
	if binding.LastUpdate().Get().IsZero() {
		t.Fatalf("expected binding to observe the shared lastUpdate")
	}
	if binding.Loading().Get() {
		t.Fatalf("expected binding to observe loading false after cycle")
	}
}

func TestBinding_NilGuards(t *testing.T) {
	var binding *Binding
	binding.Refresh()
	binding.Close()
	if binding.ID() != "" {
		t.Fatalf("expected empty id from nil binding")
	}
	if binding.Loading() != nil || binding.LastUpdate() != nil {
		t.Fatalf("expected nil projections from nil binding")
	}
}
