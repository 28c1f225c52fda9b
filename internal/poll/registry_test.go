package poll

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

func TestRegistry_ReplaceOnReregister(t *testing.T) {
	reg := NewRegistry()
	var first, second atomic.Int64

	reg.Register("pods", func(context.Context) error {
		first.Add(1)
		return nil
	})
	reg.Register("pods", func(context.Context) error {
		second.Add(1)
		return nil
	})

	if reg.Len() != 1 {
		t.Fatalf("expected 1 consumer after re-register, got %d", reg.Len())
	}
	reg.Invoke(context.Background())
	if first.Load() != 0 {
		t.Fatalf("expected replaced callback to never run, got %d calls", first.Load())
	}
	if second.Load() != 1 {
		t.Fatalf("expected replacement callback to run once, got %d calls", second.Load())
	}
}

func TestRegistry_UnregisterIdempotent(t *testing.T) {
	reg := NewRegistry()
	reg.Register("nodes", func(context.Context) error { return nil })

	reg.Unregister("nodes")
	reg.Unregister("nodes")
	reg.Unregister("never-registered")
	if reg.Len() != 0 {
		t.Fatalf("expected empty registry, got %d consumers", reg.Len())
	}
}

func TestRegistry_UnregisteredNotInvoked(t *testing.T) {
	reg := NewRegistry()
	var calls atomic.Int64
	reg.Register("secrets", func(context.Context) error {
		calls.Add(1)
		return nil
	})
	reg.Unregister("secrets")

	reg.Invoke(context.Background())
	if calls.Load() != 0 {
		t.Fatalf("expected no invocations after unregister, got %d", calls.Load())
	}
}

func TestRegistry_FanInCollectsFailures(t *testing.T) {
	reg := NewRegistry()
	var ok atomic.Int64
	wantErr := errors.New("apiserver unreachable")

	reg.Register("overview", func(context.Context) error {
		ok.Add(1)
		return nil
	})
	reg.Register("pods", func(context.Context) error {
		return wantErr
	})

	errs := reg.Invoke(context.Background())
	if ok.Load() != 1 {
		t.Fatalf("expected healthy consumer to run despite sibling failure, got %d calls", ok.Load())
	}
	if len(errs) != 1 || !errors.Is(errs["pods"], wantErr) {
		t.Fatalf("unexpected failure map: %v", errs)
	}
}

func TestRegistry_PanicBecomesError(t *testing.T) {
	reg := NewRegistry()
	reg.Register("workloads", func(context.Context) error {
		panic("bad index")
	})

	errs := reg.Invoke(context.Background())
	if errs["workloads"] == nil {
		t.Fatalf("expected panic to surface as an error, got %v", errs)
	}
}

func TestRegistry_EmptyInvoke(t *testing.T) {
	reg := NewRegistry()
	if errs := reg.Invoke(context.Background()); len(errs) != 0 {
		t.Fatalf("expected no failures from empty registry, got %v", errs)
	}
}
