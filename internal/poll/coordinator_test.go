package poll

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
)

// waitUntil polls cond until it holds. Cycles run on their own goroutine,
// so assertions wait for the fan-in to publish completion.
func waitUntil(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("condition not met within 2s")
}

// settled reports that the counter reached n and the cycle that produced
// it has fully completed.
func settled(c *Coordinator, calls *atomic.Int64, n int64) func() bool {
	return func() bool {
		return calls.Load() == n && !c.Loading().Get()
	}
}

func newTestCoordinator(visible bool) (*Coordinator, *clock.Mock, *Switch) {
	mock := clock.NewMock()
	sw := NewSwitch(visible)
	c := New(
		WithClock(mock),
		WithVisibility(sw),
		WithInterval(10*time.Second),
	)
	return c, mock, sw
}

func TestCoordinator_ActivationCycleAndTicks(t *testing.T) {
	c, mock, _ := newTestCoordinator(true)
	defer c.Close()
	var calls atomic.Int64
	c.Register("a", func(context.Context) error {
		calls.Add(1)
		return nil
	})

	c.Start()
	waitUntil(t, settled(c, &calls, 1))

	mock.Add(10 * time.Second)
	waitUntil(t, settled(c, &calls, 2))

	mock.Add(10 * time.Second)
	waitUntil(t, settled(c, &calls, 3))
}

func TestCoordinator_RegistrySwapBetweenTicks(t *testing.T) {
	c, mock, _ := newTestCoordinator(true)
	defer c.Close()
	var a, b atomic.Int64
	total := func() int64 { return a.Load() + b.Load() }
	c.Register("a", func(context.Context) error {
		a.Add(1)
		return nil
	})

	c.Start()
	waitUntil(t, func() bool { return total() == 1 && !c.Loading().Get() })
	mock.Add(10 * time.Second)
	waitUntil(t, func() bool { return total() == 2 && !c.Loading().Get() })
	if a.Load() != 2 {
		t.Fatalf("expected a invoked twice, got %d", a.Load())
	}

	c.Unregister("a")
	c.Register("b", func(context.Context) error {
		b.Add(1)
		return nil
	})
	mock.Add(10 * time.Second)
	waitUntil(t, func() bool { return total() == 3 && !c.Loading().Get() })
	if a.Load() != 2 {
		t.Fatalf("expected no further a invocations, got %d", a.Load())
	}
	if b.Load() != 1 {
		t.Fatalf("expected b invoked once, got %d", b.Load())
	}
}

func TestCoordinator_HiddenProducesNoCycles(t *testing.T) {
	c, mock, _ := newTestCoordinator(false)
	defer c.Close()
	var calls atomic.Int64
	c.Register("a", func(context.Context) error {
		calls.Add(1)
		return nil
	})

	c.Start()
	mock.Add(time.Hour)
	time.Sleep(10 * time.Millisecond)
	if calls.Load() != 0 {
		t.Fatalf("expected no cycles while hidden, got %d", calls.Load())
	}
}

func TestCoordinator_VisibilityRestoreResetsSchedule(t *testing.T) {
	c, mock, sw := newTestCoordinator(true)
	defer c.Close()
	var calls atomic.Int64
	c.Register("a", func(context.Context) error {
		calls.Add(1)
		return nil
	})

	c.Start()
	waitUntil(t, settled(c, &calls, 1))

	sw.Set(false)
	mock.Add(30 * time.Second)
	time.Sleep(10 * time.Millisecond)
	if calls.Load() != 1 {
		t.Fatalf("expected no cycles while hidden, got %d", calls.Load())
	}

	// Restoring visibility yields one immediate cycle and a fresh full
	// interval, not the remainder of the old one.
	sw.Set(true)
	waitUntil(t, settled(c, &calls, 2))

	mock.Add(9999 * time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	if calls.Load() != 2 {
		t.Fatalf("expected no cycle before the full interval, got %d", calls.Load())
	}
	mock.Add(time.Millisecond)
	waitUntil(t, settled(c, &calls, 3))
}

func TestCoordinator_ManualRefreshPushesBackNextTick(t *testing.T) {
	c, mock, _ := newTestCoordinator(true)
	defer c.Close()
	var calls atomic.Int64
	c.Register("a", func(context.Context) error {
		calls.Add(1)
		return nil
	})

	c.Start()
	waitUntil(t, settled(c, &calls, 1))

	mock.Add(5 * time.Second)
	c.Refresh()
	waitUntil(t, settled(c, &calls, 2))

	// The old tick at t=10s is cancelled; the next fires 10s after the
	// manual refresh.
	mock.Add(9999 * time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	if calls.Load() != 2 {
		t.Fatalf("expected manual refresh to reschedule the tick, got %d calls", calls.Load())
	}
	mock.Add(time.Millisecond)
	waitUntil(t, settled(c, &calls, 3))
}

func TestCoordinator_ManualRefreshReachesAllConsumers(t *testing.T) {
	c, _, _ := newTestCoordinator(false)
	defer c.Close()
	var a, b atomic.Int64
	c.Register("a", func(context.Context) error {
		a.Add(1)
		return nil
	})
	c.Register("b", func(context.Context) error {
		b.Add(1)
		return nil
	})

	c.Start() // hidden: no activation cycle
	c.Refresh()
	waitUntil(t, func() bool { return a.Load() == 1 && b.Load() == 1 && !c.Loading().Get() })
}

func TestCoordinator_CoalescesRefreshDuringCycle(t *testing.T) {
	c, _, _ := newTestCoordinator(true)
	defer c.Close()
	release := make(chan struct{})
	var calls atomic.Int64
	c.Register("slow", func(context.Context) error {
		calls.Add(1)
		<-release
		return nil
	})

	c.Start()
	waitUntil(t, func() bool { return calls.Load() == 1 })

	// All of these arrive while the activation cycle is in flight; they
	// collapse into one follow-up cycle.
	c.Refresh()
	c.Refresh()
	c.Refresh()
	close(release)

	waitUntil(t, settled(c, &calls, 2))
	time.Sleep(20 * time.Millisecond)
	if calls.Load() != 2 {
		t.Fatalf("expected exactly one coalesced follow-up cycle, got %d calls", calls.Load())
	}
}

func TestCoordinator_FailedConsumerDoesNotStopScheduler(t *testing.T) {
	c, mock, _ := newTestCoordinator(true)
	defer c.Close()
	var calls atomic.Int64
	c.Register("broken", func(context.Context) error {
		calls.Add(1)
		return errors.New("fetch failed")
	})

	c.Start()
	waitUntil(t, settled(c, &calls, 1))
	first := c.LastUpdate().Get()
	if first.IsZero() {
		t.Fatalf("expected lastUpdate to be set after a failed cycle")
	}

	mock.Add(10 * time.Second)
	waitUntil(t, settled(c, &calls, 2))
	if !c.LastUpdate().Get().After(first) {
		t.Fatalf("expected lastUpdate to advance past %v, got %v", first, c.LastUpdate().Get())
	}
}

func TestCoordinator_LoadingPublishedDuringCycle(t *testing.T) {
	c, _, _ := newTestCoordinator(false)
	defer c.Close()
	release := make(chan struct{})
	entered := make(chan struct{})
	c.Register("slow", func(context.Context) error {
		close(entered)
		<-release
		return nil
	})

	c.Start()
	if c.Loading().Get() {
		t.Fatalf("expected loading false before any cycle")
	}

	c.Refresh()
	<-entered
	if !c.Loading().Get() {
		t.Fatalf("expected loading true while cycle in flight")
	}
	close(release)
	waitUntil(t, func() bool { return !c.Loading().Get() })
}

func TestCoordinator_CloseStopsPolling(t *testing.T) {
	c, mock, _ := newTestCoordinator(true)
	var calls atomic.Int64
	c.Register("a", func(context.Context) error {
		calls.Add(1)
		return nil
	})

	c.Start()
	waitUntil(t, settled(c, &calls, 1))

	c.Close()
	c.Close() // idempotent
	mock.Add(time.Hour)
	time.Sleep(10 * time.Millisecond)
	if calls.Load() != 1 {
		t.Fatalf("expected no cycles after close, got %d", calls.Load())
	}

	c.Refresh()
	time.Sleep(10 * time.Millisecond)
	if calls.Load() != 1 {
		t.Fatalf("expected refresh after close to be ignored, got %d", calls.Load())
	}
}

func TestCoordinator_CloseCancelsCycleContext(t *testing.T) {
	c, _, _ := newTestCoordinator(false)
	done := make(chan error, 1)
	c.Register("ctx", func(ctx context.Context) error {
		<-ctx.Done()
		done <- ctx.Err()
		return ctx.Err()
	})

	c.Start()
	c.Refresh()
	time.Sleep(10 * time.Millisecond)
	c.Close()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected canceled context, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("expected close to cancel the in-flight callback context")
	}
}
