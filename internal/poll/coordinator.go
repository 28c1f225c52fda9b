package poll

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/odvcencio/kubedeck/internal/state"
)

// DefaultInterval is the automatic refresh period when none is configured.
const DefaultInterval = 10 * time.Second

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithInterval sets the automatic refresh period.
func WithInterval(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithClock injects the clock. Tests pass a mock to drive time.
func WithClock(clk clock.Clock) Option {
	return func(c *Coordinator) {
		if clk != nil {
			c.clock = clk
		}
	}
}

// WithVisibility injects the visibility source gating automatic refresh.
func WithVisibility(v Visibility) Option {
	return func(c *Coordinator) {
		if v != nil {
			c.vis = v
		}
	}
}

// WithLogger sets the logger for cycle failures and state transitions.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Coordinator owns the single repeating refresh timer shared by every
// registered consumer. It runs at most one cycle at a time, pauses while
// the display is hidden, and publishes cycle state through signals.
//
// Signal subscribers registered without a scheduler run while the
// coordinator lock is held and must not call back into the coordinator;
// the UI subscribes through its queue scheduler instead.
type Coordinator struct {
	interval time.Duration
	clock    clock.Clock
	vis      Visibility
	logger   *zap.Logger
	registry *Registry

	mu       sync.Mutex
	timer    *clock.Timer
	unsubVis func()
	ctx      context.Context
	cancel   context.CancelFunc
	started  bool
	closed   bool
	visible  bool
	inFlight bool
	// pending records a manual refresh that arrived while a cycle was in
	// flight; exactly one follow-up cycle starts after the fan-in settles
	// no matter how many requests piled up.
	pending bool

	loading    *state.Signal[bool]
	lastUpdate *state.Signal[time.Time]
}

// New creates a coordinator. It does not start polling until Start.
func New(opts ...Option) *Coordinator {
	c := &Coordinator{
		interval:   DefaultInterval,
		clock:      clock.New(),
		vis:        Always,
		logger:     zap.NewNop(),
		registry:   NewRegistry(),
		loading:    state.NewSignal(false),
		lastUpdate: state.NewSignal(time.Time{}),
	}
	c.loading.SetEqual(state.Equal[bool])
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Interval returns the configured automatic refresh period.
func (c *Coordinator) Interval() time.Duration {
	return c.interval
}

// Loading reports whether a refresh cycle is currently in flight.
func (c *Coordinator) Loading() state.Readable[bool] {
	return c.loading
}

// LastUpdate reports when the most recent cycle completed. It advances
// exactly once per completed cycle, whether or not any consumer failed.
func (c *Coordinator) LastUpdate() state.Readable[time.Time] {
	return c.lastUpdate
}

// Register adds a refresh callback under id, replacing any existing one.
func (c *Coordinator) Register(id string, fn RefreshFunc) {
	c.registry.Register(id, fn)
}

// Unregister removes the callback for id. Idempotent.
func (c *Coordinator) Unregister(id string) {
	c.registry.Unregister(id)
}

// Consumers returns the number of registered consumers.
func (c *Coordinator) Consumers() int {
	return c.registry.Len()
}

// Start subscribes to the visibility source and begins polling: one
// immediate cycle if currently visible, then one cycle per interval.
// Starting twice is a no-op.
func (c *Coordinator) Start() {
	c.mu.Lock()
	if c.started || c.closed {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.ctx, c.cancel = context.WithCancel(context.Background())
	c.unsubVis = c.vis.OnChange(c.onVisibility)
	c.visible = c.vis.Visible()
	var ctx context.Context
	if c.visible {
		c.armLocked()
		ctx = c.beginCycleLocked()
	}
	c.mu.Unlock()
	if ctx != nil {
		go c.runCycle(ctx)
	}
}

// Close stops the timer, detaches from the visibility source, and cancels
// the context passed to in-flight callbacks. Idempotent.
func (c *Coordinator) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.pending = false
	c.disarmLocked()
	unsub := c.unsubVis
	c.unsubVis = nil
	cancel := c.cancel
	c.mu.Unlock()

	if unsub != nil {
		unsub()
	}
	if cancel != nil {
		cancel()
	}
}

// Refresh triggers one immediate cycle regardless of visibility and, when
// running, pushes the next automatic tick back by a full interval. A
// refresh requested while a cycle is in flight is coalesced into a single
// follow-up cycle.
func (c *Coordinator) Refresh() {
	c.mu.Lock()
	if c.closed || !c.started {
		c.mu.Unlock()
		return
	}
	if c.visible {
		c.armLocked()
	}
	if c.inFlight {
		c.pending = true
		c.mu.Unlock()
		return
	}
	ctx := c.beginCycleLocked()
	c.mu.Unlock()
	go c.runCycle(ctx)
}

func (c *Coordinator) onVisibility(visible bool) {
	c.mu.Lock()
	if c.closed || !c.started || c.visible == visible {
		c.mu.Unlock()
		return
	}
	c.visible = visible
	if !visible {
		c.disarmLocked()
		c.mu.Unlock()
		c.logger.Debug("display hidden, polling paused")
		return
	}
	// Restored: one immediate cycle, then a fresh full interval. The old
	// schedule is gone with the cancelled timer.
	c.armLocked()
	if c.inFlight {
		c.pending = true
		c.mu.Unlock()
		return
	}
	ctx := c.beginCycleLocked()
	c.mu.Unlock()
	c.logger.Debug("display visible, polling resumed")
	go c.runCycle(ctx)
}

// onTick fires on the repeating timer.
func (c *Coordinator) onTick() {
	c.mu.Lock()
	if c.closed || !c.visible {
		c.mu.Unlock()
		return
	}
	// The next tick is measured from this scheduled fire, not from when
	// the cycle completes.
	c.armLocked()
	if c.inFlight {
		c.mu.Unlock()
		c.logger.Debug("cycle still in flight, skipping tick")
		return
	}
	ctx := c.beginCycleLocked()
	c.mu.Unlock()
	go c.runCycle(ctx)
}

// beginCycleLocked marks a cycle started. Caller holds mu.
func (c *Coordinator) beginCycleLocked() context.Context {
	c.inFlight = true
	c.loading.Set(true)
	return c.ctx
}

// runCycle fans out to every registered consumer, waits for all of them,
// and publishes completion. Runs on its own goroutine.
func (c *Coordinator) runCycle(ctx context.Context) {
	errs := c.registry.Invoke(ctx)
	for id, err := range errs {
		c.logger.Warn("consumer refresh failed",
			zap.String("consumer", id),
			zap.Error(err))
	}

	c.mu.Lock()
	c.inFlight = false
	c.loading.Set(false)
	c.lastUpdate.Set(c.clock.Now())
	again := c.pending && !c.closed
	c.pending = false
	var next context.Context
	if again {
		if c.visible {
			c.armLocked()
		}
		next = c.beginCycleLocked()
	}
	c.mu.Unlock()

	if again {
		go c.runCycle(next)
	}
}

// armLocked schedules the next tick a full interval from now, dropping
// any previously scheduled fire. Caller holds mu.
func (c *Coordinator) armLocked() {
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = c.clock.AfterFunc(c.interval, c.onTick)
}

func (c *Coordinator) disarmLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
