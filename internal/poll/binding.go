package poll

import (
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/odvcencio/kubedeck/internal/state"
)

// Binding ties one consumer to the coordinator for the span between Bind
// and Close. Views bind when they activate and close when they leave, so
// every concurrently active view shares one polling rhythm instead of
// running its own timer.
type Binding struct {
	id    string
	coord *Coordinator
	once  sync.Once
}

// Bind registers fn under a fresh consumer id and returns the handle that
// releases it.
func (c *Coordinator) Bind(fn RefreshFunc) *Binding {
	id := ulid.Make().String()
	c.Register(id, fn)
	return &Binding{id: id, coord: c}
}

// ID returns the consumer id.
func (b *Binding) ID() string {
	if b == nil {
		return ""
	}
	return b.id
}

// Refresh requests one immediate shared cycle.
func (b *Binding) Refresh() {
	if b == nil || b.coord == nil {
		return
	}
	b.coord.Refresh()
}

// Loading projects the shared in-flight state.
func (b *Binding) Loading() state.Readable[bool] {
	if b == nil || b.coord == nil {
		return nil
	}
	return b.coord.Loading()
}

// LastUpdate projects the shared completion timestamp.
func (b *Binding) LastUpdate() state.Readable[time.Time] {
	if b == nil || b.coord == nil {
		return nil
	}
	return b.coord.LastUpdate()
}

// Close unregisters the consumer. Safe to call on every exit path;
// only the first call takes effect.
func (b *Binding) Close() {
	if b == nil || b.coord == nil {
		return
	}
	b.once.Do(func() {
		b.coord.Unregister(b.id)
	})
}
