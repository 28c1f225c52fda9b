package view

import (
	"context"

	"github.com/gdamore/tcell/v2"
)

// View is one dashboard tab. Refresh is called from the coordinator's
// worker goroutine; Draw and HandleKey run on the message loop, so each
// view guards its rows with its own mutex.
type View interface {
	Name() string
	Refresh(ctx context.Context) error
	Draw(s tcell.Screen, r Rect)
	HandleKey(ev *tcell.EventKey) bool
}

// Selection identifies the resource under the cursor for describe.
type Selection struct {
	Kind      string
	Namespace string
	Name      string
}

// Describer is implemented by views whose rows map to a describable
// resource.
type Describer interface {
	Selection() (Selection, bool)
}
