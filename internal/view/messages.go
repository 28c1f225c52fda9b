package view

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// Message represents an event flowing into the dashboard loop.
// Messages come from terminal input, timers, or background goroutines.
type Message interface {
	isMessage()
}

// KeyMsg carries a keyboard event.
type KeyMsg struct {
	Event *tcell.EventKey
}

func (KeyMsg) isMessage() {}

// ResizeMsg indicates the terminal size changed.
type ResizeMsg struct {
	Width  int
	Height int
}

func (ResizeMsg) isMessage() {}

// FocusMsg indicates the terminal gained or lost focus.
type FocusMsg struct {
	Visible bool
}

func (FocusMsg) isMessage() {}

// TickMsg drives the spinner and relative timestamps.
type TickMsg struct {
	Time time.Time
}

func (TickMsg) isMessage() {}

// WakeMsg asks the loop to flush queued state callbacks and redraw.
type WakeMsg struct{}

func (WakeMsg) isMessage() {}

// OverlayMsg presents a modal overlay built on a background goroutine.
type OverlayMsg struct {
	Overlay Overlay
}

func (OverlayMsg) isMessage() {}

// NamespacesMsg carries a fetched namespace list; the loop builds the
// picker from it so overlay state is never touched off the loop.
type NamespacesMsg struct {
	Names []string
}

func (NamespacesMsg) isMessage() {}

// QuitMsg ends the loop.
type QuitMsg struct{}

func (QuitMsg) isMessage() {}
