// Package view renders the kubedeck dashboard: a tab bar, one active
// view bound to the shared polling coordinator, a status bar, and modal
// overlays, all drawn straight onto a tcell screen from a single
// message loop.
package view

// Rect is a screen region.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Empty reports whether the rect has no drawable area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Inset shrinks the rect by n cells on every side.
func (r Rect) Inset(n int) Rect {
	return Rect{
		X:      r.X + n,
		Y:      r.Y + n,
		Width:  max(0, r.Width-2*n),
		Height: max(0, r.Height-2*n),
	}
}
