package view

import (
	"github.com/gdamore/tcell/v2"
)

// Overlay is a modal drawn over the active view. HandleKey reports
// whether the overlay should close.
type Overlay interface {
	Draw(s tcell.Screen, r Rect)
	HandleKey(ev *tcell.EventKey) (closed bool)
}

// overlayRect centers a modal inside the screen rect, leaving a margin
// so the view underneath stays visible at the edges.
func overlayRect(screen Rect) Rect {
	margin := 3
	r := screen.Inset(margin)
	if r.Width < 20 || r.Height < 5 {
		return screen
	}
	return r
}

// drawFrame paints a bordered box with a title and clears its interior.
func drawFrame(s tcell.Screen, r Rect, title string) {
	if r.Empty() {
		return
	}
	fillRect(s, r, ' ', styleDefault)
	for x := r.X; x < r.X+r.Width; x++ {
		s.SetContent(x, r.Y, tcell.RuneHLine, nil, styleDim)
		s.SetContent(x, r.Y+r.Height-1, tcell.RuneHLine, nil, styleDim)
	}
	for y := r.Y; y < r.Y+r.Height; y++ {
		s.SetContent(r.X, y, tcell.RuneVLine, nil, styleDim)
		s.SetContent(r.X+r.Width-1, y, tcell.RuneVLine, nil, styleDim)
	}
	s.SetContent(r.X, r.Y, tcell.RuneULCorner, nil, styleDim)
	s.SetContent(r.X+r.Width-1, r.Y, tcell.RuneURCorner, nil, styleDim)
	s.SetContent(r.X, r.Y+r.Height-1, tcell.RuneLLCorner, nil, styleDim)
	s.SetContent(r.X+r.Width-1, r.Y+r.Height-1, tcell.RuneLRCorner, nil, styleDim)
	if title != "" {
		drawText(s, r.X+2, r.Y, r.Width-4, " "+title+" ", styleTitle)
	}
}
