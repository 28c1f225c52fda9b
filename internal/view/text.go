package view

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// drawText writes s starting at (x, y), clipped to maxWidth display
// cells, and returns the width drawn.
func drawText(screen tcell.Screen, x, y, maxWidth int, s string, style tcell.Style) int {
	if maxWidth <= 0 {
		return 0
	}
	drawn := 0
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if drawn+w > maxWidth {
			break
		}
		screen.SetContent(x+drawn, y, r, nil, style)
		drawn += w
	}
	return drawn
}

// drawPadded writes s into exactly width cells, truncating with an
// ellipsis or padding with spaces.
func drawPadded(screen tcell.Screen, x, y, width int, s string, style tcell.Style) {
	if width <= 0 {
		return
	}
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	drawn := drawText(screen, x, y, width, s, style)
	for i := drawn; i < width; i++ {
		screen.SetContent(x+i, y, ' ', nil, style)
	}
}

// fillRect paints a region with a single rune.
func fillRect(screen tcell.Screen, r Rect, ch rune, style tcell.Style) {
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			screen.SetContent(x, y, ch, nil, style)
		}
	}
}

// formatAge renders the elapsed time since t the way kubectl does.
func formatAge(t time.Time, now time.Time) string {
	if t.IsZero() {
		return "<unknown>"
	}
	d := now.Sub(t)
	switch {
	case d < 0:
		return "0s"
	case d < 2*time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < 2*time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 48*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}
