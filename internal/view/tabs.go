package view

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// drawTabs renders the tab bar with the active tab highlighted. Tabs
// are numbered so the digit keys can jump straight to one.
func drawTabs(s tcell.Screen, r Rect, names []string, active int) {
	if r.Empty() {
		return
	}
	fillRect(s, Rect{X: r.X, Y: r.Y, Width: r.Width, Height: 1}, ' ', styleTabBar)
	x := r.X + 1
	for i, name := range names {
		label := fmt.Sprintf(" %d %s ", i+1, name)
		style := styleTab
		if i == active {
			style = styleTabFocus
		}
		x += drawText(s, x, r.Y, r.X+r.Width-x, label, style)
		x++
	}
}
