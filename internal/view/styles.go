package view

import "github.com/gdamore/tcell/v2"

var (
	styleDefault  = tcell.StyleDefault
	styleHeader   = tcell.StyleDefault.Bold(true)
	styleSelected = tcell.StyleDefault.Reverse(true)
	styleTabBar   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleTab      = tcell.StyleDefault
	styleTabFocus = tcell.StyleDefault.Bold(true).Underline(true)
	styleStatus   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleWarn     = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleError    = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleGood     = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleTitle    = tcell.StyleDefault.Bold(true).Foreground(tcell.ColorAqua)
	styleDim      = tcell.StyleDefault.Dim(true)
)

// phaseStyle picks a style for a pod phase or node status string.
func phaseStyle(phase string) tcell.Style {
	switch phase {
	case "Running", "Ready", "Succeeded":
		return styleGood
	case "Pending", "Terminating", "NotReady":
		return styleWarn
	case "Failed", "Unknown":
		return styleError
	default:
		return styleDefault
	}
}
