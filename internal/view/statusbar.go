package view

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/kubedeck/internal/kube"
)

var spinnerFrames = []rune{'⠋', '⠙', '⠹', '⠸', '⠼', '⠴', '⠦', '⠧', '⠇', '⠏'}

// statusState is the snapshot the status bar renders from.
type statusState struct {
	Loading    bool
	LastUpdate time.Time
	Paused     bool
	Namespace  string
	Now        time.Time
	Frame      int
	Err        string
}

// drawStatusBar renders the bottom line: refresh state on the left,
// the namespace scope and key hints on the right.
func drawStatusBar(s tcell.Screen, r Rect, st statusState) {
	if r.Empty() {
		return
	}
	fillRect(s, Rect{X: r.X, Y: r.Y, Width: r.Width, Height: 1}, ' ', styleStatus)

	left := ""
	switch {
	case st.Err != "":
		left = " " + st.Err
	case st.Paused:
		left = " ⏸ paused"
	case st.Loading:
		left = fmt.Sprintf(" %c refreshing…", spinnerFrames[st.Frame%len(spinnerFrames)])
	case st.LastUpdate.IsZero():
		left = " waiting for first refresh"
	default:
		left = " updated " + formatAge(st.LastUpdate, st.Now) + " ago"
	}
	style := styleStatus
	if st.Err != "" {
		style = styleError
	}
	drawText(s, r.X, r.Y, r.Width, left, style)

	ns := st.Namespace
	if ns == kube.AllNamespaces {
		ns = "all"
	}
	right := fmt.Sprintf("ns: %s  r refresh  n namespace  d describe  ? help  q quit ", ns)
	if w := runewidth.StringWidth(right); w < r.Width {
		drawText(s, r.X+r.Width-w, r.Y, w, right, styleStatus)
	}
}
