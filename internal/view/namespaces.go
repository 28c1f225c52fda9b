package view

import (
	"sort"

	"github.com/gdamore/tcell/v2"

	"github.com/odvcencio/kubedeck/internal/kube"
)

// allNamespacesLabel is the picker entry for the unfiltered scope.
const allNamespacesLabel = "(all)"

// NamespacesOverlay picks the namespace filter. Favorites are pinned
// to the top of the list and kept for the lifetime of the app.
type NamespacesOverlay struct {
	names     []string
	favorites map[string]bool
	apply     func(namespace string)

	selected int
	offset   int
	height   int
}

// NewNamespacesOverlay builds the picker over the given namespaces,
// with the cursor on the current filter.
func NewNamespacesOverlay(names []string, current string, favorites map[string]bool, apply func(string)) *NamespacesOverlay {
	o := &NamespacesOverlay{favorites: favorites, apply: apply}
	o.rebuild(names)

	want := allNamespacesLabel
	if current != kube.AllNamespaces {
		want = current
	}
	for i, name := range o.names {
		if name == want {
			o.selected = i
			break
		}
	}
	return o
}

// rebuild orders the list: all-namespaces first, then favorites, then
// the rest alphabetically.
func (o *NamespacesOverlay) rebuild(names []string) {
	var fav, rest []string
	for _, name := range names {
		if o.favorites[name] {
			fav = append(fav, name)
		} else {
			rest = append(rest, name)
		}
	}
	sort.Strings(fav)
	sort.Strings(rest)

	o.names = make([]string, 0, len(names)+1)
	o.names = append(o.names, allNamespacesLabel)
	o.names = append(o.names, fav...)
	o.names = append(o.names, rest...)
}

func (o *NamespacesOverlay) HandleKey(ev *tcell.EventKey) bool {
	if ev == nil {
		return false
	}
	switch ev.Key() {
	case tcell.KeyEscape:
		return true
	case tcell.KeyEnter:
		ns := o.names[o.selected]
		if ns == allNamespacesLabel {
			ns = kube.AllNamespaces
		}
		if o.apply != nil {
			o.apply(ns)
		}
		return true
	case tcell.KeyUp:
		o.move(-1)
	case tcell.KeyDown:
		o.move(1)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'k':
			o.move(-1)
		case 'j':
			o.move(1)
		case 'f':
			o.toggleFavorite()
		}
	}
	return false
}

func (o *NamespacesOverlay) move(delta int) {
	o.selected += delta
	if o.selected < 0 {
		o.selected = 0
	}
	if o.selected >= len(o.names) {
		o.selected = len(o.names) - 1
	}
}

func (o *NamespacesOverlay) toggleFavorite() {
	name := o.names[o.selected]
	if name == allNamespacesLabel || o.favorites == nil {
		return
	}
	o.favorites[name] = !o.favorites[name]

	raw := make([]string, 0, len(o.names)-1)
	raw = append(raw, o.names[1:]...)
	o.rebuild(raw)
	for i, n := range o.names {
		if n == name {
			o.selected = i
			break
		}
	}
}

func (o *NamespacesOverlay) Draw(s tcell.Screen, screen Rect) {
	r := overlayRect(screen)
	if r.Width > 50 {
		r = Rect{X: r.X + (r.Width-50)/2, Y: r.Y, Width: 50, Height: r.Height}
	}
	drawFrame(s, r, "Namespace")

	inner := r.Inset(1)
	o.height = inner.Height
	if o.selected < o.offset {
		o.offset = o.selected
	}
	if o.selected >= o.offset+o.height {
		o.offset = o.selected - o.height + 1
	}

	for vis := 0; vis < inner.Height; vis++ {
		idx := o.offset + vis
		if idx >= len(o.names) {
			break
		}
		name := o.names[idx]
		label := "  " + name
		if o.favorites[name] {
			label = "★ " + name
		}
		style := styleDefault
		if idx == o.selected {
			style = styleSelected
		}
		drawPadded(s, inner.X+1, inner.Y+vis, inner.Width-2, label, style)
	}
	drawText(s, r.X+2, r.Y+r.Height-1, r.Width-4, " enter select  f favorite  esc close ", styleDim)
}
