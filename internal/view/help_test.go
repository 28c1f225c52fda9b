package view

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestHelpOverlay_RendersHeadingsAndkeys(t *testing.T) {
	o := NewHelpOverlay()
	if len(o.lines) == 0 {
		t.Fatalf("no help lines rendered")
	}

	var all strings.Builder
	for _, line := range o.lines {
		all.WriteString(flattenSpans(line))
		all.WriteByte('\n')
	}
	out := all.String()
	for _, want := range []string{"kubedeck", "Keys", "refresh now", "quit", "counted cluster-wide"} {
		if !strings.Contains(out, want) {
			t.Fatalf("help output missing %q:\n%s", want, out)
		}
	}
}

func TestHelpOverlay_BulletsForKeyBindings(t *testing.T) {
	o := NewHelpOverlay()
	bullets := 0
	for _, line := range o.lines {
		if len(line) > 0 && line[0].text == "• " {
			bullets++
		}
	}
	if bullets < 5 {
		t.Fatalf("got %d bullet lines, want the key list", bullets)
	}
}

func TestHelpOverlay_CloseKeys(t *testing.T) {
	o := NewHelpOverlay()
	for _, ev := range []*tcell.EventKey{key(tcell.KeyEscape), keyRune('q'), keyRune('?')} {
		if !o.HandleKey(ev) {
			t.Fatalf("key %v did not close help", ev.Name())
		}
	}
	if o.HandleKey(keyRune('x')) {
		t.Fatalf("unrelated key closed help")
	}
}

func TestHelpOverlay_Draws(t *testing.T) {
	s := newSimScreen(t, 70, 24)
	o := NewHelpOverlay()
	o.Draw(s, Rect{Width: 70, Height: 24})
	s.Show()

	var all strings.Builder
	for y := 0; y < 24; y++ {
		all.WriteString(rowText(s, y, 70))
		all.WriteByte('\n')
	}
	if out := all.String(); !strings.Contains(out, "Help") {
		t.Fatalf("help frame missing title:\n%s", out)
	}
}
