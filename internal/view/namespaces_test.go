package view

import (
	"reflect"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/odvcencio/kubedeck/internal/kube"
)

func TestNamespacesOverlay_Ordering(t *testing.T) {
	fav := map[string]bool{"prod": true}
	o := NewNamespacesOverlay([]string{"dev", "prod", "kube-system"}, kube.AllNamespaces, fav, nil)

	want := []string{"(all)", "prod", "dev", "kube-system"}
	if !reflect.DeepEqual(o.names, want) {
		t.Fatalf("names = %v, want %v", o.names, want)
	}
	if o.selected != 0 {
		t.Fatalf("selected = %d, want 0 for all namespaces", o.selected)
	}
}

func TestNamespacesOverlay_CursorOnCurrent(t *testing.T) {
	o := NewNamespacesOverlay([]string{"dev", "prod"}, "prod", nil, nil)
	if got := o.names[o.selected]; got != "prod" {
		t.Fatalf("cursor on %q, want prod", got)
	}
}

func TestNamespacesOverlay_ApplyOnEnter(t *testing.T) {
	applied := "unset"
	o := NewNamespacesOverlay([]string{"dev"}, kube.AllNamespaces, nil, func(ns string) {
		applied = ns
	})

	o.HandleKey(keyRune('j'))
	if closed := o.HandleKey(key(tcell.KeyEnter)); !closed {
		t.Fatalf("enter did not close the picker")
	}
	if applied != "dev" {
		t.Fatalf("applied = %q, want dev", applied)
	}
}

func TestNamespacesOverlay_AllMapsToEmptyFilter(t *testing.T) {
	applied := "unset"
	o := NewNamespacesOverlay([]string{"dev"}, "dev", nil, func(ns string) {
		applied = ns
	})

	o.HandleKey(keyRune('k'))
	o.HandleKey(key(tcell.KeyEnter))
	if applied != kube.AllNamespaces {
		t.Fatalf("applied = %q, want empty all-namespaces filter", applied)
	}
}

func TestNamespacesOverlay_ToggleFavorite(t *testing.T) {
	fav := map[string]bool{}
	o := NewNamespacesOverlay([]string{"zeta", "alpha"}, kube.AllNamespaces, fav, nil)

	// Cursor to zeta, favorite it; it should move ahead of alpha and
	// keep the cursor.
	o.HandleKey(keyRune('j'))
	o.HandleKey(keyRune('j'))
	o.HandleKey(keyRune('f'))

	want := []string{"(all)", "zeta", "alpha"}
	if !reflect.DeepEqual(o.names, want) {
		t.Fatalf("names = %v, want %v", o.names, want)
	}
	if got := o.names[o.selected]; got != "zeta" {
		t.Fatalf("cursor on %q after favorite, want zeta", got)
	}
	if !fav["zeta"] {
		t.Fatalf("zeta not recorded as favorite")
	}
}

func TestNamespacesOverlay_EscapeCloses(t *testing.T) {
	o := NewNamespacesOverlay([]string{"dev"}, kube.AllNamespaces, nil, func(string) {
		t.Fatalf("apply called on escape")
	})
	if closed := o.HandleKey(key(tcell.KeyEscape)); !closed {
		t.Fatalf("escape did not close the picker")
	}
}
