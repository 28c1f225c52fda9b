package view

import (
	"strings"
	"testing"
	"time"
)

func TestStatusBar_Paused(t *testing.T) {
	s := newSimScreen(t, 80, 1)
	drawStatusBar(s, Rect{X: 0, Y: 0, Width: 80, Height: 1}, statusState{Paused: true})
	s.Show()

	if got := rowText(s, 0, 80); !strings.Contains(got, "paused") {
		t.Fatalf("status = %q, want paused indicator", got)
	}
}

func TestStatusBar_Refreshing(t *testing.T) {
	s := newSimScreen(t, 80, 1)
	drawStatusBar(s, Rect{X: 0, Y: 0, Width: 80, Height: 1}, statusState{Loading: true})
	s.Show()

	if got := rowText(s, 0, 80); !strings.Contains(got, "refreshing") {
		t.Fatalf("status = %q, want refreshing", got)
	}
}

func TestStatusBar_UpdatedAge(t *testing.T) {
	s := newSimScreen(t, 80, 1)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	drawStatusBar(s, Rect{X: 0, Y: 0, Width: 80, Height: 1}, statusState{
		Now:        now,
		LastUpdate: now.Add(-30 * time.Second),
		Namespace:  "kube-system",
	})
	s.Show()

	got := rowText(s, 0, 80)
	if !strings.Contains(got, "updated 30s ago") {
		t.Fatalf("status = %q, want updated age", got)
	}
	if !strings.Contains(got, "ns: kube-system") {
		t.Fatalf("status = %q, want namespace scope", got)
	}
}

func TestStatusBar_Error(t *testing.T) {
	s := newSimScreen(t, 80, 1)
	drawStatusBar(s, Rect{X: 0, Y: 0, Width: 80, Height: 1}, statusState{
		Loading: true,
		Err:     "refresh failed: apiserver unavailable",
	})
	s.Show()

	got := rowText(s, 0, 80)
	if !strings.Contains(got, "refresh failed: apiserver unavailable") {
		t.Fatalf("status = %q, want the failure message", got)
	}
	// The error wins over the spinner.
	if strings.Contains(got, "refreshing") {
		t.Fatalf("status = %q, spinner shown alongside error", got)
	}
	_, _, style, _ := s.GetContent(1, 0)
	if style != styleError {
		t.Fatalf("error style = %v, want %v", style, styleError)
	}
}

func TestStatusBar_AllNamespaces(t *testing.T) {
	s := newSimScreen(t, 80, 1)
	drawStatusBar(s, Rect{X: 0, Y: 0, Width: 80, Height: 1}, statusState{})
	s.Show()

	if got := rowText(s, 0, 80); !strings.Contains(got, "ns: all") {
		t.Fatalf("status = %q, want all-namespaces scope", got)
	}
}
