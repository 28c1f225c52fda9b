package view

import (
	"context"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/odvcencio/kubedeck/internal/kube"
	"github.com/odvcencio/kubedeck/internal/state"
)

// OverviewView shows cluster-wide counts: nodes, pods by phase,
// deployment readiness, and namespaces.
type OverviewView struct {
	client    *kube.Client
	namespace *state.Signal[string]

	mu   sync.Mutex
	snap kube.OverviewSnapshot
	err  error
}

// NewOverviewView returns the Overview tab.
func NewOverviewView(client *kube.Client, namespace *state.Signal[string]) *OverviewView {
	return &OverviewView{client: client, namespace: namespace}
}

func (v *OverviewView) Name() string { return "Overview" }

func (v *OverviewView) Refresh(ctx context.Context) error {
	snap, err := v.client.Overview(ctx, v.namespace.Get())
	v.mu.Lock()
	defer v.mu.Unlock()
	v.err = err
	if err != nil {
		return err
	}
	v.snap = snap
	return nil
}

// Err returns the most recent refresh failure, or nil.
func (v *OverviewView) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.err
}

func (v *OverviewView) HandleKey(*tcell.EventKey) bool { return false }

func (v *OverviewView) Draw(s tcell.Screen, r Rect) {
	v.mu.Lock()
	snap := v.snap
	err := v.err
	v.mu.Unlock()

	if r.Empty() {
		return
	}
	if err != nil {
		drawText(s, r.X+1, r.Y+1, r.Width-2, "error: "+err.Error(), styleError)
		return
	}

	y := r.Y + 1
	drawText(s, r.X+2, y, r.Width-4, "Cluster", styleTitle)
	y += 2

	lines := []struct {
		label string
		value string
		style tcell.Style
	}{
		{"Nodes", fmt.Sprintf("%d ready / %d", snap.ReadyNodes, snap.Nodes), readyStyle(snap.ReadyNodes, snap.Nodes)},
		{"Deployments", fmt.Sprintf("%d ready / %d", snap.ReadyDeployments, snap.Deployments), readyStyle(snap.ReadyDeployments, snap.Deployments)},
		{"Pods", fmt.Sprintf("%d", snap.Pods), styleDefault},
		{"  running", fmt.Sprintf("%d", snap.RunningPods), styleGood},
		{"  pending", fmt.Sprintf("%d", snap.PendingPods), pendingStyle(snap.PendingPods)},
		{"  failed", fmt.Sprintf("%d", snap.FailedPods), failedStyle(snap.FailedPods)},
		{"Namespaces", fmt.Sprintf("%d", snap.Namespaces), styleDefault},
	}
	for _, line := range lines {
		if y >= r.Y+r.Height {
			break
		}
		drawPadded(s, r.X+2, y, 14, line.label, styleHeader)
		drawText(s, r.X+17, y, r.Width-19, line.value, line.style)
		y++
	}
}

func readyStyle(ready, total int) tcell.Style {
	if total > 0 && ready < total {
		return styleWarn
	}
	return styleGood
}

func pendingStyle(n int) tcell.Style {
	if n > 0 {
		return styleWarn
	}
	return styleDefault
}

func failedStyle(n int) tcell.Style {
	if n > 0 {
		return styleError
	}
	return styleDefault
}
