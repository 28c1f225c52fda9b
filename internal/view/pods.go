package view

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/odvcencio/kubedeck/internal/kube"
	"github.com/odvcencio/kubedeck/internal/state"
)

// PodsView lists pods with phase, readiness, and restart counts.
type PodsView struct {
	client    *kube.Client
	namespace *state.Signal[string]
	table     *Table

	mu   sync.Mutex
	rows []kube.PodRow
	err  error
}

// NewPodsView returns the Pods tab.
func NewPodsView(client *kube.Client, namespace *state.Signal[string]) *PodsView {
	return &PodsView{
		client:    client,
		namespace: namespace,
		table: NewTable(
			Column{Title: "NAMESPACE", Width: 20},
			Column{Title: "NAME"},
			Column{Title: "READY", Width: 6},
			Column{Title: "STATUS", Width: 12, Style: phaseStyle},
			Column{Title: "RESTARTS", Width: 8},
			Column{Title: "NODE", Width: 20},
			Column{Title: "AGE", Width: 6},
		),
	}
}

func (v *PodsView) Name() string { return "Pods" }

func (v *PodsView) Refresh(ctx context.Context) error {
	rows, err := v.client.Pods(ctx, v.namespace.Get())
	v.mu.Lock()
	defer v.mu.Unlock()
	v.err = err
	if err != nil {
		return err
	}
	v.rows = rows
	return nil
}

func (v *PodsView) HandleKey(ev *tcell.EventKey) bool {
	return v.table.HandleKey(ev)
}

func (v *PodsView) Draw(s tcell.Screen, r Rect) {
	v.mu.Lock()
	rows := v.rows
	err := v.err
	v.mu.Unlock()

	if err != nil {
		drawText(s, r.X+1, r.Y, r.Width-2, "error: "+err.Error(), styleError)
		r = Rect{X: r.X, Y: r.Y + 1, Width: r.Width, Height: r.Height - 1}
	}

	now := time.Now()
	cells := make([][]string, len(rows))
	for i, row := range rows {
		cells[i] = []string{
			row.Namespace,
			row.Name,
			row.Ready,
			row.Phase,
			strconv.Itoa(row.Restarts),
			row.Node,
			formatAge(row.CreatedAt, now),
		}
	}
	v.table.SetRows(cells)
	v.table.Draw(s, r)
}

// Err returns the most recent refresh failure, or nil.
func (v *PodsView) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.err
}

// Selection reports the pod under the cursor.
func (v *PodsView) Selection() (Selection, bool) {
	v.mu.Lock()
	rows := v.rows
	v.mu.Unlock()

	idx := v.table.Selected()
	if idx < 0 || idx >= len(rows) {
		return Selection{}, false
	}
	row := rows[idx]
	return Selection{Kind: "Pod", Namespace: row.Namespace, Name: row.Name}, true
}
