package view

import (
	"context"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/odvcencio/kubedeck/internal/kube"
	"github.com/odvcencio/kubedeck/internal/state"
)

// WorkloadsView lists deployments, daemon sets, and stateful sets.
type WorkloadsView struct {
	client    *kube.Client
	namespace *state.Signal[string]
	table     *Table

	mu   sync.Mutex
	rows []kube.WorkloadRow
	err  error
}

// NewWorkloadsView returns the Workloads tab.
func NewWorkloadsView(client *kube.Client, namespace *state.Signal[string]) *WorkloadsView {
	return &WorkloadsView{
		client:    client,
		namespace: namespace,
		table: NewTable(
			Column{Title: "NAMESPACE", Width: 20},
			Column{Title: "NAME"},
			Column{Title: "KIND", Width: 12},
			Column{Title: "READY", Width: 8},
			Column{Title: "AGE", Width: 6},
		),
	}
}

func (v *WorkloadsView) Name() string { return "Workloads" }

func (v *WorkloadsView) Refresh(ctx context.Context) error {
	rows, err := v.client.Workloads(ctx, v.namespace.Get())
	v.mu.Lock()
	defer v.mu.Unlock()
	v.err = err
	if err != nil {
		return err
	}
	v.rows = rows
	return nil
}

func (v *WorkloadsView) HandleKey(ev *tcell.EventKey) bool {
	return v.table.HandleKey(ev)
}

func (v *WorkloadsView) Draw(s tcell.Screen, r Rect) {
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
		cells[i] = []string{row.Namespace, row.Name, row.Kind, row.Ready, formatAge(row.CreatedAt, now)}
	}
	v.table.SetRows(cells)
	v.table.Draw(s, r)
}

// Err returns the most recent refresh failure, or nil.
func (v *WorkloadsView) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.err
}

// Selection reports the workload under the cursor.
func (v *WorkloadsView) Selection() (Selection, bool) {
	v.mu.Lock()
	rows := v.rows
	v.mu.Unlock()

	idx := v.table.Selected()
	if idx < 0 || idx >= len(rows) {
		return Selection{}, false
	}
	row := rows[idx]
	return Selection{Kind: row.Kind, Namespace: row.Namespace, Name: row.Name}, true
}
