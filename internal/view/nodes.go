package view

import (
	"context"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/odvcencio/kubedeck/internal/kube"
)

// NodesView lists cluster nodes with their readiness and roles.
type NodesView struct {
	client *kube.Client
	table  *Table

	mu   sync.Mutex
	rows []kube.NodeRow
	err  error
}

// NewNodesView returns the Nodes tab.
func NewNodesView(client *kube.Client) *NodesView {
	return &NodesView{
		client: client,
		table: NewTable(
			Column{Title: "NAME"},
			Column{Title: "STATUS", Width: 10, Style: phaseStyle},
			Column{Title: "ROLES", Width: 20},
			Column{Title: "VERSION", Width: 12},
			Column{Title: "AGE", Width: 6},
		),
	}
}

func (v *NodesView) Name() string { return "Nodes" }

func (v *NodesView) Refresh(ctx context.Context) error {
	rows, err := v.client.Nodes(ctx)
	v.mu.Lock()
	defer v.mu.Unlock()
	v.err = err
	if err != nil {
		return err
	}
	v.rows = rows
	return nil
}

func (v *NodesView) HandleKey(ev *tcell.EventKey) bool {
	return v.table.HandleKey(ev)
}

func (v *NodesView) Draw(s tcell.Screen, r Rect) {
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
		cells[i] = []string{row.Name, row.Status, row.Roles, row.Version, formatAge(row.CreatedAt, now)}
	}
	v.table.SetRows(cells)
	v.table.Draw(s, r)
}

// Err returns the most recent refresh failure, or nil.
func (v *NodesView) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.err
}

// Selection reports the node under the cursor.
func (v *NodesView) Selection() (Selection, bool) {
	v.mu.Lock()
	rows := v.rows
	v.mu.Unlock()

	idx := v.table.Selected()
	if idx < 0 || idx >= len(rows) {
		return Selection{}, false
	}
	return Selection{Kind: "Node", Name: rows[idx].Name}, true
}
