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

// SecretsView lists secret metadata. Values stay redacted everywhere,
// including the describe overlay.
type SecretsView struct {
	client    *kube.Client
	namespace *state.Signal[string]
	table     *Table

	mu   sync.Mutex
	rows []kube.SecretRow
	err  error
}

// NewSecretsView returns the Secrets tab.
func NewSecretsView(client *kube.Client, namespace *state.Signal[string]) *SecretsView {
	return &SecretsView{
		client:    client,
		namespace: namespace,
		table: NewTable(
			Column{Title: "NAMESPACE", Width: 20},
			Column{Title: "NAME"},
			Column{Title: "TYPE", Width: 30},
			Column{Title: "KEYS", Width: 5},
			Column{Title: "AGE", Width: 6},
		),
	}
}

func (v *SecretsView) Name() string { return "Secrets" }

func (v *SecretsView) Refresh(ctx context.Context) error {
	rows, err := v.client.Secrets(ctx, v.namespace.Get())
	v.mu.Lock()
	defer v.mu.Unlock()
	v.err = err
	if err != nil {
		return err
	}
	v.rows = rows
	return nil
}

func (v *SecretsView) HandleKey(ev *tcell.EventKey) bool {
	return v.table.HandleKey(ev)
}

func (v *SecretsView) Draw(s tcell.Screen, r Rect) {
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
			row.Type,
			strconv.Itoa(row.Keys),
			formatAge(row.CreatedAt, now),
		}
	}
	v.table.SetRows(cells)
	v.table.Draw(s, r)
}

// Err returns the most recent refresh failure, or nil.
func (v *SecretsView) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.err
}

// Selection reports the secret under the cursor.
func (v *SecretsView) Selection() (Selection, bool) {
	v.mu.Lock()
	rows := v.rows
	v.mu.Unlock()

	idx := v.table.Selected()
	if idx < 0 || idx >= len(rows) {
		return Selection{}, false
	}
	row := rows[idx]
	return Selection{Kind: "Secret", Namespace: row.Namespace, Name: row.Name}, true
}
