package view

import (
	"github.com/gdamore/tcell/v2"
)

// Column describes a table column. A zero Width means the column takes
// an equal share of whatever space the fixed columns leave over. Style,
// when set, picks the cell style from the cell value on unselected rows.
type Column struct {
	Title string
	Width int
	Style func(cell string) tcell.Style
}

// Table renders rows of cells with a header, a selection cursor, and
// vertical scrolling. Views rebuild its rows on every refresh and the
// table keeps the cursor pinned to a valid row.
type Table struct {
	Columns []Column

	rows     [][]string
	selected int
	offset   int
	height   int
}

// NewTable returns a table with the given columns and no rows.
func NewTable(columns ...Column) *Table {
	return &Table{Columns: columns}
}

// SetRows replaces the table contents, clamping the selection.
func (t *Table) SetRows(rows [][]string) {
	if t == nil {
		return
	}
	t.rows = rows
	t.clamp()
}

// Rows returns the current row count.
func (t *Table) Rows() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Selected returns the index of the selected row, or -1 when empty.
func (t *Table) Selected() int {
	if t == nil || len(t.rows) == 0 {
		return -1
	}
	return t.selected
}

// SelectedRow returns the cells of the selected row, or nil when empty.
func (t *Table) SelectedRow() []string {
	if t == nil || len(t.rows) == 0 {
		return nil
	}
	return t.rows[t.selected]
}

// MoveSelection moves the cursor by delta rows, clamped to the table.
func (t *Table) MoveSelection(delta int) {
	if t == nil {
		return
	}
	t.selected += delta
	t.clamp()
}

// SelectFirst jumps the cursor to the first row.
func (t *Table) SelectFirst() {
	if t == nil {
		return
	}
	t.selected = 0
	t.offset = 0
}

// SelectLast jumps the cursor to the last row.
func (t *Table) SelectLast() {
	if t == nil {
		return
	}
	t.selected = len(t.rows) - 1
	t.clamp()
}

// HandleKey processes navigation keys and reports whether it consumed
// the event.
func (t *Table) HandleKey(ev *tcell.EventKey) bool {
	if t == nil || ev == nil {
		return false
	}
	switch ev.Key() {
	case tcell.KeyUp:
		t.MoveSelection(-1)
	case tcell.KeyDown:
		t.MoveSelection(1)
	case tcell.KeyPgUp:
		t.MoveSelection(-t.page())
	case tcell.KeyPgDn:
		t.MoveSelection(t.page())
	case tcell.KeyHome:
		t.SelectFirst()
	case tcell.KeyEnd:
		t.SelectLast()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'k':
			t.MoveSelection(-1)
		case 'j':
			t.MoveSelection(1)
		case 'g':
			t.SelectFirst()
		case 'G':
			t.SelectLast()
		default:
			return false
		}
	default:
		return false
	}
	return true
}

// Draw renders the header and visible rows into the given rect.
func (t *Table) Draw(s tcell.Screen, r Rect) {
	if t == nil || r.Empty() {
		return
	}
	widths := t.widths(r.Width)

	x := r.X
	for i, col := range t.Columns {
		drawPadded(s, x, r.Y, widths[i], col.Title, styleHeader)
		x += widths[i] + 1
	}

	t.height = r.Height - 1
	t.clamp()

	for vis := 0; vis < t.height; vis++ {
		idx := t.offset + vis
		if idx >= len(t.rows) {
			break
		}
		style := styleDefault
		if idx == t.selected {
			style = styleSelected
		}
		y := r.Y + 1 + vis
		x = r.X
		row := t.rows[idx]
		for i, col := range t.Columns {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			cellStyle := style
			if idx != t.selected && col.Style != nil {
				cellStyle = col.Style(cell)
			}
			drawPadded(s, x, y, widths[i], cell, cellStyle)
			x += widths[i] + 1
		}
	}
}

func (t *Table) page() int {
	if t.height > 1 {
		return t.height - 1
	}
	return 10
}

func (t *Table) clamp() {
	if len(t.rows) == 0 {
		t.selected = 0
		t.offset = 0
		return
	}
	if t.selected < 0 {
		t.selected = 0
	}
	if t.selected >= len(t.rows) {
		t.selected = len(t.rows) - 1
	}
	if t.height <= 0 {
		return
	}
	if t.selected < t.offset {
		t.offset = t.selected
	}
	if t.selected >= t.offset+t.height {
		t.offset = t.selected - t.height + 1
	}
	if t.offset < 0 {
		t.offset = 0
	}
}

// widths resolves column widths for the available space: fixed columns
// keep their width, flexible ones split the remainder.
func (t *Table) widths(total int) []int {
	widths := make([]int, len(t.Columns))
	fixed := 0
	flex := 0
	for i, col := range t.Columns {
		if col.Width > 0 {
			widths[i] = col.Width
			fixed += col.Width
		} else {
			flex++
		}
	}
	gaps := len(t.Columns) - 1
	if gaps < 0 {
		gaps = 0
	}
	remain := total - fixed - gaps
	if flex > 0 {
		share := remain / flex
		if share < 1 {
			share = 1
		}
		for i := range widths {
			if widths[i] == 0 {
				widths[i] = share
			}
		}
	}
	return widths
}
