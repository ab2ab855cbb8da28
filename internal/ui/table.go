package ui

import (
	"fmt"
	"io"

	"rowbench/internal/rowstore"
	"rowbench/internal/ui/textutil"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// rowItem implements list.Item for a store row.
type rowItem struct {
	*rowstore.Row
}

func (r rowItem) FilterValue() string { return r.Label }

// rowDelegate renders one row per line: right-aligned id, then label.
// The cursor line is highlighted and bold when the row is selected.
type rowDelegate struct {
	idWidth int
}

func (d rowDelegate) Height() int  { return 1 }
func (d rowDelegate) Spacing() int { return 0 }
func (d rowDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	r, ok := item.(rowItem)
	if !ok {
		return
	}
	id := fmt.Sprintf("%*d", d.idWidth, r.ID)
	text := r.Label
	width := m.Width()
	if width > 0 {
		text = textutil.Truncate(text, width-d.idWidth-2)
	}

	var line string
	switch {
	case index == m.Index() && width > 0:
		line = Styles.Cursor.Bold(r.Selected).Render(textutil.PadRight(id+"  "+text, width))
	case index == m.Index():
		line = Styles.Cursor.Bold(r.Selected).Render(id + "  " + text)
	case r.Selected:
		line = Styles.Muted.Render(id) + "  " + Styles.Selected.Render(text)
	default:
		line = Styles.Muted.Render(id) + "  " + Styles.Normal.Render(text)
	}
	fmt.Fprint(w, line)
}

// TableView lists rows a page at a time around a cursor.
type TableView struct {
	list list.Model
}

// Ensure TableView implements View.
var _ View = (*TableView)(nil)

// NewTableView creates an empty table showing height rows.
func NewTableView(height int) *TableView {
	l := list.New(nil, rowDelegate{idWidth: 1}, 0, max(height, 1))
	l.SetShowTitle(false)
	l.SetShowFilter(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.SetStatusBarItemName("row", "rows")
	return &TableView{list: l}
}

// SetRows replaces the displayed rows, keeping the cursor position when it
// is still in range.
func (t *TableView) SetRows(rows []*rowstore.Row) {
	items := make([]list.Item, len(rows))
	idWidth := 1
	for i, r := range rows {
		items[i] = rowItem{Row: r}
		idWidth = max(idWidth, len(fmt.Sprint(r.ID)))
	}
	t.list.SetDelegate(rowDelegate{idWidth: idWidth})
	t.list.SetItems(items)
	t.Select(t.list.Index())
}

// SetSize sets the visible area.
func (t *TableView) SetSize(width, height int) {
	t.list.SetSize(width, max(height, 1))
}

// Len returns the number of rows shown.
func (t *TableView) Len() int { return len(t.list.Items()) }

// Cursor returns the cursor index; it is meaningless when there are no rows.
func (t *TableView) Cursor() int { return t.list.Index() }

// CursorRow returns the row under the cursor, or nil.
func (t *TableView) CursorRow() *rowstore.Row {
	if r, ok := t.list.SelectedItem().(rowItem); ok {
		return r.Row
	}
	return nil
}

// Select moves the cursor to index, clamped to the table.
func (t *TableView) Select(index int) {
	t.list.Select(max(min(index, t.Len()-1), 0))
}

// MoveCursor moves the cursor by delta rows, clamped to the table.
func (t *TableView) MoveCursor(delta int) {
	t.Select(t.Cursor() + delta)
}

// Init implements View.
func (t *TableView) Init() tea.Cmd { return nil }

// Update implements View.
func (t *TableView) Update(msg tea.Msg) (View, tea.Cmd) {
	// list.Model handles j/k, paging and g/G navigation.
	var cmd tea.Cmd
	t.list, cmd = t.list.Update(msg)
	return t, cmd
}

// View implements View.
func (t *TableView) View() string {
	if t.Len() == 0 {
		return Styles.Empty.Render("no rows (SPC r to create)")
	}
	return t.list.View()
}
