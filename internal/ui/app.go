package ui

import (
	"fmt"
	"log/slog"
	"strings"

	"rowbench/internal/rowstore"
	"rowbench/internal/script"

	tea "github.com/charmbracelet/bubbletea"
)

// Store is what the app needs from the row store: the scripted operations
// plus read access for rendering.
type Store interface {
	script.Target
	Rows() []*rowstore.Row
	Len() int
	Selected() (rowstore.ID, bool)
}

// headerHeight is the title line plus the status line.
const headerHeight = 2

// AppModel is the root model. It applies operations to Store and refreshes
// the table after each one.
type AppModel struct {
	Store      Store
	Table      *TableView
	KeyHandler *KeyHandler
	Log        *slog.Logger

	lastOp  string
	lastErr error
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// NewAppModel creates the root model around store with the default keys.
func NewAppModel(store Store, log *slog.Logger) *AppModel {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	a := &AppModel{
		Store:      store,
		Table:      NewTableView(20),
		KeyHandler: NewKeyHandler(DefaultKeybinds()),
		Log:        log,
	}
	a.refresh()
	return a
}

// DefaultKeybinds returns the benchmark key layout.
func DefaultKeybinds() *KeybindRegistry {
	reg := NewKeybindRegistry()
	reg.BindWithDesc("q", tea.Quit, "quit")
	reg.Bind("ctrl+c", tea.Quit)
	reg.BindWithDesc("enter", cursorCmd(script.OpSelect), "select")
	reg.BindWithDesc("d", cursorCmd(script.OpDelete), "delete")
	reg.BindWithDesc("x", cursorCmd(script.OpDeleteIndex), "delete at")

	reg.BindWithDesc("SPC r", opCmd(script.Step{Op: script.OpCreate, Count: rowstore.DefaultCount}), "create 1,000")
	reg.BindWithDesc("SPC R", opCmd(script.Step{Op: script.OpRunLots, Count: rowstore.DefaultLargeCount}), "create 10,000")
	reg.BindWithDesc("SPC a", opCmd(script.Step{Op: script.OpAppend, Count: rowstore.DefaultCount}), "append 1,000")
	reg.BindWithDesc("SPC u", opCmd(script.Step{Op: script.OpUpdate, Stride: rowstore.DefaultStride}), "update every 10th")
	reg.BindWithDesc("SPC c", opCmd(script.Step{Op: script.OpClear}), "clear")
	reg.BindWithDesc("SPC s", opCmd(script.Step{Op: script.OpSwap, N: script.DefaultSwapN, M: script.DefaultSwapM}), "swap rows")
	reg.BindWithDesc("SPC q", tea.Quit, "quit")
	return reg
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (a *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: a}
}

// Apply runs one step against the store and refreshes the table.
func (a *AppModel) Apply(st script.Step) {
	a.lastOp, a.lastErr = st.String(), st.Apply(a.Store)
	if a.lastErr != nil {
		a.Log.Warn("operation failed", "op", a.lastOp, "err", a.lastErr)
	} else {
		a.Log.Debug("operation applied", "op", a.lastOp, "rows", a.Store.Len())
	}
	a.refresh()
}

// applyAtCursor resolves op against the cursor row. It is a no-op on an
// empty table.
func (a *AppModel) applyAtCursor(op script.Op) {
	r := a.Table.CursorRow()
	if r == nil {
		return
	}
	st := script.Step{Op: op}
	switch op {
	case script.OpSelect, script.OpDelete:
		st.ID = r.ID
	case script.OpDeleteIndex:
		st.Index = a.Table.Cursor()
	}
	a.Apply(st)
}

func (a *AppModel) refresh() {
	a.Table.SetRows(a.Store.Rows())
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	return a.Table.Init()
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case OpMsg:
		a.Apply(msg.Step)
		return a, nil
	case CursorOpMsg:
		a.applyAtCursor(msg.Op)
		return a, nil
	case tea.WindowSizeMsg:
		a.Table.SetSize(msg.Width, msg.Height-headerHeight-helpHeight)
		return a, nil
	case tea.KeyMsg:
		if consumed, cmd := a.KeyHandler.Handle(msg); consumed {
			return a, cmd
		}
	}
	v, cmd := a.Table.Update(msg)
	if t, ok := v.(*TableView); ok {
		a.Table = t
	}
	return a, cmd
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	var b strings.Builder
	b.WriteString(Styles.Title.Render("rowbench"))
	b.WriteString("\n")
	b.WriteString(a.statusLine())
	b.WriteString("\n")
	b.WriteString(a.Table.View())
	b.WriteString("\n")
	b.WriteString(RenderKeybindHelp(a.KeyHandler))
	return b.String()
}

func (a *AppModel) statusLine() string {
	sel := "none"
	if id, ok := a.Store.Selected(); ok {
		sel = fmt.Sprint(id)
	}
	s := Styles.Status.Render(fmt.Sprintf("%d rows  selected: %s", a.Store.Len(), sel))
	if a.lastOp != "" {
		s += Styles.Muted.Render("  last: " + a.lastOp)
	}
	if a.lastErr != nil {
		s += "  " + Styles.Error.Render(a.lastErr.Error())
	}
	return s
}
