package ui

import (
	"rowbench/internal/script"

	tea "github.com/charmbracelet/bubbletea"
)

// OpMsg asks the app to apply a fully specified store operation.
type OpMsg struct {
	Step script.Step
}

// CursorOpMsg asks the app to apply Op to the row under the cursor:
// select and delete use its id, delete-index its position.
type CursorOpMsg struct {
	Op script.Op
}

func opCmd(st script.Step) tea.Cmd {
	return func() tea.Msg { return OpMsg{Step: st} }
}

func cursorCmd(op script.Op) tea.Cmd {
	return func() tea.Msg { return CursorOpMsg{Op: op} }
}
