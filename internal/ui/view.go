package ui

import tea "github.com/charmbracelet/bubbletea"

// View is a screen region with its own Init/Update/View cycle.
type View interface {
	Init() tea.Cmd
	Update(tea.Msg) (View, tea.Cmd)
	View() string
}
