package ui

import "github.com/charmbracelet/lipgloss"

// Theme colors used throughout the UI
const (
	ColorAccent    = "86"  // titles, status
	ColorHighlight = "205" // selected row, keys
	ColorDanger    = "196" // errors
	ColorMuted     = "241" // hints, ids
	ColorText      = "252"
)

// Styles contains the shared style definitions.
var Styles = struct {
	Title    lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
	Muted    lipgloss.Style
	Normal   lipgloss.Style
	Selected lipgloss.Style // row whose selected flag is set
	Cursor   lipgloss.Style // row under the cursor
	Key      lipgloss.Style
	Empty    lipgloss.Style
	HelpBox  lipgloss.Style
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	Status: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)),
	Error: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDanger)),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	Selected: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorHighlight)),
	Cursor: lipgloss.NewStyle().
		Reverse(true),
	Key: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorHighlight)),
	Empty: lipgloss.NewStyle().
		Italic(true).
		Foreground(lipgloss.Color(ColorMuted)),
	HelpBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccent)).
		Padding(0, 1),
}
