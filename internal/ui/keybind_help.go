package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

func newHelpModel() help.Model {
	m := help.New()
	m.Styles.ShortKey = Styles.Key
	m.Styles.ShortDesc = Styles.Muted
	m.Styles.ShortSeparator = Styles.Muted
	return m
}

func bindings(hints []Hint) []key.Binding {
	out := make([]key.Binding, 0, len(hints)+1)
	for _, h := range hints {
		out = append(out, key.NewBinding(key.WithKeys(h.Key), key.WithHelp(h.Key, h.Desc)))
	}
	return out
}

// RenderKeybindHelp renders the help bar. Outside leader mode it lists the
// direct keys plus SPC; after SPC it lists the next level in a box.
func RenderKeybindHelp(h *KeyHandler) string {
	if h == nil {
		return ""
	}
	hm := newHelpModel()
	if !h.LeaderWaiting {
		b := bindings(h.Registry.DirectHints())
		b = append(b, key.NewBinding(key.WithKeys(" "), key.WithHelp("SPC", "operations")))
		return hm.ShortHelpView(b)
	}

	hints := h.Registry.LeaderHints(h.CurrentSeq())
	if len(hints) == 0 {
		return ""
	}
	b := bindings(hints)
	b = append(b, key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")))

	content := Styles.Muted.Render(h.CurrentSeq()) + " " + hm.ShortHelpView(b)
	return Styles.HelpBox.Render(content)
}

// helpHeight is the number of lines RenderKeybindHelp can take in leader
// mode (border and margin included).
var helpHeight = lipgloss.Height(Styles.HelpBox.Render("x"))
