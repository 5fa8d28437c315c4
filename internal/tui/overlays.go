package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// renderHelpOverlay draws the full key reference centered on the screen.
func (m Model) renderHelpOverlay() string {
	title := formTitleStyle.Render("FizzLab Studio Keys")
	body := m.helpView.FullHelpView(m.keys.FullHelp())
	hint := formHintStyle.Render("press ? or esc to close")

	content := lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", hint)
	overlay := overlayStyle.Render(content)

	return lipgloss.Place(m.layout.width, m.layout.height, lipgloss.Center, lipgloss.Center, overlay)
}

// renderFooter shows the hints for the focused panel.
func (m Model) renderFooter() string {
	var bindings []key.Binding
	if m.focus == SectionBlocks {
		bindings = []key.Binding{
			m.keys.Add, m.keys.Edit, m.keys.Delete,
			m.keys.MoveUp, m.keys.MoveDown, m.keys.Clear,
			m.keys.Run, m.keys.Help, m.keys.Quit,
		}
	} else {
		bindings = []key.Binding{
			m.keys.Up, m.keys.Down, m.keys.PageUp, m.keys.PageDown,
			m.keys.Run, m.keys.Reset, m.keys.Help, m.keys.Quit,
		}
	}
	return " " + m.helpView.ShortHelpView(bindings)
}
