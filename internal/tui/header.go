package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmorneau/fizzlab/internal/format"
)

// HeaderModel renders the studio's top bar: the product name, the release
// version when one is set, and how long the session has been open.
type HeaderModel struct {
	startTime time.Time
	version   string
	width     int
}

// NewHeaderModel creates a header whose session clock starts now.
func NewHeaderModel(version string) HeaderModel {
	return HeaderModel{startTime: time.Now(), version: version}
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// View renders the bar, padding the gap so the border spans the full width.
func (h HeaderModel) View() string {
	name := "FizzLab Studio"
	if h.version != "" && h.version != "dev" {
		name += " " + h.version
	}

	left := titleStyle.Render(name) +
		versionStyle.Render(" | ") +
		elapsedStyle.Render("Elapsed: "+format.FormatExecutionDuration(time.Since(h.startTime)))

	// Two columns go to the side borders.
	gap := max(h.width-2-lipgloss.Width(left), 0)
	return headerStyle.Width(h.width).Render(left + strings.Repeat(" ", gap))
}
