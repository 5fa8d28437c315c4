package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jmorneau/fizzlab/internal/ui"
)

// Studio styles, filled in by initTUIStyles. They are package variables
// rather than constants because cycling the theme rebuilds them in place.
var (
	panelStyle         lipgloss.Style
	panelFocusedStyle  lipgloss.Style
	panelTitleStyle    lipgloss.Style
	headerStyle        lipgloss.Style
	titleStyle         lipgloss.Style
	versionStyle       lipgloss.Style
	elapsedStyle       lipgloss.Style
	cursorStyle        lipgloss.Style
	rowStyle           lipgloss.Style
	rowSelectedStyle   lipgloss.Style
	dimStyle           lipgloss.Style
	errorStyle         lipgloss.Style
	formBoxStyle       lipgloss.Style
	formTitleStyle     lipgloss.Style
	formLabelStyle     lipgloss.Style
	formKindStyle      lipgloss.Style
	formHintStyle      lipgloss.Style
	metricLabelStyle   lipgloss.Style
	metricValueStyle   lipgloss.Style
	statusIdleStyle    lipgloss.Style
	statusRunningStyle lipgloss.Style
	statusPausedStyle  lipgloss.Style
	statusDoneStyle    lipgloss.Style
	statusErrorStyle   lipgloss.Style
	cpuSparklineStyle  lipgloss.Style
	memSparklineStyle  lipgloss.Style
	overlayStyle       lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all studio styles from the current ui theme.
// Called at package init, from Run() after InitTheme has been invoked,
// and again whenever the theme key cycles the active theme.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text)

	panelFocusedStyle = panelStyle.
		BorderForeground(t.Accent)

	panelTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	versionStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	elapsedStyle = lipgloss.NewStyle().
		Foreground(t.Accent)

	cursorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	rowStyle = lipgloss.NewStyle().
		Foreground(t.Text)

	rowSelectedStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	dimStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	errorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Error)

	formBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(t.Accent).
		Padding(1, 2)

	formTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	formLabelStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	formKindStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Info)

	formHintStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	metricLabelStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	metricValueStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	statusIdleStyle = lipgloss.NewStyle().
		Foreground(t.Dim).
		Bold(true)

	statusRunningStyle = lipgloss.NewStyle().
		Foreground(t.Success).
		Bold(true)

	statusPausedStyle = lipgloss.NewStyle().
		Foreground(t.Warning).
		Bold(true)

	statusDoneStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	statusErrorStyle = lipgloss.NewStyle().
		Foreground(t.Error).
		Bold(true)

	cpuSparklineStyle = lipgloss.NewStyle().
		Foreground(t.Accent)

	memSparklineStyle = lipgloss.NewStyle().
		Foreground(t.Warning)

	overlayStyle = lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(t.Accent).
		Padding(1, 2).
		Align(lipgloss.Left)
}

// hexStyle returns a style with the given "#RRGGBB" foreground, or an
// unstyled value when the colorless theme is active so swatches and
// result lines degrade to plain text.
func hexStyle(hex string) lipgloss.Style {
	if ui.GetCurrentTheme().Name == "none" {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}
