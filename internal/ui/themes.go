package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a named set of ANSI escape sequences. An empty sequence renders
// as plain text, so NoColorTheme works with the same code paths as the
// colored themes.
type Theme struct {
	Name string

	Primary   string // main accent
	Secondary string // de-emphasized elements
	Success   string
	Warning   string
	Error     string
	Info      string

	Bold      string
	Underline string
	Reset     string
}

var (
	// DarkTheme uses bright 256-color values that read well on dark
	// backgrounds. It is the default.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   "\033[38;5;39m",  // bright blue (39)
		Secondary: "\033[38;5;245m", // grey (245)
		Success:   "\033[38;5;82m",  // bright green (82)
		Warning:   "\033[38;5;220m", // yellow (220)
		Error:     "\033[38;5;196m", // red (196)
		Info:      "\033[38;5;141m", // purple (141)
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// LightTheme darkens every slot for white or light backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   "\033[38;5;27m",  // dark blue (27)
		Secondary: "\033[38;5;240m", // dark grey (240)
		Success:   "\033[38;5;28m",  // dark green (28)
		Warning:   "\033[38;5;130m", // orange (130)
		Error:     "\033[38;5;124m", // dark red (124)
		Info:      "\033[38;5;54m",  // dark purple (54)
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// StudioTheme leans violet to match the block palette the grid and the
	// studio views use (FizzBuzz purple, Fizz blue).
	StudioTheme = Theme{
		Name:      "studio",
		Primary:   "\033[38;5;135m", // violet (135)
		Secondary: "\033[38;5;245m", // grey (245)
		Success:   "\033[38;5;82m",  // bright green (82)
		Warning:   "\033[38;5;220m", // yellow (220)
		Error:     "\033[38;5;196m", // red (196)
		Info:      "\033[38;5;75m",  // light blue (75)
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// NoColorTheme leaves every sequence empty.
	NoColorTheme = Theme{Name: "none"}

	themesByName = map[string]Theme{
		"dark":   DarkTheme,
		"light":  LightTheme,
		"studio": StudioTheme,
		"none":   NoColorTheme,
	}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// TUITheme maps the same palette slots onto lipgloss colors for the studio
// dashboard, usable with Style.Foreground and Style.Background.
type TUITheme struct {
	Bg      lipgloss.TerminalColor
	Text    lipgloss.TerminalColor
	Border  lipgloss.TerminalColor
	Accent  lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Warning lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Dim     lipgloss.TerminalColor
	Info    lipgloss.TerminalColor
}

var (
	// StudioTUITheme carries the block palette into the studio: purple
	// borders, Fizz-blue accents, Buzz-red errors, the results gray for
	// text and the neutral gray for dimmed elements.
	StudioTUITheme = TUITheme{
		Bg:      lipgloss.Color("#000000"),
		Text:    lipgloss.Color(HexNumber),
		Border:  lipgloss.Color(HexFizzBuzz),
		Accent:  lipgloss.Color(HexFizz),
		Success: lipgloss.Color("#82E0AA"),
		Warning: lipgloss.Color("#F8C471"),
		Error:   lipgloss.Color(HexBuzz),
		Dim:     lipgloss.Color(HexNeutral),
		Info:    lipgloss.Color("#4ECDC4"),
	}

	// NoColorTUITheme renders everything in the terminal's default colors.
	NoColorTUITheme = TUITheme{
		Bg: lipgloss.NoColor{}, Text: lipgloss.NoColor{}, Border: lipgloss.NoColor{},
		Accent: lipgloss.NoColor{}, Success: lipgloss.NoColor{}, Warning: lipgloss.NoColor{},
		Error: lipgloss.NoColor{}, Dim: lipgloss.NoColor{}, Info: lipgloss.NoColor{},
	}
)

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// GetCurrentTUITheme returns the lipgloss palette matching the active
// theme: NoColorTUITheme when colors are off, StudioTUITheme otherwise.
func GetCurrentTUITheme() TUITheme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	if currentTheme.Name == "none" {
		return NoColorTUITheme
	}
	return StudioTUITheme
}

// SetTheme activates the theme with the given name. Unknown names fall
// back to dark.
func SetTheme(name string) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	t, ok := themesByName[name]
	if !ok {
		t = DarkTheme
	}
	currentTheme = t
}

// InitTheme picks the startup theme. Colors are disabled when the flag
// asks for it or when NO_COLOR is present in the environment, whatever
// its value (https://no-color.org/).
func InitTheme(noColor bool) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	if _, envSet := os.LookupEnv("NO_COLOR"); noColor || envSet {
		currentTheme = NoColorTheme
		return
	}
	currentTheme = DarkTheme
}
