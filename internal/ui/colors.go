package ui

// ansiCyan has no slot in the Theme struct; it is shared by all colored
// themes and suppressed only when colors are off.
const ansiCyan = "\033[38;5;51m"

// ColorReset returns the escape code that clears all formatting.
func ColorReset() string { return GetCurrentTheme().Reset }

// ColorRed returns the active theme's error color.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorGreen returns the active theme's success color.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow returns the active theme's warning color.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorBlue returns the active theme's primary accent color.
func ColorBlue() string { return GetCurrentTheme().Primary }

// ColorMagenta returns the active theme's info color.
func ColorMagenta() string { return GetCurrentTheme().Info }

// ColorCyan returns a bright cyan, or nothing when colors are disabled.
func ColorCyan() string {
	if GetCurrentTheme().Reset == "" {
		return ""
	}
	return ansiCyan
}

// ColorBold returns the escape code for bold text.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorUnderline returns the escape code for underlined text.
func ColorUnderline() string { return GetCurrentTheme().Underline }
