package app

import (
	"fmt"
	"io"
	"runtime"
)

// Version is the application version. Overridden at release time via
// -ldflags "-X github.com/jmorneau/fizzlab/internal/app.Version=...".
var Version = "dev"

// HasVersionFlag reports whether the arguments request the version banner.
// Checked before flag parsing so --version works regardless of the other
// flags on the line.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--version" || arg == "-version" {
			return true
		}
	}
	return false
}

// PrintVersion writes the version banner.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "fizzlab %s (%s %s/%s)\n", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
