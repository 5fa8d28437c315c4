package cli

import (
	"fmt"
	"io"
	"runtime"
	"strconv"

	"github.com/jmorneau/fizzlab/internal/config"
	"github.com/jmorneau/fizzlab/internal/fizzbuzz"
	"github.com/jmorneau/fizzlab/internal/format"
	"github.com/jmorneau/fizzlab/internal/ui"
)

// PrintExecutionConfig displays the current run configuration to the user.
// It shows the interval, timeout, and environment details.
//
// Parameters:
//   - cfg: The application configuration.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Evaluating %s%d..%d%s (%s numbers) with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), cfg.Start, cfg.End, ui.ColorReset(),
		format.FormatNumberString(strconv.Itoa(cfg.Span())),
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
}

// PrintRuleTable lists the active rules in evaluation order: position, color
// swatch, name, condition and word. Uses manual padding to correctly handle
// ANSI color codes.
//
// Parameters:
//   - blocks: The rule set to list (any order; sorted for display).
//   - colors: Hex colors keyed by block ID; missing entries render no swatch.
//   - out: The writer for standard output.
func PrintRuleTable(blocks []fizzbuzz.Block, colors map[string]string, out io.Writer) {
	ordered := fizzbuzz.SortBlocks(blocks)
	if len(ordered) == 0 {
		fmt.Fprintf(out, "No rules configured.\n")
		return
	}

	maxNameLen := 4 // "Rule" header length
	maxCondLen := 9 // "Condition" header length
	for _, b := range ordered {
		if len(b.Name) > maxNameLen {
			maxNameLen = len(b.Name)
		}
		if b.Cond != nil && len(b.Cond.Describe()) > maxCondLen {
			maxCondLen = len(b.Cond.Describe())
		}
	}

	// Four spaces after the position header cover the swatch column.
	fmt.Fprintf(out, "\n %s#%s    %sRule%s%s   %sCondition%s%s   %sWord%s\n",
		ui.ColorUnderline(), ui.ColorReset(),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxNameLen-4),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxCondLen-9),
		ui.ColorUnderline(), ui.ColorReset())

	for i, b := range ordered {
		swatch := "  "
		if ansi := ui.HexForeground(colors[b.ID]); ansi != "" {
			swatch = ansi + "██" + ui.ColorReset()
		}
		desc := ""
		if b.Cond != nil {
			desc = b.Cond.Describe()
		}
		fmt.Fprintf(out, "%2d %s %s%s%s%s   %s%s   %s%s%s\n",
			i+1, swatch,
			ui.ColorBlue(), b.Name, ui.ColorReset(), padRight("", maxNameLen-len(b.Name)),
			desc, padRight("", maxCondLen-len(desc)),
			ui.ColorGreen(), b.Word, ui.ColorReset())
	}
	fmt.Fprintln(out)
}
