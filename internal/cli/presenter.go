package cli

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"

	apperrors "github.com/jmorneau/fizzlab/internal/errors"
	"github.com/jmorneau/fizzlab/internal/fizzbuzz"
	"github.com/jmorneau/fizzlab/internal/format"
	"github.com/jmorneau/fizzlab/internal/grid"
	"github.com/jmorneau/fizzlab/internal/orchestration"
	"github.com/jmorneau/fizzlab/internal/progress"
	"github.com/jmorneau/fizzlab/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter for CLI output.
// It wraps the DisplayProgress function to provide a spinner and progress bar
// display during batch runs.
type CLIProgressReporter struct{}

// Verify that CLIProgressReporter implements orchestration.ProgressReporter.
var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner and progress bar for the running batch.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, out io.Writer) {
	DisplayProgress(wg, progressChan, out)
}

// CLIResultPresenter implements orchestration.ResultPresenter for CLI output.
// Blocks and Colors feed the per-outcome line colors; both may be left empty,
// in which case only the fixed Fizz/Buzz/FizzBuzz hues apply.
type CLIResultPresenter struct {
	Blocks []fizzbuzz.Block
	Colors map[string]string
}

// Verify interface compliance.
var _ orchestration.ResultPresenter = CLIResultPresenter{}

// PresentResults writes one line per evaluated number. Quiet mode prints the
// bare result text only, suitable for scripting; otherwise lines carry a
// fixed-width number column and are colorized by outcome, with matched rule
// names appended when requested.
func (p CLIResultPresenter) PresentResults(results []fizzbuzz.Result, opts orchestration.PresentationOptions, out io.Writer) {
	if opts.Quiet {
		for _, r := range results {
			fmt.Fprintln(out, r.Text)
		}
		return
	}

	for _, r := range results {
		line := fmt.Sprintf("%4d: %s", r.Number, r.Text)
		if opts.Colors {
			if ansi := ui.HexForeground(grid.ColorForResult(r.Type, p.Blocks, p.Colors)); ansi != "" {
				line = fmt.Sprintf("%4d: %s%s%s", r.Number, ansi, r.Text, ui.ColorReset())
			}
		}
		if opts.ShowMatches && len(r.Matched) > 0 {
			line += "  (" + matchNames(r.Matched) + ")"
		}
		fmt.Fprintln(out, line)
	}
}

// matchNames joins matched rule names, eliding past MatchPreviewLimit.
func matchNames(matched []fizzbuzz.Block) string {
	names := make([]string, 0, len(matched))
	for i, b := range matched {
		if i == MatchPreviewLimit {
			names = append(names, fmt.Sprintf("+%d more", len(matched)-MatchPreviewLimit))
			break
		}
		names = append(names, b.Name)
	}
	return strings.Join(names, ", ")
}

// PresentSummary displays the run totals, duration and match rate, followed
// by a per-outcome count table. Uses manual padding to correctly handle ANSI
// color codes.
func (CLIResultPresenter) PresentSummary(sum orchestration.Summary, out io.Writer) {
	fmt.Fprintf(out, "\n--- Run Summary ---\n")
	fmt.Fprintf(out, "Evaluated %s%s%s numbers in %s%s%s.\n",
		ui.ColorMagenta(), format.FormatNumberString(strconv.Itoa(sum.Total)), ui.ColorReset(),
		ui.ColorYellow(), format.FormatExecutionDuration(sum.Duration), ui.ColorReset())
	fmt.Fprintf(out, "Matched %s%s%s of them (%s%.1f%%%s).\n",
		ui.ColorGreen(), format.FormatNumberString(strconv.Itoa(sum.Matched)), ui.ColorReset(),
		ui.ColorGreen(), sum.MatchedPercent(), ui.ColorReset())

	if len(sum.Counts) == 0 {
		return
	}

	type row struct {
		name  string
		count int
	}
	rows := make([]row, 0, len(sum.Counts))
	maxNameLen := 7 // "Outcome" header length
	for t, c := range sum.Counts {
		rows = append(rows, row{name: string(t), count: c})
		if len(string(t)) > maxNameLen {
			maxNameLen = len(string(t))
		}
	}
	// Largest bucket first; ties resolve alphabetically for stable output.
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].count != rows[j].count {
			return rows[i].count > rows[j].count
		}
		return rows[i].name < rows[j].name
	})

	fmt.Fprintf(out, "\n%sOutcome%s%s   %sCount%s\n",
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxNameLen-7),
		ui.ColorUnderline(), ui.ColorReset())
	for _, r := range rows {
		fmt.Fprintf(out, "%s%s%s%s   %s\n",
			ui.ColorBlue(), r.name, ui.ColorReset(), padRight("", maxNameLen-len(r.name)),
			format.FormatNumberString(strconv.Itoa(r.count)))
	}
}

// padRight returns a string of spaces with the given length.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// CLIColorProvider adapts the active ui theme to the error handler's
// ColorProvider interface.
type CLIColorProvider struct{}

// Verify that CLIColorProvider implements apperrors.ColorProvider.
var _ apperrors.ColorProvider = CLIColorProvider{}

// Red returns the theme's error color.
func (CLIColorProvider) Red() string { return ui.ColorRed() }

// Yellow returns the theme's warning color.
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }

// Cyan returns the theme's hint color.
func (CLIColorProvider) Cyan() string { return ui.ColorCyan() }

// Reset returns the sequence that clears all formatting.
func (CLIColorProvider) Reset() string { return ui.ColorReset() }
