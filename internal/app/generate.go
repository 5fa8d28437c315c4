package app

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/jmorneau/fizzlab/internal/cli"
	apperrors "github.com/jmorneau/fizzlab/internal/errors"
	"github.com/jmorneau/fizzlab/internal/orchestration"
)

// runGenerate orchestrates the one-shot batch command: validate the
// interval, evaluate the rule set over it and present the results.
func (a *Application) runGenerate(ctx context.Context, out io.Writer) int {
	if err := a.Config.Validate(); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	ws, err := a.buildWorkspace()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	blocks := ws.Blocks()
	colors := ws.Colors()

	// The batch runs under both the configured deadline and Ctrl-C.
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintRuleTable(blocks, colors, out)
	}

	// Quiet mode drops the preamble above and the spinner below.
	var progressReporter orchestration.ProgressReporter
	progressOut := out
	if a.Config.Quiet {
		progressOut = io.Discard
		progressReporter = orchestration.NullProgressReporter{}
	} else {
		progressReporter = cli.CLIProgressReporter{}
	}

	res := orchestration.ExecuteBatch(ctx, a.Config.Start, a.Config.End, blocks, progressReporter, progressOut)
	if res.Err != nil {
		return apperrors.HandleRunError(res.Err, res.Duration, a.ErrWriter, cli.CLIColorProvider{})
	}

	presenter := cli.CLIResultPresenter{Blocks: blocks, Colors: colors}
	opts := orchestration.PresentationOptions{
		Quiet:       a.Config.Quiet,
		Verbose:     a.Config.Verbose,
		ShowMatches: a.Config.ShowMatches,
		Colors:      !a.Config.NoColor,
	}
	outputCfg := cli.NewOutputConfig(a.Config, len(blocks))

	if err := cli.DisplayResultsWithConfig(out, res.Results, presenter, opts, outputCfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error writing results: %v\n", err)
		return apperrors.ExitErrorGeneric
	}

	if a.Config.Grid && !a.Config.Quiet {
		cli.RenderGrid(res.Results, blocks, colors, out)
	}
	if a.Config.Summary && !a.Config.Quiet {
		presenter.PresentSummary(orchestration.Summarize(res.Results, res.Duration), out)
	}

	return apperrors.ExitSuccess
}
