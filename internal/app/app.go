// Package app wires the parsed configuration to the execution modes:
// one-shot batch generation, the interactive prompt, the full-screen
// studio and the HTTP API server.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/jmorneau/fizzlab/internal/cli"
	"github.com/jmorneau/fizzlab/internal/config"
	apperrors "github.com/jmorneau/fizzlab/internal/errors"
	"github.com/jmorneau/fizzlab/internal/logging"
	"github.com/jmorneau/fizzlab/internal/tui"
	"github.com/jmorneau/fizzlab/internal/ui"
	"github.com/jmorneau/fizzlab/internal/workspace"
)

// Application is one configured invocation of fizzlab.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	Logger    logging.Logger
}

// AppOption customizes an Application beyond what the flags configure.
type AppOption func(*Application)

// WithLogger substitutes the logger used by the server mode, mainly for
// tests that want to capture its output.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New parses the command line into an Application ready to Run. Usage and
// parse errors have already been printed to errWriter when err is non-nil.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}

	programName := "fizzlab"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	app.Config = cfg
	for _, opt := range opts {
		opt(app)
	}
	return app, nil
}

// Run dispatches to whichever mode the flags selected and returns the
// process exit code. Completion runs before logging and theme setup since
// its output is meant to be eval'd by a shell.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	zerolog.SetGlobalLevel(logLevel(a.Config))
	ui.InitTheme(a.Config.NoColor)

	if a.Config.Serve {
		return a.runServe(ctx)
	}
	if a.Config.TUI {
		return a.runTUI(ctx)
	}
	if a.Config.REPL {
		return a.runREPL(out)
	}

	return a.runGenerate(ctx, out)
}

// logLevel maps the verbosity flags onto the global zerolog level.
func logLevel(cfg config.AppConfig) zerolog.Level {
	switch {
	case cfg.Verbose:
		return zerolog.DebugLevel
	case cfg.Quiet:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

// buildWorkspace assembles the editable rule set for this run: the rules
// given on the command line, or the classic Fizz/Buzz preset when none
// were configured.
func (a *Application) buildWorkspace() (*workspace.Workspace, error) {
	if len(a.Config.Blocks) == 0 {
		return workspace.NewWithDefaults(), nil
	}
	ws := workspace.New()
	for _, b := range a.Config.Blocks {
		if _, err := ws.Add(b); err != nil {
			return nil, err
		}
	}
	return ws, nil
}

// runCompletion writes the requested shell's completion script to out.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runTUI launches the interactive studio. The session itself is unbounded;
// the configured timeout applies per batch inside the studio.
func (a *Application) runTUI(ctx context.Context) int {
	ws, err := a.buildWorkspace()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	return tui.Run(ctx, ws, a.Config, Version)
}

// runREPL starts the interactive prompt over the configured rule set.
func (a *Application) runREPL(out io.Writer) int {
	ws, err := a.buildWorkspace()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	repl := cli.NewREPL(ws, cli.REPLConfig{
		Start:   a.Config.Start,
		End:     a.Config.End,
		Timeout: a.Config.Timeout,
	})
	repl.SetOutput(out)
	repl.Start()
	return apperrors.ExitSuccess
}

// IsHelpError reports whether err means --help was requested, which exits
// zero rather than through the error path.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
