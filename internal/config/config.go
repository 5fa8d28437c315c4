package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/jmorneau/fizzlab/internal/errors"
	"github.com/jmorneau/fizzlab/internal/fizzbuzz"
)

// EnvPrefix is prepended to every environment variable the application reads.
const EnvPrefix = "FIZZLAB_"

// Defaults applied before flags and environment overrides.
const (
	// DefaultStart is the first number of a run.
	DefaultStart = 1
	// DefaultEnd is the last number of a run.
	DefaultEnd = 100
	// DefaultTimeout bounds a whole run.
	DefaultTimeout = time.Minute
	// DefaultAddr is the HTTP listen address for --serve.
	DefaultAddr = ":8080"
	// MaxSpan caps how many numbers a single run may evaluate.
	MaxSpan = 10_000_000
)

// AppConfig holds the complete runtime configuration, populated from
// command-line flags with environment variable fallbacks
// (priority: CLI flags > FIZZLAB_* environment > defaults).
type AppConfig struct {
	// Start is the first number to evaluate (inclusive).
	Start int
	// End is the last number to evaluate (inclusive).
	End int
	// Blocks are the rules given on the command line, in appearance
	// order. Empty means the caller should fall back to the classic
	// Fizz/Buzz preset.
	Blocks []fizzbuzz.Block
	// Timeout bounds the whole run.
	Timeout time.Duration

	// Quiet reduces output to bare result lines for scripting.
	Quiet bool
	// Verbose enables debug-level logging.
	Verbose bool
	// NoColor disables colored output.
	NoColor bool
	// JSON emits results as a JSON document instead of plain lines.
	JSON bool
	// OutputFile, when set, receives the results instead of stdout.
	OutputFile string
	// ShowMatches appends the matched rule names to every line.
	ShowMatches bool
	// Grid renders the heatmap after the run.
	Grid bool
	// Summary prints the run summary table (on by default).
	Summary bool

	// TUI launches the interactive studio.
	TUI bool
	// REPL starts the interactive prompt.
	REPL bool
	// Serve runs the HTTP API server.
	Serve bool
	// Addr is the HTTP listen address used with Serve.
	Addr string
	// Completion selects a shell to emit a completion script for.
	Completion string
}

// ParseConfig parses command-line arguments into an AppConfig and applies
// environment variable overrides for flags left unset.
//
// Parameters:
//   - programName: The name used in usage output.
//   - args: The arguments to parse, without the program name.
//   - errWriter: Destination for usage and parse error output.
//
// Returns flag.ErrHelp unchanged when --help is requested so callers can
// exit cleanly; any other parse failure is reported as a ConfigError.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	cfg := AppConfig{
		Start:   DefaultStart,
		End:     DefaultEnd,
		Timeout: DefaultTimeout,
		Addr:    DefaultAddr,
		Summary: true,
	}

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)
	fs.Usage = func() { printUsage(fs, programName) }

	fs.IntVar(&cfg.Start, "start", cfg.Start, "first number of the run (inclusive)")
	fs.IntVar(&cfg.End, "end", cfg.End, "last number of the run (inclusive)")
	fs.Var(&blockListFlag{blocks: &cfg.Blocks, parse: parseDivisorFlag}, "divisor",
		"divisor rule as N=WORD, repeatable (e.g. --divisor 3=Fizz)")
	fs.Var(&blockListFlag{blocks: &cfg.Blocks, parse: parsePrimeFlag}, "prime",
		"prime rule word, repeatable (e.g. --prime Prime)")
	fs.Var(&blockListFlag{blocks: &cfg.Blocks, parse: parseFibFlag}, "fib",
		"fibonacci rule word, repeatable (e.g. --fib Fib)")
	fs.Var(&blockListFlag{blocks: &cfg.Blocks, parse: parseRangeFlag}, "range",
		"range rule as LO-HI=WORD, repeatable (e.g. --range 10-20=Teen)")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "maximum duration for the whole run")

	fs.BoolVar(&cfg.Quiet, "quiet", false, "suppress per-number output")
	fs.BoolVar(&cfg.Quiet, "q", false, "shorthand for -quiet")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "enable debug logging")
	fs.BoolVar(&cfg.Verbose, "v", false, "shorthand for -verbose")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "disable colored output")
	fs.BoolVar(&cfg.JSON, "json", false, "emit results as JSON")
	fs.StringVar(&cfg.OutputFile, "output", "", "write results to the given file")
	fs.StringVar(&cfg.OutputFile, "o", "", "shorthand for -output")
	fs.BoolVar(&cfg.ShowMatches, "matches", false, "show matched rule names on every line")
	fs.BoolVar(&cfg.Grid, "grid", false, "render the heatmap after the run")
	fs.BoolVar(&cfg.Summary, "summary", true, "print the run summary")

	fs.BoolVar(&cfg.TUI, "tui", false, "launch the interactive studio")
	fs.BoolVar(&cfg.REPL, "repl", false, "start the interactive prompt")
	fs.BoolVar(&cfg.Serve, "serve", false, "run the HTTP API server")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address for -serve")
	fs.StringVar(&cfg.Completion, "completion", "",
		"generate a shell completion script (bash|zsh|fish|powershell)")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return cfg, err
		}
		return cfg, apperrors.NewConfigError("%v", err)
	}

	applyEnvOverrides(&cfg, fs)
	return cfg, nil
}

// Validate checks the numeric interval and timeout. Rule blocks are
// validated at parse time, so only cross-field constraints remain here.
func (c AppConfig) Validate() error {
	if c.Start < 1 {
		return apperrors.NewValidationError("start", "must be at least 1, got %d", c.Start)
	}
	if c.Start >= c.End {
		return apperrors.NewValidationError("range", "start (%d) must be less than end (%d)", c.Start, c.End)
	}
	if c.Timeout <= 0 {
		return apperrors.NewValidationError("timeout", "must be positive, got %s", c.Timeout)
	}
	if span := c.End - c.Start + 1; span > MaxSpan {
		return apperrors.NewValidationError("range", "span of %d numbers exceeds the maximum of %d", span, MaxSpan)
	}
	return nil
}

// Span returns how many numbers the configured interval covers.
func (c AppConfig) Span() int {
	return c.End - c.Start + 1
}

// blockListFlag collects repeated rule flags into a shared block slice,
// preserving appearance order as evaluation order.
type blockListFlag struct {
	blocks *[]fizzbuzz.Block
	parse  func(raw string, order int) (fizzbuzz.Block, error)
}

func (f *blockListFlag) String() string { return "" }

func (f *blockListFlag) Set(raw string) error {
	b, err := f.parse(raw, len(*f.blocks))
	if err != nil {
		return err
	}
	if err := b.Validate(); err != nil {
		return err
	}
	*f.blocks = append(*f.blocks, b)
	return nil
}

// parseDivisorFlag parses "N=WORD" into a divisor block.
func parseDivisorFlag(raw string, order int) (fizzbuzz.Block, error) {
	lhs, word, ok := strings.Cut(raw, "=")
	if !ok || word == "" {
		return fizzbuzz.Block{}, fmt.Errorf("expected N=WORD, got %q", raw)
	}
	n, err := strconv.Atoi(lhs)
	if err != nil {
		return fizzbuzz.Block{}, fmt.Errorf("divisor %q is not a number", lhs)
	}
	return fizzbuzz.NewDivisorBlock(word, word, n, order), nil
}

// parsePrimeFlag parses a bare word into a prime block.
func parsePrimeFlag(raw string, order int) (fizzbuzz.Block, error) {
	if raw == "" {
		return fizzbuzz.Block{}, fmt.Errorf("expected a word")
	}
	return fizzbuzz.NewPrimeBlock(raw, raw, order), nil
}

// parseFibFlag parses a bare word into a fibonacci block.
func parseFibFlag(raw string, order int) (fizzbuzz.Block, error) {
	if raw == "" {
		return fizzbuzz.Block{}, fmt.Errorf("expected a word")
	}
	return fizzbuzz.NewFibonacciBlock(raw, raw, order), nil
}

// parseRangeFlag parses "LO-HI=WORD" into a range block.
func parseRangeFlag(raw string, order int) (fizzbuzz.Block, error) {
	bounds, word, ok := strings.Cut(raw, "=")
	if !ok || word == "" {
		return fizzbuzz.Block{}, fmt.Errorf("expected LO-HI=WORD, got %q", raw)
	}
	lhs, rhs, ok := strings.Cut(bounds, "-")
	if !ok {
		return fizzbuzz.Block{}, fmt.Errorf("expected LO-HI bounds, got %q", bounds)
	}
	lo, err := strconv.Atoi(lhs)
	if err != nil {
		return fizzbuzz.Block{}, fmt.Errorf("lower bound %q is not a number", lhs)
	}
	hi, err := strconv.Atoi(rhs)
	if err != nil {
		return fizzbuzz.Block{}, fmt.Errorf("upper bound %q is not a number", rhs)
	}
	return fizzbuzz.NewRangeBlock(word, word, lo, hi, order), nil
}

// printUsage writes the grouped usage text for the flag set.
func printUsage(fs *flag.FlagSet, programName string) {
	out := fs.Output()
	fmt.Fprintf(out, "Usage: %s [flags]\n\n", programName)
	fmt.Fprintf(out, "Evaluates a configurable FizzBuzz rule set over an integer interval.\n")
	fmt.Fprintf(out, "Without rule flags the classic pair is used: 3=Fizz, 5=Buzz.\n\n")
	fmt.Fprintf(out, "Flags:\n")
	fs.PrintDefaults()
	fmt.Fprintf(out, "\nEnvironment:\n")
	fmt.Fprintf(out, "  Variables prefixed with %s override flags left unset:\n", EnvPrefix)
	fmt.Fprintf(out, "  START, END, TIMEOUT, QUIET, VERBOSE, NO_COLOR, JSON, OUTPUT, ADDR\n\n")
	fmt.Fprintf(out, "Examples:\n")
	fmt.Fprintf(out, "  %s --end 30\n", programName)
	fmt.Fprintf(out, "  %s --divisor 3=Fizz --divisor 5=Buzz --prime Prime --end 50\n", programName)
	fmt.Fprintf(out, "  %s --range 10-20=Teen --fib Fib --grid\n", programName)
	fmt.Fprintf(out, "  %s --tui\n", programName)
}
