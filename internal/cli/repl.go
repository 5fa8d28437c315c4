// Package cli provides the terminal front end: batch presentation, progress
// display, the interactive rule editor and shell completion generation.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jmorneau/fizzlab/internal/fizzbuzz"
	"github.com/jmorneau/fizzlab/internal/orchestration"
	"github.com/jmorneau/fizzlab/internal/ui"
	"github.com/jmorneau/fizzlab/internal/workspace"
)

// REPLConfig holds configuration for the interactive session.
type REPLConfig struct {
	// Start is the default lower bound for run commands.
	Start int
	// End is the default upper bound for run commands.
	End int
	// Timeout is the maximum duration for each run.
	Timeout time.Duration
}

// REPL is an interactive editor over a rule workspace. Commands mutate the
// workspace; run commands evaluate the current rule set over the configured
// interval.
type REPL struct {
	config REPLConfig
	ws     *workspace.Workspace
	in     io.Reader
	out    io.Writer
}

// NewREPL creates a new interactive session over ws.
//
// Parameters:
//   - ws: The workspace holding the editable rule set.
//   - config: Session configuration.
//
// Returns:
//   - *REPL: A new session instance.
func NewREPL(ws *workspace.Workspace, config REPLConfig) *REPL {
	return &REPL{
		config: config,
		ws:     ws,
		in:     os.Stdin,
		out:    os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start begins the interactive session.
// It continuously reads user input and processes commands until
// the user exits or EOF is reached.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)

	for {
		fmt.Fprint(r.out, ui.ColorGreen()+"fizz> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if !r.processCommand(input) {
			return // Exit command received
		}
	}
}

// printBanner displays the session welcome banner.
func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s       %s⚡ FizzLab - Interactive Rule Editor%s               %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

// printHelp displays available commands.
func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %slist%s                  - List the active rules\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sadd divisor N WORD%s    - Add a divisor rule\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sadd prime WORD%s        - Add a prime rule\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sadd fib WORD%s          - Add a fibonacci rule\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sadd range LO HI WORD%s  - Add a range rule\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sdel <#>%s               - Remove a rule\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %smove <#> up|down%s      - Reorder a rule\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sclear%s                 - Remove every rule\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %srange LO HI%s           - Set the default interval\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %srun [LO HI]%s           - Evaluate the interval\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sgrid%s                  - Render the heatmap\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sshow <#>%s              - Inspect one rule\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s                  - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s           - Leave the editor\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "A bare number evaluates it against the current rules.\n")
}

// processCommand parses and executes a user command.
// Returns false if the session should exit.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "list", "ls":
		r.cmdList()
	case "add", "a":
		r.cmdAdd(args)
	case "del", "rm":
		r.cmdDel(args)
	case "move", "mv":
		r.cmdMove(args)
	case "clear":
		r.cmdClear()
	case "range":
		r.cmdRange(args)
	case "run", "r":
		r.cmdRun(args)
	case "grid", "g":
		r.cmdGrid()
	case "show":
		r.cmdShow(args)
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		// Try to interpret as a number for a quick probe
		if n, err := strconv.Atoi(cmd); err == nil {
			r.probe(n)
		} else {
			fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
			fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
		}
	}

	return true
}

// resolveBlock maps a user argument to a stored block. It accepts the
// 1-based position shown by list, or an ID prefix.
func (r *REPL) resolveBlock(arg string) (fizzbuzz.Block, bool) {
	ordered := r.ws.Blocks()
	if idx, err := strconv.Atoi(arg); err == nil {
		if idx >= 1 && idx <= len(ordered) {
			return ordered[idx-1], true
		}
		return fizzbuzz.Block{}, false
	}
	for _, b := range ordered {
		if strings.HasPrefix(b.ID, arg) {
			return b, true
		}
	}
	return fizzbuzz.Block{}, false
}

// cmdList handles the "list" command.
func (r *REPL) cmdList() {
	PrintRuleTable(r.ws.Blocks(), r.ws.Colors(), r.out)
}

// cmdAdd handles the "add" command.
func (r *REPL) cmdAdd(args []string) {
	if len(args) < 2 {
		r.printAddUsage()
		return
	}

	var b fizzbuzz.Block
	switch strings.ToLower(args[0]) {
	case "divisor", "div":
		if len(args) != 3 {
			r.printAddUsage()
			return
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Fprintf(r.out, "%sInvalid divisor: %s%s\n", ui.ColorRed(), args[1], ui.ColorReset())
			return
		}
		b = fizzbuzz.NewDivisorBlock(args[2], args[2], n, 0)
	case "prime":
		b = fizzbuzz.NewPrimeBlock(args[1], args[1], 0)
	case "fib", "fibonacci":
		b = fizzbuzz.NewFibonacciBlock(args[1], args[1], 0)
	case "range":
		if len(args) != 4 {
			r.printAddUsage()
			return
		}
		lo, err1 := strconv.Atoi(args[1])
		hi, err2 := strconv.Atoi(args[2])
		if err1 != nil || err2 != nil {
			fmt.Fprintf(r.out, "%sInvalid bounds: %s %s%s\n", ui.ColorRed(), args[1], args[2], ui.ColorReset())
			return
		}
		b = fizzbuzz.NewRangeBlock(args[3], args[3], lo, hi, 0)
	default:
		r.printAddUsage()
		return
	}

	stored, err := r.ws.Append(b)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	fmt.Fprintf(r.out, "Added rule %s%s%s (%s).\n",
		ui.ColorGreen(), stored.Name, ui.ColorReset(), stored.Cond.Describe())
}

// printAddUsage shows the accepted add command forms.
func (r *REPL) printAddUsage() {
	fmt.Fprintf(r.out, "%sUsage: add divisor N WORD | add prime WORD | add fib WORD | add range LO HI WORD%s\n",
		ui.ColorRed(), ui.ColorReset())
}

// cmdDel handles the "del" command.
func (r *REPL) cmdDel(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: del <#>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}

	b, ok := r.resolveBlock(args[0])
	if !ok {
		fmt.Fprintf(r.out, "%sNo rule matches %q%s\n", ui.ColorRed(), args[0], ui.ColorReset())
		return
	}
	if err := r.ws.Remove(b.ID); err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	fmt.Fprintf(r.out, "Removed rule %s%s%s.\n", ui.ColorGreen(), b.Name, ui.ColorReset())
}

// cmdMove handles the "move" command.
func (r *REPL) cmdMove(args []string) {
	if len(args) != 2 {
		fmt.Fprintf(r.out, "%sUsage: move <#> up|down%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}

	b, ok := r.resolveBlock(args[0])
	if !ok {
		fmt.Fprintf(r.out, "%sNo rule matches %q%s\n", ui.ColorRed(), args[0], ui.ColorReset())
		return
	}

	var err error
	switch strings.ToLower(args[1]) {
	case "up":
		err = r.ws.MoveUp(b.ID)
	case "down":
		err = r.ws.MoveDown(b.ID)
	default:
		fmt.Fprintf(r.out, "%sUsage: move <#> up|down%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	r.cmdList()
}

// cmdClear handles the "clear" command.
func (r *REPL) cmdClear() {
	r.ws.Clear()
	fmt.Fprintf(r.out, "All rules removed.\n")
}

// cmdRange handles the "range" command.
func (r *REPL) cmdRange(args []string) {
	if len(args) != 2 {
		fmt.Fprintf(r.out, "%sUsage: range LO HI%s (current: %d..%d)\n",
			ui.ColorRed(), ui.ColorReset(), r.config.Start, r.config.End)
		return
	}

	lo, err1 := strconv.Atoi(args[0])
	hi, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil || lo < 1 || lo >= hi {
		fmt.Fprintf(r.out, "%sInvalid interval: need 1 <= LO < HI%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}

	r.config.Start, r.config.End = lo, hi
	fmt.Fprintf(r.out, "Interval set to %s%d..%d%s.\n", ui.ColorMagenta(), lo, hi, ui.ColorReset())
}

// cmdRun handles the "run" command.
func (r *REPL) cmdRun(args []string) {
	start, end := r.config.Start, r.config.End
	switch len(args) {
	case 0:
	case 2:
		lo, err1 := strconv.Atoi(args[0])
		hi, err2 := strconv.Atoi(args[1])
		if err1 != nil || err2 != nil {
			fmt.Fprintf(r.out, "%sUsage: run [LO HI]%s\n", ui.ColorRed(), ui.ColorReset())
			return
		}
		start, end = lo, hi
	default:
		fmt.Fprintf(r.out, "%sUsage: run [LO HI]%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}

	res, blocks, ok := r.execute(start, end, CLIProgressReporter{})
	if !ok {
		return
	}

	presenter := CLIResultPresenter{Blocks: blocks, Colors: r.ws.Colors()}
	opts := orchestration.PresentationOptions{Colors: ui.ColorReset() != ""}
	presenter.PresentResults(res.Results, opts, r.out)
	presenter.PresentSummary(orchestration.Summarize(res.Results, res.Duration), r.out)
}

// cmdGrid handles the "grid" command.
func (r *REPL) cmdGrid() {
	res, blocks, ok := r.execute(r.config.Start, r.config.End, orchestration.NullProgressReporter{})
	if !ok {
		return
	}
	RenderGrid(res.Results, blocks, r.ws.Colors(), r.out)
}

// execute runs one batch over the workspace rules, reporting any failure to
// the session output.
func (r *REPL) execute(start, end int, reporter orchestration.ProgressReporter) (orchestration.BatchResult, []fizzbuzz.Block, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()

	blocks := r.ws.Blocks()
	res := orchestration.ExecuteBatch(ctx, start, end, blocks, reporter, r.out)
	if res.Err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), res.Err, ui.ColorReset())
		return orchestration.BatchResult{}, nil, false
	}
	return res, blocks, true
}

// cmdShow handles the "show" command.
func (r *REPL) cmdShow(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: show <#>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}

	b, ok := r.resolveBlock(args[0])
	if !ok {
		fmt.Fprintf(r.out, "%sNo rule matches %q%s\n", ui.ColorRed(), args[0], ui.ColorReset())
		return
	}

	fmt.Fprintf(r.out, "\n%sRule details:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Name:      %s%s%s\n", ui.ColorCyan(), b.Name, ui.ColorReset())
	fmt.Fprintf(r.out, "  Word:      %s%s%s\n", ui.ColorGreen(), b.Word, ui.ColorReset())
	fmt.Fprintf(r.out, "  Condition: %s\n", b.Cond.Describe())
	fmt.Fprintf(r.out, "  Order:     %d\n", b.Order)
	if hex := r.ws.ColorOf(b.ID); hex != "" {
		fmt.Fprintf(r.out, "  Color:     %s██%s %s\n", ui.HexForeground(hex), ui.ColorReset(), hex)
	}
	fmt.Fprintf(r.out, "  ID:        %s\n", b.ID)
	fmt.Fprintln(r.out)
}

// probe evaluates a single number against the current rules.
func (r *REPL) probe(n int) {
	blocks := r.ws.Blocks()
	var fib fizzbuzz.Set
	for _, b := range blocks {
		if b.Kind() == fizzbuzz.KindFibonacci {
			fib = fizzbuzz.FibonacciSet(n)
			break
		}
	}

	res := fizzbuzz.Evaluate(n, blocks, fib)
	if len(res.Matched) == 0 {
		fmt.Fprintf(r.out, "%d: no rule matches\n", n)
		return
	}
	fmt.Fprintf(r.out, "%d: %s%s%s (%s)\n",
		n, ui.ColorGreen(), res.Text, ui.ColorReset(), matchNames(res.Matched))
}
