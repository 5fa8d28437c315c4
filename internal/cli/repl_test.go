package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/jmorneau/fizzlab/internal/ui"
	"github.com/jmorneau/fizzlab/internal/workspace"
)

// runREPLSession feeds a scripted command sequence to a fresh editor over
// the default Fizz/Buzz workspace and returns everything it printed.
func runREPLSession(t *testing.T, input string) string {
	t.Helper()
	ui.SetTheme("none")
	t.Cleanup(func() { ui.SetTheme("dark") })

	swapSpinner(t, &recordingSpinner{})

	r := NewREPL(workspace.NewWithDefaults(), REPLConfig{Start: 1, End: 15, Timeout: time.Minute})
	r.SetInput(strings.NewReader(input))
	var buf bytes.Buffer
	r.SetOutput(&buf)
	r.Start()
	return buf.String()
}

func TestREPLSession(t *testing.T) {
	output := runREPLSession(t, "list\nadd divisor 7 Bazz\nlist\n7\nrun 1 15\nquit\n")

	for _, want := range []string{
		"Interactive Rule Editor",
		"fizz> ",
		"Added rule Bazz (divisible by 7).",
		"7: Bazz (Bazz)",
		"  15: FizzBuzz",
		"--- Run Summary ---",
		"Goodbye!",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("session output missing %q:\n%s", want, output)
		}
	}
}

func TestREPLUnknownCommand(t *testing.T) {
	output := runREPLSession(t, "wibble\nquit\n")

	if !strings.Contains(output, "Unknown command: wibble") {
		t.Errorf("expected unknown command message, got:\n%s", output)
	}
}

func TestREPLGoodbyeOnEOF(t *testing.T) {
	output := runREPLSession(t, "")

	if !strings.Contains(output, "Goodbye!") {
		t.Errorf("EOF should end the session cleanly, got:\n%s", output)
	}
}

func TestREPLEditRules(t *testing.T) {
	output := runREPLSession(t, "del 1\nclear\nlist\nquit\n")

	for _, want := range []string{
		"Removed rule Fizz.",
		"All rules removed.",
		"No rules configured.",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("session output missing %q:\n%s", want, output)
		}
	}
}

func TestREPLMoveReordersRules(t *testing.T) {
	output := runREPLSession(t, "move 1 down\nlist\nquit\n")

	// After the swap, Buzz is listed before Fizz.
	listStart := strings.LastIndex(output, "Condition")
	if listStart == -1 {
		t.Fatalf("expected a rule table in:\n%s", output)
	}
	tail := output[listStart:]
	buzzIdx := strings.Index(tail, "Buzz")
	fizzIdx := strings.Index(tail, "Fizz")
	if buzzIdx == -1 || fizzIdx == -1 || buzzIdx > fizzIdx {
		t.Errorf("expected Buzz before Fizz after the move:\n%s", output)
	}
}

func TestREPLAddUsageErrors(t *testing.T) {
	output := runREPLSession(t, "add divisor x Bazz\nadd wibble Foo\nadd\nquit\n")

	if !strings.Contains(output, "Invalid divisor: x") {
		t.Errorf("expected invalid divisor message, got:\n%s", output)
	}
	if strings.Count(output, "Usage: add divisor N WORD") < 2 {
		t.Errorf("expected usage lines for malformed add commands, got:\n%s", output)
	}
}

func TestREPLRangeCommand(t *testing.T) {
	output := runREPLSession(t, "range 5 50\nrange 9 2\nquit\n")

	if !strings.Contains(output, "Interval set to 5..50.") {
		t.Errorf("expected interval confirmation, got:\n%s", output)
	}
	if !strings.Contains(output, "Invalid interval") {
		t.Errorf("expected rejection of a reversed interval, got:\n%s", output)
	}
}

func TestREPLGridCommand(t *testing.T) {
	output := runREPLSession(t, "grid\nquit\n")

	if !strings.Contains(output, "--- Heatmap (4x4) ---") {
		t.Errorf("expected a 4x4 heatmap for 15 numbers, got:\n%s", output)
	}
	if !strings.Contains(output, "FizzBuzz") {
		t.Errorf("expected the FizzBuzz legend entry, got:\n%s", output)
	}
}

func TestREPLShowCommand(t *testing.T) {
	output := runREPLSession(t, "show 1\nshow 99\nquit\n")

	for _, want := range []string{
		"Rule details:",
		"Name:      Fizz",
		"Condition: divisible by 3",
		"No rule matches \"99\"",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("session output missing %q:\n%s", want, output)
		}
	}
}

func TestREPLProbeWithoutMatch(t *testing.T) {
	output := runREPLSession(t, "clear\n4\nquit\n")

	if !strings.Contains(output, "4: no rule matches") {
		t.Errorf("expected a no-match probe line, got:\n%s", output)
	}
}
