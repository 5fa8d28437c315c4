package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	apperrors "github.com/jmorneau/fizzlab/internal/errors"
	"github.com/jmorneau/fizzlab/internal/logging"
)

func TestNew_ParsesFlags(t *testing.T) {
	var errBuf bytes.Buffer
	a, err := New([]string{"fizzlab", "--start", "5", "--end", "50", "--divisor", "7=Pop"}, &errBuf)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if a.Config.Start != 5 || a.Config.End != 50 {
		t.Errorf("expected interval 5..50, got %d..%d", a.Config.Start, a.Config.End)
	}
	if len(a.Config.Blocks) != 1 {
		t.Errorf("expected 1 rule, got %d", len(a.Config.Blocks))
	}
}

func TestNew_HelpFlag(t *testing.T) {
	var errBuf bytes.Buffer
	_, err := New([]string{"fizzlab", "--help"}, &errBuf)
	if err == nil {
		t.Fatal("expected an error for --help")
	}
	if !IsHelpError(err) {
		t.Errorf("expected a help error, got %v", err)
	}
}

func TestNew_UnknownFlag(t *testing.T) {
	var errBuf bytes.Buffer
	_, err := New([]string{"fizzlab", "--bogus"}, &errBuf)
	if err == nil {
		t.Fatal("expected an error for an unknown flag")
	}
	if IsHelpError(err) {
		t.Error("expected a config error, not a help error")
	}
}

func TestHasVersionFlag(t *testing.T) {
	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"--version"}, true},
		{[]string{"-version"}, true},
		{[]string{"--end", "50", "--version"}, true},
		{[]string{"--end", "50"}, false},
		{nil, false},
	}

	for _, tt := range tests {
		if got := HasVersionFlag(tt.args); got != tt.want {
			t.Errorf("HasVersionFlag(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func TestPrintVersion(t *testing.T) {
	var out bytes.Buffer
	PrintVersion(&out)
	if !strings.Contains(out.String(), "fizzlab") {
		t.Errorf("expected program name in banner, got %q", out.String())
	}
}

func TestRun_Completion(t *testing.T) {
	a, err := New([]string{"fizzlab", "--completion", "bash"}, io.Discard)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	var out bytes.Buffer
	code := a.Run(context.Background(), &out)
	if code != apperrors.ExitSuccess {
		t.Fatalf("expected success, got exit code %d", code)
	}
	if !strings.Contains(out.String(), "fizzlab") {
		t.Error("expected completion script for fizzlab")
	}
}

func TestRun_Completion_UnknownShell(t *testing.T) {
	a, err := New([]string{"fizzlab", "--completion", "tcsh"}, io.Discard)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	code := a.Run(context.Background(), io.Discard)
	if code != apperrors.ExitErrorConfig {
		t.Errorf("expected config error exit code, got %d", code)
	}
}

func TestRun_Generate_QuietClassic(t *testing.T) {
	a, err := New([]string{"fizzlab", "--quiet", "--end", "15"}, io.Discard)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	var out bytes.Buffer
	code := a.Run(context.Background(), &out)
	if code != apperrors.ExitSuccess {
		t.Fatalf("expected success, got exit code %d", code)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 15 {
		t.Fatalf("expected 15 lines, got %d", len(lines))
	}
	if lines[0] != "1" || lines[2] != "Fizz" || lines[4] != "Buzz" || lines[14] != "FizzBuzz" {
		t.Errorf("unexpected classic output: %v", lines)
	}
}

func TestRun_Generate_QuietCustomRules(t *testing.T) {
	a, err := New([]string{"fizzlab", "--quiet", "--divisor", "2=Even", "--end", "4"}, io.Discard)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	var out bytes.Buffer
	code := a.Run(context.Background(), &out)
	if code != apperrors.ExitSuccess {
		t.Fatalf("expected success, got exit code %d", code)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	want := []string{"1", "Even", "3", "Even"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(lines))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestRun_Generate_JSON(t *testing.T) {
	a, err := New([]string{"fizzlab", "--quiet", "--json", "--end", "5"}, io.Discard)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	var out bytes.Buffer
	code := a.Run(context.Background(), &out)
	if code != apperrors.ExitSuccess {
		t.Fatalf("expected success, got exit code %d", code)
	}

	var doc struct {
		Results []struct {
			Number int    `json:"number"`
			Text   string `json:"text"`
			Type   string `json:"type"`
		} `json:"results"`
	}
	if err := json.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatalf("expected valid JSON, got %v: %s", err, out.String())
	}
	if len(doc.Results) != 5 {
		t.Fatalf("expected 5 results, got %d", len(doc.Results))
	}
	if doc.Results[2].Text != "Fizz" || doc.Results[2].Type != "Fizz" {
		t.Errorf("unexpected result for 3: %+v", doc.Results[2])
	}
}

func TestRun_Generate_InvalidInterval(t *testing.T) {
	a, err := New([]string{"fizzlab", "--start", "0"}, io.Discard)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	var errBuf bytes.Buffer
	a.ErrWriter = &errBuf
	code := a.Run(context.Background(), io.Discard)
	if code != apperrors.ExitErrorConfig {
		t.Errorf("expected config error exit code, got %d", code)
	}
	if !strings.Contains(errBuf.String(), "start") {
		t.Errorf("expected validation message, got %q", errBuf.String())
	}
}

func TestRun_Generate_FullOutput(t *testing.T) {
	a, err := New([]string{"fizzlab", "--end", "15", "--no-color", "--grid"}, io.Discard)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	var out bytes.Buffer
	code := a.Run(context.Background(), &out)
	if code != apperrors.ExitSuccess {
		t.Fatalf("expected success, got exit code %d", code)
	}

	text := out.String()
	for _, want := range []string{
		"--- Execution Configuration ---",
		"Condition",
		"  15: FizzBuzz",
		"--- Run Summary ---",
		"Evaluated 15 numbers",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
}

func TestNew_WithLogger(t *testing.T) {
	var logBuf bytes.Buffer
	logger := logging.NewLogger(&logBuf, "test")

	a, err := New([]string{"fizzlab"}, io.Discard, WithLogger(logger))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if a.Logger != logger {
		t.Error("expected the option to install the logger")
	}
}

func TestBuildWorkspace_Defaults(t *testing.T) {
	a := &Application{ErrWriter: io.Discard}
	ws, err := a.buildWorkspace()
	if err != nil {
		t.Fatalf("buildWorkspace() error: %v", err)
	}
	if ws.Len() != 2 {
		t.Errorf("expected the classic preset, got %d rules", ws.Len())
	}
	if !ws.HasFizzAndBuzz() {
		t.Error("expected Fizz and Buzz rules")
	}
}
