// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayResultsWithConfig], [DisplayProgress].
//
//   - Print* functions write fixed informational sections to an [io.Writer].
//     Examples: [PrintExecutionConfig], [PrintRuleTable].
//
//   - Write* functions serialize data to a writer or the filesystem.
//     They handle file creation, directory setup, and error handling.
//     Examples: [WriteResultsToFile], [WriteResultsJSON].

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/jmorneau/fizzlab/internal/config"
	"github.com/jmorneau/fizzlab/internal/fizzbuzz"
	"github.com/jmorneau/fizzlab/internal/orchestration"
	"github.com/jmorneau/fizzlab/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save results (empty for no file output).
	OutputFile string
	// Quiet mode reduces output to bare text lines.
	Quiet bool
	// JSON serializes results as a JSON document instead of plain lines.
	JSON bool
	// Start and End describe the evaluated interval, for the file header.
	Start, End int
	// RuleCount is the number of active rules, for the file header.
	RuleCount int
}

// NewOutputConfig derives the output settings for a run from the parsed
// application configuration.
func NewOutputConfig(cfg config.AppConfig, ruleCount int) OutputConfig {
	return OutputConfig{
		OutputFile: cfg.OutputFile,
		Quiet:      cfg.Quiet,
		JSON:       cfg.JSON,
		Start:      cfg.Start,
		End:        cfg.End,
		RuleCount:  ruleCount,
	}
}

// resultDTO is the JSON shape of one evaluated number.
type resultDTO struct {
	Number  int      `json:"number"`
	Text    string   `json:"text"`
	Type    string   `json:"type"`
	Matches []string `json:"matches,omitempty"`
}

// resultsDocument is the JSON shape of a whole run.
type resultsDocument struct {
	Results []resultDTO `json:"results"`
}

// WriteResultsJSON serializes the results as an indented JSON document.
//
// Parameters:
//   - w: The destination writer.
//   - results: The evaluated numbers in run order.
//
// Returns:
//   - error: An error if encoding fails.
func WriteResultsJSON(w io.Writer, results []fizzbuzz.Result) error {
	doc := resultsDocument{Results: make([]resultDTO, 0, len(results))}
	for _, r := range results {
		dto := resultDTO{Number: r.Number, Text: r.Text, Type: string(r.Type)}
		for _, b := range r.Matched {
			dto.Matches = append(dto.Matches, b.Name)
		}
		doc.Results = append(doc.Results, dto)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	return nil
}

// WriteResultsToFile writes a run's results to a file. Plain output carries a
// comment header describing the run; JSON output is the same document
// WriteResultsJSON produces.
//
// Parameters:
//   - results: The evaluated numbers in run order.
//   - cfg: Output configuration.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteResultsToFile(results []fizzbuzz.Result, cfg OutputConfig) error {
	if cfg.OutputFile == "" {
		return nil
	}

	// Ensure directory exists
	dir := filepath.Dir(cfg.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(cfg.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if cfg.JSON {
		return WriteResultsJSON(file, results)
	}

	// Write header
	fmt.Fprintf(file, "# fizzlab results\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Range: %d..%d\n", cfg.Start, cfg.End)
	fmt.Fprintf(file, "# Rules: %d\n", cfg.RuleCount)
	fmt.Fprintf(file, "\n")

	for _, r := range results {
		fmt.Fprintf(file, "%4d: %s\n", r.Number, r.Text)
	}

	return nil
}

// DisplayResultsWithConfig presents a run on out and optionally saves it.
// This is the unified function that handles all output modes: JSON goes to
// out when no file is configured, the presenter handles the terminal lines
// otherwise, and a configured file always receives the serialized run.
//
// Parameters:
//   - out: The output writer.
//   - results: The evaluated numbers in run order.
//   - presenter: The presenter for terminal lines.
//   - opts: Presentation options for the terminal lines.
//   - cfg: Output configuration.
//
// Returns:
//   - error: An error if file output fails.
func DisplayResultsWithConfig(out io.Writer, results []fizzbuzz.Result, presenter orchestration.ResultPresenter, opts orchestration.PresentationOptions, cfg OutputConfig) error {
	if cfg.JSON && cfg.OutputFile == "" {
		if err := WriteResultsJSON(out, results); err != nil {
			return err
		}
	} else {
		presenter.PresentResults(results, opts, out)
	}

	// Save to file if requested
	if cfg.OutputFile != "" {
		if err := WriteResultsToFile(results, cfg); err != nil {
			return err
		}
		if !cfg.Quiet {
			fmt.Fprintf(out, "\n%s✓ Results saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), cfg.OutputFile, ui.ColorReset())
		}
	}

	return nil
}
