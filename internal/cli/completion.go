package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes one CLI flag for the completion generators.
// Every shell script is derived from the same registry, so a new flag
// only needs one entry here.
type FlagCompletion struct {
	Long      string   // without the leading "--"
	Short     string   // without the leading "-"
	Help      string
	Values    []string // suggestions; nil for booleans
	ValueName string   // zsh message label, e.g. "number"
	IsFile    bool     // complete file paths instead of Values
}

// boundSuggestions are offered for both interval ends.
var boundSuggestions = []string{"1", "15", "100", "1000", "10000"}

var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Short: "V", Help: "Show version information"},
	{Long: "start", Help: "First number of the run", Values: boundSuggestions, ValueName: "number"},
	{Long: "end", Help: "Last number of the run", Values: boundSuggestions, ValueName: "number"},
	{Long: "divisor", Help: "Divisor rule as N=WORD", Values: []string{"3=Fizz", "5=Buzz", "7=Bazz"}, ValueName: "rule"},
	{Long: "prime", Help: "Prime rule word", Values: []string{"Prime"}, ValueName: "word"},
	{Long: "fib", Help: "Fibonacci rule word", Values: []string{"Fib"}, ValueName: "word"},
	{Long: "range", Help: "Range rule as LO-HI=WORD", Values: []string{"10-20=Teen"}, ValueName: "rule"},
	{Long: "timeout", Help: "Maximum execution time", Values: []string{"30s", "1m", "5m", "10m"}, ValueName: "duration"},
	{Long: "quiet", Short: "q", Help: "Quiet mode for scripts"},
	{Long: "verbose", Short: "v", Help: "Enable debug logging"},
	{Long: "no-color", Help: "Disable colored output"},
	{Long: "json", Help: "Emit results as JSON"},
	{Long: "matches", Help: "Show matched rule names"},
	{Long: "grid", Help: "Render the heatmap after the run"},
	{Long: "summary", Help: "Print the run summary"},
	{Long: "output", Short: "o", Help: "Output file path", IsFile: true, ValueName: "file"},
	{Long: "tui", Help: "Launch the interactive studio"},
	{Long: "repl", Help: "Start the interactive prompt"},
	{Long: "serve", Help: "Run the HTTP API server"},
	{Long: "addr", Help: "HTTP listen address", Values: []string{":8080", "localhost:8080"}, ValueName: "address"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish", "powershell"}, ValueName: "shell"},
}

// GenerateCompletion writes the completion script for shell to out.
// Supported shells are bash, zsh, fish and powershell ("ps" also works).
func GenerateCompletion(out io.Writer, shell string) error {
	var script string
	switch shell {
	case "bash":
		script = bashScript()
	case "zsh":
		script = zshScript()
	case "fish":
		script = fishScript()
	case "powershell", "ps":
		script = powerShellScript()
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion %s generation failed: %w", shell, err)
	}
	return nil
}

// spellings returns every way the flag can appear on the command line.
func (f FlagCompletion) spellings() []string {
	var s []string
	if f.Long != "" {
		s = append(s, "--"+f.Long)
	}
	if f.Short != "" {
		s = append(s, "-"+f.Short)
	}
	return s
}

func bashScript() string {
	var opts []string
	for _, f := range flagRegistry {
		opts = append(opts, f.spellings()...)
	}

	// One case arm per flag that completes something after itself.
	var arms strings.Builder
	for _, f := range flagRegistry {
		var action string
		switch {
		case f.IsFile:
			action = `COMPREPLY=( $(compgen -f -- "${cur}") )`
		case len(f.Values) > 0:
			action = fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.Values, " "))
		default:
			continue
		}
		fmt.Fprintf(&arms, "        %s)\n            %s\n            return 0\n            ;;\n",
			strings.Join(f.spellings(), "|"), action)
	}

	return fmt.Sprintf(`# Bash completion script for fizzlab
# Add this to your ~/.bashrc or ~/.bash_completion

_fizzlab_completions() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    # Main options
    opts="%s"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _fizzlab_completions fizzlab
`, strings.Join(opts, " "), arms.String())
}

func zshScript() string {
	specs := make([]string, 0, len(flagRegistry))
	for _, f := range flagRegistry {
		specs = append(specs, "        "+zshSpec(f))
	}

	return fmt.Sprintf(`#compdef fizzlab

# Zsh completion script for fizzlab
# Add this to your ~/.zshrc or place in $fpath

_fizzlab() {
    _arguments -s \
%s
}

_fizzlab "$@"
`, strings.Join(specs, " \\\n"))
}

// zshSpec renders one flag in _arguments notation.
func zshSpec(f FlagCompletion) string {
	var value string
	switch {
	case f.IsFile:
		value = fmt.Sprintf(":%s:_files", f.ValueName)
	case len(f.Values) > 0:
		value = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	case f.ValueName != "":
		value = fmt.Sprintf(":%s:", f.ValueName)
	}

	if f.Long != "" && f.Short != "" {
		return fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'[%s]%s'",
			f.Short, f.Long, f.Short, f.Long, f.Help, value)
	}
	if f.Long != "" {
		return fmt.Sprintf("'--%s[%s]%s'", f.Long, f.Help, value)
	}
	return fmt.Sprintf("'-%s[%s]%s'", f.Short, f.Help, value)
}

func fishScript() string {
	groups := []struct {
		comment string
		names   []string
	}{
		{"# Help and version", []string{"help", "version"}},
		{"# Interval", []string{"start", "end", "timeout"}},
		{"# Rules", []string{"divisor", "prime", "fib", "range"}},
		{"# Output options", []string{"quiet", "verbose", "no-color", "json", "matches", "grid", "summary", "output"}},
		{"# Modes", []string{"tui", "repl", "serve", "addr"}},
		{"# Completion", []string{"completion"}},
	}

	var b strings.Builder
	b.WriteString("# Fish completion script for fizzlab\n")
	b.WriteString("# Add this to ~/.config/fish/completions/fizzlab.fish\n\n")
	b.WriteString("# Disable file completion by default\n")
	b.WriteString("complete -c fizzlab -f\n\n")

	for _, g := range groups {
		b.WriteString(g.comment)
		b.WriteByte('\n')
		for _, name := range g.names {
			if f, ok := lookupFlag(name); ok {
				b.WriteString(fishLine(f))
				b.WriteByte('\n')
			}
		}
		b.WriteByte('\n')
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func lookupFlag(long string) (FlagCompletion, bool) {
	for _, f := range flagRegistry {
		if f.Long == long {
			return f, true
		}
	}
	return FlagCompletion{}, false
}

// fishLine renders one flag as a fish complete command.
func fishLine(f FlagCompletion) string {
	var b strings.Builder
	b.WriteString("complete -c fizzlab")
	if f.Short != "" {
		fmt.Fprintf(&b, " -s %s", f.Short)
	}
	if f.Long != "" {
		fmt.Fprintf(&b, " -l %s", f.Long)
	}
	fmt.Fprintf(&b, " -d '%s'", f.Help)

	switch {
	case f.IsFile:
		b.WriteString(" -rF")
	case len(f.Values) > 0:
		fmt.Fprintf(&b, " -xa '%s'", strings.Join(f.Values, " "))
	case f.ValueName != "":
		b.WriteString(" -x")
	}
	return b.String()
}

func powerShellScript() string {
	var options []string
	for _, f := range flagRegistry {
		for _, spelling := range f.spellings() {
			options = append(options, fmt.Sprintf(
				"        @{Name = '%s'; Description = '%s' }", spelling, f.Help))
		}
	}

	var arms []string
	for _, f := range flagRegistry {
		if f.IsFile || len(f.Values) == 0 {
			continue
		}
		quoted := make([]string, len(f.Values))
		for i, v := range f.Values {
			quoted[i] = "'" + v + "'"
		}
		arms = append(arms, fmt.Sprintf(`        '--%s' {
            @(%s) | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }`, f.Long, strings.Join(quoted, ", ")))
	}

	return fmt.Sprintf(`# PowerShell completion script for fizzlab
# Add this to your $PROFILE

Register-ArgumentCompleter -CommandName 'fizzlab' -Native -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $options = @(
%s
    )

    $elements = $commandAst.CommandElements
    $lastElement = if ($elements.Count -gt 1) { $elements[-1].ToString() } else { '' }
    $prevElement = if ($elements.Count -gt 2) { $elements[-2].ToString() } else { '' }

    # Context-aware completions
    switch ($prevElement) {
%s
    }

    # Default: show options
    $options | Where-Object { $_.Name -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Description)
    }
}
`, strings.Join(options, "\n"), strings.Join(arms, "\n"))
}
