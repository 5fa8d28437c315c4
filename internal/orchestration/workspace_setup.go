package orchestration

import (
	"github.com/jmorneau/fizzlab/internal/config"
	"github.com/jmorneau/fizzlab/internal/workspace"
)

// BuildWorkspace assembles the rule set a run should evaluate. Rules
// given on the command line are loaded in appearance order; when none
// were given, the classic Fizz/Buzz preset is used.
//
// Parameters:
//   - cfg: The application configuration carrying any parsed rule flags.
//
// Returns:
//   - *workspace.Workspace: The rule set with identities and colors assigned.
func BuildWorkspace(cfg config.AppConfig) (*workspace.Workspace, error) {
	if len(cfg.Blocks) == 0 {
		return workspace.NewWithDefaults(), nil
	}
	ws := workspace.New()
	for _, b := range cfg.Blocks {
		if _, err := ws.Append(b); err != nil {
			return nil, err
		}
	}
	return ws, nil
}

// OptionsFromConfig derives presentation options from the configuration.
func OptionsFromConfig(cfg config.AppConfig) PresentationOptions {
	return PresentationOptions{
		Quiet:       cfg.Quiet,
		Verbose:     cfg.Verbose,
		ShowMatches: cfg.ShowMatches,
		Colors:      !cfg.NoColor,
	}
}
