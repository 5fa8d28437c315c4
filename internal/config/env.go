package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// envOverride binds one FIZZLAB_ environment variable to the flag names it
// mirrors. The variable applies only when none of those flags were given,
// keeping the priority CLI flags > environment > defaults.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string)
}

var envOverrides = []envOverride{
	{"START", []string{"start"}, func(c *AppConfig, v string) { c.Start = atoiOr(v, c.Start) }},
	{"END", []string{"end"}, func(c *AppConfig, v string) { c.End = atoiOr(v, c.End) }},
	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) { c.Timeout = durationOr(v, c.Timeout) }},
	{"OUTPUT", []string{"output", "o"}, func(c *AppConfig, v string) { c.OutputFile = v }},
	{"ADDR", []string{"addr"}, func(c *AppConfig, v string) { c.Addr = v }},
	{"QUIET", []string{"quiet", "q"}, func(c *AppConfig, v string) { c.Quiet = boolOr(v, c.Quiet) }},
	{"VERBOSE", []string{"v", "verbose"}, func(c *AppConfig, v string) { c.Verbose = boolOr(v, c.Verbose) }},
	{"NO_COLOR", []string{"no-color"}, func(c *AppConfig, v string) { c.NoColor = boolOr(v, c.NoColor) }},
	{"JSON", []string{"json"}, func(c *AppConfig, v string) { c.JSON = boolOr(v, c.JSON) }},
}

// applyEnvOverrides fills in configuration from the environment for every
// flag the command line left untouched.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if anyFlagSet(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
}

// anyFlagSet reports whether at least one of the named flags appeared on
// the command line. Aliased flags pass both spellings.
func anyFlagSet(fs *flag.FlagSet, names ...string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		for _, name := range names {
			if f.Name == name {
				set = true
			}
		}
	})
	return set
}

// atoiOr parses v as an int, keeping def when it does not parse.
func atoiOr(v string, def int) int {
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return def
}

// durationOr parses v as a duration ("90s", "1h30m"), keeping def when it
// does not parse.
func durationOr(v string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	return def
}

// boolOr reads "true"/"1"/"yes" and "false"/"0"/"no" case-insensitively,
// keeping def for anything else.
func boolOr(v string, def bool) bool {
	switch strings.ToLower(v) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return def
}
