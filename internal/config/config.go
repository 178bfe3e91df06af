package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nur-run/nur/internal/nurfile"
)

// Config is the run-time configuration for a single invocation of nur,
// mirroring the teacher's Targeting/Rules/Output/Runtime grouping adapted to
// a local task runner: which tasks to run, where, how much in parallel, and
// how to present the result.
type Config struct {
	Target  Target
	Output  Output
	Runtime Runtime
}

// Target selects what to run and where.
type Target struct {
	// File is the path to the task file to load (see --file).
	File string

	// Roots are the task names requested on the command line (see
	// positional args). Empty means graph.DefaultRoot.
	Roots []string

	// Cwd is the working directory commands are spawned in (see --cwd).
	// Empty means the process's own working directory.
	Cwd string
}

// Output controls how task output is presented and to which sinks.
type Output struct {
	// Prefix selects the line-prefixing style (see --prefix).
	// Allowed values: none, always, aligned.
	Prefix string

	// Style selects how per-task output is composed (see --style).
	// Allowed values: streamed, grouped.
	Style string

	// ConsoleFormat controls the human-facing console sink format (see
	// --console-format). Allowed values: text, ndjson.
	ConsoleFormat string

	// NoConsole suppresses the console sink (see --no-console).
	NoConsole bool

	// OnlyOnFailure, in grouped style, discards a task's buffered output
	// once it is known to have succeeded (see --only-on-failure).
	OnlyOnFailure bool

	// EventLog, if set, writes an NDJSON event stream to this path in
	// addition to the console sink (see --event-log).
	EventLog string
}

// Runtime controls scheduling.
type Runtime struct {
	// Concurrency bounds how many tasks may have a command in flight at
	// once (see --concurrency). 0 means unbounded.
	Concurrency int

	// Verbose is set by --verbose. No code path reads it, so it does not
	// change what nur prints.
	Verbose bool
}

// New returns a Config with nur's defaults filled in.
func New() *Config {
	return &Config{
		Target: Target{
			File: "nurfile.yaml",
		},
		Output: Output{
			Prefix:        "none",
			Style:         "streamed",
			ConsoleFormat: "text",
		},
		Runtime: Runtime{
			Concurrency: 0,
		},
	}
}

// Validate normalizes enum fields and rejects contradictory or out-of-range
// values, in the same defensive, error-returning style as the teacher's
// config.Config.Validate.
func (c *Config) Validate() error {
	if c.Target.File == "" {
		return errors.New("--file must not be empty")
	}

	c.Output.Prefix = normalizeEnumValue(c.Output.Prefix)
	if c.Output.Prefix == "" {
		c.Output.Prefix = "none"
	}
	if c.Output.Prefix != "none" && c.Output.Prefix != "always" && c.Output.Prefix != "aligned" {
		return fmt.Errorf("unsupported --prefix: %s (must be one of: none, always, aligned)", c.Output.Prefix)
	}

	c.Output.Style = normalizeEnumValue(c.Output.Style)
	if c.Output.Style == "" {
		c.Output.Style = "streamed"
	}
	if c.Output.Style != "streamed" && c.Output.Style != "grouped" {
		return fmt.Errorf("unsupported --style: %s (must be one of: streamed, grouped)", c.Output.Style)
	}

	c.Output.ConsoleFormat = normalizeEnumValue(c.Output.ConsoleFormat)
	if c.Output.ConsoleFormat == "" {
		c.Output.ConsoleFormat = "text"
	}
	if c.Output.ConsoleFormat != "text" && c.Output.ConsoleFormat != "ndjson" {
		return fmt.Errorf("unsupported --console-format: %s (must be one of: text, ndjson)", c.Output.ConsoleFormat)
	}

	if c.Runtime.Concurrency < 0 {
		return errors.New("--concurrency must be >= 0")
	}

	return nil
}

// OutputOptions translates the validated config into the nurfile options the
// multiplexer consumes, starting from file.Options.Output. Prefix and Style
// always come from the config (its defaults when no flag was given), so the
// file's own prefix and style are replaced either way; OnlyOnFailure is set
// when either side sets it, and every other field keeps the file's value.
func (c *Config) OutputOptions(file nurfile.OutputOptions) nurfile.OutputOptions {
	opts := file
	opts.Prefix = prefixStyleFor(c.Output.Prefix)
	opts.Style = outputStyleFor(c.Output.Style)
	opts.Grouped.OnlyOnFailure = opts.Grouped.OnlyOnFailure || c.Output.OnlyOnFailure
	return opts
}

func prefixStyleFor(v string) nurfile.PrefixStyle {
	switch v {
	case "always":
		return nurfile.Always
	case "aligned":
		return nurfile.Aligned
	default:
		return nurfile.NoPrefix
	}
}

func outputStyleFor(v string) nurfile.OutputStyle {
	if v == "grouped" {
		return nurfile.Grouped
	}
	return nurfile.Streamed
}

func normalizeEnumValue(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
