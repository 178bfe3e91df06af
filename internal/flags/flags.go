// Package flags defines canonical CLI flag names shared across the CLI
// commands. Keeping these as constants avoids drift between Cobra flag
// wiring and any other code path that needs to reference a flag by name.
package flags

// IMPORTANT: these are flag *names* without leading dashes.
const (
	// Target
	FlagFile = "file"
	FlagCwd  = "cwd"

	// Output
	FlagPrefix        = "prefix"
	FlagStyle         = "style"
	FlagConsoleFormat = "console-format"
	FlagNoConsole     = "no-console"
	FlagOnlyOnFailure = "only-on-failure"
	FlagEventLog      = "event-log"

	// Runtime
	FlagConcurrency = "concurrency"
	FlagVerbose     = "verbose"
)
