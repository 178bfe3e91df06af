package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nur-run/nur/internal/config"
	"github.com/nur-run/nur/internal/flags"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

var cfg = config.New()

var rootCmd = &cobra.Command{
	Use:   "nur",
	Short: "Run project tasks declared in a task file, respecting their dependencies",
	Long: `nur runs the tasks declared in a task file, honoring each task's
dependencies and streaming every task's output to the console as it runs.

nur does not build, lint, or test anything itself: it only sequences and
parallelizes whatever shell commands the task file names.

Examples:
	# Show available commands and global flags
	nur --help

	# Run the default task (and everything it depends on)
	nur run

	# Run a specific task
	nur run build

	# List the tasks declared in the task file
	nur list

	# Validate the task file without running anything
	nur check

	# Write a starter task file
	nur init

	# Print build info
	nur version`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfg.Target.File, flags.FlagFile, cfg.Target.File, "Path to the task file")
	rootCmd.PersistentFlags().StringVar(&cfg.Target.Cwd, flags.FlagCwd, "", "Working directory for spawned commands (default: current directory)")
	rootCmd.PersistentFlags().BoolVar(&cfg.Runtime.Verbose, flags.FlagVerbose, false, "Accepted, but has no effect on output")
}

func SetBuildInfo(version, commit, date string) {
	if version != "" {
		buildVersion = version
	}
	if commit != "" {
		buildCommit = commit
	}
	if date != "" {
		buildDate = date
	}

	rootCmd.Version = fmt.Sprintf("%s (%s) %s", buildVersion, buildCommit, buildDate)
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func BuildInfo() (version, commit, date string) {
	return buildVersion, buildCommit, buildDate
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
