package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nur-run/nur/internal/driver"
	"github.com/nur-run/nur/internal/flags"
	"github.com/nur-run/nur/internal/nurfile"
)

var runCmd = &cobra.Command{
	Use:   "run [task...]",
	Short: "Run one or more tasks (and everything they depend on)",
	Long: `Run loads the task file, validates the dependency graph for the
requested tasks (or the default task, if none are named), and runs it.

A Ctrl-C during a run sends SIGINT to the running commands of every
cancellable task and stops spawning new ones; already-finished tasks are
unaffected.

Exit codes:
	0 = every task ran to completion
	1 = a task failed, the task file is invalid, or the run could not start`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg.Target.Roots = args

		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		file, err := nurfile.Load(cfg.Target.File)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		manager, err := driver.SetupOutputManager(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = manager.Close() }()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		runErr := driver.Run(ctx, cfg, file, manager)
		if runErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		}
		os.Exit(driver.ExitCode(runErr))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&cfg.Output.Prefix, flags.FlagPrefix, cfg.Output.Prefix, "Line prefix style: none|always|aligned")
	runCmd.Flags().StringVar(&cfg.Output.Style, flags.FlagStyle, cfg.Output.Style, "Output composition style: streamed|grouped")
	runCmd.Flags().StringVar(&cfg.Output.ConsoleFormat, flags.FlagConsoleFormat, cfg.Output.ConsoleFormat, "Console output format: text|ndjson")
	runCmd.Flags().BoolVar(&cfg.Output.NoConsole, flags.FlagNoConsole, false, "Suppress console output (use with --event-log)")
	runCmd.Flags().BoolVar(&cfg.Output.OnlyOnFailure, flags.FlagOnlyOnFailure, false, "Grouped style: discard a task's buffered output once it is known to have succeeded")
	runCmd.Flags().StringVar(&cfg.Output.EventLog, flags.FlagEventLog, "", "Write an NDJSON event stream to this path in addition to the console")
	runCmd.Flags().IntVar(&cfg.Runtime.Concurrency, flags.FlagConcurrency, cfg.Runtime.Concurrency, "Maximum tasks with a command in flight at once (0 = unbounded)")
}
