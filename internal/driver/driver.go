// Package driver is the top-level run: it validates the dependency graph,
// wires the scheduler to the output multiplexer, and aggregates the result
// into the exit-code-mapping contract cmd/nur surfaces to the shell. It sits
// above internal/nur rather than inside it so the leaf packages (graph,
// engine, output, runner) can each import internal/nur's shared types
// without a cycle back through the driver.
package driver

import (
	"context"
	"os"

	"github.com/nur-run/nur/internal/config"
	"github.com/nur-run/nur/internal/engine"
	"github.com/nur-run/nur/internal/graph"
	"github.com/nur-run/nur/internal/nur"
	"github.com/nur-run/nur/internal/nurfile"
	"github.com/nur-run/nur/internal/output"
	"github.com/nur-run/nur/internal/token"
)

// SetupOutputManager builds the Manager for a run from cfg, following the
// teacher's setupOutputManager: a console sink unless suppressed, plus an
// optional NDJSON event-log sink when --event-log names a file.
func SetupOutputManager(cfg *config.Config) (*output.Manager, error) {
	mgr := output.NewManager()

	if !cfg.Output.NoConsole {
		if err := mgr.AddSink(output.NewConsoleSink(nil, cfg.Output.ConsoleFormat)); err != nil {
			_ = mgr.Close()
			return nil, err
		}
	}

	if cfg.Output.EventLog != "" {
		f, err := os.Create(cfg.Output.EventLog)
		if err != nil {
			_ = mgr.Close()
			return nil, err
		}
		if err := mgr.AddSink(output.NewConsoleSink(f, "ndjson")); err != nil {
			_ = mgr.Close()
			return nil, err
		}
	}

	return mgr, nil
}

// Run builds the execution plan for file and roots, then drives it to
// completion, multiplexing status messages through manager. It returns nil
// on a clean run; the *nur.NoSuchTaskError / *nur.TaskCycleError from
// graph.Build, before anything runs, when the plan is invalid; or the
// aggregated *nur.MultipleError / *nur.TaskFailedError / *nur.InternalError
// otherwise.
//
// ctx's cancellation (e.g. from signal.NotifyContext in cmd/nur) is
// forwarded onto the run's own cancellation token, so Ctrl-C during a run
// has the same effect as a task failure: in-flight children of cancellable
// tasks are sent SIGINT, no new commands are spawned, and Run returns once
// every already running task has drained.
func Run(ctx context.Context, cfg *config.Config, file nurfile.File, manager *output.Manager) error {
	plan, err := graph.Build(file.Tasks, cfg.Target.Roots)
	if err != nil {
		return err
	}

	cancel := token.New()
	stopWatch := make(chan struct{})
	defer close(stopWatch)
	go func() {
		select {
		case <-ctx.Done():
			cancel.Cancel()
		case <-stopWatch:
		}
	}()

	mux := output.NewMultiplexer(cfg.OutputOptions(file.Options.Output), plan, manager)

	sched, err := engine.NewScheduler(file.Tasks, cfg.Target.Cwd, cfg.Runtime.Concurrency)
	if err != nil {
		return &nur.InternalError{Err: err}
	}

	_ = manager.Write(output.RunStartedEvent())
	runErr := sched.Run(ctx, plan, cancel, mux.Consume)
	_ = manager.Write(output.RunFinishedEvent(ExitCode(runErr)))

	return runErr
}

// ExitCode maps a Run result to a process exit code, following the
// teacher's single-function exitCodeForRun contract: everything that isn't
// a clean run maps to 1 (SPEC_FULL.md §6).
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}
