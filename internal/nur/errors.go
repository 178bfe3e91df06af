// Package nur holds the core engine's public data types and error taxonomy.
// It is the "wire" between internal/graph, internal/engine, internal/runner
// and internal/output, kept dependency-free so none of those packages needs
// to import another leaf package's internals.
package nur

import (
	"fmt"
	"strings"
)

// NoSuchTaskError reports that a requested root or a declared dependency is
// not a key of the task map.
type NoSuchTaskError struct {
	TaskName string
}

func (e *NoSuchTaskError) Error() string {
	return fmt.Sprintf("no such task: %q", e.TaskName)
}

// TaskCycleError reports that the dependency graph contains a cycle. Cycle
// is the offending loop as an ordered list of task names.
type TaskCycleError struct {
	Cycle []string
}

func (e *TaskCycleError) Error() string {
	return fmt.Sprintf("dependency cycle detected: %s", strings.Join(e.Cycle, " -> "))
}

// CommandFailedError reports a command that exited non-zero and was not
// marked ignore_result.
type CommandFailedError struct {
	Command    string
	ExitStatus int
}

func (e *CommandFailedError) Error() string {
	return fmt.Sprintf("command %q exited with status %d", e.Command, e.ExitStatus)
}

// ExecutableError reports a failure to spawn the shell itself.
type ExecutableError struct {
	Executable string
	Err        error
}

func (e *ExecutableError) Error() string {
	return fmt.Sprintf("failed to run %s: %v", e.Executable, e.Err)
}

func (e *ExecutableError) Unwrap() error { return e.Err }

// ExecutableWaitError reports a failure while waiting for a spawned shell to
// exit.
type ExecutableWaitError struct {
	Executable string
	Err        error
}

func (e *ExecutableWaitError) Error() string {
	return fmt.Sprintf("failed waiting for %s: %v", e.Executable, e.Err)
}

func (e *ExecutableWaitError) Unwrap() error { return e.Err }

// TaskFailedError wraps the TaskError produced by a specific task with the
// task's name, for presentation and for aggregation in plan order.
type TaskFailedError struct {
	TaskName string
	Err      error
}

func (e *TaskFailedError) Error() string {
	return fmt.Sprintf("task %q failed: %v", e.TaskName, e.Err)
}

func (e *TaskFailedError) Unwrap() error { return e.Err }

// MultipleError wraps more than one task failure, in plan order.
type MultipleError struct {
	Failures []error
}

func (e *MultipleError) Error() string {
	parts := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		parts[i] = f.Error()
	}
	return fmt.Sprintf("%d tasks failed:\n  %s", len(e.Failures), strings.Join(parts, "\n  "))
}

// InternalError wraps an unexpected failure in the engine's own plumbing
// (e.g. a channel operation that should never fail once a run is in
// flight). It signals a bug in the engine, not in the user's task file.
type InternalError struct {
	Err error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error: %v", e.Err)
}

func (e *InternalError) Unwrap() error { return e.Err }
