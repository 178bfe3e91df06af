package engine

import (
	"context"

	"golang.org/x/sync/semaphore"

	"github.com/nur-run/nur/internal/nur"
	"github.com/nur-run/nur/internal/nurfile"
	"github.com/nur-run/nur/internal/runner"
	"github.com/nur-run/nur/internal/token"
)

// signal is a task's "dep-done" broadcast: a channel closed exactly once,
// when the owning executor returns, by any outcome. Succeeded is written
// once before the close and is only ever read after observing the channel
// closed, so the close's happens-before edge is what makes the read safe
// without a separate lock.
type signal struct {
	done      chan struct{}
	succeeded bool
}

func newSignal() *signal { return &signal{done: make(chan struct{})} }

// wait blocks until the owning task has finished and reports whether it
// reached RanToCompletion.
func (s *signal) wait() bool {
	<-s.done
	return s.succeeded
}

// close marks the task's outcome and unblocks every waiter. Must be called
// exactly once.
func (s *signal) close(succeeded bool) {
	s.succeeded = succeeded
	close(s.done)
}

// executor drives one plan entry: wait for dependencies, run its commands,
// report the outcome.
type executor struct {
	taskID   int
	name     string
	task     nurfile.Task
	cwd      string
	deps     []*signal // this task's dependencies, in declared order
	mine     *signal   // this task's own completion signal
	cancel   *token.Cancellation
	statusCh chan<- nur.StatusMessage

	// sem, when non-nil, bounds how many tasks may have a command in
	// flight at once. It is acquired only once dependency waiting is done
	// and this task is actually about to spawn, never while blocked on a
	// dependency, so a narrow MaxConcurrency can never deadlock a task
	// against its own upstream.
	sem *semaphore.Weighted
}

// run implements SPEC_FULL.md §4.3. Its return value is nil on success
// (including Skipped/Cancelled, which are not errors) and a
// *nur.TaskFailedError on failure.
func (e *executor) run() (err error) {
	succeeded := false
	defer func() { e.mine.close(succeeded) }()

	for _, dep := range e.deps {
		if !dep.wait() {
			e.emit(nur.TaskStatus{Kind: nur.Finished, Outcome: nur.Outcome{Result: nur.Skipped}})
			return nil
		}
	}

	if e.sem != nil {
		_ = e.sem.Acquire(context.Background(), 1)
		defer e.sem.Release(1)
	}

	e.emit(nur.TaskStatus{Kind: nur.Started})

	sender := runner.ChanSender{TaskID: e.taskID, Ch: e.statusCh}
	result, runErr := runner.Run(e.cwd, e.task.Env, e.task.Cancellable, e.task.Commands, e.cancel, sender)

	outcome := nur.Outcome{Result: result, Err: runErr}
	e.emit(nur.TaskStatus{Kind: nur.Finished, Outcome: outcome})

	if runErr != nil {
		return &nur.TaskFailedError{TaskName: e.name, Err: runErr}
	}
	succeeded = result == nur.RanToCompletion
	return nil
}

func (e *executor) emit(status nur.TaskStatus) {
	e.statusCh <- nur.StatusMessage{TaskID: e.taskID, Status: status}
}
