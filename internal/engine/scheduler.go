// Package engine schedules and runs an execution plan: one goroutine per
// plan entry, synchronized purely by per-task completion signals, with
// output multiplexed by a dedicated caller-supplied consumer.
package engine

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/nur-run/nur/internal/graph"
	"github.com/nur-run/nur/internal/nur"
	"github.com/nur-run/nur/internal/nurfile"
	"github.com/nur-run/nur/internal/token"
)

// statusChannelCapacity is the recommended minimum from SPEC_FULL.md §4.2;
// the scheduler also grows it to at least the plan length so a burst of
// Started events from a wide, shallow plan never needs the multiplexer to
// have started draining before every executor can make its first send.
const statusChannelCapacity = 100

// Scheduler runs an execution plan against a task map and a cancellation
// token, multiplexing status messages through a caller-supplied Consume
// function.
type Scheduler struct {
	Tasks map[string]nurfile.Task
	Cwd   string

	// MaxConcurrency, when > 0, bounds how many tasks may have a command
	// in flight at once (SPEC_FULL.md §4.2). Zero means unbounded.
	MaxConcurrency int
}

// NewScheduler validates concurrency and returns a ready Scheduler.
func NewScheduler(tasks map[string]nurfile.Task, cwd string, maxConcurrency int) (*Scheduler, error) {
	if tasks == nil {
		return nil, fmt.Errorf("tasks is nil")
	}
	if maxConcurrency < 0 {
		return nil, fmt.Errorf("max concurrency must be >= 0, got %d", maxConcurrency)
	}
	return &Scheduler{Tasks: tasks, Cwd: cwd, MaxConcurrency: maxConcurrency}, nil
}

// Run executes plan to completion, calling consume once per status message
// on a single goroutine (so the output multiplexer's state machine is never
// interleaved with itself), and returns the aggregated result.
//
// consume is called until every executor has finished and the status
// channel is closed; Run does not return until consume itself returns.
func (s *Scheduler) Run(ctx context.Context, plan graph.Plan, cancel *token.Cancellation, consume func(nur.StatusMessage)) error {
	capacity := statusChannelCapacity
	if len(plan) > capacity {
		capacity = len(plan)
	}
	statusCh := make(chan nur.StatusMessage, capacity)

	signals := make(map[string]*signal, len(plan))
	for _, entry := range plan {
		signals[entry.Name] = newSignal()
	}

	var sem *semaphore.Weighted
	if s.MaxConcurrency > 0 {
		sem = semaphore.NewWeighted(int64(s.MaxConcurrency))
	}

	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		for msg := range statusCh {
			consume(msg)
		}
		return nil
	})

	var wg sync.WaitGroup
	errs := make([]error, len(plan))

	for _, entry := range plan {
		task := s.Tasks[entry.Name]

		deps := make([]*signal, 0, len(task.Dependencies))
		for _, dep := range task.Dependencies {
			dsig, ok := signals[dep]
			if !ok {
				return &nur.InternalError{Err: fmt.Errorf("dependency %q of task %q missing from plan", dep, entry.Name)}
			}
			deps = append(deps, dsig)
		}

		exec := &executor{
			taskID:   entry.TaskID,
			name:     entry.Name,
			task:     task,
			cwd:      s.Cwd,
			deps:     deps,
			mine:     signals[entry.Name],
			cancel:   cancel,
			statusCh: statusCh,
			sem:      sem,
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[entry.TaskID] = exec.run()
		}()
	}

	wg.Wait()
	close(statusCh)

	if err := g.Wait(); err != nil {
		return &nur.InternalError{Err: err}
	}

	return aggregate(errs)
}

// aggregate collates per-task results in plan order: zero errors is
// success, one surfaces directly, more than one is wrapped in
// *nur.MultipleError.
func aggregate(errs []error) error {
	var failures []error
	for _, err := range errs {
		if err != nil {
			failures = append(failures, err)
		}
	}
	switch len(failures) {
	case 0:
		return nil
	case 1:
		return failures[0]
	default:
		return &nur.MultipleError{Failures: failures}
	}
}
