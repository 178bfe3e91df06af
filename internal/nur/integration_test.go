package nur_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nur-run/nur/internal/engine"
	"github.com/nur-run/nur/internal/graph"
	"github.com/nur-run/nur/internal/nur"
	"github.com/nur-run/nur/internal/nurfile"
	"github.com/nur-run/nur/internal/output"
	"github.com/nur-run/nur/internal/token"
)

// runScenario drives tasks through the real graph/engine/output stack (real
// /bin/sh children, no mocking), mirroring the teacher's httptest-replaced-
// by-real-process integration style. It returns the ordered Records the
// console sink would have received.
func runScenario(t *testing.T, tasks map[string]nurfile.Task, roots []string, out nurfile.OutputOptions) ([]output.Record, error) {
	t.Helper()

	plan, err := graph.Build(tasks, roots)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	var recs []output.Record
	recorder := recorderSink{emit: func(r output.Record) {
		mu.Lock()
		defer mu.Unlock()
		recs = append(recs, r)
	}}

	mgr := output.NewManager()
	require.NoError(t, mgr.AddSink(recorder))

	mux := output.NewMultiplexer(out, plan, mgr)

	sched, err := engine.NewScheduler(tasks, ".", 0)
	require.NoError(t, err)

	runErr := sched.Run(context.Background(), plan, token.New(), mux.Consume)

	mu.Lock()
	defer mu.Unlock()
	return append([]output.Record(nil), recs...), runErr
}

// recorderSink adapts a func(output.Record) to output.Sink for test
// observation; it ignores anything that isn't a Record (e.g. bracketing
// Events a real CLI run would also send).
type recorderSink struct{ emit func(output.Record) }

func (s recorderSink) Write(v any) error {
	if r, ok := v.(output.Record); ok {
		s.emit(r)
	}
	return nil
}

func (recorderSink) Close() error { return nil }

// Scenario 1: single task, echo.
func TestIntegration_SingleTaskEcho(t *testing.T) {
	tasks := map[string]nurfile.Task{
		"default": {Commands: []nurfile.Command{{Sh: "echo hello"}}, Cancellable: true},
	}
	recs, err := runScenario(t, tasks, nil, nurfile.DefaultOutputOptions())
	require.NoError(t, err)

	var stdout []string
	for _, r := range recs {
		if r.Kind == nur.StdOut {
			stdout = append(stdout, r.Text)
		}
	}
	require.Len(t, stdout, 1)
	assert.Contains(t, stdout[0], "hello")
}

// Scenario 2: dependency ordering.
func TestIntegration_DependencyOrdering(t *testing.T) {
	tasks := map[string]nurfile.Task{
		"default": {Dependencies: []string{"build"}, Commands: []nurfile.Command{{Sh: "echo ran-default"}}, Cancellable: true},
		"build":   {Commands: []nurfile.Command{{Sh: "echo ran-build"}}, Cancellable: true},
	}
	recs, err := runScenario(t, tasks, nil, nurfile.DefaultOutputOptions())
	require.NoError(t, err)

	firstFinish := map[string]int{}
	for i, r := range recs {
		if r.Kind == nur.Finished {
			if _, ok := firstFinish[r.TaskName]; !ok {
				firstFinish[r.TaskName] = i
			}
		}
	}
	assert.Less(t, firstFinish["build"], firstFinish["default"])
}

// Scenario 3: skipping on upstream failure.
func TestIntegration_SkipOnUpstreamFailure(t *testing.T) {
	tasks := map[string]nurfile.Task{
		"default": {Dependencies: []string{"build"}, Commands: []nurfile.Command{{Sh: "echo should-not-run"}}, Cancellable: true},
		"build":   {Commands: []nurfile.Command{{Sh: "exit 1"}}, Cancellable: true},
	}
	recs, err := runScenario(t, tasks, nil, nurfile.DefaultOutputOptions())
	require.Error(t, err)

	for _, r := range recs {
		if r.TaskName == "default" && r.Kind == nur.Finished {
			assert.Equal(t, nur.Skipped, r.Outcome.Result)
		}
		assert.NotContains(t, r.Text, "should-not-run")
	}
}

// Scenario 4: cycle rejection.
func TestIntegration_CycleRejection(t *testing.T) {
	tasks := map[string]nurfile.Task{
		"a": {Dependencies: []string{"b"}},
		"b": {Dependencies: []string{"a"}},
	}
	_, err := runScenario(t, tasks, []string{"a"}, nurfile.DefaultOutputOptions())
	require.Error(t, err)
	var cycleErr *nur.TaskCycleError
	require.ErrorAs(t, err, &cycleErr)
}

// Scenario 5: grouped deterministic ordering.
func TestIntegration_GroupedDeterministicOrdering(t *testing.T) {
	tasks := map[string]nurfile.Task{
		"default": {Dependencies: []string{"slow", "fast"}},
		// "slow" has no dependents ordering guarantee beyond plan position;
		// what matters is plan order (slow before fast, since declared
		// first) is preserved in the flushed block order regardless of
		// which child process actually exits first.
		"slow": {Commands: []nurfile.Command{{Sh: "sleep 0.2 && echo slow-out"}}, Cancellable: true},
		"fast": {Commands: []nurfile.Command{{Sh: "echo fast-out"}}, Cancellable: true},
	}
	opts := nurfile.DefaultOutputOptions()
	opts.Style = nurfile.Grouped
	opts.Grouped.Deterministic = true

	recs, err := runScenario(t, tasks, nil, opts)
	require.NoError(t, err)

	var order []string
	for _, r := range recs {
		if r.Kind == nur.StdOut {
			order = append(order, r.TaskName)
		}
	}
	require.Len(t, order, 2)
	assert.Equal(t, "slow", order[0], "plan order must win even though fast's command exits first")
	assert.Equal(t, "fast", order[1])
}

// Scenario 6: aligned prefix.
func TestIntegration_AlignedPrefix(t *testing.T) {
	tasks := map[string]nurfile.Task{
		"default": {Dependencies: []string{"build"}},
		"build":   {Commands: []nurfile.Command{{Sh: "echo hi"}}, Cancellable: true},
	}
	opts := nurfile.DefaultOutputOptions()
	opts.Prefix = nurfile.Aligned

	recs, err := runScenario(t, tasks, nil, opts)
	require.NoError(t, err)

	// build's Started line carries its name; its stdout line follows from the
	// same task, so the aligned prefixer blanks the label to the same width.
	var sawOut bool
	for _, r := range recs {
		if r.Kind == nur.Started && r.TaskName == "build" {
			assert.True(t, strings.HasPrefix(r.Text, "build"), "expected the aligned prefix to lead the line, got %q", r.Text)
		}
		if r.Kind == nur.StdOut {
			sawOut = true
			assert.True(t, strings.HasPrefix(r.Text, strings.Repeat(" ", len("build"))), "expected a blank aligned prefix on a repeated task, got %q", r.Text)
			assert.Contains(t, r.Text, "hi")
		}
	}
	assert.True(t, sawOut)
}
