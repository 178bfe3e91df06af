package output

import "github.com/nur-run/nur/internal/nur"

// Event is a lifecycle record for NDJSON streaming output: one JSON object
// per line, emitted as the run progresses rather than buffered to the end.
//
// run.started and run.finished bracket the whole run; task.started,
// task.stdout, task.stderr and task.finished come from individual Records.
type Event struct {
	Type     string `json:"type"`
	Task     string `json:"task,omitempty"`
	TaskID   int    `json:"task_id,omitempty"`
	Line     string `json:"line,omitempty"`
	Result   string `json:"result,omitempty"`
	Error    string `json:"error,omitempty"`
	ExitCode int    `json:"exit_code,omitempty"`
}

func eventFromRecord(rec Record) Event {
	e := Event{Task: rec.TaskName, TaskID: rec.TaskID}
	switch rec.Kind {
	case nur.StdOut:
		e.Type = "task.stdout"
		e.Line = rec.Text
	case nur.StdErr:
		e.Type = "task.stderr"
		e.Line = rec.Text
	case nur.Started:
		e.Type = "task.started"
	case nur.Finished:
		e.Type = "task.finished"
		e.Result = rec.Outcome.Result.String()
		if rec.Outcome.Err != nil {
			e.Error = rec.Outcome.Err.Error()
		}
	}
	return e
}

// RunStartedEvent and RunFinishedEvent bracket a full run in NDJSON mode.
// The CLI driver writes these directly through a sink's Write, outside the
// per-task Record flow.
func RunStartedEvent() Event { return Event{Type: "run.started"} }

func RunFinishedEvent(exitCode int) Event {
	return Event{Type: "run.finished", ExitCode: exitCode}
}
