package output

import (
	"fmt"

	"github.com/nur-run/nur/internal/nur"
	"github.com/nur-run/nur/internal/nurfile"
)

// streamed implements the Streamed output style (SPEC_FULL.md §4.6): lines
// from every task are interleaved as they arrive, each one labeled by the
// prefixer and separated by one of two separators depending on whether the
// emitting task changed since the previous message.
type streamed struct {
	opts     nurfile.StreamedOptions
	prefixer Prefixer
	lastID   int
}

const noLastID = -1

func newStreamed(opts nurfile.StreamedOptions, prefixer Prefixer) *streamed {
	return &streamed{opts: opts, prefixer: prefixer, lastID: noLastID}
}

// handle formats msg into zero or more Records and hands each to emit, in
// order. It never blocks and never itself writes to a Sink.
func (s *streamed) handle(msg nur.StatusMessage, taskName string, emit func(Record)) {
	sep := s.opts.Separator
	switch {
	case msg.Status.Kind == nur.Started:
		sep = s.opts.SeparatorSwitch
	case msg.Status.Kind == nur.Finished:
		sep = s.opts.SeparatorSwitch
	case msg.TaskID != s.lastID:
		sep = s.opts.SeparatorSwitch
	}

	prefix := s.prefixer.Prefix(taskName)

	var text string
	stream := Stdout
	switch msg.Status.Kind {
	case nur.StdOut:
		text = fmt.Sprintf("%s%s%s", prefix, sep, msg.Status.Line)
	case nur.StdErr:
		text = fmt.Sprintf("%s%s%s", prefix, sep, msg.Status.Line)
		stream = Stderr
	case nur.Started:
		text = fmt.Sprintf("%s%s╴ Started task '%s'", prefix, sep, taskName)
	case nur.Finished:
		text = fmt.Sprintf("%s%s%s", prefix, sep, finishedMessage(taskName, msg.Status.Outcome))
	}

	s.lastID = msg.TaskID

	emit(Record{
		TaskID:   msg.TaskID,
		TaskName: taskName,
		Stream:   stream,
		Text:     text,
		Kind:     msg.Status.Kind,
		Outcome:  msg.Status.Outcome,
	})
}

func finishedMessage(taskName string, outcome nur.Outcome) string {
	if outcome.Err != nil {
		return fmt.Sprintf("╴ Task '%s' failed: %v", taskName, outcome.Err)
	}
	switch outcome.Result {
	case nur.Skipped:
		return fmt.Sprintf("╴ Task '%s' skipped", taskName)
	case nur.Cancelled:
		return fmt.Sprintf("╴ Task '%s' cancelled", taskName)
	default:
		return fmt.Sprintf("╴ Task '%s' completed", taskName)
	}
}
