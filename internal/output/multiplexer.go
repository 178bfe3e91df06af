package output

import (
	"github.com/nur-run/nur/internal/graph"
	"github.com/nur-run/nur/internal/nur"
	"github.com/nur-run/nur/internal/nurfile"
)

// formatter turns raw status messages into formatted Records. streamed and
// grouped are the two implementations, selected by OutputOptions.Style.
type formatter interface {
	handle(msg nur.StatusMessage, taskName string, emit func(Record))
}

// groupedFormatter adapts *grouped (which needs no taskName argument, since
// it looks names up itself at flush time) to the formatter interface.
type groupedFormatter struct{ g *grouped }

func (f groupedFormatter) handle(msg nur.StatusMessage, _ string, emit func(Record)) {
	f.g.handle(msg, emit)
}

// Multiplexer is the single point status messages pass through on their way
// from the scheduler to every configured Sink (SPEC_FULL.md §4.6): it owns
// the one formatter instance (so Streamed/Grouped state is never split
// across goroutines) and the task_id -> name lookup the formatters need.
type Multiplexer struct {
	names     []string
	formatter formatter
	manager   *Manager
}

// NewMultiplexer builds a Multiplexer for plan, ready to accept one Consume
// call per status message the scheduler produces for this run.
func NewMultiplexer(opts nurfile.OutputOptions, plan graph.Plan, manager *Manager) *Multiplexer {
	names := make([]string, len(plan))
	for _, entry := range plan {
		names[entry.TaskID] = entry.Name
	}

	prefixer := NewPrefixer(opts.Prefix)

	var f formatter
	switch opts.Style {
	case nurfile.Grouped:
		f = groupedFormatter{g: newGrouped(opts.Grouped, prefixer, func(id int) string { return names[id] }, len(plan))}
	default:
		f = newStreamed(opts.Streamed, prefixer)
	}

	return &Multiplexer{names: names, formatter: f, manager: manager}
}

// Consume is the function handed to Scheduler.Run as its consume callback.
// It runs on the scheduler's single drain goroutine, so the formatter never
// needs its own synchronization.
func (m *Multiplexer) Consume(msg nur.StatusMessage) {
	name := ""
	if msg.TaskID >= 0 && msg.TaskID < len(m.names) {
		name = m.names[msg.TaskID]
	}
	m.formatter.handle(msg, name, func(rec Record) {
		_ = m.manager.Write(rec)
	})
}
