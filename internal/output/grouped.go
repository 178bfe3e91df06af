package output

import (
	"github.com/nur-run/nur/internal/nur"
	"github.com/nur-run/nur/internal/nurfile"
)

type groupSlotState int

const (
	appending groupSlotState = iota
	readyToFlush
	flushed
)

type groupSlot struct {
	state groupSlotState
	msgs  []nur.StatusMessage
}

// grouped implements the Grouped output style (SPEC_FULL.md §4.6): each
// task's output is buffered until that task's Finished message arrives, then
// flushed as a contiguous block through the inner streamed formatter. In
// Deterministic mode, blocks are only ever flushed in plan (task_id) order:
// every plan entry starts out Appending, so a later task that finishes
// first waits (ReadyToFlush) for every earlier task to flush before it.
type grouped struct {
	opts  nurfile.GroupedOptions
	inner *streamed
	names func(taskID int) string
	slots []*groupSlot // indexed by task_id, pre-populated for the whole plan
}

func newGrouped(opts nurfile.GroupedOptions, prefixer Prefixer, names func(int) string, planSize int) *grouped {
	streamedOpts := nurfile.StreamedOptions{
		Separator:       opts.Separator,
		SeparatorSwitch: opts.SeparatorFirst,
	}
	slots := make([]*groupSlot, planSize)
	for i := range slots {
		slots[i] = &groupSlot{}
	}
	return &grouped{
		opts:  opts,
		inner: newStreamed(streamedOpts, prefixer),
		names: names,
		slots: slots,
	}
}

func (g *grouped) handle(msg nur.StatusMessage, emit func(Record)) {
	s := g.slots[msg.TaskID]

	s.msgs = append(s.msgs, msg)
	if msg.Status.Kind != nur.Finished {
		return
	}

	if g.opts.OnlyOnFailure && msg.Status.Outcome.Ok() {
		s.msgs = []nur.StatusMessage{msg}
	}

	if !g.opts.Deterministic {
		g.flush(msg.TaskID, emit)
		return
	}

	for id := 0; id < msg.TaskID; id++ {
		switch g.slots[id].state {
		case appending:
			s.state = readyToFlush
			return
		case readyToFlush:
			g.flush(id, emit)
		case flushed:
			continue
		}
	}
	g.flush(msg.TaskID, emit)

	// Walk forward through any later tasks that went ReadyToFlush while
	// waiting on this one, so their blocks are emitted as soon as plan
	// order allows without waiting for their own next message.
	for id := msg.TaskID + 1; id < len(g.slots) && g.slots[id].state == readyToFlush; id++ {
		g.flush(id, emit)
	}
}

func (g *grouped) flush(taskID int, emit func(Record)) {
	s := g.slots[taskID]
	name := g.names(taskID)
	for _, msg := range s.msgs {
		if msg.Status.Kind == nur.Finished {
			// The block's closing line uses SeparatorLast in place of the
			// SeparatorFirst the inner formatter otherwise switches to.
			g.inner.opts.SeparatorSwitch = g.opts.SeparatorLast
			g.inner.handle(msg, name, emit)
			g.inner.opts.SeparatorSwitch = g.opts.SeparatorFirst
			continue
		}
		g.inner.handle(msg, name, emit)
	}
	s.msgs = nil
	s.state = flushed
}
