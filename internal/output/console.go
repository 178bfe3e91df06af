package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

// palette is the cycle of colors used to tell concurrently-running tasks
// apart in text mode. Picked for readability on both light and dark
// terminals; task_id 0 always gets the first color, so a given plan colors
// its tasks the same way on every run.
var palette = []*color.Color{
	color.New(color.FgCyan),
	color.New(color.FgYellow),
	color.New(color.FgMagenta),
	color.New(color.FgGreen),
	color.New(color.FgBlue),
	color.New(color.FgRed),
}

// ConsoleSink writes Records to a single writer, either as colorized
// human-readable text or as newline-delimited JSON Events.
type ConsoleSink struct {
	writer io.Writer
	format string // "text" or "ndjson"
	closer io.Closer
	mu     sync.Mutex
}

// NewConsoleSink builds a ConsoleSink. w defaults to os.Stdout; format
// defaults to "text". If w also implements io.Closer (e.g. an *os.File
// opened for --event-log), Close closes it.
func NewConsoleSink(w io.Writer, format string) *ConsoleSink {
	var closer io.Closer
	if w == nil {
		w = os.Stdout
	} else {
		closer, _ = w.(io.Closer)
	}
	if format == "" {
		format = "text"
	}
	return &ConsoleSink{writer: w, format: format, closer: closer}
}

func (s *ConsoleSink) Write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := v.(Record)
	if !ok {
		// Run-level Events (run.started/run.finished) only matter in ndjson
		// mode; text mode has nothing useful to print for them.
		if s.format != "ndjson" {
			return nil
		}
		encoder := json.NewEncoder(s.writer)
		if err := encoder.Encode(v); err != nil {
			return err
		}
		return flushIfPossible(s.writer)
	}

	switch s.format {
	case "ndjson":
		encoder := json.NewEncoder(s.writer)
		if err := encoder.Encode(eventFromRecord(rec)); err != nil {
			return err
		}
		return flushIfPossible(s.writer)
	case "text":
		c := palette[rec.TaskID%len(palette)]
		if _, err := c.Fprintln(s.writer, rec.Text); err != nil {
			return err
		}
		return flushIfPossible(s.writer)
	default:
		return fmt.Errorf("unsupported console format: %s", s.format)
	}
}

func (s *ConsoleSink) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
