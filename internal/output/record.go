package output

import "github.com/nur-run/nur/internal/nur"

// Stream identifies which host stream a Record belongs on.
type Stream int

const (
	Stdout Stream = iota
	Stderr
)

// Record is one fully formatted line, ready for a Sink to write. The
// multiplexer (streamed.go / grouped.go) is the only producer; Sinks never
// see a raw nur.StatusMessage.
type Record struct {
	TaskID   int
	TaskName string
	Stream   Stream
	Text     string // formatted line, prefix and separator already applied, no trailing newline

	// Kind/Outcome carry enough of the originating status for structured
	// sinks (NDJSON) to emit a typed event instead of just a line of text.
	Kind    nur.StatusKind
	Outcome nur.Outcome
}
