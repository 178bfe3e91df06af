package output

import (
	"strings"

	"github.com/nur-run/nur/internal/nurfile"
)

// Prefixer generates the per-line label for a given task name. Implementations
// are stateful: Aligned remembers the widest name seen and the last task it
// labeled.
type Prefixer interface {
	Prefix(taskName string) string
}

// NewPrefixer returns the Prefixer for style.
func NewPrefixer(style nurfile.PrefixStyle) Prefixer {
	switch style {
	case nurfile.Always:
		return &alwaysPrefixer{}
	case nurfile.Aligned:
		return &alignedPrefixer{}
	default:
		return nullPrefixer{}
	}
}

type nullPrefixer struct{}

func (nullPrefixer) Prefix(string) string { return "" }

type alwaysPrefixer struct{}

func (alwaysPrefixer) Prefix(taskName string) string { return taskName }

// alignedPrefixer right-pads the task name to the width of the longest name
// seen so far, growing the width lazily, and blanks out the label on
// consecutive lines from the same task (SPEC_FULL.md §4.6).
type alignedPrefixer struct {
	maxLen int
	last   string
}

func (p *alignedPrefixer) Prefix(taskName string) string {
	if len(taskName) > p.maxLen {
		p.maxLen = len(taskName)
	}

	if taskName == p.last {
		return strings.Repeat(" ", p.maxLen)
	}

	p.last = taskName
	return taskName + strings.Repeat(" ", p.maxLen-len(taskName))
}
