package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/mdxor/pkg/analysis"
)

// bufWriterSize is the buffer placed in front of Options.Writer for tree
// and report output.
const bufWriterSize = 64 << 10

// Options controls what a Reporter writes and where.
//
// Writer receives the report itself. ErrorWriter receives warnings, kept
// apart so JSON and YAML output stay machine-readable when both streams
// are captured.
type Options struct {
	Writer      io.Writer
	ErrorWriter io.Writer

	Format Format
	Color  string // auto, always or never

	// ShowSummary appends the totals line to text and table output.
	ShowSummary bool

	// ShowDiff prints the outline hunks under each diverged file. Text only,
	// as is Verbose.
	ShowDiff bool
	Verbose  bool // list clean files too
	Compact  bool // single-line JSON

	SortBy analysis.SortField

	// WorkingDir, when set, makes reported paths relative to it.
	WorkingDir string
}

// DefaultOptions writes text with summary and diffs to the standard streams.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
		Format:      FormatText,
		Color:       "auto",
		ShowSummary: true,
		ShowDiff:    true,
		SortBy:      analysis.SortByStatus,
	}
}
