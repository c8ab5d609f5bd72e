package analysis

import (
	"time"

	"github.com/yaklabco/mdxor/pkg/compare"
)

// Report contains pre-computed views of a run.
// Computed once by Analyze(), used by all renderers.
type Report struct {
	// ByFile lists every processed file.
	ByFile []FileAnalysis `json:"files,omitempty" yaml:"files,omitempty"`

	// ByKind aggregates node counts across files.
	ByKind []KindAnalysis `json:"byKind,omitempty" yaml:"by_kind,omitempty"`

	// Totals contains aggregate statistics.
	Totals Totals `json:"summary" yaml:"summary"`

	// Version is the report format version.
	Version string `json:"version" yaml:"version"`

	// Timestamp is when the analysis was performed.
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// Status is the outcome of processing one file.
type Status string

const (
	StatusOK       Status = "ok"
	StatusDiverged Status = "diverged"
	StatusError    Status = "error"
)

// FileAnalysis contains the outcome for a single file.
type FileAnalysis struct {
	Path   string `json:"path" yaml:"path"`
	Status Status `json:"status" yaml:"status"`

	// Error and ErrorKind are set when Status is StatusError.
	Error     string `json:"error,omitempty" yaml:"error,omitempty"`
	ErrorKind string `json:"errorKind,omitempty" yaml:"error_kind,omitempty"`

	// Stats is nil when the file failed to parse.
	Stats *TreeStats `json:"stats,omitempty" yaml:"stats,omitempty"`

	// Divergence counts outline lines that differ from the reference parser.
	Missing int `json:"missing,omitempty" yaml:"missing,omitempty"`
	Extra   int `json:"extra,omitempty" yaml:"extra,omitempty"`

	// Diff is the outline diff behind Missing and Extra.
	Diff *compare.Diff `json:"-" yaml:"-"`

	Duration time.Duration `json:"durationNs" yaml:"duration"`
}

// KindAnalysis aggregates one node kind across files.
type KindAnalysis struct {
	Kind  string `json:"kind" yaml:"kind"`
	Count int    `json:"count" yaml:"count"`
	Files int    `json:"files" yaml:"files"`
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Files    int `json:"files" yaml:"files"`
	Parsed   int `json:"parsed" yaml:"parsed"`
	Errored  int `json:"errored" yaml:"errored"`
	Diverged int `json:"diverged" yaml:"diverged"`
	Nodes    int `json:"nodes" yaml:"nodes"`
	Blocks   int `json:"blocks" yaml:"blocks"`
	Inlines  int `json:"inlines" yaml:"inlines"`
	MaxDepth int `json:"maxDepth" yaml:"max_depth"`
	Embedded int `json:"embedded" yaml:"embedded"`
}

// HasErrors returns true if any file failed to parse.
func (t Totals) HasErrors() bool {
	return t.Errored > 0
}

// HasDivergence returns true if any file disagreed with the reference parser.
func (t Totals) HasDivergence() bool {
	return t.Diverged > 0
}
