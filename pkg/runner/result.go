package runner

import (
	"time"

	"github.com/yaklabco/mdxor/pkg/compare"
	"github.com/yaklabco/mdxor/pkg/mdast"
)

// FileOutcome is the result of processing one document.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Tree is the parsed document. Nil when Error is set.
	Tree *mdast.Tree

	// Diff is the outline divergence from the reference parser.
	// Nil when comparison is disabled or the outlines agree.
	Diff *compare.Diff

	// Error is set if the file could not be read or parsed.
	Error error

	// Duration is the wall time spent on this file.
	Duration time.Duration
}

// Diverged reports whether the reference parser disagreed.
func (o FileOutcome) Diverged() bool {
	return o.Diff.HasChanges()
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesParsed is the number of files parsed without error.
	FilesParsed int

	// FilesErrored is the number of files that could not be read or parsed.
	FilesErrored int

	// FilesDiverged is the number of parsed files whose outline differs
	// from the reference parser.
	FilesDiverged int

	// BytesParsed is the total size of the parsed files.
	BytesParsed int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether any file failed to parse.
func (r *Result) HasFailures() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

// HasDivergence reports whether any file disagreed with the reference parser.
func (r *Result) HasDivergence() bool {
	return r != nil && r.Stats.FilesDiverged > 0
}

// Errors returns the per-file errors in path order.
func (r *Result) Errors() []error {
	if r == nil {
		return nil
	}
	var errs []error
	for _, outcome := range r.Files {
		if outcome.Error != nil {
			errs = append(errs, outcome.Error)
		}
	}
	return errs
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesParsed++
	if outcome.Tree != nil && outcome.Tree.Document != nil {
		r.Stats.BytesParsed += len(outcome.Tree.Document.Content)
	}
	if outcome.Diverged() {
		r.Stats.FilesDiverged++
	}
}
