// Package analysis computes statistics over parsed trees and run results.
package analysis

import (
	"cmp"
	"context"
	"errors"
	"path/filepath"
	"slices"
	"time"

	"github.com/yaklabco/mdxor/pkg/fsutil"
	"github.com/yaklabco/mdxor/pkg/parser"
	"github.com/yaklabco/mdxor/pkg/runner"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// Error kinds reported in FileAnalysis.ErrorKind.
const (
	ErrorKindEncoding  = "encoding"
	ErrorKindInvariant = "invariant"
	ErrorKindIO        = "io"
	ErrorKindCancelled = "cancelled"
	ErrorKindOther     = "other"
)

// ClassifyError maps a per-file error onto a coarse kind.
func ClassifyError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, parser.ErrInputEncoding):
		return ErrorKindEncoding
	case errors.Is(err, parser.ErrInvariant):
		return ErrorKindInvariant
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ErrorKindCancelled
	case errors.Is(err, fsutil.ErrNotFound), errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory), errors.Is(err, fsutil.ErrTooLarge):
		return ErrorKindIO
	default:
		return ErrorKindOther
	}
}

// makeRelativePath converts an absolute path to a relative path from workDir.
// If workDir is empty or conversion fails, returns the original path.
func makeRelativePath(absPath, workDir string) string {
	if workDir == "" {
		return absPath
	}
	relPath, err := filepath.Rel(workDir, absPath)
	if err != nil {
		return absPath
	}
	return relPath
}

// Analyze transforms a runner.Result into a Report.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}

	if result == nil {
		return report
	}

	kinds := make(map[string]*KindAnalysis)

	for _, outcome := range result.Files {
		fa := analyzeFile(outcome, opts.WorkingDir)
		accumulateTotals(&report.Totals, fa)

		if fa.Stats != nil {
			for kind, count := range fa.Stats.ByKind {
				ka, ok := kinds[kind]
				if !ok {
					ka = &KindAnalysis{Kind: kind}
					kinds[kind] = ka
				}
				ka.Count += count
				ka.Files++
			}
		}

		if opts.IncludeByFile {
			report.ByFile = append(report.ByFile, fa)
		}
	}

	if opts.IncludeByFile {
		sortFileAnalysis(report.ByFile, opts.SortBy, opts.SortDesc)
	}
	if opts.IncludeByKind {
		report.ByKind = make([]KindAnalysis, 0, len(kinds))
		for _, ka := range kinds {
			report.ByKind = append(report.ByKind, *ka)
		}
		sortKindAnalysis(report.ByKind, opts.SortBy, opts.SortDesc)
	}

	return report
}

func analyzeFile(outcome runner.FileOutcome, workDir string) FileAnalysis {
	fa := FileAnalysis{
		Path:     makeRelativePath(outcome.Path, workDir),
		Status:   StatusOK,
		Duration: outcome.Duration,
	}

	if outcome.Error != nil {
		fa.Status = StatusError
		fa.Error = outcome.Error.Error()
		fa.ErrorKind = ClassifyError(outcome.Error)
		return fa
	}

	if outcome.Tree != nil {
		stats := Collect(outcome.Tree)
		fa.Stats = &stats
	}

	if outcome.Diff.HasChanges() {
		fa.Status = StatusDiverged
		fa.Missing = outcome.Diff.Missing
		fa.Extra = outcome.Diff.Extra
		fa.Diff = outcome.Diff
	}

	return fa
}

func accumulateTotals(totals *Totals, fa FileAnalysis) {
	totals.Files++

	switch fa.Status {
	case StatusError:
		totals.Errored++
		return
	case StatusDiverged:
		totals.Diverged++
	case StatusOK:
	}

	totals.Parsed++
	if fa.Stats == nil {
		return
	}
	totals.Nodes += fa.Stats.Nodes
	totals.Blocks += fa.Stats.Blocks
	totals.Inlines += fa.Stats.Inlines
	totals.MaxDepth = max(totals.MaxDepth, fa.Stats.MaxDepth)
	for _, count := range fa.Stats.Embedded {
		totals.Embedded += count
	}
}

func statusRank(s Status) int {
	switch s {
	case StatusError:
		return 0
	case StatusDiverged:
		return 1
	default:
		return 2
	}
}

func nodeCount(fa FileAnalysis) int {
	if fa.Stats == nil {
		return 0
	}
	return fa.Stats.Nodes
}

func sortFileAnalysis(files []FileAnalysis, sortBy SortField, desc bool) {
	slices.SortStableFunc(files, func(left, right FileAnalysis) int {
		switch sortBy {
		case SortByAlpha:
			return cmp.Compare(left.Path, right.Path)
		case SortByStatus:
			result := cmp.Compare(statusRank(left.Status), statusRank(right.Status))
			if result == 0 {
				result = cmp.Compare(left.Path, right.Path)
			}
			return result
		default: // SortByCount
			result := cmp.Compare(nodeCount(left), nodeCount(right))
			if desc {
				result = -result
			}
			if result == 0 {
				result = cmp.Compare(left.Path, right.Path)
			}
			return result
		}
	})
}

func sortKindAnalysis(kinds []KindAnalysis, sortBy SortField, desc bool) {
	slices.SortFunc(kinds, func(left, right KindAnalysis) int {
		if sortBy == SortByAlpha {
			return cmp.Compare(left.Kind, right.Kind)
		}
		result := cmp.Compare(left.Count, right.Count)
		if desc {
			result = -result
		}
		if result == 0 {
			result = cmp.Compare(left.Kind, right.Kind)
		}
		return result
	})
}
