// Package reporter renders run results, parse trees and outline diffs.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/mdxor/pkg/analysis"
	"github.com/yaklabco/mdxor/pkg/runner"
)

var _ Reporter = (*reporterFacade)(nil)

// Reporter formats and writes run results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the aggregate totals and any write errors.
	Report(ctx context.Context, result *runner.Result) (analysis.Totals, error)
}

// Renderer writes an already analyzed report in one output format.
type Renderer interface {
	Render(ctx context.Context, report *analysis.Report) error
}

//nolint:gochecknoglobals // format registry
var renderers = map[Format]func(Options) Renderer{
	FormatText:    func(o Options) Renderer { return NewTextRenderer(o) },
	FormatTable:   func(o Options) Renderer { return NewTableRenderer(o) },
	FormatJSON:    func(o Options) Renderer { return NewJSONRenderer(o) },
	FormatYAML:    func(o Options) Renderer { return NewYAMLRenderer(o) },
	FormatSummary: func(o Options) Renderer { return NewSummaryRenderer(o) },
}

type reporterFacade struct {
	renderer     Renderer
	analysisOpts analysis.Options
}

// Report implements Reporter by analyzing the result and rendering it.
func (f *reporterFacade) Report(ctx context.Context, result *runner.Result) (analysis.Totals, error) {
	report := analysis.Analyze(result, f.analysisOpts)
	if err := f.renderer.Render(ctx, report); err != nil {
		return report.Totals, fmt.Errorf("render: %w", err)
	}
	return report.Totals, nil
}

func newRendererFacade(renderer Renderer, opts Options) *reporterFacade {
	sortBy := opts.SortBy
	if !sortBy.IsValid() {
		sortBy = analysis.SortByStatus
	}
	return &reporterFacade{
		renderer: renderer,
		analysisOpts: analysis.Options{
			IncludeByFile: true,
			IncludeByKind: true,
			SortBy:        sortBy,
			SortDesc:      true,
			WorkingDir:    opts.WorkingDir,
		},
	}
}

// New creates a Reporter for the specified options. An empty format means text.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}
	if opts.Format == "" {
		opts.Format = FormatText
	}

	build, ok := renderers[opts.Format]
	if !ok {
		return nil, fmt.Errorf("unsupported format: %s", opts.Format)
	}
	return newRendererFacade(build(opts), opts), nil
}
