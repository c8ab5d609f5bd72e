package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/mdxor/internal/ui/pretty"
	"github.com/yaklabco/mdxor/pkg/analysis"
)

// TextRenderer formats results as styled terminal output.
type TextRenderer struct {
	opts   Options
	styles *pretty.Styles
}

// NewTextRenderer creates a new text renderer.
func NewTextRenderer(opts Options) *TextRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextRenderer{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
	}
}

// Render implements Renderer.
func (r *TextRenderer) Render(_ context.Context, report *analysis.Report) error {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)

	if report.Totals.Files == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(bw, r.styles.Success.Render("No files to check."))
		}
		return bw.Flush()
	}

	for _, file := range report.ByFile {
		r.writeFile(bw, file)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(bw, r.styles.FormatSummaryOneLine(report.Totals))
	}

	return bw.Flush()
}

func (r *TextRenderer) writeFile(bw *bufio.Writer, file analysis.FileAnalysis) {
	path := r.styles.FilePath.Render(file.Path)

	switch file.Status {
	case analysis.StatusError:
		fmt.Fprintf(bw, "%s: %s\n", path, r.styles.Error.Render("error: "+file.Error))
	case analysis.StatusDiverged:
		fmt.Fprintf(bw, "%s: %s (%s)\n", path,
			r.styles.Warning.Render("diverged"),
			r.styles.FormatDiffStat(file.Missing, file.Extra))
		if r.opts.ShowDiff && file.Diff != nil {
			for line := range strings.Lines(r.styles.FormatDiff(file.Diff)) {
				fmt.Fprint(bw, "    "+line)
			}
			fmt.Fprintln(bw)
		}
	case analysis.StatusOK:
		if !r.opts.Verbose || file.Stats == nil {
			return
		}
		fmt.Fprintf(bw, "%s: %s %s\n", path,
			r.styles.Success.Render("ok"),
			r.styles.Dim.Render(fmt.Sprintf("(%d nodes, depth %d, %s)",
				file.Stats.Nodes, file.Stats.MaxDepth, file.Duration.Round(durationPrecision))))
	}
}
