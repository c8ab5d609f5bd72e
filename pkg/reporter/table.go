package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"golang.org/x/term"

	"github.com/yaklabco/mdxor/internal/ui/pretty"
	"github.com/yaklabco/mdxor/pkg/analysis"
)

// defaultTermWidth is used when terminal width cannot be determined.
const defaultTermWidth = 100

// durationPrecision rounds per-file timings for display.
const durationPrecision = time.Microsecond

// TableRenderer formats results as a styled table with color-coded rows.
type TableRenderer struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
}

// NewTableRenderer creates a new table renderer.
func NewTableRenderer(opts Options) *TableRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)

	return &TableRenderer{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, colorEnabled, getTerminalWidth(opts.Writer)),
	}
}

// Render implements Renderer.
func (r *TableRenderer) Render(_ context.Context, report *analysis.Report) error {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)

	if report.Totals.Files == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(bw, r.styles.Success.Render("No files to check."))
		}
		return bw.Flush()
	}

	fmt.Fprint(bw, r.formatter.FormatTable(report.ByFile))

	if r.opts.ShowSummary {
		fmt.Fprintln(bw, r.formatter.FormatTableSummary(report.Totals, totalDuration(report.ByFile)))
	}

	return bw.Flush()
}

func totalDuration(files []analysis.FileAnalysis) string {
	var total time.Duration
	for _, file := range files {
		total += file.Duration
	}
	if total == 0 {
		return ""
	}
	return total.Round(durationPrecision).String()
}

// getTerminalWidth attempts to get the terminal width from the writer.
func getTerminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}
