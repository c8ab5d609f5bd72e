package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/mdxor/internal/ui/pretty"
	"github.com/yaklabco/mdxor/pkg/analysis"
	"github.com/yaklabco/mdxor/pkg/mdast"
)

// Table layout constants for summary output.
// Both tables use the same width for visual consistency.
const (
	tableWidth        = 90
	kindColWidth      = 30
	fileColWidth      = 60
	numColWidth       = 7
	statusColWidth    = 9
	maxKindNameLength = 28
	maxFilePathLength = 58
)

// padRight pads a string to the given width with spaces on the right.
// This must be called BEFORE applying ANSI styles.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// padLeft pads a string to the given width with spaces on the left.
// This must be called BEFORE applying ANSI styles.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// SummaryRenderer formats results as aggregated summary tables.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
}

// NewSummaryRenderer creates a new summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryRenderer{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)

	if report.Totals.Files == 0 {
		fmt.Fprintln(bw, r.styles.Success.Render("No files to check."))
		return bw.Flush()
	}

	r.renderKindTable(bw, report.ByKind)
	fmt.Fprintln(bw)
	r.renderFileTable(bw, report.ByFile)
	fmt.Fprintln(bw)
	r.renderTotals(bw, report.Totals)

	return bw.Flush()
}

func (r *SummaryRenderer) separator(bw *bufio.Writer) {
	fmt.Fprintln(bw, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))
}

func (r *SummaryRenderer) renderKindTable(bw *bufio.Writer, kinds []analysis.KindAnalysis) {
	if len(kinds) == 0 {
		return
	}

	fmt.Fprintln(bw, r.styles.Bold.Render("Node Kinds"))
	r.separator(bw)

	fmt.Fprintf(bw, "%s %s %s\n",
		r.styles.TableHeader.Render(padRight("Kind", kindColWidth)),
		r.styles.TableHeader.Render(padLeft("Count", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Files", numColWidth)),
	)
	r.separator(bw)

	for _, kind := range kinds {
		name := kind.Kind
		if len(name) > maxKindNameLength {
			name = name[:maxKindNameLength] + "…"
		}

		styled := padRight(name, kindColWidth)
		if isBlockKind(kind.Kind) {
			styled = r.styles.BlockKind.Render(styled)
		} else {
			styled = r.styles.NodeKind.Render(styled)
		}

		fmt.Fprintf(bw, "%s %s %s\n",
			styled,
			padLeft(strconv.Itoa(kind.Count), numColWidth),
			padLeft(strconv.Itoa(kind.Files), numColWidth),
		)
	}
}

func (r *SummaryRenderer) renderFileTable(bw *bufio.Writer, files []analysis.FileAnalysis) {
	if len(files) == 0 {
		return
	}

	fmt.Fprintln(bw, r.styles.Bold.Render("Files"))
	r.separator(bw)

	fmt.Fprintf(bw, "%s %s %s %s\n",
		r.styles.TableHeader.Render(padRight("File", fileColWidth)),
		r.styles.TableHeader.Render(padRight("Status", statusColWidth)),
		r.styles.TableHeader.Render(padLeft("Nodes", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Depth", numColWidth)),
	)
	r.separator(bw)

	for _, file := range files {
		path := file.Path
		if len(path) > maxFilePathLength {
			path = "…" + path[len(path)-(maxFilePathLength-1):]
		}

		paddedPath := padRight(path, fileColWidth)
		switch file.Status {
		case analysis.StatusError:
			paddedPath = r.styles.TableErrorRow.Render(paddedPath)
		case analysis.StatusDiverged:
			paddedPath = r.styles.TableDivergedRow.Render(paddedPath)
		case analysis.StatusOK:
		}

		nodes, depth := "-", "-"
		if file.Stats != nil {
			nodes = strconv.Itoa(file.Stats.Nodes)
			depth = strconv.Itoa(file.Stats.MaxDepth)
		}

		fmt.Fprintf(bw, "%s %s %s %s\n",
			paddedPath,
			padRight(string(file.Status), statusColWidth),
			padLeft(nodes, numColWidth),
			padLeft(depth, numColWidth),
		)
	}
}

func (r *SummaryRenderer) renderTotals(bw *bufio.Writer, totals analysis.Totals) {
	fileWord := "files"
	if totals.Files == 1 {
		fileWord = "file"
	}

	parts := []string{
		fmt.Sprintf("%d %s", totals.Files, fileWord),
		fmt.Sprintf("%d nodes (%d blocks, %d inlines)", totals.Nodes, totals.Blocks, totals.Inlines),
	}
	if totals.Errored > 0 {
		parts = append(parts, r.styles.Error.Render(fmt.Sprintf("%d errored", totals.Errored)))
	}
	if totals.Diverged > 0 {
		parts = append(parts, r.styles.Warning.Render(fmt.Sprintf("%d diverged", totals.Diverged)))
	}

	fmt.Fprintln(bw, r.styles.Bold.Render("Total: ")+strings.Join(parts, ", "))
}

func isBlockKind(name string) bool {
	kind, ok := mdast.ParseNodeKind(name)
	return ok && kind.IsBlock()
}
