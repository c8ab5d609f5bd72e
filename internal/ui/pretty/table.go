package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/mdxor/pkg/analysis"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 5 // FILE, STATUS, NODES, DEPTH, DETAIL
	minFileWidth     = 20
	minStatusWidth   = 8
	minNumWidth      = 5
	minDetailWidth   = 30
	heavySeparator   = "="
	defaultTermWidth = 100
)

// TableRow represents a single row in the file table.
type TableRow struct {
	File   string
	Status analysis.Status
	Nodes  string
	Depth  string
	Detail string
}

// TableFormatter formats per-file results as a styled table.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
	}
}

// FileToTableRow converts a file analysis to a table row.
func FileToTableRow(file analysis.FileAnalysis) TableRow {
	row := TableRow{
		File:   file.Path,
		Status: file.Status,
		Nodes:  "-",
		Depth:  "-",
	}

	if file.Stats != nil {
		row.Nodes = strconv.Itoa(file.Stats.Nodes)
		row.Depth = strconv.Itoa(file.Stats.MaxDepth)
	}

	switch file.Status {
	case analysis.StatusError:
		row.Detail = file.Error
	case analysis.StatusDiverged:
		row.Detail = fmt.Sprintf("-%d missing, +%d extra", file.Missing, file.Extra)
	case analysis.StatusOK:
		if file.Stats != nil && len(file.Stats.Embedded) > 0 {
			total := 0
			for _, count := range file.Stats.Embedded {
				total += count
			}
			row.Detail = fmt.Sprintf("%d embedded", total)
		}
	}

	return row
}

// FormatTable formats file analyses as a styled table.
func (t *TableFormatter) FormatTable(files []analysis.FileAnalysis) string {
	if len(files) == 0 {
		return ""
	}

	rows := make([]TableRow, 0, len(files))
	for _, file := range files {
		rows = append(rows, FileToTableRow(file))
	}

	widths := t.calculateColumnWidths(rows)

	var builder strings.Builder

	builder.WriteString(t.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")
	builder.WriteString(t.formatLegend())
	builder.WriteString("\n")

	return builder.String()
}

type columnWidths struct {
	file   int
	status int
	nodes  int
	depth  int
	detail int
}

// calculateColumnWidths determines optimal column widths based on content.
func (t *TableFormatter) calculateColumnWidths(rows []TableRow) columnWidths {
	widths := columnWidths{
		file:   minFileWidth,
		status: minStatusWidth,
		nodes:  minNumWidth,
		depth:  minNumWidth,
		detail: minDetailWidth,
	}

	for _, row := range rows {
		widths.file = max(widths.file, len(row.File))
		widths.status = max(widths.status, len(row.Status))
		widths.nodes = max(widths.nodes, len(row.Nodes))
		widths.depth = max(widths.depth, len(row.Depth))
		widths.detail = max(widths.detail, len(row.Detail))
	}

	// Constrain to terminal width
	totalWidth := calculateTotalWidth(widths)
	if totalWidth > t.termWidth {
		// Reduce detail width first
		excess := totalWidth - t.termWidth
		widths.detail = max(minDetailWidth, widths.detail-excess)

		totalWidth = calculateTotalWidth(widths)
		if totalWidth > t.termWidth {
			excess = totalWidth - t.termWidth
			widths.file = max(minFileWidth, widths.file-excess)
		}
	}

	return widths
}

func calculateTotalWidth(widths columnWidths) int {
	return widths.file + widths.status + widths.nodes + widths.depth + widths.detail +
		(tablePadding * tableColumnCount)
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %-*s  %-*s  %*s  %*s  %-*s ",
		widths.file, "FILE",
		widths.status, "STATUS",
		widths.nodes, "NODES",
		widths.depth, "DEPTH",
		widths.detail, "DETAIL",
	)
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, calculateTotalWidth(widths)))
}

// formatRow formats a single table row with status-based styling.
func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	content := fmt.Sprintf(" %-*s  %-*s  %*s  %*s  %-*s",
		widths.file, truncateFilePath(row.File, widths.file),
		widths.status, string(row.Status),
		widths.nodes, row.Nodes,
		widths.depth, row.Depth,
		widths.detail, truncateString(row.Detail, widths.detail),
	)
	return t.getRowStyle(row.Status).Render(content)
}

func (t *TableFormatter) getRowStyle(status analysis.Status) lipgloss.Style {
	switch status {
	case analysis.StatusError:
		return t.styles.TableErrorRow
	case analysis.StatusDiverged:
		return t.styles.TableDivergedRow
	default:
		return lipgloss.NewStyle()
	}
}

// formatLegend formats the legend explaining the row colors.
func (t *TableFormatter) formatLegend() string {
	if !t.colorEnabled {
		return t.styles.TableLegend.Render(" Legend: error = parse failed | diverged = outline differs from reference")
	}

	errorSample := t.styles.TableErrorRow.Render(" error ")
	divergedSample := t.styles.TableDivergedRow.Render(" diverged ")

	return t.styles.TableLegend.Render(
		fmt.Sprintf(" Legend: %s = parse failed  %s = outline differs from reference",
			errorSample, divergedSample),
	)
}

// FormatTableSummary formats a summary line for table output.
func (t *TableFormatter) FormatTableSummary(totals analysis.Totals, duration string) string {
	parts := []string{fmt.Sprintf("%d files checked", totals.Files)}

	if totals.Errored > 0 {
		parts = append(parts, t.styles.Error.Render(fmt.Sprintf("%d errored", totals.Errored)))
	}
	if totals.Diverged > 0 {
		parts = append(parts, t.styles.Warning.Render(fmt.Sprintf("%d diverged", totals.Diverged)))
	}
	parts = append(parts, fmt.Sprintf("%d nodes", totals.Nodes))

	if duration != "" {
		parts = append(parts, t.styles.Dim.Render(duration))
	}

	return " " + strings.Join(parts, " | ")
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}

// truncateFilePath truncates a file path, preserving the end (filename) rather than beginning.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}
