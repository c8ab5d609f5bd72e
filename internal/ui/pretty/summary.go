package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/mdxor/pkg/analysis"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(count int, singular, many string) string {
	if count == 1 {
		return singular
	}
	return many
}

// FormatSummaryOneLine formats run totals as a single line.
// Example: "12 files parsed, 1 errored, 2 diverged, 840 nodes".
func (s *Styles) FormatSummaryOneLine(totals analysis.Totals) string {
	if !totals.HasErrors() && !totals.HasDivergence() {
		return s.Success.Render("All files parsed") +
			s.Dim.Render(fmt.Sprintf(" (%d %s, %d nodes)",
				totals.Files, plural(totals.Files, wordFile, wordFiles), totals.Nodes)) + "\n"
	}

	parts := []string{fmt.Sprintf("%d %s parsed", totals.Parsed, plural(totals.Parsed, wordFile, wordFiles))}

	if totals.Errored > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d errored", totals.Errored)))
	}
	if totals.Diverged > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d diverged", totals.Diverged)))
	}
	parts = append(parts, fmt.Sprintf("%d nodes", totals.Nodes))

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run totals as a summary block.
func (s *Styles) FormatSummary(totals analysis.Totals) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files checked:     " +
		s.SummaryValue.Render(strconv.Itoa(totals.Files)) + "\n")
	builder.WriteString("  Files parsed:      " +
		s.SummaryValue.Render(strconv.Itoa(totals.Parsed)) + "\n")

	if totals.Errored > 0 {
		builder.WriteString("  Files errored:     " +
			s.Failure.Render(strconv.Itoa(totals.Errored)) + "\n")
	}
	if totals.Diverged > 0 {
		builder.WriteString("  Files diverged:    " +
			s.Warning.Render(strconv.Itoa(totals.Diverged)) + "\n")
	}

	builder.WriteString("\n")

	builder.WriteString("  Nodes:             " +
		s.SummaryValue.Render(strconv.Itoa(totals.Nodes)) + "\n")
	builder.WriteString("    Blocks:          " +
		s.SummaryValue.Render(strconv.Itoa(totals.Blocks)) + "\n")
	builder.WriteString("    Inlines:         " +
		s.SummaryValue.Render(strconv.Itoa(totals.Inlines)) + "\n")
	if totals.Embedded > 0 {
		builder.WriteString("    Embedded:        " +
			s.SummaryValue.Render(strconv.Itoa(totals.Embedded)) + "\n")
	}
	builder.WriteString("  Max depth:         " +
		s.SummaryValue.Render(strconv.Itoa(totals.MaxDepth)) + "\n")

	builder.WriteString("\n")

	switch {
	case totals.HasErrors():
		builder.WriteString(s.Failure.Render("Check failed with errors"))
	case totals.HasDivergence():
		builder.WriteString(s.Warning.Render("Check completed with divergences"))
	default:
		builder.WriteString(s.Success.Render("Check passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
