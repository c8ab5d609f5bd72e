package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdxor/internal/ui/pretty"
	"github.com/yaklabco/mdxor/pkg/analysis"
	"github.com/yaklabco/mdxor/pkg/compare"
)

func sampleFiles() []analysis.FileAnalysis {
	return []analysis.FileAnalysis{
		{
			Path:   "docs/broken.md",
			Status: analysis.StatusError,
			Error:  "invalid UTF-8 at offset 3",
		},
		{
			Path:    "docs/guide.md",
			Status:  analysis.StatusDiverged,
			Stats:   &analysis.TreeStats{Nodes: 12, MaxDepth: 3},
			Missing: 1,
			Extra:   2,
		},
		{
			Path:   "docs/page.mdx",
			Status: analysis.StatusOK,
			Stats:  &analysis.TreeStats{Nodes: 7, MaxDepth: 2, Embedded: map[string]int{"jsx": 2, "esm": 1}},
		},
	}
}

func TestFileToTableRow(t *testing.T) {
	t.Parallel()

	files := sampleFiles()

	errRow := pretty.FileToTableRow(files[0])
	assert.Equal(t, "-", errRow.Nodes)
	assert.Equal(t, "invalid UTF-8 at offset 3", errRow.Detail)

	divRow := pretty.FileToTableRow(files[1])
	assert.Equal(t, "12", divRow.Nodes)
	assert.Equal(t, "3", divRow.Depth)
	assert.Equal(t, "-1 missing, +2 extra", divRow.Detail)

	okRow := pretty.FileToTableRow(files[2])
	assert.Equal(t, "3 embedded", okRow.Detail)
}

func TestTableFormatter_FormatTable(t *testing.T) {
	t.Parallel()

	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 0)
	out := formatter.FormatTable(sampleFiles())

	lines := strings.Split(out, "\n")
	assert.Contains(t, lines[0], "FILE")
	assert.Contains(t, lines[0], "STATUS")
	assert.Contains(t, lines[0], "DETAIL")
	assert.Contains(t, out, "docs/broken.md")
	assert.Contains(t, out, "diverged")
	assert.Contains(t, out, "Legend:")
}

func TestTableFormatter_Empty(t *testing.T) {
	t.Parallel()

	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 80)
	assert.Empty(t, formatter.FormatTable(nil))
}

func TestTableFormatter_TruncatesToTerminal(t *testing.T) {
	t.Parallel()

	files := []analysis.FileAnalysis{{
		Path:   strings.Repeat("nested/", 20) + "file.md",
		Status: analysis.StatusError,
		Error:  strings.Repeat("x", 200),
	}}

	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 80)
	out := formatter.FormatTable(files)

	assert.Contains(t, out, "...")
	assert.Contains(t, out, "file.md")
}

func TestTableFormatter_FormatTableSummary(t *testing.T) {
	t.Parallel()

	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 80)
	out := formatter.FormatTableSummary(analysis.Totals{Files: 3, Errored: 1, Diverged: 1, Nodes: 19}, "12ms")

	assert.Equal(t, " 3 files checked | 1 errored | 1 diverged | 19 nodes | 12ms", out)
}

func TestFormatDiff(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Empty(t, styles.FormatDiff(nil))

	diff := compare.DiffLines("doc.md", []string{"Heading", "Paragraph"}, []string{"Heading", "List"})
	diff.ReferenceName = compare.ReferenceName
	diff.CandidateName = compare.CandidateName

	out := styles.FormatDiff(diff)
	assert.Equal(t, diff.String(), out)
	assert.Contains(t, out, "-Paragraph")
	assert.Contains(t, out, "+List")

	assert.Equal(t, "-1 missing, +2 extra", styles.FormatDiffStat(1, 2))
}
