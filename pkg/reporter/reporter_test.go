package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdxor/pkg/compare"
	"github.com/yaklabco/mdxor/pkg/parser"
	"github.com/yaklabco/mdxor/pkg/reporter"
	"github.com/yaklabco/mdxor/pkg/runner"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{name: "empty defaults to text", input: "", want: reporter.FormatText},
		{name: "text", input: "text", want: reporter.FormatText},
		{name: "table", input: "table", want: reporter.FormatTable},
		{name: "json", input: "json", want: reporter.FormatJSON},
		{name: "yaml", input: "yaml", want: reporter.FormatYAML},
		{name: "summary", input: "summary", want: reporter.FormatSummary},
		{name: "unknown format", input: "xml", wantErr: true},
		{name: "sarif is gone", input: "sarif", wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, err := reporter.ParseFormat(testCase.input)
			if testCase.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
			assert.True(t, got.IsValid())
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  reporter.Format
		wantErr bool
	}{
		{name: "text reporter", format: reporter.FormatText},
		{name: "table reporter", format: reporter.FormatTable},
		{name: "json reporter", format: reporter.FormatJSON},
		{name: "yaml reporter", format: reporter.FormatYAML},
		{name: "summary reporter", format: reporter.FormatSummary},
		{name: "empty defaults to text", format: ""},
		{name: "unknown format", format: "xml", wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			rep, err := reporter.New(reporter.Options{Writer: &bytes.Buffer{}, Format: testCase.format})
			if testCase.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, rep)
		})
	}
}

func TestDefaultOptions(t *testing.T) {
	t.Parallel()

	opts := reporter.DefaultOptions()
	assert.Equal(t, reporter.FormatText, opts.Format)
	assert.Equal(t, "auto", opts.Color)
	assert.True(t, opts.ShowSummary)
	assert.True(t, opts.ShowDiff)
	assert.NotNil(t, opts.Writer)
}

// createTestResult builds a run with one clean, one diverged and one failed file.
func createTestResult(t *testing.T) *runner.Result {
	t.Helper()

	clean, err := parser.Parse("# Title\n\nSome *text*.\n")
	require.NoError(t, err)
	clean.Path = "docs/clean.md"

	diverged, err := parser.Parse("import A from 'a'\n\n# H\n")
	require.NoError(t, err)
	diverged.Path = "docs/diverged.mdx"

	diff := compare.DiffLines(diverged.Path, []string{"Paragraph", "Heading"}, []string{"EmbeddedBlock", "Heading"})
	diff.ReferenceName = compare.ReferenceName
	diff.CandidateName = compare.CandidateName

	return &runner.Result{
		Files: []runner.FileOutcome{
			{Path: clean.Path, Tree: clean, Duration: time.Millisecond},
			{Path: diverged.Path, Tree: diverged, Diff: diff, Duration: time.Millisecond},
			{Path: "docs/broken.md", Error: fmt.Errorf("docs/broken.md: %w", parser.ErrInputEncoding)},
		},
		Stats: runner.Stats{FilesDiscovered: 3, FilesParsed: 2, FilesErrored: 1, FilesDiverged: 1},
	}
}

func TestTextReporter_NilResult(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep, err := reporter.New(reporter.Options{Writer: &buf, Format: reporter.FormatText, Color: "never", ShowSummary: true})
	require.NoError(t, err)

	totals, err := rep.Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, totals.Files)
	assert.Contains(t, buf.String(), "No files to check.")
}

func TestTextReporter_Result(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep, err := reporter.New(reporter.Options{
		Writer:      &buf,
		Format:      reporter.FormatText,
		Color:       "never",
		ShowSummary: true,
		ShowDiff:    true,
	})
	require.NoError(t, err)

	totals, err := rep.Report(context.Background(), createTestResult(t))
	require.NoError(t, err)
	assert.Equal(t, 3, totals.Files)
	assert.Equal(t, 1, totals.Errored)
	assert.Equal(t, 1, totals.Diverged)

	out := buf.String()
	assert.Contains(t, out, "docs/broken.md: error:")
	assert.Contains(t, out, "not valid UTF-8")
	assert.Contains(t, out, "docs/diverged.mdx: diverged (-1 missing, +1 extra)")
	assert.Contains(t, out, "    -Paragraph")
	assert.Contains(t, out, "    +EmbeddedBlock")
	assert.NotContains(t, out, "docs/clean.md", "clean files are listed only in verbose mode")
	assert.Contains(t, out, "1 errored")

	// Errors sort before divergences.
	assert.Less(t, strings.Index(out, "broken.md"), strings.Index(out, "diverged.mdx"))
}

func TestTextReporter_Verbose(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep, err := reporter.New(reporter.Options{Writer: &buf, Format: reporter.FormatText, Color: "never", Verbose: true})
	require.NoError(t, err)

	_, err = rep.Report(context.Background(), createTestResult(t))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "docs/clean.md: ok (")
}

func TestJSONReporter_Result(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep, err := reporter.New(reporter.Options{Writer: &buf, Format: reporter.FormatJSON})
	require.NoError(t, err)

	_, err = rep.Report(context.Background(), createTestResult(t))
	require.NoError(t, err)

	var decoded struct {
		Version string `json:"version"`
		Files   []struct {
			Path      string `json:"path"`
			Status    string `json:"status"`
			ErrorKind string `json:"errorKind"`
			Missing   int    `json:"missing"`
			Stats     *struct {
				Nodes int `json:"nodes"`
			} `json:"stats"`
		} `json:"files"`
		Summary struct {
			Files    int `json:"files"`
			Errored  int `json:"errored"`
			Diverged int `json:"diverged"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "1.0.0", decoded.Version)
	assert.Equal(t, 3, decoded.Summary.Files)
	require.Len(t, decoded.Files, 3)
	assert.Equal(t, "error", decoded.Files[0].Status)
	assert.Equal(t, "encoding", decoded.Files[0].ErrorKind)
	assert.Nil(t, decoded.Files[0].Stats)
	assert.Equal(t, "diverged", decoded.Files[1].Status)
	assert.Equal(t, 1, decoded.Files[1].Missing)
	require.NotNil(t, decoded.Files[2].Stats)
	assert.Positive(t, decoded.Files[2].Stats.Nodes)
}

func TestJSONReporter_Compact(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep, err := reporter.New(reporter.Options{Writer: &buf, Format: reporter.FormatJSON, Compact: true})
	require.NoError(t, err)

	_, err = rep.Report(context.Background(), createTestResult(t))
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(buf.String(), "\n"), "compact output is a single line")
}

func TestYAMLReporter_Result(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep, err := reporter.New(reporter.Options{Writer: &buf, Format: reporter.FormatYAML})
	require.NoError(t, err)

	_, err = rep.Report(context.Background(), createTestResult(t))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded, "files")
	assert.Contains(t, decoded, "by_kind")

	summary, ok := decoded["summary"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 3, summary["files"])
}

func TestTableReporter_Result(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep, err := reporter.New(reporter.Options{Writer: &buf, Format: reporter.FormatTable, Color: "never", ShowSummary: true})
	require.NoError(t, err)

	_, err = rep.Report(context.Background(), createTestResult(t))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "FILE")
	assert.Contains(t, out, "docs/clean.md")
	assert.Contains(t, out, "3 files checked")
	assert.Contains(t, out, "1 diverged")
}

func TestWriteTree(t *testing.T) {
	t.Parallel()

	tree, err := parser.Parse("# Hi\n\n<Card />\n\n[x]\n\n[x]: /u\n")
	require.NoError(t, err)
	tree.Path = "page.mdx"

	t.Run("tree", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, reporter.WriteTree(reporter.Options{Writer: &buf, Color: "never"}, tree, reporter.TreeFormatTree))
		assert.Contains(t, buf.String(), "Document page.mdx")
		assert.Contains(t, buf.String(), "form=jsx")
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, reporter.WriteTree(reporter.Options{Writer: &buf}, tree, reporter.TreeFormatJSON))

		var view reporter.TreeView
		require.NoError(t, json.Unmarshal(buf.Bytes(), &view))
		assert.Equal(t, "page.mdx", view.Path)
		assert.Equal(t, "Document", view.Root.Kind)
		assert.Equal(t, [2]int{0, len(tree.Document.Content)}, view.Root.Span)
		require.NotEmpty(t, view.Root.Children)
		assert.Equal(t, "Heading", view.Root.Children[0].Kind)
		assert.InDelta(t, 1, view.Root.Children[0].Attrs["level"], 0)
	})

	t.Run("yaml", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, reporter.WriteTree(reporter.Options{Writer: &buf}, tree, reporter.TreeFormatYAML))

		var view reporter.TreeView
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &view))
		assert.Equal(t, "Document", view.Root.Kind)
		assert.Equal(t, tree.Document.LineCount(), view.Lines)
	})

	t.Run("unknown", func(t *testing.T) {
		t.Parallel()

		err := reporter.WriteTree(reporter.Options{Writer: &bytes.Buffer{}}, tree, "xml")
		require.Error(t, err)
	})
}

func TestParseTreeFormat(t *testing.T) {
	t.Parallel()

	for input, want := range map[string]reporter.TreeFormat{
		"":     reporter.TreeFormatTree,
		"tree": reporter.TreeFormatTree,
		"json": reporter.TreeFormatJSON,
		"yaml": reporter.TreeFormatYAML,
	} {
		got, err := reporter.ParseTreeFormat(input)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := reporter.ParseTreeFormat("table")
	require.Error(t, err)
}

func TestWriteDiff(t *testing.T) {
	t.Parallel()

	t.Run("identical", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, reporter.WriteDiff(reporter.Options{Writer: &buf, Color: "never", ShowSummary: true}, "a.md", nil))
		assert.Equal(t, "a.md: outlines match goldmark\n", buf.String())
	})

	t.Run("changes", func(t *testing.T) {
		t.Parallel()

		diff := compare.DiffLines("a.md", []string{"Paragraph"}, []string{"List", "ListItem"})
		diff.ReferenceName = compare.ReferenceName
		diff.CandidateName = compare.CandidateName

		var buf bytes.Buffer
		require.NoError(t, reporter.WriteDiff(reporter.Options{Writer: &buf, Color: "never", ShowSummary: true}, "a.md", diff))

		out := buf.String()
		assert.True(t, strings.HasPrefix(out, "diff goldmark/a.md mdxor/a.md\n"))
		assert.Contains(t, out, "-Paragraph")
		assert.Contains(t, out, "+ListItem")
		assert.Contains(t, out, "-1 missing, +2 extra")
	})
}
