package compare

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdxor/pkg/mdast"
	"github.com/yaklabco/mdxor/pkg/parser"
	"github.com/yaklabco/mdxor/pkg/parser/goldmark"
)

// TestCompare_AgreesWithGoldmark checks the native block structure against
// goldmark on CommonMark-only inputs.
func TestCompare_AgreesWithGoldmark(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
	}{
		{"atx headings", "# One\n\n## Two\n\ntext\n"},
		{"setext headings", "Title\n=====\n\nSub\n---\n"},
		{"paragraphs", "a\nb\n\nc\n"},
		{"tight bullet list", "- a\n- b\n"},
		{"loose ordered list", "1. one\n2. two\n\n3. three\n"},
		{"ordered start", "7) seven\n8) eight\n"},
		{"nested lists", "- a\n  - b\n  - c\n- d\n"},
		{"marker change", "- a\n+ b\n"},
		{"block quote lazy line", "> quote\nlazy\n"},
		{"nested quote", "> > deep\n"},
		{"list in quote", "> - a\n> - b\n"},
		{"fenced code", "```go\nfmt.Println()\n```\n"},
		{"tilde fence", "~~~\na\n\nb\n~~~\n"},
		{"indented code", "    code\n    more\n"},
		{"thematic breaks", "***\n\n- - -\n"},
		{"setext beats break", "a\n---\n"},
		{"item with two paragraphs", "- a\n\n  b\n"},
		{"heading after list", "- a\n# H\n"},
	}

	comparer := New(parser.OptionsForFlavor(parser.FlavorCommonMark))

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			diff, err := comparer.Compare(t.Context(), "test.md", []byte(testCase.source))
			require.NoError(t, err)
			assert.Nil(t, diff, "outlines differ:\n%s", diff.String())
		})
	}
}

func TestCompare_AgreesWithGoldmarkGFM(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
	}{
		{"table", "| a | b |\n| :-- | --: |\n| 1 | 2 |\n"},
		{"table without outer pipes", "a | b | c\n--- | :-: | ---\nx | y | z\n"},
		{"table ended by blank line", "a | b\n--- | ---\n1 | 2\n\ntext\n"},
		{"task list", "- [ ] todo\n- [x] done\n- plain\n"},
		{"strikethrough paragraph", "~~gone~~\n"},
	}

	comparer := New(parser.OptionsForFlavor(parser.FlavorGFM))

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			diff, err := comparer.Compare(t.Context(), "test.md", []byte(testCase.source))
			require.NoError(t, err)
			assert.Nil(t, diff, "outlines differ:\n%s", diff.String())
		})
	}
}

func TestCompare_SkipsFrontmatter(t *testing.T) {
	t.Parallel()

	comparer := New(parser.OptionsForFlavor(parser.FlavorGFM))
	diff, err := comparer.Compare(t.Context(), "fm.md", []byte("---\ntitle: x\n---\n\n# H\n"))
	require.NoError(t, err)
	assert.Nil(t, diff)
}

func TestCompare_ReportsDivergence(t *testing.T) {
	t.Parallel()

	// goldmark reads the import statement as a paragraph.
	comparer := New(parser.OptionsForFlavor(parser.FlavorMDX))
	diff, err := comparer.Compare(t.Context(), "doc.mdx", []byte("import A from 'a'\n\n# H\n"))
	require.NoError(t, err)
	require.NotNil(t, diff)

	out := diff.String()
	assert.True(t, strings.HasPrefix(out, "--- goldmark/doc.mdx\n+++ mdxor/doc.mdx\n"), out)
	assert.Contains(t, out, "+EmbeddedBlock form=esm")
	assert.Contains(t, out, "-Paragraph")
}

func TestCompare_InvalidEncoding(t *testing.T) {
	t.Parallel()

	_, err := New(parser.DefaultOptions()).Compare(t.Context(), "bad.md", []byte{0xff})
	require.ErrorIs(t, err, parser.ErrInputEncoding)
}

func TestTrees(t *testing.T) {
	t.Parallel()

	source := []byte("- a\n- b\n")
	native, err := parser.New(parser.OptionsForFlavor(parser.FlavorCommonMark)).Parse(t.Context(), "l.md", source)
	require.NoError(t, err)
	reference, err := goldmark.New(goldmark.FlavorCommonMark).Parse(t.Context(), "l.md", source)
	require.NoError(t, err)

	assert.Nil(t, Trees("l.md", reference, native))

	native.Root.FirstChild().Block.List.Tight = false
	diff := Trees("l.md", reference, native)
	require.NotNil(t, diff)
	assert.Equal(t, ReferenceName, diff.ReferenceName)
	assert.Equal(t, 1, diff.Missing)
	assert.Equal(t, 1, diff.Extra)
	assert.Equal(t, mdast.NodeList, Outline(native.Root)[0].Kind)
}
