package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdxor/internal/ui/pretty"
	"github.com/yaklabco/mdxor/pkg/mdast"
	"github.com/yaklabco/mdxor/pkg/parser"
)

func TestFormatTree(t *testing.T) {
	t.Parallel()

	tree, err := parser.Parse("# Title\n\nHello *world*\n\n```go\nx := 1\n```\n")
	require.NoError(t, err)

	out := pretty.NewStyles(false).FormatTree(tree)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")

	assert.True(t, strings.HasPrefix(lines[0], "Document"), "header: %q", lines[0])
	assert.Contains(t, lines[0], "lines")
	assert.Contains(t, out, "├─ Heading 1:1-")
	assert.Contains(t, out, "level=1")
	assert.Contains(t, out, `"Title"`)
	assert.Contains(t, out, "Emphasis")
	assert.Contains(t, out, `"world"`)
	assert.Contains(t, out, "└─ CodeBlock")
	assert.Contains(t, out, "fenced lang=go")
}

func TestFormatTree_Nil(t *testing.T) {
	t.Parallel()

	assert.Empty(t, pretty.NewStyles(false).FormatTree(nil))
}

func TestDescribeNode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		node *mdast.Node
		want []string
	}{
		{
			name: "nil",
			node: nil,
			want: nil,
		},
		{
			name: "setext heading",
			node: &mdast.Node{Kind: mdast.NodeHeading, Block: &mdast.BlockAttrs{HeadingLevel: 2, Setext: true}},
			want: []string{"level=2", "setext"},
		},
		{
			name: "ordered list",
			node: &mdast.Node{Kind: mdast.NodeList, Block: &mdast.BlockAttrs{
				List: &mdast.ListAttrs{Ordered: true, StartNumber: 3, Tight: true},
			}},
			want: []string{"ordered", "start=3", "tight"},
		},
		{
			name: "bullet list",
			node: &mdast.Node{Kind: mdast.NodeList, Block: &mdast.BlockAttrs{
				List: &mdast.ListAttrs{BulletMarker: "-"},
			}},
			want: []string{`bullet="-"`, "loose"},
		},
		{
			name: "detected language",
			node: &mdast.Node{Kind: mdast.NodeCodeBlock, Block: &mdast.BlockAttrs{
				CodeBlock: &mdast.CodeBlockAttrs{Indented: true, DetectedLanguage: "Go"},
			}},
			want: []string{"indented", "detected=Go"},
		},
		{
			name: "jsx block",
			node: &mdast.Node{Kind: mdast.NodeEmbeddedBlock, Block: &mdast.BlockAttrs{
				Embedded: &mdast.EmbeddedAttrs{Form: mdast.EmbedJSX, Name: "Card", Raw: "<Card />"},
			}},
			want: []string{"form=jsx", "name=Card", `"<Card />"`},
		},
		{
			name: "reference link",
			node: &mdast.Node{Kind: mdast.NodeLink, Inline: &mdast.InlineAttrs{Link: &mdast.LinkAttrs{
				Destination:    "/url",
				ReferenceLabel: "ref",
				ReferenceStyle: mdast.RefStyleShortcut,
			}}},
			want: []string{`dest="/url"`, "ref=shortcut", `label="ref"`},
		},
		{
			name: "strong",
			node: &mdast.Node{Kind: mdast.NodeEmphasis, Inline: &mdast.InlineAttrs{EmphasisLevel: 2}},
			want: []string{"level=2"},
		},
		{
			name: "hard break",
			node: &mdast.Node{Kind: mdast.NodeLineBreak, Inline: &mdast.InlineAttrs{Hard: true}},
			want: []string{"hard"},
		},
		{
			name: "expression",
			node: &mdast.Node{Kind: mdast.NodeEmbeddedExpression, Inline: &mdast.InlineAttrs{
				Embedded: &mdast.EmbeddedAttrs{Form: mdast.EmbedExpression, Raw: "a + b"},
			}},
			want: []string{"form=expression", `"a + b"`},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.want, pretty.DescribeNode(testCase.node))
		})
	}
}

func TestQuoteTruncated(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `"short"`, pretty.QuoteTruncated("short", 10))
	assert.Equal(t, `"héll"…`, pretty.QuoteTruncated("héllo world", 4))
	assert.Equal(t, `"a\nb"`, pretty.QuoteTruncated("a\nb", 10))
}
