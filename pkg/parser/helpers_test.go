package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdxor/pkg/mdast"
)

func mustParse(t *testing.T, source string) *mdast.Tree {
	t.Helper()

	tree, err := Parse(source)
	require.NoError(t, err)
	require.NotNil(t, tree)
	return tree
}

func mustParseWith(t *testing.T, opts Options, source string) *mdast.Tree {
	t.Helper()

	tree, err := New(opts).Parse(t.Context(), "test.md", []byte(source))
	require.NoError(t, err)
	require.NotNil(t, tree)
	return tree
}

// renderInline describes inline nodes compactly, e.g. `Em(Text("a")) Text("b")`.
func renderInline(nodes []*mdast.Node) string {
	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		parts = append(parts, renderInlineNode(n))
	}
	return strings.Join(parts, " ")
}

func renderInlineNode(n *mdast.Node) string {
	switch n.Kind {
	case mdast.NodeText:
		return fmt.Sprintf("Text(%q)", n.Inline.Text)
	case mdast.NodeEmphasis:
		if n.Inline.EmphasisLevel == 2 {
			return "Strong(" + renderInline(n.Children) + ")"
		}
		return "Em(" + renderInline(n.Children) + ")"
	case mdast.NodeStrikethrough:
		return "Del(" + renderInline(n.Children) + ")"
	case mdast.NodeLink, mdast.NodeImage:
		return fmt.Sprintf("%s[%s](%s)", n.Kind, n.Inline.Link.Destination, renderInline(n.Children))
	case mdast.NodeCodeSpan:
		return fmt.Sprintf("Code(%q)", n.Inline.Text)
	case mdast.NodeLineBreak:
		if n.Inline.Hard {
			return "HardBreak"
		}
		return "Break"
	case mdast.NodeEmbeddedExpression:
		if n.Inline.Embedded.Form == mdast.EmbedJSX {
			return "JSX(" + n.Inline.Embedded.Name + ")"
		}
		return fmt.Sprintf("Expr(%q)", n.Inline.Embedded.Raw)
	default:
		return n.Kind.String()
	}
}

// renderBlocks describes the block structure, e.g. `List[ListItem[Paragraph]]`.
func renderBlocks(nodes []*mdast.Node) string {
	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if !n.IsBlock() {
			continue
		}
		part := n.Kind.String()
		if inner := renderBlocks(n.Children); inner != "" {
			part += "[" + inner + "]"
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, " ")
}

// firstLeaf returns the first paragraph or heading in tree.
func firstLeaf(t *testing.T, tree *mdast.Tree) *mdast.Node {
	t.Helper()

	leaf := mdast.FindFirst(tree.Root, func(n *mdast.Node) bool {
		return n.Kind.HasInlineContent()
	})
	require.NotNil(t, leaf, "no paragraph or heading")
	return leaf
}
