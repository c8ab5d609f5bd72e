package parser

import (
	"github.com/yaklabco/mdxor/pkg/mdast"
)

// Verify checks the span invariants of a parsed tree:
//
//   - the root is a Document covering the whole input;
//   - every node's children are ordered, disjoint and enclosed by it;
//   - the inline children of a paragraph or heading tile its content range;
//   - the children of emphasis and strikethrough tile the range between
//     their delimiters;
//   - block nodes hold only blocks, and inline nodes hold only inlines.
//
// A violation is returned as an *InvariantError.
func Verify(tree *mdast.Tree) error {
	if tree == nil || tree.Root == nil || tree.Document == nil {
		return &InvariantError{Kind: mdast.NodeDocument, Detail: "missing root"}
	}

	root := tree.Root
	whole := mdast.Range(0, len(tree.Document.Content))
	if root.Kind != mdast.NodeDocument || root.Span != whole {
		return &InvariantError{Kind: root.Kind, Span: root.Span, Detail: "root must be a document spanning the input"}
	}

	return verifyNode(root)
}

func verifyNode(n *mdast.Node) error {
	fail := func(detail string) error {
		return &InvariantError{Kind: n.Kind, Span: n.Span, Detail: detail}
	}

	if n.Span.StartOffset < 0 || n.Span.StartOffset > n.Span.EndOffset {
		return fail("malformed span")
	}
	if !mdast.ValidateOrdered(n.Children, n.Span) {
		return fail("children overlap or escape the parent span")
	}

	switch {
	case n.Kind.HasInlineContent():
		content := n.Content()
		if !n.Span.Encloses(content) {
			return fail("content range escapes the node span")
		}
		if !mdast.ValidateTiling(n.Children, content) {
			return fail("inline children do not tile the content range")
		}
		for _, child := range n.Children {
			if !child.IsInline() {
				return fail("block node inside inline content")
			}
		}
	case n.IsBlock():
		for _, child := range n.Children {
			if !child.IsBlock() {
				return fail("inline node outside inline content")
			}
		}
	default:
		if err := verifyInline(n); err != nil {
			return err
		}
	}

	for _, child := range n.Children {
		if err := verifyNode(child); err != nil {
			return err
		}
	}
	return nil
}

func verifyInline(n *mdast.Node) error {
	fail := func(detail string) error {
		return &InvariantError{Kind: n.Kind, Span: n.Span, Detail: detail}
	}

	switch n.Kind {
	case mdast.NodeEmphasis, mdast.NodeStrikethrough:
		level := n.Inline.EmphasisLevel
		if level < 1 || 2*level > n.Span.Len() {
			return fail("bad delimiter level")
		}
		inner := mdast.Range(n.Span.StartOffset+level, n.Span.EndOffset-level)
		if !mdast.ValidateTiling(n.Children, inner) {
			return fail("children do not tile the emphasized range")
		}
	case mdast.NodeText, mdast.NodeCodeSpan, mdast.NodeLineBreak, mdast.NodeEmbeddedExpression:
		if len(n.Children) > 0 {
			return fail("leaf inline has children")
		}
	case mdast.NodeLink, mdast.NodeImage:
		if n.Inline.Link == nil {
			return fail("link without attributes")
		}
	}

	for _, child := range n.Children {
		if !child.IsInline() {
			return fail("block node inside inline content")
		}
	}
	return nil
}
