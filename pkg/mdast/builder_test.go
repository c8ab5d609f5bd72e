package mdast_test

import (
	"testing"

	"github.com/yaklabco/mdxor/pkg/mdast"
)

func TestNewNode(t *testing.T) {
	t.Parallel()

	block := mdast.NewNode(mdast.NodeParagraph, mdast.Range(3, 8))
	if block.Kind != mdast.NodeParagraph || block.Span != mdast.Range(3, 8) {
		t.Errorf("unexpected node %+v", block)
	}
	if block.Block == nil || block.Inline != nil {
		t.Error("expected block attrs only")
	}

	inline := mdast.NewText(mdast.Range(0, 2), "hi")
	if inline.Inline == nil || inline.Block != nil || inline.Inline.Text != "hi" {
		t.Error("expected inline attrs with text")
	}
}

func TestAppendChild(t *testing.T) {
	t.Parallel()

	parent := mdast.NewNode(mdast.NodeDocument, mdast.Range(0, 0))
	para := mdast.NewNode(mdast.NodeParagraph, mdast.Range(0, 0))
	rule := mdast.NewNode(mdast.NodeThematicBreak, mdast.Range(0, 0))

	mdast.AppendChild(parent, para)
	mdast.AppendChild(parent, nil)
	mdast.AppendChild(nil, rule)
	mdast.AppendChild(parent, rule)

	if parent.ChildCount() != 2 || parent.FirstChild() != para || parent.LastChild() != rule {
		t.Errorf("unexpected children %v", parent.Children)
	}
}

func TestExtendSpan(t *testing.T) {
	t.Parallel()

	node := mdast.NewNode(mdast.NodeList, mdast.Range(5, 10))
	mdast.ExtendSpan(node, mdast.Range(8, 20))
	mdast.ExtendSpan(node, mdast.Range(2, 4))

	if node.Span != mdast.Range(2, 20) {
		t.Errorf("expected [2,20), got %+v", node.Span)
	}
}
