package mdast

// NodeKind classifies the type of an AST node.
type NodeKind uint16

// Node kinds for block-level and inline-level Markdown/MDX elements.
// The set is closed: every pass switches over it exhaustively.
const (
	NodeDocument NodeKind = iota

	// Block-level nodes.
	NodeParagraph
	NodeHeading
	NodeList
	NodeListItem
	NodeCodeBlock
	NodeBlockQuote
	NodeThematicBreak
	NodeEmbeddedBlock
	NodeFrontmatter
	NodeTable
	NodeTableRow
	NodeTableCell

	// Inline-level nodes.
	NodeText
	NodeEmphasis
	NodeStrikethrough
	NodeLink
	NodeImage
	NodeCodeSpan
	NodeLineBreak
	NodeEmbeddedExpression

	nodeKindCount
)

//nolint:gochecknoglobals // Read-only lookup table.
var nodeKindNames = [nodeKindCount]string{
	NodeDocument:           "Document",
	NodeParagraph:          "Paragraph",
	NodeHeading:            "Heading",
	NodeList:               "List",
	NodeListItem:           "ListItem",
	NodeCodeBlock:          "CodeBlock",
	NodeBlockQuote:         "BlockQuote",
	NodeThematicBreak:      "ThematicBreak",
	NodeEmbeddedBlock:      "EmbeddedBlock",
	NodeFrontmatter:        "Frontmatter",
	NodeTable:              "Table",
	NodeTableRow:           "TableRow",
	NodeTableCell:          "TableCell",
	NodeText:               "Text",
	NodeEmphasis:           "Emphasis",
	NodeStrikethrough:      "Strikethrough",
	NodeLink:               "Link",
	NodeImage:              "Image",
	NodeCodeSpan:           "CodeSpan",
	NodeLineBreak:          "LineBreak",
	NodeEmbeddedExpression: "EmbeddedExpression",
}

// String returns the kind name without the Node prefix.
func (k NodeKind) String() string {
	if k < nodeKindCount {
		return nodeKindNames[k]
	}
	return "Unknown"
}

// ParseNodeKind returns the kind with the given name.
func ParseNodeKind(name string) (NodeKind, bool) {
	for kind, kindName := range nodeKindNames {
		if kindName == name {
			return NodeKind(kind), true
		}
	}
	return 0, false
}

// IsBlock reports whether the kind is a block-level kind.
func (k NodeKind) IsBlock() bool {
	return k < NodeText
}

// IsInline reports whether the kind is an inline-level kind.
func (k NodeKind) IsInline() bool {
	return k >= NodeText && k < nodeKindCount
}

// HasInlineContent reports whether nodes of this kind carry resolved inline children.
func (k NodeKind) HasInlineContent() bool {
	return k == NodeParagraph || k == NodeHeading || k == NodeTableCell
}

// Node represents a single node in the Markdown AST.
// A node exclusively owns its children; there are no parent or sibling links.
type Node struct {
	// Kind identifies what type of node this is.
	Kind NodeKind

	// Span is the byte range of the node in the source document.
	Span SourceRange

	// Children are the ordered child nodes.
	Children []*Node

	// Block holds attributes for block-level nodes.
	Block *BlockAttrs

	// Inline holds attributes for inline-level nodes.
	Inline *InlineAttrs
}

// IsBlock returns true if this is a block-level node.
func (n *Node) IsBlock() bool {
	return n.Kind.IsBlock()
}

// IsInline returns true if this is an inline-level node.
func (n *Node) IsInline() bool {
	return n.Kind.IsInline()
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return len(n.Children) > 0
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	return len(n.Children)
}

// FirstChild returns the first child, or nil.
func (n *Node) FirstChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[0]
}

// LastChild returns the last child, or nil.
func (n *Node) LastChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[len(n.Children)-1]
}

// Content returns the range tiled by the inline children of a paragraph,
// heading or table cell.
// For other kinds it returns the node span.
func (n *Node) Content() SourceRange {
	if n.Block != nil && n.Kind.HasInlineContent() {
		return n.Block.Content
	}
	return n.Span
}
