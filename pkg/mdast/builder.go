package mdast

// NewNode creates a new node of the specified kind covering span.
// Attribute structs are allocated for the node's level.
func NewNode(kind NodeKind, span SourceRange) *Node {
	node := &Node{Kind: kind, Span: span}
	if kind.IsInline() {
		node.Inline = NewInlineAttrs()
	} else {
		node.Block = NewBlockAttrs()
	}
	return node
}

// NewText creates a text node with the given literal.
func NewText(span SourceRange, text string) *Node {
	node := NewNode(NodeText, span)
	node.Inline.Text = text
	return node
}

// AppendChild appends a child node to a parent.
func AppendChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}
	parent.Children = append(parent.Children, child)
}

// ExtendSpan grows n's span so that it encloses r.
func ExtendSpan(n *Node, r SourceRange) {
	if n == nil {
		return
	}
	n.Span.StartOffset = min(n.Span.StartOffset, r.StartOffset)
	n.Span.EndOffset = max(n.Span.EndOffset, r.EndOffset)
}
