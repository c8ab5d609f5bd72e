package mdast

// Tree is the result of parsing one document.
// Root has Kind NodeDocument and spans the whole input.
type Tree struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Document is the parsed input.
	Document *Document

	// Root is the document node.
	Root *Node
}

// Text returns the source bytes covered by n.
func (t *Tree) Text(n *Node) []byte {
	if t == nil || t.Document == nil || n == nil {
		return nil
	}
	return t.Document.Slice(n.Span)
}

// Position returns the line/column range of n.
func (t *Tree) Position(n *Node) SourcePosition {
	if t == nil || t.Document == nil || n == nil {
		return SourcePosition{}
	}
	return t.Document.Position(n.Span)
}
