package goldmark

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/yaklabco/mdxor/pkg/mdast"
)

// mapper converts a goldmark AST into an mdast.Node tree.
type mapper struct {
	content []byte
}

func newMapper(content []byte) *mapper {
	return &mapper{content: content}
}

func (m *mapper) mapDocument(gmDoc ast.Node) *mdast.Node {
	doc := mdast.NewNode(mdast.NodeDocument, mdast.Range(0, len(m.content)))
	m.mapChildren(gmDoc, doc)
	return doc
}

// mapChildren maps the children of gmParent onto parent, then grows parent's
// span to cover them.
func (m *mapper) mapChildren(gmParent ast.Node, parent *mdast.Node) {
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		for _, mdNode := range m.mapNode(child) {
			mdast.AppendChild(parent, mdNode)
		}
	}
	coverChildren(parent)
}

// mapNode converts one goldmark node. A text node ending in a line break
// yields two nodes.
func (m *mapper) mapNode(gmNode ast.Node) []*mdast.Node {
	var node *mdast.Node

	switch gmn := gmNode.(type) {
	// Block-level nodes.
	case *ast.Heading:
		node = m.mapLeaf(gmn, mdast.NodeHeading)
		node.Block.HeadingLevel = gmn.Level
		node.Block.Setext = m.isSetext(gmn)

	case *ast.Paragraph, *ast.TextBlock:
		node = m.mapLeaf(gmn, mdast.NodeParagraph)

	case *ast.List:
		node = m.mapList(gmn)

	case *ast.ListItem:
		node = m.mapContainer(gmn, mdast.NodeListItem)
		node.Block.ContentIndent = gmn.Offset
		node.Block.ListItem = &mdast.ListItemAttrs{Checked: taskState(gmn)}

	case *ast.Blockquote:
		node = m.mapContainer(gmn, mdast.NodeBlockQuote)

	case *ast.FencedCodeBlock:
		node = m.mapFencedCodeBlock(gmn)

	case *ast.CodeBlock:
		node = m.mapIndentedCodeBlock(gmn)

	case *ast.ThematicBreak:
		node = mdast.NewNode(mdast.NodeThematicBreak, mdast.SourceRange{})

	case *ast.HTMLBlock:
		node = m.mapHTMLBlock(gmn)

	case *east.Table:
		node = m.mapContainer(gmn, mdast.NodeTable)
		aligns := make([]mdast.CellAlignment, len(gmn.Alignments))
		for i, a := range gmn.Alignments {
			aligns[i] = cellAlignment(a)
		}
		node.Block.Table = &mdast.TableAttrs{Alignments: aligns}

	case *east.TableHeader:
		node = m.mapTableRow(gmn, true)

	case *east.TableRow:
		node = m.mapTableRow(gmn, false)

	case *east.TableCell:
		node = m.mapContainer(gmn, mdast.NodeTableCell)
		node.Block.Content = node.Span
		node.Block.Cell = &mdast.TableCellAttrs{Align: cellAlignment(gmn.Alignment)}

	case *east.TaskCheckBox:
		// Recorded on the list item by taskState.
		return nil

	// Inline-level nodes.
	case *ast.Text:
		return m.mapText(gmn)

	case *ast.String:
		node = mdast.NewText(mdast.SourceRange{}, string(gmn.Value))

	case *ast.Emphasis:
		node = mdast.NewNode(mdast.NodeEmphasis, mdast.SourceRange{})
		node.Inline.EmphasisLevel = gmn.Level
		m.mapChildren(gmn, node)

	case *east.Strikethrough:
		node = mdast.NewNode(mdast.NodeStrikethrough, mdast.SourceRange{})
		node.Inline.EmphasisLevel = 2
		m.mapChildren(gmn, node)

	case *ast.CodeSpan:
		node = m.mapCodeSpan(gmn)

	case *ast.Link:
		node = m.mapLink(gmn, mdast.NodeLink, gmn.Destination, gmn.Title)

	case *ast.Image:
		node = m.mapLink(gmn, mdast.NodeImage, gmn.Destination, gmn.Title)

	case *ast.AutoLink:
		node = m.mapAutoLink(gmn)

	case *ast.RawHTML:
		node = m.mapRawHTML(gmn)

	default:
		// Unknown node types are flattened into their children.
		var nodes []*mdast.Node
		for child := gmNode.FirstChild(); child != nil; child = child.NextSibling() {
			nodes = append(nodes, m.mapNode(child)...)
		}
		return nodes
	}

	return []*mdast.Node{node}
}

// linesRange returns the range covered by a block's lines.
func linesRange(gmNode ast.Node) (mdast.SourceRange, bool) {
	lines := gmNode.Lines()
	if lines.Len() == 0 {
		return mdast.SourceRange{}, false
	}
	first := lines.At(0)
	last := lines.At(lines.Len() - 1)
	return mdast.Range(first.Start, last.Stop), true
}

// mapLeaf maps a paragraph or heading. Its content is the range of its
// lines, with the trailing line ending trimmed.
func (m *mapper) mapLeaf(gmNode ast.Node, kind mdast.NodeKind) *mdast.Node {
	span, _ := linesRange(gmNode)
	span.EndOffset = trimNewline(m.content, span.StartOffset, span.EndOffset)

	node := mdast.NewNode(kind, span)
	node.Block.Content = span
	m.mapChildren(gmNode, node)
	return node
}

func (m *mapper) mapContainer(gmNode ast.Node, kind mdast.NodeKind) *mdast.Node {
	node := mdast.NewNode(kind, mdast.SourceRange{})
	m.mapChildren(gmNode, node)
	return node
}

// isSetext reports whether the heading is followed by an underline rather
// than introduced by hashes.
func (m *mapper) isSetext(h *ast.Heading) bool {
	span, ok := linesRange(h)
	if !ok {
		return false
	}
	lineStart := bytes.LastIndexByte(m.content[:span.StartOffset], '\n') + 1
	return !bytes.HasPrefix(bytes.TrimLeft(m.content[lineStart:span.StartOffset], " "), []byte("#"))
}

func (m *mapper) mapList(list *ast.List) *mdast.Node {
	listAttrs := &mdast.ListAttrs{
		Ordered:     list.IsOrdered(),
		StartNumber: list.Start,
		Tight:       list.IsTight,
	}
	if list.IsOrdered() {
		listAttrs.Delimiter = string(list.Marker)
	} else {
		listAttrs.BulletMarker = string(list.Marker)
	}

	node := mdast.NewNode(mdast.NodeList, mdast.SourceRange{})
	node.Block.List = listAttrs
	m.mapChildren(list, node)
	return node
}

// mapTableRow maps a header or body row and numbers its cells.
func (m *mapper) mapTableRow(row ast.Node, header bool) *mdast.Node {
	node := m.mapContainer(row, mdast.NodeTableRow)
	node.Block.Header = header
	for col, cell := range node.Children {
		if cell.Block != nil && cell.Block.Cell != nil {
			cell.Block.Cell.Column = col
			cell.Block.Header = header
		}
	}
	return node
}

func cellAlignment(a east.Alignment) mdast.CellAlignment {
	switch a {
	case east.AlignLeft:
		return mdast.AlignLeft
	case east.AlignCenter:
		return mdast.AlignCenter
	case east.AlignRight:
		return mdast.AlignRight
	default:
		return mdast.AlignNone
	}
}

// taskState returns the checkbox state of an item whose first paragraph
// opens with a task marker, or nil.
func taskState(item *ast.ListItem) *bool {
	para := item.FirstChild()
	if para == nil {
		return nil
	}
	box, ok := para.FirstChild().(*east.TaskCheckBox)
	if !ok {
		return nil
	}
	checked := box.IsChecked
	return &checked
}

func (m *mapper) mapFencedCodeBlock(codeBlock *ast.FencedCodeBlock) *mdast.Node {
	info := ""
	if codeBlock.Info != nil {
		info = string(codeBlock.Info.Segment.Value(m.content))
	}

	fenceChar, fenceLength := m.detectFenceStyle(codeBlock)
	attrs := &mdast.CodeBlockAttrs{
		FenceChar:   fenceChar,
		FenceLength: fenceLength,
		Info:        info,
		Language:    string(codeBlock.Language(m.content)),
		Literal:     m.literal(codeBlock),
	}

	span, _ := linesRange(codeBlock)
	node := mdast.NewNode(mdast.NodeCodeBlock, span)
	node.Block.CodeBlock = attrs
	return node
}

// detectFenceStyle reads the fence character and length from the line
// before the block's first content line.
func (m *mapper) detectFenceStyle(codeBlock *ast.FencedCodeBlock) (byte, int) {
	lines := codeBlock.Lines()
	if lines.Len() == 0 {
		return '`', 3
	}

	lineStart := bytes.LastIndexByte(m.content[:lines.At(0).Start], '\n') + 1
	if lineStart == 0 {
		return '`', 3
	}
	prevStart := bytes.LastIndexByte(m.content[:lineStart-1], '\n') + 1

	return extractFence(m.content[prevStart : lineStart-1])
}

// extractFence returns the fence character and length that open line.
func extractFence(line []byte) (byte, int) {
	line = bytes.TrimLeft(line, " \t")
	if len(line) == 0 || (line[0] != '`' && line[0] != '~') {
		return '`', 3
	}

	fenceChar := line[0]
	fenceLength := 0
	for fenceLength < len(line) && line[fenceLength] == fenceChar {
		fenceLength++
	}
	return fenceChar, max(fenceLength, 3)
}

func (m *mapper) mapIndentedCodeBlock(codeBlock *ast.CodeBlock) *mdast.Node {
	span, _ := linesRange(codeBlock)
	node := mdast.NewNode(mdast.NodeCodeBlock, span)
	node.Block.CodeBlock = &mdast.CodeBlockAttrs{
		Indented: true,
		Literal:  m.literal(codeBlock),
	}
	return node
}

func (m *mapper) literal(gmNode ast.Node) string {
	var buf bytes.Buffer
	lines := gmNode.Lines()
	for i := range lines.Len() {
		seg := lines.At(i)
		buf.Write(seg.Value(m.content))
	}
	return buf.String()
}

// mapHTMLBlock maps raw HTML onto an embedded JSX block, the closest native
// counterpart.
func (m *mapper) mapHTMLBlock(block *ast.HTMLBlock) *mdast.Node {
	span, _ := linesRange(block)
	if block.HasClosure() {
		span.EndOffset = max(span.EndOffset, block.ClosureLine.Stop)
	}
	span.EndOffset = trimNewline(m.content, span.StartOffset, span.EndOffset)

	node := mdast.NewNode(mdast.NodeEmbeddedBlock, span)
	node.Block.Embedded = &mdast.EmbeddedAttrs{
		Form: mdast.EmbedJSX,
		Raw:  string(m.content[span.StartOffset:span.EndOffset]),
	}
	return node
}

func (m *mapper) mapText(textNode *ast.Text) []*mdast.Node {
	seg := textNode.Segment
	nodes := []*mdast.Node{
		mdast.NewText(mdast.Range(seg.Start, seg.Stop), string(seg.Value(m.content))),
	}

	if textNode.SoftLineBreak() || textNode.HardLineBreak() {
		brk := mdast.NewNode(mdast.NodeLineBreak, mdast.Range(seg.Stop, seg.Stop))
		brk.Inline.Hard = textNode.HardLineBreak()
		nodes = append(nodes, brk)
	}
	return nodes
}

func (m *mapper) mapCodeSpan(codeSpan *ast.CodeSpan) *mdast.Node {
	var literal []byte
	for child := codeSpan.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Text:
			literal = append(literal, c.Segment.Value(m.content)...)
		case *ast.String:
			literal = append(literal, c.Value...)
		}
	}

	node := mdast.NewNode(mdast.NodeCodeSpan, mdast.SourceRange{})
	node.Inline.Text = string(literal)
	m.mapChildren(codeSpan, node)
	node.Children = nil
	return node
}

// mapLink maps links and images. goldmark resolves references during
// parsing, so every link reports the inline style.
func (m *mapper) mapLink(gmNode ast.Node, kind mdast.NodeKind, dest, title []byte) *mdast.Node {
	node := mdast.NewNode(kind, mdast.SourceRange{})
	node.Inline.Link = &mdast.LinkAttrs{
		Destination:    string(dest),
		Title:          string(title),
		ReferenceStyle: mdast.RefStyleInline,
	}
	m.mapChildren(gmNode, node)
	return node
}

func (m *mapper) mapAutoLink(al *ast.AutoLink) *mdast.Node {
	dest := string(al.URL(m.content))
	if al.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(dest, "mailto:") {
		dest = "mailto:" + dest
	}

	node := mdast.NewNode(mdast.NodeLink, mdast.SourceRange{})
	node.Inline.Link = &mdast.LinkAttrs{
		Destination:    dest,
		ReferenceStyle: mdast.RefStyleAutolink,
	}
	mdast.AppendChild(node, mdast.NewText(mdast.SourceRange{}, string(al.Label(m.content))))
	return node
}

// mapRawHTML maps inline HTML onto an embedded JSX expression.
func (m *mapper) mapRawHTML(raw *ast.RawHTML) *mdast.Node {
	var (
		buf  bytes.Buffer
		span mdast.SourceRange
	)
	for i := range raw.Segments.Len() {
		seg := raw.Segments.At(i)
		buf.Write(seg.Value(m.content))
		if i == 0 {
			span = mdast.Range(seg.Start, seg.Stop)
		}
		span.EndOffset = seg.Stop
	}

	node := mdast.NewNode(mdast.NodeEmbeddedExpression, span)
	node.Inline.Embedded = &mdast.EmbeddedAttrs{Form: mdast.EmbedJSX, Raw: buf.String()}
	return node
}

// coverChildren grows a node's span to its children's extent. Nodes goldmark
// leaves unpositioned have a zero span and are skipped.
func coverChildren(n *mdast.Node) {
	if n.Kind == mdast.NodeDocument {
		return
	}

	span, found := n.Span, positioned(n.Span)
	for _, child := range n.Children {
		if !positioned(child.Span) {
			continue
		}
		if !found {
			span, found = child.Span, true
			continue
		}
		span.StartOffset = min(span.StartOffset, child.Span.StartOffset)
		span.EndOffset = max(span.EndOffset, child.Span.EndOffset)
	}
	if found {
		n.Span = span
	}
}

func positioned(r mdast.SourceRange) bool {
	return r != mdast.SourceRange{}
}

func trimNewline(content []byte, start, end int) int {
	for end > start && (content[end-1] == '\n' || content[end-1] == '\r') {
		end--
	}
	return end
}
