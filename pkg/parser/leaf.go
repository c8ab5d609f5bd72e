package parser

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/yaklabco/mdxor/pkg/mdast"
)

//nolint:gochecknoglobals // Read-only compiled patterns.
var (
	thematicBreakRegexp = regexp.MustCompile(
		`^((?:-[ \t]*){3,}|(?:_[ \t]*){3,}|(?:\*[ \t]*){3,})$`)

	// Capture group 1: heading opener.
	atxHeadingRegexp       = regexp.MustCompile(`^(#{1,6})(?:[ \t]|$)`)
	atxHeadingCloserRegexp = regexp.MustCompile(`(?:^|[ \t])#+[ \t]*$`)

	// Capture groups:
	// 1. fence (backtick)
	// 2. info string (backtick)
	// 3. fence (tilde)
	// 4. info string (tilde)
	codeFenceRegexp = regexp.MustCompile("^(?:(`{3,})([^`]*)|(~{3,})(.*))$")

	// Capture group 1: closing fence.
	codeFenceCloserRegexp = regexp.MustCompile("^(`{3,}|~{3,})[ \t]*$")

	// Capture group 1: underline.
	setextRegexp = regexp.MustCompile(`^(=+|-+)[ \t]*$`)
)

type leafKind uint8

const (
	leafParagraph leafKind = iota
	leafFencedCode
	leafIndentedCode
	leafJSX
	leafESM
	leafTable
)

// openLeaf is the leaf block currently receiving lines.
type openLeaf struct {
	kind   leafKind
	node   *mdast.Node
	parent *mdast.Node
	depth  int // number of enclosing containers

	// Paragraph content, one range per line.
	segments []mdast.SourceRange

	// Code block state.
	fenceChar   byte
	fenceLength int
	fenceIndent int
	codeLines   [][]byte
	blankTail   int // trailing blank lines of an indented block
	lastEnd     int // end of the last non-blank line

	// Embedded block state.
	jsx jsxTracker
}

func (s *blockScanner) newLeaf(kind leafKind, node *mdast.Node) *openLeaf {
	s.noteContent()
	return &openLeaf{
		kind:   kind,
		node:   node,
		parent: s.parent(),
		depth:  len(s.containers),
	}
}

// addSegment appends the rest of the line, minus leading whitespace.
func (l *openLeaf) addSegment(cur *cursor) {
	cur.skipIndent()
	l.segments = append(l.segments, mdast.Range(cur.pos, cur.end))
}

func (s *blockScanner) openParagraph(cur *cursor) {
	s.leaf = s.newLeaf(leafParagraph, mdast.NewNode(mdast.NodeParagraph, mdast.Range(cur.pos, cur.pos)))
	s.leaf.addSegment(cur)
}

// continueVerbatim feeds the line to an open code or embedded block.
// It returns false when the line does not belong to the block.
func (s *blockScanner) continueVerbatim(cur *cursor, allMatched bool) bool {
	leaf := s.leaf
	switch leaf.kind {
	case leafFencedCode:
		if !allMatched {
			return false
		}
		s.continueFencedCode(cur)
		return true
	case leafIndentedCode:
		if !allMatched {
			return false
		}
		if cur.blank() {
			cur.skipColumns(4)
			leaf.codeLines = append(leaf.codeLines, cur.rest())
			leaf.blankTail++
			return true
		}
		if cols, _ := cur.indent(); cols < 4 {
			return false
		}
		cur.skipColumns(4)
		leaf.codeLines = append(leaf.codeLines, cur.rest())
		leaf.blankTail = 0
		leaf.lastEnd = cur.end
		return true
	case leafJSX:
		if !allMatched || cur.blank() {
			return false
		}
		s.continueJSXBlock(cur)
		return true
	case leafESM:
		if !allMatched || cur.blank() {
			return false
		}
		leaf.lastEnd = cur.end
		return true
	case leafTable:
		return allMatched && s.continueTable(cur)
	case leafParagraph:
	}
	return false
}

// closeLeaf finalises the open leaf, if any, and attaches it to its parent.
func (s *blockScanner) closeLeaf() {
	leaf := s.leaf
	if leaf == nil {
		return
	}
	s.leaf = nil

	switch leaf.kind {
	case leafParagraph:
		s.closeParagraph(leaf)
	case leafFencedCode:
		leaf.node.Span.EndOffset = max(leaf.node.Span.EndOffset, leaf.lastEnd)
		s.finishCode(leaf, leaf.codeLines)
		s.addLeaf(leaf.node, leaf.parent, leaf.depth)
	case leafIndentedCode:
		lines := leaf.codeLines[:len(leaf.codeLines)-leaf.blankTail]
		leaf.node.Span.EndOffset = leaf.lastEnd
		s.finishCode(leaf, lines)
		s.addLeaf(leaf.node, leaf.parent, leaf.depth)
	case leafJSX, leafESM:
		leaf.node.Span.EndOffset = leaf.lastEnd
		leaf.node.Block.Embedded.Raw = string(s.src[leaf.node.Span.StartOffset:leaf.lastEnd])
		s.addLeaf(leaf.node, leaf.parent, leaf.depth)
	case leafTable:
		leaf.node.Span.EndOffset = leaf.lastEnd
		s.addLeaf(leaf.node, leaf.parent, leaf.depth)
	}
}

// closeParagraph strips leading link reference definitions into the label
// table and attaches whatever text remains.
func (s *blockScanner) closeParagraph(leaf *openLeaf) {
	segments := s.extractLinkDefinitions(leaf.segments)
	if len(segments) == 0 {
		return
	}

	last := &segments[len(segments)-1]
	last.EndOffset = trimTrailingSpace(s.src, last.StartOffset, last.EndOffset)

	content := mdast.Range(segments[0].StartOffset, last.EndOffset)
	leaf.node.Span = content
	leaf.node.Block.Content = content

	s.addLeaf(leaf.node, leaf.parent, leaf.depth)
	s.leaves = append(s.leaves, &inlineLeaf{node: leaf.node, segments: segments})
}

func setextLevel(cur *cursor) (int, bool) {
	cols, n := cur.indent()
	if cols > 3 {
		return 0, false
	}
	m := setextRegexp.FindSubmatch(cur.rest()[n:])
	if m == nil {
		return 0, false
	}
	if m[1][0] == '=' {
		return 1, true
	}
	return 2, true
}

// setextHeading turns the open paragraph into a heading underlined by the
// current line. It returns false if nothing but link definitions preceded
// the underline.
func (s *blockScanner) setextHeading(cur *cursor, level int) bool {
	leaf := s.leaf
	segments := s.extractLinkDefinitions(leaf.segments)
	if len(segments) == 0 {
		// The definitions are recorded; the underline starts a new block.
		s.leaf = nil
		return false
	}

	last := &segments[len(segments)-1]
	last.EndOffset = trimTrailingSpace(s.src, last.StartOffset, last.EndOffset)

	cur.skipIndent()
	underlineEnd := trimTrailingSpace(s.src, cur.pos, cur.end)

	node := mdast.NewNode(mdast.NodeHeading, mdast.Range(segments[0].StartOffset, underlineEnd))
	node.Block.HeadingLevel = level
	node.Block.Setext = true
	node.Block.Content = mdast.Range(segments[0].StartOffset, last.EndOffset)

	s.leaf = nil
	s.addLeaf(node, leaf.parent, leaf.depth)
	s.leaves = append(s.leaves, &inlineLeaf{node: node, segments: segments})
	return true
}

func (s *blockScanner) addThematicBreak(cur *cursor) {
	s.noteContent()
	cur.skipIndent()
	node := mdast.NewNode(mdast.NodeThematicBreak, mdast.Range(cur.pos, trimTrailingSpace(s.src, cur.pos, cur.end)))
	s.addLeaf(node, s.parent(), len(s.containers))
}

func (s *blockScanner) addATXHeading(cur *cursor) {
	s.noteContent()
	cur.skipIndent()
	start := cur.pos
	m := atxHeadingRegexp.FindSubmatchIndex(cur.rest())
	level := m[3] - m[2]

	end := trimTrailingSpace(s.src, start, cur.end)
	cur.advance(level)
	cur.skipIndent()

	contentStart := min(cur.pos, end)
	contentEnd := end
	if loc := atxHeadingCloserRegexp.FindIndex(s.src[contentStart:end]); loc != nil {
		contentEnd = trimTrailingSpace(s.src, contentStart, contentStart+loc[0])
	}

	node := mdast.NewNode(mdast.NodeHeading, mdast.Range(start, end))
	node.Block.HeadingLevel = level
	node.Block.Content = mdast.Range(contentStart, contentEnd)

	s.addLeaf(node, s.parent(), len(s.containers))
	s.leaves = append(s.leaves, &inlineLeaf{
		node:     node,
		segments: []mdast.SourceRange{node.Block.Content},
	})
}

func (s *blockScanner) openFencedCode(cur *cursor) {
	cols, _ := cur.indent()
	cur.skipIndent()
	start := cur.pos

	m := codeFenceRegexp.FindSubmatch(cur.rest())
	fence, info := m[1], m[2]
	if fence == nil {
		fence, info = m[3], m[4]
	}

	infoText := strings.TrimSpace(unescapeString(string(info)))
	attrs := &mdast.CodeBlockAttrs{
		FenceChar:   fence[0],
		FenceLength: len(fence),
		Info:        infoText,
	}
	if fields := strings.Fields(infoText); len(fields) > 0 {
		attrs.Language = fields[0]
	}

	node := mdast.NewNode(mdast.NodeCodeBlock, mdast.Range(start, trimTrailingSpace(s.src, start, cur.end)))
	node.Block.CodeBlock = attrs

	s.leaf = s.newLeaf(leafFencedCode, node)
	s.leaf.fenceChar = fence[0]
	s.leaf.fenceLength = len(fence)
	s.leaf.fenceIndent = cols
	s.leaf.lastEnd = node.Span.EndOffset
}

func (s *blockScanner) continueFencedCode(cur *cursor) {
	leaf := s.leaf

	if cols, n := cur.indent(); cols < 4 {
		if m := codeFenceCloserRegexp.FindSubmatch(cur.rest()[n:]); m != nil &&
			m[1][0] == leaf.fenceChar && len(m[1]) >= leaf.fenceLength {
			cur.skipIndent()
			leaf.lastEnd = trimTrailingSpace(s.src, cur.pos, cur.end)
			leaf.node.Span.EndOffset = leaf.lastEnd
			s.closeLeaf()
			return
		}
	}

	cur.skipColumns(leaf.fenceIndent)
	leaf.codeLines = append(leaf.codeLines, cur.rest())
	leaf.lastEnd = cur.end
}

func (s *blockScanner) openIndentedCode(cur *cursor) {
	cur.skipColumns(4)
	node := mdast.NewNode(mdast.NodeCodeBlock, mdast.Range(cur.pos, cur.end))
	node.Block.CodeBlock = &mdast.CodeBlockAttrs{Indented: true}

	s.leaf = s.newLeaf(leafIndentedCode, node)
	s.leaf.codeLines = [][]byte{cur.rest()}
	s.leaf.lastEnd = cur.end
}

// finishCode stores the literal of a code block and detects its language.
func (s *blockScanner) finishCode(leaf *openLeaf, lines [][]byte) {
	var literal bytes.Buffer
	for _, line := range lines {
		literal.Write(line)
		literal.WriteByte('\n')
	}

	attrs := leaf.node.Block.CodeBlock
	attrs.Literal = literal.String()
	if attrs.Language == "" && s.opts.Detector != nil && literal.Len() > 0 {
		attrs.DetectedLanguage = s.opts.Detector.Detect(literal.Bytes())
	}
}
