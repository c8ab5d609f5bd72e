package parser

import (
	"github.com/yaklabco/mdxor/pkg/mdast"
)

// inlineLeaf is a paragraph or heading awaiting inline resolution.
// Segments are the per-line content ranges, with container markers and
// leading indentation excluded.
type inlineLeaf struct {
	node     *mdast.Node
	segments []mdast.SourceRange
}

// blockScanner builds the block structure of a document line by line.
type blockScanner struct {
	doc    *mdast.Document
	src    []byte
	opts   Options
	labels *labelTable

	lines []mdast.LineInfo
	index int // current line

	root       *mdast.Node
	containers []*container
	leaf       *openLeaf
	leaves     []*inlineLeaf
}

func newBlockScanner(doc *mdast.Document, labels *labelTable, opts Options) *blockScanner {
	lines := doc.Lines
	// A trailing newline leaves an empty final line that holds no content.
	if n := len(lines); n > 0 && lines[n-1].StartOffset == len(doc.Content) {
		lines = lines[:n-1]
	}
	return &blockScanner{
		doc:    doc,
		src:    doc.Content,
		opts:   opts,
		labels: labels,
		lines:  lines,
		root:   mdast.NewNode(mdast.NodeDocument, mdast.Range(0, len(doc.Content))),
	}
}

// scan runs the block pass. It returns the document node and the leaves
// whose inline content still has to be resolved. The label table is
// complete when scan returns.
func (s *blockScanner) scan() (*mdast.Node, []*inlineLeaf) {
	start := 0
	if s.opts.Frontmatter {
		start = s.scanFrontmatter()
	}

	for s.index = start; s.index < len(s.lines); s.index++ {
		s.processLine()
	}
	s.closeBlocks(0)

	return s.root, s.leaves
}

func (s *blockScanner) processLine() {
	cur := newCursor(s.src, s.lines[s.index])
	matched := s.matchContinuation(cur, true)

	if s.leaf != nil && s.leaf.kind != leafParagraph {
		if s.continueVerbatim(cur, matched == len(s.containers)) {
			return
		}
		s.closeLeaf()
	}

	matched, newItem := s.openContainers(cur, matched)

	if cur.blank() {
		s.blankLine(matched, newItem)
		return
	}

	paragraphOpen := s.leaf != nil
	if paragraphOpen && matched < len(s.containers) && !s.opts.LazyContinuation {
		s.closeBlocks(matched)
		paragraphOpen = false
	}

	if paragraphOpen && matched == len(s.containers) {
		if s.opts.gfm() && s.startTable(cur) {
			return
		}
		if level, ok := setextLevel(cur); ok && s.setextHeading(cur, level) {
			return
		}
		paragraphOpen = s.leaf != nil
	}

	cols, _ := cur.indent()
	if cols < 4 {
		if s.startLeaf(cur, matched, paragraphOpen) {
			return
		}
	} else if !paragraphOpen {
		s.closeBlocks(matched)
		s.openIndentedCode(cur)
		return
	}

	if paragraphOpen {
		// Either a regular continuation line or a lazy one; unmatched
		// containers stay open.
		s.leaf.addSegment(cur)
		return
	}

	s.closeBlocks(matched)
	if newItem && s.opts.gfm() {
		s.openTaskItem(cur)
	}
	s.openParagraph(cur)
}

// startLeaf opens a non-paragraph leaf at the cursor if the line starts one.
func (s *blockScanner) startLeaf(cur *cursor, matched int, paragraphOpen bool) bool {
	_, n := cur.indent()
	rest := cur.rest()[n:]

	switch {
	case thematicBreakRegexp.Match(rest):
		s.closeBlocks(matched)
		s.addThematicBreak(cur)
	case atxHeadingRegexp.Match(rest):
		s.closeBlocks(matched)
		s.addATXHeading(cur)
	case codeFenceRegexp.Match(rest):
		s.closeBlocks(matched)
		s.openFencedCode(cur)
	case s.opts.mdx() && !paragraphOpen && startsJSXBlock(rest):
		s.closeBlocks(matched)
		s.openJSXBlock(cur)
	case s.opts.mdx() && !paragraphOpen && len(s.containers) == 0 && n == 0 && esmStartRegexp.Match(rest):
		s.closeBlocks(matched)
		s.openESMBlock(cur)
	default:
		return false
	}

	return true
}

// matchContinuation consumes the continuation markers of open containers and
// returns how many matched. Matched block quote markers extend the quote
// spans when extend is set.
func (s *blockScanner) matchContinuation(cur *cursor, extend bool) int {
	for i, c := range s.containers {
		start := cur.pos
		if !c.matchContinuation(cur) {
			return i
		}
		if extend && c.kind == containerBlockQuote {
			mdast.ExtendSpan(c.node, mdast.Range(start, cur.pos))
		}
	}
	return len(s.containers)
}

// openContainers opens the containers whose markers start the line and
// returns the number of containers the line belongs to, and whether the
// innermost one is a list item opened on this line.
func (s *blockScanner) openContainers(cur *cursor, matched int) (int, bool) {
	paragraphOpen := s.leaf != nil && s.leaf.kind == leafParagraph
	starts := parseStartingMarkers(cur, !paragraphOpen || matched != len(s.containers))

	continueList := false
	if matched > 0 && s.containers[matched-1].kind == containerList {
		// The first unmatched container is an item; keep the list only if
		// the line opens a sibling item.
		list := s.containers[matched-1]
		continueList = len(starts) > 0 && starts[0].kind == containerItem &&
			starts[0].ordered == list.ordered && starts[0].marker == list.marker
		if !continueList {
			matched--
		}
	}

	if len(starts) == 0 {
		return matched, false
	}

	s.closeBlocks(matched)
	for i := range starts {
		marker := starts[i]
		if marker.kind == containerItem {
			if continueList {
				continueList = false
				if list := s.containers[len(s.containers)-1]; list.lastItemBlank {
					list.loose = true
				}
			} else {
				list := &container{
					kind:    containerList,
					ordered: marker.ordered,
					marker:  marker.marker,
					start:   marker.start,
				}
				s.pushContainer(list, marker.span)
			}
		}
		c := marker.container
		s.pushContainer(&c, marker.span)
	}

	return len(s.containers), starts[len(starts)-1].kind == containerItem
}

func (s *blockScanner) blankLine(matched int, newItem bool) {
	if i, ok := s.unmatchedBlockQuote(matched); ok {
		s.closeBlocks(i)
		return
	}

	if newItem {
		// An item can start with at most one blank line; a second one closes it.
		if s.index+1 < len(s.lines) && s.nextLineBlank() {
			s.closeBlocks(len(s.containers) - 1)
		}
		s.closeLeaf()
		return
	}

	s.closeLeaf()
	s.markBlank()
}

// nextLineBlank reports whether the next line is blank once the markers of
// the open containers are removed.
func (s *blockScanner) nextLineBlank() bool {
	cur := newCursor(s.src, s.lines[s.index+1])
	s.matchContinuation(cur, false)
	return cur.blank()
}

// unmatchedBlockQuote finds the first block quote at or after matched.
// Blank lines never close list items, but they close quotes whose marker is missing.
func (s *blockScanner) unmatchedBlockQuote(matched int) (int, bool) {
	for i := matched; i < len(s.containers); i++ {
		if s.containers[i].kind == containerBlockQuote {
			return i, true
		}
	}
	return len(s.containers), false
}

// innermostItem returns the stack index of the innermost open list item, or -1.
func (s *blockScanner) innermostItem() int {
	if n := len(s.containers); n > 0 {
		return s.containers[n-1].item
	}
	return -1
}

// markBlank records a blank line inside the innermost list item.
func (s *blockScanner) markBlank() {
	if i := s.innermostItem(); i >= 0 {
		s.containers[i].pendingBlank = true
	}
}

// noteContent is called before a block is added to the innermost open
// container. Content after a blank line inside an item makes its list loose.
func (s *blockScanner) noteContent() {
	i := s.innermostItem()
	if i < 0 {
		return
	}
	item := s.containers[i]
	if item.pendingBlank && i > 0 {
		s.containers[i-1].loose = true
	}
	item.pendingBlank = false
}

func (s *blockScanner) parent() *mdast.Node {
	if len(s.containers) == 0 {
		return s.root
	}
	return s.containers[len(s.containers)-1].node
}

func (s *blockScanner) pushContainer(c *container, span mdast.SourceRange) {
	s.noteContent()
	c.node = newContainerNode(c, span)
	c.item = s.innermostItem()
	if c.kind == containerItem {
		c.item = len(s.containers)
	}
	mdast.AppendChild(s.parent(), c.node)
	s.containers = append(s.containers, c)
}

// closeBlocks closes the open leaf and every container past keep.
func (s *blockScanner) closeBlocks(keep int) {
	s.closeLeaf()
	for i := len(s.containers) - 1; i >= keep; i-- {
		s.closeContainer(i)
	}
	s.containers = s.containers[:keep]
}

// closeContainer finalises container i. Open containers only cover their
// own markers and direct children; a closing container passes its span up.
func (s *blockScanner) closeContainer(i int) {
	c := s.containers[i]
	if i > 0 {
		mdast.ExtendSpan(s.containers[i-1].node, c.node.Span)
	}
	switch c.kind {
	case containerItem:
		if i > 0 {
			s.containers[i-1].lastItemBlank = c.pendingBlank
		}
	case containerList:
		c.node.Block.List.Tight = !c.loose
		if i > 0 && c.lastItemBlank && s.containers[i-1].kind == containerItem {
			// An item ending in a nested list that ends with a blank line
			// itself ends with a blank line.
			s.containers[i-1].pendingBlank = true
		}
	case containerBlockQuote:
	}
}

// addLeaf attaches a finished leaf to its parent and grows the innermost
// enclosing container; outer containers catch up in closeContainer.
func (s *blockScanner) addLeaf(node *mdast.Node, parent *mdast.Node, depth int) {
	mdast.AppendChild(parent, node)
	if depth = min(depth, len(s.containers)); depth > 0 {
		mdast.ExtendSpan(s.containers[depth-1].node, node.Span)
	}
}
