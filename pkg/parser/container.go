package parser

import (
	"regexp"
	"strconv"

	"github.com/yaklabco/mdxor/pkg/mdast"
)

const tabWidth = 4

// cursor walks the unread remainder of one line.
type cursor struct {
	src []byte
	pos int // absolute offset of the next unread byte
	end int // offset where the line's newline begins
	col int // visual column of pos; tabs advance to the next multiple of 4
}

func newCursor(src []byte, line mdast.LineInfo) *cursor {
	return &cursor{src: src, pos: line.StartOffset, end: line.NewlineStart}
}

func (c *cursor) clone() *cursor {
	cp := *c
	return &cp
}

func (c *cursor) rest() []byte {
	return c.src[c.pos:c.end]
}

func (c *cursor) blank() bool {
	return isBlank(c.rest())
}

// indent returns the width in columns and bytes of the leading whitespace.
func (c *cursor) indent() (int, int) {
	col := c.col
	for i := c.pos; i < c.end; i++ {
		switch c.src[i] {
		case ' ':
			col++
		case '\t':
			col += tabWidth - col%tabWidth
		default:
			return col - c.col, i - c.pos
		}
	}
	return col - c.col, c.end - c.pos
}

// skipColumns consumes leading whitespace up to cols columns.
// A tab that would overshoot is consumed whole.
func (c *cursor) skipColumns(cols int) {
	target := c.col + cols
	for c.pos < c.end && c.col < target {
		switch c.src[c.pos] {
		case ' ':
			c.col++
		case '\t':
			c.col += tabWidth - c.col%tabWidth
		default:
			return
		}
		c.pos++
	}
}

func (c *cursor) skipIndent() {
	cols, _ := c.indent()
	c.skipColumns(cols)
}

// advance consumes n bytes.
func (c *cursor) advance(n int) {
	for i := 0; i < n && c.pos < c.end; i++ {
		if c.src[c.pos] == '\t' {
			c.col += tabWidth - c.col%tabWidth
		} else {
			c.col++
		}
		c.pos++
	}
}

func isBlank(b []byte) bool {
	for _, ch := range b {
		if ch != ' ' && ch != '\t' {
			return false
		}
	}
	return true
}

// trimTrailingSpace returns end moved back over spaces and tabs, not before start.
func trimTrailingSpace(src []byte, start, end int) int {
	for end > start && (src[end-1] == ' ' || src[end-1] == '\t') {
		end--
	}
	return end
}

type containerKind uint8

const (
	containerBlockQuote containerKind = iota
	containerList
	containerItem
)

// container is an open block quote, list, or list item.
type container struct {
	kind containerKind
	node *mdast.Node

	// List and item fields.
	ordered bool
	marker  byte // bullet character or ordered delimiter
	start   int

	// indent is the content indentation of an item, in columns relative to
	// the start of the line remainder the item marker was found in.
	indent int

	// blankStart is true for an item whose first line held only the marker.
	blankStart bool

	// pendingBlank is set on an item when a blank line follows its content.
	pendingBlank bool

	// lastItemBlank is set on a list when its previous item ended with a blank line.
	lastItemBlank bool

	// loose is set on a list once any blank line separates its blocks.
	loose bool

	// item is the stack index of the innermost item at or above this
	// container, or -1.
	item int
}

//nolint:gochecknoglobals // Read-only compiled patterns.
var (
	blockQuoteMarkerRegexp = regexp.MustCompile(`^> ?`)

	// Capture groups:
	// 1. bullet
	// 2. ordered start number
	// 3. ordered delimiter
	// 4. trailing spaces
	itemMarkerRegexp = regexp.MustCompile(`^(?:([-+*])|([0-9]{1,9})([.)]))( +|\t)`)

	// Same groups; the item starts with a blank line.
	itemMarkerBlankRegexp = regexp.MustCompile(`^(?:([-+*])|([0-9]{1,9})([.)]))[ \t]*()$`)
)

// matchContinuation reports whether the line continues c, consuming its marker.
func (c *container) matchContinuation(cur *cursor) bool {
	switch c.kind {
	case containerBlockQuote:
		cols, n := cur.indent()
		if cols > 3 || n >= cur.end-cur.pos || cur.src[cur.pos+n] != '>' {
			return false
		}
		cur.skipColumns(cols)
		cur.advance(1)
		if cur.pos < cur.end && (cur.src[cur.pos] == ' ' || cur.src[cur.pos] == '\t') {
			cur.advance(1)
		}
		return true
	case containerList:
		return true
	case containerItem:
		if cur.blank() {
			return true
		}
		cols, _ := cur.indent()
		if cols < c.indent {
			return false
		}
		cur.skipColumns(c.indent)
		return true
	}
	return false
}

// startMarker is a container opener found at the start of a line.
type startMarker struct {
	container
	span mdast.SourceRange
}

// parseStartingMarkers consumes block quote and list item markers at the
// cursor. newParagraph is false when the line could continue an open
// paragraph; empty items and ordered items not starting at 1 cannot
// interrupt one.
func parseStartingMarkers(cur *cursor, newParagraph bool) []startMarker {
	var markers []startMarker
	tail := findBreakTail(cur.src, cur.pos, cur.end)

	for {
		cols, n := cur.indent()
		if cols > 3 {
			break
		}
		rest := cur.rest()[n:]
		if tail.startsAt(cur.pos + n) {
			// "- - -" is a thematic break, not three bullets.
			break
		}

		if blockQuoteMarkerRegexp.Match(rest) {
			cur.skipColumns(cols)
			start := cur.pos
			cur.advance(1)
			if cur.pos < cur.end && (cur.src[cur.pos] == ' ' || cur.src[cur.pos] == '\t') {
				cur.advance(1)
			}
			markers = append(markers, startMarker{
				container: container{kind: containerBlockQuote},
				span:      mdast.Range(start, cur.pos),
			})
			continue
		}

		m := itemMarkerRegexp.FindSubmatchIndex(rest)
		blankStart := false
		if m == nil && newParagraph {
			m = itemMarkerBlankRegexp.FindSubmatchIndex(rest)
			blankStart = m != nil
		}
		if m == nil {
			break
		}

		item := container{kind: containerItem, blankStart: blankStart}
		if m[2] >= 0 {
			item.marker = rest[m[2]]
		} else {
			item.ordered = true
			item.marker = rest[m[6]]
			item.start, _ = strconv.Atoi(string(rest[m[4]:m[5]]))
			if item.start != 1 && !newParagraph {
				break
			}
		}

		markerEnd := m[3]
		if item.ordered {
			markerEnd = m[7]
		}

		ahead := cur.clone()
		ahead.skipColumns(cols)
		markerStart := ahead.pos
		startCol := cur.col
		ahead.advance(markerEnd)
		afterMarker := ahead.col
		spaceCols, _ := ahead.indent()
		if ahead.blank() && !newParagraph {
			break
		}

		switch {
		case blankStart || ahead.blank():
			// The content indent is one column past the marker.
			item.indent = afterMarker - startCol + 1
			item.blankStart = true
			ahead.skipIndent()
		case spaceCols >= 5:
			// Indented code inside the item: only one space belongs to the marker.
			item.indent = afterMarker - startCol + 1
			ahead.skipColumns(1)
		default:
			item.indent = afterMarker - startCol + spaceCols
			ahead.skipColumns(spaceCols)
		}

		*cur = *ahead
		markers = append(markers, startMarker{
			container: item,
			span:      mdast.Range(markerStart, trimTrailingSpace(cur.src, markerStart, cur.pos)),
		})
	}

	return markers
}

// breakTail is the part of a line that can hold a thematic break: the
// longest suffix made of a single break character plus spaces and tabs.
// A break starts at offset p when p lies in [from, third], where third is
// the position of the third break character counted from the line end.
type breakTail struct {
	from  int
	third int
}

// findBreakTail scans src[start:end] once from the right.
func findBreakTail(src []byte, start, end int) breakTail {
	tail := breakTail{from: end, third: -1}
	var mark byte
	count := 0
	for i := end - 1; i >= start; i-- {
		ch := src[i]
		if ch == ' ' || ch == '\t' {
			continue
		}
		if mark == 0 && (ch == '-' || ch == '_' || ch == '*') {
			mark = ch
		}
		if ch != mark {
			break
		}
		tail.from = i
		if count++; count == 3 {
			tail.third = i
		}
	}
	return tail
}

// startsAt reports whether the line remainder beginning at the non-blank
// offset p is a thematic break.
func (t breakTail) startsAt(p int) bool {
	return p >= t.from && p <= t.third
}

// newContainerNode creates the node for a freshly opened container.
func newContainerNode(c *container, span mdast.SourceRange) *mdast.Node {
	switch c.kind {
	case containerBlockQuote:
		return mdast.NewNode(mdast.NodeBlockQuote, span)
	case containerList:
		node := mdast.NewNode(mdast.NodeList, span)
		attrs := &mdast.ListAttrs{Ordered: c.ordered, StartNumber: c.start, Tight: true}
		if c.ordered {
			attrs.Delimiter = string(c.marker)
		} else {
			attrs.BulletMarker = string(c.marker)
		}
		node.Block.List = attrs
		return node
	default:
		node := mdast.NewNode(mdast.NodeListItem, span)
		node.Block.ContentIndent = c.indent
		node.Block.ListItem = &mdast.ListItemAttrs{}
		return node
	}
}
