package parser

import (
	"regexp"

	"github.com/yaklabco/mdxor/pkg/mdast"
)

//nolint:gochecknoglobals // Read-only compiled pattern.
var tableDelimiterCellRegexp = regexp.MustCompile(`^:?-+:?$`)

// startTable turns the last line of the open paragraph into a table header
// when the current line is a delimiter row with the same number of cells.
// Earlier paragraph lines stay a paragraph.
func (s *blockScanner) startTable(cur *cursor) bool {
	cols, n := cur.indent()
	if cols > 3 {
		return false
	}
	aligns, ok := parseDelimiterRow(s.src, cur.pos+n, cur.end)
	if !ok {
		return false
	}

	para := s.leaf
	header := para.segments[len(para.segments)-1]
	if len(splitTableRow(s.src, header.StartOffset, header.EndOffset)) != len(aligns) {
		return false
	}

	para.segments = para.segments[:len(para.segments)-1]
	s.closeLeaf()

	table := mdast.NewNode(mdast.NodeTable, mdast.Range(header.StartOffset, header.StartOffset))
	table.Block.Table = &mdast.TableAttrs{Alignments: aligns}
	s.leaf = &openLeaf{kind: leafTable, node: table, parent: para.parent, depth: para.depth}
	s.addTableRow(header.StartOffset, header.EndOffset, true)

	cur.skipIndent()
	s.leaf.lastEnd = trimTrailingSpace(s.src, cur.pos, cur.end)
	return true
}

// continueTable adds the line as a body row unless it starts another block.
func (s *blockScanner) continueTable(cur *cursor) bool {
	if cur.blank() || s.interruptsTable(cur) {
		return false
	}
	cur.skipIndent()
	s.addTableRow(cur.pos, cur.end, false)
	return true
}

func (s *blockScanner) interruptsTable(cur *cursor) bool {
	cols, n := cur.indent()
	if cols > 3 {
		return false
	}
	rest := cur.rest()[n:]
	if thematicBreakRegexp.Match(rest) || atxHeadingRegexp.Match(rest) || codeFenceRegexp.Match(rest) {
		return true
	}
	return len(parseStartingMarkers(cur.clone(), false)) > 0
}

// addTableRow appends a row for src[start:end]. Rows are cut or padded to
// the header's width; padding cells are empty and sit at the row end.
func (s *blockScanner) addTableRow(start, end int, header bool) {
	leaf := s.leaf
	end = trimTrailingSpace(s.src, start, end)

	row := mdast.NewNode(mdast.NodeTableRow, mdast.Range(start, end))
	row.Block.Header = header

	cells := splitTableRow(s.src, start, end)
	for col, align := range leaf.node.Block.Table.Alignments {
		span := mdast.Range(end, end)
		if col < len(cells) {
			span = cells[col]
		}
		cell := mdast.NewNode(mdast.NodeTableCell, span)
		cell.Block.Content = span
		cell.Block.Cell = &mdast.TableCellAttrs{Column: col, Align: align}
		cell.Block.Header = header
		mdast.AppendChild(row, cell)
		s.leaves = append(s.leaves, &inlineLeaf{node: cell, segments: []mdast.SourceRange{span}})
	}

	mdast.AppendChild(leaf.node, row)
	leaf.lastEnd = end
}

// splitTableRow returns the trimmed content range of each cell in
// src[start:end]. A leading and a trailing pipe are optional; escaped pipes
// do not split.
func splitTableRow(src []byte, start, end int) []mdast.SourceRange {
	for start < end && (src[start] == ' ' || src[start] == '\t') {
		start++
	}
	end = trimTrailingSpace(src, start, end)
	if start < end && src[start] == '|' {
		start++
	}
	if end > start && src[end-1] == '|' && !escapedAt(src, start, end-1) {
		end--
	}

	var cells []mdast.SourceRange
	cellStart := start
	for i := start; i < end; i++ {
		switch src[i] {
		case '\\':
			i++
		case '|':
			cells = append(cells, trimCell(src, cellStart, i))
			cellStart = i + 1
		}
	}
	return append(cells, trimCell(src, cellStart, end))
}

// escapedAt reports whether src[i] is preceded by an odd run of backslashes
// starting no earlier than start.
func escapedAt(src []byte, start, i int) bool {
	n := 0
	for j := i - 1; j >= start && src[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

func trimCell(src []byte, start, end int) mdast.SourceRange {
	for start < end && (src[start] == ' ' || src[start] == '\t') {
		start++
	}
	return mdast.Range(start, trimTrailingSpace(src, start, end))
}

// parseDelimiterRow reads a row such as "| :--- | ---: |". It must contain
// a pipe, and every cell must be dashes with optional alignment colons.
func parseDelimiterRow(src []byte, start, end int) ([]mdast.CellAlignment, bool) {
	hasPipe := false
	for _, ch := range src[start:end] {
		if ch == '|' {
			hasPipe = true
			break
		}
	}
	if !hasPipe {
		return nil, false
	}

	cells := splitTableRow(src, start, end)
	aligns := make([]mdast.CellAlignment, 0, len(cells))
	for _, cell := range cells {
		text := src[cell.StartOffset:cell.EndOffset]
		if !tableDelimiterCellRegexp.Match(text) {
			return nil, false
		}
		left, right := text[0] == ':', text[len(text)-1] == ':'
		switch {
		case left && right:
			aligns = append(aligns, mdast.AlignCenter)
		case left:
			aligns = append(aligns, mdast.AlignLeft)
		case right:
			aligns = append(aligns, mdast.AlignRight)
		default:
			aligns = append(aligns, mdast.AlignNone)
		}
	}
	return aligns, len(aligns) > 0
}

// taskMarker recognises "[ ]", "[x]" or "[X]" followed by whitespace and
// some content at the start of rest.
func taskMarker(rest []byte) (bool, bool) {
	if len(rest) < 4 || rest[0] != '[' || rest[2] != ']' || (rest[3] != ' ' && rest[3] != '\t') {
		return false, false
	}
	var checked bool
	switch rest[1] {
	case ' ', '\t':
	case 'x', 'X':
		checked = true
	default:
		return false, false
	}
	return checked, !isBlank(rest[4:])
}

// openTaskItem consumes a task marker opening the first paragraph of the
// item started on this line.
func (s *blockScanner) openTaskItem(cur *cursor) {
	cur.skipIndent()
	checked, ok := taskMarker(cur.rest())
	if !ok {
		return
	}
	item := s.containers[len(s.containers)-1]
	item.node.Block.ListItem.Checked = &checked
	cur.advance(3)
}
