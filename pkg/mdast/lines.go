package mdast

import "sort"

// LineInfo holds metadata for a single line in a document.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For lines without a trailing newline (e.g., last line), this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of file).
	EndOffset int
}

// Document is the immutable input of a parse plus its line table.
type Document struct {
	// Content is the full input bytes.
	Content []byte

	// Lines contains metadata for each line.
	Lines []LineInfo
}

// NewDocument wraps content and builds its line table.
func NewDocument(content []byte) *Document {
	return &Document{
		Content: content,
		Lines:   BuildLines(content),
	}
}

// BuildLines constructs line metadata from content.
// It handles both LF (\n) and CRLF (\r\n) line endings.
func BuildLines(content []byte) []LineInfo {
	if len(content) == 0 {
		return []LineInfo{}
	}

	var lines []LineInfo
	lineStart := 0

	for idx, char := range content {
		if char == '\n' {
			newlineStart := idx
			if idx > 0 && content[idx-1] == '\r' {
				newlineStart = idx - 1
			}

			lines = append(lines, LineInfo{
				StartOffset:  lineStart,
				NewlineStart: newlineStart,
				EndOffset:    idx + 1,
			})
			lineStart = idx + 1
		}
	}

	// Last line, possibly empty when content ends with a newline.
	if lineStart <= len(content) {
		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: len(content),
			EndOffset:    len(content),
		})
	}

	return lines
}

// LineCount returns the number of lines in the document.
func (d *Document) LineCount() int {
	return len(d.Lines)
}

// LineAt converts a byte offset to 1-based line and column numbers.
// Column counts bytes, not runes.
// Returns (0, 0) if the offset is out of range.
func (d *Document) LineAt(offset int) (int, int) {
	if offset < 0 || len(d.Lines) == 0 || offset > len(d.Content) {
		return 0, 0
	}

	if offset == len(d.Content) {
		lastLine := d.Lines[len(d.Lines)-1]
		return len(d.Lines), offset - lastLine.StartOffset + 1
	}

	lineIdx := sort.Search(len(d.Lines), func(i int) bool {
		return d.Lines[i].EndOffset > offset
	})

	if lineIdx >= len(d.Lines) {
		lineIdx = len(d.Lines) - 1
	}

	lineInfo := d.Lines[lineIdx]
	if offset < lineInfo.StartOffset {
		return 0, 0
	}

	return lineIdx + 1, offset - lineInfo.StartOffset + 1
}

// Offset converts 1-based line and column numbers to a byte offset.
// Returns (offset, true) on success, or (0, false) if out of range.
func (d *Document) Offset(line, col int) (int, bool) {
	if line < 1 || line > len(d.Lines) {
		return 0, false
	}
	if col < 1 {
		return 0, false
	}

	lineInfo := d.Lines[line-1]
	offset := lineInfo.StartOffset + col - 1

	// Column may point at the end of line for cursor positioning.
	if offset > lineInfo.EndOffset {
		return 0, false
	}

	return offset, true
}

// LineContent returns the content of a 1-based line number, excluding the newline.
// Returns nil if the line number is out of range.
func (d *Document) LineContent(line int) []byte {
	if line < 1 || line > len(d.Lines) {
		return nil
	}

	lineInfo := d.Lines[line-1]
	return d.Content[lineInfo.StartOffset:lineInfo.NewlineStart]
}

// Slice returns the bytes covered by r, or nil if r is out of range.
func (d *Document) Slice(r SourceRange) []byte {
	if r.StartOffset < 0 || r.EndOffset > len(d.Content) || r.StartOffset > r.EndOffset {
		return nil
	}
	return d.Content[r.StartOffset:r.EndOffset]
}

// Position converts a byte range to line/column positions.
func (d *Document) Position(r SourceRange) SourcePosition {
	startLine, startCol := d.LineAt(r.StartOffset)
	endLine, endCol := d.LineAt(r.EndOffset)

	return SourcePosition{
		StartLine:   startLine,
		StartColumn: startCol,
		EndLine:     endLine,
		EndColumn:   endCol,
	}
}
