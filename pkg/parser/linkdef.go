package parser

import (
	"github.com/yaklabco/mdxor/pkg/mdast"
)

const maxLabelLength = 999

// extractLinkDefinitions records the link reference definitions that open a
// paragraph and returns the segments left over.
func (s *blockScanner) extractLinkDefinitions(segments []mdast.SourceRange) []mdast.SourceRange {
	if len(segments) == 0 || s.src[segments[0].StartOffset] != '[' {
		return segments
	}

	buf, _ := joinSegments(s.src, segments)
	pos := 0
	for pos < len(buf) && buf[pos] == '[' {
		def, end, ok := parseLinkDefinition(buf, pos)
		if !ok {
			break
		}
		s.labels.define(def)
		pos = end
	}

	if pos == 0 {
		return segments
	}
	if pos >= len(buf) {
		return nil
	}

	// Definitions always end at a line boundary.
	consumed := 0
	for _, ch := range buf[:pos] {
		if ch == '\n' {
			consumed++
		}
	}
	return segments[consumed:]
}

// parseLinkDefinition parses `[label]: destination "title"` at pos.
// It returns the offset just past the definition's final line.
func parseLinkDefinition(buf []byte, pos int) (linkDefinition, int, bool) {
	label, i, ok := scanLinkLabel(buf, pos)
	if !ok || i >= len(buf) || buf[i] != ':' {
		return linkDefinition{}, 0, false
	}

	i = skipSpaceAndNewline(buf, i+1)
	dest, afterDest, ok := parseLinkDestination(buf, i)
	if !ok {
		return linkDefinition{}, 0, false
	}

	if j := skipSpaceAndNewline(buf, afterDest); j > afterDest {
		if title, afterTitle, ok := parseLinkTitle(buf, j); ok {
			if end, ok := lineEndAfter(buf, afterTitle); ok {
				return linkDefinition{label: label, destination: dest, title: title}, end, true
			}
		}
	}

	end, ok := lineEndAfter(buf, afterDest)
	if !ok {
		return linkDefinition{}, 0, false
	}
	return linkDefinition{label: label, destination: dest}, end, true
}

// scanLinkLabel parses a bracketed label starting at buf[i] == '['.
// It returns the raw label text and the offset after the closing bracket.
func scanLinkLabel(buf []byte, i int) (string, int, bool) {
	if i >= len(buf) || buf[i] != '[' {
		return "", 0, false
	}
	for j := i + 1; j < len(buf) && j-i-1 <= maxLabelLength; j++ {
		switch buf[j] {
		case '\\':
			j++
		case '[':
			return "", 0, false
		case ']':
			label := buf[i+1 : j]
			if isBlank(label) || NormalizeLabel(string(label)) == "" {
				return "", 0, false
			}
			return string(label), j + 1, true
		}
	}
	return "", 0, false
}

// parseLinkDestination parses an angle-bracketed or bare destination at buf[i].
func parseLinkDestination(buf []byte, i int) (string, int, bool) {
	if i >= len(buf) {
		return "", 0, false
	}

	if buf[i] == '<' {
		for j := i + 1; j < len(buf); j++ {
			switch buf[j] {
			case '\\':
				j++
			case '\n', '<':
				return "", 0, false
			case '>':
				return unescapeString(string(buf[i+1 : j])), j + 1, true
			}
		}
		return "", 0, false
	}

	depth := 0
	j := i
loop:
	for j < len(buf) {
		ch := buf[j]
		switch {
		case ch == '\\' && j+1 < len(buf) && isASCIIPunct(buf[j+1]):
			j += 2
			continue
		case ch == '(':
			depth++
		case ch == ')':
			if depth == 0 {
				break loop
			}
			depth--
		case ch <= ' ' || ch == 0x7f:
			break loop
		}
		j++
	}

	if j == i || depth != 0 {
		return "", 0, false
	}
	return unescapeString(string(buf[i:j])), j, true
}

// parseLinkTitle parses a quoted or parenthesised title at buf[i].
func parseLinkTitle(buf []byte, i int) (string, int, bool) {
	if i >= len(buf) {
		return "", 0, false
	}

	var closer byte
	switch buf[i] {
	case '"':
		closer = '"'
	case '\'':
		closer = '\''
	case '(':
		closer = ')'
	default:
		return "", 0, false
	}

	for j := i + 1; j < len(buf); j++ {
		switch ch := buf[j]; {
		case ch == '\\':
			j++
		case ch == closer:
			return unescapeString(string(buf[i+1 : j])), j + 1, true
		case closer == ')' && ch == '(':
			return "", 0, false
		}
	}
	return "", 0, false
}

// skipSpaceAndNewline skips spaces and tabs spanning at most one line ending.
func skipSpaceAndNewline(buf []byte, i int) int {
	newline := false
	for i < len(buf) {
		switch buf[i] {
		case ' ', '\t':
		case '\n':
			if newline {
				return i
			}
			newline = true
		default:
			return i
		}
		i++
	}
	return i
}

// lineEndAfter skips trailing spaces and requires the line to end at i.
func lineEndAfter(buf []byte, i int) (int, bool) {
	for i < len(buf) && (buf[i] == ' ' || buf[i] == '\t') {
		i++
	}
	switch {
	case i == len(buf):
		return i, true
	case buf[i] == '\n':
		return i + 1, true
	default:
		return 0, false
	}
}
