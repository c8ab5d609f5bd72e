package parser

import (
	"bytes"
	"regexp"
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/mdxor/pkg/mdast"
)

//nolint:gochecknoglobals // Read-only compiled pattern.
var esmStartRegexp = regexp.MustCompile(`^(?:import|export)\b`)

type scanStatus uint8

const (
	scanOK scanStatus = iota
	scanInvalid
	scanIncomplete // input ended before the construct closed
)

type tagKind uint8

const (
	tagOpen tagKind = iota
	tagClose
	tagSelfClosing
)

// jsxTag is one scanned JSX tag. Fragments have an empty name.
type jsxTag struct {
	kind tagKind
	name string
	end  int
}

// scanFrontmatter recognises a YAML block fenced by "---" lines at the very
// start of the document. It returns the index of the first line after it.
func (s *blockScanner) scanFrontmatter() int {
	if len(s.lines) == 0 || !isFrontmatterFence(s.lineText(0), false) {
		return 0
	}

	for i := 1; i < len(s.lines); i++ {
		if !isFrontmatterFence(s.lineText(i), true) {
			continue
		}
		closing := s.lines[i]
		end := trimTrailingSpace(s.src, closing.StartOffset, closing.NewlineStart)
		node := mdast.NewNode(mdast.NodeFrontmatter, mdast.Range(0, end))
		node.Block.Embedded = &mdast.EmbeddedAttrs{
			Form: mdast.EmbedYAML,
			Raw:  string(s.src[s.lines[0].EndOffset:closing.StartOffset]),
		}
		mdast.AppendChild(s.root, node)
		return i + 1
	}

	return 0
}

func (s *blockScanner) lineText(i int) []byte {
	return s.src[s.lines[i].StartOffset:s.lines[i].NewlineStart]
}

func isFrontmatterFence(line []byte, closing bool) bool {
	line = bytes.TrimRight(line, " \t")
	if string(line) == "---" {
		return true
	}
	return closing && string(line) == "..."
}

// startsJSXBlock reports whether a line opens a JSX block: it starts with a
// tag and either ends with one or leaves the tag unfinished.
func startsJSXBlock(rest []byte) bool {
	if len(rest) == 0 || rest[0] != '<' {
		return false
	}
	_, status := scanJSXTag(rest, 0)
	switch status {
	case scanOK:
		return bytes.HasSuffix(bytes.TrimRight(rest, " \t"), []byte(">"))
	case scanIncomplete:
		return true
	default:
		return false
	}
}

func (s *blockScanner) openJSXBlock(cur *cursor) {
	cur.skipIndent()
	tag, _ := scanJSXTag(cur.rest(), 0)

	node := mdast.NewNode(mdast.NodeEmbeddedBlock, mdast.Range(cur.pos, cur.end))
	node.Block.Embedded = &mdast.EmbeddedAttrs{Form: mdast.EmbedJSX, Name: tag.name}

	s.leaf = s.newLeaf(leafJSX, node)
	s.continueJSXBlock(cur)
}

func (s *blockScanner) continueJSXBlock(cur *cursor) {
	leaf := s.leaf
	leaf.jsx.feed(cur.rest())
	leaf.lastEnd = trimTrailingSpace(s.src, cur.pos, cur.end)
	if leaf.jsx.balanced() {
		s.closeLeaf()
	}
}

func (s *blockScanner) openESMBlock(cur *cursor) {
	node := mdast.NewNode(mdast.NodeEmbeddedBlock, mdast.Range(cur.pos, cur.end))
	node.Block.Embedded = &mdast.EmbeddedAttrs{Form: mdast.EmbedESM}

	s.leaf = s.newLeaf(leafESM, node)
	s.leaf.lastEnd = cur.end
}

// jsxTracker follows tag nesting across the lines of a JSX block.
type jsxTracker struct {
	text    []byte
	scanned int
	depth   int
	tags    int
	waiting bool // a tag or expression continues on the next line
}

func (t *jsxTracker) feed(line []byte) {
	if len(t.text) > 0 {
		t.text = append(t.text, '\n')
	}
	t.text = append(t.text, line...)
	t.waiting = false

	i := t.scanned
	for i < len(t.text) {
		switch t.text[i] {
		case '<':
			tag, status := scanJSXTag(t.text, i)
			switch status {
			case scanIncomplete:
				t.waiting = true
				t.scanned = i
				return
			case scanInvalid:
				i++
				continue
			case scanOK:
			}
			t.tags++
			switch tag.kind {
			case tagOpen:
				t.depth++
			case tagClose:
				t.depth--
			case tagSelfClosing:
			}
			i = tag.end
		case '{':
			end, status := scanExpression(t.text, i)
			if status != scanOK {
				t.waiting = true
				t.scanned = i
				return
			}
			i = end
		default:
			i++
		}
	}
	t.scanned = i
}

func (t *jsxTracker) balanced() bool {
	return !t.waiting && t.tags > 0 && t.depth <= 0
}

// scanJSXTag scans an opening, closing, or self-closing tag at b[i] == '<'.
func scanJSXTag(b []byte, i int) (jsxTag, scanStatus) {
	j := skipJSXSpace(b, i+1)
	if j >= len(b) {
		return jsxTag{}, scanIncomplete
	}

	closing := false
	if b[j] == '/' {
		closing = true
		if j = skipJSXSpace(b, j+1); j >= len(b) {
			return jsxTag{}, scanIncomplete
		}
	}

	kind := tagOpen
	if closing {
		kind = tagClose
	}

	if b[j] == '>' {
		return jsxTag{kind: kind, end: j + 1}, scanOK
	}

	name, j, status := scanJSXName(b, j, true)
	if status != scanOK {
		return jsxTag{}, status
	}

	for {
		k := skipJSXSpace(b, j)
		if k >= len(b) {
			return jsxTag{}, scanIncomplete
		}

		switch b[k] {
		case '>':
			return jsxTag{kind: kind, name: name, end: k + 1}, scanOK
		case '/':
			if closing {
				return jsxTag{}, scanInvalid
			}
			k = skipJSXSpace(b, k+1)
			if k >= len(b) {
				return jsxTag{}, scanIncomplete
			}
			if b[k] != '>' {
				return jsxTag{}, scanInvalid
			}
			return jsxTag{kind: tagSelfClosing, name: name, end: k + 1}, scanOK
		}

		if closing || k == j {
			// Attributes must be separated from the name and each other.
			return jsxTag{}, scanInvalid
		}

		if b[k] == '{' {
			end, status := scanExpression(b, k)
			if status != scanOK {
				return jsxTag{}, status
			}
			j = end
			continue
		}

		end, status := scanJSXAttribute(b, k)
		if status != scanOK {
			return jsxTag{}, status
		}
		j = end
	}
}

func scanJSXAttribute(b []byte, i int) (int, scanStatus) {
	_, j, status := scanJSXName(b, i, false)
	if status != scanOK {
		return 0, status
	}

	k := skipJSXSpace(b, j)
	if k >= len(b) {
		return 0, scanIncomplete
	}
	if b[k] != '=' {
		return j, scanOK
	}

	k = skipJSXSpace(b, k+1)
	if k >= len(b) {
		return 0, scanIncomplete
	}

	switch quote := b[k]; quote {
	case '"', '\'':
		end := bytes.IndexByte(b[k+1:], quote)
		if end < 0 {
			return 0, scanIncomplete
		}
		return k + 1 + end + 1, scanOK
	case '{':
		return scanExpression(b, k)
	default:
		return 0, scanInvalid
	}
}

// scanJSXName scans an identifier, optionally followed by member (a.b) or
// namespace (a:b) parts.
func scanJSXName(b []byte, i int, member bool) (string, int, scanStatus) {
	start := i
	for {
		if i >= len(b) {
			return "", 0, scanIncomplete
		}
		r, size := utf8.DecodeRune(b[i:])
		if !isIdentStart(r) {
			return "", 0, scanInvalid
		}
		i += size
		for i < len(b) {
			r, size = utf8.DecodeRune(b[i:])
			if !isIdentPart(r) && r != '-' {
				break
			}
			i += size
		}
		if i < len(b) && (b[i] == ':' || (member && b[i] == '.')) {
			i++
			continue
		}
		return string(b[start:i]), i, scanOK
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

func skipJSXSpace(b []byte, i int) int {
	for i < len(b) && (b[i] == ' ' || b[i] == '\t' || b[i] == '\n') {
		i++
	}
	return i
}

// scanExpression scans a brace-balanced expression at b[i] == '{'.
// String literals and comments are skipped so braces inside them do not count.
// The returned offset is just past the closing brace.
func scanExpression(b []byte, i int) (int, scanStatus) {
	return scanBraces(b, i, nil)
}

// scanBraces is scanExpression that also reports, through record, the
// outcome for every nested "{" it passed: the offset past its closing brace,
// or -1 when it never closed.
func scanBraces(b []byte, i int, record func(open, end int)) (int, scanStatus) {
	var opens []int
	unclosed := func() (int, scanStatus) {
		if record != nil {
			for _, open := range opens {
				record(open, -1)
			}
		}
		return 0, scanIncomplete
	}

	depth := 0
	for j := i; j < len(b); j++ {
		switch ch := b[j]; ch {
		case '{':
			depth++
			if record != nil {
				opens = append(opens, j)
			}
		case '}':
			depth--
			if record != nil {
				record(opens[len(opens)-1], j+1)
				opens = opens[:len(opens)-1]
			}
			if depth == 0 {
				return j + 1, scanOK
			}
		case '"', '\'', '`':
			end := skipStringLiteral(b, j)
			if end < 0 {
				return unclosed()
			}
			j = end - 1
		case '/':
			if j+1 < len(b) && b[j+1] == '/' {
				nl := bytes.IndexByte(b[j:], '\n')
				if nl < 0 {
					return unclosed()
				}
				j += nl
			} else if j+1 < len(b) && b[j+1] == '*' {
				closeAt := bytes.Index(b[j+2:], []byte("*/"))
				if closeAt < 0 {
					return unclosed()
				}
				j += 2 + closeAt + 1
			}
		}
	}
	return unclosed()
}

// exprCache memoises inline expression scans by opening offset. A scan
// settles every brace it passes over, so a run of unclosed braces costs one
// pass instead of one per brace.
type exprCache map[int]int

func (c exprCache) scan(b []byte, i int) (int, scanStatus) {
	if end, ok := c[i]; ok {
		if end < 0 {
			return 0, scanIncomplete
		}
		return end, scanOK
	}
	return scanBraces(b, i, func(open, end int) { c[open] = end })
}

// skipStringLiteral returns the offset after the literal opened at b[i], or -1.
func skipStringLiteral(b []byte, i int) int {
	quote := b[i]
	for j := i + 1; j < len(b); j++ {
		switch b[j] {
		case '\\':
			j++
		case quote:
			return j + 1
		case '\n':
			if quote != '`' {
				return -1
			}
		}
	}
	return -1
}
