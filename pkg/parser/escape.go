package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/mdxor/pkg/mdast"
)

func isASCIIPunct(c byte) bool {
	return '!' <= c && c <= '/' || ':' <= c && c <= '@' || '[' <= c && c <= '`' || '{' <= c && c <= '~'
}

// unescapeString removes backslashes that escape ASCII punctuation.
func unescapeString(s string) string {
	if strings.IndexByte(s, '\\') < 0 {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && isASCIIPunct(s[i+1]) {
			i++
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

// parseEscape handles a backslash at buf[i]. Before a line ending it is a
// hard break; before ASCII punctuation it yields the punctuation literally.
// Any other backslash is ordinary text and ok is false.
func (p *inlineParser) parseEscape(i int) (int, bool) {
	if i+1 >= len(p.buf) {
		return 0, false
	}

	next := p.buf[i+1]
	switch {
	case next == '\n':
		p.emit(i)
		brk := mdast.NewNode(mdast.NodeLineBreak, mdast.Range(i, i+2))
		brk.Inline.Hard = true
		p.push(piece{node: brk})
		return i + 2, true
	case isASCIIPunct(next):
		p.emit(i)
		p.push(piece{node: mdast.NewText(mdast.Range(i, i+2), string(next))})
		return i + 2, true
	default:
		return 0, false
	}
}

// charClass classifies the character before or after a delimiter run.
type charClass uint8

const (
	classOther charClass = iota
	classSpace
	classPunct
)

// classBefore classifies the rune ending at buf[i]. The start of the
// content counts as whitespace.
func classBefore(buf []byte, i int) charClass {
	if i <= 0 {
		return classSpace
	}
	r, _ := utf8.DecodeLastRune(buf[:i])
	return classify(r)
}

// classAfter classifies the rune starting at buf[i]. The end of the
// content counts as whitespace.
func classAfter(buf []byte, i int) charClass {
	if i >= len(buf) {
		return classSpace
	}
	r, _ := utf8.DecodeRune(buf[i:])
	return classify(r)
}

func classify(r rune) charClass {
	switch {
	case unicode.IsSpace(r):
		return classSpace
	case r < utf8.RuneSelf && isASCIIPunct(byte(r)):
		return classPunct
	case unicode.IsPunct(r) || unicode.IsSymbol(r):
		return classPunct
	default:
		return classOther
	}
}
