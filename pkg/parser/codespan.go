package parser

import (
	"strings"

	"github.com/yaklabco/mdxor/pkg/mdast"
)

// parseCodeSpan handles a backtick run at buf[i]. The span closes at the next
// run of exactly the same length; without one the opening run is literal.
func (p *inlineParser) parseCodeSpan(i int) (int, bool) {
	open := i
	for open < len(p.buf) && p.buf[open] == '`' {
		open++
	}
	n := open - i

	for j := open; j < len(p.buf); {
		if p.buf[j] != '`' {
			j++
			continue
		}
		k := j
		for k < len(p.buf) && p.buf[k] == '`' {
			k++
		}
		if k-j == n {
			code := mdast.NewNode(mdast.NodeCodeSpan, mdast.Range(i, k))
			code.Inline.Text = codeSpanText(p.buf[open:j])
			p.add(i, piece{node: code})
			return k, true
		}
		j = k
	}

	// Skip the whole run so a shorter suffix of it is not tried as an opener.
	return open, true
}

// codeSpanText normalizes code span content: line endings become spaces, and
// one leading and one trailing space are stripped when both are present and
// the content is not all spaces.
func codeSpanText(content []byte) string {
	text := strings.ReplaceAll(string(content), "\n", " ")
	if len(text) >= 2 && text[0] == ' ' && text[len(text)-1] == ' ' && strings.Trim(text, " ") != "" {
		text = text[1 : len(text)-1]
	}
	return text
}
