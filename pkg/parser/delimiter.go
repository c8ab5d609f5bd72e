package parser

import (
	"github.com/yaklabco/mdxor/pkg/mdast"
)

// delimRun is a run of '*', '_' or '~' that may open or close emphasis.
type delimRun struct {
	char     byte
	length   int // original run length, used by the multiple-of-3 rule
	canOpen  bool
	canClose bool
	index    int // position in the output list while waiting as an opener
}

// parseDelimiterRun scans the run starting at buf[i] and classifies it by
// the characters on either side.
func (p *inlineParser) parseDelimiterRun(i int) (int, bool) {
	char := p.buf[i]
	end := i
	for end < len(p.buf) && p.buf[end] == char {
		end++
	}
	length := end - i

	if char == '~' && length != 2 {
		// Only double tildes delimit strikethrough; other runs are text.
		return end, true
	}

	before := classBefore(p.buf, i)
	after := classAfter(p.buf, end)

	leftFlanking := after != classSpace &&
		(after != classPunct || before == classSpace || before == classPunct)
	rightFlanking := before != classSpace &&
		(before != classPunct || after == classSpace || after == classPunct)

	run := &delimRun{char: char, length: length}
	switch char {
	case '_':
		run.canOpen = leftFlanking && (!rightFlanking || before == classPunct)
		run.canClose = rightFlanking && (!leftFlanking || after == classPunct)
	default:
		run.canOpen = leftFlanking
		run.canClose = rightFlanking
	}

	node := mdast.NewText(mdast.Range(i, end), string(p.buf[i:end]))
	p.add(i, piece{node: node, run: run})
	return end, true
}

func stackIndex(char byte) int {
	switch char {
	case '*':
		return 0
	case '_':
		return 1
	default:
		return 2
	}
}

// canPair reports whether opener and closer may form emphasis. Runs that can
// both open and close do not pair when their combined length is a multiple
// of 3, unless both lengths are.
func canPair(opener, closer *delimRun) bool {
	if opener.char == '~' {
		return true
	}
	if (opener.canOpen && opener.canClose) || (closer.canOpen && closer.canClose) {
		sum := opener.length + closer.length
		if sum%3 == 0 && (opener.length%3 != 0 || closer.length%3 != 0) {
			return false
		}
	}
	return true
}

// processEmphasis resolves the delimiter runs in src and returns the
// resulting list. Each closer is matched against the nearest compatible
// opener of the same character; everything between them becomes the
// emphasis node's children. Unmatched runs and brackets stay as text.
func (p *inlineParser) processEmphasis(src []piece) []piece {
	var (
		dst    []piece
		stacks [3][]*delimRun
	)

	trimStacks := func() {
		for k := range stacks {
			stack := stacks[k]
			for len(stack) > 0 && stack[len(stack)-1].index >= len(dst) {
				stack = stack[:len(stack)-1]
			}
			stacks[k] = stack
		}
	}

	for _, pc := range src {
		run := pc.run
		if run == nil {
			dst = append(dst, piece{node: pc.node})
			continue
		}

		closer := pc.node
		stack := &stacks[stackIndex(run.char)]
		if run.canClose {
		match:
			for closer.Span.Len() > 0 {
				for k := len(*stack) - 1; k >= 0; k-- {
					opener := (*stack)[k]
					if !canPair(opener, run) {
						continue
					}

					openNode := dst[opener.index].node
					use := 1
					if opener.char == '~' || (openNode.Span.Len() >= 2 && closer.Span.Len() >= 2) {
						use = 2
					}

					openNode.Span.EndOffset -= use
					openNode.Inline.Text = openNode.Inline.Text[:len(openNode.Inline.Text)-use]

					kind := mdast.NodeEmphasis
					if run.char == '~' {
						kind = mdast.NodeStrikethrough
					}
					emph := mdast.NewNode(kind, mdast.Range(openNode.Span.EndOffset, closer.Span.StartOffset+use))
					emph.Inline.EmphasisLevel = use
					emph.Children = piecesToNodes(dst[opener.index+1:])

					closer.Span.StartOffset += use
					closer.Inline.Text = closer.Inline.Text[use:]

					if openNode.Span.IsEmpty() {
						dst = dst[:opener.index]
					} else {
						dst = dst[:opener.index+1]
					}
					trimStacks()
					dst = append(dst, piece{node: emph})
					continue match
				}
				break
			}
		}

		if closer.Span.IsEmpty() {
			continue
		}
		if run.canOpen {
			run.index = len(dst)
			dst = append(dst, pc)
			*stack = append(*stack, run)
			continue
		}
		dst = append(dst, piece{node: closer})
	}

	return dst
}
