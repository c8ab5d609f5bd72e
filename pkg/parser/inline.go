package parser

import (
	"sort"
	"strings"

	"github.com/yaklabco/mdxor/pkg/mdast"
)

// inlineResolver expands paragraphs and headings into inline nodes.
type inlineResolver struct {
	src    []byte
	labels *labelTable
	opts   Options
}

func newInlineResolver(src []byte, labels *labelTable, opts Options) *inlineResolver {
	return &inlineResolver{src: src, labels: labels, opts: opts}
}

// resolveLeaf attaches the inline children of leaf. The children tile the
// leaf's content range; container markers and indentation between lines
// fall inside line break spans.
func (r *inlineResolver) resolveLeaf(leaf *inlineLeaf) {
	buf, starts := joinSegments(r.src, leaf.segments)

	p := &inlineParser{buf: buf, labels: r.labels, opts: r.opts}
	nodes := p.parse()

	offsets := offsetMap{segments: leaf.segments, starts: starts}
	for _, node := range nodes {
		offsets.remap(node)
	}
	leaf.node.Children = nodes
}

// joinSegments concatenates segment text with a single "\n" between
// segments. starts[k] is the buffer offset of segment k.
func joinSegments(src []byte, segments []mdast.SourceRange) ([]byte, []int) {
	size := 0
	for _, seg := range segments {
		size += seg.Len() + 1
	}

	buf := make([]byte, 0, size)
	starts := make([]int, 0, len(segments))
	for k, seg := range segments {
		if k > 0 {
			buf = append(buf, '\n')
		}
		starts = append(starts, len(buf))
		buf = append(buf, src[seg.StartOffset:seg.EndOffset]...)
	}
	return buf, starts
}

// offsetMap converts joined-buffer offsets back to source offsets.
type offsetMap struct {
	segments []mdast.SourceRange
	starts   []int
}

// toSource maps a buffer offset. The separator after segment k maps to the
// end of segment k; the first byte of segment k+1 maps to its start.
func (m offsetMap) toSource(i int) int {
	if len(m.starts) == 0 {
		return 0
	}
	k := sort.Search(len(m.starts), func(k int) bool { return m.starts[k] > i }) - 1
	k = max(k, 0)
	return m.segments[k].StartOffset + i - m.starts[k]
}

func (m offsetMap) remap(n *mdast.Node) {
	n.Span = mdast.Range(m.toSource(n.Span.StartOffset), m.toSource(n.Span.EndOffset))
	for _, child := range n.Children {
		m.remap(child)
	}
}

// piece is an element of the inline list under construction.
type piece struct {
	node *mdast.Node

	// run is set for an unresolved emphasis or strikethrough delimiter run;
	// node is its literal text.
	run *delimRun

	// bracket is set for an unresolved "[" or "![".
	bracket *bracket
}

// inlineParser scans one leaf's joined content left to right. Leaf
// constructs are converted immediately; delimiter runs and brackets wait on
// their stacks for a closer.
type inlineParser struct {
	buf    []byte
	labels *labelTable
	opts   Options

	emitted  int // buf[:emitted] has been converted into list
	list     []piece
	brackets []*bracket
	exprs    exprCache
}

func (p *inlineParser) parse() []*mdast.Node {
	for i := 0; i < len(p.buf); {
		if end, ok := p.parseAt(i); ok {
			i = end
			continue
		}
		i++
	}
	p.emit(len(p.buf))

	return mergeText(piecesToNodes(p.processEmphasis(p.list)))
}

// parseAt tries the construct starting at buf[i]. It returns the offset to
// continue from; ok is false when buf[i] is ordinary text.
func (p *inlineParser) parseAt(i int) (int, bool) {
	switch p.buf[i] {
	case '\\':
		return p.parseEscape(i)
	case '`':
		return p.parseCodeSpan(i)
	case '*', '_':
		return p.parseDelimiterRun(i)
	case '~':
		if p.opts.gfm() {
			return p.parseDelimiterRun(i)
		}
	case '[':
		return p.openBracket(i, false)
	case '!':
		if i+1 < len(p.buf) && p.buf[i+1] == '[' {
			return p.openBracket(i, true)
		}
	case ']':
		return p.closeBracket(i)
	case '<':
		if end, ok := p.parseAutolink(i); ok {
			return end, true
		}
		if p.opts.mdx() {
			return p.parseInlineJSX(i)
		}
	case '{':
		if p.opts.mdx() {
			return p.parseExpression(i)
		}
	case '\n':
		return p.parseLineBreak(i), true
	}
	return 0, false
}

// emit converts pending text up to i into a text piece.
func (p *inlineParser) emit(i int) {
	if p.emitted < i {
		p.list = append(p.list, piece{node: mdast.NewText(mdast.Range(p.emitted, i), string(p.buf[p.emitted:i]))})
	}
	p.emitted = max(p.emitted, i)
}

func (p *inlineParser) push(pc piece) {
	p.list = append(p.list, pc)
	p.emitted = pc.node.Span.EndOffset
}

// add flushes pending text before start and appends pc.
func (p *inlineParser) add(start int, pc piece) {
	p.emit(start)
	p.push(pc)
}

// parseLineBreak handles a line ending at buf[i]. Two or more trailing
// spaces make it a hard break; the spaces belong to the break's span.
func (p *inlineParser) parseLineBreak(i int) int {
	start := i
	for start > p.emitted && p.buf[start-1] == ' ' {
		start--
	}

	brk := mdast.NewNode(mdast.NodeLineBreak, mdast.Range(start, i+1))
	brk.Inline.Hard = i-start >= 2
	p.add(start, piece{node: brk})
	return i + 1
}

func (p *inlineParser) parseExpression(i int) (int, bool) {
	if p.exprs == nil {
		p.exprs = exprCache{}
	}
	end, status := p.exprs.scan(p.buf, i)
	if status != scanOK {
		return 0, false
	}

	node := mdast.NewNode(mdast.NodeEmbeddedExpression, mdast.Range(i, end))
	node.Inline.Embedded = &mdast.EmbeddedAttrs{
		Form: mdast.EmbedExpression,
		Raw:  string(p.buf[i+1 : end-1]),
	}
	p.add(i, piece{node: node})
	return end, true
}

func (p *inlineParser) parseInlineJSX(i int) (int, bool) {
	tag, status := scanJSXTag(p.buf, i)
	if status != scanOK {
		return 0, false
	}

	node := mdast.NewNode(mdast.NodeEmbeddedExpression, mdast.Range(i, tag.end))
	node.Inline.Embedded = &mdast.EmbeddedAttrs{
		Form: mdast.EmbedJSX,
		Name: tag.name,
		Raw:  string(p.buf[i:tag.end]),
	}
	p.add(i, piece{node: node})
	return tag.end, true
}

func piecesToNodes(pieces []piece) []*mdast.Node {
	nodes := make([]*mdast.Node, 0, len(pieces))
	for _, pc := range pieces {
		if pc.node.Kind == mdast.NodeText && pc.node.Span.IsEmpty() {
			continue
		}
		nodes = append(nodes, pc.node)
	}
	return nodes
}

// mergeText joins adjacent text nodes, recursively. Each run of touching
// text nodes is concatenated once.
func mergeText(nodes []*mdast.Node) []*mdast.Node {
	out := nodes[:0]
	for k := 0; k < len(nodes); k++ {
		node := nodes[k]
		if len(node.Children) > 0 {
			node.Children = mergeText(node.Children)
			out = append(out, node)
			continue
		}
		if node.Kind != mdast.NodeText {
			out = append(out, node)
			continue
		}

		run := k
		for run+1 < len(nodes) && touchingText(nodes[run], nodes[run+1]) {
			run++
		}
		if run > k {
			var sb strings.Builder
			for _, part := range nodes[k : run+1] {
				sb.WriteString(part.Inline.Text)
			}
			node.Span.EndOffset = nodes[run].Span.EndOffset
			node.Inline.Text = sb.String()
		}
		out = append(out, node)
		k = run
	}
	return out
}

func touchingText(a, b *mdast.Node) bool {
	return b.Kind == mdast.NodeText && len(b.Children) == 0 && a.Span.EndOffset == b.Span.StartOffset
}
