package pretty

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/mdxor/pkg/mdast"
)

// Tree guide segments.
const (
	guideBranch = "├─ "
	guideLast   = "└─ "
	guidePipe   = "│  "
	guideSpace  = "   "
)

// maxLiteralRunes bounds quoted text shown next to a node.
const maxLiteralRunes = 40

// FormatTree renders tree as an indented outline with one node per line.
func (s *Styles) FormatTree(tree *mdast.Tree) string {
	if tree == nil || tree.Root == nil {
		return ""
	}

	var builder strings.Builder

	header := s.BlockKind.Render(tree.Root.Kind.String())
	if tree.Path != "" {
		header += " " + s.FilePath.Render(tree.Path)
	}
	if tree.Document != nil {
		header += " " + s.Dim.Render(fmt.Sprintf("(%d lines, %d bytes)",
			tree.Document.LineCount(), len(tree.Document.Content)))
	}
	builder.WriteString(header)
	builder.WriteByte('\n')

	for idx, child := range tree.Root.Children {
		s.formatNode(&builder, tree, child, "", idx == len(tree.Root.Children)-1)
	}

	return builder.String()
}

func (s *Styles) formatNode(builder *strings.Builder, tree *mdast.Tree, n *mdast.Node, prefix string, last bool) {
	guide, childPrefix := guideBranch, prefix+guidePipe
	if last {
		guide, childPrefix = guideLast, prefix+guideSpace
	}

	builder.WriteString(s.TreeGuide.Render(prefix + guide))
	builder.WriteString(s.FormatNodeLine(tree, n))
	builder.WriteByte('\n')

	for idx, child := range n.Children {
		s.formatNode(builder, tree, child, childPrefix, idx == len(n.Children)-1)
	}
}

// FormatNodeLine renders a single node as "Kind line:col-line:col attrs".
func (s *Styles) FormatNodeLine(tree *mdast.Tree, n *mdast.Node) string {
	kind := s.NodeKind.Render(n.Kind.String())
	if n.IsBlock() {
		kind = s.BlockKind.Render(n.Kind.String())
	}

	parts := []string{kind, s.Location.Render(formatPosition(tree.Position(n)))}
	for _, attr := range DescribeNode(n) {
		if strings.HasPrefix(attr, `"`) {
			parts = append(parts, s.Literal.Render(attr))
		} else {
			parts = append(parts, s.Attr.Render(attr))
		}
	}
	return strings.Join(parts, " ")
}

func formatPosition(pos mdast.SourcePosition) string {
	return pos.String()
}

// DescribeNode returns the notable attributes of n as short key=value strings.
// Literal text is returned as a quoted string.
func DescribeNode(n *mdast.Node) []string {
	if n == nil {
		return nil
	}
	if n.Block != nil {
		return describeBlock(n.Kind, n.Block)
	}
	if n.Inline != nil {
		return describeInline(n.Kind, n.Inline)
	}
	return nil
}

func describeBlock(kind mdast.NodeKind, attrs *mdast.BlockAttrs) []string {
	var out []string

	switch kind {
	case mdast.NodeHeading:
		out = append(out, "level="+strconv.Itoa(attrs.HeadingLevel))
		if attrs.Setext {
			out = append(out, "setext")
		}
	case mdast.NodeList:
		if attrs.List == nil {
			return nil
		}
		if attrs.List.Ordered {
			out = append(out, "ordered", "start="+strconv.Itoa(attrs.List.StartNumber))
		} else {
			out = append(out, "bullet="+strconv.Quote(attrs.List.BulletMarker))
		}
		if attrs.List.Tight {
			out = append(out, "tight")
		} else {
			out = append(out, "loose")
		}
	case mdast.NodeListItem:
		if attrs.ListItem.IsTask() {
			out = append(out, "task", "checked="+strconv.FormatBool(*attrs.ListItem.Checked))
		}
	case mdast.NodeTable:
		if attrs.Table != nil {
			out = append(out, "columns="+strconv.Itoa(len(attrs.Table.Alignments)))
		}
	case mdast.NodeTableRow:
		if attrs.Header {
			out = append(out, "header")
		}
	case mdast.NodeTableCell:
		if attrs.Cell != nil && attrs.Cell.Align != mdast.AlignNone {
			out = append(out, "align="+attrs.Cell.Align.String())
		}
	case mdast.NodeCodeBlock:
		if attrs.CodeBlock == nil {
			return nil
		}
		if attrs.CodeBlock.Indented {
			out = append(out, "indented")
		} else {
			out = append(out, "fenced")
		}
		if attrs.CodeBlock.Language != "" {
			out = append(out, "lang="+attrs.CodeBlock.Language)
		} else if attrs.CodeBlock.DetectedLanguage != "" {
			out = append(out, "detected="+attrs.CodeBlock.DetectedLanguage)
		}
	case mdast.NodeEmbeddedBlock, mdast.NodeFrontmatter:
		out = append(out, describeEmbedded(attrs.Embedded)...)
	default:
	}

	return out
}

func describeInline(kind mdast.NodeKind, attrs *mdast.InlineAttrs) []string {
	switch kind {
	case mdast.NodeText, mdast.NodeCodeSpan:
		return []string{QuoteTruncated(attrs.Text, maxLiteralRunes)}
	case mdast.NodeEmphasis:
		return []string{"level=" + strconv.Itoa(attrs.EmphasisLevel)}
	case mdast.NodeLink, mdast.NodeImage:
		if attrs.Link == nil {
			return nil
		}
		out := []string{"dest=" + strconv.Quote(attrs.Link.Destination)}
		if attrs.Link.Title != "" {
			out = append(out, "title="+strconv.Quote(attrs.Link.Title))
		}
		if attrs.Link.ReferenceStyle != mdast.RefStyleInline {
			out = append(out, "ref="+attrs.Link.ReferenceStyle.String())
		}
		if attrs.Link.ReferenceLabel != "" {
			out = append(out, "label="+strconv.Quote(attrs.Link.ReferenceLabel))
		}
		return out
	case mdast.NodeLineBreak:
		if attrs.Hard {
			return []string{"hard"}
		}
		return []string{"soft"}
	case mdast.NodeEmbeddedExpression:
		return describeEmbedded(attrs.Embedded)
	default:
		return nil
	}
}

func describeEmbedded(attrs *mdast.EmbeddedAttrs) []string {
	if attrs == nil {
		return nil
	}
	out := []string{"form=" + attrs.Form.String()}
	if attrs.Name != "" {
		out = append(out, "name="+attrs.Name)
	}
	return append(out, QuoteTruncated(attrs.Raw, maxLiteralRunes))
}

// QuoteTruncated quotes str, cutting it to at most maxRunes runes first.
func QuoteTruncated(str string, maxRunes int) string {
	if utf8.RuneCountInString(str) <= maxRunes {
		return strconv.Quote(str)
	}
	runes := []rune(str)
	return strconv.Quote(string(runes[:maxRunes])) + "…"
}
