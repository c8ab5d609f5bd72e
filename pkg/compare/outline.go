package compare

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdxor/pkg/mdast"
)

// Entry is one block in an outline.
type Entry struct {
	// Depth is the nesting depth below the document (0 for top-level blocks).
	Depth int

	// Kind is the block kind.
	Kind mdast.NodeKind

	// Detail holds the shape attributes of the block, if any.
	Detail string
}

// String renders the entry as an indented outline line.
func (e Entry) String() string {
	line := strings.Repeat("  ", e.Depth) + e.Kind.String()
	if e.Detail != "" {
		line += " " + e.Detail
	}
	return line
}

// Outline lists the block nodes below root in document order.
func Outline(root *mdast.Node) []Entry {
	var entries []Entry
	depth := -1

	//nolint:errcheck // Callbacks never fail.
	mdast.WalkWithContext(root,
		func(n *mdast.Node) error {
			if !n.IsBlock() {
				return nil
			}
			if depth >= 0 {
				entries = append(entries, Entry{Depth: depth, Kind: n.Kind, Detail: blockDetail(n)})
			}
			depth++
			return nil
		},
		func(n *mdast.Node) error {
			if n.IsBlock() {
				depth--
			}
			return nil
		},
	)

	return entries
}

// Lines renders an outline as text lines.
func Lines(entries []Entry) []string {
	lines := make([]string, len(entries))
	for i, entry := range entries {
		lines[i] = entry.String()
	}
	return lines
}

func blockDetail(n *mdast.Node) string {
	attrs := n.Block
	if attrs == nil {
		return ""
	}

	switch n.Kind {
	case mdast.NodeHeading:
		return fmt.Sprintf("level=%d", attrs.HeadingLevel)

	case mdast.NodeList:
		if attrs.List == nil {
			return ""
		}
		if attrs.List.Ordered {
			return fmt.Sprintf("ordered start=%d delim=%q tight=%t",
				attrs.List.StartNumber, attrs.List.Delimiter, attrs.List.Tight)
		}
		return fmt.Sprintf("bullet marker=%q tight=%t", attrs.List.BulletMarker, attrs.List.Tight)

	case mdast.NodeListItem:
		if attrs.ListItem.IsTask() {
			return fmt.Sprintf("task checked=%t", *attrs.ListItem.Checked)
		}
		return ""

	case mdast.NodeTable:
		if attrs.Table == nil {
			return ""
		}
		aligns := make([]string, len(attrs.Table.Alignments))
		for i, a := range attrs.Table.Alignments {
			aligns[i] = a.String()
		}
		return "align=" + strings.Join(aligns, ",")

	case mdast.NodeTableRow:
		if attrs.Header {
			return "header"
		}
		return ""

	case mdast.NodeCodeBlock:
		if attrs.CodeBlock == nil {
			return ""
		}
		lines := literalLines(attrs.CodeBlock.Literal)
		if attrs.CodeBlock.Indented {
			return fmt.Sprintf("indented lines=%d", lines)
		}
		return fmt.Sprintf("fenced info=%q lines=%d", attrs.CodeBlock.Info, lines)

	case mdast.NodeEmbeddedBlock, mdast.NodeFrontmatter:
		if attrs.Embedded == nil {
			return ""
		}
		return "form=" + attrs.Embedded.Form.String()

	default:
		return ""
	}
}

// literalLines counts the lines of a code literal. A missing final newline
// does not change the count.
func literalLines(literal string) int {
	if literal == "" {
		return 0
	}
	return strings.Count(strings.TrimSuffix(literal, "\n"), "\n") + 1
}
