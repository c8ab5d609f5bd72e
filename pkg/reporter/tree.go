package reporter

import (
	"bufio"
	"fmt"

	"github.com/yaklabco/mdxor/internal/ui/pretty"
	"github.com/yaklabco/mdxor/pkg/mdast"
)

// TreeFormat selects how a single parse tree is written.
type TreeFormat string

// Tree output formats.
const (
	TreeFormatTree TreeFormat = "tree"
	TreeFormatJSON TreeFormat = "json"
	TreeFormatYAML TreeFormat = "yaml"
)

// ParseTreeFormat parses a tree format string. The empty string selects the tree outline.
func ParseTreeFormat(formatStr string) (TreeFormat, error) {
	switch formatStr {
	case "tree", "":
		return TreeFormatTree, nil
	case "json":
		return TreeFormatJSON, nil
	case "yaml":
		return TreeFormatYAML, nil
	default:
		return "", fmt.Errorf("unknown tree format %q; valid formats: tree, json, yaml", formatStr)
	}
}

// TreeView is the serialisable form of a parse tree.
type TreeView struct {
	Path  string   `json:"path,omitempty" yaml:"path,omitempty"`
	Lines int      `json:"lines" yaml:"lines"`
	Bytes int      `json:"bytes" yaml:"bytes"`
	Root  NodeView `json:"root" yaml:"root"`
}

// NodeView is the serialisable form of one node.
type NodeView struct {
	Kind     string         `json:"kind" yaml:"kind"`
	Span     [2]int         `json:"span" yaml:"span,flow"`
	Position PositionView   `json:"position" yaml:"position"`
	Attrs    map[string]any `json:"attrs,omitempty" yaml:"attrs,omitempty"`
	Children []NodeView     `json:"children,omitempty" yaml:"children,omitempty"`
}

// PositionView is a 1-based line/column range.
type PositionView struct {
	StartLine   int `json:"startLine" yaml:"start_line"`
	StartColumn int `json:"startColumn" yaml:"start_column"`
	EndLine     int `json:"endLine" yaml:"end_line"`
	EndColumn   int `json:"endColumn" yaml:"end_column"`
}

// NewTreeView converts tree into its serialisable form.
func NewTreeView(tree *mdast.Tree) *TreeView {
	view := &TreeView{Path: tree.Path}
	if tree.Document != nil {
		view.Lines = tree.Document.LineCount()
		view.Bytes = len(tree.Document.Content)
	}
	if tree.Root != nil {
		view.Root = newNodeView(tree, tree.Root)
	}
	return view
}

func newNodeView(tree *mdast.Tree, n *mdast.Node) NodeView {
	pos := tree.Position(n)
	view := NodeView{
		Kind: n.Kind.String(),
		Span: [2]int{n.Span.StartOffset, n.Span.EndOffset},
		Position: PositionView{
			StartLine:   pos.StartLine,
			StartColumn: pos.StartColumn,
			EndLine:     pos.EndLine,
			EndColumn:   pos.EndColumn,
		},
		Attrs: nodeAttrs(n),
	}

	if len(n.Children) > 0 {
		view.Children = make([]NodeView, 0, len(n.Children))
		for _, child := range n.Children {
			view.Children = append(view.Children, newNodeView(tree, child))
		}
	}

	return view
}

func nodeAttrs(n *mdast.Node) map[string]any {
	attrs := make(map[string]any)

	if block := n.Block; block != nil {
		if n.Kind == mdast.NodeHeading {
			attrs["level"] = block.HeadingLevel
			if block.Setext {
				attrs["setext"] = true
			}
		}
		if list := block.List; list != nil {
			attrs["ordered"] = list.Ordered
			attrs["tight"] = list.Tight
			if list.Ordered {
				attrs["start"] = list.StartNumber
				attrs["delimiter"] = list.Delimiter
			} else {
				attrs["bullet"] = list.BulletMarker
			}
		}
		if code := block.CodeBlock; code != nil {
			attrs["fenced"] = !code.Indented
			setNonEmpty(attrs, "info", code.Info)
			setNonEmpty(attrs, "language", code.Language)
			setNonEmpty(attrs, "detectedLanguage", code.DetectedLanguage)
			attrs["literal"] = code.Literal
		}
		if block.ListItem.IsTask() {
			attrs["checked"] = *block.ListItem.Checked
		}
		tableAttrs(attrs, block)
		embeddedAttrs(attrs, block.Embedded)
	}

	if inline := n.Inline; inline != nil {
		switch n.Kind {
		case mdast.NodeText, mdast.NodeCodeSpan:
			attrs["text"] = inline.Text
		case mdast.NodeEmphasis:
			attrs["level"] = inline.EmphasisLevel
		case mdast.NodeLineBreak:
			attrs["hard"] = inline.Hard
		default:
		}
		if link := inline.Link; link != nil {
			attrs["destination"] = link.Destination
			setNonEmpty(attrs, "title", link.Title)
			setNonEmpty(attrs, "label", link.ReferenceLabel)
			attrs["style"] = link.ReferenceStyle.String()
		}
		embeddedAttrs(attrs, inline.Embedded)
	}

	if len(attrs) == 0 {
		return nil
	}
	return attrs
}

func tableAttrs(attrs map[string]any, block *mdast.BlockAttrs) {
	if table := block.Table; table != nil {
		aligns := make([]string, len(table.Alignments))
		for i, a := range table.Alignments {
			aligns[i] = a.String()
		}
		attrs["align"] = aligns
	}
	if cell := block.Cell; cell != nil {
		attrs["column"] = cell.Column
		attrs["align"] = cell.Align.String()
	}
	if block.Header {
		attrs["header"] = true
	}
}

func embeddedAttrs(attrs map[string]any, embedded *mdast.EmbeddedAttrs) {
	if embedded == nil {
		return
	}
	attrs["form"] = embedded.Form.String()
	setNonEmpty(attrs, "name", embedded.Name)
	attrs["raw"] = embedded.Raw
}

func setNonEmpty(attrs map[string]any, key, value string) {
	if value != "" {
		attrs[key] = value
	}
}

// WriteTree writes a single parse tree to opts.Writer.
func WriteTree(opts Options, tree *mdast.Tree, format TreeFormat) error {
	switch format {
	case TreeFormatJSON:
		return writeJSON(opts, NewTreeView(tree))
	case TreeFormatYAML:
		return writeYAML(opts, NewTreeView(tree))
	case TreeFormatTree, "":
		styles := pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer))
		bw := bufio.NewWriterSize(opts.Writer, bufWriterSize)
		if _, err := bw.WriteString(styles.FormatTree(tree)); err != nil {
			return fmt.Errorf("write tree: %w", err)
		}
		return bw.Flush()
	default:
		return fmt.Errorf("unsupported tree format: %s", format)
	}
}
