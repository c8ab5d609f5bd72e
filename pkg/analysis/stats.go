package analysis

import (
	"github.com/yaklabco/mdxor/pkg/mdast"
)

// TreeStats summarises the shape of a single parsed tree.
type TreeStats struct {
	// Nodes is the total node count, including the document root.
	Nodes int `json:"nodes" yaml:"nodes"`

	// Blocks and Inlines split Nodes by category.
	Blocks  int `json:"blocks" yaml:"blocks"`
	Inlines int `json:"inlines" yaml:"inlines"`

	// MaxDepth is the deepest nesting level below the root.
	MaxDepth int `json:"maxDepth" yaml:"max_depth"`

	// Lines is the number of source lines.
	Lines int `json:"lines" yaml:"lines"`

	// ByKind counts nodes per kind name.
	ByKind map[string]int `json:"byKind" yaml:"by_kind"`

	// Embedded counts embedded blocks and expressions per form.
	Embedded map[string]int `json:"embedded,omitempty" yaml:"embedded,omitempty"`

	// Languages counts code blocks per declared or detected language.
	Languages map[string]int `json:"languages,omitempty" yaml:"languages,omitempty"`

	// References counts links and images resolved through a definition.
	References int `json:"references" yaml:"references"`
}

// Collect walks tree and computes its statistics.
func Collect(tree *mdast.Tree) TreeStats {
	stats := TreeStats{ByKind: make(map[string]int)}
	if tree == nil || tree.Root == nil {
		return stats
	}
	if tree.Document != nil {
		stats.Lines = tree.Document.LineCount()
	}

	depth := -1
	enter := func(n *mdast.Node) error {
		depth++
		stats.MaxDepth = max(stats.MaxDepth, depth)
		stats.Nodes++
		stats.ByKind[n.Kind.String()]++

		if n.IsBlock() {
			stats.Blocks++
		} else {
			stats.Inlines++
		}

		collectAttrs(&stats, n)
		return nil
	}
	leave := func(*mdast.Node) error {
		depth--
		return nil
	}

	_ = mdast.WalkWithContext(tree.Root, enter, leave)
	return stats
}

func collectAttrs(stats *TreeStats, n *mdast.Node) {
	switch n.Kind {
	case mdast.NodeEmbeddedBlock:
		if n.Block != nil && n.Block.Embedded != nil {
			countKey(&stats.Embedded, n.Block.Embedded.Form.String())
		}
	case mdast.NodeEmbeddedExpression:
		if n.Inline != nil && n.Inline.Embedded != nil {
			countKey(&stats.Embedded, n.Inline.Embedded.Form.String())
		}
	case mdast.NodeCodeBlock:
		if n.Block == nil || n.Block.CodeBlock == nil {
			return
		}
		lang := n.Block.CodeBlock.Language
		if lang == "" {
			lang = n.Block.CodeBlock.DetectedLanguage
		}
		if lang != "" {
			countKey(&stats.Languages, lang)
		}
	case mdast.NodeLink, mdast.NodeImage:
		if n.Inline == nil || n.Inline.Link == nil {
			return
		}
		switch n.Inline.Link.ReferenceStyle {
		case mdast.RefStyleFull, mdast.RefStyleCollapsed, mdast.RefStyleShortcut:
			stats.References++
		case mdast.RefStyleInline, mdast.RefStyleAutolink:
		}
	default:
	}
}

func countKey(m *map[string]int, key string) {
	if *m == nil {
		*m = make(map[string]int)
	}
	(*m)[key]++
}
