package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdxor/pkg/mdast"
)

func TestBlock_Structure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"empty", "", ""},
		{"blank lines only", "\n\n  \n", ""},
		{"heading and paragraph", "# H\n\npara", "Heading Paragraph"},
		{"paragraph lines join", "a\nb\nc", "Paragraph"},
		{"bullet list", "- a\n- b", "List[ListItem[Paragraph] ListItem[Paragraph]]"},
		{"ordered list", "1. a\n2. b", "List[ListItem[Paragraph] ListItem[Paragraph]]"},
		{"marker change starts new list", "- a\n+ b", "List[ListItem[Paragraph]] List[ListItem[Paragraph]]"},
		{"nested list", "- a\n  - b", "List[ListItem[Paragraph List[ListItem[Paragraph]]]]"},
		{"block quote", "> q", "BlockQuote[Paragraph]"},
		{"nested block quote", ">> q", "BlockQuote[BlockQuote[Paragraph]]"},
		{"list in block quote", "> - a\n> - b", "BlockQuote[List[ListItem[Paragraph] ListItem[Paragraph]]]"},
		{"quote closed by blank line", "> a\n\nb", "BlockQuote[Paragraph] Paragraph"},
		{"item continues after blank line", "- a\n\n  b", "List[ListItem[Paragraph Paragraph]]"},
		{"thematic break", "***", "ThematicBreak"},
		{"spaced thematic break", "- - -", "ThematicBreak"},
		{"fenced code", "```\ncode\n```", "CodeBlock"},
		{"indented code", "    code", "CodeBlock"},
		{"indented line continues paragraph", "para\n    more", "Paragraph"},
		{"fenced code in item", "- ```\n  x\n  ```", "List[ListItem[CodeBlock]]"},
		{"setext level 1", "Title\n===", "Heading"},
		{"setext beats thematic break", "a\n---", "Heading"},
		{"thematic break after blank", "a\n\n---", "Paragraph ThematicBreak"},
		{"underline after definition only", "[x]: /u\n---", "ThematicBreak"},
		{"atx needs space", "#NoSpace", "Paragraph"},
		{"seven hashes", "####### seven", "Paragraph"},
		{"definition only", "[x]: /u", ""},
		{"jsx block", "<Note>\nHello\n</Note>", "EmbeddedBlock"},
		{"jsx block then paragraph", "<Note />\ntext", "EmbeddedBlock Paragraph"},
		{"esm", "import a from 'b'\nexport const c = 1\n\n# T", "EmbeddedBlock Heading"},
		{"frontmatter", "---\ntitle: x\n---\n\n# H", "Frontmatter Heading"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			tree := mustParse(t, testCase.source)
			assert.Equal(t, testCase.want, renderBlocks(tree.Root.Children))
		})
	}
}

func TestBlock_LazyContinuation(t *testing.T) {
	t.Parallel()

	t.Run("list item", func(t *testing.T) {
		t.Parallel()

		tree := mustParse(t, "- a\nb")
		assert.Equal(t, "List[ListItem[Paragraph]]", renderBlocks(tree.Root.Children))

		para := firstLeaf(t, tree)
		assert.Equal(t, `Text("a") Break Text("b")`, renderInline(para.Children))

		list := tree.Root.FirstChild()
		assert.Equal(t, mdast.Range(0, 5), list.Span)
		assert.Equal(t, mdast.Range(0, 5), list.FirstChild().Span)
	})

	t.Run("block quote", func(t *testing.T) {
		t.Parallel()

		tree := mustParse(t, "> a\nb")
		assert.Equal(t, "BlockQuote[Paragraph]", renderBlocks(tree.Root.Children))
		assert.Equal(t, `Text("a") Break Text("b")`, renderInline(firstLeaf(t, tree).Children))
	})

	t.Run("disabled", func(t *testing.T) {
		t.Parallel()

		opts := DefaultOptions()
		opts.LazyContinuation = false

		tree := mustParseWith(t, opts, "- a\nb")
		assert.Equal(t, "List[ListItem[Paragraph]] Paragraph", renderBlocks(tree.Root.Children))

		tree = mustParseWith(t, opts, "> a\nb")
		assert.Equal(t, "BlockQuote[Paragraph] Paragraph", renderBlocks(tree.Root.Children))
	})

	t.Run("not for code", func(t *testing.T) {
		t.Parallel()

		tree := mustParse(t, "-     code\nb")
		assert.Equal(t, "List[ListItem[CodeBlock]] Paragraph", renderBlocks(tree.Root.Children))
	})
}

func TestBlock_ListTightness(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		tight  bool
	}{
		{"adjacent items", "- a\n- b", true},
		{"blank between items", "- a\n\n- b", false},
		{"trailing blank", "- a\n- b\n\n", true},
		{"blank inside item", "- a\n\n  b", false},
		{"nested list ending in blank", "- a\n  - b\n\n- c", false},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			tree := mustParse(t, testCase.source)
			list := tree.Root.FirstChild()
			require.Equal(t, mdast.NodeList, list.Kind)
			assert.Equal(t, testCase.tight, list.Block.List.Tight)
		})
	}
}

func TestBlock_ListAttributes(t *testing.T) {
	t.Parallel()

	tree := mustParse(t, "3) a\n4) b")
	list := tree.Root.FirstChild()
	require.Equal(t, mdast.NodeList, list.Kind)

	attrs := list.Block.List
	assert.True(t, attrs.Ordered)
	assert.Equal(t, 3, attrs.StartNumber)
	assert.Equal(t, ")", attrs.Delimiter)
	require.Len(t, list.Children, 2)
	assert.Equal(t, mdast.Range(0, 4), list.Children[0].Span)
	assert.Equal(t, mdast.Range(5, 9), list.Children[1].Span)
	assert.Equal(t, 3, list.Children[0].Block.ContentIndent)
}

func TestBlock_OrderedItemInterruptingParagraph(t *testing.T) {
	t.Parallel()

	tree := mustParse(t, "text\n2. not a list")
	assert.Equal(t, "Paragraph", renderBlocks(tree.Root.Children))

	tree = mustParse(t, "text\n1. a list")
	assert.Equal(t, "Paragraph List[ListItem[Paragraph]]", renderBlocks(tree.Root.Children))
}

func TestBlock_Headings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		source  string
		level   int
		setext  bool
		content string
	}{
		{"atx", "# Hello", 1, false, "Hello"},
		{"atx closing sequence", "## Hello ##", 2, false, "Hello"},
		{"atx hash inside word", "### C#", 3, false, "C#"},
		{"atx empty", "#", 1, false, ""},
		{"setext level 1", "Hello\n=====", 1, true, "Hello"},
		{"setext level 2", "Hello\nworld\n---", 2, true, "Hello\nworld"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			tree := mustParse(t, testCase.source)
			heading := tree.Root.FirstChild()
			require.Equal(t, mdast.NodeHeading, heading.Kind)
			assert.Equal(t, testCase.level, heading.Block.HeadingLevel)
			assert.Equal(t, testCase.setext, heading.Block.Setext)
			assert.Equal(t, testCase.content, string(tree.Document.Slice(heading.Content())))
		})
	}
}

func TestBlock_CodeBlocks(t *testing.T) {
	t.Parallel()

	t.Run("fenced", func(t *testing.T) {
		t.Parallel()

		tree := mustParse(t, "```go title\nfmt.Println()\n```\n")
		code := tree.Root.FirstChild()
		require.Equal(t, mdast.NodeCodeBlock, code.Kind)

		attrs := code.Block.CodeBlock
		assert.Equal(t, byte('`'), attrs.FenceChar)
		assert.Equal(t, 3, attrs.FenceLength)
		assert.Equal(t, "go title", attrs.Info)
		assert.Equal(t, "go", attrs.Language)
		assert.Equal(t, "fmt.Println()\n", attrs.Literal)
		assert.Equal(t, mdast.Range(0, 29), code.Span)
	})

	t.Run("unclosed fence runs to end", func(t *testing.T) {
		t.Parallel()

		tree := mustParse(t, "~~~\nabc\n\ndef")
		code := tree.Root.FirstChild()
		require.Equal(t, mdast.NodeCodeBlock, code.Kind)
		assert.Equal(t, "abc\n\ndef\n", code.Block.CodeBlock.Literal)
		assert.Equal(t, mdast.Range(0, 12), code.Span)
	})

	t.Run("indented", func(t *testing.T) {
		t.Parallel()

		tree := mustParse(t, "    a\n\n      b\n\n")
		code := tree.Root.FirstChild()
		require.Equal(t, mdast.NodeCodeBlock, code.Kind)
		assert.True(t, code.Block.CodeBlock.Indented)
		assert.Equal(t, "a\n\n  b\n", code.Block.CodeBlock.Literal)
	})

	t.Run("detector fills language", func(t *testing.T) {
		t.Parallel()

		opts := DefaultOptions()
		opts.Detector = detectorFunc(func([]byte) string { return "python" })

		tree := mustParseWith(t, opts, "```\nprint(1)\n```\n\n```go\nx\n```")
		blocks := mdast.FindByKind(tree.Root, mdast.NodeCodeBlock)
		require.Len(t, blocks, 2)
		assert.Equal(t, "python", blocks[0].Block.CodeBlock.DetectedLanguage)
		assert.Empty(t, blocks[1].Block.CodeBlock.DetectedLanguage)
	})
}

type detectorFunc func([]byte) string

func (f detectorFunc) Detect(content []byte) string {
	return f(content)
}

func TestBlock_EmbeddedBlocks(t *testing.T) {
	t.Parallel()

	t.Run("jsx", func(t *testing.T) {
		t.Parallel()

		source := "<Note kind=\"info\">\n  Hello {name}\n</Note>"
		tree := mustParse(t, source)
		block := tree.Root.FirstChild()
		require.Equal(t, mdast.NodeEmbeddedBlock, block.Kind)
		assert.Equal(t, mdast.EmbedJSX, block.Block.Embedded.Form)
		assert.Equal(t, "Note", block.Block.Embedded.Name)
		assert.Equal(t, source, block.Block.Embedded.Raw)
	})

	t.Run("multi-line tag", func(t *testing.T) {
		t.Parallel()

		tree := mustParse(t, "<Chart\n  data={[1, 2]}\n/>\n\nafter")
		assert.Equal(t, "EmbeddedBlock Paragraph", renderBlocks(tree.Root.Children))
	})

	t.Run("esm", func(t *testing.T) {
		t.Parallel()

		tree := mustParse(t, "import {Chart} from './chart'\n\n# Hi")
		block := tree.Root.FirstChild()
		require.Equal(t, mdast.NodeEmbeddedBlock, block.Kind)
		assert.Equal(t, mdast.EmbedESM, block.Block.Embedded.Form)
		assert.Equal(t, "import {Chart} from './chart'", block.Block.Embedded.Raw)
	})

	t.Run("not in commonmark", func(t *testing.T) {
		t.Parallel()

		tree := mustParseWith(t, OptionsForFlavor(FlavorCommonMark), "import a from 'b'")
		assert.Equal(t, "Paragraph", renderBlocks(tree.Root.Children))
	})
}

func TestBlock_Frontmatter(t *testing.T) {
	t.Parallel()

	t.Run("yaml", func(t *testing.T) {
		t.Parallel()

		tree := mustParse(t, "---\ntitle: x\n---\n# H")
		front := tree.Root.FirstChild()
		require.Equal(t, mdast.NodeFrontmatter, front.Kind)
		assert.Equal(t, mdast.EmbedYAML, front.Block.Embedded.Form)
		assert.Equal(t, "title: x\n", front.Block.Embedded.Raw)
		assert.Equal(t, mdast.Range(0, 16), front.Span)
	})

	t.Run("unclosed is a thematic break", func(t *testing.T) {
		t.Parallel()

		tree := mustParse(t, "---\ntitle: x")
		assert.Equal(t, "ThematicBreak Paragraph", renderBlocks(tree.Root.Children))
	})

	t.Run("disabled for commonmark", func(t *testing.T) {
		t.Parallel()

		tree := mustParseWith(t, OptionsForFlavor(FlavorCommonMark), "---\ntitle: x\n---")
		assert.Equal(t, "ThematicBreak Heading", renderBlocks(tree.Root.Children))
	})
}

func TestBlock_ContainerSpans(t *testing.T) {
	t.Parallel()

	tree := mustParse(t, "> # T\n> text\n\nafter")
	quote := tree.Root.FirstChild()
	require.Equal(t, mdast.NodeBlockQuote, quote.Kind)
	assert.Equal(t, mdast.Range(0, 12), quote.Span)
	assert.Equal(t, "Heading Paragraph", renderBlocks(quote.Children))

	pos := tree.Position(tree.Root.LastChild())
	assert.Equal(t, 4, pos.StartLine)
	assert.Equal(t, 1, pos.StartColumn)
}
