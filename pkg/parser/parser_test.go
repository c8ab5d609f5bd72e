package parser

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdxor/pkg/mdast"
)

func TestParseFlavor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		want   Flavor
		wantOK bool
	}{
		{"commonmark", FlavorCommonMark, true},
		{"gfm", FlavorGFM, true},
		{"mdx", FlavorMDX, true},
		{"markdown", "", false},
		{"", "", false},
	}

	for _, testCase := range tests {
		got, ok := ParseFlavor(testCase.name)
		assert.Equal(t, testCase.wantOK, ok, testCase.name)
		assert.Equal(t, testCase.want, got, testCase.name)
	}
}

func TestOptionsForFlavor(t *testing.T) {
	t.Parallel()

	opts := OptionsForFlavor(FlavorCommonMark)
	assert.Equal(t, FlavorCommonMark, opts.Flavor)
	assert.True(t, opts.LazyContinuation)
	assert.False(t, opts.Frontmatter)
	assert.False(t, opts.gfm())
	assert.False(t, opts.mdx())

	opts = OptionsForFlavor(FlavorGFM)
	assert.True(t, opts.Frontmatter)
	assert.True(t, opts.gfm())
	assert.False(t, opts.mdx())

	opts = OptionsForFlavor("bogus")
	assert.Equal(t, FlavorMDX, opts.Flavor)
	assert.Equal(t, DefaultOptions(), opts)
}

func TestNew_UnknownFlavorDefaultsToMDX(t *testing.T) {
	t.Parallel()

	p := New(Options{Flavor: "nope"})
	assert.Equal(t, FlavorMDX, p.Options().Flavor)
}

func TestParser_Parse_Basic(t *testing.T) {
	t.Parallel()

	content := []byte("# Hello\n\nWorld\n")
	tree, err := New(DefaultOptions()).Parse(t.Context(), "doc.mdx", content)
	require.NoError(t, err)

	assert.Equal(t, "doc.mdx", tree.Path)
	assert.Equal(t, content, tree.Document.Content)
	assert.Equal(t, mdast.NodeDocument, tree.Root.Kind)
	assert.Equal(t, mdast.Range(0, len(content)), tree.Root.Span)
	assert.Equal(t, "Heading Paragraph", renderBlocks(tree.Root.Children))

	heading := tree.Root.FirstChild()
	assert.Equal(t, "# Hello", string(tree.Text(heading)))
	assert.Equal(t, "Hello", mdast.PlainText(heading))
}

func TestParser_Parse_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := New(DefaultOptions()).Parse(ctx, "x.md", []byte("text"))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParser_Parse_InvalidEncoding(t *testing.T) {
	t.Parallel()

	_, err := New(DefaultOptions()).Parse(t.Context(), "bad.md", []byte{'o', 'k', 0xff, 'x'})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInputEncoding)
	assert.NotErrorIs(t, err, ErrInvariant)

	var encErr *EncodingError
	require.ErrorAs(t, err, &encErr)
	assert.Equal(t, 2, encErr.Offset)
}

// Every valid UTF-8 input parses, however malformed the Markdown.
func TestParse_Totality(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"\n",
		"\r\n\r\n",
		"*",
		"**",
		"***",
		"_*_*",
		"[",
		"]",
		"[]",
		"[]()",
		"![",
		"[[[[]]]]",
		"`",
		"```",
		"``` ```",
		"\\",
		"a\\",
		"<",
		"</",
		"<a",
		"<a b=",
		"<a {",
		"{",
		"}",
		"{{}",
		"{'",
		"---",
		"---\n",
		"- ",
		"-\n-\n-",
		"1.",
		"> ",
		">\n>\n>",
		"#",
		"######",
		"\t\t\tx",
		" \t- \t>\t*",
		"[a]: ",
		"[a]:\n",
		"[a]: <",
		"- a\n\n\n  b",
		"> - > - > -",
		"~~~\n~~",
		"<X>\n\n</X>",
		"import",
		"export x\n",
		"***a**b*c***",
		"[*a](b*)",
		"`a\n\nb`",
		"éà *ü* 日本語 **中文**",
		strings.Repeat("*a ", 200),
		strings.Repeat("[", 300) + strings.Repeat("]", 300),
		strings.Repeat("> ", 100) + "deep",
		strings.Repeat("- ", 100) + "deep",
	}

	for _, flavor := range []Flavor{FlavorCommonMark, FlavorGFM, FlavorMDX} {
		p := New(OptionsForFlavor(flavor))
		for _, input := range inputs {
			tree, err := p.Parse(t.Context(), "", []byte(input))
			require.NoError(t, err, "flavor %s input %q", flavor, input)
			require.NoError(t, Verify(tree), "flavor %s input %q", flavor, input)
		}
	}
}

// The inline children of every paragraph and heading reproduce its content
// byte for byte.
func TestParse_SpanCoverage(t *testing.T) {
	t.Parallel()

	sources := []string{
		"# Title *with* `code`\n\nSome **bold** and _em_ text\nwith a [link](/x) and ![img](y \"t\").\n",
		"> quoted *emph\n> across* lines\n> - item with {expr}\n>   continued\n",
		"1. one  \n   two\\\n   three\n\n   para\n",
		"Setext *heading*\nsecond line\n---\n",
		"[ref]\n\n[ref]: /url\n",
		"- a\n  lazy\nstill lazy\n",
	}

	for _, source := range sources {
		tree := mustParse(t, source)
		for _, leaf := range mdast.FindAll(tree.Root, func(n *mdast.Node) bool { return n.Kind.HasInlineContent() }) {
			content := leaf.Content()
			require.True(t, mdast.ValidateTiling(leaf.Children, content), "source %q leaf %v", source, leaf.Kind)

			var joined strings.Builder
			for _, child := range leaf.Children {
				joined.Write(tree.Text(child))
			}
			assert.Equal(t, string(tree.Document.Slice(content)), joined.String())
		}
	}
}

// Adversarial inputs that used to take quadratic time must parse quickly.
func TestParse_PathologicalInputs(t *testing.T) {
	if testing.Short() {
		t.Skip("large inputs")
	}
	t.Parallel()

	const (
		n      = 40000
		budget = 3 * time.Second
	)
	inputs := map[string]string{
		"nested list markers":     strings.Repeat("- ", n) + "x",
		"nested ordered markers":  strings.Repeat("1. ", n) + "x",
		"nested block quotes":     strings.Repeat("> ", n) + "x",
		"unmatched emphasis runs": strings.Repeat("*a_", n),
		"unclosed braces":         strings.Repeat("{", n),
		"unclosed brackets":       strings.Repeat("[", n) + strings.Repeat("]", n),
		"long bracket text":       "[" + strings.Repeat("a", n) + "][]",
		"spaced break characters": strings.Repeat("- ", n) + "-",
	}

	p := New(OptionsForFlavor(FlavorMDX))
	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			start := time.Now()
			tree, err := p.Parse(t.Context(), "", []byte(input))
			elapsed := time.Since(start)

			require.NoError(t, err)
			require.NoError(t, Verify(tree))
			assert.Less(t, elapsed, budget)
		})
	}
}

func TestParse_DeepNestingSpans(t *testing.T) {
	t.Parallel()

	source := "- - > - x\n    >   y"
	tree := mustParse(t, source)
	require.NoError(t, Verify(tree))
	assert.Equal(t, "List[ListItem[List[ListItem[BlockQuote[List[ListItem[Paragraph]]]]]]]",
		renderBlocks(tree.Root.Children))

	// Every container reaches the end of the innermost paragraph.
	para := mdast.FindByKind(tree.Root, mdast.NodeParagraph)[0]
	for _, node := range mdast.FindAll(tree.Root, func(n *mdast.Node) bool {
		return n.IsBlock() && n.Kind != mdast.NodeDocument
	}) {
		assert.Equal(t, para.Span.EndOffset, node.Span.EndOffset, "%v", node.Kind)
	}
	assert.Equal(t, 0, tree.Root.FirstChild().Span.StartOffset)
}

func TestParse_Deterministic(t *testing.T) {
	t.Parallel()

	source := "# T\n\n- *a*\n- [b][c]\n\n[c]: /d\n"
	first := mustParse(t, source)
	second := mustParse(t, source)
	assert.Equal(t, first.Root, second.Root)
}

func TestParser_ConcurrentUse(t *testing.T) {
	t.Parallel()

	p := New(DefaultOptions())
	source := []byte("# Title\n\n- *a*\n- **b**\n\n[x]\n\n[x]: /y\n")

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tree, err := p.Parse(context.Background(), "", source)
			if err == nil && len(tree.Root.Children) != 3 {
				err = errors.New("unexpected block count")
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
}

func BenchmarkParse(b *testing.B) {
	var sb strings.Builder
	for i := range 200 {
		sb.WriteString("## Section\n\nSome *emphasis*, **strong**, `code` and a [link][ref].\n")
		sb.WriteString("> quoted\n> text\n\n- item one\n- item two\n  - nested\n\n")
		sb.WriteString("```go\nfunc main() {}\n```\n\n")
		if i%10 == 0 {
			sb.WriteString("<Note>\n{value}\n</Note>\n\n")
		}
	}
	sb.WriteString("[ref]: /target\n")
	content := []byte(sb.String())

	p := New(DefaultOptions())
	ctx := context.Background()

	b.SetBytes(int64(len(content)))
	b.ResetTimer()
	for range b.N {
		if _, err := p.Parse(ctx, "bench.mdx", content); err != nil {
			b.Fatal(err)
		}
	}
}
