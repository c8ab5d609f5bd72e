// Package goldmark wraps the goldmark parser as a reference implementation.
//
// Trees produced here use the same mdast model as the native parser so the
// two can be compared block for block. goldmark knows nothing of MDX, so the
// reference only covers the CommonMark and GFM subsets. Spans are best
// effort: goldmark does not record positions for every node.
package goldmark

import (
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/mdxor/pkg/mdast"
)

// Flavors understood by the reference parser.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Parser runs goldmark and maps its AST onto mdast.
type Parser struct {
	flavor string
	md     goldmark.Markdown
}

// New returns a reference parser for flavor. "mdx" is compared against GFM,
// which shares its strikethrough support; anything else unknown falls back to
// CommonMark.
func New(flavor string) *Parser {
	switch flavor {
	case FlavorCommonMark, FlavorGFM:
	case "mdx":
		flavor = FlavorGFM
	default:
		flavor = FlavorCommonMark
	}

	// Linkify has no native counterpart, so extension.GFM is not used whole.
	var opts []goldmark.Option
	if flavor == FlavorGFM {
		opts = append(opts, goldmark.WithExtensions(extension.Strikethrough, extension.Table, extension.TaskList))
	}
	return &Parser{flavor: flavor, md: goldmark.New(opts...)}
}

// Flavor reports the flavor New settled on.
func (p *Parser) Flavor() string {
	return p.flavor
}

// Parse builds a Tree for content. The context is checked before and after
// goldmark runs; goldmark itself cannot be interrupted.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*mdast.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	doc := mdast.NewDocument(content)
	gmDoc := p.md.Parser().Parse(text.NewReader(doc.Content), parser.WithContext(parser.NewContext()))
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	return &mdast.Tree{
		Path:     path,
		Document: doc,
		Root:     newMapper(doc.Content).mapDocument(gmDoc),
	}, nil
}
