// Package parser turns Markdown and MDX source into an mdast.Tree.
//
// Parsing runs in two passes. The block scanner walks the document line by
// line, building the block structure and collecting link reference
// definitions into a per-parse label table. Once every block is known, the
// inline resolver expands each paragraph and heading into inline nodes whose
// spans tile the leaf's content range exactly.
//
// Parsing never fails on malformed Markdown. The only errors are invalid
// UTF-8 input (ErrInputEncoding) and an internal span inconsistency caught by
// the final verification step (ErrInvariant).
package parser

import (
	"context"
	"fmt"

	"github.com/yaklabco/mdxor/pkg/mdast"
)

// Flavor identifies the syntax extensions recognised by the parser.
type Flavor string

// Supported flavors.
const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
	FlavorMDX        Flavor = "mdx"
)

// ParseFlavor converts a string to a Flavor.
// Returns false for unknown names.
func ParseFlavor(name string) (Flavor, bool) {
	switch Flavor(name) {
	case FlavorCommonMark, FlavorGFM, FlavorMDX:
		return Flavor(name), true
	default:
		return "", false
	}
}

// LanguageDetector guesses the language of a code block without an info string.
// It returns "" when no guess can be made.
type LanguageDetector interface {
	Detect(content []byte) string
}

// Options configures a Parser.
type Options struct {
	// Flavor selects the syntax extensions. MDX implies GFM strikethrough.
	Flavor Flavor

	// LazyContinuation lets a paragraph inside a list item or block quote
	// continue on a line that does not carry the container's indentation or marker.
	LazyContinuation bool

	// Frontmatter recognises a leading "---" YAML block.
	Frontmatter bool

	// Detector, when set, fills CodeBlockAttrs.DetectedLanguage for code
	// blocks without a language.
	Detector LanguageDetector
}

// DefaultOptions returns the options used by Parse.
func DefaultOptions() Options {
	return OptionsForFlavor(FlavorMDX)
}

// OptionsForFlavor returns default options for the given flavor.
// Frontmatter is enabled for every flavor except CommonMark.
func OptionsForFlavor(flavor Flavor) Options {
	if _, ok := ParseFlavor(string(flavor)); !ok {
		flavor = FlavorMDX
	}
	return Options{
		Flavor:           flavor,
		LazyContinuation: true,
		Frontmatter:      flavor != FlavorCommonMark,
	}
}

func (o Options) mdx() bool {
	return o.Flavor == FlavorMDX
}

func (o Options) gfm() bool {
	return o.Flavor == FlavorGFM || o.Flavor == FlavorMDX
}

// Parser parses documents with fixed options.
// A Parser holds no mutable state and is safe for concurrent use.
type Parser struct {
	opts Options
}

// New creates a parser with the given options.
func New(opts Options) *Parser {
	if _, ok := ParseFlavor(string(opts.Flavor)); !ok {
		opts.Flavor = FlavorMDX
	}
	return &Parser{opts: opts}
}

// Options returns the parser's configuration.
func (p *Parser) Options() Options {
	return p.opts
}

// Parse converts content into a Tree.
//
// The context is checked before and after parsing; a parse in progress is
// never interrupted. The returned tree references content directly, so the
// caller must not modify it afterwards.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*mdast.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	if err := checkEncoding(content); err != nil {
		return nil, err
	}

	doc := mdast.NewDocument(content)
	labels := newLabelTable()

	scanner := newBlockScanner(doc, labels, p.opts)
	root, leaves := scanner.scan()

	resolver := newInlineResolver(doc.Content, labels, p.opts)
	for _, leaf := range leaves {
		resolver.resolveLeaf(leaf)
	}

	tree := &mdast.Tree{Path: path, Document: doc, Root: root}

	if err := Verify(tree); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	return tree, nil
}

//nolint:gochecknoglobals // Immutable default parser.
var defaultParser = New(DefaultOptions())

// Parse parses source with DefaultOptions.
func Parse(source string) (*mdast.Tree, error) {
	return defaultParser.Parse(context.Background(), "", []byte(source))
}
