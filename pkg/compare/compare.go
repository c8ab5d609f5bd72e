package compare

import (
	"context"
	"fmt"

	"github.com/yaklabco/mdxor/pkg/mdast"
	"github.com/yaklabco/mdxor/pkg/parser"
	"github.com/yaklabco/mdxor/pkg/parser/goldmark"
)

// Side names used in diff headers.
const (
	ReferenceName = "goldmark"
	CandidateName = "mdxor"
)

// Comparer parses documents with both the native parser and the goldmark
// reference and diffs their block outlines.
// A Comparer is safe for concurrent use.
type Comparer struct {
	native    *parser.Parser
	reference *goldmark.Parser
}

// New creates a Comparer whose native side uses opts.
func New(opts parser.Options) *Comparer {
	return &Comparer{
		native:    parser.New(opts),
		reference: goldmark.New(string(opts.Flavor)),
	}
}

// Compare parses content with both parsers and returns their outline diff.
// The diff is nil when the outlines agree.
func (c *Comparer) Compare(ctx context.Context, path string, content []byte) (*Diff, error) {
	candidate, err := c.native.Parse(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return c.Against(ctx, candidate)
}

// Against parses the candidate's source with the reference parser and diffs
// the two outlines.
//
// goldmark has no frontmatter support, so a leading frontmatter block is
// dropped from the native outline and cut from the reference input.
func (c *Comparer) Against(ctx context.Context, candidate *mdast.Tree) (*Diff, error) {
	content := candidate.Document.Content
	if first := candidate.Root.FirstChild(); first != nil && first.Kind == mdast.NodeFrontmatter {
		content = content[first.Span.EndOffset:]
	}

	reference, err := c.reference.Parse(ctx, candidate.Path, content)
	if err != nil {
		return nil, fmt.Errorf("reference parse %s: %w", candidate.Path, err)
	}

	return Trees(candidate.Path, reference, candidate), nil
}

// Trees diffs the outlines of two trees. Frontmatter blocks are ignored.
// Returns nil when the outlines agree.
func Trees(path string, reference, candidate *mdast.Tree) *Diff {
	diff := DiffLines(path,
		Lines(withoutFrontmatter(Outline(reference.Root))),
		Lines(withoutFrontmatter(Outline(candidate.Root))),
	)
	if diff != nil {
		diff.ReferenceName = ReferenceName
		diff.CandidateName = CandidateName
	}
	return diff
}

func withoutFrontmatter(entries []Entry) []Entry {
	kept := entries[:0]
	for _, entry := range entries {
		if entry.Kind != mdast.NodeFrontmatter {
			kept = append(kept, entry)
		}
	}
	return kept
}
