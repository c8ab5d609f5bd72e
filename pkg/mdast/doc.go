// Package mdast provides the node tree produced by the mdxor parser.
// It defines an immutable, source-anchored view of a Markdown/MDX document:
//   - Document: the raw bytes and their line table
//   - Node: a closed set of block and inline kinds, each owning its children
//   - Tree: the document root paired with the Document it was parsed from
//
// Nodes carry byte ranges only. Line and column positions are derived on
// demand through Document.Position.
package mdast
