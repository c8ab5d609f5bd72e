// Package compare diffs the block structure of two parse trees.
//
// Each tree is reduced to an outline: one line per block node, indented by
// nesting depth and carrying the attributes that define the block's shape
// (heading level, list kind and tightness, code block form). Outlines are
// then compared with a line-based unified diff. Inline content is not part
// of the outline.
package compare
