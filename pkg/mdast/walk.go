package mdast

import (
	"errors"
	"iter"
	"strings"
)

// SkipChildren may be returned by an enter callback to leave a node's
// subtree unvisited. The leave callback still runs for that node.
var SkipChildren = errors.New("skip children") //nolint:revive,staticcheck // sentinel, not a failure

// WalkFunc is called for each visited node. A non-nil error ends the walk.
type WalkFunc func(n *Node) error

// WalkContextFunc is an enter or leave callback for WalkWithContext.
type WalkContextFunc func(n *Node) error

// Walk visits root and its descendants in document order, parents first.
func Walk(root *Node, walkFunc WalkFunc) error {
	return WalkWithContext(root, WalkContextFunc(walkFunc), nil)
}

// WalkWithContext visits the tree calling enter on the way down and leave on
// the way back up. Either callback may be nil. Returning SkipChildren from
// enter prunes the subtree; any other error stops the walk and is returned.
func WalkWithContext(root *Node, enter, leave WalkContextFunc) error {
	if root == nil {
		return nil
	}

	descend := true
	if enter != nil {
		switch err := enter(root); {
		case errors.Is(err, SkipChildren):
			descend = false
		case err != nil:
			return err
		}
	}

	if descend {
		for _, child := range root.Children {
			if err := WalkWithContext(child, enter, leave); err != nil {
				return err
			}
		}
	}

	if leave == nil {
		return nil
	}
	return leave(root)
}

// WalkBlocks calls fn for block nodes only.
func WalkBlocks(root *Node, fn WalkFunc) error {
	return Walk(root, filtered((*Node).IsBlock, fn))
}

// WalkInlines calls fn for inline nodes only.
func WalkInlines(root *Node, fn WalkFunc) error {
	return Walk(root, filtered((*Node).IsInline, fn))
}

func filtered(keep func(*Node) bool, fn WalkFunc) WalkFunc {
	return func(n *Node) error {
		if !keep(n) {
			return nil
		}
		return fn(n)
	}
}

// All yields every node under root in the same order as Walk.
// Breaking out of the range loop stops the traversal.
func All(root *Node) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		var visit func(n *Node) bool
		visit = func(n *Node) bool {
			if !yield(n) {
				return false
			}
			for _, child := range n.Children {
				if !visit(child) {
					return false
				}
			}
			return true
		}
		if root != nil {
			visit(root)
		}
	}
}

// FindAll collects the nodes for which predicate holds.
func FindAll(root *Node, predicate func(n *Node) bool) []*Node {
	var matches []*Node
	for node := range All(root) {
		if predicate(node) {
			matches = append(matches, node)
		}
	}
	return matches
}

// FindFirst returns the first match in document order, or nil.
func FindFirst(root *Node, predicate func(n *Node) bool) *Node {
	for node := range All(root) {
		if predicate(node) {
			return node
		}
	}
	return nil
}

// FindByKind returns all nodes of the given kind.
func FindByKind(root *Node, kind NodeKind) []*Node {
	return FindAll(root, func(n *Node) bool { return n.Kind == kind })
}

// PlainText concatenates the literal text of every inline descendant of n.
// Soft breaks render as a newline; embedded expressions contribute nothing.
func PlainText(n *Node) string {
	var sb strings.Builder
	for node := range All(n) {
		switch node.Kind {
		case NodeText, NodeCodeSpan:
			sb.WriteString(node.Inline.Text)
		case NodeLineBreak:
			sb.WriteByte('\n')
		default:
		}
	}
	return sb.String()
}
