package mdast

// ValidateTiling checks that spans are contiguous and non-overlapping and
// cover content exactly. An empty slice tiles only an empty range.
func ValidateTiling(nodes []*Node, content SourceRange) bool {
	if len(nodes) == 0 {
		return content.IsEmpty()
	}

	if nodes[0].Span.StartOffset != content.StartOffset {
		return false
	}

	if nodes[len(nodes)-1].Span.EndOffset != content.EndOffset {
		return false
	}

	for i := range nodes {
		if nodes[i].Span.StartOffset > nodes[i].Span.EndOffset {
			return false
		}
		if i > 0 && nodes[i].Span.StartOffset != nodes[i-1].Span.EndOffset {
			return false
		}
	}

	return true
}

// ValidateOrdered checks that sibling spans are ordered, non-overlapping,
// and enclosed by parent.
func ValidateOrdered(nodes []*Node, parent SourceRange) bool {
	prevEnd := parent.StartOffset
	for _, n := range nodes {
		if !parent.Encloses(n.Span) {
			return false
		}
		if n.Span.StartOffset < prevEnd {
			return false
		}
		prevEnd = n.Span.EndOffset
	}
	return true
}
